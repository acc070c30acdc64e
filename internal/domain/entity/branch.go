package entity

import "time"

// Branch representa una sucursal física del restaurante. Es la unidad de
// alcance de casi todos los datos: productos, ventas, inventarios y empleados.
type Branch struct {
	ID        string
	Name      string
	Address   string
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
