package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Employee representa un empleado asignado a una sucursal.
// CI es la cédula de identidad, única por sucursal.
type Employee struct {
	ID        string
	BranchID  string
	CI        string
	Name      string
	Phone     string
	Position  string
	Salary    decimal.Decimal
	PhotoURL  string
	CreatedAt time.Time
	UpdatedAt time.Time
}
