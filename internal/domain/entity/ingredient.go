package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Unidades de medida válidas para un ingrediente.
const (
	UnitKg     = "kg"
	UnitG      = "g"
	UnitL      = "l"
	UnitMl     = "ml"
	UnitUnidad = "unidad"
)

// Ingredient representa un insumo de cocina con stock por sucursal.
// CurrentStock y Cost son siempre no negativos.
type Ingredient struct {
	ID           string
	BranchID     string
	Name         string
	Unit         string // kg, g, l, ml, unidad
	CurrentStock decimal.Decimal
	Cost         decimal.Decimal
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ValidUnit indica si la unidad pertenece a la enumeración conocida.
func ValidUnit(unit string) bool {
	switch unit {
	case UnitKg, UnitG, UnitL, UnitMl, UnitUnidad:
		return true
	}
	return false
}
