package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un inventario diario. La transición permitida es open → closed,
// en un solo sentido.
const (
	InventoryStatusOpen   = "open"
	InventoryStatusClosed = "closed"
)

// Tipos de movimiento de stock dentro de un inventario diario.
const (
	MovementTypeSale       = "sale"
	MovementTypePurchase   = "purchase"
	MovementTypeAdjustment = "adjustment"
	MovementTypeLoss       = "loss"
)

// ValidMovementType indica si el tipo pertenece a la enumeración conocida.
func ValidMovementType(t string) bool {
	switch t {
	case MovementTypeSale, MovementTypePurchase, MovementTypeAdjustment, MovementTypeLoss:
		return true
	}
	return false
}

// Movement es un cambio de cantidad con signo aplicado al stock de un
// ingrediente dentro del inventario del día. Un movimiento de tipo loss se
// almacena siempre con cantidad negativa, sin importar el signo ingresado.
type Movement struct {
	Date      time.Time
	Type      string // sale, purchase, adjustment, loss
	Quantity  decimal.Decimal
	Unit      string
	Reference string
}

// InventoryLine es el renglón de un ingrediente dentro del inventario diario.
// Invariante: FinalStock == InitialStock + Σ Movements.Quantity.
type InventoryLine struct {
	IngredientID string
	Name         string
	Unit         string
	InitialStock decimal.Decimal
	FinalStock   decimal.Decimal
	Movements    []Movement
}

// InventoryEmployee es la proyección mínima del empleado que participó en la
// toma de inventario.
type InventoryEmployee struct {
	EmployeeCI string
	Name       string
}

// DailyInventory es el registro auditable del stock de una sucursal durante un
// día de operación: stock de apertura por ingrediente, movimientos y saldo de
// cierre derivado.
type DailyInventory struct {
	ID           string
	BranchID     string
	Date         time.Time
	Status       string // open, closed
	Employees    []InventoryEmployee
	Lines        []InventoryLine
	Observations string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	ClosedAt     *time.Time
}

// IsClosed indica si el inventario ya fue cerrado; un inventario cerrado no
// admite más mutaciones de movimientos.
func (inv *DailyInventory) IsClosed() bool {
	return inv.Status == InventoryStatusClosed
}

// FindLine devuelve el renglón del ingrediente indicado, o nil si no existe.
func (inv *DailyInventory) FindLine(ingredientID string) *InventoryLine {
	for i := range inv.Lines {
		if inv.Lines[i].IngredientID == ingredientID {
			return &inv.Lines[i]
		}
	}
	return nil
}
