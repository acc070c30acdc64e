package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryEmployeeDTO proyección del empleado que participa en la toma.
type InventoryEmployeeDTO struct {
	EmployeeCI string `json:"employeeCi"`
	Name       string `json:"name"`
}

// OpenInventoryRequest entrada para abrir el inventario del día. La sucursal
// puede venir por id o por nombre visible (clientes históricos).
type OpenInventoryRequest struct {
	BranchID     string                 `json:"branch_id"`
	BranchName   string                 `json:"nameBranch"`
	Employees    []InventoryEmployeeDTO `json:"employees"`
	Observations string                 `json:"observations"`
}

// MovementDTO un movimiento de stock dentro del inventario diario.
type MovementDTO struct {
	Date      time.Time       `json:"date"`
	Type      string          `json:"type"` // sale, purchase, adjustment, loss
	Quantity  decimal.Decimal `json:"quantity"`
	Unit      string          `json:"unit"`
	Reference string          `json:"reference"`
}

// AddMovementRequest entrada para agregar un movimiento a un renglón.
type AddMovementRequest struct {
	Type      string          `json:"type"`
	Quantity  decimal.Decimal `json:"quantity"`
	Reference string          `json:"reference"`
}

// InventoryLineDTO renglón de ingrediente con sus movimientos. FinalStock es
// derivado en el servidor; el valor que mande el cliente se ignora.
type InventoryLineDTO struct {
	IngredientID string          `json:"ingredientId"`
	Name         string          `json:"name"`
	Unit         string          `json:"unit"`
	InitialStock decimal.Decimal `json:"initialStock"`
	FinalStock   decimal.Decimal `json:"finalStock"`
	Movements    []MovementDTO   `json:"movements"`
}

// UpdateInventoryRequest entrada para guardar de una sola vez los renglones
// editados y las observaciones (los clientes editan en memoria y guardan todo
// junto).
type UpdateInventoryRequest struct {
	Lines        []InventoryLineDTO `json:"ingredients"`
	Observations string             `json:"observations"`
}

// CloseInventoryRequest entrada para el cierre en dos pasos: primero se
// persisten los renglones, después se marca el inventario como cerrado.
type CloseInventoryRequest struct {
	Lines        []InventoryLineDTO `json:"ingredients"`
	Observations string             `json:"observations"`
}

// MovementSummaryDTO agregado por tipo para las vistas de detalle. Los ajustes
// positivos quedan fuera de Adjustments a propósito.
type MovementSummaryDTO struct {
	Sales       decimal.Decimal `json:"sales"`
	Purchases   decimal.Decimal `json:"purchases"`
	Adjustments decimal.Decimal `json:"adjustments"`
	Losses      decimal.Decimal `json:"losses"`
}

// InventoryLineView renglón con su resumen de movimientos.
type InventoryLineView struct {
	InventoryLineDTO
	Summary MovementSummaryDTO `json:"summary"`
}

// InventoryResponse salida del inventario diario.
type InventoryResponse struct {
	ID           string                 `json:"id"`
	BranchID     string                 `json:"branch_id"`
	Date         time.Time              `json:"date"`
	Status       string                 `json:"status"`
	Employees    []InventoryEmployeeDTO `json:"employees"`
	Lines        []InventoryLineView    `json:"ingredients"`
	Observations string                 `json:"observations,omitempty"`
	ClosedAt     *time.Time             `json:"closed_at,omitempty"`
}

// InventoryStatsResponse resumen de inventarios de una sucursal.
type InventoryStatsResponse struct {
	Open       int        `json:"open"`
	Closed     int        `json:"closed"`
	LastClosed *time.Time `json:"last_closed,omitempty"`
}
