package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateIngredientRequest entrada para registrar/editar un ingrediente.
type CreateIngredientRequest struct {
	BranchID     string          `json:"branch_id"`
	BranchName   string          `json:"nameBranch"`
	Name         string          `json:"name"`
	Unit         string          `json:"unit"`
	CurrentStock decimal.Decimal `json:"currentStock"`
	Cost         decimal.Decimal `json:"cost"`
}

// IngredientResponse salida de un ingrediente.
type IngredientResponse struct {
	ID           string          `json:"id"`
	BranchID     string          `json:"branch_id"`
	Name         string          `json:"name"`
	Unit         string          `json:"unit"`
	CurrentStock decimal.Decimal `json:"currentStock"`
	Cost         decimal.Decimal `json:"cost"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}
