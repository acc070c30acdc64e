package dto

import "time"

// CreateBranchRequest entrada para crear o editar una sucursal.
type CreateBranchRequest struct {
	Name    string `json:"nameBranch"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

// BranchResponse salida de una sucursal.
type BranchResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"nameBranch"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
