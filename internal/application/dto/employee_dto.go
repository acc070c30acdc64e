package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateEmployeeRequest entrada para registrar/editar un empleado de sucursal.
type CreateEmployeeRequest struct {
	BranchID   string          `json:"branch_id"`
	BranchName string          `json:"nameBranch"`
	CI         string          `json:"ci"`
	Name       string          `json:"name"`
	Phone      string          `json:"phone"`
	Position   string          `json:"position"`
	Salary     decimal.Decimal `json:"salary"`
	PhotoURL   string          `json:"photo_url"`
}

// EmployeeResponse salida de un empleado.
type EmployeeResponse struct {
	ID        string          `json:"id"`
	BranchID  string          `json:"branch_id"`
	CI        string          `json:"ci"`
	Name      string          `json:"name"`
	Phone     string          `json:"phone"`
	Position  string          `json:"position"`
	Salary    decimal.Decimal `json:"salary"`
	PhotoURL  string          `json:"photo_url,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}
