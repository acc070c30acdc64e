package repository

import (
	"time"

	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
)

// SaleRepository define el puerto de persistencia para Sale (DIP).
type SaleRepository interface {
	Create(sale *entity.Sale) error
	GetByID(id string) (*entity.Sale, error)
	ListByBranch(branchID string, limit, offset int) ([]*entity.Sale, error)
	// ListByBranchAndRange devuelve las ventas de la sucursal cuyo SaleDate
	// cae en [from, to).
	ListByBranchAndRange(branchID string, from, to time.Time) ([]*entity.Sale, error)
	UpdateStatus(id, status string) error
}
