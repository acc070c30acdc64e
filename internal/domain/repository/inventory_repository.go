package repository

import (
	"time"

	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
)

// InventoryRepository define el puerto de persistencia para el inventario
// diario. UpdateLines reemplaza renglones y observaciones en una sola llamada
// (los clientes editan en memoria y guardan todo junto); Close solo cambia el
// estado, nunca los renglones.
type InventoryRepository interface {
	Create(inv *entity.DailyInventory) error
	GetByID(id string) (*entity.DailyInventory, error)
	// GetOpenByBranch devuelve el inventario abierto de la sucursal para la
	// fecha dada, o nil si no hay ninguno.
	GetOpenByBranch(branchID string, date time.Time) (*entity.DailyInventory, error)
	GetByBranchAndDate(branchID string, date time.Time) (*entity.DailyInventory, error)
	ListByBranch(branchID string, limit, offset int) ([]*entity.DailyInventory, error)
	UpdateLines(id string, lines []entity.InventoryLine, observations string) error
	Close(id string, closedAt time.Time) error
}
