package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una venta. Las transiciones se validan en el dominio:
// inProgress → finished, inProgress → cancelled; finished y cancelled son
// terminales.
const (
	SaleStatusInProgress = "inProgress"
	SaleStatusFinished   = "finished"
	SaleStatusCancelled  = "cancelled"
)

// SaleItem es un renglón de la venta. La identidad del renglón es siempre el
// ProductID, nunca el nombre mostrado.
type SaleItem struct {
	ProductID string
	Name      string
	Quantity  int
	Price     decimal.Decimal
}

// Sale representa una venta registrada en una sucursal.
// Discount es un porcentaje (0–100); Total ya lo tiene aplicado.
type Sale struct {
	ID         string
	BranchID   string
	ClientName string
	ClientCI   string
	Items      []SaleItem
	Discount   decimal.Decimal
	Total      decimal.Decimal
	SaleDate   time.Time
	Status     string // inProgress, finished, cancelled
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// CanTransition valida el cambio de estado de una venta.
func (s *Sale) CanTransition(next string) bool {
	if s.Status != SaleStatusInProgress {
		return false
	}
	return next == SaleStatusFinished || next == SaleStatusCancelled
}
