package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// DailyProfit total vendido en un día concreto (para el reporte semanal).
type DailyProfit struct {
	Day   time.Time
	Total decimal.Decimal
	Count int
}

// InventoryStats resumen de inventarios de una sucursal.
type InventoryStats struct {
	Open       int
	Closed     int
	LastClosed *time.Time
}

// ReportRepository consultas read-only de reportería. Recibe context porque
// son lecturas agregadas potencialmente costosas que conviene poder cancelar.
type ReportRepository interface {
	GetSalesTotal(ctx context.Context, branchID string, from, to time.Time) (decimal.Decimal, int, error)
	GetWeeklyProfits(ctx context.Context, branchID string, weekStart time.Time) ([]DailyProfit, error)
	GetInventoryStats(ctx context.Context, branchID string) (*InventoryStats, error)
}
