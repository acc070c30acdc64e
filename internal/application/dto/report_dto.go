package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DailyProfitDTO total vendido por día para el reporte semanal.
type DailyProfitDTO struct {
	Day   time.Time       `json:"day"`
	Total decimal.Decimal `json:"total"`
	Count int             `json:"count"`
}

// WeeklyProfitsResponse reporte de ganancias de la semana por sucursal.
type WeeklyProfitsResponse struct {
	BranchID  string           `json:"branch_id"`
	WeekStart time.Time        `json:"week_start"`
	Days      []DailyProfitDTO `json:"days"`
	Total     decimal.Decimal  `json:"total"`
}

// SalesTotalResponse total de ventas de un rango (hoy, fecha puntual, etc.).
type SalesTotalResponse struct {
	BranchID string          `json:"branch_id"`
	From     time.Time       `json:"from"`
	To       time.Time       `json:"to"`
	Total    decimal.Decimal `json:"total"`
	Count    int             `json:"count"`
}
