package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
	"github.com/jhoicas/Restaurante-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas agregadas de reportería sobre PostgreSQL.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador de reportería.
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// GetSalesTotal total y cantidad de ventas terminadas en [from, to).
func (r *ReportRepo) GetSalesTotal(ctx context.Context, branchID string, from, to time.Time) (decimal.Decimal, int, error) {
	query := `
		SELECT COALESCE(SUM(total), 0), COUNT(*)
		FROM sales
		WHERE branch_id = $1 AND status = $2 AND sale_date >= $3 AND sale_date < $4`
	var total decimal.Decimal
	var count int
	err := r.q.QueryRow(ctx, query, branchID, entity.SaleStatusFinished, from, to).Scan(&total, &count)
	if err != nil {
		return decimal.Zero, 0, fmt.Errorf("get sales total: %w", err)
	}
	return total, count, nil
}

// GetWeeklyProfits total vendido por día en la semana que empieza en weekStart.
func (r *ReportRepo) GetWeeklyProfits(ctx context.Context, branchID string, weekStart time.Time) ([]repository.DailyProfit, error) {
	query := `
		SELECT date_trunc('day', sale_date) AS day, COALESCE(SUM(total), 0), COUNT(*)
		FROM sales
		WHERE branch_id = $1 AND status = $2 AND sale_date >= $3 AND sale_date < $4
		GROUP BY day ORDER BY day ASC`
	rows, err := r.q.Query(ctx, query, branchID, entity.SaleStatusFinished, weekStart, weekStart.AddDate(0, 0, 7))
	if err != nil {
		return nil, fmt.Errorf("get weekly profits: %w", err)
	}
	defer rows.Close()
	var days []repository.DailyProfit
	for rows.Next() {
		var d repository.DailyProfit
		if err := rows.Scan(&d.Day, &d.Total, &d.Count); err != nil {
			return nil, fmt.Errorf("scan daily profit: %w", err)
		}
		days = append(days, d)
	}
	return days, rows.Err()
}

// GetInventoryStats cantidad de inventarios abiertos/cerrados y fecha del
// último cierre de la sucursal.
func (r *ReportRepo) GetInventoryStats(ctx context.Context, branchID string) (*repository.InventoryStats, error) {
	query := `
		SELECT
			COUNT(*) FILTER (WHERE status = $2),
			COUNT(*) FILTER (WHERE status = $3),
			MAX(closed_at)
		FROM daily_inventories WHERE branch_id = $1`
	var stats repository.InventoryStats
	err := r.q.QueryRow(ctx, query, branchID, entity.InventoryStatusOpen, entity.InventoryStatusClosed).Scan(
		&stats.Open, &stats.Closed, &stats.LastClosed,
	)
	if err != nil {
		return nil, fmt.Errorf("get inventory stats: %w", err)
	}
	return &stats, nil
}
