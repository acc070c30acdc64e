package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Restaurante-api/internal/application/dto"
	"github.com/jhoicas/Restaurante-api/internal/domain"
	"github.com/jhoicas/Restaurante-api/internal/domain/repository"
)

// ReportUseCase reportería read-only: totales de ventas, ganancias semanales
// y estado de inventarios por sucursal.
type ReportUseCase struct {
	repo       repository.ReportRepository
	branchRepo repository.BranchRepository

	// Now permite inyectar el reloj en pruebas.
	Now func() time.Time
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(repo repository.ReportRepository, branchRepo repository.BranchRepository) *ReportUseCase {
	return &ReportUseCase{repo: repo, branchRepo: branchRepo, Now: time.Now}
}

// SalesTotal total vendido en un rango. Si from/to son cero se usa el día
// de hoy completo.
func (uc *ReportUseCase) SalesTotal(ctx context.Context, branchID string, from, to time.Time) (*dto.SalesTotalResponse, error) {
	branch, err := uc.branchRepo.GetByID(branchID)
	if err != nil {
		return nil, err
	}
	if branch == nil {
		return nil, domain.ErrNotFound
	}
	if from.IsZero() || to.IsZero() {
		now := uc.Now()
		from = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		to = from.AddDate(0, 0, 1)
	}
	total, count, err := uc.repo.GetSalesTotal(ctx, branch.ID, from, to)
	if err != nil {
		return nil, err
	}
	return &dto.SalesTotalResponse{
		BranchID: branch.ID,
		From:     from,
		To:       to,
		Total:    total,
		Count:    count,
	}, nil
}

// WeeklyProfits ganancias por día de la semana en curso (lunes a domingo).
func (uc *ReportUseCase) WeeklyProfits(ctx context.Context, branchID string) (*dto.WeeklyProfitsResponse, error) {
	branch, err := uc.branchRepo.GetByID(branchID)
	if err != nil {
		return nil, err
	}
	if branch == nil {
		return nil, domain.ErrNotFound
	}
	weekStart := startOfWeek(uc.Now())
	days, err := uc.repo.GetWeeklyProfits(ctx, branch.ID, weekStart)
	if err != nil {
		return nil, err
	}
	resp := &dto.WeeklyProfitsResponse{
		BranchID:  branch.ID,
		WeekStart: weekStart,
		Total:     decimal.Zero,
	}
	for _, d := range days {
		resp.Days = append(resp.Days, dto.DailyProfitDTO{Day: d.Day, Total: d.Total, Count: d.Count})
		resp.Total = resp.Total.Add(d.Total)
	}
	return resp, nil
}

// InventoryStats cantidad de inventarios abiertos/cerrados y fecha del
// último cierre.
func (uc *ReportUseCase) InventoryStats(ctx context.Context, branchID string) (*dto.InventoryStatsResponse, error) {
	branch, err := uc.branchRepo.GetByID(branchID)
	if err != nil {
		return nil, err
	}
	if branch == nil {
		return nil, domain.ErrNotFound
	}
	stats, err := uc.repo.GetInventoryStats(ctx, branch.ID)
	if err != nil {
		return nil, err
	}
	if stats == nil {
		stats = &repository.InventoryStats{}
	}
	return &dto.InventoryStatsResponse{
		Open:       stats.Open,
		Closed:     stats.Closed,
		LastClosed: stats.LastClosed,
	}, nil
}

// startOfWeek trunca a las 00:00 del lunes de la semana de t.
func startOfWeek(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	weekday := int(day.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	return day.AddDate(0, 0, -(weekday - 1))
}
