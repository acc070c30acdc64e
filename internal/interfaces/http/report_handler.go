package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Restaurante-api/internal/application/dto"
	"github.com/jhoicas/Restaurante-api/internal/application/usecase"
	"github.com/jhoicas/Restaurante-api/internal/domain"
)

// ReportHandler reportería read-only por sucursal (protegido, admin).
type ReportHandler struct {
	uc *usecase.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *usecase.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// SalesTotal total vendido en un rango; sin from/to usa el día de hoy.
// GET /api/reports/sales-total?branch_id=&from=&to=
func (h *ReportHandler) SalesTotal(c *fiber.Ctx) error {
	var from, to time.Time
	if fromStr := c.Query("from"); fromStr != "" {
		parsed, err := time.Parse("2006-01-02", fromStr)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from debe tener formato YYYY-MM-DD"})
		}
		from = parsed
	}
	if toStr := c.Query("to"); toStr != "" {
		parsed, err := time.Parse("2006-01-02", toStr)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to debe tener formato YYYY-MM-DD"})
		}
		to = parsed.AddDate(0, 0, 1)
	}
	out, err := h.uc.SalesTotal(c.Context(), c.Query("branch_id"), from, to)
	if err != nil {
		return mapReportErr(c, err)
	}
	return c.JSON(out)
}

// WeeklyProfits ganancias por día de la semana en curso.
// GET /api/reports/weekly-profits?branch_id=
func (h *ReportHandler) WeeklyProfits(c *fiber.Ctx) error {
	out, err := h.uc.WeeklyProfits(c.Context(), c.Query("branch_id"))
	if err != nil {
		return mapReportErr(c, err)
	}
	return c.JSON(out)
}

// InventoryStats resumen de inventarios de la sucursal.
// GET /api/reports/inventory-stats?branch_id=
func (h *ReportHandler) InventoryStats(c *fiber.Ctx) error {
	out, err := h.uc.InventoryStats(c.Context(), c.Query("branch_id"))
	if err != nil {
		return mapReportErr(c, err)
	}
	return c.JSON(out)
}

func mapReportErr(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "sucursal no encontrada"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
