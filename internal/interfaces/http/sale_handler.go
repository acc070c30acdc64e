package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Restaurante-api/internal/application/dto"
	"github.com/jhoicas/Restaurante-api/internal/application/sales"
	"github.com/jhoicas/Restaurante-api/internal/domain"
)

// SaleHandler maneja ventas y cotizaciones (protegido, admin/worker).
type SaleHandler struct {
	uc *sales.UseCase
}

// NewSaleHandler construye el handler.
func NewSaleHandler(uc *sales.UseCase) *SaleHandler {
	return &SaleHandler{uc: uc}
}

// Quote calcula los totales del formulario sin registrar nada: subtotal,
// descuento del día y total.
// POST /api/sales/quote
func (h *SaleHandler) Quote(c *fiber.Ctx) error {
	var in struct {
		Items []dto.SaleItemDTO `json:"products"`
	}
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	return c.JSON(h.uc.QuoteNow(in.Items))
}

// Register godoc
// @Summary      Registrar venta
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterSaleRequest  true  "Datos de la venta"
// @Success      201   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *SaleHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Register(c.Context(), in)
	if err != nil {
		return mapSaleErr(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID obtiene una venta.
// GET /api/sales/:id
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return mapSaleErr(c, err)
	}
	return c.JSON(out)
}

// List lista las ventas de una sucursal; con from/to (YYYY-MM-DD) filtra por
// rango de fechas.
// GET /api/sales?branch_id=&from=&to=
func (h *SaleHandler) List(c *fiber.Ctx) error {
	fromStr, toStr := c.Query("from"), c.Query("to")
	if fromStr != "" && toStr != "" {
		from, err := time.Parse("2006-01-02", fromStr)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from debe tener formato YYYY-MM-DD"})
		}
		to, err := time.Parse("2006-01-02", toStr)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to debe tener formato YYYY-MM-DD"})
		}
		out, err := h.uc.ListByRange(c.Context(), c.Query("branch_id"), c.Query("nameBranch"), from, to.AddDate(0, 0, 1))
		if err != nil {
			return mapSaleErr(c, err)
		}
		return c.JSON(out)
	}
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	out, err := h.uc.ListByBranch(c.Context(), c.Query("branch_id"), c.Query("nameBranch"), page)
	if err != nil {
		return mapSaleErr(c, err)
	}
	return c.JSON(out)
}

// AdvanceStatus cambia el estado de la venta; las transiciones se validan en
// el servidor.
// PUT /api/sales/:id/status
func (h *SaleHandler) AdvanceStatus(c *fiber.Ctx) error {
	var in dto.AdvanceSaleStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.AdvanceStatus(c.Context(), c.Params("id"), in.Status)
	if err != nil {
		return mapSaleErr(c, err)
	}
	return c.JSON(out)
}

// ReceiptPDF descarga el comprobante de la venta en PDF.
// GET /api/sales/:id/pdf
func (h *SaleHandler) ReceiptPDF(c *fiber.Ctx) error {
	data, err := h.uc.ReceiptPDF(c.Context(), c.Params("id"))
	if err != nil {
		return mapSaleErr(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="venta.pdf"`)
	return c.Send(data)
}

func mapSaleErr(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrInvalidInput) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	}
	if errors.Is(err, domain.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "venta, producto o sucursal no encontrada"})
	}
	if errors.Is(err, domain.ErrInvalidTransition) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INVALID_TRANSITION", Message: "transición de estado inválida"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
