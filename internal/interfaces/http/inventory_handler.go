package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Restaurante-api/internal/application/dto"
	"github.com/jhoicas/Restaurante-api/internal/application/inventory"
	"github.com/jhoicas/Restaurante-api/internal/domain"
)

// InventoryHandler maneja el ciclo del inventario diario (protegido,
// admin/worker).
type InventoryHandler struct {
	uc *inventory.UseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.UseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// Open godoc
// @Summary      Abrir el inventario del día
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.OpenInventoryRequest  true  "sucursal + empleados"
// @Success      201   {object}  dto.InventoryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventories [post]
func (h *InventoryHandler) Open(c *fiber.Ctx) error {
	var in dto.OpenInventoryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Open(c.Context(), in)
	if err != nil {
		return mapInventoryErr(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID devuelve un inventario con el resumen por renglón.
// GET /api/inventories/:id
func (h *InventoryHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return mapInventoryErr(c, err)
	}
	return c.JSON(out)
}

// Current devuelve el inventario abierto del día para la sucursal.
// GET /api/inventories/current?branch_id= | ?nameBranch=
func (h *InventoryHandler) Current(c *fiber.Ctx) error {
	out, err := h.uc.Current(c.Context(), c.Query("branch_id"), c.Query("nameBranch"))
	if err != nil {
		return mapInventoryErr(c, err)
	}
	return c.JSON(out)
}

// ByDate devuelve el inventario de la sucursal para una fecha (YYYY-MM-DD).
// GET /api/inventories/by-date?branch_id=&date=
func (h *InventoryHandler) ByDate(c *fiber.Ctx) error {
	date, err := time.Parse("2006-01-02", c.Query("date"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "date debe tener formato YYYY-MM-DD"})
	}
	out, err := h.uc.ByDate(c.Context(), c.Query("branch_id"), c.Query("nameBranch"), date)
	if err != nil {
		return mapInventoryErr(c, err)
	}
	return c.JSON(out)
}

// List lista los inventarios de una sucursal.
// GET /api/inventories?branch_id=&limit=&offset=
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	out, err := h.uc.ListByBranch(c.Context(), c.Query("branch_id"), c.Query("nameBranch"), page)
	if err != nil {
		return mapInventoryErr(c, err)
	}
	return c.JSON(out)
}

// AddMovement agrega un movimiento al renglón de un ingrediente.
// POST /api/inventories/:id/ingredients/:ingredientId/movements
func (h *InventoryHandler) AddMovement(c *fiber.Ctx) error {
	var in dto.AddMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.AddMovement(c.Context(), c.Params("id"), c.Params("ingredientId"), in)
	if err != nil {
		return mapInventoryErr(c, err)
	}
	return c.JSON(out)
}

// RemoveMovement elimina un movimiento por posición dentro del renglón.
// DELETE /api/inventories/:id/ingredients/:ingredientId/movements/:index
func (h *InventoryHandler) RemoveMovement(c *fiber.Ctx) error {
	index, err := c.ParamsInt("index")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "index debe ser numérico"})
	}
	out, err := h.uc.RemoveMovement(c.Context(), c.Params("id"), c.Params("ingredientId"), index)
	if err != nil {
		return mapInventoryErr(c, err)
	}
	return c.JSON(out)
}

// Update guarda renglones editados y observaciones de una sola vez.
// PUT /api/inventories/:id
func (h *InventoryHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateInventoryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return mapInventoryErr(c, err)
	}
	return c.JSON(out)
}

// Close godoc
// @Summary      Cerrar el inventario del día (guardar + cerrar)
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID del inventario"
// @Param        body  body  dto.CloseInventoryRequest  true  "Renglones finales + observaciones"
// @Success      200   {object}  dto.InventoryResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventories/{id}/close [post]
func (h *InventoryHandler) Close(c *fiber.Ctx) error {
	var in dto.CloseInventoryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Close(c.Context(), c.Params("id"), in)
	if err != nil {
		return mapInventoryErr(c, err)
	}
	return c.JSON(out)
}

// ClosingPDF descarga el acta de cierre en PDF.
// GET /api/inventories/:id/pdf
func (h *InventoryHandler) ClosingPDF(c *fiber.Ctx) error {
	data, err := h.uc.ClosingPDF(c.Context(), c.Params("id"))
	if err != nil {
		return mapInventoryErr(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="inventario.pdf"`)
	return c.Send(data)
}

func mapInventoryErr(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrInvalidInput) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	}
	if errors.Is(err, domain.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "inventario, ingrediente o sucursal no encontrada"})
	}
	if errors.Is(err, domain.ErrInventoryOpen) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INVENTORY_OPEN", Message: "ya existe un inventario abierto para la sucursal hoy"})
	}
	if errors.Is(err, domain.ErrInventoryClosed) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INVENTORY_CLOSED", Message: "el inventario ya está cerrado"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
