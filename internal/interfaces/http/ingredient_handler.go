package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Restaurante-api/internal/application/dto"
	"github.com/jhoicas/Restaurante-api/internal/application/usecase"
	"github.com/jhoicas/Restaurante-api/internal/domain"
)

// IngredientHandler maneja las peticiones HTTP para ingredientes (protegido).
type IngredientHandler struct {
	uc *usecase.IngredientUseCase
}

// NewIngredientHandler construye el handler.
func NewIngredientHandler(uc *usecase.IngredientUseCase) *IngredientHandler {
	return &IngredientHandler{uc: uc}
}

// Create registra un ingrediente en una sucursal.
// POST /api/ingredients
func (h *IngredientHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateIngredientRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(in)
	if err != nil {
		return mapIngredientErr(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID obtiene un ingrediente.
// GET /api/ingredients/:id
func (h *IngredientHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return mapIngredientErr(c, err)
	}
	return c.JSON(out)
}

// ListByBranch lista los ingredientes de una sucursal (por id o nombre).
// GET /api/ingredients?branch_id= | ?nameBranch=
func (h *IngredientHandler) ListByBranch(c *fiber.Ctx) error {
	out, err := h.uc.ListByBranch(c.Query("branch_id"), c.Query("nameBranch"))
	if err != nil {
		return mapIngredientErr(c, err)
	}
	return c.JSON(out)
}

// Update actualiza un ingrediente.
// PUT /api/ingredients/:id
func (h *IngredientHandler) Update(c *fiber.Ctx) error {
	var in dto.CreateIngredientRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		return mapIngredientErr(c, err)
	}
	return c.JSON(out)
}

// UpdateStock fija el stock actual del ingrediente.
// PUT /api/ingredients/:id/stock
func (h *IngredientHandler) UpdateStock(c *fiber.Ctx) error {
	var in struct {
		CurrentStock decimal.Decimal `json:"currentStock"`
	}
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.UpdateStock(c.Params("id"), in.CurrentStock)
	if err != nil {
		return mapIngredientErr(c, err)
	}
	return c.JSON(out)
}

// Delete elimina un ingrediente.
// DELETE /api/ingredients/:id
func (h *IngredientHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func mapIngredientErr(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrInvalidInput) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	}
	if errors.Is(err, domain.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "ingrediente o sucursal no encontrada"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
