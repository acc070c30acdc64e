package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Restaurante-api/internal/application/dto"
	"github.com/jhoicas/Restaurante-api/internal/application/sales"
	"github.com/jhoicas/Restaurante-api/internal/domain"
)

// CartHandler maneja el carrito del usuario autenticado (rol client).
type CartHandler struct {
	uc *sales.CartUseCase
}

// NewCartHandler construye el handler.
func NewCartHandler(uc *sales.CartUseCase) *CartHandler {
	return &CartHandler{uc: uc}
}

// Get devuelve el carrito del usuario.
// GET /api/cart
func (h *CartHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Context(), GetUserID(c))
	if err != nil {
		return mapCartErr(c, err)
	}
	return c.JSON(out)
}

// Add agrega una unidad del producto al carrito.
// POST /api/cart/items
func (h *CartHandler) Add(c *fiber.Ctx) error {
	var in dto.AddToCartRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.ProductID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "productId es requerido"})
	}
	out, err := h.uc.Add(c.Context(), GetUserID(c), in.ProductID)
	if err != nil {
		return mapCartErr(c, err)
	}
	return c.JSON(out)
}

// SetQuantity fija la cantidad del renglón; cero lo elimina.
// PUT /api/cart/items/:productId
func (h *CartHandler) SetQuantity(c *fiber.Ctx) error {
	var in dto.UpdateCartItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.SetQuantity(c.Context(), GetUserID(c), c.Params("productId"), in.Quantity)
	if err != nil {
		return mapCartErr(c, err)
	}
	return c.JSON(out)
}

// Remove elimina el renglón del producto del carrito.
// DELETE /api/cart/items/:productId
func (h *CartHandler) Remove(c *fiber.Ctx) error {
	out, err := h.uc.Remove(c.Context(), GetUserID(c), c.Params("productId"))
	if err != nil {
		return mapCartErr(c, err)
	}
	return c.JSON(out)
}

// Clear vacía el carrito.
// DELETE /api/cart
func (h *CartHandler) Clear(c *fiber.Ctx) error {
	if err := h.uc.Clear(c.Context(), GetUserID(c)); err != nil {
		return mapCartErr(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func mapCartErr(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
