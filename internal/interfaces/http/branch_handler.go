package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Restaurante-api/internal/application/dto"
	"github.com/jhoicas/Restaurante-api/internal/application/usecase"
	"github.com/jhoicas/Restaurante-api/internal/domain"
)

// BranchHandler maneja las peticiones HTTP para sucursales (protegido).
type BranchHandler struct {
	uc *usecase.BranchUseCase
}

// NewBranchHandler construye el handler.
func NewBranchHandler(uc *usecase.BranchUseCase) *BranchHandler {
	return &BranchHandler{uc: uc}
}

// Create godoc
// @Summary      Crear sucursal
// @Tags         branches
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateBranchRequest  true  "Datos de la sucursal"
// @Success      201   {object}  dto.BranchResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/branches [post]
func (h *BranchHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateBranchRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "nameBranch es requerido"})
	}
	out, err := h.uc.Create(in)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "ya existe una sucursal con ese nombre"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener sucursal por ID (o por nombre vía ?name=)
// @Tags         branches
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la sucursal"
// @Success      200  {object}  dto.BranchResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/branches/{id} [get]
func (h *BranchHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	out, err := h.uc.GetByID(id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "sucursal no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar sucursales
// @Tags         branches
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int     false  "Límite"   default(20)
// @Param        offset  query  int     false  "Offset"   default(0)
// @Param        name    query  string  false  "Búsqueda por nombre visible"
// @Success      200     {array}  dto.BranchResponse
// @Router       /api/branches [get]
func (h *BranchHandler) List(c *fiber.Ctx) error {
	if name := c.Query("name"); name != "" {
		out, err := h.uc.GetByName(name)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "sucursal no encontrada"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}
		return c.JSON([]dto.BranchResponse{*out})
	}
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	out, err := h.uc.List(page)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar sucursal
// @Tags         branches
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID de la sucursal"
// @Param        body  body  dto.CreateBranchRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.BranchResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/branches/{id} [put]
func (h *BranchHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	var in dto.CreateBranchRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(id, in)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "sucursal no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar sucursal
// @Tags         branches
// @Security     Bearer
// @Param        id  path  string  true  "ID de la sucursal"
// @Success      204
// @Router       /api/branches/{id} [delete]
func (h *BranchHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
