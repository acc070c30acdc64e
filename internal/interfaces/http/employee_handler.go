package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Restaurante-api/internal/application/dto"
	"github.com/jhoicas/Restaurante-api/internal/application/usecase"
	"github.com/jhoicas/Restaurante-api/internal/domain"
	"github.com/jhoicas/Restaurante-api/internal/domain/repository"
)

// EmployeeHandler maneja las peticiones HTTP para empleados (protegido).
type EmployeeHandler struct {
	uc *usecase.EmployeeUseCase
}

// NewEmployeeHandler construye el handler.
func NewEmployeeHandler(uc *usecase.EmployeeUseCase) *EmployeeHandler {
	return &EmployeeHandler{uc: uc}
}

// Create registra un empleado.
// POST /api/employees
func (h *EmployeeHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateEmployeeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(in)
	if err != nil {
		return mapEmployeeErr(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID obtiene un empleado.
// GET /api/employees/:id
func (h *EmployeeHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return mapEmployeeErr(c, err)
	}
	return c.JSON(out)
}

// ListByBranch lista empleados de una sucursal con filtros opcionales.
// GET /api/employees?branch_id=&position=&name=
func (h *EmployeeHandler) ListByBranch(c *fiber.Ctx) error {
	filter := repository.EmployeeFilter{
		Position: c.Query("position"),
		Name:     c.Query("name"),
	}
	out, err := h.uc.ListByBranch(c.Query("branch_id"), c.Query("nameBranch"), filter)
	if err != nil {
		return mapEmployeeErr(c, err)
	}
	return c.JSON(out)
}

// Update actualiza un empleado.
// PUT /api/employees/:id
func (h *EmployeeHandler) Update(c *fiber.Ctx) error {
	var in dto.CreateEmployeeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		return mapEmployeeErr(c, err)
	}
	return c.JSON(out)
}

// Delete elimina un empleado.
// DELETE /api/employees/:id
func (h *EmployeeHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func mapEmployeeErr(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrInvalidInput) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	}
	if errors.Is(err, domain.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "empleado o sucursal no encontrada"})
	}
	if errors.Is(err, domain.ErrDuplicate) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "la cédula ya está registrada en la sucursal"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
