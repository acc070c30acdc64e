package repository

import "github.com/jhoicas/Restaurante-api/internal/domain/entity"

// EmployeeFilter filtros opcionales para listar empleados de una sucursal.
type EmployeeFilter struct {
	Position string
	Name     string
}

// EmployeeRepository define el puerto de persistencia para Employee (DIP).
type EmployeeRepository interface {
	Create(employee *entity.Employee) error
	GetByID(id string) (*entity.Employee, error)
	ListByBranch(branchID string, filter EmployeeFilter) ([]*entity.Employee, error)
	Update(employee *entity.Employee) error
	Delete(id string) error
}
