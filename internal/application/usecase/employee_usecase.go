package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Restaurante-api/internal/application/dto"
	"github.com/jhoicas/Restaurante-api/internal/domain"
	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
	"github.com/jhoicas/Restaurante-api/internal/domain/repository"
)

// EmployeeUseCase casos de uso CRUD para empleados de sucursal.
type EmployeeUseCase struct {
	repo       repository.EmployeeRepository
	branchRepo repository.BranchRepository
}

// NewEmployeeUseCase construye el caso de uso.
func NewEmployeeUseCase(repo repository.EmployeeRepository, branchRepo repository.BranchRepository) *EmployeeUseCase {
	return &EmployeeUseCase{repo: repo, branchRepo: branchRepo}
}

func (uc *EmployeeUseCase) resolveBranch(branchID, branchName string) (*entity.Branch, error) {
	if branchID != "" {
		return uc.branchRepo.GetByID(branchID)
	}
	if branchName != "" {
		return uc.branchRepo.GetByName(branchName)
	}
	return nil, domain.ErrInvalidInput
}

// Create registra un empleado en una sucursal.
func (uc *EmployeeUseCase) Create(in dto.CreateEmployeeRequest) (*dto.EmployeeResponse, error) {
	if in.CI == "" || in.Name == "" || in.Salary.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	branch, err := uc.resolveBranch(in.BranchID, in.BranchName)
	if err != nil {
		return nil, err
	}
	if branch == nil {
		return nil, domain.ErrNotFound
	}
	now := time.Now()
	employee := &entity.Employee{
		ID:        uuid.New().String(),
		BranchID:  branch.ID,
		CI:        in.CI,
		Name:      in.Name,
		Phone:     in.Phone,
		Position:  in.Position,
		Salary:    in.Salary,
		PhotoURL:  in.PhotoURL,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(employee); err != nil {
		return nil, err
	}
	return toEmployeeResponse(employee), nil
}

// GetByID obtiene un empleado por ID.
func (uc *EmployeeUseCase) GetByID(id string) (*dto.EmployeeResponse, error) {
	employee, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, domain.ErrNotFound
	}
	return toEmployeeResponse(employee), nil
}

// ListByBranch lista empleados de una sucursal, con filtros opcionales por
// cargo y nombre.
func (uc *EmployeeUseCase) ListByBranch(branchID, branchName string, filter repository.EmployeeFilter) ([]dto.EmployeeResponse, error) {
	branch, err := uc.resolveBranch(branchID, branchName)
	if err != nil {
		return nil, err
	}
	if branch == nil {
		return nil, domain.ErrNotFound
	}
	list, err := uc.repo.ListByBranch(branch.ID, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.EmployeeResponse, 0, len(list))
	for _, e := range list {
		items = append(items, *toEmployeeResponse(e))
	}
	return items, nil
}

// Update actualiza los datos de un empleado.
func (uc *EmployeeUseCase) Update(id string, in dto.CreateEmployeeRequest) (*dto.EmployeeResponse, error) {
	employee, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, domain.ErrNotFound
	}
	if in.Salary.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if in.CI != "" {
		employee.CI = in.CI
	}
	if in.Name != "" {
		employee.Name = in.Name
	}
	if in.Phone != "" {
		employee.Phone = in.Phone
	}
	if in.Position != "" {
		employee.Position = in.Position
	}
	if !in.Salary.IsZero() {
		employee.Salary = in.Salary
	}
	if in.PhotoURL != "" {
		employee.PhotoURL = in.PhotoURL
	}
	employee.UpdatedAt = time.Now()
	if err := uc.repo.Update(employee); err != nil {
		return nil, err
	}
	return toEmployeeResponse(employee), nil
}

// Delete elimina un empleado.
func (uc *EmployeeUseCase) Delete(id string) error {
	return uc.repo.Delete(id)
}

func toEmployeeResponse(e *entity.Employee) *dto.EmployeeResponse {
	return &dto.EmployeeResponse{
		ID:        e.ID,
		BranchID:  e.BranchID,
		CI:        e.CI,
		Name:      e.Name,
		Phone:     e.Phone,
		Position:  e.Position,
		Salary:    e.Salary,
		PhotoURL:  e.PhotoURL,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}
