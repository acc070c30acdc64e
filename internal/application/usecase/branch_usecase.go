package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Restaurante-api/internal/application/dto"
	"github.com/jhoicas/Restaurante-api/internal/domain"
	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
	"github.com/jhoicas/Restaurante-api/internal/domain/repository"
)

// BranchUseCase casos de uso CRUD para sucursales.
type BranchUseCase struct {
	repo repository.BranchRepository
}

// NewBranchUseCase construye el caso de uso.
func NewBranchUseCase(repo repository.BranchRepository) *BranchUseCase {
	return &BranchUseCase{repo: repo}
}

// Create crea una nueva sucursal.
func (uc *BranchUseCase) Create(in dto.CreateBranchRequest) (*dto.BranchResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	branch := &entity.Branch{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Address:   in.Address,
		Phone:     in.Phone,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(branch); err != nil {
		return nil, err
	}
	return toBranchResponse(branch), nil
}

// GetByID obtiene una sucursal por ID.
func (uc *BranchUseCase) GetByID(id string) (*dto.BranchResponse, error) {
	branch, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if branch == nil {
		return nil, domain.ErrNotFound
	}
	return toBranchResponse(branch), nil
}

// GetByName obtiene una sucursal por su nombre visible (normalizado).
func (uc *BranchUseCase) GetByName(name string) (*dto.BranchResponse, error) {
	branch, err := uc.repo.GetByName(name)
	if err != nil {
		return nil, err
	}
	if branch == nil {
		return nil, domain.ErrNotFound
	}
	return toBranchResponse(branch), nil
}

// List lista las sucursales con paginación.
func (uc *BranchUseCase) List(page dto.PageRequest) ([]dto.BranchResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.BranchResponse, 0, len(list))
	for _, b := range list {
		items = append(items, *toBranchResponse(b))
	}
	return items, nil
}

// Update actualiza una sucursal.
func (uc *BranchUseCase) Update(id string, in dto.CreateBranchRequest) (*dto.BranchResponse, error) {
	branch, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if branch == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != "" {
		branch.Name = in.Name
	}
	if in.Address != "" {
		branch.Address = in.Address
	}
	if in.Phone != "" {
		branch.Phone = in.Phone
	}
	branch.UpdatedAt = time.Now()
	if err := uc.repo.Update(branch); err != nil {
		return nil, err
	}
	return toBranchResponse(branch), nil
}

// Delete elimina una sucursal.
func (uc *BranchUseCase) Delete(id string) error {
	return uc.repo.Delete(id)
}

func toBranchResponse(b *entity.Branch) *dto.BranchResponse {
	return &dto.BranchResponse{
		ID:        b.ID,
		Name:      b.Name,
		Address:   b.Address,
		Phone:     b.Phone,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}
