package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Restaurante-api/internal/application/dto"
	"github.com/jhoicas/Restaurante-api/internal/domain"
	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
	"github.com/jhoicas/Restaurante-api/internal/domain/repository"
)

// IngredientUseCase casos de uso CRUD para ingredientes por sucursal.
type IngredientUseCase struct {
	repo       repository.IngredientRepository
	branchRepo repository.BranchRepository
}

// NewIngredientUseCase construye el caso de uso.
func NewIngredientUseCase(repo repository.IngredientRepository, branchRepo repository.BranchRepository) *IngredientUseCase {
	return &IngredientUseCase{repo: repo, branchRepo: branchRepo}
}

func (uc *IngredientUseCase) resolveBranch(branchID, branchName string) (*entity.Branch, error) {
	if branchID != "" {
		return uc.branchRepo.GetByID(branchID)
	}
	if branchName != "" {
		return uc.branchRepo.GetByName(branchName)
	}
	return nil, domain.ErrInvalidInput
}

// Create registra un ingrediente en una sucursal. La unidad debe pertenecer a
// la enumeración conocida; stock y costo no pueden ser negativos.
func (uc *IngredientUseCase) Create(in dto.CreateIngredientRequest) (*dto.IngredientResponse, error) {
	if in.Name == "" || !entity.ValidUnit(in.Unit) {
		return nil, domain.ErrInvalidInput
	}
	if in.CurrentStock.IsNegative() || in.Cost.IsNegative() {
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
	ing := &entity.Ingredient{
		ID:           uuid.New().String(),
		BranchID:     branch.ID,
		Name:         in.Name,
		Unit:         in.Unit,
		CurrentStock: in.CurrentStock,
		Cost:         in.Cost,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ing); err != nil {
		return nil, err
	}
	return toIngredientResponse(ing), nil
}

// GetByID obtiene un ingrediente por ID.
func (uc *IngredientUseCase) GetByID(id string) (*dto.IngredientResponse, error) {
	ing, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if ing == nil {
		return nil, domain.ErrNotFound
	}
	return toIngredientResponse(ing), nil
}

// ListByBranch lista los ingredientes de una sucursal.
func (uc *IngredientUseCase) ListByBranch(branchID, branchName string) ([]dto.IngredientResponse, error) {
	branch, err := uc.resolveBranch(branchID, branchName)
	if err != nil {
		return nil, err
	}
	if branch == nil {
		return nil, domain.ErrNotFound
	}
	list, err := uc.repo.ListByBranch(branch.ID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.IngredientResponse, 0, len(list))
	for _, ing := range list {
		items = append(items, *toIngredientResponse(ing))
	}
	return items, nil
}

// Update actualiza nombre, unidad y costo de un ingrediente.
func (uc *IngredientUseCase) Update(id string, in dto.CreateIngredientRequest) (*dto.IngredientResponse, error) {
	ing, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if ing == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != "" {
		ing.Name = in.Name
	}
	if in.Unit != "" {
		if !entity.ValidUnit(in.Unit) {
			return nil, domain.ErrInvalidInput
		}
		ing.Unit = in.Unit
	}
	if in.Cost.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if !in.Cost.IsZero() {
		ing.Cost = in.Cost
	}
	ing.UpdatedAt = time.Now()
	if err := uc.repo.Update(ing); err != nil {
		return nil, err
	}
	return toIngredientResponse(ing), nil
}

// UpdateStock fija el stock actual del ingrediente (no negativo).
func (uc *IngredientUseCase) UpdateStock(id string, stock decimal.Decimal) (*dto.IngredientResponse, error) {
	if stock.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	ing, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if ing == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.repo.UpdateStock(id, stock); err != nil {
		return nil, err
	}
	ing.CurrentStock = stock
	return toIngredientResponse(ing), nil
}

// Delete elimina un ingrediente de la sucursal.
func (uc *IngredientUseCase) Delete(id string) error {
	return uc.repo.Delete(id)
}

func toIngredientResponse(ing *entity.Ingredient) *dto.IngredientResponse {
	return &dto.IngredientResponse{
		ID:           ing.ID,
		BranchID:     ing.BranchID,
		Name:         ing.Name,
		Unit:         ing.Unit,
		CurrentStock: ing.CurrentStock,
		Cost:         ing.Cost,
		CreatedAt:    ing.CreatedAt,
		UpdatedAt:    ing.UpdatedAt,
	}
}
