package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Restaurante-api/internal/application/dto"
	"github.com/jhoicas/Restaurante-api/internal/domain"
	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
	"github.com/jhoicas/Restaurante-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos del menú, incluida la
// receta (ingredientes que consume cada producto).
type ProductUseCase struct {
	repo       repository.ProductRepository
	branchRepo repository.BranchRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, branchRepo repository.BranchRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo, branchRepo: branchRepo}
}

func (uc *ProductUseCase) resolveBranch(branchID, branchName string) (*entity.Branch, error) {
	if branchID != "" {
		return uc.branchRepo.GetByID(branchID)
	}
	if branchName != "" {
		return uc.branchRepo.GetByName(branchName)
	}
	return nil, domain.ErrInvalidInput
}

// Create crea un producto en una sucursal.
func (uc *ProductUseCase) Create(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Name == "" || in.Price.IsNegative() {
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
	product := &entity.Product{
		ID:          uuid.New().String(),
		BranchID:    branch.ID,
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		ImageURL:    in.ImageURL,
		Recipe:      toRecipe(in.Recipe),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// ListByBranch lista los productos de una sucursal con paginación.
func (uc *ProductUseCase) ListByBranch(branchID, branchName string, page dto.PageRequest) ([]dto.ProductResponse, error) {
	branch, err := uc.resolveBranch(branchID, branchName)
	if err != nil {
		return nil, err
	}
	if branch == nil {
		return nil, domain.ErrNotFound
	}
	page.DefaultPage()
	list, err := uc.repo.ListByBranch(branch.ID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return items, nil
}

// Update actualiza un producto.
func (uc *ProductUseCase) Update(id string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != "" {
		product.Name = in.Name
	}
	if in.Description != "" {
		product.Description = in.Description
	}
	if in.Price.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if !in.Price.IsZero() {
		product.Price = in.Price
	}
	if in.ImageURL != "" {
		product.ImageURL = in.ImageURL
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// UpdateRecipe reemplaza la receta completa del producto.
func (uc *ProductUseCase) UpdateRecipe(id string, in dto.UpdateRecipeRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	for _, item := range in.Recipe {
		if item.IngredientID == "" || !item.Quantity.IsPositive() {
			return nil, domain.ErrInvalidInput
		}
	}
	recipe := toRecipe(in.Recipe)
	if err := uc.repo.UpdateRecipe(id, recipe); err != nil {
		return nil, err
	}
	product.Recipe = recipe
	return toProductResponse(product), nil
}

// Delete elimina un producto.
func (uc *ProductUseCase) Delete(id string) error {
	return uc.repo.Delete(id)
}

func toRecipe(items []dto.RecipeItemDTO) []entity.RecipeItem {
	out := make([]entity.RecipeItem, 0, len(items))
	for _, it := range items {
		out = append(out, entity.RecipeItem{IngredientID: it.IngredientID, Quantity: it.Quantity})
	}
	return out
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	resp := &dto.ProductResponse{
		ID:          p.ID,
		BranchID:    p.BranchID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		ImageURL:    p.ImageURL,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	for _, it := range p.Recipe {
		resp.Recipe = append(resp.Recipe, dto.RecipeItemDTO{IngredientID: it.IngredientID, Quantity: it.Quantity})
	}
	return resp
}
