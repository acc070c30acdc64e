package repository

import "github.com/jhoicas/Restaurante-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	ListByBranch(branchID string, limit, offset int) ([]*entity.Product, error)
	Update(product *entity.Product) error
	UpdateRecipe(productID string, recipe []entity.RecipeItem) error
	Delete(id string) error
}
