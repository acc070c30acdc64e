package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecipeItemDTO renglón de receta: ingrediente y cantidad que consume el
// producto.
type RecipeItemDTO struct {
	IngredientID string          `json:"ingredient_id"`
	Quantity     decimal.Decimal `json:"quantity"`
}

// CreateProductRequest entrada para crear/editar un producto del menú.
// ImageURL es la URL devuelta por el widget de subida; nunca el archivo.
type CreateProductRequest struct {
	BranchID    string          `json:"branch_id"`
	BranchName  string          `json:"nameBranch"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"image_url"`
	Recipe      []RecipeItemDTO `json:"recipe"`
}

// UpdateRecipeRequest entrada para PUT /products/:id/recipe.
type UpdateRecipeRequest struct {
	Recipe []RecipeItemDTO `json:"recipe"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID          string          `json:"id"`
	BranchID    string          `json:"branch_id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"image_url,omitempty"`
	Recipe      []RecipeItemDTO `json:"recipe,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
