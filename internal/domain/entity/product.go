package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecipeItem liga un producto con un ingrediente y la cantidad que consume.
type RecipeItem struct {
	IngredientID string
	Quantity     decimal.Decimal
}

// Product representa un producto del menú de una sucursal.
// ImageURL apunta al hosting externo de imágenes; nunca se almacena el archivo.
type Product struct {
	ID          string
	BranchID    string
	Name        string
	Description string
	Price       decimal.Decimal
	ImageURL    string
	Recipe      []RecipeItem
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
