package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
)

// IngredientRepository define el puerto de persistencia para Ingredient (DIP).
// Se usa tanto con el pool como dentro de transacciones: GetForUpdate bloquea
// la fila (SELECT FOR UPDATE) para la conciliación de stock al cierre.
type IngredientRepository interface {
	Create(ingredient *entity.Ingredient) error
	GetByID(id string) (*entity.Ingredient, error)
	GetForUpdate(id string) (*entity.Ingredient, error)
	ListByBranch(branchID string) ([]*entity.Ingredient, error)
	Update(ingredient *entity.Ingredient) error
	UpdateStock(id string, stock decimal.Decimal) error
	Delete(id string) error
}
