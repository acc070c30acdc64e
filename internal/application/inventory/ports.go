package inventory

import (
	"context"

	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
	"github.com/jhoicas/Restaurante-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para la conciliación de
// stock al cierre del inventario.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		invRepo repository.InventoryRepository,
		ingredientRepo repository.IngredientRepository,
	) error) error
}

// ClosingPDFGenerator genera el reporte imprimible del cierre de inventario.
type ClosingPDFGenerator interface {
	GenerateClosingPDF(ctx context.Context, inv *entity.DailyInventory, branch *entity.Branch) ([]byte, error)
}
