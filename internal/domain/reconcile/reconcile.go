// Package reconcile implementa la aritmética de conciliación del inventario
// diario (servicio de dominio): normalización de signo de movimientos,
// recálculo del stock final y agregación de movimientos por tipo.
package reconcile

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
)

// NormalizeQuantity aplica la regla de signo por tipo de movimiento: loss se
// almacena siempre negativo (−|q|); los demás tipos conservan el signo
// ingresado.
func NormalizeQuantity(movementType string, quantity decimal.Decimal) decimal.Decimal {
	if movementType == entity.MovementTypeLoss {
		return quantity.Abs().Neg()
	}
	return quantity
}

// FinalStock calcula InitialStock + Σ movements.Quantity.
func FinalStock(initialStock decimal.Decimal, movements []entity.Movement) decimal.Decimal {
	total := initialStock
	for _, mov := range movements {
		total = total.Add(mov.Quantity)
	}
	return total
}

// Recalculate vuelve a derivar el FinalStock del renglón a partir de su stock
// inicial y sus movimientos. Debe invocarse después de cada alta o baja de
// movimiento.
func Recalculate(line *entity.InventoryLine) {
	line.FinalStock = FinalStock(line.InitialStock, line.Movements)
}

// AddMovement agrega un movimiento al renglón con la cantidad ya normalizada
// y recalcula el stock final.
func AddMovement(line *entity.InventoryLine, mov entity.Movement) {
	mov.Quantity = NormalizeQuantity(mov.Type, mov.Quantity)
	line.Movements = append(line.Movements, mov)
	Recalculate(line)
}

// RemoveMovement elimina el movimiento en la posición indicada y recalcula el
// stock final. Un índice fuera de rango es un no-op: no altera FinalStock.
func RemoveMovement(line *entity.InventoryLine, index int) {
	if index < 0 || index >= len(line.Movements) {
		return
	}
	line.Movements = append(line.Movements[:index], line.Movements[index+1:]...)
	Recalculate(line)
}

// Summary agrega los movimientos por tipo para las vistas de detalle.
type Summary struct {
	Sales     decimal.Decimal
	Purchases decimal.Decimal
	Losses    decimal.Decimal
	// Adjustments solo acumula los ajustes con cantidad negativa; los ajustes
	// positivos quedan en el libro pero fuera de esta cifra.
	Adjustments decimal.Decimal
}

// Summarize suma los valores absolutos por tipo de movimiento.
func Summarize(movements []entity.Movement) Summary {
	s := Summary{
		Sales:       decimal.Zero,
		Purchases:   decimal.Zero,
		Losses:      decimal.Zero,
		Adjustments: decimal.Zero,
	}
	for _, mov := range movements {
		qty := mov.Quantity.Abs()
		switch mov.Type {
		case entity.MovementTypeSale:
			s.Sales = s.Sales.Add(qty)
		case entity.MovementTypePurchase:
			s.Purchases = s.Purchases.Add(qty)
		case entity.MovementTypeLoss:
			s.Losses = s.Losses.Add(qty)
		case entity.MovementTypeAdjustment:
			if mov.Quantity.IsNegative() {
				s.Adjustments = s.Adjustments.Add(qty)
			}
		}
	}
	return s
}
