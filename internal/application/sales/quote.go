package sales

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Restaurante-api/internal/application/dto"
)

// Regla de descuento del día: los jueves se aplica 4% automático.
const (
	thursdayDiscountPct = 4
	thursdayMessage     = "¡Hoy es jueves! Tienes un descuento del 4% en tu compra."
)

var oneHundred = decimal.NewFromInt(100)

// DiscountFor devuelve el porcentaje de descuento vigente para la fecha dada.
// Se evalúa una sola vez al armar la cotización, no en vivo: una venta armada
// antes de medianoche del miércoles no toma el descuento del jueves.
func DiscountFor(at time.Time) decimal.Decimal {
	if at.Weekday() == time.Thursday {
		return decimal.NewFromInt(thursdayDiscountPct)
	}
	return decimal.Zero
}

// Quote calcula los totales de la venta: subtotal = Σ precio×cantidad,
// descuento como porcentaje del subtotal, y total redondeado a 2 decimales.
// El subtotal y el monto de descuento se reportan aparte, sin redondeo
// intermedio.
func Quote(items []dto.SaleItemDTO, at time.Time) dto.QuoteResponse {
	subtotal := decimal.Zero
	for _, it := range items {
		subtotal = subtotal.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	discount := DiscountFor(at)
	discountAmount := subtotal.Mul(discount).Div(oneHundred)
	total := subtotal.Sub(discountAmount).Round(2)

	q := dto.QuoteResponse{
		Subtotal:       subtotal,
		Discount:       discount,
		DiscountAmount: discountAmount,
		Total:          total,
	}
	if discount.IsPositive() {
		q.DiscountMessage = thursdayMessage
	}
	return q
}
