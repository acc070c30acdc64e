package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleItemDTO renglón de la venta; la identidad del renglón es product_id.
type SaleItemDTO struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name,omitempty"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

// RegisterSaleRequest entrada para registrar una venta.
type RegisterSaleRequest struct {
	BranchID   string        `json:"branch_id"`
	BranchName string        `json:"nameBranch"`
	ClientName string        `json:"clientName"`
	ClientCI   string        `json:"clientCI"`
	Items      []SaleItemDTO `json:"products"`
}

// QuoteResponse totales calculados para el formulario de venta: subtotal sin
// redondear, descuento del día y total con dos decimales.
type QuoteResponse struct {
	Subtotal        decimal.Decimal `json:"subtotal"`
	Discount        decimal.Decimal `json:"discount"` // porcentaje
	DiscountAmount  decimal.Decimal `json:"discountAmount"`
	Total           decimal.Decimal `json:"total"`
	DiscountMessage string          `json:"discountMessage,omitempty"`
}

// SaleResponse salida de una venta.
type SaleResponse struct {
	ID         string          `json:"id"`
	BranchID   string          `json:"branch_id"`
	ClientName string          `json:"clientName"`
	ClientCI   string          `json:"clientCI"`
	Items      []SaleItemDTO   `json:"products"`
	Discount   decimal.Decimal `json:"discount"`
	Total      decimal.Decimal `json:"total"`
	SaleDate   time.Time       `json:"saleDate"`
	Status     string          `json:"status"`
}

// AdvanceSaleStatusRequest entrada para cambiar el estado de una venta. Las
// transiciones se validan en el servidor.
type AdvanceSaleStatusRequest struct {
	Status string `json:"status"`
}

// AddToCartRequest entrada para agregar un producto al carrito del cliente.
type AddToCartRequest struct {
	ProductID string `json:"productId"`
}

// UpdateCartItemRequest entrada para fijar la cantidad de un renglón del
// carrito; cantidad cero elimina el renglón.
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// CartItemDTO renglón del carrito.
type CartItemDTO struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	ImageURL  string          `json:"image_url,omitempty"`
}

// CartResponse carrito completo con el conteo de unidades para el badge del
// header.
type CartResponse struct {
	Items []CartItemDTO `json:"items"`
	Count int           `json:"count"`
}
