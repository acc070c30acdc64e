package entity

import "github.com/shopspring/decimal"

// CartItem es un renglón del carrito de un cliente. El emparejamiento de
// renglones se hace por ProductID: dos productos distintos con el mismo nombre
// nunca se fusionan.
type CartItem struct {
	ProductID string
	Name      string
	Quantity  int
	Price     decimal.Decimal
	ImageURL  string
}

// Cart es el carrito persistido de un usuario con rol client.
type Cart struct {
	UserID string
	Items  []CartItem
}

// Count devuelve el número total de unidades en el carrito.
func (c *Cart) Count() int {
	total := 0
	for _, it := range c.Items {
		total += it.Quantity
	}
	return total
}

// Add incrementa en uno la cantidad del producto si ya está presente, o
// agrega un renglón nuevo con cantidad 1.
func (c *Cart) Add(item CartItem) {
	for i := range c.Items {
		if c.Items[i].ProductID == item.ProductID {
			c.Items[i].Quantity++
			return
		}
	}
	item.Quantity = 1
	c.Items = append(c.Items, item)
}

// SetQuantity fija la cantidad del renglón del producto. Cantidad cero o
// negativa elimina el renglón; un producto ausente es un no-op.
func (c *Cart) SetQuantity(productID string, quantity int) {
	if quantity <= 0 {
		c.Remove(productID)
		return
	}
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items[i].Quantity = quantity
			return
		}
	}
}

// Remove elimina el renglón del producto indicado; si no existe es un no-op.
func (c *Cart) Remove(productID string) {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return
		}
	}
}
