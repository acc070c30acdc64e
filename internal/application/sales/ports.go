package sales

import (
	"context"
	"time"

	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
)

// CartStore es el puerto del carrito persistido por usuario (rol client).
type CartStore interface {
	Get(ctx context.Context, userID string) (*entity.Cart, error)
	Save(ctx context.Context, cart *entity.Cart, ttl time.Duration) error
	Clear(ctx context.Context, userID string) error
}

// ReceiptPDFGenerator genera el comprobante imprimible de una venta.
type ReceiptPDFGenerator interface {
	GenerateReceiptPDF(ctx context.Context, sale *entity.Sale, branch *entity.Branch) ([]byte, error)
}
