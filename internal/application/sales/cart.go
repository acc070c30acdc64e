package sales

import (
	"context"
	"time"

	"github.com/jhoicas/Restaurante-api/internal/application/dto"
	"github.com/jhoicas/Restaurante-api/internal/domain"
	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
	"github.com/jhoicas/Restaurante-api/internal/domain/repository"
)

// cartTTL vida del carrito persistido; cada escritura la renueva.
const cartTTL = 7 * 24 * time.Hour

// CartUseCase maneja el carrito por usuario (rol client). Los renglones se
// emparejan siempre por product_id.
type CartUseCase struct {
	store       CartStore
	productRepo repository.ProductRepository
}

// NewCartUseCase construye el caso de uso del carrito.
func NewCartUseCase(store CartStore, productRepo repository.ProductRepository) *CartUseCase {
	return &CartUseCase{store: store, productRepo: productRepo}
}

// Get devuelve el carrito del usuario (vacío si no existe).
func (uc *CartUseCase) Get(ctx context.Context, userID string) (*dto.CartResponse, error) {
	cart, err := uc.store.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		cart = &entity.Cart{UserID: userID}
	}
	return toCartResponse(cart), nil
}

// Add agrega el producto al carrito: incrementa en uno si ya está, o crea el
// renglón con cantidad 1. El precio y nombre se toman del catálogo.
func (uc *CartUseCase) Add(ctx context.Context, userID, productID string) (*dto.CartResponse, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	cart, err := uc.store.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		cart = &entity.Cart{UserID: userID}
	}
	cart.Add(entity.CartItem{
		ProductID: product.ID,
		Name:      product.Name,
		Price:     product.Price,
		ImageURL:  product.ImageURL,
	})
	if err := uc.store.Save(ctx, cart, cartTTL); err != nil {
		return nil, err
	}
	return toCartResponse(cart), nil
}

// SetQuantity fija la cantidad del renglón; cero o negativa lo elimina.
func (uc *CartUseCase) SetQuantity(ctx context.Context, userID, productID string, quantity int) (*dto.CartResponse, error) {
	cart, err := uc.store.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		cart = &entity.Cart{UserID: userID}
	}
	cart.SetQuantity(productID, quantity)
	if err := uc.store.Save(ctx, cart, cartTTL); err != nil {
		return nil, err
	}
	return toCartResponse(cart), nil
}

// Remove elimina el renglón del producto; si no existe es un no-op.
func (uc *CartUseCase) Remove(ctx context.Context, userID, productID string) (*dto.CartResponse, error) {
	cart, err := uc.store.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		cart = &entity.Cart{UserID: userID}
	}
	cart.Remove(productID)
	if err := uc.store.Save(ctx, cart, cartTTL); err != nil {
		return nil, err
	}
	return toCartResponse(cart), nil
}

// Clear vacía el carrito del usuario.
func (uc *CartUseCase) Clear(ctx context.Context, userID string) error {
	return uc.store.Clear(ctx, userID)
}

func toCartResponse(cart *entity.Cart) *dto.CartResponse {
	resp := &dto.CartResponse{Items: []dto.CartItemDTO{}, Count: cart.Count()}
	for _, it := range cart.Items {
		resp.Items = append(resp.Items, dto.CartItemDTO{
			ProductID: it.ProductID,
			Name:      it.Name,
			Quantity:  it.Quantity,
			Price:     it.Price,
			ImageURL:  it.ImageURL,
		})
	}
	return resp
}
