package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/Restaurante-api/internal/application/sales"
	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
)

var _ sales.CartStore = (*CartStore)(nil)

const cartPrefix = "cart:"

// CartStore persiste el carrito de cada cliente como JSON en Redis.
type CartStore struct {
	client *redis.Client
}

// NewCartStore construye el almacén de carritos.
func NewCartStore(client *redis.Client) *CartStore {
	return &CartStore{client: client}
}

// Get devuelve el carrito del usuario; si no existe, uno vacío.
func (s *CartStore) Get(ctx context.Context, userID string) (*entity.Cart, error) {
	data, err := s.client.Get(ctx, cartPrefix+userID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return &entity.Cart{UserID: userID}, nil
		}
		return nil, fmt.Errorf("get cart: %w", err)
	}
	var cart entity.Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		return nil, fmt.Errorf("unmarshal cart: %w", err)
	}
	cart.UserID = userID
	return &cart, nil
}

// Save guarda el carrito completo con su TTL.
func (s *CartStore) Save(ctx context.Context, cart *entity.Cart, ttl time.Duration) error {
	data, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("marshal cart: %w", err)
	}
	if err := s.client.Set(ctx, cartPrefix+cart.UserID, data, ttl).Err(); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}

// Clear elimina el carrito del usuario.
func (s *CartStore) Clear(ctx context.Context, userID string) error {
	if err := s.client.Del(ctx, cartPrefix+userID).Err(); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}
