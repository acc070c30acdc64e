package redisstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/Restaurante-api/internal/application/auth"
	"github.com/jhoicas/Restaurante-api/internal/domain"
)

var _ auth.TokenStore = (*TokenStore)(nil)

const refreshPrefix = "refresh:"

// TokenStore almacena refresh tokens opacos en Redis con TTL. La clave es el
// token; el valor, el ID del usuario.
type TokenStore struct {
	client *redis.Client
}

// NewTokenStore construye el almacén de refresh tokens.
func NewTokenStore(client *redis.Client) *TokenStore {
	return &TokenStore{client: client}
}

// Save guarda el token con su TTL.
func (s *TokenStore) Save(ctx context.Context, token, userID string, ttl time.Duration) error {
	if err := s.client.Set(ctx, refreshPrefix+token, userID, ttl).Err(); err != nil {
		return fmt.Errorf("save refresh token: %w", err)
	}
	return nil
}

// Consume lee y elimina el token en una sola operación (GETDEL): un refresh
// token usado dos veces falla la segunda vez.
func (s *TokenStore) Consume(ctx context.Context, token string) (string, error) {
	userID, err := s.client.GetDel(ctx, refreshPrefix+token).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", domain.ErrRefreshToken
		}
		return "", fmt.Errorf("consume refresh token: %w", err)
	}
	return userID, nil
}

// Revoke elimina el token; revocar uno inexistente no es error.
func (s *TokenStore) Revoke(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, refreshPrefix+token).Err(); err != nil {
		return fmt.Errorf("revoke refresh token: %w", err)
	}
	return nil
}
