package auth

import (
	"context"
	"time"
)

// TokenStore es el puerto del almacén de refresh tokens: tokens opacos con TTL
// que se rotan en cada refresh. Consume elimina el token al leerlo, de modo
// que un refresh token usado dos veces falla la segunda vez.
type TokenStore interface {
	Save(ctx context.Context, token, userID string, ttl time.Duration) error
	Consume(ctx context.Context, token string) (userID string, err error)
	Revoke(ctx context.Context, token string) error
}
