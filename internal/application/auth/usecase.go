package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Restaurante-api/internal/application/dto"
	"github.com/jhoicas/Restaurante-api/internal/domain"
	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
	"github.com/jhoicas/Restaurante-api/internal/domain/repository"
	"github.com/jhoicas/Restaurante-api/pkg/jwt"
	"github.com/jhoicas/Restaurante-api/pkg/logger"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret        string
	AccessMinutes int
	RefreshHours  int
	Issuer        string
}

// AuthUseCase casos de uso del ciclo de sesión: registro, login, verificación,
// refresh con rotación, rehidratación al arranque del cliente y logout.
type AuthUseCase struct {
	userRepo   repository.UserRepository
	tokenStore TokenStore
	jwtCfg     JWTConfig
	log        *logger.Logger
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, tokenStore TokenStore, jwtCfg JWTConfig, log *logger.Logger) *AuthUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &AuthUseCase{userRepo: userRepo, tokenStore: tokenStore, jwtCfg: jwtCfg, log: log}
}

// Register crea un usuario: hashea password con bcrypt y persiste.
// Devuelve ErrEmailAlreadyExists si el email ya existe.
func (uc *AuthUseCase) Register(in dto.RegisterRequest) (*dto.UserResponse, error) {
	existing, _ := uc.userRepo.GetByEmail(in.Email)
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	role := in.Role
	if role == "" {
		role = entity.RoleClient
	}
	if !entity.ValidRole(role) {
		return nil, domain.ErrInvalidInput
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	name := in.Name
	if name == "" {
		name = in.Email
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         role,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// Login verifica email/password y emite el par token + refresh token.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Status != "active" {
		return nil, domain.ErrForbidden
	}
	return uc.issuePair(ctx, user)
}

// Verify valida un token de acceso vigente y devuelve la proyección del
// usuario. Un token expirado o corrupto devuelve ErrUnauthorized: el cliente
// debe pasar por refresh.
func (uc *AuthUseCase) Verify(token string) (*dto.UserResponse, error) {
	userID, _, err := jwt.Parse(uc.jwtCfg.Secret, token)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	user, err := uc.userRepo.GetByID(userID)
	if err != nil || user == nil {
		return nil, domain.ErrUnauthorized
	}
	return toUserResponse(user), nil
}

// Refresh consume el refresh token almacenado y rota el par completo. Un
// token inválido, expirado o ya usado devuelve ErrRefreshToken.
func (uc *AuthUseCase) Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error) {
	if refreshToken == "" {
		return nil, domain.ErrRefreshToken
	}
	userID, err := uc.tokenStore.Consume(ctx, refreshToken)
	if err != nil || userID == "" {
		return nil, domain.ErrRefreshToken
	}
	user, err := uc.userRepo.GetByID(userID)
	if err != nil || user == nil {
		return nil, domain.ErrRefreshToken
	}
	if user.Status != "active" {
		return nil, domain.ErrForbidden
	}
	return uc.issuePair(ctx, user)
}

// Rehydrate implementa la verificación de arranque del cliente:
//
//	sin tokens            → no autenticado
//	token vigente         → autenticado, se conservan ambos tokens
//	token vencido + refresh válido → par nuevo, autenticado
//	cualquier otro fallo  → no autenticado, sesión revocada
//
// Cualquier error de validación o de infraestructura se trata igual que un
// refresh fallido: logout completo.
func (uc *AuthUseCase) Rehydrate(ctx context.Context, token, refreshToken string) *dto.SessionResponse {
	if token == "" && refreshToken == "" {
		return &dto.SessionResponse{IsAuthenticated: false}
	}
	if token != "" {
		if user, err := uc.Verify(token); err == nil {
			return &dto.SessionResponse{
				IsAuthenticated: true,
				Token:           token,
				RefreshToken:    refreshToken,
				User:            user,
			}
		}
	}
	pair, err := uc.Refresh(ctx, refreshToken)
	if err != nil {
		// Refresh fallido: se limpia lo que quede de la sesión persistida.
		if refreshToken != "" {
			if revokeErr := uc.tokenStore.Revoke(ctx, refreshToken); revokeErr != nil {
				uc.log.Warn().Err(revokeErr).Msg("revocar refresh token tras fallo de rehidratación")
			}
		}
		return &dto.SessionResponse{IsAuthenticated: false}
	}
	return &dto.SessionResponse{
		IsAuthenticated: true,
		Token:           pair.Token,
		RefreshToken:    pair.RefreshToken,
		User:            &pair.User,
	}
}

// Logout revoca el refresh token. Best-effort: los fallos se registran pero
// no se devuelven al cliente.
func (uc *AuthUseCase) Logout(ctx context.Context, refreshToken string) {
	if refreshToken == "" {
		return
	}
	if err := uc.tokenStore.Revoke(ctx, refreshToken); err != nil {
		uc.log.Warn().Err(err).Msg("revocar refresh token en logout")
	}
}

// UpdateUser reemplaza los campos editables del perfil y persiste el cambio.
func (uc *AuthUseCase) UpdateUser(userID string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if in.Name != nil && *in.Name != "" {
		user.Name = *in.Name
	}
	if in.Phone != nil {
		user.Phone = in.Phone
	}
	if in.University != nil {
		user.University = in.University
	}
	if in.Position != nil {
		user.Position = in.Position
	}
	user.UpdatedAt = time.Now()
	if err := uc.userRepo.Update(user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// issuePair genera el JWT de acceso y un refresh token opaco nuevo, y guarda
// este último con su TTL.
func (uc *AuthUseCase) issuePair(ctx context.Context, user *entity.User) (*dto.LoginResponse, error) {
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.AccessMinutes)
	if err != nil {
		return nil, err
	}
	refresh, err := newOpaqueToken()
	if err != nil {
		return nil, err
	}
	ttl := time.Duration(uc.jwtCfg.RefreshHours) * time.Hour
	if err := uc.tokenStore.Save(ctx, refresh, user.ID, ttl); err != nil {
		return nil, fmt.Errorf("guardar refresh token: %w", err)
	}
	return &dto.LoginResponse{
		Token:        token,
		RefreshToken: refresh,
		User:         *toUserResponse(user),
	}, nil
}

func newOpaqueToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generar refresh token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Role:       u.Role,
		Phone:      u.Phone,
		University: u.University,
		Position:   u.Position,
		Status:     u.Status,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}
