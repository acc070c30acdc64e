package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Restaurante-api/internal/application/auth"
	"github.com/jhoicas/Restaurante-api/internal/application/dto"
	"github.com/jhoicas/Restaurante-api/internal/domain"
	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
	"github.com/jhoicas/Restaurante-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeUserRepo struct {
	byID    map[string]*entity.User
	byEmail map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:    make(map[string]*entity.User),
		byEmail: make(map[string]*entity.User),
	}
}

func (r *fakeUserRepo) Create(user *entity.User) error {
	if _, ok := r.byEmail[user.Email]; ok {
		return domain.ErrEmailAlreadyExists
	}
	cp := *user
	r.byID[user.ID] = &cp
	r.byEmail[user.Email] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(email string) (*entity.User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) Update(user *entity.User) error {
	existing, ok := r.byID[user.ID]
	if !ok {
		return domain.ErrUserNotFound
	}
	delete(r.byEmail, existing.Email)
	cp := *user
	r.byID[user.ID] = &cp
	r.byEmail[user.Email] = &cp
	return nil
}

// fakeTokenStore implementa el almacén de refresh tokens de un solo uso.
type fakeTokenStore struct {
	byToken map[string]string // token → userID
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{byToken: make(map[string]string)}
}

func (s *fakeTokenStore) Save(ctx context.Context, token, userID string, ttl time.Duration) error {
	s.byToken[token] = userID
	return nil
}

func (s *fakeTokenStore) Consume(ctx context.Context, token string) (string, error) {
	userID, ok := s.byToken[token]
	if !ok {
		return "", domain.ErrRefreshToken
	}
	delete(s.byToken, token)
	return userID, nil
}

func (s *fakeTokenStore) Revoke(ctx context.Context, token string) error {
	delete(s.byToken, token)
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

var testCfg = auth.JWTConfig{
	Secret:        "test-secret-key-for-unit-tests",
	AccessMinutes: 15,
	RefreshHours:  72,
	Issuer:        "restaurante-api-test",
}

func newAuthFixture(t *testing.T) (*auth.AuthUseCase, *fakeUserRepo, *fakeTokenStore) {
	t.Helper()
	users := newFakeUserRepo()
	tokens := newFakeTokenStore()
	uc := auth.NewAuthUseCase(users, tokens, testCfg, logger.Nop())
	return uc, users, tokens
}

func registerAndLogin(t *testing.T, uc *auth.AuthUseCase) *dto.LoginResponse {
	t.Helper()
	_, err := uc.Register(dto.RegisterRequest{
		Name:     "María Pérez",
		Email:    "maria@example.com",
		Password: "secreta-123",
		Role:     entity.RoleWorker,
	})
	require.NoError(t, err)

	pair, err := uc.Login(context.Background(), dto.LoginRequest{
		Email:    "maria@example.com",
		Password: "secreta-123",
	})
	require.NoError(t, err)
	return pair
}

// ──────────────────────────────────────────────────────────────────────────────
// Register / Login
// ──────────────────────────────────────────────────────────────────────────────

func TestRegister_CreaUsuarioSinExponerPassword(t *testing.T) {
	uc, users, _ := newAuthFixture(t)

	resp, err := uc.Register(dto.RegisterRequest{
		Name:     "María",
		Email:    "maria@example.com",
		Password: "secreta-123",
		Role:     entity.RoleAdmin,
	})
	require.NoError(t, err)
	assert.Equal(t, "maria@example.com", resp.Email)
	assert.Equal(t, entity.RoleAdmin, resp.Role)
	assert.Equal(t, "active", resp.Status)

	// El hash nunca es el password plano.
	stored, _ := users.GetByEmail("maria@example.com")
	assert.NotEqual(t, "secreta-123", stored.PasswordHash)
	assert.NotEmpty(t, stored.PasswordHash)
}

func TestRegister_EmailDuplicadoFalla(t *testing.T) {
	uc, _, _ := newAuthFixture(t)
	_, err := uc.Register(dto.RegisterRequest{Email: "x@example.com", Password: "12345678"})
	require.NoError(t, err)

	_, err = uc.Register(dto.RegisterRequest{Email: "x@example.com", Password: "otra-cosa"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegister_RolPorDefectoEsClient(t *testing.T) {
	uc, _, _ := newAuthFixture(t)
	resp, err := uc.Register(dto.RegisterRequest{Email: "c@example.com", Password: "12345678"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleClient, resp.Role)
}

func TestRegister_RolInvalidoFalla(t *testing.T) {
	uc, _, _ := newAuthFixture(t)
	_, err := uc.Register(dto.RegisterRequest{
		Email: "c@example.com", Password: "12345678", Role: "superuser",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLogin_EmiteParDeTokens(t *testing.T) {
	uc, _, tokens := newAuthFixture(t)
	pair := registerAndLogin(t, uc)

	assert.NotEmpty(t, pair.Token)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.Len(t, pair.RefreshToken, 64, "refresh token opaco de 32 bytes en hex")
	assert.Equal(t, "maria@example.com", pair.User.Email)

	// El refresh quedó almacenado a nombre del usuario.
	userID, err := tokens.Consume(context.Background(), pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, pair.User.ID, userID)
}

func TestLogin_PasswordIncorrectoFalla(t *testing.T) {
	uc, _, _ := newAuthFixture(t)
	registerAndLogin(t, uc)

	_, err := uc.Login(context.Background(), dto.LoginRequest{
		Email: "maria@example.com", Password: "equivocada",
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UsuarioInexistenteFalla(t *testing.T) {
	uc, _, _ := newAuthFixture(t)
	_, err := uc.Login(context.Background(), dto.LoginRequest{
		Email: "nadie@example.com", Password: "12345678",
	})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestLogin_UsuarioInactivoForbidden(t *testing.T) {
	uc, users, _ := newAuthFixture(t)
	pair := registerAndLogin(t, uc)

	stored, _ := users.GetByID(pair.User.ID)
	stored.Status = "inactive"
	require.NoError(t, users.Update(stored))

	_, err := uc.Login(context.Background(), dto.LoginRequest{
		Email: "maria@example.com", Password: "secreta-123",
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// ──────────────────────────────────────────────────────────────────────────────
// Verify / Refresh — rotación y un solo uso
// ──────────────────────────────────────────────────────────────────────────────

func TestVerify_TokenVigenteDevuelveUsuario(t *testing.T) {
	uc, _, _ := newAuthFixture(t)
	pair := registerAndLogin(t, uc)

	user, err := uc.Verify(pair.Token)
	require.NoError(t, err)
	assert.Equal(t, pair.User.ID, user.ID)
}

func TestVerify_TokenCorruptoUnauthorized(t *testing.T) {
	uc, _, _ := newAuthFixture(t)
	_, err := uc.Verify("no.es.un.jwt")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestRefresh_RotaElParCompleto(t *testing.T) {
	uc, _, _ := newAuthFixture(t)
	pair := registerAndLogin(t, uc)

	rotated, err := uc.Refresh(context.Background(), pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, rotated.Token)
	assert.NotEqual(t, pair.RefreshToken, rotated.RefreshToken,
		"cada refresh emite un refresh token nuevo")
	assert.Equal(t, pair.User.ID, rotated.User.ID)
}

func TestRefresh_TokenUsadoDosVecesFalla(t *testing.T) {
	uc, _, _ := newAuthFixture(t)
	pair := registerAndLogin(t, uc)

	_, err := uc.Refresh(context.Background(), pair.RefreshToken)
	require.NoError(t, err)

	// El mismo refresh token ya fue consumido: la segunda vez falla.
	_, err = uc.Refresh(context.Background(), pair.RefreshToken)
	assert.ErrorIs(t, err, domain.ErrRefreshToken)
}

func TestRefresh_TokenDesconocidoOVacioFalla(t *testing.T) {
	uc, _, _ := newAuthFixture(t)
	ctx := context.Background()

	_, err := uc.Refresh(ctx, "")
	assert.ErrorIs(t, err, domain.ErrRefreshToken)

	_, err = uc.Refresh(ctx, "deadbeef")
	assert.ErrorIs(t, err, domain.ErrRefreshToken)
}

// ──────────────────────────────────────────────────────────────────────────────
// Rehydrate — máquina de estados de arranque del cliente
// ──────────────────────────────────────────────────────────────────────────────

func TestRehydrate_SinTokensNoAutenticado(t *testing.T) {
	uc, _, _ := newAuthFixture(t)
	sess := uc.Rehydrate(context.Background(), "", "")
	assert.False(t, sess.IsAuthenticated)
	assert.Empty(t, sess.Token)
	assert.Nil(t, sess.User)
}

func TestRehydrate_TokenVigenteConservaElPar(t *testing.T) {
	uc, _, _ := newAuthFixture(t)
	pair := registerAndLogin(t, uc)

	sess := uc.Rehydrate(context.Background(), pair.Token, pair.RefreshToken)
	require.True(t, sess.IsAuthenticated)
	assert.Equal(t, pair.Token, sess.Token, "token vigente: no se rota nada")
	assert.Equal(t, pair.RefreshToken, sess.RefreshToken)
	require.NotNil(t, sess.User)
	assert.Equal(t, pair.User.ID, sess.User.ID)
}

func TestRehydrate_TokenInvalidoConRefreshValidoRota(t *testing.T) {
	uc, _, _ := newAuthFixture(t)
	pair := registerAndLogin(t, uc)

	sess := uc.Rehydrate(context.Background(), "token.vencido.x", pair.RefreshToken)
	require.True(t, sess.IsAuthenticated)
	assert.NotEmpty(t, sess.Token)
	assert.NotEqual(t, "token.vencido.x", sess.Token)
	assert.NotEqual(t, pair.RefreshToken, sess.RefreshToken, "el par completo se rota")
}

func TestRehydrate_AmbosInvalidosRevocaYLimpia(t *testing.T) {
	uc, _, tokens := newAuthFixture(t)
	pair := registerAndLogin(t, uc)

	// Consumimos el refresh por fuera para simular un token ya usado.
	_, err := tokens.Consume(context.Background(), pair.RefreshToken)
	require.NoError(t, err)

	sess := uc.Rehydrate(context.Background(), "token.vencido.x", pair.RefreshToken)
	assert.False(t, sess.IsAuthenticated)
	assert.Empty(t, sess.Token)
	assert.Empty(t, sess.RefreshToken)
	assert.Nil(t, sess.User)
}

func TestRehydrate_SoloRefreshValidoAutentica(t *testing.T) {
	uc, _, _ := newAuthFixture(t)
	pair := registerAndLogin(t, uc)

	sess := uc.Rehydrate(context.Background(), "", pair.RefreshToken)
	require.True(t, sess.IsAuthenticated)
	assert.NotEmpty(t, sess.Token)
}

// ──────────────────────────────────────────────────────────────────────────────
// Logout / UpdateUser
// ──────────────────────────────────────────────────────────────────────────────

func TestLogout_RevocaElRefreshToken(t *testing.T) {
	uc, _, _ := newAuthFixture(t)
	pair := registerAndLogin(t, uc)

	uc.Logout(context.Background(), pair.RefreshToken)

	_, err := uc.Refresh(context.Background(), pair.RefreshToken)
	assert.ErrorIs(t, err, domain.ErrRefreshToken, "después del logout el refresh no sirve")
}

func TestLogout_SinTokenEsNoOp(t *testing.T) {
	uc, _, _ := newAuthFixture(t)
	uc.Logout(context.Background(), "") // no debe entrar en pánico ni fallar
}

func TestUpdateUser_ActualizaYPersiste(t *testing.T) {
	uc, users, _ := newAuthFixture(t)
	pair := registerAndLogin(t, uc)

	name := "María Inés Pérez"
	phone := "+591 70000000"
	resp, err := uc.UpdateUser(pair.User.ID, dto.UpdateUserRequest{
		Name:  &name,
		Phone: &phone,
	})
	require.NoError(t, err)
	assert.Equal(t, name, resp.Name)
	require.NotNil(t, resp.Phone)
	assert.Equal(t, phone, *resp.Phone)

	// El cambio llegó al repositorio, no solo a la respuesta.
	stored, _ := users.GetByID(pair.User.ID)
	assert.Equal(t, name, stored.Name)
}

func TestUpdateUser_NombreVacioNoPisaElActual(t *testing.T) {
	uc, _, _ := newAuthFixture(t)
	pair := registerAndLogin(t, uc)

	empty := ""
	resp, err := uc.UpdateUser(pair.User.ID, dto.UpdateUserRequest{Name: &empty})
	require.NoError(t, err)
	assert.Equal(t, "María Pérez", resp.Name)
}

func TestUpdateUser_UsuarioInexistenteFalla(t *testing.T) {
	uc, _, _ := newAuthFixture(t)
	name := "X"
	_, err := uc.UpdateUser("no-such-id", dto.UpdateUserRequest{Name: &name})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
