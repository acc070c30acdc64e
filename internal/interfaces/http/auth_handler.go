package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Restaurante-api/internal/application/auth"
	"github.com/jhoicas/Restaurante-api/internal/application/dto"
	"github.com/jhoicas/Restaurante-api/internal/application/sales"
	"github.com/jhoicas/Restaurante-api/internal/domain"
	"github.com/jhoicas/Restaurante-api/pkg/config"
)

// AuthHandler maneja el ciclo de sesión: registro, login, verificación,
// refresh, rehidratación, logout y perfil.
type AuthHandler struct {
	uc     *auth.AuthUseCase
	carts  *sales.CartUseCase
	cookie config.CookieConfig
	jwtCfg config.JWTConfig
}

// NewAuthHandler construye el handler de auth. carts puede ser nil; si está
// presente, el logout también vacía el carrito del usuario.
func NewAuthHandler(uc *auth.AuthUseCase, carts *sales.CartUseCase, cookie config.CookieConfig, jwtCfg config.JWTConfig) *AuthHandler {
	return &AuthHandler{uc: uc, carts: carts, cookie: cookie, jwtCfg: jwtCfg}
}

// Register godoc
// @Summary      Registrar usuario
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "name, email, password, role opcional"
// @Success      201   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Email == "" || in.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "email y password son requeridos"})
	}
	if len(in.Password) < 8 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "password debe tener al menos 8 caracteres"})
	}
	user, err := h.uc.Register(in)
	if err != nil {
		if errors.Is(err, domain.ErrEmailAlreadyExists) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "EMAIL_EXISTS", Message: "el email ya está registrado"})
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "rol desconocido"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Email == "" || in.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "email y password son requeridos"})
	}
	out, err := h.uc.Login(c.Context(), in)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) || errors.Is(err, domain.ErrUnauthorized) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "credenciales inválidas"})
		}
		if errors.Is(err, domain.ErrForbidden) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "cuenta inactiva"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	h.setSessionCookies(c, out.Token, out.RefreshToken)
	return c.JSON(out)
}

// Verify valida el token de acceso vigente y devuelve el usuario.
// GET /api/auth/verify
func (h *AuthHandler) Verify(c *fiber.Ctx) error {
	token := extractToken(c)
	if token == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token requerido"})
	}
	user, err := h.uc.Verify(token)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
	}
	return c.JSON(user)
}

// Refresh consume el refresh token (body o cookie) y rota el par completo.
// POST /api/auth/refresh-token
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var in dto.RefreshRequest
	_ = c.BodyParser(&in)
	if in.RefreshToken == "" {
		in.RefreshToken = c.Cookies(CookieRefresh)
	}
	out, err := h.uc.Refresh(c.Context(), in.RefreshToken)
	if err != nil {
		h.clearSessionCookies(c)
		if errors.Is(err, domain.ErrForbidden) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "cuenta inactiva"})
		}
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_REFRESH", Message: "refresh token inválido o expirado"})
	}
	h.setSessionCookies(c, out.Token, out.RefreshToken)
	return c.JSON(out)
}

// Session rehidrata la sesión al arrancar el cliente: token vigente, o par
// rotado vía refresh, o sesión limpia.
// GET /api/auth/session
func (h *AuthHandler) Session(c *fiber.Ctx) error {
	token := extractToken(c)
	refresh := c.Cookies(CookieRefresh)
	out := h.uc.Rehydrate(c.Context(), token, refresh)
	if !out.IsAuthenticated {
		h.clearSessionCookies(c)
		return c.JSON(out)
	}
	h.setSessionCookies(c, out.Token, out.RefreshToken)
	return c.JSON(out)
}

// Logout revoca el refresh token y limpia las cookies. Siempre responde 204.
// POST /api/auth/logout
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	var in dto.RefreshRequest
	_ = c.BodyParser(&in)
	if in.RefreshToken == "" {
		in.RefreshToken = c.Cookies(CookieRefresh)
	}
	h.uc.Logout(c.Context(), in.RefreshToken)
	// Best-effort: si el token todavía identifica al usuario, vaciar su
	// carrito junto con la sesión.
	if h.carts != nil {
		if token := extractToken(c); token != "" {
			if user, err := h.uc.Verify(token); err == nil {
				_ = h.carts.Clear(c.Context(), user.ID)
			}
		}
	}
	h.clearSessionCookies(c)
	return c.SendStatus(fiber.StatusNoContent)
}

// Me devuelve el perfil del usuario autenticado.
// GET /api/auth/me
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	token := extractToken(c)
	user, err := h.uc.Verify(token)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
	}
	return c.JSON(user)
}

// UpdateMe actualiza el perfil del usuario autenticado y persiste el cambio.
// PUT /api/auth/me
func (h *AuthHandler) UpdateMe(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.UpdateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	user, err := h.uc.UpdateUser(userID, in)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "usuario no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(user)
}

func (h *AuthHandler) setSessionCookies(c *fiber.Ctx, token, refresh string) {
	c.Cookie(h.sessionCookie(CookieToken, token, time.Duration(h.jwtCfg.AccessMinutes)*time.Minute))
	c.Cookie(h.sessionCookie(CookieRefresh, refresh, time.Duration(h.jwtCfg.RefreshHours)*time.Hour))
}

func (h *AuthHandler) clearSessionCookies(c *fiber.Ctx) {
	c.Cookie(h.sessionCookie(CookieToken, "", -time.Hour))
	c.Cookie(h.sessionCookie(CookieRefresh, "", -time.Hour))
}

func (h *AuthHandler) sessionCookie(name, value string, ttl time.Duration) *fiber.Cookie {
	return &fiber.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Domain:   h.cookie.Domain,
		Expires:  time.Now().Add(ttl),
		HTTPOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: h.cookie.SameSite,
	}
}
