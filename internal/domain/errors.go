package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInventoryClosed    = errors.New("el inventario ya está cerrado")
	ErrInventoryOpen      = errors.New("ya existe un inventario abierto para la sucursal")
	ErrRefreshToken       = errors.New("refresh token inválido o expirado")
	ErrInvalidTransition  = errors.New("transición de estado inválida")
)
