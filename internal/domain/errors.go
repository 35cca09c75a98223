package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound              = errors.New("recurso no encontrado")
	ErrInvalidInput          = errors.New("entrada inválida")
	ErrInvalidQuantity       = errors.New("cantidad inválida para el movimiento")
	ErrNoPartialUpdate       = errors.New("stock y movimiento deben confirmarse juntos")
	ErrRepositoryUnavailable = errors.New("repositorio no disponible")
	ErrUnauthorized          = errors.New("no autorizado")
)
