package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrInsufficientStock = errors.New("stock insuficiente")
)

// ErrItemNotFound y ErrUserNotFound satisfacen errors.Is(err, ErrNotFound).
var (
	ErrItemNotFound error = notFoundError{entity: "item"}
	ErrUserNotFound error = notFoundError{entity: "usuario"}
)

type notFoundError struct {
	entity string
}

func (e notFoundError) Error() string { return e.entity + " no encontrado" }

func (e notFoundError) Is(target error) bool { return target == ErrNotFound }
