package domain

import (
	"errors"
	"fmt"
)

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
	ErrInvalidTransition  = errors.New("transición de estado no permitida")
)

// Errores del libro de stock por lotes.
var (
	ErrInvalidQuantity   = errors.New("cantidad inválida")
	ErrInvalidCost       = errors.New("costo unitario inválido")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrInvalidBatch      = errors.New("lote inválido")

	// ErrUnknownProduct: el producto nunca tuvo lotes. Envuelve ErrInvalidQuantity, así que
	// errors.Is(err, ErrInvalidQuantity) también es verdadero para quien no distinga el caso.
	ErrUnknownProduct = fmt.Errorf("%w: producto sin lotes registrados", ErrInvalidQuantity)
)
