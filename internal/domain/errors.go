package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound             = errors.New("recurso no encontrado")
	ErrInvalidInput         = errors.New("entrada inválida")
	ErrDuplicate            = errors.New("recurso duplicado")
	ErrUnauthorized         = errors.New("no autorizado")
	ErrForbidden            = errors.New("acceso denegado")
	ErrConflict             = errors.New("conflicto con el estado actual")
	ErrInsufficientStock    = errors.New("stock insuficiente")
	ErrInvalidTransition    = errors.New("transición de estado inválida")
	ErrInvalidState         = errors.New("operación no permitida en el estado actual")
	ErrReferentialIntegrity = errors.New("referencia a registro inexistente")
)

// ErrValidation es el nombre usado por el flujo de documentos para entradas mal formadas.
var ErrValidation = ErrInvalidInput

// TransitionError describe un cambio de estado rechazado por la máquina de estados.
// errors.Is(err, ErrInvalidTransition) es verdadero para cualquier *TransitionError.
type TransitionError struct {
	From string
	To   string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("transición de estado inválida: de %q a %q", e.From, e.To)
}

func (e *TransitionError) Unwrap() error { return ErrInvalidTransition }
