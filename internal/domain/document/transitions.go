// Package document contiene las reglas puras del flujo de documentos de inventario:
// máquina de estados, numeración y resolución de bodegas al validar.
package document

import (
	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
)

// transitions tabla de transiciones permitidas. done y cancelled son terminales.
var transitions = map[entity.DocumentStatus][]entity.DocumentStatus{
	entity.DocumentStatusDraft:     {entity.DocumentStatusWaiting, entity.DocumentStatusCancelled},
	entity.DocumentStatusWaiting:   {entity.DocumentStatusReady, entity.DocumentStatusCancelled},
	entity.DocumentStatusReady:     {entity.DocumentStatusDone, entity.DocumentStatusCancelled},
	entity.DocumentStatusDone:      {},
	entity.DocumentStatusCancelled: {},
}

// CheckTransition devuelve nil si from → to está en la tabla, o un *domain.TransitionError
// con el par intentado. Estados desconocidos nunca son válidos.
func CheckTransition(from, to entity.DocumentStatus) error {
	for _, next := range transitions[from] {
		if next == to {
			return nil
		}
	}
	return &domain.TransitionError{From: string(from), To: string(to)}
}

// AllowedTransitions devuelve los estados alcanzables desde from.
func AllowedTransitions(from entity.DocumentStatus) []entity.DocumentStatus {
	out := make([]entity.DocumentStatus, len(transitions[from]))
	copy(out, transitions[from])
	return out
}

// IsTerminal indica si el estado no admite más transiciones.
func IsTerminal(s entity.DocumentStatus) bool {
	next, ok := transitions[s]
	return ok && len(next) == 0
}

// Statuses lista todos los estados conocidos en orden del flujo.
func Statuses() []entity.DocumentStatus {
	return []entity.DocumentStatus{
		entity.DocumentStatusDraft,
		entity.DocumentStatusWaiting,
		entity.DocumentStatusReady,
		entity.DocumentStatusDone,
		entity.DocumentStatusCancelled,
	}
}
