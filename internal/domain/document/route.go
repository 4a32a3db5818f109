package document

import (
	"fmt"

	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
)

// Route bodegas resueltas para aplicar el stock de un documento.
//   - receipt:    To
//   - delivery:   From
//   - transfer:   From y To (distintas)
//   - adjustment: From == To == la bodega ajustada; el signo de cada línea decide cuál se usa
type Route struct {
	From string
	To   string
}

// ResolveRoute valida que el selector corresponda al tipo de documento.
// Si sel es nil se usa defaultWarehouse como SingleWarehouse (no aplica a traslados).
func ResolveRoute(t entity.DocumentType, sel entity.WarehouseSelector, defaultWarehouse string) (Route, error) {
	if sel == nil && defaultWarehouse != "" && t != entity.DocumentTypeTransfer {
		sel = entity.SingleWarehouse{ID: defaultWarehouse}
	}

	switch t {
	case entity.DocumentTypeTransfer:
		pair, ok := sel.(entity.WarehousePair)
		if !ok {
			return Route{}, fmt.Errorf("%w: un traslado requiere bodega origen y destino", domain.ErrValidation)
		}
		if pair.From == "" || pair.To == "" {
			return Route{}, fmt.Errorf("%w: un traslado requiere bodega origen y destino", domain.ErrValidation)
		}
		if pair.From == pair.To {
			return Route{}, fmt.Errorf("%w: bodega origen y destino deben ser distintas", domain.ErrValidation)
		}
		return Route{From: pair.From, To: pair.To}, nil

	case entity.DocumentTypeReceipt, entity.DocumentTypeDelivery, entity.DocumentTypeAdjustment:
		single, ok := sel.(entity.SingleWarehouse)
		if !ok || single.ID == "" {
			return Route{}, fmt.Errorf("%w: el documento %s requiere una bodega", domain.ErrValidation, t)
		}
		switch t {
		case entity.DocumentTypeReceipt:
			return Route{To: single.ID}, nil
		case entity.DocumentTypeDelivery:
			return Route{From: single.ID}, nil
		default:
			return Route{From: single.ID, To: single.ID}, nil
		}
	}
	return Route{}, fmt.Errorf("%w: tipo de documento %q", domain.ErrValidation, t)
}

// Warehouses devuelve las bodegas distintas referenciadas por la ruta.
func (r Route) Warehouses() []string {
	var out []string
	if r.From != "" {
		out = append(out, r.From)
	}
	if r.To != "" && r.To != r.From {
		out = append(out, r.To)
	}
	return out
}

// ValidateLineQuantity comprueba la cantidad de una línea según el tipo:
// positiva en recepciones, despachos y traslados; distinta de cero en ajustes.
func ValidateLineQuantity(t entity.DocumentType, qty int64) error {
	if t == entity.DocumentTypeAdjustment {
		if qty == 0 {
			return fmt.Errorf("%w: la cantidad de un ajuste no puede ser cero", domain.ErrValidation)
		}
		return nil
	}
	if qty <= 0 {
		return fmt.Errorf("%w: la cantidad debe ser mayor que cero", domain.ErrValidation)
	}
	return nil
}
