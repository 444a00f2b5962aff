// Package ledger implementa las operaciones de escritura que mantienen consistentes entre sí
// los agregados de Customer, los saldos de Order y los registros de Payment.
//
// Cada operación lee el estado previo que necesita, calcula los campos derivados y confirma
// un único lote atómico que toca todos los documentos cuyo invariante se ve afectado.
// Los agregados se ajustan con incrementos del almacén, nunca con leer-modificar-escribir.
//
// paymentStatus sí se calcula a partir de una lectura puntual del pedido más el delta del lote:
// dos pagos concurrentes sobre el mismo pedido dejan advance/balance correctos (incrementos)
// pero el último lote en confirmar fija paymentStatus. Un almacén con compare-and-swap o
// transacciones de documento permitiría cerrar esa ventana; este paquete no lo asume.
package ledger

import (
	"context"
	"fmt"
	"strings"

	"github.com/bhuvanux/Sewvee-BMS-sub000/internal/domain"
	"github.com/bhuvanux/Sewvee-BMS-sub000/internal/domain/document"
	"github.com/bhuvanux/Sewvee-BMS-sub000/internal/domain/entity"
	"github.com/bhuvanux/Sewvee-BMS-sub000/internal/domain/repository"
)

// DefaultPaymentMode canal de pago cuando no se indica.
const DefaultPaymentMode = "Cash"

// requireOwner rechaza la operación si no hay propietario autenticado.
func requireOwner(ownerID string) error {
	if strings.TrimSpace(ownerID) == "" {
		return domain.ErrUnauthorized
	}
	return nil
}

// getOwned lectura puntual con control de propiedad: (nil, nil) si no existe,
// domain.ErrForbidden si el documento es de otro propietario.
func getOwned(ctx context.Context, store repository.DocumentStore, collection, id, ownerID string) (*document.Document, error) {
	if id == "" {
		return nil, nil
	}
	doc, err := store.Get(ctx, collection, id)
	if err != nil {
		return nil, fmt.Errorf("leer %s/%s: %w", collection, id, err)
	}
	if doc == nil {
		return nil, nil
	}
	if owner := doc.Fields.String(entity.FieldOwnerID); owner != "" && owner != ownerID {
		return nil, domain.ErrForbidden
	}
	return doc, nil
}

// merged vista local de un documento tras aplicar un parche sin incrementos.
func merged(current, patch document.Fields) document.Fields {
	out := current.Clone()
	for k, v := range patch {
		out[k] = v
	}
	return out
}
