// Package receipt genera el recibo (PDF) de un pedido con su historial de pagos.
package receipt

import (
	"context"
	"fmt"
	"sort"

	"github.com/bhuvanux/Sewvee-BMS-sub000/internal/domain"
	"github.com/bhuvanux/Sewvee-BMS-sub000/internal/domain/document"
	"github.com/bhuvanux/Sewvee-BMS-sub000/internal/domain/entity"
	"github.com/bhuvanux/Sewvee-BMS-sub000/internal/domain/repository"
)

// Receipt datos que necesita el generador.
type Receipt struct {
	TenantName string
	Order      entity.Order
	Customer   *entity.Customer // nil si el pedido no tiene cliente o fue borrado
	Payments   []entity.Payment // fecha ascendente
	IssuedAt   string
}

// Generator produce los bytes del PDF.
type Generator interface {
	GenerateReceiptPDF(ctx context.Context, r Receipt) ([]byte, error)
}

// ReceiptUseCase lectura de pedido, cliente y pagos para el recibo.
type ReceiptUseCase struct {
	store     repository.DocumentStore
	generator Generator
}

// NewReceiptUseCase construye el caso de uso.
func NewReceiptUseCase(store repository.DocumentStore, generator Generator) *ReceiptUseCase {
	return &ReceiptUseCase{store: store, generator: generator}
}

// DownloadReceipt devuelve el PDF del recibo y su nombre de archivo.
//
// Retorna:
//   - domain.ErrUnauthorized si no hay propietario.
//   - domain.ErrNotFound     si el pedido no existe.
//   - domain.ErrForbidden    si el pedido es de otro propietario.
func (uc *ReceiptUseCase) DownloadReceipt(ctx context.Context, ownerID, tenantName, orderID string) ([]byte, string, error) {
	if ownerID == "" {
		return nil, "", domain.ErrUnauthorized
	}
	doc, err := uc.store.Get(ctx, entity.CollectionOrders, orderID)
	if err != nil {
		return nil, "", fmt.Errorf("recibo: obtener pedido: %w", err)
	}
	if doc == nil {
		return nil, "", domain.ErrNotFound
	}
	if doc.Fields.String(entity.FieldOwnerID) != ownerID {
		return nil, "", domain.ErrForbidden
	}
	order := entity.OrderFromDocument(*doc)

	var customer *entity.Customer
	if order.CustomerID != "" {
		custDoc, err := uc.store.Get(ctx, entity.CollectionCustomers, order.CustomerID)
		if err != nil {
			return nil, "", fmt.Errorf("recibo: obtener cliente: %w", err)
		}
		if custDoc != nil && custDoc.Fields.String(entity.FieldOwnerID) == ownerID {
			c := entity.CustomerFromDocument(*custDoc)
			customer = &c
		}
	}

	paymentDocs, err := uc.store.Query(ctx, entity.CollectionPayments,
		document.Where(entity.FieldOwnerID, ownerID),
		document.Where(entity.FieldOrderID, orderID),
	)
	if err != nil {
		return nil, "", fmt.Errorf("recibo: obtener pagos: %w", err)
	}
	payments := make([]entity.Payment, 0, len(paymentDocs))
	for _, pd := range paymentDocs {
		payments = append(payments, entity.PaymentFromDocument(pd))
	}
	sort.SliceStable(payments, func(i, j int) bool { return payments[i].Date < payments[j].Date })

	pdfBytes, err := uc.generator.GenerateReceiptPDF(ctx, Receipt{
		TenantName: tenantName,
		Order:      order,
		Customer:   customer,
		Payments:   payments,
		IssuedAt:   entity.Now(),
	})
	if err != nil {
		return nil, "", fmt.Errorf("recibo: generación fallida: %w", err)
	}
	return pdfBytes, fmt.Sprintf("recibo_%s.pdf", shortID(order.ID)), nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
