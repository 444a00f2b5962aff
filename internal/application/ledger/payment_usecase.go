package ledger

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bhuvanux/Sewvee-BMS-sub000/internal/application/dto"
	"github.com/bhuvanux/Sewvee-BMS-sub000/internal/domain"
	"github.com/bhuvanux/Sewvee-BMS-sub000/internal/domain/document"
	"github.com/bhuvanux/Sewvee-BMS-sub000/internal/domain/entity"
	"github.com/bhuvanux/Sewvee-BMS-sub000/internal/domain/repository"
	"github.com/bhuvanux/Sewvee-BMS-sub000/pkg/logger"
)

// PaymentUseCase operaciones de pagos. Cada alta, cambio de importe o borrado aplica en el
// mismo lote el delta opuesto sobre advance/balance del pedido y totalSpent del cliente.
type PaymentUseCase struct {
	store repository.DocumentStore
	log   *logger.Logger
}

// NewPaymentUseCase construye el caso de uso.
func NewPaymentUseCase(store repository.DocumentStore, log *logger.Logger) *PaymentUseCase {
	return &PaymentUseCase{store: store, log: log.WithComponent("ledger.payments")}
}

// AddPayment registra un pago contra un pedido existente. El cliente del pago es el del pedido;
// un customer_id distinto se rechaza con domain.ErrInvalidInput.
func (uc *PaymentUseCase) AddPayment(ctx context.Context, ownerID string, in dto.CreatePaymentRequest) (*entity.Payment, error) {
	if err := requireOwner(ownerID); err != nil {
		return nil, err
	}
	if in.OrderID == "" || !in.Amount.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	orderDoc, err := getOwned(ctx, uc.store, entity.CollectionOrders, in.OrderID, ownerID)
	if err != nil {
		return nil, err
	}
	if orderDoc == nil {
		return nil, fmt.Errorf("pedido %s: %w", in.OrderID, domain.ErrNotFound)
	}
	order := entity.OrderFromDocument(*orderDoc)
	// El pago siempre cuenta para el cliente del pedido: es el que DeleteOrder compensa.
	if in.CustomerID != "" && in.CustomerID != order.CustomerID {
		return nil, fmt.Errorf("el pago indica el cliente %s pero el pedido %s es de %q: %w",
			in.CustomerID, order.ID, order.CustomerID, domain.ErrInvalidInput)
	}
	customerID := order.CustomerID

	now := entity.Now()
	payment := entity.Payment{
		ID:         uuid.New().String(),
		OwnerID:    ownerID,
		OrderID:    order.ID,
		CustomerID: customerID,
		Amount:     in.Amount,
		Mode:       orDefault(in.Mode, DefaultPaymentMode),
		Date:       orDefault(in.Date, now),
		Type:       entity.PaymentTypePayment,
		Notes:      in.Notes,
		CreatedAt:  now,
	}

	batch := uc.store.Batch()
	batch.Set(entity.CollectionPayments, payment.ID, payment.Fields(), false)
	batch.Set(entity.CollectionOrders, order.ID, orderDelta(order, payment.Amount, now), true)
	if err := uc.customerDelta(ctx, batch, ownerID, customerID, payment.Amount, now); err != nil {
		return nil, err
	}
	if err := batch.Commit(ctx); err != nil {
		return nil, fmt.Errorf("registrar pago: %w", err)
	}
	uc.log.Info().Str("owner_id", ownerID).Str("order_id", order.ID).Str("payment_id", payment.ID).
		Str("amount", payment.Amount.String()).Msg("pago registrado")
	return &payment, nil
}

// UpdatePayment actualiza un pago. Si cambia el importe, propaga delta = nuevo - anterior al
// pedido y al cliente; si no, sólo se escriben los campos del pago.
// Devuelve applied=false sin error si el pago no existe o el parche está vacío.
func (uc *PaymentUseCase) UpdatePayment(ctx context.Context, ownerID, id string, in dto.UpdatePaymentRequest) (*entity.Payment, bool, error) {
	if err := requireOwner(ownerID); err != nil {
		return nil, false, err
	}
	if in.Amount != nil && !in.Amount.IsPositive() {
		return nil, false, domain.ErrInvalidInput
	}
	doc, err := getOwned(ctx, uc.store, entity.CollectionPayments, id, ownerID)
	if err != nil {
		return nil, false, err
	}
	if doc == nil {
		uc.log.Warn().Str("owner_id", ownerID).Str("payment_id", id).Msg("actualizar pago: no existe, nada que hacer")
		return nil, false, nil
	}
	current := entity.PaymentFromDocument(*doc)

	patch := document.Fields{}
	setString(patch, entity.FieldMode, in.Mode)
	setString(patch, entity.FieldDate, in.Date)
	setString(patch, entity.FieldNotes, in.Notes)

	now := entity.Now()
	batch := uc.store.Batch()
	if in.Amount != nil && !in.Amount.Equal(current.Amount) {
		delta := in.Amount.Sub(current.Amount)
		patch[entity.FieldAmount] = *in.Amount
		if current.OrderID != "" {
			orderDoc, err := getOwned(ctx, uc.store, entity.CollectionOrders, current.OrderID, ownerID)
			if err != nil {
				return nil, false, err
			}
			if orderDoc == nil {
				return nil, false, fmt.Errorf("el pedido %s del pago %s ya no existe: %w",
					current.OrderID, id, domain.ErrConflict)
			}
			order := entity.OrderFromDocument(*orderDoc)
			batch.Update(entity.CollectionOrders, order.ID, orderDelta(order, delta, now))
		}
		if err := uc.customerDelta(ctx, batch, ownerID, current.CustomerID, delta, now); err != nil {
			return nil, false, err
		}
	}
	if len(patch) == 0 {
		return &current, false, nil
	}
	patch[entity.FieldUpdatedAt] = now
	batch.Update(entity.CollectionPayments, id, patch)

	if err := batch.Commit(ctx); err != nil {
		return nil, false, fmt.Errorf("actualizar pago %s: %w", id, err)
	}
	updated := entity.PaymentFromDocument(document.Document{ID: id, Fields: merged(doc.Fields, patch)})
	return &updated, true, nil
}

// DeletePayment borra el pago y revierte su importe en el pedido y el cliente.
// Un pago sin pedido (huérfano) se borra sin escrituras compensatorias.
// Devuelve false sin error si el pago ya no existe.
func (uc *PaymentUseCase) DeletePayment(ctx context.Context, ownerID, id string) (bool, error) {
	if err := requireOwner(ownerID); err != nil {
		return false, err
	}
	doc, err := getOwned(ctx, uc.store, entity.CollectionPayments, id, ownerID)
	if err != nil {
		return false, err
	}
	if doc == nil {
		uc.log.Warn().Str("owner_id", ownerID).Str("payment_id", id).Msg("borrar pago: no existe, nada que hacer")
		return false, nil
	}
	payment := entity.PaymentFromDocument(*doc)
	now := entity.Now()

	batch := uc.store.Batch()
	batch.Delete(entity.CollectionPayments, id)
	if payment.OrderID == "" {
		uc.log.Warn().Str("payment_id", id).Msg("borrar pago huérfano: sin pedido, no hay compensación")
	} else {
		reversal := payment.Amount.Neg()
		orderDoc, err := getOwned(ctx, uc.store, entity.CollectionOrders, payment.OrderID, ownerID)
		if err != nil {
			return false, err
		}
		if orderDoc == nil {
			uc.log.Warn().Str("payment_id", id).Str("order_id", payment.OrderID).
				Msg("borrar pago: el pedido ya no existe, se omite su compensación")
		} else {
			order := entity.OrderFromDocument(*orderDoc)
			batch.Update(entity.CollectionOrders, order.ID, orderDelta(order, reversal, now))
		}
		if err := uc.customerDelta(ctx, batch, ownerID, payment.CustomerID, reversal, now); err != nil {
			return false, err
		}
	}
	if err := batch.Commit(ctx); err != nil {
		return false, fmt.Errorf("borrar pago %s: %w", id, err)
	}
	uc.log.Info().Str("owner_id", ownerID).Str("payment_id", id).Str("amount", payment.Amount.String()).Msg("pago borrado")
	return true, nil
}

// orderDelta campos que aplican delta al advance del pedido: advance += delta, balance -= delta,
// y paymentStatus según el advance resultante esperado.
func orderDelta(order entity.Order, delta decimal.Decimal, now string) document.Fields {
	advance := order.Advance.Add(delta)
	return document.Fields{
		entity.FieldAdvance:       document.Inc(delta),
		entity.FieldBalance:       document.Inc(delta.Neg()),
		entity.FieldPaymentStatus: entity.DerivePaymentStatus(order.Total, advance),
		entity.FieldUpdatedAt:     now,
	}
}

// customerDelta encola totalSpent += delta si el cliente existe; si fue borrado se omite con aviso.
func (uc *PaymentUseCase) customerDelta(ctx context.Context, batch repository.Batch, ownerID, customerID string, delta decimal.Decimal, now string) error {
	if customerID == "" {
		return nil
	}
	custDoc, err := getOwned(ctx, uc.store, entity.CollectionCustomers, customerID, ownerID)
	if err != nil {
		return err
	}
	if custDoc == nil {
		uc.log.Warn().Str("customer_id", customerID).Msg("el cliente ya no existe, se omite el ajuste de totalSpent")
		return nil
	}
	batch.Update(entity.CollectionCustomers, customerID, document.Fields{
		entity.FieldTotalSpent: document.Inc(delta),
		entity.FieldUpdatedAt:  now,
	})
	return nil
}
