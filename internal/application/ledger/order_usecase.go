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

// OrderUseCase operaciones de pedidos: alta con pago inicial, edición merge y borrado en cascada.
type OrderUseCase struct {
	store repository.DocumentStore
	log   *logger.Logger
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(store repository.DocumentStore, log *logger.Logger) *OrderUseCase {
	return &OrderUseCase{store: store, log: log.WithComponent("ledger.orders")}
}

// CreateOrder crea el pedido y, en el mismo lote, suma 1 pedido y el anticipo a los agregados
// del cliente y registra el pago "Advance" si el anticipo es positivo.
// El ID del pedido se asigna antes del commit para que el pago pueda referenciarlo.
func (uc *OrderUseCase) CreateOrder(ctx context.Context, ownerID string, in dto.CreateOrderRequest) (*entity.Order, error) {
	if err := requireOwner(ownerID); err != nil {
		return nil, err
	}
	items := dto.ToItems(in.Items)
	total := in.Total
	if len(items) > 0 {
		total = entity.ItemsTotal(items)
	}
	if total.IsNegative() || in.Advance.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	customerName := in.CustomerName
	if in.CustomerID != "" {
		custDoc, err := getOwned(ctx, uc.store, entity.CollectionCustomers, in.CustomerID, ownerID)
		if err != nil {
			return nil, err
		}
		if custDoc == nil {
			return nil, fmt.Errorf("cliente %s: %w", in.CustomerID, domain.ErrNotFound)
		}
		if customerName == "" {
			customerName = custDoc.Fields.String(entity.FieldName)
		}
	}

	now := entity.Now()
	status := in.Status
	if status == "" {
		status = entity.OrderStatusPending
	}
	order := entity.Order{
		ID:           uuid.New().String(),
		OwnerID:      ownerID,
		CustomerID:   in.CustomerID,
		CustomerName: customerName,
		Status:       status,
		DeliveryDate: in.DeliveryDate,
		Notes:        in.Notes,
		Items:        items,
		Total:        total,
		Advance:      in.Advance,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	order.Recompute()

	batch := uc.store.Batch()
	batch.Set(entity.CollectionOrders, order.ID, order.Fields(), false)
	if order.CustomerID != "" {
		batch.Update(entity.CollectionCustomers, order.CustomerID, document.Fields{
			entity.FieldTotalOrders:   document.IncInt(1),
			entity.FieldTotalSpent:    document.Inc(order.Advance),
			entity.FieldLastOrderDate: now,
			entity.FieldUpdatedAt:     now,
		})
	}
	if order.Advance.IsPositive() {
		payment := entity.Payment{
			ID:         uuid.New().String(),
			OwnerID:    ownerID,
			OrderID:    order.ID,
			CustomerID: order.CustomerID,
			Amount:     order.Advance,
			Mode:       orDefault(in.PaymentMode, DefaultPaymentMode),
			Date:       orDefault(in.PaymentDate, now),
			Type:       entity.PaymentTypeAdvance,
			CreatedAt:  now,
		}
		batch.Set(entity.CollectionPayments, payment.ID, payment.Fields(), false)
	}
	if err := batch.Commit(ctx); err != nil {
		return nil, fmt.Errorf("crear pedido: %w", err)
	}
	uc.log.Info().Str("owner_id", ownerID).Str("order_id", order.ID).
		Str("total", order.Total.String()).Str("advance", order.Advance.String()).Msg("pedido creado")
	return &order, nil
}

// UpdateOrder escritura merge: sólo cambian los campos presentes en el parche.
// Si el parche toca total, items o advance, balance y paymentStatus se recalculan con los
// valores efectivos (documento actual + parche) y se escriben en la misma escritura.
// ownerId y createdAt se re-estampan si faltan en el documento (alta parcial previa).
func (uc *OrderUseCase) UpdateOrder(ctx context.Context, ownerID, id string, in dto.UpdateOrderRequest) (*entity.Order, error) {
	if err := requireOwner(ownerID); err != nil {
		return nil, err
	}
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	doc, err := getOwned(ctx, uc.store, entity.CollectionOrders, id, ownerID)
	if err != nil {
		return nil, err
	}
	current := document.Fields{}
	if doc != nil {
		current = doc.Fields
	}

	now := entity.Now()
	patch := document.Fields{entity.FieldUpdatedAt: now}
	if current.String(entity.FieldOwnerID) == "" {
		patch[entity.FieldOwnerID] = ownerID
	}
	if current.String(entity.FieldCreatedAt) == "" {
		patch[entity.FieldCreatedAt] = now
	}
	setString(patch, entity.FieldCustomerName, in.CustomerName)
	setString(patch, entity.FieldStatus, in.Status)
	setString(patch, entity.FieldDeliveryDate, in.DeliveryDate)
	setString(patch, entity.FieldNotes, in.Notes)

	if in.Items != nil || in.Total != nil || in.Advance != nil {
		total := current.Decimal(entity.FieldTotal)
		advance := current.Decimal(entity.FieldAdvance)
		if in.Total != nil {
			total = *in.Total
		}
		if in.Items != nil {
			items := dto.ToItems(in.Items)
			total = entity.ItemsTotal(items)
			patch[entity.FieldItems] = entity.ItemsToFields(items)
		}
		if in.Advance != nil {
			advance = *in.Advance
		}
		if total.IsNegative() || advance.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		patch[entity.FieldTotal] = total
		patch[entity.FieldAdvance] = advance
		patch[entity.FieldBalance] = entity.DeriveBalance(total, advance)
		patch[entity.FieldPaymentStatus] = entity.DerivePaymentStatus(total, advance)
	}

	if err := uc.store.Set(ctx, entity.CollectionOrders, id, patch, true); err != nil {
		return nil, fmt.Errorf("actualizar pedido %s: %w", id, err)
	}
	order := entity.OrderFromDocument(document.Document{ID: id, Fields: merged(current, patch)})
	return &order, nil
}

// DeleteOrder borra el pedido junto con todos sus pagos y revierte en el cliente 1 pedido y
// exactamente la suma de los pagos vivos (no el advance guardado, que puede haber derivado).
// Devuelve false sin error si el pedido ya no existe.
func (uc *OrderUseCase) DeleteOrder(ctx context.Context, ownerID, id string) (bool, error) {
	if err := requireOwner(ownerID); err != nil {
		return false, err
	}
	doc, err := getOwned(ctx, uc.store, entity.CollectionOrders, id, ownerID)
	if err != nil {
		return false, err
	}
	if doc == nil {
		uc.log.Warn().Str("owner_id", ownerID).Str("order_id", id).Msg("borrar pedido: no existe, nada que hacer")
		return false, nil
	}
	order := entity.OrderFromDocument(*doc)

	paymentDocs, err := uc.store.Query(ctx, entity.CollectionPayments,
		document.Where(entity.FieldOwnerID, ownerID),
		document.Where(entity.FieldOrderID, id),
	)
	if err != nil {
		return false, fmt.Errorf("pagos del pedido %s: %w", id, err)
	}
	totalPaid := decimal.Zero
	batch := uc.store.Batch()
	batch.Delete(entity.CollectionOrders, id)
	for _, pd := range paymentDocs {
		totalPaid = totalPaid.Add(pd.Fields.Decimal(entity.FieldAmount))
		batch.Delete(entity.CollectionPayments, pd.ID)
	}

	if order.CustomerID != "" {
		custDoc, err := getOwned(ctx, uc.store, entity.CollectionCustomers, order.CustomerID, ownerID)
		if err != nil {
			return false, err
		}
		if custDoc == nil {
			uc.log.Warn().Str("order_id", id).Str("customer_id", order.CustomerID).
				Msg("borrar pedido: el cliente ya no existe, se omite la reversión de agregados")
		} else {
			batch.Update(entity.CollectionCustomers, order.CustomerID, document.Fields{
				entity.FieldTotalOrders: document.IncInt(-1),
				entity.FieldTotalSpent:  document.Inc(totalPaid.Neg()),
				entity.FieldUpdatedAt:   entity.Now(),
			})
		}
	}

	if err := batch.Commit(ctx); err != nil {
		return false, fmt.Errorf("borrar pedido %s: %w", id, err)
	}
	uc.log.Info().Str("owner_id", ownerID).Str("order_id", id).
		Int("payments", len(paymentDocs)).Str("total_paid", totalPaid.String()).Msg("pedido borrado")
	return true, nil
}

func setString(patch document.Fields, key string, v *string) {
	if v != nil {
		patch[key] = *v
	}
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
