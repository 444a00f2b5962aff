package entity

import (
	"github.com/shopspring/decimal"

	"github.com/bhuvanux/Sewvee-BMS-sub000/internal/domain/document"
)

// Estados de pago de un pedido (derivados de total y advance).
const (
	PaymentStatusUnpaid        = "Unpaid"
	PaymentStatusPartiallyPaid = "PartiallyPaid"
	PaymentStatusPaid          = "Paid"
)

// Estado de taller por defecto de un pedido nuevo.
const OrderStatusPending = "Pending"

// Campos de Order.
const (
	FieldCustomerName  = "customerName"
	FieldStatus        = "status"
	FieldDeliveryDate  = "deliveryDate"
	FieldNotes         = "notes"
	FieldItems         = "items"
	FieldTotal         = "total"
	FieldAdvance       = "advance"
	FieldBalance       = "balance"
	FieldPaymentStatus = "paymentStatus"

	FieldItemName      = "name"
	FieldItemQuantity  = "quantity"
	FieldItemUnitPrice = "unitPrice"
)

// OrderItem línea de un pedido.
type OrderItem struct {
	Name      string
	Quantity  int64
	UnitPrice decimal.Decimal
}

// Subtotal cantidad x precio unitario.
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(i.Quantity))
}

// Order pedido de un cliente. Balance y PaymentStatus son funciones puras de Total y Advance.
type Order struct {
	ID            string
	OwnerID       string
	CustomerID    string
	CustomerName  string
	Status        string
	DeliveryDate  string
	Notes         string
	Items         []OrderItem
	Total         decimal.Decimal
	Advance       decimal.Decimal // suma de los pagos vivos del pedido
	Balance       decimal.Decimal
	PaymentStatus string
	CreatedAt     string
	UpdatedAt     string
}

// DerivePaymentStatus Unpaid si advance = 0, PartiallyPaid si 0 < advance < total, Paid si advance >= total.
func DerivePaymentStatus(total, advance decimal.Decimal) string {
	switch {
	case !advance.IsPositive():
		return PaymentStatusUnpaid
	case advance.LessThan(total):
		return PaymentStatusPartiallyPaid
	default:
		return PaymentStatusPaid
	}
}

// DeriveBalance total - advance.
func DeriveBalance(total, advance decimal.Decimal) decimal.Decimal {
	return total.Sub(advance)
}

// ItemsTotal suma de los subtotales de las líneas.
func ItemsTotal(items []OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Subtotal())
	}
	return total
}

// Recompute recalcula Balance y PaymentStatus a partir de Total y Advance.
func (o *Order) Recompute() {
	o.Balance = DeriveBalance(o.Total, o.Advance)
	o.PaymentStatus = DerivePaymentStatus(o.Total, o.Advance)
}

// OrderFromDocument mapea un documento remoto a Order.
func OrderFromDocument(doc document.Document) Order {
	f := doc.Fields
	o := Order{
		ID:            doc.ID,
		OwnerID:       f.String(FieldOwnerID),
		CustomerID:    f.String(FieldCustomerID),
		CustomerName:  f.String(FieldCustomerName),
		Status:        f.String(FieldStatus),
		DeliveryDate:  f.String(FieldDeliveryDate),
		Notes:         f.String(FieldNotes),
		Items:         ItemsFromFields(f.Maps(FieldItems)),
		Total:         f.Decimal(FieldTotal),
		Advance:       f.Decimal(FieldAdvance),
		Balance:       f.Decimal(FieldBalance),
		PaymentStatus: f.String(FieldPaymentStatus),
		CreatedAt:     f.String(FieldCreatedAt),
		UpdatedAt:     f.String(FieldUpdatedAt),
	}
	return o
}

// ItemsFromFields decodifica las líneas de un pedido.
func ItemsFromFields(list []document.Fields) []OrderItem {
	if len(list) == 0 {
		return nil
	}
	items := make([]OrderItem, 0, len(list))
	for _, f := range list {
		items = append(items, OrderItem{
			Name:      f.String(FieldItemName),
			Quantity:  f.Int(FieldItemQuantity),
			UnitPrice: f.Decimal(FieldItemUnitPrice),
		})
	}
	return items
}

// ItemsToFields serializa las líneas de un pedido.
func ItemsToFields(items []OrderItem) []any {
	out := make([]any, 0, len(items))
	for _, it := range items {
		out = append(out, map[string]any{
			FieldItemName:      it.Name,
			FieldItemQuantity:  it.Quantity,
			FieldItemUnitPrice: it.UnitPrice,
		})
	}
	return out
}

// Fields serializa el pedido completo (creación).
func (o Order) Fields() document.Fields {
	return document.Fields{
		FieldOwnerID:       o.OwnerID,
		FieldCustomerID:    o.CustomerID,
		FieldCustomerName:  o.CustomerName,
		FieldStatus:        o.Status,
		FieldDeliveryDate:  o.DeliveryDate,
		FieldNotes:         o.Notes,
		FieldItems:         ItemsToFields(o.Items),
		FieldTotal:         o.Total,
		FieldAdvance:       o.Advance,
		FieldBalance:       o.Balance,
		FieldPaymentStatus: o.PaymentStatus,
		FieldCreatedAt:     o.CreatedAt,
		FieldUpdatedAt:     o.UpdatedAt,
	}
}
