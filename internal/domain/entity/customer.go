package entity

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"

	"github.com/bhuvanux/Sewvee-BMS-sub000/internal/domain/document"
)

// Colecciones del almacén de documentos.
const (
	CollectionCustomers = "customers"
	CollectionOrders    = "orders"
	CollectionPayments  = "payments"
	CollectionCatalog   = "catalog"
)

// Campos compartidos por todas las colecciones.
const (
	FieldOwnerID    = "ownerId"
	FieldCustomerID = "customerId"
	FieldOrderID    = "orderId"
	FieldCreatedAt  = "createdAt"
	FieldUpdatedAt  = "updatedAt"
	FieldName       = "name"
)

// Campos de Customer.
const (
	FieldDisplayID     = "displayId"
	FieldPhone         = "phone"
	FieldEmail         = "email"
	FieldAddress       = "address"
	FieldTotalOrders   = "totalOrders"
	FieldTotalSpent    = "totalSpent"
	FieldLastOrderDate = "lastOrderDate"
)

// Customer cliente de la tienda con sus agregados desnormalizados.
// TotalOrders y TotalSpent se mantienen por incrementos desde las operaciones de pedidos y pagos.
type Customer struct {
	ID            string
	OwnerID       string
	DisplayID     string // {PREFIJO}-{secuencia de 5 dígitos}
	Name          string
	Phone         string
	Email         string
	Address       string
	TotalOrders   int64
	TotalSpent    decimal.Decimal
	LastOrderDate string
	CreatedAt     string
	UpdatedAt     string
}

// CustomerFromDocument mapea un documento remoto a Customer.
func CustomerFromDocument(doc document.Document) Customer {
	f := doc.Fields
	return Customer{
		ID:            doc.ID,
		OwnerID:       f.String(FieldOwnerID),
		DisplayID:     f.String(FieldDisplayID),
		Name:          f.String(FieldName),
		Phone:         f.String(FieldPhone),
		Email:         f.String(FieldEmail),
		Address:       f.String(FieldAddress),
		TotalOrders:   f.Int(FieldTotalOrders),
		TotalSpent:    f.Decimal(FieldTotalSpent),
		LastOrderDate: f.String(FieldLastOrderDate),
		CreatedAt:     f.String(FieldCreatedAt),
		UpdatedAt:     f.String(FieldUpdatedAt),
	}
}

// Fields serializa el cliente completo (creación).
func (c Customer) Fields() document.Fields {
	return document.Fields{
		FieldOwnerID:       c.OwnerID,
		FieldDisplayID:     c.DisplayID,
		FieldName:          c.Name,
		FieldPhone:         c.Phone,
		FieldEmail:         c.Email,
		FieldAddress:       c.Address,
		FieldTotalOrders:   c.TotalOrders,
		FieldTotalSpent:    c.TotalSpent,
		FieldLastOrderDate: c.LastOrderDate,
		FieldCreatedAt:     c.CreatedAt,
		FieldUpdatedAt:     c.UpdatedAt,
	}
}

// DisplayIDPrefix deriva el prefijo del ID visible a partir del nombre del tenant:
// las tres primeras letras o dígitos en mayúscula, "CUS" si no hay ninguno.
func DisplayIDPrefix(tenantName string) string {
	var b strings.Builder
	for _, r := range tenantName {
		if b.Len() >= 3 {
			break
		}
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			b.WriteRune(unicode.ToUpper(r))
		}
	}
	if b.Len() == 0 {
		return "CUS"
	}
	return b.String()
}

// NextCustomerDisplayID calcula el siguiente ID visible: máxima secuencia existente + 1.
// Sólo ve los clientes conocidos localmente; dos sesiones concurrentes del mismo propietario
// pueden obtener la misma secuencia.
func NextCustomerDisplayID(tenantName string, existing []Customer) string {
	prefix := DisplayIDPrefix(tenantName)
	var maxSeq int64
	for _, c := range existing {
		if seq, ok := displayIDSequence(c.DisplayID); ok && seq > maxSeq {
			maxSeq = seq
		}
	}
	return fmt.Sprintf("%s-%05d", prefix, maxSeq+1)
}

func displayIDSequence(displayID string) (int64, bool) {
	i := strings.LastIndex(displayID, "-")
	if i < 0 || i == len(displayID)-1 {
		return 0, false
	}
	n, err := strconv.ParseInt(displayID[i+1:], 10, 64)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// Now marca de tiempo ISO-8601 usada en createdAt/updatedAt.
func Now() string {
	return document.FormatTime(time.Now())
}
