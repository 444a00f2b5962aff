package ledger

import (
	"context"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/bhuvanux/Sewvee-BMS-sub000/internal/domain/document"
	"github.com/bhuvanux/Sewvee-BMS-sub000/internal/domain/entity"
	"github.com/bhuvanux/Sewvee-BMS-sub000/internal/domain/repository"
)

// Drift campo guardado que no coincide con el valor que se deriva de los pagos vivos.
type Drift struct {
	Collection string
	ID         string
	Field      string
	Stored     string
	Expected   string
}

func (d Drift) String() string {
	return fmt.Sprintf("%s/%s %s: guardado=%s esperado=%s", d.Collection, d.ID, d.Field, d.Stored, d.Expected)
}

// AuditUseCase compara los agregados guardados con los recalculados. Sólo lee.
type AuditUseCase struct {
	store repository.DocumentStore
}

// NewAuditUseCase construye el caso de uso.
func NewAuditUseCase(store repository.DocumentStore) *AuditUseCase {
	return &AuditUseCase{store: store}
}

// Audit revisa, para el propietario:
//   - pedido: advance = suma de sus pagos; balance y paymentStatus derivados de total y advance.
//   - cliente: totalOrders = nº de pedidos; totalSpent = suma de los pagos que lo referencian.
func (uc *AuditUseCase) Audit(ctx context.Context, ownerID string) ([]Drift, error) {
	if err := requireOwner(ownerID); err != nil {
		return nil, err
	}
	byOwner := document.Where(entity.FieldOwnerID, ownerID)
	orderDocs, err := uc.store.Query(ctx, entity.CollectionOrders, byOwner)
	if err != nil {
		return nil, fmt.Errorf("auditar: pedidos: %w", err)
	}
	paymentDocs, err := uc.store.Query(ctx, entity.CollectionPayments, byOwner)
	if err != nil {
		return nil, fmt.Errorf("auditar: pagos: %w", err)
	}
	customerDocs, err := uc.store.Query(ctx, entity.CollectionCustomers, byOwner)
	if err != nil {
		return nil, fmt.Errorf("auditar: clientes: %w", err)
	}

	paidByOrder := map[string]decimal.Decimal{}
	paidByCustomer := map[string]decimal.Decimal{}
	for _, d := range paymentDocs {
		p := entity.PaymentFromDocument(d)
		paidByOrder[p.OrderID] = paidByOrder[p.OrderID].Add(p.Amount)
		paidByCustomer[p.CustomerID] = paidByCustomer[p.CustomerID].Add(p.Amount)
	}
	ordersByCustomer := map[string]int64{}

	var drifts []Drift
	for _, d := range orderDocs {
		o := entity.OrderFromDocument(d)
		ordersByCustomer[o.CustomerID]++
		paid := paidByOrder[o.ID]
		if !o.Advance.Equal(paid) {
			drifts = append(drifts, Drift{entity.CollectionOrders, o.ID, entity.FieldAdvance, o.Advance.String(), paid.String()})
		}
		if want := entity.DeriveBalance(o.Total, o.Advance); !o.Balance.Equal(want) {
			drifts = append(drifts, Drift{entity.CollectionOrders, o.ID, entity.FieldBalance, o.Balance.String(), want.String()})
		}
		if want := entity.DerivePaymentStatus(o.Total, o.Advance); o.PaymentStatus != want {
			drifts = append(drifts, Drift{entity.CollectionOrders, o.ID, entity.FieldPaymentStatus, o.PaymentStatus, want})
		}
	}
	for _, d := range customerDocs {
		c := entity.CustomerFromDocument(d)
		if want := ordersByCustomer[c.ID]; c.TotalOrders != want {
			drifts = append(drifts, Drift{entity.CollectionCustomers, c.ID, entity.FieldTotalOrders,
				strconv.FormatInt(c.TotalOrders, 10), strconv.FormatInt(want, 10)})
		}
		if want := paidByCustomer[c.ID]; !c.TotalSpent.Equal(want) {
			drifts = append(drifts, Drift{entity.CollectionCustomers, c.ID, entity.FieldTotalSpent, c.TotalSpent.String(), want.String()})
		}
	}
	return drifts, nil
}
