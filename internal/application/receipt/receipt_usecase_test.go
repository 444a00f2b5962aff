package receipt_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bhuvanux/Sewvee-BMS-sub000/internal/application/receipt"
	"github.com/bhuvanux/Sewvee-BMS-sub000/internal/domain"
	"github.com/bhuvanux/Sewvee-BMS-sub000/internal/domain/document"
	"github.com/bhuvanux/Sewvee-BMS-sub000/internal/domain/entity"
	"github.com/bhuvanux/Sewvee-BMS-sub000/internal/infrastructure/docstore"
)

type fakeGenerator struct {
	got receipt.Receipt
}

func (f *fakeGenerator) GenerateReceiptPDF(_ context.Context, r receipt.Receipt) ([]byte, error) {
	f.got = r
	return []byte("%PDF-fake"), nil
}

func seed(t *testing.T, store *docstore.MemoryStore) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, entity.CollectionCustomers, "c1", document.Fields{
		entity.FieldOwnerID: "o", entity.FieldName: "Priya",
	}, false))
	require.NoError(t, store.Set(ctx, entity.CollectionOrders, "order-123456789", document.Fields{
		entity.FieldOwnerID: "o", entity.FieldCustomerID: "c1", entity.FieldTotal: decimal.NewFromInt(500),
	}, false))
	for id, date := range map[string]string{"p2": "2026-03-05", "p1": "2026-03-01", "px": "2026-03-02"} {
		order := "order-123456789"
		if id == "px" {
			order = "otro"
		}
		require.NoError(t, store.Set(ctx, entity.CollectionPayments, id, document.Fields{
			entity.FieldOwnerID: "o", entity.FieldOrderID: order, entity.FieldDate: date,
			entity.FieldAmount: decimal.NewFromInt(100),
		}, false))
	}
}

func TestDownloadReceipt(t *testing.T) {
	store := docstore.NewMemoryStore()
	seed(t, store)
	gen := &fakeGenerator{}
	uc := receipt.NewReceiptUseCase(store, gen)

	pdf, name, err := uc.DownloadReceipt(context.Background(), "o", "Sewvee", "order-123456789")
	require.NoError(t, err)
	assert.Equal(t, "recibo_order-12.pdf", name)
	assert.Equal(t, []byte("%PDF-fake"), pdf)

	assert.Equal(t, "Sewvee", gen.got.TenantName)
	require.NotNil(t, gen.got.Customer)
	assert.Equal(t, "Priya", gen.got.Customer.Name)
	require.Len(t, gen.got.Payments, 2, "sólo los pagos del pedido")
	assert.Equal(t, "p1", gen.got.Payments[0].ID, "fecha ascendente")
}

func TestDownloadReceipt_Errores(t *testing.T) {
	store := docstore.NewMemoryStore()
	seed(t, store)
	uc := receipt.NewReceiptUseCase(store, &fakeGenerator{})
	ctx := context.Background()

	_, _, err := uc.DownloadReceipt(ctx, "", "", "order-123456789")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, _, err = uc.DownloadReceipt(ctx, "o", "", "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, _, err = uc.DownloadReceipt(ctx, "intruso", "", "order-123456789")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
