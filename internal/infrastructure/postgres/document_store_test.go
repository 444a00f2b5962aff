package postgres

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bhuvanux/Sewvee-BMS-sub000/internal/infrastructure/docstore"
)

func TestNotifyPayload(t *testing.T) {
	p := notifyPayload("orders", "owner-1")
	assert.Equal(t, "orders|owner-1", p)

	coll, owner := parsePayload(p)
	assert.Equal(t, "orders", coll)
	assert.Equal(t, "owner-1", owner)

	coll, owner = parsePayload("catalog")
	assert.Equal(t, "catalog", coll)
	assert.Empty(t, owner, "sin propietario: despierta a todas las suscripciones de la colección")
}

func TestDecodeFields(t *testing.T) {
	f, err := decodeFields([]byte(`{"ownerId":"o","advance":"300.50","totalOrders":"2"}`))
	require.NoError(t, err)
	assert.Equal(t, "o", f.String("ownerId"))
	assert.True(t, f.Decimal("advance").Equal(decimal.RequireFromString("300.5")))
	assert.Equal(t, int64(2), f.Int("totalOrders"))

	f, err = decodeFields([]byte(`null`))
	require.NoError(t, err)
	assert.NotNil(t, f)

	_, err = decodeFields([]byte(`{`))
	assert.Error(t, err)
}

func TestWrapErr_PistaDeEsquema(t *testing.T) {
	err := wrapErr("query orders", &pgconn.PgError{Code: "42P01"})
	assert.Contains(t, err.Error(), "ledgerctl migrate")

	base := errors.New("conexión rechazada")
	err = wrapErr("get orders", base)
	assert.ErrorIs(t, err, base)
	assert.NotContains(t, err.Error(), "migrate")
}

// Las filas de un lote se bloquean siempre en el mismo orden, sea cual sea el orden de encolado.
func TestLockOrder(t *testing.T) {
	a := []docstore.Op{
		{Kind: docstore.OpDelete, Collection: "orders", ID: "o1"},
		{Kind: docstore.OpDelete, Collection: "payments", ID: "p2"},
		{Kind: docstore.OpDelete, Collection: "payments", ID: "p1"},
		{Kind: docstore.OpUpdate, Collection: "customers", ID: "c1"},
		{Kind: docstore.OpUpdate, Collection: "orders", ID: "o1"},
	}
	b := []docstore.Op{
		{Kind: docstore.OpDelete, Collection: "payments", ID: "p1"},
		{Kind: docstore.OpUpdate, Collection: "orders", ID: "o1"},
		{Kind: docstore.OpUpdate, Collection: "customers", ID: "c1"},
	}

	want := []docKey{{"customers", "c1"}, {"orders", "o1"}, {"payments", "p1"}, {"payments", "p2"}}
	assert.Equal(t, want, lockOrder(a), "sin duplicados y ordenado por colección e id")
	assert.Equal(t, []docKey{{"customers", "c1"}, {"orders", "o1"}, {"payments", "p1"}}, lockOrder(b))
	assert.Empty(t, lockOrder(nil))
}
