package ledger_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bhuvanux/Sewvee-BMS-sub000/internal/application/dto"
	"github.com/bhuvanux/Sewvee-BMS-sub000/internal/application/ledger"
	"github.com/bhuvanux/Sewvee-BMS-sub000/internal/domain"
	"github.com/bhuvanux/Sewvee-BMS-sub000/internal/domain/document"
	"github.com/bhuvanux/Sewvee-BMS-sub000/internal/domain/entity"
	"github.com/bhuvanux/Sewvee-BMS-sub000/internal/infrastructure/docstore"
	"github.com/bhuvanux/Sewvee-BMS-sub000/pkg/logger"
)

const (
	owner  = "owner-1"
	tenant = "Sewvee"
)

type fixture struct {
	store     *docstore.MemoryStore
	customers *ledger.CustomerUseCase
	orders    *ledger.OrderUseCase
	payments  *ledger.PaymentUseCase
	audit     *ledger.AuditUseCase
}

func newFixture() *fixture {
	store := docstore.NewMemoryStore()
	log := logger.Nop()
	return &fixture{
		store:     store,
		customers: ledger.NewCustomerUseCase(store, nil, log),
		orders:    ledger.NewOrderUseCase(store, log),
		payments:  ledger.NewPaymentUseCase(store, log),
		audit:     ledger.NewAuditUseCase(store),
	}
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func ptr[T any](v T) *T { return &v }

func (f *fixture) customer(t *testing.T, id string) entity.Customer {
	t.Helper()
	doc, err := f.store.Get(context.Background(), entity.CollectionCustomers, id)
	require.NoError(t, err)
	require.NotNil(t, doc)
	return entity.CustomerFromDocument(*doc)
}

func (f *fixture) order(t *testing.T, id string) entity.Order {
	t.Helper()
	doc, err := f.store.Get(context.Background(), entity.CollectionOrders, id)
	require.NoError(t, err)
	require.NotNil(t, doc)
	return entity.OrderFromDocument(*doc)
}

func (f *fixture) paymentsOf(t *testing.T, orderID string) []entity.Payment {
	t.Helper()
	docs, err := f.store.Query(context.Background(), entity.CollectionPayments, document.Where(entity.FieldOrderID, orderID))
	require.NoError(t, err)
	out := make([]entity.Payment, 0, len(docs))
	for _, doc := range docs {
		out = append(out, entity.PaymentFromDocument(doc))
	}
	return out
}

func (f *fixture) assertConsistent(t *testing.T) {
	t.Helper()
	drifts, err := f.audit.Audit(context.Background(), owner)
	require.NoError(t, err)
	assert.Empty(t, drifts)
}

func assertDec(t *testing.T, want string, got decimal.Decimal, msg string) {
	t.Helper()
	assert.True(t, got.Equal(d(want)), "%s: esperado %s, obtenido %s", msg, want, got)
}

// Alta con anticipo, pago del resto, corrección del pago y borrado del pedido.
func TestLedger_CicloCompleto(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	c, err := f.customers.CreateCustomer(ctx, owner, tenant, dto.CreateCustomerRequest{Name: "Priya"})
	require.NoError(t, err)
	assert.Equal(t, "SEW-00001", c.DisplayID)

	// Pedido con total 1000 y anticipo 300.
	o, err := f.orders.CreateOrder(ctx, owner, dto.CreateOrderRequest{CustomerID: c.ID, Total: d("1000"), Advance: d("300")})
	require.NoError(t, err)
	assertDec(t, "700", o.Balance, "balance")
	assert.Equal(t, entity.PaymentStatusPartiallyPaid, o.PaymentStatus)
	assert.Equal(t, "Priya", o.CustomerName)

	pays := f.paymentsOf(t, o.ID)
	require.Len(t, pays, 1)
	assert.Equal(t, entity.PaymentTypeAdvance, pays[0].Type)
	assertDec(t, "300", pays[0].Amount, "importe del anticipo")
	assert.Equal(t, c.ID, pays[0].CustomerID)

	got := f.customer(t, c.ID)
	assert.Equal(t, int64(1), got.TotalOrders)
	assertDec(t, "300", got.TotalSpent, "totalSpent tras alta")
	assert.NotEmpty(t, got.LastOrderDate)
	f.assertConsistent(t)

	// Pago del resto.
	p, err := f.payments.AddPayment(ctx, owner, dto.CreatePaymentRequest{OrderID: o.ID, Amount: d("700")})
	require.NoError(t, err)
	assert.Equal(t, c.ID, p.CustomerID, "el cliente se hereda del pedido")
	assert.Equal(t, ledger.DefaultPaymentMode, p.Mode)

	ord := f.order(t, o.ID)
	assertDec(t, "1000", ord.Advance, "advance")
	assertDec(t, "0", ord.Balance, "balance")
	assert.Equal(t, entity.PaymentStatusPaid, ord.PaymentStatus)
	assertDec(t, "1000", f.customer(t, c.ID).TotalSpent, "totalSpent tras pago")
	f.assertConsistent(t)

	// El pago de 700 pasa a 400.
	updated, applied, err := f.payments.UpdatePayment(ctx, owner, p.ID, dto.UpdatePaymentRequest{Amount: ptr(d("400"))})
	require.NoError(t, err)
	assert.True(t, applied)
	assertDec(t, "400", updated.Amount, "importe actualizado")

	ord = f.order(t, o.ID)
	assertDec(t, "700", ord.Advance, "advance")
	assertDec(t, "300", ord.Balance, "balance")
	assert.Equal(t, entity.PaymentStatusPartiallyPaid, ord.PaymentStatus)
	assertDec(t, "700", f.customer(t, c.ID).TotalSpent, "totalSpent tras corrección")
	f.assertConsistent(t)

	// Borrado del pedido: se revierte la suma viva de pagos.
	deleted, err := f.orders.DeleteOrder(ctx, owner, o.ID)
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.Empty(t, f.paymentsOf(t, o.ID))
	missing, _ := f.store.Get(ctx, entity.CollectionOrders, o.ID)
	assert.Nil(t, missing)

	got = f.customer(t, c.ID)
	assert.Equal(t, int64(0), got.TotalOrders)
	assertDec(t, "0", got.TotalSpent, "totalSpent tras borrado")
	f.assertConsistent(t)
}

// El borrado revierte la suma de los pagos vivos aunque advance se haya editado a mano.
func TestDeleteOrder_RevierteSumaDePagosNoAdvance(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	c, err := f.customers.CreateCustomer(ctx, owner, tenant, dto.CreateCustomerRequest{Name: "Anil"})
	require.NoError(t, err)
	o, err := f.orders.CreateOrder(ctx, owner, dto.CreateOrderRequest{CustomerID: c.ID, Total: d("2000"), Advance: d("200")})
	require.NoError(t, err)
	_, err = f.payments.AddPayment(ctx, owner, dto.CreatePaymentRequest{OrderID: o.ID, Amount: d("300")})
	require.NoError(t, err)
	assertDec(t, "500", f.customer(t, c.ID).TotalSpent, "antes del borrado")

	edited, err := f.orders.UpdateOrder(ctx, owner, o.ID, dto.UpdateOrderRequest{Advance: ptr(d("999"))})
	require.NoError(t, err)
	assertDec(t, "1001", edited.Balance, "balance recalculado con el advance editado")

	_, err = f.orders.DeleteOrder(ctx, owner, o.ID)
	require.NoError(t, err)
	got := f.customer(t, c.ID)
	assert.Equal(t, int64(0), got.TotalOrders)
	assertDec(t, "0", got.TotalSpent, "se restan exactamente 500")
}

func TestCreateOrder_SinAnticipoNoCreaPago(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	o, err := f.orders.CreateOrder(ctx, owner, dto.CreateOrderRequest{CustomerName: "Walk-in", Total: d("450")})
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusUnpaid, o.PaymentStatus)
	assertDec(t, "450", o.Balance, "balance")
	assert.Empty(t, f.paymentsOf(t, o.ID))
}

func TestCreateOrder_TotalDesdeLineas(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	o, err := f.orders.CreateOrder(ctx, owner, dto.CreateOrderRequest{
		Total: d("1"), // se ignora cuando hay líneas
		Items: []dto.OrderItemRequest{
			{Name: "Blouse", Quantity: 2, UnitPrice: d("350")},
			{Name: "Lehenga", Quantity: 1, UnitPrice: d("1200")},
		},
		Advance: d("1900"),
	})
	require.NoError(t, err)
	assertDec(t, "1900", o.Total, "total")
	assert.Equal(t, entity.PaymentStatusPaid, o.PaymentStatus)
}

func TestLedger_SinPropietario_ErrUnauthorized(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	_, err := f.customers.CreateCustomer(ctx, "", tenant, dto.CreateCustomerRequest{Name: "x"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = f.orders.CreateOrder(ctx, "  ", dto.CreateOrderRequest{Total: d("10")})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = f.payments.AddPayment(ctx, "", dto.CreatePaymentRequest{OrderID: "o", Amount: d("1")})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, _, err = f.payments.UpdatePayment(ctx, "", "p", dto.UpdatePaymentRequest{})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = f.payments.DeletePayment(ctx, "", "p")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = f.orders.DeleteOrder(ctx, "", "o")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	all, _ := f.store.Query(ctx, entity.CollectionOrders)
	assert.Empty(t, all, "nada se escribe sin propietario")
}

func TestCreateOrder_ValidaEntrada(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	_, err := f.orders.CreateOrder(ctx, owner, dto.CreateOrderRequest{Total: d("-1")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = f.orders.CreateOrder(ctx, owner, dto.CreateOrderRequest{CustomerID: "ghost", Total: d("10")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLedger_OtroPropietario_ErrForbidden(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	o, err := f.orders.CreateOrder(ctx, owner, dto.CreateOrderRequest{Total: d("100"), Advance: d("10")})
	require.NoError(t, err)

	_, err = f.payments.AddPayment(ctx, "intruder", dto.CreatePaymentRequest{OrderID: o.ID, Amount: d("5")})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = f.orders.DeleteOrder(ctx, "intruder", o.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = f.orders.UpdateOrder(ctx, "intruder", o.ID, dto.UpdateOrderRequest{Notes: ptr("x")})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	assertDec(t, "10", f.order(t, o.ID).Advance, "sin cambios")
}

func TestUpdateOrder_MergeYReestampado(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	// Documento parcial sin ownerId ni createdAt.
	require.NoError(t, f.store.Set(ctx, entity.CollectionOrders, "o1", document.Fields{
		entity.FieldTotal:   d("500"),
		entity.FieldAdvance: d("100"),
		entity.FieldNotes:   "original",
	}, false))

	o, err := f.orders.UpdateOrder(ctx, owner, "o1", dto.UpdateOrderRequest{Status: ptr("Ready")})
	require.NoError(t, err)
	assert.Equal(t, "Ready", o.Status)

	got := f.order(t, "o1")
	assert.Equal(t, owner, got.OwnerID)
	assert.NotEmpty(t, got.CreatedAt)
	assert.Equal(t, "original", got.Notes, "los campos ausentes del parche se conservan")

	// Cambio de total: balance y estado con valores efectivos.
	o, err = f.orders.UpdateOrder(ctx, owner, "o1", dto.UpdateOrderRequest{Total: ptr(d("100"))})
	require.NoError(t, err)
	assertDec(t, "0", o.Balance, "balance")
	assert.Equal(t, entity.PaymentStatusPaid, o.PaymentStatus)
	assertDec(t, "100", f.order(t, "o1").Advance, "advance intacto")
}

func TestUpdateOrder_InexistenteHaceUpsert(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	o, err := f.orders.UpdateOrder(ctx, owner, "nuevo", dto.UpdateOrderRequest{Total: ptr(d("80")), Advance: ptr(d("0"))})
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusUnpaid, o.PaymentStatus)
	got := f.order(t, "nuevo")
	assert.Equal(t, owner, got.OwnerID)
	assertDec(t, "80", got.Balance, "balance")
}

func TestDeleteOrder_Inexistente_NoOp(t *testing.T) {
	deleted, err := newFixture().orders.DeleteOrder(context.Background(), owner, "nope")
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestUpdatePayment_SinCambioDeImporte_NoTocaElLibro(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	c, err := f.customers.CreateCustomer(ctx, owner, tenant, dto.CreateCustomerRequest{Name: "Meera"})
	require.NoError(t, err)
	o, err := f.orders.CreateOrder(ctx, owner, dto.CreateOrderRequest{CustomerID: c.ID, Total: d("600")})
	require.NoError(t, err)
	p, err := f.payments.AddPayment(ctx, owner, dto.CreatePaymentRequest{OrderID: o.ID, Amount: d("200"), Mode: "UPI"})
	require.NoError(t, err)

	updated, applied, err := f.payments.UpdatePayment(ctx, owner, p.ID, dto.UpdatePaymentRequest{
		Amount: ptr(d("200.00")),
		Mode:   ptr("Card"),
	})
	require.NoError(t, err)
	assert.True(t, applied)
	assert.Equal(t, "Card", updated.Mode)
	assertDec(t, "200", f.order(t, o.ID).Advance, "advance sin doble ajuste")
	assertDec(t, "200", f.customer(t, c.ID).TotalSpent, "totalSpent sin doble ajuste")
	f.assertConsistent(t)
}

func TestUpdatePayment_NoOps(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	_, applied, err := f.payments.UpdatePayment(ctx, owner, "nope", dto.UpdatePaymentRequest{Mode: ptr("Card")})
	require.NoError(t, err)
	assert.False(t, applied, "pago inexistente")

	o, err := f.orders.CreateOrder(ctx, owner, dto.CreateOrderRequest{Total: d("100"), Advance: d("50")})
	require.NoError(t, err)
	p := f.paymentsOf(t, o.ID)[0]
	_, applied, err = f.payments.UpdatePayment(ctx, owner, p.ID, dto.UpdatePaymentRequest{})
	require.NoError(t, err)
	assert.False(t, applied, "parche vacío")

	_, _, err = f.payments.UpdatePayment(ctx, owner, p.ID, dto.UpdatePaymentRequest{Amount: ptr(d("0"))})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdatePayment_PedidoBorrado_ErrConflict(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	require.NoError(t, f.store.Set(ctx, entity.CollectionPayments, "p1", document.Fields{
		entity.FieldOwnerID: owner,
		entity.FieldOrderID: "gone",
		entity.FieldAmount:  d("10"),
	}, false))

	_, _, err := f.payments.UpdatePayment(ctx, owner, "p1", dto.UpdatePaymentRequest{Amount: ptr(d("20"))})
	assert.ErrorIs(t, err, domain.ErrConflict)

	doc, _ := f.store.Get(ctx, entity.CollectionPayments, "p1")
	assertDec(t, "10", doc.Fields.Decimal(entity.FieldAmount), "el pago no cambia")
}

func TestDeletePayment_RevierteImporte(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	c, err := f.customers.CreateCustomer(ctx, owner, tenant, dto.CreateCustomerRequest{Name: "Ravi"})
	require.NoError(t, err)
	o, err := f.orders.CreateOrder(ctx, owner, dto.CreateOrderRequest{CustomerID: c.ID, Total: d("300"), Advance: d("100")})
	require.NoError(t, err)
	p, err := f.payments.AddPayment(ctx, owner, dto.CreatePaymentRequest{OrderID: o.ID, Amount: d("200")})
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusPaid, f.order(t, o.ID).PaymentStatus)

	deleted, err := f.payments.DeletePayment(ctx, owner, p.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	ord := f.order(t, o.ID)
	assertDec(t, "100", ord.Advance, "advance")
	assertDec(t, "200", ord.Balance, "balance")
	assert.Equal(t, entity.PaymentStatusPartiallyPaid, ord.PaymentStatus)
	assertDec(t, "100", f.customer(t, c.ID).TotalSpent, "totalSpent")
	f.assertConsistent(t)

	deleted, err = f.payments.DeletePayment(ctx, owner, p.ID)
	require.NoError(t, err)
	assert.False(t, deleted, "segundo borrado es no-op")
}

func TestDeletePayment_HuerfanoSinCompensacion(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	require.NoError(t, f.store.Set(ctx, entity.CollectionPayments, "p1", document.Fields{
		entity.FieldOwnerID:    owner,
		entity.FieldCustomerID: "c1",
		entity.FieldAmount:     d("10"),
	}, false))
	require.NoError(t, f.store.Set(ctx, entity.CollectionCustomers, "c1", document.Fields{
		entity.FieldOwnerID:    owner,
		entity.FieldTotalSpent: d("10"),
	}, false))

	deleted, err := f.payments.DeletePayment(ctx, owner, "p1")
	require.NoError(t, err)
	assert.True(t, deleted)
	assertDec(t, "10", f.customer(t, "c1").TotalSpent, "sin escrituras compensatorias")
}

// Un pago no puede imputarse a un cliente distinto del de su pedido: DeleteOrder compensa
// siempre al cliente del pedido.
func TestAddPayment_ClienteAjenoAlPedido_ErrInvalidInput(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	a, err := f.customers.CreateCustomer(ctx, owner, tenant, dto.CreateCustomerRequest{Name: "A"})
	require.NoError(t, err)
	b, err := f.customers.CreateCustomer(ctx, owner, tenant, dto.CreateCustomerRequest{Name: "B"})
	require.NoError(t, err)
	o, err := f.orders.CreateOrder(ctx, owner, dto.CreateOrderRequest{CustomerID: a.ID, Total: d("1000")})
	require.NoError(t, err)

	_, err = f.payments.AddPayment(ctx, owner, dto.CreatePaymentRequest{OrderID: o.ID, CustomerID: b.ID, Amount: d("400")})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, f.paymentsOf(t, o.ID), "no se escribe nada")
	assertDec(t, "0", f.customer(t, b.ID).TotalSpent, "B intacto")

	// Indicar el propio cliente del pedido es válido.
	p, err := f.payments.AddPayment(ctx, owner, dto.CreatePaymentRequest{OrderID: o.ID, CustomerID: a.ID, Amount: d("400")})
	require.NoError(t, err)
	assert.Equal(t, a.ID, p.CustomerID)
	f.assertConsistent(t)

	_, err = f.orders.DeleteOrder(ctx, owner, o.ID)
	require.NoError(t, err)
	assertDec(t, "0", f.customer(t, a.ID).TotalSpent, "A vuelve a cero")
	assertDec(t, "0", f.customer(t, b.ID).TotalSpent, "B nunca se tocó")
	f.assertConsistent(t)
}

// Pedido sin cliente: un customer_id en el pago también se rechaza.
func TestAddPayment_PedidoSinCliente_RechazaCliente(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	c, err := f.customers.CreateCustomer(ctx, owner, tenant, dto.CreateCustomerRequest{Name: "C"})
	require.NoError(t, err)
	o, err := f.orders.CreateOrder(ctx, owner, dto.CreateOrderRequest{CustomerName: "Walk-in", Total: d("100")})
	require.NoError(t, err)

	_, err = f.payments.AddPayment(ctx, owner, dto.CreatePaymentRequest{OrderID: o.ID, CustomerID: c.ID, Amount: d("10")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	f.assertConsistent(t)
}

func TestAddPayment_ClienteBorrado_SeOmiteAjuste(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	c, err := f.customers.CreateCustomer(ctx, owner, tenant, dto.CreateCustomerRequest{Name: "Tara"})
	require.NoError(t, err)
	o, err := f.orders.CreateOrder(ctx, owner, dto.CreateOrderRequest{CustomerID: c.ID, Total: d("100")})
	require.NoError(t, err)
	_, err = f.customers.DeleteCustomer(ctx, owner, c.ID)
	require.NoError(t, err)

	_, err = f.payments.AddPayment(ctx, owner, dto.CreatePaymentRequest{OrderID: o.ID, Amount: d("40")})
	require.NoError(t, err)
	assertDec(t, "40", f.order(t, o.ID).Advance, "el pedido sí se ajusta")

	_, err = f.orders.DeleteOrder(ctx, owner, o.ID)
	require.NoError(t, err, "borrar el pedido de un cliente borrado no falla")
}

func TestCustomer_IDVisibleSecuencial(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	for _, want := range []string{"SEW-00001", "SEW-00002", "SEW-00003"} {
		c, err := f.customers.CreateCustomer(ctx, owner, tenant, dto.CreateCustomerRequest{Name: want})
		require.NoError(t, err)
		assert.Equal(t, want, c.DisplayID)
	}
	other, err := f.customers.CreateCustomer(ctx, "owner-2", "", dto.CreateCustomerRequest{Name: "x"})
	require.NoError(t, err)
	assert.Equal(t, "CUS-00001", other.DisplayID, "la secuencia es por propietario")
}

func TestUpdateCustomer(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	c, err := f.customers.CreateCustomer(ctx, owner, tenant, dto.CreateCustomerRequest{Name: "Old", Phone: "123"})
	require.NoError(t, err)

	up, err := f.customers.UpdateCustomer(ctx, owner, c.ID, dto.UpdateCustomerRequest{Name: ptr("  New  ")})
	require.NoError(t, err)
	assert.Equal(t, "New", up.Name)
	assert.Equal(t, "123", f.customer(t, c.ID).Phone)

	_, err = f.customers.UpdateCustomer(ctx, owner, c.ID, dto.UpdateCustomerRequest{Name: ptr(" ")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = f.customers.UpdateCustomer(ctx, owner, "nope", dto.UpdateCustomerRequest{Name: ptr("x")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAudit_DetectaDeriva(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	o, err := f.orders.CreateOrder(ctx, owner, dto.CreateOrderRequest{Total: d("100"), Advance: d("40")})
	require.NoError(t, err)
	require.NoError(t, f.store.Update(ctx, entity.CollectionOrders, o.ID, document.Fields{entity.FieldAdvance: d("55")}))

	drifts, err := f.audit.Audit(ctx, owner)
	require.NoError(t, err)
	fields := make([]string, 0, len(drifts))
	for _, dr := range drifts {
		fields = append(fields, dr.Field)
	}
	assert.ElementsMatch(t, []string{entity.FieldAdvance, entity.FieldBalance}, fields)
}
