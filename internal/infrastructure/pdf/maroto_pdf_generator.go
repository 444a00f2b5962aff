// Package pdf genera el recibo de un pedido.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Tienda              │  N° Pedido + Fecha            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CLIENTE: Nombre + ID visible + contacto                     │
//	│  ENTREGA: estado + fecha de entrega                          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Prenda | P.Unit | Subtotal                    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  PAGOS: Fecha | Tipo | Canal | Importe                       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Total / Pagado / SALDO + estado de pago            │
//	│  FOOTER: QR con el ID del pedido                             │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/bhuvanux/Sewvee-BMS-sub000/internal/application/receipt"
	"github.com/bhuvanux/Sewvee-BMS-sub000/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa receipt.Generator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateReceiptPDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateReceiptPDF(_ context.Context, r receipt.Receipt) ([]byte, error) {
	store := nonEmpty(r.TenantName, "Recibo")
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Recibo de pedido", true).
		WithAuthor(store, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(store, r.Order, r.IssuedAt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(customerRow(r.Order, r.Customer))
	m.AddRows(deliveryRow(r.Order))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	// Prendas
	m.AddRows(tableHeaderRow("Cant.", "Prenda", "Precio Unit.", "Subtotal"))
	for _, it := range r.Order.Items {
		m.AddRows(tableRow(it.Quantity, it.Name, it.UnitPrice, it.Subtotal()))
	}

	// Pagos
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(sectionTitleRow("PAGOS"))
	m.AddRows(tableHeaderRow("Fecha", "Tipo", "Canal", "Importe"))
	for _, p := range r.Payments {
		m.AddRows(paymentRow(p))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(r.Order, entity.SumAmounts(r.Payments)))

	m.AddRows(line.NewRow(3))
	m.AddRows(footerRow(r.Order))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: tienda (izq) y N° pedido + fecha (der).
func headerRow(store string, order entity.Order, issuedAt string) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(store, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Emitido: "+datePart(issuedAt), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("RECIBO DE PEDIDO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(strings.ToUpper(shortID(order.ID)), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+datePart(order.CreatedAt), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// customerRow: datos del cliente; si fue borrado se usa el nombre guardado en el pedido.
func customerRow(order entity.Order, customer *entity.Customer) core.Row {
	name := nonEmpty(order.CustomerName, "-")
	detail := "Cliente no registrado"
	if customer != nil {
		name = customer.Name
		detail = fmt.Sprintf("ID: %s   |   Tel: %s   |   Email: %s",
			nonEmpty(customer.DisplayID, "-"),
			nonEmpty(customer.Phone, "-"),
			nonEmpty(customer.Email, "-"),
		)
	}
	return row.New(14).Add(
		col.New(12).Add(
			text.New("CLIENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(name, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(detail, props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// deliveryRow: estado del pedido y fecha de entrega.
func deliveryRow(order entity.Order) core.Row {
	return row.New(8).Add(
		col.New(12).Add(
			text.New(fmt.Sprintf("Estado: %s   |   Entrega: %s",
				nonEmpty(order.Status, "-"),
				nonEmpty(datePart(order.DeliveryDate), "-"),
			), props.Text{Size: 8, Top: 2, Color: colorGray}),
		),
	)
}

func sectionTitleRow(title string) core.Row {
	return row.New(6).Add(col.New(12).Add(
		text.New(title, props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
		}),
	))
}

// tableHeaderRow: cabecera de 4 columnas.
func tableHeaderRow(c1, c2, c3, c4 string) core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).WithStyle(&props.Cell{BackgroundColor: colorPrimary}).Add(
		h(c1, 2, align.Center),
		h(c2, 5, align.Left),
		h(c3, 2, align.Right),
		h(c4, 3, align.Right),
	)
}

// tableRow: una prenda del pedido.
func tableRow(qty int64, name string, unit, subtotal decimal.Decimal) core.Row {
	return row.New(7).Add(
		col.New(2).Add(text.New(fmt.Sprintf("%d", qty), props.Text{Size: 8, Align: align.Center, Top: 1})),
		col.New(5).Add(text.New(name, props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
		col.New(2).Add(text.New(formatMoney(unit), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		col.New(3).Add(text.New(formatMoney(subtotal), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
	)
}

// paymentRow: un pago del historial.
func paymentRow(p entity.Payment) core.Row {
	return row.New(7).Add(
		col.New(2).Add(text.New(datePart(p.Date), props.Text{Size: 8, Align: align.Center, Top: 1})),
		col.New(5).Add(text.New(nonEmpty(p.Type, "-"), props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
		col.New(2).Add(text.New(nonEmpty(p.Mode, "-"), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		col.New(3).Add(text.New(formatMoney(p.Amount), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
	)
}

// totalsRow: total, pagado (suma de pagos vivos) y saldo guardado del pedido.
func totalsRow(order entity.Order, paid decimal.Decimal) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1, Top: top})
	}
	grand := func(s string, top float64) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1, Top: top,
		})
	}

	return row.New(26).Add(
		col.New(3),
		col.New(3).Add(
			label("Total:"),
			text.New("Pagado:", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: 6}),
			text.New("SALDO:", props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 2, Top: 12}),
			text.New(order.PaymentStatus, props.Text{Size: 8, Align: align.Right, Color: colorGray, Right: 2, Top: 19}),
		),
		col.New(3).Add(
			value(formatMoney(order.Total), 0),
			value(formatMoney(paid), 6),
			grand(formatMoney(order.Balance), 12),
		),
		col.New(3),
	)
}

// footerRow: QR con el ID del pedido para buscarlo desde la app.
func footerRow(order entity.Order) core.Row {
	return row.New(40).Add(
		col.New(3).Add(code.NewQr(order.ID, props.Rect{Percent: 95, Center: true})),
		col.New(9).Add(
			text.New("Gracias por su pedido.", props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 8, Left: 3, Color: colorPrimary,
			}),
			text.New("Conserve este recibo para recoger sus prendas.", props.Text{
				Size: 8, Top: 16, Left: 3, Color: colorGray,
			}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatMoney importe con dos decimales y separador de miles.
// Ej: 25000 → "25,000.00", -1500.5 → "-1,500.50"
func formatMoney(d decimal.Decimal) string {
	s := d.Abs().StringFixed(2)
	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}
	n := len(intPart)
	buf := make([]byte, 0, n+n/3+len(frac)+1)
	if d.IsNegative() {
		buf = append(buf, '-')
	}
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, ',')
		}
		buf = append(buf, c)
	}
	return string(buf) + frac
}

// datePart recorta un ISO-8601 a su fecha (AAAA-MM-DD).
func datePart(ts string) string {
	if len(ts) >= 10 {
		return ts[:10]
	}
	return ts
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
