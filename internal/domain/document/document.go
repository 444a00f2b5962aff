// Package document define los tipos primitivos del almacén de documentos sin esquema:
// campos, documentos, filtros de igualdad y el centinela de incremento atómico.
package document

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// Fields contenido de un documento (nombre de campo -> valor).
type Fields map[string]any

// Document documento remoto con su ID adjunto.
type Document struct {
	ID     string
	Fields Fields
}

// Filter condición de igualdad sobre un campo (where field == value).
type Filter struct {
	Field string
	Value string
}

// Where construye un filtro de igualdad.
func Where(field, value string) Filter {
	return Filter{Field: field, Value: value}
}

// Matches indica si los campos cumplen todos los filtros.
func Matches(f Fields, filters []Filter) bool {
	for _, flt := range filters {
		v, ok := f[flt.Field]
		if !ok || fmt.Sprint(v) != flt.Value {
			return false
		}
	}
	return true
}

// Increment centinela: usado como valor de un campo en Set/Update pide al almacén
// sumar Delta al valor numérico actual de forma atómica (un campo ausente cuenta como cero).
type Increment struct {
	Delta decimal.Decimal
}

// Inc construye un incremento atómico.
func Inc(delta decimal.Decimal) Increment {
	return Increment{Delta: delta}
}

// IncInt atajo para contadores enteros.
func IncInt(delta int64) Increment {
	return Increment{Delta: decimal.NewFromInt(delta)}
}

// Clone copia superficial de los campos (los slices/mapas anidados se comparten).
func (f Fields) Clone() Fields {
	out := make(Fields, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// String devuelve el campo como texto ("" si no existe).
func (f Fields) String(key string) string {
	v, ok := f[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// Decimal devuelve el campo como decimal (cero si no existe o no es numérico).
func (f Fields) Decimal(key string) decimal.Decimal {
	d, _ := ToDecimal(f[key])
	return d
}

// Int devuelve el campo como entero.
func (f Fields) Int(key string) int64 {
	return f.Decimal(key).IntPart()
}

// Time interpreta el campo como marca de tiempo RFC 3339 (cero si falta o es inválido).
func (f Fields) Time(key string) time.Time {
	switch v := f[key].(type) {
	case time.Time:
		return v
	case string:
		t, err := time.Parse(time.RFC3339Nano, v)
		if err != nil {
			return time.Time{}
		}
		return t
	}
	return time.Time{}
}

// Maps devuelve un campo de tipo lista de objetos (p.ej. las líneas de un pedido).
// Acepta tanto []Fields/[]map[string]any como []any decodificado desde JSON.
func (f Fields) Maps(key string) []Fields {
	switch v := f[key].(type) {
	case []Fields:
		return v
	case []map[string]any:
		out := make([]Fields, 0, len(v))
		for _, m := range v {
			out = append(out, Fields(m))
		}
		return out
	case []any:
		out := make([]Fields, 0, len(v))
		for _, item := range v {
			switch m := item.(type) {
			case map[string]any:
				out = append(out, Fields(m))
			case Fields:
				out = append(out, m)
			}
		}
		return out
	}
	return nil
}

// ToDecimal convierte los valores numéricos que puede contener un documento
// (decimal, números Go, json.Number o texto) a decimal.Decimal.
func ToDecimal(v any) (decimal.Decimal, bool) {
	switch n := v.(type) {
	case nil:
		return decimal.Zero, false
	case decimal.Decimal:
		return n, true
	case *decimal.Decimal:
		if n == nil {
			return decimal.Zero, false
		}
		return *n, true
	case int:
		return decimal.NewFromInt(int64(n)), true
	case int32:
		return decimal.NewFromInt(int64(n)), true
	case int64:
		return decimal.NewFromInt(n), true
	case float32:
		return decimal.NewFromFloat32(n), true
	case float64:
		return decimal.NewFromFloat(n), true
	case json.Number:
		d, err := decimal.NewFromString(n.String())
		return d, err == nil
	case string:
		if n == "" {
			return decimal.Zero, false
		}
		d, err := decimal.NewFromString(n)
		if err != nil {
			if i, ierr := strconv.ParseInt(n, 10, 64); ierr == nil {
				return decimal.NewFromInt(i), true
			}
			return decimal.Zero, false
		}
		return d, true
	}
	return decimal.Zero, false
}

// FormatTime serializa marcas de tiempo como ISO-8601 en UTC: el orden lexicográfico
// del texto coincide con el cronológico.
func FormatTime(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z07:00")
}
