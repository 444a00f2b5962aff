package document

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestToDecimal(t *testing.T) {
	cases := []struct {
		in   any
		want string
		ok   bool
	}{
		{decimal.RequireFromString("12.5"), "12.5", true},
		{int64(7), "7", true},
		{42, "42", true},
		{float64(3.25), "3.25", true},
		{json.Number("99.99"), "99.99", true},
		{"150", "150", true},
		{"", "0", false},
		{"abc", "0", false},
		{nil, "0", false},
		{true, "0", false},
	}
	for _, tc := range cases {
		got, ok := ToDecimal(tc.in)
		assert.Equal(t, tc.ok, ok, "%v", tc.in)
		assert.True(t, got.Equal(decimal.RequireFromString(tc.want)), "%v -> %s", tc.in, got)
	}
}

func TestMatches(t *testing.T) {
	f := Fields{"ownerId": "o1", "orderId": "x", "count": 3}
	assert.True(t, Matches(f, nil))
	assert.True(t, Matches(f, []Filter{Where("ownerId", "o1"), Where("orderId", "x")}))
	assert.True(t, Matches(f, []Filter{Where("count", "3")}))
	assert.False(t, Matches(f, []Filter{Where("ownerId", "o2")}))
	assert.False(t, Matches(f, []Filter{Where("missing", "")}))
}

func TestFieldsReaders(t *testing.T) {
	f := Fields{
		"name":  "Priya",
		"n":     float64(5),
		"total": "100.50",
		"at":    "2026-03-01T10:00:00.000Z",
	}
	assert.Equal(t, "Priya", f.String("name"))
	assert.Equal(t, "", f.String("missing"))
	assert.Equal(t, int64(5), f.Int("n"))
	assert.True(t, f.Decimal("total").Equal(decimal.RequireFromString("100.5")))
	assert.Equal(t, 2026, f.Time("at").Year())
	assert.True(t, f.Time("missing").IsZero())
}

func TestFormatTime_OrdenLexicografico(t *testing.T) {
	a := time.Date(2026, 1, 2, 9, 0, 0, 0, time.UTC)
	b := a.Add(1500 * time.Millisecond)
	assert.Equal(t, "2026-01-02T09:00:00.000Z", FormatTime(a))
	assert.Less(t, FormatTime(a), FormatTime(b))
}

func TestClone_NoCompartePrimerNivel(t *testing.T) {
	f := Fields{"a": 1}
	c := f.Clone()
	c["a"] = 2
	assert.Equal(t, 1, f["a"])
}
