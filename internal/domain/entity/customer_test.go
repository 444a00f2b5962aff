package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisplayIDPrefix(t *testing.T) {
	assert.Equal(t, "SEW", DisplayIDPrefix("Sewvee Boutique"))
	assert.Equal(t, "AB1", DisplayIDPrefix("a-b 1 tailors"))
	assert.Equal(t, "CUS", DisplayIDPrefix(""))
	assert.Equal(t, "CUS", DisplayIDPrefix("--- ¡!"))
	assert.Equal(t, "XY", DisplayIDPrefix("xy"))
}

func TestNextCustomerDisplayID(t *testing.T) {
	assert.Equal(t, "SEW-00001", NextCustomerDisplayID("Sewvee", nil))

	existing := []Customer{
		{DisplayID: "SEW-00004"},
		{DisplayID: "SEW-00012"},
		{DisplayID: ""},
		{DisplayID: "basura"},
	}
	assert.Equal(t, "SEW-00013", NextCustomerDisplayID("Sewvee", existing))
}

func TestCatalogDefaults(t *testing.T) {
	entries := DefaultCatalog()
	assert.True(t, HasCatchAll(entries))
	assert.Equal(t, CatchAllCategoryCode, CatchAllCategory().Code)

	codes := map[string]bool{}
	for _, e := range entries {
		assert.False(t, codes[e.Code], "código repetido %s", e.Code)
		codes[e.Code] = true
	}
	assert.False(t, HasCatchAll(entries[:len(entries)-1]))
}
