package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "s3cret"

func TestGenerateParse(t *testing.T) {
	id := Identity{UserID: "u1", OwnerID: "o1", TenantName: "Sewvee"}
	tok, err := Generate(secret, id, "ledger", 5)
	require.NoError(t, err)

	got, err := Parse(secret, tok)
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestParse_Errores(t *testing.T) {
	tok, err := Generate(secret, Identity{UserID: "u1", OwnerID: "o1"}, "ledger", 5)
	require.NoError(t, err)

	_, err = Parse("otro", tok)
	assert.Error(t, err, "firma incorrecta")

	expired, err := Generate(secret, Identity{UserID: "u1"}, "ledger", -1)
	require.NoError(t, err)
	_, err = Parse(secret, expired)
	assert.Error(t, err, "expirado")

	_, err = Parse("", tok)
	assert.Error(t, err)
	_, err = Generate("", Identity{}, "ledger", 5)
	assert.Error(t, err)
}
