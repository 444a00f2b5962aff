package catalog_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bhuvanux/Sewvee-BMS-sub000/internal/application/catalog"
	"github.com/bhuvanux/Sewvee-BMS-sub000/internal/domain"
	"github.com/bhuvanux/Sewvee-BMS-sub000/internal/domain/document"
	"github.com/bhuvanux/Sewvee-BMS-sub000/internal/domain/entity"
	"github.com/bhuvanux/Sewvee-BMS-sub000/internal/infrastructure/docstore"
	"github.com/bhuvanux/Sewvee-BMS-sub000/pkg/logger"
)

func TestSeedDefaults(t *testing.T) {
	ctx := context.Background()
	store := docstore.NewMemoryStore()
	uc := catalog.NewSeedUseCase(store, logger.Nop())

	n, err := uc.SeedDefaults(ctx, "owner-1")
	require.NoError(t, err)
	assert.Equal(t, len(entity.DefaultCatalog()), n)

	docs, err := store.Query(ctx, entity.CollectionCatalog, document.Where(entity.FieldOwnerID, "owner-1"))
	require.NoError(t, err)
	require.Len(t, docs, n)

	codes := map[string]bool{}
	for _, d := range docs {
		e := entity.CatalogEntryFromDocument(d)
		assert.Equal(t, "owner-1", e.OwnerID)
		assert.NotEmpty(t, e.CreatedAt)
		codes[e.Code] = true
	}
	assert.Len(t, codes, n, "códigos únicos")
	assert.True(t, codes[entity.CatchAllCategoryCode])
}

func TestEnsureCatchAll(t *testing.T) {
	ctx := context.Background()
	store := docstore.NewMemoryStore()
	uc := catalog.NewSeedUseCase(store, logger.Nop())

	require.NoError(t, uc.EnsureCatchAll(ctx, "owner-1"))
	docs, err := store.Query(ctx, entity.CollectionCatalog)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, entity.CatchAllCategoryCode, entity.CatalogEntryFromDocument(docs[0]).Code)
}

func TestSeed_SinPropietario(t *testing.T) {
	uc := catalog.NewSeedUseCase(docstore.NewMemoryStore(), logger.Nop())
	_, err := uc.SeedDefaults(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.ErrorIs(t, uc.EnsureCatchAll(context.Background(), ""), domain.ErrUnauthorized)
}
