// Package catalog repara el catálogo de un propietario: siembra el conjunto por defecto cuando
// está vacío y añade la categoría comodín cuando falta. No forma parte de ninguna acción del
// usuario; lo dispara la suscripción del catálogo.
package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/bhuvanux/Sewvee-BMS-sub000/internal/domain"
	"github.com/bhuvanux/Sewvee-BMS-sub000/internal/domain/entity"
	"github.com/bhuvanux/Sewvee-BMS-sub000/internal/domain/repository"
	"github.com/bhuvanux/Sewvee-BMS-sub000/pkg/logger"
)

// SeedUseCase escrituras de auto-reparación del catálogo.
type SeedUseCase struct {
	store repository.DocumentStore
	log   *logger.Logger
}

// NewSeedUseCase construye el caso de uso.
func NewSeedUseCase(store repository.DocumentStore, log *logger.Logger) *SeedUseCase {
	return &SeedUseCase{store: store, log: log.WithComponent("catalog.seed")}
}

// SeedDefaults escribe el catálogo por defecto en un único lote, cada entrada marcada con el propietario.
// No comprueba si ya existen entradas: la idempotencia depende de que sólo se invoque ante una
// instantánea vacía.
func (uc *SeedUseCase) SeedDefaults(ctx context.Context, ownerID string) (int, error) {
	if ownerID == "" {
		return 0, domain.ErrUnauthorized
	}
	now := entity.Now()
	batch := uc.store.Batch()
	for _, e := range entity.DefaultCatalog() {
		e.ID = uuid.New().String()
		e.OwnerID = ownerID
		e.CreatedAt = now
		batch.Set(entity.CollectionCatalog, e.ID, e.Fields(), false)
	}
	n := batch.Len()
	if err := batch.Commit(ctx); err != nil {
		return 0, fmt.Errorf("sembrar catálogo: %w", err)
	}
	uc.log.Info().Str("owner_id", ownerID).Int("entries", n).Msg("catálogo por defecto sembrado")
	return n, nil
}

// EnsureCatchAll añade sólo la categoría comodín.
func (uc *SeedUseCase) EnsureCatchAll(ctx context.Context, ownerID string) error {
	if ownerID == "" {
		return domain.ErrUnauthorized
	}
	e := entity.CatchAllCategory()
	e.ID = uuid.New().String()
	e.OwnerID = ownerID
	e.CreatedAt = entity.Now()
	if err := uc.store.Set(ctx, entity.CollectionCatalog, e.ID, e.Fields(), false); err != nil {
		return fmt.Errorf("añadir categoría comodín: %w", err)
	}
	uc.log.Info().Str("owner_id", ownerID).Msg("categoría comodín añadida")
	return nil
}
