package projection

import (
	"context"

	"github.com/bhuvanux/Sewvee-BMS-sub000/internal/domain/entity"
)

// CatalogHealer escrituras de reparación del catálogo.
type CatalogHealer interface {
	SeedDefaults(ctx context.Context, ownerID string) (int, error)
	EnsureCatchAll(ctx context.Context, ownerID string) error
}

// selfHeal se llama después de publicar la instantánea del catálogo.
// Vacío: siembra el catálogo por defecto una sola vez. Sin comodín: lo añade.
// La marca en vuelo es del propietario, no de la sesión: se limpia cuando una instantánea
// posterior muestra el resultado o la escritura falla, de modo que ni una instantánea vacía
// atrasada ni una sesión reabierta siembran dos veces.
func (l *LiveStore) selfHeal(sess *session, entries []entity.CatalogEntry) {
	if l.healer == nil {
		return
	}
	owner := sess.ownerID
	empty := len(entries) == 0
	missingCatchAll := !empty && !entity.HasCatchAll(entries)

	l.mu.Lock()
	if l.sessions[owner] != sess {
		l.mu.Unlock()
		return
	}
	if !empty {
		delete(l.seeding, owner)
	}
	if !missingCatchAll {
		delete(l.healing, owner)
	}
	seed := empty && !l.seeding[owner]
	heal := missingCatchAll && !l.healing[owner] && !l.seeding[owner]
	if seed {
		l.seeding[owner] = true
	}
	if heal {
		l.healing[owner] = true
	}
	l.mu.Unlock()

	switch {
	case seed:
		go l.runSeed(owner)
	case heal:
		go l.runEnsureCatchAll(owner)
	}
}

func (l *LiveStore) runSeed(ownerID string) {
	ctx, cancel := context.WithTimeout(context.Background(), l.healTimeout)
	defer cancel()
	n, err := l.healer.SeedDefaults(ctx, ownerID)
	if err != nil {
		l.log.Error().Err(err).Str("owner_id", ownerID).Msg("no se pudo sembrar el catálogo por defecto")
		l.mu.Lock()
		delete(l.seeding, ownerID)
		l.mu.Unlock()
		return
	}
	l.log.Debug().Str("owner_id", ownerID).Int("entries", n).Msg("catálogo vacío reparado")
}

func (l *LiveStore) runEnsureCatchAll(ownerID string) {
	ctx, cancel := context.WithTimeout(context.Background(), l.healTimeout)
	defer cancel()
	if err := l.healer.EnsureCatchAll(ctx, ownerID); err != nil {
		l.log.Error().Err(err).Str("owner_id", ownerID).Msg("no se pudo añadir la categoría comodín")
		l.mu.Lock()
		delete(l.healing, ownerID)
		l.mu.Unlock()
	}
}
