package repository

import (
	"context"

	"github.com/bhuvanux/Sewvee-BMS-sub000/internal/domain/document"
)

// Unsubscribe cierra una suscripción en vivo. Es seguro llamarla más de una vez.
type Unsubscribe func()

// DocumentStore define el puerto del almacén remoto de documentos: CRUD por colección,
// lotes atómicos, incrementos del lado del servidor y suscripciones en vivo.
type DocumentStore interface {
	// Get devuelve (nil, nil) si el documento no existe.
	Get(ctx context.Context, collection, id string) (*document.Document, error)
	Query(ctx context.Context, collection string, filters ...document.Filter) ([]document.Document, error)
	Add(ctx context.Context, collection string, fields document.Fields) (string, error)
	// Set con merge=true sólo sobrescribe los campos enviados; con merge=false reemplaza el documento.
	Set(ctx context.Context, collection, id string, fields document.Fields, merge bool) error
	// Update falla con domain.ErrNotFound si el documento no existe.
	Update(ctx context.Context, collection, id string, fields document.Fields) error
	Delete(ctx context.Context, collection, id string) error

	// Batch devuelve un lote vacío; sus escrituras se aplican todas o ninguna en Commit.
	Batch() Batch

	// Subscribe entrega en onSnapshot el conjunto completo de documentos que cumplen los filtros,
	// una vez al suscribirse y de nuevo tras cada cambio. Los callbacks corren en una goroutine
	// del transporte, concurrente con cualquier operación en curso.
	Subscribe(collection string, filters []document.Filter, onSnapshot func([]document.Document), onError func(error)) (Unsubscribe, error)
}

// Batch acumula escrituras para un commit atómico.
type Batch interface {
	Set(collection, id string, fields document.Fields, merge bool) Batch
	Update(collection, id string, fields document.Fields) Batch
	Delete(collection, id string) Batch
	Len() int
	Commit(ctx context.Context) error
}
