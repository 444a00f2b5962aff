package docstore

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/bhuvanux/Sewvee-BMS-sub000/internal/domain/document"
	"github.com/bhuvanux/Sewvee-BMS-sub000/internal/domain/repository"
)

var _ repository.DocumentStore = (*MemoryStore)(nil)

// MemoryStore almacén de documentos en memoria. Los lotes se aplican bajo un único lock,
// así que son atómicos y los incrementos no pierden actualizaciones concurrentes.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string]map[string]document.Fields

	subsMu sync.Mutex
	subs   map[*memorySubscription]struct{}
}

type memorySubscription struct {
	collection string
	watcher    *Watcher
}

// NewMemoryStore construye un almacén vacío.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		collections: make(map[string]map[string]document.Fields),
		subs:        make(map[*memorySubscription]struct{}),
	}
}

// Get devuelve una copia del documento o (nil, nil) si no existe.
func (s *MemoryStore) Get(ctx context.Context, collection, id string) (*document.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	f, ok := s.collections[collection][id]
	if !ok {
		return nil, nil
	}
	return &document.Document{ID: id, Fields: f.Clone()}, nil
}

// Query devuelve los documentos que cumplen los filtros, ordenados por ID.
func (s *MemoryStore) Query(ctx context.Context, collection string, filters ...document.Filter) ([]document.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []document.Document
	for id, f := range s.collections[collection] {
		if document.Matches(f, filters) {
			out = append(out, document.Document{ID: id, Fields: f.Clone()})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Add crea un documento con ID generado.
func (s *MemoryStore) Add(ctx context.Context, collection string, fields document.Fields) (string, error) {
	id := uuid.New().String()
	if err := s.Batch().Set(collection, id, fields, false).Commit(ctx); err != nil {
		return "", err
	}
	return id, nil
}

// Set escribe un documento (merge opcional).
func (s *MemoryStore) Set(ctx context.Context, collection, id string, fields document.Fields, merge bool) error {
	return s.Batch().Set(collection, id, fields, merge).Commit(ctx)
}

// Update actualiza campos de un documento existente.
func (s *MemoryStore) Update(ctx context.Context, collection, id string, fields document.Fields) error {
	return s.Batch().Update(collection, id, fields).Commit(ctx)
}

// Delete borra un documento.
func (s *MemoryStore) Delete(ctx context.Context, collection, id string) error {
	return s.Batch().Delete(collection, id).Commit(ctx)
}

// Batch devuelve un lote atómico.
func (s *MemoryStore) Batch() repository.Batch {
	return NewOpBatch(s.commit)
}

type docKey struct{ collection, id string }

// commit valida y aplica las escrituras sobre una vista preparada; sólo si todas son válidas
// se publican en las colecciones.
func (s *MemoryStore) commit(ctx context.Context, ops []Op) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	staged := make(map[docKey]document.Fields, len(ops))
	lookup := func(k docKey) (document.Fields, bool) {
		if f, ok := staged[k]; ok {
			return f, f != nil
		}
		f, ok := s.collections[k.collection][k.id]
		return f, ok
	}
	for _, op := range ops {
		k := docKey{op.Collection, op.ID}
		cur, exists := lookup(k)
		next, err := Apply(cur, exists, op)
		if err != nil {
			s.mu.Unlock()
			return err
		}
		staged[k] = next
	}
	touched := make(map[string]struct{})
	for k, f := range staged {
		coll, ok := s.collections[k.collection]
		if !ok {
			coll = make(map[string]document.Fields)
			s.collections[k.collection] = coll
		}
		if f == nil {
			delete(coll, k.id)
		} else {
			coll[k.id] = f
		}
		touched[k.collection] = struct{}{}
	}
	s.mu.Unlock()

	s.notify(touched)
	return nil
}

// Subscribe abre una consulta en vivo sobre la colección.
func (s *MemoryStore) Subscribe(collection string, filters []document.Filter, onSnapshot func([]document.Document), onError func(error)) (repository.Unsubscribe, error) {
	query := func(ctx context.Context) ([]document.Document, error) {
		return s.Query(ctx, collection, filters...)
	}
	sub := &memorySubscription{collection: collection}
	s.subsMu.Lock()
	sub.watcher = StartWatcher(query, onSnapshot, onError)
	s.subs[sub] = struct{}{}
	s.subsMu.Unlock()

	return func() {
		s.subsMu.Lock()
		delete(s.subs, sub)
		s.subsMu.Unlock()
		sub.watcher.Stop()
	}, nil
}

// FailSubscriptions entrega err a todas las suscripciones abiertas sobre la colección,
// como lo haría un transporte que pierde permisos o conexión.
func (s *MemoryStore) FailSubscriptions(collection string, err error) {
	s.subsMu.Lock()
	var targets []*Watcher
	for sub := range s.subs {
		if sub.collection == collection {
			targets = append(targets, sub.watcher)
		}
	}
	s.subsMu.Unlock()
	for _, w := range targets {
		w.Fail(err)
	}
}

func (s *MemoryStore) notify(touched map[string]struct{}) {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	for sub := range s.subs {
		if _, ok := touched[sub.collection]; ok {
			sub.watcher.Notify()
		}
	}
}
