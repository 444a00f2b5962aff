package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bhuvanux/Sewvee-BMS-sub000/internal/domain/document"
	"github.com/bhuvanux/Sewvee-BMS-sub000/internal/domain/entity"
	"github.com/bhuvanux/Sewvee-BMS-sub000/internal/domain/repository"
	"github.com/bhuvanux/Sewvee-BMS-sub000/internal/infrastructure/docstore"
	"github.com/bhuvanux/Sewvee-BMS-sub000/pkg/logger"
)

var _ repository.DocumentStore = (*DocumentStore)(nil)

// DefaultNotifyChannel canal NOTIFY por defecto para los cambios de documentos.
const DefaultNotifyChannel = "ledger_documents"

// DocumentStore almacén de documentos sobre PostgreSQL (tabla documents, contenido JSONB).
// Cada lote es una transacción: las filas afectadas se bloquean con SELECT ... FOR UPDATE,
// los incrementos se resuelven sobre el valor bloqueado y los cambios se anuncian con
// pg_notify, que PostgreSQL entrega sólo si la transacción confirma.
type DocumentStore struct {
	pool     *pgxpool.Pool
	txRunner *TxRunner
	channel  string
	listener *listener
}

// NewDocumentStore construye el almacén. channel vacío usa DefaultNotifyChannel.
func NewDocumentStore(pool *pgxpool.Pool, channel string, log *logger.Logger) *DocumentStore {
	if channel == "" {
		channel = DefaultNotifyChannel
	}
	s := &DocumentStore{
		pool:     pool,
		txRunner: NewTxRunner(pool),
		channel:  channel,
	}
	s.listener = newListener(pool, channel, log)
	return s
}

// Close detiene el listener de notificaciones y cierra las suscripciones abiertas.
func (s *DocumentStore) Close() {
	s.listener.close()
}

// Get obtiene un documento por colección e ID; (nil, nil) si no existe.
func (s *DocumentStore) Get(ctx context.Context, collection, id string) (*document.Document, error) {
	var raw []byte
	err := s.pool.QueryRow(ctx,
		`SELECT data FROM documents WHERE collection = $1 AND id = $2`, collection, id,
	).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapErr("get "+collection, err)
	}
	fields, err := decodeFields(raw)
	if err != nil {
		return nil, fmt.Errorf("get %s/%s: %w", collection, id, err)
	}
	return &document.Document{ID: id, Fields: fields}, nil
}

// Query lista los documentos de la colección que cumplen los filtros de igualdad.
func (s *DocumentStore) Query(ctx context.Context, collection string, filters ...document.Filter) ([]document.Document, error) {
	match := make(map[string]string, len(filters))
	for _, f := range filters {
		match[f.Field] = f.Value
	}
	matchJSON, err := json.Marshal(match)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", collection, err)
	}
	rows, err := s.pool.Query(ctx,
		`SELECT id, data FROM documents WHERE collection = $1 AND data @> $2::jsonb ORDER BY id`,
		collection, string(matchJSON),
	)
	if err != nil {
		return nil, wrapErr("query "+collection, err)
	}
	defer rows.Close()
	var out []document.Document
	for rows.Next() {
		var id string
		var raw []byte
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, fmt.Errorf("scan %s: %w", collection, err)
		}
		fields, err := decodeFields(raw)
		if err != nil {
			return nil, fmt.Errorf("decode %s/%s: %w", collection, id, err)
		}
		out = append(out, document.Document{ID: id, Fields: fields})
	}
	return out, rows.Err()
}

// Add crea un documento con ID generado.
func (s *DocumentStore) Add(ctx context.Context, collection string, fields document.Fields) (string, error) {
	id := uuid.New().String()
	if err := s.Batch().Set(collection, id, fields, false).Commit(ctx); err != nil {
		return "", err
	}
	return id, nil
}

// Set escribe un documento (merge opcional).
func (s *DocumentStore) Set(ctx context.Context, collection, id string, fields document.Fields, merge bool) error {
	return s.Batch().Set(collection, id, fields, merge).Commit(ctx)
}

// Update actualiza campos de un documento existente.
func (s *DocumentStore) Update(ctx context.Context, collection, id string, fields document.Fields) error {
	return s.Batch().Update(collection, id, fields).Commit(ctx)
}

// Delete borra un documento.
func (s *DocumentStore) Delete(ctx context.Context, collection, id string) error {
	return s.Batch().Delete(collection, id).Commit(ctx)
}

// Batch devuelve un lote que se confirma en una sola transacción.
func (s *DocumentStore) Batch() repository.Batch {
	return docstore.NewOpBatch(s.commit)
}

type docKey struct{ collection, id string }

type stagedDoc struct {
	fields  document.Fields // nil = borrado
	existed bool
	ownerID string // propietario previo, para avisar también si cambia
}

// commit bloquea primero todas las filas del lote en un orden fijo (colección, id) y después
// aplica las escrituras en el orden en que se encolaron. Dos lotes que tocan las mismas filas
// esperan uno al otro en lugar de bloquearse mutuamente.
func (s *DocumentStore) commit(ctx context.Context, ops []docstore.Op) error {
	return s.txRunner.Run(ctx, func(tx pgx.Tx) error {
		order := lockOrder(ops)
		staged := make(map[docKey]*stagedDoc, len(order))
		for _, k := range order {
			cur, err := lockDocument(ctx, tx, k.collection, k.id)
			if err != nil {
				return err
			}
			st := &stagedDoc{fields: cur, existed: cur != nil}
			if cur != nil {
				st.ownerID = cur.String(entity.FieldOwnerID)
			}
			staged[k] = st
		}
		for _, op := range ops {
			st := staged[docKey{op.Collection, op.ID}]
			next, err := docstore.Apply(st.fields, st.fields != nil, op)
			if err != nil {
				return err
			}
			st.fields = next
		}

		notices := make(map[string]struct{})
		for _, k := range order {
			st := staged[k]
			if st.fields == nil {
				if _, err := tx.Exec(ctx,
					`DELETE FROM documents WHERE collection = $1 AND id = $2`, k.collection, k.id,
				); err != nil {
					return wrapErr("delete "+k.collection, err)
				}
			} else {
				raw, err := json.Marshal(st.fields)
				if err != nil {
					return fmt.Errorf("encode %s/%s: %w", k.collection, k.id, err)
				}
				ownerID := st.fields.String(entity.FieldOwnerID)
				if _, err := tx.Exec(ctx, `
					INSERT INTO documents (collection, id, owner_id, data, updated_at)
					VALUES ($1, $2, $3, $4::jsonb, now())
					ON CONFLICT (collection, id)
					DO UPDATE SET owner_id = EXCLUDED.owner_id, data = EXCLUDED.data, updated_at = now()`,
					k.collection, k.id, ownerID, string(raw),
				); err != nil {
					return wrapErr("upsert "+k.collection, err)
				}
				notices[notifyPayload(k.collection, ownerID)] = struct{}{}
			}
			if st.existed {
				notices[notifyPayload(k.collection, st.ownerID)] = struct{}{}
			}
		}

		for payload := range notices {
			if _, err := tx.Exec(ctx, `SELECT pg_notify($1, $2)`, s.channel, payload); err != nil {
				return wrapErr("notify", err)
			}
		}
		return nil
	})
}

// lockOrder claves distintas del lote ordenadas por (colección, id).
func lockOrder(ops []docstore.Op) []docKey {
	seen := make(map[docKey]struct{}, len(ops))
	keys := make([]docKey, 0, len(ops))
	for _, op := range ops {
		k := docKey{op.Collection, op.ID}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].collection != keys[j].collection {
			return keys[i].collection < keys[j].collection
		}
		return keys[i].id < keys[j].id
	})
	return keys
}

// lockDocument lee y bloquea la fila; nil si no existe.
func lockDocument(ctx context.Context, tx pgx.Tx, collection, id string) (document.Fields, error) {
	var raw []byte
	err := tx.QueryRow(ctx,
		`SELECT data FROM documents WHERE collection = $1 AND id = $2 FOR UPDATE`, collection, id,
	).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapErr("lock "+collection, err)
	}
	return decodeFields(raw)
}

func decodeFields(raw []byte) (document.Fields, error) {
	var fields document.Fields
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		fields = document.Fields{}
	}
	return fields, nil
}

// Subscribe abre una consulta en vivo: se re-ejecuta completa cada vez que llega una
// notificación de la colección (y del propietario, si se filtra por ownerId).
func (s *DocumentStore) Subscribe(collection string, filters []document.Filter, onSnapshot func([]document.Document), onError func(error)) (repository.Unsubscribe, error) {
	var ownerID string
	for _, f := range filters {
		if f.Field == entity.FieldOwnerID {
			ownerID = f.Value
		}
	}
	query := func(ctx context.Context) ([]document.Document, error) {
		return s.Query(ctx, collection, filters...)
	}
	sub := &pgSubscription{collection: collection, ownerID: ownerID}
	sub.watcher = docstore.StartWatcher(query, onSnapshot, onError)
	if err := s.listener.add(sub); err != nil {
		sub.watcher.Stop()
		return nil, err
	}
	return func() {
		s.listener.remove(sub)
		sub.watcher.Stop()
	}, nil
}
