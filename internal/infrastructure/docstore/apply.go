// Package docstore implementa el almacén de documentos en memoria y la semántica de escritura
// (set/merge/update/incremento, lotes, suscripciones) que comparten todos los backends.
package docstore

import (
	"context"
	"fmt"

	"github.com/bhuvanux/Sewvee-BMS-sub000/internal/domain"
	"github.com/bhuvanux/Sewvee-BMS-sub000/internal/domain/document"
	"github.com/bhuvanux/Sewvee-BMS-sub000/internal/domain/repository"
)

// OpKind tipo de escritura dentro de un lote.
type OpKind int

const (
	OpSet OpKind = iota
	OpUpdate
	OpDelete
)

// Op escritura encolada en un lote.
type Op struct {
	Kind       OpKind
	Collection string
	ID         string
	Fields     document.Fields
	Merge      bool
}

// Apply calcula el contenido resultante de aplicar op sobre el documento actual.
// Devuelve (nil, nil) si el documento queda borrado y domain.ErrNotFound si es un Update
// sobre un documento inexistente.
func Apply(current document.Fields, exists bool, op Op) (document.Fields, error) {
	switch op.Kind {
	case OpDelete:
		return nil, nil
	case OpUpdate:
		if !exists {
			return nil, fmt.Errorf("update %s/%s: %w", op.Collection, op.ID, domain.ErrNotFound)
		}
		return mergeFields(current, op.Fields), nil
	case OpSet:
		if op.Merge && exists {
			return mergeFields(current, op.Fields), nil
		}
		return mergeFields(nil, op.Fields), nil
	}
	return nil, fmt.Errorf("operación desconocida %d", op.Kind)
}

func mergeFields(base, patch document.Fields) document.Fields {
	out := make(document.Fields, len(base)+len(patch))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range patch {
		if inc, ok := v.(document.Increment); ok {
			cur, _ := document.ToDecimal(out[k])
			out[k] = cur.Add(inc.Delta)
			continue
		}
		out[k] = v
	}
	return out
}

// OpBatch lote genérico: acumula Ops y delega el commit atómico en el backend.
type OpBatch struct {
	ops    []Op
	commit func(ctx context.Context, ops []Op) error
}

var _ repository.Batch = (*OpBatch)(nil)

// NewOpBatch construye un lote que se confirma con commit.
func NewOpBatch(commit func(ctx context.Context, ops []Op) error) *OpBatch {
	return &OpBatch{commit: commit}
}

// Set encola un set (merge opcional).
func (b *OpBatch) Set(collection, id string, fields document.Fields, merge bool) repository.Batch {
	b.ops = append(b.ops, Op{Kind: OpSet, Collection: collection, ID: id, Fields: fields, Merge: merge})
	return b
}

// Update encola una actualización parcial; el documento debe existir al confirmar.
func (b *OpBatch) Update(collection, id string, fields document.Fields) repository.Batch {
	b.ops = append(b.ops, Op{Kind: OpUpdate, Collection: collection, ID: id, Fields: fields})
	return b
}

// Delete encola un borrado (borrar un documento inexistente no es error).
func (b *OpBatch) Delete(collection, id string) repository.Batch {
	b.ops = append(b.ops, Op{Kind: OpDelete, Collection: collection, ID: id})
	return b
}

// Len número de escrituras encoladas.
func (b *OpBatch) Len() int { return len(b.ops) }

// Ops escrituras encoladas, en orden.
func (b *OpBatch) Ops() []Op { return b.ops }

// Commit aplica todas las escrituras o ninguna. Un lote vacío no toca el almacén.
func (b *OpBatch) Commit(ctx context.Context) error {
	if len(b.ops) == 0 {
		return nil
	}
	return b.commit(ctx, b.ops)
}
