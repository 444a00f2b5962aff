package postgres

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bhuvanux/Sewvee-BMS-sub000/internal/infrastructure/docstore"
	"github.com/bhuvanux/Sewvee-BMS-sub000/pkg/logger"
)

// reconnectDelay espera entre reconexiones del LISTEN.
const reconnectDelay = 2 * time.Second

type pgSubscription struct {
	collection string
	ownerID    string // vacío = todos los propietarios
	watcher    *docstore.Watcher
}

// listener mantiene una conexión dedicada en LISTEN y despierta a las suscripciones afectadas.
// Arranca con la primera suscripción; tras perder la conexión avisa el error a los suscriptores,
// reconecta y fuerza una re-consulta completa, ya que pudo perder notificaciones.
type listener struct {
	pool    *pgxpool.Pool
	channel string
	log     *logger.Logger

	mu      sync.Mutex
	subs    map[*pgSubscription]struct{}
	cancel  context.CancelFunc
	closed  bool
	started bool
}

func newListener(pool *pgxpool.Pool, channel string, log *logger.Logger) *listener {
	return &listener{
		pool:    pool,
		channel: channel,
		log:     log,
		subs:    make(map[*pgSubscription]struct{}),
	}
}

func notifyPayload(collection, ownerID string) string {
	return collection + "|" + ownerID
}

func parsePayload(payload string) (collection, ownerID string) {
	collection, ownerID, _ = strings.Cut(payload, "|")
	return collection, ownerID
}

func (l *listener) add(sub *pgSubscription) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return fmt.Errorf("document store cerrado")
	}
	l.subs[sub] = struct{}{}
	if !l.started {
		ctx, cancel := context.WithCancel(context.Background())
		l.cancel = cancel
		l.started = true
		go l.run(ctx)
	}
	return nil
}

func (l *listener) remove(sub *pgSubscription) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.subs, sub)
}

func (l *listener) close() {
	l.mu.Lock()
	l.closed = true
	if l.cancel != nil {
		l.cancel()
	}
	subs := l.subs
	l.subs = make(map[*pgSubscription]struct{})
	l.mu.Unlock()
	for sub := range subs {
		sub.watcher.Stop()
	}
}

func (l *listener) run(ctx context.Context) {
	for {
		err := l.listen(ctx)
		if ctx.Err() != nil {
			return
		}
		l.log.Error().Err(err).Str("channel", l.channel).Msg("listener de documentos desconectado")
		l.each(func(sub *pgSubscription) { sub.watcher.Fail(err) })
		select {
		case <-ctx.Done():
			return
		case <-time.After(reconnectDelay):
		}
	}
}

func (l *listener) listen(ctx context.Context) error {
	pooled, err := l.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire: %w", err)
	}
	// La conexión queda en LISTEN: se saca del pool y se cierra al terminar.
	conn := pooled.Hijack()
	defer conn.Close(context.Background())

	if _, err := conn.Exec(ctx, "LISTEN "+pgx.Identifier{l.channel}.Sanitize()); err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	l.log.Debug().Str("channel", l.channel).Msg("escuchando cambios de documentos")
	l.each(func(sub *pgSubscription) { sub.watcher.Notify() })

	for {
		n, err := conn.WaitForNotification(ctx)
		if err != nil {
			return fmt.Errorf("wait for notification: %w", err)
		}
		collection, ownerID := parsePayload(n.Payload)
		l.each(func(sub *pgSubscription) {
			if sub.collection != collection {
				return
			}
			if sub.ownerID != "" && ownerID != "" && sub.ownerID != ownerID {
				return
			}
			sub.watcher.Notify()
		})
	}
}

func (l *listener) each(fn func(sub *pgSubscription)) {
	l.mu.Lock()
	subs := make([]*pgSubscription, 0, len(l.subs))
	for sub := range l.subs {
		subs = append(subs, sub)
	}
	l.mu.Unlock()
	for _, sub := range subs {
		fn(sub)
	}
}
