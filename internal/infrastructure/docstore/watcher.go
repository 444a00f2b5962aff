package docstore

import (
	"context"
	"sync"

	"github.com/bhuvanux/Sewvee-BMS-sub000/internal/domain/document"
)

// Watcher ejecuta una suscripción en vivo: en cada señal vuelve a consultar el conjunto completo
// y lo entrega en onSnapshot. Las señales se fusionan, así que un consumidor lento recibe
// el estado más reciente y no cada cambio intermedio.
type Watcher struct {
	query      func(ctx context.Context) ([]document.Document, error)
	onSnapshot func([]document.Document)
	onError    func(error)

	signal chan struct{}
	ctx    context.Context
	cancel context.CancelFunc
	once   sync.Once
}

// StartWatcher arranca la goroutine de entrega y programa la primera instantánea.
func StartWatcher(
	query func(ctx context.Context) ([]document.Document, error),
	onSnapshot func([]document.Document),
	onError func(error),
) *Watcher {
	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		query:      query,
		onSnapshot: onSnapshot,
		onError:    onError,
		signal:     make(chan struct{}, 1),
		ctx:        ctx,
		cancel:     cancel,
	}
	w.Notify()
	go w.loop()
	return w
}

// Notify marca la suscripción como sucia; no bloquea.
func (w *Watcher) Notify() {
	select {
	case w.signal <- struct{}{}:
	default:
	}
}

// Fail entrega un error del transporte al suscriptor.
func (w *Watcher) Fail(err error) {
	if w.ctx.Err() != nil || w.onError == nil {
		return
	}
	w.onError(err)
}

// Stop cancela la suscripción. No espera a la goroutine, así que puede llamarse desde un callback.
func (w *Watcher) Stop() {
	w.once.Do(w.cancel)
}

// Done se cierra al detener la suscripción.
func (w *Watcher) Done() <-chan struct{} {
	return w.ctx.Done()
}

func (w *Watcher) loop() {
	for {
		select {
		case <-w.ctx.Done():
			return
		case <-w.signal:
		}
		docs, err := w.query(w.ctx)
		if w.ctx.Err() != nil {
			return
		}
		if err != nil {
			if w.onError != nil {
				w.onError(err)
			}
			continue
		}
		w.onSnapshot(docs)
	}
}
