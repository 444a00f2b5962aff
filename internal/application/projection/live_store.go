// Package projection mantiene, por propietario, las vistas locales en vivo de clientes, pedidos,
// pagos y catálogo. Cada vista se reconstruye entera con cada instantánea que empuja el almacén;
// nada en este paquete escribe en el almacén salvo la auto-reparación del catálogo (selfheal.go).
package projection

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/bhuvanux/Sewvee-BMS-sub000/internal/domain/document"
	"github.com/bhuvanux/Sewvee-BMS-sub000/internal/domain/entity"
	"github.com/bhuvanux/Sewvee-BMS-sub000/internal/domain/repository"
	"github.com/bhuvanux/Sewvee-BMS-sub000/pkg/logger"
)

// Kind vista en vivo.
type Kind string

const (
	KindCustomers Kind = "customers"
	KindOrders    Kind = "orders"
	KindPayments  Kind = "payments"
	KindCatalog   Kind = "catalog"
)

// Kinds todas las vistas, en el orden en que se abren sus suscripciones.
var Kinds = []Kind{KindCustomers, KindOrders, KindPayments, KindCatalog}

func (k Kind) collection() string {
	switch k {
	case KindCustomers:
		return entity.CollectionCustomers
	case KindOrders:
		return entity.CollectionOrders
	case KindPayments:
		return entity.CollectionPayments
	default:
		return entity.CollectionCatalog
	}
}

// Change aviso de que una vista de un propietario cambió.
type Change struct {
	OwnerID string
	Kind    Kind
	Err     error
}

// session suscripciones y vistas de un propietario. Sus campos se protegen con LiveStore.mu.
type session struct {
	ownerID string
	unsubs  []repository.Unsubscribe

	customers []entity.Customer
	orders    []entity.Order
	payments  []entity.Payment
	catalog   []entity.CatalogEntry
	loading   map[Kind]bool
	errs      map[Kind]error

	lastUsed time.Time
}

type observer struct {
	ownerID string
	ch      chan Change
}

// LiveStore vistas en vivo por propietario. Sólo las instantáneas entrantes las modifican.
type LiveStore struct {
	store       repository.DocumentStore
	healer      CatalogHealer
	log         *logger.Logger
	healTimeout time.Duration
	now         func() time.Time

	mu        sync.RWMutex
	sessions  map[string]*session
	observers map[*observer]struct{}

	// Reparaciones del catálogo en vuelo por propietario. Viven fuera de la sesión:
	// cerrar y reabrir las suscripciones no debe permitir una segunda siembra.
	seeding map[string]bool
	healing map[string]bool
}

// NewLiveStore construye la proyección. healer puede ser nil (sin auto-reparación del catálogo).
func NewLiveStore(store repository.DocumentStore, healer CatalogHealer, log *logger.Logger) *LiveStore {
	return &LiveStore{
		store:       store,
		healer:      healer,
		log:         log.WithComponent("projection"),
		healTimeout: 15 * time.Second,
		now:         time.Now,
		sessions:    make(map[string]*session),
		observers:   make(map[*observer]struct{}),
		seeding:     make(map[string]bool),
		healing:     make(map[string]bool),
	}
}

// Subscribe abre las cuatro suscripciones del propietario (where ownerId == ownerID).
// Si ya están abiertas sólo renueva su último uso (ver EvictIdle).
func (l *LiveStore) Subscribe(ownerID string) error {
	if ownerID == "" {
		return fmt.Errorf("projection: propietario vacío")
	}
	l.mu.Lock()
	if sess, ok := l.sessions[ownerID]; ok {
		sess.lastUsed = l.now()
		l.mu.Unlock()
		return nil
	}
	sess := &session{
		ownerID:  ownerID,
		loading:  make(map[Kind]bool, len(Kinds)),
		errs:     make(map[Kind]error, len(Kinds)),
		lastUsed: l.now(),
	}
	for _, k := range Kinds {
		sess.loading[k] = true
	}
	l.sessions[ownerID] = sess
	l.mu.Unlock()

	filters := []document.Filter{document.Where(entity.FieldOwnerID, ownerID)}
	unsubs := make([]repository.Unsubscribe, 0, len(Kinds))
	for _, k := range Kinds {
		kind := k
		unsub, err := l.store.Subscribe(kind.collection(), filters,
			func(docs []document.Document) { l.onSnapshot(sess, kind, docs) },
			func(err error) { l.onError(sess, kind, err) },
		)
		if err != nil {
			for _, u := range unsubs {
				u()
			}
			l.mu.Lock()
			if l.sessions[ownerID] == sess {
				delete(l.sessions, ownerID)
			}
			l.mu.Unlock()
			return fmt.Errorf("projection: suscribir %s: %w", kind, err)
		}
		unsubs = append(unsubs, unsub)
	}

	l.mu.Lock()
	if l.sessions[ownerID] != sess {
		// Se cerró mientras se abrían las suscripciones.
		l.mu.Unlock()
		for _, u := range unsubs {
			u()
		}
		return nil
	}
	sess.unsubs = unsubs
	l.mu.Unlock()
	l.log.Debug().Str("owner_id", ownerID).Msg("suscripciones abiertas")
	return nil
}

// Unsubscribe cierra juntas las cuatro suscripciones del propietario y descarta sus vistas.
// Las instantáneas que lleguen después para esa sesión se ignoran.
func (l *LiveStore) Unsubscribe(ownerID string) {
	l.mu.Lock()
	sess, ok := l.sessions[ownerID]
	if ok {
		delete(l.sessions, ownerID)
	}
	l.mu.Unlock()
	if !ok {
		return
	}
	for _, u := range sess.unsubs {
		u()
	}
	l.log.Debug().Str("owner_id", ownerID).Msg("suscripciones cerradas")
}

// EvictIdle cierra las sesiones sin uso durante más de maxIdle. Una sesión con algún
// observador de Watch para su propietario no se cierra. Devuelve cuántas cerró.
func (l *LiveStore) EvictIdle(maxIdle time.Duration) int {
	cutoff := l.now().Add(-maxIdle)
	l.mu.Lock()
	watched := make(map[string]bool, len(l.observers))
	for o := range l.observers {
		watched[o.ownerID] = true
	}
	var evicted []*session
	for owner, sess := range l.sessions {
		if watched[owner] || !sess.lastUsed.Before(cutoff) {
			continue
		}
		delete(l.sessions, owner)
		evicted = append(evicted, sess)
	}
	l.mu.Unlock()

	for _, sess := range evicted {
		for _, u := range sess.unsubs {
			u()
		}
		l.log.Debug().Str("owner_id", sess.ownerID).Msg("sesión inactiva cerrada")
	}
	return len(evicted)
}

// RunEviction llama a EvictIdle cada every hasta que ctx termine.
func (l *LiveStore) RunEviction(ctx context.Context, every, maxIdle time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := l.EvictIdle(maxIdle); n > 0 {
				l.log.Info().Int("sessions", n).Msg("sesiones en vivo inactivas cerradas")
			}
		}
	}
}

// SwitchOwner cierra las suscripciones de from y abre las de to.
func (l *LiveStore) SwitchOwner(from, to string) error {
	if from != "" && from != to {
		l.Unsubscribe(from)
	}
	return l.Subscribe(to)
}

// Close cierra todas las sesiones y los observadores.
func (l *LiveStore) Close() {
	l.mu.Lock()
	owners := make([]string, 0, len(l.sessions))
	for owner := range l.sessions {
		owners = append(owners, owner)
	}
	l.mu.Unlock()
	for _, owner := range owners {
		l.Unsubscribe(owner)
	}
	l.mu.Lock()
	for o := range l.observers {
		close(o.ch)
		delete(l.observers, o)
	}
	l.mu.Unlock()
}

// Subscribed indica si hay sesión abierta para el propietario.
func (l *LiveStore) Subscribed(ownerID string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	_, ok := l.sessions[ownerID]
	return ok
}

func (l *LiveStore) onSnapshot(sess *session, kind Kind, docs []document.Document) {
	var catalog []entity.CatalogEntry
	l.mu.Lock()
	if l.sessions[sess.ownerID] != sess {
		l.mu.Unlock()
		return
	}
	switch kind {
	case KindCustomers:
		sess.customers = mapCustomers(docs)
	case KindOrders:
		sess.orders = mapOrders(docs)
	case KindPayments:
		sess.payments = mapPayments(docs)
	case KindCatalog:
		sess.catalog = mapCatalog(docs)
		catalog = sess.catalog
	}
	sess.loading[kind] = false
	sess.errs[kind] = nil
	l.mu.Unlock()

	l.publish(Change{OwnerID: sess.ownerID, Kind: kind})
	if kind == KindCatalog {
		l.selfHeal(sess, catalog)
	}
}

// onError deja de marcar la vista como cargando y registra el fallo; no reintenta:
// la reconexión es cosa del transporte.
func (l *LiveStore) onError(sess *session, kind Kind, err error) {
	l.mu.Lock()
	if l.sessions[sess.ownerID] != sess {
		l.mu.Unlock()
		return
	}
	sess.loading[kind] = false
	sess.errs[kind] = err
	l.mu.Unlock()

	l.log.Error().Err(err).Str("owner_id", sess.ownerID).Str("view", string(kind)).Msg("suscripción en vivo falló")
	l.publish(Change{OwnerID: sess.ownerID, Kind: kind, Err: err})
}

// Watch devuelve un canal con los cambios de las vistas del propietario ("" = todos).
// Si el consumidor se retrasa los avisos se descartan: las vistas se leen por pull.
func (l *LiveStore) Watch(ownerID string) (<-chan Change, func()) {
	o := &observer{ownerID: ownerID, ch: make(chan Change, 16)}
	l.mu.Lock()
	l.observers[o] = struct{}{}
	l.mu.Unlock()
	var once sync.Once
	return o.ch, func() {
		once.Do(func() {
			l.mu.Lock()
			if _, ok := l.observers[o]; ok {
				delete(l.observers, o)
				close(o.ch)
			}
			l.mu.Unlock()
		})
	}
}

func (l *LiveStore) publish(c Change) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for o := range l.observers {
		if o.ownerID != "" && o.ownerID != c.OwnerID {
			continue
		}
		select {
		case o.ch <- c:
		default:
		}
	}
}

// Customers vista de clientes del propietario; ready=false si aún carga o no hay sesión.
func (l *LiveStore) Customers(ownerID string) ([]entity.Customer, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	sess, ok := l.sessions[ownerID]
	if !ok {
		return nil, false
	}
	return append([]entity.Customer(nil), sess.customers...), !sess.loading[KindCustomers]
}

// Orders vista de pedidos del propietario (más recientes primero).
func (l *LiveStore) Orders(ownerID string) ([]entity.Order, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	sess, ok := l.sessions[ownerID]
	if !ok {
		return nil, false
	}
	return append([]entity.Order(nil), sess.orders...), !sess.loading[KindOrders]
}

// Payments vista de pagos del propietario (fecha descendente).
func (l *LiveStore) Payments(ownerID string) ([]entity.Payment, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	sess, ok := l.sessions[ownerID]
	if !ok {
		return nil, false
	}
	return append([]entity.Payment(nil), sess.payments...), !sess.loading[KindPayments]
}

// Catalog vista del catálogo del propietario (nombre ascendente).
func (l *LiveStore) Catalog(ownerID string) ([]entity.CatalogEntry, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	sess, ok := l.sessions[ownerID]
	if !ok {
		return nil, false
	}
	return append([]entity.CatalogEntry(nil), sess.catalog...), !sess.loading[KindCatalog]
}

// Loading indica si la vista sigue esperando su primera instantánea (o error).
func (l *LiveStore) Loading(ownerID string, kind Kind) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	sess, ok := l.sessions[ownerID]
	if !ok {
		return true
	}
	return sess.loading[kind]
}

// Err último error de la suscripción de la vista (nil tras una instantánea correcta).
func (l *LiveStore) Err(ownerID string, kind Kind) error {
	l.mu.RLock()
	defer l.mu.RUnlock()
	sess, ok := l.sessions[ownerID]
	if !ok {
		return nil
	}
	return sess.errs[kind]
}
