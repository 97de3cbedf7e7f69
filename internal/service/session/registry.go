// Package session держит корзины активных сессий продажи в памяти процесса.
// Корзина живёт и умирает вместе с сессией: до checkout она никогда не
// попадает во внешнее хранилище.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/pos/internal/domain"
)

const (
	defaultTTL           = 12 * time.Hour
	defaultSweepInterval = 10 * time.Minute
)

type entry struct {
	// mu сериализует мутации корзины: у сессии один логический писатель,
	// но HTTP-обработчики могут прийти с разных соединений.
	mu      sync.Mutex
	cart    *domain.Cart
	touched time.Time
}

// Registry — реестр сессий: идентификатор -> корзина с временем последнего
// обращения. Протухшие сессии убирает фоновая зачистка.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*entry
	ttl     time.Duration
	logger  *log.Entry
	now     func() time.Time
}

// NewRegistry создаёт реестр сессий. ttl <= 0 заменяется значением по умолчанию.
func NewRegistry(ttl time.Duration, logger *log.Entry) *Registry {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	if logger == nil {
		logger = log.WithField("component", "session-registry")
	}
	return &Registry{
		entries: make(map[string]*entry),
		ttl:     ttl,
		logger:  logger,
		now:     time.Now,
	}
}

// Open заводит новую сессию с пустой корзиной и возвращает её идентификатор.
func (r *Registry) Open() string {
	id := uuid.NewString()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[id] = &entry{cart: domain.NewCart(), touched: r.now()}

	return id
}

// WithCart выполняет fn под блокировкой корзины сессии. Возвращает
// ErrSessionNotFound, если сессии нет или она уже вычищена.
func (r *Registry) WithCart(id string, fn func(cart *domain.Cart) error) error {
	r.mu.RLock()
	e, ok := r.entries[id]
	r.mu.RUnlock()
	if !ok {
		return domain.ErrSessionNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.touched = r.now()
	return fn(e.cart)
}

// Close удаляет сессию вместе с корзиной. Отсутствующая сессия — no-op.
func (r *Registry) Close(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, id)
}

// Len возвращает количество активных сессий.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Run запускает периодическую зачистку протухших сессий до отмены ctx.
func (r *Registry) Run(ctx context.Context) {
	ticker := time.NewTicker(defaultSweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.sweep()
		}
	}
}

func (r *Registry) sweep() {
	deadline := r.now().Add(-r.ttl)

	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, e := range r.entries {
		if e.touched.Before(deadline) {
			delete(r.entries, id)
			removed++
		}
	}
	if removed > 0 {
		r.logger.WithField("removed", removed).Info("expired cart sessions swept")
	}
}
