package cache

import (
	"context"
	"errors"
	"sync"

	"github.com/datosargentinosjuniors/scouting-aaaj/internal/platform/resilience"
)

var errNilLoader = errors.New("loader is required")

// Memo loads a value at most once per key for the lifetime of the process.
// Concurrent first requests share one load; failed loads are not remembered
// so the next caller retries. Values are never evicted and must be treated
// as read-only by callers.
type Memo[V any] struct {
	mu     sync.RWMutex
	values map[string]V
	flight resilience.SingleFlight[V]
}

func NewMemo[V any]() *Memo[V] {
	return &Memo[V]{values: make(map[string]V)}
}

// Peek returns the memoized value without loading.
func (m *Memo[V]) Peek(key string) (V, bool) {
	m.mu.RLock()
	v, ok := m.values[key]
	m.mu.RUnlock()
	return v, ok
}

func (m *Memo[V]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.values)
}

func (m *Memo[V]) GetOrLoad(ctx context.Context, key string, loader func(context.Context) (V, error)) (V, error) {
	var zero V
	if loader == nil {
		return zero, errNilLoader
	}
	if v, ok := m.Peek(key); ok {
		return v, nil
	}

	v, err, _ := m.flight.Do(key, func() (V, error) {
		if cached, ok := m.Peek(key); ok {
			return cached, nil
		}
		// The load is shared, so one caller going away must not fail the rest.
		loaded, loadErr := loader(context.WithoutCancel(ctx))
		if loadErr != nil {
			return zero, loadErr
		}
		m.mu.Lock()
		if m.values == nil {
			m.values = make(map[string]V)
		}
		m.values[key] = loaded
		m.mu.Unlock()
		return loaded, nil
	})
	if err != nil {
		return zero, err
	}
	return v, nil
}
