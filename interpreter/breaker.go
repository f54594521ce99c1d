package interpreter

import (
	"sync"
	"time"

	"github.com/sony/gobreaker"

	"github.com/ralphmorton/wisp/wasm"
)

// breakerRegistry holds one circuit breaker per (module, item) extern,
// created lazily on first invocation. A host import that starts
// failing repeatedly trips its breaker, which turns further calls into
// an immediate ErrExternUnavailable instead of continuing to hammer a
// host function that is already in a bad state.
type breakerRegistry struct {
	mu       sync.Mutex
	breakers map[string]*gobreaker.CircuitBreaker
}

func newBreakerRegistry() *breakerRegistry {
	return &breakerRegistry{breakers: make(map[string]*gobreaker.CircuitBreaker)}
}

func (r *breakerRegistry) get(module, name string) *gobreaker.CircuitBreaker {
	key := module + "." + name
	r.mu.Lock()
	defer r.mu.Unlock()
	if b, ok := r.breakers[key]; ok {
		return b
	}
	b := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        key,
		MaxRequests: 1,
		Interval:    0,
		Timeout:     5 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})
	r.breakers[key] = b
	return b
}

func (r *breakerRegistry) call(module, name string, fn func() (*wasm.Value, error)) (*wasm.Value, error) {
	b := r.get(module, name)
	v, err := b.Execute(func() (interface{}, error) {
		return fn()
	})
	if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
		return nil, wasm.ErrExternUnavailable
	}
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, nil
	}
	return v.(*wasm.Value), nil
}
