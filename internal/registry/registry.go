// Package registry lets modules publish services for other modules and for
// the server's core handlers to discover at boot time.
package registry

import (
	"fmt"
	"sync"

	"github.com/univ-lehavre/talent-finder-sub000/internal/config"
)

// Key is a type-safe key for registering and retrieving services.
// The string value should be unique, e.g. "consent.service".
type Key[T any] string

// Registry is a concurrent-safe service locator.
type Registry struct {
	services sync.Map
	cfg      config.Provider
}

// New creates a registry carrying the application configuration.
func New(cfg config.Provider) *Registry {
	return &Registry{cfg: cfg}
}

// Config returns the configuration provider stored in the registry.
func (r *Registry) Config() config.Provider {
	return r.cfg
}

// Set registers value under key, replacing any previous value.
func Set[T any](r *Registry, key Key[T], value T) {
	r.services.Store(string(key), value)
}

// Get retrieves the service registered under key.
func Get[T any](r *Registry, key Key[T]) (T, bool) {
	var zero T
	val, ok := r.services.Load(string(key))
	if !ok {
		return zero, false
	}
	result, ok := val.(T)
	if !ok {
		return zero, false
	}
	return result, true
}

// MustGet retrieves a service or panics if it is missing. Use it only while
// wiring essential dependencies at startup.
func MustGet[T any](r *Registry, key Key[T]) T {
	val, ok := Get(r, key)
	if !ok {
		panic(fmt.Sprintf("service not found for key: %v", key))
	}
	return val
}

// Keys returns the registered key names, in no particular order.
func (r *Registry) Keys() []string {
	var keys []string
	r.services.Range(func(k, _ any) bool {
		keys = append(keys, k.(string))
		return true
	})
	return keys
}
