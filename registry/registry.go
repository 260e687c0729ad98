// Package registry maps driver names to factories so the host application
// can construct login drivers from configuration.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/blogem/battlenet-login/authenticator"
)

// Factory builds a driver from its client registration
type Factory func(cfg authenticator.Config) (authenticator.Driver, error)

// Registry holds driver factories keyed by name. Safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// New creates an empty registry
func New() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds a factory. Names must be unique.
func (r *Registry) Register(name string, factory Factory) error {
	if name == "" {
		return fmt.Errorf("driver name is required")
	}
	if factory == nil {
		return fmt.Errorf("driver %s: factory is nil", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.factories[name]; ok {
		return fmt.Errorf("driver %s already registered", name)
	}
	r.factories[name] = factory
	return nil
}

// Make constructs the named driver
func (r *Registry) Make(name string, cfg authenticator.Config) (authenticator.Driver, error) {
	r.mu.RLock()
	factory, ok := r.factories[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown login driver: %s", name)
	}
	return factory(cfg)
}

// Names returns the registered driver names in sorted order
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
