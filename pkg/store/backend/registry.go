package backend

import (
	"fmt"
	"sort"
	"sync"
)

// Factory is a function type that opens a Store from a backend config
type Factory func(cfg Config) (Store, error)

// Registry manages storage backend factories
type Registry interface {
	// Register adds a new backend factory
	Register(name string, factory Factory) error
	// Open instantiates the backend selected by cfg.Type
	Open(cfg Config) (Store, error)
	// ListBackends returns the registered backend names
	ListBackends() []string
}

type registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates a registry holding the given factories
func NewRegistry(factories map[string]Factory) (Registry, error) {
	r := &registry{factories: make(map[string]Factory)}
	for name, factory := range factories {
		if err := r.Register(name, factory); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *registry) Register(name string, factory Factory) error {
	if name == "" {
		return fmt.Errorf("backend name cannot be empty")
	}
	if factory == nil {
		return fmt.Errorf("factory cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("backend %q is already registered", name)
	}

	r.factories[name] = factory
	return nil
}

func (r *registry) Open(cfg Config) (Store, error) {
	r.mu.RLock()
	factory, exists := r.factories[cfg.Type]
	r.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("backend %q is not registered", cfg.Type)
	}

	return factory(cfg)
}

func (r *registry) ListBackends() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
