package embedding

import (
	"errors"
	"fmt"
	"sync"
)

// ErrUnknownModel is returned by Registry.Lookup for an unregistered id.
var ErrUnknownModel = errors.New("embedding: unknown model")

// Registry is an in-process Lookup implementation backed by a map. The zero
// value is not usable; construct it with NewRegistry. Safe for concurrent
// use.
type Registry struct {
	mu     sync.RWMutex
	models map[string]Model
}

// NewRegistry returns an empty model registry.
func NewRegistry() *Registry {
	return &Registry{models: make(map[string]Model)}
}

// Register adds a model under its ModelID, replacing any previous
// registration with the same id.
func (r *Registry) Register(m Model) {
	r.mu.Lock()
	r.models[m.ModelID()] = m
	r.mu.Unlock()
}

// Lookup resolves a model by id, or fails with ErrUnknownModel.
func (r *Registry) Lookup(id string) (Model, error) {
	r.mu.RLock()
	m, ok := r.models[id]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownModel, id)
	}
	return m, nil
}

var _ Lookup = (*Registry)(nil)
