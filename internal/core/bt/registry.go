package bt

import (
	"fmt"
	"sync"
)

// Registry resolves the leaf-level capabilities referenced by a
// Config: named predicates and actions supplied by the host. It
// decouples tree descriptions from concrete implementations.
type Registry struct {
	mu         sync.RWMutex
	conditions map[string]func(params map[string]any) (func() bool, error)
	actions    map[string]func(params map[string]any) (func(), error)
}

func NewRegistry() *Registry {
	return &Registry{
		conditions: make(map[string]func(map[string]any) (func() bool, error)),
		actions:    make(map[string]func(map[string]any) (func(), error)),
	}
}

func (r *Registry) RegisterCondition(name string, factory func(params map[string]any) (func() bool, error)) {
	r.mu.Lock()
	r.conditions[name] = factory
	r.mu.Unlock()
}

func (r *Registry) RegisterAction(name string, factory func(params map[string]any) (func(), error)) {
	r.mu.Lock()
	r.actions[name] = factory
	r.mu.Unlock()
}

func (r *Registry) newCondition(name string, params map[string]any) (func() bool, error) {
	r.mu.RLock()
	factory, ok := r.conditions[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown condition: %s", name)
	}
	return factory(params)
}

func (r *Registry) newAction(name string, params map[string]any) (func(), error) {
	r.mu.RLock()
	factory, ok := r.actions[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown action: %s", name)
	}
	return factory(params)
}
