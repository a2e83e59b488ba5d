package dom

import (
	"fmt"
	"sync"
)

// Constructor builds a new element for a custom definition.
type Constructor func() *Element

// Registry maps custom element names to constructors. A nil Registry
// behaves as empty.
type Registry struct {
	mu    sync.RWMutex
	ctors map[string]Constructor
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{ctors: make(map[string]Constructor)}
}

// Define registers a constructor under a name. Redefining a name is an
// error, matching custom-element registry semantics.
func (r *Registry) Define(name string, ctor Constructor) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.ctors[name]; exists {
		return fmt.Errorf("dom: %q already defined", name)
	}
	r.ctors[name] = ctor
	return nil
}

// Lookup returns the constructor for a name, or nil.
func (r *Registry) Lookup(name string) Constructor {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.ctors[name]
}

// DefaultRegistry is consulted by NewElement and NewBuiltin.
var DefaultRegistry = NewRegistry()
