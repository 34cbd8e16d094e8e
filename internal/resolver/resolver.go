// Package resolver provides the named type registry for promptcast.
// It manages thread-safe registration and lookup of casters by name and
// ships the built-in primitive types.
package resolver

import (
	"fmt"
	"sort"
	"sync"

	"promptcast/pkg/argtypes"
)

// Resolver maps type names to caster functions. It satisfies
// argtypes.TypeRegistry and is safe for concurrent use.
type Resolver struct {
	mu    sync.RWMutex
	types map[string]argtypes.CastFunc
}

// New creates a resolver pre-populated with the built-in types.
func New() *Resolver {
	r := &Resolver{
		types: make(map[string]argtypes.CastFunc),
	}
	r.addBuiltInTypes()
	return r
}

// NewEmpty creates a resolver with no registered types.
func NewEmpty() *Resolver {
	return &Resolver{
		types: make(map[string]argtypes.CastFunc),
	}
}

// Register adds or replaces a named caster. Returns an error if the name is
// empty or the caster is nil.
func (r *Resolver) Register(name string, fn argtypes.CastFunc) error {
	if name == "" {
		return fmt.Errorf("type name cannot be empty")
	}
	if fn == nil {
		return fmt.Errorf("caster for type %s cannot be nil", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.types[name] = fn
	return nil
}

// Lookup retrieves a caster by name. Returns the caster and true if found,
// or nil and false if the name is not registered.
func (r *Resolver) Lookup(name string) (argtypes.CastFunc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, exists := r.types[name]
	return fn, exists
}

// Types returns the sorted names of all registered types.
func (r *Resolver) Types() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.types))
	for name := range r.types {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered types.
func (r *Resolver) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.types)
}
