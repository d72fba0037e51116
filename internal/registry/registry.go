package registry

import (
	"fmt"
	"sort"
)

// Module is the interface a built-in operator type pack implements to
// register its definitions with a registry instance.
type Module interface {
	Register(r *Registry) error
}

// Registry maps type tags to operator definitions for a single engine
// instance. It is populated at startup and read-only during reconciliation.
type Registry struct {
	defs map[string]*Definition
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{defs: make(map[string]*Definition)}
}

// Register validates def and adds it to the registry. Registering the same
// type tag twice is an error: silently shadowing a definition would change
// the meaning of every node already using it.
func (r *Registry) Register(def *Definition) error {
	if err := def.Validate(); err != nil {
		return err
	}
	if _, exists := r.defs[def.Type]; exists {
		return fmt.Errorf("operator type %q already registered", def.Type)
	}
	r.defs[def.Type] = def
	return nil
}

// RegisterAll registers every definition in defs, stopping at the first error.
func (r *Registry) RegisterAll(defs []*Definition) error {
	for _, def := range defs {
		if err := r.Register(def); err != nil {
			return err
		}
	}
	return nil
}

// Lookup returns the definition for a type tag.
func (r *Registry) Lookup(typeTag string) (*Definition, bool) {
	def, ok := r.defs[typeTag]
	return def, ok
}

// Types returns all registered type tags in sorted order.
func (r *Registry) Types() []string {
	types := make([]string, 0, len(r.defs))
	for t := range r.defs {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}
