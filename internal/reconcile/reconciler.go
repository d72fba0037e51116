package reconcile

import (
	"context"
	"errors"
	"fmt"

	"github.com/vk/opgraph/internal/ctxlog"
	"github.com/vk/opgraph/internal/graphspec"
	"github.com/vk/opgraph/internal/operator"
	"github.com/vk/opgraph/internal/opstore"
	"github.com/vk/opgraph/internal/registry"
)

// ErrUnknownType is returned when a declarative node names an operator type
// with no registered definition. This fails the whole pass: a store in a
// partially-typed state cannot be evaluated safely.
var ErrUnknownType = errors.New("unknown operator type")

// Reconciler applies declarative graphs to an operator store. The store and
// registry are passed in explicitly; a fresh store per test is cheap and
// nothing here is a process-wide singleton.
type Reconciler struct {
	store    *opstore.Store
	registry *registry.Registry
}

// New creates a reconciler bound to a store and a type registry.
func New(store *opstore.Store, reg *registry.Registry) *Reconciler {
	return &Reconciler{store: store, registry: reg}
}

// Store returns the store this reconciler mutates.
func (r *Reconciler) Store() *opstore.Store {
	return r.store
}

// TransformGraph applies g to the store and returns the materialized
// operators in declarative node order.
//
// An unrecognized node type fails the pass before any mutation. A malformed
// individual edge is dropped with a warning and the rest of the graph still
// materializes. Operators absent from g are removed, and every subscription
// referencing a removed operator as its source is dropped with them.
func (r *Reconciler) TransformGraph(ctx context.Context, g *graphspec.Graph) ([]*operator.Operator, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Reconcile: pass starting.", "nodes", len(g.Nodes), "edges", len(g.Edges))

	// Pre-flight runs before the store is touched, so a fatal error leaves
	// the previous graph fully intact.
	if err := r.checkTypes(g); err != nil {
		return nil, err
	}

	ops, desired := r.materializeNodes(ctx, g)
	r.wireEdges(ctx, g, desired)
	removed := r.prune(ctx, desired)

	logger.Info("Reconcile: pass complete.",
		"operators", len(ops), "removed", len(removed), "store_size", r.store.Len())
	return ops, nil
}

// checkTypes verifies that every declared node type has a registered
// definition.
func (r *Reconciler) checkTypes(g *graphspec.Graph) error {
	for _, n := range g.Nodes {
		if _, ok := r.registry.Lookup(n.Type); !ok {
			return fmt.Errorf("node %q: %w: %q", n.ID, ErrUnknownType, n.Type)
		}
	}
	return nil
}
