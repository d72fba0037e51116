package reconcile

import (
	"context"

	"github.com/vk/opgraph/internal/ctxlog"
	"github.com/vk/opgraph/internal/graphspec"
	"github.com/vk/opgraph/internal/operator"
	"github.com/vk/opgraph/internal/oppath"
)

// materializeNodes performs the first pass: for each declared node, reuse
// the existing operator when its path and type are unchanged, otherwise
// construct a fresh instance and register it. It returns the materialized
// operators in declarative order and the set of desired paths.
func (r *Reconciler) materializeNodes(ctx context.Context, g *graphspec.Graph) ([]*operator.Operator, map[string]bool) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Reconcile: node materialization pass starting.")

	ops := make([]*operator.Operator, 0, len(g.Nodes))
	desired := make(map[string]bool, len(g.Nodes))

	for _, n := range g.Nodes {
		if !oppath.IsValid(n.ID) {
			// An identity error rejects the offending construction only;
			// coercing a malformed path into a real one is worse than
			// dropping the node.
			logger.Warn("Reconcile: node has malformed path, skipping.", "id", n.ID)
			continue
		}
		path := oppath.Normalize(n.ID)
		if desired[path] {
			logger.Warn("Reconcile: duplicate node declaration, later one wins.", "path", path)
		}

		def, _ := r.registry.Lookup(n.Type) // presence checked in pre-flight

		if existing, ok := r.store.Get(path); ok && existing.Type() == n.Type {
			// Same identity, same type: reuse the instance and refresh its
			// literals. Subscriptions are untouched here; the edge pass
			// rebuilds them from the declared edge list.
			for field, v := range n.Inputs {
				if err := existing.SetLiteral(field, v); err != nil {
					logger.Debug("Reconcile: ignoring literal for undeclared field.",
						"path", path, "field", field)
				}
			}
			if !desired[path] {
				ops = append(ops, existing)
			}
			desired[path] = true
			continue
		}

		fresh, err := operator.New(path, def, n.Inputs)
		if err != nil {
			logger.Warn("Reconcile: operator construction failed, skipping node.",
				"path", path, "error", err)
			continue
		}
		if previous, ok := r.store.Get(path); ok {
			// Type changed at an occupied path: destroy-then-create, never
			// a mutation.
			logger.Debug("Reconcile: type changed at path, replacing operator.",
				"path", path, "old_type", previous.Type(), "new_type", n.Type)
			previous.Destroy()
		}
		if err := r.store.Set(path, fresh); err != nil {
			logger.Warn("Reconcile: store rejected operator.", "path", path, "error", err)
			continue
		}
		if !desired[path] {
			ops = append(ops, fresh)
		} else {
			// Duplicate declaration replaced the instance; fix the slot in
			// the ordered result so callers see the live one.
			for i, op := range ops {
				if op.Path() == path {
					ops[i] = fresh
					break
				}
			}
		}
		desired[path] = true
	}

	logger.Debug("Reconcile: node materialization pass complete.", "count", len(ops))
	return ops, desired
}
