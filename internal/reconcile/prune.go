package reconcile

import (
	"context"

	"github.com/vk/opgraph/internal/ctxlog"
	"github.com/vk/opgraph/internal/operator"
)

// prune performs the final pass: operators present in the store but absent
// from the declarative set are removed, and any subscription anywhere whose
// source was removed is dropped. A slot that loses its last subscription
// reverts to driving from its literal. This cleanup is a defined
// normalization step, not an error.
func (r *Reconciler) prune(ctx context.Context, desired map[string]bool) []string {
	logger := ctxlog.FromContext(ctx)

	var removed []string
	for _, path := range r.store.Paths() {
		if desired[path] {
			continue
		}
		op, _ := r.store.Get(path)
		op.Destroy()
		r.store.Delete(path)
		removed = append(removed, path)
	}
	if len(removed) == 0 {
		return nil
	}
	logger.Debug("Reconcile: pruned operators absent from declaration.", "removed", removed)

	// Dangling-edge cleanup. Removed operators held no back-references to
	// their dependents, so the only way to find stale subscriptions is to
	// scan the survivors.
	r.store.Range(func(_ string, op *operator.Operator) bool {
		for field, slot := range op.Inputs {
			for _, gone := range removed {
				if slot.DropSource(gone) {
					logger.Debug("Reconcile: dropped dangling subscription.",
						"operator", op.Path(), "field", field, "source", gone)
				}
			}
		}
		return true
	})
	return removed
}
