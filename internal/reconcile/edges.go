package reconcile

import (
	"context"
	"log/slog"

	"github.com/vk/opgraph/internal/ctxlog"
	"github.com/vk/opgraph/internal/graphspec"
	"github.com/vk/opgraph/internal/operator"
	"github.com/vk/opgraph/internal/oppath"
)

// wireEdges performs the second pass: slot subscription sets are rebuilt
// from the declared edge list, in input order. A malformed edge is dropped
// with a warning, never fatal; the rest of the graph still materializes.
func (r *Reconciler) wireEdges(ctx context.Context, g *graphspec.Graph, desired map[string]bool) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Reconcile: edge wiring pass starting.")

	// Rebuilding from scratch is what makes edge removal and idempotence
	// fall out of the same code path: after this pass the subscription sets
	// are exactly the valid declared edges, whatever they were before.
	for path := range desired {
		if op, ok := r.store.Get(path); ok {
			for _, slot := range op.Inputs {
				slot.ClearSubscriptions()
			}
		}
	}

	wired := 0
	for _, e := range g.Edges {
		if r.wireEdge(logger, e) {
			wired++
		}
	}
	logger.Debug("Reconcile: edge wiring pass complete.", "wired", wired, "declared", len(g.Edges))
}

// wireEdge validates one edge and registers its subscription. It reports
// whether the edge was wired.
func (r *Reconciler) wireEdge(logger *slog.Logger, e *graphspec.Edge) bool {
	srcHandle, err := oppath.ParseHandle(e.SourceHandle)
	if err != nil || srcHandle.Namespace != oppath.NamespaceOutput {
		logger.Warn("Reconcile: edge has invalid source handle, dropping.",
			"edge", e.ID, "source_handle", e.SourceHandle)
		return false
	}
	dstHandle, err := oppath.ParseHandle(e.TargetHandle)
	if err != nil || dstHandle.Namespace != oppath.NamespaceParam {
		logger.Warn("Reconcile: edge has invalid target handle, dropping.",
			"edge", e.ID, "target_handle", e.TargetHandle)
		return false
	}
	if !oppath.IsValid(e.Source) || !oppath.IsValid(e.Target) {
		logger.Warn("Reconcile: edge endpoint has malformed path, dropping.",
			"edge", e.ID, "source", e.Source, "target", e.Target)
		return false
	}

	src, ok := r.store.Get(oppath.Normalize(e.Source))
	if !ok {
		logger.Warn("Reconcile: edge source operator does not exist, dropping.",
			"edge", e.ID, "source", e.Source)
		return false
	}
	dst, ok := r.store.Get(oppath.Normalize(e.Target))
	if !ok {
		logger.Warn("Reconcile: edge target operator does not exist, dropping.",
			"edge", e.ID, "target", e.Target)
		return false
	}

	if _, ok := src.Outputs[srcHandle.Field]; !ok {
		logger.Warn("Reconcile: edge names unknown output field, dropping.",
			"edge", e.ID, "source", src.Path(), "field", srcHandle.Field)
		return false
	}
	slot, ok := dst.Inputs[dstHandle.Field]
	if !ok {
		logger.Warn("Reconcile: edge names unknown parameter field, dropping.",
			"edge", e.ID, "target", dst.Path(), "field", dstHandle.Field)
		return false
	}

	if slot.Driven() && !r.allowsFanIn(dst.Type(), dstHandle.Field) {
		// Default policy is a single upstream source per slot; only types
		// that declare fan-in may aggregate. First valid edge wins.
		logger.Warn("Reconcile: slot does not accept multiple sources, dropping edge.",
			"edge", e.ID, "target", dst.Path(), "field", dstHandle.Field)
		return false
	}

	slot.Subscribe(operator.Subscription{
		SourcePath:  src.Path(),
		SourceField: srcHandle.Field,
	})
	return true
}

// allowsFanIn reports whether the named parameter field of the given type
// declares fan-in.
func (r *Reconciler) allowsFanIn(typeTag, field string) bool {
	def, ok := r.registry.Lookup(typeTag)
	if !ok {
		return false
	}
	in, ok := def.Inputs[field]
	return ok && in.FanIn
}
