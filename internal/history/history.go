// Package history records reconciled graph states as a linear undo/redo
// timeline. It depends only on the reconciler's snapshot contract: a
// recorded declarative graph can always be reapplied to restore the store.
package history

import (
	"context"
	"fmt"

	"github.com/vk/opgraph/internal/ctxlog"
	"github.com/vk/opgraph/internal/graphspec"
	"github.com/vk/opgraph/internal/operator"
)

// Applier restores a recorded graph state. The reconciler satisfies it.
type Applier interface {
	TransformGraph(ctx context.Context, g *graphspec.Graph) ([]*operator.Operator, error)
}

// entry is one recorded state plus a human-readable label for UI display.
type entry struct {
	graph       *graphspec.Graph
	description string
}

// Controller is a state machine over an ordered history of recorded graph
// snapshots with a cursor. Like everything in the engine core it runs on the
// single event goroutine; there is no locking, only call ordering.
type Controller struct {
	applier   Applier
	entries   []entry
	cursor    int // index of the current entry, -1 before the first record
	restoring bool
}

// New creates an empty controller that restores through applier.
func New(applier Applier) *Controller {
	return &Controller{applier: applier, cursor: -1}
}

// Record appends a snapshot of g at the cursor, truncating any forward
// (redo) history. Calls made while a restore is in flight are suppressed:
// the reconciler's side effects during Undo/Redo must not pollute the
// timeline with the controller's own writes.
func (c *Controller) Record(g *graphspec.Graph, description string) {
	if c.restoring {
		return
	}
	c.entries = append(c.entries[:c.cursor+1], entry{graph: g.Clone(), description: description})
	c.cursor = len(c.entries) - 1
}

// CanUndo reports whether a prior state exists.
func (c *Controller) CanUndo() bool {
	return c.cursor > 0
}

// CanRedo reports whether a forward state exists.
func (c *Controller) CanRedo() bool {
	return c.cursor >= 0 && c.cursor < len(c.entries)-1
}

// IsRestoring reports whether the controller is currently mid-apply.
func (c *Controller) IsRestoring() bool {
	return c.restoring
}

// Undo moves the cursor back one step and reapplies that state. At the start
// of history it is a no-op.
func (c *Controller) Undo(ctx context.Context) error {
	if !c.CanUndo() {
		ctxlog.FromContext(ctx).Debug("History: undo at start of history, no-op.")
		return nil
	}
	if err := c.restore(ctx, c.cursor-1); err != nil {
		return fmt.Errorf("undo failed: %w", err)
	}
	return nil
}

// Redo moves the cursor forward one step and reapplies that state. At the
// end of history it is a no-op.
func (c *Controller) Redo(ctx context.Context) error {
	if !c.CanRedo() {
		ctxlog.FromContext(ctx).Debug("History: redo at end of history, no-op.")
		return nil
	}
	if err := c.restore(ctx, c.cursor+1); err != nil {
		return fmt.Errorf("redo failed: %w", err)
	}
	return nil
}

// restore applies the entry at index and moves the cursor there. The cursor
// only moves on success, so a failed apply leaves the timeline consistent
// with the store.
func (c *Controller) restore(ctx context.Context, index int) error {
	logger := ctxlog.FromContext(ctx)
	target := c.entries[index]
	logger.Debug("History: restoring state.", "index", index, "description", target.description)

	c.restoring = true
	defer func() { c.restoring = false }()

	if _, err := c.applier.TransformGraph(ctx, target.graph.Clone()); err != nil {
		return err
	}
	c.cursor = index
	return nil
}

// State describes the controller's position for UI display.
type State struct {
	Cursor int
	Length int
	// UndoDescription labels the change Undo would revert (the current
	// entry); empty when undo is unavailable.
	UndoDescription string
	// RedoDescription labels the change Redo would reapply; empty when redo
	// is unavailable.
	RedoDescription string
}

// GetState exposes the cursor position and the labels of the undo/redo
// targets.
func (c *Controller) GetState() State {
	s := State{Cursor: c.cursor, Length: len(c.entries)}
	if c.CanUndo() {
		s.UndoDescription = c.entries[c.cursor].description
	}
	if c.CanRedo() {
		s.RedoDescription = c.entries[c.cursor+1].description
	}
	return s
}
