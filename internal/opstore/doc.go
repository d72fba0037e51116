// Package opstore provides the registry of live operators, keyed by path.
// It is the single source of truth for what currently exists.
//
// The store holds a plain map on purpose. All mutations happen on the single
// event goroutine that drives reconciliation and undo/redo; the required
// discipline is call ordering, not locks. A reconciliation pass must run to
// completion before anything else observes the store, because a half-wired
// graph is not a valid snapshot.
package opstore
