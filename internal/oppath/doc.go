// Package oppath defines the identity scheme for operators: POSIX-style
// absolute paths addressing operators in the containment tree, and
// `namespace.field` handles addressing individual slots on an operator.
//
// All functions are pure. Paths form a tree: every non-root path has exactly
// one parent (its longest proper ancestor) and a base name (its last
// segment). A handle on its own is meaningless; the full reference to a slot
// is the triple (operator path, namespace, field).
package oppath
