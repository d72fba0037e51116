// Package reconcile converts a declarative graph description into live
// operator store state with minimal disruption to what already exists.
//
// A pass runs in strict phases: pre-flight type checking, node
// materialization (reusing any operator whose path and type are unchanged),
// edge wiring, then pruning with dangling-subscription cleanup. Instance
// reuse is the central correctness property: it is what lets runtime state
// an operator carries (evaluation caches and the like) survive incremental
// graph edits, which is why a wholesale rebuild is not an acceptable
// implementation of this package.
package reconcile
