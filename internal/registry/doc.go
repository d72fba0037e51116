// Package registry holds operator type definitions: the declared parameter
// fields (with defaults and fan-in policy) and output fields of every
// operator type the engine can materialize.
//
// Definitions arrive from two directions: built-in type packs implementing
// the Module interface, and manifests loaded from declarative configuration.
// The reconciler consults the registry to construct operators and treats a
// type tag with no definition as fatal for the whole pass.
package registry
