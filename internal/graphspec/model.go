// Package graphspec defines the format-agnostic declarative description of
// an operator graph: the nodes and edges the editing surface wants to exist.
// The reconciler consumes it; the history controller records it; loaders
// produce it from whatever format the host speaks.
package graphspec

import (
	"maps"

	"github.com/zclconf/go-cty/cty"
)

// Node declares one operator: its identity path, its type tag, and the
// literal values for its parameter fields.
type Node struct {
	ID     string
	Type   string
	Inputs map[string]cty.Value
}

// Edge declares one connection: the source operator's `out.<field>` handle
// feeding the target operator's `par.<field>` handle.
type Edge struct {
	ID           string
	Source       string
	Target       string
	SourceHandle string
	TargetHandle string
}

// Graph is an ordered collection of node and edge declarations. Node order
// is meaningful: the reconciler returns operators in declarative order.
type Graph struct {
	Nodes []*Node
	Edges []*Edge
}

// Clone returns a deep copy of the graph. History snapshots must be isolated
// from later mutation by the editing surface. cty values are immutable, so
// copying the maps is sufficient.
func (g *Graph) Clone() *Graph {
	if g == nil {
		return nil
	}
	out := &Graph{
		Nodes: make([]*Node, len(g.Nodes)),
		Edges: make([]*Edge, len(g.Edges)),
	}
	for i, n := range g.Nodes {
		cp := *n
		cp.Inputs = maps.Clone(n.Inputs)
		out.Nodes[i] = &cp
	}
	for i, e := range g.Edges {
		cp := *e
		out.Edges[i] = &cp
	}
	return out
}
