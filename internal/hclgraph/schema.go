package hclgraph

import "github.com/hashicorp/hcl/v2"

// nodeInputs represents the content of the 'inputs' block within a node.
type nodeInputs struct {
	Body hcl.Body `hcl:",remain"`
}

// nodeBlock represents a `node` block from a graph file: one declared
// operator with its type tag, identity path, and parameter literals.
type nodeBlock struct {
	Type   string      `hcl:"type,label"`
	ID     string      `hcl:"id,label"`
	Inputs *nodeInputs `hcl:"inputs,block"`
}

// edgeBlock represents an `edge` block: one declared connection.
type edgeBlock struct {
	ID           string `hcl:"id,label"`
	Source       string `hcl:"source"`
	Target       string `hcl:"target"`
	SourceHandle string `hcl:"source_handle"`
	TargetHandle string `hcl:"target_handle"`
}

// inputBlock declares a parameter field inside an `operator` manifest.
type inputBlock struct {
	Name        string         `hcl:"name,label"`
	Default     hcl.Expression `hcl:"default,optional"`
	FanIn       bool           `hcl:"fan_in,optional"`
	Description string         `hcl:"description,optional"`
}

// outputBlock declares an output field inside an `operator` manifest.
type outputBlock struct {
	Name        string `hcl:"name,label"`
	Description string `hcl:"description,optional"`
}

// operatorBlock represents an `operator` manifest block: the definition of
// an operator type's slot layout.
type operatorBlock struct {
	Type        string         `hcl:"type,label"`
	Description string         `hcl:"description,optional"`
	Inputs      []*inputBlock  `hcl:"input,block"`
	Outputs     []*outputBlock `hcl:"output,block"`
}

// fileRoot decodes all top-level blocks from any file; manifests and graph
// declarations may be mixed freely across files.
type fileRoot struct {
	Operators []*operatorBlock `hcl:"operator,block"`
	Nodes     []*nodeBlock     `hcl:"node,block"`
	Edges     []*edgeBlock     `hcl:"edge,block"`
	Remain    hcl.Body         `hcl:",remain"`
}
