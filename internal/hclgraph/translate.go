package hclgraph

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"

	"github.com/vk/opgraph/internal/graphspec"
	"github.com/vk/opgraph/internal/registry"
)

// translateOperator converts an `operator` manifest block into a registry
// definition. Defaults are constant expressions evaluated with no context; a
// null or failing default means the field simply has none.
func translateOperator(block *operatorBlock) (*registry.Definition, error) {
	def := &registry.Definition{
		Type:        block.Type,
		Description: block.Description,
		Inputs:      make(map[string]*registry.InputDef, len(block.Inputs)),
		Outputs:     make(map[string]*registry.OutputDef, len(block.Outputs)),
	}
	for _, in := range block.Inputs {
		defaultVal := cty.NilVal
		if in.Default != nil {
			val, diags := in.Default.Value(nil)
			if !diags.HasErrors() && !val.IsNull() {
				defaultVal = val
			}
		}
		def.Inputs[in.Name] = &registry.InputDef{
			Name:        in.Name,
			Description: in.Description,
			Default:     defaultVal,
			FanIn:       in.FanIn,
		}
	}
	for _, out := range block.Outputs {
		def.Outputs[out.Name] = &registry.OutputDef{
			Name:        out.Name,
			Description: out.Description,
		}
	}
	return def, nil
}

// translateNode converts a `node` block into a declarative node, evaluating
// every attribute of its inputs block to a constant value.
func translateNode(block *nodeBlock) (*graphspec.Node, error) {
	node := &graphspec.Node{
		ID:     block.ID,
		Type:   block.Type,
		Inputs: make(map[string]cty.Value),
	}
	if block.Inputs == nil {
		return node, nil
	}
	attrs, diags := block.Inputs.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, fmt.Errorf("node %q: %s", block.ID, diags.Error())
	}
	for name, attr := range attrs {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("node %q: input %q: %s", block.ID, name, diags.Error())
		}
		node.Inputs[name] = val
	}
	return node, nil
}

// translateEdge converts an `edge` block into a declarative edge.
func translateEdge(block *edgeBlock) *graphspec.Edge {
	return &graphspec.Edge{
		ID:           block.ID,
		Source:       block.Source,
		Target:       block.Target,
		SourceHandle: block.SourceHandle,
		TargetHandle: block.TargetHandle,
	}
}
