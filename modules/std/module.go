// Package std is the built-in operator type pack: the small set of
// arithmetic, text, and plumbing types every graph can rely on without
// loading a manifest.
package std

import (
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/opgraph/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the built-in operator types with the engine.
func (m *Module) Register(r *registry.Registry) error {
	return r.RegisterAll([]*registry.Definition{
		{
			Type:        "NumberOp",
			Description: "A constant numeric value.",
			Inputs: map[string]*registry.InputDef{
				"val": {Name: "val", Default: cty.NumberIntVal(0)},
			},
			Outputs: map[string]*registry.OutputDef{
				"val": {Name: "val"},
			},
		},
		{
			Type:        "TextOp",
			Description: "A constant text value.",
			Inputs: map[string]*registry.InputDef{
				"text": {Name: "text", Default: cty.StringVal("")},
			},
			Outputs: map[string]*registry.OutputDef{
				"text": {Name: "text"},
			},
		},
		{
			Type:        "MathOp",
			Description: "Binary arithmetic over two numeric inputs.",
			Inputs: map[string]*registry.InputDef{
				"a":        {Name: "a", Default: cty.NumberIntVal(0)},
				"b":        {Name: "b", Default: cty.NumberIntVal(0)},
				"operator": {Name: "operator", Default: cty.StringVal("add")},
			},
			Outputs: map[string]*registry.OutputDef{
				"result": {Name: "result"},
			},
		},
		{
			Type:        "MergeOp",
			Description: "Aggregates any number of upstream sources into one list.",
			Inputs: map[string]*registry.InputDef{
				"sources": {Name: "sources", FanIn: true},
			},
			Outputs: map[string]*registry.OutputDef{
				"merged": {Name: "merged"},
			},
		},
		{
			Type:        "OutputOp",
			Description: "Terminal sink exposing its input to the host.",
			Inputs: map[string]*registry.InputDef{
				"value": {Name: "value"},
			},
			Outputs: map[string]*registry.OutputDef{},
		},
	})
}
