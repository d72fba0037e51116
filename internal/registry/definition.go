package registry

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"
)

// InputDef declares a single parameter field of an operator type.
type InputDef struct {
	Name        string
	Description string
	// Default seeds the slot literal when the declarative node carries no
	// value for this field. cty.NilVal means "no default": the slot starts
	// null.
	Default cty.Value
	// FanIn permits more than one simultaneous upstream subscription on this
	// field. How multiple sources aggregate is an evaluation-layer concern;
	// the topology only records whether they may coexist.
	FanIn bool
}

// OutputDef declares a single output field of an operator type.
type OutputDef struct {
	Name        string
	Description string
}

// Definition describes one operator type: its type tag and slot layout.
type Definition struct {
	Type        string
	Description string
	Inputs      map[string]*InputDef
	Outputs     map[string]*OutputDef
}

// Validate checks the internal consistency of a definition: a non-empty type
// tag, and map keys that agree with the field names they index.
func (d *Definition) Validate() error {
	if d.Type == "" {
		return fmt.Errorf("operator definition has empty type tag")
	}
	for key, in := range d.Inputs {
		if in == nil || in.Name != key {
			return fmt.Errorf("type %q: input %q has mismatched name", d.Type, key)
		}
	}
	for key, out := range d.Outputs {
		if out == nil || out.Name != key {
			return fmt.Errorf("type %q: output %q has mismatched name", d.Type, key)
		}
	}
	return nil
}
