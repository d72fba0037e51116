// Package operator defines the node abstraction of the graph engine: a typed
// instance addressed by path, with one input slot per declared parameter
// field and one output cell per declared output field.
package operator

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"

	"github.com/vk/opgraph/internal/oppath"
	"github.com/vk/opgraph/internal/registry"
)

// Operator is a live node instance. Its path is both its identity and its
// position in the containment tree; its type tag is fixed at creation. A
// path that changes type is destroy-then-create territory, never a mutation.
type Operator struct {
	path    string
	typeTag string

	// Inputs maps parameter field names to their slots.
	Inputs map[string]*Slot
	// Outputs maps output field names to their current value cells. Cells
	// start null; evaluation layers write them through SetOutput.
	Outputs map[string]cty.Value

	// Meta is runtime scratch state owned by evaluation layers (caches and
	// the like). Reconciliation reuses operator instances precisely so that
	// whatever lives here survives incremental graph edits.
	Meta map[string]any
}

// New constructs an operator at path from its type definition, seeding each
// slot with the supplied literal or the field's declared default. Literal
// keys that name no declared field are ignored; the declarative surface may
// carry stale data and stale data must not block construction.
func New(path string, def *registry.Definition, literals map[string]cty.Value) (*Operator, error) {
	if !oppath.IsValid(path) {
		return nil, fmt.Errorf("%w: %q", oppath.ErrInvalidPath, path)
	}
	o := &Operator{
		path:    path,
		typeTag: def.Type,
		Inputs:  make(map[string]*Slot, len(def.Inputs)),
		Outputs: make(map[string]cty.Value, len(def.Outputs)),
		Meta:    make(map[string]any),
	}
	for name, in := range def.Inputs {
		if v, ok := literals[name]; ok {
			o.Inputs[name] = NewSlot(v)
		} else {
			o.Inputs[name] = NewSlot(in.Default)
		}
	}
	for name := range def.Outputs {
		o.Outputs[name] = cty.NullVal(cty.DynamicPseudoType)
	}
	return o, nil
}

// Path returns the operator's identity path.
func (o *Operator) Path() string {
	return o.path
}

// Type returns the operator's immutable type tag.
func (o *Operator) Type() string {
	return o.typeTag
}

// SetLiteral updates the literal on a named parameter slot.
func (o *Operator) SetLiteral(field string, v cty.Value) error {
	slot, ok := o.Inputs[field]
	if !ok {
		return fmt.Errorf("operator %s has no parameter field %q", o.path, field)
	}
	slot.SetLiteral(v)
	return nil
}

// SetOutput writes a named output cell.
func (o *Operator) SetOutput(field string, v cty.Value) error {
	if _, ok := o.Outputs[field]; !ok {
		return fmt.Errorf("operator %s has no output field %q", o.path, field)
	}
	o.Outputs[field] = v
	return nil
}

// Destroy severs all of the operator's own input subscriptions and drops its
// scratch state. It does not reach into downstream operators: subscriptions
// referencing this operator live in their owners' slots, and cleaning those
// up is the reconciler's dangling-edge pass.
func (o *Operator) Destroy() {
	for _, slot := range o.Inputs {
		slot.ClearSubscriptions()
	}
	o.Meta = nil
}
