package operator

import "github.com/zclconf/go-cty/cty"

// Subscription is a directed edge feeding a slot: it names the upstream
// operator's path and output field. Subscriptions are owned by the consuming
// slot; the source operator holds no back-reference and is discoverable only
// by scanning.
type Subscription struct {
	SourcePath  string
	SourceField string
}

// Slot is a single parameter field on an operator. It holds a literal value,
// used when the slot is unconnected, and the set of subscriptions currently
// feeding it. While any subscription exists the literal is inert: the
// effective value is driven from upstream.
type Slot struct {
	literal cty.Value
	subs    []Subscription
}

// NewSlot creates a slot seeded with the given literal.
func NewSlot(literal cty.Value) *Slot {
	if literal == cty.NilVal {
		literal = cty.NullVal(cty.DynamicPseudoType)
	}
	return &Slot{literal: literal}
}

// Value returns the slot's literal. Callers that care about precedence must
// check Driven first: a driven slot's effective value comes from upstream.
func (s *Slot) Value() cty.Value {
	return s.literal
}

// SetLiteral replaces the slot's literal value. Permitted while driven, but
// the new literal stays inert until the last subscription is removed.
func (s *Slot) SetLiteral(v cty.Value) {
	if v == cty.NilVal {
		v = cty.NullVal(cty.DynamicPseudoType)
	}
	s.literal = v
}

// Driven reports whether at least one subscription feeds this slot.
func (s *Slot) Driven() bool {
	return len(s.subs) > 0
}

// Subscriptions returns the slot's subscriptions in registration order.
// The returned slice is shared; callers must not mutate it.
func (s *Slot) Subscriptions() []Subscription {
	return s.subs
}

// Subscribe adds sub to the slot's set. Adding a subscription that is
// already present is a no-op, preserving set semantics.
func (s *Slot) Subscribe(sub Subscription) {
	for _, existing := range s.subs {
		if existing == sub {
			return
		}
	}
	s.subs = append(s.subs, sub)
}

// ClearSubscriptions removes every subscription from the slot.
func (s *Slot) ClearSubscriptions() {
	s.subs = nil
}

// DropSource removes every subscription whose source operator path matches
// sourcePath. It reports whether anything was removed.
func (s *Slot) DropSource(sourcePath string) bool {
	kept := s.subs[:0]
	for _, sub := range s.subs {
		if sub.SourcePath != sourcePath {
			kept = append(kept, sub)
		}
	}
	dropped := len(kept) != len(s.subs)
	if len(kept) == 0 {
		kept = nil
	}
	s.subs = kept
	return dropped
}
