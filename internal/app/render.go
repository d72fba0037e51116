package app

import (
	"sort"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"

	"github.com/vk/opgraph/internal/operator"
)

// sortedFields returns the slot field names in sorted order for stable
// output.
func sortedFields(inputs map[string]*operator.Slot) []string {
	fields := make([]string, 0, len(inputs))
	for f := range inputs {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}

// renderValue formats a literal for the topology printout.
func renderValue(v cty.Value) string {
	if v.IsNull() {
		return "null"
	}
	if s, err := convert.Convert(v, cty.String); err == nil {
		return s.AsString()
	}
	return v.GoString()
}
