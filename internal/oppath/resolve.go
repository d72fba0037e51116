package oppath

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnresolvable is returned when a path reference cannot be resolved to a
// valid absolute path.
var ErrUnresolvable = errors.New("unresolvable path reference")

// Resolve resolves a path reference against the path of a context operator.
//
// An absolute reference (leading "/") is normalized and returned as-is.
// References starting with "./" or "../", and bare names with no leading
// qualifier, are resolved against the *parent* of contextPath: the context
// operator is treated as a sibling namespace, matching the "current
// container" semantics of the editing surface.
func Resolve(reference, contextPath string) (string, error) {
	if reference == "" {
		return "", fmt.Errorf("%w: empty reference", ErrUnresolvable)
	}
	var resolved string
	if strings.HasPrefix(reference, "/") {
		resolved = Normalize(reference)
	} else {
		parent, err := Parent(Normalize(contextPath))
		if err != nil {
			return "", fmt.Errorf("%w: bad context %q", ErrUnresolvable, contextPath)
		}
		resolved = Join(parent, reference)
	}
	// Normalization strips structure but not content, so a reference
	// smuggling in control characters still has to be rejected here.
	if !IsValid(resolved) {
		return "", fmt.Errorf("%w: %q", ErrUnresolvable, reference)
	}
	return resolved, nil
}
