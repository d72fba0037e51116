package oppath

import (
	"errors"
	"fmt"
	"strings"
)

// Namespace identifies which side of an operator a handle addresses.
type Namespace string

const (
	// NamespaceParam addresses a parameter (input) slot.
	NamespaceParam Namespace = "par"
	// NamespaceOutput addresses an output cell.
	NamespaceOutput Namespace = "out"
)

// Handle is the parsed form of a `namespace.field` slot reference.
// Field names may themselves contain dots; only the first dot separates the
// namespace from the field.
type Handle struct {
	Namespace Namespace
	Field     string
}

// ErrInvalidHandle is returned when a string is not a well-formed handle.
var ErrInvalidHandle = errors.New("invalid handle")

// ParseHandle splits a `namespace.field` string into its parts. The
// namespace must be exactly "par" or "out" and the field part must be
// non-empty.
func ParseHandle(handleID string) (Handle, error) {
	i := strings.IndexByte(handleID, '.')
	if i <= 0 || i == len(handleID)-1 {
		return Handle{}, fmt.Errorf("%w: %q", ErrInvalidHandle, handleID)
	}
	ns := Namespace(handleID[:i])
	if ns != NamespaceParam && ns != NamespaceOutput {
		return Handle{}, fmt.Errorf("%w: unknown namespace in %q", ErrInvalidHandle, handleID)
	}
	return Handle{Namespace: ns, Field: handleID[i+1:]}, nil
}

// String returns the canonical `namespace.field` form of the handle.
func (h Handle) String() string {
	return string(h.Namespace) + "." + h.Field
}
