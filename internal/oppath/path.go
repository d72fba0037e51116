package oppath

import (
	"errors"
	"fmt"
	"strings"
)

// Root is the path of the implicit top-level container.
const Root = "/"

// ErrInvalidPath is returned when a string is not a well-formed operator path.
var ErrInvalidPath = errors.New("invalid operator path")

// IsValid reports whether s is a well-formed operator path: non-empty,
// absolute, free of control characters, with no empty segments and no
// trailing slash (except the root itself).
func IsValid(s string) bool {
	if s == "" || s[0] != '/' {
		return false
	}
	for _, r := range s {
		if r < 0x20 || r == 0x7f {
			return false
		}
	}
	if s == Root {
		return true
	}
	if strings.HasSuffix(s, "/") || strings.Contains(s, "//") {
		return false
	}
	return true
}

// IsAbs reports whether s is a valid path that is absolute. Every valid
// operator path is absolute, so this is equivalent to IsValid; it exists so
// call sites can state which property they rely on.
func IsAbs(s string) bool {
	return IsValid(s) && s[0] == '/'
}

// Normalize resolves "." and ".." segments against the path's own segments
// and collapses empty segments, producing a valid absolute path. ".." at the
// root is clamped, not an error. Normalize("") yields the root.
func Normalize(s string) string {
	var stack []string
	for _, seg := range strings.Split(s, "/") {
		switch seg {
		case "", ".":
			// collapsed
		case "..":
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		default:
			stack = append(stack, seg)
		}
	}
	if len(stack) == 0 {
		return Root
	}
	return Root + strings.Join(stack, "/")
}

// Join concatenates any number of segments (each may be empty, root-relative,
// or a plain name) into one normalized absolute path. An empty or missing
// first segment is treated as the root.
func Join(segments ...string) string {
	return Normalize(strings.Join(segments, "/"))
}

// Parent returns the path with its final segment removed. The parent of the
// root, and of any single-segment path, is the root. Only an invalid or
// empty input is an error.
func Parent(p string) (string, error) {
	if !IsValid(p) {
		return "", fmt.Errorf("%w: %q", ErrInvalidPath, p)
	}
	if p == Root {
		return Root, nil
	}
	i := strings.LastIndexByte(p, '/')
	if i == 0 {
		return Root, nil
	}
	return p[:i], nil
}

// Base returns the final segment of p, or the empty string for the root or
// an empty input.
func Base(p string) string {
	if p == "" || p == Root {
		return ""
	}
	p = strings.TrimSuffix(p, "/")
	return p[strings.LastIndexByte(p, '/')+1:]
}

// Qualified builds the absolute path for an operator named baseName inside
// the container identified by containerID. The container reference may be
// non-normalized (a missing leading slash is tolerated).
func Qualified(baseName, containerID string) string {
	return Join(containerID, baseName)
}
