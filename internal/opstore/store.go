package opstore

import (
	"errors"
	"fmt"
	"sort"

	"github.com/vk/opgraph/internal/operator"
	"github.com/vk/opgraph/internal/oppath"
)

// ErrNotFound is returned by GetOp when a reference does not lead to a live
// operator.
var ErrNotFound = errors.New("operator not found")

// Store maps operator paths to live operator instances.
type Store struct {
	ops map[string]*operator.Operator
}

// New creates an empty store.
func New() *Store {
	return &Store{ops: make(map[string]*operator.Operator)}
}

// Get returns the operator registered at path.
func (s *Store) Get(path string) (*operator.Operator, bool) {
	op, ok := s.ops[path]
	return op, ok
}

// Set registers op at path, replacing any previous occupant. The key must be
// a valid path and must agree with the operator's own identity; a malformed
// identity is rejected, never coerced.
func (s *Store) Set(path string, op *operator.Operator) error {
	if !oppath.IsValid(path) {
		return fmt.Errorf("%w: %q", oppath.ErrInvalidPath, path)
	}
	if op.Path() != path {
		return fmt.Errorf("operator identity %q does not match store key %q", op.Path(), path)
	}
	s.ops[path] = op
	return nil
}

// Has reports whether an operator exists at path.
func (s *Store) Has(path string) bool {
	_, ok := s.ops[path]
	return ok
}

// Delete removes the operator at path, if any.
func (s *Store) Delete(path string) {
	delete(s.ops, path)
}

// Len returns the number of live operators.
func (s *Store) Len() int {
	return len(s.ops)
}

// Paths returns every registered path in sorted order, so iteration order is
// deterministic for logging and tests.
func (s *Store) Paths() []string {
	paths := make([]string, 0, len(s.ops))
	for p := range s.ops {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Range calls fn for each operator in sorted path order, stopping early if
// fn returns false.
func (s *Store) Range(fn func(path string, op *operator.Operator) bool) {
	for _, p := range s.Paths() {
		if !fn(p, s.ops[p]) {
			return
		}
	}
}

// Clear removes every operator from the store.
func (s *Store) Clear() {
	s.ops = make(map[string]*operator.Operator)
}

// Dependents returns the paths of operators holding at least one
// subscription whose source is sourcePath, in sorted order. Sources keep no
// back-references, so this is a derived, on-demand scan over the store.
func (s *Store) Dependents(sourcePath string) []string {
	var dependents []string
	s.Range(func(path string, op *operator.Operator) bool {
		for _, slot := range op.Inputs {
			for _, sub := range slot.Subscriptions() {
				if sub.SourcePath == sourcePath {
					dependents = append(dependents, path)
					return true
				}
			}
		}
		return true
	})
	return dependents
}

// GetOp resolves reference against contextPath (the empty string means the
// root container) and returns the operator at the resolved path. Both a
// failed resolution and a miss report ErrNotFound; the caller decides
// whether that is worth surfacing.
func (s *Store) GetOp(reference, contextPath string) (*operator.Operator, error) {
	resolved, err := oppath.Resolve(reference, contextPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrNotFound, reference, err)
	}
	op, ok := s.ops[resolved]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, resolved)
	}
	return op, nil
}
