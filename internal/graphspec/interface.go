package graphspec

import (
	"context"

	"github.com/vk/opgraph/internal/registry"
)

// Loader is the interface for a format-specific front end. Load reads
// operator type manifests and a graph declaration from the given paths and
// translates them into the format-agnostic model. A load failure must leave
// the caller free of partial state: either everything parses or nothing is
// returned.
type Loader interface {
	Load(ctx context.Context, paths ...string) ([]*registry.Definition, *Graph, error)
}
