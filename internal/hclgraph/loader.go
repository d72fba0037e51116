// Package hclgraph is the HCL front end for the engine: it loads operator
// type manifests and declarative graph files into the format-agnostic model
// consumed by the reconciler.
//
// A load is all-or-nothing. Any file that fails to parse or decode fails the
// whole load, so an invalid project is rejected before any mutation touches
// the live store.
package hclgraph

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/vk/opgraph/internal/ctxlog"
	"github.com/vk/opgraph/internal/graphspec"
	"github.com/vk/opgraph/internal/registry"
)

// Loader implements graphspec.Loader for HCL files.
type Loader struct{}

// NewLoader creates a new HCL graph loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load discovers .hcl files under the given paths (files or directories),
// parses them, and returns the operator definitions and the declarative
// graph they describe. Node paths and edge handles are validated at
// reconcile time, not here; load-time validation covers syntax and value
// evaluation only.
func (l *Loader) Load(ctx context.Context, paths ...string) ([]*registry.Definition, *graphspec.Graph, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL graph loader started.", "path_count", len(paths))

	files, err := findHCLFiles(paths)
	if err != nil {
		return nil, nil, err
	}
	logger.Debug("Discovered HCL files.", "count", len(files))

	var defs []*registry.Definition
	graph := &graphspec.Graph{}
	parser := hclparse.NewParser()

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, nil, fmt.Errorf("failed to parse %s: %s", file, diags.Error())
		}

		var root fileRoot
		if diags := gohcl.DecodeBody(hclFile.Body, nil, &root); diags.HasErrors() {
			return nil, nil, fmt.Errorf("failed to decode %s: %s", file, diags.Error())
		}

		for _, block := range root.Operators {
			def, err := translateOperator(block)
			if err != nil {
				return nil, nil, fmt.Errorf("%s: %w", file, err)
			}
			defs = append(defs, def)
		}
		for _, block := range root.Nodes {
			node, err := translateNode(block)
			if err != nil {
				return nil, nil, fmt.Errorf("%s: %w", file, err)
			}
			graph.Nodes = append(graph.Nodes, node)
		}
		for _, block := range root.Edges {
			graph.Edges = append(graph.Edges, translateEdge(block))
		}
	}

	logger.Debug("HCL graph loading complete.",
		"definitions", len(defs), "nodes", len(graph.Nodes), "edges", len(graph.Edges))
	return defs, graph, nil
}

// findHCLFiles walks the given paths and returns every .hcl file found, each
// at most once. A path that does not exist is skipped, not an error.
func findHCLFiles(paths []string) ([]string, error) {
	var files []string
	seen := make(map[string]struct{})
	add := func(p string) {
		if _, ok := seen[p]; !ok {
			files = append(files, p)
			seen[p] = struct{}{}
		}
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("error accessing path %s: %w", path, err)
		}
		if !info.IsDir() {
			if filepath.Ext(path) == ".hcl" {
				add(path)
			}
			continue
		}
		err = filepath.Walk(path, func(p string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if !info.IsDir() && filepath.Ext(p) == ".hcl" {
				add(p)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return files, nil
}
