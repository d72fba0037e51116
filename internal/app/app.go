// Package app wires the engine together for a host process: logger, type
// registry, operator store, reconciler, and undo/redo history.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/opgraph/internal/ctxlog"
	"github.com/vk/opgraph/internal/graphspec"
	"github.com/vk/opgraph/internal/history"
	"github.com/vk/opgraph/internal/opstore"
	"github.com/vk/opgraph/internal/reconcile"
	"github.com/vk/opgraph/internal/registry"
	"github.com/vk/opgraph/modules/std"
)

// App owns one engine instance and its dependencies. Nothing here is a
// module-level singleton: the store is created per App and handed to the
// reconciler and history controller explicitly.
type App struct {
	outW       io.Writer
	logger     *slog.Logger
	registry   *registry.Registry
	store      *opstore.Store
	reconciler *reconcile.Reconciler
	history    *history.Controller
	graph      *graphspec.Graph
}

// New constructs a fully initialized App: it builds the logger and registry,
// registers the given type packs (the std pack when none are given), and
// loads manifests and the graph declaration through loader. A failure to
// load or register is a fatal startup error and panics; the entrypoint
// recovers it into a clean exit.
func New(outW io.Writer, cfg *Config, loader graphspec.Loader, modules ...registry.Module) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	reg := registry.New()
	if len(modules) == 0 {
		modules = []registry.Module{&std.Module{}}
	}
	for _, mod := range modules {
		if err := mod.Register(reg); err != nil {
			panic(fmt.Errorf("failed to register type pack: %w", err))
		}
	}
	logger.Debug("Type packs registered.", "types", reg.Types())

	defs, graph, err := loader.Load(ctx, cfg.GraphPath)
	if err != nil {
		panic(fmt.Errorf("failed to load configuration: %w", err))
	}
	if err := reg.RegisterAll(defs); err != nil {
		panic(fmt.Errorf("failed to register manifest definitions: %w", err))
	}
	logger.Debug("Configuration loaded.",
		"manifest_definitions", len(defs), "nodes", len(graph.Nodes), "edges", len(graph.Edges))

	store := opstore.New()
	reconciler := reconcile.New(store, reg)
	return &App{
		outW:       outW,
		logger:     logger,
		registry:   reg,
		store:      store,
		reconciler: reconciler,
		history:    history.New(reconciler),
		graph:      graph,
	}
}

// Run reconciles the loaded graph into the store, records the result as the
// initial history state, and prints the resulting topology.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run started.")

	ops, err := a.reconciler.TransformGraph(ctx, a.graph)
	if err != nil {
		return fmt.Errorf("failed to reconcile graph: %w", err)
	}
	a.history.Record(a.graph, "initial load")

	fmt.Fprintf(a.outW, "%d operators\n", len(ops))
	for _, op := range ops {
		fmt.Fprintf(a.outW, "%s (%s)\n", op.Path(), op.Type())
		for _, field := range sortedFields(op.Inputs) {
			slot := op.Inputs[field]
			if slot.Driven() {
				for _, sub := range slot.Subscriptions() {
					fmt.Fprintf(a.outW, "  par.%s <- %s out.%s\n", field, sub.SourcePath, sub.SourceField)
				}
			} else {
				fmt.Fprintf(a.outW, "  par.%s = %s\n", field, renderValue(slot.Value()))
			}
		}
	}

	a.logger.Debug("App.Run finished.")
	return nil
}

// Store returns the App's operator store. Primarily for testing.
func (a *App) Store() *opstore.Store {
	return a.store
}

// History returns the App's undo/redo controller. Primarily for testing.
func (a *App) History() *history.Controller {
	return a.history
}
