package reconcile

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/opgraph/internal/graphspec"
	"github.com/vk/opgraph/internal/operator"
	"github.com/vk/opgraph/internal/opstore"
	"github.com/vk/opgraph/internal/registry"
	"github.com/vk/opgraph/modules/std"
)

func newReconciler(t *testing.T) *Reconciler {
	t.Helper()
	reg := registry.New()
	require.NoError(t, (&std.Module{}).Register(reg))
	return New(opstore.New(), reg)
}

// sumGraph is the canonical three-node graph: two numbers feeding an adder.
func sumGraph() *graphspec.Graph {
	return &graphspec.Graph{
		Nodes: []*graphspec.Node{
			{ID: "/num1", Type: "NumberOp", Inputs: map[string]cty.Value{"val": cty.NumberIntVal(5)}},
			{ID: "/num2", Type: "NumberOp", Inputs: map[string]cty.Value{"val": cty.NumberIntVal(10)}},
			{ID: "/add", Type: "MathOp", Inputs: map[string]cty.Value{"operator": cty.StringVal("add")}},
		},
		Edges: []*graphspec.Edge{
			{ID: "e1", Source: "/num1", Target: "/add", SourceHandle: "out.val", TargetHandle: "par.a"},
			{ID: "e2", Source: "/num2", Target: "/add", SourceHandle: "out.val", TargetHandle: "par.b"},
		},
	}
}

// snapshot flattens the store into comparable plain data.
func snapshot(s *opstore.Store) map[string]map[string][]operator.Subscription {
	out := make(map[string]map[string][]operator.Subscription)
	s.Range(func(path string, op *operator.Operator) bool {
		slots := make(map[string][]operator.Subscription)
		for field, slot := range op.Inputs {
			slots[field] = append([]operator.Subscription(nil), slot.Subscriptions()...)
		}
		out[path] = slots
		return true
	})
	return out
}

func TestTransformGraph_MaterializesAndWires(t *testing.T) {
	r := newReconciler(t)
	ops, err := r.TransformGraph(context.Background(), sumGraph())
	require.NoError(t, err)

	require.Len(t, ops, 3)
	assert.Equal(t, []string{"/num1", "/num2", "/add"}, []string{ops[0].Path(), ops[1].Path(), ops[2].Path()})
	assert.Equal(t, 3, r.Store().Len())

	add, ok := r.Store().Get("/add")
	require.True(t, ok)
	require.Len(t, add.Inputs["a"].Subscriptions(), 1)
	require.Len(t, add.Inputs["b"].Subscriptions(), 1)
	assert.Equal(t, operator.Subscription{SourcePath: "/num1", SourceField: "val"}, add.Inputs["a"].Subscriptions()[0])
	assert.Equal(t, operator.Subscription{SourcePath: "/num2", SourceField: "val"}, add.Inputs["b"].Subscriptions()[0])

	num1, ok := r.Store().Get("/num1")
	require.True(t, ok)
	assert.True(t, cty.NumberIntVal(5).RawEquals(num1.Inputs["val"].Value()))
}

func TestTransformGraph_IdempotentAndReusesInstances(t *testing.T) {
	r := newReconciler(t)
	ctx := context.Background()

	first, err := r.TransformGraph(ctx, sumGraph())
	require.NoError(t, err)
	before := snapshot(r.Store())

	// Tag an operator with runtime state; reuse must preserve it.
	first[2].Meta["evalCache"] = "survives"

	second, err := r.TransformGraph(ctx, sumGraph())
	require.NoError(t, err)

	require.Len(t, second, 3)
	for i := range first {
		assert.Same(t, first[i], second[i], "operator %s must be reused, not rebuilt", first[i].Path())
	}
	assert.Equal(t, "survives", second[2].Meta["evalCache"])

	if diff := cmp.Diff(before, snapshot(r.Store())); diff != "" {
		t.Errorf("store changed across identical passes (-first +second):\n%s", diff)
	}
}

func TestTransformGraph_RemovalPrunesAndCleansDangling(t *testing.T) {
	r := newReconciler(t)
	ctx := context.Background()

	_, err := r.TransformGraph(ctx, sumGraph())
	require.NoError(t, err)

	// Drop /num1 and its edge from the declaration.
	g := sumGraph()
	g.Nodes = g.Nodes[1:]
	g.Edges = g.Edges[1:]

	ops, err := r.TransformGraph(ctx, g)
	require.NoError(t, err)
	require.Len(t, ops, 2)

	assert.False(t, r.Store().Has("/num1"))
	r.Store().Range(func(path string, op *operator.Operator) bool {
		for field, slot := range op.Inputs {
			for _, sub := range slot.Subscriptions() {
				assert.NotEqual(t, "/num1", sub.SourcePath,
					"%s.%s still subscribes to the removed operator", path, field)
			}
		}
		return true
	})

	// The slot that lost its only subscription reverts to its literal.
	add, _ := r.Store().Get("/add")
	assert.False(t, add.Inputs["a"].Driven())
}

func TestTransformGraph_StaleSourceWiredThenCleaned(t *testing.T) {
	// An edge may name a source that is still in the store but absent from
	// the declarative node set. It wires in the edge pass and the pruning
	// pass must then drop it as dangling.
	r := newReconciler(t)
	ctx := context.Background()

	_, err := r.TransformGraph(ctx, sumGraph())
	require.NoError(t, err)

	g := sumGraph()
	g.Nodes = g.Nodes[1:] // /num1 gone from nodes, e1 still declared

	_, err = r.TransformGraph(ctx, g)
	require.NoError(t, err)

	add, _ := r.Store().Get("/add")
	assert.False(t, add.Inputs["a"].Driven())
	require.Len(t, add.Inputs["b"].Subscriptions(), 1)
}

func TestTransformGraph_EdgeRemovalUnwiresSlot(t *testing.T) {
	r := newReconciler(t)
	ctx := context.Background()

	_, err := r.TransformGraph(ctx, sumGraph())
	require.NoError(t, err)

	g := sumGraph()
	g.Edges = g.Edges[:1] // e2 disconnected, both nodes survive

	_, err = r.TransformGraph(ctx, g)
	require.NoError(t, err)

	add, _ := r.Store().Get("/add")
	assert.True(t, add.Inputs["a"].Driven())
	assert.False(t, add.Inputs["b"].Driven())
}

func TestTransformGraph_UnknownTypeIsFatalAndStoreUntouched(t *testing.T) {
	r := newReconciler(t)
	ctx := context.Background()

	_, err := r.TransformGraph(ctx, sumGraph())
	require.NoError(t, err)
	before := snapshot(r.Store())

	g := sumGraph()
	g.Nodes = append(g.Nodes, &graphspec.Node{ID: "/mystery", Type: "NoSuchOp"})

	_, err = r.TransformGraph(ctx, g)
	require.ErrorIs(t, err, ErrUnknownType)

	if diff := cmp.Diff(before, snapshot(r.Store())); diff != "" {
		t.Errorf("failed pass must leave the store unmodified:\n%s", diff)
	}
}

func TestTransformGraph_MalformedEdgesDroppedNotFatal(t *testing.T) {
	r := newReconciler(t)

	g := sumGraph()
	g.Edges = append(g.Edges,
		&graphspec.Edge{ID: "bad1", Source: "/num1", Target: "/add", SourceHandle: "val", TargetHandle: "par.a"},
		&graphspec.Edge{ID: "bad2", Source: "/num1", Target: "/add", SourceHandle: "out.val", TargetHandle: "out.a"},
		&graphspec.Edge{ID: "bad3", Source: "/ghost", Target: "/add", SourceHandle: "out.val", TargetHandle: "par.b"},
		&graphspec.Edge{ID: "bad4", Source: "/num1", Target: "/add", SourceHandle: "out.nope", TargetHandle: "par.b"},
		&graphspec.Edge{ID: "bad5", Source: "/num1", Target: "/add", SourceHandle: "out.val", TargetHandle: "par.nope"},
	)

	ops, err := r.TransformGraph(context.Background(), g)
	require.NoError(t, err)
	require.Len(t, ops, 3)

	// The two well-formed edges still wired.
	add, _ := r.Store().Get("/add")
	assert.Len(t, add.Inputs["a"].Subscriptions(), 1)
	assert.Len(t, add.Inputs["b"].Subscriptions(), 1)
}

func TestTransformGraph_FanInPolicy(t *testing.T) {
	r := newReconciler(t)

	g := &graphspec.Graph{
		Nodes: []*graphspec.Node{
			{ID: "/num1", Type: "NumberOp"},
			{ID: "/num2", Type: "NumberOp"},
			{ID: "/merge", Type: "MergeOp"},
			{ID: "/add", Type: "MathOp"},
		},
		Edges: []*graphspec.Edge{
			// MergeOp.sources declares fan-in: both edges land.
			{ID: "m1", Source: "/num1", Target: "/merge", SourceHandle: "out.val", TargetHandle: "par.sources"},
			{ID: "m2", Source: "/num2", Target: "/merge", SourceHandle: "out.val", TargetHandle: "par.sources"},
			// MathOp.a does not: the first edge wins, the second drops.
			{ID: "a1", Source: "/num1", Target: "/add", SourceHandle: "out.val", TargetHandle: "par.a"},
			{ID: "a2", Source: "/num2", Target: "/add", SourceHandle: "out.val", TargetHandle: "par.a"},
		},
	}

	_, err := r.TransformGraph(context.Background(), g)
	require.NoError(t, err)

	merge, _ := r.Store().Get("/merge")
	assert.Len(t, merge.Inputs["sources"].Subscriptions(), 2)

	add, _ := r.Store().Get("/add")
	require.Len(t, add.Inputs["a"].Subscriptions(), 1)
	assert.Equal(t, "/num1", add.Inputs["a"].Subscriptions()[0].SourcePath)
}

func TestTransformGraph_TypeChangeIsDestroyThenCreate(t *testing.T) {
	r := newReconciler(t)
	ctx := context.Background()

	first, err := r.TransformGraph(ctx, &graphspec.Graph{
		Nodes: []*graphspec.Node{{ID: "/op", Type: "NumberOp"}},
	})
	require.NoError(t, err)
	first[0].Meta["evalCache"] = "doomed"

	second, err := r.TransformGraph(ctx, &graphspec.Graph{
		Nodes: []*graphspec.Node{{ID: "/op", Type: "TextOp"}},
	})
	require.NoError(t, err)

	assert.NotSame(t, first[0], second[0])
	assert.Equal(t, "TextOp", second[0].Type())
	assert.NotContains(t, second[0].Meta, "evalCache")
}

func TestTransformGraph_MalformedNodePathSkipped(t *testing.T) {
	r := newReconciler(t)

	g := &graphspec.Graph{
		Nodes: []*graphspec.Node{
			{ID: "relative/path", Type: "NumberOp"},
			{ID: "/ok", Type: "NumberOp"},
		},
	}
	ops, err := r.TransformGraph(context.Background(), g)
	require.NoError(t, err)
	require.Len(t, ops, 1)
	assert.Equal(t, "/ok", ops[0].Path())
	assert.Equal(t, 1, r.Store().Len())
}

func TestTransformGraph_ReuseRefreshesLiterals(t *testing.T) {
	r := newReconciler(t)
	ctx := context.Background()

	first, err := r.TransformGraph(ctx, sumGraph())
	require.NoError(t, err)

	g := sumGraph()
	g.Nodes[0].Inputs["val"] = cty.NumberIntVal(99)

	second, err := r.TransformGraph(ctx, g)
	require.NoError(t, err)

	assert.Same(t, first[0], second[0])
	assert.True(t, cty.NumberIntVal(99).RawEquals(second[0].Inputs["val"].Value()))
}
