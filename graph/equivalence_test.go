package graph

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/hupe1980/raptordb/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ref mirrors the property identifier pairs the database stores as payloads.
type ref struct {
	id     int
	typeID int
}

func nodeRef(id int) ref { return ref{id: id, typeID: 1} }
func edgeRef(id int) ref { return ref{id: id, typeID: 1} }

type edgeSpec struct {
	from, to int
	prop     int
	kind     EdgeKind
}

// build adds nodes with the given payloads, then the edges between them by
// position in nodes.
func build(t *testing.T, nodes []int, edges []edgeSpec) (*Graph[ref, ref], []model.NodeID) {
	t.Helper()
	g := New[ref, ref]()
	ids := make([]model.NodeID, len(nodes))
	for i, n := range nodes {
		ids[i] = g.AddNode(nodeRef(n))
	}
	for _, e := range edges {
		_, err := g.AddEdge(ids[e.from], ids[e.to], edgeRef(e.prop), e.kind)
		require.NoError(t, err)
	}
	return g, ids
}

func TestEqualEmptyGraphs(t *testing.T) {
	assert.True(t, Equal(New[ref, ref](), New[ref, ref]()))
}

func TestEqual(t *testing.T) {
	tests := []struct {
		name  string
		nodes [2][]int
		edges [2][]edgeSpec
		equal bool
	}{
		{
			name:  "SameGraphs",
			nodes: [2][]int{{1, 2}, {1, 2}},
			edges: [2][]edgeSpec{{{0, 1, 10, Directed}}, {{0, 1, 10, Directed}}},
			equal: true,
		},
		{
			name:  "DifferentNodes",
			nodes: [2][]int{{1, 2}, {1, 3}},
			edges: [2][]edgeSpec{{{0, 1, 10, Directed}}, {{0, 1, 10, Directed}}},
			equal: false,
		},
		{
			name:  "DifferentEdges",
			nodes: [2][]int{{1, 2}, {1, 2}},
			edges: [2][]edgeSpec{{{0, 1, 10, Directed}}, {{0, 1, 20, Directed}}},
			equal: false,
		},
		{
			name:  "DifferentEdgeKind",
			nodes: [2][]int{{1, 2}, {1, 2}},
			edges: [2][]edgeSpec{{{0, 1, 10, Directed}}, {{0, 1, 10, Undirected}}},
			equal: false,
		},
		{
			name:  "UndirectedOrientationIgnored",
			nodes: [2][]int{{1, 2}, {1, 2}},
			edges: [2][]edgeSpec{{{0, 1, 10, Undirected}}, {{1, 0, 10, Undirected}}},
			equal: true,
		},
		{
			name:  "DirectedOrientationMatters",
			nodes: [2][]int{{1, 2}, {1, 2}},
			edges: [2][]edgeSpec{{{0, 1, 10, Directed}}, {{1, 0, 10, Directed}}},
			equal: false,
		},
		{
			name:  "DifferentNodeInsertionOrder",
			nodes: [2][]int{{1, 2, 3}, {3, 1, 2}},
			edges: [2][]edgeSpec{
				{{0, 1, 10, Directed}, {1, 2, 20, Undirected}},
				{{1, 2, 10, Directed}, {0, 2, 20, Undirected}},
			},
			equal: true,
		},
		{
			name:  "DirectedIncomingOutgoingMismatch",
			nodes: [2][]int{{1, 2, 3}, {1, 2, 3}},
			edges: [2][]edgeSpec{
				{{0, 1, 10, Directed}, {2, 0, 20, Directed}}, // 1 -> 2, 3 -> 1
				{{1, 0, 10, Directed}, {0, 2, 20, Directed}}, // 2 -> 1, 1 -> 3
			},
			equal: false,
		},
		{
			name:  "SameEdgeMultisetDifferentWiring",
			nodes: [2][]int{{1, 1, 1, 1}, {1, 1, 1, 1}},
			edges: [2][]edgeSpec{
				{{0, 1, 5, Undirected}, {1, 2, 5, Undirected}, {2, 3, 5, Undirected}},
				{{0, 1, 5, Undirected}, {0, 2, 5, Undirected}, {0, 3, 5, Undirected}},
			},
			equal: false,
		},
		{
			name:  "RequiresBacktracking",
			nodes: [2][]int{{1, 1, 1}, {1, 1, 1}},
			edges: [2][]edgeSpec{
				{{0, 1, 5, Directed}, {1, 2, 6, Directed}},
				{{2, 0, 5, Directed}, {0, 1, 6, Directed}},
			},
			equal: true,
		},
		{
			name:  "DifferentNodeCount",
			nodes: [2][]int{{1, 2}, {1, 2, 3}},
			edges: [2][]edgeSpec{nil, nil},
			equal: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, _ := build(t, tt.nodes[0], tt.edges[0])
			b, _ := build(t, tt.nodes[1], tt.edges[1])

			assert.Equal(t, tt.equal, Equal(a, b))
			assert.Equal(t, tt.equal, Equal(b, a))
		})
	}
}

func TestEqualAfterDeletingDummyNodes(t *testing.T) {
	tests := []struct {
		name  string
		kind  EdgeKind
		swap  bool
		equal bool
	}{
		{"UndirectedReversed", Undirected, true, true},
		{"DirectedReversed", Directed, true, false},
		{"DirectedSameOrder", Directed, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g1 := New[ref, ref]()
			n1 := g1.AddNode(nodeRef(1))
			n2 := g1.AddNode(nodeRef(2))
			_, err := g1.AddEdge(n1, n2, edgeRef(10), tt.kind)
			require.NoError(t, err)

			g2 := New[ref, ref]()
			m1 := g2.AddNode(nodeRef(1))
			dummy := g2.AddNode(nodeRef(10))
			m2 := g2.AddNode(nodeRef(2))
			require.NoError(t, g2.DeleteNode(dummy))

			from, to := m1, m2
			if tt.swap {
				from, to = m2, m1
			}
			_, err = g2.AddEdge(from, to, edgeRef(10), tt.kind)
			require.NoError(t, err)

			assert.Equal(t, tt.equal, Equal(g1, g2))
		})
	}
}

func TestEqualIdempotentAcrossInsertionOrder(t *testing.T) {
	type spec struct {
		from, to string
		prop     int
		kind     EdgeKind
	}
	names := []string{"a", "b", "c", "d", "e"}
	edges := []spec{
		{"a", "b", 1, Directed},
		{"b", "c", 2, Undirected},
		{"c", "a", 1, Directed},
		{"d", "e", 3, Undirected},
		{"d", "e", 3, Undirected},
		{"e", "a", 4, Directed},
	}

	construct := func(order []string, dummies int) *Graph[string, int] {
		g := New[string, int]()
		ids := map[string]model.NodeID{}
		var extra []model.NodeID
		for i, name := range order {
			ids[name] = g.AddNode(name)
			if i < dummies {
				extra = append(extra, g.AddNode("dummy"))
			}
		}
		for i := len(edges) - 1; i >= 0; i-- {
			e := edges[i]
			_, err := g.AddEdge(ids[e.from], ids[e.to], e.prop, e.kind)
			require.NoError(t, err)
		}
		for _, d := range extra {
			_, err := g.AddEdge(d, ids["a"], 99, Directed)
			require.NoError(t, err)
			require.NoError(t, g.DeleteNode(d))
		}
		return g
	}

	g1 := construct(names, 0)
	g2 := construct([]string{"e", "c", "a", "d", "b"}, 3)

	assert.True(t, Equal(g1, g2))
	assert.True(t, g2.Equal(g1))
}

func TestEqualParallelEdgeMultiplicity(t *testing.T) {
	g1, _ := build(t, []int{1, 2}, []edgeSpec{{0, 1, 5, Undirected}, {0, 1, 5, Undirected}})
	g2, ids2 := build(t, []int{1, 2}, []edgeSpec{{0, 1, 5, Undirected}, {0, 1, 5, Undirected}})

	assert.True(t, Equal(g1, g2))

	between, err := g2.EdgesBetween(ids2[0], ids2[1])
	require.NoError(t, err)
	require.NoError(t, g2.DeleteEdge(between[0]))
	assert.False(t, Equal(g1, g2))

	// Same counts again, but the remaining multiplicity sits elsewhere.
	c := g2.AddNode(nodeRef(3))
	_, err = g2.AddEdge(ids2[0], c, edgeRef(5), Undirected)
	require.NoError(t, err)
	g1.AddNode(nodeRef(3))
	assert.False(t, Equal(g1, g2))
}

func TestEqualSelf(t *testing.T) {
	g, _ := build(t, []int{1, 2, 3}, []edgeSpec{{0, 1, 1, Directed}, {1, 2, 1, Directed}})
	assert.True(t, Equal(g, g))
}

func TestEqualLogsMismatch(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	a := New[int, int](WithLogger(logger))
	a.AddNode(1)
	b := New[int, int]()
	b.AddNode(2)

	assert.False(t, Equal(a, b))
	assert.Contains(t, buf.String(), "graph payload mismatch")
}
