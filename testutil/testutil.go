package testutil

import (
	"math/rand"
	"sync"

	"github.com/hupe1980/raptordb/graph"
	"github.com/hupe1980/raptordb/model"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// EdgeSpec describes an edge by the positions of its endpoints in
// GraphSpec.Nodes.
type EdgeSpec struct {
	From, To int
	Label    int
	Kind     graph.EdgeKind
}

// GraphSpec describes a graph with integer labels. Nodes holds the label of
// each node in insertion order.
type GraphSpec struct {
	Nodes []int
	Edges []EdgeSpec
}

// RandomGraph returns a graph with the given number of nodes and edges whose
// labels are drawn from [0, labels). Edges never form self loops and may be
// parallel. nodes must be at least 2 when edges is positive.
func (r *RNG) RandomGraph(nodes, edges, labels int) GraphSpec {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := GraphSpec{
		Nodes: make([]int, nodes),
		Edges: make([]EdgeSpec, edges),
	}
	for i := range s.Nodes {
		s.Nodes[i] = r.rand.Intn(labels)
	}
	for i := range s.Edges {
		from := r.rand.Intn(nodes)
		to := r.rand.Intn(nodes - 1)
		if to >= from {
			to++
		}
		kind := graph.Directed
		if r.rand.Intn(2) == 0 {
			kind = graph.Undirected
		}
		s.Edges[i] = EdgeSpec{From: from, To: to, Label: r.rand.Intn(labels), Kind: kind}
	}
	return s
}

// Permute returns an isomorphic copy of s: nodes and edges are inserted in a
// different order and undirected edges may have their endpoints swapped.
func (r *RNG) Permute(s GraphSpec) GraphSpec {
	r.mu.Lock()
	defer r.mu.Unlock()

	perm := r.rand.Perm(len(s.Nodes))
	out := GraphSpec{
		Nodes: make([]int, len(s.Nodes)),
		Edges: make([]EdgeSpec, len(s.Edges)),
	}
	for old, pos := range perm {
		out.Nodes[pos] = s.Nodes[old]
	}
	for i, pos := range r.rand.Perm(len(s.Edges)) {
		e := s.Edges[i]
		from, to := perm[e.From], perm[e.To]
		if e.Kind == graph.Undirected && r.rand.Intn(2) == 0 {
			from, to = to, from
		}
		out.Edges[pos] = EdgeSpec{From: from, To: to, Label: e.Label, Kind: e.Kind}
	}
	return out
}

// Build creates the graph described by s. The returned identifiers are in
// the order of s.Nodes.
func Build(s GraphSpec, optFns ...graph.Option) (*graph.Graph[int, int], []model.NodeID, error) {
	g := graph.New[int, int](optFns...)
	ids := make([]model.NodeID, len(s.Nodes))
	for i, label := range s.Nodes {
		ids[i] = g.AddNode(label)
	}
	for _, e := range s.Edges {
		if _, err := g.AddEdge(ids[e.From], ids[e.To], e.Label, e.Kind); err != nil {
			return nil, nil, err
		}
	}
	return g, ids, nil
}
