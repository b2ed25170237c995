package graph

import (
	"context"
	"log/slog"
	"maps"
	"slices"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/raptordb/model"
	"golang.org/x/sync/errgroup"
)

// Equal reports whether a and b are structurally equivalent: there is a
// bijection between their nodes that preserves node payloads and, for every
// pair of mapped nodes, the multiset of (kind, payload) of the edges between
// them in each direction.
//
// The check rejects early on differing counts and on differing payload
// multisets. The payload multisets of both graphs are computed concurrently;
// neither graph may be mutated while Equal runs.
func Equal[N comparable, E comparable](a, b *Graph[N, E]) bool {
	if a == b {
		return true
	}
	if a.NodeCount() != b.NodeCount() || a.EdgeCount() != b.EdgeCount() {
		a.logger.Debug("graph size mismatch",
			"nodes", a.NodeCount(), "edges", a.EdgeCount(),
			"other_nodes", b.NodeCount(), "other_edges", b.EdgeCount(),
		)
		return false
	}

	var sa, sb summary[N, E]
	var g errgroup.Group
	g.Go(func() error {
		sa = a.summarize()
		return nil
	})
	g.Go(func() error {
		sb = b.summarize()
		return nil
	})
	_ = g.Wait()

	if !maps.Equal(sa.nodes, sb.nodes) || !maps.Equal(sa.edges, sb.edges) {
		if a.logger.Enabled(context.Background(), slog.LevelDebug) {
			a.logger.Debug("graph payload mismatch",
				"nodes_only_in_self", onlyIn(sa.nodes, sb.nodes),
				"nodes_only_in_other", onlyIn(sb.nodes, sa.nodes),
				"edges_only_in_self", onlyIn(sa.edges, sb.edges),
				"edges_only_in_other", onlyIn(sb.edges, sa.edges),
			)
		}
		return false
	}

	m := &matcher[N, E]{
		a:       a,
		b:       b,
		order:   slices.Collect(a.Nodes()),
		mapping: make(map[model.NodeID]model.NodeID, a.NodeCount()),
		used:    roaring.New(),
	}
	return m.match(0)
}

// summary holds the payload multisets of a graph.
type summary[N comparable, E comparable] struct {
	nodes map[N]int
	edges map[edgeKey[E]]int
}

func (g *Graph[N, E]) summarize() summary[N, E] {
	s := summary[N, E]{
		nodes: make(map[N]int),
		edges: make(map[edgeKey[E]]int),
	}
	for _, n := range g.nodes.All() {
		s.nodes[n.prop]++
	}
	for _, e := range g.edges.All() {
		s.edges[edgeKey[E]{kind: e.kind, prop: e.prop}]++
	}
	return s
}

func onlyIn[K comparable](m, other map[K]int) map[K]int {
	out := make(map[K]int)
	for k, n := range m {
		if other[k] != n {
			out[k] = n - other[k]
		}
	}
	return out
}

// matcher is the state of the backtracking search. order lists the nodes of a
// in ascending identifier order; the node at depth d is the one assigned at
// that depth.
type matcher[N comparable, E comparable] struct {
	a, b    *Graph[N, E]
	order   []model.NodeID
	mapping map[model.NodeID]model.NodeID
	used    *roaring.Bitmap // slot indices of b already mapped to
}

func (m *matcher[N, E]) match(depth int) bool {
	if depth == len(m.order) {
		return true
	}

	u := m.order[depth]
	un, _ := m.a.nodes.Get(u)

	for v, vn := range m.b.nodes.All() {
		slot := uint32(v.Index())
		if m.used.Contains(slot) {
			continue
		}
		if un.prop != vn.prop || len(un.edges) != len(vn.edges) {
			continue
		}
		if !m.consistent(u, v) {
			continue
		}

		m.mapping[u] = v
		m.used.Add(slot)

		if m.match(depth + 1) {
			return true
		}

		delete(m.mapping, u)
		m.used.Remove(slot)
	}

	m.a.logger.Debug("backtracking", "node", u, "depth", depth, "mapped", len(m.mapping))
	return false
}

// consistent checks that mapping u to v keeps every already mapped pair's
// edges identical in both directions.
func (m *matcher[N, E]) consistent(u, v model.NodeID) bool {
	for pa, pb := range m.mapping {
		if !m.sameEdges(m.a.edgesBetween(pa, u), m.b.edgesBetween(pb, v)) {
			m.a.logger.Debug("adjacency mismatch", "from", pa, "to", u, "other_from", pb, "other_to", v)
			return false
		}
		if !m.sameEdges(m.a.edgesBetween(u, pa), m.b.edgesBetween(v, pb)) {
			m.a.logger.Debug("adjacency mismatch", "from", u, "to", pa, "other_from", v, "other_to", pb)
			return false
		}
	}
	return true
}

func (m *matcher[N, E]) sameEdges(ae, be []model.EdgeID) bool {
	if len(ae) != len(be) {
		return false
	}
	if len(ae) == 0 {
		return true
	}

	counts := make(map[edgeKey[E]]int, len(ae))
	for _, id := range ae {
		e, _ := m.a.edges.Get(id)
		counts[edgeKey[E]{kind: e.kind, prop: e.prop}]++
	}
	for _, id := range be {
		e, _ := m.b.edges.Get(id)
		k := edgeKey[E]{kind: e.kind, prop: e.prop}
		if counts[k] == 0 {
			return false
		}
		counts[k]--
	}
	return true
}
