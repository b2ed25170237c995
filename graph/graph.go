package graph

import (
	"iter"
	"log/slog"
	"slices"

	"github.com/hupe1980/raptordb/internal/store"
	"github.com/hupe1980/raptordb/model"
)

type options struct {
	logger *slog.Logger
}

// Option configures a Graph.
type Option func(*options)

// WithLogger sets the logger used for warnings (parallel edges) and debug
// output of the equivalence check. Pass nil to discard log output.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

func applyOptions(optFns []Option) options {
	o := options{}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}
	return o
}

// Graph stores nodes with payload N and edges with payload E.
type Graph[N comparable, E comparable] struct {
	nodes  *store.Store[node[N], model.Node]
	edges  *store.Store[edge[E], model.Edge]
	logger *slog.Logger
}

// New creates an empty Graph.
func New[N comparable, E comparable](optFns ...Option) *Graph[N, E] {
	o := applyOptions(optFns)
	return &Graph[N, E]{
		nodes:  store.New[node[N], model.Node](),
		edges:  store.New[edge[E], model.Edge](),
		logger: o.logger,
	}
}

// Nodes yields live node identifiers in ascending order.
func (g *Graph[N, E]) Nodes() iter.Seq[model.NodeID] {
	return g.nodes.IDs()
}

// Edges yields live edge identifiers in ascending order.
func (g *Graph[N, E]) Edges() iter.Seq[model.EdgeID] {
	return g.edges.IDs()
}

// NodeCount returns the number of live nodes.
func (g *Graph[N, E]) NodeCount() int { return g.nodes.Len() }

// EdgeCount returns the number of live edges.
func (g *Graph[N, E]) EdgeCount() int { return g.edges.Len() }

// HasNode reports whether id names a live node.
func (g *Graph[N, E]) HasNode(id model.NodeID) bool { return g.nodes.Exists(id) }

// HasEdge reports whether id names a live edge.
func (g *Graph[N, E]) HasEdge(id model.EdgeID) bool { return g.edges.Exists(id) }

// AddNode adds a node without edges.
func (g *Graph[N, E]) AddNode(prop N) model.NodeID {
	return g.nodes.Add(node[N]{prop: prop})
}

// AddEdge connects two distinct live nodes. A parallel edge is accepted and
// logged.
func (g *Graph[N, E]) AddEdge(from, to model.NodeID, prop E, kind EdgeKind) (model.EdgeID, error) {
	if !g.nodes.Exists(from) {
		return model.EdgeID{}, &ErrNodeNotFound{ID: from}
	}
	if !g.nodes.Exists(to) {
		return model.EdgeID{}, &ErrNodeNotFound{ID: to}
	}
	if from == to {
		return model.EdgeID{}, ErrSelfLoop
	}
	if !kind.valid() {
		return model.EdgeID{}, ErrInvalidEdgeKind
	}

	if len(g.edgesBetween(from, to)) > 0 {
		g.logger.Warn("parallel edge detected", "from", from, "to", to, "kind", kind)
	}

	id := g.edges.Add(edge[E]{from: from, to: to, kind: kind, prop: prop})

	register := func(n *node[N]) { n.edges = append(n.edges, id) }
	g.nodes.Update(to, register)
	g.nodes.Update(from, register)

	return id, nil
}

// Node returns the payload of a node.
func (g *Graph[N, E]) Node(id model.NodeID) (N, error) {
	n, ok := g.nodes.Get(id)
	if !ok {
		var zero N
		return zero, &ErrNodeNotFound{ID: id}
	}
	return n.prop, nil
}

// Edge returns the payload of an edge.
func (g *Graph[N, E]) Edge(id model.EdgeID) (E, error) {
	e, ok := g.edges.Get(id)
	if !ok {
		var zero E
		return zero, &ErrEdgeNotFound{ID: id}
	}
	return e.prop, nil
}

// SetNode replaces the payload of a node.
func (g *Graph[N, E]) SetNode(id model.NodeID, prop N) error {
	if !g.nodes.Update(id, func(n *node[N]) { n.prop = prop }) {
		return &ErrNodeNotFound{ID: id}
	}
	return nil
}

// SetEdge replaces the payload of an edge.
func (g *Graph[N, E]) SetEdge(id model.EdgeID, prop E) error {
	if !g.edges.Update(id, func(e *edge[E]) { e.prop = prop }) {
		return &ErrEdgeNotFound{ID: id}
	}
	return nil
}

// ConnectedNodes returns the endpoints of an edge.
func (g *Graph[N, E]) ConnectedNodes(id model.EdgeID) (ConnectedNodes, error) {
	e, ok := g.edges.Get(id)
	if !ok {
		return ConnectedNodes{}, &ErrEdgeNotFound{ID: id}
	}
	return ConnectedNodes{From: e.from, To: e.to}, nil
}

// EdgeKindOf returns the kind of an edge.
func (g *Graph[N, E]) EdgeKindOf(id model.EdgeID) (EdgeKind, error) {
	e, ok := g.edges.Get(id)
	if !ok {
		return 0, &ErrEdgeNotFound{ID: id}
	}
	return e.kind, nil
}

// IncidentEdges returns every edge touching a node, in insertion order.
func (g *Graph[N, E]) IncidentEdges(id model.NodeID) ([]model.EdgeID, error) {
	n, ok := g.nodes.Get(id)
	if !ok {
		return nil, &ErrNodeNotFound{ID: id}
	}
	return slices.Clone(n.edges), nil
}

// Degree returns the number of edges touching a node.
func (g *Graph[N, E]) Degree(id model.NodeID) (int, error) {
	n, ok := g.nodes.Get(id)
	if !ok {
		return 0, &ErrNodeNotFound{ID: id}
	}
	return len(n.edges), nil
}

// OutgoingEdges returns the edges a node is the source of, plus every
// undirected edge touching it.
func (g *Graph[N, E]) OutgoingEdges(id model.NodeID) ([]model.EdgeID, error) {
	return g.filterIncident(id, func(e *edge[E]) bool {
		return e.from == id || e.kind == Undirected
	})
}

// IncomingEdges returns the edges a node is the target of, plus every
// undirected edge touching it.
func (g *Graph[N, E]) IncomingEdges(id model.NodeID) ([]model.EdgeID, error) {
	return g.filterIncident(id, func(e *edge[E]) bool {
		return e.to == id || e.kind == Undirected
	})
}

func (g *Graph[N, E]) filterIncident(id model.NodeID, keep func(*edge[E]) bool) ([]model.EdgeID, error) {
	n, ok := g.nodes.Get(id)
	if !ok {
		return nil, &ErrNodeNotFound{ID: id}
	}

	var out []model.EdgeID
	for _, eid := range n.edges {
		e, _ := g.edges.Get(eid)
		if keep(&e) {
			out = append(out, eid)
		}
	}
	return out, nil
}

// EdgesBetween returns every directed edge from a to b and every undirected
// edge joining a and b. Parallel edges are all returned; order is unspecified.
func (g *Graph[N, E]) EdgesBetween(a, b model.NodeID) ([]model.EdgeID, error) {
	if !g.nodes.Exists(a) {
		return nil, &ErrNodeNotFound{ID: a}
	}
	if !g.nodes.Exists(b) {
		return nil, &ErrNodeNotFound{ID: b}
	}
	return g.edgesBetween(a, b), nil
}

// edgesBetween assumes both nodes are live.
func (g *Graph[N, E]) edgesBetween(a, b model.NodeID) []model.EdgeID {
	n, _ := g.nodes.Get(a)

	var out []model.EdgeID
	for _, eid := range n.edges {
		e, _ := g.edges.Get(eid)
		if e.connects(a, b) {
			out = append(out, eid)
		}
	}
	return out
}

// DeleteNode deletes every edge incident to the node, then the node itself.
func (g *Graph[N, E]) DeleteNode(id model.NodeID) error {
	n, ok := g.nodes.Get(id)
	if !ok {
		return &ErrNodeNotFound{ID: id}
	}

	for _, eid := range slices.Clone(n.edges) {
		g.deleteEdge(eid)
	}

	g.nodes.Remove(id)
	return nil
}

// DeleteEdge unregisters the edge from both endpoints and frees it.
func (g *Graph[N, E]) DeleteEdge(id model.EdgeID) error {
	if !g.edges.Exists(id) {
		return &ErrEdgeNotFound{ID: id}
	}
	g.deleteEdge(id)
	return nil
}

func (g *Graph[N, E]) deleteEdge(id model.EdgeID) {
	e, ok := g.edges.Get(id)
	if !ok {
		return
	}

	unregister := func(n *node[N]) {
		n.edges = slices.DeleteFunc(n.edges, func(other model.EdgeID) bool { return other == id })
	}
	g.nodes.Update(e.to, unregister)
	g.nodes.Update(e.from, unregister)

	g.edges.Remove(id)
}

// Equal reports whether g and other are structurally equivalent. See Equal.
func (g *Graph[N, E]) Equal(other *Graph[N, E]) bool {
	return Equal(g, other)
}
