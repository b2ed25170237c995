package graph

import "github.com/hupe1980/raptordb/model"

// EdgeKind tells whether an edge has a direction.
type EdgeKind uint8

const (
	// Directed edges lead from their source to their target only.
	Directed EdgeKind = iota
	// Undirected edges connect both endpoints symmetrically.
	Undirected
)

// String returns the string representation of the EdgeKind.
func (k EdgeKind) String() string {
	switch k {
	case Directed:
		return "Directed"
	case Undirected:
		return "Undirected"
	default:
		return "Unknown"
	}
}

func (k EdgeKind) valid() bool {
	return k == Directed || k == Undirected
}

// ConnectedNodes holds the endpoints of an edge as it was added.
type ConnectedNodes struct {
	From model.NodeID
	To   model.NodeID
}

type node[N any] struct {
	edges []model.EdgeID
	prop  N
}

type edge[E any] struct {
	from model.NodeID
	to   model.NodeID
	kind EdgeKind
	prop E
}

// connects reports whether the edge leads from a to b, or joins them in either
// orientation when undirected.
func (e *edge[E]) connects(a, b model.NodeID) bool {
	if e.from == a && e.to == b {
		return true
	}
	return e.kind == Undirected && e.from == b && e.to == a
}

// edgeKey is what the equivalence check compares edges by: endpoints are
// matched structurally, not by value.
type edgeKey[E comparable] struct {
	kind EdgeKind
	prop E
}
