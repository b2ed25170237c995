package graph

import (
	"fmt"

	"github.com/hupe1980/raptordb/model"
)

// Project builds a new graph with the same shape as g whose payloads are
// produced by nodeFn and edgeFn. Nodes and edges are visited in ascending
// identifier order. Identifiers in the result are freshly allocated.
func Project[N, E, N2, E2 comparable](
	g *Graph[N, E],
	nodeFn func(model.NodeID, N) (N2, error),
	edgeFn func(model.EdgeID, E) (E2, error),
	optFns ...Option,
) (*Graph[N2, E2], error) {
	out := New[N2, E2](optFns...)
	ids := make(map[model.NodeID]model.NodeID, g.NodeCount())

	for id, n := range g.nodes.All() {
		prop, err := nodeFn(id, n.prop)
		if err != nil {
			return nil, fmt.Errorf("project node %s: %w", id, err)
		}
		ids[id] = out.AddNode(prop)
	}

	for id, e := range g.edges.All() {
		prop, err := edgeFn(id, e.prop)
		if err != nil {
			return nil, fmt.Errorf("project edge %s: %w", id, err)
		}
		if _, err := out.AddEdge(ids[e.from], ids[e.to], prop, e.kind); err != nil {
			return nil, fmt.Errorf("project edge %s: %w", id, err)
		}
	}

	return out, nil
}
