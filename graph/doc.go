// Package graph implements an in-memory property graph over two slotted arenas,
// one for nodes and one for edges.
//
// Nodes and edges reference each other only by identifier. Every node keeps
// the list of edges incident to it; deleting a node deletes those edges first.
//
//	g := graph.New[string, int]()
//	a := g.AddNode("a")
//	b := g.AddNode("b")
//	e, err := g.AddEdge(a, b, 10, graph.Directed)
//
// # Edges
//
// Edges are either Directed or Undirected. Self-loops are rejected with
// ErrSelfLoop. Parallel edges, with equal or different payloads, are accepted
// and logged at warn level.
//
// # Structural equivalence
//
// Equal decides whether two graphs are isomorphic when node payloads must match
// exactly and, for every pair of mapped nodes, the multiset of (kind, payload)
// of the edges between them must match in both directions. Identifier values
// are ignored. The search is a chronological backtracking over candidate nodes
// in ascending identifier order and is exponential in the worst case; it is
// meant for verification, not for hot paths.
//
// # Concurrency
//
// A Graph is not safe for concurrent mutation. Readers may run concurrently
// when no writer is active.
package graph
