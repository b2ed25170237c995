// Package testutil provides testing utilities for raptordb.
//
// This package is intended for use in tests and benchmarks only.
// It provides a seeded random source and helpers for generating graph
// shapes and isomorphic copies of them.
//
// # Random Graphs
//
//	rng := testutil.NewRNG(seed)
//	shape := rng.RandomGraph(32, 64, 3)
//	g, ids, err := testutil.Build(shape)
//
// # Isomorphic Copies
//
//	perm := rng.Permute(shape)  // same graph, different insertion order
package testutil
