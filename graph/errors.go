package graph

import (
	"errors"
	"fmt"

	"github.com/hupe1980/raptordb/model"
)

var (
	// ErrNotFound is matched by ErrNodeNotFound and ErrEdgeNotFound.
	ErrNotFound = errors.New("not found")

	// ErrSelfLoop is returned when an edge would connect a node to itself.
	ErrSelfLoop = errors.New("self-loops are not supported")

	// ErrInvalidEdgeKind is returned for an EdgeKind outside Directed/Undirected.
	ErrInvalidEdgeKind = errors.New("invalid edge kind")
)

// ErrNodeNotFound indicates that a NodeID does not name a live node, either
// because it was never issued or because its slot has since been freed.
type ErrNodeNotFound struct {
	ID model.NodeID
}

func (e *ErrNodeNotFound) Error() string {
	return fmt.Sprintf("node not found: %s", e.ID)
}

func (e *ErrNodeNotFound) Is(target error) bool { return target == ErrNotFound }

// ErrEdgeNotFound indicates that an EdgeID does not name a live edge.
type ErrEdgeNotFound struct {
	ID model.EdgeID
}

func (e *ErrEdgeNotFound) Error() string {
	return fmt.Sprintf("edge not found: %s", e.ID)
}

func (e *ErrEdgeNotFound) Is(target error) bool { return target == ErrNotFound }
