package raptordb

import (
	"errors"
	"fmt"

	"github.com/hupe1980/raptordb/graph"
	"github.com/hupe1980/raptordb/property"
)

var (
	// ErrNotFound is matched by every error about a missing node, edge,
	// property or property type.
	ErrNotFound = errors.New("not found")

	// ErrInvalidProperty is matched by every property validation error.
	ErrInvalidProperty = errors.New("invalid property")

	// ErrSelfLoop is returned when an edge would connect a node to itself.
	ErrSelfLoop = errors.New("self loop")
)

func translateError(err error) error {
	if err == nil {
		return nil
	}

	// Not found unification.
	if errors.Is(err, graph.ErrNotFound) ||
		errors.Is(err, property.ErrPropertyNotFound) ||
		errors.Is(err, property.ErrUnknownType) {
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}

	if errors.Is(err, property.ErrInvalidProperty) {
		return fmt.Errorf("%w: %w", ErrInvalidProperty, err)
	}
	if errors.Is(err, graph.ErrSelfLoop) {
		return fmt.Errorf("%w: %w", ErrSelfLoop, err)
	}

	return err
}
