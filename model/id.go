package model

import (
	"fmt"
	"math"
)

const indexBits = 32

// ID is a typed slot identifier. The zero-size marker field makes ID[A] and
// ID[B] distinct, non-convertible types while keeping the size of a uint64.
type ID[K any] struct {
	_   [0]K
	raw uint64
}

// NewID builds an identifier from a slot index and generation.
func NewID[K any](index, generation uint32) ID[K] {
	return ID[K]{raw: uint64(generation)<<indexBits | uint64(index)}
}

// FromIndex builds a first-generation identifier for a raw slot index.
// It panics if index does not fit in 32 bits.
func FromIndex[K any](index int) ID[K] {
	if index < 0 || uint64(index) > math.MaxUint32 {
		panic(fmt.Sprintf("model: slot index %d out of range", index))
	}
	return NewID[K](uint32(index), 0)
}

// Index returns the slot index.
func (id ID[K]) Index() int {
	return int(uint32(id.raw))
}

// Generation returns the slot generation the identifier was issued for.
func (id ID[K]) Generation() uint32 {
	return uint32(id.raw >> indexBits)
}

// Raw returns the packed representation.
func (id ID[K]) Raw() uint64 {
	return id.raw
}

// Less orders identifiers by slot index, then generation.
func (id ID[K]) Less(other ID[K]) bool {
	if id.Index() != other.Index() {
		return id.Index() < other.Index()
	}
	return id.Generation() < other.Generation()
}

// String returns "index" for first-generation identifiers and
// "index@generation" otherwise.
func (id ID[K]) String() string {
	if g := id.Generation(); g != 0 {
		return fmt.Sprintf("%d@%d", id.Index(), g)
	}
	return fmt.Sprintf("%d", id.Index())
}

// Marker kinds. They carry no data and only exist to tag identifiers.
type (
	Node             struct{}
	Edge             struct{}
	NodeProperty     struct{}
	NodePropertyType struct{}
	EdgeProperty     struct{}
	EdgePropertyType struct{}
)

type (
	// NodeID identifies a graph node.
	NodeID = ID[Node]
	// EdgeID identifies a graph edge.
	EdgeID = ID[Edge]
	// NodePropertyID identifies a row of a node property type.
	NodePropertyID = ID[NodeProperty]
	// NodePropertyTypeID identifies a registered node property type.
	NodePropertyTypeID = ID[NodePropertyType]
	// EdgePropertyID identifies a row of an edge property type.
	EdgePropertyID = ID[EdgeProperty]
	// EdgePropertyTypeID identifies a registered edge property type.
	EdgePropertyTypeID = ID[EdgePropertyType]
)
