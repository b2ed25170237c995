// Package store implements a slotted arena addressed by typed identifiers.
//
// Freed slots are recycled lowest index first. Every slot carries a generation
// that is bumped on removal, so identifiers issued before a slot was reused no
// longer resolve.
package store

import (
	"iter"

	"github.com/hupe1980/raptordb/internal/availability"
	"github.com/hupe1980/raptordb/model"
)

// Store owns a dense sequence of items of type T addressed by model.ID[K].
//
// Store is not safe for concurrent use. Concurrent readers are fine as long as
// no writer is active.
type Store[T any, K any] struct {
	items       []T
	generations []uint32
	slots       *availability.Manager
}

// New creates an empty Store.
func New[T any, K any]() *Store[T, K] {
	return &Store[T, K]{slots: availability.New()}
}

// Add stores item in the lowest free slot, appending if none is free.
func (s *Store[T, K]) Add(item T) model.ID[K] {
	idx := s.slots.Acquire()
	if int(idx) < len(s.items) {
		s.items[idx] = item
	} else {
		s.items = append(s.items, item)
		s.generations = append(s.generations, 0)
	}
	return model.NewID[K](idx, s.generations[idx])
}

// Exists reports whether id names a live item.
func (s *Store[T, K]) Exists(id model.ID[K]) bool {
	idx := id.Index()
	if idx >= len(s.items) {
		return false
	}
	return s.generations[idx] == id.Generation() && s.slots.IsTaken(uint32(idx))
}

// Get returns the item for id.
func (s *Store[T, K]) Get(id model.ID[K]) (T, bool) {
	if !s.Exists(id) {
		var zero T
		return zero, false
	}
	return s.items[id.Index()], true
}

// Update calls fn with a pointer to the stored item. The pointer must not be
// retained after fn returns.
func (s *Store[T, K]) Update(id model.ID[K], fn func(*T)) bool {
	if !s.Exists(id) {
		return false
	}
	fn(&s.items[id.Index()])
	return true
}

// Remove frees the slot held by id. The slot is zeroed so that it does not pin
// anything the item referenced.
func (s *Store[T, K]) Remove(id model.ID[K]) bool {
	if !s.Exists(id) {
		return false
	}
	idx := id.Index()
	var zero T
	s.items[idx] = zero
	s.generations[idx]++
	s.slots.Release(uint32(idx))
	return true
}

// Len returns the number of live items.
func (s *Store[T, K]) Len() int {
	return s.slots.TakenCount()
}

// All yields live items in ascending slot order. The sequence can be ranged
// over repeatedly; it must not be used while the store is being modified.
func (s *Store[T, K]) All() iter.Seq2[model.ID[K], T] {
	return func(yield func(model.ID[K], T) bool) {
		for idx := range s.items {
			if !s.slots.IsTaken(uint32(idx)) {
				continue
			}
			if !yield(model.NewID[K](uint32(idx), s.generations[idx]), s.items[idx]) {
				return
			}
		}
	}
}

// IDs yields the identifiers of live items in ascending slot order.
func (s *Store[T, K]) IDs() iter.Seq[model.ID[K]] {
	return func(yield func(model.ID[K]) bool) {
		for id := range s.All() {
			if !yield(id) {
				return
			}
		}
	}
}
