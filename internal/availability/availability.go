// Package availability tracks which slots of an arena are in use.
//
// A Manager hands out the lowest free slot first and grows by exactly one slot
// when every slot is taken. It never shrinks.
package availability

import (
	"github.com/bits-and-blooms/bitset"
)

// Manager is a bit-per-slot allocator. A set bit means the slot is taken.
//
// Manager is not safe for concurrent use.
type Manager struct {
	bits   *bitset.BitSet
	extent uint
}

// New creates an empty Manager.
func New() *Manager {
	return &Manager{bits: bitset.New(0)}
}

// Acquire marks the lowest free slot as taken and returns it. If no slot is
// free the manager grows by one.
func (m *Manager) Acquire() uint32 {
	if idx, ok := m.bits.NextClear(0); ok && idx < m.extent {
		m.bits.Set(idx)
		return uint32(idx)
	}

	idx := m.extent
	m.bits.Set(idx)
	m.extent++
	return uint32(idx)
}

// Release frees a slot. It reports false if the slot was not taken.
func (m *Manager) Release(idx uint32) bool {
	if !m.IsTaken(idx) {
		return false
	}
	m.bits.Clear(uint(idx))
	return true
}

// IsTaken reports whether the slot is in use. Slots beyond the current extent
// are never taken.
func (m *Manager) IsTaken(idx uint32) bool {
	if uint(idx) >= m.extent {
		return false
	}
	return m.bits.Test(uint(idx))
}

// TakenCount returns the number of slots in use.
func (m *Manager) TakenCount() int {
	return int(m.bits.Count())
}

// Extent returns the number of slots ever allocated.
func (m *Manager) Extent() int {
	return int(m.extent)
}
