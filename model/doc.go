// Package model defines the identifier types shared by every raptordb package.
//
// # Identity Types
//
//   - ID[K]: a dense, slot-local identifier tagged with a marker kind K
//   - NodeID, EdgeID: graph entities
//   - NodePropertyID, EdgePropertyID: rows in a property type's columnar storage
//   - NodePropertyTypeID, EdgePropertyTypeID: registered property schemas
//
// Identifiers of different kinds are distinct types: a NodeID cannot be passed
// where an EdgeID is expected, and no conversion between them exists.
//
// # Generations
//
// An ID packs the slot index together with the slot generation at the time the
// identifier was handed out. Freeing a slot bumps its generation, so an ID kept
// across a delete-then-reuse sequence is reported as stale instead of silently
// addressing the new occupant:
//
//	a := store.Add(x)   // 0@0
//	store.Remove(a)
//	b := store.Add(y)   // 0@1
//	store.Exists(a)     // false
package model
