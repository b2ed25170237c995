// Package raptordb provides an embedded, in-memory property graph.
//
// Nodes and edges are stored in generational arenas, so identifiers of
// deleted elements are never mistaken for the elements that later reuse
// their slots. Every node and edge carries one property whose fields were
// validated against a registered type.
//
// # Quick Start
//
//	db := raptordb.New()
//	junction, _ := db.RegisterNodeType("junction", []property.FieldDescriptor{
//	    {Name: "name", Type: property.FieldTypeString},
//	})
//	road, _ := db.RegisterEdgeType("road", []property.FieldDescriptor{
//	    {Name: "lanes", Type: property.FieldTypeInteger},
//	})
//
//	a, _ := db.AddNode(junction, []property.Field{property.F("name", property.String("a"))})
//	b, _ := db.AddNode(junction, []property.Field{property.F("name", property.String("b"))})
//	e, _ := db.AddEdge(a, b, graph.Undirected, road, []property.Field{property.F("lanes", property.Int(2))})
//
// # Deletion
//
// DeleteNode removes the node together with every edge that touches it and
// all of their properties. Identifiers of removed elements stop resolving
// immediately; lookups return an error matching ErrNotFound.
//
// # Equivalence
//
// DB.Equal reports whether two databases hold graphs that are equal up to
// renumbering of nodes and edges. Properties compare by type name and field
// values, not by identifier.
//
// # Errors
//
// Errors returned by DB methods match one of ErrNotFound, ErrInvalidProperty
// or ErrSelfLoop with errors.Is where applicable. The underlying error of the
// graph or property package stays reachable through errors.As.
package raptordb
