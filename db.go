package raptordb

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/hupe1980/raptordb/graph"
	"github.com/hupe1980/raptordb/model"
	"github.com/hupe1980/raptordb/property"
)

type (
	nodeProps = property.Manager[model.NodeProperty, model.NodePropertyType]
	edgeProps = property.Manager[model.EdgeProperty, model.EdgePropertyType]
)

// DB is an in-memory property graph. Every node and edge carries exactly one
// property whose fields were validated against a registered type.
//
// DB is safe for concurrent use.
type DB struct {
	mu      sync.RWMutex
	graph   *graph.Graph[property.NodeRef, property.EdgeRef]
	nodes   *nodeProps
	edges   *edgeProps
	logger  *Logger
	metrics MetricsCollector
}

// New creates an empty DB.
func New(optFns ...Option) *DB {
	o := applyOptions(optFns)
	return &DB{
		graph:   graph.New[property.NodeRef, property.EdgeRef](graph.WithLogger(o.logger.Logger)),
		nodes:   property.NewManager[model.NodeProperty, model.NodePropertyType](),
		edges:   property.NewManager[model.EdgeProperty, model.EdgePropertyType](),
		logger:  o.logger,
		metrics: o.metricsCollector,
	}
}

// RegisterNodeType registers a node property type.
func (db *DB) RegisterNodeType(name string, fields []property.FieldDescriptor) (model.NodePropertyTypeID, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	id, err := db.nodes.RegisterType(name, fields)
	db.logger.LogRegisterType("node", name, len(fields), err)
	return id, translateError(err)
}

// RegisterEdgeType registers an edge property type.
func (db *DB) RegisterEdgeType(name string, fields []property.FieldDescriptor) (model.EdgePropertyTypeID, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	id, err := db.edges.RegisterType(name, fields)
	db.logger.LogRegisterType("edge", name, len(fields), err)
	return id, translateError(err)
}

// LookupNodeType returns the identifier of the node type registered under name.
func (db *DB) LookupNodeType(name string) (model.NodePropertyTypeID, bool) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	desc, ok := db.nodes.Lookup(name)
	if !ok {
		return model.NodePropertyTypeID{}, false
	}
	return desc.ID(), true
}

// LookupEdgeType returns the identifier of the edge type registered under name.
func (db *DB) LookupEdgeType(name string) (model.EdgePropertyTypeID, bool) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	desc, ok := db.edges.Lookup(name)
	if !ok {
		return model.EdgePropertyTypeID{}, false
	}
	return desc.ID(), true
}

// AddNodeProperty validates and stores a node property without attaching it
// to a node.
func (db *DB) AddNodeProperty(typeID model.NodePropertyTypeID, fields []property.Field) (property.NodeRef, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	ref, err := db.nodes.AddProperty(typeID, fields)
	db.recordValidation(err)
	return ref, translateError(err)
}

// AddEdgeProperty validates and stores an edge property without attaching it
// to an edge.
func (db *DB) AddEdgeProperty(typeID model.EdgePropertyTypeID, fields []property.Field) (property.EdgeRef, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	ref, err := db.edges.AddProperty(typeID, fields)
	db.recordValidation(err)
	return ref, translateError(err)
}

// AddNode stores a property of the given type and adds a node carrying it.
func (db *DB) AddNode(typeID model.NodePropertyTypeID, fields []property.Field) (model.NodeID, error) {
	start := time.Now()

	db.mu.Lock()
	defer db.mu.Unlock()

	var id model.NodeID
	ref, err := db.nodes.AddProperty(typeID, fields)
	if err == nil {
		id = db.graph.AddNode(ref)
	}

	db.recordValidation(err)
	db.metrics.RecordNodeInsert(time.Since(start), err)
	db.logger.LogAddNode(id, err)

	return id, translateError(err)
}

// AddEdge stores a property of the given type and connects from and to with
// an edge carrying it. If the edge is rejected the property is discarded.
func (db *DB) AddEdge(from, to model.NodeID, kind graph.EdgeKind, typeID model.EdgePropertyTypeID, fields []property.Field) (model.EdgeID, error) {
	start := time.Now()

	db.mu.Lock()
	defer db.mu.Unlock()

	id, err := db.addEdge(from, to, kind, typeID, fields)

	db.recordValidation(err)
	db.metrics.RecordEdgeInsert(time.Since(start), err)
	db.logger.LogAddEdge(id, from, to, err)

	return id, translateError(err)
}

func (db *DB) addEdge(from, to model.NodeID, kind graph.EdgeKind, typeID model.EdgePropertyTypeID, fields []property.Field) (model.EdgeID, error) {
	ref, err := db.edges.AddProperty(typeID, fields)
	if err != nil {
		return model.EdgeID{}, err
	}

	id, err := db.graph.AddEdge(from, to, ref, kind)
	if err != nil {
		if rerr := db.edges.RemoveProperty(ref); rerr != nil {
			return model.EdgeID{}, errors.Join(err, rerr)
		}
		return model.EdgeID{}, err
	}
	return id, nil
}

func (db *DB) recordValidation(err error) {
	if errors.Is(err, property.ErrInvalidProperty) {
		db.metrics.RecordValidationFailure()
	}
}

// NodeProperty returns the fields of the property a node carries.
func (db *DB) NodeProperty(id model.NodeID) ([]property.Field, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	ref, err := db.graph.Node(id)
	if err != nil {
		return nil, translateError(err)
	}
	fields, err := db.nodes.Property(ref)
	return fields, translateError(err)
}

// EdgeProperty returns the fields of the property an edge carries.
func (db *DB) EdgeProperty(id model.EdgeID) ([]property.Field, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	ref, err := db.graph.Edge(id)
	if err != nil {
		return nil, translateError(err)
	}
	fields, err := db.edges.Property(ref)
	return fields, translateError(err)
}

// NodeValue returns a single named field of the property a node carries.
func (db *DB) NodeValue(id model.NodeID, field string) (property.Value, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	ref, err := db.graph.Node(id)
	if err != nil {
		return property.Value{}, translateError(err)
	}
	v, err := db.nodes.Value(ref, field)
	return v, translateError(err)
}

// EdgeValue returns a single named field of the property an edge carries.
func (db *DB) EdgeValue(id model.EdgeID, field string) (property.Value, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	ref, err := db.graph.Edge(id)
	if err != nil {
		return property.Value{}, translateError(err)
	}
	v, err := db.edges.Value(ref, field)
	return v, translateError(err)
}

// DeleteNode deletes a node, every edge touching it and all of their
// properties.
func (db *DB) DeleteNode(id model.NodeID) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	cascaded, err := db.deleteNode(id)

	db.metrics.RecordDelete(cascaded, err)
	db.logger.LogDeleteNode(id, cascaded, err)

	return translateError(err)
}

func (db *DB) deleteNode(id model.NodeID) (int, error) {
	ref, err := db.graph.Node(id)
	if err != nil {
		return 0, err
	}
	incident, err := db.graph.IncidentEdges(id)
	if err != nil {
		return 0, err
	}

	refs := make([]property.EdgeRef, 0, len(incident))
	for _, eid := range incident {
		eref, err := db.graph.Edge(eid)
		if err != nil {
			return 0, err
		}
		refs = append(refs, eref)
	}

	if err := db.graph.DeleteNode(id); err != nil {
		return 0, err
	}

	var errs []error
	for _, eref := range refs {
		errs = append(errs, db.edges.RemoveProperty(eref))
	}
	errs = append(errs, db.nodes.RemoveProperty(ref))

	return len(incident), errors.Join(errs...)
}

// DeleteEdge deletes an edge and its property.
func (db *DB) DeleteEdge(id model.EdgeID) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	err := db.deleteEdge(id)

	db.metrics.RecordDelete(0, err)
	db.logger.LogDeleteEdge(id, err)

	return translateError(err)
}

func (db *DB) deleteEdge(id model.EdgeID) error {
	ref, err := db.graph.Edge(id)
	if err != nil {
		return err
	}
	if err := db.graph.DeleteEdge(id); err != nil {
		return err
	}
	return db.edges.RemoveProperty(ref)
}

// Graph returns the underlying graph. Payloads are property references that
// resolve through NodeProperty and EdgeProperty. The graph must not be
// modified, and must not be read while the DB is being written.
func (db *DB) Graph() *graph.Graph[property.NodeRef, property.EdgeRef] {
	return db.graph
}

// TypeStats describes one registered property type.
type TypeStats struct {
	Name       string
	Fields     int
	Properties int
}

// Stats is a snapshot of DB sizes.
type Stats struct {
	Nodes     int
	Edges     int
	NodeTypes []TypeStats
	EdgeTypes []TypeStats
}

// Stats returns the current node and edge counts and per-type property counts.
func (db *DB) Stats() Stats {
	db.mu.RLock()
	defer db.mu.RUnlock()

	s := Stats{
		Nodes: db.graph.NodeCount(),
		Edges: db.graph.EdgeCount(),
	}
	for desc := range db.nodes.Types() {
		s.NodeTypes = append(s.NodeTypes, TypeStats{
			Name:       desc.Name(),
			Fields:     desc.FieldCount(),
			Properties: db.nodes.Len(desc.ID()),
		})
	}
	for desc := range db.edges.Types() {
		s.EdgeTypes = append(s.EdgeTypes, TypeStats{
			Name:       desc.Name(),
			Fields:     desc.FieldCount(),
			Properties: db.edges.Len(desc.ID()),
		})
	}
	return s
}

// Equal reports whether db and other hold structurally equivalent graphs.
// Properties are compared by type name and field values, so the two
// databases may have registered their types in a different order.
func (db *DB) Equal(other *DB) (bool, error) {
	if db == other {
		return true, nil
	}
	start := time.Now()

	a, err := db.resolved()
	if err != nil {
		return false, fmt.Errorf("resolve graph: %w", translateError(err))
	}
	b, err := other.resolved()
	if err != nil {
		return false, fmt.Errorf("resolve other graph: %w", translateError(err))
	}

	equal := graph.Equal(a, b)

	db.metrics.RecordCompare(time.Since(start), equal)
	db.logger.LogCompare(a.NodeCount(), a.EdgeCount(), equal)

	return equal, nil
}

// resolved returns a copy of the graph whose payloads are property keys.
func (db *DB) resolved() (*graph.Graph[string, string], error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	return graph.Project(db.graph,
		func(_ model.NodeID, ref property.NodeRef) (string, error) { return db.nodes.Key(ref) },
		func(_ model.EdgeID, ref property.EdgeRef) (string, error) { return db.edges.Key(ref) },
		graph.WithLogger(db.logger.Logger),
	)
}
