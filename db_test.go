package raptordb

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/hupe1980/raptordb/graph"
	"github.com/hupe1980/raptordb/model"
	"github.com/hupe1980/raptordb/property"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	db       *DB
	junction model.NodePropertyTypeID
	road     model.EdgePropertyTypeID
}

func newFixture(t *testing.T, optFns ...Option) fixture {
	t.Helper()
	db := New(optFns...)
	junction, err := db.RegisterNodeType("junction", []property.FieldDescriptor{
		{Name: "name", Type: property.FieldTypeString},
	})
	require.NoError(t, err)
	road, err := db.RegisterEdgeType("road", []property.FieldDescriptor{
		{Name: "lanes", Type: property.FieldTypeInteger},
	})
	require.NoError(t, err)
	return fixture{db: db, junction: junction, road: road}
}

func (f fixture) node(t *testing.T, name string) model.NodeID {
	t.Helper()
	id, err := f.db.AddNode(f.junction, []property.Field{property.F("name", property.String(name))})
	require.NoError(t, err)
	return id
}

func (f fixture) edge(t *testing.T, from, to model.NodeID, kind graph.EdgeKind, lanes int64) model.EdgeID {
	t.Helper()
	id, err := f.db.AddEdge(from, to, kind, f.road, []property.Field{property.F("lanes", property.Int(lanes))})
	require.NoError(t, err)
	return id
}

func TestDBAddAndRead(t *testing.T) {
	f := newFixture(t)
	a := f.node(t, "a")
	b := f.node(t, "b")
	e := f.edge(t, a, b, graph.Directed, 2)

	fields, err := f.db.NodeProperty(a)
	require.NoError(t, err)
	assert.Equal(t, []property.Field{property.F("name", property.String("a"))}, fields)

	fields, err = f.db.EdgeProperty(e)
	require.NoError(t, err)
	assert.Equal(t, []property.Field{property.F("lanes", property.Int(2))}, fields)

	v, err := f.db.NodeValue(b, "name")
	require.NoError(t, err)
	assert.Equal(t, property.String("b"), v)

	v, err = f.db.EdgeValue(e, "lanes")
	require.NoError(t, err)
	assert.Equal(t, property.Int(2), v)

	ends, err := f.db.Graph().ConnectedNodes(e)
	require.NoError(t, err)
	assert.Equal(t, graph.ConnectedNodes{From: a, To: b}, ends)
}

func TestDBLookupTypes(t *testing.T) {
	f := newFixture(t)

	id, ok := f.db.LookupNodeType("junction")
	require.True(t, ok)
	assert.Equal(t, f.junction, id)

	eid, ok := f.db.LookupEdgeType("road")
	require.True(t, ok)
	assert.Equal(t, f.road, eid)

	_, ok = f.db.LookupNodeType("road")
	assert.False(t, ok)
}

func TestDBRegisterDuplicate(t *testing.T) {
	f := newFixture(t)
	_, err := f.db.RegisterNodeType("junction", nil)
	assert.ErrorIs(t, err, property.ErrDuplicateType)
}

func TestDBValidation(t *testing.T) {
	metrics := &BasicMetricsCollector{}
	f := newFixture(t, WithMetricsCollector(metrics))

	_, err := f.db.AddNode(f.junction, []property.Field{property.F("name", property.Int(1))})
	assert.ErrorIs(t, err, ErrInvalidProperty)

	var typeErr *property.ErrInvalidFieldType
	require.ErrorAs(t, err, &typeErr)
	assert.Equal(t, property.FieldTypeString, typeErr.Expected)
	assert.Equal(t, property.FieldTypeInteger, typeErr.Provided)

	_, err = f.db.AddNodeProperty(f.junction, nil)
	assert.ErrorIs(t, err, ErrInvalidProperty)

	assert.Zero(t, f.db.Stats().Nodes)
	assert.Equal(t, int64(2), metrics.GetStats().ValidationFailures)
	assert.Equal(t, int64(1), metrics.GetStats().NodeInsertErrors)
}

func TestDBAddEdgeRollsBackProperty(t *testing.T) {
	f := newFixture(t)
	a := f.node(t, "a")
	b := f.node(t, "b")
	require.NoError(t, f.db.DeleteNode(b))

	tests := []struct {
		name string
		from model.NodeID
		to   model.NodeID
		kind graph.EdgeKind
		want error
	}{
		{"SelfLoop", a, a, graph.Directed, ErrSelfLoop},
		{"DeletedNode", a, b, graph.Directed, ErrNotFound},
		{"InvalidKind", a, f.node(t, "c"), graph.EdgeKind(9), graph.ErrInvalidEdgeKind},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.db.AddEdge(tt.from, tt.to, tt.kind, f.road, []property.Field{property.F("lanes", property.Int(1))})
			assert.ErrorIs(t, err, tt.want)
			assert.Zero(t, f.db.Stats().EdgeTypes[0].Properties)
		})
	}
}

func TestDBDeleteNodeCascades(t *testing.T) {
	metrics := &BasicMetricsCollector{}
	f := newFixture(t, WithMetricsCollector(metrics))
	a := f.node(t, "a")
	b := f.node(t, "b")
	c := f.node(t, "c")
	ab := f.edge(t, a, b, graph.Directed, 1)
	ca := f.edge(t, c, a, graph.Undirected, 2)
	bc := f.edge(t, b, c, graph.Directed, 3)

	require.NoError(t, f.db.DeleteNode(a))

	stats := f.db.Stats()
	assert.Equal(t, 2, stats.Nodes)
	assert.Equal(t, 1, stats.Edges)
	assert.Equal(t, 2, stats.NodeTypes[0].Properties)
	assert.Equal(t, 1, stats.EdgeTypes[0].Properties)

	_, err := f.db.NodeProperty(a)
	assert.ErrorIs(t, err, ErrNotFound)
	for _, id := range []model.EdgeID{ab, ca} {
		_, err := f.db.EdgeProperty(id)
		assert.ErrorIs(t, err, ErrNotFound)
	}
	_, err = f.db.EdgeProperty(bc)
	assert.NoError(t, err)

	assert.ErrorIs(t, f.db.DeleteNode(a), ErrNotFound)
	assert.Equal(t, int64(2), metrics.GetStats().CascadedEdges)
	assert.Equal(t, int64(1), metrics.GetStats().DeleteErrors)
}

func TestDBDeleteEdge(t *testing.T) {
	f := newFixture(t)
	a := f.node(t, "a")
	b := f.node(t, "b")
	e := f.edge(t, a, b, graph.Undirected, 1)

	require.NoError(t, f.db.DeleteEdge(e))
	assert.ErrorIs(t, f.db.DeleteEdge(e), ErrNotFound)

	stats := f.db.Stats()
	assert.Equal(t, 2, stats.Nodes)
	assert.Zero(t, stats.Edges)
	assert.Zero(t, stats.EdgeTypes[0].Properties)
}

func TestDBStaleIDAfterReuse(t *testing.T) {
	f := newFixture(t)
	a := f.node(t, "a")
	require.NoError(t, f.db.DeleteNode(a))
	b := f.node(t, "b")

	assert.Equal(t, a.Index(), b.Index())
	_, err := f.db.NodeProperty(a)
	assert.ErrorIs(t, err, ErrNotFound)

	v, err := f.db.NodeValue(b, "name")
	require.NoError(t, err)
	assert.Equal(t, property.String("b"), v)
}

func TestDBEqual(t *testing.T) {
	metrics := &BasicMetricsCollector{}
	f1 := newFixture(t, WithMetricsCollector(metrics))
	a1 := f1.node(t, "a")
	b1 := f1.node(t, "b")
	f1.edge(t, a1, b1, graph.Undirected, 2)

	// Types registered in another order get other identifiers.
	db2 := New()
	_, err := db2.RegisterNodeType("unused", nil)
	require.NoError(t, err)
	f2 := fixture{db: db2}
	f2.junction, err = db2.RegisterNodeType("junction", []property.FieldDescriptor{{Name: "name", Type: property.FieldTypeString}})
	require.NoError(t, err)
	f2.road, err = db2.RegisterEdgeType("road", []property.FieldDescriptor{{Name: "lanes", Type: property.FieldTypeInteger}})
	require.NoError(t, err)

	b2 := f2.node(t, "b")
	a2 := f2.node(t, "a")
	e2 := f2.edge(t, b2, a2, graph.Undirected, 2)

	equal, err := f1.db.Equal(f2.db)
	require.NoError(t, err)
	assert.True(t, equal)

	require.NoError(t, f2.db.DeleteEdge(e2))
	f2.edge(t, b2, a2, graph.Undirected, 3)

	equal, err = f1.db.Equal(f2.db)
	require.NoError(t, err)
	assert.False(t, equal)

	equal, err = f1.db.Equal(f1.db)
	require.NoError(t, err)
	assert.True(t, equal)

	stats := metrics.GetStats()
	assert.Equal(t, int64(2), stats.CompareCount)
	assert.Equal(t, int64(1), stats.CompareEqual)
}

func TestDBLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	f := newFixture(t, WithLogger(logger))

	a := f.node(t, "a")
	b := f.node(t, "b")
	f.edge(t, a, b, graph.Directed, 1)
	f.edge(t, a, b, graph.Directed, 1)
	require.NoError(t, f.db.DeleteNode(a))

	out := buf.String()
	assert.Contains(t, out, "type registered")
	assert.Contains(t, out, "node added")
	assert.Contains(t, out, "parallel edge detected")
	assert.Contains(t, out, "cascaded_edges=2")
}
