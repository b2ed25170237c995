package property

import (
	"slices"
	"testing"

	"github.com/hupe1980/raptordb/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type (
	rowKind  struct{}
	typeKind struct{}
)

func newTestColumns(t *testing.T) (*Registry[typeKind], *Columns[rowKind, typeKind], model.ID[typeKind]) {
	t.Helper()
	r := NewRegistry[typeKind]()
	c := NewColumns[rowKind, typeKind]()
	desc, err := r.Register("point", []FieldDescriptor{
		{Name: "x", Type: FieldTypeFloat},
		{Name: "label", Type: FieldTypeString},
	})
	require.NoError(t, err)
	require.Equal(t, desc.ID(), c.AddType(desc))
	return r, c, desc.ID()
}

func addRow(t *testing.T, r *Registry[typeKind], c *Columns[rowKind, typeKind], id model.ID[typeKind], x float64, label string) model.ID[rowKind] {
	t.Helper()
	valid, err := r.Validate(id, []Field{F("x", Float(x)), F("label", String(label))})
	require.NoError(t, err)
	row, err := c.Add(valid)
	require.NoError(t, err)
	return row
}

func TestColumnsAddAndRow(t *testing.T) {
	r, c, typeID := newTestColumns(t)

	r0 := addRow(t, r, c, typeID, 1.5, "a")
	r1 := addRow(t, r, c, typeID, 2.5, "b")

	assert.Equal(t, 0, r0.Index())
	assert.Equal(t, 1, r1.Index())
	assert.Equal(t, 2, c.Len(typeID))

	row, err := c.Row(typeID, r1)
	require.NoError(t, err)
	assert.Equal(t, []Value{Float(2.5), String("b")}, row)

	v, err := c.Value(typeID, r0, 1)
	require.NoError(t, err)
	assert.Equal(t, String("a"), v)

	_, err = c.Value(typeID, r0, 2)
	assert.Error(t, err)

	col, err := c.Column(typeID, 0)
	require.NoError(t, err)
	assert.Equal(t, []Value{Float(1.5), Float(2.5)}, col)
}

func TestColumnsRemoveKeepsLockstep(t *testing.T) {
	r, c, typeID := newTestColumns(t)

	r0 := addRow(t, r, c, typeID, 1, "a")
	r1 := addRow(t, r, c, typeID, 2, "b")
	require.NoError(t, c.Remove(typeID, r0))

	_, err := c.Row(typeID, r0)
	assert.ErrorIs(t, err, ErrPropertyNotFound)
	assert.ErrorIs(t, c.Remove(typeID, r0), ErrPropertyNotFound)

	r2 := addRow(t, r, c, typeID, 3, "c")
	assert.Equal(t, r0.Index(), r2.Index())

	row, err := c.Row(typeID, r2)
	require.NoError(t, err)
	assert.Equal(t, []Value{Float(3), String("c")}, row)

	assert.Equal(t, []model.ID[rowKind]{r2, r1}, slices.Collect(c.Rows(typeID)))
}

func TestColumnsZeroFieldType(t *testing.T) {
	r := NewRegistry[typeKind]()
	c := NewColumns[rowKind, typeKind]()
	desc, err := r.Register("marker", nil)
	require.NoError(t, err)
	c.AddType(desc)

	valid, err := r.Validate(desc.ID(), nil)
	require.NoError(t, err)

	a, err := c.Add(valid)
	require.NoError(t, err)
	b, err := c.Add(valid)
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.Equal(t, 2, c.Len(desc.ID()))

	row, err := c.Row(desc.ID(), a)
	require.NoError(t, err)
	assert.Empty(t, row)
}

func TestColumnsUnknownType(t *testing.T) {
	c := NewColumns[rowKind, typeKind]()
	missing := model.FromIndex[typeKind](3)

	_, err := c.Row(missing, model.FromIndex[rowKind](0))
	assert.ErrorIs(t, err, ErrUnknownType)
	assert.Zero(t, c.Len(missing))
	assert.Empty(t, slices.Collect(c.Rows(missing)))

	_, err = c.Column(missing, 0)
	assert.ErrorIs(t, err, ErrUnknownType)
}
