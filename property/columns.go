package property

import (
	"fmt"
	"iter"
	"slices"

	"github.com/hupe1980/raptordb/internal/store"
	"github.com/hupe1980/raptordb/model"
)

// Columns stores property rows column by column, one table per type. Row i of
// every column of a table belongs to the same property instance.
//
// Columns is not safe for concurrent mutation.
type Columns[P any, T any] struct {
	tables *store.Store[*table[P], T]
}

type table[P any] struct {
	rows    *store.Store[struct{}, P]
	columns []*store.Store[Value, P]
}

// NewColumns creates an empty Columns.
func NewColumns[P any, T any]() *Columns[P, T] {
	return &Columns[P, T]{tables: store.New[*table[P], T]()}
}

// AddType creates the table for a type. Tables are allocated in call order,
// so adding every registered type in registration order yields the same
// identifiers the Registry issued.
func (c *Columns[P, T]) AddType(desc *TypeDescriptor[T]) model.ID[T] {
	t := &table[P]{
		rows:    store.New[struct{}, P](),
		columns: make([]*store.Store[Value, P], desc.FieldCount()),
	}
	for i := range t.columns {
		t.columns[i] = store.New[Value, P]()
	}
	return c.tables.Add(t)
}

// Add appends a validated property to its type's table and returns the row
// identifier.
func (c *Columns[P, T]) Add(p ValidatedProperty[T]) (model.ID[P], error) {
	t, ok := c.tables.Get(p.TypeID())
	if !ok {
		return model.ID[P]{}, fmt.Errorf("%w: %s", ErrUnknownType, p.TypeID())
	}
	fields := p.Fields()
	if len(fields) != len(t.columns) {
		return model.ID[P]{}, &ErrInvalidFieldAmount{Expected: len(t.columns), Provided: len(fields)}
	}

	id := t.rows.Add(struct{}{})
	for i, col := range t.columns {
		if got := col.Add(fields[i].Value); got.Raw() != id.Raw() {
			panic(fmt.Sprintf("property: column %d allocated row %s, table allocated %s", i, got, id))
		}
	}
	return id, nil
}

// Row returns the values of a row in field declaration order.
func (c *Columns[P, T]) Row(typeID model.ID[T], id model.ID[P]) ([]Value, error) {
	t, err := c.live(typeID, id)
	if err != nil {
		return nil, err
	}
	out := make([]Value, len(t.columns))
	for i, col := range t.columns {
		out[i], _ = col.Get(id)
	}
	return out, nil
}

// Value returns a single field of a row.
func (c *Columns[P, T]) Value(typeID model.ID[T], id model.ID[P], field int) (Value, error) {
	t, err := c.live(typeID, id)
	if err != nil {
		return Value{}, err
	}
	if field < 0 || field >= len(t.columns) {
		return Value{}, fmt.Errorf("field index %d out of range [0, %d)", field, len(t.columns))
	}
	v, _ := t.columns[field].Get(id)
	return v, nil
}

// Remove frees a row in every column.
func (c *Columns[P, T]) Remove(typeID model.ID[T], id model.ID[P]) error {
	t, err := c.live(typeID, id)
	if err != nil {
		return err
	}
	for _, col := range t.columns {
		col.Remove(id)
	}
	t.rows.Remove(id)
	return nil
}

// Len returns the number of live rows of a type.
func (c *Columns[P, T]) Len(typeID model.ID[T]) int {
	t, ok := c.tables.Get(typeID)
	if !ok {
		return 0
	}
	return t.rows.Len()
}

// Rows yields the live row identifiers of a type in ascending order.
func (c *Columns[P, T]) Rows(typeID model.ID[T]) iter.Seq[model.ID[P]] {
	t, ok := c.tables.Get(typeID)
	if !ok {
		return func(func(model.ID[P]) bool) {}
	}
	return t.rows.IDs()
}

// Column returns a copy of one column's live values in row order.
func (c *Columns[P, T]) Column(typeID model.ID[T], field int) ([]Value, error) {
	t, ok := c.tables.Get(typeID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownType, typeID)
	}
	if field < 0 || field >= len(t.columns) {
		return nil, fmt.Errorf("field index %d out of range [0, %d)", field, len(t.columns))
	}
	var out []Value
	for _, v := range t.columns[field].All() {
		out = append(out, v)
	}
	return slices.Clip(out), nil
}

func (c *Columns[P, T]) live(typeID model.ID[T], id model.ID[P]) (*table[P], error) {
	t, ok := c.tables.Get(typeID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownType, typeID)
	}
	if !t.rows.Exists(id) {
		return nil, fmt.Errorf("%w: %s/%s", ErrPropertyNotFound, typeID, id)
	}
	return t, nil
}
