package property

import (
	"fmt"
	"iter"
	"strconv"
	"strings"

	"github.com/hupe1980/raptordb/model"
)

// Ref identifies one stored property: which type it belongs to and which row
// of that type's columns holds its values. Graph nodes and edges carry a Ref
// as their payload.
type Ref[P any, T any] struct {
	ID   model.ID[P]
	Type model.ID[T]
}

// String returns "type:row".
func (r Ref[P, T]) String() string {
	return r.Type.String() + ":" + r.ID.String()
}

type (
	// NodeRef references a node property.
	NodeRef = Ref[model.NodeProperty, model.NodePropertyType]
	// EdgeRef references an edge property.
	EdgeRef = Ref[model.EdgeProperty, model.EdgePropertyType]
)

// Manager couples a Registry with the Columns that hold values of its types.
// Every property is validated against its type before anything is written.
type Manager[P any, T any] struct {
	registry *Registry[T]
	columns  *Columns[P, T]
}

// NewManager creates an empty Manager.
func NewManager[P any, T any]() *Manager[P, T] {
	return &Manager[P, T]{
		registry: NewRegistry[T](),
		columns:  NewColumns[P, T](),
	}
}

// RegisterType registers a named type and prepares its storage.
func (m *Manager[P, T]) RegisterType(name string, fields []FieldDescriptor) (model.ID[T], error) {
	desc, err := m.registry.Register(name, fields)
	if err != nil {
		return model.ID[T]{}, err
	}
	if id := m.columns.AddType(desc); id.Raw() != desc.ID().Raw() {
		panic(fmt.Sprintf("property: storage allocated type %s, registry allocated %s", id, desc.ID()))
	}
	return desc.ID(), nil
}

// Type returns the descriptor of a registered type.
func (m *Manager[P, T]) Type(id model.ID[T]) (*TypeDescriptor[T], bool) {
	return m.registry.Type(id)
}

// Lookup returns the descriptor registered under name.
func (m *Manager[P, T]) Lookup(name string) (*TypeDescriptor[T], bool) {
	return m.registry.Lookup(name)
}

// Types yields registered descriptors in registration order.
func (m *Manager[P, T]) Types() iter.Seq[*TypeDescriptor[T]] {
	return m.registry.Types()
}

// Validate checks fields against a type without storing them.
func (m *Manager[P, T]) Validate(typeID model.ID[T], fields []Field) error {
	_, err := m.registry.Validate(typeID, fields)
	return err
}

// AddProperty validates fields against the type and stores them. Nothing is
// written if validation fails.
func (m *Manager[P, T]) AddProperty(typeID model.ID[T], fields []Field) (Ref[P, T], error) {
	valid, err := m.registry.Validate(typeID, fields)
	if err != nil {
		return Ref[P, T]{}, err
	}
	id, err := m.columns.Add(valid)
	if err != nil {
		return Ref[P, T]{}, err
	}
	return Ref[P, T]{ID: id, Type: typeID}, nil
}

// Property returns the named fields of a stored property in declaration order.
func (m *Manager[P, T]) Property(ref Ref[P, T]) ([]Field, error) {
	desc, ok := m.registry.Type(ref.Type)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownType, ref.Type)
	}
	values, err := m.columns.Row(ref.Type, ref.ID)
	if err != nil {
		return nil, err
	}
	out := make([]Field, len(values))
	for i, v := range values {
		out[i] = Field{Name: desc.fields[i].Name, Value: v}
	}
	return out, nil
}

// Value returns a single named field of a stored property.
func (m *Manager[P, T]) Value(ref Ref[P, T], name string) (Value, error) {
	desc, ok := m.registry.Type(ref.Type)
	if !ok {
		return Value{}, fmt.Errorf("%w: %s", ErrUnknownType, ref.Type)
	}
	for i, f := range desc.fields {
		if f.Name == name {
			return m.columns.Value(ref.Type, ref.ID, i)
		}
	}
	return Value{}, fmt.Errorf("type %q has no field %q", desc.name, name)
}

// RemoveProperty frees a stored property.
func (m *Manager[P, T]) RemoveProperty(ref Ref[P, T]) error {
	return m.columns.Remove(ref.Type, ref.ID)
}

// Len returns the number of stored properties of a type.
func (m *Manager[P, T]) Len(typeID model.ID[T]) int {
	return m.columns.Len(typeID)
}

// Key returns a string that is equal for two properties exactly when they
// have the same type name and the same values. It does not depend on
// identifiers, so keys from different managers are comparable.
func (m *Manager[P, T]) Key(ref Ref[P, T]) (string, error) {
	desc, ok := m.registry.Type(ref.Type)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownType, ref.Type)
	}
	values, err := m.columns.Row(ref.Type, ref.ID)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString(strconv.Quote(desc.name))
	for _, v := range values {
		sb.WriteByte('|')
		sb.WriteString(v.Key())
	}
	return sb.String(), nil
}
