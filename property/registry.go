package property

import (
	"fmt"
	"iter"
	"slices"

	"github.com/hupe1980/raptordb/internal/store"
	"github.com/hupe1980/raptordb/model"
)

// FieldDescriptor declares one field of a property type.
type FieldDescriptor struct {
	Name     string
	Type     FieldType
	Nullable bool
}

// TypeDescriptor is a registered, immutable property schema.
type TypeDescriptor[T any] struct {
	id     model.ID[T]
	name   string
	fields []FieldDescriptor
}

// ID returns the identifier the type was registered under.
func (d *TypeDescriptor[T]) ID() model.ID[T] { return d.id }

// Name returns the type name.
func (d *TypeDescriptor[T]) Name() string { return d.name }

// FieldCount returns the number of declared fields.
func (d *TypeDescriptor[T]) FieldCount() int { return len(d.fields) }

// Fields returns a copy of the declared fields in declaration order.
func (d *TypeDescriptor[T]) Fields() []FieldDescriptor { return slices.Clone(d.fields) }

// Field returns the i-th declared field.
func (d *TypeDescriptor[T]) Field(i int) FieldDescriptor { return d.fields[i] }

// Registry is the catalogue of property types of one entity class.
//
// Registry is not safe for concurrent mutation.
type Registry[T any] struct {
	types  *store.Store[*TypeDescriptor[T], T]
	byName map[string]model.ID[T]
}

// NewRegistry creates an empty Registry.
func NewRegistry[T any]() *Registry[T] {
	return &Registry[T]{
		types:  store.New[*TypeDescriptor[T], T](),
		byName: make(map[string]model.ID[T]),
	}
}

// Register adds a named type with the given ordered fields. The field list is
// copied; a registered type never changes.
func (r *Registry[T]) Register(name string, fields []FieldDescriptor) (*TypeDescriptor[T], error) {
	if name == "" {
		return nil, fmt.Errorf("register type: %w", ErrEmptyName)
	}
	if _, ok := r.byName[name]; ok {
		return nil, fmt.Errorf("register type %q: %w", name, ErrDuplicateType)
	}

	seen := make(map[string]struct{}, len(fields))
	for i, f := range fields {
		if f.Name == "" {
			return nil, fmt.Errorf("register type %q: field %d: %w", name, i, ErrEmptyName)
		}
		if !f.Type.valid() {
			return nil, fmt.Errorf("register type %q: field %q: %w", name, f.Name, ErrInvalidFieldTypeDecl)
		}
		if _, ok := seen[f.Name]; ok {
			return nil, fmt.Errorf("register type %q: field %q: %w", name, f.Name, ErrDuplicateField)
		}
		seen[f.Name] = struct{}{}
	}

	desc := &TypeDescriptor[T]{name: name, fields: slices.Clone(fields)}
	desc.id = r.types.Add(desc)
	r.byName[name] = desc.id

	return desc, nil
}

// Type returns the descriptor for id.
func (r *Registry[T]) Type(id model.ID[T]) (*TypeDescriptor[T], bool) {
	return r.types.Get(id)
}

// Lookup returns the descriptor registered under name.
func (r *Registry[T]) Lookup(name string) (*TypeDescriptor[T], bool) {
	id, ok := r.byName[name]
	if !ok {
		return nil, false
	}
	return r.types.Get(id)
}

// Len returns the number of registered types.
func (r *Registry[T]) Len() int { return r.types.Len() }

// Types yields registered descriptors in registration order.
func (r *Registry[T]) Types() iter.Seq[*TypeDescriptor[T]] {
	return func(yield func(*TypeDescriptor[T]) bool) {
		for _, d := range r.types.All() {
			if !yield(d) {
				return
			}
		}
	}
}

// Validate checks fields against the type registered under id: first the
// field count, then, position by position in declaration order, the name and
// the value type. The first mismatch is returned.
func (r *Registry[T]) Validate(id model.ID[T], fields []Field) (ValidatedProperty[T], error) {
	desc, ok := r.types.Get(id)
	if !ok {
		return ValidatedProperty[T]{}, fmt.Errorf("%w: %s", ErrUnknownType, id)
	}

	if len(fields) != desc.FieldCount() {
		return ValidatedProperty[T]{}, &ErrInvalidFieldAmount{Expected: desc.FieldCount(), Provided: len(fields)}
	}

	for i, f := range fields {
		want := desc.fields[i]
		if f.Name != want.Name {
			return ValidatedProperty[T]{}, &ErrInvalidFieldName{Expected: want.Name, Provided: f.Name}
		}
		if f.Value.Type() != want.Type {
			return ValidatedProperty[T]{}, &ErrInvalidFieldType{Expected: want.Type, Provided: f.Value.Type()}
		}
	}

	return ValidatedProperty[T]{typeID: id, fields: fields}, nil
}

// ValidatedProperty is a field list that passed validation against a type.
// It can only be obtained from Registry.Validate.
type ValidatedProperty[T any] struct {
	typeID model.ID[T]
	fields []Field
}

// TypeID returns the type the fields were validated against.
func (v ValidatedProperty[T]) TypeID() model.ID[T] { return v.typeID }

// Fields returns the validated fields.
func (v ValidatedProperty[T]) Fields() []Field { return v.fields }
