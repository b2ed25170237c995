package property

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidProperty is matched by every validation error.
	ErrInvalidProperty = errors.New("invalid property")

	// ErrUnknownType is returned for a TypeID that was never registered.
	ErrUnknownType = errors.New("unknown property type")

	// ErrPropertyNotFound is returned for a property reference that does not
	// name a live row.
	ErrPropertyNotFound = errors.New("property not found")

	// ErrDuplicateType is returned when a type name is registered twice.
	ErrDuplicateType = errors.New("duplicate property type")

	// ErrDuplicateField is returned when a type declares a field name twice.
	ErrDuplicateField = errors.New("duplicate field name")

	// ErrEmptyName is returned for an empty type or field name.
	ErrEmptyName = errors.New("empty name")

	// ErrInvalidFieldTypeDecl is returned when a field descriptor names no
	// known FieldType.
	ErrInvalidFieldTypeDecl = errors.New("invalid field type")
)

// ErrInvalidFieldAmount indicates that the number of submitted fields differs
// from the number the type declares.
type ErrInvalidFieldAmount struct {
	Expected int
	Provided int
}

func (e *ErrInvalidFieldAmount) Error() string {
	return fmt.Sprintf("invalid field amount - in type: %d, provided: %d", e.Expected, e.Provided)
}

func (e *ErrInvalidFieldAmount) Is(target error) bool { return target == ErrInvalidProperty }

// ErrInvalidFieldName indicates that a submitted field is named differently
// from the field declared at the same position.
type ErrInvalidFieldName struct {
	Expected string
	Provided string
}

func (e *ErrInvalidFieldName) Error() string {
	return fmt.Sprintf("invalid field name - in type: %s, provided: %s", e.Expected, e.Provided)
}

func (e *ErrInvalidFieldName) Is(target error) bool { return target == ErrInvalidProperty }

// ErrInvalidFieldType indicates that a submitted value's type differs from the
// declared field type.
type ErrInvalidFieldType struct {
	Expected FieldType
	Provided FieldType
}

func (e *ErrInvalidFieldType) Error() string {
	return fmt.Sprintf("invalid field type - in type: %s, provided: %s", e.Expected, e.Provided)
}

func (e *ErrInvalidFieldType) Is(target error) bool { return target == ErrInvalidProperty }
