package property

import (
	"math"
	"strconv"
)

// FieldType defines the data type of a property field.
type FieldType uint8

const (
	FieldTypeInteger FieldType = iota + 1
	FieldTypeFloat
	FieldTypeString
	FieldTypeBoolean
)

// String returns the string representation of the FieldType.
func (t FieldType) String() string {
	switch t {
	case FieldTypeInteger:
		return "Integer"
	case FieldTypeFloat:
		return "Float"
	case FieldTypeString:
		return "String"
	case FieldTypeBoolean:
		return "Boolean"
	default:
		return "Unknown"
	}
}

func (t FieldType) valid() bool {
	return t >= FieldTypeInteger && t <= FieldTypeBoolean
}

// ParseFieldType parses the lower- or title-case name of a FieldType.
func ParseFieldType(s string) (FieldType, bool) {
	switch s {
	case "Integer", "integer", "int":
		return FieldTypeInteger, true
	case "Float", "float":
		return FieldTypeFloat, true
	case "String", "string":
		return FieldTypeString, true
	case "Boolean", "boolean", "bool":
		return FieldTypeBoolean, true
	default:
		return 0, false
	}
}

// Value is a typed field value. The zero Value has no type and never
// validates against a field.
type Value struct {
	typ FieldType
	i64 int64
	f64 float64
	s   string
	b   bool
}

// Int returns an Integer Value.
func Int(v int64) Value { return Value{typ: FieldTypeInteger, i64: v} }

// Float returns a Float Value.
func Float(v float64) Value { return Value{typ: FieldTypeFloat, f64: v} }

// String returns a String Value.
func String(v string) Value { return Value{typ: FieldTypeString, s: v} }

// Bool returns a Boolean Value.
func Bool(v bool) Value { return Value{typ: FieldTypeBoolean, b: v} }

// Type returns the FieldType the value carries.
func (v Value) Type() FieldType { return v.typ }

// AsInt64 returns the int64 value if Type is FieldTypeInteger.
func (v Value) AsInt64() (int64, bool) {
	if v.typ != FieldTypeInteger {
		return 0, false
	}
	return v.i64, true
}

// AsFloat64 returns the float64 value if Type is FieldTypeFloat.
func (v Value) AsFloat64() (float64, bool) {
	if v.typ != FieldTypeFloat {
		return 0, false
	}
	return v.f64, true
}

// AsString returns the string value if Type is FieldTypeString.
func (v Value) AsString() (string, bool) {
	if v.typ != FieldTypeString {
		return "", false
	}
	return v.s, true
}

// AsBool returns the boolean value if Type is FieldTypeBoolean.
func (v Value) AsBool() (bool, bool) {
	if v.typ != FieldTypeBoolean {
		return false, false
	}
	return v.b, true
}

// Any returns the value as int64, float64, string or bool, or nil for the
// zero Value.
func (v Value) Any() any {
	switch v.typ {
	case FieldTypeInteger:
		return v.i64
	case FieldTypeFloat:
		return v.f64
	case FieldTypeString:
		return v.s
	case FieldTypeBoolean:
		return v.b
	default:
		return nil
	}
}

// Key returns a stable string representation for use in maps and
// comparisons. Floats are keyed by their bit pattern.
func (v Value) Key() string {
	switch v.typ {
	case FieldTypeInteger:
		return "i:" + strconv.FormatInt(v.i64, 10)
	case FieldTypeFloat:
		return "f:" + strconv.FormatUint(math.Float64bits(v.f64), 16)
	case FieldTypeString:
		return "s:" + strconv.Quote(v.s)
	case FieldTypeBoolean:
		if v.b {
			return "b:1"
		}
		return "b:0"
	default:
		return "invalid"
	}
}

// String returns a human-readable form of the value.
func (v Value) String() string {
	switch v.typ {
	case FieldTypeInteger:
		return strconv.FormatInt(v.i64, 10)
	case FieldTypeFloat:
		return strconv.FormatFloat(v.f64, 'g', -1, 64)
	case FieldTypeString:
		return strconv.Quote(v.s)
	case FieldTypeBoolean:
		return strconv.FormatBool(v.b)
	default:
		return "<invalid>"
	}
}

// Field is a named value submitted for, or read back from, a property.
type Field struct {
	Name  string
	Value Value
}

// F is shorthand for building a Field.
func F(name string, v Value) Field {
	return Field{Name: name, Value: v}
}
