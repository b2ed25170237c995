// Package property implements schema-validated property storage.
//
// A Registry holds named property types, each an ordered, immutable list of
// field descriptors. Columns stores the values of every type column by column.
// A Manager ties both together: it validates submitted fields against their
// type and only then writes them, returning a Ref that identifies the stored
// row.
//
//	m := property.NewManager[model.NodeProperty, model.NodePropertyType]()
//	typeID, _ := m.RegisterType("junction", []property.FieldDescriptor{
//	    {Name: "lat", Type: property.FieldTypeFloat},
//	    {Name: "lon", Type: property.FieldTypeFloat},
//	})
//	ref, err := m.AddProperty(typeID, []property.Field{
//	    property.F("lat", property.Float(49.62)),
//	    property.F("lon", property.Float(20.69)),
//	})
//
// # Validation
//
// Fields are checked in declaration order: first the count, then for each
// position the name and the value type. The first mismatch is returned as
// ErrInvalidFieldAmount, ErrInvalidFieldName or ErrInvalidFieldType, all of
// which match ErrInvalidProperty with errors.Is.
package property
