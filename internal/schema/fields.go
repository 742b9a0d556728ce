package schema

// FieldMap is an ordered collection of fields with unique names.
type FieldMap []*Field

// FieldPredicate selects fields of an object type.
type FieldPredicate func(fieldName string, f *Field) bool

// Get returns the field with the given name or nil.
func (m FieldMap) Get(name string) *Field {
	for _, f := range m {
		if f.Name == name {
			return f
		}
	}
	return nil
}

func (m FieldMap) Names() []string {
	names := make([]string, len(m))
	for i, f := range m {
		names[i] = f.Name
	}
	return names
}

// overlay returns base with fields of top added. A field of top replaces the
// same-named field of base in place; other fields of top are appended.
func (m FieldMap) overlay(top FieldMap) FieldMap {
	out := append(FieldMap(nil), m...)
	for _, f := range top {
		replaced := false
		for i, existing := range out {
			if existing.Name == f.Name {
				out[i] = f
				replaced = true
				break
			}
		}
		if !replaced {
			out = append(out, f)
		}
	}
	return out
}

func (m FieldMap) partition(pred FieldPredicate) (kept, matched FieldMap) {
	for _, f := range m {
		if pred(f.Name, f) {
			matched = append(matched, f)
		} else {
			kept = append(kept, f)
		}
	}
	return kept, matched
}

// AppendObjectFields returns a schema in which the object type typeName has
// fields added, replacing same-named ones. A missing type is created as an
// object type with exactly fields.
func AppendObjectFields(s *Schema, typeName string, fields FieldMap) *Schema {
	if _, ok := s.Types[typeName]; !ok {
		out := s.shallowCopy()
		t := NewType(typeName, TypeKindObject, "")
		t.Fields = FieldMap(nil).overlay(fields)
		out.AddType(t)
		return out
	}
	return mapObjectFields(s, typeName, func(existing FieldMap) FieldMap {
		return existing.overlay(fields)
	})
}

// RemoveObjectFields returns a schema without the fields of typeName that
// match pred, together with the removed fields.
func RemoveObjectFields(s *Schema, typeName string, pred FieldPredicate) (*Schema, FieldMap) {
	return ModifyObjectFields(s, typeName, pred, nil)
}

// SelectObjectFields returns the fields of typeName that match pred. s is
// not modified.
func SelectObjectFields(s *Schema, typeName string, pred FieldPredicate) FieldMap {
	t := s.Types[typeName]
	if t == nil || t.Kind != TypeKindObject {
		return nil
	}
	_, matched := FieldMap(t.Fields).partition(pred)
	return matched
}

// ModifyObjectFields removes the fields of typeName that match pred and then
// adds newFields, in a single rebuild. A new field may reuse a removed name.
func ModifyObjectFields(s *Schema, typeName string, pred FieldPredicate, newFields FieldMap) (*Schema, FieldMap) {
	var removed FieldMap
	out := mapObjectFields(s, typeName, func(existing FieldMap) FieldMap {
		var kept FieldMap
		kept, removed = existing.partition(pred)
		return kept.overlay(newFields)
	})
	return out, removed
}

func mapObjectFields(s *Schema, typeName string, fn func(FieldMap) FieldMap) *Schema {
	return Walk(s, Mappers{
		Object: func(t *Type) *Type {
			if t.Name != typeName {
				return nil
			}
			c := *t
			c.Fields = fn(FieldMap(t.Fields))
			return &c
		},
	})
}
