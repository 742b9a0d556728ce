package schema

import (
	"fmt"
	"sort"
	"strings"
)

// TypeMapper returns a replacement for t, or nil to keep t as is.
type TypeMapper func(t *Type) *Type

// FieldMapper returns a replacement for a field of typeName, or nil to keep it.
type FieldMapper func(f *Field, fieldName, typeName string) *Field

// InputFieldMapper returns a replacement for an input field of typeName, or
// nil to keep it.
type InputFieldMapper func(v *InputValue, fieldName, typeName string) *InputValue

// Mappers holds one slot per type kind plus field slots. ObjectField and
// InterfaceField take precedence over CompositeField for their kind.
type Mappers struct {
	Scalar      TypeMapper
	Enum        TypeMapper
	Union       TypeMapper
	Object      TypeMapper
	Interface   TypeMapper
	InputObject TypeMapper

	CompositeField FieldMapper
	ObjectField    FieldMapper
	InterfaceField FieldMapper
	InputField     InputFieldMapper
}

// Walk maps every named type of s and returns a new schema assembled from the
// results. s itself is never modified: unchanged types are shared by
// reference and changed ones are new instances. When a mapper renames a type,
// every type referring to the old name is copied with its references
// rewritten, as are the root operation names.
//
// Type mappers run before the field mappers of the same type, and field
// mappers see the type returned by the type mapper.
func Walk(s *Schema, m Mappers) *Schema {
	out := s.shallowCopy()
	out.Types = make(map[string]*Type, len(s.Types))

	names := make([]string, 0, len(s.Types))
	for name := range s.Types {
		names = append(names, name)
	}
	sort.Strings(names)

	renames := make(map[string]string)
	for _, name := range names {
		t := s.Types[name]
		if strings.HasPrefix(name, "__") {
			out.Types[name] = t
			continue
		}
		nt := m.visitType(t)
		if nt.Name != name {
			renames[name] = nt.Name
		}
		out.Types[nt.Name] = nt
	}
	if len(renames) > 0 {
		rewire(out, renames)
	}
	return out
}

func (m *Mappers) visitType(t *Type) *Type {
	var mapper TypeMapper
	switch t.Kind {
	case TypeKindScalar:
		mapper = m.Scalar
	case TypeKindEnum:
		mapper = m.Enum
	case TypeKindUnion:
		mapper = m.Union
	case TypeKindObject:
		mapper = m.Object
	case TypeKindInterface:
		mapper = m.Interface
	case TypeKindInputObject:
		mapper = m.InputObject
	default:
		panic(fmt.Sprintf("schema: type %q has unknown kind %q", t.Name, t.Kind))
	}

	nt := t
	if mapper != nil {
		if r := mapper(t); r != nil {
			nt = r
		}
	}
	switch nt.Kind {
	case TypeKindObject, TypeKindInterface:
		return m.visitFields(t, nt)
	case TypeKindInputObject:
		return m.visitInputFields(t, nt)
	}
	return nt
}

func (m *Mappers) fieldMapper(kind TypeKind) FieldMapper {
	if kind == TypeKindObject && m.ObjectField != nil {
		return m.ObjectField
	}
	if kind == TypeKindInterface && m.InterfaceField != nil {
		return m.InterfaceField
	}
	return m.CompositeField
}

func (m *Mappers) visitFields(orig, t *Type) *Type {
	fm := m.fieldMapper(t.Kind)
	if fm == nil {
		return t
	}
	changed := false
	fields := make([]*Field, len(t.Fields))
	for i, f := range t.Fields {
		fields[i] = f
		if r := fm(f, f.Name, t.Name); r != nil && r != f {
			fields[i] = r
			changed = true
		}
	}
	if !changed {
		return t
	}
	if t == orig {
		c := *orig
		t = &c
	}
	t.Fields = fields
	return t
}

func (m *Mappers) visitInputFields(orig, t *Type) *Type {
	if m.InputField == nil {
		return t
	}
	changed := false
	fields := make([]*InputValue, len(t.InputFields))
	for i, v := range t.InputFields {
		fields[i] = v
		if r := m.InputField(v, v.Name, t.Name); r != nil && r != v {
			fields[i] = r
			changed = true
		}
	}
	if !changed {
		return t
	}
	if t == orig {
		c := *orig
		t = &c
	}
	t.InputFields = fields
	return t
}

// rewire rewrites references to renamed types. Types that do not mention a
// renamed type stay shared.
func rewire(s *Schema, renames map[string]string) {
	rename := func(name string) string {
		if to, ok := renames[name]; ok {
			return to
		}
		return name
	}
	s.QueryType = rename(s.QueryType)
	s.MutationType = rename(s.MutationType)
	s.SubscriptionType = rename(s.SubscriptionType)

	for name, t := range s.Types {
		if !typeMentions(t, renames) {
			continue
		}
		c := t.Clone()
		for i, n := range c.Interfaces {
			c.Interfaces[i] = rename(n)
		}
		for i, n := range c.PossibleTypes {
			c.PossibleTypes[i] = rename(n)
		}
		for _, f := range c.Fields {
			f.Type = renameRef(f.Type, renames)
			for _, a := range f.Arguments {
				a.Type = renameRef(a.Type, renames)
			}
		}
		for _, in := range c.InputFields {
			in.Type = renameRef(in.Type, renames)
		}
		s.Types[name] = c
	}
	for name, d := range s.Directives {
		mentions := false
		for _, a := range d.Arguments {
			if _, ok := renames[a.Type.GetNamedType()]; ok {
				mentions = true
			}
		}
		if !mentions {
			continue
		}
		c := d.Clone()
		for _, a := range c.Arguments {
			a.Type = renameRef(a.Type, renames)
		}
		s.Directives[name] = c
	}
}

func typeMentions(t *Type, renames map[string]string) bool {
	has := func(name string) bool { _, ok := renames[name]; return ok }
	for _, n := range t.Interfaces {
		if has(n) {
			return true
		}
	}
	for _, n := range t.PossibleTypes {
		if has(n) {
			return true
		}
	}
	for _, f := range t.Fields {
		if has(f.Type.GetNamedType()) {
			return true
		}
		for _, a := range f.Arguments {
			if has(a.Type.GetNamedType()) {
				return true
			}
		}
	}
	for _, in := range t.InputFields {
		if has(in.Type.GetNamedType()) {
			return true
		}
	}
	return false
}

// renameRef returns ref with its named type renamed. ref is never modified.
func renameRef(ref *TypeRef, renames map[string]string) *TypeRef {
	if ref == nil {
		return nil
	}
	switch ref.Kind {
	case TypeRefKindNonNull:
		return NonNullType(renameRef(ref.OfType, renames))
	case TypeRefKindList:
		return ListType(renameRef(ref.OfType, renames))
	}
	if to, ok := renames[ref.Named]; ok {
		return NamedType(to)
	}
	return ref
}
