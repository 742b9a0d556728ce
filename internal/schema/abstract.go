package schema

import "slices"

// PossibleTypes returns the object types a value of the abstract type t may
// have at runtime: the members of a union, or the objects implementing an
// interface. Names that do not resolve to an object type are skipped.
func PossibleTypes(s *Schema, t *Type) []*Type {
	var out []*Type
	switch t.Kind {
	case TypeKindUnion:
		for _, name := range t.PossibleTypes {
			if pt := s.Types[name]; pt != nil && pt.Kind == TypeKindObject {
				out = append(out, pt)
			}
		}
	case TypeKindInterface:
		for _, name := range sortedTypeNames(s) {
			pt := s.Types[name]
			if pt.Kind == TypeKindObject && slices.Contains(pt.Interfaces, t.Name) {
				out = append(out, pt)
			}
		}
	}
	return out
}

// ImplementsAbstractType reports whether a value of type candidate is also a
// value of type abstract.
func ImplementsAbstractType(s *Schema, abstract, candidate *Type) bool {
	if abstract == nil || candidate == nil {
		return false
	}
	if abstract.Name == candidate.Name {
		return true
	}
	switch abstract.Kind {
	case TypeKindUnion:
		return slices.Contains(abstract.PossibleTypes, candidate.Name)
	case TypeKindInterface:
		return slices.Contains(candidate.Interfaces, abstract.Name)
	}
	return false
}
