package schema

import (
	"fmt"
	"reflect"
	"sort"

	"go.uber.org/multierr"
)

// Heal installs replacements into s and repairs the type graph in place.
//
// replacements is keyed by the name of the type being replaced. Default
// values are serialized with the types present before the swap and parsed
// again with the types present after it, so defaults of a replaced enum or
// scalar end up in the new internal representation. Map entries whose key
// differs from the type's name are re-keyed, and references to types that no
// longer exist are pruned.
//
// Calling Heal with no replacements is a round-trip and leaves a consistent
// schema unchanged. Default values that fail to convert are left as they were
// and reported in the returned error.
func Heal(s *Schema, replacements map[string]*Type) error {
	var errs error

	external := make(map[inputValueSite]any)
	eachInputValue(s, func(site inputValueSite, in *InputValue) {
		if in.DefaultValue == nil {
			return
		}
		v, err := SerializeInputValue(s, in.Type, in.DefaultValue)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("serialize default of %s: %w", site, err))
			return
		}
		external[site] = v
	})

	for _, name := range sortedKeys(replacements) {
		t := replacements[name]
		if t == nil {
			continue
		}
		if t.Name != name {
			delete(s.Types, name)
		}
		s.Types[t.Name] = t
	}

	rekeyTypes(s)
	pruneReferences(s)

	eachInputValue(s, func(site inputValueSite, in *InputValue) {
		v, ok := external[site]
		if !ok || in.DefaultValue == nil {
			return
		}
		parsed, err := ParseInputValue(s, in.Type, v)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("parse default of %s: %w", site, err))
			return
		}
		in.DefaultValue = parsed
	})
	return errs
}

// ReparseDefaults is the copy-on-write counterpart of the default value
// pass of Heal, for schemas derived from prev by Walk. Every default value of
// next is serialized with the types of prev and parsed with the types of
// next. Arguments, input fields and directives whose default changes are
// copied, so neither schema is modified.
func ReparseDefaults(prev, next *Schema) (*Schema, error) {
	var errs error
	convert := func(site inputValueSite, in *InputValue) *InputValue {
		if in.DefaultValue == nil {
			return nil
		}
		external, err := SerializeInputValue(prev, in.Type, in.DefaultValue)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("serialize default of %s: %w", site, err))
			return nil
		}
		parsed, err := ParseInputValue(next, in.Type, external)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("parse default of %s: %w", site, err))
			return nil
		}
		if reflect.DeepEqual(parsed, in.DefaultValue) {
			return nil
		}
		return in.Clone().SetDefault(parsed)
	}

	out := Walk(next, Mappers{
		CompositeField: func(f *Field, fieldName, typeName string) *Field {
			var c *Field
			for i, arg := range f.Arguments {
				r := convert(inputValueSite{owner: typeName, field: fieldName, arg: arg.Name}, arg)
				if r == nil {
					continue
				}
				if c == nil {
					c = f.Clone()
				}
				c.Arguments[i] = r
			}
			return c
		},
		InputField: func(v *InputValue, fieldName, typeName string) *InputValue {
			return convert(inputValueSite{owner: typeName, field: fieldName}, v)
		},
	})
	for _, name := range sortedDirectiveNames(out) {
		d := out.Directives[name]
		var c *Directive
		for i, arg := range d.Arguments {
			r := convert(inputValueSite{owner: "@" + name, arg: arg.Name}, arg)
			if r == nil {
				continue
			}
			if c == nil {
				c = d.Clone()
			}
			c.Arguments[i] = r
		}
		if c != nil {
			out.Directives[name] = c
		}
	}
	return out, errs
}

func (site inputValueSite) String() string {
	switch {
	case site.field == "":
		return site.owner + "(" + site.arg + ":)"
	case site.arg == "":
		return site.owner + "." + site.field
	}
	return site.owner + "." + site.field + "(" + site.arg + ":)"
}

// rekeyTypes moves every type to the key matching its name. An entry already
// stored under the right key wins over a renamed one.
func rekeyTypes(s *Schema) {
	for _, key := range sortedKeys(s.Types) {
		t := s.Types[key]
		if t.Name == key {
			continue
		}
		delete(s.Types, key)
		if _, taken := s.Types[t.Name]; !taken {
			s.Types[t.Name] = t
		}
	}
}

func pruneReferences(s *Schema) {
	exists := func(ref *TypeRef) bool {
		_, ok := s.Types[ref.GetNamedType()]
		return ok
	}
	isKind := func(name string, kind TypeKind) bool {
		t, ok := s.Types[name]
		return ok && t.Kind == kind
	}

	for _, t := range s.Types {
		switch t.Kind {
		case TypeKindObject, TypeKindInterface:
			t.Interfaces = filter(t.Interfaces, func(name string) bool { return isKind(name, TypeKindInterface) })
			t.Fields = filter(t.Fields, func(f *Field) bool { return exists(f.Type) })
			for _, f := range t.Fields {
				f.Arguments = filter(f.Arguments, func(a *InputValue) bool { return exists(a.Type) })
			}
		case TypeKindUnion:
			t.PossibleTypes = filter(t.PossibleTypes, func(name string) bool { return isKind(name, TypeKindObject) })
		case TypeKindInputObject:
			t.InputFields = filter(t.InputFields, func(in *InputValue) bool { return exists(in.Type) })
		}
	}
	for _, d := range s.Directives {
		d.Arguments = filter(d.Arguments, func(a *InputValue) bool { return exists(a.Type) })
	}

	for _, root := range []*string{&s.QueryType, &s.MutationType, &s.SubscriptionType} {
		if *root != "" && !isKind(*root, TypeKindObject) {
			*root = ""
		}
	}
}

// filter keeps the elements satisfying keep. The input slice is reused only
// when nothing is dropped.
func filter[T any](in []T, keep func(T) bool) []T {
	for i, v := range in {
		if keep(v) {
			continue
		}
		out := append(make([]T, 0, len(in)-1), in[:i]...)
		for _, rest := range in[i+1:] {
			if keep(rest) {
				out = append(out, rest)
			}
		}
		return out
	}
	return in
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
