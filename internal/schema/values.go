package schema

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"

	language "github.com/hanpama/gqlkit/internal/language"
)

// DefaultValueFn maps a default value of the given type to its replacement.
type DefaultValueFn func(ref *TypeRef, value any) any

// ForEachField calls fn for every field of every object and interface type,
// in type name order. Introspection types are skipped.
func ForEachField(s *Schema, fn func(t *Type, f *Field)) {
	for _, name := range sortedTypeNames(s) {
		t := s.Types[name]
		if t.Kind != TypeKindObject && t.Kind != TypeKindInterface {
			continue
		}
		for _, f := range t.Fields {
			fn(t, f)
		}
	}
}

// ForEachDefaultValue replaces every non-nil default value in s (field
// arguments, input fields and directive arguments) with fn's result.
func ForEachDefaultValue(s *Schema, fn DefaultValueFn) {
	eachInputValue(s, func(_ inputValueSite, in *InputValue) {
		if in.DefaultValue != nil {
			in.DefaultValue = fn(in.Type, in.DefaultValue)
		}
	})
}

// inputValueSite locates an argument or input field by names, so it can be
// found again after its owner has been replaced.
type inputValueSite struct {
	owner string // type name, or "@" + directive name
	field string
	arg   string
}

func eachInputValue(s *Schema, fn func(site inputValueSite, in *InputValue)) {
	for _, name := range sortedTypeNames(s) {
		t := s.Types[name]
		switch t.Kind {
		case TypeKindObject, TypeKindInterface:
			for _, f := range t.Fields {
				for _, arg := range f.Arguments {
					fn(inputValueSite{owner: t.Name, field: f.Name, arg: arg.Name}, arg)
				}
			}
		case TypeKindInputObject:
			for _, in := range t.InputFields {
				fn(inputValueSite{owner: t.Name, field: in.Name}, in)
			}
		}
	}
	for _, name := range sortedDirectiveNames(s) {
		for _, arg := range s.Directives[name].Arguments {
			fn(inputValueSite{owner: "@" + name, arg: arg.Name}, arg)
		}
	}
}

// SerializeInputValue converts an internal input value into its external
// representation using the serialize hooks of the types currently in s.
func SerializeInputValue(s *Schema, ref *TypeRef, value any) (any, error) {
	return transformInputValue(s, ref, value, serializeLeaf)
}

// ParseInputValue converts an external input value into its internal
// representation using the parse hooks of the types currently in s.
func ParseInputValue(s *Schema, ref *TypeRef, value any) (any, error) {
	return transformInputValue(s, ref, value, parseLeaf)
}

type leafFn func(t *Type, value any) (any, error)

func transformInputValue(s *Schema, ref *TypeRef, value any, leaf leafFn) (any, error) {
	if value == nil || ref == nil {
		return value, nil
	}
	switch ref.Kind {
	case TypeRefKindNonNull:
		return transformInputValue(s, ref.OfType, value, leaf)
	case TypeRefKindList:
		items, ok := asList(value)
		if !ok {
			return transformInputValue(s, ref.OfType, value, leaf)
		}
		out := make([]any, len(items))
		for i, item := range items {
			v, err := transformInputValue(s, ref.OfType, item, leaf)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	}

	t := s.Types[ref.Named]
	if t == nil {
		return nil, fmt.Errorf("unknown type %q", ref.Named)
	}
	if t.Kind == TypeKindInputObject {
		obj, ok := value.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("expected an object for input type %s, got %T", t.Name, value)
		}
		out := make(map[string]any, len(obj))
		for _, in := range t.InputFields {
			v, present := obj[in.Name]
			if !present {
				continue
			}
			tv, err := transformInputValue(s, in.Type, v, leaf)
			if err != nil {
				return nil, fmt.Errorf("%s.%s: %w", t.Name, in.Name, err)
			}
			out[in.Name] = tv
		}
		return out, nil
	}
	return leaf(t, value)
}

// SerializeLeaf converts the internal value of a scalar or enum into its
// external representation.
func SerializeLeaf(t *Type, value any) (any, error) {
	return serializeLeaf(t, value)
}

func serializeLeaf(t *Type, value any) (any, error) {
	switch t.Kind {
	case TypeKindEnum:
		for _, ev := range t.EnumValues {
			if reflect.DeepEqual(ev.Value, value) {
				return ev.Name, nil
			}
		}
		return nil, fmt.Errorf("enum %s cannot represent value: %v", t.Name, value)
	case TypeKindScalar:
		if t.Serialize == nil {
			return value, nil
		}
		return t.Serialize(value)
	}
	return nil, fmt.Errorf("type %s is not an input type", t.Name)
}

func parseLeaf(t *Type, value any) (any, error) {
	switch t.Kind {
	case TypeKindEnum:
		name, ok := value.(string)
		if ok {
			if ev := t.EnumValue(name); ev != nil {
				return ev.Value, nil
			}
		}
		return nil, fmt.Errorf("value %v does not exist in enum %s", value, t.Name)
	case TypeKindScalar:
		if t.ParseValue == nil {
			return value, nil
		}
		return t.ParseValue(value)
	}
	return nil, fmt.Errorf("type %s is not an input type", t.Name)
}

// ValueFromAST produces the internal value of a literal for the given type.
// Variables are looked up in variables.
func ValueFromAST(s *Schema, ref *TypeRef, lit *language.Value, variables map[string]any) (any, error) {
	if lit == nil {
		return nil, nil
	}
	if lit.Kind == language.Variable {
		return variables[lit.Raw], nil
	}
	if ref.Kind == TypeRefKindNonNull {
		if lit.Kind == language.NullValue {
			return nil, fmt.Errorf("expected non-null value of type %s", ref.String())
		}
		return ValueFromAST(s, ref.OfType, lit, variables)
	}
	if lit.Kind == language.NullValue {
		return nil, nil
	}
	if ref.Kind == TypeRefKindList {
		if lit.Kind != language.ListValue {
			v, err := ValueFromAST(s, ref.OfType, lit, variables)
			if err != nil {
				return nil, err
			}
			return []any{v}, nil
		}
		out := make([]any, len(lit.Children))
		for i, c := range lit.Children {
			v, err := ValueFromAST(s, ref.OfType, c.Value, variables)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	}

	t := s.Types[ref.Named]
	if t == nil {
		return nil, fmt.Errorf("unknown type %q", ref.Named)
	}
	switch t.Kind {
	case TypeKindInputObject:
		if lit.Kind != language.ObjectValue {
			return nil, fmt.Errorf("expected an object for input type %s", t.Name)
		}
		out := make(map[string]any)
		for _, in := range t.InputFields {
			child := lit.Children.ForName(in.Name)
			if child == nil {
				if in.DefaultValue != nil {
					def := in.DefaultValue
					// Defaults of types not yet converted by the builder.
					if raw, ok := def.(*language.Value); ok {
						v, err := ValueFromAST(s, in.Type, raw, nil)
						if err != nil {
							return nil, err
						}
						def = v
					}
					out[in.Name] = def
				} else if IsNonNull(in.Type) {
					return nil, fmt.Errorf("field %s.%s of required type %s was not provided", t.Name, in.Name, in.Type.String())
				}
				continue
			}
			v, err := ValueFromAST(s, in.Type, child, variables)
			if err != nil {
				return nil, err
			}
			out[in.Name] = v
		}
		return out, nil
	case TypeKindEnum:
		if lit.Kind != language.EnumValue {
			return nil, fmt.Errorf("enum %s cannot represent non-enum value: %s", t.Name, lit.String())
		}
		ev := t.EnumValue(lit.Raw)
		if ev == nil {
			return nil, fmt.Errorf("value %s does not exist in enum %s", lit.Raw, t.Name)
		}
		return ev.Value, nil
	case TypeKindScalar:
		if t.ParseLiteral != nil {
			return t.ParseLiteral(lit, variables)
		}
		return literalToGo(lit, variables), nil
	}
	return nil, fmt.Errorf("type %s is not an input type", t.Name)
}

// literalToGo converts a literal without type information.
func literalToGo(value *language.Value, variables map[string]any) any {
	if value == nil {
		return nil
	}
	switch value.Kind {
	case language.Variable:
		return variables[value.Raw]
	case language.IntValue:
		iv, _ := strconv.Atoi(value.Raw)
		return iv
	case language.FloatValue:
		fv, _ := strconv.ParseFloat(value.Raw, 64)
		return fv
	case language.StringValue, language.BlockValue, language.EnumValue:
		return value.Raw
	case language.BooleanValue:
		return value.Raw == "true"
	case language.ListValue:
		out := make([]any, len(value.Children))
		for i, c := range value.Children {
			out[i] = literalToGo(c.Value, variables)
		}
		return out
	case language.ObjectValue:
		m := make(map[string]any, len(value.Children))
		for _, f := range value.Children {
			m[f.Name] = literalToGo(f.Value, variables)
		}
		return m
	}
	return nil
}

func asList(value any) ([]any, bool) {
	if items, ok := value.([]any); ok {
		return items, true
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	items := make([]any, rv.Len())
	for i := range items {
		items[i] = rv.Index(i).Interface()
	}
	return items, true
}

func sortedTypeNames(s *Schema) []string {
	names := make([]string, 0, len(s.Types))
	for name := range s.Types {
		if strings.HasPrefix(name, "__") {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func sortedDirectiveNames(s *Schema) []string {
	names := make([]string, 0, len(s.Directives))
	for name := range s.Directives {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
