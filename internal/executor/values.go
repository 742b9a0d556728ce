package executor

import (
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strings"

	language "github.com/hanpama/gqlkit/internal/language"
	schema "github.com/hanpama/gqlkit/internal/schema"
)

// coerceVariableValues coerces variable values according to their types.
// Provided values go through the parse hooks of their types; omitted ones
// take the literal default of the variable definition.
func coerceVariableValues(
	s *schema.Schema,
	operation *language.OperationDefinition,
	variableValues map[string]any,
) (map[string]any, error) {
	coerced := make(map[string]any, len(operation.VariableDefinitions))
	for _, varDef := range operation.VariableDefinitions {
		name := varDef.Variable
		t := varDef.Type
		ref := typeRefFromAST(t)

		val, ok := variableValues[name]
		if !ok {
			if varDef.DefaultValue != nil {
				v, err := schema.ValueFromAST(s, ref, varDef.DefaultValue, nil)
				if err != nil {
					return nil, fmt.Errorf("variable $%s has an invalid default value: %w", name, err)
				}
				coerced[name] = v
			} else if t.NonNull {
				return nil, fmt.Errorf("variable $%s of required type %s was not provided", name, t.String())
			}
			continue
		}
		if val == nil {
			if t.NonNull {
				return nil, fmt.Errorf("variable $%s of non-null type %s must not be null", name, t.String())
			}
			coerced[name] = nil
			continue
		}
		cv, err := coerceInputValue(s, ref, val)
		if err != nil {
			return nil, fmt.Errorf("variable $%s got invalid value %v: %w", name, val, err)
		}
		coerced[name] = cv
	}
	return coerced, nil
}

// coerceInputValue converts an external input value, such as a decoded JSON
// variable, into its internal representation. Input objects are checked for
// unknown and missing fields and get their field defaults.
func coerceInputValue(s *schema.Schema, ref *schema.TypeRef, value any) (any, error) {
	if value == nil {
		if schema.IsNonNull(ref) {
			return nil, fmt.Errorf("expected non-null value of type %s", ref)
		}
		return nil, nil
	}
	switch ref.Kind {
	case schema.TypeRefKindNonNull:
		return coerceInputValue(s, ref.OfType, value)
	case schema.TypeRefKindList:
		items, ok := value.([]any)
		if !ok {
			// A single value is coerced to a list of one.
			v, err := coerceInputValue(s, ref.OfType, value)
			if err != nil {
				return nil, err
			}
			return []any{v}, nil
		}
		out := make([]any, len(items))
		for i, item := range items {
			v, err := coerceInputValue(s, ref.OfType, item)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			out[i] = v
		}
		return out, nil
	}

	t := s.Types[ref.Named]
	if t == nil {
		return nil, fmt.Errorf("unknown type %q", ref.Named)
	}
	if t.Kind != schema.TypeKindInputObject {
		return schema.ParseInputValue(s, ref, value)
	}

	obj, ok := value.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("expected an object for input type %s, got %T", t.Name, value)
	}
	for _, name := range slices.Sorted(maps.Keys(obj)) {
		if t.InputField(name) == nil {
			return nil, fmt.Errorf("field %q is not defined by type %s", name, t.Name)
		}
	}
	out := make(map[string]any, len(t.InputFields))
	for _, in := range t.InputFields {
		v, present := obj[in.Name]
		if !present {
			if in.DefaultValue != nil {
				out[in.Name] = in.DefaultValue
			} else if schema.IsNonNull(in.Type) {
				return nil, fmt.Errorf("required field %q of type %s was not provided", in.Name, in.Type)
			}
			continue
		}
		cv, err := coerceInputValue(s, in.Type, v)
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", t.Name, in.Name, err)
		}
		out[in.Name] = cv
	}
	return out, nil
}

// coerceArgumentValues coerces the arguments of a field. Missing arguments,
// and arguments bound to variables that were not provided, take the default
// value of their definition.
func coerceArgumentValues(
	s *schema.Schema,
	fieldDef *schema.Field,
	arguments language.ArgumentList,
	variableValues map[string]any,
) (map[string]any, error) {
	coerced := make(map[string]any, len(fieldDef.Arguments))
	for _, argDef := range fieldDef.Arguments {
		name := argDef.Name
		arg := arguments.ForName(name)
		provided := arg != nil
		if provided && arg.Value.Kind == language.Variable {
			_, provided = variableValues[arg.Value.Raw]
		}
		if !provided {
			if argDef.DefaultValue != nil {
				coerced[name] = argDef.DefaultValue
			} else if schema.IsNonNull(argDef.Type) {
				return nil, fmt.Errorf("argument %q of required type %s was not provided", name, argDef.Type)
			}
			continue
		}

		v, err := schema.ValueFromAST(s, argDef.Type, arg.Value, variableValues)
		if err != nil {
			return nil, fmt.Errorf("argument %q has invalid value %s: %w", name, arg.Value.String(), err)
		}
		if v == nil && schema.IsNonNull(argDef.Type) {
			return nil, fmt.Errorf("argument %q of non-null type %s must not be null", name, argDef.Type)
		}
		coerced[name] = v
	}
	return coerced, nil
}

// DefaultFieldResolver resolves a field without a resolver function by
// reading the property of the same name from the source value: a map key, or
// an exported struct field matched by its json tag or, case-insensitively,
// by its name.
func DefaultFieldResolver(p schema.ResolveParams) (any, error) {
	return propertyOf(p.Source, p.Info.FieldName), nil
}

func propertyOf(source any, name string) any {
	switch src := source.(type) {
	case nil:
		return nil
	case map[string]any:
		return src[name]
	}

	rv := reflect.ValueOf(source)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil
		}
		v := rv.MapIndex(reflect.ValueOf(name).Convert(rv.Type().Key()))
		if !v.IsValid() {
			return nil
		}
		return v.Interface()
	case reflect.Struct:
		rt := rv.Type()
		for i := 0; i < rt.NumField(); i++ {
			f := rt.Field(i)
			if !f.IsExported() {
				continue
			}
			tag, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if tag == "-" {
				continue
			}
			if tag == name || (tag == "" && strings.EqualFold(f.Name, name)) {
				return rv.Field(i).Interface()
			}
		}
	}
	return nil
}
