package schema

import (
	"fmt"
	"math"
	"strconv"

	language "github.com/hanpama/gqlkit/internal/language"
)

var specifiedScalarNames = map[string]struct{}{
	"String": {}, "Int": {}, "Float": {}, "Boolean": {}, "ID": {},
}

var specifiedDirectiveNames = map[string]struct{}{
	"include": {}, "skip": {}, "deprecated": {}, "specifiedBy": {}, "oneOf": {}, "defer": {},
}

// IsSpecifiedScalar reports whether name is one of the scalars defined by the
// GraphQL specification.
func IsSpecifiedScalar(name string) bool {
	_, ok := specifiedScalarNames[name]
	return ok
}

// IsSpecifiedDirective reports whether name is a directive every schema carries.
func IsSpecifiedDirective(name string) bool {
	_, ok := specifiedDirectiveNames[name]
	return ok
}

// builtinScalars returns fresh instances on every call so that overriding a
// specified scalar on one schema never leaks into another.
func builtinScalars() []*Type {
	return []*Type{
		{
			Name:         "String",
			Kind:         TypeKindScalar,
			Description:  "The `String` scalar type represents textual data, represented as UTF-8 character sequences.",
			Serialize:    serializeString,
			ParseValue:   parseString,
			ParseLiteral: parseStringLiteral,
		},
		{
			Name:         "Int",
			Kind:         TypeKindScalar,
			Description:  "The `Int` scalar type represents non-fractional signed whole numeric values.",
			Serialize:    serializeInt,
			ParseValue:   parseInt,
			ParseLiteral: parseIntLiteral,
		},
		{
			Name:         "Float",
			Kind:         TypeKindScalar,
			Description:  "The `Float` scalar type represents signed double-precision fractional values.",
			Serialize:    serializeFloat,
			ParseValue:   serializeFloat,
			ParseLiteral: parseFloatLiteral,
		},
		{
			Name:         "Boolean",
			Kind:         TypeKindScalar,
			Description:  "The `Boolean` scalar type represents `true` or `false`.",
			Serialize:    serializeBoolean,
			ParseValue:   parseBoolean,
			ParseLiteral: parseBooleanLiteral,
		},
		{
			Name:         "ID",
			Kind:         TypeKindScalar,
			Description:  "The `ID` scalar type represents a unique identifier, often used to refetch an object or as a key for caching.",
			Serialize:    serializeID,
			ParseValue:   serializeID,
			ParseLiteral: parseIDLiteral,
		},
	}
}

func builtinDirectives() []*Directive {
	ifArg := func(desc string) []*InputValue {
		return []*InputValue{{Name: "if", Description: desc, Type: NonNullType(NamedType("Boolean"))}}
	}
	return []*Directive{
		{
			Name:        "include",
			Description: "Directs the executor to include this field or fragment only when the `if` argument is true.",
			Arguments:   ifArg("Included when true."),
			Locations:   []string{"FIELD", "FRAGMENT_SPREAD", "INLINE_FRAGMENT"},
		},
		{
			Name:        "skip",
			Description: "Directs the executor to skip this field or fragment when the `if` argument is true.",
			Arguments:   ifArg("Skipped when true."),
			Locations:   []string{"FIELD", "FRAGMENT_SPREAD", "INLINE_FRAGMENT"},
		},
		{
			Name:        "deprecated",
			Description: "Marks an element of a GraphQL schema as no longer supported.",
			Arguments: []*InputValue{{
				Name:         "reason",
				Type:         NamedType("String"),
				DefaultValue: "No longer supported",
			}},
			Locations: []string{"FIELD_DEFINITION", "ARGUMENT_DEFINITION", "INPUT_FIELD_DEFINITION", "ENUM_VALUE"},
		},
		{
			Name:        "specifiedBy",
			Description: "Exposes a URL that specifies the behavior of this scalar.",
			Arguments:   []*InputValue{{Name: "url", Type: NonNullType(NamedType("String"))}},
			Locations:   []string{"SCALAR"},
		},
	}
}

func serializeString(value any) (any, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case bool:
		return strconv.FormatBool(v), nil
	case int, int32, int64, float32, float64:
		return fmt.Sprint(v), nil
	case fmt.Stringer:
		return v.String(), nil
	}
	return nil, fmt.Errorf("String cannot represent value: %v", value)
}

func parseString(value any) (any, error) {
	if v, ok := value.(string); ok {
		return v, nil
	}
	return nil, fmt.Errorf("String cannot represent a non string value: %v", value)
}

func parseStringLiteral(value *language.Value, _ map[string]any) (any, error) {
	if value.Kind == language.StringValue || value.Kind == language.BlockValue {
		return value.Raw, nil
	}
	return nil, fmt.Errorf("String cannot represent a non string value: %s", value.String())
}

func toInt(value any) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case int32:
		return int(v), true
	case int64:
		if v > math.MaxInt32 || v < math.MinInt32 {
			return 0, false
		}
		return int(v), true
	case float32:
		return toInt(float64(v))
	case float64:
		if v != math.Trunc(v) || v > math.MaxInt32 || v < math.MinInt32 {
			return 0, false
		}
		return int(v), true
	}
	return 0, false
}

func serializeInt(value any) (any, error) {
	switch v := value.(type) {
	case bool:
		if v {
			return 1, nil
		}
		return 0, nil
	case string:
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("Int cannot represent non-integer value: %q", v)
		}
		return serializeInt(n)
	}
	n, ok := toInt(value)
	if !ok || n > math.MaxInt32 || n < math.MinInt32 {
		return nil, fmt.Errorf("Int cannot represent value: %v", value)
	}
	return n, nil
}

func parseInt(value any) (any, error) {
	n, ok := toInt(value)
	if !ok || n > math.MaxInt32 || n < math.MinInt32 {
		return nil, fmt.Errorf("Int cannot represent non-integer value: %v", value)
	}
	return n, nil
}

func parseIntLiteral(value *language.Value, _ map[string]any) (any, error) {
	if value.Kind != language.IntValue {
		return nil, fmt.Errorf("Int cannot represent non-integer value: %s", value.String())
	}
	n, err := strconv.ParseInt(value.Raw, 10, 32)
	if err != nil {
		return nil, fmt.Errorf("Int cannot represent non 32-bit signed integer value: %s", value.Raw)
	}
	return int(n), nil
}

func serializeFloat(value any) (any, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case string:
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f, nil
		}
	}
	return nil, fmt.Errorf("Float cannot represent value: %v", value)
}

func parseFloatLiteral(value *language.Value, _ map[string]any) (any, error) {
	if value.Kind != language.FloatValue && value.Kind != language.IntValue {
		return nil, fmt.Errorf("Float cannot represent non numeric value: %s", value.String())
	}
	return strconv.ParseFloat(value.Raw, 64)
}

func serializeBoolean(value any) (any, error) {
	switch v := value.(type) {
	case bool:
		return v, nil
	case int:
		return v != 0, nil
	case float64:
		return v != 0, nil
	}
	return nil, fmt.Errorf("Boolean cannot represent a non boolean value: %v", value)
}

func parseBoolean(value any) (any, error) {
	if v, ok := value.(bool); ok {
		return v, nil
	}
	return nil, fmt.Errorf("Boolean cannot represent a non boolean value: %v", value)
}

func parseBooleanLiteral(value *language.Value, _ map[string]any) (any, error) {
	if value.Kind != language.BooleanValue {
		return nil, fmt.Errorf("Boolean cannot represent a non boolean value: %s", value.String())
	}
	return value.Raw == "true", nil
}

func serializeID(value any) (any, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case int:
		return strconv.Itoa(v), nil
	case int32:
		return strconv.FormatInt(int64(v), 10), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case float64:
		if v == math.Trunc(v) {
			return strconv.FormatInt(int64(v), 10), nil
		}
	}
	return nil, fmt.Errorf("ID cannot represent value: %v", value)
}

func parseIDLiteral(value *language.Value, _ map[string]any) (any, error) {
	if value.Kind != language.StringValue && value.Kind != language.IntValue {
		return nil, fmt.Errorf("ID cannot represent a non-string and non-integer value: %s", value.String())
	}
	return value.Raw, nil
}
