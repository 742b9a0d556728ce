package resolvers

import (
	"maps"

	language "github.com/hanpama/gqlkit/internal/language"
	schema "github.com/hanpama/gqlkit/internal/schema"
)

// FieldConfig overlays properties of a field. Zero members leave the field
// unchanged; Extensions entries are merged into the field's extensions.
type FieldConfig struct {
	Resolve           schema.FieldResolveFn
	Subscribe         schema.FieldResolveFn
	Description       *string
	DeprecationReason *string
	Extensions        map[string]any
}

func (c *FieldConfig) apply(f *schema.Field) {
	if c.Resolve != nil {
		f.Resolve = c.Resolve
	}
	if c.Subscribe != nil {
		f.Subscribe = c.Subscribe
	}
	if c.Description != nil {
		f.Description = *c.Description
	}
	if c.DeprecationReason != nil {
		f.Deprecate(*c.DeprecationReason)
	}
	if len(c.Extensions) > 0 {
		ext := make(map[string]any, len(f.Extensions)+len(c.Extensions))
		maps.Copy(ext, f.Extensions)
		maps.Copy(ext, c.Extensions)
		f.Extensions = ext
	}
}

// typeConfig is the closed set of type level properties a resolver entry
// can set through its meta keys.
type typeConfig struct {
	Description    *string
	SpecifiedByURL *string
	ResolveType    schema.TypeResolveFn
	IsTypeOf       schema.IsTypeOfFn
	Serialize      schema.SerializeFn
	ParseValue     schema.ParseValueFn
	ParseLiteral   schema.ParseLiteralFn
}

func (c *typeConfig) empty() bool {
	return c.Description == nil && c.SpecifiedByURL == nil &&
		c.ResolveType == nil && c.IsTypeOf == nil &&
		c.Serialize == nil && c.ParseValue == nil && c.ParseLiteral == nil
}

func (c *typeConfig) apply(t *schema.Type) {
	if c.Description != nil {
		t.Description = *c.Description
	}
	if c.SpecifiedByURL != nil {
		u := *c.SpecifiedByURL
		t.SpecifiedByURL = &u
	}
	if c.ResolveType != nil {
		t.ResolveType = c.ResolveType
	}
	if c.IsTypeOf != nil {
		t.IsTypeOf = c.IsTypeOf
	}
	if c.Serialize != nil {
		t.Serialize = c.Serialize
	}
	if c.ParseValue != nil {
		t.ParseValue = c.ParseValue
	}
	if c.ParseLiteral != nil {
		t.ParseLiteral = c.ParseLiteral
	}
}

// metaKeys lists the meta properties each kind accepts.
var metaKeys = map[schema.TypeKind][]string{
	schema.TypeKindScalar:    {"serialize", "parseValue", "parseLiteral", "description", "specifiedByURL"},
	schema.TypeKindEnum:      {"description"},
	schema.TypeKindUnion:     {"resolveType", "description"},
	schema.TypeKindObject:    {"isTypeOf", "description"},
	schema.TypeKindInterface: {"resolveType", "description"},
}

func allowsMeta(kind schema.TypeKind, key string) bool {
	for _, k := range metaKeys[kind] {
		if k == key {
			return true
		}
	}
	return false
}

// setMeta stores value as the meta property prop of c. key is the resolver
// map key it came from; prop is known to be allowed for the type's kind.
func (c *typeConfig) setMeta(typeName, key, prop string, value any) error {
	mismatch := func(want string) error {
		return shapeMismatch(typeName, "", "%s must be %s, got %T", key, want, value)
	}
	switch prop {
	case "description", "specifiedByURL":
		s, ok := value.(string)
		if !ok {
			return mismatch("a string")
		}
		if prop == "description" {
			c.Description = &s
		} else {
			c.SpecifiedByURL = &s
		}
	case "resolveType":
		fn, ok := asTypeResolveFn(value)
		if !ok {
			return mismatch("a type resolver function")
		}
		c.ResolveType = fn
	case "isTypeOf":
		fn, ok := asIsTypeOfFn(value)
		if !ok {
			return mismatch("an isTypeOf function")
		}
		c.IsTypeOf = fn
	case "serialize", "parseValue":
		fn, ok := asValueFn(value)
		if !ok {
			return mismatch("a func(any) (any, error)")
		}
		if prop == "serialize" {
			c.Serialize = fn
		} else {
			c.ParseValue = fn
		}
	case "parseLiteral":
		fn, ok := asParseLiteralFn(value)
		if !ok {
			return mismatch("a literal parser function")
		}
		c.ParseLiteral = fn
	default:
		return shapeMismatch(typeName, "", "unknown meta property %s", key)
	}
	return nil
}

// fieldConfigFrom converts a field entry: a resolver function, a FieldConfig
// or a property map.
func fieldConfigFrom(typeName, fieldName string, value any) (*FieldConfig, error) {
	if fn, ok := asFieldResolveFn(value); ok {
		return &FieldConfig{Resolve: fn}, nil
	}
	switch v := value.(type) {
	case FieldConfig:
		return &v, nil
	case *FieldConfig:
		if v != nil {
			return v, nil
		}
	case map[string]any:
		return fieldConfigFromMap(typeName, fieldName, v)
	case TypeResolvers:
		return fieldConfigFromMap(typeName, fieldName, v)
	}
	return nil, shapeMismatch(typeName, fieldName, "expected a resolver function or a property map, got %T", value)
}

func fieldConfigFromMap(typeName, fieldName string, props map[string]any) (*FieldConfig, error) {
	cfg := &FieldConfig{}
	for _, key := range sortedKeys(props) {
		value := props[key]
		mismatch := func(want string) error {
			return shapeMismatch(typeName, fieldName, "property %s must be %s, got %T", key, want, value)
		}
		switch key {
		case "resolve", "subscribe":
			fn, ok := asFieldResolveFn(value)
			if !ok {
				return nil, mismatch("a resolver function")
			}
			if key == "resolve" {
				cfg.Resolve = fn
			} else {
				cfg.Subscribe = fn
			}
		case "description", "deprecationReason":
			s, ok := value.(string)
			if !ok {
				return nil, mismatch("a string")
			}
			if key == "description" {
				cfg.Description = &s
			} else {
				cfg.DeprecationReason = &s
			}
		case "extensions":
			ext, ok := value.(map[string]any)
			if !ok {
				return nil, mismatch("a map[string]any")
			}
			cfg.Extensions = ext
		default:
			return nil, shapeMismatch(typeName, fieldName, "unknown field property %q", key)
		}
	}
	return cfg, nil
}

func asFieldResolveFn(v any) (schema.FieldResolveFn, bool) {
	switch fn := v.(type) {
	case schema.FieldResolveFn:
		return fn, fn != nil
	case func(schema.ResolveParams) (any, error):
		return fn, fn != nil
	}
	return nil, false
}

func asTypeResolveFn(v any) (schema.TypeResolveFn, bool) {
	switch fn := v.(type) {
	case schema.TypeResolveFn:
		return fn, fn != nil
	case func(schema.ResolveTypeParams) (string, error):
		return fn, fn != nil
	}
	return nil, false
}

func asIsTypeOfFn(v any) (schema.IsTypeOfFn, bool) {
	switch fn := v.(type) {
	case schema.IsTypeOfFn:
		return fn, fn != nil
	case func(schema.IsTypeOfParams) bool:
		return fn, fn != nil
	}
	return nil, false
}

func asValueFn(v any) (func(any) (any, error), bool) {
	switch fn := v.(type) {
	case schema.SerializeFn:
		return fn, fn != nil
	case schema.ParseValueFn:
		return fn, fn != nil
	case func(any) (any, error):
		return fn, fn != nil
	}
	return nil, false
}

func asParseLiteralFn(v any) (schema.ParseLiteralFn, bool) {
	switch fn := v.(type) {
	case schema.ParseLiteralFn:
		return fn, fn != nil
	case func(*language.Value, map[string]any) (any, error):
		return fn, fn != nil
	}
	return nil, false
}
