package resolvers

import (
	"fmt"

	schema "github.com/hanpama/gqlkit/internal/schema"
)

// rebuild applies p by walking s. Only types and fields that change are
// copied; s itself is not modified.
func rebuild(s *schema.Schema, p *mergePlan, o *Options) (*schema.Schema, error) {
	leafChanged := false
	mapType := func(t *schema.Type) *schema.Type {
		tp := p.types[t.Name]
		if tp == nil || !tp.changesType() {
			return nil
		}
		var c *schema.Type
		if t.Kind == schema.TypeKindEnum {
			c = t.Clone()
		} else {
			shallow := *t
			c = &shallow
		}
		tp.applyType(c)
		if t.IsLeaf() {
			leafChanged = true
		}
		return c
	}
	mapField := func(withDefault bool) schema.FieldMapper {
		return func(f *schema.Field, fieldName, typeName string) *schema.Field {
			var cfg *FieldConfig
			if tp := p.types[typeName]; tp != nil {
				cfg = tp.fields[fieldName]
			}
			useDefault := withDefault && o.DefaultFieldResolver != nil &&
				f.Resolve == nil && (cfg == nil || cfg.Resolve == nil)
			if cfg == nil && !useDefault {
				return nil
			}
			c := f.Clone()
			if cfg != nil {
				cfg.apply(c)
			}
			if useDefault {
				c.Resolve = o.DefaultFieldResolver
			}
			return c
		}
	}

	out := schema.Walk(s, schema.Mappers{
		Scalar:         mapType,
		Enum:           mapType,
		Union:          mapType,
		Object:         mapType,
		Interface:      mapType,
		ObjectField:    mapField(true),
		InterfaceField: mapField(false),
	})
	if p.root != nil {
		out.RootResolve = p.root
	}

	if leafChanged {
		reparsed, err := schema.ReparseDefaults(s, out)
		if err != nil {
			return nil, fmt.Errorf("resolvers: reparse default values: %w", err)
		}
		out = reparsed
	}
	return out, nil
}
