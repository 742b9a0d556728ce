package resolvers

import (
	"fmt"

	schema "github.com/hanpama/gqlkit/internal/schema"
)

// mergeInPlace applies p to the types of s directly. Scalars and enums are
// replaced by updated copies, installed through schema.Heal so that default
// values follow their new internal representation.
func mergeInPlace(s *schema.Schema, p *mergePlan, o *Options) (*schema.Schema, error) {
	replacements := make(map[string]*schema.Type)
	for _, name := range sortedKeys(p.types) {
		tp := p.types[name]
		t := s.Types[name]
		switch t.Kind {
		case schema.TypeKindScalar, schema.TypeKindEnum:
			if !tp.changesType() {
				continue
			}
			c := t.Clone()
			tp.applyType(c)
			replacements[name] = c
		default:
			tp.applyType(t)
			for fieldName, cfg := range tp.fields {
				cfg.apply(t.Field(fieldName))
			}
		}
	}

	if o.DefaultFieldResolver != nil {
		schema.ForEachField(s, func(t *schema.Type, f *schema.Field) {
			if t.Kind == schema.TypeKindObject && f.Resolve == nil {
				f.Resolve = o.DefaultFieldResolver
			}
		})
	}
	if p.root != nil {
		s.RootResolve = p.root
	}

	if len(replacements) > 0 {
		if err := schema.Heal(s, replacements); err != nil {
			return nil, fmt.Errorf("resolvers: heal schema: %w", err)
		}
	}
	return s, nil
}
