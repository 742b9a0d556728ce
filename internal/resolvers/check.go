package resolvers

import (
	schema "github.com/hanpama/gqlkit/internal/schema"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// checkAbstractTypes reports interfaces and unions that have no ResolveType
// hook while some of their possible types lack IsTypeOf.
func checkAbstractTypes(s *schema.Schema, o *Options) error {
	if o.RequireResolversForResolveType == RequireIgnore {
		return nil
	}
	var errs error
	for _, name := range sortedKeys(s.Types) {
		t := s.Types[name]
		if !t.IsAbstract() || t.ResolveType != nil || allIsTypeOf(schema.PossibleTypes(s, t)) {
			continue
		}
		err := &AbstractTypeResolutionError{TypeName: t.Name, Kind: t.Kind}
		if o.RequireResolversForResolveType == RequireWarn {
			o.Logger.Warn(err.Error(), zap.String("type", t.Name), zap.String("kind", string(t.Kind)))
			continue
		}
		errs = multierr.Append(errs, err)
	}
	return errs
}

func allIsTypeOf(types []*schema.Type) bool {
	for _, t := range types {
		if t.IsTypeOf == nil {
			return false
		}
	}
	return true
}
