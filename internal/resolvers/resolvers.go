// Package resolvers attaches resolver behaviour to a built schema.
//
// A ResolverMap is keyed by type name. Each entry is a map whose plain keys
// name fields (object and interface types) or enum values, and whose keys
// prefixed with "__" set type level properties such as __resolveType,
// __isTypeOf or __serialize. The top level key "__schema" holds a root
// resolver run once per operation.
//
//	resolvers.ResolverMap{
//		"Query": map[string]any{
//			"user": func(p schema.ResolveParams) (any, error) { ... },
//		},
//		"Color": map[string]any{"RED": "#FF0000"},
//		"Node":  map[string]any{"__resolveType": resolveNode},
//	}
package resolvers

import (
	"fmt"
	"sort"
	"strings"
	"time"

	eventbus "github.com/hanpama/gqlkit/internal/eventbus"
	events "github.com/hanpama/gqlkit/internal/events"
	reqid "github.com/hanpama/gqlkit/internal/reqid"
	schema "github.com/hanpama/gqlkit/internal/schema"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// ResolverMap maps type names to their resolver entries.
type ResolverMap map[string]any

// TypeResolvers is the entry of a single type. A plain map[string]any is
// accepted as well.
type TypeResolvers map[string]any

// RootKey is the top level key holding the root resolver.
const RootKey = "__schema"

// AddResolversToSchema merges rm into s. By default s is left untouched and
// a rebuilt schema is returned; with UpdateResolversInPlace s itself is
// updated and returned.
//
// Every entry is validated before anything is merged. Validation failures
// are returned together and match ErrInvalidResolvers.
func AddResolversToSchema(s *schema.Schema, rm ResolverMap, opts ...Option) (*schema.Schema, error) {
	o := defaultOptions()
	for _, f := range opts {
		f(o)
	}
	strategy := "rebuild"
	if o.UpdateResolversInPlace {
		strategy = "in_place"
	}

	ctx, _ := reqid.Ensure(o.Context)
	start := time.Now()
	eventbus.Publish(ctx, events.SchemaTransformStart{Transform: "add_resolvers", Strategy: strategy, Entries: len(rm)})
	out, err := addResolvers(s, rm, o)
	eventbus.Publish(ctx, events.SchemaTransformFinish{
		Transform: "add_resolvers",
		Strategy:  strategy,
		Entries:   len(rm),
		Err:       err,
		Duration:  time.Since(start),
	})
	if err != nil {
		return nil, err
	}
	o.Logger.Debug("resolvers merged",
		zap.String("strategy", strategy),
		zap.Int("entries", len(rm)),
		zap.Duration("duration", time.Since(start)))
	return out, nil
}

// MakeExecutableSchema builds a schema from SDL and merges rm into it.
func MakeExecutableSchema(typeDefs string, rm ResolverMap, opts ...Option) (*schema.Schema, error) {
	s, err := schema.BuildFromSDL(typeDefs)
	if err != nil {
		return nil, err
	}
	return AddResolversToSchema(s, rm, opts...)
}

func addResolvers(s *schema.Schema, rm ResolverMap, o *Options) (*schema.Schema, error) {
	if o.InheritResolversFromInterfaces {
		rm = inheritFromInterfaces(s, rm)
	}
	p, err := newMergePlan(s, rm, o)
	if err != nil {
		return nil, err
	}

	var out *schema.Schema
	if o.UpdateResolversInPlace {
		out, err = mergeInPlace(s, p, o)
	} else {
		out, err = rebuild(s, p, o)
	}
	if err != nil {
		return nil, err
	}
	if err := checkAbstractTypes(out, o); err != nil {
		return nil, err
	}
	return out, nil
}

// mergePlan is a validated resolver map.
type mergePlan struct {
	root  schema.FieldResolveFn
	types map[string]*typePlan
}

type typePlan struct {
	meta       typeConfig
	fields     map[string]*FieldConfig
	enumValues map[string]any
}

// applyType sets the type level properties and enum values of tp on t.
func (tp *typePlan) applyType(t *schema.Type) {
	tp.meta.apply(t)
	for name, value := range tp.enumValues {
		t.EnumValue(name).Value = value
	}
}

func (tp *typePlan) changesType() bool {
	return !tp.meta.empty() || len(tp.enumValues) > 0
}

func newMergePlan(s *schema.Schema, rm ResolverMap, o *Options) (*mergePlan, error) {
	p := &mergePlan{types: make(map[string]*typePlan)}
	var errs error
	for _, typeName := range sortedKeys(rm) {
		value := rm[typeName]
		if typeName == RootKey {
			fn, ok := asFieldResolveFn(value)
			if !ok {
				errs = multierr.Append(errs, shapeMismatch(RootKey, "", "expected a root resolver function, got %T", value))
				continue
			}
			p.root = fn
			continue
		}
		entry, ok := asEntry(value)
		if !ok {
			errs = multierr.Append(errs, shapeMismatch(typeName, "", "expected a map of resolvers, got %T", value))
			continue
		}
		t := s.Types[typeName]
		if t == nil {
			if o.AllowResolversNotInSchema {
				o.Logger.Debug("skipping resolvers of unknown type", zap.String("type", typeName))
				continue
			}
			errs = multierr.Append(errs, &SchemaReferenceError{TypeName: typeName})
			continue
		}
		tp, err := newTypePlan(t, entry, o)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		p.types[typeName] = tp
	}
	if errs != nil {
		return nil, errs
	}
	return p, nil
}

func newTypePlan(t *schema.Type, entry map[string]any, o *Options) (*typePlan, error) {
	if t.Kind == schema.TypeKindInputObject {
		return nil, shapeMismatch(t.Name, "", "input object types take no resolvers")
	}
	tp := &typePlan{}
	var errs error
	missing := func(name string) {
		if o.AllowResolversNotInSchema {
			o.Logger.Debug("skipping resolver of unknown field", zap.String("type", t.Name), zap.String("field", name))
			return
		}
		errs = multierr.Append(errs, &MissingFieldError{TypeName: t.Name, FieldName: name})
	}

	for _, key := range sortedKeys(entry) {
		value := entry[key]
		if meta, ok := strings.CutPrefix(key, "__"); ok {
			if !allowsMeta(t.Kind, meta) {
				errs = multierr.Append(errs, shapeMismatch(t.Name, "", "%s is not a property of %s types", key, strings.ToLower(string(t.Kind))))
				continue
			}
			errs = multierr.Append(errs, tp.meta.setMeta(t.Name, key, meta, value))
			continue
		}

		switch t.Kind {
		case schema.TypeKindScalar:
			if !allowsMeta(t.Kind, key) {
				errs = multierr.Append(errs, shapeMismatch(t.Name, key, "scalar types accept only %s", strings.Join(metaKeys[t.Kind], ", ")))
				continue
			}
			errs = multierr.Append(errs, tp.meta.setMeta(t.Name, key, key, value))
		case schema.TypeKindEnum:
			if t.EnumValue(key) == nil {
				missing(key)
				continue
			}
			if tp.enumValues == nil {
				tp.enumValues = make(map[string]any)
			}
			tp.enumValues[key] = value
		case schema.TypeKindUnion:
			errs = multierr.Append(errs, shapeMismatch(t.Name, key, "union types have no fields"))
		case schema.TypeKindObject, schema.TypeKindInterface:
			if t.Field(key) == nil {
				missing(key)
				continue
			}
			cfg, err := fieldConfigFrom(t.Name, key, value)
			if err != nil {
				errs = multierr.Append(errs, err)
				continue
			}
			if tp.fields == nil {
				tp.fields = make(map[string]*FieldConfig)
			}
			tp.fields[key] = cfg
		default:
			errs = multierr.Append(errs, fmt.Errorf("resolvers: type %q has unknown kind %q", t.Name, t.Kind))
		}
	}
	if errs != nil {
		return nil, errs
	}
	return tp, nil
}

func asEntry(v any) (map[string]any, bool) {
	switch entry := v.(type) {
	case map[string]any:
		return entry, entry != nil
	case TypeResolvers:
		return entry, entry != nil
	}
	return nil, false
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
