package main

import (
	"fmt"
	"os"
	"strings"

	language "github.com/hanpama/gqlkit/internal/language"
	resolvers "github.com/hanpama/gqlkit/internal/resolvers"
	schema "github.com/hanpama/gqlkit/internal/schema"
	"gopkg.in/yaml.v3"
)

// manifest describes stub resolvers:
//
//	root:
//	  greeting: hello
//	types:
//	  Query:
//	    user: {id: "1", name: ada}
//	  Color:
//	    RED: "#FF0000"
//	  Node:
//	    __resolveType: User
//	  User:
//	    __isTypeOf: true
//
// Object and interface fields resolve to the given value. Enum values take
// the given value as their internal value. __resolveType names a type and
// __isTypeOf is a constant answer. Scalar hooks are identity functions.
type manifest struct {
	Root  any                       `yaml:"root"`
	Types map[string]map[string]any `yaml:"types"`
}

func loadManifest(path string) (*manifest, error) {
	if path == "" {
		return nil, fmt.Errorf("--resolvers is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var m manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}
	return &m, nil
}

// resolverMap turns m into stub resolvers for s. Entries that cannot be
// stubbed are passed through as they are, so the merge reports them.
func (m *manifest) resolverMap(s *schema.Schema) resolvers.ResolverMap {
	rm := make(resolvers.ResolverMap, len(m.Types)+1)
	if m.Root != nil {
		rm[resolvers.RootKey] = constant(m.Root)
	}
	for typeName, entry := range m.Types {
		var kind schema.TypeKind
		if t := s.Types[typeName]; t != nil {
			kind = t.Kind
		}
		tr := make(resolvers.TypeResolvers, len(entry))
		for key, v := range entry {
			tr[key] = stub(kind, key, v)
		}
		rm[typeName] = tr
	}
	return rm
}

func stub(kind schema.TypeKind, key string, v any) any {
	hook, isMeta := strings.CutPrefix(key, "__")
	if isMeta || kind == schema.TypeKindScalar {
		switch hook {
		case "resolveType":
			if name, ok := v.(string); ok {
				return func(schema.ResolveTypeParams) (string, error) { return name, nil }
			}
		case "isTypeOf":
			if b, ok := v.(bool); ok {
				return func(schema.IsTypeOfParams) bool { return b }
			}
		case "serialize", "parseValue":
			return identity
		case "parseLiteral":
			return func(lit *language.Value, vars map[string]any) (any, error) { return lit.Value(vars) }
		}
		return v
	}
	switch kind {
	case schema.TypeKindEnum, schema.TypeKindUnion, schema.TypeKindInputObject:
		return v
	}
	return constant(v)
}

func identity(v any) (any, error) { return v, nil }

func constant(v any) func(schema.ResolveParams) (any, error) {
	return func(schema.ResolveParams) (any, error) { return v, nil }
}
