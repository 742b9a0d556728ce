package executor

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	resolvers "github.com/hanpama/gqlkit/internal/resolvers"
	schema "github.com/hanpama/gqlkit/internal/schema"
	"github.com/stretchr/testify/require"
)

const nodeSDL = `
interface Node {
  id: ID!
}

type User implements Node {
  id: ID!
  name: String
}

type Post implements Node {
  id: ID!
  title: String
}

union Item = User | Post

type Query {
  nodes: [Node]
  items: [Item]
}
`

var nodeValues = []any{
	map[string]any{"kind": "User", "id": "1", "name": "ada"},
	map[string]any{"kind": "Post", "id": 2, "title": "hi"},
}

func hasKey(key string) func(schema.IsTypeOfParams) bool {
	return func(p schema.IsTypeOfParams) bool {
		m, ok := p.Value.(map[string]any)
		if !ok {
			return false
		}
		_, ok = m[key]
		return ok
	}
}

func byKind(p schema.ResolveTypeParams) (string, error) {
	return p.Value.(map[string]any)["kind"].(string), nil
}

func TestAbstractTypesResolveRuntimeObject(t *testing.T) {
	s := mustExecutable(t, nodeSDL, resolvers.ResolverMap{
		"Node": resolvers.TypeResolvers{"__resolveType": byKind},
		"User": resolvers.TypeResolvers{"__isTypeOf": hasKey("name")},
		"Post": resolvers.TypeResolvers{"__isTypeOf": hasKey("title")},
		"Query": resolvers.TypeResolvers{
			"nodes": value(nodeValues),
			"items": value(nodeValues),
		},
	})

	res := run(t, s, `{
		nodes { id ... on User { name } ... on Post { title } }
		items { __typename ...userName ... on Node { id } }
	}
	fragment userName on User { name }`, nil, nil)

	require.Empty(t, res.Errors)
	want := map[string]any{
		"nodes": []any{
			map[string]any{"id": "1", "name": "ada"},
			map[string]any{"id": "2", "title": "hi"},
		},
		"items": []any{
			map[string]any{"__typename": "User", "name": "ada", "id": "1"},
			map[string]any{"__typename": "Post", "id": "2"},
		},
	}
	if diff := cmp.Diff(want, res.Data); diff != "" {
		t.Fatalf("data mismatch (-want +got):\n%s", diff)
	}
}

func TestIsTypeOfRejectsValue(t *testing.T) {
	s := mustExecutable(t, nodeSDL, resolvers.ResolverMap{
		"Node": resolvers.TypeResolvers{
			"__resolveType": func(schema.ResolveTypeParams) (string, error) { return "Post", nil },
		},
		"Post": resolvers.TypeResolvers{"__isTypeOf": hasKey("title")},
		"Query": resolvers.TypeResolvers{
			"nodes": value(nodeValues[:1]),
		},
	})
	res := run(t, s, `{ nodes { id } }`, nil, nil)

	require.Len(t, res.Errors, 1)
	require.Contains(t, res.Errors[0].Message, `Expected value of type "Post"`)
	require.Equal(t, Path{"nodes", 0}, res.Errors[0].Path)
	if diff := cmp.Diff(map[string]any{"nodes": []any{nil}}, res.Data); diff != "" {
		t.Fatalf("data mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveTypeToImpossibleType(t *testing.T) {
	s := mustExecutable(t, nodeSDL, resolvers.ResolverMap{
		"Item": resolvers.TypeResolvers{
			"__resolveType": func(schema.ResolveTypeParams) (string, error) { return "Query", nil },
		},
		"Query": resolvers.TypeResolvers{
			"items": value(nodeValues[:1]),
		},
	})
	res := run(t, s, `{ items { __typename } }`, nil, nil)

	require.Equal(t, []string{`Runtime Object type "Query" is not a possible type for "Item".`}, messages(res))
}

func TestAbstractTypeWithoutResolution(t *testing.T) {
	s := mustExecutable(t, nodeSDL, resolvers.ResolverMap{
		"Query": resolvers.TypeResolvers{
			"nodes": value(nodeValues[:1]),
		},
	})
	res := run(t, s, `{ nodes { id } }`, nil, nil)

	require.Len(t, res.Errors, 1)
	require.Contains(t, res.Errors[0].Message, `Abstract type "Node" must resolve to an Object type at runtime for field Query.nodes.`)
}

func TestSkipAndInclude(t *testing.T) {
	s := mustExecutable(t, nodeSDL, resolvers.ResolverMap{
		"Node": resolvers.TypeResolvers{"__resolveType": byKind},
		"Query": resolvers.TypeResolvers{
			"nodes": value(nodeValues[:1]),
		},
	})
	query := `query($skip: Boolean!) {
		a: nodes @skip(if: $skip) { id }
		b: nodes @include(if: false) { id }
		c: nodes {
			... on User @include(if: true) { name }
			...postTitle @skip(if: true)
		}
	}
	fragment postTitle on Post { title }`

	res := run(t, s, query, map[string]any{"skip": true}, nil)
	require.Empty(t, res.Errors)
	want := map[string]any{"c": []any{map[string]any{"name": "ada"}}}
	if diff := cmp.Diff(want, res.Data); diff != "" {
		t.Fatalf("data mismatch (-want +got):\n%s", diff)
	}

	res = run(t, s, query, map[string]any{"skip": false}, nil)
	require.Empty(t, res.Errors)
	require.Contains(t, res.Data, "a")
}

func TestDoesFragmentConditionMatch(t *testing.T) {
	s := mustExecutable(t, nodeSDL, nil)
	state := &executionState{schema: s}
	user := s.Types["User"]

	tests := []struct {
		condition string
		want      bool
	}{
		{"", true},
		{"User", true},
		{"Node", true},
		{"Item", true},
		{"Post", false},
		{"Missing", false},
	}
	for _, tt := range tests {
		t.Run(tt.condition, func(t *testing.T) {
			require.Equal(t, tt.want, doesFragmentConditionMatch(state, tt.condition, user))
		})
	}
}
