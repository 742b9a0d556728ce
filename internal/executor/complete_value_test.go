package executor

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	resolvers "github.com/hanpama/gqlkit/internal/resolvers"
	schema "github.com/hanpama/gqlkit/internal/schema"
	"github.com/stretchr/testify/require"
)

const heroSDL = `
scalar Cents

type Hero {
  name: String!
  nick: String
  price: Cents
}

type Query {
  hero: Hero
  strict: Hero!
  names: [String!]
  count: Int
  heroes: [Hero]
}
`

type hero struct {
	Name     string
	Nickname string `json:"nick"`
	Secret   string `json:"-"`
}

func TestNonNullFieldNullsParent(t *testing.T) {
	s := mustExecutable(t, heroSDL, resolvers.ResolverMap{
		"Query": resolvers.TypeResolvers{
			"hero": value(map[string]any{"nick": "x"}),
		},
	})
	res := run(t, s, `{ hero { name nick } }`, nil, nil)

	if diff := cmp.Diff(map[string]any{"hero": nil}, res.Data); diff != "" {
		t.Fatalf("data mismatch (-want +got):\n%s", diff)
	}
	require.Len(t, res.Errors, 1)
	require.Equal(t, "Cannot return null for non-nullable field Hero.name.", res.Errors[0].Message)
	require.Equal(t, Path{"hero", "name"}, res.Errors[0].Path)
}

func TestNonNullRootFieldNullsData(t *testing.T) {
	s := mustExecutable(t, heroSDL, resolvers.ResolverMap{
		"Query": resolvers.TypeResolvers{
			"strict": value(map[string]any{}),
			"count":  value(1),
		},
	})
	res := run(t, s, `{ count strict { name } }`, nil, nil)

	require.Nil(t, res.Data)
	require.Len(t, res.Errors, 1)
	require.Equal(t, Path{"strict", "name"}, res.Errors[0].Path)
}

func TestNonNullListItem(t *testing.T) {
	s := mustExecutable(t, heroSDL, resolvers.ResolverMap{
		"Query": resolvers.TypeResolvers{
			"names": value([]any{"a", nil}),
		},
	})
	res := run(t, s, `{ names }`, nil, nil)

	if diff := cmp.Diff(map[string]any{"names": nil}, res.Data); diff != "" {
		t.Fatalf("data mismatch (-want +got):\n%s", diff)
	}
	require.Len(t, res.Errors, 1)
	require.Equal(t, Path{"names", 1}, res.Errors[0].Path)
	require.Equal(t, "Cannot return null for non-nullable field Query.names.", res.Errors[0].Message)
}

func TestResolverErrorIsCollected(t *testing.T) {
	s := mustExecutable(t, heroSDL, resolvers.ResolverMap{
		"Query": resolvers.TypeResolvers{
			"count": func(schema.ResolveParams) (any, error) { return nil, errors.New("boom") },
			"names": value([]string{"a", "b"}),
		},
	})
	res := run(t, s, `{ count names }`, nil, nil)

	if diff := cmp.Diff(map[string]any{"count": nil, "names": []any{"a", "b"}}, res.Data); diff != "" {
		t.Fatalf("data mismatch (-want +got):\n%s", diff)
	}
	require.Equal(t, []string{"boom"}, messages(res))
	require.Equal(t, Path{"count"}, res.Errors[0].Path)
}

func TestDefaultResolverReadsStructsAndMaps(t *testing.T) {
	s := mustExecutable(t, heroSDL, resolvers.ResolverMap{
		"Query": resolvers.TypeResolvers{
			"heroes": value([]any{
				hero{Name: "Ada", Nickname: "countess", Secret: "x"},
				&hero{Name: "Alan"},
				map[string]any{"name": "Grace", "nick": "amazing"},
			}),
		},
	})
	res := run(t, s, `{ heroes { name nick } }`, nil, nil)

	require.Empty(t, res.Errors)
	want := map[string]any{"heroes": []any{
		map[string]any{"name": "Ada", "nick": "countess"},
		map[string]any{"name": "Alan", "nick": ""},
		map[string]any{"name": "Grace", "nick": "amazing"},
	}}
	if diff := cmp.Diff(want, res.Data); diff != "" {
		t.Fatalf("data mismatch (-want +got):\n%s", diff)
	}
}

func TestPropertyOf(t *testing.T) {
	type tagged struct {
		Visible string `json:"shown,omitempty"`
		Hidden  string `json:"-"`
		private string
	}
	src := tagged{Visible: "v", Hidden: "h", private: "p"}

	require.Equal(t, "v", propertyOf(src, "shown"))
	require.Nil(t, propertyOf(src, "Hidden"))
	require.Nil(t, propertyOf(src, "private"))
	require.Nil(t, propertyOf((*tagged)(nil), "shown"))
	require.Equal(t, 3, propertyOf(map[string]int{"n": 3}, "n"))
	require.Nil(t, propertyOf(map[int]string{1: "x"}, "1"))
}

func TestScalarSerializeHook(t *testing.T) {
	s := mustExecutable(t, heroSDL, resolvers.ResolverMap{
		"Cents": resolvers.TypeResolvers{
			"serialize": func(v any) (any, error) { return float64(v.(int)) / 100, nil },
		},
		"Query": resolvers.TypeResolvers{
			"hero": value(map[string]any{"name": "Ada", "price": 150}),
		},
	})
	res := run(t, s, `{ hero { price } }`, nil, nil)

	require.Empty(t, res.Errors)
	if diff := cmp.Diff(map[string]any{"hero": map[string]any{"price": 1.5}}, res.Data); diff != "" {
		t.Fatalf("data mismatch (-want +got):\n%s", diff)
	}
}

func TestListExpected(t *testing.T) {
	s := mustExecutable(t, heroSDL, resolvers.ResolverMap{
		"Query": resolvers.TypeResolvers{
			"heroes": value("not a list"),
		},
	})
	res := run(t, s, `{ heroes { name } }`, nil, nil)

	require.Equal(t, []string{"Expected Iterable, but did not find one for field Query.heroes."}, messages(res))
}

func TestUnknownFieldIsReported(t *testing.T) {
	s := mustExecutable(t, heroSDL, nil)
	res := run(t, s, `{ nope }`, nil, nil)

	require.Equal(t, []string{`Cannot query field "nope" on type "Query".`}, messages(res))
	if diff := cmp.Diff(map[string]any{}, res.Data); diff != "" {
		t.Fatalf("data mismatch (-want +got):\n%s", diff)
	}
}
