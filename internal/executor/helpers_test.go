package executor

import (
	"context"
	"testing"

	language "github.com/hanpama/gqlkit/internal/language"
	resolvers "github.com/hanpama/gqlkit/internal/resolvers"
	schema "github.com/hanpama/gqlkit/internal/schema"
	"github.com/stretchr/testify/require"
)

// mustParseQuery parses a GraphQL query and fails the test on error.
func mustParseQuery(t *testing.T, q string) *language.QueryDocument {
	t.Helper()
	d, err := language.ParseQuery(q)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	return d
}

// mustExecutable builds sdl and merges rm into it.
func mustExecutable(t *testing.T, sdl string, rm resolvers.ResolverMap) *schema.Schema {
	t.Helper()
	s, err := resolvers.MakeExecutableSchema(sdl, rm,
		resolvers.WithRequireResolversForResolveType(resolvers.RequireIgnore))
	require.NoError(t, err)
	return s
}

func run(t *testing.T, s *schema.Schema, query string, vars map[string]any, root any) *ExecutionResult {
	t.Helper()
	return Execute(context.Background(), Params{Schema: s, Query: query, Variables: vars, RootValue: root})
}

func messages(res *ExecutionResult) []string {
	out := make([]string, len(res.Errors))
	for i, e := range res.Errors {
		out[i] = e.Message
	}
	return out
}

func value(v any) func(schema.ResolveParams) (any, error) {
	return func(schema.ResolveParams) (any, error) { return v, nil }
}
