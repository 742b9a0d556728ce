package executor

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	eventbus "github.com/hanpama/gqlkit/internal/eventbus"
	events "github.com/hanpama/gqlkit/internal/events"
	reqid "github.com/hanpama/gqlkit/internal/reqid"
	resolvers "github.com/hanpama/gqlkit/internal/resolvers"
	schema "github.com/hanpama/gqlkit/internal/schema"
	"github.com/stretchr/testify/require"
)

const counterSDL = `
enum Color {
  RED
  GREEN
}

input Range {
  min: Int!
  max: Int = 10
}

type Query {
  count: Int
  other: Int
  favorite: Color
  isRed(color: Color!): Boolean
  greet(name: String = "world"): String
  span(r: Range): String
}

type Mutation {
  push(n: Int!): [Int]
}

type Subscription {
  tick: Int
}
`

func counterResolvers() resolvers.ResolverMap {
	return resolvers.ResolverMap{
		"Color": resolvers.TypeResolvers{"RED": "#FF0000", "GREEN": "#00FF00"},
		"Query": resolvers.TypeResolvers{
			"favorite": value("#FF0000"),
			"isRed": func(p schema.ResolveParams) (any, error) {
				return p.Args["color"] == "#FF0000", nil
			},
			"greet": func(p schema.ResolveParams) (any, error) {
				return "hello " + p.Args["name"].(string), nil
			},
			"span": func(p schema.ResolveParams) (any, error) {
				r := p.Args["r"].(map[string]any)
				return fmt.Sprintf("%v-%v", r["min"], r["max"]), nil
			},
		},
	}
}

func TestResolverOverridesUppercaseName(t *testing.T) {
	s := mustExecutable(t, `
schema { query: User }
type User { name: String }
`, resolvers.ResolverMap{
		"User": resolvers.TypeResolvers{
			"name": func(p schema.ResolveParams) (any, error) {
				return strings.ToUpper(p.Source.(map[string]any)["name"].(string)), nil
			},
		},
	})

	res := run(t, s, `{ name }`, nil, map[string]any{"name": "ada"})
	require.Empty(t, res.Errors)
	if diff := cmp.Diff(map[string]any{"name": "ADA"}, res.Data); diff != "" {
		t.Fatalf("data mismatch (-want +got):\n%s", diff)
	}
}

func TestEnumInternalValues(t *testing.T) {
	s := mustExecutable(t, counterSDL, counterResolvers())
	require.Equal(t, "#FF0000", s.Types["Color"].EnumValue("RED").Value)

	res := run(t, s, `query($c: Color!) { favorite lit: isRed(color: RED) v: isRed(color: $c) }`,
		map[string]any{"c": "GREEN"}, nil)
	require.Empty(t, res.Errors)
	want := map[string]any{"favorite": "RED", "lit": true, "v": false}
	if diff := cmp.Diff(want, res.Data); diff != "" {
		t.Fatalf("data mismatch (-want +got):\n%s", diff)
	}
}

func TestEnumValueOutsideEnum(t *testing.T) {
	rm := counterResolvers()
	rm["Query"].(resolvers.TypeResolvers)["favorite"] = value("#0000FF")
	s := mustExecutable(t, counterSDL, rm)

	res := run(t, s, `{ favorite }`, nil, nil)
	require.Equal(t, []string{"enum Color cannot represent value: #0000FF"}, messages(res))
}

func TestArgumentDefaults(t *testing.T) {
	s := mustExecutable(t, counterSDL, counterResolvers())
	query := `query($n: String) { a: greet b: greet(name: $n) c: greet(name: "ada") }`

	res := run(t, s, query, nil, nil)
	require.Empty(t, res.Errors)
	want := map[string]any{"a": "hello world", "b": "hello world", "c": "hello ada"}
	if diff := cmp.Diff(want, res.Data); diff != "" {
		t.Fatalf("data mismatch (-want +got):\n%s", diff)
	}

	res = run(t, s, query, map[string]any{"n": "grace"}, nil)
	require.Empty(t, res.Errors)
	require.Equal(t, "hello grace", res.Data.(map[string]any)["b"])
}

func TestInputObjectVariables(t *testing.T) {
	s := mustExecutable(t, counterSDL, counterResolvers())
	query := `query($r: Range) { span(r: $r) }`

	tests := []struct {
		name    string
		vars    map[string]any
		want    any
		wantErr string
	}{
		{
			name: "field default",
			vars: map[string]any{"r": map[string]any{"min": 1}},
			want: map[string]any{"span": "1-10"},
		},
		{
			name: "explicit fields",
			vars: map[string]any{"r": map[string]any{"min": 1, "max": 3}},
			want: map[string]any{"span": "1-3"},
		},
		{
			name:    "missing required field",
			vars:    map[string]any{"r": map[string]any{"max": 3}},
			wantErr: `required field "min" of type Int! was not provided`,
		},
		{
			name:    "wrong leaf",
			vars:    map[string]any{"r": map[string]any{"min": "x"}},
			wantErr: "Int cannot represent",
		},
		{
			name:    "unknown field",
			vars:    map[string]any{"r": map[string]any{"min": 1, "step": 2}},
			wantErr: `field "step" is not defined by type Range`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := run(t, s, query, tt.vars, nil)
			if tt.wantErr != "" {
				require.Nil(t, res.Data)
				require.Len(t, res.Errors, 1)
				require.Contains(t, res.Errors[0].Message, tt.wantErr)
				return
			}
			require.Empty(t, res.Errors)
			if diff := cmp.Diff(tt.want, res.Data); diff != "" {
				t.Fatalf("data mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRequiredVariable(t *testing.T) {
	s := mustExecutable(t, counterSDL, counterResolvers())

	res := run(t, s, `query($c: Color!) { isRed(color: $c) }`, nil, nil)
	require.Equal(t, []string{"variable $c of required type Color! was not provided"}, messages(res))

	res = run(t, s, `query($c: Color!) { isRed(color: $c) }`, map[string]any{"c": nil}, nil)
	require.Equal(t, []string{"variable $c of non-null type Color! must not be null"}, messages(res))

	res = run(t, s, `query($c: Color = RED) { isRed(color: $c) }`, nil, nil)
	require.Empty(t, res.Errors)
	require.Equal(t, map[string]any{"isRed": true}, res.Data)
}

func TestRootResolveRunsOnce(t *testing.T) {
	calls := 0
	rm := resolvers.ResolverMap{
		resolvers.RootKey: func(p schema.ResolveParams) (any, error) {
			calls++
			require.Equal(t, "given", p.Source)
			return map[string]any{"count": 7, "other": 8}, nil
		},
	}
	s := mustExecutable(t, counterSDL, rm)

	res := run(t, s, `{ count other again: count }`, nil, "given")
	require.Empty(t, res.Errors)
	require.Equal(t, 1, calls)
	want := map[string]any{"count": 7, "other": 8, "again": 7}
	if diff := cmp.Diff(want, res.Data); diff != "" {
		t.Fatalf("data mismatch (-want +got):\n%s", diff)
	}
}

func TestMutationFieldsRunInOrder(t *testing.T) {
	var pushed []any
	rm := resolvers.ResolverMap{
		"Mutation": resolvers.TypeResolvers{
			"push": func(p schema.ResolveParams) (any, error) {
				pushed = append(pushed, p.Args["n"])
				return append([]any(nil), pushed...), nil
			},
		},
	}
	s := mustExecutable(t, counterSDL, rm)

	res := run(t, s, `mutation { a: push(n: 1) b: push(n: 2) c: push(n: 3) }`, nil, nil)
	require.Empty(t, res.Errors)
	want := map[string]any{
		"a": []any{1},
		"b": []any{1, 2},
		"c": []any{1, 2, 3},
	}
	if diff := cmp.Diff(want, res.Data); diff != "" {
		t.Fatalf("data mismatch (-want +got):\n%s", diff)
	}
}

func TestOperationSelection(t *testing.T) {
	s := mustExecutable(t, counterSDL, resolvers.ResolverMap{
		"Query": resolvers.TypeResolvers{"count": value(1), "other": value(2)},
	})
	doc := `query A { count } query B { other }`

	tests := []struct {
		name     string
		query    string
		opName   string
		wantData any
		wantErr  string
	}{
		{name: "named", query: doc, opName: "B", wantData: map[string]any{"other": 2}},
		{name: "ambiguous", query: doc, wantErr: "Must provide operation name if query contains multiple operations."},
		{name: "unknown", query: doc, opName: "C", wantErr: `Unknown operation named "C".`},
		{name: "none", query: `fragment F on Query { count }`, wantErr: "Must provide an operation."},
		{name: "subscription", query: `subscription { tick }`, wantErr: "subscription operations are not supported"},
		{name: "parse error", query: `{ count`, wantErr: "Expected Name"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Execute(context.Background(), Params{Schema: s, Query: tt.query, OperationName: tt.opName})
			if tt.wantErr != "" {
				require.Nil(t, res.Data)
				require.Len(t, res.Errors, 1)
				require.Contains(t, res.Errors[0].Message, tt.wantErr)
				return
			}
			require.Empty(t, res.Errors)
			if diff := cmp.Diff(tt.wantData, res.Data); diff != "" {
				t.Fatalf("data mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSyntaxErrorLocation(t *testing.T) {
	s := mustExecutable(t, counterSDL, nil)
	res := run(t, s, "{\n  count(", nil, nil)
	require.Nil(t, res.Data)
	require.Len(t, res.Errors, 1)
	require.Len(t, res.Errors[0].Locations, 1)
	require.Equal(t, 2, res.Errors[0].Locations[0].Line)
}

func TestMissingRootType(t *testing.T) {
	s := mustExecutable(t, `type Query { count: Int }`, nil)
	res := run(t, s, `mutation { push(n: 1) }`, nil, nil)
	require.Equal(t, []string{"Schema is not configured for mutation operations."}, messages(res))
}

func TestExecutorRunsParsedDocument(t *testing.T) {
	s := mustExecutable(t, counterSDL, resolvers.ResolverMap{
		"Query": resolvers.TypeResolvers{"count": value(3)},
	})
	doc := mustParseQuery(t, `{ count }`)

	res := NewExecutor(s).ExecuteRequest(context.Background(), doc, "", nil, nil)
	require.Empty(t, res.Errors)
	require.Equal(t, map[string]any{"count": 3}, res.Data)
}

func TestExecutePublishesEvents(t *testing.T) {
	eventbus.Use(eventbus.New())
	t.Cleanup(func() { eventbus.Use(nil) })

	var (
		started  []events.GraphQLStart
		finished []events.GraphQLFinish
		ids      []int64
	)
	defer eventbus.Subscribe(func(ctx context.Context, e events.GraphQLStart) {
		id, ok := reqid.FromContext(ctx)
		require.True(t, ok)
		ids = append(ids, id)
		started = append(started, e)
	})()
	defer eventbus.Subscribe(func(ctx context.Context, e events.GraphQLFinish) {
		id, ok := reqid.FromContext(ctx)
		require.True(t, ok)
		ids = append(ids, id)
		finished = append(finished, e)
	})()

	s := mustExecutable(t, counterSDL, nil)
	res := Execute(context.Background(), Params{Schema: s, Query: `query Q { nope }`, OperationName: "Q"})
	require.Len(t, res.Errors, 1)

	require.Len(t, started, 1)
	require.Equal(t, "query", started[0].OperationType)
	require.Equal(t, "Q", started[0].OperationName)
	require.False(t, started[0].RootResolve)
	require.Len(t, finished, 1)
	require.Len(t, finished[0].Errors, 1)
	require.Len(t, ids, 2)
	require.Equal(t, ids[0], ids[1])
}
