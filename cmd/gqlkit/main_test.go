package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	schema "github.com/hanpama/gqlkit/internal/schema"
	"github.com/stretchr/testify/require"
)

const testSDL = `
"""Entry point."""
type Query {
  greeting: String
  user: User
}

type User {
  id: ID
  name: String
  nickname: String
}
`

const testManifest = `
types:
  Query:
    greeting: hello
    user:
      id: "1"
      name: ada
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := run(args, &stdout, &stderr)
	return stdout.String(), err
}

func TestPrint(t *testing.T) {
	path := writeFile(t, "schema.graphql", testSDL)

	out, err := runCmd(t, "print", "--schema", path)
	require.NoError(t, err)
	require.Contains(t, out, "type Query {")
	require.Contains(t, out, "Entry point.")

	out, err = runCmd(t, "print", "--schema", path, "--omit-descriptions")
	require.NoError(t, err)
	require.NotContains(t, out, "Entry point.")

	out, err = runCmd(t, "print", "--schema", path, "--ast")
	require.NoError(t, err)
	require.Contains(t, out, "type User")
}

func TestPrintToFile(t *testing.T) {
	path := writeFile(t, "schema.graphql", testSDL)
	dst := filepath.Join(t.TempDir(), "out.graphql")

	out, err := runCmd(t, "print", "--schema", path, "--out", dst)
	require.NoError(t, err)
	require.Empty(t, out)

	written, err := os.ReadFile(dst)
	require.NoError(t, err)
	require.Contains(t, string(written), "type User {")
}

func TestSchemaRequired(t *testing.T) {
	_, err := runCmd(t, "print")
	require.EqualError(t, err, "--schema is required")
}

func TestSchemaFromEnvironment(t *testing.T) {
	t.Setenv("GQLKIT_SCHEMA", writeFile(t, "schema.graphql", testSDL))

	out, err := runCmd(t, "print")
	require.NoError(t, err)
	require.Contains(t, out, "type Query {")
}

func TestSchemaFromConfigFile(t *testing.T) {
	schemaPath := writeFile(t, "schema.graphql", testSDL)
	cfg := writeFile(t, "gqlkit.yaml", "schema: "+schemaPath+"\nmatch: \"n*\"\ntype: User\n")

	out, err := runCmd(t, "--config", cfg, "fields", "select")
	require.NoError(t, err)
	require.Equal(t, "name: String\nnickname: String\n", out)
}

func TestCheck(t *testing.T) {
	schemaPath := writeFile(t, "schema.graphql", testSDL)

	tests := []struct {
		name     string
		manifest string
		args     []string
		wantOut  []string
		wantErr  string
	}{
		{
			name:     "ok",
			manifest: testManifest,
			wantOut:  []string{"ok: 1 types"},
		},
		{
			name:     "ok in place",
			manifest: testManifest,
			args:     []string{"--in-place"},
			wantOut:  []string{"ok: 1 types"},
		},
		{
			name:     "unknown type",
			manifest: "types:\n  Ghost:\n    boo: 1\n  User:\n    age: 3\n",
			wantOut: []string{
				`"Ghost" defined in resolvers, but not in schema`,
				`User.age defined in resolvers, but not in schema`,
			},
			wantErr: "2 problem(s) found",
		},
		{
			name:     "unknown type allowed",
			manifest: "types:\n  Ghost:\n    boo: 1\n",
			args:     []string{"--allow-resolvers-not-in-schema"},
			wantOut:  []string{"ok: 1 types"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := writeFile(t, "resolvers.yaml", tt.manifest)
			args := append([]string{"check", "--schema", schemaPath, "--resolvers", m}, tt.args...)

			out, err := runCmd(t, args...)
			if tt.wantErr != "" {
				require.EqualError(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			for _, want := range tt.wantOut {
				require.Contains(t, out, want)
			}
		})
	}
}

func TestCheckAbstractTypes(t *testing.T) {
	schemaPath := writeFile(t, "schema.graphql", `
type Query { node: Node }
interface Node { id: ID }
type User implements Node { id: ID }
`)
	m := writeFile(t, "resolvers.yaml", "types:\n  Query:\n    node: null\n")

	_, err := runCmd(t, "check", "--schema", schemaPath, "--resolvers", m, "--resolve-type", "error")
	require.Error(t, err)

	ok := writeFile(t, "resolvers.yaml", "types:\n  Node:\n    __resolveType: User\n")
	out, err := runCmd(t, "check", "--schema", schemaPath, "--resolvers", ok, "--resolve-type", "error")
	require.NoError(t, err)
	require.Contains(t, out, "ok")

	_, err = runCmd(t, "check", "--schema", schemaPath, "--resolvers", m, "--resolve-type", "sometimes")
	require.Error(t, err)
}

func TestFields(t *testing.T) {
	path := writeFile(t, "schema.graphql", testSDL)

	out, err := runCmd(t, "fields", "select", "--schema", path, "--type", "User", "--match", "n*")
	require.NoError(t, err)
	require.Equal(t, "name: String\nnickname: String\n", out)

	out, err = runCmd(t, "fields", "remove", "--schema", path, "--type", "User", "--match", "nick*")
	require.NoError(t, err)
	require.Contains(t, out, "name: String")
	require.NotContains(t, out, "nickname")

	out, err = runCmd(t, "fields", "remove", "--schema", path, "--type", "User", "--match", "nick*", "--ast")
	require.NoError(t, err)
	require.Contains(t, out, "type User")
	require.Contains(t, out, "name: String")
	require.NotContains(t, out, "nickname")

	_, err = runCmd(t, "fields", "select", "--schema", path, "--type", "String")
	require.EqualError(t, err, `"String" is not an object type`)

	_, err = runCmd(t, "fields", "select", "--schema", path, "--match", "[")
	require.Error(t, err)
}

func TestQuery(t *testing.T) {
	schemaPath := writeFile(t, "schema.graphql", testSDL)
	m := writeFile(t, "resolvers.yaml", testManifest)

	out, err := runCmd(t, "query",
		"--schema", schemaPath,
		"--resolvers", m,
		"--query", `query Q($n: Boolean!) { greeting user @include(if: $n) { id name } __type(name: "User") { name } }`,
		"--variables", `{"n": true}`,
	)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	want := map[string]any{
		"data": map[string]any{
			"greeting": "hello",
			"user":     map[string]any{"id": "1", "name": "ada"},
			"__type":   map[string]any{"name": "User"},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("result mismatch (-want +got):\n%s", diff)
	}
}

func TestQueryWithoutIntrospection(t *testing.T) {
	schemaPath := writeFile(t, "schema.graphql", testSDL)
	q := writeFile(t, "query.graphql", `{ __schema { queryType { name } } }`)

	out, err := runCmd(t, "query", "--schema", schemaPath, "--query", "@"+q, "--introspection=false")
	require.NoError(t, err)

	var got struct {
		Data   any
		Errors []struct{ Message string }
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Equal(t, map[string]any{}, got.Data)
	require.Len(t, got.Errors, 1)
	require.Equal(t, `Cannot query field "__schema" on type "Query".`, got.Errors[0].Message)
}

func TestHookNamedFields(t *testing.T) {
	schemaPath := writeFile(t, "schema.graphql", `
type Query {
  resolveType: String
  isTypeOf: Boolean
  serialize: String
}
`)
	m := writeFile(t, "resolvers.yaml", "types:\n  Query:\n    resolveType: x\n    isTypeOf: true\n    serialize: s\n")

	out, err := runCmd(t, "check", "--schema", schemaPath, "--resolvers", m)
	require.NoError(t, err)
	require.Contains(t, out, "ok: 1 types")

	out, err = runCmd(t, "query", "--schema", schemaPath, "--resolvers", m,
		"--query", "{ resolveType isTypeOf serialize }")
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	want := map[string]any{"data": map[string]any{"resolveType": "x", "isTypeOf": true, "serialize": "s"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("result mismatch (-want +got):\n%s", diff)
	}
}

func TestStub(t *testing.T) {
	_, ok := stub(schema.TypeKindObject, "resolveType", "x").(func(schema.ResolveParams) (any, error))
	require.True(t, ok)

	_, ok = stub(schema.TypeKindInterface, "__resolveType", "User").(func(schema.ResolveTypeParams) (string, error))
	require.True(t, ok)

	_, ok = stub(schema.TypeKindObject, "__isTypeOf", true).(func(schema.IsTypeOfParams) bool)
	require.True(t, ok)

	_, ok = stub(schema.TypeKindScalar, "serialize", nil).(func(any) (any, error))
	require.True(t, ok)

	require.Equal(t, "#FF0000", stub(schema.TypeKindEnum, "RED", "#FF0000"))
	require.Equal(t, "Color enum", stub(schema.TypeKindObject, "__description", "Color enum"))
}
