package schema

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWalkWithoutMappersSharesTypes(t *testing.T) {
	s := mustBuild(t)
	out := Walk(s, Mappers{})

	require.NotSame(t, s, out)
	require.Equal(t, s.QueryType, out.QueryType)
	require.Len(t, out.Types, len(s.Types))
	for name, typ := range s.Types {
		require.Same(t, typ, out.Types[name], name)
	}
	require.False(t, out.HasAST())
}

func TestWalkCopyOnWrite(t *testing.T) {
	s := mustBuild(t)
	origTitle := s.Types["Book"].Field("title")

	out := Walk(s, Mappers{
		ObjectField: func(f *Field, fieldName, typeName string) *Field {
			if typeName != "Book" || fieldName != "title" {
				return nil
			}
			c := f.Clone()
			c.Description = "changed"
			return c
		},
	})

	require.NotSame(t, s.Types["Book"], out.Types["Book"])
	require.Same(t, origTitle, s.Types["Book"].Field("title"))
	require.Equal(t, "", origTitle.Description)
	require.Equal(t, "changed", out.Types["Book"].Field("title").Description)
	require.Same(t, s.Types["Book"].Field("id"), out.Types["Book"].Field("id"))
	require.Same(t, s.Types["Author"], out.Types["Author"])
}

func TestWalkFieldMapperPrecedence(t *testing.T) {
	s := mustBuild(t)
	var visited []string
	record := func(tag string) FieldMapper {
		return func(f *Field, fieldName, typeName string) *Field {
			visited = append(visited, tag+":"+typeName+"."+fieldName)
			return nil
		}
	}

	Walk(s, Mappers{CompositeField: record("composite"), InterfaceField: record("interface")})

	require.Contains(t, visited, "interface:Node.id")
	require.Contains(t, visited, "composite:Book.id")
	require.NotContains(t, visited, "composite:Node.id")
}

func TestWalkKindDispatch(t *testing.T) {
	s := mustBuild(t)
	seen := map[TypeKind][]string{}
	visit := func(t *Type) *Type {
		seen[t.Kind] = append(seen[t.Kind], t.Name)
		return nil
	}

	Walk(s, Mappers{Scalar: visit, Enum: visit, Union: visit, Object: visit, Interface: visit, InputObject: visit})

	require.Equal(t, []string{"Boolean", "DateTime", "Float", "ID", "Int", "String"}, seen[TypeKindScalar])
	require.Equal(t, []string{"Color"}, seen[TypeKindEnum])
	require.Equal(t, []string{"SearchResult"}, seen[TypeKindUnion])
	require.Equal(t, []string{"Author", "Book", "Mutation", "Root"}, seen[TypeKindObject])
	require.Equal(t, []string{"Node"}, seen[TypeKindInterface])
	require.Equal(t, []string{"BookFilter", "SearchInput"}, seen[TypeKindInputObject])
}

func TestWalkRenameRewritesReferences(t *testing.T) {
	s := mustBuild(t)
	rename := func(from, to string) TypeMapper {
		return func(t *Type) *Type {
			if t.Name != from {
				return nil
			}
			c := t.Clone()
			c.Name = to
			return c
		}
	}

	out := Walk(s, Mappers{
		Object: func(t *Type) *Type {
			if r := rename("Book", "Volume")(t); r != nil {
				return r
			}
			return rename("Root", "Query")(t)
		},
		Interface: rename("Node", "Entity"),
		Enum:      rename("Color", "Ink"),
	})

	require.Nil(t, out.Types["Book"])
	require.NotNil(t, out.Types["Volume"])
	require.Equal(t, "Query", out.QueryType)
	require.Equal(t, "Volume", out.Types["Volume"].Name)
	require.Equal(t, []string{"Entity"}, out.Types["Volume"].Interfaces)
	require.Equal(t, []string{"Volume", "Author"}, out.Types["SearchResult"].PossibleTypes)
	require.Equal(t, "[Volume!]!", out.Types["Author"].Field("books").Type.String())
	require.Equal(t, "Entity", out.Types["Query"].Field("node").Type.String())
	require.Equal(t, "Ink", out.Types["BookFilter"].InputField("color").Type.String())
	require.Equal(t, "[Ink!]", out.Types["BookFilter"].InputField("colors").Type.String())

	// The input schema keeps its names.
	require.Equal(t, "Root", s.QueryType)
	require.Equal(t, []string{"Node"}, s.Types["Book"].Interfaces)
	require.Equal(t, "[Book!]!", s.Types["Author"].Field("books").Type.String())
	require.Equal(t, "Color", s.Types["BookFilter"].InputField("color").Type.String())

	// Only types referring to a renamed type are copied.
	require.Same(t, s.Types["SearchInput"], out.Types["SearchInput"])
	require.NotSame(t, s.Types["Mutation"], out.Types["Mutation"])
	require.Same(t, s.Types["DateTime"], out.Types["DateTime"])

	_, err := BuildFromSDL(Render(out))
	require.NoError(t, err)
}

func TestWalkTypeMapperThenFieldMapper(t *testing.T) {
	s := mustBuild(t)

	out := Walk(s, Mappers{
		Object: func(t *Type) *Type {
			if t.Name != "Mutation" {
				return nil
			}
			c := *t
			c.Description = "writes"
			return &c
		},
		ObjectField: func(f *Field, fieldName, typeName string) *Field {
			if typeName != "Mutation" {
				return nil
			}
			c := f.Clone()
			c.Description = "field of " + typeName
			return c
		},
	})

	m := out.Types["Mutation"]
	require.Equal(t, "writes", m.Description)
	require.Equal(t, "field of Mutation", m.Field("rename").Description)
	require.Equal(t, "", s.Types["Mutation"].Description)
	require.Equal(t, "", s.Types["Mutation"].Field("rename").Description)
}

func TestWalkInputFields(t *testing.T) {
	s := mustBuild(t)

	out := Walk(s, Mappers{
		InputField: func(v *InputValue, fieldName, typeName string) *InputValue {
			if typeName != "BookFilter" || fieldName != "limit" {
				return nil
			}
			return v.Clone().SetDefault(50)
		},
	})

	require.Equal(t, 50, out.Types["BookFilter"].InputField("limit").DefaultValue)
	require.Equal(t, 10, s.Types["BookFilter"].InputField("limit").DefaultValue)
	require.Same(t, s.Types["SearchInput"], out.Types["SearchInput"])
}
