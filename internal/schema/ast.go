package schema

import (
	"errors"

	language "github.com/hanpama/gqlkit/internal/language"
)

// ErrNoAST is returned by AST accessors of a schema that was assembled
// programmatically and never passed through FixAST.
var ErrNoAST = errors.New("schema has no AST")

type FixASTOptions struct {
	// SourceName names the synthesized document in parse errors.
	SourceName string
	Render     RenderOptions
}

// FixAST attaches a lazily computed AST to s when it has none. The first
// call to AST prints s and parses the result; later calls return the cached
// document even if s has been modified in between.
func FixAST(s *Schema, opts FixASTOptions) *Schema {
	if s.ast != nil {
		return s
	}
	name := opts.SourceName
	if name == "" {
		name = "schema.graphql"
	}
	s.ast = &astCache{load: func() (*language.SchemaDocument, error) {
		return language.ParseSchema(name, RenderWithOptions(s, opts.Render))
	}}
	return s
}

// HasAST reports whether s carries an AST, computed or not.
func (s *Schema) HasAST() bool { return s.ast != nil }

// AST returns the schema document of s.
func (s *Schema) AST() (*language.SchemaDocument, error) {
	if s.ast == nil {
		return nil, ErrNoAST
	}
	s.ast.once.Do(func() {
		s.ast.doc, s.ast.err = s.ast.load()
	})
	return s.ast.doc, s.ast.err
}

// ExtensionAST returns the type extensions of the schema document.
func (s *Schema) ExtensionAST() (language.DefinitionList, error) {
	doc, err := s.AST()
	if err != nil {
		return nil, err
	}
	return doc.Extensions, nil
}
