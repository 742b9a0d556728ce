package schema

import (
	"fmt"
	"strings"

	language "github.com/hanpama/gqlkit/internal/language"
)

// BuildFromSDL parses and validates SDL and returns the corresponding Schema.
// The parsed document is kept as the schema's AST.
func BuildFromSDL(sdl string) (*Schema, error) {
	return BuildFromSource("schema.graphql", sdl)
}

// BuildFromSource is BuildFromSDL with an explicit source name used in
// error positions.
func BuildFromSource(name, sdl string) (*Schema, error) {
	loaded, err := language.LoadSchema(name, sdl)
	if err != nil {
		return nil, fmt.Errorf("load schema: %w", err)
	}
	doc, err := language.ParseSchema(name, sdl)
	if err != nil {
		return nil, fmt.Errorf("parse schema: %w", err)
	}
	s, err := BuildFromAST(loaded)
	if err != nil {
		return nil, err
	}
	s.ast = &astCache{load: func() (*language.SchemaDocument, error) { return doc, nil }}
	return s, nil
}

// BuildFromAST converts a validated gqlparser schema into a Schema.
// Prelude definitions are replaced by the builtins of NewSchema.
func BuildFromAST(src *language.Schema) (*Schema, error) {
	s := NewSchema(src.Description)
	if src.Query != nil {
		s.SetQueryType(src.Query.Name)
	}
	if src.Mutation != nil {
		s.SetMutationType(src.Mutation.Name)
	}
	if src.Subscription != nil {
		s.SetSubscriptionType(src.Subscription.Name)
	}

	for _, def := range src.Types {
		if def.BuiltIn || strings.HasPrefix(def.Name, "__") {
			continue
		}
		switch def.Kind {
		case language.Object:
			s.AddType(buildComposite(def, TypeKindObject))
		case language.Interface:
			s.AddType(buildComposite(def, TypeKindInterface))
		case language.Union:
			s.AddType(buildUnion(def))
		case language.Enum:
			s.AddType(buildEnum(def))
		case language.Scalar:
			s.AddType(buildScalar(def))
		case language.InputObject:
			s.AddType(buildInput(def))
		default:
			return nil, fmt.Errorf("type %q has unsupported kind %s", def.Name, def.Kind)
		}
	}
	for name, dir := range src.Directives {
		if IsSpecifiedDirective(name) {
			continue
		}
		s.AddDirective(buildDirective(dir))
	}

	// Defaults are parsed last so that enum and scalar types are all present.
	var firstErr error
	ForEachDefaultValue(s, func(ref *TypeRef, raw any) any {
		lit, ok := raw.(*language.Value)
		if !ok {
			return raw
		}
		v, err := ValueFromAST(s, ref, lit, nil)
		if err != nil && firstErr == nil {
			firstErr = fmt.Errorf("default value %s: %w", lit.String(), err)
		}
		return v
	})
	if firstErr != nil {
		return nil, firstErr
	}
	return s, nil
}

func buildComposite(def *language.Definition, kind TypeKind) *Type {
	t := NewType(def.Name, kind, def.Description)
	t.Interfaces = append(t.Interfaces, def.Interfaces...)
	t.Directives = buildAppliedDirectives(def.Directives)
	for _, fd := range def.Fields {
		if strings.HasPrefix(fd.Name, "__") {
			continue
		}
		t.AddField(buildField(fd))
	}
	return t
}

func buildField(def *language.FieldDefinition) *Field {
	f := NewField(def.Name, def.Description, buildTypeRef(def.Type))
	if reason, ok := deprecationReason(def.Directives); ok {
		f.Deprecate(reason)
	}
	f.Directives = buildAppliedDirectives(def.Directives)
	for _, arg := range def.Arguments {
		f.AddArgument(buildArgument(arg))
	}
	return f
}

func buildArgument(def *language.ArgumentDefinition) *InputValue {
	in := NewInputValue(def.Name, def.Description, buildTypeRef(def.Type))
	if def.DefaultValue != nil {
		in.SetDefault(def.DefaultValue)
	}
	if reason, ok := deprecationReason(def.Directives); ok {
		in.Deprecate(reason)
	}
	in.Directives = buildAppliedDirectives(def.Directives)
	return in
}

func buildInput(def *language.Definition) *Type {
	t := NewType(def.Name, TypeKindInputObject, def.Description)
	t.SetOneOf(def.Directives.ForName("oneOf") != nil)
	t.Directives = buildAppliedDirectives(def.Directives)
	for _, fd := range def.Fields {
		in := NewInputValue(fd.Name, fd.Description, buildTypeRef(fd.Type))
		if fd.DefaultValue != nil {
			in.SetDefault(fd.DefaultValue)
		}
		if reason, ok := deprecationReason(fd.Directives); ok {
			in.Deprecate(reason)
		}
		in.Directives = buildAppliedDirectives(fd.Directives)
		t.AddInputField(in)
	}
	return t
}

func buildEnum(def *language.Definition) *Type {
	t := NewType(def.Name, TypeKindEnum, def.Description)
	t.Directives = buildAppliedDirectives(def.Directives)
	for _, v := range def.EnumValues {
		e := NewEnumValue(v.Name, v.Description)
		if reason, ok := deprecationReason(v.Directives); ok {
			e.Deprecate(reason)
		}
		e.Directives = buildAppliedDirectives(v.Directives)
		t.AddEnumValue(e)
	}
	return t
}

func buildUnion(def *language.Definition) *Type {
	t := NewType(def.Name, TypeKindUnion, def.Description)
	t.Directives = buildAppliedDirectives(def.Directives)
	for _, name := range def.Types {
		t.AddPossibleType(name)
	}
	return t
}

func buildScalar(def *language.Definition) *Type {
	t := NewType(def.Name, TypeKindScalar, def.Description)
	if sb := def.Directives.ForName("specifiedBy"); sb != nil {
		if url := sb.Arguments.ForName("url"); url != nil && url.Value != nil {
			u := url.Value.Raw
			t.SpecifiedByURL = &u
		}
	}
	t.Directives = buildAppliedDirectives(def.Directives)
	return t
}

func buildDirective(def *language.DirectiveDefinition) *Directive {
	d := NewDirective(def.Name, def.Description).SetRepeatable(def.IsRepeatable)
	for _, loc := range def.Locations {
		d.AddLocation(string(loc))
	}
	for _, arg := range def.Arguments {
		d.AddArgument(buildArgument(arg))
	}
	return d
}

func buildTypeRef(t *language.Type) *TypeRef {
	if t == nil {
		return nil
	}
	var ref *TypeRef
	if t.Elem != nil {
		ref = ListType(buildTypeRef(t.Elem))
	} else {
		ref = NamedType(t.NamedType)
	}
	if t.NonNull {
		return NonNullType(ref)
	}
	return ref
}

// buildAppliedDirectives keeps user directives. deprecated, specifiedBy and
// oneOf are modelled as type system properties instead.
func buildAppliedDirectives(list language.DirectiveList) []*AppliedDirective {
	var out []*AppliedDirective
	for _, d := range list {
		switch d.Name {
		case "deprecated", "specifiedBy", "oneOf":
			continue
		}
		ad := &AppliedDirective{Name: d.Name}
		for _, arg := range d.Arguments {
			ad.Arguments = append(ad.Arguments, &DirectiveArgument{Name: arg.Name, Value: arg.Value})
		}
		out = append(out, ad)
	}
	return out
}

func deprecationReason(list language.DirectiveList) (string, bool) {
	d := list.ForName("deprecated")
	if d == nil {
		return "", false
	}
	if arg := d.Arguments.ForName("reason"); arg != nil && arg.Value != nil {
		return arg.Value.Raw, true
	}
	return "No longer supported", true
}
