// Package introspection adds the GraphQL introspection system to a schema.
package introspection

import (
	"fmt"
	"sort"
	"strings"

	schema "github.com/hanpama/gqlkit/internal/schema"
)

// Extend returns a copy of s that answers introspection queries. The query
// type gains the __schema and __type fields and the __ types are added. s is
// not modified.
func Extend(s *schema.Schema) *schema.Schema {
	var out *schema.Schema
	if s.GetQueryType() != nil {
		out = schema.AppendObjectFields(s, s.QueryType, schema.FieldMap{schemaField(), typeField()})
	} else {
		out = schema.Walk(s, schema.Mappers{})
	}
	for _, t := range types() {
		out.AddType(t)
	}
	return out
}

func schemaField() *schema.Field {
	f := schema.NewField("__schema", "Access the current type schema of this server.",
		schema.NonNullType(schema.NamedType("__Schema")))
	return f.SetResolve(func(p schema.ResolveParams) (any, error) {
		return p.Info.Schema, nil
	})
}

func typeField() *schema.Field {
	f := schema.NewField("__type", "Request the type information of a single type.", schema.NamedType("__Type"))
	f.AddArgument(schema.NewInputValue("name", "The name of the type to look up.",
		schema.NonNullType(schema.NamedType("String"))))
	return f.SetResolve(func(p schema.ResolveParams) (any, error) {
		name, _ := p.Args["name"].(string)
		if t := p.Info.Schema.Types[name]; t != nil {
			return t, nil
		}
		return nil, nil
	})
}

// resolve resolves every field of the __ types by the kind of its source.
func resolve(p schema.ResolveParams) (any, error) {
	s, field, args := p.Info.Schema, p.Info.FieldName, p.Args
	var (
		v  any
		ok bool
	)
	switch src := p.Source.(type) {
	case *schema.Schema:
		v, ok = resolveSchemaField(src, field)
	case *schema.Type:
		v, ok = resolveTypeField(s, src, field, args)
	case *schema.TypeRef:
		v, ok = resolveTypeRefField(s, src, field, args)
	case *schema.Field:
		v, ok = resolveFieldField(src, field, args)
	case *schema.InputValue:
		v, ok = resolveInputValueField(s, src, field)
	case *schema.EnumValue:
		v, ok = resolveEnumValueField(src, field)
	case *schema.Directive:
		v, ok = resolveDirectiveField(src, field, args)
	}
	if !ok {
		return nil, fmt.Errorf("introspection: cannot resolve %s on %T", field, p.Source)
	}
	return v, nil
}

func resolveSchemaTypes(s *schema.Schema) []*schema.Type {
	out := make([]*schema.Type, 0, len(s.Types))
	for _, t := range s.Types {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func resolveSchemaDirectives(s *schema.Schema) []*schema.Directive {
	dirs := make([]*schema.Directive, 0, len(s.Directives))
	for _, d := range s.Directives {
		dirs = append(dirs, d)
	}
	sort.Slice(dirs, func(i, j int) bool { return dirs[i].Name < dirs[j].Name })
	return dirs
}

func resolveTypeFields(t *schema.Type, args map[string]any) []*schema.Field {
	if t.Kind != schema.TypeKindObject && t.Kind != schema.TypeKindInterface {
		return nil
	}
	includeDeprecated := boolArg(args, "includeDeprecated")
	out := []*schema.Field{}
	for _, f := range t.Fields {
		if strings.HasPrefix(f.Name, "__") || (!includeDeprecated && f.IsDeprecated) {
			continue
		}
		out = append(out, f)
	}
	return out
}

func resolveTypeInterfaces(s *schema.Schema, t *schema.Type) []*schema.Type {
	if t.Kind != schema.TypeKindObject && t.Kind != schema.TypeKindInterface {
		return nil
	}
	out := make([]*schema.Type, 0, len(t.Interfaces))
	for _, name := range t.Interfaces {
		if def := s.Types[name]; def != nil {
			out = append(out, def)
		}
	}
	return out
}

func resolveTypePossibleTypes(s *schema.Schema, t *schema.Type) []*schema.Type {
	if !t.IsAbstract() {
		return nil
	}
	pts := schema.PossibleTypes(s, t)
	sort.Slice(pts, func(i, j int) bool { return pts[i].Name < pts[j].Name })
	return pts
}

func resolveTypeEnumValues(t *schema.Type, args map[string]any) []*schema.EnumValue {
	if t.Kind != schema.TypeKindEnum {
		return nil
	}
	includeDeprecated := boolArg(args, "includeDeprecated")
	out := []*schema.EnumValue{}
	for _, ev := range t.EnumValues {
		if !includeDeprecated && ev.IsDeprecated {
			continue
		}
		out = append(out, ev)
	}
	return out
}

func resolveTypeInputFields(t *schema.Type, args map[string]any) []*schema.InputValue {
	if t.Kind != schema.TypeKindInputObject {
		return nil
	}
	return filterDeprecated(t.InputFields, boolArg(args, "includeDeprecated"))
}

func filterDeprecated(in []*schema.InputValue, includeDeprecated bool) []*schema.InputValue {
	out := []*schema.InputValue{}
	for _, a := range in {
		if !includeDeprecated && a.IsDeprecated {
			continue
		}
		out = append(out, a)
	}
	return out
}

func deprecationReason(deprecated bool, reason string) any {
	if deprecated {
		return reason
	}
	return nil
}

// nullable maps an empty description to null.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func resolveSchemaField(s *schema.Schema, field string) (any, bool) {
	switch field {
	case "types":
		return resolveSchemaTypes(s), true
	case "queryType":
		return s.GetQueryType(), true
	case "mutationType":
		return s.GetMutationType(), true
	case "subscriptionType":
		return s.GetSubscriptionType(), true
	case "directives":
		return resolveSchemaDirectives(s), true
	case "description":
		return nullable(s.Description), true
	}
	return nil, false
}

func resolveTypeField(s *schema.Schema, t *schema.Type, field string, args map[string]any) (any, bool) {
	switch field {
	case "kind":
		return string(t.Kind), true
	case "name":
		return t.Name, true
	case "description":
		return nullable(t.Description), true
	case "specifiedByURL":
		if t.SpecifiedByURL == nil {
			return nil, true
		}
		return *t.SpecifiedByURL, true
	case "fields":
		return resolveTypeFields(t, args), true
	case "interfaces":
		return resolveTypeInterfaces(s, t), true
	case "possibleTypes":
		return resolveTypePossibleTypes(s, t), true
	case "enumValues":
		return resolveTypeEnumValues(t, args), true
	case "inputFields":
		return resolveTypeInputFields(t, args), true
	case "isOneOf":
		return t.OneOf, true
	case "ofType":
		// Wrappers are TypeRef nodes, so named types never have ofType.
		return nil, true
	}
	return nil, false
}

func resolveTypeRefField(s *schema.Schema, tr *schema.TypeRef, field string, args map[string]any) (any, bool) {
	if tr.Kind == schema.TypeRefKindNamed {
		def := s.Types[tr.Named]
		if def == nil {
			return nil, true
		}
		return resolveTypeField(s, def, field, args)
	}
	// LIST and NON_NULL have a kind and ofType and nothing else.
	switch field {
	case "kind":
		return string(tr.Kind), true
	case "ofType":
		return tr.OfType, true
	}
	return nil, true
}

func resolveFieldField(f *schema.Field, field string, args map[string]any) (any, bool) {
	switch field {
	case "name":
		return f.Name, true
	case "description":
		return nullable(f.Description), true
	case "args":
		return filterDeprecated(f.Arguments, boolArg(args, "includeDeprecated")), true
	case "type":
		return f.Type, true
	case "isDeprecated":
		return f.IsDeprecated, true
	case "deprecationReason":
		return deprecationReason(f.IsDeprecated, f.DeprecationReason), true
	}
	return nil, false
}

func resolveInputValueField(s *schema.Schema, a *schema.InputValue, field string) (any, bool) {
	switch field {
	case "name":
		return a.Name, true
	case "description":
		return nullable(a.Description), true
	case "type":
		return a.Type, true
	case "defaultValue":
		if a.DefaultValue == nil {
			return nil, true
		}
		return schema.FormatDefaultValue(s, a.Type, a.DefaultValue), true
	case "isDeprecated":
		return a.IsDeprecated, true
	case "deprecationReason":
		return deprecationReason(a.IsDeprecated, a.DeprecationReason), true
	}
	return nil, false
}

func resolveEnumValueField(ev *schema.EnumValue, field string) (any, bool) {
	switch field {
	case "name":
		return ev.Name, true
	case "description":
		return nullable(ev.Description), true
	case "isDeprecated":
		return ev.IsDeprecated, true
	case "deprecationReason":
		return deprecationReason(ev.IsDeprecated, ev.DeprecationReason), true
	}
	return nil, false
}

func resolveDirectiveField(d *schema.Directive, field string, args map[string]any) (any, bool) {
	switch field {
	case "name":
		return d.Name, true
	case "description":
		return nullable(d.Description), true
	case "isRepeatable":
		return d.IsRepeatable, true
	case "locations":
		locs := make([]string, len(d.Locations))
		copy(locs, d.Locations)
		return locs, true
	case "args":
		return filterDeprecated(d.Arguments, boolArg(args, "includeDeprecated")), true
	}
	return nil, false
}

func boolArg(args map[string]any, name string) bool {
	b, _ := args[name].(bool)
	return b
}
