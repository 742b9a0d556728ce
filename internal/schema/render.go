package schema

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// RenderOptions tunes Render output.
type RenderOptions struct {
	OmitDescriptions bool
	OmitDirectives   bool
}

// Render produces SDL from the Schema.
// Deterministic ordering: type/directive names sorted lexicographically.
func Render(s *Schema) string {
	return RenderWithOptions(s, RenderOptions{})
}

// RenderWithOptions is Render with output options.
func RenderWithOptions(s *Schema, opts RenderOptions) string {
	if s == nil {
		return ""
	}
	r := &renderer{s: s, opts: opts}
	b := &r.b

	if s.hasCustomRoots() {
		r.renderSchemaBlock()
	}

	// Specified scalars are implied by every schema
	typeNames := make([]string, 0, len(s.Types))
	for _, name := range sortedTypeNames(s) {
		if IsSpecifiedScalar(name) {
			continue
		}
		typeNames = append(typeNames, name)
	}

	for _, name := range typeNames {
		typ := s.Types[name]
		switch typ.Kind {
		case TypeKindScalar:
			r.renderScalar(typ)
		case TypeKindEnum:
			r.renderEnum(typ)
		case TypeKindInputObject:
			r.renderInputObject(typ)
		case TypeKindObject:
			r.renderComposite("type", typ)
		case TypeKindInterface:
			r.renderComposite("interface", typ)
		case TypeKindUnion:
			r.renderUnion(typ)
		}
	}

	for _, name := range sortedDirectiveNames(s) {
		if IsSpecifiedDirective(name) {
			continue
		}
		r.renderDirective(s.Directives[name])
	}

	return strings.TrimRight(b.String(), "\n") + "\n"
}

// hasCustomRoots reports whether root operation types differ from the
// conventional names, which requires an explicit schema block.
func (s *Schema) hasCustomRoots() bool {
	if s.QueryType != "" && s.QueryType != "Query" {
		return true
	}
	if s.MutationType != "" && s.MutationType != "Mutation" {
		return true
	}
	if s.SubscriptionType != "" && s.SubscriptionType != "Subscription" {
		return true
	}
	// A type named like a root that is not one must not be picked up as one.
	for _, name := range []string{"Query", "Mutation", "Subscription"} {
		if _, ok := s.Types[name]; ok && s.QueryType != name && s.MutationType != name && s.SubscriptionType != name {
			return true
		}
	}
	return false
}

type renderer struct {
	s    *Schema
	opts RenderOptions
	b    strings.Builder
}

// ----- render helpers -----

func (r *renderer) renderSchemaBlock() {
	r.renderDescription(r.s.Description, "")
	r.b.WriteString("schema {\n")
	for _, root := range []struct{ op, name string }{
		{"query", r.s.QueryType},
		{"mutation", r.s.MutationType},
		{"subscription", r.s.SubscriptionType},
	} {
		if root.name == "" {
			continue
		}
		fmt.Fprintf(&r.b, "  %s: %s\n", root.op, root.name)
	}
	r.b.WriteString("}\n\n")
}

func (r *renderer) renderDescription(desc, indent string) {
	if desc == "" || r.opts.OmitDescriptions {
		return
	}
	r.b.WriteString(indent)
	r.b.WriteString("\"\"\"\n")
	for _, line := range strings.Split(strings.ReplaceAll(desc, `"""`, `\"""`), "\n") {
		if line != "" {
			r.b.WriteString(indent)
		}
		r.b.WriteString(line)
		r.b.WriteString("\n")
	}
	r.b.WriteString(indent)
	r.b.WriteString("\"\"\"\n")
}

func (r *renderer) renderDeprecation(deprecated bool, reason string) {
	if !deprecated {
		return
	}
	r.b.WriteString(" @deprecated")
	if reason != "" && reason != "No longer supported" {
		r.b.WriteString("(reason: ")
		r.b.WriteString(strconv.Quote(reason))
		r.b.WriteString(")")
	}
}

func (r *renderer) renderApplied(list []*AppliedDirective) {
	if r.opts.OmitDirectives {
		return
	}
	for _, d := range list {
		r.b.WriteString(" @")
		r.b.WriteString(d.Name)
		if len(d.Arguments) == 0 {
			continue
		}
		r.b.WriteString("(")
		for i, arg := range d.Arguments {
			if i > 0 {
				r.b.WriteString(", ")
			}
			r.b.WriteString(arg.Name)
			r.b.WriteString(": ")
			if arg.Value == nil {
				r.b.WriteString("null")
			} else {
				r.b.WriteString(arg.Value.String())
			}
		}
		r.b.WriteString(")")
	}
}

func (r *renderer) renderScalar(typ *Type) {
	r.renderDescription(typ.Description, "")
	r.b.WriteString("scalar ")
	r.b.WriteString(typ.Name)
	if typ.SpecifiedByURL != nil {
		r.b.WriteString(" @specifiedBy(url: ")
		r.b.WriteString(strconv.Quote(*typ.SpecifiedByURL))
		r.b.WriteString(")")
	}
	r.renderApplied(typ.Directives)
	r.b.WriteString("\n\n")
}

func (r *renderer) renderEnum(typ *Type) {
	r.renderDescription(typ.Description, "")
	r.b.WriteString("enum ")
	r.b.WriteString(typ.Name)
	r.renderApplied(typ.Directives)
	r.b.WriteString(" {\n")
	for _, val := range typ.EnumValues {
		r.renderDescription(val.Description, "  ")
		r.b.WriteString("  ")
		r.b.WriteString(val.Name)
		r.renderDeprecation(val.IsDeprecated, val.DeprecationReason)
		r.renderApplied(val.Directives)
		r.b.WriteString("\n")
	}
	r.b.WriteString("}\n\n")
}

func (r *renderer) renderInputObject(typ *Type) {
	r.renderDescription(typ.Description, "")
	r.b.WriteString("input ")
	r.b.WriteString(typ.Name)
	if typ.OneOf {
		r.b.WriteString(" @oneOf")
	}
	r.renderApplied(typ.Directives)
	r.b.WriteString(" {\n")
	for _, field := range typ.InputFields {
		r.renderDescription(field.Description, "  ")
		r.b.WriteString("  ")
		r.renderInputValue(field)
		r.b.WriteString("\n")
	}
	r.b.WriteString("}\n\n")
}

func (r *renderer) renderComposite(keyword string, typ *Type) {
	r.renderDescription(typ.Description, "")
	r.b.WriteString(keyword)
	r.b.WriteString(" ")
	r.b.WriteString(typ.Name)
	if len(typ.Interfaces) > 0 {
		r.b.WriteString(" implements ")
		r.b.WriteString(strings.Join(typ.Interfaces, " & "))
	}
	r.renderApplied(typ.Directives)
	r.b.WriteString(" {\n")
	for _, field := range typ.Fields {
		r.renderField(field)
	}
	r.b.WriteString("}\n\n")
}

func (r *renderer) renderUnion(typ *Type) {
	r.renderDescription(typ.Description, "")
	r.b.WriteString("union ")
	r.b.WriteString(typ.Name)
	r.renderApplied(typ.Directives)
	if len(typ.PossibleTypes) > 0 {
		r.b.WriteString(" = ")
		r.b.WriteString(strings.Join(typ.PossibleTypes, " | "))
	}
	r.b.WriteString("\n\n")
}

func (r *renderer) renderField(field *Field) {
	r.renderDescription(field.Description, "  ")
	r.b.WriteString("  ")
	r.b.WriteString(field.Name)
	r.renderArguments(field.Arguments)
	r.b.WriteString(": ")
	r.b.WriteString(renderTypeRef(field.Type))
	r.renderDeprecation(field.IsDeprecated, field.DeprecationReason)
	r.renderApplied(field.Directives)
	r.b.WriteString("\n")
}

func (r *renderer) renderArguments(args []*InputValue) {
	if len(args) == 0 {
		return
	}
	r.b.WriteString("(")
	for i, arg := range args {
		if i > 0 {
			r.b.WriteString(", ")
		}
		if arg.Description != "" && !r.opts.OmitDescriptions {
			r.b.WriteString(strconv.Quote(arg.Description))
			r.b.WriteString(" ")
		}
		r.renderInputValue(arg)
	}
	r.b.WriteString(")")
}

func (r *renderer) renderInputValue(in *InputValue) {
	r.b.WriteString(in.Name)
	r.b.WriteString(": ")
	r.b.WriteString(renderTypeRef(in.Type))
	if in.DefaultValue != nil {
		r.b.WriteString(" = ")
		r.b.WriteString(r.renderDefault(in.Type, in.DefaultValue))
	}
	r.renderDeprecation(in.IsDeprecated, in.DeprecationReason)
	r.renderApplied(in.Directives)
}

func (r *renderer) renderDirective(directive *Directive) {
	r.renderDescription(directive.Description, "")
	r.b.WriteString("directive @")
	r.b.WriteString(directive.Name)
	r.renderArguments(directive.Arguments)
	if directive.IsRepeatable {
		r.b.WriteString(" repeatable")
	}
	r.b.WriteString(" on ")
	r.b.WriteString(strings.Join(directive.Locations, " | "))
	r.b.WriteString("\n\n")
}

// FormatDefaultValue prints the internal input value of type ref as a
// GraphQL literal, the way Render prints default values.
func FormatDefaultValue(s *Schema, ref *TypeRef, value any) string {
	r := &renderer{s: s}
	return r.renderDefault(ref, value)
}

// renderDefault prints an internal default value as a literal of ref.
// Values the current types cannot serialize are printed untyped.
func (r *renderer) renderDefault(ref *TypeRef, value any) string {
	external, err := SerializeInputValue(r.s, ref, value)
	if err != nil {
		return renderValue(value)
	}
	return r.renderLiteral(ref, external)
}

func (r *renderer) renderLiteral(ref *TypeRef, value any) string {
	if value == nil {
		return "null"
	}
	switch ref.Kind {
	case TypeRefKindNonNull:
		return r.renderLiteral(ref.OfType, value)
	case TypeRefKindList:
		items, ok := asList(value)
		if !ok {
			return r.renderLiteral(ref.OfType, value)
		}
		parts := make([]string, len(items))
		for i, item := range items {
			parts[i] = r.renderLiteral(ref.OfType, item)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	}
	t := r.s.Types[ref.Named]
	if t == nil {
		return renderValue(value)
	}
	switch t.Kind {
	case TypeKindEnum:
		if name, ok := value.(string); ok {
			return name
		}
	case TypeKindInputObject:
		obj, ok := value.(map[string]any)
		if !ok {
			break
		}
		var parts []string
		for _, in := range t.InputFields {
			v, present := obj[in.Name]
			if !present {
				continue
			}
			parts = append(parts, in.Name+": "+r.renderLiteral(in.Type, v))
		}
		return "{" + strings.Join(parts, ", ") + "}"
	}
	return renderValue(value)
}

func renderTypeRef(typeRef *TypeRef) string {
	if typeRef == nil {
		return ""
	}

	switch typeRef.Kind {
	case TypeRefKindNamed:
		return typeRef.Named
	case TypeRefKindList:
		return "[" + renderTypeRef(typeRef.OfType) + "]"
	case TypeRefKindNonNull:
		return renderTypeRef(typeRef.OfType) + "!"
	default:
		return ""
	}
}

// renderValue renders a value without type information.
func renderValue(value any) string {
	if value == nil {
		return "null"
	}

	switch v := value.(type) {
	case string:
		return strconv.Quote(v)
	case int:
		return strconv.Itoa(v)
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case int64:
		return strconv.FormatInt(v, 10)
	case float32:
		return strconv.FormatFloat(float64(v), 'g', -1, 32)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case []any:
		parts := make([]string, len(v))
		for i, item := range v {
			parts[i] = renderValue(item)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = k + ": " + renderValue(v[k])
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return fmt.Sprint(v)
	}
}
