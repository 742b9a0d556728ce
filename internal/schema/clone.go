package schema

import "maps"

// Clone returns a copy of t that shares no mutable state with it. Hooks,
// type references and directive argument literals are shared since they are
// never mutated in place.
func (t *Type) Clone() *Type {
	c := *t
	c.Interfaces = cloneStrings(t.Interfaces)
	c.PossibleTypes = cloneStrings(t.PossibleTypes)
	c.Directives = cloneDirectives(t.Directives)
	if t.Fields != nil {
		c.Fields = make([]*Field, len(t.Fields))
		for i, f := range t.Fields {
			c.Fields[i] = f.Clone()
		}
	}
	if t.EnumValues != nil {
		c.EnumValues = make([]*EnumValue, len(t.EnumValues))
		for i, v := range t.EnumValues {
			ev := *v
			ev.Directives = cloneDirectives(v.Directives)
			c.EnumValues[i] = &ev
		}
	}
	c.InputFields = cloneInputValues(t.InputFields)
	if t.SpecifiedByURL != nil {
		u := *t.SpecifiedByURL
		c.SpecifiedByURL = &u
	}
	return &c
}

func (f *Field) Clone() *Field {
	c := *f
	c.Arguments = cloneInputValues(f.Arguments)
	c.Directives = cloneDirectives(f.Directives)
	if f.Extensions != nil {
		c.Extensions = maps.Clone(f.Extensions)
	}
	return &c
}

func (v *InputValue) Clone() *InputValue {
	c := *v
	c.Directives = cloneDirectives(v.Directives)
	return &c
}

func (d *Directive) Clone() *Directive {
	c := *d
	c.Locations = cloneStrings(d.Locations)
	c.Arguments = cloneInputValues(d.Arguments)
	return &c
}

// shallowCopy copies the schema header and maps; types and directives are
// shared with s.
func (s *Schema) shallowCopy() *Schema {
	return &Schema{
		QueryType:        s.QueryType,
		MutationType:     s.MutationType,
		SubscriptionType: s.SubscriptionType,
		Types:            maps.Clone(s.Types),
		Directives:       maps.Clone(s.Directives),
		Description:      s.Description,
		RootResolve:      s.RootResolve,
	}
}

func cloneInputValues(in []*InputValue) []*InputValue {
	if in == nil {
		return nil
	}
	out := make([]*InputValue, len(in))
	for i, v := range in {
		out[i] = v.Clone()
	}
	return out
}

func cloneDirectives(in []*AppliedDirective) []*AppliedDirective {
	if in == nil {
		return nil
	}
	out := make([]*AppliedDirective, len(in))
	for i, d := range in {
		c := *d
		c.Arguments = append([]*DirectiveArgument(nil), d.Arguments...)
		out[i] = &c
	}
	return out
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	return append([]string(nil), in...)
}
