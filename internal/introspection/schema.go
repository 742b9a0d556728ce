package introspection

import (
	schema "github.com/hanpama/gqlkit/internal/schema"
)

var (
	named   = schema.NamedType
	nonNull = schema.NonNullType
	list    = schema.ListType
)

// types returns fresh instances of the introspection types.
func types() []*schema.Type {
	return []*schema.Type{
		schemaType(),
		typeType(),
		fieldType(),
		inputValueType(),
		enumValueType(),
		directiveType(),
		enumType("__TypeKind", "An enum describing what kind of type a given `__Type` is.", typeKinds),
		enumType("__DirectiveLocation", "A Directive can be adjacent to many parts of the GraphQL language.", directiveLocations),
	}
}

func object(name, description string, fields ...*schema.Field) *schema.Type {
	t := schema.NewType(name, schema.TypeKindObject, description)
	for _, f := range fields {
		t.AddField(f.SetResolve(resolve))
	}
	return t
}

func field(name string, typ *schema.TypeRef, description string) *schema.Field {
	return schema.NewField(name, description, typ)
}

// withIncludeDeprecated adds the includeDeprecated argument to f.
func withIncludeDeprecated(f *schema.Field) *schema.Field {
	return f.AddArgument(schema.NewInputValue("includeDeprecated", "", named("Boolean")).SetDefault(false))
}

func listOf(name string) *schema.TypeRef { return list(nonNull(named(name))) }

func schemaType() *schema.Type {
	return object("__Schema", "A GraphQL Schema defines the capabilities of a GraphQL server.",
		field("description", named("String"), ""),
		field("types", nonNull(listOf("__Type")), "A list of all types supported by this server."),
		field("queryType", nonNull(named("__Type")), "The type that query operations will be rooted at."),
		field("mutationType", named("__Type"), "If this server supports mutation, the type that mutation operations will be rooted at."),
		field("subscriptionType", named("__Type"), "If this server support subscription, the type that subscription operations will be rooted at."),
		field("directives", nonNull(listOf("__Directive")), "A list of all directives supported by this server."),
	)
}

func typeType() *schema.Type {
	return object("__Type", "The fundamental unit of any GraphQL Schema is the type.",
		field("kind", nonNull(named("__TypeKind")), ""),
		field("name", named("String"), ""),
		field("description", named("String"), ""),
		field("specifiedByURL", named("String"), ""),
		withIncludeDeprecated(field("fields", listOf("__Field"), "")),
		field("interfaces", listOf("__Type"), ""),
		field("possibleTypes", listOf("__Type"), ""),
		withIncludeDeprecated(field("enumValues", listOf("__EnumValue"), "")),
		withIncludeDeprecated(field("inputFields", listOf("__InputValue"), "")),
		field("ofType", named("__Type"), ""),
		field("isOneOf", named("Boolean"), ""),
	)
}

func fieldType() *schema.Type {
	return object("__Field", "Object and Interface types are described by a list of Fields, each of which has a name, potentially a list of arguments, and a return type.",
		field("name", nonNull(named("String")), ""),
		field("description", named("String"), ""),
		withIncludeDeprecated(field("args", nonNull(listOf("__InputValue")), "")),
		field("type", nonNull(named("__Type")), ""),
		field("isDeprecated", nonNull(named("Boolean")), ""),
		field("deprecationReason", named("String"), ""),
	)
}

func inputValueType() *schema.Type {
	return object("__InputValue", "Arguments provided to Fields or Directives and the input fields of an InputObject are represented as Input Values which describe their type and optionally a default value.",
		field("name", nonNull(named("String")), ""),
		field("description", named("String"), ""),
		field("type", nonNull(named("__Type")), ""),
		field("defaultValue", named("String"), "A GraphQL-formatted string representing the default value for this input value."),
		field("isDeprecated", nonNull(named("Boolean")), ""),
		field("deprecationReason", named("String"), ""),
	)
}

func enumValueType() *schema.Type {
	return object("__EnumValue", "One possible value for a given Enum.",
		field("name", nonNull(named("String")), ""),
		field("description", named("String"), ""),
		field("isDeprecated", nonNull(named("Boolean")), ""),
		field("deprecationReason", named("String"), ""),
	)
}

func directiveType() *schema.Type {
	return object("__Directive", "A Directive provides a way to describe alternate runtime execution and type validation behavior in a GraphQL document.",
		field("name", nonNull(named("String")), ""),
		field("description", named("String"), ""),
		field("isRepeatable", nonNull(named("Boolean")), ""),
		field("locations", nonNull(listOf("__DirectiveLocation")), ""),
		withIncludeDeprecated(field("args", nonNull(listOf("__InputValue")), "")),
	)
}

var typeKinds = []string{
	"SCALAR", "OBJECT", "INTERFACE", "UNION", "ENUM", "INPUT_OBJECT", "LIST", "NON_NULL",
}

var directiveLocations = []string{
	"QUERY", "MUTATION", "SUBSCRIPTION", "FIELD", "FRAGMENT_DEFINITION", "FRAGMENT_SPREAD",
	"INLINE_FRAGMENT", "VARIABLE_DEFINITION", "SCHEMA", "SCALAR", "OBJECT", "FIELD_DEFINITION",
	"ARGUMENT_DEFINITION", "INTERFACE", "UNION", "ENUM", "ENUM_VALUE", "INPUT_OBJECT",
	"INPUT_FIELD_DEFINITION",
}

func enumType(name, description string, values []string) *schema.Type {
	t := schema.NewType(name, schema.TypeKindEnum, description)
	for _, v := range values {
		t.AddEnumValue(schema.NewEnumValue(v, ""))
	}
	return t
}
