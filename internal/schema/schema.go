package schema

import (
	"context"
	"sync"

	language "github.com/hanpama/gqlkit/internal/language"
)

// Schema represents the complete GraphQL schema.
//
// Types reference each other by name, so Types is the single source of truth
// for the type graph. Replacing an entry in Types rewires every reference to it.
type Schema struct {
	QueryType        string
	MutationType     string
	SubscriptionType string
	Types            map[string]*Type // All named types keyed by name
	Directives       map[string]*Directive
	Description      string

	// RootResolve runs once per operation before the root fields. Its result
	// replaces the root value passed to the executor.
	RootResolve FieldResolveFn `json:"-"`

	ast *astCache
}

// GetQueryType returns the root query type (may be nil if absent)
func (s *Schema) GetQueryType() *Type { return s.Types[s.QueryType] }

// GetMutationType returns the root mutation type (may be nil if absent)
func (s *Schema) GetMutationType() *Type { return s.Types[s.MutationType] }

// GetSubscriptionType returns the root subscription type (may be nil if absent)
func (s *Schema) GetSubscriptionType() *Type { return s.Types[s.SubscriptionType] }

// GetType returns the named type or nil.
func (s *Schema) GetType(name string) *Type { return s.Types[name] }

// Type is a named GraphQL type (object, interface, union, scalar, enum, input)
type Type struct {
	Name           string
	Kind           TypeKind
	Description    string
	Fields         []*Field      // For OBJECT and INTERFACE
	Interfaces     []string      // For OBJECT and INTERFACE (implemented/extended)
	PossibleTypes  []string      // For UNION
	EnumValues     []*EnumValue  // For ENUM
	InputFields    []*InputValue // For INPUT_OBJECT
	SpecifiedByURL *string
	OneOf          bool
	Directives     []*AppliedDirective `json:",omitempty"`

	// ResolveType picks the concrete object type of an INTERFACE or UNION value.
	ResolveType TypeResolveFn `json:"-"`
	// IsTypeOf reports whether a value belongs to this OBJECT type.
	IsTypeOf IsTypeOfFn `json:"-"`

	// Leaf hooks for SCALAR types. Nil hooks behave as identity.
	Serialize    SerializeFn    `json:"-"`
	ParseValue   ParseValueFn   `json:"-"`
	ParseLiteral ParseLiteralFn `json:"-"`
}

// Field represents a field on an object or interface
type Field struct {
	Name              string
	Description       string
	Type              *TypeRef
	Arguments         []*InputValue
	IsDeprecated      bool
	DeprecationReason string
	Directives        []*AppliedDirective `json:",omitempty"`
	Extensions        map[string]any      `json:",omitempty"`

	Resolve   FieldResolveFn `json:"-"`
	Subscribe FieldResolveFn `json:"-"`
}

// TypeKind represents the kind of GraphQL type
type TypeKind string

const (
	TypeKindScalar      TypeKind = "SCALAR"
	TypeKindObject      TypeKind = "OBJECT"
	TypeKindInterface   TypeKind = "INTERFACE"
	TypeKindUnion       TypeKind = "UNION"
	TypeKindEnum        TypeKind = "ENUM"
	TypeKindInputObject TypeKind = "INPUT_OBJECT"
)

// IsComposite reports whether values of t have a selection set.
func (t *Type) IsComposite() bool {
	return t.Kind == TypeKindObject || t.Kind == TypeKindInterface || t.Kind == TypeKindUnion
}

// IsAbstract reports whether t is an interface or union.
func (t *Type) IsAbstract() bool {
	return t.Kind == TypeKindInterface || t.Kind == TypeKindUnion
}

// IsLeaf reports whether t is a scalar or enum.
func (t *Type) IsLeaf() bool {
	return t.Kind == TypeKindScalar || t.Kind == TypeKindEnum
}

// Field returns the field with the given name or nil.
func (t *Type) Field(name string) *Field {
	for _, f := range t.Fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// EnumValue returns the enum value with the given name or nil.
func (t *Type) EnumValue(name string) *EnumValue {
	for _, v := range t.EnumValues {
		if v.Name == name {
			return v
		}
	}
	return nil
}

// InputField returns the input field with the given name or nil.
func (t *Type) InputField(name string) *InputValue {
	for _, v := range t.InputFields {
		if v.Name == name {
			return v
		}
	}
	return nil
}

// TypeRef represents a reference to a type (can be wrapped)
type TypeRef struct {
	Kind   TypeRefKind
	OfType *TypeRef // For List and NonNull
	Named  string   // For named types
}

type TypeRefKind string

const (
	TypeRefKindNamed   TypeRefKind = "NAMED"
	TypeRefKindList    TypeRefKind = "LIST"
	TypeRefKindNonNull TypeRefKind = "NON_NULL"
)

// Helper functions for TypeRef
func (t *TypeRef) IsNonNull() bool {
	return t != nil && t.Kind == TypeRefKindNonNull
}

func (t *TypeRef) IsList() bool {
	if t.Kind == TypeRefKindList {
		return true
	}
	if t.Kind == TypeRefKindNonNull && t.OfType != nil {
		return t.OfType.Kind == TypeRefKindList
	}
	return false
}

func (t *TypeRef) Unwrap() *TypeRef {
	if t.Kind == TypeRefKindNonNull || t.Kind == TypeRefKindList {
		return t.OfType
	}
	return t
}

func (t *TypeRef) GetNamedType() string {
	current := t
	for current != nil {
		if current.Named != "" {
			return current.Named
		}
		current = current.OfType
	}
	return ""
}

func (t *TypeRef) String() string { return renderTypeRef(t) }

type EnumValue struct {
	Name              string
	Description       string
	Value             any // internal representation; defaults to Name
	IsDeprecated      bool
	DeprecationReason string
	Directives        []*AppliedDirective `json:",omitempty"`
}

type InputValue struct {
	Name              string
	Description       string
	Type              *TypeRef
	DefaultValue      any // internal representation
	IsDeprecated      bool
	DeprecationReason string
	Directives        []*AppliedDirective `json:",omitempty"`
}

type Directive struct {
	Name         string
	Description  string
	Locations    []string
	Arguments    []*InputValue
	IsRepeatable bool
}

// AppliedDirective is a directive usage on a type system member, kept so the
// schema can be printed with its directives.
type AppliedDirective struct {
	Name      string
	Arguments []*DirectiveArgument
}

type DirectiveArgument struct {
	Name  string
	Value *language.Value
}

// ResolveInfo describes the field being resolved.
type ResolveInfo struct {
	FieldName      string
	ParentType     *Type
	ReturnType     *TypeRef
	Path           []any
	Schema         *Schema
	RootValue      any
	VariableValues map[string]any
	Operation      *language.OperationDefinition
}

type ResolveParams struct {
	Context context.Context
	Source  any
	Args    map[string]any
	Info    ResolveInfo
}

type ResolveTypeParams struct {
	Context      context.Context
	Value        any
	AbstractType *Type
	Info         ResolveInfo
}

type IsTypeOfParams struct {
	Context context.Context
	Value   any
	Info    ResolveInfo
}

type (
	FieldResolveFn func(p ResolveParams) (any, error)
	// TypeResolveFn returns the name of the concrete object type of Value.
	TypeResolveFn  func(p ResolveTypeParams) (string, error)
	IsTypeOfFn     func(p IsTypeOfParams) bool
	SerializeFn    func(value any) (any, error)
	ParseValueFn   func(value any) (any, error)
	ParseLiteralFn func(value *language.Value, variables map[string]any) (any, error)
)

type astCache struct {
	once sync.Once
	doc  *language.SchemaDocument
	err  error
	load func() (*language.SchemaDocument, error)
}

func NonNullType(t *TypeRef) *TypeRef { return &TypeRef{Kind: TypeRefKindNonNull, OfType: t} }
func ListType(t *TypeRef) *TypeRef    { return &TypeRef{Kind: TypeRefKindList, OfType: t} }
func NamedType(name string) *TypeRef  { return &TypeRef{Kind: TypeRefKindNamed, Named: name} }

// IsNonNull reports whether the type is wrapped with Non-Null.
func IsNonNull(t *TypeRef) bool { return t != nil && t.IsNonNull() }

// IsList reports whether the type is (or is wrapped by) a list type.
func IsList(t *TypeRef) bool { return t != nil && t.IsList() }

// Unwrap removes one layer of Non-Null or List wrapping and returns the inner type.
func Unwrap(t *TypeRef) *TypeRef { return t.Unwrap() }

// GetNamedType returns the innermost named type for the given reference.
func GetNamedType(t *TypeRef) string { return t.GetNamedType() }
