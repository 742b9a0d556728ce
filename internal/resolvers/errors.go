package resolvers

import (
	"errors"
	"fmt"

	schema "github.com/hanpama/gqlkit/internal/schema"
)

var (
	// ErrInvalidResolvers is matched by every error caused by a resolver map
	// that does not fit the schema.
	ErrInvalidResolvers = errors.New("resolvers: invalid resolver map")

	// ErrUnresolvableAbstractType is matched by AbstractTypeResolutionError.
	ErrUnresolvableAbstractType = errors.New("resolvers: abstract type cannot be resolved")
)

// SchemaReferenceError reports a resolver map key naming a type the schema
// does not have.
type SchemaReferenceError struct {
	TypeName string
}

func (e *SchemaReferenceError) Error() string {
	return fmt.Sprintf("%q defined in resolvers, but not in schema", e.TypeName)
}

func (e *SchemaReferenceError) Unwrap() error { return ErrInvalidResolvers }

// ShapeMismatchError reports a resolver value whose shape does not fit its
// target. FieldName is empty for type level mismatches.
type ShapeMismatchError struct {
	TypeName  string
	FieldName string
	Reason    string
}

func (e *ShapeMismatchError) Error() string {
	if e.FieldName == "" {
		return fmt.Sprintf("resolver for %s: %s", e.TypeName, e.Reason)
	}
	return fmt.Sprintf("resolver for %s.%s: %s", e.TypeName, e.FieldName, e.Reason)
}

func (e *ShapeMismatchError) Unwrap() error { return ErrInvalidResolvers }

// MissingFieldError reports a resolver for a field or enum value the type
// does not have.
type MissingFieldError struct {
	TypeName  string
	FieldName string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s.%s defined in resolvers, but not in schema", e.TypeName, e.FieldName)
}

func (e *MissingFieldError) Unwrap() error { return ErrInvalidResolvers }

// AbstractTypeResolutionError reports an interface or union whose runtime
// object type cannot be determined: it has no ResolveType hook and not all of
// its possible types have IsTypeOf.
type AbstractTypeResolutionError struct {
	TypeName string
	Kind     schema.TypeKind
}

func (e *AbstractTypeResolutionError) Error() string {
	kind := "interface"
	if e.Kind == schema.TypeKindUnion {
		kind = "union"
	}
	return fmt.Sprintf("type %q is missing a %q resolver (%s)", e.TypeName, "resolveType", kind)
}

func (e *AbstractTypeResolutionError) Unwrap() error { return ErrUnresolvableAbstractType }

func shapeMismatch(typeName, fieldName, format string, args ...any) error {
	return &ShapeMismatchError{TypeName: typeName, FieldName: fieldName, Reason: fmt.Sprintf(format, args...)}
}
