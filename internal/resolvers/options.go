package resolvers

import (
	"context"
	"fmt"
	"strings"

	schema "github.com/hanpama/gqlkit/internal/schema"
	"go.uber.org/zap"
)

// Requirement controls how abstract types without a way to resolve their
// runtime type are reported.
type Requirement int

const (
	// RequireWarn logs a warning per offending type.
	RequireWarn Requirement = iota
	// RequireError fails the merge.
	RequireError
	// RequireIgnore skips the check.
	RequireIgnore
)

func (r Requirement) String() string {
	switch r {
	case RequireWarn:
		return "warn"
	case RequireError:
		return "error"
	case RequireIgnore:
		return "ignore"
	}
	return fmt.Sprintf("Requirement(%d)", int(r))
}

// ParseRequirement parses "warn", "error" or "ignore".
func ParseRequirement(s string) (Requirement, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "warn", "":
		return RequireWarn, nil
	case "error":
		return RequireError, nil
	case "ignore":
		return RequireIgnore, nil
	}
	return 0, fmt.Errorf("resolvers: unknown requirement %q (want warn, error or ignore)", s)
}

// Options configures AddResolversToSchema.
//
// Defaults:
// - RequireResolversForResolveType: RequireWarn
// - UpdateResolversInPlace:         false (the schema is rebuilt)
// - Logger:                         no-op
type Options struct {
	// AllowResolversNotInSchema skips entries for unknown types, fields and
	// enum values instead of failing.
	AllowResolversNotInSchema bool

	RequireResolversForResolveType Requirement

	// UpdateResolversInPlace mutates the given schema instead of returning a
	// new one. Enum and scalar types are still replaced by new instances.
	UpdateResolversInPlace bool

	// InheritResolversFromInterfaces gives object and interface types the
	// field resolvers of the interfaces they implement, for fields they
	// declare and do not resolve themselves.
	InheritResolversFromInterfaces bool

	// DefaultFieldResolver is assigned to every object field left without a
	// resolver.
	DefaultFieldResolver schema.FieldResolveFn

	Logger *zap.Logger

	// Context is passed to published events.
	Context context.Context
}

// Option mutates Options.
type Option func(*Options)

func defaultOptions() *Options {
	return &Options{
		RequireResolversForResolveType: RequireWarn,
		Logger:                         zap.NewNop(),
		Context:                        context.Background(),
	}
}

func WithAllowResolversNotInSchema(allow bool) Option {
	return func(o *Options) { o.AllowResolversNotInSchema = allow }
}
func WithRequireResolversForResolveType(r Requirement) Option {
	return func(o *Options) { o.RequireResolversForResolveType = r }
}
func WithUpdateResolversInPlace(inPlace bool) Option {
	return func(o *Options) { o.UpdateResolversInPlace = inPlace }
}
func WithInheritResolversFromInterfaces(inherit bool) Option {
	return func(o *Options) { o.InheritResolversFromInterfaces = inherit }
}
func WithDefaultFieldResolver(fn schema.FieldResolveFn) Option {
	return func(o *Options) { o.DefaultFieldResolver = fn }
}
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Context = ctx
		}
	}
}
