package otel

import (
	"context"
	"testing"

	eventbus "github.com/hanpama/gqlkit/internal/eventbus"
	executor "github.com/hanpama/gqlkit/internal/executor"
	resolvers "github.com/hanpama/gqlkit/internal/resolvers"
	schema "github.com/hanpama/gqlkit/internal/schema"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func recorder(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	eventbus.Use(eventbus.New())
	t.Cleanup(func() { eventbus.Use(nil) })

	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	t.Cleanup(Register(tp.Tracer("test")))
	return rec
}

func attr(span sdktrace.ReadOnlySpan, key attribute.Key) attribute.Value {
	for _, kv := range span.Attributes() {
		if kv.Key == key {
			return kv.Value
		}
	}
	return attribute.Value{}
}

func TestSetupWithoutEndpoint(t *testing.T) {
	shutdown, err := Setup(context.Background(), "", "gqlkit")
	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))
}

func TestTransformAndOperationSpans(t *testing.T) {
	rec := recorder(t)

	s, err := resolvers.MakeExecutableSchema(`type Query { hello: String }`, resolvers.ResolverMap{
		"Query": resolvers.TypeResolvers{"hello": func(schema.ResolveParams) (any, error) { return "world", nil }},
	})
	require.NoError(t, err)

	res := executor.Execute(context.Background(), executor.Params{Schema: s, Query: `query Greet { hello nope }`})
	require.Len(t, res.Errors, 1)

	spans := rec.Ended()
	require.Len(t, spans, 2)

	transform := spans[0]
	require.Equal(t, "schema.add_resolvers", transform.Name())
	require.Equal(t, "rebuild", attr(transform, "gqlkit.transform.strategy").AsString())
	require.Equal(t, int64(1), attr(transform, "gqlkit.transform.entries").AsInt64())
	require.Equal(t, codes.Unset, transform.Status().Code)

	op := spans[1]
	require.Equal(t, "graphql.operation", op.Name())
	require.Equal(t, "Greet", attr(op, "graphql.operation.name").AsString())
	require.Equal(t, "query", attr(op, "graphql.operation.type").AsString())
	require.False(t, attr(op, "gqlkit.root_resolve").AsBool())
	require.Equal(t, int64(1), attr(op, "graphql.error_count").AsInt64())
	require.Equal(t, codes.Error, op.Status().Code)
}

func TestFailedTransformRecordsError(t *testing.T) {
	rec := recorder(t)

	_, err := resolvers.MakeExecutableSchema(`type Query { hello: String }`, resolvers.ResolverMap{
		"Ghost": resolvers.TypeResolvers{},
	})
	require.Error(t, err)

	spans := rec.Ended()
	require.Len(t, spans, 1)
	require.Equal(t, codes.Error, spans[0].Status().Code)
	require.NotEmpty(t, spans[0].Events())
}
