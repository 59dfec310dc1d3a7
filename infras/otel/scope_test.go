package otel_test

import (
	"context"
	"errors"
	"testing"

	"hotel/infras/otel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func record(t *testing.T, fn func(scope otel.Scope)) sdktrace.ReadOnlySpan {
	t.Helper()

	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	_, span := provider.Tracer("test").Start(context.Background(), "service.reservation.AssignRoom")
	scope := otel.NewScope(span)

	fn(scope)
	scope.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)

	return spans[0]
}

func TestScope_Attributes(t *testing.T) {
	span := record(t, func(scope otel.Scope) {
		scope.SetAttribute("room_number", "101")
		scope.SetAttribute("nights", 2)
		scope.SetAttributes(map[string]any{"total_amount": 4000.0, "held": true})
	})

	attrs := map[attribute.Key]attribute.Value{}
	for _, kv := range span.Attributes() {
		attrs[kv.Key] = kv.Value
	}

	assert.Equal(t, "101", attrs["room_number"].AsString())
	assert.Equal(t, int64(2), attrs["nights"].AsInt64())
	assert.InDelta(t, 4000.0, attrs["total_amount"].AsFloat64(), 0.001)
	assert.True(t, attrs["held"].AsBool())
}

func TestScope_Errors(t *testing.T) {
	failed := record(t, func(scope otel.Scope) {
		scope.TraceIfError(errors.New("room is already held"))
	})

	assert.Equal(t, codes.Error, failed.Status().Code)
	assert.Equal(t, "room is already held", failed.Status().Description)

	clean := record(t, func(scope otel.Scope) {
		scope.TraceIfError(nil)
		scope.AddEvent("room assigned")
	})

	assert.Equal(t, codes.Unset, clean.Status().Code)
	require.Len(t, clean.Events(), 1)
	assert.Equal(t, "room assigned", clean.Events()[0].Name)
}
