package oteltrace

import (
	"context"

	"github.com/mercadinho-dev/gostore/internal/observability"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

type tracer struct{ t trace.Tracer }

// New returns a tracer backed by the global OpenTelemetry provider.
// Spans are no-ops until an SDK tracer provider is installed via
// otel.SetTracerProvider.
func New(name string) observability.Tracer {
	if name == "" {
		name = "gostore"
	}
	return &tracer{t: otel.Tracer(name)}
}

func (t *tracer) Start(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return t.t.Start(ctx, name, trace.WithAttributes(attrs...))
}
