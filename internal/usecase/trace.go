package usecase

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var usecaseTracer = otel.Tracer("fulbito-league/internal/usecase")

// startUsecaseSpan only opens a span under an existing trace. Background work
// such as the warm-up job starts its own root before calling in.
func startUsecaseSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	parent := trace.SpanFromContext(ctx)
	if name == "" || !parent.SpanContext().IsValid() {
		return ctx, parent
	}
	return usecaseTracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func slugAttr(slug string) attribute.KeyValue { return attribute.String("league.slug", slug) }

func leagueAttr(id string) attribute.KeyValue { return attribute.String("league.id", id) }
