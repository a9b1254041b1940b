package httpapi

import (
	"context"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const handlerSpanPrefix = "httpapi.Handler."

var apiTracer = otel.Tracer("fulbito-league/internal/interfaces/httpapi")

// startHandlerSpan opens one child span per handler and renames the otelhttp
// server span after the matched route. Requests that otelhttp filtered out
// (health probes) carry no parent and get no span either.
func startHandlerSpan(r *http.Request, op string) (context.Context, trace.Span) {
	ctx := r.Context()
	parent := trace.SpanFromContext(ctx)
	if !parent.SpanContext().IsValid() {
		return ctx, parent
	}
	if r.Pattern != "" {
		parent.SetName(r.Pattern)
	}
	return apiTracer.Start(ctx, handlerSpanPrefix+op,
		trace.WithAttributes(attribute.String("http.route", r.Pattern)),
	)
}

// markSpanFailed flags server-side failures on the active span. Client errors
// are left unset so they do not show up as error traces.
func markSpanFailed(ctx context.Context, status int, err error) {
	if status < http.StatusInternalServerError {
		return
	}
	span := trace.SpanFromContext(ctx)
	span.RecordError(err)
	span.SetStatus(codes.Error, http.StatusText(status))
}
