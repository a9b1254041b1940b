package httpapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestStartHandlerSpan(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	tracer := provider.Tracer("test")

	t.Run("no parent means no span", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		_, span := startHandlerSpan(req, "Healthz")
		require.False(t, span.SpanContext().IsValid())
	})

	t.Run("child span carries route and failure status", func(t *testing.T) {
		parentCtx, parent := tracer.Start(context.Background(), "GET /api/leagues/lunes/standings")

		req := httptest.NewRequest(http.MethodGet, "/api/leagues/lunes/standings", nil).WithContext(parentCtx)
		req.Pattern = "GET /api/leagues/{slug}/standings"

		ctx, span := startHandlerSpan(req, "ListStandings")
		require.True(t, span.SpanContext().IsValid())
		markSpanFailed(ctx, http.StatusBadRequest, errors.New("bad slug"))
		markSpanFailed(ctx, http.StatusServiceUnavailable, errors.New("identity down"))
		span.End()
		parent.End()

		ended := recorder.Ended()
		require.Len(t, ended, 2)
		require.Equal(t, "httpapi.Handler.ListStandings", ended[0].Name())
		require.Equal(t, codes.Error, ended[0].Status().Code)
		require.Len(t, ended[0].Events(), 1)
		require.Equal(t, "GET /api/leagues/{slug}/standings", ended[1].Name())
	})
}
