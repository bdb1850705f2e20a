// Package logger provides slog handlers that enrich records with request scoped data.
package logger

import (
	"context"
	"log/slog"

	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/otel/trace"
)

// Attribute keys added by ContextHandler.
const (
	RequestIDKey = "request_id"
	TraceIDKey   = "trace_id"
	SpanIDKey    = "span_id"
)

// ContextHandler is a wrapper around slog.Handler that adds the chi request id and the
// OpenTelemetry trace and span ids found in the record's context.
type ContextHandler struct {
	slog.Handler
	// hasRequestID is set once a request_id attribute was bound with WithAttrs.
	hasRequestID bool
}

// NewContextHandler creates a new ContextHandler.
func NewContextHandler(handler slog.Handler) *ContextHandler {
	return &ContextHandler{
		Handler: handler,
	}
}

// Handle processes a log record and adds context information.
func (h *ContextHandler) Handle(ctx context.Context, r slog.Record) error {
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		r.AddAttrs(
			slog.String(TraceIDKey, sc.TraceID().String()),
			slog.String(SpanIDKey, sc.SpanID().String()),
		)
	}
	if reqID := middleware.GetReqID(ctx); reqID != "" && !h.hasRequestID {
		r.AddAttrs(slog.String(RequestIDKey, reqID))
	}
	return h.Handler.Handle(ctx, r)
}

// WithAttrs returns a new ContextHandler with the given attributes added.
func (h *ContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	hasRequestID := h.hasRequestID
	for _, attr := range attrs {
		if attr.Key == RequestIDKey {
			hasRequestID = true
		}
	}
	return &ContextHandler{Handler: h.Handler.WithAttrs(attrs), hasRequestID: hasRequestID}
}

// WithGroup returns a new ContextHandler with the given group added.
func (h *ContextHandler) WithGroup(group string) slog.Handler {
	return &ContextHandler{Handler: h.Handler.WithGroup(group), hasRequestID: h.hasRequestID}
}
