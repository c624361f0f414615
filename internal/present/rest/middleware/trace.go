package middleware

import (
	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const TraceIDHeader = "X-Trace-Id"

// TraceID exposes the active trace id to the client and tags the span with
// the matched route. It must run after the otelecho middleware.
func TraceID(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		span := trace.SpanFromContext(c.Request().Context())

		sc := span.SpanContext()
		if sc.HasTraceID() {
			c.Response().Header().Set(TraceIDHeader, sc.TraceID().String())
			span.SetAttributes(attribute.String("todolist.route", c.Path()))
		}

		return next(c)
	}
}
