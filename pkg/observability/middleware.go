package observability

import (
	"fmt"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

// httpStatusServerError is the threshold for HTTP server errors.
const httpStatusServerError = 500

const (
	statusOK        = "ok"
	statusNotFound  = "not_found"
	statusClientErr = "client_error"
)

// RouteFunc returns the route template that served a request, such as
// "/api/students/{usn}". It is called after the handler has run.
// An empty result falls back to the raw URL path.
type RouteFunc func(*http.Request) string

// statusWriter wraps [http.ResponseWriter] to capture the status code.
type statusWriter struct {
	http.ResponseWriter

	statusCode int
	written    bool
}

// WriteHeader captures the status code before delegating to the wrapped writer.
func (sw *statusWriter) WriteHeader(code int) {
	if !sw.written {
		sw.statusCode = code
		sw.written = true
	}

	sw.ResponseWriter.WriteHeader(code)
}

func (sw *statusWriter) Write(buf []byte) (int, error) {
	if !sw.written {
		sw.statusCode = http.StatusOK
		sw.written = true
	}

	n, err := sw.ResponseWriter.Write(buf)
	if err != nil {
		return n, fmt.Errorf("write response: %w", err)
	}

	return n, nil
}

func (sw *statusWriter) status() int {
	if !sw.written {
		return http.StatusOK
	}

	return sw.statusCode
}

func routeOf(route RouteFunc, hr *http.Request) string {
	if route != nil {
		if pattern := route(hr); pattern != "" {
			return pattern
		}
	}

	return hr.URL.Path
}

// HTTPMiddleware returns an [http.Handler] that creates a server span per
// request. Span names use route-template format: "METHOD /route", so student
// identifiers in paths never reach the span name.
func HTTPMiddleware(tracer trace.Tracer, route RouteFunc, next http.Handler) http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, hr *http.Request) {
		// Extract W3C traceparent/tracestate/baggage from incoming headers.
		parentCtx := otel.GetTextMapPropagator().Extract(hr.Context(), propagation.HeaderCarrier(hr.Header))

		ctx, span := tracer.Start(parentCtx, hr.Method,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(semconv.HTTPRequestMethodKey.String(hr.Method)),
		)
		defer span.End()

		sw := &statusWriter{ResponseWriter: rw}
		req := hr.WithContext(ctx)
		next.ServeHTTP(sw, req)

		pattern := routeOf(route, req)
		span.SetName(hr.Method + " " + pattern)
		span.SetAttributes(
			semconv.HTTPRoute(pattern),
			semconv.HTTPResponseStatusCode(sw.status()),
		)

		if sw.status() >= httpStatusServerError {
			span.SetStatus(codes.Error, http.StatusText(sw.status()))
		}
	})
}

// REDMiddleware records rate, errors and duration for every request,
// labelled by "METHOD /route".
func REDMiddleware(red *REDMetrics, route RouteFunc, next http.Handler) http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, hr *http.Request) {
		ctx := hr.Context()
		start := time.Now()
		done := red.TrackInflight(ctx, hr.Method)

		sw := &statusWriter{ResponseWriter: rw}
		next.ServeHTTP(sw, hr)
		done()

		op := hr.Method + " " + routeOf(route, hr)
		red.RecordRequest(ctx, op, statusLabel(sw.status()), time.Since(start))
	})
}

func statusLabel(code int) string {
	switch {
	case code >= httpStatusServerError:
		return statusError
	case code == http.StatusNotFound:
		return statusNotFound
	case code >= http.StatusBadRequest:
		return statusClientErr
	default:
		return statusOK
	}
}
