package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/VictoriaMetrics/metrics"
	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"
)

// RequestIDHeader carries the request correlation id
const RequestIDHeader = "X-Request-ID"

type (
	requestIDKey     struct{}
	requestLoggerKey struct{}
)

// requestID reuses the caller's X-Request-ID or assigns a fresh one, and
// echoes it on the response.
func requestID(ctx huma.Context, next func(huma.Context)) {
	id := ctx.Header(RequestIDHeader)
	if id == "" {
		id = uuid.NewString()
	}
	ctx.SetHeader(RequestIDHeader, id)
	next(huma.WithValue(ctx, requestIDKey{}, id))
}

// requestLogger returns the per-request logger stored by accessLog, or
// fallback outside a request.
func requestLogger(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if l, ok := ctx.Value(requestLoggerKey{}).(*slog.Logger); ok {
		return l
	}
	return fallback
}

// accessLog tags a logger with the request id and operation, hands it to
// the handlers and writes one line per finished request.
func accessLog(parent *slog.Logger) func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		op := ctx.Operation()
		id, _ := ctx.Context().Value(requestIDKey{}).(string)
		l := parent.With(
			slog.String("request_id", id),
			slog.String("operation", op.OperationID),
		)

		start := time.Now()
		next(huma.WithValue(ctx, requestLoggerKey{}, l))

		l.LogAttrs(context.Background(), slog.LevelInfo, "api request",
			slog.String("method", op.Method),
			slog.String("route", op.Path),
			slog.Int("status", ctx.Status()),
			slog.String("remote", ctx.RemoteAddr()),
			slog.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
	}
}

// recoverPanics turns a handler panic into a 500 and counts it.
func recoverPanics(fallback *slog.Logger, set *metrics.Set) func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		defer func() {
			if v := recover(); v != nil {
				set.GetOrCreateCounter("addressbook_api_panics_total").Inc()
				requestLogger(ctx.Context(), fallback).Error("handler panicked", "panic", v)
				ctx.SetStatus(http.StatusInternalServerError)
			}
		}()
		next(ctx)
	}
}

// logContactError logs errors returned by the contact handlers. Client
// errors are warnings; everything else is an error.
func logContactError(fallback *slog.Logger) func(context.Context, error) {
	return func(ctx context.Context, err error) {
		level := slog.LevelError
		attrs := []slog.Attr{slog.Any("err", err)}

		var statusErr huma.StatusError
		if errors.As(err, &statusErr) {
			if statusErr.GetStatus() < http.StatusInternalServerError {
				level = slog.LevelWarn
			}
			attrs = append(attrs, slog.Int("status", statusErr.GetStatus()))
		}
		requestLogger(ctx, fallback).LogAttrs(context.Background(), level, "contact request failed", attrs...)
	}
}

var durationBuckets = metrics.ExponentialBuckets(0.001, 4, 7)

// countRequests records addressbook_api_requests_total and
// addressbook_api_request_duration_seconds per route, method and status.
func countRequests(set *metrics.Set) func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		op, start := ctx.Operation(), time.Now()
		next(ctx)

		labels := fmt.Sprintf(`{method=%q,route=%q,status="%d"}`, op.Method, op.Path, ctx.Status())
		set.GetOrCreateCounter("addressbook_api_requests_total" + labels).Inc()
		set.GetOrCreatePrometheusHistogramExt("addressbook_api_request_duration_seconds"+labels, durationBuckets).UpdateDuration(start)
	}
}
