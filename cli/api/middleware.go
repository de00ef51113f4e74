package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/VictoriaMetrics/metrics"
	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"
)

// ctxlog is a [context.Context] key and acts as a virtual package for operations related to it.
type ctxlog struct{}

// from returns the request logger stored in ctx, or fallback.
func (key ctxlog) from(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if logger, ok := ctx.Value(key).(*slog.Logger); ok {
		return logger
	}
	return fallback
}

// loggerMiddleware returns a middleware that stores a request logger in the
// [context.Context] and logs the request once it has terminated.
// The logger carries the request id, generated when the client sent none,
// and the contact id when the operation addresses a single contact.
func (key ctxlog) loggerMiddleware(parent *slog.Logger) func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		requestID := ctx.Header("X-Request-Id")
		if requestID == "" {
			requestID = uuid.Must(uuid.NewV7()).String()
		}
		ctx.SetHeader("X-Request-Id", requestID)

		op := ctx.Operation()
		logger := parent.With("x-request-id", requestID, "op", op.OperationID)
		if contactID := ctx.Param("id"); contactID != "" {
			logger = logger.With("contact", contactID)
		}

		start := time.Now()
		next(huma.WithValue(ctx, key, logger))

		logger.LogAttrs(context.Background(), slog.LevelInfo,
			joinSpace(op.Method, op.Path, ctx.Version().Proto),
			slog.String("from", ctx.RemoteAddr()),
			slog.String("ua", ctx.Header("User-Agent")),
			slog.Int("status", ctx.Status()),
			slog.Duration("dur", time.Since(start)),
		)
	}
}

// recoverMiddleware returns a middleware that logs the value of a panicking
// operation and answers [http.StatusInternalServerError].
func (key ctxlog) recoverMiddleware(fallback *slog.Logger) func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		defer func() {
			if v := recover(); v != nil {
				key.from(ctx.Context(), fallback).LogAttrs(context.Background(), slog.LevelError,
					"operation panicked", slog.Any("recovered", v))
				ctx.SetStatus(http.StatusInternalServerError)
			}
		}()
		next(ctx)
	}
}

// errorHandler returns the hook given to the contacts handlers: it logs the
// error with the request logger at a level following its HTTP status.
func (key ctxlog) errorHandler(fallback *slog.Logger) func(context.Context, error) {
	return func(ctx context.Context, err error) {
		level, attrs := slog.LevelError, []slog.Attr{slog.Any("err", err)}

		var statusErr huma.StatusError
		if errors.As(err, &statusErr) {
			level = statusLevel(statusErr.GetStatus())
			attrs = append(attrs, slog.Int("status", statusErr.GetStatus()))
		}

		key.from(ctx, fallback).LogAttrs(context.Background(), level, "operation failed", attrs...)
	}
}

func statusLevel(status int) slog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return slog.LevelError
	case status >= http.StatusBadRequest:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}

// meterRequests returns a middleware counting requests and timing them per operation and status.
func meterRequests(set *metrics.Set) func(huma.Context, func(huma.Context)) {
	type key struct {
		operationID string
		status      int
	}
	type ref struct {
		*metrics.Counter
		*metrics.PrometheusHistogram
	}

	var (
		refs    = map[key]ref{}
		refsMu  sync.RWMutex
		buckets = metrics.ExponentialBuckets(1e-3, 5, 6) //nolint: mnd // arbitrary
	)

	lookup := func(op *huma.Operation, status int) ref {
		k := key{op.OperationID, status}
		refsMu.RLock()
		r, ok := refs[k]
		refsMu.RUnlock()
		if ok {
			return r
		}

		refsMu.Lock()
		defer refsMu.Unlock()
		if r, ok = refs[k]; !ok {
			labels := joinQuote("{method=", op.Method, ",path=", op.Path, ",status=", strconv.Itoa(status), "}")
			r = ref{
				set.NewCounter("http_requests_total" + labels),
				set.NewPrometheusHistogramExt("http_request_duration_seconds"+labels, buckets),
			}
			refs[k] = r
		}
		return r
	}

	return func(ctx huma.Context, next func(huma.Context)) {
		start := time.Now()
		next(ctx)

		r := lookup(ctx.Operation(), ctx.Status())
		r.Counter.Inc()
		r.PrometheusHistogram.UpdateDuration(start)
	}
}
