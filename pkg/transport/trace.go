package transport

import (
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const tracerName = "github.com/vortexdb/vortex-go"

// traceStage records method, path, status and latency for every attempt as
// an otel span, a zap debug line, and a prometheus observation. It never
// blocks and never alters the outcome. Runs innermost so each retry attempt
// is observed separately.
type traceStage struct {
	tracer  trace.Tracer
	logger  *zap.Logger
	metrics *requestMetrics
	enabled bool
}

func newTraceStage(enabled bool, logger *zap.Logger, metrics *requestMetrics) *traceStage {
	return &traceStage{
		tracer:  otel.Tracer(tracerName),
		logger:  logger,
		metrics: metrics,
		enabled: enabled,
	}
}

func (s *traceStage) RoundTrip(req *http.Request, next http.RoundTripper) (*http.Response, error) {
	ctx := req.Context()
	var span trace.Span
	if s.enabled {
		ctx, span = s.tracer.Start(ctx, "vortex.request",
			trace.WithSpanKind(trace.SpanKindClient),
			trace.WithAttributes(
				attribute.String("http.request.method", req.Method),
				attribute.String("url.path", req.URL.Path),
			))
		req = req.WithContext(ctx)
	}

	s.metrics.begin()
	start := time.Now()
	resp, err := next.RoundTrip(req)
	elapsed := time.Since(start)

	status := 0
	if resp != nil {
		status = resp.StatusCode
	}
	s.metrics.end(req.Method, req.URL.Path, status, elapsed)

	if span != nil {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "transport failure")
		} else {
			span.SetAttributes(attribute.Int("http.response.status_code", status))
			if status >= http.StatusBadRequest {
				span.SetStatus(codes.Error, http.StatusText(status))
			}
		}
		span.End()
	}

	s.logger.Debug("vortex: request",
		zap.String("method", req.Method),
		zap.String("path", req.URL.Path),
		zap.Int("status", status),
		zap.Duration("duration", elapsed),
		zap.String("request_id", req.Header.Get(requestIDHeader)),
		zap.Error(err))

	return resp, err
}
