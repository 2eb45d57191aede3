package store

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/tbourn/go-qa-backend/internal/domain"
)

const tracerName = "github.com/tbourn/go-qa-backend/internal/store"

var (
	// storeOps counts store calls by operation and outcome. outcome is "ok"
	// or the domain.Kind name of the failure.
	storeOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_operations_total",
			Help: "Total number of store operations.",
		},
		[]string{"op", "outcome"},
	)

	// storeLat records store call duration in seconds by operation.
	storeLat = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "store_operation_duration_seconds",
			Help:    "Duration of store operations in seconds.",
			Buckets: []float64{.0001, .0005, .001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		},
		[]string{"op"},
	)
)

func init() {
	prometheus.MustRegister(storeOps, storeLat)
}

// track opens a span for op and returns the span context together with a
// completion func that ends the span and records the metrics.
//
//	ctx, done := track(ctx, opAddQuestion, backend)
//	defer func() { done(err) }()
func track(ctx context.Context, op, backend string) (context.Context, func(error)) {
	start := time.Now()
	ctx, span := otel.Tracer(tracerName).Start(ctx, "store."+op)
	span.SetAttributes(attribute.String("store.backend", backend))
	return ctx, func(err error) {
		out := outcome(err)
		storeLat.WithLabelValues(op).Observe(time.Since(start).Seconds())
		storeOps.WithLabelValues(op, out).Inc()
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, out)
		}
		span.End()
	}
}

func outcome(err error) string {
	if err == nil {
		return "ok"
	}
	if e, ok := domain.AsError(err); ok {
		return e.Kind.String()
	}
	return "error"
}
