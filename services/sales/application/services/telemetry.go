package services

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/ghuser/retailseed/services/sales"

var tracer = otel.Tracer(instrumentationName)

type salesMetrics struct {
	transactions metric.Int64Counter
	lineItems    metric.Int64Counter
	duration     metric.Float64Histogram
}

func newSalesMetrics(meter metric.Meter) *salesMetrics {
	m := &salesMetrics{}
	var err error
	if m.transactions, err = meter.Int64Counter("retailseed.transactions.generated",
		metric.WithDescription("Transactions generated and persisted"),
		metric.WithUnit("{transaction}")); err != nil {
		otel.Handle(err)
	}
	if m.lineItems, err = meter.Int64Counter("retailseed.line_items.generated",
		metric.WithDescription("Line items generated and persisted"),
		metric.WithUnit("{item}")); err != nil {
		otel.Handle(err)
	}
	if m.duration, err = meter.Float64Histogram("retailseed.seed_run.duration",
		metric.WithDescription("Wall time of a sales seed run"),
		metric.WithUnit("s")); err != nil {
		otel.Handle(err)
	}
	return m
}

func recordSpanError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
