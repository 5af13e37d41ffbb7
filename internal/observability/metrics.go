package observability

import (
	"context"
	"io"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"protgroup/internal/parsimony"
)

const meterName = "protgroup.parsimony"

// Metric names.
const (
	MetricResolveDuration = "protgroup_resolve_duration_seconds"
	MetricResolveTotal    = "protgroup_resolve_total"
	MetricGroups          = "protgroup_groups"
	MetricMergesTotal     = "protgroup_merges_total"
)

type runInstruments struct {
	latency metric.Float64Histogram
	total   metric.Int64Counter
	groups  metric.Int64Histogram
	merges  metric.Int64Counter
}

// instruments resolves the instruments on the current global MeterProvider.
// The SDK hands back the same instrument for a repeated name, so this is
// cheap per run and follows a provider installed later.
func instruments() (runInstruments, error) {
	m := otel.GetMeterProvider().Meter(meterName)
	var (
		in  runInstruments
		err error
	)
	if in.latency, err = m.Float64Histogram(
		MetricResolveDuration,
		metric.WithDescription("Duration of protein group resolution"),
		metric.WithUnit("s"),
	); err != nil {
		return in, err
	}
	if in.total, err = m.Int64Counter(
		MetricResolveTotal,
		metric.WithDescription("Total number of resolution runs"),
	); err != nil {
		return in, err
	}
	if in.groups, err = m.Int64Histogram(
		MetricGroups,
		metric.WithDescription("Protein groups per run"),
	); err != nil {
		return in, err
	}
	in.merges, err = m.Int64Counter(
		MetricMergesTotal,
		metric.WithDescription("Subsumption merges performed"),
	)
	return in, err
}

// InstallMetrics registers a global meter provider that writes the run
// instruments as JSON to w. The returned func flushes and shuts it down.
func InstallMetrics(w io.Writer) (func(context.Context) error, error) {
	exp, err := stdoutmetric.New(stdoutmetric.WithWriter(w))
	if err != nil {
		return nil, err
	}
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exp)))
	otel.SetMeterProvider(mp)
	return mp.Shutdown, nil
}

func recordRun(ctx context.Context, st parsimony.Stats, d time.Duration, ok bool) {
	in, err := instruments()
	if err != nil {
		return
	}
	attrs := metric.WithAttributes(attribute.Bool("success", ok))
	in.latency.Record(ctx, d.Seconds(), attrs)
	in.total.Add(ctx, 1, attrs)
	if ok {
		in.groups.Record(ctx, int64(st.Groups))
		in.merges.Add(ctx, int64(st.Merges))
	}
}
