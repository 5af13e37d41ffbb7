// internal/observability/trace.go
package observability

import (
	"context"
	"io"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"

	"protgroup/internal/parsimony"
)

const tracerName = "protgroup.parsimony"

// InstallTracing registers a global tracer provider that writes spans as
// JSON to w. The returned func flushes and shuts it down.
func InstallTracing(w io.Writer) (func(context.Context) error, error) {
	exp, err := stdouttrace.New(stdouttrace.WithWriter(w))
	if err != nil {
		return nil, err
	}
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exp))
	otel.SetTracerProvider(tp)
	return tp.Shutdown, nil
}

// RunProgress is a parsimony.Progress that turns checkpoints into span
// events and debug log lines for one resolution run.
type RunProgress struct {
	ctx    context.Context
	span   trace.Span
	log    zerolog.Logger
	source string
	start  time.Time
}

// TraceProgress starts a span for resolving source.
func TraceProgress(ctx context.Context, log zerolog.Logger, source string) *RunProgress {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "parsimony.Resolve",
		trace.WithAttributes(attribute.String("protgroup.source", source)),
	)
	return &RunProgress{ctx: ctx, span: span, log: log, source: source, start: time.Now()}
}

func (p *RunProgress) Checkpoint(name string) {
	p.span.AddEvent(name)
	p.log.Debug().
		Str("source", p.source).
		Str("checkpoint", name).
		Dur("elapsed", time.Since(p.start)).
		Msg("checkpoint")
}

// End closes the span and records run metrics.
func (p *RunProgress) End(st parsimony.Stats, err error) time.Duration {
	d := time.Since(p.start)
	p.span.SetAttributes(
		attribute.Int("protgroup.proteins", st.Proteins),
		attribute.Int("protgroup.clusters", st.Clusters),
		attribute.Int("protgroup.containment_bits", st.ContainmentBits),
		attribute.Int("protgroup.merges", st.Merges),
		attribute.Int("protgroup.groups", st.Groups),
	)
	if err != nil {
		p.span.RecordError(err)
		p.span.SetStatus(codes.Error, err.Error())
	}
	p.span.End()
	recordRun(p.ctx, st, d, err == nil)
	return d
}

var _ parsimony.Progress = (*RunProgress)(nil)
