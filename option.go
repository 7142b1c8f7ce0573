package parallel

import (
	"io"

	"github.com/viant/parallel/config"
	"github.com/viant/parallel/service/event"
	"github.com/viant/parallel/service/messaging"
	"github.com/viant/parallel/tracing"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Option customises a Region.
type Option func(r *Region)

// WithNumThreads requests an explicit thread count, overriding the
// configured per-depth list.
func WithNumThreads(count int) Option {
	return func(r *Region) { r.requested = count }
}

// WithConfig supplies the configuration used instead of the process-wide
// default.
func WithConfig(cfg *config.Config) Option {
	return func(r *Region) { r.cfg = cfg }
}

// WithWorkQueue sets the queue backing the dynamic schedule; defaults to an
// in-memory queue.
func WithWorkQueue(queue messaging.SyncQueue[int]) Option {
	return func(r *Region) { r.workQueue = queue }
}

// WithEventService enables publication of region lifecycle events.
func WithEventService(service *event.Service) Option {
	return func(r *Region) { r.events = service }
}

// WithPrintWriter redirects synchronized output; defaults to os.Stdout.
func WithPrintWriter(w io.Writer) Option {
	return func(r *Region) { r.printW = w }
}

// WithTracing configures OpenTelemetry tracing. If outputFile is empty the
// stdout exporter is used; otherwise traces are written to the supplied file
// path. The function is safe to call multiple times – the first successful
// initialisation wins.
func WithTracing(serviceName, serviceVersion, outputFile string) Option {
	return func(r *Region) {
		_ = tracing.Init(serviceName, serviceVersion, outputFile)
	}
}

// WithTracingExporter configures OpenTelemetry tracing using a custom
// SpanExporter. This enables integrations with exporters other than the
// built-in stdout exporter, for example OTLP, Jaeger or Zipkin.
func WithTracingExporter(serviceName, serviceVersion string, exporter sdktrace.SpanExporter) Option {
	return func(r *Region) {
		_ = tracing.InitWithExporter(serviceName, serviceVersion, exporter)
	}
}
