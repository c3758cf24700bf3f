package telemetry

import (
	"context"
	"io"

	"github.com/hyp3rd/ewrap"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"popstats/internal/version"
)

// Setup installs a global tracer provider that writes every finished span
// to w as one JSON object per line. The returned shutdown flushes pending
// spans; call it before closing w.
func Setup(w io.Writer, attrs ...attribute.KeyValue) (shutdown func(context.Context) error, err error) {
	exporter, err := stdouttrace.New(stdouttrace.WithWriter(w))
	if err != nil {
		return nil, ewrap.Wrap(err, "trace exporter")
	}

	res := resource.NewSchemaless(append([]attribute.KeyValue{
		attribute.String("service.name", instrumentation),
		attribute.String("service.version", version.Version),
	}, attrs...)...)

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)
	otel.SetTracerProvider(tp)
	return tp.Shutdown, nil
}
