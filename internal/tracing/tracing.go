// internal/tracing/tracing.go
package tracing

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// ServiceName labels every span degen emits.
const ServiceName = "degen"

var ErrUnknownExporter = errors.New("unknown trace exporter")

// Shutdown flushes and stops a provider.
type Shutdown func(context.Context) error

// Setup builds a tracer provider for exporter ("none" or "stdout") and
// installs it as the global provider. stdout spans are written to w.
func Setup(exporter string, w io.Writer) (trace.TracerProvider, Shutdown, error) {
	switch exporter {
	case "", "none":
		tp := noop.NewTracerProvider()
		otel.SetTracerProvider(tp)
		return tp, func(context.Context) error { return nil }, nil
	case "stdout":
		exp, err := stdouttrace.New(stdouttrace.WithWriter(w))
		if err != nil {
			return nil, nil, fmt.Errorf("create exporter: %w", err)
		}
		tp := sdktrace.NewTracerProvider(
			sdktrace.WithBatcher(exp),
			sdktrace.WithResource(resource.NewSchemaless(attribute.String("service.name", ServiceName))),
			sdktrace.WithSampler(sdktrace.AlwaysSample()),
		)
		otel.SetTracerProvider(tp)
		return tp, tp.Shutdown, nil
	default:
		return nil, nil, fmt.Errorf("%w: %s", ErrUnknownExporter, exporter)
	}
}
