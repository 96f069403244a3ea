package otel

import (
	"context"

	"github.com/spf13/viper"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/jaeger"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
)

const (
	ServiceName = "storefront"

	defaultJaegerEndpoint = "http://jaeger:14268/api/traces"
)

// OtelController owns the global tracer provider.
type OtelController struct {
	traceProvider *sdktrace.TracerProvider
}

// MustInitOtel exports spans to Jaeger and installs W3C trace context propagation.
// tracing.sample_ratio (0..1, default 1) samples root spans; children follow their parent.
func MustInitOtel() *OtelController {
	exporter, err := jaeger.New(jaeger.WithCollectorEndpoint(
		jaeger.WithEndpoint(collectorEndpoint()),
	))
	if err != nil {
		panic(err)
	}

	ratio := 1.0
	if viper.IsSet("tracing.sample_ratio") {
		ratio = viper.GetFloat64("tracing.sample_ratio")
	}

	attrs := []attribute.KeyValue{
		semconv.ServiceNameKey.String(ServiceName),
	}
	if env := viper.GetString("tracing.environment"); env != "" {
		attrs = append(attrs, semconv.DeploymentEnvironmentKey.String(env))
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(ratio))),
		sdktrace.WithResource(resource.NewWithAttributes(semconv.SchemaURL, attrs...)),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return &OtelController{
		traceProvider: tp,
	}
}

// collectorEndpoint is tracing.jaeger_endpoint, falling back to the compose service address.
func collectorEndpoint() string {
	if endpoint := viper.GetString("tracing.jaeger_endpoint"); endpoint != "" {
		return endpoint
	}

	return defaultJaegerEndpoint
}

// Shutdown flushes pending spans.
func (o *OtelController) Shutdown(ctx context.Context) error {
	return o.traceProvider.Shutdown(ctx)
}
