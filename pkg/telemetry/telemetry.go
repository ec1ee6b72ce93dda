package telemetry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/jaeger"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"

	"github.com/lokvaani/commentengine/pkg/config"
	"github.com/lokvaani/commentengine/pkg/logging"
)

const serviceVersion = "0.1.0"

// collaboratorBuckets span a cached lookup up to a cold model load on the
// hosted inference API.
var collaboratorBuckets = []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20}

var tracer trace.Tracer

// Init installs the tracer and meter providers described by cfg. Traces go
// to Jaeger when a collector URL is set; metrics go to the Prometheus
// registry scraped by StartMetricsServer. The returned function flushes
// and shuts the providers down.
func Init(cfg *config.TelemetryConfig) (func(), error) {
	logger := logging.WithComponent("telemetry")
	if !cfg.Enabled {
		logger.Info("Telemetry disabled")
		return func() {}, nil
	}

	res, err := newResource(context.Background(), cfg)
	if err != nil {
		return nil, err
	}

	var shutdownFuncs []func(context.Context) error

	if cfg.JaegerURL != "" {
		exporter, err := jaeger.New(jaeger.WithCollectorEndpoint(jaeger.WithEndpoint(cfg.JaegerURL)))
		if err != nil {
			return nil, fmt.Errorf("failed to create Jaeger exporter: %w", err)
		}
		tp := newTracerProvider(res, cfg.SampleRatio, sdktrace.WithBatcher(exporter))
		otel.SetTracerProvider(tp)
		shutdownFuncs = append(shutdownFuncs, tp.Shutdown)

		logger.Info("Jaeger exporter initialized",
			zap.String("url", cfg.JaegerURL),
			zap.Float64("sample_ratio", cfg.SampleRatio))
	}

	if cfg.PrometheusEnabled {
		exporter, err := prometheus.New()
		if err != nil {
			return nil, fmt.Errorf("failed to create Prometheus exporter: %w", err)
		}
		mp := newMeterProvider(res, exporter)
		otel.SetMeterProvider(mp)
		shutdownFuncs = append(shutdownFuncs, mp.Shutdown)

		logger.Info("Prometheus exporter initialized", zap.Int("port", cfg.PrometheusPort))
	}

	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
	tracer = otel.Tracer(cfg.ServiceName)

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		var errs []error
		for _, fn := range shutdownFuncs {
			errs = append(errs, fn(ctx))
		}
		if err := errors.Join(errs...); err != nil {
			logger.Error("Error shutting down telemetry", zap.Error(err))
		}
	}, nil
}

// newResource describes the running service: name, version, environment
// plus host and runtime details.
func newResource(ctx context.Context, cfg *config.TelemetryConfig) (*resource.Resource, error) {
	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(cfg.ServiceName),
			semconv.ServiceVersion(serviceVersion),
			semconv.DeploymentEnvironment(cfg.Environment),
		),
		resource.WithHost(),
		resource.WithProcessRuntimeName(),
		resource.WithProcessRuntimeVersion(),
		resource.WithTelemetrySDK(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}
	return res, nil
}

// newTracerProvider samples ratio of root traces and follows the parent's
// decision otherwise, so a request sampled upstream stays whole.
func newTracerProvider(res *resource.Resource, ratio float64, opts ...sdktrace.TracerProviderOption) *sdktrace.TracerProvider {
	opts = append(opts,
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(ratio))),
	)
	return sdktrace.NewTracerProvider(opts...)
}

// newMeterProvider attaches reader. The default histogram buckets assume
// milliseconds, so collaborator durations get their own.
func newMeterProvider(res *resource.Resource, reader metric.Reader) *metric.MeterProvider {
	collaboratorView := metric.NewView(
		metric.Instrument{Name: collaboratorDurationName},
		metric.Stream{Aggregation: metric.AggregationExplicitBucketHistogram{Boundaries: collaboratorBuckets}},
	)
	return metric.NewMeterProvider(
		metric.WithReader(reader),
		metric.WithResource(res),
		metric.WithView(collaboratorView),
	)
}

// Tracer returns the global tracer
func Tracer() trace.Tracer {
	if tracer == nil {
		return noop.NewTracerProvider().Tracer("lokvaani")
	}
	return tracer
}

// StartSpan starts a new span
func StartSpan(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	return Tracer().Start(ctx, name, opts...)
}
