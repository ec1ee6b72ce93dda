package telemetry

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/prometheus"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"

	"github.com/lokvaani/commentengine/pkg/config"
)

func TestMetricsExposure(t *testing.T) {
	exporter, err := prometheus.New()
	if err != nil {
		t.Fatalf("prometheus exporter: %v", err)
	}
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(exporter))
	otel.SetMeterProvider(mp)
	defer mp.Shutdown(context.Background())

	ctx := context.Background()
	RecordGenerated(ctx, "existing_dataset_long_rotated")
	RecordRotationReset(ctx, "daily")
	RecordAnalysis(ctx, "hinglish")
	RecordCollaboratorFailure(ctx, "translation")
	ObserveCollaborator(ctx, "sentiment", time.Now().Add(-250*time.Millisecond))

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	promhttp.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("metrics status: %d", rec.Code)
	}
	body := rec.Body.String()
	for _, m := range []string{
		"lokvaani_comments_generated",
		"lokvaani_rotation_resets",
		"lokvaani_analyses",
		"lokvaani_collaborator_failures",
		"lokvaani_collaborator_duration",
	} {
		if !strings.Contains(body, m) {
			t.Fatalf("expected metric %s in body", m)
		}
	}
}

func TestTracerFallback(t *testing.T) {
	_, span := StartSpan(context.Background(), "test.span")
	defer span.End()
	if span.SpanContext().IsValid() {
		t.Error("expected no-op span before Init")
	}
}

func TestStartMetricsServerDisabled(t *testing.T) {
	if srv := StartMetricsServer("127.0.0.1", 0); srv != nil {
		t.Error("expected nil server for port 0")
	}
}

func TestCollaboratorHistogramBuckets(t *testing.T) {
	ctx := context.Background()
	res, err := newResource(ctx, &config.TelemetryConfig{ServiceName: "comment-analyzer", Environment: "test"})
	if err != nil {
		t.Fatalf("resource: %v", err)
	}
	reader := sdkmetric.NewManualReader()
	mp := newMeterProvider(res, reader)
	defer mp.Shutdown(ctx)

	hist, err := mp.Meter(meterName).Float64Histogram(collaboratorDurationName)
	if err != nil {
		t.Fatal(err)
	}
	hist.Record(ctx, 1.7)

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(ctx, &rm); err != nil {
		t.Fatal(err)
	}
	if v, ok := rm.Resource.Set().Value(semconv.DeploymentEnvironmentKey); !ok || v.AsString() != "test" {
		t.Errorf("deployment.environment = %v", v)
	}
	if len(rm.ScopeMetrics) != 1 || len(rm.ScopeMetrics[0].Metrics) != 1 {
		t.Fatalf("collected %+v", rm.ScopeMetrics)
	}
	data, ok := rm.ScopeMetrics[0].Metrics[0].Data.(metricdata.Histogram[float64])
	if !ok || len(data.DataPoints) != 1 {
		t.Fatalf("data = %#v", rm.ScopeMetrics[0].Metrics[0].Data)
	}
	dp := data.DataPoints[0]
	if len(dp.Bounds) != len(collaboratorBuckets) || dp.Bounds[0] != 0.05 {
		t.Errorf("bounds = %v", dp.Bounds)
	}
	// 1.7s lands in the (1, 2.5] bucket
	if dp.BucketCounts[5] != 1 {
		t.Errorf("bucket counts = %v", dp.BucketCounts)
	}
}

func TestTracerSampling(t *testing.T) {
	res, err := newResource(context.Background(), &config.TelemetryConfig{ServiceName: "comment-generator"})
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		ratio   float64
		sampled bool
	}{
		{ratio: 1, sampled: true},
		{ratio: 0, sampled: false},
	}
	for _, tt := range tests {
		tp := newTracerProvider(res, tt.ratio)
		_, span := tp.Tracer("test").Start(context.Background(), "test.span")
		if got := span.SpanContext().IsSampled(); got != tt.sampled {
			t.Errorf("ratio %v: sampled = %v", tt.ratio, got)
		}
		span.End()
		tp.Shutdown(context.Background())
	}
}
