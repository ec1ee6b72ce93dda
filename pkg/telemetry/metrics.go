package telemetry

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/lokvaani/commentengine/pkg/logging"
)

const (
	meterName                = "github.com/lokvaani/commentengine"
	collaboratorDurationName = "lokvaani_collaborator_duration_seconds"
)

type instruments struct {
	generated       metric.Int64Counter
	rotationResets  metric.Int64Counter
	analyses        metric.Int64Counter
	collabFailures  metric.Int64Counter
	collabDurations metric.Float64Histogram
}

var (
	instOnce sync.Once
	inst     instruments
)

// The global meter delegates to whatever provider Init installs, so the
// instruments can be created before or after Init. A failed instrument is
// logged once and left as the no-op the API returns with the error.
func getInstruments() *instruments {
	instOnce.Do(func() {
		meter := otel.Meter(meterName)
		var errs []error
		add := func(err error) { errs = append(errs, err) }

		var err error
		inst.generated, err = meter.Int64Counter("lokvaani_comments_generated_total",
			metric.WithDescription("Generated comments by selection source"))
		add(err)
		inst.rotationResets, err = meter.Int64Counter("lokvaani_rotation_resets_total",
			metric.WithDescription("Global rotation resets by reason"))
		add(err)
		inst.analyses, err = meter.Int64Counter("lokvaani_analyses_total",
			metric.WithDescription("Analyzed comments by language type"))
		add(err)
		inst.collabFailures, err = meter.Int64Counter("lokvaani_collaborator_failures_total",
			metric.WithDescription("External collaborator failures substituted with defaults"))
		add(err)
		inst.collabDurations, err = meter.Float64Histogram(collaboratorDurationName,
			metric.WithDescription("External collaborator call duration"),
			metric.WithUnit("s"))
		add(err)

		if err := errors.Join(errs...); err != nil {
			logging.WithComponent("telemetry").Error("Failed to create metric instruments", zap.Error(err))
		}
	})
	return &inst
}

// RecordGenerated counts a generated comment for the given source tag.
func RecordGenerated(ctx context.Context, source string) {
	getInstruments().generated.Add(ctx, 1, metric.WithAttributes(attribute.String("source", source)))
}

// RecordRotationReset counts a global rotation reset.
func RecordRotationReset(ctx context.Context, reason string) {
	getInstruments().rotationResets.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", reason)))
}

// RecordAnalysis counts an analyzed comment.
func RecordAnalysis(ctx context.Context, languageType string) {
	getInstruments().analyses.Add(ctx, 1, metric.WithAttributes(attribute.String("language_type", languageType)))
}

// RecordCollaboratorFailure counts a failed external call.
func RecordCollaboratorFailure(ctx context.Context, collaborator string) {
	getInstruments().collabFailures.Add(ctx, 1, metric.WithAttributes(attribute.String("collaborator", collaborator)))
}

// ObserveCollaborator records the duration of an external call started at start.
func ObserveCollaborator(ctx context.Context, collaborator string, start time.Time) {
	getInstruments().collabDurations.Record(ctx, time.Since(start).Seconds(),
		metric.WithAttributes(attribute.String("collaborator", collaborator)))
}

// StartMetricsServer serves /metrics on port. A zero port disables it.
func StartMetricsServer(host string, port int) *http.Server {
	if port == 0 {
		return nil
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", host, port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		logging.GetLogger().Info("Metrics server starting", zap.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.GetLogger().Error("Metrics server failed", zap.Error(err))
		}
	}()
	return srv
}
