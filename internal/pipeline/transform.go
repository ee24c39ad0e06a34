package pipeline

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/couchcryptid/ocean-sense-service/internal/domain"
	"github.com/couchcryptid/ocean-sense-service/internal/observability"
)

// AnomalyTransformer implements Transformer by running each reading through
// the anomaly detector, with optional reverse-geocoding of alert locations.
type AnomalyTransformer struct {
	detector    *domain.Detector
	defaultZone string
	geocoder    domain.Geocoder
	metrics     *observability.Metrics
	logger      *slog.Logger
}

// NewTransformer creates an AnomalyTransformer. Readings without a zone are
// checked against defaultZone. Pass a nil geocoder to disable enrichment.
func NewTransformer(detector *domain.Detector, defaultZone string, geocoder domain.Geocoder, metrics *observability.Metrics, logger *slog.Logger) *AnomalyTransformer {
	return &AnomalyTransformer{
		detector:    detector,
		defaultZone: defaultZone,
		geocoder:    geocoder,
		metrics:     metrics,
		logger:      logger,
	}
}

// Transform parses the reading and returns one serialized alert per finding.
// A reading with no findings yields an empty slice and no error.
func (t *AnomalyTransformer) Transform(ctx context.Context, raw domain.RawEvent) ([]domain.OutputEvent, error) {
	reading, err := domain.ParseReading(raw.Value)
	if err != nil {
		return nil, err
	}

	zone := reading.Zone
	if zone == "" {
		zone = t.defaultZone
	}

	baseline, ok := t.detector.Registry().Lookup(zone)
	if !ok {
		t.metrics.UnknownZone.Inc()
		t.logger.Debug("no baseline for zone, skipping detection", "zone", zone, "buoy_id", reading.BuoyID)
		return nil, nil
	}
	z := domain.Deviations(reading, baseline)
	t.logger.Debug("reading deviations",
		"zone", zone,
		"buoy_id", reading.BuoyID,
		"temperature_z", z.Temperature,
		"ph_z", z.PH,
		"salinity_z", z.Salinity,
	)

	findings := t.detector.Detect(reading, zone)
	if len(findings) == 0 {
		return nil, nil
	}

	quality := strconv.Itoa(domain.QualityScore(reading))
	out := make([]domain.OutputEvent, 0, len(findings))
	for _, alert := range domain.BuildAlerts(findings, reading.Location()) {
		alert.Zone = zone
		alert.BuoyID = reading.BuoyID
		alert = domain.EnrichWithPlace(ctx, alert, t.geocoder, t.logger)

		event, err := domain.SerializeAlert(alert)
		if err != nil {
			return nil, err
		}
		event.Headers["quality_score"] = quality
		out = append(out, event)

		t.metrics.Findings.WithLabelValues(string(alert.Kind)).Inc()
		t.logger.Info("anomaly detected",
			"alert_id", alert.ID,
			"kind", alert.Kind,
			"priority", alert.Priority,
			"severity", alert.Severity,
			"zone", zone,
			"buoy_id", alert.BuoyID,
		)
	}

	return out, nil
}
