package http

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/couchcryptid/ocean-sense-service/internal/domain"
	"github.com/couchcryptid/ocean-sense-service/internal/observability"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
)

// maxBodyBytes caps request bodies; a full day of readings from every buoy
// fits comfortably.
const maxBodyBytes = 4 << 20

// API serves synchronous fishing-zone prediction and anomaly detection.
type API struct {
	detector    *domain.Detector
	defaultZone string
	geocoder    domain.Geocoder
	metrics     *observability.Metrics
	logger      *slog.Logger
}

// NewAPI creates the request handlers. Requests without a zone are checked
// against defaultZone. A nil geocoder disables place enrichment.
func NewAPI(detector *domain.Detector, defaultZone string, geocoder domain.Geocoder, metrics *observability.Metrics, logger *slog.Logger) *API {
	return &API{
		detector:    detector,
		defaultZone: defaultZone,
		geocoder:    geocoder,
		metrics:     metrics,
		logger:      logger,
	}
}

// Register mounts the API routes on mux.
func (a *API) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /predict/fishing", a.handlePredictFishing)
	mux.HandleFunc("POST /detect/anomalies", a.handleDetectAnomalies)
	mux.HandleFunc("POST /train/fishing", a.handleTrainFishing)
}

type predictRequest struct {
	Data []json.RawMessage `json:"data"`
}

type predictResponse struct {
	Predictions []domain.ScoredZone `json:"predictions"`
	Timestamp   time.Time           `json:"timestamp"`
}

func (a *API) handlePredictFishing(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "read body: "+err.Error())
		return
	}

	var req predictRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	readings := make([]domain.Reading, 0, len(req.Data))
	for _, raw := range req.Data {
		reading, err := domain.ParseReading(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		readings = append(readings, reading)
	}

	predictions := domain.ScoreReadings(readings)
	a.metrics.ZonesScored.Add(float64(len(predictions)))
	a.logger.Debug("fishing zones scored", "count", len(predictions))

	sharedobs.WriteJSON(w, http.StatusOK, predictResponse{
		Predictions: predictions,
		Timestamp:   domain.Now(),
	})
}

type detectRequest struct {
	domain.Reading
	Location *domain.Location `json:"location,omitempty"`
}

type detectResponse struct {
	Anomalies    []domain.Alert `json:"anomalies"`
	HasAnomalies bool           `json:"has_anomalies"`
	QualityScore int            `json:"quality_score"`
	Warnings     []string       `json:"warnings,omitempty"`
}

func (a *API) handleDetectAnomalies(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "read body: "+err.Error())
		return
	}

	var req detectRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if err := req.Reading.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	zone := req.Zone
	if zone == "" {
		zone = a.defaultZone
	}
	loc := req.Reading.Location()
	if req.Location != nil {
		loc = *req.Location
	}

	if _, ok := a.detector.Registry().Lookup(zone); !ok {
		a.metrics.UnknownZone.Inc()
	}

	findings := a.detector.Detect(req.Reading, zone)
	alerts := domain.BuildAlerts(findings, loc)
	for i := range alerts {
		alerts[i].Zone = zone
		alerts[i].BuoyID = req.BuoyID
		alerts[i] = domain.EnrichWithPlace(r.Context(), alerts[i], a.geocoder, a.logger)
		a.metrics.Findings.WithLabelValues(string(alerts[i].Kind)).Inc()
	}

	sharedobs.WriteJSON(w, http.StatusOK, detectResponse{
		Anomalies:    alerts,
		HasAnomalies: len(alerts) > 0,
		QualityScore: domain.QualityScore(req.Reading),
		Warnings:     domain.PlausibilityWarnings(req.Reading),
	})
}

func (a *API) handleTrainFishing(w http.ResponseWriter, _ *http.Request) {
	sharedobs.WriteJSON(w, http.StatusNotImplemented, map[string]string{
		"message": "training endpoint not yet implemented",
		"status":  "coming_soon",
	})
}
