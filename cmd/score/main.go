// Command score ranks fishing zones and runs anomaly detection over a file of
// buoy readings without Kafka or the HTTP service.
//
// Usage:
//
//	go run ./cmd/score -readings data/readings.json -zone CALLAO_NORTH
//
// The input is a JSON array of readings. A report with ranked zones and the
// alerts raised for each reading is written to stdout as JSON.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/couchcryptid/ocean-sense-service/internal/config"
	"github.com/couchcryptid/ocean-sense-service/internal/domain"
)

type report struct {
	GeneratedAt time.Time           `json:"generated_at"`
	Zones       []domain.ScoredZone `json:"zones"`
	Alerts      []domain.Alert      `json:"alerts"`
	Quality     []readingQuality    `json:"quality"`
}

type readingQuality struct {
	BuoyID string `json:"buoy_id,omitempty"`
	Score  int    `json:"score"`
}

func main() {
	readingsPath := flag.String("readings", "", "path to a JSON array of readings")
	zone := flag.String("zone", domain.ZoneCallaoNorth, "zone for readings that do not name one")
	baselinesPath := flag.String("baselines", "", "optional YAML baselines file")
	flag.Parse()

	if *readingsPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(*readingsPath, *zone, *baselinesPath, os.Stdout); err != nil {
		slog.Error("score failed", "error", err)
		os.Exit(1)
	}
}

func run(readingsPath, defaultZone, baselinesPath string, out io.Writer) error {
	registry, err := config.LoadBaselines(baselinesPath)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(readingsPath)
	if err != nil {
		return fmt.Errorf("read readings: %w", err)
	}
	readings, err := parseReadings(data)
	if err != nil {
		return err
	}

	rep := buildReport(domain.NewDetector(registry), readings, defaultZone)

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(rep)
}

func parseReadings(data []byte) ([]domain.Reading, error) {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, fmt.Errorf("decode readings array: %w", err)
	}
	readings := make([]domain.Reading, 0, len(raws))
	for i, raw := range raws {
		r, err := domain.ParseReading(raw)
		if err != nil {
			return nil, fmt.Errorf("reading %d: %w", i, err)
		}
		readings = append(readings, r)
	}
	return readings, nil
}

func buildReport(detector *domain.Detector, readings []domain.Reading, defaultZone string) report {
	rep := report{
		GeneratedAt: domain.Now(),
		Zones:       domain.ScoreReadings(readings),
		Alerts:      []domain.Alert{},
		Quality:     make([]readingQuality, 0, len(readings)),
	}

	for _, r := range readings {
		zone := r.Zone
		if zone == "" {
			zone = defaultZone
		}
		for _, alert := range domain.BuildAlerts(detector.Detect(r, zone), r.Location()) {
			alert.Zone = zone
			alert.BuoyID = r.BuoyID
			rep.Alerts = append(rep.Alerts, alert)
		}
		rep.Quality = append(rep.Quality, readingQuality{BuoyID: r.BuoyID, Score: domain.QualityScore(r)})
	}
	return rep
}
