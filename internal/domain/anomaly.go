package domain

import (
	"fmt"
	"math"
)

// FindingKind tags the class of anomaly a finding represents.
type FindingKind string

const (
	KindTemperatureAnomaly    FindingKind = "TEMPERATURE_ANOMALY"
	KindPHAnomaly             FindingKind = "PH_ANOMALY"
	KindAcidificationDetected FindingKind = "ACIDIFICATION_DETECTED"
	KindProbableSpill         FindingKind = "PROBABLE_SPILL"
)

// UrgencyImmediate marks findings that warrant an alert without further triage.
const UrgencyImmediate = "IMMEDIATE_ALERT"

// Rule thresholds. The spill severity is a fixed policy value.
const (
	TemperatureZThreshold = 3.0
	PHZThreshold          = 2.5
	AcidificationMargin   = 0.5
	SpillThresholdPPM     = 5.0
	SpillSeverity         = 95
	MaxSeverity           = 100

	temperatureSeverityFactor = 20
	phSeverityFactor          = 30
)

// Finding is an anomaly classification before it is enriched into an Alert.
type Finding struct {
	Kind        FindingKind `json:"type"`
	Severity    int         `json:"severity"`
	Explanation string      `json:"explanation"`
	Urgency     string      `json:"urgency,omitempty"`
}

// ZScores holds the absolute deviation of each parameter from its baseline.
type ZScores struct {
	Temperature float64
	PH          float64
	Salinity    float64
}

// Deviations computes |value - mean| / std for temperature, pH, and salinity.
// The baseline must already be validated.
func Deviations(r Reading, b Baseline) ZScores {
	return ZScores{
		Temperature: zScore(r.Temperature(), b.Temperature),
		PH:          zScore(r.PH(), b.PH),
		Salinity:    zScore(r.Salinity(), b.Salinity),
	}
}

func zScore(value float64, s Stat) float64 {
	return math.Abs(value-s.Mean) / s.Std
}

// scaledSeverity caps in float space; converting an out-of-range float to int
// is implementation-defined.
func scaledSeverity(z float64, factor float64) int {
	return int(math.Min(math.Round(z*factor), MaxSeverity))
}

// Detector evaluates readings against the baselines of a registry.
// It holds no mutable state and may be shared across goroutines.
type Detector struct {
	registry *BaselineRegistry
}

// NewDetector creates a Detector backed by registry.
func NewDetector(registry *BaselineRegistry) *Detector {
	return &Detector{registry: registry}
}

// Registry exposes the baseline table the detector was built with.
func (d *Detector) Registry() *BaselineRegistry {
	return d.registry
}

// Detect applies the temperature, pH, and hydrocarbon rules in that order.
// An unknown zone returns nil: there is nothing to compare against.
func (d *Detector) Detect(r Reading, zone string) []Finding {
	baseline, ok := d.registry.Lookup(zone)
	if !ok {
		return nil
	}

	z := Deviations(r, baseline)
	var findings []Finding

	if z.Temperature > TemperatureZThreshold {
		findings = append(findings, Finding{
			Kind:     KindTemperatureAnomaly,
			Severity: scaledSeverity(z.Temperature, temperatureSeverityFactor),
			Explanation: fmt.Sprintf("temperature %.1f°C is %.1fσ away from the zone baseline (%.1f°C)",
				r.Temperature(), z.Temperature, baseline.Temperature.Mean),
		})
	}

	if z.PH > PHZThreshold {
		ph := r.PH()
		f := Finding{Severity: scaledSeverity(z.PH, phSeverityFactor)}
		if ph < baseline.PH.Mean-AcidificationMargin {
			f.Kind = KindAcidificationDetected
			f.Explanation = fmt.Sprintf("pH %.2f indicates possible ocean acidification", ph)
		} else {
			f.Kind = KindPHAnomaly
			f.Explanation = fmt.Sprintf("pH %.2f is outside the normal range", ph)
		}
		findings = append(findings, f)
	}

	if ppm := r.Hydrocarbon(); ppm > SpillThresholdPPM {
		findings = append(findings, Finding{
			Kind:        KindProbableSpill,
			Severity:    SpillSeverity,
			Explanation: fmt.Sprintf("hydrocarbons detected: %.1f ppm", ppm),
			Urgency:     UrgencyImmediate,
		})
	}

	return findings
}
