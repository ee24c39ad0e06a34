package domain

import (
	"errors"
	"fmt"
	"sort"
)

// ErrInvalidBaseline marks a baseline that cannot be used as a divisor.
var ErrInvalidBaseline = errors.New("invalid baseline")

// Zone identifiers with built-in baselines.
const (
	ZoneCallaoNorth = "CALLAO_NORTH"
	ZoneCallaoSouth = "CALLAO_SOUTH"
)

// Stat is the expected mean and standard deviation of one parameter.
type Stat struct {
	Mean float64 `yaml:"mean" json:"mean"`
	Std  float64 `yaml:"std" json:"std"`
}

// Baseline holds the per-zone statistics a reading is compared against.
type Baseline struct {
	Temperature Stat `yaml:"temperature" json:"temperature"`
	PH          Stat `yaml:"ph" json:"ph"`
	Salinity    Stat `yaml:"salinity" json:"salinity"`
}

// Validate requires every standard deviation to be strictly positive.
func (b Baseline) Validate() error {
	stats := []struct {
		name string
		stat Stat
	}{
		{"temperature", b.Temperature},
		{"ph", b.PH},
		{"salinity", b.Salinity},
	}
	for _, s := range stats {
		if !(s.stat.Std > 0) {
			return fmt.Errorf("%w: %s std must be > 0, got %g", ErrInvalidBaseline, s.name, s.stat.Std)
		}
	}
	return nil
}

// DefaultBaselines returns the built-in statistics for the Callao zones.
func DefaultBaselines() map[string]Baseline {
	return map[string]Baseline{
		ZoneCallaoNorth: {
			Temperature: Stat{Mean: 19.5, Std: 1.2},
			PH:          Stat{Mean: 8.0, Std: 0.15},
			Salinity:    Stat{Mean: 35.0, Std: 1.5},
		},
		ZoneCallaoSouth: {
			Temperature: Stat{Mean: 19.3, Std: 1.3},
			PH:          Stat{Mean: 8.0, Std: 0.15},
			Salinity:    Stat{Mean: 34.8, Std: 1.5},
		},
	}
}

// BaselineRegistry is a read-only zone -> baseline table. It is safe for
// concurrent use because nothing mutates it after construction.
type BaselineRegistry struct {
	zones map[string]Baseline
}

// NewBaselineRegistry validates and copies the given baselines.
func NewBaselineRegistry(baselines map[string]Baseline) (*BaselineRegistry, error) {
	zones := make(map[string]Baseline, len(baselines))
	for zone, b := range baselines {
		if zone == "" {
			return nil, fmt.Errorf("%w: empty zone identifier", ErrInvalidBaseline)
		}
		if err := b.Validate(); err != nil {
			return nil, fmt.Errorf("zone %s: %w", zone, err)
		}
		zones[zone] = b
	}
	return &BaselineRegistry{zones: zones}, nil
}

// DefaultRegistry returns a registry holding DefaultBaselines.
func DefaultRegistry() *BaselineRegistry {
	r, err := NewBaselineRegistry(DefaultBaselines())
	if err != nil {
		panic(err) // built-in table is known valid
	}
	return r
}

// Lookup returns the baseline for zone, or false when the zone is unknown.
func (r *BaselineRegistry) Lookup(zone string) (Baseline, bool) {
	if r == nil {
		return Baseline{}, false
	}
	b, ok := r.zones[zone]
	return b, ok
}

// Zones lists the registered zone identifiers in sorted order.
func (r *BaselineRegistry) Zones() []string {
	if r == nil {
		return nil
	}
	out := make([]string, 0, len(r.zones))
	for z := range r.zones {
		out = append(out, z)
	}
	sort.Strings(out)
	return out
}
