package domain

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"
)

// Defaults applied when a reading omits a field.
const (
	DefaultTemperature  = 19.0
	DefaultPH           = 8.0
	DefaultSalinity     = 35.0
	DefaultHydrocarbon  = 0.0
	DefaultLatitude     = -12.0
	DefaultLongitude    = -77.0
	DefaultDepth        = 40.0
	DefaultCurrentSpeed = 1.0
)

// ErrMalformedReading is returned when a reading carries a value that cannot
// take part in arithmetic (non-numeric JSON, NaN, or infinity).
var ErrMalformedReading = errors.New("malformed reading")

// Location is a WGS-84 coordinate pair attached to alerts.
type Location struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Reading is one buoy sample. Every sensor field is optional; use the accessor
// methods to read a value with its default applied.
type Reading struct {
	BuoyID         string   `json:"buoy_id,omitempty"`
	Zone           string   `json:"zone,omitempty"`
	TemperatureC   *float64 `json:"temperature,omitempty"`
	PHValue        *float64 `json:"ph,omitempty"`
	SalinityPPT    *float64 `json:"salinity,omitempty"`
	HydrocarbonPPM *float64 `json:"hydrocarbon_ppm,omitempty"`
	Latitude       *float64 `json:"latitude,omitempty"`
	Longitude      *float64 `json:"longitude,omitempty"`
	DepthM         *float64 `json:"depth,omitempty"`
	CurrentSpeedKn *float64 `json:"current_speed,omitempty"`
	Battery        *float64 `json:"battery,omitempty"` // percent
}

// Float returns a pointer to v, for building readings in code.
func Float(v float64) *float64 {
	return &v
}

func valueOr(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}

func (r Reading) Temperature() float64  { return valueOr(r.TemperatureC, DefaultTemperature) }
func (r Reading) PH() float64           { return valueOr(r.PHValue, DefaultPH) }
func (r Reading) Salinity() float64     { return valueOr(r.SalinityPPT, DefaultSalinity) }
func (r Reading) Hydrocarbon() float64  { return valueOr(r.HydrocarbonPPM, DefaultHydrocarbon) }
func (r Reading) Lat() float64          { return valueOr(r.Latitude, DefaultLatitude) }
func (r Reading) Lon() float64          { return valueOr(r.Longitude, DefaultLongitude) }
func (r Reading) Depth() float64        { return valueOr(r.DepthM, DefaultDepth) }
func (r Reading) CurrentSpeed() float64 { return valueOr(r.CurrentSpeedKn, DefaultCurrentSpeed) }

// Location returns the reading's coordinates with defaults applied.
func (r Reading) Location() Location {
	return Location{Lat: r.Lat(), Lon: r.Lon()}
}

// Validate rejects non-finite values. Absent fields are always valid.
func (r Reading) Validate() error {
	fields := []struct {
		name  string
		value *float64
	}{
		{"temperature", r.TemperatureC},
		{"ph", r.PHValue},
		{"salinity", r.SalinityPPT},
		{"hydrocarbon_ppm", r.HydrocarbonPPM},
		{"latitude", r.Latitude},
		{"longitude", r.Longitude},
		{"depth", r.DepthM},
		{"current_speed", r.CurrentSpeedKn},
		{"battery", r.Battery},
	}
	for _, f := range fields {
		if f.value == nil {
			continue
		}
		if math.IsNaN(*f.value) || math.IsInf(*f.value, 0) {
			return fmt.Errorf("%w: %s is not a finite number", ErrMalformedReading, f.name)
		}
	}
	return nil
}

// RawEvent represents an unprocessed message from the source topic.
type RawEvent struct {
	Key       []byte
	Value     []byte
	Headers   map[string]string
	Topic     string
	Partition int
	Offset    int64
	Timestamp time.Time
	Commit    func(ctx context.Context) error
}

// OutputEvent is the serialized form destined for the sink topic.
type OutputEvent struct {
	Key     []byte
	Value   []byte
	Headers map[string]string
}
