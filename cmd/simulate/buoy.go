package main

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/couchcryptid/ocean-sense-service/internal/domain"
)

// buoy is a moored sensor with a fixed anchor point it drifts around.
type buoy struct {
	ID      string
	Name    string
	Zone    string
	BaseLat float64
	BaseLon float64
	Drift   float64 // degrees
}

var callaoBuoys = []buoy{
	{ID: "BUOY_001", Name: "Callao North", Zone: domain.ZoneCallaoNorth, BaseLat: -12.0564, BaseLon: -77.1181, Drift: 0.001},
	{ID: "BUOY_002", Name: "Callao South", Zone: domain.ZoneCallaoSouth, BaseLat: -12.0612, BaseLon: -77.1254, Drift: 0.0012},
	{ID: "BUOY_003", Name: "Callao Center", Zone: domain.ZoneCallaoNorth, BaseLat: -12.0523, BaseLon: -77.1123, Drift: 0.0008},
}

// Typical Callao surface conditions and the jitter applied around them.
const (
	baseTemperature  = 19.5
	temperatureRange = 2.0
	diurnalAmplitude = 1.5
	basePH           = 8.0
	phRange          = 0.3
	baseSalinity     = 35.0
	salinityRange    = 2.0
	baseBattery      = 85.0
	minBattery       = 50.0
	spillPPM         = 8.5
)

// generator produces synthetic readings. rng is injected so tests are
// reproducible.
type generator struct {
	rng       *rand.Rand
	spillProb float64
}

// jitter returns a uniform value in [-span/2, span/2).
func (g *generator) jitter(span float64) float64 {
	return (g.rng.Float64() - 0.5) * span
}

// reading builds one sample for b at time now. The bool reports whether a
// hydrocarbon spike was injected.
func (g *generator) reading(b buoy, now time.Time) (domain.Reading, bool) {
	hours := float64(now.UnixMilli()) / float64(time.Hour/time.Millisecond)
	lat := b.BaseLat + math.Sin(hours)*b.Drift
	lon := b.BaseLon + math.Cos(hours)*b.Drift

	// Warmest mid-afternoon, coolest before dawn.
	diurnal := math.Sin(float64(now.Hour()-6)*math.Pi/12) * diurnalAmplitude

	r := domain.Reading{
		BuoyID:       b.ID,
		Zone:         b.Zone,
		TemperatureC: domain.Float(round(baseTemperature+diurnal+g.jitter(temperatureRange), 2)),
		PHValue:      domain.Float(round(basePH+g.jitter(phRange), 2)),
		SalinityPPT:  domain.Float(round(baseSalinity+g.jitter(salinityRange), 2)),
		Latitude:     domain.Float(round(lat, 6)),
		Longitude:    domain.Float(round(lon, 6)),
		Battery:      domain.Float(math.Round(math.Max(minBattery, baseBattery-g.rng.Float64()*10))),
	}

	spill := g.spillProb > 0 && g.rng.Float64() < g.spillProb
	if spill {
		r.HydrocarbonPPM = domain.Float(spillPPM)
	}
	return r, spill
}

func round(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}
