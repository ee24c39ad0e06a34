package domain

import (
	"math"
	"sort"
)

// Condition labels.
const (
	ConditionOptimal = "Optimal"
	ConditionGood    = "Good"
	ConditionRegular = "Regular"
)

// Recommendation texts, keyed by probability tier.
const (
	RecommendHighly      = "highly recommended zone"
	RecommendGood        = "good capture probability"
	RecommendRegular     = "regular conditions"
	RecommendUnfavorable = "unfavorable conditions"
)

const baseProbability = 0.5

// ScoredZone is one ranked fishing-zone candidate.
type ScoredZone struct {
	BuoyID         string  `json:"buoy_id,omitempty"`
	Lat            float64 `json:"lat"`
	Lon            float64 `json:"lon"`
	Probability    float64 `json:"probability"`
	Temperature    float64 `json:"temperature"`
	PH             float64 `json:"ph"`
	Salinity       float64 `json:"salinity"`
	Conditions     string  `json:"conditions"`
	Recommendation string  `json:"recommendation"`
}

// band is an inclusive range with the weight it contributes on a match.
type band struct {
	lo, hi float64
	weight float64
}

func (b band) contains(v float64) bool { return v >= b.lo && v <= b.hi }

// bandChain is evaluated in order; the first matching band wins and
// fallback applies when none match.
type bandChain struct {
	bands    []band
	fallback float64
}

func (c bandChain) weight(v float64) float64 {
	for _, b := range c.bands {
		if b.contains(v) {
			return b.weight
		}
	}
	return c.fallback
}

var (
	optimalTemperature    = band{lo: 18, hi: 22, weight: 0.25}
	acceptableTemperature = band{lo: 15, hi: 25, weight: 0.15}
	optimalPH             = band{lo: 7.8, hi: 8.2, weight: 0.15}
	acceptablePH          = band{lo: 7.5, hi: 8.5, weight: 0.08}
	optimalSalinity       = band{lo: 33, hi: 37, weight: 0.10}

	temperatureChain = bandChain{bands: []band{optimalTemperature, acceptableTemperature}, fallback: -0.20}
	phChain          = bandChain{bands: []band{optimalPH, acceptablePH}, fallback: -0.15}
	salinityChain    = bandChain{bands: []band{optimalSalinity}, fallback: -0.10}
)

// FishingProbability returns the clamped, unrounded catch probability for r.
func FishingProbability(r Reading) float64 {
	p := baseProbability +
		temperatureChain.weight(r.Temperature()) +
		phChain.weight(r.PH()) +
		salinityChain.weight(r.Salinity())
	return math.Max(0, math.Min(1, p))
}

// ClassifyConditions labels a reading Optimal, Good, or Regular from its
// temperature and pH.
func ClassifyConditions(r Reading) string {
	temp, ph := r.Temperature(), r.PH()
	switch {
	case optimalTemperature.contains(temp) && optimalPH.contains(ph):
		return ConditionOptimal
	case acceptableTemperature.contains(temp) && acceptablePH.contains(ph):
		return ConditionGood
	default:
		return ConditionRegular
	}
}

// RecommendationFor maps a probability to advice. Each threshold is an
// exclusive lower bound.
func RecommendationFor(probability float64) string {
	switch {
	case probability > 0.75:
		return RecommendHighly
	case probability > 0.5:
		return RecommendGood
	case probability > 0.3:
		return RecommendRegular
	default:
		return RecommendUnfavorable
	}
}

// ScoreReading evaluates a single reading without ranking.
func ScoreReading(r Reading) ScoredZone {
	p := FishingProbability(r)
	return ScoredZone{
		BuoyID:         r.BuoyID,
		Lat:            r.Lat(),
		Lon:            r.Lon(),
		Probability:    roundTo(p, 3),
		Temperature:    roundTo(r.Temperature(), 2),
		PH:             roundTo(r.PH(), 2),
		Salinity:       roundTo(r.Salinity(), 2),
		Conditions:     ClassifyConditions(r),
		Recommendation: RecommendationFor(p),
	}
}

// ScoreReadings scores every reading and ranks the result by descending
// probability. Equal probabilities keep their input order. The output always
// has the same length as the input; an empty input yields an empty, non-nil slice.
func ScoreReadings(readings []Reading) []ScoredZone {
	out := make([]ScoredZone, 0, len(readings))
	for _, r := range readings {
		out = append(out, ScoreReading(r))
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Probability > out[j].Probability
	})
	return out
}

func roundTo(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}
