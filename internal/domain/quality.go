package domain

// QualityScore rates how trustworthy a reading is on a 0-100 scale. Missing
// core sensors and values outside typical ocean ranges lower the score.
func QualityScore(r Reading) int {
	score := 100

	if r.TemperatureC == nil {
		score -= 20
	}
	if r.PHValue == nil {
		score -= 20
	}
	if r.Latitude == nil || r.Longitude == nil || *r.Latitude == 0 || *r.Longitude == 0 {
		score -= 30
	}

	if r.TemperatureC != nil {
		score -= rangePenalty(*r.TemperatureC, 10, 30, 15, 28)
	}
	if r.PHValue != nil {
		score -= rangePenalty(*r.PHValue, 6, 9, 7.5, 8.5)
	}
	if r.SalinityPPT != nil {
		score -= rangePenalty(*r.SalinityPPT, 25, 45, 30, 40)
	}

	if r.Battery != nil && *r.Battery < 20 {
		score -= 5
	}

	return max(score, 0)
}

// rangePenalty charges 10 outside the plausible range and a further 5
// outside the typical range.
func rangePenalty(v, plausibleLo, plausibleHi, typicalLo, typicalHi float64) int {
	penalty := 0
	if v < plausibleLo || v > plausibleHi {
		penalty += 10
	}
	if v < typicalLo || v > typicalHi {
		penalty += 5
	}
	return penalty
}

// Plausibility bounds for the Peruvian coast monitoring area.
const (
	coastLatMin      = -13.0
	coastLatMax      = -11.0
	coastLonMin      = -78.0
	coastLonMax      = -76.0
	plausibleTempMin = 5.0
	plausibleTempMax = 35.0
	plausiblePHMin   = 6.0
	plausiblePHMax   = 9.0
)

// PlausibilityWarnings lists advisory problems with a reading. They never
// block detection or scoring; an empty result means nothing looked off.
func PlausibilityWarnings(r Reading) []string {
	var warnings []string

	if r.Latitude == nil {
		warnings = append(warnings, "latitude is missing")
	} else if *r.Latitude < coastLatMin || *r.Latitude > coastLatMax {
		warnings = append(warnings, "latitude out of range for the Peruvian coast")
	}
	if r.Longitude == nil {
		warnings = append(warnings, "longitude is missing")
	} else if *r.Longitude < coastLonMin || *r.Longitude > coastLonMax {
		warnings = append(warnings, "longitude out of range for the Peruvian coast")
	}
	if r.TemperatureC != nil && (*r.TemperatureC < plausibleTempMin || *r.TemperatureC > plausibleTempMax) {
		warnings = append(warnings, "temperature out of expected ocean range")
	}
	if r.PHValue != nil && (*r.PHValue < plausiblePHMin || *r.PHValue > plausiblePHMax) {
		warnings = append(warnings, "pH out of expected ocean range")
	}

	return warnings
}
