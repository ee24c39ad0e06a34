package domain

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample(buoy string, temp, ph, salinity float64) Reading {
	return Reading{
		BuoyID:       buoy,
		TemperatureC: Float(temp),
		PHValue:      Float(ph),
		SalinityPPT:  Float(salinity),
		Latitude:     Float(-12.0564),
		Longitude:    Float(-77.1181),
	}
}

func TestScoreReading(t *testing.T) {
	tests := []struct {
		name           string
		reading        Reading
		probability    float64
		conditions     string
		recommendation string
	}{
		{"optimal clamps to one", sample("b1", 20, 8.0, 35), 1.0, ConditionOptimal, RecommendHighly},
		{"optimal band edges inclusive", sample("b1", 22, 8.2, 37), 1.0, ConditionOptimal, RecommendHighly},
		{"acceptable band edges inclusive", sample("b1", 15, 7.5, 33), 0.83, ConditionGood, RecommendHighly},
		{"acceptable bands with salinity penalty", sample("b1", 16, 7.6, 30), 0.63, ConditionGood, RecommendGood},
		{"warm water penalty", sample("b1", 26, 8.0, 35), 0.55, ConditionRegular, RecommendGood},
		{"cold water penalty", sample("b1", 14, 8.0, 35), 0.55, ConditionRegular, RecommendGood},
		{"acidic and brackish", sample("b1", 20, 7.0, 40), 0.5, ConditionRegular, RecommendRegular},
		{"everything out of band", sample("b1", -50, 14, 0), 0.05, ConditionRegular, RecommendUnfavorable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScoreReading(tt.reading)
			assert.InDelta(t, tt.probability, got.Probability, 1e-9)
			assert.Equal(t, tt.conditions, got.Conditions)
			assert.Equal(t, tt.recommendation, got.Recommendation)
		})
	}
}

func TestScoreReading_Defaults(t *testing.T) {
	got := ScoreReading(Reading{})

	assert.Equal(t, -12.0, got.Lat)
	assert.Equal(t, -77.0, got.Lon)
	assert.Equal(t, 19.0, got.Temperature)
	assert.Equal(t, 8.0, got.PH)
	assert.Equal(t, 35.0, got.Salinity)
	assert.Equal(t, 1.0, got.Probability)
	assert.Equal(t, ConditionOptimal, got.Conditions)
}

func TestScoreReading_RoundsForPresentation(t *testing.T) {
	got := ScoreReading(sample("b1", 19.456, 8.004, 35.126))

	assert.Equal(t, 19.46, got.Temperature)
	assert.Equal(t, 8.0, got.PH)
	assert.Equal(t, 35.13, got.Salinity)
}

func TestRecommendationFor(t *testing.T) {
	tests := []struct {
		probability float64
		expected    string
	}{
		{1.0, RecommendHighly},
		{0.7501, RecommendHighly},
		{0.75, RecommendGood},
		{0.51, RecommendGood},
		{0.5, RecommendRegular},
		{0.31, RecommendRegular},
		{0.3, RecommendUnfavorable},
		{0, RecommendUnfavorable},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, RecommendationFor(tt.probability), "probability %v", tt.probability)
	}
}

func TestClassifyConditions(t *testing.T) {
	assert.Equal(t, ConditionOptimal, ClassifyConditions(sample("", 18, 7.8, 10)))
	assert.Equal(t, ConditionGood, ClassifyConditions(sample("", 17.9, 8.0, 35)))
	assert.Equal(t, ConditionGood, ClassifyConditions(sample("", 20, 8.3, 35)))
	assert.Equal(t, ConditionRegular, ClassifyConditions(sample("", 20, 8.6, 35)))
	assert.Equal(t, ConditionRegular, ClassifyConditions(sample("", 25.5, 8.0, 35)))
}

func TestScoreReadings_Empty(t *testing.T) {
	got := ScoreReadings(nil)
	require.NotNil(t, got)
	assert.Empty(t, got)

	got = ScoreReadings([]Reading{})
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestScoreReadings_SortedDescendingAndStable(t *testing.T) {
	readings := []Reading{
		sample("regular", 26, 8.0, 35), // 0.55
		sample("first-optimal", 20, 8.0, 35),
		sample("good", 16, 7.6, 30), // 0.63
		sample("second-optimal", 21, 8.1, 36),
		sample("third-optimal", 19, 7.9, 34),
	}

	got := ScoreReadings(readings)

	ids := make([]string, len(got))
	for i, z := range got {
		ids[i] = z.BuoyID
	}
	assert.Equal(t, []string{"first-optimal", "second-optimal", "third-optimal", "good", "regular"}, ids)
}

func TestScoreReadings_Properties(t *testing.T) {
	var readings []Reading
	for _, temp := range []float64{-50, 0, 14.9, 15, 18, 20, 22, 25, 25.1, 60} {
		for _, ph := range []float64{0, 7.4, 7.5, 7.8, 8.0, 8.2, 8.5, 9, 14} {
			for _, sal := range []float64{0, 32.9, 33, 35, 37, 37.1, 80} {
				readings = append(readings, sample(fmt.Sprintf("%g/%g/%g", temp, ph, sal), temp, ph, sal))
			}
		}
	}

	got := ScoreReadings(readings)

	require.Len(t, got, len(readings))
	seen := make(map[string]bool, len(got))
	for i, z := range got {
		assert.GreaterOrEqual(t, z.Probability, 0.0)
		assert.LessOrEqual(t, z.Probability, 1.0)
		if i > 0 {
			assert.GreaterOrEqual(t, got[i-1].Probability, z.Probability)
		}
		assert.False(t, seen[z.BuoyID], "duplicate output for %s", z.BuoyID)
		seen[z.BuoyID] = true
	}
}

func TestScoreReadings_RescoringSortedInputKeepsOrder(t *testing.T) {
	readings := []Reading{
		sample("a", 16, 7.6, 30),
		sample("b", 20, 8.0, 35),
		sample("c", 26, 8.0, 35),
		sample("d", 14, 8.0, 35),
		sample("e", 21, 8.0, 35),
	}

	first := ScoreReadings(readings)

	resorted := make([]Reading, len(first))
	for i, z := range first {
		resorted[i] = sample(z.BuoyID, z.Temperature, z.PH, z.Salinity)
	}
	second := ScoreReadings(resorted)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("rescoring changed order (-first +second):\n%s", diff)
	}
}
