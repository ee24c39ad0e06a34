package domain

import (
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testUnknownZone = "LIMA_OFFSHORE"

func nominalReading() Reading {
	return Reading{
		TemperatureC: Float(19.5),
		PHValue:      Float(8.0),
		SalinityPPT:  Float(35.0),
	}
}

func TestDetect_TemperatureAnomaly(t *testing.T) {
	d := NewDetector(DefaultRegistry())
	r := nominalReading()
	r.TemperatureC = Float(19.5 + 3.1*1.2)

	findings := d.Detect(r, ZoneCallaoNorth)

	require.Len(t, findings, 1)
	assert.Equal(t, KindTemperatureAnomaly, findings[0].Kind)
	assert.Equal(t, 62, findings[0].Severity)
	assert.Equal(t, "temperature 23.2°C is 3.1σ away from the zone baseline (19.5°C)", findings[0].Explanation)
	assert.Empty(t, findings[0].Urgency)
}

func TestDetect_TemperatureUsesZoneBaseline(t *testing.T) {
	d := NewDetector(DefaultRegistry())
	r := nominalReading()
	r.TemperatureC = Float(23.22)

	findings := d.Detect(r, ZoneCallaoSouth)

	require.Len(t, findings, 1)
	assert.Equal(t, 60, findings[0].Severity) // z = 3.92/1.3 ≈ 3.015
}

func TestDetect_TemperatureSeverityCapped(t *testing.T) {
	d := NewDetector(DefaultRegistry())

	tests := []struct {
		name        string
		temperature float64
	}{
		{"hot", 30},
		{"cold", -50},
		{"finite beyond int range", 1e20},
		{"negative beyond int range", -1e20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			findings := d.Detect(Reading{TemperatureC: Float(tt.temperature)}, ZoneCallaoNorth)
			require.Len(t, findings, 1)
			assert.Equal(t, KindTemperatureAnomaly, findings[0].Kind)
			assert.Equal(t, MaxSeverity, findings[0].Severity)
			assert.Equal(t, PriorityCritical, PriorityFor(findings[0].Severity))
		})
	}
}

func TestDetect_BelowThresholds(t *testing.T) {
	d := NewDetector(DefaultRegistry())

	tests := []struct {
		name    string
		reading Reading
	}{
		{"exactly at baseline", nominalReading()},
		{"temperature under 3 sigma", Reading{TemperatureC: Float(23.0)}},
		{"ph under 2.5 sigma", Reading{PHValue: Float(7.65)}},
		{"hydrocarbon at threshold", Reading{HydrocarbonPPM: Float(5.0)}},
		{"salinity far off has no rule", Reading{SalinityPPT: Float(20.0)}},
		{"all fields missing", Reading{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Empty(t, d.Detect(tt.reading, ZoneCallaoNorth))
		})
	}
}

func TestDetect_PHRules(t *testing.T) {
	d := NewDetector(DefaultRegistry())

	tests := []struct {
		name        string
		ph          float64
		kind        FindingKind
		severity    int
		explanation string
	}{
		{"acidification well below mean", 7.4, KindAcidificationDetected, 100, "pH 7.40 indicates possible ocean acidification"},
		{"acidification just past margin", 7.45, KindAcidificationDetected, 100, "pH 7.45 indicates possible ocean acidification"},
		{"exactly at margin", 7.5, KindPHAnomaly, 100, "pH 7.50 is outside the normal range"},
		{"low but within margin", 7.6, KindPHAnomaly, 80, "pH 7.60 is outside the normal range"},
		{"high ph", 8.45, KindPHAnomaly, 90, "pH 8.45 is outside the normal range"},
		{"extreme high ph capped", 14, KindPHAnomaly, 100, "pH 14.00 is outside the normal range"},
		{"finite ph beyond int range capped", 1e19, KindPHAnomaly, 100, "pH 10000000000000000000.00 is outside the normal range"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			findings := d.Detect(Reading{PHValue: Float(tt.ph)}, ZoneCallaoNorth)
			require.Len(t, findings, 1)
			assert.Equal(t, tt.kind, findings[0].Kind)
			assert.Equal(t, tt.severity, findings[0].Severity)
			assert.Equal(t, tt.explanation, findings[0].Explanation)
		})
	}
}

func TestDetect_ProbableSpill(t *testing.T) {
	d := NewDetector(DefaultRegistry())
	r := nominalReading()
	r.HydrocarbonPPM = Float(10)

	findings := d.Detect(r, ZoneCallaoNorth)

	require.Len(t, findings, 1)
	assert.Equal(t, KindProbableSpill, findings[0].Kind)
	assert.Equal(t, 95, findings[0].Severity)
	assert.Equal(t, UrgencyImmediate, findings[0].Urgency)
	assert.Equal(t, "hydrocarbons detected: 10.0 ppm", findings[0].Explanation)
}

func TestDetect_MultipleFindingsInRuleOrder(t *testing.T) {
	d := NewDetector(DefaultRegistry())
	r := Reading{
		TemperatureC:   Float(25.0),
		PHValue:        Float(7.2),
		HydrocarbonPPM: Float(12),
	}

	findings := d.Detect(r, ZoneCallaoNorth)

	require.Len(t, findings, 3)
	assert.Equal(t, KindTemperatureAnomaly, findings[0].Kind)
	assert.Equal(t, 92, findings[0].Severity)
	assert.Equal(t, KindAcidificationDetected, findings[1].Kind)
	assert.Equal(t, 100, findings[1].Severity)
	assert.Equal(t, KindProbableSpill, findings[2].Kind)
}

func TestDetect_UnknownZone(t *testing.T) {
	d := NewDetector(DefaultRegistry())
	r := Reading{TemperatureC: Float(40), HydrocarbonPPM: Float(50)}

	assert.Empty(t, d.Detect(r, testUnknownZone))
	assert.Empty(t, d.Detect(r, ""))
}

func TestDetect_ConcurrentUse(t *testing.T) {
	d := NewDetector(DefaultRegistry())
	r := Reading{TemperatureC: Float(25.0), HydrocarbonPPM: Float(12)}

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			findings := d.Detect(r, ZoneCallaoNorth)
			assert.Len(t, findings, 2)
		}()
	}
	wg.Wait()
}

func TestDeviations(t *testing.T) {
	b, ok := DefaultRegistry().Lookup(ZoneCallaoNorth)
	require.True(t, ok)

	z := Deviations(Reading{TemperatureC: Float(17.1), SalinityPPT: Float(38.0)}, b)

	assert.InDelta(t, 2.0, z.Temperature, 1e-9)
	assert.InDelta(t, 0.0, z.PH, 1e-9)
	assert.InDelta(t, 2.0, z.Salinity, 1e-9)
}

func TestPriorityFor(t *testing.T) {
	tests := []struct {
		severity int
		expected Priority
	}{
		{100, PriorityCritical},
		{95, PriorityCritical},
		{80, PriorityCritical},
		{79, PriorityHigh},
		{50, PriorityHigh},
		{49, PriorityMedium},
		{0, PriorityMedium},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, PriorityFor(tt.severity), "severity %d", tt.severity)
	}
}

func TestRecommendedActions(t *testing.T) {
	t.Run("spill playbook", func(t *testing.T) {
		assert.Equal(t, []string{
			"notify maritime authority",
			"activate containment protocol",
			"alert nearby vessels",
			"deploy additional perimeter buoys",
		}, RecommendedActions(KindProbableSpill))
	})

	t.Run("acidification playbook", func(t *testing.T) {
		assert.Equal(t, []string{
			"monitor every 30 minutes",
			"alert fishing cooperatives",
			"log to scientific database",
		}, RecommendedActions(KindAcidificationDetected))
	})

	t.Run("temperature playbook", func(t *testing.T) {
		assert.Equal(t, []string{
			"cross-check adjacent buoys",
			"evaluate possible El Niño onset",
			"update predictive models",
		}, RecommendedActions(KindTemperatureAnomaly))
	})

	t.Run("fallback for other kinds", func(t *testing.T) {
		assert.Equal(t, []string{"monitor the situation"}, RecommendedActions(KindPHAnomaly))
		assert.Equal(t, []string{"monitor the situation"}, RecommendedActions(FindingKind("SOMETHING_NEW")))
	})

	t.Run("returned slice is a copy", func(t *testing.T) {
		actions := RecommendedActions(KindProbableSpill)
		actions[0] = "changed"
		assert.Equal(t, "notify maritime authority", RecommendedActions(KindProbableSpill)[0])
	})
}

func TestBuildAlert(t *testing.T) {
	fixedTime := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)
	SetClock(clockwork.NewFakeClockAt(fixedTime))
	defer SetClock(nil)

	loc := Location{Lat: -12.0564, Lon: -77.1181}

	t.Run("spill alert", func(t *testing.T) {
		f := Finding{Kind: KindProbableSpill, Severity: 95, Explanation: "hydrocarbons detected: 10.0 ppm", Urgency: UrgencyImmediate}

		alert := BuildAlert(f, loc)

		_, err := uuid.Parse(alert.ID)
		require.NoError(t, err)
		assert.Equal(t, PriorityCritical, alert.Priority)
		assert.Equal(t, KindProbableSpill, alert.Kind)
		assert.Equal(t, 95, alert.Severity)
		assert.Equal(t, f.Explanation, alert.Message)
		assert.Equal(t, UrgencyImmediate, alert.Urgency)
		assert.Equal(t, loc, alert.Location)
		assert.Equal(t, fixedTime, alert.Timestamp)
		assert.Len(t, alert.RecommendedActions, 4)
	})

	t.Run("medium priority ph anomaly", func(t *testing.T) {
		alert := BuildAlert(Finding{Kind: KindPHAnomaly, Severity: 40}, loc)

		assert.Equal(t, PriorityMedium, alert.Priority)
		assert.Equal(t, []string{"monitor the situation"}, alert.RecommendedActions)
	})

	t.Run("ids are unique", func(t *testing.T) {
		f := Finding{Kind: KindTemperatureAnomaly, Severity: 62}
		assert.NotEqual(t, BuildAlert(f, loc).ID, BuildAlert(f, loc).ID)
	})
}

func TestBuildAlerts_PreservesOrder(t *testing.T) {
	findings := []Finding{
		{Kind: KindTemperatureAnomaly, Severity: 62},
		{Kind: KindProbableSpill, Severity: 95},
	}

	alerts := BuildAlerts(findings, Location{})

	require.Len(t, alerts, 2)
	assert.Equal(t, PriorityHigh, alerts[0].Priority)
	assert.Equal(t, PriorityCritical, alerts[1].Priority)
	assert.Empty(t, BuildAlerts(nil, Location{}))
}
