package domain

import (
	"time"

	"github.com/google/uuid"
)

// Priority is the alert tier derived from severity.
type Priority string

const (
	PriorityCritical Priority = "CRITICAL"
	PriorityHigh     Priority = "HIGH"
	PriorityMedium   Priority = "MEDIUM"
)

// Alert is a finding enriched for notification. It is built once and not
// modified afterwards, except for the location enrichment fields.
type Alert struct {
	ID                 string      `json:"id"`
	Priority           Priority    `json:"priority"`
	Kind               FindingKind `json:"type"`
	Severity           int         `json:"severity"`
	Message            string      `json:"message"`
	Urgency            string      `json:"urgency,omitempty"`
	Location           Location    `json:"location"`
	Zone               string      `json:"zone,omitempty"`
	BuoyID             string      `json:"buoy_id,omitempty"`
	Timestamp          time.Time   `json:"timestamp"`
	RecommendedActions []string    `json:"recommended_actions"`

	// Reverse-geocoding enrichment.
	PlaceName        string `json:"place_name,omitempty"`
	FormattedAddress string `json:"formatted_address,omitempty"`
}

// genericAction is returned for kinds without a dedicated playbook.
const genericAction = "monitor the situation"

var recommendedActions = map[FindingKind][]string{
	KindProbableSpill: {
		"notify maritime authority",
		"activate containment protocol",
		"alert nearby vessels",
		"deploy additional perimeter buoys",
	},
	KindAcidificationDetected: {
		"monitor every 30 minutes",
		"alert fishing cooperatives",
		"log to scientific database",
	},
	KindTemperatureAnomaly: {
		"cross-check adjacent buoys",
		"evaluate possible El Niño onset",
		"update predictive models",
	},
}

// RecommendedActions returns the ordered playbook for kind. The slice is a
// copy and may be modified by the caller.
func RecommendedActions(kind FindingKind) []string {
	actions, ok := recommendedActions[kind]
	if !ok {
		return []string{genericAction}
	}
	out := make([]string, len(actions))
	copy(out, actions)
	return out
}

// PriorityFor maps a severity score to its priority tier.
func PriorityFor(severity int) Priority {
	switch {
	case severity >= 80:
		return PriorityCritical
	case severity >= 50:
		return PriorityHigh
	default:
		return PriorityMedium
	}
}

// BuildAlert expands a finding into an alert stamped with the current time.
func BuildAlert(f Finding, loc Location) Alert {
	return Alert{
		ID:                 uuid.NewString(),
		Priority:           PriorityFor(f.Severity),
		Kind:               f.Kind,
		Severity:           f.Severity,
		Message:            f.Explanation,
		Urgency:            f.Urgency,
		Location:           loc,
		Timestamp:          Now(),
		RecommendedActions: RecommendedActions(f.Kind),
	}
}

// BuildAlerts builds one alert per finding, preserving finding order.
func BuildAlerts(findings []Finding, loc Location) []Alert {
	alerts := make([]Alert, 0, len(findings))
	for _, f := range findings {
		alerts = append(alerts, BuildAlert(f, loc))
	}
	return alerts
}
