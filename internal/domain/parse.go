package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// ParseReading decodes a JSON reading and rejects values that are not usable
// numbers. The returned error wraps ErrMalformedReading.
func ParseReading(data []byte) (Reading, error) {
	var r Reading
	if err := json.Unmarshal(data, &r); err != nil {
		return Reading{}, fmt.Errorf("parse reading: %w: %w", ErrMalformedReading, err)
	}
	if err := r.Validate(); err != nil {
		return Reading{}, fmt.Errorf("parse reading: %w", err)
	}
	return r, nil
}

// SerializeAlert marshals an alert for the sink topic, keyed by alert ID.
func SerializeAlert(alert Alert) (OutputEvent, error) {
	data, err := json.Marshal(alert)
	if err != nil {
		return OutputEvent{}, fmt.Errorf("serialize alert: %w", err)
	}
	return OutputEvent{
		Key:   []byte(alert.ID),
		Value: data,
		Headers: map[string]string{
			"type":         string(alert.Kind),
			"priority":     string(alert.Priority),
			"zone":         alert.Zone,
			"generated_at": alert.Timestamp.Format(time.RFC3339),
		},
	}, nil
}
