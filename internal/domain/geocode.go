package domain

import (
	"context"
	"log/slog"
)

// EnrichWithPlace attaches a place name to an alert from its coordinates.
// A nil geocoder, a lookup failure, or an empty result leaves the alert as is.
func EnrichWithPlace(ctx context.Context, alert Alert, geocoder Geocoder, logger *slog.Logger) Alert {
	if geocoder == nil {
		return alert
	}

	result, err := geocoder.ReverseGeocode(ctx, alert.Location.Lat, alert.Location.Lon)
	if err != nil {
		logger.Warn("reverse geocoding failed",
			"alert_id", alert.ID,
			"lat", alert.Location.Lat,
			"lon", alert.Location.Lon,
			"error", err,
		)
		return alert
	}
	if result.FormattedAddress == "" {
		return alert
	}

	alert.FormattedAddress = result.FormattedAddress
	alert.PlaceName = result.PlaceName
	return alert
}
