// Package domain models oceanographic buoy readings and the rules that turn
// them into fishing-zone rankings and anomaly alerts.
//
// # Data Source
//
// Readings originate from moored buoys off the Callao coast. Each buoy posts a
// flat JSON document with whatever sensors it currently has online; any field
// may be absent. The ingest path publishes each document unchanged to the Kafka
// source topic, and the HTTP API accepts the same shape.
//
// # Reading Conventions
//
// Units:
//
//	temperature      degrees Celsius
//	ph               unitless, 0-14 (sea water sits near 8.0)
//	salinity         parts per thousand (ppt)
//	hydrocarbon_ppm  parts per million
//	latitude/longitude WGS-84 decimal degrees
//	depth            metres
//	current_speed    knots
//
// Missing fields resolve to fixed defaults (temperature 19.0, pH 8.0, salinity
// 35.0, hydrocarbon 0, latitude -12.0, longitude -77.0, depth 40.0, current
// speed 1.0). These are policy constants, not derived from data.
//
// # Anomaly Rules
//
// Detection compares a reading against the statistical baseline of its zone
// using absolute z-scores (|value - mean| / std):
//
//	Temperature: z > 3.0  -> TEMPERATURE_ANOMALY, severity min(round(z*20), 100)
//	pH:          z > 2.5  -> ACIDIFICATION_DETECTED when more than 0.5 below the
//	                         mean, PH_ANOMALY otherwise; severity min(round(z*30), 100)
//	Hydrocarbon: > 5 ppm  -> PROBABLE_SPILL, fixed severity 95, urgency IMMEDIATE_ALERT
//
// The hydrocarbon rule ignores the baseline. An unknown zone yields no findings
// at all, including no spill finding.
//
// Severity maps to priority: >= 80 CRITICAL, >= 50 HIGH, otherwise MEDIUM.
//
// # Fishing Score
//
// Each reading starts at 0.5 and gains or loses weight per parameter. Bands are
// checked narrowest first and the first match wins:
//
//	Temperature: [18,22] +0.25 | [15,25] +0.15 | otherwise -0.20
//	pH:          [7.8,8.2] +0.15 | [7.5,8.5] +0.08 | otherwise -0.15
//	Salinity:    [33,37] +0.10 | otherwise -0.10
//
// The sum is clamped to [0,1]. Results are ranked by descending probability with
// a stable sort, so equal scores keep their input order.
package domain
