package health

import "context"

// DBPinger checks database availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// GeocoderChecker checks geocoding provider availability.
type GeocoderChecker interface {
	HealthCheck(ctx context.Context) error
}
