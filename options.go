package vendex

import (
	"time"

	"go.uber.org/zap"

	searchuc "github.com/greenplate/vendex/internal/usecase/search"
)

type clientConfig struct {
	addrs            []string
	username         string
	password         string
	db               int
	keyPrefix        string
	geocodeURL       string
	geocodeUserAgent string
	geocodeTimeout   time.Duration
	geocoder         searchuc.Geocoder
	radiusMiles      float64
	queryLogCap      int64
	logger           *zap.Logger
}

// Option configures the vendex Client.
type Option func(*clientConfig)

// WithRedis points the client at a Redis deployment.
func WithRedis(addrs []string, password string) Option {
	return func(c *clientConfig) {
		c.addrs = addrs
		c.password = password
	}
}

// WithRedisDB selects a numbered Redis database.
func WithRedisDB(db int) Option {
	return func(c *clientConfig) { c.db = db }
}

// WithKeyPrefix namespaces all stored keys.
func WithKeyPrefix(prefix string) Option {
	return func(c *clientConfig) { c.keyPrefix = prefix }
}

// WithGeocoderURL points proximity search at a Nominatim-style endpoint.
func WithGeocoderURL(baseURL, userAgent string, timeout time.Duration) Option {
	return func(c *clientConfig) {
		c.geocodeURL = baseURL
		c.geocodeUserAgent = userAgent
		c.geocodeTimeout = timeout
	}
}

// WithGeocoder injects a custom geocoder, replacing the HTTP client.
func WithGeocoder(g searchuc.Geocoder) Option {
	return func(c *clientConfig) { c.geocoder = g }
}

// WithRadiusMiles overrides the proximity search radius. Zero means
// exact-point matching.
func WithRadiusMiles(radius float64) Option {
	return func(c *clientConfig) { c.radiusMiles = radius }
}

// WithQueryLogCap bounds the persisted query log.
func WithQueryLogCap(entries int64) Option {
	return func(c *clientConfig) { c.queryLogCap = entries }
}

// WithLogger attaches a zap logger to every operation.
func WithLogger(logger *zap.Logger) Option {
	return func(c *clientConfig) { c.logger = logger }
}
