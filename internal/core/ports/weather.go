package ports

import (
	"context"

	"github.com/what2eat/what2eat/internal/core/domain/weather"
)

// WeatherClient fetches weather data from the upstream provider. The second
// return value is a plain data-or-not signal: transport failures, unknown
// cities, and malformed upstream payloads all collapse to ok=false and are
// logged inside the implementation, never surfaced to callers.
type WeatherClient interface {
	Fetch(ctx context.Context, city string) (*weather.Report, bool)
}

// WeatherService serves weather lookups, optionally through a cache.
type WeatherService interface {
	// Get returns the report for city, consulting the cache first.
	// weather.ErrNotFound when no data could be produced.
	Get(ctx context.Context, city string) (*weather.Report, error)
	// GetLive bypasses the cache and always asks the provider.
	GetLive(ctx context.Context, city string) (*weather.Report, error)
}
