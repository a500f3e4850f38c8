package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/what2eat/what2eat/internal/core/domain/weather"
	"github.com/what2eat/what2eat/internal/core/ports"
)

// DefaultWeatherCacheTTL bounds the staleness window of a cached report.
// Entries are not renewed on read.
const DefaultWeatherCacheTTL = 60 * time.Second

const weatherCacheKeyPrefix = "weather:"

// WeatherService serves weather lookups through a cache-aside read path:
// cache first, provider on miss, cache populated after a successful fetch.
// There is no cross-request coordination: concurrent misses for the same city
// may each hit the provider, and the last write wins on the TTL'd key.
type WeatherService struct {
	cache  ports.Cache
	client ports.WeatherClient
	ttl    time.Duration
	logger *logrus.Logger
}

// NewWeatherService creates a new weather service. A non-positive ttl falls
// back to DefaultWeatherCacheTTL.
func NewWeatherService(cache ports.Cache, client ports.WeatherClient, ttl time.Duration, logger *logrus.Logger) ports.WeatherService {
	if ttl <= 0 {
		ttl = DefaultWeatherCacheTTL
	}
	return &WeatherService{
		cache:  cache,
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

// cacheKey is exact-string: no casing or whitespace normalization is applied
// beyond what the caller provides.
func cacheKey(city string) string {
	return weatherCacheKeyPrefix + city
}

// Get returns the weather report for city. On a cache hit the provider is
// never invoked; on a miss a successful fetch populates the cache for the TTL
// window. Negative results are not cached, and a failed cache write never
// fails the read path.
func (s *WeatherService) Get(ctx context.Context, city string) (*weather.Report, error) {
	key := cacheKey(city)

	cached, ok, err := s.cache.Get(ctx, key)
	if err != nil && s.logger != nil {
		s.logger.WithFields(logrus.Fields{"key": key}).WithError(err).Warn("weather: cache read failed")
	}
	if ok {
		var report weather.Report
		if decodeErr := json.Unmarshal(cached, &report); decodeErr == nil {
			if s.logger != nil {
				s.logger.WithFields(logrus.Fields{"key": key}).Debug("weather: cache hit")
			}
			return &report, nil
		} else if s.logger != nil {
			s.logger.WithFields(logrus.Fields{"key": key}).WithError(decodeErr).Warn("weather: discarding undecodable cache entry")
		}
	}

	report, ok := s.client.Fetch(ctx, city)
	if !ok {
		return nil, weather.ErrNotFound
	}

	if encoded, err := json.Marshal(report); err == nil {
		if err := s.cache.Set(ctx, key, encoded, s.ttl); err != nil && s.logger != nil {
			s.logger.WithFields(logrus.Fields{"key": key}).WithError(err).Warn("weather: cache write failed")
		}
	}

	return report, nil
}

// GetLive always asks the provider, bypassing the cache in both directions.
func (s *WeatherService) GetLive(ctx context.Context, city string) (*weather.Report, error) {
	report, ok := s.client.Fetch(ctx, city)
	if !ok {
		return nil, weather.ErrNotFound
	}
	return report, nil
}
