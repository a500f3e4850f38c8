package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/sirupsen/logrus"

	"github.com/what2eat/what2eat/internal/core/domain/weather"
	"github.com/what2eat/what2eat/internal/core/ports"
)

// ClientConfig holds the Open-Meteo endpoint configuration.
type ClientConfig struct {
	GeocodingBaseURL string
	ForecastBaseURL  string
}

// Client implements ports.WeatherClient against the Open-Meteo API with a
// two-step protocol: geocode the city name, then fetch the day's forecast for
// the resolved coordinates.
type Client struct {
	config     *ClientConfig
	httpClient *http.Client
	logger     *logrus.Logger
}

// NewClient creates a new Open-Meteo client. The http.Client is owned by the
// caller and must carry a request timeout so a slow upstream cannot stall
// requests indefinitely.
func NewClient(config *ClientConfig, httpClient *http.Client, logger *logrus.Logger) ports.WeatherClient {
	return &Client{
		config:     config,
		httpClient: httpClient,
		logger:     logger,
	}
}

type geocodingResponse struct {
	Results []struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	} `json:"results"`
}

type forecastResponse struct {
	CurrentWeather *struct {
		WeatherCode *int `json:"weathercode"`
	} `json:"current_weather"`
	Daily *struct {
		TemperatureMax []*float64 `json:"temperature_2m_max"`
		TemperatureMin []*float64 `json:"temperature_2m_min"`
	} `json:"daily"`
}

// Fetch resolves the city and returns its current weather. Every failure mode
// (transport error, non-2xx status, decode failure, unknown city, missing
// response sections) collapses to ok=false; callers only get a binary signal.
func (c *Client) Fetch(ctx context.Context, city string) (*weather.Report, bool) {
	geo, ok := c.geocode(ctx, city)
	if !ok {
		return nil, false
	}

	forecast, ok := c.forecast(ctx, geo.lat, geo.lon)
	if !ok {
		return nil, false
	}

	if forecast.CurrentWeather == nil || forecast.Daily == nil ||
		(len(forecast.Daily.TemperatureMin) == 0 && len(forecast.Daily.TemperatureMax) == 0) {
		if c.logger != nil {
			c.logger.WithFields(logrus.Fields{"city": city}).Error("openmeteo: forecast response missing current or daily data")
		}
		return nil, false
	}

	return &weather.Report{
		City:           city,
		MinTemperature: weather.FormatTemperature(first(forecast.Daily.TemperatureMin)),
		MaxTemperature: weather.FormatTemperature(first(forecast.Daily.TemperatureMax)),
		Description:    weather.DescribeCode(forecast.CurrentWeather.WeatherCode),
	}, true
}

type coordinates struct {
	lat, lon float64
}

func (c *Client) geocode(ctx context.Context, city string) (coordinates, bool) {
	params := url.Values{}
	params.Set("name", city)
	params.Set("count", "1")
	params.Set("language", "en")

	var resp geocodingResponse
	if !c.getJSON(ctx, c.config.GeocodingBaseURL+"/v1/search?"+params.Encode(), &resp) {
		return coordinates{}, false
	}

	if len(resp.Results) == 0 {
		if c.logger != nil {
			c.logger.WithFields(logrus.Fields{"city": city}).Error("openmeteo: city not found")
		}
		return coordinates{}, false
	}

	top := resp.Results[0]
	return coordinates{lat: top.Latitude, lon: top.Longitude}, true
}

func (c *Client) forecast(ctx context.Context, lat, lon float64) (*forecastResponse, bool) {
	params := url.Values{}
	params.Set("latitude", fmt.Sprintf("%g", lat))
	params.Set("longitude", fmt.Sprintf("%g", lon))
	params.Set("daily", "temperature_2m_max,temperature_2m_min,weathercode")
	params.Set("current_weather", "true")
	params.Set("timezone", "auto")

	var resp forecastResponse
	if !c.getJSON(ctx, c.config.ForecastBaseURL+"/v1/forecast?"+params.Encode(), &resp) {
		return nil, false
	}
	return &resp, true
}

// getJSON performs a GET and decodes the JSON body into out. All failures are
// logged and reported as false rather than returned.
func (c *Client) getJSON(ctx context.Context, rawURL string, out any) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		if c.logger != nil {
			c.logger.WithError(err).Error("openmeteo: failed to build request")
		}
		return false
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if c.logger != nil {
			c.logger.WithFields(logrus.Fields{"url": rawURL}).WithError(err).Error("openmeteo: request failed")
		}
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if c.logger != nil {
			c.logger.WithFields(logrus.Fields{"url": rawURL, "status": resp.StatusCode}).Error("openmeteo: unexpected status")
		}
		return false
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if c.logger != nil {
			c.logger.WithFields(logrus.Fields{"url": rawURL}).WithError(err).Error("openmeteo: failed to decode response")
		}
		return false
	}

	return true
}

func first(values []*float64) *float64 {
	if len(values) == 0 {
		return nil
	}
	return values[0]
}
