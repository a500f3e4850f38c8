package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/what2eat/what2eat/internal/core/domain/weather"
)

// Weather handlers

func (s *Server) getWeather(c echo.Context) error {
	city := c.QueryParam("city")
	if city == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "city query parameter is required")
	}

	report, err := s.weatherService.Get(c.Request().Context(), city)
	if err != nil {
		if errors.Is(err, weather.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "weather data not available for city")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to get weather")
	}

	return c.JSON(http.StatusOK, report)
}

// getLiveWeather always hits the provider, skipping the cache.
func (s *Server) getLiveWeather(c echo.Context) error {
	city := c.QueryParam("city")
	if city == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "city query parameter is required")
	}

	report, err := s.weatherService.GetLive(c.Request().Context(), city)
	if err != nil {
		if errors.Is(err, weather.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "weather data not available for city")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to get weather")
	}

	return c.JSON(http.StatusOK, report)
}
