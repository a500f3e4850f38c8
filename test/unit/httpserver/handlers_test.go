package httpserver_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/what2eat/what2eat/internal/application/services"
	"github.com/what2eat/what2eat/internal/core/domain/dish"
	"github.com/what2eat/what2eat/internal/core/domain/weather"
	w2e_http "github.com/what2eat/what2eat/internal/infrastructure/httpserver"
	"github.com/what2eat/what2eat/test/mocks"
)

func newTestServer(t *testing.T, dishRepo *mocks.DishRepositoryMock, weatherClient *mocks.WeatherClientMock) *httptest.Server {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	deps := w2e_http.ServerDeps{
		DishService:    services.NewDishService(dishRepo, logger),
		WeatherService: services.NewWeatherService(&mocks.CacheMock{}, weatherClient, time.Minute, logger),
	}
	srv := w2e_http.NewServer(&w2e_http.ServerConfig{
		Host:         "127.0.0.1",
		Port:         "0",
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
		IdleTimeout:  time.Second,
	}, logger, deps)

	ts := httptest.NewServer(srv.Echo())
	t.Cleanup(ts.Close)
	return ts
}

func TestDishEndpoints(t *testing.T) {
	stored := &dish.Dish{ID: 1, Name: "pho", CreatedAt: time.Now(), UpdatedAt: time.Now()}

	dishRepo := &mocks.DishRepositoryMock{
		CreateFn: func(ctx context.Context, d *dish.Dish) error {
			if d.Name == "pho" {
				return dish.ErrDuplicateName
			}
			d.ID = 2
			return nil
		},
		GetByIDFn: func(ctx context.Context, id int64) (*dish.Dish, error) {
			if id == stored.ID {
				return stored, nil
			}
			return nil, dish.ErrNotFound
		},
		ListFn: func(ctx context.Context, q dish.ListQuery) ([]*dish.Dish, error) {
			require.Equal(t, "id", q.OrderBy)
			require.Equal(t, "asc", q.Direction)
			require.Equal(t, 500, q.Limit)
			require.Equal(t, 0, q.Offset)
			return []*dish.Dish{stored}, nil
		},
		CountFn: func(ctx context.Context, search string) (int, error) { return 1, nil },
		UpdateFn: func(ctx context.Context, id int64, req *dish.UpdateDishRequest) (*dish.Dish, error) {
			if id != stored.ID {
				return nil, dish.ErrNotFound
			}
			require.Nil(t, req.Name)
			require.NotNil(t, req.Description)
			updated := *stored
			updated.Description = req.Description
			updated.UpdatedAt = stored.UpdatedAt.Add(time.Second)
			return &updated, nil
		},
		DeleteFn: func(ctx context.Context, id int64) (bool, error) {
			return id == stored.ID, nil
		},
	}
	ts := newTestServer(t, dishRepo, &mocks.WeatherClientMock{})

	t.Run("create conflict on duplicate name", func(t *testing.T) {
		body, _ := json.Marshal(map[string]string{"name": "pho"})
		resp, err := http.Post(ts.URL+"/api/v1/dishes", "application/json", bytes.NewReader(body))
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	t.Run("create missing name is a bad request", func(t *testing.T) {
		body, _ := json.Marshal(map[string]string{"description": "no name"})
		resp, err := http.Post(ts.URL+"/api/v1/dishes", "application/json", bytes.NewReader(body))
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("get unknown id is 404", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/api/v1/dishes/999")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("list normalizes bogus query parameters", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/api/v1/dishes?order_by=bogus&direction=bogus&limit=10000&offset=-5")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var payload struct {
			Items  []dish.Dish `json:"items"`
			Total  int         `json:"total"`
			Limit  int         `json:"limit"`
			Offset int         `json:"offset"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
		require.Len(t, payload.Items, 1)
		require.Equal(t, 1, payload.Total)
		require.Equal(t, 500, payload.Limit)
		require.Equal(t, 0, payload.Offset)
	})

	t.Run("patch with description only keeps the name and advances updated_at", func(t *testing.T) {
		body, _ := json.Marshal(map[string]string{"description": "rice noodle soup"})
		req, _ := http.NewRequest(http.MethodPatch, ts.URL+"/api/v1/dishes/1", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var got dish.Dish
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
		require.Equal(t, stored.Name, got.Name)
		require.NotNil(t, got.Description)
		require.Equal(t, "rice noodle soup", *got.Description)
		require.True(t, got.UpdatedAt.After(stored.UpdatedAt))
		require.WithinDuration(t, stored.CreatedAt, got.CreatedAt, time.Millisecond)
	})

	t.Run("delete unknown id is 404, existing id 204", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodDelete, ts.URL+"/api/v1/dishes/999", nil)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		resp.Body.Close()
		require.Equal(t, http.StatusNotFound, resp.StatusCode)

		req, _ = http.NewRequest(http.MethodDelete, ts.URL+"/api/v1/dishes/1", nil)
		resp, err = http.DefaultClient.Do(req)
		require.NoError(t, err)
		resp.Body.Close()
		require.Equal(t, http.StatusNoContent, resp.StatusCode)
	})
}

func TestWeatherEndpoints(t *testing.T) {
	client := &mocks.WeatherClientMock{
		FetchFn: func(ctx context.Context, city string) (*weather.Report, bool) {
			if city != "Berlin" {
				return nil, false
			}
			return &weather.Report{City: city, MinTemperature: "3°C", MaxTemperature: "11°C", Description: "clear"}, true
		},
	}
	ts := newTestServer(t, &mocks.DishRepositoryMock{}, client)

	t.Run("missing city is a bad request", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/api/v1/weather")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("unknown city is 404", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/api/v1/weather?city=Atlantis")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("known city returns the report and a second call is served from cache", func(t *testing.T) {
		before := client.FetchCalls
		for i := 0; i < 2; i++ {
			resp, err := http.Get(ts.URL + "/api/v1/weather?city=Berlin")
			require.NoError(t, err)
			var report weather.Report
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&report))
			resp.Body.Close()
			require.Equal(t, http.StatusOK, resp.StatusCode)
			require.Equal(t, "clear", report.Description)
		}
		require.Equal(t, before+1, client.FetchCalls)
	})
}
