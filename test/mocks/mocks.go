package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/what2eat/what2eat/internal/core/domain/dish"
	"github.com/what2eat/what2eat/internal/core/domain/weather"
)

// CacheMock is a lightweight in-memory mock for ports.Cache. When the Fn
// fields are unset it behaves as a real map-backed cache (without expiry),
// which is enough for cache-aside tests.
type CacheMock struct {
	GetFn    func(ctx context.Context, key string) ([]byte, bool, error)
	SetFn    func(ctx context.Context, key string, value []byte, ttl time.Duration) error
	DeleteFn func(ctx context.Context, key string) error

	mu      sync.Mutex
	entries map[string][]byte

	SetCalls []string
}

func (m *CacheMock) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.entries[key]
	return v, ok, nil
}

func (m *CacheMock) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	m.SetCalls = append(m.SetCalls, key)
	m.mu.Unlock()
	if m.SetFn != nil {
		return m.SetFn(ctx, key, value, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.entries == nil {
		m.entries = make(map[string][]byte)
	}
	m.entries[key] = value
	return nil
}

func (m *CacheMock) Delete(ctx context.Context, key string) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
	return nil
}

// WeatherClientMock is a mock for ports.WeatherClient that counts fetches.
type WeatherClientMock struct {
	FetchFn func(ctx context.Context, city string) (*weather.Report, bool)

	mu         sync.Mutex
	FetchCalls int
}

func (m *WeatherClientMock) Fetch(ctx context.Context, city string) (*weather.Report, bool) {
	m.mu.Lock()
	m.FetchCalls++
	m.mu.Unlock()
	if m.FetchFn != nil {
		return m.FetchFn(ctx, city)
	}
	return nil, false
}

// DishRepositoryMock is a lightweight mock for ports.DishRepository.
type DishRepositoryMock struct {
	CreateFn  func(ctx context.Context, d *dish.Dish) error
	GetByIDFn func(ctx context.Context, id int64) (*dish.Dish, error)
	ListFn    func(ctx context.Context, q dish.ListQuery) ([]*dish.Dish, error)
	UpdateFn  func(ctx context.Context, id int64, req *dish.UpdateDishRequest) (*dish.Dish, error)
	DeleteFn  func(ctx context.Context, id int64) (bool, error)
	CountFn   func(ctx context.Context, search string) (int, error)
}

func (m *DishRepositoryMock) Create(ctx context.Context, d *dish.Dish) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, d)
	}
	return nil
}

func (m *DishRepositoryMock) GetByID(ctx context.Context, id int64) (*dish.Dish, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, dish.ErrNotFound
}

func (m *DishRepositoryMock) List(ctx context.Context, q dish.ListQuery) ([]*dish.Dish, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, q)
	}
	return nil, nil
}

func (m *DishRepositoryMock) Update(ctx context.Context, id int64, req *dish.UpdateDishRequest) (*dish.Dish, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, id, req)
	}
	return nil, dish.ErrNotFound
}

func (m *DishRepositoryMock) Delete(ctx context.Context, id int64) (bool, error) {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return false, nil
}

func (m *DishRepositoryMock) Count(ctx context.Context, search string) (int, error) {
	if m.CountFn != nil {
		return m.CountFn(ctx, search)
	}
	return 0, nil
}
