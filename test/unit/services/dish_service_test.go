package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	impl "github.com/what2eat/what2eat/internal/application/services"
	"github.com/what2eat/what2eat/internal/core/domain/dish"
	"github.com/what2eat/what2eat/test/mocks"
)

func strPtr(s string) *string { return &s }

func TestCreateDish_PopulatesGeneratedFields(t *testing.T) {
	now := time.Now()
	repo := &mocks.DishRepositoryMock{
		CreateFn: func(ctx context.Context, d *dish.Dish) error {
			d.ID = 7
			d.CreatedAt = now
			d.UpdatedAt = now
			return nil
		},
	}
	svc := impl.NewDishService(repo, nil)

	created, err := svc.CreateDish(context.Background(), &dish.CreateDishRequest{Name: "mapo tofu"})
	require.NoError(t, err)
	require.Equal(t, int64(7), created.ID)
	require.Equal(t, "mapo tofu", created.Name)
	require.Equal(t, now, created.CreatedAt)
}

func TestCreateDish_DuplicateNamePropagates(t *testing.T) {
	repo := &mocks.DishRepositoryMock{
		CreateFn: func(ctx context.Context, d *dish.Dish) error {
			return dish.ErrDuplicateName
		},
	}
	svc := impl.NewDishService(repo, nil)

	_, err := svc.CreateDish(context.Background(), &dish.CreateDishRequest{Name: "mapo tofu"})
	require.ErrorIs(t, err, dish.ErrDuplicateName)
}

func TestUpdateDish_EmptyRequestReturnsCurrentRecord(t *testing.T) {
	current := &dish.Dish{ID: 3, Name: "ramen"}
	var updateCalled bool
	repo := &mocks.DishRepositoryMock{
		GetByIDFn: func(ctx context.Context, id int64) (*dish.Dish, error) {
			require.Equal(t, int64(3), id)
			return current, nil
		},
		UpdateFn: func(ctx context.Context, id int64, req *dish.UpdateDishRequest) (*dish.Dish, error) {
			updateCalled = true
			return nil, nil
		},
	}
	svc := impl.NewDishService(repo, nil)

	got, err := svc.UpdateDish(context.Background(), 3, &dish.UpdateDishRequest{})
	require.NoError(t, err)
	require.Equal(t, current, got)
	require.False(t, updateCalled)
}

func TestUpdateDish_NotFound(t *testing.T) {
	repo := &mocks.DishRepositoryMock{
		UpdateFn: func(ctx context.Context, id int64, req *dish.UpdateDishRequest) (*dish.Dish, error) {
			return nil, dish.ErrNotFound
		},
	}
	svc := impl.NewDishService(repo, nil)

	_, err := svc.UpdateDish(context.Background(), 42, &dish.UpdateDishRequest{Description: strPtr("x")})
	require.ErrorIs(t, err, dish.ErrNotFound)
}

func TestDeleteDish_NonexistentIsNotAnError(t *testing.T) {
	repo := &mocks.DishRepositoryMock{}
	svc := impl.NewDishService(repo, nil)

	deleted, err := svc.DeleteDish(context.Background(), 999)
	require.NoError(t, err)
	require.False(t, deleted)
}

func TestListDishes_PassesNormalizedQueryAndCounts(t *testing.T) {
	var gotQuery dish.ListQuery
	repo := &mocks.DishRepositoryMock{
		ListFn: func(ctx context.Context, q dish.ListQuery) ([]*dish.Dish, error) {
			gotQuery = q
			return []*dish.Dish{{ID: 1, Name: "pho"}}, nil
		},
		CountFn: func(ctx context.Context, search string) (int, error) {
			require.Equal(t, "soup", search)
			return 12, nil
		},
	}
	svc := impl.NewDishService(repo, nil)

	q := dish.NewListQuery("soup", "bogus", "bogus", 10000, -5)
	dishes, total, err := svc.ListDishes(context.Background(), q)
	require.NoError(t, err)
	require.Len(t, dishes, 1)
	require.Equal(t, 12, total)
	require.Equal(t, dish.ListQuery{
		Search:    "soup",
		OrderBy:   "id",
		Direction: "asc",
		Limit:     500,
		Offset:    0,
	}, gotQuery)
}
