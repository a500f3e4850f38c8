package ports

import (
	"context"

	"github.com/what2eat/what2eat/internal/core/domain/dish"
)

// DishRepository defines the interface for dish data operations.
type DishRepository interface {
	Create(ctx context.Context, d *dish.Dish) error
	GetByID(ctx context.Context, id int64) (*dish.Dish, error)
	List(ctx context.Context, q dish.ListQuery) ([]*dish.Dish, error)
	Update(ctx context.Context, id int64, req *dish.UpdateDishRequest) (*dish.Dish, error)
	Delete(ctx context.Context, id int64) (bool, error)
	Count(ctx context.Context, search string) (int, error)
}

// DishService defines the interface for dish business logic.
type DishService interface {
	CreateDish(ctx context.Context, req *dish.CreateDishRequest) (*dish.Dish, error)
	GetDish(ctx context.Context, id int64) (*dish.Dish, error)
	ListDishes(ctx context.Context, q dish.ListQuery) ([]*dish.Dish, int, error)
	UpdateDish(ctx context.Context, id int64, req *dish.UpdateDishRequest) (*dish.Dish, error)
	DeleteDish(ctx context.Context, id int64) (bool, error)
}
