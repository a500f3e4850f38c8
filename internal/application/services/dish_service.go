package services

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/what2eat/what2eat/internal/core/domain/dish"
	"github.com/what2eat/what2eat/internal/core/ports"
)

type DishService struct {
	repo   ports.DishRepository
	logger *logrus.Logger
}

func NewDishService(repo ports.DishRepository, logger *logrus.Logger) ports.DishService {
	return &DishService{
		repo:   repo,
		logger: logger,
	}
}

// CreateDish persists a new dish. Name uniqueness is enforced by the store;
// a collision surfaces as dish.ErrDuplicateName.
func (s *DishService) CreateDish(ctx context.Context, req *dish.CreateDishRequest) (*dish.Dish, error) {
	newDish := &dish.Dish{
		Name:        req.Name,
		Description: req.Description,
	}

	if err := s.repo.Create(ctx, newDish); err != nil {
		return nil, err
	}

	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{"dish_id": newDish.ID, "name": newDish.Name}).Info("dish created")
	}
	return newDish, nil
}

func (s *DishService) GetDish(ctx context.Context, id int64) (*dish.Dish, error) {
	return s.repo.GetByID(ctx, id)
}

// ListDishes returns the matching page plus the total count of rows matching
// the search filter.
func (s *DishService) ListDishes(ctx context.Context, q dish.ListQuery) ([]*dish.Dish, int, error) {
	dishes, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list dishes: %w", err)
	}

	total, err := s.repo.Count(ctx, q.Search)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count dishes: %w", err)
	}

	return dishes, total, nil
}

// UpdateDish applies a partial update. An empty request is answered with the
// current record rather than an error.
func (s *DishService) UpdateDish(ctx context.Context, id int64, req *dish.UpdateDishRequest) (*dish.Dish, error) {
	if req.IsEmpty() {
		return s.repo.GetByID(ctx, id)
	}

	updated, err := s.repo.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}

	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{"dish_id": id}).Info("dish updated")
	}
	return updated, nil
}

// DeleteDish removes a dish. Deleting a nonexistent id reports false, not an
// error.
func (s *DishService) DeleteDish(ctx context.Context, id int64) (bool, error) {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return false, err
	}

	if deleted && s.logger != nil {
		s.logger.WithFields(logrus.Fields{"dish_id": id}).Info("dish deleted")
	}
	return deleted, nil
}
