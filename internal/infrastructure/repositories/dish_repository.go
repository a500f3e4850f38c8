package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/what2eat/what2eat/internal/core/domain/dish"
	"github.com/what2eat/what2eat/internal/core/ports"
	"github.com/what2eat/what2eat/internal/infrastructure/db"
)

// pg unique_violation
const uniqueViolationCode = "23505"

// DishRepository implements ports.DishRepository on PostgreSQL.
type DishRepository struct {
	db     *db.Database
	sq     sq.StatementBuilderType
	logger *logrus.Logger
}

// NewDishRepository creates a new dish repository.
func NewDishRepository(database *db.Database, logger *logrus.Logger) ports.DishRepository {
	return &DishRepository{
		db:     database,
		sq:     sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
		logger: logger,
	}
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolationCode
}

// Create inserts a new dish and populates the generated id and timestamps.
// A name collision surfaces as dish.ErrDuplicateName; the failed insert
// leaves no row behind.
func (r *DishRepository) Create(ctx context.Context, d *dish.Dish) error {
	query := `
		INSERT INTO dishes (name, description)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at`

	err := r.db.DB.QueryRowxContext(ctx, query, d.Name, d.Description).
		Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			if r.logger != nil {
				r.logger.WithFields(logrus.Fields{"name": d.Name}).Debug("db: dish name already taken")
			}
			return dish.ErrDuplicateName
		}
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"name": d.Name}).WithError(err).Error("db: failed to create dish")
		}
		return fmt.Errorf("failed to create dish: %w", err)
	}
	if r.logger != nil {
		r.logger.WithFields(logrus.Fields{"dish_id": d.ID, "name": d.Name}).Info("db: dish created")
	}

	return nil
}

// GetByID retrieves a dish by ID, including its collection association.
func (r *DishRepository) GetByID(ctx context.Context, id int64) (*dish.Dish, error) {
	var d dish.Dish
	query := `
		SELECT id, name, description, created_at, updated_at
		FROM dishes
		WHERE id = $1`

	err := r.db.DB.GetContext(ctx, &d, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			if r.logger != nil {
				r.logger.WithFields(logrus.Fields{"dish_id": id}).Debug("db: dish not found by ID")
			}
			return nil, dish.ErrNotFound
		}
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"dish_id": id}).WithError(err).Error("db: failed to get dish by ID")
		}
		return nil, fmt.Errorf("failed to get dish by ID: %w", err)
	}

	if err := r.loadCollectionIDs(ctx, &d); err != nil {
		return nil, err
	}

	return &d, nil
}

func (r *DishRepository) loadCollectionIDs(ctx context.Context, d *dish.Dish) error {
	query := `
		SELECT collection_id
		FROM collection_dish
		WHERE dish_id = $1
		ORDER BY collection_id`

	if err := r.db.DB.SelectContext(ctx, &d.CollectionIDs, query, d.ID); err != nil {
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"dish_id": d.ID}).WithError(err).Error("db: failed to load dish collections")
		}
		return fmt.Errorf("failed to load dish collections: %w", err)
	}
	return nil
}

// buildListQuery translates a normalized ListQuery into a SELECT. The query
// arrives pre-validated, so the column and direction are interpolated as-is;
// a secondary sort on id keeps pagination deterministic for equal sort keys.
func (r *DishRepository) buildListQuery(q dish.ListQuery) sq.SelectBuilder {
	builder := r.sq.
		Select("id", "name", "description", "created_at", "updated_at").
		From("dishes")

	if q.Search != "" {
		pattern := "%" + q.Search + "%"
		builder = builder.Where(sq.Or{
			sq.ILike{"name": pattern},
			sq.ILike{"description": pattern},
		})
	}

	order := fmt.Sprintf("%s %s", q.OrderBy, q.Direction)
	if q.OrderBy != dish.OrderByID {
		builder = builder.OrderBy(order, dish.OrderByID+" asc")
	} else {
		builder = builder.OrderBy(order)
	}

	return builder.
		Limit(uint64(q.Limit)).
		Offset(uint64(q.Offset))
}

// List retrieves dishes matching the query, sorted and paginated. Listed
// rows carry empty CollectionIDs: hydrating the association costs one query
// per row, so only point reads (GetByID, Update) load it.
func (r *DishRepository) List(ctx context.Context, q dish.ListQuery) ([]*dish.Dish, error) {
	query, args, err := r.buildListQuery(q).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list query: %w", err)
	}
	if r.logger != nil {
		r.logger.WithFields(logrus.Fields{"query": query, "args": args}).Debug("db: executing dish list query")
	}

	dishes := []*dish.Dish{}
	if err := r.db.DB.SelectContext(ctx, &dishes, query, args...); err != nil {
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"query": query}).WithError(err).Error("db: failed to list dishes")
		}
		return nil, fmt.Errorf("failed to list dishes: %w", err)
	}

	return dishes, nil
}

// Count returns the number of dishes matching the search filter.
func (r *DishRepository) Count(ctx context.Context, search string) (int, error) {
	builder := r.sq.Select("COUNT(*)").From("dishes")
	if search != "" {
		pattern := "%" + search + "%"
		builder = builder.Where(sq.Or{
			sq.ILike{"name": pattern},
			sq.ILike{"description": pattern},
		})
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count query: %w", err)
	}

	var count int
	if err := r.db.DB.GetContext(ctx, &count, query, args...); err != nil {
		if r.logger != nil {
			r.logger.WithError(err).Error("db: failed to count dishes")
		}
		return 0, fmt.Errorf("failed to count dishes: %w", err)
	}

	return count, nil
}

// buildUpdateQuery SETs only the fields present in req; updated_at always
// advances, created_at is never touched.
func (r *DishRepository) buildUpdateQuery(id int64, req *dish.UpdateDishRequest) sq.UpdateBuilder {
	builder := r.sq.Update("dishes").Set("updated_at", sq.Expr("now()"))
	if req.Name != nil {
		builder = builder.Set("name", *req.Name)
	}
	if req.Description != nil {
		builder = builder.Set("description", *req.Description)
	}
	return builder.
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING id, name, description, created_at, updated_at")
}

// Update applies only the supplied fields, refreshes updated_at and returns
// the refreshed record. dish.ErrNotFound when the id does not exist.
func (r *DishRepository) Update(ctx context.Context, id int64, req *dish.UpdateDishRequest) (*dish.Dish, error) {
	query, args, err := r.buildUpdateQuery(id, req).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build update query: %w", err)
	}

	var d dish.Dish
	err = r.db.DB.QueryRowxContext(ctx, query, args...).StructScan(&d)
	if err != nil {
		if err == sql.ErrNoRows {
			if r.logger != nil {
				r.logger.WithFields(logrus.Fields{"dish_id": id}).Debug("db: update affected 0 rows - dish not found")
			}
			return nil, dish.ErrNotFound
		}
		if isUniqueViolation(err) {
			return nil, dish.ErrDuplicateName
		}
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"dish_id": id}).WithError(err).Error("db: failed to update dish")
		}
		return nil, fmt.Errorf("failed to update dish: %w", err)
	}

	if err := r.loadCollectionIDs(ctx, &d); err != nil {
		return nil, err
	}

	if r.logger != nil {
		r.logger.WithFields(logrus.Fields{"dish_id": d.ID}).Info("db: dish updated")
	}
	return &d, nil
}

// Delete removes a dish and its collection links in one transaction.
// Returns false (not an error) when the id did not exist.
func (r *DishRepository) Delete(ctx context.Context, id int64) (bool, error) {
	tx, err := r.db.DB.BeginTxx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM collection_dish WHERE dish_id = $1`, id); err != nil {
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"dish_id": id}).WithError(err).Error("db: failed to delete dish collection links")
		}
		return false, fmt.Errorf("failed to delete dish collection links: %w", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM dishes WHERE id = $1`, id)
	if err != nil {
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"dish_id": id}).WithError(err).Error("db: failed to delete dish")
		}
		return false, fmt.Errorf("failed to delete dish: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit delete: %w", err)
	}

	if rowsAffected == 0 {
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"dish_id": id}).Debug("db: delete affected 0 rows - dish not found")
		}
		return false, nil
	}

	if r.logger != nil {
		r.logger.WithFields(logrus.Fields{"dish_id": id}).Info("db: dish deleted")
	}
	return true, nil
}
