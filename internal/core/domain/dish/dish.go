package dish

import (
	"errors"
	"time"
)

// Sentinel errors surfaced by the repository so callers can distinguish
// "absent" and "name taken" from genuine store failures.
var (
	ErrNotFound      = errors.New("dish not found")
	ErrDuplicateName = errors.New("dish name already exists")
)

// MaxNameLength matches the dishes.name column width.
const MaxNameLength = 255

type Dish struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description *string   `json:"description" db:"description"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`

	// CollectionIDs is the many-to-many association with collections.
	// It is loaded on reads and never written through this entity.
	CollectionIDs []int64 `json:"collection_ids,omitempty" db:"-"`
}

type CreateDishRequest struct {
	Name        string  `json:"name" validate:"required,max=255"`
	Description *string `json:"description"`
}

// UpdateDishRequest carries a partial update: nil fields are left untouched.
type UpdateDishRequest struct {
	Name        *string `json:"name" validate:"omitempty,max=255"`
	Description *string `json:"description"`
}

// IsEmpty reports whether the update carries no fields at all.
func (r *UpdateDishRequest) IsEmpty() bool {
	return r.Name == nil && r.Description == nil
}
