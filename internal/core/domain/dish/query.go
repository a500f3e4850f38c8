package dish

// Pagination and sorting bounds for catalog listings.
const (
	DefaultLimit = 10
	MaxLimit     = 500
)

const (
	OrderByID        = "id"
	OrderByName      = "name"
	OrderByCreatedAt = "created_at"

	DirectionAsc  = "asc"
	DirectionDesc = "desc"
)

var allowedOrderBy = map[string]bool{
	OrderByID:        true,
	OrderByName:      true,
	OrderByCreatedAt: true,
}

// ListQuery is a normalized catalog listing request. Construct one through
// NewListQuery; the repository trusts its fields without re-validating.
type ListQuery struct {
	Search    string
	OrderBy   string
	Direction string
	Limit     int
	Offset    int
}

// NewListQuery normalizes raw query parameters into a safe ListQuery.
// Unknown sort columns fall back to id, unknown directions to ascending,
// and pagination values are clamped; nothing here is ever rejected.
func NewListQuery(search, orderBy, direction string, limit, offset int) ListQuery {
	if !allowedOrderBy[orderBy] {
		orderBy = OrderByID
	}
	if direction != DirectionDesc {
		direction = DirectionAsc
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if offset < 0 {
		offset = 0
	}
	return ListQuery{
		Search:    search,
		OrderBy:   orderBy,
		Direction: direction,
		Limit:     limit,
		Offset:    offset,
	}
}
