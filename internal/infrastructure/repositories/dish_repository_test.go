package repositories

import (
	"testing"

	sq "github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/require"

	"github.com/what2eat/what2eat/internal/core/domain/dish"
)

func newTestRepo() *DishRepository {
	return &DishRepository{sq: sq.StatementBuilder.PlaceholderFormat(sq.Dollar)}
}

func TestBuildListQuery_SearchFiltersNameOrDescription(t *testing.T) {
	r := newTestRepo()

	query, args, err := r.buildListQuery(dish.NewListQuery("soup", "id", "asc", 10, 0)).ToSql()
	require.NoError(t, err)
	require.Equal(t,
		"SELECT id, name, description, created_at, updated_at FROM dishes "+
			"WHERE (name ILIKE $1 OR description ILIKE $2) "+
			"ORDER BY id asc LIMIT 10 OFFSET 0",
		query)
	require.Equal(t, []interface{}{"%soup%", "%soup%"}, args)
}

func TestBuildListQuery_NoSearchOmitsWhere(t *testing.T) {
	r := newTestRepo()

	query, args, err := r.buildListQuery(dish.NewListQuery("", "id", "asc", 10, 0)).ToSql()
	require.NoError(t, err)
	require.Equal(t,
		"SELECT id, name, description, created_at, updated_at FROM dishes "+
			"ORDER BY id asc LIMIT 10 OFFSET 0",
		query)
	require.Empty(t, args)
}

func TestBuildListQuery_SecondarySortOnIDForStablePagination(t *testing.T) {
	r := newTestRepo()

	query, _, err := r.buildListQuery(dish.NewListQuery("", "name", "desc", 20, 40)).ToSql()
	require.NoError(t, err)
	require.Contains(t, query, "ORDER BY name desc, id asc")
	require.Contains(t, query, "LIMIT 20 OFFSET 40")
}

func TestBuildListQuery_NormalizedBogusInputMatchesDefaults(t *testing.T) {
	r := newTestRepo()

	bogus, _, err := r.buildListQuery(dish.NewListQuery("", "bogus", "bogus", 10000, -5)).ToSql()
	require.NoError(t, err)
	explicit, _, err := r.buildListQuery(dish.NewListQuery("", "id", "asc", 500, 0)).ToSql()
	require.NoError(t, err)
	require.Equal(t, explicit, bogus)
}

func TestBuildUpdateQuery_DescriptionOnlySetsDescriptionAndUpdatedAt(t *testing.T) {
	r := newTestRepo()

	desc := "hearty broth"
	query, args, err := r.buildUpdateQuery(5, &dish.UpdateDishRequest{Description: &desc}).ToSql()
	require.NoError(t, err)
	require.Equal(t,
		"UPDATE dishes SET updated_at = now(), description = $1 WHERE id = $2 "+
			"RETURNING id, name, description, created_at, updated_at",
		query)
	require.Equal(t, []interface{}{"hearty broth", int64(5)}, args)
	require.NotContains(t, query, "name =")
	require.NotContains(t, query, "created_at =")
}

func TestBuildUpdateQuery_NameOnlySetsNameAndUpdatedAt(t *testing.T) {
	r := newTestRepo()

	name := "pho"
	query, args, err := r.buildUpdateQuery(9, &dish.UpdateDishRequest{Name: &name}).ToSql()
	require.NoError(t, err)
	require.Equal(t,
		"UPDATE dishes SET updated_at = now(), name = $1 WHERE id = $2 "+
			"RETURNING id, name, description, created_at, updated_at",
		query)
	require.Equal(t, []interface{}{"pho", int64(9)}, args)
	require.NotContains(t, query, "description =")
}
