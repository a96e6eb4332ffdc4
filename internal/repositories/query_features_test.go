package repositories

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tourbook/internal/models"
)

func tourColumns() *ColumnSet {
	return ColumnsOf[models.Tour]("id", "slug", "ratingsAverage", "ratingsQuantity")
}

func TestParseListQueryDefaults(t *testing.T) {
	t.Parallel()

	q := ParseListQuery(url.Values{}, tourColumns())

	assert.Empty(t, q.Conditions)
	assert.Equal(t, []SortField{{Column: "created_at", Desc: true}}, q.Sort)
	assert.Nil(t, q.Fields)
	assert.Equal(t, DefaultPage, q.Page)
	assert.Equal(t, DefaultLimit, q.Limit)
	assert.Equal(t, 0, q.Offset())
}

func TestParseListQueryFilters(t *testing.T) {
	t.Parallel()

	values, err := url.ParseQuery("duration=5&difficulty=easy&price[gte]=500&maxGroupSize[lt]=10")
	require.NoError(t, err)

	q := ParseListQuery(values, tourColumns())
	require.Len(t, q.Conditions, 4)

	byCol := map[string]Condition{}
	for _, c := range q.Conditions {
		byCol[c.Column] = c
	}

	assert.Equal(t, Condition{Column: "duration", Op: "=", Value: 5.0}, byCol["duration"])
	assert.Equal(t, Condition{Column: "difficulty", Op: "=", Value: "easy"}, byCol["difficulty"])
	assert.Equal(t, Condition{Column: "price", Op: ">=", Value: 500.0}, byCol["price"])
	assert.Equal(t, Condition{Column: "max_group_size", Op: "<", Value: 10.0}, byCol["max_group_size"])
}

func TestParseListQueryDropsUnknown(t *testing.T) {
	t.Parallel()

	values, err := url.ParseQuery("nonsense=1&price[weird]=3")
	require.NoError(t, err)

	q := ParseListQuery(values, tourColumns())
	assert.Empty(t, q.Conditions)
}

func TestParseListQueryFiltersDerivedColumns(t *testing.T) {
	t.Parallel()

	// ratingsAverage is write-protected but must stay filterable
	values, err := url.ParseQuery("ratingsAverage[gte]=4.7")
	require.NoError(t, err)

	q := ParseListQuery(values, tourColumns())
	require.Len(t, q.Conditions, 1)
	assert.Equal(t, Condition{Column: "ratings_average", Op: ">=", Value: 4.7}, q.Conditions[0])
}

func TestParseListQuerySort(t *testing.T) {
	t.Parallel()

	values, err := url.ParseQuery("sort=-price,name")
	require.NoError(t, err)

	q := ParseListQuery(values, tourColumns())
	assert.Equal(t, []SortField{
		{Column: "price", Desc: true},
		{Column: "name", Desc: false},
	}, q.Sort)
}

func TestParseListQuerySortIgnoresUnknown(t *testing.T) {
	t.Parallel()

	values, err := url.ParseQuery("sort=bogus")
	require.NoError(t, err)

	q := ParseListQuery(values, tourColumns())
	assert.Equal(t, []SortField{{Column: "created_at", Desc: true}}, q.Sort)
}

func TestParseListQueryTopToursAlias(t *testing.T) {
	t.Parallel()

	values, err := url.ParseQuery(
		"limit=5&sort=-ratingsAverage,price&fields=name,price,ratingsAverage,summary,difficulty")
	require.NoError(t, err)

	q := ParseListQuery(values, tourColumns())
	assert.Equal(t, []SortField{
		{Column: "ratings_average", Desc: true},
		{Column: "price", Desc: false},
	}, q.Sort)
	assert.Equal(t, []string{"name", "price", "ratings_average", "summary", "difficulty", "id"}, q.Fields)
	assert.Equal(t, 5, q.Limit)
}

func TestParseListQueryFieldsInclusion(t *testing.T) {
	t.Parallel()

	values, err := url.ParseQuery("fields=name,price,bogus")
	require.NoError(t, err)

	q := ParseListQuery(values, tourColumns())
	// id always rides along with a projection
	assert.Equal(t, []string{"name", "price", "id"}, q.Fields)
}

func TestParseListQueryFieldsExclusion(t *testing.T) {
	t.Parallel()

	values, err := url.ParseQuery("fields=-description,-summary")
	require.NoError(t, err)

	q := ParseListQuery(values, tourColumns())
	assert.NotEmpty(t, q.Fields)
	assert.NotContains(t, q.Fields, "description")
	assert.NotContains(t, q.Fields, "summary")
	assert.Contains(t, q.Fields, "name")
	assert.Contains(t, q.Fields, "price")
}

func TestParseListQueryPagination(t *testing.T) {
	t.Parallel()

	values, err := url.ParseQuery("page=3&limit=10")
	require.NoError(t, err)

	q := ParseListQuery(values, tourColumns())
	assert.Equal(t, 3, q.Page)
	assert.Equal(t, 10, q.Limit)
	assert.Equal(t, 20, q.Offset())
}

func TestParseListQueryPaginationDegradesGracefully(t *testing.T) {
	t.Parallel()

	values, err := url.ParseQuery("page=abc&limit=-5")
	require.NoError(t, err)

	q := ParseListQuery(values, tourColumns())
	assert.Equal(t, DefaultPage, q.Page)
	assert.Equal(t, DefaultLimit, q.Limit)

	values, err = url.ParseQuery("limit=100000")
	require.NoError(t, err)

	q = ParseListQuery(values, tourColumns())
	assert.Equal(t, MaxLimit, q.Limit)
}
