package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tourbook/internal/models"
)

func TestToSnake(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"Name":            "name",
		"RatingsAverage":  "ratings_average",
		"TourID":          "tour_id",
		"ID":              "id",
		"MaxGroup":        "max_group",
		"PasswordHash":    "password_hash",
		"RatingsQuantity": "ratings_quantity",
	}
	for in, want := range cases {
		assert.Equal(t, want, ToSnake(in), "input %q", in)
	}
}

func TestColumnsOfTour(t *testing.T) {
	t.Parallel()

	cols := ColumnsOf[models.Tour]("id", "slug", "ratingsAverage", "ratingsQuantity")

	// json names resolve to their gorm columns
	col, ok := cols.Column("price")
	assert.True(t, ok)
	assert.Equal(t, "price", col)

	col, ok = cols.Column("maxGroupSize")
	assert.True(t, ok)
	assert.Equal(t, "max_group_size", col)

	col, ok = cols.Column("createdAt")
	assert.True(t, ok)
	assert.Equal(t, "created_at", col)

	// write-protected names stay readable but are not writable
	for _, name := range []string{"id", "slug", "ratingsAverage", "ratingsQuantity"} {
		_, ok := cols.Column(name)
		assert.True(t, ok, "%q should resolve for reads", name)
		_, ok = cols.WritableColumn(name)
		assert.False(t, ok, "%q should not be writable", name)
	}

	col, ok = cols.WritableColumn("price")
	assert.True(t, ok)
	assert.Equal(t, "price", col)

	// relations and hidden fields are not mapped
	for _, name := range []string{"locations", "startDates", "guides", "reviews", "images", "unknown"} {
		_, ok := cols.Column(name)
		assert.False(t, ok, "%q should not resolve", name)
	}
}

func TestColumnsOfUserHidesCredentials(t *testing.T) {
	t.Parallel()

	cols := ColumnsOf[models.User]("id", "role")

	_, ok := cols.Column("password")
	assert.False(t, ok)
	_, ok = cols.Column("passwordResetToken")
	assert.False(t, ok)
	_, ok = cols.WritableColumn("role")
	assert.False(t, ok)

	col, ok := cols.Column("email")
	assert.True(t, ok)
	assert.Equal(t, "email", col)

	field, ok := cols.FieldName("name")
	assert.True(t, ok)
	assert.Equal(t, "Name", field)
}

func TestExposableKeepsWriteProtected(t *testing.T) {
	t.Parallel()

	cols := ColumnsOf[models.Review]("id", "tour", "user")
	exposed := cols.Exposable()

	assert.Contains(t, exposed, "rating")
	assert.Contains(t, exposed, "review")
	// write protection keeps ids out of request bodies, not out of reads
	assert.Contains(t, exposed, "id")
	assert.Contains(t, exposed, "tour_id")
	assert.Contains(t, exposed, "user_id")
}
