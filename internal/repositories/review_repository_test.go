package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tourbook/internal/models"
)

func TestRatingsSummary(t *testing.T) {
	t.Parallel()

	avg, cnt := RatingsSummary(4.0, 3)
	assert.Equal(t, 4.0, avg)
	assert.Equal(t, int64(3), cnt)

	// one-decimal rounding
	avg, _ = RatingsSummary(4.666666, 3)
	assert.Equal(t, 4.7, avg)
	avg, _ = RatingsSummary(3.24, 5)
	assert.Equal(t, 3.2, avg)

	// last review removed: back to the default, count zeroed
	avg, cnt = RatingsSummary(0, 0)
	assert.Equal(t, models.DefaultRatingsAverage, avg)
	assert.Equal(t, int64(0), cnt)
}

func TestReviewWritesRecomputeRatings(t *testing.T) {
	t.Parallel()

	// every write path carries the recompute hook
	reviews := NewReviewRepository()
	assert.Len(t, reviews.AfterCreate, 1)
	assert.Len(t, reviews.AfterUpdate, 1)
	assert.Len(t, reviews.AfterDelete, 1)
}
