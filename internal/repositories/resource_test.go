package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Relations must load on list fetches too, not only on single-row reads;
// FindAll and FindByID share the Preloads list, FindByID adds the detail
// extras on top.
func TestRepositoryPreloadConfiguration(t *testing.T) {
	t.Parallel()

	tours := NewTourRepository()
	assert.ElementsMatch(t, []string{"Locations", "StartDates", "Guides"}, tours.Preloads)
	assert.Equal(t, []string{"Reviews.User"}, tours.DetailPreloads)

	reviews := NewReviewRepository()
	assert.Equal(t, []string{"User"}, reviews.Preloads)

	bookings := NewBookingRepository()
	assert.Equal(t, []string{"Tour"}, bookings.Preloads)
}

func TestStatsOrderedByAvgPriceDescending(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "avg_price DESC", statsOrder)
}
