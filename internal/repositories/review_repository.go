package repositories

import (
	"math"

	"gorm.io/gorm"

	"tourbook/internal/models"
)

// ReviewRepository keeps tour rating aggregates in step with review writes:
// every create, edit and delete recomputes the owning tour's average and
// count inside the same transaction.
type ReviewRepository struct {
	*Resource[models.Review]
}

func NewReviewRepository() *ReviewRepository {
	res := NewResource[models.Review]("id", "tour", "user")
	res.Preloads = []string{"User"}
	recompute := func(tx *gorm.DB, review *models.Review) error {
		return RecomputeTourRatings(tx, review.TourID)
	}
	res.AfterCreate = []Hook[models.Review]{recompute}
	res.AfterUpdate = []Hook[models.Review]{recompute}
	res.AfterDelete = []Hook[models.Review]{recompute}
	return &ReviewRepository{Resource: res}
}

type ratingAggregate struct {
	Avg float64
	Cnt int64
}

// RatingsSummary turns an aggregated (average, count) pair into the values
// stored on the tour: the average rounded to one decimal, or the default
// average when no reviews remain so new tours are not buried by a zero
// rating.
func RatingsSummary(avg float64, count int64) (float64, int64) {
	if count == 0 {
		return models.DefaultRatingsAverage, 0
	}
	return math.Round(avg*10) / 10, count
}

// RecomputeTourRatings recalculates ratings_average and ratings_quantity for
// a tour from its current reviews.
func RecomputeTourRatings(db *gorm.DB, tourID string) error {
	var agg ratingAggregate
	err := db.Model(&models.Review{}).
		Select("COALESCE(AVG(rating), 0) AS avg, COUNT(*) AS cnt").
		Where("tour_id = ?", tourID).
		Scan(&agg).Error
	if err != nil {
		return err
	}

	average, quantity := RatingsSummary(agg.Avg, agg.Cnt)
	return db.Model(&models.Tour{}).
		Where("id = ?", tourID).
		Updates(map[string]interface{}{
			"ratings_average":  average,
			"ratings_quantity": quantity,
		}).Error
}
