package repositories

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"tourbook/internal/models"
	"tourbook/internal/utils"
)

// Earth radii used for distance math, per unit.
const (
	EarthRadiusKm = 6371.0
	EarthRadiusMi = 3958.8
)

// EarthRadius maps a distance unit to its earth radius. Anything that is not
// miles counts as kilometres.
func EarthRadius(unit string) float64 {
	if unit == "mi" {
		return EarthRadiusMi
	}
	return EarthRadiusKm
}

// haversine computes the great-circle distance from a fixed point to each
// tour's start location, entirely in SQL.
const haversineExpr = "(? * acos(" +
	"cos(radians(?)) * cos(radians(start_lat)) * cos(radians(start_lng) - radians(?)) + " +
	"sin(radians(?)) * sin(radians(start_lat))))"

// stats groups are ordered priciest first
const statsOrder = "avg_price DESC"

type TourStats struct {
	Difficulty string  `json:"difficulty"`
	NumTours   int64   `json:"numTours"`
	NumRatings int64   `json:"numRatings"`
	AvgRating  float64 `json:"avgRating"`
	AvgPrice   float64 `json:"avgPrice"`
	MinPrice   float64 `json:"minPrice"`
	MaxPrice   float64 `json:"maxPrice"`
}

type MonthlyPlanEntry struct {
	Month         int      `json:"month"`
	NumTourStarts int64    `json:"numTourStarts"`
	Tours         []string `json:"tours"`
}

type TourDistance struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Distance float64 `json:"distance"`
}

// TourRepository wraps the generic accessor with the aggregation and
// geospatial queries tours need. Secret tours never leave this layer.
type TourRepository struct {
	*Resource[models.Tour]
}

func NewTourRepository() *TourRepository {
	res := NewResource[models.Tour](
		"id", "slug", "ratingsAverage", "ratingsQuantity",
	)
	res.Preloads = []string{"Locations", "StartDates", "Guides"}
	res.DetailPreloads = []string{"Reviews.User"}
	res.ReadScopes = []Scope{
		func(db *gorm.DB) *gorm.DB { return db.Where("secret = ?", false) },
	}
	slugHook := func(tx *gorm.DB, tour *models.Tour) error {
		if tour.Name != "" {
			tour.Slug = utils.Slugify(tour.Name)
		}
		return nil
	}
	res.BeforeCreate = []Hook[models.Tour]{slugHook}
	res.BeforeUpdate = []Hook[models.Tour]{slugHook}
	return &TourRepository{Resource: res}
}

// ReplaceStartDates swaps the tour's departure schedule for the given one.
func (r *TourRepository) ReplaceStartDates(db *gorm.DB, tourID string, dates []time.Time) error {
	if err := db.Where("tour_id = ?", tourID).Delete(&models.TourStartDate{}).Error; err != nil {
		return err
	}
	if len(dates) == 0 {
		return nil
	}
	rows := make([]models.TourStartDate, 0, len(dates))
	for _, d := range dates {
		rows = append(rows, models.TourStartDate{TourID: tourID, StartDate: d})
	}
	return db.Create(&rows).Error
}

// ReplaceLocations swaps the tour's itinerary waypoints.
func (r *TourRepository) ReplaceLocations(db *gorm.DB, tourID string, locations []models.TourLocation) error {
	if err := db.Where("tour_id = ?", tourID).Delete(&models.TourLocation{}).Error; err != nil {
		return err
	}
	if len(locations) == 0 {
		return nil
	}
	for i := range locations {
		locations[i].TourID = tourID
		locations[i].ID = ""
	}
	return db.Create(&locations).Error
}

// ReplaceGuides swaps the tour's assigned guides.
func (r *TourRepository) ReplaceGuides(db *gorm.DB, tour *models.Tour, guideIDs []string) error {
	var guides []models.User
	if len(guideIDs) > 0 {
		if err := db.Where("id IN ?", guideIDs).Find(&guides).Error; err != nil {
			return err
		}
	}
	return db.Model(tour).Association("Guides").Replace(guides)
}

// WithinRadius lists tours whose start location is at most distance away from
// (lat, lng), in the given unit.
func (r *TourRepository) WithinRadius(db *gorm.DB, lat, lng, distance float64, unit string) ([]models.Tour, error) {
	var tours []models.Tour
	radius := EarthRadius(unit)
	err := r.scoped(db).
		Where(haversineExpr+" <= ?", radius, lat, lng, lat, distance).
		Find(&tours).Error
	return tours, err
}

// Distances returns every tour with its distance from (lat, lng), nearest
// first.
func (r *TourRepository) Distances(db *gorm.DB, lat, lng float64, unit string) ([]TourDistance, error) {
	var rows []TourDistance
	radius := EarthRadius(unit)
	err := r.scoped(db.Model(&models.Tour{})).
		Select(fmt.Sprintf("id, name, %s AS distance", haversineExpr), radius, lat, lng, lat).
		Order("distance ASC").
		Scan(&rows).Error
	return rows, err
}

// Stats aggregates well-rated tours per difficulty, priciest group first.
func (r *TourRepository) Stats(db *gorm.DB) ([]TourStats, error) {
	var stats []TourStats
	err := r.scoped(db.Model(&models.Tour{})).
		Select(`UPPER(difficulty::text) AS difficulty,
			COUNT(*) AS num_tours,
			SUM(ratings_quantity) AS num_ratings,
			AVG(ratings_average) AS avg_rating,
			AVG(price) AS avg_price,
			MIN(price) AS min_price,
			MAX(price) AS max_price`).
		Where("ratings_average >= ?", 4.5).
		Group("UPPER(difficulty::text)").
		Order(statsOrder).
		Scan(&stats).Error
	return stats, err
}

type monthlyPlanRow struct {
	Month         int
	NumTourStarts int64
	TourNames     string
}

// MonthlyPlan counts departures per month of the given year, busiest month
// first, with the names of the tours starting then.
func (r *TourRepository) MonthlyPlan(db *gorm.DB, year int) ([]MonthlyPlanEntry, error) {
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(1, 0, 0)

	var rows []monthlyPlanRow
	err := db.Model(&models.TourStartDate{}).
		Select(`EXTRACT(MONTH FROM tour_start_dates.start_date)::int AS month,
			COUNT(*) AS num_tour_starts,
			string_agg(tours.name, ',') AS tour_names`).
		Joins("JOIN tours ON tours.id = tour_start_dates.tour_id").
		Where("tours.secret = ?", false).
		Where("tour_start_dates.start_date >= ? AND tour_start_dates.start_date < ?", from, to).
		Group("EXTRACT(MONTH FROM tour_start_dates.start_date)").
		Order("num_tour_starts DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	plan := make([]MonthlyPlanEntry, 0, len(rows))
	for _, row := range rows {
		plan = append(plan, MonthlyPlanEntry{
			Month:         row.Month,
			NumTourStarts: row.NumTourStarts,
			Tours:         strings.Split(row.TourNames, ","),
		})
	}
	return plan, nil
}
