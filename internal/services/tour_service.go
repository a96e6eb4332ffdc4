package services

import (
	"errors"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"tourbook/internal/models"
	"tourbook/internal/repositories"
	"tourbook/internal/services/dto"
	"tourbook/pkg/apperrors"
)

type TourService interface {
	Create(db *gorm.DB, req *dto.CreateTourRequest) (*models.Tour, error)
	Update(db *gorm.DB, id string, req *dto.UpdateTourRequest) (*models.Tour, error)
	SetImages(db *gorm.DB, id string, cover string, gallery datatypes.JSON) (*models.Tour, error)
}

type TourServiceImpl struct {
	tourRepo *repositories.TourRepository
}

func NewTourService(tourRepo *repositories.TourRepository) TourService {
	return &TourServiceImpl{tourRepo: tourRepo}
}

func geoPoint(in dto.GeoPointInput) models.GeoPoint {
	return models.GeoPoint{
		Lat:         in.Lat,
		Lng:         in.Lng,
		Address:     in.Address,
		Description: in.Description,
	}
}

func waypoints(in []dto.LocationInput) []models.TourLocation {
	out := make([]models.TourLocation, 0, len(in))
	for _, loc := range in {
		out = append(out, models.TourLocation{
			Lat:         loc.Lat,
			Lng:         loc.Lng,
			Description: loc.Description,
			Day:         loc.Day,
		})
	}
	return out
}

// Create inserts the tour and its schedule, itinerary and guide assignments
// in one transaction.
func (s *TourServiceImpl) Create(db *gorm.DB, req *dto.CreateTourRequest) (*models.Tour, error) {
	tour := &models.Tour{
		Name:          req.Name,
		Duration:      req.Duration,
		MaxGroup:      req.MaxGroupSize,
		Difficulty:    models.TourDifficulty(req.Difficulty),
		Price:         req.Price,
		PriceDiscount: req.PriceDiscount,
		Summary:       req.Summary,
		Description:   req.Description,
		ImageCover:    req.ImageCover,
		Secret:        req.Secret,
		StartLocation: geoPoint(req.StartLocation),
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := s.tourRepo.Create(tx, tour); err != nil {
			return err
		}
		if err := s.tourRepo.ReplaceStartDates(tx, tour.ID, req.StartDates); err != nil {
			return err
		}
		if err := s.tourRepo.ReplaceLocations(tx, tour.ID, waypoints(req.Locations)); err != nil {
			return err
		}
		return s.tourRepo.ReplaceGuides(tx, tour, req.Guides)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.AlreadyExists("A tour with that name already exists")
		}
		return nil, apperrors.InternalError(err)
	}

	created, err := s.tourRepo.FindByID(db, tour.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return created, nil
}

// Update patches the tour. Only fields present in the request change;
// association slices replace wholesale when given.
func (s *TourServiceImpl) Update(db *gorm.DB, id string, req *dto.UpdateTourRequest) (*models.Tour, error) {
	var updated *models.Tour
	err := db.Transaction(func(tx *gorm.DB) error {
		tour, err := s.tourRepo.FindByID(tx, id)
		if err != nil {
			return err
		}

		var cols []string
		setStr := func(col string, dst *string, val *string) {
			if val != nil {
				*dst = *val
				cols = append(cols, col)
			}
		}
		setStr("summary", &tour.Summary, req.Summary)
		setStr("description", &tour.Description, req.Description)
		setStr("image_cover", &tour.ImageCover, req.ImageCover)
		if req.Name != nil {
			tour.Name = *req.Name
			cols = append(cols, "name", "slug")
		}
		if req.Duration != nil {
			tour.Duration = *req.Duration
			cols = append(cols, "duration")
		}
		if req.MaxGroupSize != nil {
			tour.MaxGroup = *req.MaxGroupSize
			cols = append(cols, "max_group_size")
		}
		if req.Difficulty != nil {
			tour.Difficulty = models.TourDifficulty(*req.Difficulty)
			cols = append(cols, "difficulty")
		}
		if req.Price != nil {
			tour.Price = *req.Price
			cols = append(cols, "price")
		}
		if req.PriceDiscount != nil {
			if *req.PriceDiscount >= tour.Price {
				return apperrors.BadRequest("Discount price should be below regular price")
			}
			tour.PriceDiscount = *req.PriceDiscount
			cols = append(cols, "price_discount")
		}
		if req.Secret != nil {
			tour.Secret = *req.Secret
			cols = append(cols, "secret")
		}
		if req.StartLocation != nil {
			tour.StartLocation = geoPoint(*req.StartLocation)
			cols = append(cols, "start_lat", "start_lng", "start_address", "start_description")
		}

		if len(cols) > 0 {
			if updated, err = s.tourRepo.Resource.Update(tx, id, tour, cols); err != nil {
				return err
			}
		}

		if req.StartDates != nil {
			if err := s.tourRepo.ReplaceStartDates(tx, id, *req.StartDates); err != nil {
				return err
			}
		}
		if req.Locations != nil {
			if err := s.tourRepo.ReplaceLocations(tx, id, waypoints(*req.Locations)); err != nil {
				return err
			}
		}
		if req.Guides != nil {
			if err := s.tourRepo.ReplaceGuides(tx, tour, *req.Guides); err != nil {
				return err
			}
		}

		updated, err = s.tourRepo.FindByID(tx, id)
		return err
	})
	if err != nil {
		return nil, translateTourError(err)
	}
	return updated, nil
}

// SetImages stores processed upload filenames on the tour.
func (s *TourServiceImpl) SetImages(db *gorm.DB, id string, cover string, gallery datatypes.JSON) (*models.Tour, error) {
	updates := map[string]interface{}{}
	if cover != "" {
		updates["image_cover"] = cover
	}
	if gallery != nil {
		updates["images"] = gallery
	}
	if len(updates) == 0 {
		return s.tourRepo.FindByID(db, id)
	}

	res := db.Model(&models.Tour{}).
		Where("id = ? AND secret = ?", id, false).
		Updates(updates)
	if res.Error != nil {
		return nil, apperrors.InternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, apperrors.NotFound("")
	}
	return s.tourRepo.FindByID(db, id)
}

func translateTourError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		return apperrors.NotFound("")
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apperrors.AlreadyExists("A tour with that name already exists")
	default:
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			return appErr
		}
		return apperrors.InternalError(err)
	}
}
