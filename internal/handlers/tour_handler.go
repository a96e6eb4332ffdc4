package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"

	"tourbook/internal/imageprocessor"
	"tourbook/internal/models"
	"tourbook/internal/repositories"
	"tourbook/internal/services"
	"tourbook/internal/services/dto"
	"tourbook/pkg/apperrors"
)

type TourHandler struct {
	*ResourceHandler[models.Tour]
	tourRepo    *repositories.TourRepository
	tourService services.TourService
	uploads     *Uploads
}

func NewTourHandler(base *BaseHandler, tours *repositories.TourRepository, tourService services.TourService, uploads *Uploads) *TourHandler {
	return &TourHandler{
		ResourceHandler: NewResourceHandler(base, tours.Resource, "tour", "tours"),
		tourRepo:        tours,
		tourService:     tourService,
		uploads:         uploads,
	}
}

// AliasTopTours rewrites the query to the canonical "top 5 cheap" listing
// before the normal list handler runs.
func (h *TourHandler) AliasTopTours(c *gin.Context) {
	q := url.Values{}
	q.Set("limit", "5")
	q.Set("sort", "-ratingsAverage,price")
	q.Set("fields", "name,price,ratingsAverage,summary,difficulty")
	c.Request.URL.RawQuery = q.Encode()
	c.Next()
}

// CreateOne builds the tour with its schedule, itinerary and guides.
func (h *TourHandler) CreateOne(c *gin.Context) {
	var req dto.CreateTourRequest
	if !h.BindAndValidate(c, &req) {
		return
	}

	tour, err := h.tourService.Create(h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.Success(c, http.StatusCreated, gin.H{"tour": tour})
}

// UpdateOne patches the tour through the typed partial-update request so
// association replacement stays explicit.
func (h *TourHandler) UpdateOne(c *gin.Context) {
	var req dto.UpdateTourRequest
	if !h.BindAndValidate(c, &req) {
		return
	}

	tour, err := h.tourService.Update(h.GetDB(c), c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.Success(c, http.StatusOK, gin.H{"tour": tour})
}

// GetTourStats aggregates the well-rated tours per difficulty.
func (h *TourHandler) GetTourStats(c *gin.Context) {
	stats, err := h.tourRepo.Stats(h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.Success(c, http.StatusOK, gin.H{"stats": stats})
}

// GetMonthlyPlan lists departures per month for a year.
func (h *TourHandler) GetMonthlyPlan(c *gin.Context) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		apperrors.HandleError(c, apperrors.BadRequest("Please provide a valid year"))
		return
	}

	plan, err := h.tourRepo.MonthlyPlan(h.GetDB(c), year)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.Success(c, http.StatusOK, gin.H{"plan": plan})
}

// parseLatLng splits the "lat,lng" path segment.
func parseLatLng(raw string) (lat, lng float64, err error) {
	parts := strings.Split(raw, ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("expected lat,lng")
	}
	if lat, err = strconv.ParseFloat(strings.TrimSpace(parts[0]), 64); err != nil {
		return 0, 0, err
	}
	if lng, err = strconv.ParseFloat(strings.TrimSpace(parts[1]), 64); err != nil {
		return 0, 0, err
	}
	return lat, lng, nil
}

// GetToursWithin lists tours starting within a radius of a point.
// Route: /tours-within/:distance/center/:latlng/unit/:unit
func (h *TourHandler) GetToursWithin(c *gin.Context) {
	distance, err := strconv.ParseFloat(c.Param("distance"), 64)
	if err != nil || distance < 0 {
		apperrors.HandleError(c, apperrors.BadRequest("Please provide a valid distance"))
		return
	}
	lat, lng, err := parseLatLng(c.Param("latlng"))
	if err != nil {
		apperrors.HandleError(c, apperrors.BadRequest("Please provide latitude and longitude in the format lat,lng"))
		return
	}

	tours, err := h.tourRepo.WithinRadius(h.GetDB(c), lat, lng, distance, c.Param("unit"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.SuccessList(c, "tours", tours, len(tours))
}

// GetDistances lists every tour with its distance from a point.
// Route: /distances/:latlng/unit/:unit
func (h *TourHandler) GetDistances(c *gin.Context) {
	lat, lng, err := parseLatLng(c.Param("latlng"))
	if err != nil {
		apperrors.HandleError(c, apperrors.BadRequest("Please provide latitude and longitude in the format lat,lng"))
		return
	}

	distances, err := h.tourRepo.Distances(h.GetDB(c), lat, lng, c.Param("unit"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.Success(c, http.StatusOK, gin.H{"distances": distances})
}

// UploadImages accepts the cover and up to three gallery images for a tour.
func (h *TourHandler) UploadImages(c *gin.Context) {
	tourID := c.Param("id")

	form, err := c.MultipartForm()
	if err != nil {
		apperrors.HandleError(c, apperrors.BadRequest("Invalid multipart form"))
		return
	}

	var cover string
	if files := form.File["imageCover"]; len(files) > 0 {
		name := fmt.Sprintf("tour-%s-%d-cover", tourID, time.Now().UnixMilli())
		cover, err = h.uploads.SaveImage(c, files[0], imageprocessor.SizeTourImage, "img/tours", name)
		if err != nil {
			apperrors.HandleError(c, err)
			return
		}
	}

	var gallery datatypes.JSON
	if files := form.File["images"]; len(files) > 0 {
		if len(files) > 3 {
			files = files[:3]
		}
		names := make([]string, 0, len(files))
		for i, fh := range files {
			name := fmt.Sprintf("tour-%s-%d-%d", tourID, time.Now().UnixMilli(), i+1)
			saved, err := h.uploads.SaveImage(c, fh, imageprocessor.SizeTourImage, "img/tours", name)
			if err != nil {
				apperrors.HandleError(c, err)
				return
			}
			names = append(names, saved)
		}
		raw, err := json.Marshal(names)
		if err != nil {
			apperrors.HandleError(c, apperrors.InternalError(err))
			return
		}
		gallery = datatypes.JSON(raw)
	}

	tour, err := h.tourService.SetImages(h.GetDB(c), tourID, cover, gallery)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.Success(c, http.StatusOK, gin.H{"tour": tour})
}
