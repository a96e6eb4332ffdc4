package services

import (
	"errors"

	"gorm.io/gorm"

	"tourbook/internal/models"
	"tourbook/internal/repositories"
	"tourbook/internal/services/dto"
	"tourbook/internal/utils"
	"tourbook/pkg/apperrors"
)

type UserService interface {
	UpdateMe(db *gorm.DB, userID string, req *dto.UpdateMeRequest, photoFilename string) (*models.User, error)
	DeleteMe(db *gorm.DB, userID string) error
}

type UserServiceImpl struct {
	userRepo *repositories.UserRepository
}

func NewUserService(userRepo *repositories.UserRepository) UserService {
	return &UserServiceImpl{userRepo: userRepo}
}

// UpdateMe applies the self-service profile fields. Empty fields are left
// untouched; photoFilename is set when an upload was processed.
func (s *UserServiceImpl) UpdateMe(db *gorm.DB, userID string, req *dto.UpdateMeRequest, photoFilename string) (*models.User, error) {
	updates := map[string]interface{}{}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Email != "" {
		updates["email"] = utils.NormalizeEmail(req.Email)
	}
	if photoFilename != "" {
		updates["photo"] = photoFilename
	}

	if len(updates) > 0 {
		err := db.Model(&models.User{}).
			Where("id = ? AND active = ?", userID, true).
			Updates(updates).Error
		if err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, apperrors.ErrEmailAlreadyExists
			}
			return nil, apperrors.InternalError(err)
		}
	}

	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.NotFound("")
		}
		return nil, apperrors.InternalError(err)
	}
	return user, nil
}

// DeleteMe deactivates the account. The row stays for bookings and reviews
// to keep referring to.
func (s *UserServiceImpl) DeleteMe(db *gorm.DB, userID string) error {
	if err := s.userRepo.Deactivate(db, userID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.NotFound("")
		}
		return apperrors.InternalError(err)
	}
	return nil
}
