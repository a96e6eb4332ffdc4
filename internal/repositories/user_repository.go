package repositories

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"tourbook/internal/models"
	"tourbook/internal/utils"
)

// UserRepository reads and writes accounts. Deactivated accounts are
// invisible to every lookup here; reactivation would need an unscoped path.
type UserRepository struct {
	*Resource[models.User]
}

func NewUserRepository() *UserRepository {
	res := NewResource[models.User](
		"id", "role", "password", "passwordConfirm",
	)
	res.ReadScopes = []Scope{
		func(db *gorm.DB) *gorm.DB { return db.Where("active = ?", true) },
	}
	return &UserRepository{Resource: res}
}

// FindActiveByID is FindByID under the active-account scope, named for the
// auth middleware contract.
func (r *UserRepository) FindActiveByID(db *gorm.DB, id string) (*models.User, error) {
	return r.FindByID(db, id)
}

// FindByEmail looks an account up by its normalized address; stored emails
// are lowercased on write, so lookups lowercase too.
func (r *UserRepository) FindByEmail(db *gorm.DB, email string) (*models.User, error) {
	var user models.User
	err := r.scoped(db).First(&user, "email = ?", utils.NormalizeEmail(email)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// FindByResetDigest resolves a hashed reset token to its account. Expired
// tokens do not match.
func (r *UserRepository) FindByResetDigest(db *gorm.DB, digest string) (*models.User, error) {
	var user models.User
	err := r.scoped(db).
		Where("password_reset_token = ?", digest).
		Where("password_reset_expires_at > ?", time.Now()).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// SaveResetToken stores the token digest and its expiry on the account.
func (r *UserRepository) SaveResetToken(db *gorm.DB, userID, digest string, expiresAt time.Time) error {
	return db.Model(&models.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"password_reset_token":      digest,
			"password_reset_expires_at": expiresAt,
		}).Error
}

// ClearResetToken drops an issued reset token, used when mail delivery fails
// after the token was saved.
func (r *UserRepository) ClearResetToken(db *gorm.DB, userID string) error {
	return db.Model(&models.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"password_reset_token":      nil,
			"password_reset_expires_at": nil,
		}).Error
}

// UpdatePassword stores a new hash and stamps the change slightly in the
// past, so a session token minted in the same second still verifies.
func (r *UserRepository) UpdatePassword(db *gorm.DB, userID, passwordHash string) error {
	changedAt := time.Now().Add(-time.Second)
	return db.Model(&models.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"password_hash":             passwordHash,
			"password_changed_at":       changedAt,
			"password_reset_token":      nil,
			"password_reset_expires_at": nil,
		}).Error
}

// Deactivate soft-deletes the account.
func (r *UserRepository) Deactivate(db *gorm.DB, userID string) error {
	res := db.Model(&models.User{}).
		Where("id = ? AND active = ?", userID, true).
		Update("active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *UserRepository) CountAdmins(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&models.User{}).
		Where("role = ?", models.UserRoleAdmin).
		Count(&count).Error
	return count, err
}
