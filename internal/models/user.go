package models

import "time"

type UserRole string

const (
	UserRoleUser      UserRole = "user"
	UserRoleGuide     UserRole = "guide"
	UserRoleLeadGuide UserRole = "lead-guide"
	UserRoleAdmin     UserRole = "admin"
)

// ValidRole reports whether r is one of the fixed role enumeration.
func ValidRole(r UserRole) bool {
	switch r {
	case UserRoleUser, UserRoleGuide, UserRoleLeadGuide, UserRoleAdmin:
		return true
	}
	return false
}

type User struct {
	BaseModel
	Name         string   `gorm:"not null" json:"name" validate:"required"`
	Email        string   `gorm:"uniqueIndex;not null" json:"email" validate:"required,email"`
	Photo        string   `gorm:"default:'default.jpg'" json:"photo"`
	Role         UserRole `gorm:"type:varchar(20);not null;default:'user'" json:"role"`
	PasswordHash string   `gorm:"not null" json:"-"`

	// Soft delete: deactivated accounts stay in the table but are excluded
	// from every read.
	Active bool `gorm:"not null;default:true" json:"-"`

	PasswordChangedAt      *time.Time `json:"-"`
	PasswordResetToken     string     `json:"-"`
	PasswordResetExpiresAt *time.Time `json:"-"`
}

// PasswordChangedAfter reports whether the stored password was changed after
// the given token issuance time. Used to reject stale session tokens.
func (u *User) PasswordChangedAfter(issuedAt time.Time) bool {
	if u.PasswordChangedAt == nil {
		return false
	}
	return u.PasswordChangedAt.After(issuedAt)
}
