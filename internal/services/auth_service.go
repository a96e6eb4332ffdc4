package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"tourbook/internal/auth"
	"tourbook/internal/email"
	"tourbook/internal/logger"
	"tourbook/internal/models"
	"tourbook/internal/repositories"
	"tourbook/internal/services/dto"
	"tourbook/internal/utils"
	"tourbook/pkg/apperrors"
)

type AuthService interface {
	Signup(db *gorm.DB, req *dto.SignupRequest) (*dto.AuthResponse, error)
	Login(db *gorm.DB, req *dto.LoginRequest) (*dto.AuthResponse, error)
	ForgotPassword(db *gorm.DB, emailAddr, resetURLBase string) error
	ResetPassword(db *gorm.DB, plainToken string, req *dto.ResetPasswordRequest) (*dto.AuthResponse, error)
	UpdatePassword(db *gorm.DB, user *models.User, req *dto.UpdatePasswordRequest) (*dto.AuthResponse, error)
}

type AuthServiceImpl struct {
	userRepo *repositories.UserRepository
	tokens   *auth.TokenService
	mailer   email.Mailer
}

func NewAuthService(userRepo *repositories.UserRepository, tokens *auth.TokenService, mailer email.Mailer) AuthService {
	return &AuthServiceImpl{
		userRepo: userRepo,
		tokens:   tokens,
		mailer:   mailer,
	}
}

func (s *AuthServiceImpl) authResponse(user *models.User) (*dto.AuthResponse, error) {
	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &dto.AuthResponse{Token: token, User: user}, nil
}

// Signup creates an account and logs it in. The role is always "user";
// elevated roles are granted by an admin afterwards.
func (s *AuthServiceImpl) Signup(db *gorm.DB, req *dto.SignupRequest) (*dto.AuthResponse, error) {
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Name:         req.Name,
		Email:        utils.NormalizeEmail(req.Email),
		Role:         models.UserRoleUser,
		PasswordHash: hash,
		Active:       true,
	}
	if err := s.userRepo.Create(db, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, apperrors.InternalError(err)
	}

	// welcome mail is best effort; the account exists either way
	if err := s.mailer.SendWelcome(user.Email, user.Name); err != nil {
		logger.Warn("welcome email failed", "user_id", user.ID, "error", err)
	}

	return s.authResponse(user)
}

// Login exchanges credentials for a session. The same error covers unknown
// email and wrong password.
func (s *AuthServiceImpl) Login(db *gorm.DB, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(db, req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}
	if !auth.CheckPassword(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}
	return s.authResponse(user)
}

// ForgotPassword issues a reset token and mails it. When the mail cannot be
// delivered the token is revoked, so the stored digest never outlives a lost
// email.
func (s *AuthServiceImpl) ForgotPassword(db *gorm.DB, emailAddr, resetURLBase string) error {
	user, err := s.userRepo.FindByEmail(db, emailAddr)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.NotFound("There is no user with that email address")
		}
		return apperrors.InternalError(err)
	}

	plain, digest, err := auth.NewResetToken()
	if err != nil {
		return apperrors.InternalError(err)
	}
	expiresAt := auth.ResetTokenExpiry()
	if err := s.userRepo.SaveResetToken(db, user.ID, digest, expiresAt); err != nil {
		return apperrors.InternalError(err)
	}

	resetURL := fmt.Sprintf("%s/%s", resetURLBase, plain)
	if err := s.mailer.SendPasswordReset(user.Email, user.Name, resetURL); err != nil {
		if clearErr := s.userRepo.ClearResetToken(db, user.ID); clearErr != nil {
			logger.Error("reset token cleanup failed", "user_id", user.ID, "error", clearErr)
		}
		return apperrors.InternalError(fmt.Errorf("send password reset email: %w", err))
	}
	return nil
}

// ResetPassword consumes a mailed token and sets the new password, returning
// a fresh session.
func (s *AuthServiceImpl) ResetPassword(db *gorm.DB, plainToken string, req *dto.ResetPasswordRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByResetDigest(db, auth.HashResetToken(plainToken))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrResetTokenInvalid
		}
		return nil, apperrors.InternalError(err)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if err := s.userRepo.UpdatePassword(db, user.ID, hash); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return s.authResponse(user)
}

// UpdatePassword changes the password of a logged-in user after re-checking
// the current one.
func (s *AuthServiceImpl) UpdatePassword(db *gorm.DB, user *models.User, req *dto.UpdatePasswordRequest) (*dto.AuthResponse, error) {
	if !auth.CheckPassword(req.PasswordCurrent, user.PasswordHash) {
		return nil, apperrors.Unauthorized("Your current password is wrong")
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if err := s.userRepo.UpdatePassword(db, user.ID, hash); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return s.authResponse(user)
}
