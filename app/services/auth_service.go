package services

import (
	"time"

	"github.com/shashiranjanraj/foodshare/app/apperrors"
	"github.com/shashiranjanraj/foodshare/app/lifecycle"
	"github.com/shashiranjanraj/foodshare/app/models"
	"github.com/shashiranjanraj/foodshare/app/repositories"
	"github.com/shashiranjanraj/foodshare/pkg/auth"
	"github.com/shashiranjanraj/foodshare/pkg/crypt"
	"github.com/shashiranjanraj/foodshare/pkg/event"
	"github.com/shashiranjanraj/foodshare/pkg/orm"
)

// RegisterInput is the payload for POST /api/auth/register.
type RegisterInput struct {
	Email                string `json:"email" validate:"required,email"`
	Password             string `json:"password" validate:"required,min=8,confirmed"`
	PasswordConfirmation string `json:"password_confirmation"`
	FullName             string `json:"full_name" validate:"required,min=2,max=150"`
	Role                 string `json:"role" validate:"required,in=FoodProvider,NGO/Volunteer,Individual,Admin"`
	Organization         string `json:"organization" validate:"nullable,max=150"`
	Phone                string `json:"phone" validate:"nullable,max=30"`
	Address              string `json:"address" validate:"nullable,max=255"`
}

// ProfileInput is the payload for PUT /api/auth/profile. Role and email are
// deliberately absent: neither is editable through the profile endpoint.
type ProfileInput struct {
	FullName     string `json:"full_name" validate:"required,min=2,max=150"`
	Organization string `json:"organization" validate:"nullable,max=150"`
	Phone        string `json:"phone" validate:"nullable,max=30"`
	Address      string `json:"address" validate:"nullable,max=255"`
}

// TokenPair bundles the access and refresh JWTs returned by auth endpoints.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// verifyClaim is what gets sealed into the AES-GCM email verification token.
type verifyClaim struct {
	UserID  uint      `json:"user_id"`
	Expires time.Time `json:"expires"`
}

const verifyTokenTTL = 48 * time.Hour

type AuthService struct {
	users *repositories.UserRepository
}

func NewAuthService() *AuthService {
	return &AuthService{users: repositories.NewUserRepository()}
}

// Register creates the account, issues tokens and fires user.registered so
// the welcome email (with verification link) gets queued.
func (s *AuthService) Register(input RegisterInput) (models.User, TokenPair, error) {
	taken, err := s.users.EmailTaken(input.Email)
	if err != nil {
		return models.User{}, TokenPair{}, err
	}
	if taken {
		return models.User{}, TokenPair{}, apperrors.Validation("email", "The email has already been taken.")
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return models.User{}, TokenPair{}, err
	}

	user := models.User{
		Email:        input.Email,
		Password:     hash,
		FullName:     input.FullName,
		Role:         models.Role(input.Role),
		Organization: input.Organization,
		Phone:        input.Phone,
		Address:      input.Address,
	}
	if err := s.users.Create(&user); err != nil {
		return models.User{}, TokenPair{}, err
	}

	pair, err := s.issueTokens(user)
	if err != nil {
		return models.User{}, TokenPair{}, err
	}

	event.Fire(lifecycle.EventUserRegistered, lifecycle.UserRegistered{User: user})
	return user, pair, nil
}

// Login verifies credentials and issues a fresh token pair.
func (s *AuthService) Login(email, password string) (models.User, TokenPair, error) {
	user, err := s.users.FindByEmail(email)
	if err != nil {
		return models.User{}, TokenPair{}, apperrors.Validation("email", "Invalid credentials.")
	}
	if !auth.CheckPassword(user.Password, password) {
		return models.User{}, TokenPair{}, apperrors.Validation("email", "Invalid credentials.")
	}

	pair, err := s.issueTokens(user)
	return user, pair, err
}

// Refresh exchanges a valid refresh token for a new pair. The user is
// reloaded so a changed role takes effect immediately.
func (s *AuthService) Refresh(refreshToken string) (TokenPair, error) {
	claims, err := auth.ValidateToken(refreshToken)
	if err != nil {
		return TokenPair{}, apperrors.Validation("refresh", "Invalid or expired refresh token.")
	}

	user, err := s.users.FindByID(claims.UserID)
	if err != nil {
		return TokenPair{}, apperrors.Validation("refresh", "Invalid or expired refresh token.")
	}

	return s.issueTokens(user)
}

// Profile returns the authenticated user's record.
func (s *AuthService) Profile(userID uint) (models.User, error) {
	return s.users.FindByID(userID)
}

// UpdateProfile applies the editable profile fields.
func (s *AuthService) UpdateProfile(userID uint, input ProfileInput) (models.User, error) {
	user, err := s.users.FindByID(userID)
	if err != nil {
		return models.User{}, err
	}

	user.FullName = input.FullName
	user.Organization = input.Organization
	user.Phone = input.Phone
	user.Address = input.Address

	if err := s.users.Update(&user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

// VerificationToken seals a user id into the token embedded in the welcome
// email's verification link.
func (s *AuthService) VerificationToken(userID uint) (string, error) {
	return crypt.EncryptJSON(verifyClaim{
		UserID:  userID,
		Expires: time.Now().Add(verifyTokenTTL),
	})
}

// VerifyEmail unseals the token and marks the account verified.
func (s *AuthService) VerifyEmail(token string) (models.User, error) {
	var claim verifyClaim
	if err := crypt.DecryptJSON(token, &claim); err != nil {
		return models.User{}, apperrors.Validation("token", "Invalid verification token.")
	}
	if time.Now().After(claim.Expires) {
		return models.User{}, apperrors.Validation("token", "Verification token has expired.")
	}

	user, err := s.users.FindByID(claim.UserID)
	if err != nil {
		return models.User{}, err
	}

	if !user.IsEmailVerified {
		user.IsEmailVerified = true
		if err := s.users.Update(&user); err != nil {
			return models.User{}, err
		}
	}
	return user, nil
}

// Users lists all accounts, paginated. Route-level RBAC restricts this to
// Admins.
func (s *AuthService) Users(page, limit int) ([]models.User, orm.Pagination, error) {
	return s.users.All(page, limit)
}

func (s *AuthService) issueTokens(user models.User) (TokenPair, error) {
	access, err := auth.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := auth.GenerateRefreshToken(user.ID, string(user.Role))
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{Access: access, Refresh: refresh}, nil
}
