package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/foodshare/app/apperrors"
	"github.com/shashiranjanraj/foodshare/app/models"
	"github.com/shashiranjanraj/foodshare/app/services"
	"github.com/shashiranjanraj/foodshare/pkg/auth"
)

func registerInput(email string) services.RegisterInput {
	return services.RegisterInput{
		Email:                email,
		Password:             "secret-pass",
		PasswordConfirmation: "secret-pass",
		FullName:             "Ada Example",
		Role:                 "NGO/Volunteer",
	}
}

func TestRegisterAndLogin(t *testing.T) {
	setupDB(t)
	svc := services.NewAuthService()

	user, pair, err := svc.Register(registerInput("ada@example.com"))
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, models.RoleNGO, user.Role)
	assert.NotEmpty(t, pair.Access)
	assert.NotEmpty(t, pair.Refresh)
	assert.False(t, user.IsEmailVerified)

	// The stored password must be hashed, never the plaintext.
	assert.NotEqual(t, "secret-pass", user.Password)
	assert.True(t, auth.CheckPassword(user.Password, "secret-pass"))

	got, _, err := svc.Login("ada@example.com", "secret-pass")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	setupDB(t)
	svc := services.NewAuthService()

	_, _, err := svc.Register(registerInput("dup@example.com"))
	require.NoError(t, err)

	_, _, err = svc.Register(registerInput("dup@example.com"))
	require.Error(t, err)
	verr, ok := apperrors.AsValidation(err)
	require.True(t, ok)
	assert.Contains(t, verr.Fields, "email")
}

func TestLoginWrongPassword(t *testing.T) {
	setupDB(t)
	svc := services.NewAuthService()

	_, _, err := svc.Register(registerInput("bob@example.com"))
	require.NoError(t, err)

	_, _, err = svc.Login("bob@example.com", "wrong-pass")
	require.Error(t, err)
	_, ok := apperrors.AsValidation(err)
	assert.True(t, ok, "credential failures surface as validation errors")

	_, _, err = svc.Login("nobody@example.com", "secret-pass")
	require.Error(t, err)
}

func TestRefreshReloadsRole(t *testing.T) {
	db := setupDB(t)
	svc := services.NewAuthService()

	user, pair, err := svc.Register(registerInput("role@example.com"))
	require.NoError(t, err)

	// Promote the user, then refresh: the new access token must carry Admin.
	require.NoError(t, db.Model(&models.User{}).Where("id = ?", user.ID).
		Update("role", models.RoleAdmin).Error)

	fresh, err := svc.Refresh(pair.Refresh)
	require.NoError(t, err)

	claims, err := auth.ValidateToken(fresh.Access)
	require.NoError(t, err)
	assert.Equal(t, string(models.RoleAdmin), claims.Role)
}

func TestRefreshRejectsGarbage(t *testing.T) {
	setupDB(t)
	svc := services.NewAuthService()

	_, err := svc.Refresh("not-a-jwt")
	require.Error(t, err)
	_, ok := apperrors.AsValidation(err)
	assert.True(t, ok)
}

func TestVerifyEmailRoundTrip(t *testing.T) {
	setupDB(t)
	svc := services.NewAuthService()

	user, _, err := svc.Register(registerInput("verify@example.com"))
	require.NoError(t, err)

	token, err := svc.VerificationToken(user.ID)
	require.NoError(t, err)

	verified, err := svc.VerifyEmail(token)
	require.NoError(t, err)
	assert.True(t, verified.IsEmailVerified)

	// Verifying twice is a no-op, not an error.
	again, err := svc.VerifyEmail(token)
	require.NoError(t, err)
	assert.True(t, again.IsEmailVerified)
}

func TestVerifyEmailBadToken(t *testing.T) {
	setupDB(t)
	svc := services.NewAuthService()

	_, err := svc.VerifyEmail("garbage-token")
	require.Error(t, err)
	_, ok := apperrors.AsValidation(err)
	assert.True(t, ok)
}

func TestUpdateProfileCannotChangeRole(t *testing.T) {
	setupDB(t)
	svc := services.NewAuthService()

	user, _, err := svc.Register(registerInput("profile@example.com"))
	require.NoError(t, err)

	updated, err := svc.UpdateProfile(user.ID, services.ProfileInput{
		FullName:     "Ada Renamed",
		Organization: "Food Rescue Org",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ada Renamed", updated.FullName)
	assert.Equal(t, "Food Rescue Org", updated.Organization)
	assert.Equal(t, models.RoleNGO, updated.Role)
}
