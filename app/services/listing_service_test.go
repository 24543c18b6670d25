package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/foodshare/app/apperrors"
	"github.com/shashiranjanraj/foodshare/app/models"
	"github.com/shashiranjanraj/foodshare/app/repositories"
	"github.com/shashiranjanraj/foodshare/app/services"
)

func createInput() services.CreateListingInput {
	return services.CreateListingInput{
		Title:      "Surplus rice, 10kg",
		Quantity:   10,
		Location:   "5 Dock Rd",
		ExpiryTime: time.Now().Add(24 * time.Hour),
	}
}

func TestCreateListing(t *testing.T) {
	db := setupDB(t)
	provider := makeUser(t, db, "p@example.com", models.RoleFoodProvider)
	svc := services.NewListingService()

	listing, err := svc.Create(provider, createInput())
	require.NoError(t, err)
	assert.Equal(t, models.ListingAvailable, listing.Status)
	assert.Equal(t, provider.ID, listing.CreatedByID)
}

func TestCreateListingDeniedForNGO(t *testing.T) {
	db := setupDB(t)
	ngo := makeUser(t, db, "n@example.com", models.RoleNGO)
	svc := services.NewListingService()

	_, err := svc.Create(ngo, createInput())
	require.Error(t, err)
	_, ok := apperrors.AsAuthorization(err)
	assert.True(t, ok)
}

func TestCreateListingRejectsPastExpiry(t *testing.T) {
	db := setupDB(t)
	provider := makeUser(t, db, "p@example.com", models.RoleFoodProvider)
	svc := services.NewListingService()

	input := createInput()
	input.ExpiryTime = time.Now().Add(-time.Hour)
	_, err := svc.Create(provider, input)
	require.Error(t, err)
	verr, ok := apperrors.AsValidation(err)
	require.True(t, ok)
	assert.Contains(t, verr.Fields, "expiry_time")
}

func TestUpdateListingOwnerOnly(t *testing.T) {
	db := setupDB(t)
	owner := makeUser(t, db, "owner@example.com", models.RoleFoodProvider)
	other := makeUser(t, db, "other@example.com", models.RoleFoodProvider)
	admin := makeUser(t, db, "admin@example.com", models.RoleAdmin)
	listing := makeListing(t, db, owner, models.ListingAvailable)
	svc := services.NewListingService()

	title := "Renamed tray"
	_, err := svc.Update(other, listing.ID, services.UpdateListingInput{Title: &title})
	require.Error(t, err)
	_, ok := apperrors.AsAuthorization(err)
	assert.True(t, ok)

	got, err := svc.Update(owner, listing.ID, services.UpdateListingInput{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Renamed tray", got.Title)

	status := string(models.ListingDistributed)
	got, err = svc.Update(admin, listing.ID, services.UpdateListingInput{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, models.ListingDistributed, got.Status)
}

func TestUpdateListingRejectsBadStatus(t *testing.T) {
	db := setupDB(t)
	owner := makeUser(t, db, "owner@example.com", models.RoleFoodProvider)
	listing := makeListing(t, db, owner, models.ListingAvailable)
	svc := services.NewListingService()

	status := "Gone"
	_, err := svc.Update(owner, listing.ID, services.UpdateListingInput{Status: &status})
	require.Error(t, err)
	verr, ok := apperrors.AsValidation(err)
	require.True(t, ok)
	assert.Contains(t, verr.Fields, "status")
}

func TestListingVisibilityScopes(t *testing.T) {
	db := setupDB(t)
	owner := makeUser(t, db, "owner@example.com", models.RoleFoodProvider)
	other := makeUser(t, db, "other@example.com", models.RoleFoodProvider)
	ngo := makeUser(t, db, "ngo@example.com", models.RoleNGO)
	admin := makeUser(t, db, "admin@example.com", models.RoleAdmin)

	mine := makeListing(t, db, owner, models.ListingAvailable)
	makeListing(t, db, other, models.ListingAvailable)
	distributed := makeListing(t, db, other, models.ListingDistributed)

	svc := services.NewListingService()

	// Providers see only their own listings.
	got, _, err := svc.List(owner, repositories.ListingFilter{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, mine.ID, got[0].ID)

	// NGOs see only Available listings, whoever owns them.
	got, _, err = svc.List(ngo, repositories.ListingFilter{})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	// Admins see everything.
	got, _, err = svc.List(admin, repositories.ListingFilter{})
	require.NoError(t, err)
	assert.Len(t, got, 3)

	// A provider fetching someone else's listing gets not-found, not forbidden.
	_, err = svc.Get(owner, distributed.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestAvailableExcludesExpired(t *testing.T) {
	db := setupDB(t)
	owner := makeUser(t, db, "owner@example.com", models.RoleFoodProvider)

	fresh := makeListing(t, db, owner, models.ListingAvailable)
	expired := makeListing(t, db, owner, models.ListingAvailable)
	require.NoError(t, db.Model(expired).Update("expiry_time", time.Now().Add(-time.Hour)).Error)
	makeListing(t, db, owner, models.ListingDistributed)

	svc := services.NewListingService()
	got, err := svc.Available()
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, fresh.ID, got[0].ID)
}

func TestDeleteListing(t *testing.T) {
	db := setupDB(t)
	owner := makeUser(t, db, "owner@example.com", models.RoleFoodProvider)
	other := makeUser(t, db, "other@example.com", models.RoleFoodProvider)
	listing := makeListing(t, db, owner, models.ListingAvailable)
	svc := services.NewListingService()

	require.Error(t, svc.Delete(other, listing.ID))
	require.NoError(t, svc.Delete(owner, listing.ID))

	_, err := svc.Get(owner, listing.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
