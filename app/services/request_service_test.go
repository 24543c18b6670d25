package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/foodshare/app/apperrors"
	"github.com/shashiranjanraj/foodshare/app/models"
	"github.com/shashiranjanraj/foodshare/app/services"
)

func reloadListing(t *testing.T, id uint) models.FoodListing {
	t.Helper()
	svc := services.NewListingService()
	var admin models.User
	admin.Role = models.RoleAdmin
	listing, err := svc.Get(&admin, id)
	require.NoError(t, err)
	return listing
}

func TestCreateRequestMovesListingToRequested(t *testing.T) {
	db := setupDB(t)
	owner := makeUser(t, db, "owner@example.com", models.RoleFoodProvider)
	ngo := makeUser(t, db, "ngo@example.com", models.RoleNGO)
	listing := makeListing(t, db, owner, models.ListingAvailable)
	svc := services.NewRequestService()

	req, err := svc.Create(ngo, services.CreateRequestInput{FoodItemID: listing.ID, Message: "We can pick up today."})
	require.NoError(t, err)
	assert.Equal(t, models.RequestPending, req.Status)
	assert.Equal(t, ngo.ID, req.RequestedByID)

	assert.Equal(t, models.ListingRequested, reloadListing(t, listing.ID).Status)
}

func TestCreateRequestDeniedForProvider(t *testing.T) {
	db := setupDB(t)
	owner := makeUser(t, db, "owner@example.com", models.RoleFoodProvider)
	listing := makeListing(t, db, owner, models.ListingAvailable)
	svc := services.NewRequestService()

	_, err := svc.Create(owner, services.CreateRequestInput{FoodItemID: listing.ID})
	require.Error(t, err)
	_, ok := apperrors.AsAuthorization(err)
	assert.True(t, ok)
}

func TestCreateRequestOnUnavailableListing(t *testing.T) {
	db := setupDB(t)
	owner := makeUser(t, db, "owner@example.com", models.RoleFoodProvider)
	ngo := makeUser(t, db, "ngo@example.com", models.RoleNGO)
	listing := makeListing(t, db, owner, models.ListingCollected)
	svc := services.NewRequestService()

	_, err := svc.Create(ngo, services.CreateRequestInput{FoodItemID: listing.ID})
	require.Error(t, err)
	verr, ok := apperrors.AsValidation(err)
	require.True(t, ok)
	assert.Contains(t, verr.Fields, "food_item")
}

func TestCreateRequestTwiceRejected(t *testing.T) {
	db := setupDB(t)
	owner := makeUser(t, db, "owner@example.com", models.RoleFoodProvider)
	ngo := makeUser(t, db, "ngo@example.com", models.RoleNGO)
	listing := makeListing(t, db, owner, models.ListingAvailable)
	svc := services.NewRequestService()

	req, err := svc.Create(ngo, services.CreateRequestInput{FoodItemID: listing.ID})
	require.NoError(t, err)

	// Reject it, reopening the listing, then try again: the one-request-per-
	// pair rule still blocks a second attempt by the same requester.
	admin := makeUser(t, db, "admin@example.com", models.RoleAdmin)
	rejected := string(models.RequestRejected)
	_, err = svc.Update(admin, req.ID, services.UpdateRequestInput{Status: &rejected})
	require.NoError(t, err)
	assert.Equal(t, models.ListingAvailable, reloadListing(t, listing.ID).Status)

	_, err = svc.Create(ngo, services.CreateRequestInput{FoodItemID: listing.ID})
	require.Error(t, err)
	verr, ok := apperrors.AsValidation(err)
	require.True(t, ok)
	assert.Contains(t, verr.Fields["food_item"], "already requested")
}

func TestRecreateAfterDelete(t *testing.T) {
	db := setupDB(t)
	owner := makeUser(t, db, "owner@example.com", models.RoleFoodProvider)
	ngo := makeUser(t, db, "ngo@example.com", models.RoleNGO)
	listing := makeListing(t, db, owner, models.ListingAvailable)
	svc := services.NewRequestService()

	req, err := svc.Create(ngo, services.CreateRequestInput{FoodItemID: listing.ID})
	require.NoError(t, err)

	// Reject to reopen the listing, then delete the request. Deleting frees
	// the (listing, requester) pair entirely, so a fresh request must go
	// through instead of tripping the unique index.
	rejected := string(models.RequestRejected)
	_, err = svc.Update(owner, req.ID, services.UpdateRequestInput{Status: &rejected})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(owner, req.ID))
	assert.Equal(t, models.ListingAvailable, reloadListing(t, listing.ID).Status)

	again, err := svc.Create(ngo, services.CreateRequestInput{FoodItemID: listing.ID})
	require.NoError(t, err)
	assert.Equal(t, models.RequestPending, again.Status)
	assert.Equal(t, models.ListingRequested, reloadListing(t, listing.ID).Status)
}

func TestApproveThenCompleteCascades(t *testing.T) {
	db := setupDB(t)
	owner := makeUser(t, db, "owner@example.com", models.RoleFoodProvider)
	ngo := makeUser(t, db, "ngo@example.com", models.RoleNGO)
	listing := makeListing(t, db, owner, models.ListingAvailable)
	svc := services.NewRequestService()

	req, err := svc.Create(ngo, services.CreateRequestInput{FoodItemID: listing.ID})
	require.NoError(t, err)

	approved := string(models.RequestApproved)
	got, err := svc.Update(owner, req.ID, services.UpdateRequestInput{Status: &approved})
	require.NoError(t, err)
	assert.Equal(t, models.RequestApproved, got.Status)
	assert.Equal(t, models.ListingCollected, reloadListing(t, listing.ID).Status)

	completed := string(models.RequestCompleted)
	got, err = svc.Update(owner, req.ID, services.UpdateRequestInput{Status: &completed})
	require.NoError(t, err)
	assert.Equal(t, models.RequestCompleted, got.Status)
	assert.Equal(t, models.ListingDistributed, reloadListing(t, listing.ID).Status)
}

func TestRequesterCannotSetStatus(t *testing.T) {
	db := setupDB(t)
	owner := makeUser(t, db, "owner@example.com", models.RoleFoodProvider)
	ngo := makeUser(t, db, "ngo@example.com", models.RoleNGO)
	listing := makeListing(t, db, owner, models.ListingAvailable)
	svc := services.NewRequestService()

	req, err := svc.Create(ngo, services.CreateRequestInput{FoodItemID: listing.ID})
	require.NoError(t, err)

	approved := string(models.RequestApproved)
	_, err = svc.Update(ngo, req.ID, services.UpdateRequestInput{Status: &approved})
	require.Error(t, err)
	_, ok := apperrors.AsAuthorization(err)
	assert.True(t, ok, "requester sees the request but may not drive status")
}

func TestStrangerGetsNotFound(t *testing.T) {
	db := setupDB(t)
	owner := makeUser(t, db, "owner@example.com", models.RoleFoodProvider)
	ngo := makeUser(t, db, "ngo@example.com", models.RoleNGO)
	stranger := makeUser(t, db, "stranger@example.com", models.RoleNGO)
	listing := makeListing(t, db, owner, models.ListingAvailable)
	svc := services.NewRequestService()

	req, err := svc.Create(ngo, services.CreateRequestInput{FoodItemID: listing.ID})
	require.NoError(t, err)

	_, err = svc.Get(stranger, req.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	approved := string(models.RequestApproved)
	_, err = svc.Update(stranger, req.ID, services.UpdateRequestInput{Status: &approved})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestRejectKeepsListingRequestedWhileOthersPend(t *testing.T) {
	db := setupDB(t)
	owner := makeUser(t, db, "owner@example.com", models.RoleFoodProvider)
	first := makeUser(t, db, "first@example.com", models.RoleNGO)
	admin := makeUser(t, db, "admin@example.com", models.RoleAdmin)
	listing := makeListing(t, db, owner, models.ListingAvailable)
	svc := services.NewRequestService()

	reqA, err := svc.Create(first, services.CreateRequestInput{FoodItemID: listing.ID})
	require.NoError(t, err)

	// Second pending request inserted directly: Create only accepts Available
	// listings, but an Admin-created request against a Requested listing is
	// representable in the data model.
	reqB := models.FoodRequest{
		FoodItemID:    listing.ID,
		RequestedByID: admin.ID,
		Status:        models.RequestPending,
	}
	require.NoError(t, db.Create(&reqB).Error)

	rejected := string(models.RequestRejected)
	_, err = svc.Update(owner, reqA.ID, services.UpdateRequestInput{Status: &rejected})
	require.NoError(t, err)
	assert.Equal(t, models.ListingRequested, reloadListing(t, listing.ID).Status)

	// Rejecting the last pending request reopens the listing.
	_, err = svc.Update(owner, reqB.ID, services.UpdateRequestInput{Status: &rejected})
	require.NoError(t, err)
	assert.Equal(t, models.ListingAvailable, reloadListing(t, listing.ID).Status)
}

func TestBulkUpdateAdminOnly(t *testing.T) {
	db := setupDB(t)
	owner := makeUser(t, db, "owner@example.com", models.RoleFoodProvider)
	ngo := makeUser(t, db, "ngo@example.com", models.RoleNGO)
	admin := makeUser(t, db, "admin@example.com", models.RoleAdmin)
	svc := services.NewRequestService()

	l1 := makeListing(t, db, owner, models.ListingAvailable)
	l2 := makeListing(t, db, owner, models.ListingAvailable)
	r1, err := svc.Create(ngo, services.CreateRequestInput{FoodItemID: l1.ID})
	require.NoError(t, err)
	r2, err := svc.Create(ngo, services.CreateRequestInput{FoodItemID: l2.ID})
	require.NoError(t, err)

	input := services.BulkUpdateInput{RequestIDs: []uint{r1.ID, r2.ID}, Status: string(models.RequestRejected)}

	_, err = svc.BulkUpdate(ngo, input)
	require.Error(t, err)

	count, err := svc.BulkUpdate(admin, input)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	// Bulk updates are an administrative override: listings are not cascaded.
	assert.Equal(t, models.ListingRequested, reloadListing(t, l1.ID).Status)
}

func TestBulkUpdateValidation(t *testing.T) {
	db := setupDB(t)
	admin := makeUser(t, db, "admin@example.com", models.RoleAdmin)
	svc := services.NewRequestService()

	_, err := svc.BulkUpdate(admin, services.BulkUpdateInput{Status: string(models.RequestRejected)})
	require.Error(t, err)

	_, err = svc.BulkUpdate(admin, services.BulkUpdateInput{RequestIDs: []uint{1}, Status: "Nope"})
	require.Error(t, err)
}

func TestMyRequestsAndForMyFood(t *testing.T) {
	db := setupDB(t)
	owner := makeUser(t, db, "owner@example.com", models.RoleFoodProvider)
	ngo := makeUser(t, db, "ngo@example.com", models.RoleNGO)
	other := makeUser(t, db, "other@example.com", models.RoleNGO)
	svc := services.NewRequestService()

	l1 := makeListing(t, db, owner, models.ListingAvailable)
	l2 := makeListing(t, db, owner, models.ListingAvailable)
	_, err := svc.Create(ngo, services.CreateRequestInput{FoodItemID: l1.ID})
	require.NoError(t, err)
	_, err = svc.Create(other, services.CreateRequestInput{FoodItemID: l2.ID})
	require.NoError(t, err)

	mine, err := svc.MyRequests(ngo)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	incoming, err := svc.ForMyFood(owner)
	require.NoError(t, err)
	assert.Len(t, incoming, 2)
}
