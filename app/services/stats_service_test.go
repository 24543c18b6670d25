package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/foodshare/app/models"
	"github.com/shashiranjanraj/foodshare/app/services"
)

func TestDashboardStatsByRole(t *testing.T) {
	db := setupDB(t)
	provider := makeUser(t, db, "p@example.com", models.RoleFoodProvider)
	ngo := makeUser(t, db, "n@example.com", models.RoleNGO)
	admin := makeUser(t, db, "a@example.com", models.RoleAdmin)

	makeListing(t, db, provider, models.ListingAvailable)
	makeListing(t, db, provider, models.ListingRequested)
	makeListing(t, db, provider, models.ListingDistributed)

	expiring := makeListing(t, db, provider, models.ListingAvailable)
	require.NoError(t, db.Model(expiring).Update("expiry_time", time.Now().Add(2*time.Hour)).Error)

	svc := services.NewStatsService()

	got, err := svc.Dashboard(provider)
	require.NoError(t, err)
	assert.Equal(t, models.RoleFoodProvider, got.Role)
	require.NotNil(t, got.MyActiveListings)
	assert.EqualValues(t, 3, *got.MyActiveListings)
	require.NotNil(t, got.MyDistributedListings)
	assert.EqualValues(t, 1, *got.MyDistributedListings)
	require.NotNil(t, got.MyExpiringSoon)
	assert.EqualValues(t, 1, *got.MyExpiringSoon)
	assert.Nil(t, got.TotalListings)

	got, err = svc.Dashboard(ngo)
	require.NoError(t, err)
	require.NotNil(t, got.AvailableListings)
	assert.EqualValues(t, 2, *got.AvailableListings)
	require.NotNil(t, got.ExpiringSoon)
	assert.EqualValues(t, 1, *got.ExpiringSoon)
	assert.Nil(t, got.MyActiveListings)

	got, err = svc.Dashboard(admin)
	require.NoError(t, err)
	require.NotNil(t, got.TotalListings)
	assert.EqualValues(t, 4, *got.TotalListings)
	require.NotNil(t, got.ActiveListings)
	assert.EqualValues(t, 3, *got.ActiveListings)
	require.NotNil(t, got.DistributedListings)
	assert.EqualValues(t, 1, *got.DistributedListings)
	require.NotNil(t, got.ExpiredListings)
	assert.EqualValues(t, 0, *got.ExpiredListings)
}
