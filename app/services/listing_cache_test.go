package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/shashiranjanraj/foodshare/app/models"
)

// A cached feed can outlive a listing's expiry by up to the cache TTL, so the
// filter has to drop those entries on the way out.
func TestUnexpiredListingsDropsStaleCacheEntries(t *testing.T) {
	fresh := models.FoodListing{Title: "Bread trays", ExpiryTime: time.Now().Add(time.Hour)}
	stale := models.FoodListing{Title: "Soup batch", ExpiryTime: time.Now().Add(-time.Minute)}

	got := unexpiredListings([]models.FoodListing{fresh, stale})
	assert.Len(t, got, 1)
	assert.Equal(t, "Bread trays", got[0].Title)

	assert.Empty(t, unexpiredListings(nil))
}
