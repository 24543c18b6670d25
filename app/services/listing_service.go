package services

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/shashiranjanraj/foodshare/app/apperrors"
	"github.com/shashiranjanraj/foodshare/app/lifecycle"
	"github.com/shashiranjanraj/foodshare/app/models"
	"github.com/shashiranjanraj/foodshare/app/policies"
	"github.com/shashiranjanraj/foodshare/app/repositories"
	"github.com/shashiranjanraj/foodshare/pkg/cache"
	"github.com/shashiranjanraj/foodshare/pkg/event"
	"github.com/shashiranjanraj/foodshare/pkg/logger"
	"github.com/shashiranjanraj/foodshare/pkg/orm"
	"github.com/shashiranjanraj/foodshare/pkg/storage"
)

// CreateListingInput is the payload for POST /api/food.
type CreateListingInput struct {
	Title       string    `json:"title" validate:"required,min=2,max=200"`
	Description string    `json:"description" validate:"nullable,max=2000"`
	Quantity    int       `json:"quantity" validate:"required,gte=1"`
	Location    string    `json:"location" validate:"required,max=255"`
	ExpiryTime  time.Time `json:"expiry_time"`
}

// UpdateListingInput is the payload for PUT/PATCH /api/food/{id}.
// Pointer fields distinguish "absent" from "set to zero".
type UpdateListingInput struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Quantity    *int       `json:"quantity"`
	Location    *string    `json:"location"`
	ExpiryTime  *time.Time `json:"expiry_time"`
	Status      *string    `json:"status"`
}

const availableCacheKey = "food:available"
const availableCacheTTL = 30 * time.Second

type ListingService struct {
	listings *repositories.ListingRepository
}

func NewListingService() *ListingService {
	return &ListingService{listings: repositories.NewListingRepository()}
}

// List returns the listings visible to the actor, filtered and paginated.
func (s *ListingService) List(actor *models.User, f repositories.ListingFilter) ([]models.FoodListing, orm.Pagination, error) {
	return s.listings.VisibleTo(actor, f)
}

// Get returns one listing through the actor's visibility scope.
func (s *ListingService) Get(actor *models.User, id uint) (models.FoodListing, error) {
	return s.listings.FindVisible(actor, id)
}

// Create validates and persists a new listing for the actor, then fires
// listing.created.
func (s *ListingService) Create(actor *models.User, input CreateListingInput) (models.FoodListing, error) {
	if err := policies.CanCreateListing(actor); err != nil {
		return models.FoodListing{}, err
	}
	if err := validExpiry(input.ExpiryTime); err != nil {
		return models.FoodListing{}, err
	}

	listing := models.FoodListing{
		Title:       input.Title,
		Description: input.Description,
		Quantity:    input.Quantity,
		Location:    input.Location,
		ExpiryTime:  input.ExpiryTime,
		Status:      models.ListingAvailable,
		CreatedByID: actor.ID,
	}
	if err := s.listings.Create(&listing); err != nil {
		return models.FoodListing{}, err
	}
	listing.CreatedBy = actor

	invalidateAvailableListings()
	event.Fire(lifecycle.EventListingCreated, lifecycle.ListingCreated{Listing: listing})
	return listing, nil
}

// Update applies the given fields to the listing. Owner or Admin only.
// A status change fires listing.status_updated with old and new status.
func (s *ListingService) Update(actor *models.User, id uint, input UpdateListingInput) (models.FoodListing, error) {
	listing, err := s.listings.FindByID(id)
	if err != nil {
		return models.FoodListing{}, err
	}
	if err := policies.CanManageListing(actor, &listing); err != nil {
		return models.FoodListing{}, err
	}

	oldStatus := listing.Status

	if input.Title != nil {
		listing.Title = *input.Title
	}
	if input.Description != nil {
		listing.Description = *input.Description
	}
	if input.Quantity != nil {
		if *input.Quantity < 1 {
			return models.FoodListing{}, apperrors.Validation("quantity", "The quantity must be at least 1.")
		}
		listing.Quantity = *input.Quantity
	}
	if input.Location != nil {
		listing.Location = *input.Location
	}
	if input.ExpiryTime != nil {
		if err := validExpiry(*input.ExpiryTime); err != nil {
			return models.FoodListing{}, err
		}
		listing.ExpiryTime = *input.ExpiryTime
	}
	if input.Status != nil {
		status := models.ListingStatus(*input.Status)
		if !status.Valid() {
			return models.FoodListing{}, apperrors.Validation("status", fmt.Sprintf("Invalid status %q.", *input.Status))
		}
		listing.Status = status
	}

	if err := s.listings.Save(&listing); err != nil {
		return models.FoodListing{}, err
	}

	invalidateAvailableListings()
	if listing.Status != oldStatus {
		event.Fire(lifecycle.EventListingStatusUpdated, lifecycle.ListingStatusUpdated{
			Listing: listing,
			Old:     oldStatus,
			New:     listing.Status,
		})
	}
	return listing, nil
}

// Delete removes the listing. Owner or Admin only.
func (s *ListingService) Delete(actor *models.User, id uint) error {
	listing, err := s.listings.FindByID(id)
	if err != nil {
		return err
	}
	if err := policies.CanManageListing(actor, &listing); err != nil {
		return err
	}
	if err := s.listings.Delete(&listing); err != nil {
		return err
	}
	invalidateAvailableListings()
	return nil
}

// UploadImage stores the listing's image on the configured disk and records
// its path. Owner or Admin only.
func (s *ListingService) UploadImage(actor *models.User, id uint, filename string, body io.Reader) (models.FoodListing, error) {
	listing, err := s.listings.FindByID(id)
	if err != nil {
		return models.FoodListing{}, err
	}
	if err := policies.CanManageListing(actor, &listing); err != nil {
		return models.FoodListing{}, err
	}

	ext := filepath.Ext(filename)
	path := fmt.Sprintf("listings/%d/%d%s", listing.ID, time.Now().UnixNano(), ext)
	if err := storage.PutStream(path, body); err != nil {
		return models.FoodListing{}, fmt.Errorf("store listing image: %w", err)
	}

	listing.ImagePath = path
	if err := s.listings.Save(&listing); err != nil {
		return models.FoodListing{}, err
	}
	return listing, nil
}

// Available returns Available, unexpired listings ordered by soonest expiry,
// served from cache when warm. Cached entries whose expiry passed within the
// TTL are filtered out before serving.
func (s *ListingService) Available() ([]models.FoodListing, error) {
	var cached []models.FoodListing
	if cache.Get(availableCacheKey, &cached) {
		return unexpiredListings(cached), nil
	}

	listings, err := s.listings.Available()
	if err != nil {
		return nil, err
	}
	if err := cache.Set(availableCacheKey, listings, availableCacheTTL); err != nil {
		logger.Warn("cache available listings", "error", err)
	}
	return listings, nil
}

// unexpiredListings drops entries whose expiry time has passed.
func unexpiredListings(listings []models.FoodListing) []models.FoodListing {
	out := listings[:0]
	for _, l := range listings {
		if !l.IsExpired() {
			out = append(out, l)
		}
	}
	return out
}

// invalidateAvailableListings drops the available-food cache. Called by every
// mutation that can change which listings are Available — listing CRUD here,
// and the request transitions that move a listing's status.
func invalidateAvailableListings() {
	if err := cache.Forget(availableCacheKey); err != nil {
		logger.Warn("invalidate available cache", "error", err)
	}
}

// validExpiry enforces the strictly-future rule for expiry times.
func validExpiry(t time.Time) error {
	if t.IsZero() {
		return apperrors.Validation("expiry_time", "The expiry_time field is required.")
	}
	if !t.After(time.Now()) {
		return apperrors.Validation("expiry_time", "The expiry_time must be in the future.")
	}
	return nil
}
