package services

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/foodshare/app/apperrors"
	"github.com/shashiranjanraj/foodshare/app/lifecycle"
	"github.com/shashiranjanraj/foodshare/app/models"
	"github.com/shashiranjanraj/foodshare/app/policies"
	"github.com/shashiranjanraj/foodshare/app/repositories"
	"github.com/shashiranjanraj/foodshare/pkg/event"
	"github.com/shashiranjanraj/foodshare/pkg/orm"
)

// CreateRequestInput is the payload for POST /api/requests.
type CreateRequestInput struct {
	FoodItemID uint   `json:"food_item" validate:"required"`
	Message    string `json:"message" validate:"nullable,max=1000"`
}

// UpdateRequestInput is the payload for PUT/PATCH /api/requests/{id}.
type UpdateRequestInput struct {
	Status  *string `json:"status"`
	Message *string `json:"message"`
}

// BulkUpdateInput is the payload for POST /api/requests/bulk-update.
type BulkUpdateInput struct {
	RequestIDs []uint `json:"request_ids"`
	Status     string `json:"status"`
}

type RequestService struct {
	requests *repositories.RequestRepository
	listings *repositories.ListingRepository
}

func NewRequestService() *RequestService {
	return &RequestService{
		requests: repositories.NewRequestRepository(),
		listings: repositories.NewListingRepository(),
	}
}

// List returns the requests visible to the actor, filtered and paginated.
func (s *RequestService) List(actor *models.User, f repositories.RequestFilter) ([]models.FoodRequest, orm.Pagination, error) {
	return s.requests.VisibleTo(actor, f)
}

// Get returns one request. Requests the actor may not view come back as not
// found, never as forbidden.
func (s *RequestService) Get(actor *models.User, id uint) (models.FoodRequest, error) {
	req, err := s.requests.FindByID(id)
	if err != nil {
		return models.FoodRequest{}, err
	}
	if err := policies.CanViewRequest(actor, &req); err != nil {
		return models.FoodRequest{}, apperrors.ErrNotFound
	}
	return req, nil
}

// Create persists a Pending request against an Available listing and moves
// the listing to Requested, atomically. The listing row is locked so a
// concurrent request against the same listing serializes behind this one.
func (s *RequestService) Create(actor *models.User, input CreateRequestInput) (models.FoodRequest, error) {
	if err := policies.CanCreateRequest(actor); err != nil {
		return models.FoodRequest{}, err
	}

	var created models.FoodRequest
	err := orm.Transaction(func(tx *gorm.DB) error {
		listing, err := s.listings.LockForUpdate(tx, input.FoodItemID)
		if err != nil {
			return err
		}

		if listing.Status != models.ListingAvailable {
			return apperrors.Validation("food_item", "This food item is no longer available.")
		}

		exists, err := s.requests.ExistsForPair(tx, listing.ID, actor.ID)
		if err != nil {
			return err
		}
		if exists {
			return apperrors.Validation("food_item", "You have already requested this food item.")
		}

		created = models.FoodRequest{
			FoodItemID:    listing.ID,
			RequestedByID: actor.ID,
			Status:        models.RequestPending,
			Message:       input.Message,
		}
		if err := s.requests.CreateTx(tx, &created); err != nil {
			return err
		}

		if next, changed := lifecycle.ListingAfterRequestCreated(listing.Status); changed {
			listing.Status = next
			if err := s.listings.SaveTx(tx, &listing); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return models.FoodRequest{}, err
	}
	// The listing just left Available, so the feed cache is stale.
	invalidateAvailableListings()

	// Reload with associations for the event payload and the response body.
	full, err := s.requests.FindByID(created.ID)
	if err != nil {
		return created, nil
	}
	event.Fire(lifecycle.EventRequestCreated, lifecycle.RequestCreated{Request: full})
	return full, nil
}

// Update applies a status (and optionally message) change to a request and
// cascades the listing side effect from the transition table, atomically.
// Listing owner or Admin only; the requester never drives status directly.
func (s *RequestService) Update(actor *models.User, id uint, input UpdateRequestInput) (models.FoodRequest, error) {
	req, err := s.requests.FindByID(id)
	if err != nil {
		return models.FoodRequest{}, err
	}
	if err := policies.CanViewRequest(actor, &req); err != nil {
		return models.FoodRequest{}, apperrors.ErrNotFound
	}
	if err := policies.CanUpdateRequest(actor, &req); err != nil {
		return models.FoodRequest{}, err
	}

	oldStatus := req.Status
	newStatus := oldStatus
	if input.Status != nil {
		newStatus = models.RequestStatus(*input.Status)
		if !newStatus.Valid() {
			return models.FoodRequest{}, apperrors.Validation("status", fmt.Sprintf("Invalid status %q.", *input.Status))
		}
	}

	err = orm.Transaction(func(tx *gorm.DB) error {
		// Lock the parent listing first so two concurrent approvals of
		// sibling requests serialize on the same row.
		listing, err := s.listings.LockForUpdate(tx, req.FoodItemID)
		if err != nil {
			return err
		}

		if input.Message != nil {
			req.Message = *input.Message
		}
		req.Status = newStatus
		if err := s.requests.SaveTx(tx, &req); err != nil {
			return err
		}

		if newStatus == oldStatus {
			return nil
		}

		otherPending := false
		if newStatus == models.RequestRejected {
			otherPending, err = s.requests.OtherPendingExists(tx, listing.ID, req.ID)
			if err != nil {
				return err
			}
		}

		if next, changed := lifecycle.ListingAfterRequestUpdate(newStatus, listing.Status, otherPending); changed {
			listing.Status = next
			if err := s.listings.SaveTx(tx, &listing); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return models.FoodRequest{}, err
	}

	full, reloadErr := s.requests.FindByID(req.ID)
	if reloadErr != nil {
		full = req
	}
	if newStatus != oldStatus {
		// A rejection may have reopened the listing; drop the feed cache.
		invalidateAvailableListings()
		event.Fire(lifecycle.EventRequestStatusUpdated, lifecycle.RequestStatusUpdated{
			Request: full,
			Old:     oldStatus,
			New:     newStatus,
		})
	}
	return full, nil
}

// Delete removes a request. Listing owner or Admin only; the listing is left
// untouched.
func (s *RequestService) Delete(actor *models.User, id uint) error {
	req, err := s.requests.FindByID(id)
	if err != nil {
		return err
	}
	if err := policies.CanViewRequest(actor, &req); err != nil {
		return apperrors.ErrNotFound
	}
	if err := policies.CanUpdateRequest(actor, &req); err != nil {
		return err
	}
	return s.requests.Delete(&req)
}

// MyRequests returns the actor's own requests.
func (s *RequestService) MyRequests(actor *models.User) ([]models.FoodRequest, error) {
	return s.requests.ByRequester(actor.ID)
}

// ForMyFood returns the requests made against the actor's listings.
func (s *RequestService) ForMyFood(actor *models.User) ([]models.FoodRequest, error) {
	return s.requests.ForListingOwner(actor.ID)
}

// BulkUpdate sets the status on every matched request in one atomic UPDATE
// and reports how many rows matched. Admin only. Deliberately skips the
// per-request listing cascade: it is an administrative override.
func (s *RequestService) BulkUpdate(actor *models.User, input BulkUpdateInput) (int64, error) {
	if err := policies.CanBulkUpdate(actor); err != nil {
		return 0, err
	}
	if len(input.RequestIDs) == 0 {
		return 0, apperrors.Validation("request_ids", "The request_ids field is required.")
	}
	status := models.RequestStatus(input.Status)
	if !status.Valid() {
		return 0, apperrors.Validation("status", fmt.Sprintf("Invalid status %q.", input.Status))
	}

	n, err := s.requests.BulkUpdateStatus(input.RequestIDs, status)
	if err == nil && n > 0 {
		invalidateAvailableListings()
	}
	return n, err
}
