package lifecycle

import "github.com/shashiranjanraj/foodshare/app/models"

// Event names published on pkg/event once the owning transaction has
// committed. Listeners fan these out to mail, database and websocket
// notification channels.
const (
	EventUserRegistered       = "user.registered"
	EventListingCreated       = "listing.created"
	EventListingStatusUpdated = "listing.status_updated"
	EventRequestCreated       = "request.created"
	EventRequestStatusUpdated = "request.status_updated"
)

// UserRegistered is fired after a new account is persisted.
type UserRegistered struct {
	User models.User
}

// ListingCreated is fired after a new listing is persisted.
type ListingCreated struct {
	Listing models.FoodListing
}

// ListingStatusUpdated is fired when a listing's status changes, whether by
// a direct edit or as a request side effect. Old != New always holds.
type ListingStatusUpdated struct {
	Listing models.FoodListing
	Old     models.ListingStatus
	New     models.ListingStatus
}

// RequestCreated is fired after a request is persisted. Request carries its
// FoodItem (with CreatedBy) and RequestedBy associations preloaded.
type RequestCreated struct {
	Request models.FoodRequest
}

// RequestStatusUpdated is fired when a request's status changes.
// Old != New always holds.
type RequestStatusUpdated struct {
	Request models.FoodRequest
	Old     models.RequestStatus
	New     models.RequestStatus
}
