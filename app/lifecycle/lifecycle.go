// Package lifecycle is the status transition engine coupling listings and
// requests. It is pure: callers load the current state (under a row lock),
// ask the engine what the listing should become, and persist the answer.
//
// Listing lifecycle:  Available → Requested → Collected → Distributed,
// with Requested reverting to Available when the last pending request is
// rejected.
// Request lifecycle:  Pending → Approved → Completed, or Pending → Rejected.
package lifecycle

import "github.com/shashiranjanraj/foodshare/app/models"

// listingEffect is one row of the cross-entity transition table: when a
// request enters a given status, the listing moves to Next — but only if it
// currently sits in Precondition.
type listingEffect struct {
	Precondition models.ListingStatus
	Next         models.ListingStatus
}

var requestEffects = map[models.RequestStatus]listingEffect{
	models.RequestApproved:  {Precondition: models.ListingRequested, Next: models.ListingCollected},
	models.RequestCompleted: {Precondition: models.ListingCollected, Next: models.ListingDistributed},
}

// ListingAfterRequestCreated returns the listing status after a new request
// is accepted against it. An Available listing becomes Requested; a listing
// already moved by a concurrent request is left as-is.
func ListingAfterRequestCreated(current models.ListingStatus) (models.ListingStatus, bool) {
	if current == models.ListingAvailable {
		return models.ListingRequested, true
	}
	return current, false
}

// ListingAfterRequestUpdate returns the listing status that should follow a
// request status change, and whether the listing actually moves.
//
// otherPending reports whether any other request on the same listing is still
// Pending; it only matters for rejections. An unmet precondition never fails
// the request update — the listing simply stays put.
func ListingAfterRequestUpdate(newStatus models.RequestStatus, current models.ListingStatus, otherPending bool) (models.ListingStatus, bool) {
	if newStatus == models.RequestRejected {
		if otherPending || current == models.ListingAvailable {
			return current, false
		}
		return models.ListingAvailable, true
	}

	effect, ok := requestEffects[newStatus]
	if !ok || current != effect.Precondition {
		return current, false
	}
	return effect.Next, true
}
