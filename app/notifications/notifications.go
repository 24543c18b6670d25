// Package notifications defines every mail/database notification the
// backend sends. Listeners in app/listeners decide who receives what; the
// types here only describe content and channels.
package notifications

import (
	"fmt"

	"github.com/shashiranjanraj/foodshare/app/models"
	"github.com/shashiranjanraj/foodshare/pkg/notification"
)

// Welcome greets a new account and carries the email verification link.
type Welcome struct {
	User      models.User
	VerifyURL string
}

func (n *Welcome) Via() []string { return []string{"mail", "database"} }

func (n *Welcome) ToMail() notification.MailData {
	return notification.MailData{
		Subject: "Welcome to FoodShare!",
		Body: fmt.Sprintf(
			"<h1>Hi %s</h1><p>Your %s account is ready. %s</p>"+
				"<p><a href=%q>Verify your email address</a></p>",
			n.User.FullName, n.User.Role, roleBlurb(n.User.Role), n.VerifyURL),
	}
}

func (n *Welcome) ToDatabase() notification.DatabaseData {
	return notification.DatabaseData{
		Type:    "welcome",
		Message: fmt.Sprintf("Welcome to FoodShare, %s!", n.User.FullName),
	}
}

// roleBlurb returns the per-role onboarding line in the welcome email.
func roleBlurb(role models.Role) string {
	switch role {
	case models.RoleFoodProvider:
		return "Start sharing your surplus food by creating a listing."
	case models.RoleNGO:
		return "Browse available food and request what your community needs."
	case models.RoleIndividual:
		return "Browse the food available near you."
	default:
		return "You have full administrative access."
	}
}

// ListingCreated confirms to the owner that their listing is live.
type ListingCreated struct {
	Listing models.FoodListing
}

func (n *ListingCreated) Via() []string { return []string{"database"} }

func (n *ListingCreated) ToDatabase() notification.DatabaseData {
	return notification.DatabaseData{
		Type:    "listing.created",
		Message: fmt.Sprintf("Your listing %q is now live.", n.Listing.Title),
		Data:    map[string]interface{}{"food_listing_id": n.Listing.ID},
	}
}

// ListingStatusUpdated tells the owner their listing moved to a new status.
type ListingStatusUpdated struct {
	Listing models.FoodListing
	Old     models.ListingStatus
	New     models.ListingStatus
}

func (n *ListingStatusUpdated) Via() []string { return []string{"mail", "database"} }

func (n *ListingStatusUpdated) ToMail() notification.MailData {
	return notification.MailData{
		Subject: fmt.Sprintf("Your listing %q is now %s", n.Listing.Title, n.New),
		Body: fmt.Sprintf(
			"<p>Your food listing <strong>%s</strong> moved from %s to <strong>%s</strong>.</p>",
			n.Listing.Title, n.Old, n.New),
	}
}

func (n *ListingStatusUpdated) ToDatabase() notification.DatabaseData {
	return notification.DatabaseData{
		Type:    "listing.status_updated",
		Message: fmt.Sprintf("Your listing %q moved from %s to %s.", n.Listing.Title, n.Old, n.New),
		Data: map[string]interface{}{
			"food_listing_id": n.Listing.ID,
			"old_status":      n.Old,
			"new_status":      n.New,
		},
	}
}

// RequestReceived tells a listing owner that someone requested their food.
type RequestReceived struct {
	Request models.FoodRequest
}

func (n *RequestReceived) Via() []string { return []string{"mail", "database"} }

func (n *RequestReceived) ToMail() notification.MailData {
	return notification.MailData{
		Subject: fmt.Sprintf("New request for %q", itemTitle(n.Request)),
		Body: fmt.Sprintf(
			"<p><strong>%s</strong> requested your food listing <strong>%s</strong>.</p><p>%s</p>",
			requesterName(n.Request), itemTitle(n.Request), n.Request.Message),
	}
}

func (n *RequestReceived) ToDatabase() notification.DatabaseData {
	return notification.DatabaseData{
		Type:    "request.received",
		Message: fmt.Sprintf("%s requested %q.", requesterName(n.Request), itemTitle(n.Request)),
		Data: map[string]interface{}{
			"food_request_id": n.Request.ID,
			"food_listing_id": n.Request.FoodItemID,
		},
	}
}

// RequestSubmitted confirms to the requester that their request went in.
type RequestSubmitted struct {
	Request models.FoodRequest
}

func (n *RequestSubmitted) Via() []string { return []string{"database"} }

func (n *RequestSubmitted) ToDatabase() notification.DatabaseData {
	return notification.DatabaseData{
		Type:    "request.submitted",
		Message: fmt.Sprintf("Your request for %q was submitted.", itemTitle(n.Request)),
		Data:    map[string]interface{}{"food_request_id": n.Request.ID},
	}
}

// RequestStatusUpdated tells the requester their request changed status.
type RequestStatusUpdated struct {
	Request models.FoodRequest
	Old     models.RequestStatus
	New     models.RequestStatus
}

func (n *RequestStatusUpdated) Via() []string { return []string{"mail", "database"} }

func (n *RequestStatusUpdated) ToMail() notification.MailData {
	return notification.MailData{
		Subject: fmt.Sprintf("Your request for %q was %s", itemTitle(n.Request), verb(n.New)),
		Body: fmt.Sprintf(
			"<p>Your request for <strong>%s</strong> was %s.</p>",
			itemTitle(n.Request), verb(n.New)),
	}
}

func (n *RequestStatusUpdated) ToDatabase() notification.DatabaseData {
	return notification.DatabaseData{
		Type:    "request.status_updated",
		Message: fmt.Sprintf("Your request for %q was %s.", itemTitle(n.Request), verb(n.New)),
		Data: map[string]interface{}{
			"food_request_id": n.Request.ID,
			"old_status":      n.Old,
			"new_status":      n.New,
		},
	}
}

// itemTitle and requesterName tolerate missing preloads so a notification
// goroutine can never panic on a nil association.
func itemTitle(r models.FoodRequest) string {
	if r.FoodItem != nil {
		return r.FoodItem.Title
	}
	return "a food item"
}

func requesterName(r models.FoodRequest) string {
	if r.RequestedBy != nil {
		return r.RequestedBy.FullName
	}
	return "Someone"
}

func verb(status models.RequestStatus) string {
	switch status {
	case models.RequestApproved:
		return "approved"
	case models.RequestCompleted:
		return "completed"
	case models.RequestRejected:
		return "rejected"
	default:
		return "moved back to pending"
	}
}

// ExpiringSoon reminds a listing owner that their food expires within a day.
type ExpiringSoon struct {
	Listing models.FoodListing
}

func (n *ExpiringSoon) Via() []string { return []string{"mail", "database"} }

func (n *ExpiringSoon) ToMail() notification.MailData {
	return notification.MailData{
		Subject: fmt.Sprintf("%q expires soon", n.Listing.Title),
		Body: fmt.Sprintf(
			"<p>Your listing <strong>%s</strong> expires at %s and has not been collected yet.</p>",
			n.Listing.Title, n.Listing.ExpiryTime.Format("Jan 2 15:04")),
	}
}

func (n *ExpiringSoon) ToDatabase() notification.DatabaseData {
	return notification.DatabaseData{
		Type:    "listing.expiring_soon",
		Message: fmt.Sprintf("Your listing %q expires soon.", n.Listing.Title),
		Data:    map[string]interface{}{"food_listing_id": n.Listing.ID},
	}
}
