// Package resources shapes API output. Foreign keys are serialised twice:
// once as the raw id and once as an embedded *_details object, so clients
// never need a second round trip to render a listing or request.
package resources

import (
	"encoding/json"

	"github.com/shashiranjanraj/foodshare/app/models"
	"github.com/shashiranjanraj/foodshare/pkg/collection"
	"github.com/shashiranjanraj/foodshare/pkg/resource"
	"github.com/shashiranjanraj/foodshare/pkg/storage"
)

// ─── Users ────────────────────────────────────────────────────────────────────

func User(u models.User) resource.Map {
	return resource.Map{
		"id":                u.ID,
		"email":             u.Email,
		"full_name":         u.FullName,
		"role":              u.Role,
		"organization":      u.Organization,
		"phone":             u.Phone,
		"address":           u.Address,
		"is_email_verified": u.IsEmailVerified,
		"created_at":        u.CreatedAt,
	}
}

func Users(users []models.User) []resource.Map {
	return collection.Map(users, User)
}

// UserResource adapts User for pkg/resource single responses.
type UserResource struct{ resource.Base }

func (UserResource) ToArray(v interface{}) resource.Map {
	switch u := v.(type) {
	case models.User:
		return User(u)
	case *models.User:
		return User(*u)
	}
	return resource.Map{}
}

// ─── Listings ─────────────────────────────────────────────────────────────────

func Listing(l models.FoodListing) resource.Map {
	m := resource.Map{
		"id":               l.ID,
		"title":            l.Title,
		"description":      l.Description,
		"quantity":         l.Quantity,
		"location":         l.Location,
		"expiry_time":      l.ExpiryTime,
		"status":           l.Status,
		"created_by":       l.CreatedByID,
		"is_expired":       l.IsExpired(),
		"is_expiring_soon": l.IsExpiringSoon(),
		"created_at":       l.CreatedAt,
		"updated_at":       l.UpdatedAt,
	}
	if l.ImagePath != "" {
		m["image"] = storage.URL(l.ImagePath)
	}
	if l.CreatedBy != nil {
		m["created_by_details"] = User(*l.CreatedBy)
	}
	return m
}

func Listings(listings []models.FoodListing) []resource.Map {
	return collection.Map(listings, Listing)
}

// ListingResource adapts FoodListing for pkg/resource single responses.
type ListingResource struct{ resource.Base }

func (ListingResource) ToArray(v interface{}) resource.Map {
	switch l := v.(type) {
	case models.FoodListing:
		return Listing(l)
	case *models.FoodListing:
		return Listing(*l)
	}
	return resource.Map{}
}

// ─── Requests ─────────────────────────────────────────────────────────────────

func Request(r models.FoodRequest) resource.Map {
	m := resource.Map{
		"id":           r.ID,
		"food_item":    r.FoodItemID,
		"requested_by": r.RequestedByID,
		"status":       r.Status,
		"message":      r.Message,
		"created_at":   r.CreatedAt,
		"updated_at":   r.UpdatedAt,
	}
	if r.FoodItem != nil {
		m["food_item_details"] = Listing(*r.FoodItem)
	}
	if r.RequestedBy != nil {
		m["requested_by_details"] = User(*r.RequestedBy)
	}
	return m
}

func Requests(requests []models.FoodRequest) []resource.Map {
	return collection.Map(requests, Request)
}

// RequestResource adapts FoodRequest for pkg/resource single responses.
type RequestResource struct{ resource.Base }

func (RequestResource) ToArray(v interface{}) resource.Map {
	switch r := v.(type) {
	case models.FoodRequest:
		return Request(r)
	case *models.FoodRequest:
		return Request(*r)
	}
	return resource.Map{}
}

// ─── Notifications ────────────────────────────────────────────────────────────

func Notification(n models.Notification) resource.Map {
	var data interface{}
	if n.Data != "" {
		_ = json.Unmarshal([]byte(n.Data), &data)
	}
	return resource.Map{
		"id":         n.ID,
		"type":       n.Type,
		"message":    n.Message,
		"data":       data,
		"read_at":    n.ReadAt,
		"created_at": n.CreatedAt,
	}
}

func Notifications(notifications []models.Notification) []resource.Map {
	return collection.Map(notifications, Notification)
}
