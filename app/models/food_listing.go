package models

import (
	"time"

	"gorm.io/gorm"
)

// ListingStatus is the lifecycle state of a food listing.
type ListingStatus string

const (
	ListingAvailable   ListingStatus = "Available"
	ListingRequested   ListingStatus = "Requested"
	ListingCollected   ListingStatus = "Collected"
	ListingDistributed ListingStatus = "Distributed"
)

// Valid reports whether s is one of the known listing statuses.
func (s ListingStatus) Valid() bool {
	switch s {
	case ListingAvailable, ListingRequested, ListingCollected, ListingDistributed:
		return true
	}
	return false
}

// FoodListing is an offer of surplus food posted by a Food Provider.
// CreatedByID is immutable after creation; status transitions are driven by
// the request lifecycle or by direct owner/admin edits.
type FoodListing struct {
	gorm.Model
	Title       string        `gorm:"size:255;not null;index" json:"title"`
	Description string        `gorm:"type:text;not null" json:"description"`
	Quantity    int           `gorm:"not null;default:1" json:"quantity"`
	Location    string        `gorm:"size:255;not null" json:"location"`
	ExpiryTime  time.Time     `gorm:"not null;index" json:"expiry_time"`
	Status      ListingStatus `gorm:"size:20;not null;default:Available;index" json:"status"`
	ImagePath   string        `gorm:"size:512" json:"image_path,omitempty"`
	CreatedByID uint          `gorm:"not null;index" json:"created_by"`
	CreatedBy   *User         `gorm:"foreignKey:CreatedByID" json:"-"`
}

func (FoodListing) TableName() string { return "food_listings" }

// IsExpired reports whether the expiry time has passed.
func (l *FoodListing) IsExpired() bool {
	return time.Now().After(l.ExpiryTime)
}

// IsExpiringSoon reports whether the listing expires within the next 24 hours
// but has not expired yet.
func (l *FoodListing) IsExpiringSoon() bool {
	d := time.Until(l.ExpiryTime)
	return d > 0 && d <= 24*time.Hour
}
