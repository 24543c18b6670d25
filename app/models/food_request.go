package models

import "gorm.io/gorm"

// RequestStatus is the lifecycle state of a food request.
// Completed and Rejected are terminal.
type RequestStatus string

const (
	RequestPending   RequestStatus = "Pending"
	RequestApproved  RequestStatus = "Approved"
	RequestCompleted RequestStatus = "Completed"
	RequestRejected  RequestStatus = "Rejected"
)

// Valid reports whether s is one of the known request statuses.
func (s RequestStatus) Valid() bool {
	switch s {
	case RequestPending, RequestApproved, RequestCompleted, RequestRejected:
		return true
	}
	return false
}

// FoodRequest is an NGO/Volunteer's claim against a listing. The composite
// unique index enforces at most one request per (listing, requester) pair,
// regardless of prior rejections.
type FoodRequest struct {
	gorm.Model
	FoodItemID    uint          `gorm:"not null;uniqueIndex:idx_request_once;index" json:"food_item"`
	FoodItem      *FoodListing  `gorm:"foreignKey:FoodItemID" json:"-"`
	RequestedByID uint          `gorm:"not null;uniqueIndex:idx_request_once" json:"requested_by"`
	RequestedBy   *User         `gorm:"foreignKey:RequestedByID" json:"-"`
	Status        RequestStatus `gorm:"size:20;not null;default:Pending;index" json:"status"`
	Message       string        `gorm:"type:text" json:"message,omitempty"`
}

func (FoodRequest) TableName() string { return "food_requests" }
