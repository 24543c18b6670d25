// Package policies centralises every permission decision as a pure function
// of (actor, resource). Each check returns nil on allow, or an
// AuthorizationError whose message names the actor's role and the permitted
// roles or owners. Visibility filtering for list endpoints lives in the
// repository scopes, not here.
package policies

import (
	"github.com/shashiranjanraj/foodshare/app/apperrors"
	"github.com/shashiranjanraj/foodshare/app/models"
)

// CanCreateListing allows only Food Providers and Admins to post listings.
func CanCreateListing(actor *models.User) error {
	if actor.Role == models.RoleFoodProvider || actor.Role == models.RoleAdmin {
		return nil
	}
	return apperrors.Forbidden(
		"Users with role '%s' cannot create food listings. Only Food Providers and Admins can create listings.",
		actor.Role)
}

// CanManageListing gates update and delete on a listing: the owner or an
// Admin. Read visibility is handled by repository scopes.
func CanManageListing(actor *models.User, listing *models.FoodListing) error {
	if actor.Role == models.RoleAdmin || actor.ID == listing.CreatedByID {
		return nil
	}
	return apperrors.Forbidden(
		"Users with role '%s' cannot modify this listing. Only its owner or an Admin can.",
		actor.Role)
}

// CanCreateRequest allows only NGOs/Volunteers and Admins to request food.
func CanCreateRequest(actor *models.User) error {
	if actor.Role == models.RoleNGO || actor.Role == models.RoleAdmin {
		return nil
	}
	return apperrors.Forbidden(
		"Users with role '%s' cannot create food requests. Only NGOs/Volunteers and Admins can.",
		actor.Role)
}

// CanViewRequest allows the requester (read-only), the listing owner, or an
// Admin to see a request.
func CanViewRequest(actor *models.User, req *models.FoodRequest) error {
	if actor.Role == models.RoleAdmin ||
		actor.ID == req.RequestedByID ||
		(req.FoodItem != nil && actor.ID == req.FoodItem.CreatedByID) {
		return nil
	}
	return apperrors.Forbidden(
		"Users with role '%s' cannot view this request. Only the requester, the listing owner, or an Admin can.",
		actor.Role)
}

// CanUpdateRequest gates status changes and deletes on a request: the listing
// owner or an Admin. The requester themself may never set status directly.
func CanUpdateRequest(actor *models.User, req *models.FoodRequest) error {
	if actor.Role == models.RoleAdmin {
		return nil
	}
	if req.FoodItem != nil && actor.ID == req.FoodItem.CreatedByID {
		return nil
	}
	return apperrors.Forbidden(
		"Users with role '%s' cannot update this request. Only the listing owner or an Admin can.",
		actor.Role)
}

// CanBulkUpdate allows only Admins to bulk-update request statuses.
func CanBulkUpdate(actor *models.User) error {
	if actor.Role == models.RoleAdmin {
		return nil
	}
	return apperrors.Forbidden(
		"Users with role '%s' cannot perform bulk updates. Only Admins can.", actor.Role)
}
