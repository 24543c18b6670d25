package policies_test

import (
	"testing"

	"github.com/shashiranjanraj/foodshare/app/models"
	"github.com/shashiranjanraj/foodshare/app/policies"
)

func user(id uint, role models.Role) *models.User {
	u := &models.User{Role: role}
	u.ID = id
	return u
}

func listing(id, ownerID uint) *models.FoodListing {
	l := &models.FoodListing{CreatedByID: ownerID}
	l.ID = id
	return l
}

func request(id, listingID, ownerID, requesterID uint) *models.FoodRequest {
	r := &models.FoodRequest{
		FoodItemID:    listingID,
		FoodItem:      listing(listingID, ownerID),
		RequestedByID: requesterID,
	}
	r.ID = id
	return r
}

func TestCanCreateListing(t *testing.T) {
	cases := []struct {
		role  models.Role
		allow bool
	}{
		{models.RoleFoodProvider, true},
		{models.RoleAdmin, true},
		{models.RoleNGO, false},
		{models.RoleIndividual, false},
	}
	for _, c := range cases {
		err := policies.CanCreateListing(user(1, c.role))
		if c.allow && err != nil {
			t.Errorf("%s: expected allow, got %v", c.role, err)
		}
		if !c.allow && err == nil {
			t.Errorf("%s: expected deny", c.role)
		}
	}
}

func TestCanManageListing(t *testing.T) {
	l := listing(10, 1)

	if err := policies.CanManageListing(user(1, models.RoleFoodProvider), l); err != nil {
		t.Errorf("owner: expected allow, got %v", err)
	}
	if err := policies.CanManageListing(user(99, models.RoleAdmin), l); err != nil {
		t.Errorf("admin: expected allow, got %v", err)
	}
	if err := policies.CanManageListing(user(2, models.RoleFoodProvider), l); err == nil {
		t.Error("other provider: expected deny")
	}
}

func TestCanCreateRequest(t *testing.T) {
	cases := []struct {
		role  models.Role
		allow bool
	}{
		{models.RoleNGO, true},
		{models.RoleAdmin, true},
		{models.RoleFoodProvider, false},
		{models.RoleIndividual, false},
	}
	for _, c := range cases {
		err := policies.CanCreateRequest(user(1, c.role))
		if c.allow && err != nil {
			t.Errorf("%s: expected allow, got %v", c.role, err)
		}
		if !c.allow && err == nil {
			t.Errorf("%s: expected deny", c.role)
		}
	}
}

func TestCanViewRequest(t *testing.T) {
	// listing 10 owned by user 1, requested by user 2
	req := request(100, 10, 1, 2)

	if err := policies.CanViewRequest(user(2, models.RoleNGO), req); err != nil {
		t.Errorf("requester: expected allow, got %v", err)
	}
	if err := policies.CanViewRequest(user(1, models.RoleFoodProvider), req); err != nil {
		t.Errorf("listing owner: expected allow, got %v", err)
	}
	if err := policies.CanViewRequest(user(99, models.RoleAdmin), req); err != nil {
		t.Errorf("admin: expected allow, got %v", err)
	}
	if err := policies.CanViewRequest(user(3, models.RoleNGO), req); err == nil {
		t.Error("unrelated ngo: expected deny")
	}
}

func TestCanUpdateRequest(t *testing.T) {
	req := request(100, 10, 1, 2)

	if err := policies.CanUpdateRequest(user(1, models.RoleFoodProvider), req); err != nil {
		t.Errorf("listing owner: expected allow, got %v", err)
	}
	if err := policies.CanUpdateRequest(user(99, models.RoleAdmin), req); err != nil {
		t.Errorf("admin: expected allow, got %v", err)
	}
	// The requester may view but never set status.
	if err := policies.CanUpdateRequest(user(2, models.RoleNGO), req); err == nil {
		t.Error("requester: expected deny")
	}
}

func TestCanBulkUpdate(t *testing.T) {
	if err := policies.CanBulkUpdate(user(1, models.RoleAdmin)); err != nil {
		t.Errorf("admin: expected allow, got %v", err)
	}
	for _, role := range []models.Role{models.RoleFoodProvider, models.RoleNGO, models.RoleIndividual} {
		if err := policies.CanBulkUpdate(user(1, role)); err == nil {
			t.Errorf("%s: expected deny", role)
		}
	}
}
