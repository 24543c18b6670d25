package seeders

import (
	"time"

	"github.com/shashiranjanraj/foodshare/app/models"
	"github.com/shashiranjanraj/foodshare/pkg/auth"
	"gorm.io/gorm"
)

func init() {
	Register("users", SeedUsers)
	Register("listings", SeedListings)
}

// SeedUsers inserts one account per role. Idempotent: existing emails are
// left untouched.
func SeedUsers(db *gorm.DB) error {
	hash, err := auth.HashPassword("password")
	if err != nil {
		return err
	}

	users := []models.User{
		{Email: "admin@foodshare.app", FullName: "Site Admin", Role: models.RoleAdmin, IsEmailVerified: true},
		{Email: "provider@foodshare.app", FullName: "Green Bistro", Role: models.RoleFoodProvider, Organization: "Green Bistro", IsEmailVerified: true},
		{Email: "ngo@foodshare.app", FullName: "City Food Bank", Role: models.RoleNGO, Organization: "City Food Bank", IsEmailVerified: true},
		{Email: "neighbor@foodshare.app", FullName: "Pat Rivera", Role: models.RoleIndividual, IsEmailVerified: true},
	}
	for i := range users {
		users[i].Password = hash
		var count int64
		if err := db.Model(&models.User{}).Where("email = ?", users[i].Email).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		if err := db.Create(&users[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

// SeedListings inserts a few available listings owned by the demo provider.
func SeedListings(db *gorm.DB) error {
	var provider models.User
	if err := db.Where("email = ?", "provider@foodshare.app").First(&provider).Error; err != nil {
		return err
	}

	var count int64
	if err := db.Model(&models.FoodListing{}).Where("created_by_id = ?", provider.ID).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	now := time.Now()
	listings := []models.FoodListing{
		{
			Title:       "Surplus sandwich trays",
			Description: "Twelve trays of assorted sandwiches from a cancelled event.",
			Quantity:    12,
			Location:    "42 Market St",
			ExpiryTime:  now.Add(18 * time.Hour),
			Status:      models.ListingAvailable,
			CreatedByID: provider.ID,
		},
		{
			Title:       "Day-old bread and pastries",
			Description: "Mixed loaves and croissants, baked this morning.",
			Quantity:    30,
			Location:    "42 Market St",
			ExpiryTime:  now.Add(36 * time.Hour),
			Status:      models.ListingAvailable,
			CreatedByID: provider.ID,
		},
		{
			Title:       "Vegetable soup, 20 portions",
			Description: "Frozen portions, keeps for a week refrigerated.",
			Quantity:    20,
			Location:    "42 Market St",
			ExpiryTime:  now.Add(6 * 24 * time.Hour),
			Status:      models.ListingAvailable,
			CreatedByID: provider.ID,
		},
	}
	for i := range listings {
		if err := db.Create(&listings[i]).Error; err != nil {
			return err
		}
	}
	return nil
}
