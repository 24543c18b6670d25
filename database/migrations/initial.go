package migrations

import (
	"github.com/shashiranjanraj/foodshare/app/models"
	"github.com/shashiranjanraj/foodshare/pkg/migration"
	"gorm.io/gorm"
)

func init() {
	migration.Register("20260201000000_create_users_table", &CreateUsersTable{})
	migration.Register("20260201000001_create_food_listings_table", &CreateFoodListingsTable{})
	migration.Register("20260201000002_create_food_requests_table", &CreateFoodRequestsTable{})
	migration.Register("20260201000003_create_notifications_table", &CreateNotificationsTable{})
}

// -------- 0001: users --------

type CreateUsersTable struct{}

func (m *CreateUsersTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.User{})
}

func (m *CreateUsersTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("users")
}

// -------- 0002: food_listings --------

type CreateFoodListingsTable struct{}

func (m *CreateFoodListingsTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.FoodListing{})
}

func (m *CreateFoodListingsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("food_listings")
}

// -------- 0003: food_requests --------

type CreateFoodRequestsTable struct{}

func (m *CreateFoodRequestsTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.FoodRequest{})
}

func (m *CreateFoodRequestsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("food_requests")
}

// -------- 0004: notifications --------

type CreateNotificationsTable struct{}

func (m *CreateNotificationsTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Notification{})
}

func (m *CreateNotificationsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("notifications")
}
