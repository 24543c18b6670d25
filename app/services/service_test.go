package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/shashiranjanraj/foodshare/app/models"
	"github.com/shashiranjanraj/foodshare/pkg/database"
)

// setupDB swaps the global connection for a fresh in-memory SQLite database.
// Each test gets its own schema; the previous handle is restored on cleanup.
func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.FoodListing{},
		&models.FoodRequest{},
		&models.Notification{},
	))

	prev := database.DB
	database.DB = db
	t.Cleanup(func() { database.DB = prev })
	return db
}

func makeUser(t *testing.T, db *gorm.DB, email string, role models.Role) *models.User {
	t.Helper()
	u := &models.User{
		Email:    email,
		Password: "$2a$10$not.a.real.hash.but.fine.for.tests",
		FullName: "Test " + string(role),
		Role:     role,
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func makeListing(t *testing.T, db *gorm.DB, owner *models.User, status models.ListingStatus) *models.FoodListing {
	t.Helper()
	l := &models.FoodListing{
		Title:       "Leftover catering",
		Description: "Assorted trays",
		Quantity:    5,
		Location:    "12 Main St",
		ExpiryTime:  time.Now().Add(48 * time.Hour),
		Status:      status,
		CreatedByID: owner.ID,
	}
	require.NoError(t, db.Create(l).Error)
	return l
}
