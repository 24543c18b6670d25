package repositories

import (
	"errors"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/foodshare/app/apperrors"
	"github.com/shashiranjanraj/foodshare/app/models"
	"github.com/shashiranjanraj/foodshare/pkg/orm"
)

// UserRepository handles database operations for User.
type UserRepository struct{}

func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

// FindByEmail looks up a user by their email address.
func (r *UserRepository) FindByEmail(email string) (models.User, error) {
	var user models.User
	err := orm.DB().Model(&models.User{}).Where("email = ?", email).First(&user)
	return user, notFoundErr(err)
}

// FindByID looks up a user by primary key.
func (r *UserRepository) FindByID(id uint) (models.User, error) {
	var user models.User
	err := orm.DB().Model(&models.User{}).Where("id = ?", id).First(&user)
	return user, notFoundErr(err)
}

// EmailTaken reports whether a user with the given email already exists.
func (r *UserRepository) EmailTaken(email string) (bool, error) {
	n, err := orm.DB().Model(&models.User{}).Where("email = ?", email).Count()
	return n > 0, err
}

// Create persists a new user record.
func (r *UserRepository) Create(user *models.User) error {
	return orm.DB().Create(user)
}

// Update persists changes to an existing user.
func (r *UserRepository) Update(user *models.User) error {
	return orm.DB().Save(user)
}

// All returns all users with pagination (Admin directory).
func (r *UserRepository) All(page, limit int) ([]models.User, orm.Pagination, error) {
	var users []models.User
	pagination, err := orm.DB().Model(&models.User{}).Order("id").GetWithPagination(&users, page, limit)
	return users, pagination, err
}

// notFoundErr translates GORM's record-not-found into the shared taxonomy so
// callers never leak gorm internals to the HTTP boundary.
func notFoundErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.ErrNotFound
	}
	return err
}
