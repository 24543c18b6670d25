package repositories

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/shashiranjanraj/foodshare/app/models"
	"github.com/shashiranjanraj/foodshare/pkg/orm"
)

// ListingFilter narrows the role-scoped listing query.
type ListingFilter struct {
	Status string
	Search string // substring over title, description and location
	Page   int
	Limit  int
}

// ListingRepository handles database operations for FoodListing.
type ListingRepository struct{}

func NewListingRepository() *ListingRepository {
	return &ListingRepository{}
}

// FindByID loads one listing with its owner preloaded.
func (r *ListingRepository) FindByID(id uint) (models.FoodListing, error) {
	var listing models.FoodListing
	err := orm.DB().Model(&models.FoodListing{}).
		Preload("CreatedBy").
		Where("id = ?", id).
		First(&listing)
	return listing, notFoundErr(err)
}

// FindVisible loads one listing through the actor's visibility scope.
// Listings outside the scope come back as not found, never as forbidden.
func (r *ListingRepository) FindVisible(actor *models.User, id uint) (models.FoodListing, error) {
	var listing models.FoodListing
	err := r.visibleScope(actor).Where("id = ?", id).First(&listing)
	return listing, notFoundErr(err)
}

// visibleScope applies the role-based visibility rules:
// Food Providers see their own listings, NGOs/Volunteers and Individuals see
// only Available ones, Admins see everything.
func (r *ListingRepository) visibleScope(actor *models.User) *orm.Query {
	q := orm.DB().Model(&models.FoodListing{}).Preload("CreatedBy")
	switch actor.Role {
	case models.RoleFoodProvider:
		return q.Where("created_by_id = ?", actor.ID)
	case models.RoleNGO, models.RoleIndividual:
		return q.Where("status = ?", models.ListingAvailable)
	default: // Admin
		return q
	}
}

// VisibleTo lists the listings the actor may see, newest first, with the
// optional status and search filters applied.
func (r *ListingRepository) VisibleTo(actor *models.User, f ListingFilter) ([]models.FoodListing, orm.Pagination, error) {
	q := r.visibleScope(actor)

	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Search != "" {
		like := "%" + f.Search + "%"
		q = q.Where("title LIKE ? OR description LIKE ? OR location LIKE ?", like, like, like)
	}

	var listings []models.FoodListing
	pagination, err := q.Order("created_at DESC").GetWithPagination(&listings, f.Page, f.Limit)
	return listings, pagination, err
}

// Available returns Available, unexpired listings sorted by soonest expiry.
func (r *ListingRepository) Available() ([]models.FoodListing, error) {
	var listings []models.FoodListing
	err := orm.DB().Model(&models.FoodListing{}).
		Preload("CreatedBy").
		Where("status = ? AND expiry_time > ?", models.ListingAvailable, time.Now()).
		Order("expiry_time ASC").
		Get(&listings)
	return listings, err
}

// ExpiringSoon returns Available listings, owner preloaded, that expire
// within the given window. Used by the daily reminder sweep.
func (r *ListingRepository) ExpiringSoon(window time.Duration) ([]models.FoodListing, error) {
	now := time.Now()
	var listings []models.FoodListing
	err := orm.DB().Model(&models.FoodListing{}).
		Preload("CreatedBy").
		Where("status = ? AND expiry_time > ? AND expiry_time <= ?",
			models.ListingAvailable, now, now.Add(window)).
		Get(&listings)
	return listings, err
}

func (r *ListingRepository) Create(listing *models.FoodListing) error {
	return orm.DB().Create(listing)
}

func (r *ListingRepository) Save(listing *models.FoodListing) error {
	return orm.DB().Save(listing)
}

func (r *ListingRepository) Delete(listing *models.FoodListing) error {
	return orm.DB().Delete(listing)
}

// LockForUpdate loads the listing inside tx under a row-level FOR UPDATE
// lock, serialising concurrent request transitions on the same listing.
// SQLite has no row locks and serialises writes itself, so the clause is
// skipped there.
func (r *ListingRepository) LockForUpdate(tx *gorm.DB, id uint) (models.FoodListing, error) {
	q := tx
	if tx.Dialector.Name() != "sqlite" {
		q = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var listing models.FoodListing
	err := q.First(&listing, id).Error
	return listing, notFoundErr(err)
}

// SaveTx persists the listing inside an existing transaction.
func (r *ListingRepository) SaveTx(tx *gorm.DB, listing *models.FoodListing) error {
	return orm.Tx(tx).Save(listing)
}

// ─── Dashboard counts ─────────────────────────────────────────────────────────

// CountOwnedExcluding counts the owner's listings not in the given status.
func (r *ListingRepository) CountOwnedExcluding(ownerID uint, status models.ListingStatus) (int64, error) {
	return orm.DB().Model(&models.FoodListing{}).
		Where("created_by_id = ?", ownerID).
		Not("status = ?", status).
		Count()
}

// CountOwnedWithStatus counts the owner's listings in the given status.
func (r *ListingRepository) CountOwnedWithStatus(ownerID uint, status models.ListingStatus) (int64, error) {
	return orm.DB().Model(&models.FoodListing{}).
		Where("created_by_id = ? AND status = ?", ownerID, status).
		Count()
}

// CountOwnedExpiringSoon counts the owner's Available listings that expire
// within 24 hours.
func (r *ListingRepository) CountOwnedExpiringSoon(ownerID uint) (int64, error) {
	now := time.Now()
	return orm.DB().Model(&models.FoodListing{}).
		Where("created_by_id = ? AND status = ? AND expiry_time > ? AND expiry_time <= ?",
			ownerID, models.ListingAvailable, now, now.Add(24*time.Hour)).
		Count()
}

// CountAvailable counts all Available listings.
func (r *ListingRepository) CountAvailable() (int64, error) {
	return orm.DB().Model(&models.FoodListing{}).
		Where("status = ?", models.ListingAvailable).
		Count()
}

// CountAvailableExpiringSoon counts Available listings expiring within 24 hours.
func (r *ListingRepository) CountAvailableExpiringSoon() (int64, error) {
	now := time.Now()
	return orm.DB().Model(&models.FoodListing{}).
		Where("status = ? AND expiry_time > ? AND expiry_time <= ?",
			models.ListingAvailable, now, now.Add(24*time.Hour)).
		Count()
}

// CountAll counts every listing.
func (r *ListingRepository) CountAll() (int64, error) {
	return orm.DB().Model(&models.FoodListing{}).Count()
}

// CountExcluding counts listings not in the given status.
func (r *ListingRepository) CountExcluding(status models.ListingStatus) (int64, error) {
	return orm.DB().Model(&models.FoodListing{}).Not("status = ?", status).Count()
}

// CountWithStatus counts listings in the given status.
func (r *ListingRepository) CountWithStatus(status models.ListingStatus) (int64, error) {
	return orm.DB().Model(&models.FoodListing{}).Where("status = ?", status).Count()
}

// CountExpired counts listings whose expiry time has passed.
func (r *ListingRepository) CountExpired() (int64, error) {
	return orm.DB().Model(&models.FoodListing{}).Where("expiry_time < ?", time.Now()).Count()
}
