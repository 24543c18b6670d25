package repositories

import (
	"gorm.io/gorm"

	"github.com/shashiranjanraj/foodshare/app/models"
	"github.com/shashiranjanraj/foodshare/pkg/orm"
)

// RequestFilter narrows the role-scoped request query.
type RequestFilter struct {
	Status     string
	FoodItemID uint
	Page       int
	Limit      int
}

// RequestRepository handles database operations for FoodRequest.
type RequestRepository struct{}

func NewRequestRepository() *RequestRepository {
	return &RequestRepository{}
}

// preloaded returns the base query with both sides of the request loaded:
// the listing (and its owner) and the requester.
func (r *RequestRepository) preloaded() *orm.Query {
	return orm.DB().Model(&models.FoodRequest{}).
		Preload("FoodItem").
		Preload("FoodItem.CreatedBy").
		Preload("RequestedBy")
}

// FindByID loads one request with listing, listing owner and requester.
func (r *RequestRepository) FindByID(id uint) (models.FoodRequest, error) {
	var req models.FoodRequest
	err := r.preloaded().Where("id = ?", id).First(&req)
	return req, notFoundErr(err)
}

// visibleScope applies role-based visibility: NGOs/Volunteers see their own
// requests, Food Providers see requests against their listings, Admins see
// all. Individuals have no request visibility.
func (r *RequestRepository) visibleScope(actor *models.User) *orm.Query {
	q := r.preloaded()
	switch actor.Role {
	case models.RoleNGO:
		return q.Where("requested_by_id = ?", actor.ID)
	case models.RoleFoodProvider:
		return q.Where("food_item_id IN (?)",
			orm.DB().Gorm().Model(&models.FoodListing{}).
				Select("id").Where("created_by_id = ?", actor.ID))
	case models.RoleAdmin:
		return q
	default:
		return q.Where("1 = 0")
	}
}

// VisibleTo lists the requests the actor may see, newest first, with the
// optional status and food_item filters applied.
func (r *RequestRepository) VisibleTo(actor *models.User, f RequestFilter) ([]models.FoodRequest, orm.Pagination, error) {
	q := r.visibleScope(actor)

	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.FoodItemID != 0 {
		q = q.Where("food_item_id = ?", f.FoodItemID)
	}

	var requests []models.FoodRequest
	pagination, err := q.Order("created_at DESC").GetWithPagination(&requests, f.Page, f.Limit)
	return requests, pagination, err
}

// ByRequester lists a user's own requests, newest first.
func (r *RequestRepository) ByRequester(userID uint) ([]models.FoodRequest, error) {
	var requests []models.FoodRequest
	err := r.preloaded().
		Where("requested_by_id = ?", userID).
		Order("created_at DESC").
		Get(&requests)
	return requests, err
}

// ForListingOwner lists requests made against the given owner's listings,
// newest first.
func (r *RequestRepository) ForListingOwner(ownerID uint) ([]models.FoodRequest, error) {
	var requests []models.FoodRequest
	err := r.preloaded().
		Where("food_item_id IN (?)",
			orm.DB().Gorm().Model(&models.FoodListing{}).
				Select("id").Where("created_by_id = ?", ownerID)).
		Order("created_at DESC").
		Get(&requests)
	return requests, err
}

// ExistsForPair reports, inside tx, whether the user has ever requested the
// listing, regardless of the request's status. Runs on the transaction handle
// so the read is serialized with the insert behind the listing row lock.
func (r *RequestRepository) ExistsForPair(tx *gorm.DB, listingID, userID uint) (bool, error) {
	n, err := orm.Tx(tx).Model(&models.FoodRequest{}).
		Where("food_item_id = ? AND requested_by_id = ?", listingID, userID).
		Count()
	return n > 0, err
}

// OtherPendingExists reports, inside tx, whether any request on the listing
// other than excludeID is still Pending.
func (r *RequestRepository) OtherPendingExists(tx *gorm.DB, listingID, excludeID uint) (bool, error) {
	n, err := orm.Tx(tx).Model(&models.FoodRequest{}).
		Where("food_item_id = ? AND status = ? AND id <> ?",
			listingID, models.RequestPending, excludeID).
		Count()
	return n > 0, err
}

// CreateTx persists a new request inside an existing transaction.
func (r *RequestRepository) CreateTx(tx *gorm.DB, req *models.FoodRequest) error {
	return orm.Tx(tx).Create(req)
}

// SaveTx persists request changes inside an existing transaction.
func (r *RequestRepository) SaveTx(tx *gorm.DB, req *models.FoodRequest) error {
	return orm.Tx(tx).Save(req)
}

// Delete removes a request permanently. A hard delete, not gorm's soft
// delete: the composite unique index must free the (listing, requester)
// pair so the requester can request the listing again later.
func (r *RequestRepository) Delete(req *models.FoodRequest) error {
	return orm.DB().Gorm().Unscoped().Delete(req).Error
}

// BulkUpdateStatus applies status to every request whose id is in ids, in one
// atomic UPDATE, and returns the number of rows actually matched. Unmatched
// ids are silently ignored. No listing cascade happens here.
func (r *RequestRepository) BulkUpdateStatus(ids []uint, status models.RequestStatus) (int64, error) {
	res := orm.DB().Gorm().Model(&models.FoodRequest{}).
		Where("id IN ?", ids).
		Update("status", status)
	return res.RowsAffected, res.Error
}
