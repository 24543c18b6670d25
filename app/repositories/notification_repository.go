package repositories

import (
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/foodshare/app/models"
	"github.com/shashiranjanraj/foodshare/pkg/orm"
)

// NotificationRepository handles the in-app notification feed.
type NotificationRepository struct{}

func NewNotificationRepository() *NotificationRepository {
	return &NotificationRepository{}
}

// Create persists a notification.
func (r *NotificationRepository) Create(n *models.Notification) error {
	return orm.DB().Create(n)
}

// ForUser lists a user's notifications, newest first.
func (r *NotificationRepository) ForUser(userID uint, page, limit int) ([]models.Notification, orm.Pagination, error) {
	var notifications []models.Notification
	pagination, err := orm.DB().Model(&models.Notification{}).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		GetWithPagination(&notifications, page, limit)
	return notifications, pagination, err
}

// UnreadCount returns the number of unread notifications for a user.
func (r *NotificationRepository) UnreadCount(userID uint) (int64, error) {
	return orm.DB().Model(&models.Notification{}).
		Where("user_id = ? AND read_at IS NULL", userID).
		Count()
}

// MarkRead stamps a single notification as read. Only the owner's rows match.
func (r *NotificationRepository) MarkRead(userID, id uint) error {
	now := time.Now()
	res := orm.DB().Gorm().Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("read_at", &now)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return notFoundErr(gorm.ErrRecordNotFound)
	}
	return nil
}

// MarkAllRead stamps every unread notification for the user.
func (r *NotificationRepository) MarkAllRead(userID uint) error {
	now := time.Now()
	return orm.DB().Gorm().Model(&models.Notification{}).
		Where("user_id = ? AND read_at IS NULL", userID).
		Update("read_at", &now).Error
}
