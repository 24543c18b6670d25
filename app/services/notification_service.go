package services

import (
	"github.com/shashiranjanraj/foodshare/app/models"
	"github.com/shashiranjanraj/foodshare/app/repositories"
	"github.com/shashiranjanraj/foodshare/pkg/orm"
)

type NotificationService struct {
	notifications *repositories.NotificationRepository
}

func NewNotificationService() *NotificationService {
	return &NotificationService{notifications: repositories.NewNotificationRepository()}
}

// Feed returns the user's notifications, newest first.
func (s *NotificationService) Feed(userID uint, page, limit int) ([]models.Notification, orm.Pagination, error) {
	return s.notifications.ForUser(userID, page, limit)
}

// UnreadCount returns how many notifications the user has not read yet.
func (s *NotificationService) UnreadCount(userID uint) (int64, error) {
	return s.notifications.UnreadCount(userID)
}

// MarkRead marks one of the user's notifications as read.
func (s *NotificationService) MarkRead(userID, id uint) error {
	return s.notifications.MarkRead(userID, id)
}

// MarkAllRead marks all of the user's notifications as read.
func (s *NotificationService) MarkAllRead(userID uint) error {
	return s.notifications.MarkAllRead(userID)
}
