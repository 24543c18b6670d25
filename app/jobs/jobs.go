// Package jobs holds the queued background jobs. Each job carries only ids;
// records are reloaded at execution time so a stale snapshot is never
// emailed.
package jobs

import (
	"errors"
	"fmt"

	"github.com/shashiranjanraj/foodshare/app/apperrors"
	"github.com/shashiranjanraj/foodshare/app/models"
	"github.com/shashiranjanraj/foodshare/app/notifications"
	"github.com/shashiranjanraj/foodshare/app/repositories"
	"github.com/shashiranjanraj/foodshare/app/services"
	"github.com/shashiranjanraj/foodshare/config"
	"github.com/shashiranjanraj/foodshare/pkg/notification"
	"github.com/shashiranjanraj/foodshare/pkg/queue"
)

// Register makes every job type known to the queue by name. Call once at
// boot, before workers start.
func Register() {
	queue.Register("jobs.WelcomeEmailJob", func() queue.Job { return &WelcomeEmailJob{} })
	queue.Register("jobs.ExpiryReminderJob", func() queue.Job { return &ExpiryReminderJob{} })
}

// WelcomeEmailJob sends the welcome notification with the email
// verification link.
type WelcomeEmailJob struct {
	UserID uint `json:"user_id"`
}

func (j WelcomeEmailJob) Handle() error {
	user, err := repositories.NewUserRepository().FindByID(j.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil // account deleted before the job ran
		}
		return err
	}

	token, err := services.NewAuthService().VerificationToken(user.ID)
	if err != nil {
		return err
	}

	n := &notifications.Welcome{
		User:      user,
		VerifyURL: fmt.Sprintf("%s/api/auth/verify-email?token=%s", config.AppURL(), token),
	}
	if errs := notification.Send(&user, n); len(errs) > 0 {
		return errs[0]
	}
	return nil
}

// ExpiryReminderJob reminds a listing's owner that the food expires within
// 24 hours. Queued by the daily sweep in app/listeners.
type ExpiryReminderJob struct {
	ListingID uint `json:"listing_id"`
}

func (j ExpiryReminderJob) Handle() error {
	listing, err := repositories.NewListingRepository().FindByID(j.ListingID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil
		}
		return err
	}

	// The listing may have moved on between the sweep and now.
	if listing.Status != models.ListingAvailable || !listing.IsExpiringSoon() {
		return nil
	}
	if listing.CreatedBy == nil {
		return nil
	}

	if errs := notification.Send(listing.CreatedBy, &notifications.ExpiringSoon{Listing: listing}); len(errs) > 0 {
		return errs[0]
	}
	return nil
}
