// Package listeners binds domain events to their notification fan-out and
// keeps the domain Prometheus counters. Boot() wires everything once.
package listeners

import (
	"encoding/json"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/shashiranjanraj/foodshare/app/jobs"
	"github.com/shashiranjanraj/foodshare/app/lifecycle"
	"github.com/shashiranjanraj/foodshare/app/models"
	"github.com/shashiranjanraj/foodshare/app/notifications"
	"github.com/shashiranjanraj/foodshare/app/repositories"
	"github.com/shashiranjanraj/foodshare/pkg/event"
	"github.com/shashiranjanraj/foodshare/pkg/logger"
	"github.com/shashiranjanraj/foodshare/pkg/metrics"
	"github.com/shashiranjanraj/foodshare/pkg/notification"
	"github.com/shashiranjanraj/foodshare/pkg/queue"
	"github.com/shashiranjanraj/foodshare/pkg/schedule"
	"github.com/shashiranjanraj/foodshare/pkg/workerpool"
	"github.com/shashiranjanraj/foodshare/pkg/ws"
)

// NotificationHub pushes database-channel notifications to connected
// websocket clients. The /ws/notifications handler registers clients here.
var NotificationHub = ws.NewHub()

var (
	listingsCreated = metrics.NewCounter("foodshare", "listings_created_total",
		"Food listings created.", nil)
	listingStatusChanges = metrics.NewCounter("foodshare", "listing_status_changes_total",
		"Listing status transitions.", []string{"from", "to"})
	requestsCreated = metrics.NewCounter("foodshare", "requests_created_total",
		"Food requests created.", nil)
	requestStatusChanges = metrics.NewCounter("foodshare", "request_status_changes_total",
		"Request status transitions.", []string{"from", "to"})
	notificationsStored = metrics.NewCounter("foodshare", "notifications_stored_total",
		"Database notifications written.", []string{"type"})
)

// Boot registers the notification store, all event listeners, the queue job
// types and the expiring-soon sweep, and starts the websocket hub.
// Call exactly once at startup.
func Boot() {
	go NotificationHub.Run()

	notification.SetDatabaseStore(storeNotification)
	jobs.Register()

	event.Listen(lifecycle.EventUserRegistered, onUserRegistered)
	event.Listen(lifecycle.EventListingCreated, onListingCreated)
	event.Listen(lifecycle.EventListingStatusUpdated, onListingStatusUpdated)
	event.Listen(lifecycle.EventRequestCreated, onRequestCreated)
	event.Listen(lifecycle.EventRequestStatusUpdated, onRequestStatusUpdated)

	scheduleExpirySweep()
}

// storeNotification is the database notification channel: persist the row,
// then push it to the recipient's websocket connections.
func storeNotification(userID uint, d notification.DatabaseData) error {
	data := ""
	if d.Data != nil {
		if raw, err := json.Marshal(d.Data); err == nil {
			data = string(raw)
		}
	}

	n := models.Notification{
		UserID:  userID,
		Type:    d.Type,
		Message: d.Message,
		Data:    data,
	}
	if err := repositories.NewNotificationRepository().Create(&n); err != nil {
		return err
	}
	notificationsStored.With(prometheus.Labels{"type": d.Type}).Inc()

	if payload, err := json.Marshal(n); err == nil {
		NotificationHub.SendTo(userID, payload)
	}
	return nil
}

// ─── Event handlers ───────────────────────────────────────────────────────────

func onUserRegistered(payload interface{}) {
	e, ok := payload.(lifecycle.UserRegistered)
	if !ok {
		return
	}
	if err := queue.Dispatch(jobs.WelcomeEmailJob{UserID: e.User.ID}); err != nil {
		logger.Error("listeners: queue welcome email", "user_id", e.User.ID, "error", err)
	}
}

func onListingCreated(payload interface{}) {
	e, ok := payload.(lifecycle.ListingCreated)
	if !ok {
		return
	}
	listingsCreated.WithLabelValues().Inc()

	if e.Listing.CreatedBy != nil {
		notification.SendAsync(e.Listing.CreatedBy, &notifications.ListingCreated{Listing: e.Listing})
	}
}

func onListingStatusUpdated(payload interface{}) {
	e, ok := payload.(lifecycle.ListingStatusUpdated)
	if !ok {
		return
	}
	listingStatusChanges.With(prometheus.Labels{
		"from": string(e.Old), "to": string(e.New),
	}).Inc()

	if e.Listing.CreatedBy != nil {
		notification.SendAsync(e.Listing.CreatedBy, &notifications.ListingStatusUpdated{
			Listing: e.Listing, Old: e.Old, New: e.New,
		})
	}
}

func onRequestCreated(payload interface{}) {
	e, ok := payload.(lifecycle.RequestCreated)
	if !ok {
		return
	}
	requestsCreated.WithLabelValues().Inc()

	if e.Request.FoodItem != nil && e.Request.FoodItem.CreatedBy != nil {
		notification.SendAsync(e.Request.FoodItem.CreatedBy, &notifications.RequestReceived{Request: e.Request})
	}
	if e.Request.RequestedBy != nil {
		notification.SendAsync(e.Request.RequestedBy, &notifications.RequestSubmitted{Request: e.Request})
	}
}

func onRequestStatusUpdated(payload interface{}) {
	e, ok := payload.(lifecycle.RequestStatusUpdated)
	if !ok {
		return
	}
	requestStatusChanges.With(prometheus.Labels{
		"from": string(e.Old), "to": string(e.New),
	}).Inc()

	if e.Request.RequestedBy != nil {
		notification.SendAsync(e.Request.RequestedBy, &notifications.RequestStatusUpdated{
			Request: e.Request, Old: e.Old, New: e.New,
		})
	}
}

// ─── Expiring-soon sweep ──────────────────────────────────────────────────────

// scheduleExpirySweep queues a reminder for every Available listing that
// expires within 24 hours. Runs daily; the fan-out goes through a small
// worker pool so a large result set cannot stall the scheduler tick.
func scheduleExpirySweep() {
	schedule.Daily().Name("listings:expiry-sweep").WithoutOverlapping().Run(func() {
		listings, err := repositories.NewListingRepository().ExpiringSoon(24 * time.Hour)
		if err != nil {
			logger.Error("expiry sweep: query", "error", err)
			return
		}
		if len(listings) == 0 {
			return
		}

		pool := workerpool.New(4)
		defer pool.Shutdown()
		for _, l := range listings {
			id := l.ID
			err := pool.SubmitWait(func() {
				if err := queue.Dispatch(jobs.ExpiryReminderJob{ListingID: id}); err != nil {
					logger.Error("expiry sweep: queue reminder", "listing_id", id, "error", err)
				}
			})
			if err != nil {
				logger.Error("expiry sweep: submit", "error", err)
			}
		}
		logger.Info("expiry sweep: reminders queued", "count", len(listings))
	})
}
