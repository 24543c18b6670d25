// Package notification provides a multi-channel notification sink.
//
// Define a Notification:
//
//	type WelcomeNotification struct { User models.User }
//	func (n *WelcomeNotification) Via() []string { return []string{"mail", "database"} }
//	func (n *WelcomeNotification) ToMail() notification.MailData {
//	    return notification.MailData{
//	        Subject: "Welcome!",
//	        Body:    "<h1>Hi " + n.User.FullName + "</h1>",
//	    }
//	}
//
// Send:
//
//	notification.Send(&user, &WelcomeNotification{User: user})
//
// Every channel is fire-and-forget from the caller's point of view: failures
// are logged, collected and returned, never panicked or retried here.
package notification

import (
	"fmt"
	"time"

	"github.com/shashiranjanraj/foodshare/pkg/http"
	"github.com/shashiranjanraj/foodshare/pkg/logger"
	"github.com/shashiranjanraj/foodshare/pkg/mail"
)

// ------------------- Channel data structs -------------------

// MailData carries the data needed to send an email notification.
type MailData struct {
	To      string // overrides the notifiable address if set
	Subject string
	Body    string // HTML
	Text    string // plain-text fallback
}

// WebhookData carries an arbitrary JSON payload to POST to a URL.
type WebhookData struct {
	URL     string
	Payload interface{}
	Headers map[string]string
}

// DatabaseData carries the data stored in the notifications table. The
// stored row is also pushed to the recipient's websocket connections.
type DatabaseData struct {
	Type    string
	Message string
	Data    interface{}
}

// ------------------- Interfaces -------------------

// Notifiable is the recipient of a notification.
type Notifiable interface {
	// RouteMail returns the recipient's email address.
	RouteMail() string
	// RouteDatabase returns the recipient's user id for the database channel.
	RouteDatabase() uint
}

// Notification is the interface every notification must satisfy.
type Notification interface {
	// Via returns the list of channel names: "mail", "database", "webhook".
	Via() []string
}

// Mailable can be implemented to support the mail channel.
type Mailable interface {
	ToMail() MailData
}

// Webhookable can be implemented to support the webhook channel.
type Webhookable interface {
	ToWebhook() WebhookData
}

// Databaseable can be implemented to store the notification in the DB.
type Databaseable interface {
	ToDatabase() DatabaseData
}

// ------------------- Channel hooks -------------------

// DatabaseStore persists a database-channel notification for a user.
// The concrete implementation lives in the application layer; registering it
// here keeps this package free of ORM imports.
type DatabaseStore func(userID uint, d DatabaseData) error

var storeDatabase DatabaseStore

// SetDatabaseStore registers the database channel's persistence hook.
// Call once at boot.
func SetDatabaseStore(fn DatabaseStore) { storeDatabase = fn }

// ------------------- Send -------------------

// Send dispatches the notification through all channels returned by Via().
func Send(to Notifiable, n Notification) []error {
	var errs []error
	for _, channel := range n.Via() {
		if err := dispatch(to, channel, n); err != nil {
			logger.Error("notification: channel failed",
				"channel", channel, "error", err)
			errs = append(errs, err)
		}
	}
	return errs
}

// SendAsync dispatches the notification in a background goroutine. This is
// the normal path from event listeners: delivery never blocks or fails the
// request that triggered it.
func SendAsync(to Notifiable, n Notification) {
	go func() {
		Send(to, n)
	}()
}

func dispatch(to Notifiable, channel string, n Notification) error {
	switch channel {
	case "mail":
		m, ok := n.(Mailable)
		if !ok {
			return fmt.Errorf("notification: %T does not implement Mailable", n)
		}
		return sendMail(to.RouteMail(), m.ToMail())

	case "database":
		d, ok := n.(Databaseable)
		if !ok {
			return fmt.Errorf("notification: %T does not implement Databaseable", n)
		}
		if storeDatabase == nil {
			return fmt.Errorf("notification: database store not configured")
		}
		return storeDatabase(to.RouteDatabase(), d.ToDatabase())

	case "webhook":
		wh, ok := n.(Webhookable)
		if !ok {
			return fmt.Errorf("notification: %T does not implement Webhookable", n)
		}
		return sendWebhook(wh.ToWebhook())

	default:
		return fmt.Errorf("notification: unknown channel %q", channel)
	}
}

// ------------------- Mail channel -------------------

func sendMail(address string, d MailData) error {
	to := d.To
	if to == "" {
		to = address
	}

	body := d.Body
	if body == "" {
		body = d.Text
	}

	return mail.To(to).Subject(d.Subject).Body(body).Send()
}

// ------------------- Webhook channel -------------------

func sendWebhook(d WebhookData) error {
	if d.URL == "" {
		return fmt.Errorf("notification: webhook URL is empty")
	}

	resp, err := http.Post(d.URL).
		Headers(d.Headers).
		Body(d.Payload).
		Timeout(10 * time.Second).
		Send()
	if err != nil {
		return fmt.Errorf("notification: webhook send: %w", err)
	}
	return resp.Throw()
}
