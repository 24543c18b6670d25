package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/foodshare/app/listeners"
	"github.com/shashiranjanraj/foodshare/app/resources"
	"github.com/shashiranjanraj/foodshare/app/services"
	"github.com/shashiranjanraj/foodshare/pkg/response"
	"github.com/shashiranjanraj/foodshare/pkg/ws"
)

type NotificationController struct {
	service *services.NotificationService
}

func NewNotificationController() *NotificationController {
	return &NotificationController{service: services.NewNotificationService()}
}

func (c *NotificationController) Index(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentUser(w, r)
	if !ok {
		return
	}

	page, limit := pageParams(r)
	feed, pagination, err := c.service.Feed(actor.ID, page, limit)
	if err != nil {
		respondError(w, r, err)
		return
	}

	unread, err := c.service.UnreadCount(actor.ID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	response.Success(w, map[string]interface{}{
		"items":        resources.Notifications(feed),
		"pagination":   pagination,
		"unread_count": unread,
	})
}

func (c *NotificationController) MarkRead(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := paramID(r)
	if !ok {
		response.NotFound(w)
		return
	}

	if err := c.service.MarkRead(actor.ID, id); err != nil {
		respondError(w, r, err)
		return
	}
	response.Success(w, map[string]string{"message": "Notification marked as read"})
}

func (c *NotificationController) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentUser(w, r)
	if !ok {
		return
	}

	if err := c.service.MarkAllRead(actor.ID); err != nil {
		respondError(w, r, err)
		return
	}
	response.Success(w, map[string]string{"message": "All notifications marked as read"})
}

// Stream upgrades to a WebSocket tagged with the user's id; every database
// notification written for that user is pushed down this connection as JSON.
func (c *NotificationController) Stream(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentUser(w, r)
	if !ok {
		return
	}
	ws.UpgradeFor(w, r, listeners.NotificationHub, actor.ID)
}
