// file: internal/handlers/api/v1/notifications/notifications_controller.go
package notifications

import (
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"fresherjobs/internal/contextutils"
	"fresherjobs/internal/response"
	"fresherjobs/internal/services"
)

type NotificationController struct {
	notificationService services.NotificationService
	logger              *zap.Logger
	responseBuilder     *response.Builder
}

// NewNotificationController creates a new notification controller
func NewNotificationController(notificationService services.NotificationService, logger *zap.Logger, responseBuilder *response.Builder) *NotificationController {
	return &NotificationController{
		notificationService: notificationService,
		logger:              logger,
		responseBuilder:     responseBuilder,
	}
}

// ListNotifications handles the caller's notification feed
func (c *NotificationController) ListNotifications(w http.ResponseWriter, r *http.Request) {
	userID := contextutils.GetUserID(r.Context())
	unreadOnly, _ := strconv.ParseBool(r.URL.Query().Get("unread"))

	items, err := c.notificationService.ListNotifications(r.Context(), userID, unreadOnly)
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	c.responseBuilder.WriteSuccess(w, r, items)
}

// CountUnread handles the unread badge count
func (c *NotificationController) CountUnread(w http.ResponseWriter, r *http.Request) {
	userID := contextutils.GetUserID(r.Context())

	count, err := c.notificationService.CountUnread(r.Context(), userID)
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	c.responseBuilder.WriteSuccess(w, r, map[string]int64{"unread": count})
}

// MarkRead handles marking a single notification as read
func (c *NotificationController) MarkRead(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		c.responseBuilder.WriteError(w, r, services.NewValidationError("invalid notification ID", err))
		return
	}

	userID := contextutils.GetUserID(r.Context())
	if err := c.notificationService.MarkRead(r.Context(), id, userID); err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	c.responseBuilder.WriteSuccess(w, r, map[string]string{"message": "Notification marked as read"})
}

// MarkAllRead handles marking the whole feed as read
func (c *NotificationController) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	userID := contextutils.GetUserID(r.Context())

	if err := c.notificationService.MarkAllRead(r.Context(), userID); err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	c.responseBuilder.WriteSuccess(w, r, map[string]string{"message": "All notifications marked as read"})
}
