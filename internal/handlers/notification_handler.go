package handlers

import (
	"net/http"
	"strconv"

	"github.com/anonto42/review-portal/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// NotificationHandler serves the admin notification feed
type NotificationHandler struct {
	notificationService *services.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notificationService *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// RegisterNotificationRoutes registers notification-related routes
func (h *NotificationHandler) RegisterNotificationRoutes(g *echo.Group) {
	g.GET("/notifications", h.GetNotifications)
	g.GET("/notifications/unread-count", h.GetUnreadCount)
	g.PUT("/notifications/:id/read", h.MarkAsRead)
}

// GetNotifications returns the newest notifications, ?limit= defaults to 20
func (h *NotificationHandler) GetNotifications(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	return JSON(c, http.StatusOK, h.notificationService.ListRecent(c.Request().Context(), limit))
}

func (h *NotificationHandler) GetUnreadCount(c echo.Context) error {
	count, err := h.notificationService.UnreadCount(c.Request().Context())
	if err != nil {
		return err
	}
	return JSON(c, http.StatusOK, map[string]int64{"unread": count})
}

func (h *NotificationHandler) MarkAsRead(c echo.Context) error {
	if err := h.notificationService.MarkRead(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
