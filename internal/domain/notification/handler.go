package notification

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"pronet/internal/middleware"
	"pronet/internal/pkg/response"
)

type Handler struct {
	service *Service
	hub     *Hub
}

func NewHandler(service *Service, hub *Hub) *Handler {
	return &Handler{service: service, hub: hub}
}

// List returns the caller's notifications, newest first.
// GET /notifications?page=1&limit=20
func (h *Handler) List(c *gin.Context) {
	accountID := middleware.AccountID(c)
	if accountID == 0 {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	notifications, err := h.service.List(c.Request.Context(), accountID, page, limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to list notifications")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"notifications": notifications, "page": page})
}

// UnreadCount returns how many unread notifications the caller has.
// GET /notifications/unread-count
func (h *Handler) UnreadCount(c *gin.Context) {
	accountID := middleware.AccountID(c)
	if accountID == 0 {
		return
	}

	count, err := h.service.UnreadCount(c.Request.Context(), accountID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to count notifications")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"unread": count})
}

// MarkRead marks one notification as read.
// POST /notifications/:notificationId/read
func (h *Handler) MarkRead(c *gin.Context) {
	accountID := middleware.AccountID(c)
	if accountID == 0 {
		return
	}

	id, err := strconv.ParseInt(c.Param("notificationId"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "notification id must be numeric")
		return
	}

	if err := h.service.MarkRead(c.Request.Context(), id, accountID); err != nil {
		if errors.Is(err, ErrNotificationNotFound) {
			response.Error(c, http.StatusNotFound, "NOTIFICATION_NOT_FOUND", "notification not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to mark notification read")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"read": true})
}

// MarkAllRead marks every unread notification as read.
// POST /notifications/read-all
func (h *Handler) MarkAllRead(c *gin.Context) {
	accountID := middleware.AccountID(c)
	if accountID == 0 {
		return
	}

	if err := h.service.MarkAllRead(c.Request.Context(), accountID); err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to mark notifications read")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"read": true})
}

// Subscribe upgrades the connection and streams notification events.
// GET /notifications/ws
func (h *Handler) Subscribe(c *gin.Context) {
	accountID := middleware.AccountID(c)
	if accountID == 0 {
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	h.hub.ServeWS(conn, accountID)
}
