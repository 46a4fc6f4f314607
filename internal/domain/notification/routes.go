package notification

import "github.com/gin-gonic/gin"

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	notifications := rg.Group("/notifications")
	{
		notifications.GET("", h.List)
		notifications.GET("/unread-count", h.UnreadCount)
		notifications.GET("/ws", h.Subscribe)
		notifications.POST("/read-all", h.MarkAllRead)
		notifications.POST("/:notificationId/read", h.MarkRead)
	}
}
