package notification

import "github.com/gin-gonic/gin"

// RegisterRoutes registers notification routes on an authenticated group.
func RegisterRoutes(protected *gin.RouterGroup, h *Handler) {
	group := protected.Group("/notifications")
	{
		group.GET("", h.Feed)
		group.GET("/unread-count", h.UnreadCount)
		group.PATCH("/:id/read", h.MarkAsRead)
	}
}
