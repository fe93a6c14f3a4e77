package notification

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"experiencehub/internal/middleware"
	"experiencehub/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Feed(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	limit := 0
	if s := c.Query("limit"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 {
			limit = v
			if limit > 100 {
				limit = 100
			}
		}
	}

	cursor := 0
	if s := c.Query("cursor"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v >= 0 {
			cursor = v
		}
	}

	result, err := h.service.Feed(c.Request.Context(), user.ID, limit, cursor)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "FETCH_FAILED", "Failed to get notifications")
		return
	}

	response.Success(c, http.StatusOK, result)
}

func (h *Handler) UnreadCount(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	count, err := h.service.UnreadCount(c.Request.Context(), user.ID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "FETCH_FAILED", "Failed to get unread count")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"unreadCount": count})
}

func (h *Handler) MarkAsRead(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid notification ID")
		return
	}

	if err := h.service.MarkAsRead(c.Request.Context(), id, user.ID); err != nil {
		response.Error(c, http.StatusInternalServerError, "UPDATE_FAILED", "Failed to mark as read")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"status": "read"})
}
