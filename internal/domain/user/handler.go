package user

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"experiencehub/internal/middleware"
	"experiencehub/internal/pkg/response"
)

const maxListLimit = 100

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Profile(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var viewerID *int64
	if viewer, ok := middleware.CurrentUser(c); ok {
		viewerID = &viewer.ID
	}

	profile, err := h.service.Profile(c.Request.Context(), id, viewerID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "User not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Failed to load profile")
		return
	}

	response.Success(c, http.StatusOK, profile)
}

func (h *Handler) Follow(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	viewer, _ := middleware.CurrentUser(c)

	if err := h.service.Follow(c.Request.Context(), viewer.ID, id); err != nil {
		switch {
		case errors.Is(err, ErrCannotFollowSelf):
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "You cannot follow yourself")
		case errors.Is(err, ErrNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "User not found")
		case errors.Is(err, ErrAlreadyFollowing):
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Already following this user")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL", "Failed to follow user")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"status": "following"})
}

func (h *Handler) Unfollow(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	viewer, _ := middleware.CurrentUser(c)

	if err := h.service.Unfollow(c.Request.Context(), viewer.ID, id); err != nil {
		switch {
		case errors.Is(err, ErrCannotFollowSelf):
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "You cannot unfollow yourself")
		case errors.Is(err, ErrNotFollowing):
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Not following this user")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL", "Failed to unfollow user")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"status": "unfollowed"})
}

func (h *Handler) Followers(c *gin.Context) {
	h.listEdges(c, h.service.Followers)
}

func (h *Handler) Following(c *gin.Context) {
	h.listEdges(c, h.service.Following)
}

func (h *Handler) Edit(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	viewer, _ := middleware.CurrentUser(c)
	if viewer.ID != id {
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "You can only edit your own profile")
		return
	}

	var req EditProfileRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_INPUT", err.Error())
		return
	}

	// The avatar is optional multipart; a missing file is not an error.
	avatar, err := c.FormFile("avatar")
	if err != nil {
		avatar = nil
	}

	updated, err := h.service.Edit(c.Request.Context(), viewer, req, avatar)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "UPDATE_FAILED", "Failed to update profile")
		return
	}

	response.Success(c, http.StatusOK, updated)
}

func (h *Handler) listEdges(
	c *gin.Context,
	fetch func(ctx context.Context, userID int64, viewerID *int64, limit, cursor int) (*ListResult, error),
) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	if limit > maxListLimit {
		limit = maxListLimit
	}
	cursor, _ := strconv.Atoi(c.DefaultQuery("cursor", "0"))

	var viewerID *int64
	if viewer, ok := middleware.CurrentUser(c); ok {
		viewerID = &viewer.ID
	}

	result, err := fetch(c.Request.Context(), id, viewerID, limit, cursor)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Failed to load users")
		return
	}

	response.Success(c, http.StatusOK, result)
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "BAD_REQUEST", "Invalid user id")
		return 0, false
	}
	return id, true
}
