package experience

import (
	"errors"
	"net/http"
	"strconv"
	"time"

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

func (h *Handler) Create(c *gin.Context) {
	viewer, _ := middleware.CurrentUser(c)

	var req CreateRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_INPUT", err.Error())
		return
	}

	image, err := c.FormFile("image")
	if err != nil {
		image = nil
	}

	resp, err := h.service.Create(c.Request.Context(), viewer.ID, req, image)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "CREATE_FAILED", "Failed to create experience")
		return
	}

	response.Success(c, http.StatusCreated, resp)
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := parseParamID(c, "id")
	if !ok {
		return
	}

	resp, err := h.service.Get(c.Request.Context(), id, viewerID(c))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Experience not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Failed to load experience")
		return
	}

	response.Success(c, http.StatusOK, resp)
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := parseParamID(c, "id")
	if !ok {
		return
	}
	viewer, _ := middleware.CurrentUser(c)

	var req UpdateRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_INPUT", err.Error())
		return
	}

	image, err := c.FormFile("image")
	if err != nil {
		image = nil
	}

	resp, err := h.service.Update(c.Request.Context(), id, viewer.ID, req, image)
	if err != nil {
		h.writeError(c, err, "Failed to update experience")
		return
	}

	response.Success(c, http.StatusOK, resp)
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := parseParamID(c, "id")
	if !ok {
		return
	}
	viewer, _ := middleware.CurrentUser(c)

	if err := h.service.Delete(c.Request.Context(), id, viewer.ID); err != nil {
		h.writeError(c, err, "Failed to delete experience")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"status": "deleted"})
}

func (h *Handler) Feed(c *gin.Context) {
	limit, cursor := pagination(c)

	result, err := h.service.Feed(c.Request.Context(), viewerID(c), limit, cursor)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Failed to load feed")
		return
	}

	response.Success(c, http.StatusOK, result)
}

func (h *Handler) Search(c *gin.Context) {
	params := SearchParams{Query: c.Query("q")}

	if raw := c.Query("tagId"); raw != "" {
		tagID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || tagID <= 0 {
			response.Error(c, http.StatusBadRequest, "BAD_REQUEST", "Invalid tagId")
			return
		}
		params.TagID = &tagID
	}
	if raw := c.Query("scheduledAfter"); raw != "" {
		after, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "BAD_REQUEST", "Invalid scheduledAfter, expected RFC 3339")
			return
		}
		params.ScheduledAfter = &after
	}

	limit, cursor := pagination(c)

	result, err := h.service.Search(c.Request.Context(), params, viewerID(c), limit, cursor)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Search failed")
		return
	}

	response.Success(c, http.StatusOK, result)
}

func (h *Handler) ByUser(c *gin.Context) {
	userID, ok := parseParamID(c, "id")
	if !ok {
		return
	}
	limit, cursor := pagination(c)

	result, err := h.service.ByUser(c.Request.Context(), userID, viewerID(c), limit, cursor)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Failed to load experiences")
		return
	}

	response.Success(c, http.StatusOK, result)
}

func (h *Handler) ByTag(c *gin.Context) {
	tagID, ok := parseParamID(c, "id")
	if !ok {
		return
	}
	limit, cursor := pagination(c)

	result, err := h.service.ByTag(c.Request.Context(), tagID, viewerID(c), limit, cursor)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Failed to load experiences")
		return
	}

	response.Success(c, http.StatusOK, result)
}

// MyFavorites lists the caller's own favorited experiences.
func (h *Handler) MyFavorites(c *gin.Context) {
	viewer, _ := middleware.CurrentUser(c)
	limit, cursor := pagination(c)

	result, err := h.service.FavoritesByUser(c.Request.Context(), viewer.ID, &viewer.ID, limit, cursor)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Failed to load favorites")
		return
	}

	response.Success(c, http.StatusOK, result)
}

func (h *Handler) Attend(c *gin.Context) {
	id, ok := parseParamID(c, "id")
	if !ok {
		return
	}
	viewer, _ := middleware.CurrentUser(c)

	if err := h.service.Attend(c.Request.Context(), id, viewer.ID); err != nil {
		h.writeError(c, err, "Failed to join experience")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"status": "attending"})
}

func (h *Handler) Unattend(c *gin.Context) {
	id, ok := parseParamID(c, "id")
	if !ok {
		return
	}
	viewer, _ := middleware.CurrentUser(c)

	if err := h.service.Unattend(c.Request.Context(), id, viewer.ID); err != nil {
		h.writeError(c, err, "Failed to leave experience")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"status": "not_attending"})
}

func (h *Handler) Kick(c *gin.Context) {
	id, ok := parseParamID(c, "id")
	if !ok {
		return
	}
	viewer, _ := middleware.CurrentUser(c)

	var req KickRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_INPUT", err.Error())
		return
	}

	if err := h.service.Kick(c.Request.Context(), id, viewer.ID, req.UserID); err != nil {
		h.writeError(c, err, "Failed to remove attendee")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"status": "kicked"})
}

func (h *Handler) Favorite(c *gin.Context) {
	id, ok := parseParamID(c, "id")
	if !ok {
		return
	}
	viewer, _ := middleware.CurrentUser(c)

	if err := h.service.Favorite(c.Request.Context(), id, viewer.ID); err != nil {
		h.writeError(c, err, "Failed to favorite experience")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"status": "favorited"})
}

func (h *Handler) Unfavorite(c *gin.Context) {
	id, ok := parseParamID(c, "id")
	if !ok {
		return
	}
	viewer, _ := middleware.CurrentUser(c)

	if err := h.service.Unfavorite(c.Request.Context(), id, viewer.ID); err != nil {
		h.writeError(c, err, "Failed to unfavorite experience")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"status": "unfavorited"})
}

func (h *Handler) Attendees(c *gin.Context) {
	id, ok := parseParamID(c, "id")
	if !ok {
		return
	}
	limit, cursor := pagination(c)

	result, err := h.service.Attendees(c.Request.Context(), id, viewerID(c), limit, cursor)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Experience not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Failed to load attendees")
		return
	}

	response.Success(c, http.StatusOK, result)
}

func (h *Handler) writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Experience not found")
	case errors.Is(err, ErrNotOwner):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Only the host can do this")
	case errors.Is(err, ErrCannotKickOwner):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "The host cannot be removed")
	case errors.Is(err, ErrAlreadyAttending):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Already attending this experience")
	case errors.Is(err, ErrNotAttending):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Not attending this experience")
	case errors.Is(err, ErrAlreadyFavorited):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Experience already in favorites")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL", fallback)
	}
}

func viewerID(c *gin.Context) *int64 {
	if viewer, ok := middleware.CurrentUser(c); ok {
		return &viewer.ID
	}
	return nil
}

func pagination(c *gin.Context) (limit, cursor int) {
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "0"))
	if limit > maxListLimit {
		limit = maxListLimit
	}
	cursor, _ = strconv.Atoi(c.DefaultQuery("cursor", "0"))
	return limit, cursor
}

func parseParamID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "BAD_REQUEST", "Invalid id")
		return 0, false
	}
	return id, true
}
