package comment

import (
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

func (h *Handler) Add(c *gin.Context) {
	experienceID, ok := parseParamID(c, "id")
	if !ok {
		return
	}
	viewer, _ := middleware.CurrentUser(c)

	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_INPUT", err.Error())
		return
	}

	created, err := h.service.Add(c.Request.Context(), experienceID, viewer.ID, req)
	if err != nil {
		if errors.Is(err, ErrExperienceNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Experience not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "CREATE_FAILED", "Failed to add comment")
		return
	}

	response.Success(c, http.StatusCreated, created)
}

func (h *Handler) ByExperience(c *gin.Context) {
	experienceID, ok := parseParamID(c, "id")
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

	result, err := h.service.ByExperience(c.Request.Context(), experienceID, viewerID, limit, cursor)
	if err != nil {
		if errors.Is(err, ErrExperienceNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Experience not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Failed to load comments")
		return
	}

	response.Success(c, http.StatusOK, result)
}

func (h *Handler) Edit(c *gin.Context) {
	id, ok := parseParamID(c, "id")
	if !ok {
		return
	}
	viewer, _ := middleware.CurrentUser(c)

	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_INPUT", err.Error())
		return
	}

	updated, err := h.service.Edit(c.Request.Context(), id, viewer.ID, req)
	if err != nil {
		h.writeError(c, err, "Failed to edit comment")
		return
	}

	response.Success(c, http.StatusOK, updated)
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := parseParamID(c, "id")
	if !ok {
		return
	}
	viewer, _ := middleware.CurrentUser(c)

	if err := h.service.Delete(c.Request.Context(), id, viewer.ID); err != nil {
		h.writeError(c, err, "Failed to delete comment")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"status": "deleted"})
}

func (h *Handler) Like(c *gin.Context) {
	id, ok := parseParamID(c, "id")
	if !ok {
		return
	}
	viewer, _ := middleware.CurrentUser(c)

	if err := h.service.Like(c.Request.Context(), id, viewer.ID); err != nil {
		h.writeError(c, err, "Failed to like comment")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"status": "liked"})
}

func (h *Handler) Unlike(c *gin.Context) {
	id, ok := parseParamID(c, "id")
	if !ok {
		return
	}
	viewer, _ := middleware.CurrentUser(c)

	if err := h.service.Unlike(c.Request.Context(), id, viewer.ID); err != nil {
		h.writeError(c, err, "Failed to unlike comment")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"status": "unliked"})
}

func (h *Handler) writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Comment not found")
	case errors.Is(err, ErrNotAuthor):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Only the author can edit this comment")
	case errors.Is(err, ErrNotAllowed):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Not allowed to delete this comment")
	case errors.Is(err, ErrAlreadyLiked):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Comment already liked")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL", fallback)
	}
}

func parseParamID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "BAD_REQUEST", "Invalid id")
		return 0, false
	}
	return id, true
}
