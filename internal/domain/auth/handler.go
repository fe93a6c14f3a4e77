package auth

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"experiencehub/internal/middleware"
	"experiencehub/internal/pkg/response"
)

type Handler struct {
	service      *Service
	refreshTTL   time.Duration
	cookieSecure bool
}

func NewHandler(service *Service, refreshTTL time.Duration, cookieSecure bool) *Handler {
	return &Handler{
		service:      service,
		refreshTTL:   refreshTTL,
		cookieSecure: cookieSecure,
	}
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_INPUT", err.Error())
		return
	}

	user, pair, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrEmailTaken) {
			response.Error(c, http.StatusConflict, "CONFLICT",
				"This email is already registered. Please try logging in instead.")
			return
		}
		response.Error(c, http.StatusInternalServerError, "REGISTER_FAILED", "Failed to register")
		return
	}

	h.setRefreshCookie(c, pair.RefreshToken)
	response.Success(c, http.StatusCreated, AuthResponse{AccessToken: pair.AccessToken, User: user})
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_INPUT", err.Error())
		return
	}

	user, pair, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED",
				"Invalid email or password. Please try again.")
			return
		}
		response.Error(c, http.StatusInternalServerError, "LOGIN_FAILED", "Failed to log in")
		return
	}

	h.setRefreshCookie(c, pair.RefreshToken)
	response.Success(c, http.StatusOK, AuthResponse{AccessToken: pair.AccessToken, User: user})
}

func (h *Handler) Logout(c *gin.Context) {
	c.SetCookie(middleware.RefreshCookieName, "", -1, "/", "", h.cookieSecure, true)
	response.Success(c, http.StatusOK, gin.H{"status": "logged_out"})
}

// CurrentUser is public: an anonymous caller gets nulls, an authenticated one
// gets their record plus the silently refreshed access token when Session
// minted one this request.
func (h *Handler) CurrentUser(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.Success(c, http.StatusOK, CurrentUserResponse{})
		return
	}

	resp := CurrentUserResponse{CurrentUser: user}
	if minted, ok := middleware.MintedAccessToken(c); ok {
		resp.AccessToken = &minted
	}

	response.Success(c, http.StatusOK, resp)
}

func (h *Handler) ChangeEmail(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	var req ChangeEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_INPUT", err.Error())
		return
	}

	if err := h.service.ChangeEmail(c.Request.Context(), user, req); err != nil {
		if errors.Is(err, ErrInvalidPassword) {
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Invalid password")
			return
		}
		response.Error(c, http.StatusInternalServerError, "UPDATE_FAILED", "Failed to change email")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"status": "email_changed"})
}

func (h *Handler) ChangePassword(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_INPUT", err.Error())
		return
	}

	if err := h.service.ChangePassword(c.Request.Context(), user, req); err != nil {
		if errors.Is(err, ErrInvalidPassword) {
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Invalid password")
			return
		}
		response.Error(c, http.StatusInternalServerError, "UPDATE_FAILED", "Failed to change password")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"status": "password_changed"})
}

func (h *Handler) setRefreshCookie(c *gin.Context, refreshToken string) {
	c.SetCookie(
		middleware.RefreshCookieName,
		refreshToken,
		int(h.refreshTTL.Seconds()),
		"/",
		"",
		h.cookieSecure,
		true,
	)
}
