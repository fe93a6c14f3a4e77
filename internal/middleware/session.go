package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"experiencehub/internal/domain"
	"experiencehub/internal/pkg/response"
	"experiencehub/internal/pkg/token"
)

const (
	ctxUserKey        = "currentUser"
	ctxAccessTokenKey = "accessToken"

	// RefreshCookieName is the HTTP-only cookie carrying the refresh token.
	RefreshCookieName = "refreshToken"
)

// UserFinder is the single persistence call Session needs.
type UserFinder interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// Session resolves the request identity from the Authorization header and the
// refresh-token cookie. Two channels, tried in order:
//
//  1. A valid access token must embed a refresh token; that refresh token is
//     re-verified (not looked up) and its userId resolved to a user. No new
//     access token is minted on this path.
//  2. If the access token is missing or fails verification, the refresh
//     cookie is verified directly; on success a fresh access token embedding
//     the same refresh token string is minted and attached to the context for
//     the handler to surface ("silent refresh").
//
// Every expected failure (missing/expired/malformed token, unknown user)
// degrades to an anonymous context. Only an unexpected persistence fault
// aborts the request.
func Session(tokens *token.Service, users UserFinder, accessTTL time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Next()
			return
		}

		var accessRaw string
		if parts := strings.Fields(header); len(parts) == 2 {
			accessRaw = parts[1]
		}

		payload, ok := tokens.Verify(accessRaw)
		if !ok {
			refreshRaw, err := c.Cookie(RefreshCookieName)
			if err != nil || refreshRaw == "" {
				c.Next()
				return
			}

			refreshPayload, ok := tokens.Verify(refreshRaw)
			if !ok || refreshPayload.UserID == nil {
				c.Next()
				return
			}

			user, aborted := findUser(c, users, *refreshPayload.UserID)
			if aborted {
				return
			}
			if user == nil {
				c.Next()
				return
			}

			accessToken, err := tokens.Create(token.Payload{RefreshToken: refreshRaw}, accessTTL)
			if err != nil {
				response.AbortError(c, http.StatusInternalServerError, "INTERNAL", "Internal server error")
				return
			}

			c.Set(ctxUserKey, user)
			c.Set(ctxAccessTokenKey, accessToken)
			c.Next()
			return
		}

		// An access token that does not embed a refresh token did not come
		// from this flow; treat it as no credential at all.
		if payload.RefreshToken == "" {
			c.Next()
			return
		}

		refreshPayload, ok := tokens.Verify(payload.RefreshToken)
		if !ok || refreshPayload.UserID == nil {
			c.Next()
			return
		}

		user, aborted := findUser(c, users, *refreshPayload.UserID)
		if aborted {
			return
		}
		if user == nil {
			c.Next()
			return
		}

		c.Set(ctxUserKey, user)
		c.Next()
	}
}

// findUser maps a missing user to (nil, false) so the caller degrades to
// anonymous; an unexpected persistence fault aborts the request with a 500.
func findUser(c *gin.Context, users UserFinder, id int64) (user *domain.User, aborted bool) {
	user, err := users.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false
		}
		response.AbortError(c, http.StatusInternalServerError, "INTERNAL", "Internal server error")
		return nil, true
	}
	return user, false
}

// RequireAuth rejects anonymous contexts. Session must run first.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentUser(c); !ok {
			response.AbortError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Not authenticated")
			return
		}
		c.Next()
	}
}

// CurrentUser returns the resolved user, if any.
func CurrentUser(c *gin.Context) (*domain.User, bool) {
	v, exists := c.Get(ctxUserKey)
	if !exists {
		return nil, false
	}
	user, ok := v.(*domain.User)
	return user, ok && user != nil
}

// MintedAccessToken returns the access token minted on the silent-refresh
// path, if this request took it.
func MintedAccessToken(c *gin.Context) (string, bool) {
	v, exists := c.Get(ctxAccessTokenKey)
	if !exists {
		return "", false
	}
	tok, ok := v.(string)
	return tok, ok && tok != ""
}
