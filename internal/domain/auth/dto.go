package auth

import "experiencehub/internal/domain"

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type ChangeEmailRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8"`
}

// AuthResponse is returned by register and login. The refresh token itself
// travels only in the HTTP-only cookie, never in the body.
type AuthResponse struct {
	AccessToken string       `json:"accessToken"`
	User        *domain.User `json:"user"`
}

type CurrentUserResponse struct {
	AccessToken *string      `json:"accessToken"`
	CurrentUser *domain.User `json:"currentUser"`
}
