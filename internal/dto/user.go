package dto

import (
	"time"

	"github.com/contaflux/contaflux_backend/internal/core/domain"
)

// CreateUserRequest defines the data needed to register a user.
type CreateUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// UpdateUserRequest defines the fields of a user that can change.
type UpdateUserRequest struct {
	Name *string `json:"name"`
}

// LoginRequest defines password-login credentials.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest carries a refresh token for rotation, for clients that do
// not use the cookie flow.
type RefreshRequest struct {
	UserID       string `json:"userID" binding:"required"`
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// GoogleIDTokenLoginRequest carries a Google ID token for token-based sign-in.
type GoogleIDTokenLoginRequest struct {
	IDToken string `json:"idToken" binding:"required"`
}

// UserResponse defines the data returned for a user.
type UserResponse struct {
	UserID       string              `json:"userID"`
	Name         string              `json:"name"`
	Email        string              `json:"email"`
	AuthProvider domain.AuthProvider `json:"authProvider"`
	CreatedAt    time.Time           `json:"createdAt"`
}

// ToUserResponse converts a domain.User to its response DTO.
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:       u.UserID,
		Name:         u.Name,
		Email:        u.Email,
		AuthProvider: u.AuthProvider,
		CreatedAt:    u.CreatedAt,
	}
}

// LoginResponse returns the issued tokens after a successful authentication.
type LoginResponse struct {
	User            UserResponse `json:"user"`
	AccessToken     string       `json:"accessToken"`
	AccessTokenExp  time.Time    `json:"accessTokenExpiry"`
	RefreshToken    string       `json:"refreshToken,omitempty"`
	RefreshTokenExp time.Time    `json:"refreshTokenExpiry,omitempty"`
}
