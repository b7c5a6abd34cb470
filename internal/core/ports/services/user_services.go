package services

import (
	"context"
	"time"

	"github.com/contaflux/contaflux_backend/internal/core/domain"
	"github.com/contaflux/contaflux_backend/internal/dto"
)

// UserSvcFacade defines user management operations.
type UserSvcFacade interface {
	CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error)
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, updaterUserID string) (*domain.User, error)
	DeleteUser(ctx context.Context, userID string, deleterUserID string) error

	// AuthenticateUser checks email+password credentials and returns the user,
	// apperrors.ErrUnauthorized on mismatch.
	AuthenticateUser(ctx context.Context, email string, password string) (*domain.User, error)

	// FindOrCreateGoogleUser resolves the local user for a verified Google
	// identity, creating one on first sign-in.
	FindOrCreateGoogleUser(ctx context.Context, info *domain.GoogleUserInfo) (*domain.User, error)

	// StoreRefreshToken persists the hash of a newly issued refresh token.
	StoreRefreshToken(ctx context.Context, userID string, rawRefreshToken string, expiryTime time.Time) error

	// ClearRefreshToken drops the stored refresh token (logout).
	ClearRefreshToken(ctx context.Context, userID string) error
}
