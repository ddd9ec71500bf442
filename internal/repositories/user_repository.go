package repositories

import (
	"context"
	"time"

	"artshop/internal/models"
)

// UserRepository defines the interface for user data access.
type UserRepository interface {
	GetByOpenID(ctx context.Context, openID string) (*models.User, error)
	// Upsert inserts the user or refreshes the profile fields of the existing
	// row with the same OpenID. The stored role only changes when the
	// incoming role is admin. The stored row is returned.
	Upsert(ctx context.Context, user *models.User) (*models.User, error)
	TouchLastSignedIn(ctx context.Context, openID string, at time.Time) error
}
