package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"artshop/internal/models"
)

// GORMUserRepository is a GORM implementation of UserRepository.
type GORMUserRepository struct {
	db *gorm.DB
}

// NewGORMUserRepository creates a new instance of GORMUserRepository.
func NewGORMUserRepository(db *gorm.DB) *GORMUserRepository {
	return &GORMUserRepository{
		db: db,
	}
}

// GetByOpenID retrieves a user by the provider subject.
func (r *GORMUserRepository) GetByOpenID(ctx context.Context, openID string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "open_id = ?", openID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %s: %w", openID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user by open id %s: %w", openID, err)
	}
	return &user, nil
}

// Upsert inserts or updates the user keyed on open_id.
func (r *GORMUserRepository) Upsert(ctx context.Context, user *models.User) (*models.User, error) {
	row := *user
	if row.Role == "" {
		row.Role = models.RoleUser
	}
	if row.LastSignedIn.IsZero() {
		row.LastSignedIn = time.Now()
	}

	updates := []string{"name", "email", "login_method", "last_signed_in", "updated_at"}
	if row.Role == models.RoleAdmin {
		updates = append(updates, "role")
	}

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "open_id"}},
		DoUpdates: clause.AssignmentColumns(updates),
	}).Create(&row).Error
	if err != nil {
		return nil, fmt.Errorf("failed to upsert user %s: %w", user.OpenID, err)
	}
	return r.GetByOpenID(ctx, user.OpenID)
}

// TouchLastSignedIn records activity for an existing user.
func (r *GORMUserRepository) TouchLastSignedIn(ctx context.Context, openID string, at time.Time) error {
	err := r.db.WithContext(ctx).Model(&models.User{}).
		Where("open_id = ?", openID).
		Update("last_signed_in", at).Error
	if err != nil {
		return fmt.Errorf("failed to update last sign-in for %s: %w", openID, err)
	}
	return nil
}
