package repositories

import (
	"context"
	"fmt"
	"sync"
	"time"

	"artshop/internal/models"
)

// MockUserRepository is an in-memory implementation of UserRepository.
type MockUserRepository struct {
	users  map[string]models.User
	nextID uint
	mu     sync.RWMutex
}

// NewMockUserRepository creates a new instance of MockUserRepository.
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users: make(map[string]models.User),
	}
}

// GetByOpenID returns a user by provider subject.
func (r *MockUserRepository) GetByOpenID(_ context.Context, openID string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[openID]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", openID, ErrNotFound)
	}
	return &user, nil
}

// Upsert mirrors the GORM implementation's conflict rules.
func (r *MockUserRepository) Upsert(_ context.Context, user *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	signedIn := user.LastSignedIn
	if signedIn.IsZero() {
		signedIn = now
	}

	existing, ok := r.users[user.OpenID]
	if !ok {
		r.nextID++
		existing = models.User{ID: r.nextID, OpenID: user.OpenID, Role: models.RoleUser, CreatedAt: now}
	}
	existing.Name = user.Name
	existing.Email = user.Email
	existing.LoginMethod = user.LoginMethod
	existing.LastSignedIn = signedIn
	existing.UpdatedAt = now
	if user.Role == models.RoleAdmin {
		existing.Role = models.RoleAdmin
	}
	r.users[user.OpenID] = existing

	out := existing
	return &out, nil
}

// TouchLastSignedIn records activity for an existing user.
func (r *MockUserRepository) TouchLastSignedIn(_ context.Context, openID string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if user, ok := r.users[openID]; ok {
		user.LastSignedIn = at
		r.users[openID] = user
	}
	return nil
}
