package models

import "time"

// Role separates the site owner from everyone else who signs in.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User is an identity established through the OAuth provider. OpenID is the
// provider's subject and is unique.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	OpenID       string    `json:"openId" gorm:"uniqueIndex;size:64;not null"`
	Name         *string   `json:"name" gorm:"type:text"`
	Email        *string   `json:"email" gorm:"size:320"`
	LoginMethod  *string   `json:"loginMethod" gorm:"size:64"`
	Role         Role      `json:"role" gorm:"size:16;not null;default:user"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
	LastSignedIn time.Time `json:"lastSignedIn"`
}

// IsAdmin reports whether the user may call admin procedures.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
