package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/dgrijalva/jwt-go"

	"artshop/internal/models"
	"artshop/internal/repositories"
)

const (
	// SessionCookieName carries the signed session token.
	SessionCookieName = "app_session_id"
	// SessionTTL is how long a sign-in lasts.
	SessionTTL = 365 * 24 * time.Hour
)

// SessionClaims identify the signed-in user inside a session token.
type SessionClaims struct {
	OpenID string
	AppID  string
	Name   string
}

// Identity is what the OAuth provider tells us about a user.
type Identity struct {
	OpenID      string
	Name        string
	Email       string
	LoginMethod string
}

// AuthService issues and checks session tokens and keeps users in sync with
// the identity provider.
type AuthService struct {
	users       repositories.UserRepository
	jwtSecret   []byte
	appID       string
	ownerOpenID string
	now         func() time.Time
}

// NewAuthService creates a new AuthService. The user whose OpenID equals
// ownerOpenID is made admin on sign-in.
func NewAuthService(users repositories.UserRepository, jwtSecret, appID, ownerOpenID string) *AuthService {
	return &AuthService{
		users:       users,
		jwtSecret:   []byte(jwtSecret),
		appID:       appID,
		ownerOpenID: ownerOpenID,
		now:         time.Now,
	}
}

// CreateSessionToken signs an HS256 token for the user.
func (s *AuthService) CreateSessionToken(openID, name string) (string, error) {
	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"openId": openID,
		"appId":  s.appID,
		"name":   name,
		"iat":    now.Unix(),
		"exp":    now.Add(SessionTTL).Unix(),
	})
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session: %w", err)
	}
	return signed, nil
}

// VerifySession checks signature, expiry and required claims.
func (s *AuthService) VerifySession(tokenString string) (*SessionClaims, error) {
	if tokenString == "" {
		return nil, ErrUnauthorized
	}
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid session: %w", err)
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid session")
	}

	openID, _ := claims["openId"].(string)
	appID, _ := claims["appId"].(string)
	name, _ := claims["name"].(string)
	if openID == "" || appID == "" {
		return nil, errors.New("invalid session: missing openId or appId")
	}
	return &SessionClaims{OpenID: openID, AppID: appID, Name: name}, nil
}

// Authenticate resolves a session cookie to its user and records the visit.
func (s *AuthService) Authenticate(ctx context.Context, tokenString string) (*models.User, error) {
	claims, err := s.VerifySession(tokenString)
	if err != nil {
		return nil, err
	}
	user, err := s.users.GetByOpenID(ctx, claims.OpenID)
	if err != nil {
		return nil, fmt.Errorf("session user: %w", err)
	}

	now := s.now()
	if err := s.users.TouchLastSignedIn(ctx, user.OpenID, now); err != nil {
		log.Printf("[Auth] Failed to record sign-in for %s: %v", user.OpenID, err)
	} else {
		user.LastSignedIn = now
	}
	return user, nil
}

// SignIn upserts the user behind identity and returns a session token.
func (s *AuthService) SignIn(ctx context.Context, identity Identity) (*models.User, string, error) {
	if identity.OpenID == "" {
		return nil, "", errors.New("identity has no subject")
	}
	user := &models.User{
		OpenID:       identity.OpenID,
		Name:         optional(identity.Name),
		Email:        optional(identity.Email),
		LoginMethod:  optional(identity.LoginMethod),
		LastSignedIn: s.now(),
	}
	if s.ownerOpenID != "" && identity.OpenID == s.ownerOpenID {
		user.Role = models.RoleAdmin
	}

	stored, err := s.users.Upsert(ctx, user)
	if err != nil {
		return nil, "", fmt.Errorf("failed to sign in: %w", err)
	}
	token, err := s.CreateSessionToken(stored.OpenID, identity.Name)
	if err != nil {
		return nil, "", err
	}
	log.Printf("[Auth] Signed in %s (%s)", stored.OpenID, stored.Role)
	return stored, token, nil
}
