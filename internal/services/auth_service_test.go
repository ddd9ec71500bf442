package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"artshop/internal/models"
	"artshop/internal/repositories"
)

const testJWTSecret = "test_jwt_secret"

func TestAuthService_SessionRoundTrip(t *testing.T) {
	svc := NewAuthService(repositories.NewMockUserRepository(), testJWTSecret, "artshop", "")

	token, err := svc.CreateSessionToken("sub-1", "Ada")
	require.NoError(t, err)

	claims, err := svc.VerifySession(token)
	require.NoError(t, err)
	assert.Equal(t, &SessionClaims{OpenID: "sub-1", AppID: "artshop", Name: "Ada"}, claims)

	// An empty display name is still a valid session.
	token, err = svc.CreateSessionToken("sub-2", "")
	require.NoError(t, err)
	claims, err = svc.VerifySession(token)
	require.NoError(t, err)
	assert.Equal(t, "", claims.Name)
}

func TestAuthService_SessionExpiresAfterOneYear(t *testing.T) {
	svc := NewAuthService(repositories.NewMockUserRepository(), testJWTSecret, "artshop", "")
	svc.now = func() time.Time { return time.Now().Add(-SessionTTL - time.Minute) }

	token, err := svc.CreateSessionToken("sub-1", "Ada")
	require.NoError(t, err)
	_, err = svc.VerifySession(token)
	assert.ErrorContains(t, err, "invalid session")
}

func TestAuthService_VerifySessionRejects(t *testing.T) {
	svc := NewAuthService(repositories.NewMockUserRepository(), testJWTSecret, "artshop", "")

	_, err := svc.VerifySession("")
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = svc.VerifySession("invalid.token.string")
	assert.Error(t, err)

	other := NewAuthService(repositories.NewMockUserRepository(), "another_secret", "artshop", "")
	foreign, err := other.CreateSessionToken("sub-1", "Ada")
	require.NoError(t, err)
	_, err = svc.VerifySession(foreign)
	assert.Error(t, err, "signed with a different secret")

	noApp := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"openId": "sub-1",
		"exp":    time.Now().Add(time.Hour).Unix(),
	})
	signed, err := noApp.SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	_, err = svc.VerifySession(signed)
	assert.ErrorContains(t, err, "missing openId or appId")
}

func TestAuthService_SignInMakesOwnerAdmin(t *testing.T) {
	users := repositories.NewMockUserRepository()
	svc := NewAuthService(users, testJWTSecret, "artshop", "owner-sub")
	ctx := context.Background()

	owner, token, err := svc.SignIn(ctx, Identity{OpenID: "owner-sub", Name: "Ben", Email: "ben@example.com", LoginMethod: "oidc"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, owner.Role)
	assert.NotEmpty(t, token)

	visitor, _, err := svc.SignIn(ctx, Identity{OpenID: "visitor-sub", Name: "Vi"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, visitor.Role)
	assert.Nil(t, visitor.Email)

	_, _, err = svc.SignIn(ctx, Identity{})
	assert.Error(t, err)
}

func TestAuthService_Authenticate(t *testing.T) {
	users := repositories.NewMockUserRepository()
	svc := NewAuthService(users, testJWTSecret, "artshop", "")
	ctx := context.Background()

	_, token, err := svc.SignIn(ctx, Identity{OpenID: "sub-1", Name: "Ada"})
	require.NoError(t, err)

	later := time.Now().Add(time.Hour)
	svc.now = func() time.Time { return later }
	user, err := svc.Authenticate(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "sub-1", user.OpenID)

	stored, err := users.GetByOpenID(ctx, "sub-1")
	require.NoError(t, err)
	assert.True(t, later.Equal(stored.LastSignedIn))

	// A valid token for a user that no longer exists is not a session.
	orphan, err := svc.CreateSessionToken("gone", "")
	require.NoError(t, err)
	_, err = svc.Authenticate(ctx, orphan)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestAuthService_AuthenticateToleratesTouchFailure(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewAuthService(users, testJWTSecret, "artshop", "")
	token, err := svc.CreateSessionToken("sub-1", "Ada")
	require.NoError(t, err)

	users.On("GetByOpenID", mock.Anything, "sub-1").Return(&models.User{ID: 1, OpenID: "sub-1"}, nil).Once()
	users.On("TouchLastSignedIn", mock.Anything, "sub-1", mock.AnythingOfType("time.Time")).Return(errors.New("read-only")).Once()

	user, err := svc.Authenticate(context.Background(), token)
	require.NoError(t, err)
	assert.EqualValues(t, 1, user.ID)
	users.AssertExpectations(t)
}
