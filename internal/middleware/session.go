package middleware

import (
	"context"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"artshop/internal/models"
	"artshop/internal/services"
)

const requestContextKey = "requestContext"

// RequestMeta describes the transport of the current request.
type RequestMeta struct {
	IP        string
	UserAgent string
	Secure    bool
}

// RequestContext is attached to every request by Session. User is nil for
// anonymous callers.
type RequestContext struct {
	User *models.User
	Meta RequestMeta
}

// SessionAuthenticator resolves a session cookie to a user.
type SessionAuthenticator interface {
	Authenticate(ctx context.Context, token string) (*models.User, error)
}

// Session builds the RequestContext. A missing or bad cookie leaves the
// request anonymous rather than failing it.
func Session(auth SessionAuthenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rc := &RequestContext{
			Meta: RequestMeta{
				IP:        c.IP(),
				UserAgent: c.Get(fiber.HeaderUserAgent),
				Secure:    IsSecureRequest(c),
			},
		}
		if token := c.Cookies(services.SessionCookieName); token != "" {
			user, err := auth.Authenticate(c.UserContext(), token)
			if err != nil {
				log.Printf("[Auth] Ignoring session cookie: %v", err)
			} else {
				rc.User = user
			}
		}
		c.Locals(requestContextKey, rc)
		return c.Next()
	}
}

// FromCtx returns the request's context, or an anonymous one if Session did
// not run.
func FromCtx(c *fiber.Ctx) *RequestContext {
	if rc, ok := c.Locals(requestContextKey).(*RequestContext); ok {
		return rc
	}
	return &RequestContext{Meta: RequestMeta{IP: c.IP(), Secure: IsSecureRequest(c)}}
}

// IsSecureRequest reports https either directly or behind a proxy.
func IsSecureRequest(c *fiber.Ctx) bool {
	if c.Protocol() == "https" {
		return true
	}
	for _, proto := range strings.Split(c.Get(fiber.HeaderXForwardedProto), ",") {
		if strings.EqualFold(strings.TrimSpace(proto), "https") {
			return true
		}
	}
	return false
}

// AuthRequired rejects anonymous callers with 401.
func AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if FromCtx(c).User == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Please login",
				"error":   services.ErrUnauthorized.Error(),
			})
		}
		return c.Next()
	}
}

// AdminRequired rejects anonymous callers with 401 and signed-in non-admins
// with 403.
func AdminRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := FromCtx(c).User
		if user == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Please login",
				"error":   services.ErrUnauthorized.Error(),
			})
		}
		if !user.IsAdmin() {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "Unauthorized",
				"error":   services.ErrForbidden.Error(),
			})
		}
		return c.Next()
	}
}
