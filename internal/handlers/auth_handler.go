package handlers

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"artshop/internal/middleware"
	"artshop/internal/services"
)

const (
	oauthStateCookie = "oauth_state"
	oauthStateTTL    = 10 * time.Minute
)

// AuthHandler runs the OAuth login flow and the auth.* procedures.
type AuthHandler struct {
	authService *services.AuthService
	provider    services.IdentityProvider
}

// NewAuthHandler creates a new AuthHandler. provider may be nil, in which
// case the login routes answer 503.
func NewAuthHandler(authService *services.AuthService, provider services.IdentityProvider) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		provider:    provider,
	}
}

// RegisterRoutes mounts auth.me and auth.logout on the RPC router.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/auth.me", h.HandleMe)
	router.Post("/auth.logout", h.HandleLogout)
}

// RegisterOAuthRoutes mounts the browser-facing login redirects.
func (h *AuthHandler) RegisterOAuthRoutes(router fiber.Router) {
	router.Get("/login", h.HandleLogin)
	router.Get("/callback", h.HandleCallback)
}

func (h *AuthHandler) HandleMe(c *fiber.Ctx) error {
	return nullable(c, middleware.FromCtx(c).User)
}

// HandleLogout expires the session cookie with the attributes it was set with.
func (h *AuthHandler) HandleLogout(c *fiber.Ctx) error {
	c.Cookie(sessionCookie(c, "", time.Unix(0, 0)))
	return success(c)
}

func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	if h.provider == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"message": "OAuth login is not configured",
		})
	}
	state := uuid.NewString()
	c.Cookie(&fiber.Cookie{
		Name:     oauthStateCookie,
		Value:    state,
		Path:     "/",
		HTTPOnly: true,
		Secure:   middleware.IsSecureRequest(c),
		SameSite: fiber.CookieSameSiteLaxMode,
		Expires:  time.Now().Add(oauthStateTTL),
	})
	return c.Redirect(h.provider.AuthCodeURL(state), fiber.StatusFound)
}

// HandleCallback finishes the login: the state must match the cookie set by
// HandleLogin before the code is exchanged.
func (h *AuthHandler) HandleCallback(c *fiber.Ctx) error {
	if h.provider == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"message": "OAuth login is not configured",
		})
	}
	code, state := c.Query("code"), c.Query("state")
	if code == "" || state == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "code and state are required",
		})
	}
	if state != c.Cookies(oauthStateCookie) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid OAuth state",
		})
	}
	c.ClearCookie(oauthStateCookie)

	identity, err := h.provider.Exchange(c.UserContext(), code)
	if err != nil {
		log.Printf("[OAuth] Callback failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "OAuth callback failed",
			"error":   err.Error(),
		})
	}
	_, token, err := h.authService.SignIn(c.UserContext(), *identity)
	if err != nil {
		log.Printf("[OAuth] Sign-in failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "OAuth callback failed",
			"error":   err.Error(),
		})
	}

	c.Cookie(sessionCookie(c, token, time.Now().Add(services.SessionTTL)))
	return c.Redirect("/", fiber.StatusFound)
}

func sessionCookie(c *fiber.Ctx, value string, expires time.Time) *fiber.Cookie {
	return &fiber.Cookie{
		Name:     services.SessionCookieName,
		Value:    value,
		Path:     "/",
		HTTPOnly: true,
		Secure:   middleware.IsSecureRequest(c),
		SameSite: fiber.CookieSameSiteNoneMode,
		Expires:  expires,
	}
}
