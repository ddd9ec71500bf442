package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"artshop/internal/middleware"
	"artshop/internal/notify"
)

// SystemHandler exposes health checks and the owner alert relay.
type SystemHandler struct {
	notifier notify.OwnerNotifier
	validate *validator.Validate
}

// NewSystemHandler creates a new SystemHandler. notifier may be nil.
func NewSystemHandler(notifier notify.OwnerNotifier) *SystemHandler {
	return &SystemHandler{
		notifier: notifier,
		validate: newValidator(),
	}
}

func (h *SystemHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/system.health", h.HandleHealth)
	router.Post("/system.notifyOwner", middleware.AdminRequired(), h.HandleNotifyOwner)
}

func (h *SystemHandler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"ok": true})
}

type notifyOwnerRequest struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content" validate:"required"`
}

// HandleNotifyOwner relays an alert and reports whether the push service
// accepted it.
func (h *SystemHandler) HandleNotifyOwner(c *fiber.Ctx) error {
	var req notifyOwnerRequest
	if ok, err := bind(c, h.validate, &req); !ok {
		return err
	}
	if h.notifier == nil {
		return respondError(c, "system.notifyOwner", notify.ErrNotConfigured)
	}
	delivered, err := h.notifier.NotifyOwner(c.UserContext(), notify.Notification{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		return respondError(c, "system.notifyOwner", err)
	}
	return c.JSON(fiber.Map{"success": delivered})
}
