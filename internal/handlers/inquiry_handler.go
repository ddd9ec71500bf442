package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"artshop/internal/middleware"
	"artshop/internal/models"
	"artshop/internal/services"
)

type InquiryHandler struct {
	service  *services.InquiryService
	validate *validator.Validate
}

func NewInquiryHandler(service *services.InquiryService) *InquiryHandler {
	return &InquiryHandler{
		service:  service,
		validate: newValidator(),
	}
}

func (h *InquiryHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/inquiries.submit", h.HandleSubmit)
	router.Get("/inquiries.getAll", middleware.AdminRequired(), h.HandleGetAll)
	router.Post("/inquiries.updateStatus", middleware.AdminRequired(), h.HandleUpdateStatus)
}

type submitInquiryRequest struct {
	Type      string `json:"type" validate:"required,oneof=contact print commission"`
	Name      string `json:"name" validate:"required,max=255"`
	Email     string `json:"email" validate:"required,email,max=320"`
	Phone     string `json:"phone" validate:"max=50"`
	Message   string `json:"message" validate:"required"`
	ArtworkID *uint  `json:"artworkId"`
}

func (h *InquiryHandler) HandleSubmit(c *fiber.Ctx) error {
	var req submitInquiryRequest
	if ok, err := bind(c, h.validate, &req); !ok {
		return err
	}
	_, err := h.service.Submit(c.UserContext(), services.SubmitInquiryInput{
		Type:      models.InquiryType(req.Type),
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Message:   req.Message,
		ArtworkID: req.ArtworkID,
	})
	if err != nil {
		return respondError(c, "inquiries.submit", err)
	}
	return success(c)
}

func (h *InquiryHandler) HandleGetAll(c *fiber.Ctx) error {
	return c.JSON(h.service.GetAll(c.UserContext()))
}

type updateInquiryStatusRequest struct {
	ID     uint   `json:"id" validate:"required"`
	Status string `json:"status" validate:"required,oneof=new read replied archived"`
}

func (h *InquiryHandler) HandleUpdateStatus(c *fiber.Ctx) error {
	var req updateInquiryStatusRequest
	if ok, err := bind(c, h.validate, &req); !ok {
		return err
	}
	if err := h.service.UpdateStatus(c.UserContext(), req.ID, models.InquiryStatus(req.Status)); err != nil {
		return respondError(c, "inquiries.updateStatus", err)
	}
	return success(c)
}
