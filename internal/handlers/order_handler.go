package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"artshop/internal/middleware"
	"artshop/internal/models"
	"artshop/internal/services"
)

// OrderHandler serves the orders.* procedures.
type OrderHandler struct {
	service  *services.OrderService
	validate *validator.Validate
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService) *OrderHandler {
	return &OrderHandler{
		service:  service,
		validate: newValidator(),
	}
}

// RegisterRoutes mounts the procedures on the RPC router.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/orders.quote", h.HandleQuote)
	router.Post("/orders.create", h.HandleCreate)
	router.Post("/orders.notifyPayPalClick", h.HandleNotifyPayPalClick)
	router.Get("/orders.getAll", middleware.AdminRequired(), h.HandleGetAll)
	router.Post("/orders.updateStatus", middleware.AdminRequired(), h.HandleUpdateStatus)
}

type createOrderRequest struct {
	BuyerName    string `json:"buyerName" validate:"required,max=255"`
	BuyerEmail   string `json:"buyerEmail" validate:"required,email,max=320"`
	BuyerPhone   string `json:"buyerPhone" validate:"max=50"`
	AddressLine1 string `json:"addressLine1" validate:"required,max=255"`
	AddressLine2 string `json:"addressLine2" validate:"max=255"`
	City         string `json:"city" validate:"required,max=255"`
	County       string `json:"county" validate:"max=255"`
	Postcode     string `json:"postcode" validate:"required,max=32"`
	Country      string `json:"country" validate:"required,max=128"`
	Section      string `json:"section" validate:"required,oneof=prints upcycles"`
	ItemTitle    string `json:"itemTitle" validate:"max=255"`
	ItemDetails  string `json:"itemDetails"`
	Size         string `json:"size" validate:"max=32"`
	ItemPrice    string `json:"itemPrice" validate:"max=50"`
	ShippingZone string `json:"shippingZone" validate:"omitempty,oneof=uk europe row"`
	ShippingCost string `json:"shippingCost" validate:"max=50"`
	Price        string `json:"price" validate:"max=50"`
}

// HandleCreate places an order. The response carries only the reference the
// buyer quotes when paying.
func (h *OrderHandler) HandleCreate(c *fiber.Ctx) error {
	var req createOrderRequest
	if ok, err := bind(c, h.validate, &req); !ok {
		return err
	}

	order, err := h.service.CreateOrder(c.UserContext(), services.CreateOrderInput{
		DeliveryDetails: services.DeliveryDetails{
			BuyerName:    req.BuyerName,
			BuyerEmail:   req.BuyerEmail,
			BuyerPhone:   req.BuyerPhone,
			AddressLine1: req.AddressLine1,
			AddressLine2: req.AddressLine2,
			City:         req.City,
			County:       req.County,
			Postcode:     req.Postcode,
			Country:      req.Country,
		},
		Section:      models.Section(req.Section),
		ItemTitle:    req.ItemTitle,
		ItemDetails:  req.ItemDetails,
		Size:         req.Size,
		ItemPrice:    req.ItemPrice,
		ShippingZone: req.ShippingZone,
		ShippingCost: req.ShippingCost,
		Price:        req.Price,
	})
	if err != nil {
		return respondError(c, "orders.create", err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":  true,
		"orderRef": order.OrderRef,
	})
}

type quoteRequest struct {
	Section   string `query:"section" validate:"required,oneof=prints upcycles"`
	Country   string `query:"country"`
	Size      string `query:"size"`
	ItemPrice string `query:"itemPrice"`
}

// HandleQuote prices delivery so the checkout can show the same figures the
// server will store.
func (h *OrderHandler) HandleQuote(c *fiber.Ctx) error {
	var req quoteRequest
	if ok, err := bindQuery(c, h.validate, &req); !ok {
		return err
	}
	return c.JSON(h.service.Quote(models.Section(req.Section), req.Country, req.Size, req.ItemPrice))
}

func (h *OrderHandler) HandleGetAll(c *fiber.Ctx) error {
	return c.JSON(h.service.GetAll(c.UserContext()))
}

type updateOrderStatusRequest struct {
	ID     uint   `json:"id" validate:"required"`
	Status string `json:"status" validate:"required,oneof=pending paid shipped delivered cancelled"`
}

func (h *OrderHandler) HandleUpdateStatus(c *fiber.Ctx) error {
	var req updateOrderStatusRequest
	if ok, err := bind(c, h.validate, &req); !ok {
		return err
	}
	if err := h.service.UpdateStatus(c.UserContext(), req.ID, models.OrderStatus(req.Status)); err != nil {
		return respondError(c, "orders.updateStatus", err)
	}
	return success(c)
}

type payPalClickRequest struct {
	Title    string `json:"title" validate:"required,max=255"`
	Price    string `json:"price" validate:"required,max=50"`
	Material string `json:"material" validate:"max=255"`
	Size     string `json:"size" validate:"max=32"`
	Section  string `json:"section" validate:"required,oneof=prints upcycles"`
}

// HandleNotifyPayPalClick tells the owner a buyer has gone to PayPal.
func (h *OrderHandler) HandleNotifyPayPalClick(c *fiber.Ctx) error {
	var req payPalClickRequest
	if ok, err := bind(c, h.validate, &req); !ok {
		return err
	}
	err := h.service.NotifyPayPalClick(c.UserContext(), services.PayPalClickInput{
		Title:    req.Title,
		Price:    req.Price,
		Material: req.Material,
		Size:     req.Size,
		Section:  models.Section(req.Section),
	})
	if err != nil {
		return respondError(c, "orders.notifyPayPalClick", err)
	}
	return success(c)
}
