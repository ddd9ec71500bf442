package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"artshop/internal/middleware"
	"artshop/internal/services"
)

// CatalogHandler serves the public gallery, shop and about-page reads.
type CatalogHandler struct {
	service  *services.CatalogService
	validate *validator.Validate
}

func NewCatalogHandler(service *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		service:  service,
		validate: newValidator(),
	}
}

func (h *CatalogHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/artworks.getAll", h.HandleGetArtworks)
	router.Get("/artworks.getFeatured", h.HandleGetFeatured)
	router.Get("/artworks.getById", h.HandleGetArtwork)
	router.Post("/artworks.updateDisplayOrder", middleware.AdminRequired(), h.HandleUpdateDisplayOrder)
	router.Get("/shop.getArtworks", h.HandleGetShopArtworks)
	router.Get("/prints.getAll", h.HandleGetPrints)
	router.Get("/prints.getById", h.HandleGetPrint)
	router.Get("/artist.getInfo", h.HandleGetArtistInfo)
}

type byIDQuery struct {
	ID uint `query:"id" validate:"required"`
}

func (h *CatalogHandler) HandleGetArtworks(c *fiber.Ctx) error {
	return c.JSON(h.service.GetAllArtworks(c.UserContext()))
}

func (h *CatalogHandler) HandleGetFeatured(c *fiber.Ctx) error {
	return c.JSON(h.service.GetFeaturedArtworks(c.UserContext()))
}

func (h *CatalogHandler) HandleGetShopArtworks(c *fiber.Ctx) error {
	return c.JSON(h.service.GetShopArtworks(c.UserContext()))
}

// HandleGetArtwork answers null for an unknown id, like the other single reads.
func (h *CatalogHandler) HandleGetArtwork(c *fiber.Ctx) error {
	var q byIDQuery
	if ok, err := bindQuery(c, h.validate, &q); !ok {
		return err
	}
	return nullable(c, h.service.GetArtwork(c.UserContext(), q.ID))
}

type updateDisplayOrderRequest struct {
	ID           uint `json:"id" validate:"required"`
	DisplayOrder *int `json:"displayOrder" validate:"required"`
}

func (h *CatalogHandler) HandleUpdateDisplayOrder(c *fiber.Ctx) error {
	var req updateDisplayOrderRequest
	if ok, err := bind(c, h.validate, &req); !ok {
		return err
	}
	if err := h.service.UpdateArtworkOrder(c.UserContext(), req.ID, *req.DisplayOrder); err != nil {
		return respondError(c, "artworks.updateDisplayOrder", err)
	}
	return success(c)
}

func (h *CatalogHandler) HandleGetPrints(c *fiber.Ctx) error {
	return c.JSON(h.service.GetPrints(c.UserContext()))
}

func (h *CatalogHandler) HandleGetPrint(c *fiber.Ctx) error {
	var q byIDQuery
	if ok, err := bindQuery(c, h.validate, &q); !ok {
		return err
	}
	return nullable(c, h.service.GetPrint(c.UserContext(), q.ID))
}

func (h *CatalogHandler) HandleGetArtistInfo(c *fiber.Ctx) error {
	return nullable(c, h.service.GetArtistInfo(c.UserContext()))
}
