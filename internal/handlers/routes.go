package handlers

import "github.com/gofiber/fiber/v2"

// Set groups every handler the API serves.
type Set struct {
	Orders    *OrderHandler
	Inquiries *InquiryHandler
	Catalog   *CatalogHandler
	Auth      *AuthHandler
	System    *SystemHandler
}

// Mount registers /api/health, /api/oauth/* and the /api/rpc procedures.
func (s Set) Mount(router fiber.Router) {
	api := router.Group("/api")
	api.Get("/health", s.System.HandleHealth)
	s.Auth.RegisterOAuthRoutes(api.Group("/oauth"))

	rpc := api.Group("/rpc")
	s.System.RegisterRoutes(rpc)
	s.Auth.RegisterRoutes(rpc)
	s.Orders.RegisterRoutes(rpc)
	s.Inquiries.RegisterRoutes(rpc)
	s.Catalog.RegisterRoutes(rpc)
}
