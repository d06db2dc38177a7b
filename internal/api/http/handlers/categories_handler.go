package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/provider-directory/internal/service"
)

// CategoriesHandler serves the static category vocabulary.
type CategoriesHandler struct {
	service *service.ProviderService
}

// NewCategoriesHandler constructs handler.
func NewCategoriesHandler(providerService *service.ProviderService) *CategoriesHandler {
	return &CategoriesHandler{service: providerService}
}

// List GET /api/categories.
func (h *CategoriesHandler) List(c *fiber.Ctx) error {
	return c.JSON(h.service.Categories())
}
