package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/provider-directory/internal/api/dto"
	"github.com/spec-kit/provider-directory/internal/auth"
	"github.com/spec-kit/provider-directory/internal/service"
	apperrors "github.com/spec-kit/provider-directory/pkg/util"
)

// Response copy matches the public site.
const (
	applyReceivedMessage = "Başvurunuz alındı! Onay sonrası listelenecektir."
	updatedMessage       = "Güncelleme başarılı"
	deletedMessage       = "Silme işlemi başarılı"
)

// ProvidersHandler manages the provider listing endpoints.
type ProvidersHandler struct {
	service *service.ProviderService
}

// NewProvidersHandler constructs handler.
func NewProvidersHandler(providerService *service.ProviderService) *ProvidersHandler {
	return &ProvidersHandler{service: providerService}
}

// List GET /api/providers.
func (h *ProvidersHandler) List(c *fiber.Ctx) error {
	filter := parseListFilter(c)
	providers, err := h.service.List(c.UserContext(), filter, auth.IsAdmin(c))
	if err != nil {
		return err
	}
	return c.JSON(providers)
}

// Get GET /api/providers/:id.
func (h *ProvidersHandler) Get(c *fiber.Ctx) error {
	provider, err := h.service.Get(c.UserContext(), c.Params("id"), auth.IsAdmin(c))
	if err != nil {
		return err
	}
	return c.JSON(provider)
}

// Create POST /api/providers. Accepts JSON or a multipart form with an
// optional "image" file part.
func (h *ProvidersHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateProviderRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	upload, closeUpload, err := imageUpload(c)
	if err != nil {
		return err
	}
	if closeUpload != nil {
		defer closeUpload()
	}

	input := service.ApplicationInput{
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Service:     req.Service,
		Category:    req.Category,
		Description: req.Description,
		ServiceArea: req.ServiceArea,
		Country:     req.Country,
	}
	provider, err := h.service.Apply(c.UserContext(), input, upload)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ProviderMessageResponse{
		Message:  applyReceivedMessage,
		Provider: provider,
	})
}

// Update PUT /api/providers/:id. Admin only; partial merge semantics.
func (h *ProvidersHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateProviderRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	upload, closeUpload, err := imageUpload(c)
	if err != nil {
		return err
	}
	if closeUpload != nil {
		defer closeUpload()
	}

	input := service.UpdateInput{
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Service:     req.Service,
		Category:    req.Category,
		Description: req.Description,
		ServiceArea: req.ServiceArea,
		Country:     req.Country,
		Approved:    req.Approved,
	}
	provider, err := h.service.Update(c.UserContext(), c.Params("id"), input, upload)
	if err != nil {
		return err
	}
	return c.JSON(dto.ProviderMessageResponse{
		Message:  updatedMessage,
		Provider: provider,
	})
}

// Delete DELETE /api/providers/:id. Admin only; hard delete.
func (h *ProvidersHandler) Delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(dto.ProviderMessageResponse{Message: deletedMessage})
}

func parseListFilter(c *fiber.Ctx) service.ListFilter {
	filter := service.ListFilter{}
	if v := c.Query("country"); v != "" {
		filter.Country = &v
	}
	if v := c.Query("category"); v != "" {
		filter.Category = &v
	}
	if v := c.Query("approved"); v != "" {
		if approved, err := strconv.ParseBool(v); err == nil {
			filter.Approved = &approved
		}
	}
	if v := c.Query("state"); v != "" {
		filter.State = &v
	}
	if v := c.Query("searchTerm"); v != "" {
		filter.SearchTerm = &v
	}
	return filter
}

// imageUpload extracts the optional image file part. A missing part is not
// an error; a part that cannot be opened is.
func imageUpload(c *fiber.Ctx) (*service.ImageUpload, func(), error) {
	fileHeader, err := c.FormFile("image")
	if err != nil || fileHeader == nil {
		return nil, nil, nil
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, nil, apperrors.NewValidationError("image could not be read", nil)
	}
	upload := &service.ImageUpload{
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Size:        fileHeader.Size,
		Content:     file,
	}
	return upload, func() { _ = file.Close() }, nil
}
