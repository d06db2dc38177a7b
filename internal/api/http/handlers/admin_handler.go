package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/provider-directory/internal/api/dto"
	"github.com/spec-kit/provider-directory/internal/auth"
	"github.com/spec-kit/provider-directory/internal/config"
	apperrors "github.com/spec-kit/provider-directory/pkg/util"
)

// AdminHandler issues moderation session tokens.
type AdminHandler struct {
	cfg    config.AuthConfig
	tokens *auth.TokenManager
}

// NewAdminHandler constructs handler.
func NewAdminHandler(cfg config.AuthConfig, tokens *auth.TokenManager) *AdminHandler {
	return &AdminHandler{cfg: cfg, tokens: tokens}
}

// Login POST /api/admin/login.
func (h *AdminHandler) Login(c *fiber.Ctx) error {
	if h.cfg.AdminPasswordHash == "" {
		return apperrors.NewForbidden("admin login is not configured")
	}

	var req dto.AdminLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Password == "" {
		return apperrors.NewValidationError("password required", nil)
	}

	if err := auth.ComparePassword(h.cfg.AdminPasswordHash, req.Password); err != nil {
		return apperrors.NewUnauthorized("invalid credentials")
	}

	token, expiresAt, err := h.tokens.GenerateAdminToken()
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	return c.JSON(dto.AdminLoginResponse{Token: token, ExpiresAt: expiresAt})
}
