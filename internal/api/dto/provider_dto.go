package dto

import (
	"time"

	"github.com/spec-kit/provider-directory/internal/domain"
)

// CreateProviderRequest payload; accepted as JSON or multipart form fields.
type CreateProviderRequest struct {
	Name        string `json:"name" form:"name"`
	Email       string `json:"email" form:"email"`
	Phone       string `json:"phone" form:"phone"`
	Service     string `json:"service" form:"service"`
	Category    string `json:"category" form:"category"`
	Description string `json:"description" form:"description"`
	ServiceArea string `json:"serviceArea" form:"serviceArea"`
	Country     string `json:"country" form:"country"`
}

// UpdateProviderRequest carries a partial field set; absent fields are left
// untouched. The admin panel's minimal diff is {"approved": true}.
type UpdateProviderRequest struct {
	Name        *string `json:"name" form:"name"`
	Email       *string `json:"email" form:"email"`
	Phone       *string `json:"phone" form:"phone"`
	Service     *string `json:"service" form:"service"`
	Category    *string `json:"category" form:"category"`
	Description *string `json:"description" form:"description"`
	ServiceArea *string `json:"serviceArea" form:"serviceArea"`
	Country     *string `json:"country" form:"country"`
	Approved    *bool   `json:"approved" form:"approved"`
}

// ProviderMessageResponse is the write-path envelope.
type ProviderMessageResponse struct {
	Message  string           `json:"message"`
	Provider *domain.Provider `json:"provider,omitempty"`
}

// AdminLoginRequest payload.
type AdminLoginRequest struct {
	Password string `json:"password"`
}

// AdminLoginResponse carries the issued bearer token.
type AdminLoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}
