package domain

import "time"

// Country enumerates the markets the directory serves.
type Country string

const (
	CountryUSA    Country = "USA"
	CountryCanada Country = "Canada"
)

// Valid reports whether the value is a known country.
func (c Country) Valid() bool {
	return c == CountryUSA || c == CountryCanada
}

// Provider is the directory aggregate: one listing per service provider.
// JSON field names follow the public API contract.
type Provider struct {
	ID          string    `json:"_id" firestore:"-"`
	Name        string    `json:"name" firestore:"name"`
	Email       string    `json:"email" firestore:"email"`
	Phone       string    `json:"phone" firestore:"phone"`
	Service     string    `json:"service" firestore:"service"`
	Category    string    `json:"category" firestore:"category"`
	Description string    `json:"description" firestore:"description"`
	ServiceArea string    `json:"serviceArea" firestore:"serviceArea"`
	Country     Country   `json:"country" firestore:"country"`
	Image       *string   `json:"image" firestore:"image"`
	Approved    bool      `json:"approved" firestore:"approved"`
	CreatedAt   time.Time `json:"createdAt" firestore:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" firestore:"updatedAt"`
}

// ProviderInput carries the caller-supplied fields for a new listing.
// Moderation state and timestamps are never caller-supplied: the store
// forces approved=false and stamps both timestamps on insert.
type ProviderInput struct {
	Name        string
	Email       string
	Phone       string
	Service     string
	Category    string
	Description string
	ServiceArea string
	Country     Country
	Image       *string
}

// ProviderPatch describes a partial update. Nil fields are left untouched.
type ProviderPatch struct {
	Name        *string
	Email       *string
	Phone       *string
	Service     *string
	Category    *string
	Description *string
	ServiceArea *string
	Country     *Country
	Image       *string
	Approved    *bool
}

// IsZero reports whether the patch changes nothing.
func (p ProviderPatch) IsZero() bool {
	return p.Name == nil && p.Email == nil && p.Phone == nil &&
		p.Service == nil && p.Category == nil && p.Description == nil &&
		p.ServiceArea == nil && p.Country == nil && p.Image == nil &&
		p.Approved == nil
}

// Apply merges the patch into the provider in place.
func (p ProviderPatch) Apply(provider *Provider) {
	if p.Name != nil {
		provider.Name = *p.Name
	}
	if p.Email != nil {
		provider.Email = *p.Email
	}
	if p.Phone != nil {
		provider.Phone = *p.Phone
	}
	if p.Service != nil {
		provider.Service = *p.Service
	}
	if p.Category != nil {
		provider.Category = *p.Category
	}
	if p.Description != nil {
		provider.Description = *p.Description
	}
	if p.ServiceArea != nil {
		provider.ServiceArea = *p.ServiceArea
	}
	if p.Country != nil {
		provider.Country = *p.Country
	}
	if p.Image != nil {
		provider.Image = p.Image
	}
	if p.Approved != nil {
		provider.Approved = *p.Approved
	}
}
