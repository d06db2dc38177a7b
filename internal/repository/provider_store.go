package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/spec-kit/provider-directory/internal/domain"
)

// ErrNotFound is returned for lookups, updates and deletes on unknown ids.
var ErrNotFound = errors.New("provider not found")

// Filter restricts Query results. Nil fields impose no constraint; present
// fields are combined with logical AND. State matches the serviceArea field
// as a case-insensitive substring.
type Filter struct {
	Country  *domain.Country
	Category *string
	Approved *bool
	State    *string
}

// MatchesState evaluates the State constraint against a serviceArea value.
// Implementations without a native substring operator apply this predicate
// to fetched records so every backend honors the same contract.
func (f Filter) MatchesState(serviceArea string) bool {
	if f.State == nil {
		return true
	}
	state := strings.TrimSpace(*f.State)
	if state == "" {
		return true
	}
	return strings.Contains(strings.ToLower(serviceArea), strings.ToLower(state))
}

// ProviderStore persists provider listings.
//
// Insert assigns the id, forces approved=false and stamps both timestamps.
// Query returns records matching the conjunction of all present filter
// fields, always ordered by creation time descending.
type ProviderStore interface {
	Insert(ctx context.Context, input domain.ProviderInput) (*domain.Provider, error)
	GetByID(ctx context.Context, id string) (*domain.Provider, error)
	Query(ctx context.Context, filter Filter) ([]domain.Provider, error)
	Update(ctx context.Context, id string, patch domain.ProviderPatch) (*domain.Provider, error)
	Delete(ctx context.Context, id string) error
}
