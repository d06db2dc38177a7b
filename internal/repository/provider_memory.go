package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/provider-directory/internal/domain"
)

// MemoryProviderStore is an in-process ProviderStore used by tests and by
// dev runs where no backing store is configured. It honors the same filter
// and ordering contract as the real backends.
type MemoryProviderStore struct {
	mu       sync.RWMutex
	items    map[string]domain.Provider
	now      func() time.Time
	lastTime time.Time
}

// NewMemoryProviderStore creates an empty store.
func NewMemoryProviderStore() *MemoryProviderStore {
	return &MemoryProviderStore{
		items: make(map[string]domain.Provider),
		now:   time.Now,
	}
}

// timestamp returns a strictly increasing clock reading. createdAt is the
// sole sort key, so two inserts in the same instant must not tie.
func (s *MemoryProviderStore) timestamp() time.Time {
	t := s.now().UTC()
	if !t.After(s.lastTime) {
		t = s.lastTime.Add(time.Nanosecond)
	}
	s.lastTime = t
	return t
}

func (s *MemoryProviderStore) Insert(ctx context.Context, input domain.ProviderInput) (*domain.Provider, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.timestamp()
	provider := domain.Provider{
		ID:          uuid.NewString(),
		Name:        input.Name,
		Email:       input.Email,
		Phone:       input.Phone,
		Service:     input.Service,
		Category:    input.Category,
		Description: input.Description,
		ServiceArea: input.ServiceArea,
		Country:     input.Country,
		Image:       input.Image,
		Approved:    false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.items[provider.ID] = provider
	return &provider, nil
}

func (s *MemoryProviderStore) GetByID(ctx context.Context, id string) (*domain.Provider, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	provider, ok := s.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &provider, nil
}

func (s *MemoryProviderStore) Query(ctx context.Context, filter Filter) ([]domain.Provider, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.Provider, 0)
	for _, provider := range s.items {
		if filter.Country != nil && provider.Country != *filter.Country {
			continue
		}
		if filter.Category != nil && provider.Category != *filter.Category {
			continue
		}
		if filter.Approved != nil && provider.Approved != *filter.Approved {
			continue
		}
		if !filter.MatchesState(provider.ServiceArea) {
			continue
		}
		result = append(result, provider)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (s *MemoryProviderStore) Update(ctx context.Context, id string, patch domain.ProviderPatch) (*domain.Provider, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	provider, ok := s.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	patch.Apply(&provider)
	provider.UpdatedAt = s.timestamp()
	s.items[id] = provider
	return &provider, nil
}

func (s *MemoryProviderStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[id]; !ok {
		return ErrNotFound
	}
	delete(s.items, id)
	return nil
}
