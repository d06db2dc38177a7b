package repository

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/spec-kit/provider-directory/internal/domain"
)

// FirestoreProviderStore keeps listings in a single Firestore collection,
// one document per provider, the document id doubling as the record id.
type FirestoreProviderStore struct {
	client     *firestore.Client
	collection string
	now        func() time.Time
}

// NewFirestoreProviderStore wraps an existing client.
func NewFirestoreProviderStore(client *firestore.Client, collection string) *FirestoreProviderStore {
	return &FirestoreProviderStore{
		client:     client,
		collection: collection,
		now:        time.Now,
	}
}

func (s *FirestoreProviderStore) Insert(ctx context.Context, input domain.ProviderInput) (*domain.Provider, error) {
	doc := s.client.Collection(s.collection).NewDoc()
	now := s.now().UTC()
	provider := domain.Provider{
		ID:          doc.ID,
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
	if _, err := doc.Create(ctx, provider); err != nil {
		return nil, fmt.Errorf("create provider document: %w", err)
	}
	return &provider, nil
}

func (s *FirestoreProviderStore) GetByID(ctx context.Context, id string) (*domain.Provider, error) {
	snap, err := s.client.Collection(s.collection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get provider document: %w", err)
	}
	return snapToProvider(snap)
}

func (s *FirestoreProviderStore) Query(ctx context.Context, filter Filter) ([]domain.Provider, error) {
	query := s.client.Collection(s.collection).Query
	if filter.Country != nil {
		query = query.Where("country", "==", string(*filter.Country))
	}
	if filter.Category != nil {
		query = query.Where("category", "==", *filter.Category)
	}
	if filter.Approved != nil {
		query = query.Where("approved", "==", *filter.Approved)
	}
	query = query.OrderBy("createdAt", firestore.Desc)

	snaps, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("query providers: %w", err)
	}

	result := make([]domain.Provider, 0, len(snaps))
	for _, snap := range snaps {
		provider, err := snapToProvider(snap)
		if err != nil {
			return nil, err
		}
		// Firestore has no substring operator; the state constraint is
		// applied to the fetched snapshot with the shared predicate.
		if !filter.MatchesState(provider.ServiceArea) {
			continue
		}
		result = append(result, *provider)
	}
	return result, nil
}

func (s *FirestoreProviderStore) Update(ctx context.Context, id string, patch domain.ProviderPatch) (*domain.Provider, error) {
	updates := patchToUpdates(patch)
	updates = append(updates, firestore.Update{Path: "updatedAt", Value: s.now().UTC()})

	doc := s.client.Collection(s.collection).Doc(id)
	if _, err := doc.Update(ctx, updates); err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update provider document: %w", err)
	}
	snap, err := doc.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("reload provider document: %w", err)
	}
	return snapToProvider(snap)
}

func (s *FirestoreProviderStore) Delete(ctx context.Context, id string) error {
	doc := s.client.Collection(s.collection).Doc(id)
	// Firestore deletes are no-ops on missing documents; probe first so a
	// stale id reports NotFound instead of silently succeeding.
	if _, err := doc.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return ErrNotFound
		}
		return fmt.Errorf("get provider document: %w", err)
	}
	if _, err := doc.Delete(ctx); err != nil {
		return fmt.Errorf("delete provider document: %w", err)
	}
	return nil
}

func snapToProvider(snap *firestore.DocumentSnapshot) (*domain.Provider, error) {
	var provider domain.Provider
	if err := snap.DataTo(&provider); err != nil {
		return nil, fmt.Errorf("decode provider document %s: %w", snap.Ref.ID, err)
	}
	provider.ID = snap.Ref.ID
	return &provider, nil
}

func patchToUpdates(patch domain.ProviderPatch) []firestore.Update {
	updates := make([]firestore.Update, 0, 10)
	if patch.Name != nil {
		updates = append(updates, firestore.Update{Path: "name", Value: *patch.Name})
	}
	if patch.Email != nil {
		updates = append(updates, firestore.Update{Path: "email", Value: *patch.Email})
	}
	if patch.Phone != nil {
		updates = append(updates, firestore.Update{Path: "phone", Value: *patch.Phone})
	}
	if patch.Service != nil {
		updates = append(updates, firestore.Update{Path: "service", Value: *patch.Service})
	}
	if patch.Category != nil {
		updates = append(updates, firestore.Update{Path: "category", Value: *patch.Category})
	}
	if patch.Description != nil {
		updates = append(updates, firestore.Update{Path: "description", Value: *patch.Description})
	}
	if patch.ServiceArea != nil {
		updates = append(updates, firestore.Update{Path: "serviceArea", Value: *patch.ServiceArea})
	}
	if patch.Country != nil {
		updates = append(updates, firestore.Update{Path: "country", Value: string(*patch.Country)})
	}
	if patch.Image != nil {
		updates = append(updates, firestore.Update{Path: "image", Value: *patch.Image})
	}
	if patch.Approved != nil {
		updates = append(updates, firestore.Update{Path: "approved", Value: *patch.Approved})
	}
	return updates
}
