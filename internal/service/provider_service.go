package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/provider-directory/internal/domain"
	"github.com/spec-kit/provider-directory/internal/repository"
	"github.com/spec-kit/provider-directory/internal/storage"
	apperrors "github.com/spec-kit/provider-directory/pkg/util"
)

// MaxImageBytes is the upload size ceiling.
const MaxImageBytes = 5 << 20

// allowedImageExtensions mirrors the accepted upload types. Both the file
// extension and, when present, the content type must match.
var allowedImageExtensions = map[string]struct{}{
	"jpeg": {},
	"jpg":  {},
	"png":  {},
	"gif":  {},
}

var allowedImageContentTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/jpg":  {},
	"image/png":  {},
	"image/gif":  {},
}

const notFoundMessage = "Hizmet sağlayıcı bulunamadı"

// ProviderService is the query/filter gateway: it translates request
// parameters into exactly one store query per read, owns the write paths
// and enforces the visibility invariant for unapproved records.
type ProviderService struct {
	store    repository.ProviderStore
	objects  storage.ObjectStorage
	logger   *zap.Logger
	validate *validator.Validate
}

// Dependencies bundles collaborators for the gateway.
type Dependencies struct {
	Store   repository.ProviderStore
	Objects storage.ObjectStorage
	Logger  *zap.Logger
}

// NewProviderService constructs the gateway.
func NewProviderService(deps Dependencies) *ProviderService {
	return &ProviderService{
		store:    deps.Store,
		objects:  deps.Objects,
		logger:   deps.Logger,
		validate: validator.New(),
	}
}

// ApplicationInput describes a public "apply" submission. The source never
// validated email format beyond presence; this keeps that contract.
type ApplicationInput struct {
	Name        string `validate:"required"`
	Email       string `validate:"required"`
	Phone       string `validate:"required"`
	Service     string `validate:"required"`
	Category    string `validate:"required"`
	Description string `validate:"required"`
	ServiceArea string `validate:"required"`
	Country     string `validate:"required"`
}

// UpdateInput describes a partial update; nil fields are left untouched.
type UpdateInput struct {
	Name        *string
	Email       *string
	Phone       *string
	Service     *string
	Category    *string
	Description *string
	ServiceArea *string
	Country     *string
	Approved    *bool
}

// ImageUpload carries an inbound image file.
type ImageUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Content     io.Reader
}

// ListFilter captures the browse parameters. Nil fields impose no
// constraint. SearchTerm is applied in memory after the store query.
type ListFilter struct {
	Country    *string
	Category   *string
	Approved   *bool
	State      *string
	SearchTerm *string
}

// List runs one store query for the composed equality filters, then applies
// the free-text search as a post-filter. Anonymous callers only ever see
// approved records: their approved constraint is coerced to true no matter
// what the query string said.
func (s *ProviderService) List(ctx context.Context, filter ListFilter, moderator bool) ([]domain.Provider, error) {
	storeFilter := repository.Filter{
		Category: filter.Category,
		Approved: filter.Approved,
		State:    filter.State,
	}
	if filter.Country != nil {
		country := domain.Country(*filter.Country)
		storeFilter.Country = &country
	}
	if !moderator {
		approved := true
		storeFilter.Approved = &approved
	}

	providers, err := s.store.Query(ctx, storeFilter)
	if err != nil {
		return nil, s.storeFailure("query providers", err)
	}

	if filter.SearchTerm == nil || strings.TrimSpace(*filter.SearchTerm) == "" {
		return providers, nil
	}

	term := strings.ToLower(strings.TrimSpace(*filter.SearchTerm))
	matched := make([]domain.Provider, 0, len(providers))
	for _, provider := range providers {
		if matchesSearch(provider, term) {
			matched = append(matched, provider)
		}
	}
	return matched, nil
}

// Get looks up a single record. Unapproved records stay invisible to
// anonymous callers and answer NotFound.
func (s *ProviderService) Get(ctx context.Context, id string, moderator bool) (*domain.Provider, error) {
	provider, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound(notFoundMessage)
		}
		return nil, s.storeFailure("get provider", err)
	}
	if !provider.Approved && !moderator {
		return nil, apperrors.NewNotFound(notFoundMessage)
	}
	return provider, nil
}

// Apply creates a pending listing from a public submission. An invalid
// upload fails the whole create: no record is written and no object stored.
func (s *ProviderService) Apply(ctx context.Context, input ApplicationInput, upload *ImageUpload) (*domain.Provider, error) {
	if err := s.validateApplication(input); err != nil {
		return nil, err
	}

	record := domain.ProviderInput{
		Name:        strings.TrimSpace(input.Name),
		Email:       strings.TrimSpace(input.Email),
		Phone:       strings.TrimSpace(input.Phone),
		Service:     strings.TrimSpace(input.Service),
		Category:    input.Category,
		Description: strings.TrimSpace(input.Description),
		ServiceArea: strings.TrimSpace(input.ServiceArea),
		Country:     domain.Country(input.Country),
	}

	if upload != nil {
		url, err := s.storeImage(ctx, upload)
		if err != nil {
			return nil, err
		}
		record.Image = &url
	}

	provider, err := s.store.Insert(ctx, record)
	if err != nil {
		return nil, s.storeFailure("insert provider", err)
	}

	s.logger.Info("provider application received",
		zap.String("id", provider.ID),
		zap.String("category", provider.Category),
		zap.String("country", string(provider.Country)),
	)
	return provider, nil
}

// Update merges a partial field set into an existing record. The minimal
// moderation diff {approved:true} is an ordinary update.
func (s *ProviderService) Update(ctx context.Context, id string, input UpdateInput, upload *ImageUpload) (*domain.Provider, error) {
	patch := domain.ProviderPatch{
		Name:        input.Name,
		Email:       input.Email,
		Phone:       input.Phone,
		Service:     input.Service,
		Description: input.Description,
		ServiceArea: input.ServiceArea,
		Approved:    input.Approved,
	}
	if input.Category != nil {
		if !domain.ValidCategory(*input.Category) {
			return nil, apperrors.NewValidationError("unknown category", map[string]any{"category": *input.Category})
		}
		patch.Category = input.Category
	}
	if input.Country != nil {
		country := domain.Country(*input.Country)
		if !country.Valid() {
			return nil, apperrors.NewValidationError("unknown country", map[string]any{"country": *input.Country})
		}
		patch.Country = &country
	}

	if upload != nil {
		url, err := s.storeImage(ctx, upload)
		if err != nil {
			return nil, err
		}
		patch.Image = &url
	}

	if patch.IsZero() {
		return nil, apperrors.NewValidationError("no fields to update", nil)
	}

	provider, err := s.store.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound(notFoundMessage)
		}
		return nil, s.storeFailure("update provider", err)
	}
	return provider, nil
}

// Approve performs the pending -> approved transition.
func (s *ProviderService) Approve(ctx context.Context, id string) (*domain.Provider, error) {
	approved := true
	return s.Update(ctx, id, UpdateInput{Approved: &approved}, nil)
}

// Delete removes a record permanently. There is no reject transition
// distinct from delete and no recovery path.
func (s *ProviderService) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NewNotFound(notFoundMessage)
		}
		return s.storeFailure("delete provider", err)
	}
	return nil
}

// Categories exposes the static vocabulary for the filter UI.
func (s *ProviderService) Categories() []string {
	return domain.Categories()
}

func (s *ProviderService) validateApplication(input ApplicationInput) error {
	if err := s.validate.Struct(input); err != nil {
		details := map[string]any{}
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			for _, fe := range fieldErrs {
				details[fe.Field()] = "required"
			}
		}
		return apperrors.NewValidationError("missing required fields", details)
	}
	if !domain.Country(input.Country).Valid() {
		return apperrors.NewValidationError("unknown country", map[string]any{"country": input.Country})
	}
	if !domain.ValidCategory(input.Category) {
		return apperrors.NewValidationError("unknown category", map[string]any{"category": input.Category})
	}
	return nil
}

// storeImage validates the upload against the type and size policy, then
// hands it to object storage and returns the stable URL.
func (s *ProviderService) storeImage(ctx context.Context, upload *ImageUpload) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(upload.Filename), "."))
	if _, ok := allowedImageExtensions[ext]; !ok {
		return "", apperrors.NewValidationError("Sadece resim dosyaları yüklenebilir", map[string]any{"filename": upload.Filename})
	}
	if upload.ContentType != "" {
		if _, ok := allowedImageContentTypes[strings.ToLower(upload.ContentType)]; !ok {
			return "", apperrors.NewValidationError("Sadece resim dosyaları yüklenebilir", map[string]any{"contentType": upload.ContentType})
		}
	}
	if upload.Size > MaxImageBytes {
		return "", apperrors.NewValidationError("Dosya boyutu 5MB sınırını aşıyor", map[string]any{"size": upload.Size})
	}

	key := fmt.Sprintf("%d-%s.%s", time.Now().UnixMilli(), uuid.NewString(), ext)
	url, err := s.objects.Put(ctx, key, upload.ContentType, upload.Content)
	if err != nil {
		s.logger.Error("image upload failed", zap.String("key", key), zap.Error(err))
		return "", apperrors.NewInternalError(err)
	}
	return url, nil
}

func (s *ProviderService) storeFailure(op string, err error) error {
	s.logger.Error("store operation failed", zap.String("op", op), zap.Error(err))
	return apperrors.NewStoreUnavailable(err)
}

func matchesSearch(provider domain.Provider, term string) bool {
	return strings.Contains(strings.ToLower(provider.Name), term) ||
		strings.Contains(strings.ToLower(provider.Service), term) ||
		strings.Contains(strings.ToLower(provider.ServiceArea), term)
}
