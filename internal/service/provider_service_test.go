package service

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/provider-directory/internal/repository"
	apperrors "github.com/spec-kit/provider-directory/pkg/util"
)

type fakeObjectStorage struct {
	keys []string
}

func (f *fakeObjectStorage) Put(ctx context.Context, key, contentType string, content io.Reader) (string, error) {
	_, _ = io.Copy(io.Discard, content)
	f.keys = append(f.keys, key)
	return "/uploads/" + key, nil
}

func newTestService() (*ProviderService, *repository.MemoryProviderStore, *fakeObjectStorage) {
	store := repository.NewMemoryProviderStore()
	objects := &fakeObjectStorage{}
	svc := NewProviderService(Dependencies{
		Store:   store,
		Objects: objects,
		Logger:  zap.NewNop(),
	})
	return svc, store, objects
}

func validApplication() ApplicationInput {
	return ApplicationInput{
		Name:        "Ahmet Usta",
		Email:       "ahmet@example.com",
		Phone:       "555-0100",
		Service:     "Su tesisatı tamiri",
		Category:    "Tesisat",
		Description: "20 yıllık tecrübe",
		ServiceArea: "Paterson, New Jersey",
		Country:     "USA",
	}
}

func errCode(t *testing.T, err error) string {
	t.Helper()
	require.Error(t, err)
	return apperrors.ToDomainError(err).Code
}

func TestApplyForcesPending(t *testing.T) {
	svc, _, _ := newTestService()

	provider, err := svc.Apply(context.Background(), validApplication(), nil)
	require.NoError(t, err)

	assert.False(t, provider.Approved, "every application starts pending")
	assert.Nil(t, provider.Image)
	assert.NotEmpty(t, provider.ID)
}

func TestApplyValidation(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	t.Run("missing required fields", func(t *testing.T) {
		input := validApplication()
		input.Name = ""
		input.Phone = ""
		_, err := svc.Apply(ctx, input, nil)
		assert.Equal(t, "VALIDATION_FAILED", errCode(t, err))
	})

	t.Run("unknown country", func(t *testing.T) {
		input := validApplication()
		input.Country = "Germany"
		_, err := svc.Apply(ctx, input, nil)
		assert.Equal(t, "VALIDATION_FAILED", errCode(t, err))
	})

	t.Run("unknown category", func(t *testing.T) {
		input := validApplication()
		input.Category = "Plumbing"
		_, err := svc.Apply(ctx, input, nil)
		assert.Equal(t, "VALIDATION_FAILED", errCode(t, err))
	})
}

func TestApplyImagePolicy(t *testing.T) {
	ctx := context.Background()

	t.Run("valid upload sets the stored URL", func(t *testing.T) {
		svc, _, objects := newTestService()
		upload := &ImageUpload{
			Filename:    "dukkan.jpg",
			ContentType: "image/jpeg",
			Size:        1024,
			Content:     strings.NewReader("fake image bytes"),
		}
		provider, err := svc.Apply(ctx, validApplication(), upload)
		require.NoError(t, err)
		require.NotNil(t, provider.Image)
		assert.True(t, strings.HasPrefix(*provider.Image, "/uploads/"))
		assert.Len(t, objects.keys, 1)
		assert.True(t, strings.HasSuffix(objects.keys[0], ".jpg"))
	})

	t.Run("oversized upload fails the whole create", func(t *testing.T) {
		svc, _, objects := newTestService()
		upload := &ImageUpload{
			Filename:    "dukkan.jpg",
			ContentType: "image/jpeg",
			Size:        6 << 20,
			Content:     strings.NewReader("too big"),
		}
		_, err := svc.Apply(ctx, validApplication(), upload)
		assert.Equal(t, "VALIDATION_FAILED", errCode(t, err))
		assert.Empty(t, objects.keys, "nothing stored")

		listed, err := svc.List(ctx, ListFilter{}, true)
		require.NoError(t, err)
		assert.Empty(t, listed, "no record written")
	})

	t.Run("disallowed type fails the whole create", func(t *testing.T) {
		svc, _, objects := newTestService()
		upload := &ImageUpload{
			Filename:    "cv.pdf",
			ContentType: "application/pdf",
			Size:        1024,
			Content:     strings.NewReader("%PDF-"),
		}
		_, err := svc.Apply(ctx, validApplication(), upload)
		assert.Equal(t, "VALIDATION_FAILED", errCode(t, err))
		assert.Empty(t, objects.keys)
	})

	t.Run("mismatched content type is rejected", func(t *testing.T) {
		svc, _, _ := newTestService()
		upload := &ImageUpload{
			Filename:    "dukkan.png",
			ContentType: "application/octet-stream",
			Size:        1024,
			Content:     strings.NewReader("bytes"),
		}
		_, err := svc.Apply(ctx, validApplication(), upload)
		assert.Equal(t, "VALIDATION_FAILED", errCode(t, err))
	})
}

func TestModerationLifecycle(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	provider, err := svc.Apply(ctx, validApplication(), nil)
	require.NoError(t, err)
	require.False(t, provider.Approved)

	country := "USA"
	pendingFalse := false
	pendingTrue := true

	pending, err := svc.List(ctx, ListFilter{Country: &country, Approved: &pendingFalse}, true)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, provider.ID, pending[0].ID)

	approved, err := svc.Approve(ctx, provider.ID)
	require.NoError(t, err)
	assert.True(t, approved.Approved)
	assert.True(t, approved.UpdatedAt.After(provider.UpdatedAt))

	live, err := svc.List(ctx, ListFilter{Country: &country, Approved: &pendingTrue}, true)
	require.NoError(t, err)
	require.Len(t, live, 1)
	assert.Equal(t, provider.ID, live[0].ID)

	stillPending, err := svc.List(ctx, ListFilter{Approved: &pendingFalse}, true)
	require.NoError(t, err)
	assert.Empty(t, stillPending)
}

func TestPublicVisibility(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	provider, err := svc.Apply(ctx, validApplication(), nil)
	require.NoError(t, err)

	t.Run("anonymous list never sees pending records", func(t *testing.T) {
		pendingFalse := false
		result, err := svc.List(ctx, ListFilter{Approved: &pendingFalse}, false)
		require.NoError(t, err)
		assert.Empty(t, result, "approved=false is coerced to true for anonymous callers")
	})

	t.Run("anonymous get answers 404 for pending records", func(t *testing.T) {
		_, err := svc.Get(ctx, provider.ID, false)
		assert.Equal(t, "NOT_FOUND", errCode(t, err))
	})

	t.Run("moderator sees the pending record", func(t *testing.T) {
		got, err := svc.Get(ctx, provider.ID, true)
		require.NoError(t, err)
		assert.Equal(t, provider.ID, got.ID)
	})

	t.Run("approval makes the record publicly visible", func(t *testing.T) {
		_, err := svc.Approve(ctx, provider.ID)
		require.NoError(t, err)

		result, err := svc.List(ctx, ListFilter{}, false)
		require.NoError(t, err)
		require.Len(t, result, 1)

		got, err := svc.Get(ctx, provider.ID, false)
		require.NoError(t, err)
		assert.True(t, got.Approved)
	})
}

func TestSearchComposesWithFilters(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	electrician := validApplication()
	electrician.Name = "Mehmet Elektrik"
	electrician.Service = "Elektrik tesisatı"
	electrician.Category = "Elektrikçi"
	first, err := svc.Apply(ctx, electrician, nil)
	require.NoError(t, err)

	cleaner := validApplication()
	cleaner.Name = "Ayşe Temizlik"
	cleaner.Service = "Ev temizliği"
	cleaner.Category = "Temizlik"
	cleaner.Country = "Canada"
	cleaner.ServiceArea = "Toronto"
	second, err := svc.Apply(ctx, cleaner, nil)
	require.NoError(t, err)

	for _, p := range []string{first.ID, second.ID} {
		_, err := svc.Approve(ctx, p)
		require.NoError(t, err)
	}

	t.Run("matches name case-insensitively", func(t *testing.T) {
		term := "MEHMET"
		result, err := svc.List(ctx, ListFilter{SearchTerm: &term}, false)
		require.NoError(t, err)
		require.Len(t, result, 1)
		assert.Equal(t, first.ID, result[0].ID)
	})

	t.Run("matches serviceArea", func(t *testing.T) {
		term := "toronto"
		result, err := svc.List(ctx, ListFilter{SearchTerm: &term}, false)
		require.NoError(t, err)
		require.Len(t, result, 1)
		assert.Equal(t, second.ID, result[0].ID)
	})

	t.Run("composes with equality filters using AND", func(t *testing.T) {
		term := "temizlik"
		country := "USA"
		result, err := svc.List(ctx, ListFilter{Country: &country, SearchTerm: &term}, false)
		require.NoError(t, err)
		assert.Empty(t, result, "search term matches a Canadian record only")
	})

	t.Run("no match returns empty, not everything", func(t *testing.T) {
		term := "marangoz"
		result, err := svc.List(ctx, ListFilter{SearchTerm: &term}, false)
		require.NoError(t, err)
		assert.Empty(t, result)
	})
}

func TestListOrdering(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	older, err := svc.Apply(ctx, validApplication(), nil)
	require.NoError(t, err)
	newer, err := svc.Apply(ctx, validApplication(), nil)
	require.NoError(t, err)

	result, err := svc.List(ctx, ListFilter{}, true)
	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, newer.ID, result[0].ID, "most recent first")
	assert.Equal(t, older.ID, result[1].ID)
}

func TestUpdatePartialMerge(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	provider, err := svc.Apply(ctx, validApplication(), nil)
	require.NoError(t, err)

	t.Run("merges only provided fields", func(t *testing.T) {
		phone := "555-0199"
		updated, err := svc.Update(ctx, provider.ID, UpdateInput{Phone: &phone}, nil)
		require.NoError(t, err)
		assert.Equal(t, "555-0199", updated.Phone)
		assert.Equal(t, provider.Name, updated.Name)
		assert.False(t, updated.Approved, "moderation flag untouched")
	})

	t.Run("rejects unknown category", func(t *testing.T) {
		category := "Plumbing"
		_, err := svc.Update(ctx, provider.ID, UpdateInput{Category: &category}, nil)
		assert.Equal(t, "VALIDATION_FAILED", errCode(t, err))
	})

	t.Run("rejects empty patch", func(t *testing.T) {
		_, err := svc.Update(ctx, provider.ID, UpdateInput{}, nil)
		assert.Equal(t, "VALIDATION_FAILED", errCode(t, err))
	})

	t.Run("unknown id", func(t *testing.T) {
		phone := "555-0199"
		_, err := svc.Update(ctx, "missing", UpdateInput{Phone: &phone}, nil)
		assert.Equal(t, "NOT_FOUND", errCode(t, err))
	})
}

func TestDeleteIsTerminal(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	provider, err := svc.Apply(ctx, validApplication(), nil)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, provider.ID))

	_, err = svc.Get(ctx, provider.ID, true)
	assert.Equal(t, "NOT_FOUND", errCode(t, err))

	err = svc.Delete(ctx, provider.ID)
	assert.Equal(t, "NOT_FOUND", errCode(t, err), "second delete reports NotFound, not a crash")
}

func TestCategoriesStatic(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	before := svc.Categories()

	// The vocabulary is configuration, not data: inserting records in a
	// category absent from the list must not change it, and vice versa.
	_, err := svc.Apply(ctx, validApplication(), nil)
	require.NoError(t, err)

	assert.Equal(t, before, svc.Categories())
	assert.Contains(t, svc.Categories(), "Tesisat")
}
