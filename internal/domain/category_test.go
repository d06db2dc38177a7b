package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategories(t *testing.T) {
	t.Run("returns the full ordered vocabulary", func(t *testing.T) {
		got := Categories()
		assert.Len(t, got, 13)
		assert.Equal(t, "Badana & Boya", got[0])
		assert.Equal(t, "Diğer Hizmetler", got[len(got)-1])
	})

	t.Run("has no duplicates", func(t *testing.T) {
		seen := map[string]bool{}
		for _, c := range Categories() {
			assert.False(t, seen[c], "duplicate category %q", c)
			seen[c] = true
		}
	})

	t.Run("callers cannot mutate the vocabulary", func(t *testing.T) {
		first := Categories()
		first[0] = "mutated"
		assert.Equal(t, "Badana & Boya", Categories()[0])
	})
}

func TestValidCategory(t *testing.T) {
	assert.True(t, ValidCategory("Tesisat"))
	assert.True(t, ValidCategory("Diğer Hizmetler"))
	assert.False(t, ValidCategory("tesisat"))
	assert.False(t, ValidCategory(""))
	assert.False(t, ValidCategory("Plumbing"))
}

func TestCountryValid(t *testing.T) {
	assert.True(t, CountryUSA.Valid())
	assert.True(t, CountryCanada.Valid())
	assert.False(t, Country("Germany").Valid())
	assert.False(t, Country("usa").Valid())
}

func TestProviderPatchApply(t *testing.T) {
	name := "Yeni İsim"
	approved := true
	provider := Provider{Name: "Eski İsim", Phone: "555-0100", Approved: false}

	patch := ProviderPatch{Name: &name, Approved: &approved}
	patch.Apply(&provider)

	assert.Equal(t, "Yeni İsim", provider.Name)
	assert.True(t, provider.Approved)
	assert.Equal(t, "555-0100", provider.Phone, "unlisted fields stay untouched")

	assert.True(t, ProviderPatch{}.IsZero())
	assert.False(t, patch.IsZero())
}
