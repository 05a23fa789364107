package repositories

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MijaMange/showreel-saas/internal/models"
)

func newTestSeedStore(t *testing.T) *SeedStore {
	t.Helper()
	return NewSeedStore(filepath.Join(t.TempDir(), "seeds.db"))
}

func TestSeedStore_SeedsDemoCatalogOnFirstRun(t *testing.T) {
	store := newTestSeedStore(t)

	all := store.ListAll()
	assert.Len(t, all, 6)
	assert.True(t, store.Has("anna-example"))
	assert.True(t, store.Has("sara-example"))

	// Sorted by display name, case-insensitive.
	assert.Equal(t, "Anna Example", all[0].Name)
	assert.Equal(t, "Sara Holm", all[len(all)-1].Name)
}

func TestSeedStore_GetOrCreateSynthesizesGenericProfile(t *testing.T) {
	store := newTestSeedStore(t)

	assert.False(t, store.Has("unknown-slug"))
	p := store.GetOrCreate("unknown-slug")
	assert.Equal(t, "Unknown Slug", p.Name)
	assert.Equal(t, "Creator", p.Role)
	assert.Equal(t, "Welcome to my showreel.", p.Bio)
	assert.Equal(t, models.ThemeCinematic, p.Theme)

	// Idempotent synthesis: the second call returns the persisted entry.
	again := store.GetOrCreate("unknown-slug")
	assert.Equal(t, p, again)
	assert.True(t, store.Has("unknown-slug"))
}

func TestSeedStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seeds.db")

	store := NewSeedStore(path)
	store.GetOrCreate("jane-doe")

	reopened := NewSeedStore(path)
	assert.True(t, reopened.Has("jane-doe"))
	assert.Equal(t, "Jane Doe", reopened.GetOrCreate("jane-doe").Name)
}

func TestSeedStore_UpgradeBackfillsWellKnownSlugs(t *testing.T) {
	store := newTestSeedStore(t)

	// First-run seeding stores the basic entries; the constructor's upgrade
	// pass has already backfilled the richer fields.
	anna := store.GetOrCreate("anna-example")
	assert.NotEmpty(t, anna.HeroImage)
	assert.NotEmpty(t, anna.Works)
	assert.NotEmpty(t, anna.Location)
	assert.NotEmpty(t, anna.Tags)

	// Upgrade is a no-op after convergence.
	store.Upgrade()
	assert.Equal(t, anna, store.GetOrCreate("anna-example"))
}

func TestSeedStore_UpgradeKeepsCustomizedFields(t *testing.T) {
	store := newTestSeedStore(t)

	custom := store.GetOrCreate("anna-example")
	custom.HeroImage = "https://example.com/custom.jpg"
	custom.Tags = []string{"Custom"}
	store.Save(custom)

	store.Upgrade()
	after := store.GetOrCreate("anna-example")
	assert.Equal(t, "https://example.com/custom.jpg", after.HeroImage)
	assert.Equal(t, []string{"Custom"}, after.Tags)
}

func TestSeedStore_DegradesToMemoryWhenStorageUnavailable(t *testing.T) {
	// A path inside a missing directory cannot be opened; the store must
	// still serve seeds for the session instead of failing.
	store := NewSeedStore(filepath.Join(t.TempDir(), "missing", "nested", "seeds.db"))

	assert.True(t, store.degraded)
	assert.Len(t, store.ListAll(), 6)

	p := store.GetOrCreate("fresh-slug")
	assert.Equal(t, "Fresh Slug", p.Name)
	assert.True(t, store.Has("fresh-slug"))
}
