package repositories

import (
	"github.com/MijaMange/showreel-saas/internal/models"
)

// ProfileRepository defines the interface for profile data access against the
// remote store. Lookups return apperr.ErrNotFound when no row matches; any
// other error means the backend could not be reached or rejected the call.
type ProfileRepository interface {
	// FindBySlug looks a profile up by its unique slug. With publicOnly set,
	// unpublished profiles are invisible and yield apperr.ErrNotFound.
	FindBySlug(slug string, publicOnly bool) (*models.Profile, error)
	// FindOwned looks up the profile with the given slug only if it belongs
	// to the given owner, regardless of publish state.
	FindOwned(userID, slug string) (*models.Profile, error)
	// FindByOwner returns the owner's profile, most recently updated first.
	FindByOwner(userID string) (*models.Profile, error)
	// Ensure returns the owner's existing profile or creates one with a
	// generated slug. A concurrent Ensure for the same owner must not create
	// a second profile.
	Ensure(userID, emailHint string) (*models.Profile, error)
	// Upsert writes the full field set keyed by slug, degrading to the base
	// column set if the backend rejects newer columns. Returns the stored row.
	Upsert(profile *models.Profile) (*models.Profile, error)
	// Update applies a partial change scoped by owner identity, with the same
	// schema-tolerant strategy as Upsert.
	Update(userID string, fields models.ProfileUpdate) (*models.Profile, error)
	// SetPublished flips the visibility flag only.
	SetPublished(userID string, published bool) error
}
