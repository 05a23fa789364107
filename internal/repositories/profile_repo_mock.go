package repositories

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MijaMange/showreel-saas/internal/models"
	"github.com/MijaMange/showreel-saas/pkg/apperr"
)

// MockProfileRepository is an in-memory implementation of ProfileRepository.
type MockProfileRepository struct {
	profiles map[string]models.Profile // keyed by slug
	mu       sync.Mutex
}

// NewMockProfileRepository creates a new instance of MockProfileRepository.
func NewMockProfileRepository() *MockProfileRepository {
	return &MockProfileRepository{
		profiles: make(map[string]models.Profile),
	}
}

// FindBySlug returns a profile by its slug.
func (r *MockProfileRepository) FindBySlug(slug string, publicOnly bool) (*models.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.profiles[slug]
	if !ok || (publicOnly && !p.IsPublished) {
		return nil, apperr.ErrNotFound
	}
	return &p, nil
}

// FindOwned returns a profile by slug if it belongs to the owner.
func (r *MockProfileRepository) FindOwned(userID, slug string) (*models.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.profiles[slug]
	if !ok || p.UserID != userID {
		return nil, apperr.ErrNotFound
	}
	return &p, nil
}

// FindByOwner returns the owner's most recently updated profile.
func (r *MockProfileRepository) FindByOwner(userID string) (*models.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.findByOwnerLocked(userID)
}

func (r *MockProfileRepository) findByOwnerLocked(userID string) (*models.Profile, error) {
	var found *models.Profile
	for slug := range r.profiles {
		p := r.profiles[slug]
		if p.UserID != userID {
			continue
		}
		if found == nil || p.UpdatedAt.After(found.UpdatedAt) {
			found = &p
		}
	}
	if found == nil {
		return nil, apperr.ErrNotFound
	}
	return found, nil
}

// Ensure returns the owner's profile, creating one with a generated slug when
// missing. Safe for concurrent callers.
func (r *MockProfileRepository) Ensure(userID, emailHint string) (*models.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, err := r.findByOwnerLocked(userID); err == nil {
		return existing, nil
	}

	local := emailLocalPart(emailHint)
	base := Slugify(local)
	if base == "" {
		base = "portfolio"
	}
	name := local
	if name == "" {
		name = "Creator"
	}

	now := time.Now().UTC()
	p := models.Profile{
		ID:          uuid.New().String(),
		UserID:      userID,
		Slug:        fmt.Sprintf("%s-%s", base, randomToken(4)),
		Name:        name,
		Role:        "Creator",
		Theme:       models.ThemeCinematic,
		HeroStyle:   models.HeroStyleCover,
		WorksLayout: models.WorksLayoutGrid,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	r.profiles[p.Slug] = p
	return &p, nil
}

// Upsert writes the profile keyed by slug, preserving the stored identity on
// conflict and strictly advancing updated_at.
func (r *MockProfileRepository) Upsert(profile *models.Profile) (*models.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p := *profile
	p.HeroImage = strings.TrimSpace(p.HeroImage)
	now := time.Now().UTC()
	if existing, ok := r.profiles[p.Slug]; ok {
		p.ID = existing.ID
		p.UserID = existing.UserID
		p.CreatedAt = existing.CreatedAt
		if !now.After(existing.UpdatedAt) {
			now = existing.UpdatedAt.Add(time.Millisecond)
		}
	} else {
		if p.ID == "" {
			p.ID = uuid.New().String()
		}
		p.CreatedAt = now
	}
	p.UpdatedAt = now
	r.profiles[p.Slug] = p
	return &p, nil
}

// Update applies a partial change to the owner's profile.
func (r *MockProfileRepository) Update(userID string, fields models.ProfileUpdate) (*models.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, err := r.findByOwnerLocked(userID)
	if err != nil {
		return nil, err
	}
	updated := *p
	if fields.Name != nil {
		updated.Name = *fields.Name
	}
	if fields.Role != nil {
		updated.Role = *fields.Role
	}
	if fields.Bio != nil {
		updated.Bio = *fields.Bio
	}
	if fields.Theme != nil {
		updated.Theme = *fields.Theme
	}
	if fields.HeroImage != nil {
		updated.HeroImage = strings.TrimSpace(*fields.HeroImage)
	}
	if fields.HeroStyle != nil {
		updated.HeroStyle = *fields.HeroStyle
	}
	if fields.WorksLayout != nil {
		updated.WorksLayout = *fields.WorksLayout
	}
	if fields.Location != nil {
		updated.Location = *fields.Location
	}
	if fields.Availability != nil {
		updated.Availability = *fields.Availability
	}
	if fields.Tags != nil {
		updated.Tags = *fields.Tags
	}
	if fields.Links != nil {
		updated.Links = *fields.Links
	}
	if fields.IsPublished != nil {
		updated.IsPublished = *fields.IsPublished
	}
	updated.UpdatedAt = time.Now().UTC()
	if !updated.UpdatedAt.After(p.UpdatedAt) {
		updated.UpdatedAt = p.UpdatedAt.Add(time.Millisecond)
	}
	r.profiles[updated.Slug] = updated
	return &updated, nil
}

// SetPublished flips the visibility flag on the owner's profile.
func (r *MockProfileRepository) SetPublished(userID string, published bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, err := r.findByOwnerLocked(userID)
	if err != nil {
		return err
	}
	updated := *p
	updated.IsPublished = published
	updated.UpdatedAt = time.Now().UTC()
	r.profiles[updated.Slug] = updated
	return nil
}
