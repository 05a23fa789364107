package repositories

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/MijaMange/showreel-saas/internal/models"
	"github.com/MijaMange/showreel-saas/pkg/apperr"
)

// GORMProfileRepository is a GORM implementation of ProfileRepository against
// the remote store. Writes branch on the probed schema capabilities and keep
// a failure-triggered base-column retry as a last resort for backends whose
// schema lags the probe.
type GORMProfileRepository struct {
	db   *gorm.DB
	caps SchemaCapabilities
}

// NewGORMProfileRepository creates a new instance of GORMProfileRepository.
func NewGORMProfileRepository(db *gorm.DB, caps SchemaCapabilities) *GORMProfileRepository {
	return &GORMProfileRepository{
		db:   db,
		caps: caps,
	}
}

// findFirst runs the query and applies the duplicate-row tolerance rule:
// slug/owner uniqueness is the real invariant, so when the backend hands back
// more than one row we take the first in query order and warn instead of
// failing the read.
func (r *GORMProfileRepository) findFirst(label string, q *gorm.DB) (*models.Profile, error) {
	var rows []models.Profile
	if err := q.Limit(2).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to query profiles by %s: %w", label, err)
	}
	if len(rows) == 0 {
		return nil, apperr.ErrNotFound
	}
	if len(rows) > 1 {
		log.Printf("Multiple profiles found for %s - using first", label)
	}
	return &rows[0], nil
}

// FindBySlug retrieves a profile by its unique slug.
func (r *GORMProfileRepository) FindBySlug(slug string, publicOnly bool) (*models.Profile, error) {
	q := r.db.Where("slug = ?", slug)
	if publicOnly {
		q = q.Where("is_published = ?", true)
	}
	return r.findFirst(fmt.Sprintf("slug %s", slug), q)
}

// FindOwned retrieves a profile by slug scoped to its owner, ignoring the
// publish state.
func (r *GORMProfileRepository) FindOwned(userID, slug string) (*models.Profile, error) {
	q := r.db.Where("user_id = ? AND slug = ?", userID, slug)
	return r.findFirst(fmt.Sprintf("owner %s slug %s", userID, slug), q)
}

// FindByOwner retrieves the owner's profile, most recently updated first.
func (r *GORMProfileRepository) FindByOwner(userID string) (*models.Profile, error) {
	q := r.db.Where("user_id = ?", userID).Order("updated_at DESC")
	return r.findFirst(fmt.Sprintf("owner %s", userID), q)
}

// Ensure returns the owner's existing profile or creates one with a generated
// slug derived from the email hint plus a short random token. A concurrent
// Ensure that loses the race re-reads instead of erroring.
func (r *GORMProfileRepository) Ensure(userID, emailHint string) (*models.Profile, error) {
	existing, err := r.FindByOwner(userID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, apperr.ErrNotFound) {
		return nil, err
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
	profile := &models.Profile{
		ID:          uuid.New().String(),
		UserID:      userID,
		Slug:        fmt.Sprintf("%s-%s", base, randomToken(4)),
		Name:        name,
		Role:        "Creator",
		Bio:         "",
		Theme:       models.ThemeCinematic,
		HeroStyle:   models.HeroStyleCover,
		WorksLayout: models.WorksLayoutGrid,
		IsPublished: false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	tx := r.db
	if _, omitted := r.caps.supportedProfileColumns(); len(omitted) > 0 {
		tx = tx.Omit(omitted...)
	}
	if err := tx.Create(profile).Error; err != nil {
		if isDuplicateErr(err) {
			// Another Ensure for the same owner won the race; the existing
			// row is the success path.
			again, rerr := r.FindByOwner(userID)
			if rerr == nil {
				return again, nil
			}
		}
		return nil, fmt.Errorf("failed to create profile for user %s: %w", userID, err)
	}
	return profile, nil
}

// Upsert writes the profile keyed by slug. The first attempt carries every
// column the probed schema supports; if the backend still rejects it, a
// single retry with only the long-stable base columns is made before the
// error is surfaced as a rejected write.
func (r *GORMProfileRepository) Upsert(profile *models.Profile) (*models.Profile, error) {
	if profile.ID == "" {
		profile.ID = uuid.New().String()
	}
	if profile.Theme == "" {
		profile.Theme = models.ThemeCinematic
	}
	if profile.HeroStyle == "" {
		profile.HeroStyle = models.HeroStyleCover
	}
	if profile.WorksLayout == "" {
		profile.WorksLayout = models.WorksLayoutGrid
	}
	profile.HeroImage = strings.TrimSpace(profile.HeroImage)
	now := time.Now().UTC()
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = now
	}
	profile.UpdatedAt = now

	richErr := r.upsertOnce(profile, false)
	if richErr == nil {
		return r.FindBySlug(profile.Slug, false)
	}

	log.Printf("Rich profile upsert for slug %s rejected, retrying with base columns: %v", profile.Slug, richErr)
	if err := r.upsertOnce(profile, true); err != nil {
		return nil, fmt.Errorf("%w: profile upsert for slug %s failed after base-column fallback: %w", apperr.ErrWriteRejected, profile.Slug, err)
	}
	return r.FindBySlug(profile.Slug, false)
}

// upsertOnce performs one insert-or-update on conflict with the slug key.
// With baseOnly set, every optional column is omitted regardless of the
// probed capabilities.
func (r *GORMProfileRepository) upsertOnce(profile *models.Profile, baseOnly bool) error {
	assign := append([]string{}, profileBaseColumns...)
	var omit []string
	if baseOnly {
		omit = append(omit, profileOptionalColumns...)
	} else {
		supported, omitted := r.caps.supportedProfileColumns()
		assign = append(assign, supported...)
		omit = append(omit, omitted...)
	}

	tx := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "slug"}},
		DoUpdates: clause.AssignmentColumns(assign),
	})
	if len(omit) > 0 {
		tx = tx.Omit(omit...)
	}
	return tx.Create(profile).Error
}

// Update applies a partial change scoped by owner identity, with the same
// two-tier fallback strategy as Upsert.
func (r *GORMProfileRepository) Update(userID string, fields models.ProfileUpdate) (*models.Profile, error) {
	updates := updateColumns(fields)
	updates["updated_at"] = time.Now().UTC()

	rich := map[string]interface{}{}
	base := map[string]interface{}{}
	for col, val := range updates {
		if isOptionalProfileColumn(col) {
			if r.caps.hasProfileColumn(col) {
				rich[col] = val
			}
			continue
		}
		rich[col] = val
		base[col] = val
	}

	res := r.db.Model(&models.Profile{}).Where("user_id = ?", userID).Updates(rich)
	if res.Error != nil {
		log.Printf("Rich profile update for user %s rejected, retrying with base columns: %v", userID, res.Error)
		res = r.db.Model(&models.Profile{}).Where("user_id = ?", userID).Updates(base)
		if res.Error != nil {
			return nil, fmt.Errorf("%w: profile update for user %s failed after base-column fallback: %w", apperr.ErrWriteRejected, userID, res.Error)
		}
	}
	if res.RowsAffected == 0 {
		return nil, apperr.ErrNotFound
	}
	return r.FindByOwner(userID)
}

// SetPublished flips the visibility flag only. Kept independent of the
// general update path so toggling publish state never touches optional
// columns.
func (r *GORMProfileRepository) SetPublished(userID string, published bool) error {
	res := r.db.Model(&models.Profile{}).Where("user_id = ?", userID).Updates(map[string]interface{}{
		"is_published": published,
		"updated_at":   time.Now().UTC(),
	})
	if res.Error != nil {
		return fmt.Errorf("failed to set publish state for user %s: %w", userID, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

// updateColumns maps the non-nil fields of a partial update onto column
// assignments.
func updateColumns(fields models.ProfileUpdate) map[string]interface{} {
	updates := map[string]interface{}{}
	if fields.Name != nil {
		updates["name"] = *fields.Name
	}
	if fields.Role != nil {
		updates["role"] = *fields.Role
	}
	if fields.Bio != nil {
		updates["bio"] = *fields.Bio
	}
	if fields.Theme != nil {
		updates["theme"] = *fields.Theme
	}
	if fields.HeroImage != nil {
		updates["hero_image"] = strings.TrimSpace(*fields.HeroImage)
	}
	if fields.HeroStyle != nil {
		updates["hero_style"] = *fields.HeroStyle
	}
	if fields.WorksLayout != nil {
		updates["works_layout"] = *fields.WorksLayout
	}
	if fields.Location != nil {
		updates["location"] = *fields.Location
	}
	if fields.Availability != nil {
		updates["availability"] = *fields.Availability
	}
	// Tags and links are serialized here because gorm's json serializer only
	// applies to struct-based writes, not map assignments.
	if fields.Tags != nil {
		if raw, err := json.Marshal(*fields.Tags); err == nil {
			updates["tags"] = string(raw)
		}
	}
	if fields.Links != nil {
		if raw, err := json.Marshal(*fields.Links); err == nil {
			updates["links"] = string(raw)
		}
	}
	if fields.IsPublished != nil {
		updates["is_published"] = *fields.IsPublished
	}
	return updates
}

func isOptionalProfileColumn(col string) bool {
	for _, c := range profileOptionalColumns {
		if c == col {
			return true
		}
	}
	return false
}

// Slugify lower-cases the input, collapses every non-alphanumeric run into a
// single hyphen and trims leading/trailing hyphens.
func Slugify(s string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// randomToken returns n alphanumeric characters for slug collision avoidance.
func randomToken(n int) string {
	token := strings.ReplaceAll(uuid.New().String(), "-", "")
	if n > len(token) {
		n = len(token)
	}
	return token[:n]
}

// emailLocalPart extracts the part before '@' from an email-like hint.
func emailLocalPart(email string) string {
	if i := strings.Index(email, "@"); i >= 0 {
		return email[:i]
	}
	return email
}

// isDuplicateErr reports whether the backend rejected a write because of a
// uniqueness violation.
func isDuplicateErr(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique")
}
