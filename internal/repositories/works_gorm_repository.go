package repositories

import (
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/MijaMange/showreel-saas/internal/models"
	"github.com/MijaMange/showreel-saas/pkg/apperr"
)

// GORMWorkRepository is a GORM implementation of WorkRepository.
type GORMWorkRepository struct {
	db   *gorm.DB
	caps SchemaCapabilities
}

// NewGORMWorkRepository creates a new instance of GORMWorkRepository.
func NewGORMWorkRepository(db *gorm.DB, caps SchemaCapabilities) *GORMWorkRepository {
	return &GORMWorkRepository{
		db:   db,
		caps: caps,
	}
}

// ListByProfile retrieves a profile's works ordered by sort_order ascending.
func (r *GORMWorkRepository) ListByProfile(profileID string) ([]models.Work, error) {
	var works []models.Work
	if err := r.db.Where("profile_id = ?", profileID).Order("sort_order ASC").Find(&works).Error; err != nil {
		return nil, fmt.Errorf("failed to list works for profile %s: %w", profileID, err)
	}
	return works, nil
}

// ReplaceAll deletes every work row for the profile and inserts the given
// batch in one call. The delete-then-insert window is an accepted
// weak-consistency property; the backend offers no multi-statement
// transaction primitive to this layer.
func (r *GORMWorkRepository) ReplaceAll(profileID string, inputs []models.WorkInput) ([]models.Work, error) {
	if err := r.db.Where("profile_id = ?", profileID).Delete(&models.Work{}).Error; err != nil {
		// Abort before inserting: leaving the old rows intact is safer than
		// a partial state.
		return nil, fmt.Errorf("failed to delete works for profile %s: %w", profileID, err)
	}

	if len(inputs) == 0 {
		return []models.Work{}, nil
	}

	rows := normalizeWorks(profileID, inputs)

	tx := r.db
	if !r.caps.WorkLink {
		tx = tx.Omit("link")
	}
	if err := tx.Create(&rows).Error; err != nil {
		log.Printf("Works insert for profile %s rejected, retrying without link column: %v", profileID, err)
		if err := r.db.Omit("link").Create(&rows).Error; err != nil {
			// The profile is left with zero works here; the caller sees the
			// rejection and can resubmit.
			return nil, fmt.Errorf("%w: works insert for profile %s failed after fallback: %w", apperr.ErrWriteRejected, profileID, err)
		}
	}
	return rows, nil
}
