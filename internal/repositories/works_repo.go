package repositories

import (
	"strings"

	"github.com/google/uuid"

	"github.com/MijaMange/showreel-saas/internal/models"
)

// WorkRepository defines the interface for work item data access.
type WorkRepository interface {
	// ListByProfile returns a profile's works ordered by sort_order ascending.
	ListByProfile(profileID string) ([]models.Work, error)
	// ReplaceAll deletes every work row for the profile and inserts the given
	// batch. If the delete fails nothing is inserted; if the insert fails the
	// profile is left with zero works and the error is surfaced.
	ReplaceAll(profileID string, inputs []models.WorkInput) ([]models.Work, error)
}

// normalizeWorks turns editor input into insertable rows: trimmed fields,
// defaults for blank title/image, sort order from the explicit value or the
// position in the submitted list.
func normalizeWorks(profileID string, inputs []models.WorkInput) []models.Work {
	rows := make([]models.Work, 0, len(inputs))
	for i, in := range inputs {
		title := strings.TrimSpace(in.Title)
		if title == "" {
			title = models.DefaultWorkTitle
		}
		image := strings.TrimSpace(in.Image)
		if image == "" {
			image = models.DefaultWorkImage
		}
		order := i
		if in.SortOrder != nil {
			order = *in.SortOrder
		}
		rows = append(rows, models.Work{
			ID:        uuid.New().String(),
			ProfileID: profileID,
			Title:     title,
			Image:     image,
			Link:      strings.TrimSpace(in.Link),
			SortOrder: order,
		})
	}
	return rows
}
