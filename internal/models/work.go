package models

// Defaults substituted for blank work fields when a works batch is saved.
const (
	DefaultWorkTitle = "Untitled"
	DefaultWorkImage = "https://placehold.co/600x400?text=+"
)

// Work is a single portfolio item belonging to one profile, ordered by
// SortOrder ascending.
type Work struct {
	ID        string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	ProfileID string `json:"profile_id" gorm:"index;type:varchar(36)"`
	Title     string `json:"title"`
	Image     string `json:"image"`
	Link      string `json:"link"`
	SortOrder int    `json:"sort_order"`
}

// WorkInput is the editor's payload for one work item. SortOrder is optional;
// when nil the item's position in the submitted list is used.
type WorkInput struct {
	Title     string `json:"title" validate:"max=200"`
	Image     string `json:"image" validate:"omitempty,url"`
	Link      string `json:"link" validate:"omitempty,url"`
	SortOrder *int   `json:"sort_order"`
}
