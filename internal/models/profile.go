package models

import "time"

// Theme names offered by the editor. Storage keeps a free string, so the
// palette is only enforced at the request-validation boundary.
const (
	ThemeCinematic = "Cinematic"
	ThemeEditorial = "Editorial"
	ThemeMinimal   = "Minimal"
	ThemeFashion   = "Fashion"
)

// Hero section styles.
const (
	HeroStyleCover   = "cover"
	HeroStyleSplit   = "split"
	HeroStyleMinimal = "minimal"
)

// Works section layouts.
const (
	WorksLayoutGrid     = "grid"
	WorksLayoutMasonry  = "masonry"
	WorksLayoutFeatured = "featured"
)

// ProfileLink is a labeled external link shown on a profile (max 4 per profile).
type ProfileLink struct {
	Label string `json:"label" validate:"required,max=40"`
	URL   string `json:"url" validate:"required,url"`
}

// Profile represents a creator's portfolio page.
//
// The columns hero_style, works_layout, availability and links are newer and
// may be absent from a lagging backend schema; writes that include them must
// degrade to the base column set when the backend rejects them.
type Profile struct {
	ID           string        `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID       string        `json:"user_id" gorm:"index;type:varchar(36)"`
	Slug         string        `json:"slug" gorm:"uniqueIndex;type:varchar(100)" validate:"required,min=1,max=100"`
	Name         string        `json:"name" validate:"max=100"`
	Role         string        `json:"role" validate:"max=100"`
	Bio          string        `json:"bio" validate:"max=2000"`
	Theme        string        `json:"theme"`
	HeroImage    string        `json:"hero_image"`
	HeroStyle    string        `json:"hero_style"`
	WorksLayout  string        `json:"works_layout"`
	Location     string        `json:"location"`
	Availability string        `json:"availability"`
	Tags         []string      `json:"tags" gorm:"serializer:json" validate:"max=3,dive,max=30"`
	Links        []ProfileLink `json:"links" gorm:"serializer:json" validate:"max=4,dive"`
	IsPublished  bool          `json:"is_published"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// ProfileUpdate carries a partial profile change for the owner-scoped update
// path. Nil fields are left untouched.
type ProfileUpdate struct {
	Name         *string        `json:"name"`
	Role         *string        `json:"role"`
	Bio          *string        `json:"bio"`
	Theme        *string        `json:"theme"`
	HeroImage    *string        `json:"hero_image"`
	HeroStyle    *string        `json:"hero_style"`
	WorksLayout  *string        `json:"works_layout"`
	Location     *string        `json:"location"`
	Availability *string        `json:"availability"`
	Tags         *[]string      `json:"tags"`
	Links        *[]ProfileLink `json:"links"`
	IsPublished  *bool          `json:"is_published"`
}
