package models

import "strings"

// SeedWork is a demo work item embedded in a seed profile.
type SeedWork struct {
	Title string `json:"title"`
	Image string `json:"image"`
	Link  string `json:"link,omitempty"`
}

// SeedProfile is a profile-shaped record kept in the local seed store. It is
// keyed by slug, lives in a separate client-local table, and is only ever
// used when the remote lookup yields nothing.
type SeedProfile struct {
	Slug      string        `json:"slug" gorm:"primaryKey;type:varchar(100)"`
	Name      string        `json:"name"`
	Role      string        `json:"role"`
	Bio       string        `json:"bio"`
	Theme     string        `json:"theme"`
	HeroImage string        `json:"hero_image"`
	Location  string        `json:"location"`
	Tags      []string      `json:"tags" gorm:"serializer:json"`
	Links     []ProfileLink `json:"links" gorm:"serializer:json"`
	Works     []SeedWork    `json:"works" gorm:"serializer:json"`
}

// ToProfile converts a seed entry into the normalized profile shape returned
// by the resolver. Seed entries have no remote ID or owner and are treated as
// published demo content.
func (s SeedProfile) ToProfile() *Profile {
	return &Profile{
		Slug:        s.Slug,
		Name:        s.Name,
		Role:        s.Role,
		Bio:         s.Bio,
		Theme:       s.Theme,
		HeroImage:   s.HeroImage,
		HeroStyle:   HeroStyleCover,
		WorksLayout: WorksLayoutGrid,
		Location:    s.Location,
		Tags:        s.Tags,
		Links:       s.Links,
		IsPublished: true,
	}
}

// WorkList converts the embedded demo works into ordered Work values.
func (s SeedProfile) WorkList() []Work {
	works := make([]Work, 0, len(s.Works))
	for i, w := range s.Works {
		works = append(works, Work{
			Title:     w.Title,
			Image:     w.Image,
			Link:      w.Link,
			SortOrder: i,
		})
	}
	return works
}

// DisplayName returns the name used for sorting seed listings, falling back
// to the slug when the name is absent.
func (s SeedProfile) DisplayName() string {
	if strings.TrimSpace(s.Name) != "" {
		return s.Name
	}
	return s.Slug
}
