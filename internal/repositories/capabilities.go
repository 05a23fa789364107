package repositories

import (
	"log"

	"gorm.io/gorm"

	"github.com/MijaMange/showreel-saas/internal/models"
)

// Base profile columns present in every schema version. Newer optional
// columns are tracked by SchemaCapabilities.
var profileBaseColumns = []string{
	"name", "role", "bio", "theme", "hero_image", "is_published",
	"location", "tags", "updated_at",
}

// Optional profile columns that a lagging backend schema may not have yet.
var profileOptionalColumns = []string{
	"hero_style", "works_layout", "availability", "links",
}

// SchemaCapabilities describes which optional columns the remote schema
// actually has. It is probed once at startup so writes can branch
// deterministically instead of probing via failure on every call.
type SchemaCapabilities struct {
	ProfileHeroStyle    bool
	ProfileWorksLayout  bool
	ProfileAvailability bool
	ProfileLinks        bool
	WorkLink            bool
}

// FullCapabilities assumes a fully migrated schema.
func FullCapabilities() SchemaCapabilities {
	return SchemaCapabilities{
		ProfileHeroStyle:    true,
		ProfileWorksLayout:  true,
		ProfileAvailability: true,
		ProfileLinks:        true,
		WorkLink:            true,
	}
}

// DetectCapabilities inspects the connected schema for the optional columns.
func DetectCapabilities(db *gorm.DB) SchemaCapabilities {
	m := db.Migrator()
	caps := SchemaCapabilities{
		ProfileHeroStyle:    m.HasColumn(&models.Profile{}, "hero_style"),
		ProfileWorksLayout:  m.HasColumn(&models.Profile{}, "works_layout"),
		ProfileAvailability: m.HasColumn(&models.Profile{}, "availability"),
		ProfileLinks:        m.HasColumn(&models.Profile{}, "links"),
		WorkLink:            m.HasColumn(&models.Work{}, "link"),
	}
	if caps != FullCapabilities() {
		log.Printf("Schema capabilities limited, writes will omit missing columns: %+v", caps)
	}
	return caps
}

// hasProfileColumn reports whether an optional profile column is available.
func (c SchemaCapabilities) hasProfileColumn(name string) bool {
	switch name {
	case "hero_style":
		return c.ProfileHeroStyle
	case "works_layout":
		return c.ProfileWorksLayout
	case "availability":
		return c.ProfileAvailability
	case "links":
		return c.ProfileLinks
	}
	return true
}

// supportedProfileColumns returns the optional columns the schema has, and
// the ones writes must omit.
func (c SchemaCapabilities) supportedProfileColumns() (supported, omitted []string) {
	for _, col := range profileOptionalColumns {
		if c.hasProfileColumn(col) {
			supported = append(supported, col)
		} else {
			omitted = append(omitted, col)
		}
	}
	return supported, omitted
}
