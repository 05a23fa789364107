package repositories

import (
	"log"
	"sort"
	"strings"
	"sync"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/MijaMange/showreel-saas/internal/models"
)

// SeedStore is the client-local table of example/demo profiles used when no
// remote profile exists. It is the terminal fallback of the resolver cascade
// and can never fail to resolve: when its SQLite storage is unavailable it
// degrades to an in-memory-only instance for the rest of the session instead
// of surfacing errors.
//
// Entries are served from the in-memory map; the SQLite table is the
// persistence behind it, written best-effort on every change.
type SeedStore struct {
	db       *gorm.DB
	entries  map[string]models.SeedProfile
	mu       sync.Mutex
	degraded bool
}

// NewSeedStore opens (or degrades past) the local seed database, seeds the
// demo catalog when the table is empty and runs the idempotent upgrade pass.
func NewSeedStore(path string) *SeedStore {
	s := &SeedStore{
		entries: make(map[string]models.SeedProfile),
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		log.Printf("Seed store unavailable, using in-memory seeds for this session: %v", err)
		s.degraded = true
	} else if err := db.AutoMigrate(&models.SeedProfile{}); err != nil {
		log.Printf("Seed store migration failed, using in-memory seeds for this session: %v", err)
		s.degraded = true
	} else {
		s.db = db
		var stored []models.SeedProfile
		if err := db.Find(&stored).Error; err != nil {
			s.degrade(err)
		} else {
			for _, p := range stored {
				s.entries[p.Slug] = p
			}
		}
	}

	s.SeedIfEmpty()
	s.Upgrade()
	return s
}

// degrade switches the store to in-memory-only mode after a storage failure.
// Already-loaded entries stay available for the rest of the session.
func (s *SeedStore) degrade(err error) {
	if !s.degraded {
		log.Printf("Seed store storage failed, continuing in-memory only: %v", err)
	}
	s.degraded = true
}

// persist writes an entry through to SQLite unless the store is degraded.
func (s *SeedStore) persist(p models.SeedProfile) {
	if s.degraded || s.db == nil {
		return
	}
	if err := s.db.Save(&p).Error; err != nil {
		s.degrade(err)
	}
}

// Has reports whether a seed entry exists for the slug without synthesizing
// one.
func (s *SeedStore) Has(slug string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.entries[slug]
	return ok
}

// GetOrCreate returns the persisted seed for the slug, synthesizing and
// persisting one from the built-in examples or a generic default first when
// absent. Calling it twice for the same slug returns the same entry.
func (s *SeedStore) GetOrCreate(slug string) models.SeedProfile {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p, ok := s.entries[slug]; ok {
		return p
	}
	p := defaultSeedForSlug(slug)
	s.entries[slug] = p
	s.persist(p)
	return p
}

// Save stores a caller-customized seed entry.
func (s *SeedStore) Save(p models.SeedProfile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[p.Slug] = p
	s.persist(p)
}

// ListAll returns every seed entry sorted by display name, case-insensitive,
// falling back to the slug when the name is absent.
func (s *SeedStore) ListAll() []models.SeedProfile {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.SeedProfile, 0, len(s.entries))
	for _, p := range s.entries {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i].DisplayName()) < strings.ToLower(out[j].DisplayName())
	})
	return out
}

// SeedIfEmpty populates the demo catalog on first run. No-op when any entry
// already exists.
func (s *SeedStore) SeedIfEmpty() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.entries) > 0 {
		return
	}
	for _, slug := range wellKnownSlugs {
		p := basicSeed(builtinSeeds[slug])
		s.entries[p.Slug] = p
		s.persist(p)
	}
}

// Upgrade backfills hero image, works, location, tags and socials on the
// persisted copies of the well-known example slugs from the richer built-in
// examples, without overwriting fields the caller already customized. Safe to
// call repeatedly; a no-op after convergence.
func (s *SeedStore) Upgrade() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, slug := range wellKnownSlugs {
		stored, ok := s.entries[slug]
		if !ok {
			continue
		}
		rich := builtinSeeds[slug]
		changed := false
		if stored.HeroImage == "" && rich.HeroImage != "" {
			stored.HeroImage = rich.HeroImage
			changed = true
		}
		if len(stored.Works) == 0 && len(rich.Works) > 0 {
			stored.Works = rich.Works
			changed = true
		}
		if stored.Location == "" && rich.Location != "" {
			stored.Location = rich.Location
			changed = true
		}
		if len(stored.Tags) == 0 && len(rich.Tags) > 0 {
			stored.Tags = rich.Tags
			changed = true
		}
		if len(stored.Links) == 0 && len(rich.Links) > 0 {
			stored.Links = rich.Links
			changed = true
		}
		if changed {
			s.entries[slug] = stored
			s.persist(stored)
		}
	}
}

// defaultSeedForSlug synthesizes a seed from the built-in examples, or a
// generic default derived from the slug text.
func defaultSeedForSlug(slug string) models.SeedProfile {
	if p, ok := builtinSeeds[slug]; ok {
		return p
	}
	return models.SeedProfile{
		Slug:  slug,
		Name:  titleCaseSlug(slug),
		Role:  "Creator",
		Bio:   "Welcome to my showreel.",
		Theme: models.ThemeCinematic,
	}
}

// basicSeed strips a built-in example down to the fields seeded on first run;
// the richer fields arrive through Upgrade.
func basicSeed(p models.SeedProfile) models.SeedProfile {
	return models.SeedProfile{
		Slug:  p.Slug,
		Name:  p.Name,
		Role:  p.Role,
		Bio:   p.Bio,
		Theme: p.Theme,
	}
}

// titleCaseSlug turns "jane-doe" into "Jane Doe".
func titleCaseSlug(slug string) string {
	words := strings.Split(slug, "-")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// Demo catalog. The slugs double as the upgrade targets, so order matters for
// deterministic seeding only.
var wellKnownSlugs = []string{
	"anna-example", "mija-example", "karl-example",
	"lisa-example", "erik-example", "sara-example",
}

var builtinSeeds = map[string]models.SeedProfile{
	"anna-example": {
		Slug:      "anna-example",
		Name:      "Anna Example",
		Role:      "Actor",
		Bio:       "Short intro that feels like YOU.",
		Theme:     models.ThemeCinematic,
		HeroImage: "https://placehold.co/1200x600?text=Anna",
		Location:  "Stockholm",
		Tags:      []string{"Drama", "Commercial", "Voice"},
		Links: []models.ProfileLink{
			{Label: "Instagram", URL: "https://instagram.com/anna.example"},
		},
		Works: []models.SeedWork{
			{Title: "Short Film", Image: "https://placehold.co/600x400?text=Short+Film"},
			{Title: "Commercial", Image: "https://placehold.co/600x400?text=Commercial"},
			{Title: "Theater", Image: "https://placehold.co/600x400?text=Theater"},
		},
	},
	"mija-example": {
		Slug:      "mija-example",
		Name:      "Mija Lindberg",
		Role:      "Director",
		Bio:       "Creating stories that matter.",
		Theme:     models.ThemeEditorial,
		HeroImage: "https://placehold.co/1200x600?text=Mija",
		Location:  "Gothenburg",
		Tags:      []string{"Documentary", "Music Video"},
		Links: []models.ProfileLink{
			{Label: "Vimeo", URL: "https://vimeo.com/mijalindberg"},
		},
		Works: []models.SeedWork{
			{Title: "Documentary", Image: "https://placehold.co/600x400?text=Documentary"},
			{Title: "Music Video", Image: "https://placehold.co/600x400?text=Music+Video"},
		},
	},
	"karl-example": {
		Slug:      "karl-example",
		Name:      "Karl Svensson",
		Role:      "Photographer",
		Bio:       "Light and shadow.",
		Theme:     models.ThemeMinimal,
		HeroImage: "https://placehold.co/1200x600?text=Karl",
		Location:  "Malmö",
		Tags:      []string{"Portrait", "Street"},
		Works: []models.SeedWork{
			{Title: "Portraits", Image: "https://placehold.co/600x400?text=Portraits"},
			{Title: "Street", Image: "https://placehold.co/600x400?text=Street"},
		},
	},
	"lisa-example": {
		Slug:      "lisa-example",
		Name:      "Lisa Andersson",
		Role:      "Model",
		Bio:       "Fashion forward.",
		Theme:     models.ThemeFashion,
		HeroImage: "https://placehold.co/1200x600?text=Lisa",
		Location:  "Stockholm",
		Tags:      []string{"Editorial", "Runway"},
		Links: []models.ProfileLink{
			{Label: "Instagram", URL: "https://instagram.com/lisa.example"},
		},
		Works: []models.SeedWork{
			{Title: "Editorial", Image: "https://placehold.co/600x400?text=Editorial"},
			{Title: "Runway", Image: "https://placehold.co/600x400?text=Runway"},
		},
	},
	"erik-example": {
		Slug:      "erik-example",
		Name:      "Erik Berg",
		Role:      "Cinematographer",
		Bio:       "Framing the moment.",
		Theme:     models.ThemeCinematic,
		HeroImage: "https://placehold.co/1200x600?text=Erik",
		Location:  "Uppsala",
		Tags:      []string{"Features", "Commercials"},
		Works: []models.SeedWork{
			{Title: "Feature Reel", Image: "https://placehold.co/600x400?text=Feature+Reel"},
		},
	},
	"sara-example": {
		Slug:      "sara-example",
		Name:      "Sara Holm",
		Role:      "Art Director",
		Bio:       "Visual storytelling.",
		Theme:     models.ThemeEditorial,
		HeroImage: "https://placehold.co/1200x600?text=Sara",
		Location:  "Stockholm",
		Tags:      []string{"Branding", "Campaigns"},
		Works: []models.SeedWork{
			{Title: "Campaigns", Image: "https://placehold.co/600x400?text=Campaigns"},
		},
	},
}
