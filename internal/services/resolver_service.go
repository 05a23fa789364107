package services

import (
	"errors"
	"fmt"
	"log"

	"github.com/MijaMange/showreel-saas/internal/models"
	"github.com/MijaMange/showreel-saas/internal/repositories"
	"github.com/MijaMange/showreel-saas/pkg/apperr"
)

// ResolveMode selects which lookup cascade answers a profile-view request.
type ResolveMode string

const (
	// ResolveModePublic is anonymous/visitor viewing: only published remote
	// profiles and pre-existing local seeds are visible.
	ResolveModePublic ResolveMode = "public"
	// ResolveModeApp is the owner-or-undetermined viewing context: the
	// owner's own profile is authoritative regardless of publish state, and
	// the seed store is the terminal fallback.
	ResolveModeApp ResolveMode = "app"
)

// ResolvedProfile is the normalized profile+works structure handed to the
// calling surface. IsOwner gates edit affordances only; visibility is
// governed by the publish flag plus the mode rules.
type ResolvedProfile struct {
	Profile  *models.Profile `json:"profile"`
	Works    []models.Work   `json:"works"`
	IsOwner  bool            `json:"is_owner"`
	FromSeed bool            `json:"from_seed"`
}

// ResolverService decides, for a given slug and viewer identity, which
// profile record to show and from which source: owner-authoritative remote,
// public remote, or local seed. It holds no per-call state; a caller retry
// simply re-runs the cascade.
type ResolverService struct {
	profileRepo repositories.ProfileRepository
	workRepo    repositories.WorkRepository
	seeds       *repositories.SeedStore
}

// NewResolverService creates a new ResolverService.
func NewResolverService(profileRepo repositories.ProfileRepository, workRepo repositories.WorkRepository, seeds *repositories.SeedStore) *ResolverService {
	return &ResolverService{
		profileRepo: profileRepo,
		workRepo:    workRepo,
		seeds:       seeds,
	}
}

// Resolve runs the lookup cascade for the slug under the given mode and
// viewer identity. Terminal outcomes are a ResolvedProfile,
// apperr.ErrNotFound, or an apperr.ErrLoadError-wrapped remote fault --
// absence and backend failure are never conflated.
func (s *ResolverService) Resolve(slug string, mode ResolveMode, viewer *models.Identity) (*ResolvedProfile, error) {
	if mode == ResolveModeApp {
		return s.resolveApp(slug, viewer)
	}
	return s.resolvePublic(slug, viewer)
}

func (s *ResolverService) resolvePublic(slug string, viewer *models.Identity) (*ResolvedProfile, error) {
	profile, err := s.profileRepo.FindBySlug(slug, true)
	if err == nil {
		resolved, werr := s.remoteResolution(profile, viewer)
		if werr == nil {
			return resolved, nil
		}
		// A failed works fetch after a profile hit is still a remote fault
		// and runs the same seed fallback as a failed lookup.
		err = werr
	} else if errors.Is(err, apperr.ErrNotFound) {
		// Definitively absent remotely. The seed store still synthesizes an
		// entry (it is a legacy demo fallback network, not a guarantee), but
		// a seed fabricated just now must not mask the not-found outcome for
		// public viewers of an unknown slug.
		existed := s.seeds.Has(slug)
		seed := s.seeds.GetOrCreate(slug)
		if existed {
			return s.seedResolution(seed), nil
		}
		return nil, apperr.ErrNotFound
	}

	// Failed to check, not absent: fall back to a pre-existing seed, else
	// report the outage distinctly from not-found.
	log.Printf("Remote resolution for slug %s failed, trying local seed: %v", slug, err)
	if s.seeds.Has(slug) {
		return s.seedResolution(s.seeds.GetOrCreate(slug)), nil
	}
	return nil, fmt.Errorf("%w: %w", apperr.ErrLoadError, err)
}

func (s *ResolverService) resolveApp(slug string, viewer *models.Identity) (*ResolvedProfile, error) {
	if viewer != nil {
		owned, err := s.profileRepo.FindOwned(viewer.ID, slug)
		if err == nil {
			// Owner match is authoritative regardless of publish state.
			resolved, werr := s.remoteResolution(owned, viewer)
			if werr == nil {
				return resolved, nil
			}
			log.Printf("Works fetch for owned slug %s failed, falling through: %v", slug, werr)
		} else if !errors.Is(err, apperr.ErrNotFound) {
			log.Printf("Owner lookup for slug %s failed, falling through: %v", slug, err)
		}
	}

	profile, err := s.profileRepo.FindBySlug(slug, true)
	if err == nil {
		resolved, werr := s.remoteResolution(profile, viewer)
		if werr == nil {
			return resolved, nil
		}
		log.Printf("Works fetch for slug %s failed, falling through to seed: %v", slug, werr)
	} else if !errors.Is(err, apperr.ErrNotFound) {
		log.Printf("Public lookup for slug %s failed, falling through to seed: %v", slug, err)
	}

	// Terminal fallback: the seed store cannot itself fail to resolve.
	return s.seedResolution(s.seeds.GetOrCreate(slug)), nil
}

// remoteResolution fetches the profile's works and computes ownership. The
// error is the raw repository fault; callers decide between seed fallback and
// a load-error report.
func (s *ResolverService) remoteResolution(profile *models.Profile, viewer *models.Identity) (*ResolvedProfile, error) {
	works, err := s.workRepo.ListByProfile(profile.ID)
	if err != nil {
		return nil, err
	}
	return &ResolvedProfile{
		Profile: profile,
		Works:   works,
		IsOwner: viewer != nil && profile.UserID != "" && profile.UserID == viewer.ID,
	}, nil
}

// seedResolution wraps a seed entry; seeds carry no owner identity.
func (s *ResolverService) seedResolution(seed models.SeedProfile) *ResolvedProfile {
	return &ResolvedProfile{
		Profile:  seed.ToProfile(),
		Works:    seed.WorkList(),
		FromSeed: true,
	}
}

// ListSeeds exposes the demo catalog for the discover surface, sorted by
// display name.
func (s *ResolverService) ListSeeds() []models.SeedProfile {
	return s.seeds.ListAll()
}
