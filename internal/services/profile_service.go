package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/MijaMange/showreel-saas/internal/models"
	"github.com/MijaMange/showreel-saas/internal/repositories"
	"github.com/MijaMange/showreel-saas/pkg/apperr"
)

// EventPublisher publishes profile lifecycle events to the message broker.
// Implemented by rabbitmq.Client.
type EventPublisher interface {
	Publish(routingKey string, body []byte) error
}

// ProfileService handles the owner-scoped write paths: ensuring a profile
// exists, saving profile fields and works, and toggling publish state.
type ProfileService struct {
	profileRepo repositories.ProfileRepository
	workRepo    repositories.WorkRepository
	publisher   EventPublisher
}

// NewProfileService creates a new ProfileService.
func NewProfileService(profileRepo repositories.ProfileRepository, workRepo repositories.WorkRepository, publisher EventPublisher) *ProfileService {
	return &ProfileService{
		profileRepo: profileRepo,
		workRepo:    workRepo,
		publisher:   publisher,
	}
}

// EnsureOwnerProfile returns the viewer's profile, creating one with a
// generated slug on first call. Idempotent ensure-semantics.
func (s *ProfileService) EnsureOwnerProfile(viewer *models.Identity) (*models.Profile, error) {
	if viewer == nil {
		return nil, apperr.ErrUnauthenticated
	}
	return s.profileRepo.Ensure(viewer.ID, viewer.Email)
}

// SaveProfile persists a full profile payload for the viewer, keyed by slug.
// A slug already owned by a different account is rejected; the upsert conflict
// path must never let one viewer overwrite another owner's page.
func (s *ProfileService) SaveProfile(viewer *models.Identity, profile *models.Profile) (*models.Profile, error) {
	if viewer == nil {
		return nil, apperr.ErrUnauthenticated
	}
	if existing, err := s.profileRepo.FindBySlug(profile.Slug, false); err == nil {
		if existing.UserID != "" && existing.UserID != viewer.ID {
			return nil, fmt.Errorf("%w: slug %s belongs to another owner", apperr.ErrUnauthenticated, profile.Slug)
		}
	} else if !errors.Is(err, apperr.ErrNotFound) {
		return nil, fmt.Errorf("failed to verify slug ownership: %w", err)
	}
	profile.UserID = viewer.ID

	saved, err := s.profileRepo.Upsert(profile)
	if err != nil {
		return nil, err
	}
	s.publishEvent("profile.updated", map[string]interface{}{
		"profileID": saved.ID,
		"userID":    saved.UserID,
		"slug":      saved.Slug,
	})
	return saved, nil
}

// UpdateProfile applies a partial change to the viewer's profile.
func (s *ProfileService) UpdateProfile(viewer *models.Identity, fields models.ProfileUpdate) (*models.Profile, error) {
	if viewer == nil {
		return nil, apperr.ErrUnauthenticated
	}
	updated, err := s.profileRepo.Update(viewer.ID, fields)
	if err != nil {
		return nil, err
	}
	s.publishEvent("profile.updated", map[string]interface{}{
		"profileID": updated.ID,
		"userID":    updated.UserID,
		"slug":      updated.Slug,
	})
	return updated, nil
}

// SaveWorks replaces the full works list of the viewer's profile.
func (s *ProfileService) SaveWorks(viewer *models.Identity, profileID string, inputs []models.WorkInput) ([]models.Work, error) {
	if viewer == nil {
		return nil, apperr.ErrUnauthenticated
	}
	owned, err := s.profileRepo.FindByOwner(viewer.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to verify profile ownership: %w", err)
	}
	if owned.ID != profileID {
		return nil, fmt.Errorf("%w: profile %s does not belong to viewer", apperr.ErrUnauthenticated, profileID)
	}

	works, err := s.workRepo.ReplaceAll(profileID, inputs)
	if err != nil {
		return nil, err
	}
	s.publishEvent("works.replaced", map[string]interface{}{
		"profileID": profileID,
		"count":     len(works),
	})
	return works, nil
}

// TogglePublish flips the viewer's profile visibility flag.
func (s *ProfileService) TogglePublish(viewer *models.Identity, published bool) error {
	if viewer == nil {
		return apperr.ErrUnauthenticated
	}
	if err := s.profileRepo.SetPublished(viewer.ID, published); err != nil {
		return err
	}
	s.publishEvent("profile.published", map[string]interface{}{
		"userID":    viewer.ID,
		"published": published,
	})
	return nil
}

// publishEvent sends a lifecycle event to the broker. Event delivery is
// best-effort: a broker failure never fails the save that triggered it.
func (s *ProfileService) publishEvent(routingKey string, payload map[string]interface{}) {
	if s.publisher == nil {
		log.Println("Event publisher is not initialized. Skipping message publication.")
		return
	}
	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", routingKey, err)
		return
	}
	if err := s.publisher.Publish(routingKey, body); err != nil {
		log.Printf("Warning: Failed to publish %s event: %v", routingKey, err)
	}
}
