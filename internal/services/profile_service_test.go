package services

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/MijaMange/showreel-saas/internal/models"
	"github.com/MijaMange/showreel-saas/internal/repositories"
	"github.com/MijaMange/showreel-saas/pkg/apperr"
)

var testViewer = &models.Identity{ID: "user-1", Email: "jane.doe@example.com"}

func newProfileService(publisher EventPublisher) (*ProfileService, *repositories.MockProfileRepository, *repositories.MockWorkRepository) {
	profileRepo := repositories.NewMockProfileRepository()
	workRepo := repositories.NewMockWorkRepository()
	return NewProfileService(profileRepo, workRepo, publisher), profileRepo, workRepo
}

func TestEnsureOwnerProfile_RequiresViewer(t *testing.T) {
	svc, _, _ := newProfileService(nil)

	_, err := svc.EnsureOwnerProfile(nil)
	assert.ErrorIs(t, err, apperr.ErrUnauthenticated)
}

func TestEnsureOwnerProfile_GeneratesSlugFromEmail(t *testing.T) {
	svc, _, _ := newProfileService(nil)

	p, err := svc.EnsureOwnerProfile(testViewer)
	require.NoError(t, err)
	assert.Regexp(t, `^jane-doe-[a-z0-9]{4}$`, p.Slug)
	assert.Equal(t, "jane.doe", p.Name)
	assert.Equal(t, "Creator", p.Role)
	assert.False(t, p.IsPublished)
}

func TestEnsureOwnerProfile_ConcurrentCallsConverge(t *testing.T) {
	svc, _, _ := newProfileService(nil)

	const callers = 8
	slugs := make([]string, callers)
	errs := make([]error, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			p, err := svc.EnsureOwnerProfile(testViewer)
			if err != nil {
				errs[i] = err
				return
			}
			slugs[i] = p.Slug
		}(i)
	}
	wg.Wait()

	// Every caller ended up with the same single profile.
	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, slugs[0], slugs[i])
	}
}

func TestSaveProfile_SetsOwnerAndPublishesEvent(t *testing.T) {
	publisher := new(mockPublisher)
	publisher.On("Publish", "profile.updated", mock.Anything).Return(nil)
	svc, _, _ := newProfileService(publisher)

	saved, err := svc.SaveProfile(testViewer, &models.Profile{
		Slug: "jane-doe-ab12",
		Name: "Jane Doe",
	})
	require.NoError(t, err)
	assert.Equal(t, testViewer.ID, saved.UserID)
	publisher.AssertExpectations(t)
}

func TestSaveProfile_BrokerFailureDoesNotFailSave(t *testing.T) {
	publisher := new(mockPublisher)
	publisher.On("Publish", "profile.updated", mock.Anything).Return(assert.AnError)
	svc, _, _ := newProfileService(publisher)

	_, err := svc.SaveProfile(testViewer, &models.Profile{Slug: "jane-doe-ab12"})
	assert.NoError(t, err)
}

func TestSaveProfile_NilPublisherIsSkipped(t *testing.T) {
	svc, _, _ := newProfileService(nil)

	saved, err := svc.SaveProfile(testViewer, &models.Profile{Slug: "jane-doe-ab12"})
	require.NoError(t, err)
	assert.Equal(t, "jane-doe-ab12", saved.Slug)
}

func TestSaveProfile_RejectsForeignSlug(t *testing.T) {
	svc, profileRepo, _ := newProfileService(nil)
	alice := &models.Identity{ID: "user-alice", Email: "alice@example.com"}
	mallory := &models.Identity{ID: "user-mallory", Email: "mallory@example.com"}

	_, err := svc.SaveProfile(alice, &models.Profile{
		Slug:        "alice-page",
		Name:        "Alice",
		Bio:         "Hello.",
		IsPublished: true,
	})
	require.NoError(t, err)

	// Another authenticated account submitting Alice's slug must not be able
	// to overwrite or unpublish her page.
	_, err = svc.SaveProfile(mallory, &models.Profile{
		Slug:        "alice-page",
		Name:        "Hacked",
		Bio:         "defaced",
		IsPublished: false,
	})
	assert.ErrorIs(t, err, apperr.ErrUnauthenticated)

	stored, err := profileRepo.FindBySlug("alice-page", false)
	require.NoError(t, err)
	assert.Equal(t, "user-alice", stored.UserID)
	assert.Equal(t, "Alice", stored.Name)
	assert.Equal(t, "Hello.", stored.Bio)
	assert.True(t, stored.IsPublished)

	// The owner can still re-save the same slug.
	saved, err := svc.SaveProfile(alice, &models.Profile{Slug: "alice-page", Name: "Alice Updated"})
	require.NoError(t, err)
	assert.Equal(t, "Alice Updated", saved.Name)
}

func TestSaveProfile_RequiresViewer(t *testing.T) {
	svc, _, _ := newProfileService(nil)

	_, err := svc.SaveProfile(nil, &models.Profile{Slug: "x"})
	assert.ErrorIs(t, err, apperr.ErrUnauthenticated)
}

func TestUpdateProfile_AppliesPartialChange(t *testing.T) {
	publisher := new(mockPublisher)
	publisher.On("Publish", "profile.updated", mock.Anything).Return(nil)
	svc, _, _ := newProfileService(publisher)

	_, err := svc.EnsureOwnerProfile(testViewer)
	require.NoError(t, err)

	bio := "New bio."
	updated, err := svc.UpdateProfile(testViewer, models.ProfileUpdate{Bio: &bio})
	require.NoError(t, err)
	assert.Equal(t, "New bio.", updated.Bio)
	assert.Equal(t, "jane.doe", updated.Name)
	publisher.AssertExpectations(t)
}

func TestSaveWorks_RejectsForeignProfile(t *testing.T) {
	svc, _, _ := newProfileService(nil)

	_, err := svc.EnsureOwnerProfile(testViewer)
	require.NoError(t, err)

	_, err = svc.SaveWorks(testViewer, "someone-elses-profile", []models.WorkInput{{Title: "Reel"}})
	assert.ErrorIs(t, err, apperr.ErrUnauthenticated)
}

func TestSaveWorks_ReplacesAndPublishes(t *testing.T) {
	publisher := new(mockPublisher)
	publisher.On("Publish", "works.replaced", mock.Anything).Return(nil)
	svc, _, workRepo := newProfileService(publisher)

	owned, err := svc.EnsureOwnerProfile(testViewer)
	require.NoError(t, err)

	saved, err := svc.SaveWorks(testViewer, owned.ID, []models.WorkInput{
		{Title: "Reel"}, {Title: ""},
	})
	require.NoError(t, err)
	require.Len(t, saved, 2)
	assert.Equal(t, models.DefaultWorkTitle, saved[1].Title)

	listed, err := workRepo.ListByProfile(owned.ID)
	require.NoError(t, err)
	assert.Len(t, listed, 2)
	publisher.AssertExpectations(t)
}

func TestTogglePublish(t *testing.T) {
	publisher := new(mockPublisher)
	publisher.On("Publish", "profile.published", mock.Anything).Return(nil)
	svc, profileRepo, _ := newProfileService(publisher)

	assert.ErrorIs(t, svc.TogglePublish(nil, true), apperr.ErrUnauthenticated)

	owned, err := svc.EnsureOwnerProfile(testViewer)
	require.NoError(t, err)

	require.NoError(t, svc.TogglePublish(testViewer, true))
	found, err := profileRepo.FindBySlug(owned.Slug, true)
	require.NoError(t, err)
	assert.True(t, found.IsPublished)
	publisher.AssertExpectations(t)
}
