package services

import (
	"github.com/stretchr/testify/mock"

	"github.com/MijaMange/showreel-saas/internal/models"
)

// mockProfileRepo is a testify mock of repositories.ProfileRepository for the
// failure-path tests where the in-memory implementation cannot produce the
// needed outcome.
type mockProfileRepo struct {
	mock.Mock
}

func (m *mockProfileRepo) FindBySlug(slug string, publicOnly bool) (*models.Profile, error) {
	args := m.Called(slug, publicOnly)
	if p, ok := args.Get(0).(*models.Profile); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProfileRepo) FindOwned(userID, slug string) (*models.Profile, error) {
	args := m.Called(userID, slug)
	if p, ok := args.Get(0).(*models.Profile); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProfileRepo) FindByOwner(userID string) (*models.Profile, error) {
	args := m.Called(userID)
	if p, ok := args.Get(0).(*models.Profile); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProfileRepo) Ensure(userID, emailHint string) (*models.Profile, error) {
	args := m.Called(userID, emailHint)
	if p, ok := args.Get(0).(*models.Profile); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProfileRepo) Upsert(profile *models.Profile) (*models.Profile, error) {
	args := m.Called(profile)
	if p, ok := args.Get(0).(*models.Profile); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProfileRepo) Update(userID string, fields models.ProfileUpdate) (*models.Profile, error) {
	args := m.Called(userID, fields)
	if p, ok := args.Get(0).(*models.Profile); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProfileRepo) SetPublished(userID string, published bool) error {
	args := m.Called(userID, published)
	return args.Error(0)
}

// mockWorkRepo is a testify mock of repositories.WorkRepository.
type mockWorkRepo struct {
	mock.Mock
}

func (m *mockWorkRepo) ListByProfile(profileID string) ([]models.Work, error) {
	args := m.Called(profileID)
	if w, ok := args.Get(0).([]models.Work); ok {
		return w, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockWorkRepo) ReplaceAll(profileID string, inputs []models.WorkInput) ([]models.Work, error) {
	args := m.Called(profileID, inputs)
	if w, ok := args.Get(0).([]models.Work); ok {
		return w, args.Error(1)
	}
	return nil, args.Error(1)
}

// mockPublisher is a testify mock of EventPublisher.
type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(routingKey string, body []byte) error {
	args := m.Called(routingKey, body)
	return args.Error(0)
}
