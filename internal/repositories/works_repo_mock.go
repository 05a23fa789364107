package repositories

import (
	"sync"

	"github.com/MijaMange/showreel-saas/internal/models"
)

// MockWorkRepository is an in-memory implementation of WorkRepository.
type MockWorkRepository struct {
	works map[string][]models.Work // keyed by profile ID
	mu    sync.RWMutex
}

// NewMockWorkRepository creates a new instance of MockWorkRepository.
func NewMockWorkRepository() *MockWorkRepository {
	return &MockWorkRepository{
		works: make(map[string][]models.Work),
	}
}

// ListByProfile returns the profile's works in stored order.
func (r *MockWorkRepository) ListByProfile(profileID string) ([]models.Work, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored := r.works[profileID]
	out := make([]models.Work, len(stored))
	copy(out, stored)
	return out, nil
}

// ReplaceAll swaps the profile's works for the normalized input batch.
func (r *MockWorkRepository) ReplaceAll(profileID string, inputs []models.WorkInput) ([]models.Work, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows := normalizeWorks(profileID, inputs)
	r.works[profileID] = rows
	out := make([]models.Work, len(rows))
	copy(out, rows)
	return out, nil
}
