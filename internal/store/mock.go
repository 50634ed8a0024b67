package store

import (
	"fmt"
	"sync"

	"fjacquet/history-csv/internal/models"
)

// MockManifestStore is an in-memory ManifestRepository for testing.
type MockManifestStore struct {
	mu        sync.Mutex
	Manifests map[string]*models.Manifest

	// Error flags for testing error conditions
	SaveError error
	LoadError error
}

// Save records the manifest under dir.
func (m *MockManifestStore) Save(dir string, manifest *models.Manifest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveError != nil {
		return m.SaveError
	}
	if m.Manifests == nil {
		m.Manifests = make(map[string]*models.Manifest)
	}
	m.Manifests[dir] = manifest
	return nil
}

// Load returns the manifest recorded under dir.
func (m *MockManifestStore) Load(dir string) (*models.Manifest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LoadError != nil {
		return nil, m.LoadError
	}
	manifest, ok := m.Manifests[dir]
	if !ok {
		return nil, fmt.Errorf("%w in %s", ErrManifestNotFound, dir)
	}
	return manifest, nil
}
