// Package store persists the run manifest that accompanies category outputs.
package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"fjacquet/history-csv/internal/logging"
	"fjacquet/history-csv/internal/models"

	"gopkg.in/yaml.v3"
)

// ErrManifestNotFound is returned by Load when a directory has no manifest.
var ErrManifestNotFound = errors.New("manifest not found")

// ManifestRepository saves and loads run manifests by output directory.
type ManifestRepository interface {
	Save(dir string, manifest *models.Manifest) error
	Load(dir string) (*models.Manifest, error)
}

// ManifestStore keeps manifests as YAML files named models.ManifestFileName.
type ManifestStore struct {
	logger logging.Logger
}

// NewManifestStore creates a ManifestStore.
func NewManifestStore(logger logging.Logger) *ManifestStore {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	return &ManifestStore{logger: logger}
}

// Path returns the manifest location for dir.
func (s *ManifestStore) Path(dir string) string {
	return filepath.Join(dir, models.ManifestFileName)
}

// Save writes manifest to dir. The file is written under a temporary name
// and renamed, so readers never see a partial manifest.
func (s *ManifestStore) Save(dir string, manifest *models.Manifest) error {
	if manifest == nil {
		return fmt.Errorf("cannot save nil manifest")
	}

	data, err := yaml.Marshal(manifest)
	if err != nil {
		return fmt.Errorf("error marshaling manifest: %w", err)
	}

	if err := os.MkdirAll(dir, models.PermissionDirectory); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}

	path := s.Path(dir)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, models.PermissionOutputFile); err != nil {
		return fmt.Errorf("error writing manifest: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("error writing manifest: %w", err)
	}

	s.logger.Debug("Saved run manifest",
		logging.F(logging.FieldFile, path),
		logging.F(logging.FieldRunID, manifest.RunID))
	return nil
}

// Load reads the manifest in dir. A missing file yields ErrManifestNotFound.
func (s *ManifestStore) Load(dir string) (*models.Manifest, error) {
	path := s.Path(dir)

	data, err := os.ReadFile(path) // #nosec G304 -- manifest lives in the user-chosen output directory
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w in %s", ErrManifestNotFound, dir)
		}
		return nil, fmt.Errorf("error reading manifest: %w", err)
	}

	var manifest models.Manifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("error parsing manifest %s: %w", path, err)
	}
	if err := manifest.Validate(); err != nil {
		return nil, fmt.Errorf("invalid manifest %s: %w", path, err)
	}

	s.logger.Debug("Loaded run manifest",
		logging.F(logging.FieldFile, path),
		logging.F(logging.FieldRunID, manifest.RunID))
	return &manifest, nil
}
