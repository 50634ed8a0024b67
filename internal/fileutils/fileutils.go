// Package fileutils provides common file operations used throughout the application.
package fileutils

import (
	"fmt"
	"os"
	"path/filepath"

	"fjacquet/history-csv/internal/logging"
	"fjacquet/history-csv/internal/models"
)

// FileExists checks if a file exists and is not a directory
func FileExists(filePath string) bool {
	info, err := os.Stat(filePath)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// DirectoryExists checks if a directory exists
func DirectoryExists(dirPath string) bool {
	info, err := os.Stat(dirPath)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// EnsureDirectoryExists creates a directory if it doesn't exist
func EnsureDirectoryExists(dirPath string) error {
	if !DirectoryExists(dirPath) {
		if err := os.MkdirAll(dirPath, models.PermissionDirectory); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	return nil
}

// StagingDir is a scratch directory created inside a destination directory.
// Files are written to the staging directory first and moved into the
// destination by Commit, so a failed run leaves the destination untouched.
type StagingDir struct {
	dest   string
	path   string
	logger logging.Logger
}

// NewStagingDir creates dest if needed and a fresh staging directory inside it.
func NewStagingDir(dest string, logger logging.Logger) (*StagingDir, error) {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	if err := EnsureDirectoryExists(dest); err != nil {
		return nil, err
	}
	path, err := os.MkdirTemp(dest, ".staging-")
	if err != nil {
		return nil, fmt.Errorf("failed to create staging directory: %w", err)
	}
	logger.Debug("Created staging directory", logging.F(logging.FieldOutputDir, path))
	return &StagingDir{dest: dest, path: path, logger: logger}, nil
}

// Path returns the staging location of the file called name.
func (s *StagingDir) Path(name string) string {
	return filepath.Join(s.path, name)
}

// Dest returns the final location of the file called name.
func (s *StagingDir) Dest(name string) string {
	return filepath.Join(s.dest, name)
}

// Commit moves the named staged files into the destination directory, in
// order, replacing files of the same name, and then removes the staging
// directory.
func (s *StagingDir) Commit(names ...string) error {
	for _, name := range names {
		if !FileExists(s.Path(name)) {
			return fmt.Errorf("staged file %s does not exist", name)
		}
	}
	for _, name := range names {
		if err := os.Rename(s.Path(name), s.Dest(name)); err != nil {
			return fmt.Errorf("failed to move %s into place: %w", name, err)
		}
		s.logger.Debug("Committed file", logging.F(logging.FieldOutputFile, s.Dest(name)))
	}
	return s.Discard()
}

// Discard removes the staging directory and everything left in it. It is
// safe to call more than once.
func (s *StagingDir) Discard() error {
	if err := os.RemoveAll(s.path); err != nil {
		return fmt.Errorf("failed to remove staging directory: %w", err)
	}
	return nil
}
