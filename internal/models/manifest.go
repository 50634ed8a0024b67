package models

import (
	"fmt"
	"time"
)

// ManifestFileName is the name of the run manifest written next to the
// category outputs.
const ManifestFileName = "manifest.yaml"

// Manifest records what a successful ingest run produced.
type Manifest struct {
	RunID       string             `yaml:"run_id"`
	Input       string             `yaml:"input"`
	TotalRows   int                `yaml:"total_rows"`
	Categories  []CategoryManifest `yaml:"categories"`
	CompletedAt time.Time          `yaml:"completed_at"`
}

// CategoryManifest describes one category output file.
type CategoryManifest struct {
	Type string `yaml:"type"`
	File string `yaml:"file"`
	Rows int    `yaml:"rows"`
}

// Category returns the entry for historyType, if present.
func (m *Manifest) Category(historyType HistoryType) (CategoryManifest, bool) {
	for _, c := range m.Categories {
		if h, err := ParseHistoryType(c.Type); err == nil && h == historyType {
			return c, true
		}
	}
	return CategoryManifest{}, false
}

// Validate checks that every category entry names a known history type at
// most once and carries a non-negative row count.
func (m *Manifest) Validate() error {
	seen := make(map[HistoryType]bool, len(m.Categories))
	for _, c := range m.Categories {
		h, err := ParseHistoryType(c.Type)
		if err != nil {
			return err
		}
		if seen[h] {
			return fmt.Errorf("history type %q listed twice", c.Type)
		}
		seen[h] = true
		if c.Rows < 0 {
			return fmt.Errorf("history type %q has negative row count %d", c.Type, c.Rows)
		}
	}
	return nil
}

// CategorizedRows sums the row counts of every category.
func (m *Manifest) CategorizedRows() int {
	total := 0
	for _, c := range m.Categories {
		total += c.Rows
	}
	return total
}
