package artifacts

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultBaseDir = "wtl-results"
	RunsDir        = "runs"
)

// RunName builds a timestamp-first run directory name.
// Format: YYYY-MM-DD-{uuid prefix}, e.g. 2026-08-25-a1b2c3d4
func RunName(created time.Time, runUUID string) string {
	prefix := runUUID
	if len(prefix) > 8 {
		prefix = prefix[:8]
	}
	return fmt.Sprintf("%s-%s", created.Format("2006-01-02"), prefix)
}

// GetRunDir returns the full path to a run directory.
func GetRunDir(baseDir, runName string) string {
	if baseDir == "" {
		baseDir = DefaultBaseDir
	}
	return filepath.Join(baseDir, RunsDir, runName)
}

// GetIndexPath returns the path to the run index file (at results root).
func GetIndexPath(baseDir string) string {
	if baseDir == "" {
		baseDir = DefaultBaseDir
	}
	return filepath.Join(baseDir, "index.yaml")
}

// Manager handles storage and retrieval of import run artifacts.
type Manager struct {
	baseDir string
}

// NewManager creates a new artifact manager instance.
// It ensures the base directory and the runs root exist.
func NewManager(baseDir string) (*Manager, error) {
	if baseDir == "" {
		baseDir = DefaultBaseDir
	}
	if err := os.MkdirAll(filepath.Join(baseDir, RunsDir), 0750); err != nil {
		return nil, fmt.Errorf("failed to create runs directory: %w", err)
	}

	return &Manager{baseDir: baseDir}, nil
}

// RunDir returns the directory for a named run.
// Example: wtl-results/runs/2026-08-25-a1b2c3d4/
func (m *Manager) RunDir(runName string) string {
	return GetRunDir(m.baseDir, runName)
}

// EnsureRunDir creates the directory for a named run if it doesn't exist.
func (m *Manager) EnsureRunDir(runName string) error {
	if err := os.MkdirAll(m.RunDir(runName), 0750); err != nil {
		return fmt.Errorf("failed to create run directory: %w", err)
	}
	return nil
}

// ArtifactPath returns the full path for an artifact inside a run directory.
// Example: wtl-results/runs/2026-08-25-a1b2c3d4/labeled-tiles.csv
func (m *Manager) ArtifactPath(runName, filename string) string {
	return filepath.Join(m.RunDir(runName), filename)
}

// SaveFile writes artifact content to disk.
func (m *Manager) SaveFile(filePath string, content []byte) error {
	if err := os.WriteFile(filePath, content, 0644); err != nil {
		return fmt.Errorf("error saving file: %s", err)
	}
	return nil
}

// RunInfo represents metadata about an import run in the index.
type RunInfo struct {
	RunName      string    `yaml:"run_name"`
	RunUUID      string    `yaml:"run_uuid"`
	Created      time.Time `yaml:"created"`
	Species      string    `yaml:"species"`
	TileCount    int       `yaml:"tile_count"`
	LabeledCount int       `yaml:"labeled_count"`
	WarningCount int       `yaml:"warning_count,omitempty"`
	Status       string    `yaml:"status"`
}

// RunIndex represents the index.yaml file at the results root.
type RunIndex struct {
	Runs []RunInfo `yaml:"runs"`
}

// UpdateRunIndex adds or updates a run entry in index.yaml.
func (m *Manager) UpdateRunIndex(info RunInfo) error {
	indexPath := GetIndexPath(m.baseDir)

	// Read existing index
	var index RunIndex
	data, err := os.ReadFile(indexPath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to read run index: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, &index); err != nil {
			return fmt.Errorf("failed to parse run index: %w", err)
		}
	}

	// Check if the run already exists in the index
	found := false
	for i, r := range index.Runs {
		if r.RunName == info.RunName {
			// Update existing entry
			index.Runs[i] = info
			found = true
			break
		}
	}

	if !found {
		// Append new entry
		index.Runs = append(index.Runs, info)
	}

	// Sort runs by name (timestamp-first naming ensures chronological order)
	sort.Slice(index.Runs, func(i, j int) bool {
		return index.Runs[i].RunName > index.Runs[j].RunName // Newest first
	})

	// Write updated index
	output, err := yaml.Marshal(&index)
	if err != nil {
		return fmt.Errorf("failed to marshal run index: %w", err)
	}

	if err := os.WriteFile(indexPath, output, 0644); err != nil {
		return fmt.Errorf("failed to write run index: %w", err)
	}

	return nil
}
