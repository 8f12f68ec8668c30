package importer

import (
	"time"

	"github.com/dtnitsch/wsi-tile-labeler/models"
	"github.com/dtnitsch/wsi-tile-labeler/pkg/labelstats"
	"github.com/dtnitsch/wsi-tile-labeler/pkg/manifest"
)

// Warning is a non-fatal finding surfaced by the import pipeline.
type Warning struct {
	Kind    string `yaml:"kind"`
	Message string `yaml:"message"`
}

// outcome holds everything the import pipeline produced before it is written
// to disk and the ledger.
type outcome struct {
	Annotations     []models.Annotation
	Manifest        *manifest.Manifest
	Distribution    []labelstats.LabelShare
	LabeledCount    int
	BackgroundCount int
	Warnings        []Warning
}

// LabelCount is one label's share in the summary YAML.
type LabelCount struct {
	Label string  `yaml:"label"`
	Tiles int     `yaml:"tiles"`
	Pct   float64 `yaml:"pct"`
}

// Summary is the structured output written as import-summary.yaml.
type Summary struct {
	RunUUID         string    `yaml:"run_uuid"`
	Created         time.Time `yaml:"created"`
	Species         string    `yaml:"species"`
	AnnotationsPath string    `yaml:"annotations_path"`
	TilesPath       string    `yaml:"tiles_path"`

	AnnotationCount int `yaml:"annotation_count"`
	TileCount       int `yaml:"tile_count"`
	LabeledCount    int `yaml:"labeled_count"`
	BackgroundCount int `yaml:"background_count"`

	OverlapThreshold float64 `yaml:"overlap_threshold"`
	CoordinateScale  float64 `yaml:"coordinate_scale"`

	LabelDistribution []LabelCount      `yaml:"label_distribution"`
	Warnings          []Warning         `yaml:"warnings,omitempty"`
	Artifacts         map[string]string `yaml:"artifacts"`

	TotalTimeSeconds float64 `yaml:"total_time_seconds"`
	Status           string  `yaml:"status"`
}
