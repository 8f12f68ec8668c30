// Package models defines data structures shared across the labeling pipeline.
package models

// ImportConfig holds runtime configuration for an import run.
// All values come from CLI flags, not external config files.
type ImportConfig struct {
	AnnotationsPath  string  // QuPath GeoJSON export
	TilesPath        string  // tile manifest CSV
	Species          string  // species code for vocabulary validation
	CoordinateScale  float64 // microns per pixel; areas scale by its square
	OverlapThreshold float64 // minimum overlap ratio for a label assignment
	OutputPath       string  // labeled manifest destination ("" = run directory)
	ReviewSample     int     // tiles to sample for manual review (0 = skip)
	Seed             int64   // review sampling seed
	WorkerCount      int     // goroutines for the tile matching phase
}
