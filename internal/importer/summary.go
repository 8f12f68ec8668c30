package importer

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dtnitsch/wsi-tile-labeler/models"
)

// buildSummary assembles the run summary from the pipeline outcome. Artifact
// paths are filled in by the caller as files are written.
func buildSummary(out *outcome, config *models.ImportConfig, runUUID string, created time.Time, elapsed float64, status string) Summary {
	dist := make([]LabelCount, 0, len(out.Distribution))
	for _, share := range out.Distribution {
		dist = append(dist, LabelCount{Label: share.Label, Tiles: share.Count, Pct: share.Percent})
	}

	return Summary{
		RunUUID:           runUUID,
		Created:           created,
		Species:           config.Species,
		AnnotationsPath:   config.AnnotationsPath,
		TilesPath:         config.TilesPath,
		AnnotationCount:   len(out.Annotations),
		TileCount:         len(out.Manifest.Tiles),
		LabeledCount:      out.LabeledCount,
		BackgroundCount:   out.BackgroundCount,
		OverlapThreshold:  config.OverlapThreshold,
		CoordinateScale:   config.CoordinateScale,
		LabelDistribution: dist,
		Warnings:          out.Warnings,
		Artifacts:         make(map[string]string),
		TotalTimeSeconds:  elapsed,
		Status:            status,
	}
}

// YAML renders the summary for import-summary.yaml.
func (s Summary) YAML() ([]byte, error) {
	data, err := yaml.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal summary to YAML: %w", err)
	}
	return data, nil
}
