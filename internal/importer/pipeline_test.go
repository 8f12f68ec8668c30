package importer

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/paulmach/orb"

	"github.com/dtnitsch/wsi-tile-labeler/models"
	"github.com/dtnitsch/wsi-tile-labeler/pkg/matcher"
	"github.com/dtnitsch/wsi-tile-labeler/pkg/species"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func gridTiles(n int) []*models.Tile {
	tiles := make([]*models.Tile, n)
	for i := range tiles {
		tiles[i] = &models.Tile{
			ID:     fmt.Sprintf("tile_%d", i),
			X:      float64(i%10) * 256,
			Y:      float64(i/10) * 256,
			Width:  256,
			Height: 256,
		}
	}
	return tiles
}

func rectPolygon(xMin, yMin, xMax, yMax float64) orb.Polygon {
	return orb.Polygon{{
		{xMin, yMin},
		{xMax, yMin},
		{xMax, yMax},
		{xMin, yMax},
		{xMin, yMin},
	}}
}

func TestMatchTilesDeterministicAcrossWorkerCounts(t *testing.T) {
	annots := []models.Annotation{
		{Classification: "primordial", Geometry: rectPolygon(0, 0, 512, 512)},
		{Classification: "antral", Geometry: rectPolygon(512, 0, 1280, 256)},
		{Classification: "primary", Geometry: rectPolygon(0, 512, 2560, 768)},
	}
	m := matcher.New(nil, 0.5)

	serial := gridTiles(100)
	serialCounts := matchTiles(discardLogger(), m, annots, serial, 1)

	for _, workers := range []int{2, 4, 8} {
		pooled := gridTiles(100)
		pooledCounts := matchTiles(discardLogger(), m, annots, pooled, workers)

		for i := range serial {
			if pooled[i].Label != serial[i].Label {
				t.Errorf("workers=%d tile %d label = %q, want %q", workers, i, pooled[i].Label, serial[i].Label)
			}
			if pooled[i].LabelConfidence != serial[i].LabelConfidence {
				t.Errorf("workers=%d tile %d confidence = %v, want %v", workers, i, pooled[i].LabelConfidence, serial[i].LabelConfidence)
			}
		}

		if len(pooledCounts) != len(serialCounts) {
			t.Fatalf("workers=%d got %d distinct labels, want %d", workers, len(pooledCounts), len(serialCounts))
		}
		for label, want := range serialCounts {
			if pooledCounts[label] != want {
				t.Errorf("workers=%d count[%s] = %d, want %d", workers, label, pooledCounts[label], want)
			}
		}
	}
}

func TestMatchTilesZeroWorkersFallsBackToOne(t *testing.T) {
	annots := []models.Annotation{
		{Classification: "secondary", Geometry: rectPolygon(0, 0, 256, 256)},
	}
	tiles := gridTiles(3)

	counts := matchTiles(discardLogger(), matcher.New(nil, 0.5), annots, tiles, 0)

	if tiles[0].Label != "secondary" {
		t.Errorf("tile 0 label = %q, want %q", tiles[0].Label, "secondary")
	}
	total := 0
	for _, n := range counts {
		total += n
	}
	if total != 3 {
		t.Errorf("counted %d tiles, want 3", total)
	}
}

const pipelineGeoJSON = `{
  "type": "FeatureCollection",
  "features": [
    {
      "type": "Feature",
      "geometry": {"type": "Polygon", "coordinates": [[[0,0],[256,0],[256,256],[0,256],[0,0]]]},
      "properties": {"objectType": "annotation", "classification": {"name": "primordial"}}
    },
    {
      "type": "Feature",
      "geometry": {"type": "Polygon", "coordinates": [[[256,0],[512,0],[512,256],[256,256],[256,0]]]},
      "properties": {"objectType": "annotation", "classification": {"name": "corpus_luteum"}}
    }
  ]
}`

const pipelineManifest = `tile_id,tile_path,x,y,width,height,tissue_ratio
tile_0,tiles/tile_0.png,0,0,256,256,0.9
tile_1,tiles/tile_1.png,256,0,256,256,0.8
tile_2,tiles/tile_2.png,1024,1024,256,256,0.1
`

func writePipelineInputs(t *testing.T) (string, string) {
	t.Helper()

	dir := t.TempDir()
	geojsonPath := filepath.Join(dir, "export.geojson")
	manifestPath := filepath.Join(dir, "tiles.csv")

	if err := os.WriteFile(geojsonPath, []byte(pipelineGeoJSON), 0644); err != nil {
		t.Fatalf("failed to write geojson: %v", err)
	}
	if err := os.WriteFile(manifestPath, []byte(pipelineManifest), 0644); err != nil {
		t.Fatalf("failed to write manifest: %v", err)
	}
	return geojsonPath, manifestPath
}

func TestRunPipeline(t *testing.T) {
	geojsonPath, manifestPath := writePipelineInputs(t)

	config := &models.ImportConfig{
		AnnotationsPath:  geojsonPath,
		TilesPath:        manifestPath,
		Species:          "mouse",
		CoordinateScale:  1.0,
		OverlapThreshold: 0.5,
		WorkerCount:      2,
	}

	out, err := run(discardLogger(), species.NewRegistry(nil), config)
	if err != nil {
		t.Fatalf("run() error = %v", err)
	}

	if len(out.Annotations) != 2 {
		t.Errorf("got %d annotations, want 2", len(out.Annotations))
	}
	if len(out.Manifest.Tiles) != 3 {
		t.Fatalf("got %d tiles, want 3", len(out.Manifest.Tiles))
	}

	wantLabels := map[string]string{
		"tile_0": "primordial",
		"tile_1": "corpus_luteum",
		"tile_2": "background",
	}
	for _, tile := range out.Manifest.Tiles {
		if tile.Label != wantLabels[tile.ID] {
			t.Errorf("%s label = %q, want %q", tile.ID, tile.Label, wantLabels[tile.ID])
		}
	}
	if out.Manifest.Tiles[0].LabelConfidence != 1.0 {
		t.Errorf("tile_0 confidence = %v, want 1.0", out.Manifest.Tiles[0].LabelConfidence)
	}

	if out.LabeledCount != 2 {
		t.Errorf("LabeledCount = %d, want 2", out.LabeledCount)
	}
	if out.BackgroundCount != 1 {
		t.Errorf("BackgroundCount = %d, want 1", out.BackgroundCount)
	}
	if len(out.Distribution) != 3 {
		t.Errorf("got %d distribution entries, want 3", len(out.Distribution))
	}

	// corpus_luteum is not a mouse follicle type
	if len(out.Warnings) != 1 {
		t.Fatalf("got %d warnings, want 1: %+v", len(out.Warnings), out.Warnings)
	}
	if out.Warnings[0].Kind != "invalid_labels" {
		t.Errorf("warning kind = %q, want %q", out.Warnings[0].Kind, "invalid_labels")
	}
	if !strings.Contains(out.Warnings[0].Message, "corpus_luteum") {
		t.Errorf("warning message %q does not name the invalid label", out.Warnings[0].Message)
	}
}

func TestRunPipelineUnknownSpecies(t *testing.T) {
	geojsonPath, manifestPath := writePipelineInputs(t)

	config := &models.ImportConfig{
		AnnotationsPath:  geojsonPath,
		TilesPath:        manifestPath,
		Species:          "wombat",
		CoordinateScale:  1.0,
		OverlapThreshold: 0.5,
		WorkerCount:      1,
	}

	out, err := run(discardLogger(), species.NewRegistry(nil), config)
	if err != nil {
		t.Fatalf("run() error = %v", err)
	}

	if len(out.Warnings) != 1 {
		t.Fatalf("got %d warnings, want 1", len(out.Warnings))
	}
	if out.Warnings[0].Kind != "unknown_species" {
		t.Errorf("warning kind = %q, want %q", out.Warnings[0].Kind, "unknown_species")
	}
}

func TestRunPipelineMissingAnnotations(t *testing.T) {
	_, manifestPath := writePipelineInputs(t)

	config := &models.ImportConfig{
		AnnotationsPath:  filepath.Join(t.TempDir(), "missing.geojson"),
		TilesPath:        manifestPath,
		Species:          "mouse",
		OverlapThreshold: 0.5,
		WorkerCount:      1,
	}

	if _, err := run(discardLogger(), species.NewRegistry(nil), config); err == nil {
		t.Fatal("run() error = nil, want read failure")
	}
}

func TestValidateLabels(t *testing.T) {
	registry := species.NewRegistry(nil)

	// All labels valid for mouse
	warnings := validateLabels(discardLogger(), registry, "mouse", map[string]int{
		"primordial": 10, "antral": 5, "background": 85,
	})
	if len(warnings) != 0 {
		t.Errorf("got %d warnings for valid labels, want 0", len(warnings))
	}

	// preovulatory is a rat type, not a mouse type
	warnings = validateLabels(discardLogger(), registry, "mouse", map[string]int{
		"preovulatory": 3, "background": 97,
	})
	if len(warnings) != 1 {
		t.Fatalf("got %d warnings, want 1", len(warnings))
	}
	if warnings[0].Kind != "invalid_labels" {
		t.Errorf("warning kind = %q, want %q", warnings[0].Kind, "invalid_labels")
	}
	if !strings.Contains(warnings[0].Message, "preovulatory") {
		t.Errorf("warning message %q does not name the label", warnings[0].Message)
	}

	// Same labels are fine for rat
	warnings = validateLabels(discardLogger(), registry, "rat", map[string]int{
		"preovulatory": 3, "background": 97,
	})
	if len(warnings) != 0 {
		t.Errorf("got %d warnings for rat, want 0", len(warnings))
	}
}

func TestBuildSummary(t *testing.T) {
	geojsonPath, manifestPath := writePipelineInputs(t)

	config := &models.ImportConfig{
		AnnotationsPath:  geojsonPath,
		TilesPath:        manifestPath,
		Species:          "mouse",
		CoordinateScale:  0.5,
		OverlapThreshold: 0.5,
		WorkerCount:      1,
	}

	out, err := run(discardLogger(), species.NewRegistry(nil), config)
	if err != nil {
		t.Fatalf("run() error = %v", err)
	}

	created := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)
	summary := buildSummary(out, config, "aaaa1111", created, 1.5, "warnings")

	if summary.RunUUID != "aaaa1111" {
		t.Errorf("RunUUID = %q, want %q", summary.RunUUID, "aaaa1111")
	}
	if !summary.Created.Equal(created) {
		t.Errorf("Created = %v, want %v", summary.Created, created)
	}
	if summary.AnnotationCount != 2 {
		t.Errorf("AnnotationCount = %d, want 2", summary.AnnotationCount)
	}
	if summary.TileCount != 3 {
		t.Errorf("TileCount = %d, want 3", summary.TileCount)
	}
	if summary.CoordinateScale != 0.5 {
		t.Errorf("CoordinateScale = %v, want 0.5", summary.CoordinateScale)
	}
	if len(summary.LabelDistribution) != 3 {
		t.Errorf("got %d label distribution entries, want 3", len(summary.LabelDistribution))
	}
	if summary.Status != "warnings" {
		t.Errorf("Status = %q, want %q", summary.Status, "warnings")
	}
	if summary.TotalTimeSeconds != 1.5 {
		t.Errorf("TotalTimeSeconds = %v, want 1.5", summary.TotalTimeSeconds)
	}

	data, err := summary.YAML()
	if err != nil {
		t.Fatalf("YAML() error = %v", err)
	}
	if !strings.Contains(string(data), "run_uuid: aaaa1111") {
		t.Errorf("summary YAML missing run_uuid line:\n%s", data)
	}
	if !strings.Contains(string(data), "label_distribution:") {
		t.Errorf("summary YAML missing label_distribution block:\n%s", data)
	}
}
