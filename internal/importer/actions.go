package importer

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/wsi-tile-labeler/internal/common"
	"github.com/dtnitsch/wsi-tile-labeler/models"
	"github.com/dtnitsch/wsi-tile-labeler/pkg/annotations"
	"github.com/dtnitsch/wsi-tile-labeler/pkg/artifacts"
	"github.com/dtnitsch/wsi-tile-labeler/pkg/db"
	"github.com/dtnitsch/wsi-tile-labeler/pkg/review"
	"github.com/dtnitsch/wsi-tile-labeler/pkg/species"
)

// artifactFile pairs an artifact's on-disk path with its content so the
// ledger can record size and hash without re-reading the file.
type artifactFile struct {
	path string
	data []byte
}

// artifactOrder fixes the ledger insert order for run files.
var artifactOrder = []string{"labeled_tiles", "annotations", "review_sample", "import_summary"}

func ImportAction(c *cli.Context) error {
	logLevel := slog.LevelInfo
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
	startTime := time.Now()

	if !c.IsSet("annotations") || !c.IsSet("tiles") || !c.IsSet("species") {
		fmt.Fprintln(os.Stderr, "Error: --annotations, --tiles, and --species are required")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Usage:")
		fmt.Fprintln(os.Stderr, `  wtl import --annotations export.geojson --tiles tiles.csv --species mouse`)
		fmt.Fprintln(os.Stderr, `  wtl import --annotations export.geojson --tiles tiles.csv --species rat --scale 0.25`)
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Need help? Run: wtl import --help")
		os.Exit(1)
	}

	config := &models.ImportConfig{
		AnnotationsPath:  c.String("annotations"),
		TilesPath:        c.String("tiles"),
		Species:          c.String("species"),
		CoordinateScale:  c.Float64("scale"),
		OverlapThreshold: c.Float64("overlap-threshold"),
		OutputPath:       c.String("out"),
		ReviewSample:     c.Int("review-sample"),
		Seed:             c.Int64("seed"),
		WorkerCount:      c.Int("workers"),
	}

	registry := species.NewRegistry(logger)

	// Resolve names like "Naked Mole-Rat" or "Mus musculus" to registry codes
	if code, ok := registry.Resolve(config.Species); ok {
		config.Species = code
	} else {
		logger.Warn("Species not recognized, label validation will be skipped", "species", config.Species)
	}

	manager, err := artifacts.NewManager(c.String("output-dir"))
	if err != nil {
		logger.Error("failed to initialize artifact manager", "error", err)
		os.Exit(2)
	}

	runUUID := uuid.New().String()
	created := time.Now()
	runName := artifacts.RunName(created, runUUID)
	if err := manager.EnsureRunDir(runName); err != nil {
		logger.Error("failed to create run directory", "error", err)
		os.Exit(2)
	}
	runDir := manager.RunDir(runName)
	logger.Info("Run directory created", "run", runName, "dir", runDir)

	out, err := run(logger, registry, config)
	if err != nil {
		logger.Error("import failed", "error", err)
		os.Exit(2)
	}

	// Marshal artifacts first, then save; the ledger records what was written.
	files := make(map[string]artifactFile)

	labeledCSV, err := out.Manifest.CSV()
	if err != nil {
		logger.Error("failed to render labeled tiles", "error", err)
		os.Exit(2)
	}
	labeledPath := manager.ArtifactPath(runName, "labeled-tiles.csv")
	if err := manager.SaveFile(labeledPath, labeledCSV); err != nil {
		logger.Error("failed to save labeled tiles", "error", err)
		os.Exit(2)
	}
	files["labeled_tiles"] = artifactFile{path: labeledPath, data: labeledCSV}

	// Optional copy to a caller-chosen path
	if config.OutputPath != "" {
		if err := manager.SaveFile(config.OutputPath, labeledCSV); err != nil {
			logger.Warn("Failed to write labeled tiles copy", "path", config.OutputPath, "error", err)
		} else {
			logger.Info("Labeled tiles copied", "path", config.OutputPath)
		}
	}

	annotationsCSV, err := annotations.CSV(out.Annotations)
	if err != nil {
		logger.Error("failed to render annotation table", "error", err)
		os.Exit(2)
	}
	annotationsPath := manager.ArtifactPath(runName, "annotations.csv")
	if err := manager.SaveFile(annotationsPath, annotationsCSV); err != nil {
		logger.Error("failed to save annotation table", "error", err)
		os.Exit(2)
	}
	files["annotations"] = artifactFile{path: annotationsPath, data: annotationsCSV}

	if config.ReviewSample > 0 {
		reviewCSV, sampled, err := review.Export(out.Manifest.Tiles, config.ReviewSample, config.Seed)
		if err != nil {
			logger.Error("failed to render review sample", "error", err)
			os.Exit(2)
		}
		reviewPath := manager.ArtifactPath(runName, "review-sample.csv")
		if err := manager.SaveFile(reviewPath, reviewCSV); err != nil {
			logger.Error("failed to save review sample", "error", err)
			os.Exit(2)
		}
		files["review_sample"] = artifactFile{path: reviewPath, data: reviewCSV}
		logger.Info("Exported tiles for review", "count", sampled, "seed", config.Seed)
	}

	status := db.StatusSuccess
	if len(out.Warnings) > 0 {
		status = db.StatusWarnings
	}

	summary := buildSummary(out, config, runUUID, created, time.Since(startTime).Seconds(), status)
	summaryPath := manager.ArtifactPath(runName, "import-summary.yaml")
	for typeName, f := range files {
		summary.Artifacts[typeName] = f.path
	}
	summary.Artifacts["import_summary"] = summaryPath

	summaryYAML, err := summary.YAML()
	if err != nil {
		logger.Error("failed to render summary", "error", err)
		os.Exit(2)
	}
	if err := manager.SaveFile(summaryPath, summaryYAML); err != nil {
		logger.Error("failed to save summary", "error", err)
		os.Exit(2)
	}
	files["import_summary"] = artifactFile{path: summaryPath, data: summaryYAML}

	if !c.Bool("no-db") {
		recordRun(logger, config, summary, runDir, files)
	}

	if err := manager.UpdateRunIndex(artifacts.RunInfo{
		RunName:      runName,
		RunUUID:      runUUID,
		Created:      created,
		Species:      config.Species,
		TileCount:    summary.TileCount,
		LabeledCount: summary.LabeledCount,
		WarningCount: len(summary.Warnings),
		Status:       status,
	}); err != nil {
		logger.Warn("Failed to update run index", "error", err)
	}

	fmt.Printf("Run %s: %d/%d tiles labeled (%d background)\nResults: %s\n",
		runName, summary.LabeledCount, summary.TileCount, summary.BackgroundCount, runDir)

	if len(summary.Warnings) > 0 {
		fmt.Printf("\nWarnings (%d):\n", len(summary.Warnings))
		for _, w := range summary.Warnings {
			fmt.Printf("  - [%s] %s\n", w.Kind, w.Message)
		}
	}

	if !c.Bool("quiet") {
		fmt.Printf("\n\U0001F4A1 Quick start:\n")
		fmt.Printf("  wtl runs list                         # Recent imports\n")
		fmt.Printf("  wtl review --tiles %s --out review.csv  # Re-draw review sample\n", labeledPath)
		fmt.Printf("\nMore: wtl runs show\n")
	}

	return nil
}

// recordRun writes the completed run to the SQLite ledger. Ledger failures
// only warn: the import output is already on disk.
func recordRun(logger *slog.Logger, config *models.ImportConfig, summary Summary, runDir string, files map[string]artifactFile) {
	database, err := db.Open()
	if err != nil {
		logger.Warn("Failed to open run ledger, results are on disk only", "error", err)
		return
	}
	defer database.Close()

	runID, err := database.InsertRun(&db.Run{
		RunUUID:          summary.RunUUID,
		Species:          summary.Species,
		AnnotationsPath:  config.AnnotationsPath,
		TilesPath:        config.TilesPath,
		AnnotationCount:  summary.AnnotationCount,
		TileCount:        summary.TileCount,
		LabeledCount:     summary.LabeledCount,
		BackgroundCount:  summary.BackgroundCount,
		WarningCount:     len(summary.Warnings),
		OverlapThreshold: config.OverlapThreshold,
		CoordinateScale:  config.CoordinateScale,
		Status:           summary.Status,
		RunDir:           runDir,
	})
	if err != nil {
		logger.Warn("Failed to record run in ledger", "error", err)
		return
	}

	for _, lc := range summary.LabelDistribution {
		if err := database.InsertRunLabel(runID, lc.Label, lc.Tiles, lc.Pct); err != nil {
			logger.Warn("Failed to record run label", "label", lc.Label, "error", err)
		}
	}

	for _, w := range summary.Warnings {
		if err := database.InsertRunWarning(runID, w.Kind, w.Message); err != nil {
			logger.Warn("Failed to record run warning", "kind", w.Kind, "error", err)
		}
	}

	for _, typeName := range artifactOrder {
		f, ok := files[typeName]
		if !ok {
			continue
		}
		typeID, err := database.GetArtifactTypeID(typeName)
		if err != nil {
			logger.Warn("Failed to get artifact type ID", "type", typeName, "error", err)
			continue
		}
		hash := common.ContentHash(f.data)
		if _, err := database.InsertRunFile(runID, typeID, hash, f.path, int64(len(f.data))); err != nil {
			logger.Warn("Failed to record run file", "type", typeName, "error", err)
		}
	}

	logger.Info("Run recorded in ledger", "run_id", runID, "db", database.Path())
}

func ValidateAction(c *cli.Context) error {
	if !c.IsSet("annotations") {
		fmt.Fprintln(os.Stderr, "Error: --annotations is required")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Usage:")
		fmt.Fprintln(os.Stderr, `  wtl validate --annotations export.geojson`)
		os.Exit(1)
	}

	report := annotations.ValidateFile(c.String("annotations"))

	for _, w := range report.Warnings {
		fmt.Printf("Warning: %s\n", w)
	}

	if !report.Valid {
		fmt.Fprintln(os.Stderr, "GeoJSON validation failed:")
		for _, e := range report.Errors {
			fmt.Fprintf(os.Stderr, "  - %s\n", e)
		}
		os.Exit(1)
	}

	fmt.Printf("GeoJSON validation passed (%d features)\n", report.FeatureCount)
	return nil
}
