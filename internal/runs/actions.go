package runs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"

	dbpkg "github.com/dtnitsch/wsi-tile-labeler/pkg/db"
)

// RunsAction lists recent imports from the ledger
func RunsAction(c *cli.Context) error {
	database, err := dbpkg.Open()
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	limit := c.Int("limit")
	runs, err := database.ListRuns(limit)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	if len(runs) == 0 {
		fmt.Println("No runs found")
		fmt.Println("\nGet started: wtl import --annotations export.geojson --tiles tiles.csv --species mouse")
		return nil
	}

	// Print table header
	fmt.Printf("%-6s %-20s %-12s %-8s %-8s %-10s %-10s %-30s\n",
		"ID", "Created", "Species", "Tiles", "Labeled", "Warnings", "Status", "Run Dir")
	fmt.Println(strings.Repeat("-", 120))

	// Print each run
	for _, r := range runs {
		fmt.Printf("%-6d %-20s %-12s %-8d %-8d %-10d %-10s %-30s\n",
			r.RunID,
			r.CreatedAt.Format("2006-01-02 15:04:05"),
			r.Species,
			r.TileCount,
			r.LabeledCount,
			r.WarningCount,
			r.Status,
			r.RunDir,
		)
	}

	fmt.Printf("\nTotal: %d runs\n", len(runs))
	fmt.Printf("\nTip: Use 'wtl runs show <id>' to see details\n")

	return nil
}

// ShowAction shows details for a specific run
func ShowAction(c *cli.Context) error {
	database, err := dbpkg.Open()
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	runID, err := GetRunIDOrLatest(c, database)
	if err != nil {
		return err
	}

	// Get run info
	run, err := database.GetRunByID(runID)
	if err != nil {
		return fmt.Errorf("failed to get run: %w", err)
	}

	// Get label distribution
	labels, err := database.GetRunLabels(runID)
	if err != nil {
		return fmt.Errorf("failed to get run labels: %w", err)
	}

	// Get warnings
	warnings, err := database.GetRunWarnings(runID)
	if err != nil {
		return fmt.Errorf("failed to get run warnings: %w", err)
	}

	// Get artifact pointers
	files, err := database.ListRunFiles(runID)
	if err != nil {
		return fmt.Errorf("failed to get run files: %w", err)
	}

	// Print run details
	fmt.Printf("Run %d (%s)\n", run.RunID, run.RunUUID)
	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("Created:      %s\n", run.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("Directory:    %s\n", run.RunDir)
	fmt.Printf("Species:      %s\n", run.Species)
	fmt.Printf("Annotations:  %s (%d features)\n", run.AnnotationsPath, run.AnnotationCount)
	fmt.Printf("Tiles:        %s\n", run.TilesPath)
	fmt.Printf("Labeled:      %d of %d tiles (%d background)\n",
		run.LabeledCount, run.TileCount, run.BackgroundCount)
	fmt.Printf("Overlap:      >= %.2f\n", run.OverlapThreshold)
	fmt.Printf("Scale:        %g\n", run.CoordinateScale)
	fmt.Printf("Status:       %s\n", run.Status)

	// Print label distribution
	if len(labels) > 0 {
		fmt.Printf("\nLabel Distribution (%d):\n", len(labels))
		fmt.Println(strings.Repeat("-", 60))
		for _, l := range labels {
			fmt.Printf("%-26s %8d tiles %6.1f%%\n", l.Label, l.TileCount, l.Pct)
		}
	}

	// Print warnings if any
	if len(warnings) > 0 {
		fmt.Printf("\nWarnings (%d):\n", len(warnings))
		fmt.Println(strings.Repeat("-", 60))
		for i, w := range warnings {
			fmt.Printf("%2d. [%s] %s\n", i+1, w.Kind, w.Message)
		}
	}

	// Print artifact pointers
	if len(files) > 0 {
		fmt.Printf("\nArtifacts (%d):\n", len(files))
		fmt.Println(strings.Repeat("-", 60))
		for _, f := range files {
			fmt.Printf("%-16s %s (%d bytes)\n", f.TypeName, f.FilePath, f.SizeBytes)
		}
	}

	fmt.Printf("\nTip: Use 'wtl runs get %d --file summary' to see the summary YAML\n", runID)

	return nil
}

// GetRunAction retrieves and prints a run's artifact files
func GetRunAction(c *cli.Context) error {
	database, err := dbpkg.Open()
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	runID, err := GetRunIDOrLatest(c, database)
	if err != nil {
		return err
	}

	// Get run to report its directory on misses
	run, err := database.GetRunByID(runID)
	if err != nil {
		return fmt.Errorf("failed to get run: %w", err)
	}

	// Determine which artifact to read
	fileType := strings.ToLower(c.String("file"))
	var typeName string
	switch fileType {
	case "", "summary":
		typeName = "import_summary"
	case "tiles":
		typeName = "labeled_tiles"
	case "annotations":
		typeName = "annotations"
	case "review":
		typeName = "review_sample"
	default:
		return fmt.Errorf("unknown file type: %s (use: summary, tiles, annotations, or review)", fileType)
	}

	file, err := database.GetRunFileByType(runID, typeName)
	if err != nil {
		return err
	}

	// Read and print file
	data, err := os.ReadFile(filepath.Clean(file.FilePath))
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("file not found: %s\nRun directory: %s", file.FilePath, run.RunDir)
		}
		return fmt.Errorf("failed to read file: %w", err)
	}

	// Print run reminder as comment
	fmt.Printf("# Run: %d\n", runID)
	fmt.Print(string(data))

	return nil
}

// QueryRunsAction queries runs with filters
func QueryRunsAction(c *cli.Context) error {
	database, err := dbpkg.Open()
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	todayOnly := c.Bool("today")
	warningsOnly := c.Bool("warnings")
	species := c.String("species")

	runs, err := database.QueryRuns(todayOnly, warningsOnly, species)
	if err != nil {
		return fmt.Errorf("failed to query runs: %w", err)
	}

	if len(runs) == 0 {
		fmt.Println("No runs found matching filters")
		if todayOnly {
			fmt.Println("  - Filter: today only")
		}
		if warningsOnly {
			fmt.Println("  - Filter: with warnings")
		}
		if species != "" {
			fmt.Printf("  - Filter: species '%s'\n", species)
		}
		return nil
	}

	// Print table header
	fmt.Printf("%-6s %-20s %-12s %-8s %-8s %-10s %-10s %-30s\n",
		"ID", "Created", "Species", "Tiles", "Labeled", "Warnings", "Status", "Run Dir")
	fmt.Println(strings.Repeat("-", 120))

	// Print each run
	for _, r := range runs {
		fmt.Printf("%-6d %-20s %-12s %-8d %-8d %-10d %-10s %-30s\n",
			r.RunID,
			r.CreatedAt.Format("2006-01-02 15:04:05"),
			r.Species,
			r.TileCount,
			r.LabeledCount,
			r.WarningCount,
			r.Status,
			r.RunDir,
		)
	}

	fmt.Printf("\nFound: %d runs\n", len(runs))

	return nil
}
