package review

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/wsi-tile-labeler/pkg/manifest"
	reviewpkg "github.com/dtnitsch/wsi-tile-labeler/pkg/review"
)

// ReviewAction draws a seeded sample from a labeled tile manifest and writes
// the low-confidence-first review CSV.
func ReviewAction(c *cli.Context) error {
	logLevel := slog.LevelInfo
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	if !c.IsSet("tiles") || !c.IsSet("out") {
		fmt.Fprintln(os.Stderr, "Error: --tiles and --out are required")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Usage:")
		fmt.Fprintln(os.Stderr, `  wtl review --tiles wtl-results/runs/<run>/labeled-tiles.csv --out review.csv`)
		fmt.Fprintln(os.Stderr, `  wtl review --tiles labeled-tiles.csv --out review.csv --sample-size 50 --seed 7`)
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Need help? Run: wtl review --help")
		os.Exit(1)
	}

	tilesPath := c.String("tiles")
	outPath := c.String("out")
	sampleSize := c.Int("sample-size")
	seed := c.Int64("seed")

	man, err := manifest.Load(tilesPath)
	if err != nil {
		logger.Error("Failed to load tile manifest", "path", tilesPath, "error", err)
		os.Exit(2)
	}

	data, sampled, err := reviewpkg.Export(man.Tiles, sampleSize, seed)
	if err != nil {
		logger.Error("Failed to build review sample", "error", err)
		os.Exit(2)
	}

	if err := os.WriteFile(outPath, data, 0644); err != nil {
		logger.Error("Failed to write review CSV", "path", outPath, "error", err)
		os.Exit(2)
	}

	logger.Info("Exported tiles for review",
		"sampled", sampled,
		"total", len(man.Tiles),
		"seed", seed,
		"output", outPath)

	fmt.Printf("Exported %d of %d tiles for review: %s\n", sampled, len(man.Tiles), outPath)

	return nil
}
