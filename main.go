package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/wsi-tile-labeler/internal/importer"
	"github.com/dtnitsch/wsi-tile-labeler/internal/review"
	"github.com/dtnitsch/wsi-tile-labeler/internal/runs"
	"github.com/dtnitsch/wsi-tile-labeler/internal/species"
	"github.com/dtnitsch/wsi-tile-labeler/pkg/artifacts"
	"github.com/dtnitsch/wsi-tile-labeler/pkg/db"
	"github.com/dtnitsch/wsi-tile-labeler/pkg/help"
	"github.com/dtnitsch/wsi-tile-labeler/pkg/matcher"
	reviewpkg "github.com/dtnitsch/wsi-tile-labeler/pkg/review"
)

func main() {
	app := &cli.App{
		Name:  "wtl",
		Usage: "Label whole-slide image tiles from QuPath annotations",
		Commands: []*cli.Command{
			{
				Name:  "import",
				Usage: "Import QuPath annotations and label a tile manifest",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "annotations",
						Usage: "QuPath GeoJSON export `FILE`",
					},
					&cli.StringFlag{
						Name:  "tiles",
						Usage: "Tile manifest `CSV` with x, y, width, height columns",
					},
					&cli.StringFlag{
						Name:  "species",
						Usage: "Species code or name (mouse, rat, nmr, guinea_pig, hamster)",
					},
					&cli.Float64Flag{
						Name:  "scale",
						Value: 1.0,
						Usage: "Scale factor applied to annotation coordinates",
					},
					&cli.Float64Flag{
						Name:  "overlap-threshold",
						Value: matcher.DefaultOverlapThreshold,
						Usage: "Minimum overlap ratio for a tile to take a label",
					},
					&cli.StringFlag{
						Name:  "out",
						Usage: "Also write the labeled manifest to `FILE`",
					},
					&cli.StringFlag{
						Name:  "output-dir",
						Value: artifacts.DefaultBaseDir,
						Usage: "Directory for run artifacts",
					},
					&cli.IntFlag{
						Name:  "review-sample",
						Value: 0,
						Usage: "Also export N tiles for manual review",
					},
					&cli.Int64Flag{
						Name:  "seed",
						Value: reviewpkg.DefaultSeed,
						Usage: "Seed for the review sample",
					},
					&cli.IntFlag{
						Name:  "workers",
						Value: 4,
						Usage: "Concurrent matching workers",
					},
					&cli.BoolFlag{
						Name:  "no-db",
						Usage: "Skip recording the run in the ledger",
					},
					&cli.BoolFlag{
						Name:  "quiet",
						Usage: "Only log errors",
					},
				},
				Action: importer.ImportAction,
			},
			{
				Name:  "validate",
				Usage: "Validate a QuPath GeoJSON export without importing",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "annotations",
						Usage: "QuPath GeoJSON export `FILE`",
					},
				},
				Action: importer.ValidateAction,
			},
			{
				Name:  "review",
				Usage: "Draw a seeded review sample from a labeled tile manifest",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "tiles",
						Usage: "Labeled tile manifest `CSV`",
					},
					&cli.StringFlag{
						Name:  "out",
						Usage: "Review CSV `FILE`",
					},
					&cli.IntFlag{
						Name:  "sample-size",
						Value: reviewpkg.DefaultSampleSize,
						Usage: "Number of tiles to sample",
					},
					&cli.Int64Flag{
						Name:  "seed",
						Value: reviewpkg.DefaultSeed,
						Usage: "Seed for reproducible samples",
					},
					&cli.BoolFlag{
						Name:  "quiet",
						Usage: "Only log errors",
					},
				},
				Action: review.ReviewAction,
			},
			{
				Name:  "species",
				Usage: "Inspect the species registry",
				Subcommands: []*cli.Command{
					{
						Name:   "list",
						Usage:  "List registered species",
						Action: species.ListAction,
					},
					{
						Name:      "info",
						Usage:     "Show one species' full record",
						ArgsUsage: "<name>",
						Action:    species.InfoAction,
					},
					{
						Name:      "resolve",
						Usage:     "Resolve a name or alias to its canonical code",
						ArgsUsage: "<name>",
						Action:    species.ResolveAction,
					},
					{
						Name:      "labelmap",
						Usage:     "Print the training labelmap for a species",
						ArgsUsage: "<name>",
						Action:    species.LabelmapAction,
					},
					{
						Name:      "compare",
						Usage:     "Compare species characteristics side by side",
						ArgsUsage: "[name...]",
						Action:    species.CompareAction,
					},
				},
			},
			{
				Name:  "runs",
				Usage: "Inspect recorded imports",
				Subcommands: []*cli.Command{
					{
						Name:  "list",
						Usage: "List recent runs",
						Flags: []cli.Flag{
							&cli.IntFlag{
								Name:  "limit",
								Value: 20,
								Usage: "Maximum runs to list",
							},
						},
						Action: runs.RunsAction,
					},
					{
						Name:      "show",
						Usage:     "Show details for a run (latest if omitted)",
						ArgsUsage: "[run_id]",
						Action:    runs.ShowAction,
					},
					{
						Name:      "get",
						Usage:     "Print a run's artifact file",
						ArgsUsage: "[run_id]",
						Flags: []cli.Flag{
							&cli.StringFlag{
								Name:  "file",
								Value: "summary",
								Usage: "Artifact to print: summary, tiles, annotations, or review",
							},
						},
						Action: runs.GetRunAction,
					},
					{
						Name:  "query",
						Usage: "Filter runs",
						Flags: []cli.Flag{
							&cli.BoolFlag{
								Name:  "today",
								Usage: "Only runs from today",
							},
							&cli.BoolFlag{
								Name:  "warnings",
								Usage: "Only runs with warnings",
							},
							&cli.StringFlag{
								Name:  "species",
								Usage: "Only runs for a species code",
							},
						},
						Action: runs.QueryRunsAction,
					},
					{
						Name:   "init",
						Usage:  "Initialize the run ledger schema",
						Action: initDBAction,
					},
				},
			},
			{
				Name:   "coldstart",
				Usage:  "Print the quick start reference",
				Action: coldstartAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func coldstartAction(c *cli.Context) error {
	fmt.Print(help.ColdstartYAML)
	return nil
}

func initDBAction(c *cli.Context) error {
	database, err := db.Open()
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	if err := database.InitSchema(); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}

	fmt.Printf("Database initialized: %s\n", database.Path())
	return nil
}
