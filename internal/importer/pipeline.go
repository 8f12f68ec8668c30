package importer

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/dtnitsch/wsi-tile-labeler/models"
	"github.com/dtnitsch/wsi-tile-labeler/pkg/annotations"
	"github.com/dtnitsch/wsi-tile-labeler/pkg/labelstats"
	"github.com/dtnitsch/wsi-tile-labeler/pkg/manifest"
	"github.com/dtnitsch/wsi-tile-labeler/pkg/matcher"
	"github.com/dtnitsch/wsi-tile-labeler/pkg/species"
)

// run executes the import pipeline: parse annotations, load the tile
// manifest, match tiles concurrently, then validate the resulting labels
// against the species' follicle types. Validation problems become warnings,
// never errors.
func run(logger *slog.Logger, registry *species.Registry, config *models.ImportConfig) (*outcome, error) {
	logger.Info("Importing QuPath annotations", "species", config.Species, "annotations", config.AnnotationsPath, "tiles", config.TilesPath)

	annots, err := annotations.ParseFile(config.AnnotationsPath, config.CoordinateScale)
	if err != nil {
		return nil, err
	}

	classifications := make([]string, len(annots))
	for i, a := range annots {
		classifications[i] = a.Classification
	}
	classCounts := labelstats.Count(classifications)
	logger.Info("Parsed annotations", "count", len(annots), "classes", len(classCounts))
	for _, share := range labelstats.Distribution(classCounts, len(annots)) {
		logger.Info("Annotation class", "classification", share.Label, "count", share.Count)
	}

	man, err := manifest.Load(config.TilesPath)
	if err != nil {
		return nil, err
	}
	logger.Info("Loaded tiles from manifest", "count", len(man.Tiles))

	m := matcher.New(logger, config.OverlapThreshold)
	counts := matchTiles(logger, m, annots, man.Tiles, config.WorkerCount)

	distribution := labelstats.Distribution(counts, len(man.Tiles))
	logger.Info("Tile label distribution", "labels", len(distribution))
	for _, share := range distribution {
		logger.Info("Label share", "label", share.Label, "tiles", share.Count, "pct", fmt.Sprintf("%.1f", share.Percent))
	}

	out := &outcome{
		Annotations:     annots,
		Manifest:        man,
		Distribution:    distribution,
		BackgroundCount: counts[models.LabelBackground],
	}
	out.LabeledCount = len(man.Tiles) - out.BackgroundCount

	out.Warnings = validateLabels(logger, registry, config.Species, counts)

	return out, nil
}

// validateLabels checks assigned labels against the species' follicle types
// plus background. An unregistered species skips the check with a warning.
func validateLabels(logger *slog.Logger, registry *species.Registry, speciesCode string, counts map[string]int) []Warning {
	info, ok := registry.Lookup(speciesCode)
	if !ok {
		return []Warning{{
			Kind:    "unknown_species",
			Message: fmt.Sprintf("species %s not in registry, label validation skipped", speciesCode),
		}}
	}

	valid := make(map[string]bool, len(info.TypicalFollicleTypes)+1)
	for _, t := range info.TypicalFollicleTypes {
		valid[t] = true
	}
	valid[models.LabelBackground] = true

	var invalid []string
	for label := range counts {
		if !valid[label] {
			invalid = append(invalid, label)
		}
	}
	if len(invalid) == 0 {
		return nil
	}
	sort.Strings(invalid)

	validList := append(append([]string{}, info.TypicalFollicleTypes...), models.LabelBackground)
	logger.Warn("Found invalid labels for species", "species", speciesCode, "labels", invalid)
	logger.Warn("Valid labels", "labels", validList)

	return []Warning{{
		Kind: "invalid_labels",
		Message: fmt.Sprintf("labels not valid for %s: %s (valid: %s)",
			speciesCode, strings.Join(invalid, ", "), strings.Join(validList, ", ")),
	}}
}
