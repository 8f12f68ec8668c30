// Package matcher assigns annotation labels to slide tiles by spatial
// overlap.
package matcher

import (
	"log/slog"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/clip"
	"github.com/paulmach/orb/planar"

	"github.com/dtnitsch/wsi-tile-labeler/models"
)

// DefaultOverlapThreshold is the minimum overlap ratio for a label
// assignment when none is configured.
const DefaultOverlapThreshold = 0.5

// Matcher scores tiles against a fixed annotation set. Matching only reads
// the annotations and writes the tile it is handed, so one Matcher may be
// shared across goroutines as long as each tile belongs to a single caller.
type Matcher struct {
	logger    *slog.Logger
	threshold float64
}

// New returns a matcher with the given assignment threshold. A nil logger
// disables per-pair debug logging.
func New(logger *slog.Logger, threshold float64) *Matcher {
	return &Matcher{logger: logger, threshold: threshold}
}

// Threshold returns the configured minimum overlap ratio.
func (m *Matcher) Threshold() float64 {
	return m.threshold
}

// MatchTile finds the annotation with the strictly greatest overlap ratio
// against the tile; ties keep the earliest annotation in input order. The
// tile gets that annotation's classification when the best ratio reaches the
// threshold, otherwise background with zero confidence. A pair whose overlap
// cannot be computed counts as zero overlap.
func (m *Matcher) MatchTile(annotations []models.Annotation, tile *models.Tile) {
	bestOverlap := 0.0
	bestLabel := models.LabelBackground

	tileArea := tile.Width * tile.Height
	if tileArea > 0 {
		bound := tileBound(tile)
		for _, annot := range annotations {
			ratio, ok := overlapRatio(bound, tileArea, annot.Geometry)
			if !ok {
				m.logDebug("Error calculating overlap", "tile_id", tile.ID, "classification", annot.Classification)
				continue
			}
			if ratio > bestOverlap {
				bestOverlap = ratio
				bestLabel = annot.Classification
			}
		}
	} else {
		m.logDebug("Tile has zero area, keeping background", "tile_id", tile.ID)
	}

	if bestOverlap >= m.threshold {
		tile.Label = bestLabel
		tile.LabelConfidence = bestOverlap
	} else {
		tile.Label = models.LabelBackground
		tile.LabelConfidence = 0
	}
}

// tileBound is the tile's axis-aligned rectangle in slide coordinates.
func tileBound(tile *models.Tile) orb.Bound {
	return orb.Bound{
		Min: orb.Point{tile.X, tile.Y},
		Max: orb.Point{tile.X + tile.Width, tile.Y + tile.Height},
	}
}

// overlapRatio is intersection(tile, annotation) area over tile area. Tiles
// are axis-aligned, so the intersection reduces to a rectangle clip. Clipping
// can panic on degenerate rings; such pairs report ok=false so the scan
// treats them as zero overlap and moves on.
func overlapRatio(bound orb.Bound, tileArea float64, geom orb.Geometry) (ratio float64, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			ratio, ok = 0, false
		}
	}()

	if geom == nil {
		return 0, false
	}
	clipped := clip.Geometry(bound, geom)
	if clipped == nil {
		return 0, true
	}
	return math.Abs(planar.Area(clipped)) / tileArea, true
}

func (m *Matcher) logDebug(msg string, args ...any) {
	if m.logger != nil {
		m.logger.Debug(msg, args...)
	}
}
