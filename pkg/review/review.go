// Package review samples labeled tiles for manual audit, lowest-confidence
// assignments first.
package review

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"math/rand"
	"sort"

	"github.com/dtnitsch/wsi-tile-labeler/models"
	"github.com/dtnitsch/wsi-tile-labeler/pkg/manifest"
)

// DefaultSampleSize is how many tiles a review export draws by default.
const DefaultSampleSize = 100

// DefaultSeed drives sampling when the caller does not pick one, so repeated
// exports over the same manifest agree.
const DefaultSeed = 42

// Columns is the fixed projection of the review CSV.
var Columns = []string{
	"tile_id", "tile_path", "label", "label_confidence", "x", "y", "tissue_ratio",
}

// Sample draws up to n tiles without replacement under the given seed and
// returns them sorted by label confidence ascending, the tiles most in need
// of a human eye first. When n covers the whole input, everything is
// returned. The input slice is not modified.
func Sample(tiles []*models.Tile, n int, seed int64) []*models.Tile {
	if n < 0 {
		n = 0
	}

	var sampled []*models.Tile
	if n >= len(tiles) {
		sampled = append(sampled, tiles...)
	} else {
		r := rand.New(rand.NewSource(seed))
		for _, i := range r.Perm(len(tiles))[:n] {
			sampled = append(sampled, tiles[i])
		}
	}

	// Stable keeps the draw order for equal confidences, so output depends
	// only on input and seed.
	sort.SliceStable(sampled, func(i, j int) bool {
		return sampled[i].LabelConfidence < sampled[j].LabelConfidence
	})
	return sampled
}

// CSV renders tiles in the fixed review projection.
func CSV(tiles []*models.Tile) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(Columns); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}
	for _, tile := range tiles {
		row := []string{
			tile.ID,
			tile.Path,
			tile.Label,
			manifest.FormatFloat(tile.LabelConfidence),
			manifest.FormatFloat(tile.X),
			manifest.FormatFloat(tile.Y),
			manifest.FormatFloat(tile.TissueRatio),
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Export samples tiles and renders the review CSV in one step, returning the
// rendered bytes and how many tiles were drawn.
func Export(tiles []*models.Tile, n int, seed int64) ([]byte, int, error) {
	sampled := Sample(tiles, n, seed)
	data, err := CSV(sampled)
	if err != nil {
		return nil, 0, err
	}
	return data, len(sampled), nil
}
