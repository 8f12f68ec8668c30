package species

import "github.com/dtnitsch/wsi-tile-labeler/models"

// Comparison holds parallel per-species columns for a side-by-side view.
// Unknown codes are skipped, so all slices share one length.
type Comparison struct {
	Species       []string // common names
	FollicleTypes []int    // count of typical follicle types
	OvarySizeMM   []models.SizeRange
	TileSize      []int
	Magnification []string
}

// Len returns the number of species that resolved into the comparison.
func (c Comparison) Len() int {
	return len(c.Species)
}

// Compare collects characteristics for each known code in the given order.
// Unknown codes log a warning through Lookup and are left out.
func (r *Registry) Compare(codes []string) Comparison {
	var cmp Comparison
	for _, code := range codes {
		info, ok := r.Lookup(code)
		if !ok {
			continue
		}
		cmp.Species = append(cmp.Species, info.CommonName)
		cmp.FollicleTypes = append(cmp.FollicleTypes, len(info.TypicalFollicleTypes))
		cmp.OvarySizeMM = append(cmp.OvarySizeMM, info.OvarySizeMM)
		cmp.TileSize = append(cmp.TileSize, info.RecommendedTileSize)
		cmp.Magnification = append(cmp.Magnification, info.RecommendedMagnification)
	}
	return cmp
}
