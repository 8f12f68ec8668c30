package annotations

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"sort"
	"strconv"

	"github.com/dtnitsch/wsi-tile-labeler/models"
)

// baseColumns is the fixed front of the annotation table. Passthrough
// property columns follow in sorted order.
var baseColumns = []string{
	"classification", "geometry_type",
	"x_min", "y_min", "x_max", "y_max",
	"centroid_x", "centroid_y", "area_um2",
}

// CSV renders the annotation table. Property columns are the sorted union of
// property keys across all annotations; rows without a key leave the cell
// empty.
func CSV(annotations []models.Annotation) ([]byte, error) {
	propSet := make(map[string]bool)
	for _, a := range annotations {
		for key := range a.Properties {
			propSet[key] = true
		}
	}
	propColumns := make([]string, 0, len(propSet))
	for key := range propSet {
		propColumns = append(propColumns, key)
	}
	sort.Strings(propColumns)

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := append(append([]string{}, baseColumns...), propColumns...)
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	for _, a := range annotations {
		row := []string{
			a.Classification,
			a.GeometryType,
			formatFloat(a.XMin),
			formatFloat(a.YMin),
			formatFloat(a.XMax),
			formatFloat(a.YMax),
			formatFloat(a.CentroidX),
			formatFloat(a.CentroidY),
			formatFloat(a.AreaUm2),
		}
		for _, key := range propColumns {
			value, ok := a.Properties[key]
			if !ok {
				row = append(row, "")
				continue
			}
			row = append(row, fmt.Sprint(value))
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

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
