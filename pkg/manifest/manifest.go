// Package manifest reads and writes tile manifest CSVs. Columns the tool does
// not interpret are carried through to the output unchanged.
package manifest

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/dtnitsch/wsi-tile-labeler/models"
)

// requiredColumns must be present in every tile manifest.
var requiredColumns = []string{"x", "y", "width", "height"}

// typedColumns are the columns parsed into Tile fields; everything else lands
// in Tile.Extra verbatim.
var typedColumns = map[string]bool{
	"tile_id": true, "tile_path": true,
	"x": true, "y": true, "width": true, "height": true,
	"tissue_ratio": true, "label": true, "label_confidence": true,
}

// Manifest is a parsed tile manifest plus the input column order, so output
// keeps the schema the tiler produced.
type Manifest struct {
	Columns []string
	Tiles   []*models.Tile
}

// Load reads a tile manifest CSV from disk.
func Load(path string) (*Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open tile manifest: %w", err)
	}
	defer f.Close()

	m, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read tile manifest %s: %w", path, err)
	}
	return m, nil
}

// Read parses a tile manifest CSV. The header must contain x, y, width, and
// height; tiles without a label column default to background.
func Read(r io.Reader) (*Manifest, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("manifest is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		header[i] = name
		index[name] = i
	}

	var missing []string
	for _, name := range requiredColumns {
		if _, ok := index[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}

	m := &Manifest{Columns: header}
	for row := 1; ; row++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}

		tile, err := parseTile(header, index, record, row)
		if err != nil {
			return nil, err
		}
		m.Tiles = append(m.Tiles, tile)
	}
	return m, nil
}

func parseTile(header []string, index map[string]int, record []string, row int) (*models.Tile, error) {
	cell := func(name string) string {
		i, ok := index[name]
		if !ok {
			return ""
		}
		return record[i]
	}

	tile := &models.Tile{
		ID:    cell("tile_id"),
		Path:  cell("tile_path"),
		Label: models.LabelBackground,
	}

	var err error
	if tile.X, err = parseFloatCell(cell("x"), "x", row); err != nil {
		return nil, err
	}
	if tile.Y, err = parseFloatCell(cell("y"), "y", row); err != nil {
		return nil, err
	}
	if tile.Width, err = parseFloatCell(cell("width"), "width", row); err != nil {
		return nil, err
	}
	if tile.Height, err = parseFloatCell(cell("height"), "height", row); err != nil {
		return nil, err
	}

	if raw := cell("tissue_ratio"); raw != "" {
		if tile.TissueRatio, err = parseFloatCell(raw, "tissue_ratio", row); err != nil {
			return nil, err
		}
	}
	if raw := cell("label"); raw != "" {
		tile.Label = raw
	}
	if raw := cell("label_confidence"); raw != "" {
		if tile.LabelConfidence, err = parseFloatCell(raw, "label_confidence", row); err != nil {
			return nil, err
		}
	}

	for i, name := range header {
		if typedColumns[name] {
			continue
		}
		if tile.Extra == nil {
			tile.Extra = make(map[string]string)
		}
		tile.Extra[name] = record[i]
	}
	return tile, nil
}

func parseFloatCell(raw, column string, row int) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, fmt.Errorf("row %d: invalid %s value %q", row, column, raw)
	}
	return v, nil
}

// CSV renders the manifest with its original columns, appending label and
// label_confidence when the input lacked them.
func (m *Manifest) CSV() ([]byte, error) {
	columns := append([]string{}, m.Columns...)
	hasColumn := make(map[string]bool, len(columns))
	for _, name := range columns {
		hasColumn[name] = true
	}
	for _, name := range []string{"label", "label_confidence"} {
		if !hasColumn[name] {
			columns = append(columns, name)
		}
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(columns); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	row := make([]string, len(columns))
	for _, tile := range m.Tiles {
		for i, name := range columns {
			row[i] = tileCell(tile, name)
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

func tileCell(tile *models.Tile, column string) string {
	switch column {
	case "tile_id":
		return tile.ID
	case "tile_path":
		return tile.Path
	case "x":
		return FormatFloat(tile.X)
	case "y":
		return FormatFloat(tile.Y)
	case "width":
		return FormatFloat(tile.Width)
	case "height":
		return FormatFloat(tile.Height)
	case "tissue_ratio":
		return FormatFloat(tile.TissueRatio)
	case "label":
		return tile.Label
	case "label_confidence":
		return FormatFloat(tile.LabelConfidence)
	}
	return tile.Extra[column]
}

// FormatFloat renders manifest numbers without exponent notation, using the
// shortest representation that round-trips.
func FormatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
