package species

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/wsi-tile-labeler/models"
	speciespkg "github.com/dtnitsch/wsi-tile-labeler/pkg/species"
)

// ListAction prints the registered species as a table.
func ListAction(c *cli.Context) error {
	registry := speciespkg.NewRegistry(nil)
	codes := registry.List()

	fmt.Printf("%-12s %-18s %-26s %-16s %-10s\n",
		"CODE", "COMMON NAME", "SCIENTIFIC NAME", "FOLLICLE TYPES", "TILE SIZE")
	fmt.Println(strings.Repeat("-", 86))

	for _, code := range codes {
		info, ok := registry.Lookup(code)
		if !ok {
			continue
		}
		fmt.Printf("%-12s %-18s %-26s %-16d %-10d\n",
			info.SpeciesCode,
			info.CommonName,
			info.ScientificName,
			len(info.TypicalFollicleTypes),
			info.RecommendedTileSize,
		)
	}

	fmt.Printf("\nTotal: %d species\n", len(codes))
	fmt.Printf("\nTip: Use 'wtl species info <code>' to see details\n")

	return nil
}

// InfoAction prints the full record for one species.
func InfoAction(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("species name required\nUsage: wtl species info <name>\nExample: wtl species info mouse OR wtl species info \"Mus musculus\"")
	}

	registry := speciespkg.NewRegistry(nil)
	name := c.Args().First()

	code, ok := registry.Resolve(name)
	if !ok {
		return fmt.Errorf("unknown species: %s\nUse 'wtl species list' to see available species", name)
	}
	info, _ := registry.Lookup(code)

	fmt.Printf("%s (%s)\n", info.CommonName, info.ScientificName)
	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("Code:            %s\n", info.SpeciesCode)
	fmt.Printf("MOTHER ID:       %s\n", info.MotherID)
	fmt.Printf("Ovary Size:      %s mm\n", formatRange(info.OvarySizeMM))
	fmt.Printf("Tile Size:       %d px\n", info.RecommendedTileSize)
	fmt.Printf("Magnification:   %s\n", info.RecommendedMagnification)
	fmt.Printf("Stain Norm:      %s\n", info.StainNormalization)
	if info.AvailableSamples > 0 {
		fmt.Printf("Samples:         %d\n", info.AvailableSamples)
	}
	if len(info.AgeGroups) > 0 {
		fmt.Printf("Age Groups:      %s\n", strings.Join(info.AgeGroups, ", "))
	}

	fmt.Printf("\nFollicle Types (%d):\n", len(info.TypicalFollicleTypes))
	fmt.Println(strings.Repeat("-", 60))
	for i, follicleType := range info.TypicalFollicleTypes {
		if sizes, ok := info.FollicleSizeRanges[follicleType]; ok {
			fmt.Printf("%2d. %-24s %s um\n", i+1, follicleType, formatRange(sizes))
		} else {
			fmt.Printf("%2d. %s\n", i+1, follicleType)
		}
	}

	if info.Notes != "" {
		fmt.Printf("\nNotes: %s\n", info.Notes)
	}

	fmt.Printf("\nTip: Use 'wtl species labelmap %s' to see the training label map\n", info.SpeciesCode)

	return nil
}

// ResolveAction maps a free-form species name to its canonical code.
func ResolveAction(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("species name required\nUsage: wtl species resolve <name>\nExample: wtl species resolve \"Rattus norvegicus\"")
	}

	registry := speciespkg.NewRegistry(nil)
	name := c.Args().First()

	code, ok := registry.Resolve(name)
	if !ok {
		return fmt.Errorf("unknown species: %s\nUse 'wtl species list' to see available species", name)
	}

	info, _ := registry.Lookup(code)
	fmt.Printf("%s -> %s (%s)\n", name, code, info.CommonName)

	return nil
}

// LabelmapAction prints the class-ID-to-label mapping for a species, one
// "id: label" line per class in training order.
func LabelmapAction(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("species name required\nUsage: wtl species labelmap <name>\nExample: wtl species labelmap nmr")
	}

	registry := speciespkg.NewRegistry(nil)
	name := c.Args().First()

	code, ok := registry.Resolve(name)
	if !ok {
		return fmt.Errorf("unknown species: %s\nUse 'wtl species list' to see available species", name)
	}

	labelmap := registry.Labelmap(code)
	for id := 0; id < len(labelmap); id++ {
		fmt.Printf("%d: %s\n", id, labelmap[id])
	}

	return nil
}

// CompareAction prints a side-by-side characteristics table for the named
// species, or for every registered species when none are named.
func CompareAction(c *cli.Context) error {
	registry := speciespkg.NewRegistry(nil)

	names := c.Args().Slice()
	if len(names) == 0 {
		names = registry.List()
	}

	codes := make([]string, 0, len(names))
	for _, name := range names {
		code, ok := registry.Resolve(name)
		if !ok {
			return fmt.Errorf("unknown species: %s\nUse 'wtl species list' to see available species", name)
		}
		codes = append(codes, code)
	}

	cmp := registry.Compare(codes)
	if cmp.Len() == 0 {
		return fmt.Errorf("no species to compare\nUse 'wtl species list' to see available species")
	}

	headers := append([]string{"Characteristic"}, cmp.Species...)
	rows := [][]string{
		characteristicRow("Follicle types", cmp.Len(), func(i int) string {
			return strconv.Itoa(cmp.FollicleTypes[i])
		}),
		characteristicRow("Ovary size (mm)", cmp.Len(), func(i int) string {
			return formatRange(cmp.OvarySizeMM[i])
		}),
		characteristicRow("Tile size (px)", cmp.Len(), func(i int) string {
			return strconv.Itoa(cmp.TileSize[i])
		}),
		characteristicRow("Magnification", cmp.Len(), func(i int) string {
			return cmp.Magnification[i]
		}),
	}

	aligns := make([]columnAlignment, len(headers))
	for i := 1; i < len(aligns); i++ {
		aligns[i] = alignRight
	}

	fmt.Println(renderTable(headers, rows, aligns))

	return nil
}

// characteristicRow builds one table row: the characteristic name followed by
// a cell per compared species.
func characteristicRow(name string, n int, cell func(int) string) []string {
	row := make([]string, 0, n+1)
	row = append(row, name)
	for i := 0; i < n; i++ {
		row = append(row, cell(i))
	}
	return row
}

// formatRange renders an inclusive interval like "2-4" with no trailing zeros.
func formatRange(r models.SizeRange) string {
	return strconv.FormatFloat(r.Min, 'f', -1, 64) + "-" + strconv.FormatFloat(r.Max, 'f', -1, 64)
}
