package species

import "github.com/dtnitsch/wsi-tile-labeler/models"

// builtinSpecies returns the built-in rodent records in registration order.
// Follicle size ranges are diameters in microns; ovary sizes in millimeters.
func builtinSpecies() []models.SpeciesInfo {
	return []models.SpeciesInfo{
		{
			CommonName:     "Mouse",
			ScientificName: "Mus musculus",
			SpeciesCode:    "mouse",
			MotherID:       "M-musculus",
			TypicalFollicleTypes: []string{
				"primordial", "primary", "secondary", "antral",
			},
			FollicleSizeRanges: map[string]models.SizeRange{
				"primordial": {Min: 15, Max: 25},
				"primary":    {Min: 25, Max: 40},
				"secondary":  {Min: 40, Max: 150},
				"antral":     {Min: 150, Max: 400},
			},
			OvarySizeMM:              models.SizeRange{Min: 2, Max: 4},
			RecommendedTileSize:      256,
			RecommendedMagnification: "20x",
			StainNormalization:       "standardize",
			AgeGroups:                []string{"juvenile", "young_adult", "adult", "aged"},
			Notes:                    "Most common laboratory model. Extensive literature available.",
		},
		{
			CommonName:     "Rat",
			ScientificName: "Rattus norvegicus",
			SpeciesCode:    "rat",
			MotherID:       "R-norvegicus",
			TypicalFollicleTypes: []string{
				"primordial", "primary", "secondary", "antral", "preovulatory",
			},
			FollicleSizeRanges: map[string]models.SizeRange{
				"primordial":   {Min: 20, Max: 30},
				"primary":      {Min: 30, Max: 50},
				"secondary":    {Min: 50, Max: 200},
				"antral":       {Min: 200, Max: 600},
				"preovulatory": {Min: 600, Max: 1000},
			},
			OvarySizeMM:              models.SizeRange{Min: 4, Max: 7},
			RecommendedTileSize:      512,
			RecommendedMagnification: "10x",
			StainNormalization:       "standardize",
			AgeGroups:                []string{"juvenile", "young_adult", "adult", "aged"},
			Notes:                    "Larger follicles than mouse. May need larger tiles.",
		},
		{
			CommonName:     "Naked Mole Rat",
			ScientificName: "Heterocephalus glaber",
			SpeciesCode:    "nmr",
			MotherID:       "H-glaber",
			TypicalFollicleTypes: []string{
				"primordial", "transitional_primordial", "primary",
				"transitional_primary", "secondary", "multilayer",
			},
			FollicleSizeRanges: map[string]models.SizeRange{
				"primordial":              {Min: 15, Max: 25},
				"transitional_primordial": {Min: 20, Max: 30},
				"primary":                 {Min: 25, Max: 40},
				"transitional_primary":    {Min: 35, Max: 50},
				"secondary":               {Min: 45, Max: 80},
				"multilayer":              {Min: 80, Max: 150},
			},
			OvarySizeMM:              models.SizeRange{Min: 1, Max: 3},
			RecommendedTileSize:      256,
			RecommendedMagnification: "20x",
			StainNormalization:       "standardize",
			AgeGroups:                []string{"juvenile", "adult"},
			Notes:                    "Unique reproductive biology. Limited antral development.",
		},
		{
			CommonName:     "Guinea Pig",
			ScientificName: "Cavia porcellus",
			SpeciesCode:    "guinea_pig",
			MotherID:       "C-porcellus",
			TypicalFollicleTypes: []string{
				"primordial", "primary", "secondary", "antral",
			},
			FollicleSizeRanges: map[string]models.SizeRange{
				"primordial": {Min: 20, Max: 35},
				"primary":    {Min: 35, Max: 60},
				"secondary":  {Min: 60, Max: 250},
				"antral":     {Min: 250, Max: 800},
			},
			OvarySizeMM:              models.SizeRange{Min: 5, Max: 10},
			RecommendedTileSize:      512,
			RecommendedMagnification: "10x",
			StainNormalization:       "standardize",
			AgeGroups:                []string{"juvenile", "adult"},
			Notes:                    "Large ovaries with prominent antral follicles.",
		},
		{
			CommonName:     "Syrian Hamster",
			ScientificName: "Mesocricetus auratus",
			SpeciesCode:    "hamster",
			MotherID:       "M-auratus",
			TypicalFollicleTypes: []string{
				"primordial", "primary", "secondary", "antral",
			},
			FollicleSizeRanges: map[string]models.SizeRange{
				"primordial": {Min: 15, Max: 25},
				"primary":    {Min: 25, Max: 45},
				"secondary":  {Min: 45, Max: 180},
				"antral":     {Min: 180, Max: 500},
			},
			OvarySizeMM:              models.SizeRange{Min: 3, Max: 5},
			RecommendedTileSize:      256,
			RecommendedMagnification: "20x",
			StainNormalization:       "standardize",
			AgeGroups:                []string{"juvenile", "adult"},
			Notes:                    "Regular estrous cycles. Good model for reproductive studies.",
		},
	}
}

// builtinAliases maps common alternative names to canonical codes. Keys are
// already in normalized form (lowercase, underscores).
var builtinAliases = map[string]string{
	"mus_musculus":          "mouse",
	"m_musculus":            "mouse",
	"rattus_norvegicus":     "rat",
	"r_norvegicus":          "rat",
	"heterocephalus_glaber": "nmr",
	"h_glaber":              "nmr",
	"naked_mole_rat":        "nmr",
	"cavia_porcellus":       "guinea_pig",
	"c_porcellus":           "guinea_pig",
	"mesocricetus_auratus":  "hamster",
	"m_auratus":             "hamster",
	"syrian_hamster":        "hamster",
}
