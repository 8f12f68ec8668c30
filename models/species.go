package models

// SizeRange is an inclusive physical size interval.
type SizeRange struct {
	Min float64
	Max float64
}

// SpeciesInfo describes one rodent species' ovarian morphology and the
// analysis parameters recommended for its slides.
type SpeciesInfo struct {
	CommonName     string
	ScientificName string
	SpeciesCode    string
	MotherID       string // MOTHER database identifier

	TypicalFollicleTypes []string
	FollicleSizeRanges   map[string]SizeRange // diameter in microns, keyed by follicle type
	OvarySizeMM          SizeRange

	RecommendedTileSize      int
	RecommendedMagnification string
	StainNormalization       string

	AvailableSamples int
	AgeGroups        []string

	Notes string
}
