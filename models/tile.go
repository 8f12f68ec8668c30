package models

// Tile is one row of an externally produced tile manifest. The matcher writes
// Label and LabelConfidence; every other field is carried through unchanged so
// the labeled output keeps the input schema.
type Tile struct {
	ID          string
	Path        string
	X           float64
	Y           float64
	Width       float64
	Height      float64
	TissueRatio float64

	Label           string
	LabelConfidence float64

	// Extra holds manifest columns this tool does not interpret, keyed by
	// column name with their raw text values.
	Extra map[string]string
}
