package models

import "github.com/paulmach/orb"

// Label vocabulary constants shared by the parser, matcher, and exporters.
const (
	// LabelBackground is assigned to tiles with no qualifying annotation overlap.
	LabelBackground = "background"
	// ClassificationUnknown is the fallback when a GeoJSON feature carries no
	// resolvable classification name.
	ClassificationUnknown = "Unknown"
)

// Annotation is one pathologist-drawn region parsed from a QuPath GeoJSON
// export. Geometry keeps slide pixel coordinates; the derived fields (bounds,
// centroid, area) are computed once at parse time.
type Annotation struct {
	Classification string
	GeometryType   string // raw GeoJSON type: Polygon, MultiPolygon, ...
	Geometry       orb.Geometry

	XMin, YMin float64
	XMax, YMax float64
	CentroidX  float64
	CentroidY  float64

	// AreaUm2 is the geometry area multiplied by the coordinate scale squared,
	// giving square microns when the scale is microns per pixel.
	AreaUm2 float64

	// Properties carries non-classification feature properties through to the
	// annotation table, keyed "property_<name>".
	Properties map[string]any
}
