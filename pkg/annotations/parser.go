// Package annotations parses QuPath GeoJSON exports into a flat annotation
// table with derived geometry columns.
package annotations

import (
	"fmt"
	"math"
	"os"

	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"

	"github.com/dtnitsch/wsi-tile-labeler/models"
)

// Load reads and unmarshals a GeoJSON FeatureCollection from disk.
func Load(path string) (*geojson.FeatureCollection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read GeoJSON: %w", err)
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse GeoJSON: %w", err)
	}
	return fc, nil
}

// Parse flattens a feature collection into annotation records. The coordinate
// scale is microns per pixel; areas are multiplied by its square, so a scale
// of 1.0 leaves pixel units. Features without geometry are skipped.
func Parse(fc *geojson.FeatureCollection, coordinateScale float64) []models.Annotation {
	if coordinateScale <= 0 {
		coordinateScale = 1.0
	}

	annotations := make([]models.Annotation, 0, len(fc.Features))
	for _, feature := range fc.Features {
		if feature == nil || feature.Geometry == nil {
			continue
		}

		centroid, area := planar.CentroidArea(feature.Geometry)
		bound := feature.Geometry.Bound()

		annotations = append(annotations, models.Annotation{
			Classification: ResolveClassification(feature.Properties),
			GeometryType:   feature.Geometry.GeoJSONType(),
			Geometry:       feature.Geometry,
			XMin:           bound.Min.X(),
			YMin:           bound.Min.Y(),
			XMax:           bound.Max.X(),
			YMax:           bound.Max.Y(),
			CentroidX:      centroid.X(),
			CentroidY:      centroid.Y(),
			AreaUm2:        math.Abs(area) * coordinateScale * coordinateScale,
			Properties:     passthroughProperties(feature.Properties),
		})
	}
	return annotations
}

// ParseFile loads and parses a GeoJSON file in one step.
func ParseFile(path string, coordinateScale float64) ([]models.Annotation, error) {
	fc, err := Load(path)
	if err != nil {
		return nil, err
	}
	return Parse(fc, coordinateScale), nil
}
