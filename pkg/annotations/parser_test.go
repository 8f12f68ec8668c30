package annotations

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/dtnitsch/wsi-tile-labeler/models"
)

func mustCollection(t *testing.T, doc string) *geojson.FeatureCollection {
	t.Helper()
	fc, err := geojson.UnmarshalFeatureCollection([]byte(doc))
	if err != nil {
		t.Fatalf("UnmarshalFeatureCollection() error = %v", err)
	}
	return fc
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestParseSquare(t *testing.T) {
	doc := `{
		"type": "FeatureCollection",
		"features": [{
			"type": "Feature",
			"geometry": {"type": "Polygon", "coordinates": [[[0,0],[10,0],[10,10],[0,10],[0,0]]]},
			"properties": {"classification": {"name": "primordial"}, "objectType": "annotation"}
		}]
	}`

	got := Parse(mustCollection(t, doc), 1.0)
	if len(got) != 1 {
		t.Fatalf("Parse() returned %d annotations, want 1", len(got))
	}

	a := got[0]
	if a.Classification != "primordial" {
		t.Errorf("Classification = %q, want %q", a.Classification, "primordial")
	}
	if a.GeometryType != "Polygon" {
		t.Errorf("GeometryType = %q, want %q", a.GeometryType, "Polygon")
	}
	if a.XMin != 0 || a.YMin != 0 || a.XMax != 10 || a.YMax != 10 {
		t.Errorf("bounds = (%v,%v,%v,%v), want (0,0,10,10)", a.XMin, a.YMin, a.XMax, a.YMax)
	}
	if !almostEqual(a.CentroidX, 5) || !almostEqual(a.CentroidY, 5) {
		t.Errorf("centroid = (%v,%v), want (5,5)", a.CentroidX, a.CentroidY)
	}
	if !almostEqual(a.AreaUm2, 100) {
		t.Errorf("AreaUm2 = %v, want 100", a.AreaUm2)
	}
}

func TestParseCoordinateScale(t *testing.T) {
	doc := `{
		"type": "FeatureCollection",
		"features": [{
			"type": "Feature",
			"geometry": {"type": "Polygon", "coordinates": [[[0,0],[10,0],[10,10],[0,10],[0,0]]]},
			"properties": {}
		}]
	}`

	// Area scales by the square of microns-per-pixel; bounds stay in pixels.
	got := Parse(mustCollection(t, doc), 0.5)
	if !almostEqual(got[0].AreaUm2, 25) {
		t.Errorf("AreaUm2 = %v, want 25", got[0].AreaUm2)
	}
	if got[0].XMax != 10 {
		t.Errorf("XMax = %v, want 10", got[0].XMax)
	}

	// Zero or negative scale falls back to 1.0.
	got = Parse(mustCollection(t, doc), 0)
	if !almostEqual(got[0].AreaUm2, 100) {
		t.Errorf("AreaUm2 with zero scale = %v, want 100", got[0].AreaUm2)
	}
}

func TestParseClockwiseRing(t *testing.T) {
	// QuPath exports image-space rings in either winding; area must be
	// positive regardless.
	doc := `{
		"type": "FeatureCollection",
		"features": [{
			"type": "Feature",
			"geometry": {"type": "Polygon", "coordinates": [[[0,0],[0,10],[10,10],[10,0],[0,0]]]},
			"properties": {}
		}]
	}`

	got := Parse(mustCollection(t, doc), 1.0)
	if !almostEqual(got[0].AreaUm2, 100) {
		t.Errorf("AreaUm2 = %v, want 100", got[0].AreaUm2)
	}
}

func TestParseMultiPolygon(t *testing.T) {
	doc := `{
		"type": "FeatureCollection",
		"features": [{
			"type": "Feature",
			"geometry": {"type": "MultiPolygon", "coordinates": [
				[[[0,0],[1,0],[1,1],[0,1],[0,0]]],
				[[[5,5],[6,5],[6,6],[5,6],[5,5]]]
			]},
			"properties": {"classification": "stroma"}
		}]
	}`

	got := Parse(mustCollection(t, doc), 1.0)
	if got[0].GeometryType != "MultiPolygon" {
		t.Errorf("GeometryType = %q, want %q", got[0].GeometryType, "MultiPolygon")
	}
	if !almostEqual(got[0].AreaUm2, 2) {
		t.Errorf("AreaUm2 = %v, want 2", got[0].AreaUm2)
	}
	if got[0].XMax != 6 || got[0].YMax != 6 {
		t.Errorf("bounds max = (%v,%v), want (6,6)", got[0].XMax, got[0].YMax)
	}
}

func TestParsePropertiesPassthrough(t *testing.T) {
	doc := `{
		"type": "FeatureCollection",
		"features": [{
			"type": "Feature",
			"geometry": {"type": "Polygon", "coordinates": [[[0,0],[1,0],[1,1],[0,1],[0,0]]]},
			"properties": {
				"classification": {"name": "antral"},
				"objectType": "annotation",
				"name": "region 1",
				"grade": "high",
				"reviewed": true
			}
		}]
	}`

	got := Parse(mustCollection(t, doc), 1.0)
	props := got[0].Properties
	if len(props) != 2 {
		t.Fatalf("Properties has %d entries, want 2: %v", len(props), props)
	}
	if props["property_grade"] != "high" {
		t.Errorf("property_grade = %v, want %q", props["property_grade"], "high")
	}
	if props["property_reviewed"] != true {
		t.Errorf("property_reviewed = %v, want true", props["property_reviewed"])
	}
}

func TestParseSkipsMissingGeometry(t *testing.T) {
	fc := geojson.NewFeatureCollection()
	fc.Append(geojson.NewFeature(orb.Polygon{{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {0, 0}}}))
	fc.Append(&geojson.Feature{Properties: geojson.Properties{"classification": "ignored"}})

	got := Parse(fc, 1.0)
	if len(got) != 1 {
		t.Errorf("Parse() returned %d annotations, want 1", len(got))
	}
}

func TestParseEmptyCollection(t *testing.T) {
	got := Parse(mustCollection(t, `{"type":"FeatureCollection","features":[]}`), 1.0)
	if len(got) != 0 {
		t.Errorf("Parse() returned %d annotations, want 0", len(got))
	}
}

func TestResolveClassification(t *testing.T) {
	tests := []struct {
		name  string
		props geojson.Properties
		want  string
	}{
		{
			"named object",
			geojson.Properties{"classification": map[string]any{"name": "primordial", "color": []any{255.0, 0.0, 0.0}}},
			"primordial",
		},
		{
			"named object without name",
			geojson.Properties{"classification": map[string]any{"color": []any{255.0, 0.0, 0.0}}},
			models.ClassificationUnknown,
		},
		{
			"bare string",
			geojson.Properties{"classification": "stroma"},
			"stroma",
		},
		{
			"annotation object type with name",
			geojson.Properties{"objectType": "annotation", "name": "corpus luteum"},
			"corpus luteum",
		},
		{
			"annotation object type without name",
			geojson.Properties{"objectType": "annotation"},
			models.ClassificationUnknown,
		},
		{
			"non-annotation object type",
			geojson.Properties{"objectType": "detection", "name": "ignored"},
			models.ClassificationUnknown,
		},
		{
			"unsupported classification type falls through",
			geojson.Properties{"classification": 7.0, "objectType": "annotation", "name": "fallback"},
			"fallback",
		},
		{
			"empty properties",
			geojson.Properties{},
			models.ClassificationUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveClassification(tt.props); got != tt.want {
				t.Errorf("ResolveClassification() = %q, want %q", got, tt.want)
			}
		})
	}
}
