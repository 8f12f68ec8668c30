package annotations

import (
	"github.com/paulmach/orb/geojson"

	"github.com/dtnitsch/wsi-tile-labeler/models"
)

// classificationKind discriminates the shapes QuPath uses for the
// classification property.
type classificationKind int

const (
	// classificationMissing covers absent values and unsupported types.
	classificationMissing classificationKind = iota
	// classificationNamed is an object carrying a "name" field.
	classificationNamed
	// classificationString is a bare string label.
	classificationString
)

// classification is the tagged form of a feature's classification property.
// It exists only during resolution; downstream code sees the final label.
type classification struct {
	kind classificationKind
	name string
}

// classify inspects the raw classification value from feature properties.
func classify(raw any) classification {
	switch v := raw.(type) {
	case map[string]any:
		name, ok := v["name"].(string)
		if !ok {
			return classification{kind: classificationNamed, name: models.ClassificationUnknown}
		}
		return classification{kind: classificationNamed, name: name}
	case string:
		return classification{kind: classificationString, name: v}
	default:
		return classification{kind: classificationMissing}
	}
}

// ResolveClassification returns the label for a feature, in resolution order:
// the classification object's name, a bare classification string, the feature
// name when objectType is "annotation", and finally "Unknown".
func ResolveClassification(props geojson.Properties) string {
	c := classify(props["classification"])
	switch c.kind {
	case classificationNamed, classificationString:
		return c.name
	}

	if objectType, _ := props["objectType"].(string); objectType == "annotation" {
		if name, ok := props["name"].(string); ok {
			return name
		}
	}
	return models.ClassificationUnknown
}

// passthroughProperties copies feature properties that are not part of
// classification resolution, renamed to property_<key>.
func passthroughProperties(props geojson.Properties) map[string]any {
	passthrough := make(map[string]any)
	for key, value := range props {
		switch key {
		case "classification", "objectType", "name":
			continue
		}
		passthrough["property_"+key] = value
	}
	return passthrough
}
