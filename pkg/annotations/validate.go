package annotations

import (
	"encoding/json"
	"fmt"
	"os"
)

// validateSampleSize is how many leading features get structural checks.
const validateSampleSize = 5

// Report is the outcome of GeoJSON structure validation. Any error makes the
// document invalid; warnings do not.
type Report struct {
	Valid        bool
	FeatureCount int
	Errors       []string
	Warnings     []string
}

// ValidateFile checks that a file holds a structurally sound GeoJSON
// FeatureCollection. Read and syntax failures are folded into the report
// rather than returned as errors.
func ValidateFile(path string) Report {
	data, err := os.ReadFile(path)
	if err != nil {
		return Report{Errors: []string{fmt.Sprintf("failed to read file: %v", err)}}
	}
	return Validate(data)
}

// Validate checks the document type, the features array, and geometry
// presence on the first few features. A feature without properties is only
// a warning; everything else stops validation at the first error.
func Validate(data []byte) Report {
	var report Report

	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		report.Errors = append(report.Errors, fmt.Sprintf("invalid JSON: %v", err))
		return report
	}

	docType, ok := doc["type"]
	if !ok {
		report.Errors = append(report.Errors, "missing 'type' field")
		return report
	}
	if docType != "FeatureCollection" {
		report.Errors = append(report.Errors, fmt.Sprintf("expected FeatureCollection, got %v", docType))
		return report
	}

	rawFeatures, ok := doc["features"]
	if !ok {
		report.Errors = append(report.Errors, "missing 'features' field")
		return report
	}
	features, ok := rawFeatures.([]any)
	if !ok {
		report.Errors = append(report.Errors, "'features' is not an array")
		return report
	}
	report.FeatureCount = len(features)

	for i, rawFeature := range features {
		if i >= validateSampleSize {
			break
		}
		feature, ok := rawFeature.(map[string]any)
		if !ok {
			report.Errors = append(report.Errors, fmt.Sprintf("feature %d is not an object", i))
			return report
		}
		if _, ok := feature["geometry"]; !ok {
			report.Errors = append(report.Errors, fmt.Sprintf("feature %d missing geometry", i))
			return report
		}
		if _, ok := feature["properties"]; !ok {
			report.Warnings = append(report.Warnings, fmt.Sprintf("feature %d missing properties", i))
		}
	}

	report.Valid = true
	return report
}
