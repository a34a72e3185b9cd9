package feature

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// maxPropertyDepth bounds recursion through nested property containers.
const maxPropertyDepth = 32

// Validate validates the provided input value.
func Validate(record Record) error {
	if record.Type != TypeFeature {
		return NewSchemaError("type", "record type must be %q, got %q", TypeFeature, record.Type)
	}
	if record.Geometry.Type != TypePoint {
		return NewSchemaError("geometry.type", "geometry type must be %q, got %q", TypePoint, record.Geometry.Type)
	}
	if len(record.Geometry.Coordinates) != 2 {
		return NewSchemaError("geometry.coordinates", "coordinates must be [longitude, latitude], got %d values", len(record.Geometry.Coordinates))
	}

	longitude := record.Geometry.Coordinates[0]
	latitude := record.Geometry.Coordinates[1]
	if math.IsNaN(longitude) || math.IsInf(longitude, 0) {
		return NewSchemaError("geometry.coordinates", "longitude must be finite")
	}
	if math.IsNaN(latitude) || math.IsInf(latitude, 0) {
		return NewSchemaError("geometry.coordinates", "latitude must be finite")
	}
	if longitude < -180 || longitude > 180 {
		return NewSchemaError("geometry.coordinates", "longitude %v out of range [-180, 180]", longitude)
	}
	if latitude < -90 || latitude > 90 {
		return NewSchemaError("geometry.coordinates", "latitude %v out of range [-90, 90]", latitude)
	}

	if record.Properties == nil {
		return NewSchemaError("properties", "properties are required")
	}

	name, ok := record.Properties[PropertyName].(string)
	if !ok || strings.TrimSpace(name) == "" {
		return NewSchemaError("properties.name", "property %q must be a non-empty string", PropertyName)
	}
	category, ok := record.Properties[PropertyCategory].(string)
	if !ok || strings.TrimSpace(category) == "" {
		return NewSchemaError("properties.category", "property %q must be a non-empty string", PropertyCategory)
	}
	recordedAt, ok := record.Properties[PropertyRecordedAt].(string)
	if !ok {
		return NewSchemaError("properties.recordedAt", "property %q must be an ISO-8601 timestamp string", PropertyRecordedAt)
	}
	if _, parseErr := time.Parse(time.RFC3339, recordedAt); parseErr != nil {
		return NewSchemaError("properties.recordedAt", "property %q is not a valid ISO-8601 timestamp: %v", PropertyRecordedAt, parseErr)
	}

	for key, value := range record.Properties {
		if err := checkPropertyValue("properties."+key, value, 0); err != nil {
			return err
		}
	}

	return nil
}

// checkPropertyValue requires property values to already be in the forms
// json.Unmarshal produces (nil, string, bool, float64, []any, map[string]any),
// so a decoded record reproduces the encoded one exactly.
func checkPropertyValue(field string, value any, depth int) error {
	if depth > maxPropertyDepth {
		return NewSchemaError(field, "property nesting exceeds %d levels", maxPropertyDepth)
	}

	switch typed := value.(type) {
	case nil, string, bool:
		return nil
	case float64:
		if math.IsNaN(typed) || math.IsInf(typed, 0) {
			return NewSchemaError(field, "numeric property values must be finite")
		}
		return nil
	case []any:
		for i, element := range typed {
			if err := checkPropertyValue(fmt.Sprintf("%s[%d]", field, i), element, depth+1); err != nil {
				return err
			}
		}
		return nil
	case map[string]any:
		for key, element := range typed {
			if err := checkPropertyValue(field+"."+key, element, depth+1); err != nil {
				return err
			}
		}
		return nil
	default:
		return NewSchemaError(field, "property values must be nil, string, bool, float64, []any, or map[string]any, got %T", value)
	}
}
