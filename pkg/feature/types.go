package feature

import "time"

const (
	TypeFeature = "Feature"
	TypePoint   = "Point"
)

const (
	PropertyName       = "name"
	PropertyCategory   = "category"
	PropertyRecordedAt = "recordedAt"
)

// recordedAtLayout matches RFC 3339 with millisecond precision in UTC.
const recordedAtLayout = "2006-01-02T15:04:05.000Z"

// Point represents a GeoJSON Point geometry with [longitude, latitude]
// coordinates.
type Point struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

// Record represents a single GeoJSON point feature with an open property map.
type Record struct {
	Type       string         `json:"type"`
	Geometry   Point          `json:"geometry"`
	Properties map[string]any `json:"properties"`
}

// NewPointRecord creates a new point Record.
func NewPointRecord(longitude float64, latitude float64, name string, category string, recordedAt time.Time) Record {
	return Record{
		Type: TypeFeature,
		Geometry: Point{
			Type:        TypePoint,
			Coordinates: []float64{longitude, latitude},
		},
		Properties: map[string]any{
			PropertyName:       name,
			PropertyCategory:   category,
			PropertyRecordedAt: recordedAt.UTC().Format(recordedAtLayout),
		},
	}
}

// Longitude returns the requested value.
func (record Record) Longitude() float64 {
	if len(record.Geometry.Coordinates) < 2 {
		return 0
	}
	return record.Geometry.Coordinates[0]
}

// Latitude returns the requested value.
func (record Record) Latitude() float64 {
	if len(record.Geometry.Coordinates) < 2 {
		return 0
	}
	return record.Geometry.Coordinates[1]
}

// Name returns the requested value.
func (record Record) Name() string {
	name, _ := record.Properties[PropertyName].(string)
	return name
}
