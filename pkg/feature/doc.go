// Package feature defines the geotagged GeoJSON point-feature record carried
// by geomemo transactions, along with its canonical byte codec.
//
// A Record is a GeoJSON Feature with a Point geometry and an open property
// map that must include name, category, and recordedAt entries. Encode and
// Decode are strict inverses for valid records: decoding the encoded bytes
// of a valid record yields a deep-equal record, and malformed or
// non-conforming bytes are rejected outright rather than decoded into a
// partially populated value.
//
// # Getting Started
//
// Build, encode, and decode a record:
//
//	record := feature.NewPointRecord(-122.4194, 37.7749, "San Francisco", "city", time.Now())
//	payload, err := feature.Encode(record)
//	decoded, err := feature.Decode(payload)
package feature
