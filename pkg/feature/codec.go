package feature

import "encoding/json"

// Encode serializes a Record into its canonical byte payload.
func Encode(record Record) ([]byte, error) {
	if err := Validate(record); err != nil {
		return nil, err
	}

	payload, err := json.Marshal(record)
	if err != nil {
		return nil, NewEncodingError("record contains non-serializable values: %v", err)
	}

	return payload, nil
}

// Decode deserializes a byte payload back into a Record. Decoding is
// all-or-nothing: malformed bytes or a non-conforming shape yield an error
// and a zero Record, never a partially populated one.
func Decode(payload []byte) (Record, error) {
	if len(payload) == 0 {
		return Record{}, NewDecodingError("payload is empty")
	}

	var record Record
	if err := json.Unmarshal(payload, &record); err != nil {
		return Record{}, NewDecodingError("payload is not valid JSON: %v", err)
	}

	if err := Validate(record); err != nil {
		return Record{}, err
	}

	return record, nil
}
