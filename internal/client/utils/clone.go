package utils

import "encoding/json"

// DeepCopy duplicates a plain record via a JSON round-trip. Only suitable
// for the wire-shaped model structs; anything with unexported or non-JSON
// fields loses them.
func DeepCopy[T any](v T) (T, error) {
	var out T
	data, err := json.Marshal(v)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, err
	}
	return out, nil
}
