package models

import "encoding/json"

// deepCopy clones a record through a JSON round trip. All config
// records are JSON-serializable by construction, so the marshal can
// only fail on programmer error.
func deepCopy[T any](v *T) *T {
	if v == nil {
		return nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		panic("models: unserializable record: " + err.Error())
	}
	out := new(T)
	if err := json.Unmarshal(data, out); err != nil {
		panic("models: clone round trip: " + err.Error())
	}
	return out
}
