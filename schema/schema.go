package schema

import "encoding/json"

// Schema is the interface for typed message payloads exchanged between the
// conversation roles and tools.
type Schema interface {
	String() string
}

// Stringify returns the textual form of a schema as it appears in a transcript.
func Stringify(s Schema) string {
	if v, ok := s.(String); ok {
		return string(v)
	}
	bs, _ := json.Marshal(s)
	return string(bs)
}

// ToBytes returns the serialized form of a schema.
func ToBytes(s Schema) []byte {
	if v, ok := s.(String); ok {
		return []byte(v)
	}
	bs, _ := json.Marshal(s)
	return bs
}
