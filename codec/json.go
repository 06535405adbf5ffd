package codec

import (
	"encoding/json"
)

// JSON is the standard-library JSON codec.
//
// Order buckets are plain slices of cache keys, which JSON encodes losslessly
// for the usual key types (strings, integers, small structs). If you need a
// custom encoding (e.g. protobuf/msgpack), implement Codec and pass it to the
// store constructor.
type JSON struct{}

// Marshal encodes the value to JSON.
func (JSON) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

// Unmarshal decodes the JSON data into v.
func (JSON) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

// Name returns the unique name of the codec ("json").
func (JSON) Name() string { return "json" }

// Default is the default codec used by the library.
//
// NOTE: This affects newly-created stores. Existing stores are self-describing
// (they record the codec name in their metadata) and must be opened with a
// codec of the same name.
var Default Codec = GoJSON{}
