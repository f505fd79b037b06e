package codec

import "encoding/json"

// JSON writes manifests with encoding/json, for readers that only have the
// standard library. Its documents decode with GoJSON and vice versa.
type JSON struct{}

func (JSON) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

func (JSON) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

func (JSON) Name() string { return NameJSON }

// Default is the codec Encode uses when given nil, and the one snapshots are
// written with unless configured otherwise.
var Default Codec = GoJSON{}
