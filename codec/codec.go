// Package codec encodes snapshot manifests.
//
// Encode writes the codec name on the first line and the document after it.
// Decode reads that line to pick the decoder, so a manifest stays loadable
// after Default changes as long as its codec is still known to ByName.
package codec

import (
	"bytes"
	"errors"
	"fmt"
)

// Names of the built-in codecs as written to manifest headers.
const (
	NameJSON   = "json"
	NameGoJSON = "go-json"
)

var (
	// ErrUnknown is returned by Decode when the header names no known codec.
	ErrUnknown = errors.New("codec: unknown codec")

	// ErrMissingHeader is returned by Decode when data has no header line.
	ErrMissingHeader = errors.New("codec: missing header")
)

// Codec encodes/decodes values.
// Implementations must be safe for concurrent use.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	Name() string
}

// ByName returns a built-in codec by its header name.
func ByName(name string) (Codec, bool) {
	switch name {
	case NameJSON:
		return JSON{}, true
	case NameGoJSON:
		return GoJSON{}, true
	default:
		return nil, false
	}
}

// Encode marshals v with c and prefixes the result with c's name and a
// newline. A nil codec selects Default.
func Encode(c Codec, v any) ([]byte, error) {
	if c == nil {
		c = Default
	}
	body, err := c.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("codec %s: %w", c.Name(), err)
	}
	out := make([]byte, 0, len(c.Name())+1+len(body))
	out = append(out, c.Name()...)
	out = append(out, '\n')
	return append(out, body...), nil
}

// Decode reverses Encode and returns the codec named in the header.
func Decode(data []byte, v any) (Codec, error) {
	name, body, ok := bytes.Cut(data, []byte{'\n'})
	if !ok {
		return nil, ErrMissingHeader
	}
	c, ok := ByName(string(name))
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknown, name)
	}
	if err := c.Unmarshal(body, v); err != nil {
		return c, fmt.Errorf("codec %s: %w", c.Name(), err)
	}
	return c, nil
}

// MustEncode is Encode for tests. It panics on error.
func MustEncode(c Codec, v any) []byte {
	b, err := Encode(c, v)
	if err != nil {
		panic(err)
	}
	return b
}
