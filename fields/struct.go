package fields

import (
	"fmt"
	"reflect"

	"github.com/burrowdb/burrow/internal/codecs"
)

// CompressionNone is the only recognized compression algorithm. The option
// exists so the stored format can grow a compressed variant without an API
// break; encoded output is currently passed through untouched.
const CompressionNone = "none"

// StructCodec serializes string-keyed mappings to bytes with a JSON backend
// selected at construction. Serializing the whole mapping is considerably
// cheaper than the older per-key escaping scheme, at the cost of the stored
// value being opaque to the query layer.
//
// The backend choice is fixed for the codec's lifetime, so a codec is safe
// for concurrent use.
type StructCodec struct {
	backend     string
	codec       codecs.Codec
	compression string
}

type StructOption func(*StructCodec)

// WithCompression selects the compression algorithm applied to encoded
// payloads. Only CompressionNone is currently recognized.
func WithCompression(alg string) StructOption {
	return func(c *StructCodec) {
		c.compression = alg
	}
}

// NewStructCodec returns a codec using the named backend: jsoniter, goccy,
// or segmentio. Unrecognized names fail with ErrUnsupportedBackend.
func NewStructCodec(backend string, opts ...StructOption) (*StructCodec, error) {
	codec, ok := codecs.ByName(backend)
	if !ok {
		return nil, fmt.Errorf("fields: %w: %q", ErrUnsupportedBackend, backend)
	}

	c := &StructCodec{
		backend:     backend,
		codec:       codec,
		compression: CompressionNone,
	}
	for _, o := range opts {
		o(c)
	}

	if c.compression != CompressionNone {
		return nil, fmt.Errorf("fields: %w: compression %q", ErrUnsupportedBackend, c.compression)
	}
	return c, nil
}

// Backend returns the configured backend name.
func (c *StructCodec) Backend() string {
	return c.backend
}

// Encode serializes value to bytes. Fails with ErrNotAMapping for anything
// that is not a string-keyed mapping; otherwise the whole value serializes or
// the call fails, never partially.
func (c *StructCodec) Encode(value any) ([]byte, error) {
	if !isMapping(value) {
		return nil, fmt.Errorf("fields: %w, got %T", ErrNotAMapping, value)
	}
	data, err := c.codec.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("fields: encode struct: %w", err)
	}
	return data, nil
}

// Decode deserializes a stored byte or text payload. A value that is neither
// comes back unchanged; callers occasionally hand over values the driver
// already decoded.
func (c *StructCodec) Decode(stored any) (any, error) {
	switch data := stored.(type) {
	case []byte:
		return c.unmarshal(data)
	case string:
		return c.unmarshal([]byte(data))
	}
	return stored, nil
}

// Validate encodes value purely to confirm it is encodable; the encoded form
// is discarded.
func (c *StructCodec) Validate(value any) error {
	_, err := c.Encode(value)
	return err
}

func (c *StructCodec) unmarshal(data []byte) (any, error) {
	var v any
	if err := c.codec.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("fields: decode struct: %w", err)
	}
	return v, nil
}

func isMapping(value any) bool {
	if _, ok := value.(map[string]any); ok {
		return true
	}
	t := reflect.TypeOf(value)
	return t != nil && t.Kind() == reflect.Map && t.Key().Kind() == reflect.String
}

// StructField adapts StructCodec to the collection hook shape.
type StructField struct {
	codec *StructCodec
}

func NewStructField(backend string, opts ...StructOption) (*StructField, error) {
	codec, err := NewStructCodec(backend, opts...)
	if err != nil {
		return nil, err
	}
	return &StructField{codec: codec}, nil
}

func (f *StructField) ToStore(v any) (any, error) {
	return f.codec.Encode(v)
}

func (f *StructField) FromStore(v any) (any, error) {
	return f.codec.Decode(v)
}

func (f *StructField) Validate(v any) error {
	return f.codec.Validate(v)
}

// QueryValue passes v through: serialized bodies are opaque to the query
// layer, so there is nothing to prepare.
func (f *StructField) QueryValue(v any) (any, error) {
	return v, nil
}
