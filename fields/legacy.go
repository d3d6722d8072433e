package fields

import "github.com/burrowdb/burrow/internal/escape"

// CompatStructCodec reads structured values written before bodies were
// byte-serialized, when they were stored as native mappings with reserved
// characters escaped in keys. Writes always produce the current byte form;
// the legacy shape is never re-emitted.
//
// Format detection is structural: the legacy shape arrives from the driver
// as a mapping, the current shape as bytes or text. The two never share a
// runtime type in storage, so no version tag is needed. A future third
// format would have to carry an explicit tag instead.
type CompatStructCodec struct {
	*StructCodec
}

func NewCompatStructCodec(backend string, opts ...StructOption) (*CompatStructCodec, error) {
	inner, err := NewStructCodec(backend, opts...)
	if err != nil {
		return nil, err
	}
	return &CompatStructCodec{StructCodec: inner}, nil
}

// Decode restores a stored value regardless of which format wrote it. Native
// mappings get their keys unescaped recursively; byte and text payloads go
// through the backend; anything else comes back unchanged.
func (c *CompatStructCodec) Decode(stored any) (any, error) {
	if m, ok := stored.(map[string]any); ok {
		return escape.UnescapeKeys(m), nil
	}
	return c.StructCodec.Decode(stored)
}

// CompatStructField adapts CompatStructCodec to the collection hook shape.
// Use it for collections that may still hold rows written in the legacy
// format; new deployments can use StructField directly.
type CompatStructField struct {
	codec *CompatStructCodec
}

func NewCompatStructField(backend string, opts ...StructOption) (*CompatStructField, error) {
	codec, err := NewCompatStructCodec(backend, opts...)
	if err != nil {
		return nil, err
	}
	return &CompatStructField{codec: codec}, nil
}

func (f *CompatStructField) ToStore(v any) (any, error) {
	return f.codec.Encode(v)
}

func (f *CompatStructField) FromStore(v any) (any, error) {
	return f.codec.Decode(v)
}

func (f *CompatStructField) Validate(v any) error {
	return f.codec.Validate(v)
}

func (f *CompatStructField) QueryValue(v any) (any, error) {
	return v, nil
}
