package codecs

import gojson "github.com/goccy/go-json"

type GoccyCodec struct{}

func NewGoccy() *GoccyCodec {
	return &GoccyCodec{}
}

func (c *GoccyCodec) Marshal(v any) ([]byte, error) {
	return gojson.Marshal(v)
}

func (c *GoccyCodec) Unmarshal(data []byte, v any) error {
	return gojson.Unmarshal(data, v)
}
