package codecs

import segjson "github.com/segmentio/encoding/json"

type SegmentCodec struct{}

func NewSegment() *SegmentCodec {
	return &SegmentCodec{}
}

func (c *SegmentCodec) Marshal(v any) ([]byte, error) {
	return segjson.Marshal(v)
}

func (c *SegmentCodec) Unmarshal(data []byte, v any) error {
	return segjson.Unmarshal(data, v)
}
