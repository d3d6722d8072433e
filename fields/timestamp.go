// Package fields provides the codecs Burrow applies to document columns:
// microsecond-precision timestamps stored as sortable integers, and
// structured bodies stored as backend-serialized bytes with transparent
// decoding of the older escaped-key mapping format.
package fields

import (
	"fmt"
	"time"
)

const microsPerSecond = 1_000_000

// TimestampCodec converts between a UTC time.Time with microsecond
// resolution and the number of microseconds since the Unix epoch. The
// integer form sorts chronologically, which string renderings of sub-second
// timestamps do not.
//
// The codec is stateless and safe for concurrent use.
type TimestampCodec struct{}

// Encode converts t to microseconds since the epoch. The input must carry a
// zero UTC offset; anything else fails with ErrInvalidTimezone rather than
// being silently converted.
func (TimestampCodec) Encode(t time.Time) (int64, error) {
	if _, offset := t.Zone(); offset != 0 {
		return 0, fmt.Errorf("fields: %w: offset %+ds", ErrInvalidTimezone, offset)
	}
	return t.Unix()*microsPerSecond + int64(t.Nanosecond()/1000), nil
}

// Decode converts an encoded value back to a UTC time.Time. Negative inputs
// denote instants before 1970; time.Unix normalizes the negative remainder so
// floor/mod semantics hold across the epoch.
func (TimestampCodec) Decode(n int64) time.Time {
	return time.Unix(n/microsPerSecond, (n%microsPerSecond)*1000).UTC()
}

// Coerce converts an integer-encoded value back to a time.Time on the read
// path. Values that are not in the encoded integer form, including values
// that are already time.Time, come back unchanged. Mixed-format reads occur
// during migration windows, so this never fails.
func (c TimestampCodec) Coerce(v any) any {
	switch n := v.(type) {
	case int64:
		return c.Decode(n)
	case int:
		return c.Decode(int64(n))
	}
	return v
}

// TimestampField adapts TimestampCodec to the hook shape collections invoke
// on reads, writes, validation, and query-value preparation.
type TimestampField struct {
	codec TimestampCodec
}

func NewTimestampField() *TimestampField {
	return &TimestampField{}
}

// ToStore encodes v for the write path. Integer-encoded input is accepted
// as-is after a decode/encode pass, so a value read from one row can be
// written to another without conversion by the caller.
func (f *TimestampField) ToStore(v any) (any, error) {
	t, ok := f.codec.Coerce(v).(time.Time)
	if !ok {
		return nil, fmt.Errorf("fields: timestamp: cannot store %T", v)
	}
	return f.codec.Encode(t)
}

// FromStore decodes a scanned column value. Nil stays nil.
func (f *TimestampField) FromStore(v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	return f.codec.Coerce(v), nil
}

// Validate reports whether v is usable as a timestamp column value.
func (f *TimestampField) Validate(v any) error {
	if _, ok := f.codec.Coerce(v).(time.Time); !ok {
		return fmt.Errorf("fields: timestamp: only time values may be used, got %T", v)
	}
	return nil
}

// QueryValue encodes a caller-supplied comparison value so queries run
// against the stored integer form.
func (f *TimestampField) QueryValue(v any) (any, error) {
	t, ok := f.codec.Coerce(v).(time.Time)
	if !ok {
		return nil, fmt.Errorf("fields: timestamp: cannot query with %T", v)
	}
	return f.codec.Encode(t)
}
