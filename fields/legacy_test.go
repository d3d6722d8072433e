package fields_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/burrowdb/burrow/fields"
)

func newCompat(t *testing.T) *fields.CompatStructCodec {
	t.Helper()
	c, err := fields.NewCompatStructCodec("jsoniter")
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	return c
}

func TestCompatStructCodec_DecodeLegacyMapping(t *testing.T) {
	c := newCompat(t)

	got, err := c.Decode(map[string]any{"＄ref": 1})
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	want := map[string]any{"$ref": 1}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestCompatStructCodec_DecodeLegacyNested(t *testing.T) {
	c := newCompat(t)

	stored := map[string]any{
		"a＄b": map[string]any{
			"web．server": map[string]any{"port": 8080},
		},
		"plain": "value",
		"list": []any{
			map[string]any{"＄set": true},
		},
	}

	got, err := c.Decode(stored)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	want := map[string]any{
		"a$b": map[string]any{
			"web.server": map[string]any{"port": 8080},
		},
		"plain": "value",
		"list": []any{
			map[string]any{"$set": true},
		},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestCompatStructCodec_DecodeCurrentFormat(t *testing.T) {
	c := newCompat(t)

	data, err := c.Encode(map[string]any{"status": "ok", "count": float64(3)})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	got, err := c.Decode(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !reflect.DeepEqual(got, map[string]any{"status": "ok", "count": float64(3)}) {
		t.Errorf("got %v", got)
	}
}

func TestCompatStructCodec_DecodePassthrough(t *testing.T) {
	c := newCompat(t)

	got, err := c.Decode(42)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got != 42 {
		t.Errorf("got %v, want 42", got)
	}
}

func TestCompatStructCodec_EncodeNeverEmitsLegacy(t *testing.T) {
	c := newCompat(t)

	// A value that just came out of a legacy row re-encodes to the current
	// byte form, keys unescaped.
	decoded, err := c.Decode(map[string]any{"a＄ref": 1})
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	data, err := c.Encode(decoded)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if string(data) != `{"a$ref":1}` {
		t.Errorf("got %s", data)
	}
}

func TestCompatStructCodec_EncodeRejectsNonMapping(t *testing.T) {
	c := newCompat(t)

	if _, err := c.Encode("text"); !errors.Is(err, fields.ErrNotAMapping) {
		t.Errorf("got %v, want ErrNotAMapping", err)
	}
}

func TestNewCompatStructCodec_UnsupportedBackend(t *testing.T) {
	if _, err := fields.NewCompatStructCodec("cjson"); !errors.Is(err, fields.ErrUnsupportedBackend) {
		t.Errorf("got %v, want ErrUnsupportedBackend", err)
	}
}

func TestCompatStructField_Hooks(t *testing.T) {
	f, err := fields.NewCompatStructField("segmentio")
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	legacy := map[string]any{"＄ref": float64(1)}
	loaded, err := f.FromStore(legacy)
	if err != nil {
		t.Fatalf("from store: %v", err)
	}
	if !reflect.DeepEqual(loaded, map[string]any{"$ref": float64(1)}) {
		t.Errorf("loaded: got %v", loaded)
	}

	stored, err := f.ToStore(loaded)
	if err != nil {
		t.Fatalf("to store: %v", err)
	}
	data, ok := stored.([]byte)
	if !ok {
		t.Fatalf("stored: got %T, want []byte", stored)
	}
	if string(data) != `{"$ref":1}` {
		t.Errorf("stored: got %s", data)
	}

	if err := f.Validate(map[string]any{"ok": true}); err != nil {
		t.Errorf("validate: %v", err)
	}
}
