package codecs_test

import (
	"reflect"
	"testing"

	"github.com/burrowdb/burrow/internal/codecs"
)

type sample struct {
	Name string `json:"name"`
	Age  int    `json:"age"`
}

func allBackends(t *testing.T) map[string]codecs.Codec {
	t.Helper()
	out := make(map[string]codecs.Codec)
	for _, name := range []string{codecs.BackendJSONIter, codecs.BackendGoccy, codecs.BackendSegment} {
		c, ok := codecs.ByName(name)
		if !ok {
			t.Fatalf("backend %s not registered", name)
		}
		out[name] = c
	}
	return out
}

func TestByName_Unknown(t *testing.T) {
	if _, ok := codecs.ByName("ujson"); ok {
		t.Error("expected ByName to reject unknown backend")
	}
	if _, ok := codecs.ByName(""); ok {
		t.Error("expected ByName to reject empty backend")
	}
}

func TestBackends_Roundtrip(t *testing.T) {
	for name, c := range allBackends(t) {
		original := sample{Name: "Alice", Age: 30}
		data, err := c.Marshal(original)
		if err != nil {
			t.Fatalf("%s: marshal: %v", name, err)
		}

		var got sample
		if err := c.Unmarshal(data, &got); err != nil {
			t.Fatalf("%s: unmarshal: %v", name, err)
		}

		if got != original {
			t.Errorf("%s: got %+v, want %+v", name, got, original)
		}
	}
}

func TestBackends_MarshalProducesJSON(t *testing.T) {
	for name, c := range allBackends(t) {
		data, err := c.Marshal(sample{Name: "Bob", Age: 25})
		if err != nil {
			t.Fatalf("%s: marshal: %v", name, err)
		}

		s := string(data)
		if s != `{"name":"Bob","age":25}` {
			t.Errorf("%s: got %s", name, s)
		}
	}
}

func TestBackends_Interchangeable(t *testing.T) {
	// A payload written by one backend must be readable by the others.
	value := map[string]any{"status": "ok", "count": float64(3), "nested": map[string]any{"x": true}}

	for writer, wc := range allBackends(t) {
		data, err := wc.Marshal(value)
		if err != nil {
			t.Fatalf("%s: marshal: %v", writer, err)
		}
		for reader, rc := range allBackends(t) {
			var got map[string]any
			if err := rc.Unmarshal(data, &got); err != nil {
				t.Fatalf("%s->%s: unmarshal: %v", writer, reader, err)
			}
			if !reflect.DeepEqual(got, value) {
				t.Errorf("%s->%s: got %v, want %v", writer, reader, got, value)
			}
		}
	}
}

func TestBackends_UnmarshalError(t *testing.T) {
	for name, c := range allBackends(t) {
		var got sample
		if err := c.Unmarshal([]byte("not json"), &got); err == nil {
			t.Errorf("%s: expected error for invalid JSON", name)
		}
	}
}
