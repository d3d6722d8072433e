package codecs

import "testing"

var smallBody = map[string]any{
	"status": "succeeded",
	"count":  3,
}

var largeBody = map[string]any{
	"status": "succeeded",
	"result": map[string]any{
		"stdout":    "line one\nline two\nline three",
		"stderr":    "",
		"exit_code": 0,
		"tags":      []any{"prod", "eu-north", "batch"},
		"hosts": map[string]any{
			"web-1": map[string]any{"ok": true, "latency_ms": 12.5},
			"web-2": map[string]any{"ok": true, "latency_ms": 9.1},
			"db-1":  map[string]any{"ok": false, "latency_ms": nil},
		},
	},
	"trigger":  "deploy.webhook",
	"runner":   "remote-shell",
	"attempts": 2,
}

func benchMarshal(b *testing.B, c Codec, body map[string]any) {
	b.ReportAllocs()
	b.ResetTimer()
	for b.Loop() {
		_, _ = c.Marshal(body)
	}
}

func benchUnmarshal(b *testing.B, c Codec, body map[string]any) {
	data, _ := c.Marshal(body)
	b.ReportAllocs()
	b.ResetTimer()
	for b.Loop() {
		var v map[string]any
		_ = c.Unmarshal(data, &v)
	}
}

func BenchmarkJSONIter_Marshal_Small(b *testing.B) { benchMarshal(b, NewJSONIter(), smallBody) }
func BenchmarkJSONIter_Marshal_Large(b *testing.B) { benchMarshal(b, NewJSONIter(), largeBody) }
func BenchmarkGoccy_Marshal_Small(b *testing.B)    { benchMarshal(b, NewGoccy(), smallBody) }
func BenchmarkGoccy_Marshal_Large(b *testing.B)    { benchMarshal(b, NewGoccy(), largeBody) }
func BenchmarkSegment_Marshal_Small(b *testing.B)  { benchMarshal(b, NewSegment(), smallBody) }
func BenchmarkSegment_Marshal_Large(b *testing.B)  { benchMarshal(b, NewSegment(), largeBody) }

func BenchmarkJSONIter_Unmarshal_Small(b *testing.B) { benchUnmarshal(b, NewJSONIter(), smallBody) }
func BenchmarkJSONIter_Unmarshal_Large(b *testing.B) { benchUnmarshal(b, NewJSONIter(), largeBody) }
func BenchmarkGoccy_Unmarshal_Small(b *testing.B)    { benchUnmarshal(b, NewGoccy(), smallBody) }
func BenchmarkGoccy_Unmarshal_Large(b *testing.B)    { benchUnmarshal(b, NewGoccy(), largeBody) }
func BenchmarkSegment_Unmarshal_Small(b *testing.B)  { benchUnmarshal(b, NewSegment(), smallBody) }
func BenchmarkSegment_Unmarshal_Large(b *testing.B)  { benchUnmarshal(b, NewSegment(), largeBody) }
