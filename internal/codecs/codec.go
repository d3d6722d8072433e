package codecs

// Codec marshals and unmarshals values to and from bytes.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
}

// Backend names recognized by ByName. The three implementations are
// behaviorally interchangeable for JSON-compatible values; they differ in
// throughput and allocation profile.
const (
	BackendJSONIter = "jsoniter"
	BackendGoccy    = "goccy"
	BackendSegment  = "segmentio"
)

// ByName returns the codec registered under name. The second result is false
// for unknown names.
func ByName(name string) (Codec, bool) {
	switch name {
	case BackendJSONIter:
		return NewJSONIter(), true
	case BackendGoccy:
		return NewGoccy(), true
	case BackendSegment:
		return NewSegment(), true
	}
	return nil, false
}
