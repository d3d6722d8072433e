package burrow

import "github.com/burrowdb/burrow/fields"

type Option func(*storeConfig)

type storeConfig struct {
	structBackend string
	compression   string
}

func defaultConfig() *storeConfig {
	return &storeConfig{
		structBackend: "jsoniter",
		compression:   fields.CompressionNone,
	}
}

// WithStructBackend selects the JSON backend used to serialize document
// bodies. Recognized names: jsoniter, goccy, segmentio.
func WithStructBackend(name string) Option {
	return func(cfg *storeConfig) {
		cfg.structBackend = name
	}
}

// WithCompression selects the compression algorithm for serialized bodies.
// Only "none" is currently recognized.
func WithCompression(alg string) Option {
	return func(cfg *storeConfig) {
		cfg.compression = alg
	}
}
