package fields

import "errors"

var (
	// ErrInvalidTimezone is returned when a timestamp presented for encoding
	// does not carry a zero UTC offset.
	ErrInvalidTimezone = errors.New("timestamp must be in UTC")

	// ErrUnsupportedBackend is returned when a struct codec is constructed
	// with an unrecognized backend or compression name.
	ErrUnsupportedBackend = errors.New("unsupported backend")

	// ErrNotAMapping is returned when a value passed to a struct codec is not
	// a string-keyed mapping.
	ErrNotAMapping = errors.New("value must be a mapping")
)
