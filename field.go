package burrow

// Field hooks let a codec participate in document reads and writes.
// Collections invoke ToStore before writing a column value, FromStore after
// scanning one, Validate before accepting a document, and QueryValue when a
// caller-supplied value becomes a query parameter.
type Field interface {
	ToStore(v any) (any, error)
	FromStore(v any) (any, error)
	Validate(v any) error
	QueryValue(v any) (any, error)
}
