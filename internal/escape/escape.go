// Package escape rewrites mapping keys that collide with characters the
// storage engine reserves for its query syntax. Dollar signs and dots are
// replaced with their fullwidth Unicode counterparts on the way in and
// restored on the way out.
package escape

import "strings"

const (
	dollar = "$"
	dot    = "."

	// U+FF04 FULLWIDTH DOLLAR SIGN, U+FF0E FULLWIDTH FULL STOP.
	fullwidthDollar = "＄"
	fullwidthDot    = "．"
)

var (
	escaper   = strings.NewReplacer(dollar, fullwidthDollar, dot, fullwidthDot)
	unescaper = strings.NewReplacer(fullwidthDollar, dollar, fullwidthDot, dot)
)

// Keys escapes reserved characters in every mapping key of value, recursing
// through nested mappings and sequences. Non-mapping values come back
// unchanged.
func Keys(value any) any {
	return walk(value, escaper)
}

// UnescapeKeys restores escaped mapping keys to their original form. Inverse
// of Keys.
func UnescapeKeys(value any) any {
	return walk(value, unescaper)
}

func walk(value any, r *strings.Replacer) any {
	switch v := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, inner := range v {
			out[r.Replace(k)] = walk(inner, r)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, inner := range v {
			out[i] = walk(inner, r)
		}
		return out
	}
	return value
}
