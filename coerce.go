package nodeedit

import (
	"encoding/json"
	"math"
	"strconv"
)

// CoerceValue parses user-edited text into a typed value. Strict JSON parsing
// is the primary strategy, so quoted strings, numbers, booleans, null, arrays
// and objects all work uniformly. When the text is not valid JSON it degrades
// to literal fallbacks in priority order: "true"/"false" become booleans,
// text parseable as a finite number becomes a number, and anything else is
// kept as a plain string. Degrading is expected behavior, not an error, which
// is why CoerceValue cannot fail: it lets users type bare unquoted scalars
// while still accepting full JSON for structured values.
func CoerceValue(text string) any {
	var v any
	if err := json.Unmarshal([]byte(text), &v); err == nil {
		return v
	}
	switch text {
	case "true":
		return true
	case "false":
		return false
	}
	if f, err := strconv.ParseFloat(text, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return f
	}
	return text
}
