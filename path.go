package nodeedit

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Path addresses a location inside a document. Each segment is either an
// object key (string) or a non-negative array index (int). An empty Path
// denotes the document root.
//
// Segments decoded from JSON may arrive as float64 or json.Number; the
// package treats whole non-negative numbers as indexes regardless of their
// concrete Go type.
type Path []any

// FormatPath renders a path in bracket notation, e.g. $["customer"][0]["name"].
// The empty path renders as "$". String segments are interpolated between
// double quotes without escaping, so a key containing a '"' renders
// ambiguously. Known limitation.
func FormatPath(p Path) string {
	if len(p) == 0 {
		return "$"
	}
	var b strings.Builder
	b.WriteByte('$')
	for _, seg := range p {
		if idx, ok := segmentIndex(seg); ok {
			b.WriteByte('[')
			b.WriteString(strconv.Itoa(idx))
			b.WriteByte(']')
			continue
		}
		b.WriteString(`["`)
		b.WriteString(segmentKey(seg))
		b.WriteString(`"]`)
	}
	return b.String()
}

// ParsePath is the inverse of FormatPath. It accepts an optional leading "$"
// followed by bracketed segments: quoted segments become keys, bare decimal
// segments become indexes. It shares FormatPath's embedded-quote limitation.
func ParsePath(s string) (Path, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "$" {
		return Path{}, nil
	}
	if s[0] == '$' {
		s = s[1:]
	}
	p := Path{}
	for len(s) > 0 {
		if s[0] != '[' {
			return nil, fmt.Errorf("nodeedit: malformed path near %q", s)
		}
		end := strings.IndexByte(s, ']')
		if end < 0 {
			return nil, fmt.Errorf("nodeedit: unterminated path segment in %q", s)
		}
		seg := s[1:end]
		s = s[end+1:]

		if len(seg) >= 2 && seg[0] == '"' && seg[len(seg)-1] == '"' {
			p = append(p, seg[1:len(seg)-1])
			continue
		}
		n, err := strconv.Atoi(seg)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("nodeedit: invalid array index %q", seg)
		}
		p = append(p, n)
	}
	return p, nil
}

// PathEqual reports whether two paths address the same location: same length,
// and segment-by-segment equality after index normalization (an int segment
// equals a whole float64 segment of the same value).
func PathEqual(a, b Path) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		ai, aIdx := segmentIndex(a[i])
		bi, bIdx := segmentIndex(b[i])
		if aIdx != bIdx {
			return false
		}
		if aIdx {
			if ai != bi {
				return false
			}
		} else if segmentKey(a[i]) != segmentKey(b[i]) {
			return false
		}
	}
	return true
}

// Internal helpers

// segmentIndex reports whether seg is an array-index segment and its value.
func segmentIndex(seg any) (int, bool) {
	switch v := seg.(type) {
	case int:
		if v >= 0 {
			return v, true
		}
	case int64:
		if v >= 0 {
			return int(v), true
		}
	case float64:
		if v >= 0 && v == math.Trunc(v) {
			return int(v), true
		}
	case json.Number:
		if n, err := v.Int64(); err == nil && n >= 0 {
			return int(n), true
		}
	}
	return 0, false
}

func segmentKey(seg any) string {
	switch v := seg.(type) {
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}
