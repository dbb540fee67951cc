package nodeedit

import (
	"encoding/json"
	"fmt"
	"strings"
)

// FieldType classifies a FieldRow value by its JSON type.
type FieldType string

const (
	FieldString  FieldType = "string"
	FieldNumber  FieldType = "number"
	FieldBoolean FieldType = "boolean"
	FieldNull    FieldType = "null"
	FieldArray   FieldType = "array"
	FieldObject  FieldType = "object"
)

// FieldRow is one displayed attribute of a graph node. Key is empty for the
// single row of a scalar node. Rows typed FieldArray or FieldObject are
// placeholders for children edited through their own nodes; their Value is
// not carried.
type FieldRow struct {
	Key   string
	Value any
	Type  FieldType
}

// TypeOf reports the JSON type of a decoded document value.
func TypeOf(v any) FieldType {
	switch v.(type) {
	case nil:
		return FieldNull
	case bool:
		return FieldBoolean
	case string:
		return FieldString
	case float64, float32, int, int64, json.Number:
		return FieldNumber
	case []any:
		return FieldArray
	case map[string]any:
		return FieldObject
	}
	return FieldString
}

// RenderFragment turns a node's rows into editable text. Empty input renders
// as "{}". A single keyless row renders as the bare scalar. Any other
// composition renders as a 2-space-indented JSON object of the keyed
// scalar rows, in row order; array- and object-typed rows are left out of the
// text only, never removed from the underlying document.
func RenderFragment(rows []FieldRow) string {
	if len(rows) == 0 {
		return "{}"
	}
	if len(rows) == 1 && rows[0].Key == "" {
		return stringifyScalar(rows[0].Value)
	}

	var b strings.Builder
	b.WriteByte('{')
	wrote := false
	for _, r := range rows {
		if r.Key == "" || r.Type == FieldArray || r.Type == FieldObject {
			continue
		}
		if wrote {
			b.WriteByte(',')
		}
		b.WriteString("\n  ")
		key, _ := json.Marshal(r.Key)
		b.Write(key)
		b.WriteString(": ")
		val, err := json.Marshal(r.Value)
		if err != nil {
			val = []byte("null")
		}
		b.Write(val)
		wrote = true
	}
	if !wrote {
		return "{}"
	}
	b.WriteString("\n}")
	return b.String()
}

// stringifyScalar renders a scalar the way the edit surface shows it: strings
// unquoted, everything else in its JSON form.
func stringifyScalar(v any) string {
	switch vv := v.(type) {
	case nil:
		return "null"
	case string:
		return vv
	default:
		b, err := json.Marshal(vv)
		if err != nil {
			return fmt.Sprint(vv)
		}
		return string(b)
	}
}
