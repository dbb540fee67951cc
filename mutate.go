package nodeedit

import (
	"fmt"
)

// SetAtPath writes value at path inside doc, creating missing containers
// along the way: an absent or null location becomes an array when the next
// segment is an index and an object when it is a key, never the reverse. The
// final segment assigns unconditionally, overwriting container values too.
// This lets an edit land even when the parent path does not yet fully exist
// in the document, which happens with documents mutated out of band.
//
// Arrays are grown as needed, so the possibly reallocated root is returned;
// callers must use the returned document. The empty path is rejected: root
// replacement is out of scope for single-node edits.
func SetAtPath(doc any, path Path, value any) (any, error) {
	if len(path) == 0 {
		return doc, fmt.Errorf("nodeedit: empty path: root replacement is not supported")
	}
	return setAt(doc, path, value), nil
}

func setAt(cur any, path Path, value any) any {
	seg := path[0]

	if idx, ok := segmentIndex(seg); ok {
		arr, _ := cur.([]any)
		for len(arr) <= idx {
			arr = append(arr, nil)
		}
		if len(path) == 1 {
			arr[idx] = value
		} else {
			arr[idx] = setAt(arr[idx], path[1:], value)
		}
		return arr
	}

	key := segmentKey(seg)
	obj, ok := cur.(map[string]any)
	if !ok {
		obj = map[string]any{}
	}
	if len(path) == 1 {
		obj[key] = value
	} else {
		obj[key] = setAt(obj[key], path[1:], value)
	}
	return obj
}
