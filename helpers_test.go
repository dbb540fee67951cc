package nodeedit

import (
	"encoding/json"
	"testing"

	jsonpatch "github.com/evanphx/json-patch/v5"
	"github.com/pmezard/go-difflib/difflib"
)

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("json marshal: %v", err)
	}
	return b
}

func assertDocEqual(t *testing.T, got any, want string) {
	t.Helper()
	gb := mustJSON(t, got)
	if !jsonpatch.Equal(gb, []byte(want)) {
		t.Fatalf("document mismatch:\n%s", unifiedDiff(want, string(gb)))
	}
}

func unifiedDiff(before, after string) string {
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(before),
		B:        difflib.SplitLines(after),
		FromFile: "want",
		ToFile:   "got",
		Context:  2,
	})
	if err != nil {
		return after
	}
	return diff
}

func findNodeByPath(t *testing.T, nodes []GraphNode, p Path) *GraphNode {
	t.Helper()
	for i := range nodes {
		if PathEqual(nodes[i].Path, p) {
			return &nodes[i]
		}
	}
	t.Fatalf("no node at path %s", FormatPath(p))
	return nil
}
