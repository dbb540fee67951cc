package nodeedit

import (
	"fmt"
	"testing"
)

func TestResyncMutatesAndRebuilds(t *testing.T) {
	doc := map[string]any{"customer": map[string]any{"name": "Ann"}}
	nodes := BuildGraph(doc)
	prev := findNodeByPath(t, nodes, Path{"customer", "name"})

	res, err := Resync(doc, prev.Path, "Bob", prev, nil)
	if err != nil {
		t.Fatalf("Resync: %v", err)
	}
	assertDocEqual(t, res.Document, `{"customer":{"name":"Bob"}}`)
	if res.Selection == nil {
		t.Fatalf("expected relocated selection")
	}
	if !PathEqual(res.Selection.Path, Path{"customer", "name"}) {
		t.Fatalf("relocated path: got %s", FormatPath(res.Selection.Path))
	}
}

func TestRelocateByIdentityFirst(t *testing.T) {
	nodes := []GraphNode{
		{ID: "1", Path: Path{}},
		{ID: "2", Path: Path{"a"}},
		{ID: "3", Path: Path{"b"}},
	}
	// Same ID survives the rebuild even though the recorded path is stale.
	prev := &GraphNode{ID: "3", Path: Path{"old"}}
	got := Relocate(nodes, prev)
	if got == nil || got.ID != "3" {
		t.Fatalf("expected identity match on id 3, got %+v", got)
	}
}

func TestRelocateFallsBackToPathEquality(t *testing.T) {
	nodes := []GraphNode{
		{ID: "1", Path: Path{}},
		{ID: "2", Path: Path{"customer"}},
		{ID: "3", Path: Path{"customer", "name"}},
	}
	prev := &GraphNode{ID: "999", Path: Path{"customer", "name"}}
	got := Relocate(nodes, prev)
	if got == nil || got.ID != "3" {
		t.Fatalf("expected path fallback to node 3, got %+v", got)
	}
}

func TestRelocateWithoutIDUsesPath(t *testing.T) {
	nodes := []GraphNode{{ID: "1", Path: Path{"a"}}}
	got := Relocate(nodes, &GraphNode{Path: Path{"a"}})
	if got == nil || got.ID != "1" {
		t.Fatalf("expected path match, got %+v", got)
	}
}

func TestRelocateMissClearsSelection(t *testing.T) {
	nodes := []GraphNode{{ID: "1", Path: Path{"a"}}}
	if got := Relocate(nodes, &GraphNode{ID: "9", Path: Path{"gone"}}); got != nil {
		t.Fatalf("expected nil selection, got %+v", got)
	}
	if got := Relocate(nodes, nil); got != nil {
		t.Fatalf("nil previous selection should stay nil, got %+v", got)
	}
}

func TestResyncPropagatesMutationError(t *testing.T) {
	if _, err := Resync(map[string]any{}, Path{}, "v", nil, nil); err == nil {
		t.Fatalf("expected error for empty path")
	}
}

func TestResyncAbortsOnRebuildFailure(t *testing.T) {
	build := func(any) ([]GraphNode, error) { return nil, fmt.Errorf("malformed structure") }
	_, err := Resync(map[string]any{}, Path{"a"}, "v", nil, build)
	if err == nil {
		t.Fatalf("expected rebuild error to propagate")
	}
}

func TestResyncCustomBuilderNodesUsedForRelocation(t *testing.T) {
	build := func(any) ([]GraphNode, error) {
		return []GraphNode{{ID: "host-7", Path: Path{"a"}}}, nil
	}
	res, err := Resync(map[string]any{}, Path{"a"}, "v", &GraphNode{ID: "x", Path: Path{"a"}}, build)
	if err != nil {
		t.Fatalf("Resync: %v", err)
	}
	if res.Selection == nil || res.Selection.ID != "host-7" {
		t.Fatalf("expected relocation against builder nodes, got %+v", res.Selection)
	}
}
