package nodeedit

import (
	"fmt"
)

// BuildFunc turns a decoded document into its ordered graph nodes. Hosts with
// their own graph representation supply one; the zero value means BuildGraph.
type BuildFunc func(doc any) ([]GraphNode, error)

// ResyncResult carries the outcome of one mutate-and-rebuild cycle.
type ResyncResult struct {
	Document  any
	Nodes     []GraphNode
	Selection *GraphNode // nil when relocation found no match
}

// Resync applies value at path inside doc, rebuilds the graph from the
// mutated document, and relocates prev inside the rebuilt nodes. A mutation
// or rebuild failure returns an error before any result exists, so callers
// can abort without publishing a partially updated document. A relocation
// miss is not a failure: the edit stands and Selection is nil.
func Resync(doc any, path Path, value any, prev *GraphNode, build BuildFunc) (*ResyncResult, error) {
	if build == nil {
		build = func(d any) ([]GraphNode, error) { return BuildGraph(d), nil }
	}

	newDoc, err := SetAtPath(doc, path, value)
	if err != nil {
		return nil, err
	}
	nodes, err := build(newDoc)
	if err != nil {
		return nil, fmt.Errorf("nodeedit: rebuild graph: %w", err)
	}

	return &ResyncResult{
		Document:  newDoc,
		Nodes:     nodes,
		Selection: Relocate(nodes, prev),
	}, nil
}

// Relocate finds prev among nodes: exact ID match first, structural path
// equality as fallback when no ID was set or no ID matched. Returns nil when
// neither matches; the caller treats that as "no node selected". The two-tier
// lookup is intentional degradation: IDs regenerate with the graph, so a
// rebuild that renumbers nodes still re-points the selection through its
// path.
func Relocate(nodes []GraphNode, prev *GraphNode) *GraphNode {
	if prev == nil {
		return nil
	}
	if prev.ID != "" {
		for i := range nodes {
			if nodes[i].ID == prev.ID {
				return &nodes[i]
			}
		}
	}
	for i := range nodes {
		if PathEqual(nodes[i].Path, prev.Path) {
			return &nodes[i]
		}
	}
	return nil
}
