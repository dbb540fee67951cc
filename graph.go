package nodeedit

import (
	"sort"
	"strconv"
)

// GraphNode is one addressable location in the rebuilt document graph. IDs
// are assigned sequentially per rebuild and are only stable while the graph
// is not regenerated; after a rebuild a node must be re-resolved, by ID when
// it survived and by path otherwise.
type GraphNode struct {
	ID   string
	Path Path
	Rows []FieldRow
}

// BuildGraph flattens a decoded document into its ordered graph nodes,
// depth-first. Objects become one node whose rows carry the scalar entries
// plus typed placeholder rows for container entries; every entry then becomes
// its own node, walked recursively for containers and emitted as a single
// keyless row for scalars, which render bare. Array elements follow the same
// rule. A scalar document yields one root node.
//
// Object keys are visited in sorted order so rebuilds of equal documents
// produce identical node sequences.
func BuildGraph(doc any) []GraphNode {
	b := &graphBuilder{}
	b.walk(doc, Path{})
	return b.nodes
}

type graphBuilder struct {
	nodes []GraphNode
	next  int
}

func (b *graphBuilder) add(path Path, rows []FieldRow) {
	b.next++
	b.nodes = append(b.nodes, GraphNode{
		ID:   strconv.Itoa(b.next),
		Path: append(Path{}, path...),
		Rows: rows,
	})
}

func (b *graphBuilder) walk(v any, path Path) {
	switch vv := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(vv))
		for k := range vv {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		rows := make([]FieldRow, 0, len(keys))
		for _, k := range keys {
			row := FieldRow{Key: k, Type: TypeOf(vv[k])}
			if row.Type != FieldArray && row.Type != FieldObject {
				row.Value = vv[k]
			}
			rows = append(rows, row)
		}
		b.add(path, rows)

		for _, k := range keys {
			switch vv[k].(type) {
			case map[string]any, []any:
				b.walk(vv[k], childPath(path, k))
			default:
				b.add(childPath(path, k), []FieldRow{{Value: vv[k], Type: TypeOf(vv[k])}})
			}
		}
	case []any:
		for i, el := range vv {
			switch el.(type) {
			case map[string]any, []any:
				b.walk(el, childPath(path, i))
			default:
				b.add(childPath(path, i), []FieldRow{{Value: el, Type: TypeOf(el)}})
			}
		}
	default:
		b.add(path, []FieldRow{{Value: v, Type: TypeOf(v)}})
	}
}

// childPath copies before appending so sibling walks never share a backing
// array.
func childPath(path Path, seg any) Path {
	p := make(Path, len(path), len(path)+1)
	copy(p, path)
	return append(p, seg)
}
