package nodeedit

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	gyaml "github.com/goccy/go-yaml"
	"gopkg.in/yaml.v3"
)

// Format tags the source encoding of document contents.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ContentStore owns the raw document text and its source format. The engine
// borrows the decoded document for one read-modify-write cycle per commit and
// never retains it beyond that cycle.
type ContentStore interface {
	Contents() string
	Format() Format
	Decode(raw string, format Format) (any, error)
	Encode(doc any, format Format) (string, error)
	SetContents(contents string, hasChanges bool)
}

// GraphStore owns the graph representation of the document and the current
// selection. SetGraph rebuilds the nodes from the document's JSON form.
type GraphStore interface {
	SelectedNode() *GraphNode
	SetGraph(rawJSON string) error
	Nodes() []GraphNode
	SetSelectedNode(node *GraphNode)
}

// MemoryContentStore is the bundled in-memory ContentStore. It decodes JSON
// with the standard library and YAML through yaml.v3, and encodes back with
// 2-space indentation (goccy on the YAML side, which also indents sequences
// under their keys).
type MemoryContentStore struct {
	mu       sync.RWMutex
	contents string
	format   Format
	dirty    bool
}

func NewMemoryContentStore(contents string, format Format) *MemoryContentStore {
	return &MemoryContentStore{contents: contents, format: format}
}

func (s *MemoryContentStore) Contents() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.contents
}

func (s *MemoryContentStore) Format() Format {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.format
}

// HasChanges reports whether the last SetContents marked the document dirty.
func (s *MemoryContentStore) HasChanges() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dirty
}

func (s *MemoryContentStore) SetContents(contents string, hasChanges bool) {
	s.mu.Lock()
	s.contents = contents
	s.dirty = hasChanges
	s.mu.Unlock()
}

func (s *MemoryContentStore) Decode(raw string, format Format) (any, error) {
	switch format {
	case FormatJSON:
		var v any
		if err := json.Unmarshal([]byte(raw), &v); err != nil {
			return nil, fmt.Errorf("nodeedit: decode json: %w", err)
		}
		return v, nil
	case FormatYAML:
		var v any
		if err := yaml.Unmarshal([]byte(raw), &v); err != nil {
			return nil, fmt.Errorf("nodeedit: decode yaml: %w", err)
		}
		return normalizeYAML(v), nil
	}
	return nil, fmt.Errorf("nodeedit: unsupported format %q", format)
}

func (s *MemoryContentStore) Encode(doc any, format Format) (string, error) {
	switch format {
	case FormatJSON:
		b, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return "", fmt.Errorf("nodeedit: encode json: %w", err)
		}
		return string(b) + "\n", nil
	case FormatYAML:
		var buf bytes.Buffer
		enc := gyaml.NewEncoder(&buf, gyaml.Indent(2), gyaml.IndentSequence(true))
		if err := enc.Encode(doc); err != nil {
			_ = enc.Close()
			return "", fmt.Errorf("nodeedit: encode yaml: %w", err)
		}
		_ = enc.Close()
		return buf.String(), nil
	}
	return "", fmt.Errorf("nodeedit: unsupported format %q", format)
}

// normalizeYAML rewrites yaml.v3 output into the JSON intermediate model:
// map keys become strings and map[any]any (non-string YAML keys) becomes
// map[string]any.
func normalizeYAML(v any) any {
	switch vv := v.(type) {
	case map[string]any:
		for k, e := range vv {
			vv[k] = normalizeYAML(e)
		}
		return vv
	case map[any]any:
		m := make(map[string]any, len(vv))
		for k, e := range vv {
			m[fmt.Sprint(k)] = normalizeYAML(e)
		}
		return m
	case []any:
		for i, e := range vv {
			vv[i] = normalizeYAML(e)
		}
		return vv
	}
	return v
}

// MemoryGraphStore is the bundled in-memory GraphStore, rebuilt through
// BuildGraph.
type MemoryGraphStore struct {
	mu       sync.RWMutex
	nodes    []GraphNode
	selected *GraphNode
}

func NewMemoryGraphStore() *MemoryGraphStore {
	return &MemoryGraphStore{}
}

func (s *MemoryGraphStore) SetGraph(rawJSON string) error {
	var doc any
	if err := json.Unmarshal([]byte(rawJSON), &doc); err != nil {
		return fmt.Errorf("nodeedit: rebuild graph: %w", err)
	}
	nodes := BuildGraph(doc)
	s.mu.Lock()
	s.nodes = nodes
	s.mu.Unlock()
	return nil
}

func (s *MemoryGraphStore) Nodes() []GraphNode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]GraphNode{}, s.nodes...)
}

func (s *MemoryGraphStore) SelectedNode() *GraphNode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selected
}

func (s *MemoryGraphStore) SetSelectedNode(node *GraphNode) {
	s.mu.Lock()
	s.selected = node
	s.mu.Unlock()
}

// SelectPath selects the node addressing p and reports whether one exists.
func (s *MemoryGraphStore) SelectPath(p Path) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.nodes {
		if PathEqual(s.nodes[i].Path, p) {
			s.selected = &s.nodes[i]
			return true
		}
	}
	return false
}
