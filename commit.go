package nodeedit

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	jsonpatch "github.com/evanphx/json-patch/v5"
)

// ErrSaveInFlight is returned by Commit while another commit on the same
// Session has not finished.
var ErrSaveInFlight = errors.New("nodeedit: commit already in progress")

// Session drives one edit-modal lifetime over a content store and a graph
// store. It holds the transient edit state: whether the modal is in edit
// mode, the draft text, the single-flight saving flag and the last
// user-visible error. One Session supports exactly one active commit at a
// time; correctness of the borrowed document depends on that discipline.
type Session struct {
	content ContentStore
	graph   GraphStore

	mu      sync.Mutex
	editing bool
	saving  bool
	draft   string
	errMsg  string
}

func NewSession(content ContentStore, graph GraphStore) *Session {
	return &Session{content: content, graph: graph}
}

// BeginEdit enters edit mode, seeding the draft from the selected node's
// rendered fragment.
func (s *Session) BeginEdit() {
	node := s.graph.SelectedNode()
	s.mu.Lock()
	s.editing = true
	s.errMsg = ""
	if node != nil {
		s.draft = RenderFragment(node.Rows)
	} else {
		s.draft = "{}"
	}
	s.mu.Unlock()
}

// CancelEdit leaves edit mode and discards the draft.
func (s *Session) CancelEdit() {
	s.mu.Lock()
	s.editing = false
	s.draft = ""
	s.errMsg = ""
	s.mu.Unlock()
}

func (s *Session) Editing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.editing
}

func (s *Session) Saving() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saving
}

func (s *Session) Draft() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft
}

// Err returns the inline error text from the last failed commit, empty when
// the last commit succeeded or none ran.
func (s *Session) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errMsg
}

// SetDraft replaces the draft text while editing.
func (s *Session) SetDraft(text string) {
	s.mu.Lock()
	s.draft = text
	s.mu.Unlock()
}

// Commit coerces the draft, applies it at the selected node's path inside the
// document fetched from the content store, rebuilds the graph, relocates the
// selection and republishes everything. The sequence is transactional toward
// the stores: any decode, mutation, rebuild or encode failure surfaces as
// Err, preserves the draft for a retry and leaves both stores untouched. A
// selection without a path is a silent no-op: replacing the whole document
// from a node edit is never intended. A relocation miss still commits; the
// selection is cleared and the modal closes.
//
// Commit is single-flight: while one commit runs, further calls return
// ErrSaveInFlight without touching the session state.
func (s *Session) Commit() error {
	s.mu.Lock()
	if s.saving {
		s.mu.Unlock()
		return ErrSaveInFlight
	}
	s.saving = true
	draft := s.draft
	s.mu.Unlock()

	var commitErr error
	committed := false
	defer func() {
		s.mu.Lock()
		s.saving = false
		if commitErr != nil {
			s.errMsg = commitErr.Error()
		} else if committed {
			s.errMsg = ""
			s.editing = false
			s.draft = ""
		}
		s.mu.Unlock()
	}()

	node := s.graph.SelectedNode()
	if node == nil || len(node.Path) == 0 {
		return nil
	}

	value := CoerceValue(draft)

	doc, err := s.content.Decode(s.content.Contents(), s.content.Format())
	if err != nil {
		commitErr = fmt.Errorf("nodeedit: fetch document: %w", err)
		return commitErr
	}
	before, err := json.Marshal(doc)
	if err != nil {
		commitErr = fmt.Errorf("nodeedit: snapshot document: %w", err)
		return commitErr
	}

	res, err := Resync(doc, node.Path, value, node, nil)
	if err != nil {
		commitErr = err
		return commitErr
	}

	encoded, err := s.content.Encode(res.Document, s.content.Format())
	if err != nil {
		commitErr = fmt.Errorf("nodeedit: encode document: %w", err)
		return commitErr
	}
	after, err := json.Marshal(res.Document)
	if err != nil {
		commitErr = fmt.Errorf("nodeedit: encode document: %w", err)
		return commitErr
	}

	// Publish. The graph store rebuilds its own nodes from the JSON form, so
	// the selection is relocated against the store's nodes, not the local
	// rebuild: a host store may number IDs differently.
	if err := s.graph.SetGraph(string(after)); err != nil {
		commitErr = err
		return commitErr
	}
	s.content.SetContents(encoded, !jsonpatch.Equal(before, after))
	s.graph.SetSelectedNode(Relocate(s.graph.Nodes(), node))

	committed = true
	return nil
}
