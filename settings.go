package nodeeditor

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrNoSettings is returned when persisted settings are missing or cannot be
// parsed. Callers fall back to defaults.
var ErrNoSettings = errors.New("nodeeditor: no settings")

// ObjectRef names an object across sessions. It encodes as "node:12".
type ObjectRef struct {
	Kind ObjectKind
	ID   int32
}

// MarshalText implements encoding.TextMarshaler.
func (r ObjectRef) MarshalText() ([]byte, error) {
	return []byte(r.Kind.String() + ":" + strconv.FormatInt(int64(r.ID), 10)), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Unknown kinds decode to
// ObjectKindNone and are ignored on restore.
func (r *ObjectRef) UnmarshalText(b []byte) error {
	kind, id, ok := strings.Cut(string(b), ":")
	if !ok {
		return fmt.Errorf("object ref %q: missing kind", b)
	}
	n, err := strconv.ParseInt(id, 10, 32)
	if err != nil {
		return fmt.Errorf("object ref %q: %w", b, err)
	}
	r.ID = int32(n)
	switch kind {
	case "node":
		r.Kind = ObjectKindNode
	case "pin":
		r.Kind = ObjectKindPin
	case "link":
		r.Kind = ObjectKindLink
	default:
		r.Kind = ObjectKindNone
	}
	return nil
}

func refOf(o Object) ObjectRef { return ObjectRef{Kind: o.Kind(), ID: o.RawID()} }

// NodeSettings is the persisted layout of one node.
type NodeSettings struct {
	ID       NodeID `json:"id"`
	Location Vec2   `json:"location"`
	Size     Vec2   `json:"size"`
	// GroupSize is set for group nodes only.
	GroupSize *Vec2 `json:"group_size,omitempty"`
	WasUsed   bool  `json:"was_used"`

	dirty  bool
	reason SaveReasonFlags
}

// Serialize encodes the node settings as JSON.
func (n *NodeSettings) Serialize() (string, error) {
	b, err := json.Marshal(n)
	if err != nil {
		return "", fmt.Errorf("serialize node %d: %w", n.ID, err)
	}
	return string(b), nil
}

// ParseNodeSettings decodes what NodeSettings.Serialize produced.
func ParseNodeSettings(data string) (NodeSettings, error) {
	var n NodeSettings
	if strings.TrimSpace(data) == "" {
		return n, ErrNoSettings
	}
	if err := json.Unmarshal([]byte(data), &n); err != nil {
		return NodeSettings{}, fmt.Errorf("%w: parse node settings: %w", ErrNoSettings, err)
	}
	return n, nil
}

// Settings is the persisted editor state: node layouts, the selection and the
// view. Dirty tracking records why a save is due.
type Settings struct {
	Nodes     []NodeSettings `json:"nodes"`
	Selection []ObjectRef    `json:"selection"`
	View      View           `json:"view"`

	dirty  bool
	reason SaveReasonFlags
}

// NewSettings returns empty settings with the default view.
func NewSettings() *Settings {
	return &Settings{View: defaultView}
}

// FindNode returns the entry for id, or nil. The pointer is valid until the
// next AddNode.
func (s *Settings) FindNode(id NodeID) *NodeSettings {
	for i := range s.Nodes {
		if s.Nodes[i].ID == id {
			return &s.Nodes[i]
		}
	}
	return nil
}

// AddNode returns the entry for id, appending one when absent.
func (s *Settings) AddNode(id NodeID) *NodeSettings {
	if n := s.FindNode(id); n != nil {
		return n
	}
	s.Nodes = append(s.Nodes, NodeSettings{ID: id})
	return &s.Nodes[len(s.Nodes)-1]
}

// IsDirty reports whether a save is due and why.
func (s *Settings) IsDirty() (bool, SaveReasonFlags) { return s.dirty, s.reason }

func (s *Settings) makeDirty(reason SaveReasonFlags) {
	s.dirty = true
	s.reason |= reason
}

func (s *Settings) clearDirty() {
	s.dirty = false
	s.reason = SaveReasonNone
	for i := range s.Nodes {
		s.Nodes[i].dirty = false
		s.Nodes[i].reason = SaveReasonNone
	}
}

// Serialize encodes the settings as JSON. Nodes never submitted in this
// session are kept only if they came from the loaded state.
func (s *Settings) Serialize() (string, error) {
	out := struct {
		Nodes     []NodeSettings `json:"nodes"`
		Selection []ObjectRef    `json:"selection"`
		View      View           `json:"view"`
	}{
		Nodes:     make([]NodeSettings, 0, len(s.Nodes)),
		Selection: s.Selection,
		View:      s.View,
	}
	for _, n := range s.Nodes {
		if n.WasUsed {
			out.Nodes = append(out.Nodes, n)
		}
	}
	if out.Selection == nil {
		out.Selection = []ObjectRef{}
	}
	b, err := json.Marshal(out)
	if err != nil {
		return "", fmt.Errorf("serialize settings: %w", err)
	}
	return string(b), nil
}

// ParseSettings decodes what Settings.Serialize produced. Unknown fields are
// ignored. Any structural error yields ErrNoSettings.
func ParseSettings(data string) (*Settings, error) {
	if strings.TrimSpace(data) == "" {
		return nil, ErrNoSettings
	}
	s := NewSettings()
	if err := json.Unmarshal([]byte(data), s); err != nil {
		return nil, fmt.Errorf("%w: parse settings: %w", ErrNoSettings, err)
	}
	if s.View.Zoom <= 0 {
		s.View.Zoom = defaultView.Zoom
	}
	for i := range s.Nodes {
		s.Nodes[i].WasUsed = true
	}
	return s, nil
}
