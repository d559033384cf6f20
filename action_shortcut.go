package nodeeditor

import "go.uber.org/zap"

// ShortcutKind is a clipboard-style command requested from the keyboard.
type ShortcutKind uint8

const (
	ShortcutNone ShortcutKind = iota
	ShortcutCut
	ShortcutCopy
	ShortcutPaste
	ShortcutDuplicate
	ShortcutCreateNode
)

func (k ShortcutKind) String() string {
	switch k {
	case ShortcutCut:
		return "cut"
	case ShortcutCopy:
		return "copy"
	case ShortcutPaste:
		return "paste"
	case ShortcutDuplicate:
		return "duplicate"
	case ShortcutCreateNode:
		return "create-node"
	default:
		return "none"
	}
}

// ShortcutAction maps Ctrl+X/C/V/D and Space to commands the host performs.
// The editor only captures which objects the command applies to: the
// selection, or the hovered object when nothing is selected.
type ShortcutAction struct {
	actionBase

	active        bool
	delivered     bool
	inInteraction bool

	kind     ShortcutKind
	context  []Object
	accepted bool
}

func newShortcutAction(e *Editor) *ShortcutAction { return &ShortcutAction{actionBase: actionBase{e}} }

func (a *ShortcutAction) name() string { return "shortcut" }

// requested returns the command the keys pressed this frame ask for.
func (a *ShortcutAction) requested() ShortcutKind {
	m := &a.e.mouse
	mods := m.mods()
	if mods == ModCtrl || mods == ModMeta {
		switch {
		case m.keyPressed(KeyX):
			return ShortcutCut
		case m.keyPressed(KeyC):
			return ShortcutCopy
		case m.keyPressed(KeyV):
			return ShortcutPaste
		case m.keyPressed(KeyD):
			return ShortcutDuplicate
		}
	}
	if mods == 0 && m.keyPressed(KeySpace) {
		return ShortcutCreateNode
	}
	return ShortcutNone
}

func (a *ShortcutAction) accept(c *control) acceptResult {
	e := a.e
	if a.active || !e.opts.ShortcutsEnabled {
		return acceptFalse
	}
	kind := a.requested()
	if kind == ShortcutNone {
		return acceptFalse
	}

	a.context = a.context[:0]
	if kind != ShortcutPaste && kind != ShortcutCreateNode {
		if e.sel.len() > 0 {
			a.context = append(a.context, e.sel.objects...)
		} else if hot := c.hotObject; hot != nil && hot.isSelectable() {
			if n, ok := hot.(*Node); !ok || !n.IsGroup() {
				a.context = append(a.context, hot)
			}
		}
		if len(a.context) == 0 {
			return acceptFalse
		}
	}

	a.kind = kind
	a.active = true
	a.delivered = false
	a.accepted = false
	e.events.push(Event{
		Type:     EventShortcut,
		Shortcut: kind,
		Nodes:    a.nodes(),
		Links:    a.links(),
		Position: e.canvas.FromScreen(e.mouse.pos()),
	})
	return acceptTrue
}

func (a *ShortcutAction) process(*control) bool {
	if !a.active {
		return false
	}
	if !a.delivered {
		a.delivered = true
		return true
	}
	if !a.accepted {
		a.e.logger.Debug("shortcut not handled", zap.Stringer("shortcut", a.kind))
	}
	a.cancel()
	return false
}

func (a *ShortcutAction) cancel() {
	a.active = false
	a.delivered = false
	a.inInteraction = false
	a.accepted = false
	a.kind = ShortcutNone
	clear(a.context)
	a.context = a.context[:0]
}

// --- host handshake ---

func (a *ShortcutAction) begin() bool {
	if !a.active || !a.delivered {
		return false
	}
	if a.inInteraction {
		a.e.assertf("BeginShortcut called twice without EndShortcut")
		return false
	}
	a.inInteraction = true
	return true
}

func (a *ShortcutAction) end() {
	if !a.active || !a.delivered {
		return
	}
	if !a.inInteraction {
		a.e.assertf("EndShortcut called without BeginShortcut")
		return
	}
	a.inInteraction = false
}

// acceptKind confirms the pending command when it is kind.
func (a *ShortcutAction) acceptKind(kind ShortcutKind) bool {
	if !a.inInteraction || a.kind != kind {
		return false
	}
	a.accepted = true
	return true
}

func (a *ShortcutAction) current() ShortcutKind {
	if !a.inInteraction {
		return ShortcutNone
	}
	return a.kind
}

func (a *ShortcutAction) nodes() []NodeID {
	var out []NodeID
	for _, o := range a.context {
		if n, ok := o.(*Node); ok {
			out = append(out, n.id)
		}
	}
	return out
}

func (a *ShortcutAction) links() []LinkID {
	var out []LinkID
	for _, o := range a.context {
		if l, ok := o.(*Link); ok {
			out = append(out, l.id)
		}
	}
	return out
}
