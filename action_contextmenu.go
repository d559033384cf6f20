package nodeeditor

// ContextMenuKind is what a context menu was opened on.
type ContextMenuKind uint8

const (
	ContextMenuNone ContextMenuKind = iota
	ContextMenuNode
	ContextMenuPin
	ContextMenuLink
	ContextMenuBackground
)

func (k ContextMenuKind) String() string {
	switch k {
	case ContextMenuNode:
		return "node"
	case ContextMenuPin:
		return "pin"
	case ContextMenuLink:
		return "link"
	case ContextMenuBackground:
		return "background"
	default:
		return "none"
	}
}

// ContextMenuAction opens a context menu on a right-click that is released
// over the object it was pressed on. Dragging with the right button hands
// the gesture to navigation instead.
type ContextMenuAction struct {
	actionBase

	candidate   ContextMenuKind
	candidateID int32

	active    bool
	delivered bool
	menu      ContextMenuKind
	contextID int32
}

func newContextMenuAction(e *Editor) *ContextMenuAction {
	return &ContextMenuAction{actionBase: actionBase{e}}
}

func (a *ContextMenuAction) name() string { return "context-menu" }

// target classifies what the cursor is over.
func (a *ContextMenuAction) target(c *control) (ContextMenuKind, int32) {
	switch {
	case c.hotPin != nil:
		return ContextMenuPin, int32(c.hotPin.id)
	case c.hotNode != nil:
		return ContextMenuNode, int32(c.hotNode.id)
	case c.hotLink != nil:
		return ContextMenuLink, int32(c.hotLink.id)
	case c.backgroundHot:
		return ContextMenuBackground, 0
	}
	return ContextMenuNone, 0
}

func (a *ContextMenuAction) accept(c *control) acceptResult {
	if a.active {
		return acceptFalse
	}
	right := a.e.mouse.button(MouseButtonRight)
	if right.pressed {
		a.candidate, a.candidateID = a.target(c)
		if a.candidate != ContextMenuNone {
			return acceptPossible
		}
		return acceptFalse
	}
	if a.candidate == ContextMenuNone {
		return acceptFalse
	}
	if right.down {
		if right.dragging {
			a.reject()
			return acceptFalse
		}
		return acceptPossible
	}
	kind, id := a.target(c)
	if !right.released || kind != a.candidate || id != a.candidateID {
		a.reject()
		return acceptFalse
	}

	a.menu, a.contextID = kind, id
	a.candidate = ContextMenuNone
	a.active = true
	a.delivered = false

	ev := Event{Type: EventContextMenu, Menu: kind, Position: a.e.canvas.FromScreen(a.e.mouse.pos())}
	switch kind {
	case ContextMenuNode:
		ev.Node = NodeID(id)
	case ContextMenuPin:
		ev.Pin = PinID(id)
	case ContextMenuLink:
		ev.Link = LinkID(id)
	}
	a.e.events.push(ev)
	return acceptTrue
}

func (a *ContextMenuAction) reject() {
	a.candidate = ContextMenuNone
	a.candidateID = 0
}

func (a *ContextMenuAction) process(*control) bool {
	if !a.active {
		return false
	}
	if !a.delivered {
		a.delivered = true
		return true
	}
	a.cancel()
	return false
}

func (a *ContextMenuAction) cancel() {
	a.reject()
	a.active = false
	a.delivered = false
	a.menu = ContextMenuNone
	a.contextID = 0
}

// pending returns the menu the host should open this frame.
func (a *ContextMenuAction) pending() (ContextMenuKind, int32) {
	if !a.active || !a.delivered {
		return ContextMenuNone, 0
	}
	return a.menu, a.contextID
}
