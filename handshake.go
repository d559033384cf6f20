package nodeeditor

// --- Create ---

// BeginCreate opens the create handshake. It returns true while the user is
// dragging from a pin or has just dropped. EndCreate must follow either way.
//
//	if ed.BeginCreate() {
//		if from, to, ok := ed.QueryNewLink(); ok {
//			if !compatible(from, to) {
//				ed.RejectNewItem()
//			} else if ed.AcceptNewItem() == nodeeditor.HandshakeTrue {
//				links = append(links, link{from, to})
//			}
//		}
//	}
//	ed.EndCreate()
func (e *Editor) BeginCreate() bool { return e.createAct.begin() }

// EndCreate closes the create handshake.
func (e *Editor) EndCreate() { e.createAct.end() }

// QueryNewLink returns the pins of the proposed link.
func (e *Editor) QueryNewLink() (start, end PinID, ok bool) {
	start, end, r := e.createAct.queryLink()
	return start, end, r == HandshakeTrue
}

// QueryNewNode returns the pin the user dragged to empty canvas from.
func (e *Editor) QueryNewNode() (PinID, bool) {
	pin, r := e.createAct.queryNode()
	return pin, r == HandshakeTrue
}

// AcceptNewItem marks the proposal as valid. It returns HandshakeTrue in
// the frame the host should commit the item, HandshakeFalse while the drag
// goes on and HandshakeIndeterminate when nothing is proposed.
func (e *Editor) AcceptNewItem() HandshakeResult { return e.createAct.acceptItem() }

// AcceptNewItemStyled is AcceptNewItem that also styles the candidate link.
func (e *Editor) AcceptNewItemStyled(c Color, thickness float64) HandshakeResult {
	r := e.createAct.acceptItem()
	if r != HandshakeIndeterminate {
		e.createAct.setStyle(c, thickness)
	}
	return r
}

// RejectNewItem marks the proposal as invalid.
func (e *Editor) RejectNewItem() HandshakeResult { return e.createAct.rejectItem() }

// RejectNewItemStyled is RejectNewItem that also styles the candidate link.
func (e *Editor) RejectNewItemStyled(c Color, thickness float64) HandshakeResult {
	r := e.createAct.rejectItem()
	if r != HandshakeIndeterminate {
		e.createAct.setStyle(c, thickness)
	}
	return r
}

// SetNewItemStyle styles the candidate link drawn during the drag.
func (e *Editor) SetNewItemStyle(c Color, thickness float64) {
	if e.createAct.inProgress {
		e.createAct.setStyle(c, thickness)
	}
}

// --- Delete ---

// BeginDelete opens the delete handshake. It returns true in the one frame
// deletion candidates are pending. EndDelete must follow either way.
func (e *Editor) BeginDelete() bool { return e.deleteAct.begin() }

// EndDelete closes the delete handshake.
func (e *Editor) EndDelete() { e.deleteAct.end() }

// QueryDeletedLink returns the next link candidate.
func (e *Editor) QueryDeletedLink() (id LinkID, start, end PinID, ok bool) {
	return e.deleteAct.queryLink()
}

// QueryDeletedNode returns the next node candidate.
func (e *Editor) QueryDeletedNode() (NodeID, bool) { return e.deleteAct.queryNode() }

// AcceptDeletedItem confirms the last queried candidate. The host then stops
// submitting it. Accepting a node makes its links candidates too.
func (e *Editor) AcceptDeletedItem() HandshakeResult { return e.deleteAct.acceptItem() }

// RejectDeletedItem keeps the last queried candidate.
func (e *Editor) RejectDeletedItem() HandshakeResult { return e.deleteAct.rejectItem() }

// --- Context menus ---

// ShowNodeContextMenu reports a context menu requested on a node.
func (e *Editor) ShowNodeContextMenu() (NodeID, bool) {
	kind, id := e.contextAct.pending()
	return NodeID(id), kind == ContextMenuNode
}

// ShowPinContextMenu reports a context menu requested on a pin.
func (e *Editor) ShowPinContextMenu() (PinID, bool) {
	kind, id := e.contextAct.pending()
	return PinID(id), kind == ContextMenuPin
}

// ShowLinkContextMenu reports a context menu requested on a link.
func (e *Editor) ShowLinkContextMenu() (LinkID, bool) {
	kind, id := e.contextAct.pending()
	return LinkID(id), kind == ContextMenuLink
}

// ShowBackgroundContextMenu reports a context menu requested on empty
// canvas.
func (e *Editor) ShowBackgroundContextMenu() bool {
	kind, _ := e.contextAct.pending()
	return kind == ContextMenuBackground
}

// --- Shortcuts ---

// BeginShortcut opens the shortcut handshake. It returns true in the one
// frame a command is pending. EndShortcut must follow either way.
func (e *Editor) BeginShortcut() bool { return e.shortcutAct.begin() }

// EndShortcut closes the shortcut handshake.
func (e *Editor) EndShortcut() { e.shortcutAct.end() }

// CurrentShortcut returns the pending command.
func (e *Editor) CurrentShortcut() ShortcutKind { return e.shortcutAct.current() }

// AcceptCut confirms a pending cut.
func (e *Editor) AcceptCut() bool { return e.shortcutAct.acceptKind(ShortcutCut) }

// AcceptCopy confirms a pending copy.
func (e *Editor) AcceptCopy() bool { return e.shortcutAct.acceptKind(ShortcutCopy) }

// AcceptPaste confirms a pending paste.
func (e *Editor) AcceptPaste() bool { return e.shortcutAct.acceptKind(ShortcutPaste) }

// AcceptDuplicate confirms a pending duplicate.
func (e *Editor) AcceptDuplicate() bool { return e.shortcutAct.acceptKind(ShortcutDuplicate) }

// AcceptCreateNode confirms a pending create-node request.
func (e *Editor) AcceptCreateNode() bool { return e.shortcutAct.acceptKind(ShortcutCreateNode) }

// ShortcutContextNodes returns the nodes the pending command applies to.
func (e *Editor) ShortcutContextNodes() []NodeID { return e.shortcutAct.nodes() }

// ShortcutContextLinks returns the links the pending command applies to.
func (e *Editor) ShortcutContextLinks() []LinkID { return e.shortcutAct.links() }
