package nodeeditor

import "slices"

// --- Links ---

// DoLink submits link id from start to end for this frame. It returns false
// when either pin is unknown or both are the same pin. A link whose pins are
// not submitted this frame is dropped at End.
func (e *Editor) DoLink(id LinkID, start, end PinID, color Color, thickness float64) bool {
	if !e.inFrame {
		e.assertf("DoLink(%d) outside Begin/End", id)
		return false
	}
	if start == end || e.reg.findPin(start) == nil || e.reg.findPin(end) == nil {
		return false
	}
	l, _ := e.reg.createLink(id)
	l.startPin, l.endPin = start, end
	l.color = color
	l.thickness = thickness
	return true
}

// Flow starts or restarts the flow markers on a live link.
func (e *Editor) Flow(id LinkID) bool {
	l := e.reg.findLink(id)
	if l == nil || !l.live {
		return false
	}
	st := e.style
	e.flows.Flow(l, st.FlowMarkerDistance, st.FlowSpeed, st.FlowDuration)
	return true
}

// --- Object lookup ---

// FindNode returns the node for id, live or not, or nil.
func (e *Editor) FindNode(id NodeID) *Node { return e.reg.findNode(id) }

// FindPin returns the pin for id, live or not, or nil.
func (e *Editor) FindPin(id PinID) *Pin { return e.reg.findPin(id) }

// FindLink returns the link for id, live or not, or nil.
func (e *Editor) FindLink(id LinkID) *Link { return e.reg.findLink(id) }

// getNode is FindNode for callers that created the node themselves.
func (e *Editor) getNode(id NodeID) *Node {
	n := e.reg.findNode(id)
	if n == nil {
		e.assertf("node %d does not exist", id)
	}
	return n
}

// NodeAt returns the topmost live node under the canvas point p.
func (e *Editor) NodeAt(p Vec2) (NodeID, bool) {
	if n := e.reg.findNodeAt(p); n != nil {
		return n.id, true
	}
	return 0, false
}

// LinkAt returns the live link passing closest to the canvas point p.
func (e *Editor) LinkAt(p Vec2) (LinkID, bool) {
	if l := e.reg.findLinkAt(p, e.opts.LinkHitThickness*e.canvas.InvZoom().X); l != nil {
		return l.id, true
	}
	return 0, false
}

// FindNodesInRect returns live nodes inside the canvas rectangle, or merely
// touching it when allowIntersect is set.
func (e *Editor) FindNodesInRect(r Rect, allowIntersect bool) []NodeID {
	var out []NodeID
	for _, n := range e.reg.findNodesInRect(r, allowIntersect, true) {
		out = append(out, n.id)
	}
	return out
}

// FindLinksInRect returns live links inside the canvas rectangle, or
// crossing it when allowIntersect is set.
func (e *Editor) FindLinksInRect(r Rect, allowIntersect bool) []LinkID {
	var out []LinkID
	for _, l := range e.reg.findLinksInRect(r, allowIntersect) {
		out = append(out, l.id)
	}
	return out
}

// ContentBounds unions the bounds of every live node.
func (e *Editor) ContentBounds() (Rect, bool) { return e.reg.contentBounds() }

// --- Nodes ---

// SetNodePosition moves node id. The node is created, not live, when it was
// never submitted, so the position applies to its first submission and wins
// over the persisted one.
func (e *Editor) SetNodePosition(id NodeID, pos Vec2) {
	n := e.hostNode(id)
	n.hostPosition = true
	if n.position == pos {
		return
	}
	n.setPosition(pos)
	e.settings.AddNode(id).Location = pos
	e.makeNodeDirty(n, SaveReasonPosition)
}

// NodePosition returns the canvas top-left of node id.
func (e *Editor) NodePosition(id NodeID) (Vec2, bool) {
	n := e.reg.findNode(id)
	if n == nil {
		return Vec2{}, false
	}
	return n.position, true
}

// NodeSize returns the size of node id as of its last End.
func (e *Editor) NodeSize(id NodeID) (Vec2, bool) {
	n := e.reg.findNode(id)
	if n == nil {
		return Vec2{}, false
	}
	return n.bounds.Size(), true
}

// hostNode returns node id, creating it for its first submission. A created
// node still restores the rest of its persisted layout.
func (e *Editor) hostNode(id NodeID) *Node {
	n, created := e.reg.nodes.getOrCreate(id, newNode)
	if created {
		n.restoreState = true
	}
	return n
}

// SetGroupSize overrides the interior size of group node id. Like
// SetNodePosition it wins over the persisted size.
func (e *Editor) SetGroupSize(id NodeID, size Vec2) {
	n := e.hostNode(id)
	n.groupSize = size
	n.hasGroupSize = true
	n.hostGroupSize = true
	e.makeNodeDirty(n, SaveReasonSize)
}

// CenterNodeOnScreen centers node id in the window when it is next
// submitted.
func (e *Editor) CenterNodeOnScreen(id NodeID) {
	if n := e.getNode(id); n != nil {
		n.centerOnScreen = true
	}
}

// RestoreNodeState re-reads the persisted layout of node id on its next
// submission.
func (e *Editor) RestoreNodeState(id NodeID) bool {
	n := e.reg.findNode(id)
	if n == nil {
		return false
	}
	n.restoreState = true
	n.hostPosition, n.hostGroupSize = false, false
	return true
}

// --- Pins ---

// PinHadAnyLinks reports whether pin id was connected in this or the
// previous frame.
func (e *Editor) PinHadAnyLinks(id PinID) bool {
	p := e.reg.findPin(id)
	return p != nil && (p.hasConnection || p.hadConnection)
}

// PinLostConnection reports whether pin id lost its last link at the
// previous End.
func (e *Editor) PinLostConnection(id PinID) bool {
	p := e.reg.findPin(id)
	return p != nil && p.lostConnection
}

// --- Selection ---

func (e *Editor) selectObject(obj Object, appendTo bool) {
	if appendTo {
		e.sel.add(obj)
	} else {
		e.sel.setExclusive(obj)
	}
}

// SelectNode selects node id, replacing the selection unless appendTo is set.
func (e *Editor) SelectNode(id NodeID, appendTo bool) bool {
	n := e.reg.findNode(id)
	if n == nil {
		return false
	}
	e.selectObject(n, appendTo)
	return true
}

// SelectLink selects link id, replacing the selection unless appendTo is set.
func (e *Editor) SelectLink(id LinkID, appendTo bool) bool {
	l := e.reg.findLink(id)
	if l == nil {
		return false
	}
	e.selectObject(l, appendTo)
	return true
}

// DeselectNode removes node id from the selection.
func (e *Editor) DeselectNode(id NodeID) bool {
	n := e.reg.findNode(id)
	return n != nil && e.sel.remove(n)
}

// DeselectLink removes link id from the selection.
func (e *Editor) DeselectLink(id LinkID) bool {
	l := e.reg.findLink(id)
	return l != nil && e.sel.remove(l)
}

// ClearSelection deselects everything.
func (e *Editor) ClearSelection() { e.sel.clear() }

// IsNodeSelected reports whether node id is selected.
func (e *Editor) IsNodeSelected(id NodeID) bool {
	n := e.reg.findNode(id)
	return n != nil && e.sel.contains(n)
}

// IsLinkSelected reports whether link id is selected.
func (e *Editor) IsLinkSelected(id LinkID) bool {
	l := e.reg.findLink(id)
	return l != nil && e.sel.contains(l)
}

// SelectedNodes returns the selected nodes in selection order.
func (e *Editor) SelectedNodes() []NodeID { return e.sel.nodes() }

// SelectedLinks returns the selected links in selection order.
func (e *Editor) SelectedLinks() []LinkID { return e.sel.links() }

// SelectedObjectCount returns the number of selected objects.
func (e *Editor) SelectedObjectCount() int { return e.sel.len() }

// HasSelectionChanged reports whether the last End changed the selection.
func (e *Editor) HasSelectionChanged() bool { return e.selectionChanged }

// SelectionID advances on every selection change.
func (e *Editor) SelectionID() uint64 { return e.sel.id }

// --- Deletion ---

// DeleteNode asks for node id to go through the delete handshake next
// frame.
func (e *Editor) DeleteNode(id NodeID) bool {
	n := e.reg.findNode(id)
	if n == nil {
		return false
	}
	return e.deleteAct.queue(n)
}

// DeleteLink asks for link id to go through the delete handshake next
// frame.
func (e *Editor) DeleteLink(id LinkID) bool {
	l := e.reg.findLink(id)
	if l == nil {
		return false
	}
	return e.deleteAct.queue(l)
}

// DeletedNodes returns nodes that stopped being submitted at the last End.
func (e *Editor) DeletedNodes() []NodeID { return e.reg.deletedNodes }

// DeletedLinks returns links that stopped being submitted or lost a pin at
// the last End.
func (e *Editor) DeletedLinks() []LinkID { return e.reg.deletedLinks }

// WasNodeDeleted reports whether node id disappeared at the last End.
func (e *Editor) WasNodeDeleted(id NodeID) bool { return slices.Contains(e.reg.deletedNodes, id) }

// WasLinkDeleted reports whether link id disappeared at the last End.
func (e *Editor) WasLinkDeleted(id LinkID) bool { return slices.Contains(e.reg.deletedLinks, id) }

// --- Navigation ---

// NavigateToContent shows every live node. A negative duration uses the
// style's scroll duration.
func (e *Editor) NavigateToContent(duration float64) {
	e.navigate = navigateRequest{pending: true, target: navigateContent, zoomIn: true, duration: duration}
}

// NavigateToSelection shows the selection. Without zoomIn the view only
// zooms out.
func (e *Editor) NavigateToSelection(zoomIn bool, duration float64) {
	e.navigate = navigateRequest{pending: true, target: navigateSelection, zoomIn: zoomIn, duration: duration}
}

// NavigateTo shows the canvas rectangle bounds.
func (e *Editor) NavigateTo(bounds Rect, zoomIn bool, duration float64) {
	e.navigate = navigateRequest{pending: true, target: navigateBounds, bounds: bounds, zoomIn: zoomIn, duration: duration}
}

// IsNavigating reports whether a navigation animation is playing.
func (e *Editor) IsNavigating() bool { return e.navigateAct.anim.IsPlaying() }

// --- Clicks ---

// HoveredNode returns the node under the cursor at the last End.
func (e *Editor) HoveredNode() (NodeID, bool) {
	if n, ok := e.control.hotObject.(*Node); ok {
		return n.id, true
	}
	return 0, false
}

// HoveredPin returns the pin under the cursor at the last End.
func (e *Editor) HoveredPin() (PinID, bool) {
	if p := e.control.hotPin; p != nil {
		return p.id, true
	}
	return 0, false
}

// HoveredLink returns the link under the cursor at the last End.
func (e *Editor) HoveredLink() (LinkID, bool) {
	if l := e.control.hotLink; l != nil {
		return l.id, true
	}
	return 0, false
}

// DoubleClickedNode returns the node double-clicked at the last End.
func (e *Editor) DoubleClickedNode() (NodeID, bool) {
	if n, ok := e.control.doubleClickedObject.(*Node); ok {
		return n.id, true
	}
	return 0, false
}

// DoubleClickedPin returns the pin double-clicked at the last End.
func (e *Editor) DoubleClickedPin() (PinID, bool) {
	if p := e.control.doubleClickedPin; p != nil {
		return p.id, true
	}
	return 0, false
}

// DoubleClickedLink returns the link double-clicked at the last End.
func (e *Editor) DoubleClickedLink() (LinkID, bool) {
	if l := e.control.doubleClickedLink; l != nil {
		return l.id, true
	}
	return 0, false
}

// IsBackgroundClicked reports a click on empty canvas at the last End.
func (e *Editor) IsBackgroundClicked() bool { return e.control.backgroundClicked }

// IsBackgroundDoubleClicked reports a double-click on empty canvas at the
// last End.
func (e *Editor) IsBackgroundDoubleClicked() bool { return e.control.backgroundDoubleClicked }
