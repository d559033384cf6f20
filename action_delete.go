package nodeeditor

// DeleteItemsAction collects nodes and links the user asked to delete and
// hands them to the host one by one. Candidates come from the Delete key
// (the selection plus links touching selected nodes), Alt-click on a link, or
// Editor.DeleteNode/DeleteLink. Accepting a node queues its links.
//
// The candidates are pending for exactly one frame: the frame after the
// request, between BeginDelete and EndDelete.
type DeleteItemsAction struct {
	actionBase

	active    bool
	delivered bool

	inInteraction bool
	currentKind   ObjectKind
	decision      userDecision

	candidates []Object
	index      int
	manual     []Object
}

func newDeleteItemsAction(e *Editor) *DeleteItemsAction {
	return &DeleteItemsAction{actionBase: actionBase{e}}
}

func (a *DeleteItemsAction) name() string { return "delete" }

func (a *DeleteItemsAction) accept(c *control) acceptResult {
	if a.active {
		return acceptFalse
	}
	e := a.e
	a.candidates = a.candidates[:0]

	switch {
	case len(a.manual) > 0:
		for _, o := range a.manual {
			if o.IsLive() {
				a.add(o)
			}
		}
		clear(a.manual)
		a.manual = a.manual[:0]
	case e.opts.ShortcutsEnabled && e.mouse.keyPressed(KeyDelete) && e.sel.len() > 0:
		for _, o := range e.sel.objects {
			a.add(o)
		}
		for _, o := range e.sel.objects {
			if n, ok := o.(*Node); ok {
				for _, l := range e.reg.linksOfNode(n.id) {
					a.add(l)
				}
			}
		}
	case c.clickedLink != nil && e.mouse.mods().Has(ModAlt):
		a.add(c.clickedLink)
	}

	if len(a.candidates) == 0 {
		return acceptFalse
	}
	a.active = true
	a.delivered = false
	return acceptTrue
}

func (a *DeleteItemsAction) add(obj Object) {
	for _, o := range a.candidates {
		if sameObject(o, obj) {
			return
		}
	}
	a.candidates = append(a.candidates, obj)
}

func (a *DeleteItemsAction) process(*control) bool {
	if !a.active {
		return false
	}
	if !a.delivered {
		a.delivered = true
		return true
	}
	a.reset()
	return false
}

func (a *DeleteItemsAction) cancel() { a.reset() }

func (a *DeleteItemsAction) reset() {
	a.active = false
	a.delivered = false
	clear(a.candidates)
	a.candidates = a.candidates[:0]
	a.index = 0
	a.currentKind = ObjectKindNone
}

// queue adds obj to the manual deletion list picked up next frame.
func (a *DeleteItemsAction) queue(obj Object) bool {
	for _, o := range a.manual {
		if sameObject(o, obj) {
			return false
		}
	}
	a.manual = append(a.manual, obj)
	return true
}

// --- host handshake ---

func (a *DeleteItemsAction) begin() bool {
	if !a.active || !a.delivered {
		return false
	}
	if a.inInteraction {
		a.e.assertf("BeginDelete called twice without EndDelete")
		return false
	}
	a.inInteraction = true
	a.currentKind = ObjectKindNone
	a.decision = userUndecided
	return true
}

func (a *DeleteItemsAction) end() {
	if !a.active || !a.delivered {
		return
	}
	if !a.inInteraction {
		a.e.assertf("EndDelete called without BeginDelete")
		return
	}
	a.inInteraction = false
}

// queryItem returns the next pending candidate of kind. Switching kinds
// restarts the scan; querying again without a decision rejects the previous
// candidate.
func (a *DeleteItemsAction) queryItem(kind ObjectKind) (Object, bool) {
	if !a.inInteraction {
		return nil, false
	}
	if a.currentKind != kind {
		a.currentKind = kind
		a.index = 0
	} else if a.decision == userUndecided {
		a.rejectItem()
	}
	a.decision = userUndecided
	for ; a.index < len(a.candidates); a.index++ {
		if a.candidates[a.index].Kind() == kind {
			return a.candidates[a.index], true
		}
	}
	return nil, false
}

func (a *DeleteItemsAction) queryLink() (LinkID, PinID, PinID, bool) {
	obj, ok := a.queryItem(ObjectKindLink)
	if !ok {
		return 0, 0, 0, false
	}
	l := obj.(*Link)
	return l.id, l.startPin, l.endPin, true
}

func (a *DeleteItemsAction) queryNode() (NodeID, bool) {
	obj, ok := a.queryItem(ObjectKindNode)
	if !ok {
		return 0, false
	}
	return obj.(*Node).id, true
}

// acceptItem confirms the current candidate. The node's links are queued
// when the candidate is a node.
func (a *DeleteItemsAction) acceptItem() HandshakeResult {
	if !a.inInteraction || a.currentKind == ObjectKindNone || a.index >= len(a.candidates) {
		return HandshakeIndeterminate
	}
	e := a.e
	obj := a.take()
	a.decision = userAccepted
	e.sel.remove(obj)
	switch o := obj.(type) {
	case *Link:
		if fa := e.flows.Active(o.id); fa != nil {
			fa.Stop()
		}
	case *Node:
		for _, l := range e.reg.linksOfNode(o.id) {
			a.add(l)
		}
	}
	return HandshakeTrue
}

func (a *DeleteItemsAction) rejectItem() HandshakeResult {
	if !a.inInteraction || a.currentKind == ObjectKindNone || a.index >= len(a.candidates) {
		return HandshakeIndeterminate
	}
	a.take()
	a.decision = userRejected
	return HandshakeTrue
}

// take removes the current candidate; index then points at the next one.
func (a *DeleteItemsAction) take() Object {
	obj := a.candidates[a.index]
	a.candidates = append(a.candidates[:a.index], a.candidates[a.index+1:]...)
	return obj
}
