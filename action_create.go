package nodeeditor

// HandshakeResult is the answer to a host call in a create or delete
// handshake.
type HandshakeResult uint8

const (
	HandshakeFalse         HandshakeResult = iota // valid call, nothing happened
	HandshakeTrue                                 // the call took effect
	HandshakeIndeterminate                        // no handshake in progress
)

func (r HandshakeResult) String() string {
	switch r {
	case HandshakeTrue:
		return "true"
	case HandshakeIndeterminate:
		return "indeterminate"
	default:
		return "false"
	}
}

type createStage uint8

const (
	createStageNone     createStage = iota
	createStagePossible             // user is dragging from a pin
	createStageCreate               // user released over an accepted target
)

// CreateItemType is what a pin drag currently proposes.
type CreateItemType uint8

const (
	CreateNoItem CreateItemType = iota
	CreateNode
	CreateLink
)

type userDecision uint8

const (
	userUndecided userDecision = iota
	userRejected
	userAccepted
)

// CreateItemAction proposes new links (drop on a pin) and new nodes (drop on
// the background) while the user drags from a pin. The host polls it between
// BeginCreate and EndCreate and answers with AcceptNewItem or RejectNewItem;
// the editor never adds the link itself.
type CreateItemAction struct {
	actionBase

	active     bool
	inProgress bool

	currentStage createStage
	nextStage    createStage
	itemType     CreateItemType
	decision     userDecision

	linkStart PinID
	linkEnd   PinID
	dragged   PinID
	// candidateEnd is the canvas point the candidate link is drawn to.
	candidateEnd Vec2

	linkColor     Color
	linkThickness float64
}

func newCreateItemAction(e *Editor) *CreateItemAction {
	return &CreateItemAction{actionBase: actionBase{e}, linkColor: ColorWhite, linkThickness: 1}
}

func (a *CreateItemAction) name() string { return "create" }

func (a *CreateItemAction) isDragging() bool { return a.active }

func (a *CreateItemAction) accept(c *control) acceptResult {
	if a.active {
		return acceptFalse
	}
	if c.activePin != nil && a.e.mouse.isDragging(MouseButtonLeft) {
		a.dragStart(c.activePin)
		return acceptTrue
	}
	return acceptFalse
}

func (a *CreateItemAction) process(c *control) bool {
	e := a.e
	switch {
	case !a.active:
	case c.activePin != nil && c.activePin.id == a.dragged && a.currentStage == createStagePossible:
		cursor := e.canvas.FromScreen(e.mouse.pos())
		a.candidateEnd = cursor
		switch {
		case c.hotPin != nil:
			a.dropPin(c.hotPin)
			if a.decision == userAccepted {
				a.candidateEnd = c.hotPin.pivot.Center()
			}
		case c.backgroundHot:
			a.dropNode()
		default:
			a.dropNothing()
		}
	case a.currentStage == createStagePossible || c.activePin == nil:
		if !e.canvas.ScreenRect().ContainsPoint(e.mouse.pos()) {
			a.dropNothing()
		}
		a.dragEnd()
		a.active = false
	default:
		a.candidateEnd = e.canvas.FromScreen(e.mouse.pos())
	}
	return a.active
}

func (a *CreateItemAction) cancel() {
	a.dropNothing()
	a.nextStage = createStageNone
	a.active = false
}

func (a *CreateItemAction) dragStart(pin *Pin) {
	a.active = true
	a.nextStage = createStagePossible
	a.dragged = pin.id
	a.linkStart = pin.id
	a.linkEnd = 0
	a.itemType = CreateNoItem
	a.candidateEnd = pin.pivot.Center()
}

func (a *CreateItemAction) dragEnd() {
	if a.currentStage == createStagePossible && a.decision == userAccepted {
		a.nextStage = createStageCreate
	} else {
		a.nextStage = createStageNone
	}
}

func (a *CreateItemAction) dropPin(pin *Pin) {
	a.itemType = CreateLink
	a.linkEnd = pin.id
}

func (a *CreateItemAction) dropNode() {
	a.itemType = CreateNode
	a.linkEnd = 0
}

func (a *CreateItemAction) dropNothing() {
	a.itemType = CreateNoItem
	a.linkEnd = 0
}

// --- host handshake ---

func (a *CreateItemAction) begin() bool {
	if a.inProgress {
		a.e.assertf("BeginCreate called twice without EndCreate")
		return false
	}
	a.inProgress = true
	a.currentStage = a.nextStage
	if a.currentStage == createStageCreate {
		a.nextStage = createStageNone
	}
	a.decision = userUndecided
	a.linkColor = ColorWhite
	a.linkThickness = 1
	return a.currentStage != createStageNone
}

func (a *CreateItemAction) end() {
	if !a.inProgress {
		a.e.assertf("EndCreate called without BeginCreate")
		return
	}
	a.inProgress = false
}

func (a *CreateItemAction) queryLink() (start, end PinID, r HandshakeResult) {
	if !a.inProgress {
		return 0, 0, HandshakeIndeterminate
	}
	if a.currentStage == createStageNone || a.itemType != CreateLink {
		return 0, 0, HandshakeFalse
	}
	return a.linkStart, a.linkEnd, HandshakeTrue
}

func (a *CreateItemAction) queryNode() (PinID, HandshakeResult) {
	if !a.inProgress {
		return 0, HandshakeIndeterminate
	}
	if a.currentStage == createStageNone || a.itemType != CreateNode {
		return 0, HandshakeFalse
	}
	return a.linkStart, HandshakeTrue
}

// acceptItem records the host's approval. It returns true only in the stage
// where the host should commit the item; during the drag it just marks the
// candidate as valid.
func (a *CreateItemAction) acceptItem() HandshakeResult {
	if !a.inProgress || a.currentStage == createStageNone || a.itemType == CreateNoItem {
		return HandshakeIndeterminate
	}
	a.decision = userAccepted
	if a.currentStage == createStageCreate {
		a.dropNothing()
		return HandshakeTrue
	}
	return HandshakeFalse
}

func (a *CreateItemAction) rejectItem() HandshakeResult {
	if !a.inProgress || a.currentStage == createStageNone || a.itemType == CreateNoItem {
		return HandshakeIndeterminate
	}
	a.decision = userRejected
	return HandshakeTrue
}

func (a *CreateItemAction) setStyle(c Color, thickness float64) {
	a.linkColor = c
	a.linkThickness = thickness
}

// candidate returns the rubber-band link to draw while dragging.
func (a *CreateItemAction) candidate() (from PinID, to Vec2, ok bool) {
	if !a.active {
		return 0, Vec2{}, false
	}
	return a.dragged, a.candidateEnd, true
}
