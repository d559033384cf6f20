package nodeeditor

import "go.uber.org/zap"

// control is the per-frame hit-test result every action reads. Pin fields
// also set the matching node field to the pin's owner.
type control struct {
	hotObject           Object
	activeObject        Object
	clickedObject       Object
	doubleClickedObject Object

	hotNode, activeNode, clickedNode, doubleClickedNode *Node
	hotPin, activePin, clickedPin, doubleClickedPin     *Pin
	hotLink, activeLink, clickedLink, doubleClickedLink *Link

	backgroundHot           bool
	backgroundActive        bool
	backgroundClicked       bool
	backgroundDoubleClicked bool
}

// pressTarget remembers what the left button went down on until it is
// released.
type pressTarget struct {
	object     Object
	background bool
}

// buildControl hit-tests the cursor against the live scene and folds in the
// left-button press state. allowOffscreen keeps tracking while a dragging
// action has the cursor outside the window.
func (e *Editor) buildControl(allowOffscreen bool) control {
	var c control
	st := &e.mouse.state
	left := e.mouse.button(MouseButtonLeft)
	inside := e.canvas.ScreenRect().ContainsPoint(st.MousePos)

	if !st.Focused || (!inside && !allowOffscreen) {
		if left.released || !left.down {
			e.press = pressTarget{}
		}
		return c
	}

	hot := e.hitTest(e.canvas.FromScreen(st.MousePos))
	c.hotObject = hot
	c.backgroundHot = hot == nil && inside

	if left.pressed {
		e.press = pressTarget{object: hot, background: hot == nil && inside}
		if left.double {
			c.doubleClickedObject = hot
			c.backgroundDoubleClicked = hot == nil && inside
		}
	}

	c.activeObject = e.press.object
	c.backgroundActive = e.press.background
	if c.activeObject != nil && !c.activeObject.IsLive() {
		c.activeObject = nil
		e.press.object = nil
	}

	if left.released {
		if !left.dragging {
			if e.press.object != nil && sameObject(e.press.object, hot) {
				c.clickedObject = hot
			} else if e.press.background && hot == nil {
				c.backgroundClicked = true
			}
		}
		c.activeObject = nil
		c.backgroundActive = false
		e.press = pressTarget{}
	}

	c.hotNode, c.hotPin, c.hotLink = e.split(c.hotObject)
	c.activeNode, c.activePin, c.activeLink = e.split(c.activeObject)
	c.clickedNode, c.clickedPin, c.clickedLink = e.split(c.clickedObject)
	c.doubleClickedNode, c.doubleClickedPin, c.doubleClickedLink = e.split(c.doubleClickedObject)
	return c
}

// hitTest returns the topmost object at p (canvas space). Pins are tested
// before the node that owns them; links only when no node is hit.
func (e *Editor) hitTest(p Vec2) Object {
	for _, n := range e.reg.nodesByZ() {
		for _, id := range n.pins {
			if pin := e.reg.findPin(id); pin != nil && pin.testHit(p, 0) {
				return pin
			}
		}
		if n.testHit(p, 0) {
			return n
		}
	}
	if l := e.reg.findLinkAt(p, e.opts.LinkHitThickness*e.canvas.InvZoom().X); l != nil {
		return l
	}
	return nil
}

// split resolves obj into its typed views.
func (e *Editor) split(obj Object) (*Node, *Pin, *Link) {
	switch o := obj.(type) {
	case *Node:
		return o, nil, nil
	case *Pin:
		return e.reg.findNode(o.node), o, nil
	case *Link:
		return nil, nil, o
	}
	return nil, nil, nil
}

// --- Arbitration ---

// acceptResult is an action's answer to the frame's control.
type acceptResult uint8

const (
	acceptFalse    acceptResult = iota // not applicable
	acceptTrue                         // claims the frame
	acceptPossible                     // candidate if nothing claims
)

func (r acceptResult) String() string {
	switch r {
	case acceptTrue:
		return "true"
	case acceptPossible:
		return "possible"
	default:
		return "false"
	}
}

// action is one interaction state machine. process returns true while the
// action wants to stay current.
type action interface {
	name() string
	accept(c *control) acceptResult
	process(c *control) bool
	reject()
	isDragging() bool
	// cancel abandons the interaction, rolling back what it can.
	cancel()
}

// runActions offers the frame to the current action, or arbitrates a new one
// in priority order.
func (e *Editor) runActions(c *control) {
	e.stats.processed = ""
	if e.current != nil {
		e.processAction(e.current, c)
		return
	}

	var possible []action
	for _, a := range e.actions {
		switch a.accept(c) {
		case acceptTrue:
			for _, p := range possible {
				p.reject()
			}
			e.processAction(a, c)
			return
		case acceptPossible:
			possible = append(possible, a)
		}
	}
	if len(possible) == 0 {
		return
	}
	for _, p := range possible[1:] {
		p.reject()
	}
	e.processAction(possible[0], c)
}

func (e *Editor) processAction(a action, c *control) {
	e.stats.processed = a.name()
	keep := a.process(c)
	switch {
	case keep && e.current != a:
		e.current = a
		if e.debug {
			e.logger.Debug("action started", zap.String("action", a.name()))
		}
	case !keep && e.current == a:
		e.current = nil
		if e.debug {
			e.logger.Debug("action finished", zap.String("action", a.name()))
		}
	}
}

// cancelCurrent abandons the current action, if any.
func (e *Editor) cancelCurrent() {
	if e.current == nil {
		return
	}
	if e.debug {
		e.logger.Debug("action cancelled", zap.String("action", e.current.name()))
	}
	e.current.cancel()
	e.current = nil
}

// actionBase supplies defaults for the optional parts of action.
type actionBase struct {
	e *Editor
}

func (actionBase) reject()          {}
func (actionBase) isDragging() bool { return false }
func (actionBase) cancel()          {}
