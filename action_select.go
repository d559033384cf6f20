package nodeeditor

import "github.com/tanema/gween/ease"

// SelectAction handles click selection and the selection rectangle. Alt
// selects links instead of nodes, Shift lets the rectangle pick groups, and
// Ctrl adds to the selection that existed before the drag.
type SelectAction struct {
	actionBase

	active       bool
	linkMode     bool
	selectGroups bool
	start, end   Vec2

	startSelection []Object
	candidates     []Object

	// The committed rectangle fades out after release.
	fade     Animation
	fadeRect Rect
	fadeLink bool
}

func newSelectAction(e *Editor) *SelectAction {
	s := &SelectAction{actionBase: actionBase{e}}
	s.fade.init(&e.animations, animationHooks{}, ease.OutQuad)
	return s
}

func (s *SelectAction) name() string { return "select" }

func (s *SelectAction) isDragging() bool { return s.active }

func (s *SelectAction) accept(c *control) acceptResult {
	e := s.e
	mods := e.mouse.mods()
	s.selectGroups = mods.Has(ModShift)
	s.linkMode = mods.Has(ModAlt)

	if c.backgroundActive && e.mouse.isDragging(MouseButtonLeft) {
		s.active = true
		s.start = e.mouse.button(MouseButtonLeft).pressCanvas
		s.end = e.canvas.FromScreen(e.mouse.pos())
		s.startSelection = s.startSelection[:0]
		if mods.Has(ModCtrl) {
			for _, o := range e.sel.objects {
				if s.fits(o) {
					s.startSelection = append(s.startSelection, o)
				}
			}
		}
		s.candidates = append(s.candidates[:0], s.startSelection...)
		s.fade.Stop()
		return acceptTrue
	}

	if c.backgroundClicked {
		e.sel.clear()
		return acceptFalse
	}

	obj := c.clickedObject
	if c.clickedPin != nil && c.clickedNode != nil {
		// a pin click selects its node
		obj = c.clickedNode
	}
	if obj != nil && obj.isSelectable() {
		if e.sel.len() > 0 && e.sel.objects[0].Kind() != obj.Kind() {
			e.sel.clear()
		}
		if mods.Has(ModCtrl) {
			e.sel.toggle(obj)
		} else {
			e.sel.setExclusive(obj)
		}
	}
	return acceptFalse
}

// fits reports whether obj belongs to the kind the rectangle selects.
func (s *SelectAction) fits(obj Object) bool {
	if s.linkMode {
		return obj.Kind() == ObjectKindLink
	}
	return obj.Kind() == ObjectKindNode
}

func (s *SelectAction) process(*control) bool {
	if !s.active {
		return false
	}
	e := s.e
	s.end = e.canvas.FromScreen(e.mouse.pos())
	rect := RectFromPoints(s.start, s.end)

	s.candidates = append(s.candidates[:0], s.startSelection...)
	if s.linkMode {
		for _, l := range e.reg.findLinksInRect(rect, true) {
			s.addCandidate(l)
		}
	} else {
		for _, n := range e.reg.findNodesInRect(rect, true, false) {
			s.addCandidate(n)
		}
		if s.selectGroups {
			for _, n := range e.reg.findNodesInRect(rect, false, true) {
				if n.IsGroup() {
					s.addCandidate(n)
				}
			}
		}
	}

	if e.mouse.button(MouseButtonLeft).down {
		return true
	}

	e.sel.replace(s.candidates)
	s.finish(rect)
	return false
}

func (s *SelectAction) addCandidate(obj Object) {
	for _, o := range s.candidates {
		if sameObject(o, obj) {
			return
		}
	}
	s.candidates = append(s.candidates, obj)
}

func (s *SelectAction) finish(rect Rect) {
	s.active = false
	s.fadeRect = rect
	s.fadeLink = s.linkMode
	s.fade.Play(s.e.opts.SelectionFadeTime)
	clear(s.candidates)
	s.candidates = s.candidates[:0]
}

func (s *SelectAction) cancel() {
	if !s.active {
		return
	}
	s.active = false
	clear(s.candidates)
	s.candidates = s.candidates[:0]
}

// isCandidate reports whether obj is inside the rectangle being dragged.
func (s *SelectAction) isCandidate(obj Object) bool {
	if !s.active {
		return false
	}
	for _, o := range s.candidates {
		if sameObject(o, obj) {
			return true
		}
	}
	return false
}

// rect returns the rectangle to draw, its fade alpha and whether it selects
// links. ok is false when nothing is shown.
func (s *SelectAction) rect() (r Rect, alpha float64, linkMode, ok bool) {
	if s.active {
		return RectFromPoints(s.start, s.end), 1, s.linkMode, true
	}
	if s.fade.IsPlaying() {
		return s.fadeRect, 1 - s.fade.Progress(), s.fadeLink, true
	}
	return Rect{}, 0, false, false
}
