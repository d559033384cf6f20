package nodeeditor

import "math"

// NavigateAction owns the view: right-drag panning, wheel zoom along the
// zoom ladder, focus navigation and scrolling while a drag rests at the
// window edge. It never waits on the host.
type NavigateAction struct {
	actionBase

	scrolling   bool
	scrollStart Vec2

	anim *NavigateAnimation
}

func newNavigateAction(e *Editor) *NavigateAction {
	n := &NavigateAction{actionBase: actionBase{e}}
	n.anim = newNavigateAnimation(&e.animations, &e.view, func() {
		e.makeDirty(SaveReasonNavigation)
	})
	return n
}

func (n *NavigateAction) name() string { return "navigate" }

func (n *NavigateAction) isDragging() bool { return n.scrolling }

func (n *NavigateAction) accept(c *control) acceptResult {
	e := n.e
	m := &e.mouse
	inside := e.canvas.ScreenRect().ContainsPoint(m.pos())

	if w := m.state.Wheel; w != 0 && inside && m.state.Focused {
		step := 1
		if w < 0 {
			step = -1
		}
		n.zoomStep(step, m.pos())
	}

	if e.opts.ShortcutsEnabled && m.keyPressed(KeyF) && m.mods()&(ModCtrl|ModAlt|ModMeta) == 0 {
		n.focus(c, m.mods().Has(ModShift))
	}

	right := m.button(MouseButtonRight)
	if right.down && right.dragging && e.canvas.ScreenRect().ContainsPoint(right.pressPos) {
		n.anim.Stop()
		n.scrolling = true
		n.scrollStart = e.view.Scroll
		return acceptTrue
	}
	return acceptFalse
}

func (n *NavigateAction) process(*control) bool {
	if !n.scrolling {
		return false
	}
	e := n.e
	if e.mouse.button(MouseButtonRight).down {
		e.view.Scroll = n.scrollStart.Sub(e.mouse.dragDelta(MouseButtonRight))
		return true
	}
	n.finishScroll()
	return false
}

func (n *NavigateAction) cancel() {
	if n.scrolling {
		n.finishScroll()
	}
}

func (n *NavigateAction) finishScroll() {
	n.scrolling = false
	if n.e.view.Scroll != n.scrollStart {
		n.e.makeDirty(SaveReasonNavigation)
	}
}

// focus implements the F key: the selection, else the hovered object, else
// everything.
func (n *NavigateAction) focus(c *control, zoomIn bool) {
	e := n.e
	d := e.opts.NavigateDuration
	if b, ok := e.sel.bounds(); ok {
		n.navigateTo(b, zoomIn, d)
		return
	}
	if c.hotObject != nil {
		n.navigateTo(c.hotObject.Bounds(), zoomIn, d)
		return
	}
	if b, ok := e.reg.contentBounds(); ok {
		n.navigateTo(b, true, d)
	}
}

// targetView is where the view will be once any running animation ends.
func (n *NavigateAction) targetView() View {
	if n.anim.IsPlaying() {
		return n.anim.Target()
	}
	return n.e.view
}

// zoomStep moves one rung along the zoom ladder keeping the canvas point
// under anchor (screen space) fixed.
func (n *NavigateAction) zoomStep(steps int, anchor Vec2) {
	e := n.e
	target := n.targetView()
	zoom, ok := matchZoom(e.opts.ZoomLevels, target.Zoom, steps)
	if !ok || zoom == target.Zoom {
		return
	}
	c := canvasForView(e.canvas.WindowScreenPos(), e.canvas.WindowSize(), target)
	pt := c.FromScreen(anchor)
	client := anchor.Sub(e.canvas.WindowScreenPos())
	n.navigateToView(View{Scroll: pt.Scale(zoom).Sub(client), Zoom: zoom}, e.opts.ZoomDuration)
}

// navigateTo shows bounds centered. Without zoomIn the view never zooms in
// past its current level. A negative duration uses the style's scroll
// duration.
func (n *NavigateAction) navigateTo(bounds Rect, zoomIn bool, duration float64) {
	if bounds.IsEmpty() {
		return
	}
	e := n.e
	if duration < 0 {
		duration = e.style.ScrollDuration
	}
	size := e.canvas.WindowSize()
	zoom := fitZoom(bounds, size, e.opts.NavigateMargin)
	if !zoomIn {
		zoom = math.Min(n.targetView().Zoom, zoom)
	}
	zoom = clampZoom(e.opts.ZoomLevels, zoom)
	n.navigateToView(viewCentered(bounds.Center(), size, zoom), duration)
}

func (n *NavigateAction) navigateToView(v View, duration float64) {
	n.anim.NavigateTo(v, duration)
}

// moveOverEdge scrolls while the cursor sits in the band along the window
// border, faster the deeper it goes.
func (n *NavigateAction) moveOverEdge(dt float64) bool {
	e := n.e
	screen := e.canvas.ScreenRect()
	band := e.opts.EdgeBand
	if screen.Width <= 2*band || screen.Height <= 2*band {
		return false
	}
	inner := screen.Expand(-band)
	p := e.mouse.pos()
	if inner.ContainsPoint(p) {
		return false
	}
	offset := p.Sub(inner.ClosestPoint(p, false)).Scale(dt * e.opts.EdgeScrollSpeed)
	if offset.IsZero() {
		return false
	}
	n.anim.Stop()
	e.view.Scroll = e.view.Scroll.Add(offset)
	e.makeDirty(SaveReasonNavigation)
	return true
}

// zoomEpsilon treats levels this close as equal.
const zoomEpsilon = 0.001

// matchZoom returns the ladder level steps rungs away from current. A zoom
// between rungs snaps to the neighbour in the step direction. Past either end
// the extreme level is returned.
func matchZoom(levels []float64, current float64, steps int) (float64, bool) {
	if len(levels) == 0 || steps == 0 {
		return current, false
	}
	idx := matchZoomIndex(levels, current, steps)
	return levels[idx], true
}

func matchZoomIndex(levels []float64, current float64, steps int) int {
	last := len(levels) - 1
	if steps > 0 {
		for i, l := range levels {
			if l > current+zoomEpsilon {
				return min(i+steps-1, last)
			}
		}
		return last
	}
	for i := last; i >= 0; i-- {
		if levels[i] < current-zoomEpsilon {
			return max(i+steps+1, 0)
		}
	}
	return 0
}

// clampZoom limits zoom to the ladder range.
func clampZoom(levels []float64, zoom float64) float64 {
	if len(levels) == 0 {
		return zoom
	}
	return math.Max(levels[0], math.Min(zoom, levels[len(levels)-1]))
}
