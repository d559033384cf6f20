package nodeeditor

import "math"

// View is the persisted pan/zoom state of the editor.
type View struct {
	// Scroll is the client-space offset of the canvas origin, in pixels.
	Scroll Vec2 `json:"scroll"`
	// Zoom is the uniform scale factor (1.0 = no zoom, >1 = zoom in).
	Zoom float64 `json:"zoom"`
}

// defaultView is the view used before any settings are loaded.
var defaultView = View{Zoom: 1}

// Canvas converts points between three coordinate spaces:
//
//	Screen: global window-system pixels.
//	Client: pixels relative to the editor's top-left corner.
//	Canvas: logical coordinates, independent of pan and zoom.
//
// A Canvas is an immutable snapshot computed once per frame.
type Canvas struct {
	windowScreenPos  Vec2
	windowScreenSize Vec2
	clientOrigin     Vec2
	zoom             Vec2
	invZoom          Vec2

	toClient   scaleOffset
	fromClient scaleOffset
	toScreen   scaleOffset
	fromScreen scaleOffset
}

// NewCanvas returns a Canvas for a window at screenPos with the given size,
// where canvas point (0,0) maps to clientOrigin and canvas units are scaled
// by zoom. A zero zoom component is treated as 1.
func NewCanvas(screenPos, size, clientOrigin, zoom Vec2) Canvas {
	if zoom.X == 0 {
		zoom.X = 1
	}
	if zoom.Y == 0 {
		zoom.Y = 1
	}
	c := Canvas{
		windowScreenPos:  screenPos,
		windowScreenSize: size,
		clientOrigin:     clientOrigin,
		zoom:             zoom,
		invZoom:          Vec2{1 / zoom.X, 1 / zoom.Y},
	}
	c.toClient = scaleOffset{scale: zoom, offset: clientOrigin}
	c.fromClient = c.toClient.inverse()
	c.toScreen = c.toClient.then(scaleOffset{scale: Vec2{1, 1}, offset: screenPos})
	c.fromScreen = c.toScreen.inverse()
	return c
}

// canvasForView builds the frame canvas from the window placement and view.
func canvasForView(screenPos, size Vec2, v View) Canvas {
	return NewCanvas(screenPos, size, v.Scroll.Neg(), Vec2{v.Zoom, v.Zoom})
}

// ToScreen converts a canvas point to screen space.
func (c Canvas) ToScreen(p Vec2) Vec2 { return c.toScreen.apply(p) }

// FromScreen converts a screen point to canvas space.
func (c Canvas) FromScreen(p Vec2) Vec2 { return c.fromScreen.apply(p) }

// ToClient converts a canvas point to client space.
func (c Canvas) ToClient(p Vec2) Vec2 { return c.toClient.apply(p) }

// FromClient converts a client point to canvas space.
func (c Canvas) FromClient(p Vec2) Vec2 { return c.fromClient.apply(p) }

// ToScreenRect converts a canvas rectangle to screen space.
func (c Canvas) ToScreenRect(r Rect) Rect { return c.toScreen.applyRect(r) }

// FromScreenRect converts a screen rectangle to canvas space.
func (c Canvas) FromScreenRect(r Rect) Rect { return c.fromScreen.applyRect(r) }

// ToClientRect converts a canvas rectangle to client space.
func (c Canvas) ToClientRect(r Rect) Rect { return c.toClient.applyRect(r) }

// VisibleBounds returns the client rectangle mapped back to canvas space.
func (c Canvas) VisibleBounds() Rect {
	return RectFromPoints(c.FromClient(Vec2{}), c.FromClient(c.windowScreenSize))
}

// ScreenRect returns the window rectangle in screen space.
func (c Canvas) ScreenRect() Rect {
	return Rect{X: c.windowScreenPos.X, Y: c.windowScreenPos.Y, Width: c.windowScreenSize.X, Height: c.windowScreenSize.Y}
}

// Zoom returns the 2-axis zoom factor.
func (c Canvas) Zoom() Vec2 { return c.zoom }

// InvZoom returns the reciprocal of the zoom factor.
func (c Canvas) InvZoom() Vec2 { return c.invZoom }

// ClientOrigin returns the client-space position of canvas (0,0).
func (c Canvas) ClientOrigin() Vec2 { return c.clientOrigin }

// WindowSize returns the editor size in pixels.
func (c Canvas) WindowSize() Vec2 { return c.windowScreenSize }

// WindowScreenPos returns the editor's top-left corner in screen space.
func (c Canvas) WindowScreenPos() Vec2 { return c.windowScreenPos }

// fitZoom returns the zoom that fits bounds inside a viewport of the given
// size, leaving margin pixels on every side.
func fitZoom(bounds Rect, size Vec2, margin float64) float64 {
	avail := Vec2{math.Max(size.X-2*margin, 1), math.Max(size.Y-2*margin, 1)}
	zx, zy := math.Inf(1), math.Inf(1)
	if bounds.Width > 0 {
		zx = avail.X / bounds.Width
	}
	if bounds.Height > 0 {
		zy = avail.Y / bounds.Height
	}
	z := math.Min(zx, zy)
	if math.IsInf(z, 1) {
		return 1
	}
	return z
}

// viewCentered returns the view that shows center in the middle of a viewport
// of the given size at zoom.
func viewCentered(center Vec2, size Vec2, zoom float64) View {
	return View{Scroll: center.Scale(zoom).Sub(size.Scale(0.5)), Zoom: zoom}
}
