package nodeeditor

import "math"

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at render submission time.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default tint.
var ColorWhite = Color{1, 1, 1, 1}

// WithAlpha returns c with its alpha multiplied by a.
func (c Color) WithAlpha(a float64) Color {
	c.A *= a
	return c
}

// toRGBA converts a Color to a premultiplied colorRGBA.
func (c Color) toRGBA() colorRGBA {
	return colorRGBA{
		R: uint8(clamp01(c.R*c.A) * 255),
		G: uint8(clamp01(c.G*c.A) * 255),
		B: uint8(clamp01(c.B*c.A) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

// colorRGBA implements the color.Color interface.
type colorRGBA struct {
	R, G, B, A uint8
}

func (c colorRGBA) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R) * 0x101
	g = uint32(c.G) * 0x101
	b = uint32(c.B) * 0x101
	a = uint32(c.A) * 0x101
	return
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Vec2 is a 2D vector used for positions, offsets, sizes, and directions
// throughout the API.
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns v+o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v-o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Scale returns v*s.
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Mul multiplies component-wise.
func (v Vec2) Mul(o Vec2) Vec2 { return Vec2{v.X * o.X, v.Y * o.Y} }

// Neg returns -v.
func (v Vec2) Neg() Vec2 { return Vec2{-v.X, -v.Y} }

// Len returns the Euclidean length of v.
func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

// IsZero reports whether both components are zero.
func (v Vec2) IsZero() bool { return v.X == 0 && v.Y == 0 }

// Lerp interpolates between v and o by t.
func (v Vec2) Lerp(o Vec2, t float64) Vec2 {
	return Vec2{v.X + (o.X-v.X)*t, v.Y + (o.Y-v.Y)*t}
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// RectFromPoints returns the normalized rectangle spanning a and b.
func RectFromPoints(a, b Vec2) Rect {
	minX, maxX := math.Min(a.X, b.X), math.Max(a.X, b.X)
	minY, maxY := math.Min(a.Y, b.Y), math.Max(a.Y, b.Y)
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// Min returns the top-left corner.
func (r Rect) Min() Vec2 { return Vec2{r.X, r.Y} }

// Max returns the bottom-right corner.
func (r Rect) Max() Vec2 { return Vec2{r.X + r.Width, r.Y + r.Height} }

// Size returns the width and height as a vector.
func (r Rect) Size() Vec2 { return Vec2{r.Width, r.Height} }

// Center returns the center point.
func (r Rect) Center() Vec2 { return Vec2{r.X + r.Width/2, r.Y + r.Height/2} }

// IsEmpty reports whether the rectangle has no area.
func (r Rect) IsEmpty() bool { return r.Width <= 0 || r.Height <= 0 }

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// ContainsPoint is Contains for a Vec2.
func (r Rect) ContainsPoint(p Vec2) bool { return r.Contains(p.X, p.Y) }

// ContainsRect reports whether other lies entirely inside r.
func (r Rect) ContainsRect(other Rect) bool {
	return other.X >= r.X && other.Y >= r.Y &&
		other.X+other.Width <= r.X+r.Width &&
		other.Y+other.Height <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// Union returns the smallest rectangle containing r and other.
func (r Rect) Union(other Rect) Rect {
	return RectFromPoints(
		Vec2{math.Min(r.X, other.X), math.Min(r.Y, other.Y)},
		Vec2{math.Max(r.X+r.Width, other.X+other.Width), math.Max(r.Y+r.Height, other.Y+other.Height)},
	)
}

// Expand grows the rectangle by d on every side.
func (r Rect) Expand(d float64) Rect {
	return Rect{X: r.X - d, Y: r.Y - d, Width: r.Width + 2*d, Height: r.Height + 2*d}
}

// Translate moves the rectangle by v.
func (r Rect) Translate(v Vec2) Rect {
	r.X += v.X
	r.Y += v.Y
	return r
}

// ClosestPoint returns the point of r closest to p. When onEdge is true and p
// lies inside r, the point is projected onto the nearest edge.
func (r Rect) ClosestPoint(p Vec2, onEdge bool) Vec2 {
	minP, maxP := r.Min(), r.Max()
	c := Vec2{math.Max(minP.X, math.Min(p.X, maxP.X)), math.Max(minP.Y, math.Min(p.Y, maxP.Y))}
	if !onEdge || c != p || r.Width == 0 || r.Height == 0 {
		return c
	}
	dl, dr := p.X-minP.X, maxP.X-p.X
	dt, db := p.Y-minP.Y, maxP.Y-p.Y
	switch math.Min(math.Min(dl, dr), math.Min(dt, db)) {
	case dl:
		c.X = minP.X
	case dr:
		c.X = maxP.X
	case dt:
		c.Y = minP.Y
	default:
		c.Y = maxP.Y
	}
	return c
}

// boundsAccumulator unions rectangles, treating the first one as the seed.
type boundsAccumulator struct {
	rect Rect
	ok   bool
}

func (b *boundsAccumulator) add(r Rect) {
	if !b.ok {
		b.rect, b.ok = r, true
		return
	}
	b.rect = b.rect.Union(r)
}

// PinKind tells whether a pin accepts (input) or originates (output) links.
type PinKind uint8

const (
	PinKindInput  PinKind = iota // link target
	PinKindOutput                // link source
)

// String returns the kind name.
func (k PinKind) String() string {
	if k == PinKindOutput {
		return "output"
	}
	return "input"
}

// NodeType distinguishes plain nodes from resizable group containers.
type NodeType uint8

const (
	NodeTypeNode  NodeType = iota // bounds follow content
	NodeTypeGroup                 // resizable container with a hollow interior
)

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) mouse button
	MouseButtonRight                     // secondary (right) mouse button
	MouseButtonMiddle                    // middle mouse button (scroll wheel click)

	mouseButtonCount
)

// KeyModifiers is a bitmask of keyboard modifier keys.
// Values can be combined with bitwise OR (e.g. ModShift | ModCtrl).
type KeyModifiers uint8

const (
	ModShift KeyModifiers = 1 << iota // Shift key
	ModCtrl                           // Control key
	ModAlt                            // Alt / Option key
	ModMeta                           // Meta / Command / Windows key
)

// Has reports whether every modifier in m is held.
func (k KeyModifiers) Has(m KeyModifiers) bool { return k&m == m }

// Key identifies the keyboard keys the editor reacts to.
type Key uint8

const (
	KeyDelete Key = iota
	KeyF
	KeyX
	KeyC
	KeyV
	KeyD
	KeySpace
	KeyEscape

	keyCount
)

// SaveReasonFlags records why persisted state became dirty.
type SaveReasonFlags uint8

const (
	SaveReasonNone       SaveReasonFlags = 0
	SaveReasonNavigation SaveReasonFlags = 1 << (iota - 1) // view scroll or zoom changed
	SaveReasonPosition                                     // node moved
	SaveReasonSize                                         // node or group resized
	SaveReasonSelection                                    // selection changed
	SaveReasonUser                                         // host asked for it
)

// NodeID, PinID and LinkID are host-assigned identifiers. The editor never
// generates them.
type (
	NodeID int32
	PinID  int32
	LinkID int32
)
