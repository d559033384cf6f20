package nodeeditor

import "math"

// CubicBezier is a cubic curve in canvas space.
type CubicBezier struct {
	P0, P1, P2, P3 Vec2
}

// Point evaluates the curve at t in [0, 1].
func (b CubicBezier) Point(t float64) Vec2 {
	u := 1 - t
	w0 := u * u * u
	w1 := 3 * u * u * t
	w2 := 3 * u * t * t
	w3 := t * t * t
	return Vec2{
		w0*b.P0.X + w1*b.P1.X + w2*b.P2.X + w3*b.P3.X,
		w0*b.P0.Y + w1*b.P1.Y + w2*b.P2.Y + w3*b.P3.Y,
	}
}

// Bounds returns the axis-aligned bounds of the curve. Extrema are found by
// solving the derivative per axis.
func (b CubicBezier) Bounds() Rect {
	acc := boundsAccumulator{}
	acc.add(RectFromPoints(b.P0, b.P3))
	for _, t := range bezierExtrema(b.P0.X, b.P1.X, b.P2.X, b.P3.X) {
		p := b.Point(t)
		acc.add(Rect{X: p.X, Y: p.Y})
	}
	for _, t := range bezierExtrema(b.P0.Y, b.P1.Y, b.P2.Y, b.P3.Y) {
		p := b.Point(t)
		acc.add(Rect{X: p.X, Y: p.Y})
	}
	return acc.rect
}

// bezierExtrema returns the parameters in (0, 1) where the derivative of a
// one-dimensional cubic vanishes.
func bezierExtrema(p0, p1, p2, p3 float64) []float64 {
	a := -p0 + 3*p1 - 3*p2 + p3
	bb := 2 * (p0 - 2*p1 + p2)
	c := p1 - p0
	var roots []float64
	keep := func(t float64) {
		if t > 0 && t < 1 {
			roots = append(roots, t)
		}
	}
	if math.Abs(a) < 1e-12 {
		if math.Abs(bb) > 1e-12 {
			keep(-c / bb)
		}
		return roots
	}
	disc := bb*bb - 4*a*c
	if disc < 0 {
		return roots
	}
	sq := math.Sqrt(disc)
	keep((-bb + sq) / (2 * a))
	keep((-bb - sq) / (2 * a))
	return roots
}

// bezierProjectSteps is the coarse sampling count for ProjectPoint.
const bezierProjectSteps = 32

// ProjectPoint returns the parameter and distance of the curve point closest
// to p. The curve is sampled coarsely and the best segment is refined by
// bisection.
func (b CubicBezier) ProjectPoint(p Vec2) (t, dist float64) {
	best, bestD := 0.0, math.Inf(1)
	for i := 0; i <= bezierProjectSteps; i++ {
		ti := float64(i) / bezierProjectSteps
		if d := b.Point(ti).Sub(p).Len(); d < bestD {
			best, bestD = ti, d
		}
	}
	step := 1.0 / bezierProjectSteps
	for step > 1e-5 {
		step /= 2
		lo, hi := math.Max(best-step, 0), math.Min(best+step, 1)
		if d := b.Point(lo).Sub(p).Len(); d < bestD {
			best, bestD = lo, d
		}
		if d := b.Point(hi).Sub(p).Len(); d < bestD {
			best, bestD = hi, d
		}
	}
	return best, bestD
}

// Flatten returns segments+1 points evenly spaced in t.
func (b CubicBezier) Flatten(segments int) []Vec2 {
	if segments < 1 {
		segments = 1
	}
	pts := make([]Vec2, segments+1)
	for i := range pts {
		pts[i] = b.Point(float64(i) / float64(segments))
	}
	return pts
}

// arcLengthPath is a curve sampled at roughly uniform arc length.
type arcLengthPath struct {
	points []Vec2
	dists  []float64 // cumulative distance at each point
}

// newArcLengthPath samples b into points spaced about step canvas units apart.
func newArcLengthPath(b CubicBezier, step float64) arcLengthPath {
	dense := b.Flatten(128)
	var path arcLengthPath
	if step <= 0 {
		step = 1
	}
	path.points = append(path.points, dense[0])
	path.dists = append(path.dists, 0)
	total, last := 0.0, 0.0
	for i := 1; i < len(dense); i++ {
		total += dense[i].Sub(dense[i-1]).Len()
		if total-last >= step || i == len(dense)-1 {
			path.points = append(path.points, dense[i])
			path.dists = append(path.dists, total)
			last = total
		}
	}
	return path
}

// Length returns the total arc length.
func (p arcLengthPath) Length() float64 {
	if len(p.dists) == 0 {
		return 0
	}
	return p.dists[len(p.dists)-1]
}

// At returns the point at arc distance d, clamped to the path ends.
func (p arcLengthPath) At(d float64) Vec2 {
	n := len(p.points)
	switch {
	case n == 0:
		return Vec2{}
	case d <= 0:
		return p.points[0]
	case d >= p.Length():
		return p.points[n-1]
	}
	lo, hi := 0, n-1
	for hi-lo > 1 {
		mid := (lo + hi) / 2
		if p.dists[mid] <= d {
			lo = mid
		} else {
			hi = mid
		}
	}
	span := p.dists[hi] - p.dists[lo]
	if span == 0 {
		return p.points[lo]
	}
	return p.points[lo].Lerp(p.points[hi], (d-p.dists[lo])/span)
}
