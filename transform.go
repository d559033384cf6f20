package nodeeditor

// scaleOffset maps p to p*scale + offset per axis. Canvas mappings never
// rotate or skew, so this is all a space conversion needs.
type scaleOffset struct {
	scale  Vec2
	offset Vec2
}

var identityScaleOffset = scaleOffset{scale: Vec2{1, 1}}

// then returns the mapping that applies m first and next after it.
func (m scaleOffset) then(next scaleOffset) scaleOffset {
	return scaleOffset{
		scale:  Vec2{m.scale.X * next.scale.X, m.scale.Y * next.scale.Y},
		offset: next.apply(m.offset),
	}
}

// inverse undoes m. A zero scale component has no inverse and yields the
// identity.
func (m scaleOffset) inverse() scaleOffset {
	if m.scale.X == 0 || m.scale.Y == 0 {
		return identityScaleOffset
	}
	ix, iy := 1/m.scale.X, 1/m.scale.Y
	return scaleOffset{
		scale:  Vec2{ix, iy},
		offset: Vec2{-m.offset.X * ix, -m.offset.Y * iy},
	}
}

func (m scaleOffset) apply(p Vec2) Vec2 {
	return Vec2{p.X*m.scale.X + m.offset.X, p.Y*m.scale.Y + m.offset.Y}
}

// applyRect maps both corners of r and renormalizes, so a negative scale
// still yields a positive size.
func (m scaleOffset) applyRect(r Rect) Rect {
	return RectFromPoints(m.apply(r.Min()), m.apply(r.Max()))
}
