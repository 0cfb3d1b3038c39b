package impulse

// AABB is an axis-aligned bounding box in world space.
type AABB struct {
	Min Vector2
	Max Vector2
}

func NewAABB(min, max Vector2) AABB {
	return AABB{Min: min, Max: max}
}

// AABBAround builds a box from a center point and full size.
func AABBAround(center, size Vector2) AABB {
	half := size.Scale(0.5)
	return AABB{Min: center.Sub(half), Max: center.Add(half)}
}

func (b AABB) Center() Vector2 {
	return Vector2{
		X: (b.Min.X + b.Max.X) * 0.5,
		Y: (b.Min.Y + b.Max.Y) * 0.5,
	}
}

func (b AABB) Size() Vector2 {
	return b.Max.Sub(b.Min)
}

func (b AABB) Overlaps(o AABB) bool {
	return b.Min.X <= o.Max.X && b.Max.X >= o.Min.X &&
		b.Min.Y <= o.Max.Y && b.Max.Y >= o.Min.Y
}

func (b AABB) Contains(p Vector2) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y
}

func (b AABB) Expand(margin float64) AABB {
	m := Vector2{X: margin, Y: margin}
	return AABB{Min: b.Min.Sub(m), Max: b.Max.Add(m)}
}
