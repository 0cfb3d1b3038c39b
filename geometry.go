package impulse

import "math"

// Separation describes an overlapping shape pair: the deepest points on each
// surface, the unit contact normal pointing from shape A toward shape B, and
// the penetration depth (always > 0 for a reported contact).
type Separation struct {
	PointOnA Vector2
	PointOnB Vector2
	Normal   Vector2
	Depth    float64
}

// worldShape is a shape resolved into world space: scale already folded into
// radius/size, rotation and center explicit.
type worldShape struct {
	kind     ShapeKind
	center   Vector2
	radius   float64 // circles
	size     Vector2 // boxes, full extents
	rotation float64 // boxes, radians
}

func (ws worldShape) bounds() AABB {
	switch ws.kind {
	case ShapeCircle:
		r := Vector2{X: ws.radius, Y: ws.radius}
		return AABB{Min: ws.center.Sub(r), Max: ws.center.Add(r)}
	default:
		hw, hh := ws.size.X*0.5, ws.size.Y*0.5
		if ws.rotation != 0 {
			// Enclosing AABB of the rotated box.
			c := math.Abs(math.Cos(ws.rotation))
			s := math.Abs(math.Sin(ws.rotation))
			hw, hh = hw*c+hh*s, ws.size.X*0.5*s+hh*c
		}
		half := Vector2{X: hw, Y: hh}
		return AABB{Min: ws.center.Sub(half), Max: ws.center.Add(half)}
	}
}

// axisAligned reports whether a box rotation is close enough to a multiple of
// pi to be treated as unrotated.
func axisAligned(rotation float64) bool {
	return math.Abs(math.Sin(rotation)) < 1e-9
}

// collideShapes dispatches over the shape-pair variant. Unsupported
// combinations (box vs box with either box rotated) report no contact.
func collideShapes(a, b worldShape) (Separation, bool) {
	switch {
	case a.kind == ShapeCircle && b.kind == ShapeCircle:
		return circleVsCircle(a.center, a.radius, b.center, b.radius)
	case a.kind == ShapeCircle && b.kind == ShapeBox:
		return circleVsBox(a.center, a.radius, b.center, b.size, b.rotation)
	case a.kind == ShapeBox && b.kind == ShapeCircle:
		sep, ok := circleVsBox(b.center, b.radius, a.center, a.size, a.rotation)
		if !ok {
			return Separation{}, false
		}
		sep.PointOnA, sep.PointOnB = sep.PointOnB, sep.PointOnA
		sep.Normal = sep.Normal.Neg()
		return sep, true
	case a.kind == ShapeBox && b.kind == ShapeBox:
		return boxVsBox(a.center, a.size, a.rotation, b.center, b.size, b.rotation)
	}
	return Separation{}, false
}

func circleVsCircle(centerA Vector2, radiusA float64, centerB Vector2, radiusB float64) (Separation, bool) {
	delta := centerB.Sub(centerA)
	distSqr := delta.LenSqr()
	total := radiusA + radiusB
	if distSqr >= total*total {
		return Separation{}, false
	}

	dist := math.Sqrt(distSqr)
	normal := Vector2{X: 1, Y: 0} // coincident centers fall back to +X
	if dist > 0 {
		normal = delta.Scale(1.0 / dist)
	}

	return Separation{
		PointOnA: centerA.Add(normal.Scale(radiusA)),
		PointOnB: centerB.Sub(normal.Scale(radiusB)),
		Normal:   normal,
		Depth:    total - dist,
	}, true
}

// circleVsBox treats the circle as shape A and the box as shape B. The circle
// center is brought into the box's rotation frame, clamped to the half
// extents, and the closest-point delta decides overlap.
func circleVsBox(circleCenter Vector2, radius float64, boxCenter, boxSize Vector2, boxRotation float64) (Separation, bool) {
	local := circleCenter.Sub(boxCenter)
	if boxRotation != 0 {
		local = local.Rotate(-boxRotation)
	}

	half := boxSize.Scale(0.5)
	closest := Vector2{
		X: math.Max(-half.X, math.Min(local.X, half.X)),
		Y: math.Max(-half.Y, math.Min(local.Y, half.Y)),
	}

	delta := local.Sub(closest)
	distSqr := delta.LenSqr()

	var localNormal Vector2 // from circle toward box
	var depth float64
	if distSqr > 0 {
		if distSqr >= radius*radius {
			return Separation{}, false
		}
		dist := math.Sqrt(distSqr)
		localNormal = delta.Scale(-1.0 / dist)
		depth = radius - dist
	} else {
		// Center inside the box: push out through the nearest face.
		xDist := half.X - math.Abs(local.X)
		yDist := half.Y - math.Abs(local.Y)
		if xDist < yDist {
			if local.X >= 0 {
				localNormal = Vector2{X: -1}
			} else {
				localNormal = Vector2{X: 1}
			}
			depth = radius + xDist
		} else {
			if local.Y >= 0 {
				localNormal = Vector2{Y: -1}
			} else {
				localNormal = Vector2{Y: 1}
			}
			depth = radius + yDist
		}
	}

	normal := localNormal
	contact := closest
	if boxRotation != 0 {
		normal = normal.Rotate(boxRotation)
		contact = contact.Rotate(boxRotation)
	}
	contact = contact.Add(boxCenter)

	return Separation{
		PointOnA: circleCenter.Add(normal.Scale(radius)),
		PointOnB: contact,
		Normal:   normal,
		Depth:    depth,
	}, true
}

// boxVsBox resolves the axis-aligned case with the minimum translation
// vector over the two world axes. A pair with either box rotated is an
// unsupported combination and reports no contact.
func boxVsBox(centerA, sizeA Vector2, rotA float64, centerB, sizeB Vector2, rotB float64) (Separation, bool) {
	if !axisAligned(rotA) || !axisAligned(rotB) {
		return Separation{}, false
	}

	ba := AABBAround(centerA, sizeA)
	bb := AABBAround(centerB, sizeB)

	overlapX := math.Min(ba.Max.X, bb.Max.X) - math.Max(ba.Min.X, bb.Min.X)
	overlapY := math.Min(ba.Max.Y, bb.Max.Y) - math.Max(ba.Min.Y, bb.Min.Y)
	if overlapX <= 0 || overlapY <= 0 {
		return Separation{}, false
	}

	var normal Vector2
	var depth float64
	if overlapX < overlapY {
		depth = overlapX
		if centerA.X <= centerB.X {
			normal = Vector2{X: 1}
		} else {
			normal = Vector2{X: -1}
		}
	} else {
		depth = overlapY
		if centerA.Y <= centerB.Y {
			normal = Vector2{Y: 1}
		} else {
			normal = Vector2{Y: -1}
		}
	}

	mid := AABB{
		Min: Vector2{X: math.Max(ba.Min.X, bb.Min.X), Y: math.Max(ba.Min.Y, bb.Min.Y)},
		Max: Vector2{X: math.Min(ba.Max.X, bb.Max.X), Y: math.Min(ba.Max.Y, bb.Max.Y)},
	}.Center()

	return Separation{
		PointOnA: mid.Add(normal.Scale(depth * 0.5)),
		PointOnB: mid.Sub(normal.Scale(depth * 0.5)),
		Normal:   normal,
		Depth:    depth,
	}, true
}

func shapeContainsPoint(ws worldShape, p Vector2) bool {
	switch ws.kind {
	case ShapeCircle:
		return p.DistanceSqr(ws.center) <= ws.radius*ws.radius
	default:
		local := p.Sub(ws.center)
		if ws.rotation != 0 {
			local = local.Rotate(-ws.rotation)
		}
		return math.Abs(local.X) <= ws.size.X*0.5 && math.Abs(local.Y) <= ws.size.Y*0.5
	}
}

func shapeClosestPoint(ws worldShape, p Vector2) Vector2 {
	switch ws.kind {
	case ShapeCircle:
		delta := p.Sub(ws.center)
		if delta.LenSqr() <= ws.radius*ws.radius {
			return p
		}
		return ws.center.Add(delta.Normalized().Scale(ws.radius))
	default:
		local := p.Sub(ws.center)
		if ws.rotation != 0 {
			local = local.Rotate(-ws.rotation)
		}
		half := ws.size.Scale(0.5)
		local.X = math.Max(-half.X, math.Min(local.X, half.X))
		local.Y = math.Max(-half.Y, math.Min(local.Y, half.Y))
		if ws.rotation != 0 {
			local = local.Rotate(ws.rotation)
		}
		return local.Add(ws.center)
	}
}

// RaycastHit reports the nearest intersection of a ray with a collider.
type RaycastHit struct {
	Collider *Collider
	Point    Vector2
	Normal   Vector2
	Distance float64
}

func shapeRaycast(ws worldShape, origin, dir Vector2, maxDist float64) (RaycastHit, bool) {
	d := dir.Normalized()
	if d.LenSqr() == 0 || maxDist <= 0 {
		return RaycastHit{}, false
	}
	switch ws.kind {
	case ShapeCircle:
		return rayCircle(ws.center, ws.radius, origin, d, maxDist)
	default:
		return rayBox(ws.center, ws.size, ws.rotation, origin, d, maxDist)
	}
}

func rayCircle(center Vector2, radius float64, origin, dir Vector2, maxDist float64) (RaycastHit, bool) {
	oc := origin.Sub(center)
	b := oc.Dot(dir)
	c := oc.LenSqr() - radius*radius
	if c > 0 && b > 0 {
		return RaycastHit{}, false
	}
	disc := b*b - c
	if disc < 0 {
		return RaycastHit{}, false
	}
	t := -b - math.Sqrt(disc)
	if t < 0 {
		t = 0 // origin inside: surface the hit at the origin
	}
	if t > maxDist {
		return RaycastHit{}, false
	}
	point := origin.Add(dir.Scale(t))
	normal := point.Sub(center).Normalized()
	if normal.LenSqr() == 0 {
		normal = dir.Neg()
	}
	return RaycastHit{Point: point, Normal: normal, Distance: t}, true
}

func rayBox(center, size Vector2, rotation float64, origin, dir Vector2, maxDist float64) (RaycastHit, bool) {
	lo := origin.Sub(center)
	ld := dir
	if rotation != 0 {
		lo = lo.Rotate(-rotation)
		ld = ld.Rotate(-rotation)
	}
	half := size.Scale(0.5)

	tMin := math.Inf(-1)
	tMax := math.Inf(1)
	axis := -1
	axisSign := 0.0

	orig := [2]float64{lo.X, lo.Y}
	d := [2]float64{ld.X, ld.Y}
	ext := [2]float64{half.X, half.Y}

	for i := 0; i < 2; i++ {
		if math.Abs(d[i]) < 1e-12 {
			if orig[i] < -ext[i] || orig[i] > ext[i] {
				return RaycastHit{}, false
			}
			continue
		}
		inv := 1.0 / d[i]
		t1 := (-ext[i] - orig[i]) * inv
		t2 := (ext[i] - orig[i]) * inv
		sign := -1.0
		if t1 > t2 {
			t1, t2 = t2, t1
			sign = 1.0
		}
		if t1 > tMin {
			tMin = t1
			axis = i
			axisSign = sign
		}
		if t2 < tMax {
			tMax = t2
		}
		if tMin > tMax {
			return RaycastHit{}, false
		}
	}

	if tMax < 0 {
		return RaycastHit{}, false
	}
	t := tMin
	inside := t < 0
	if inside {
		t = 0
	}
	if t > maxDist {
		return RaycastHit{}, false
	}

	var normal Vector2
	if inside || axis < 0 {
		normal = dir.Neg()
	} else {
		local := Vector2{}
		if axis == 0 {
			local.X = axisSign
		} else {
			local.Y = axisSign
		}
		normal = local
		if rotation != 0 {
			normal = normal.Rotate(rotation)
		}
	}

	return RaycastHit{
		Point:    origin.Add(dir.Scale(t)),
		Normal:   normal,
		Distance: t,
	}, true
}
