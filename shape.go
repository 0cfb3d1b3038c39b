package impulse

// ShapeKind is the closed set of collider geometries.
type ShapeKind uint8

const (
	ShapeCircle ShapeKind = iota
	ShapeBox
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeCircle:
		return "circle"
	case ShapeBox:
		return "box"
	}
	return "unknown"
}

// minDimension is the floor applied to radii and box extents. Non-positive
// dimensions are clamped rather than rejected.
const minDimension = 0.001

// Shape is a tagged variant describing collider geometry in local space.
// Radius is meaningful for circles, Size (full width/height) for boxes.
type Shape struct {
	Kind   ShapeKind
	Radius float64
	Size   Vector2
}

func NewCircle(radius float64) Shape {
	return Shape{Kind: ShapeCircle, Radius: clampDimension(radius)}
}

func NewBox(width, height float64) Shape {
	return Shape{
		Kind: ShapeBox,
		Size: Vector2{X: clampDimension(width), Y: clampDimension(height)},
	}
}

func clampDimension(v float64) float64 {
	if v < minDimension {
		return minDimension
	}
	return v
}
