package impulse

// Transform is the world-space pose of a body: translation, rotation in
// radians, and a per-axis scale. Rotation is applied before translation.
type Transform struct {
	Position Vector2 `yaml:"position"`
	Rotation float64 `yaml:"rotation"`
	Scale    Vector2 `yaml:"scale"`
}

func IdentityTransform() Transform {
	return Transform{Scale: Vector2{X: 1, Y: 1}}
}

// Apply maps a local-space point into world space: scale, rotate, translate.
func (t Transform) Apply(local Vector2) Vector2 {
	p := local.Mul(t.Scale)
	if t.Rotation != 0 {
		p = p.Rotate(t.Rotation)
	}
	return p.Add(t.Position)
}

// ApplyInverse maps a world-space point back into local space. Zero scale
// components are treated as 1 to keep the inverse defined.
func (t Transform) ApplyInverse(world Vector2) Vector2 {
	p := world.Sub(t.Position)
	if t.Rotation != 0 {
		p = p.Rotate(-t.Rotation)
	}
	sx, sy := t.Scale.X, t.Scale.Y
	if sx == 0 {
		sx = 1
	}
	if sy == 0 {
		sy = 1
	}
	return Vector2{X: p.X / sx, Y: p.Y / sy}
}
