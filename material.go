package impulse

import "math"

// Material holds the surface response coefficients of a collider.
// Friction is the Coulomb coefficient, Restitution the bounciness (0 = fully
// inelastic, 1 = perfectly elastic).
type Material struct {
	Friction    float64 `yaml:"friction"`
	Restitution float64 `yaml:"restitution"`
}

func DefaultMaterial() Material {
	return Material{Friction: 0.3, Restitution: 0.0}
}

// Common presets.
var (
	MaterialBouncy   = Material{Friction: 0.3, Restitution: 0.8}
	MaterialIce      = Material{Friction: 0.02, Restitution: 0.05}
	MaterialConcrete = Material{Friction: 0.8, Restitution: 0.1}
)

// CombineMaterials produces the effective pair coefficients: the smaller
// restitution of the two and the geometric mean of the frictions. The rule is
// fixed and applies to every pair.
func CombineMaterials(a, b Material) (friction, restitution float64) {
	friction = math.Sqrt(a.Friction * b.Friction)
	restitution = math.Min(a.Restitution, b.Restitution)
	return friction, restitution
}
