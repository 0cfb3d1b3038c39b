package impulse

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// SceneDef is a declarative description of an initial world population,
// loadable from YAML.
type SceneDef struct {
	Gravity *Vector2  `yaml:"gravity,omitempty"`
	Bodies  []BodyDef `yaml:"bodies"`
}

// BodyDef describes one body plus its collider.
type BodyDef struct {
	Type     string    `yaml:"type"` // static, dynamic or kinematic
	Mass     float64   `yaml:"mass"`
	Position Vector2   `yaml:"position"`
	Rotation float64   `yaml:"rotation"`
	Velocity Vector2   `yaml:"velocity"`
	Shape    ShapeDef  `yaml:"shape"`
	Trigger  bool      `yaml:"trigger"`
	Layer    uint32    `yaml:"layer"`
	Mask     *uint32   `yaml:"mask,omitempty"`
	Material *Material `yaml:"material,omitempty"`
}

// ShapeDef is a circle when Radius is set, otherwise a box.
type ShapeDef struct {
	Radius float64 `yaml:"radius,omitempty"`
	Width  float64 `yaml:"width,omitempty"`
	Height float64 `yaml:"height,omitempty"`
}

// LoadScene reads a YAML scene document.
func LoadScene(r io.Reader) (*SceneDef, error) {
	var def SceneDef
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&def); err != nil {
		return nil, fmt.Errorf("decode scene: %w", err)
	}
	return &def, nil
}

// Spawn instantiates the scene into the world and returns the created bodies
// in definition order.
func (s *SceneDef) Spawn(w *World) ([]*RigidBody, error) {
	if s.Gravity != nil {
		w.SetGravity(*s.Gravity)
	}

	bodies := make([]*RigidBody, 0, len(s.Bodies))
	for i, def := range s.Bodies {
		bodyType, err := parseBodyType(def.Type)
		if err != nil {
			return bodies, fmt.Errorf("body %d: %w", i, err)
		}

		body := NewRigidBody(bodyType, def.Mass)
		body.SetPosition(def.Position)
		body.SetRotation(def.Rotation)
		body.SetVelocity(def.Velocity)
		w.AddBody(body)

		var shape Shape
		if def.Shape.Radius > 0 {
			shape = NewCircle(def.Shape.Radius)
		} else {
			shape = NewBox(def.Shape.Width, def.Shape.Height)
		}

		col := NewCollider(shape)
		col.IsTrigger = def.Trigger
		col.SetLayer(def.Layer)
		if def.Mask != nil {
			col.SetLayerMask(*def.Mask)
		}
		if def.Material != nil {
			col.Material = *def.Material
		}
		w.AddCollider(body, col)

		bodies = append(bodies, body)
	}
	return bodies, nil
}

func parseBodyType(s string) (BodyType, error) {
	switch s {
	case "static", "":
		return BodyStatic, nil
	case "dynamic":
		return BodyDynamic, nil
	case "kinematic":
		return BodyKinematic, nil
	}
	return BodyStatic, fmt.Errorf("unknown body type %q", s)
}
