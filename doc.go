// Package impulse is a 2D rigid-body physics and collision library.
//
// The central type is World: an explicitly constructed simulation instance
// holding body and collider registries, a uniform spatial grid for broad-phase
// pair pruning, and an impulse-based iterative solver. The host loop calls
// World.Update once per rendered frame; a fixed-timestep accumulator turns
// frame time into zero or more deterministic simulation steps and reports the
// leftover interpolation alpha for rendering.
//
// Supported shapes are circles and boxes. Box-vs-box contact is resolved for
// axis-aligned boxes only; a pair involving a rotated box produces no contact
// rather than an error, so gameplay code can rely on Update never failing.
//
// Colliders carry a material (friction, restitution), a layer/layer-mask
// filter, and an optional trigger flag. Trigger overlaps flow through
// detection and the enter/stay/exit event streams but never affect velocities
// or positions.
package impulse
