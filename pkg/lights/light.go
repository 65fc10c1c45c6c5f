package lights

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
)

// Light is a point light
type Light struct {
	Position  core.Vec3
	Color     core.Vec3 // Linear color, normally unit length or in [0,1]
	Intensity float32

	// Source is the emissive shape a derived light stands in for, nil for
	// authored lights. Shadow rays ignore it.
	Source geometry.Shape
}

// NewLight creates an authored point light
func NewLight(position, color core.Vec3, intensity float32) Light {
	return Light{
		Position:  position,
		Color:     color,
		Intensity: intensity,
	}
}

// DirectionFrom returns the unit direction from point toward the light
func (l Light) DirectionFrom(point core.Vec3) core.Vec3 {
	return l.Position.Subtract(point).Normalize()
}

// DistanceFrom returns the distance from point to the light
func (l Light) DistanceFrom(point core.Vec3) float32 {
	return l.Position.Subtract(point).Length()
}

// IsDerived reports whether the light was synthesized from an emissive shape
func (l Light) IsDerived() bool {
	return l.Source != nil
}
