package lights

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Environment supplies the color seen along rays that escape the scene or
// exceed the recursion depth
type Environment interface {
	Sample(direction core.Vec3) core.Vec3
}

// Band break points of the procedural sky, in t = 0.5*(dir.y + 1)
const (
	skyGroundEnd  = 0.54 // below: ground green
	skyHorizonEnd = 0.55 // green fades to white
	skyZenith     = 0.8  // white fades to blue, solid blue above
)

// ProceduralSky is a banded gradient: green ground, a thin white horizon and
// a blue sky
type ProceduralSky struct {
	Ground  core.Vec3
	Horizon core.Vec3
	Zenith  core.Vec3
}

// NewProceduralSky creates the default green/white/blue sky
func NewProceduralSky() *ProceduralSky {
	return &ProceduralSky{
		Ground:  core.NewVec3(0.1, 0.5, 0.15),
		Horizon: core.NewVec3(1, 1, 1),
		Zenith:  core.NewVec3(0.25, 0.5, 1),
	}
}

// Sample implements Environment
func (s *ProceduralSky) Sample(direction core.Vec3) core.Vec3 {
	t := 0.5 * (direction.Normalize().Y + 1)

	switch {
	case t < skyGroundEnd:
		return s.Ground
	case t < skyHorizonEnd:
		return s.Ground.Lerp(s.Horizon, (t-skyGroundEnd)/(skyHorizonEnd-skyGroundEnd))
	case t < skyZenith:
		return s.Horizon.Lerp(s.Zenith, (t-skyHorizonEnd)/(skyZenith-skyHorizonEnd))
	default:
		return s.Zenith
	}
}

// SolidBackground returns the same color in every direction
type SolidBackground struct {
	Color core.Vec3
}

// NewSolidBackground creates a uniform background
func NewSolidBackground(color core.Vec3) *SolidBackground {
	return &SolidBackground{Color: color}
}

// NewNightBackground creates the dark navy background (4, 12, 36)
func NewNightBackground() *SolidBackground {
	return NewSolidBackground(core.NewVec3(4.0/255, 12.0/255, 36.0/255))
}

// Sample implements Environment
func (b *SolidBackground) Sample(direction core.Vec3) core.Vec3 {
	return b.Color
}
