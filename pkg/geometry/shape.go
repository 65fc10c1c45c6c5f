package geometry

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// HitEpsilon is the smallest ray parameter accepted as a hit. Anything closer
// is treated as the ray re-hitting the surface it left.
const HitEpsilon = 1e-3

// Intersect is the result of a ray-shape test
type Intersect struct {
	IsIntersecting bool
	Distance       float32           // Ray parameter t, always positive for a hit
	Point          core.Vec3         // Point of intersection
	Normal         core.Vec3         // Unit outward surface normal
	U, V           float32           // Surface parametrization for texture lookup
	Material       material.Material // Copy of the shape's material
}

// EmptyIntersect returns the miss sentinel. It must never be shaded.
func EmptyIntersect() Intersect {
	return Intersect{}
}

// Shape is implemented by every primitive the tracer can hit. The set is
// closed: *Sphere and *Cube.
type Shape interface {
	// Intersect tests the ray against the shape. The direction is expected to
	// be unit length; degenerate rays report a miss.
	Intersect(ray core.Ray) Intersect
	// SurfaceMaterial returns the shape's material by value
	SurfaceMaterial() material.Material
	// Centroid returns the center of the shape's bounding volume
	Centroid() core.Vec3
	// BoundingBox returns the axis-aligned bounds of the shape
	BoundingBox() core.AABB
}
