package geometry

import (
	"github.com/chewxy/math32"
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center   core.Vec3
	Radius   float32
	Material material.Material
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float32, mat material.Material) *Sphere {
	return &Sphere{
		Center:   center,
		Radius:   radius,
		Material: mat,
	}
}

// Intersect tests if a ray intersects with the sphere
func (s *Sphere) Intersect(ray core.Ray) Intersect {
	if s.Radius <= 0 {
		return EmptyIntersect()
	}

	// Vector from sphere center to ray origin
	oc := ray.Origin.Subtract(s.Center)

	// Quadratic equation coefficients: at² + 2·halfB·t + c = 0
	a := ray.Direction.Dot(ray.Direction)
	if a < 1e-8 {
		return EmptyIntersect()
	}
	halfB := oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 || math32.IsNaN(discriminant) || math32.IsInf(discriminant, 0) {
		return EmptyIntersect()
	}
	sqrtD := math32.Sqrt(discriminant)

	// Try the closer root first, then the farther one (ray starts inside)
	root := (-halfB - sqrtD) / a
	if root <= HitEpsilon {
		root = (-halfB + sqrtD) / a
		if root <= HitEpsilon {
			return EmptyIntersect()
		}
	}

	point := ray.At(root)
	normal := point.Subtract(s.Center).Multiply(1 / s.Radius)
	u, v := s.uv(normal)

	return Intersect{
		IsIntersecting: true,
		Distance:       root,
		Point:          point,
		Normal:         normal,
		U:              u,
		V:              v,
		Material:       s.Material,
	}
}

// uv maps an outward unit normal to spherical texture coordinates. V=1 is the
// north pole.
func (s *Sphere) uv(normal core.Vec3) (float32, float32) {
	u := 0.5 + math32.Atan2(normal.Z, normal.X)/(2*math32.Pi)
	y := max(-1, min(1, normal.Y))
	v := 0.5 + math32.Asin(y)/math32.Pi
	return u, v
}

// SurfaceMaterial returns the sphere's material
func (s *Sphere) SurfaceMaterial() material.Material {
	return s.Material
}

// Centroid returns the sphere's center
func (s *Sphere) Centroid() core.Vec3 {
	return s.Center
}

// BoundingBox returns the axis-aligned bounding box for this sphere
func (s *Sphere) BoundingBox() core.AABB {
	radius := core.NewVec3(s.Radius, s.Radius, s.Radius)
	return core.NewAABB(
		s.Center.Subtract(radius),
		s.Center.Add(radius),
	)
}
