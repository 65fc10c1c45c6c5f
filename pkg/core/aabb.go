package core

import "github.com/chewxy/math32"

// parallelEpsilon is the smallest direction component treated as non-parallel
// to a slab.
const parallelEpsilon = 1e-8

// AABB represents an axis-aligned bounding box
type AABB struct {
	Min Vec3 // Minimum corner
	Max Vec3 // Maximum corner
}

// NewAABB creates a new AABB from min and max points
func NewAABB(min, max Vec3) AABB {
	return AABB{Min: min, Max: max}
}

// NewAABBFromCenter creates an AABB with the given center and full edge lengths
func NewAABBFromCenter(center, size Vec3) AABB {
	half := size.Multiply(0.5)
	return AABB{Min: center.Subtract(half), Max: center.Add(half)}
}

// SlabHit describes the parametric interval where a ray overlaps an AABB
type SlabHit struct {
	TNear, TFar float32
	NearAxis    int // Axis whose slab produced TNear, -1 if the origin is inside every slab
	FarAxis     int // Axis whose slab produced TFar
}

// Slabs intersects the ray with the box using the slab method. It reports the
// running [tNear, tFar] interval and which axes bound it. The interval may be
// partially behind the origin; callers decide which end to use.
func (aabb AABB) Slabs(ray Ray) (SlabHit, bool) {
	hit := SlabHit{
		TNear:    -math32.Inf(1),
		TFar:     math32.Inf(1),
		NearAxis: -1,
		FarAxis:  -1,
	}

	for axis := 0; axis < 3; axis++ {
		lo := aabb.Min.Axis(axis)
		hi := aabb.Max.Axis(axis)
		origin := ray.Origin.Axis(axis)
		direction := ray.Direction.Axis(axis)

		// Handle parallel rays (direction near zero)
		if math32.Abs(direction) < parallelEpsilon {
			if origin < lo || origin > hi {
				return SlabHit{}, false
			}
			continue
		}

		invDirection := 1 / direction
		t1 := (lo - origin) * invDirection
		t2 := (hi - origin) * invDirection
		if t1 > t2 {
			t1, t2 = t2, t1
		}

		if t1 > hit.TNear {
			hit.TNear = t1
			hit.NearAxis = axis
		}
		if t2 < hit.TFar {
			hit.TFar = t2
			hit.FarAxis = axis
		}

		if hit.TNear > hit.TFar {
			return SlabHit{}, false
		}
	}

	// A ray parallel to all three slabs has no direction at all
	if hit.FarAxis < 0 {
		return SlabHit{}, false
	}

	return hit, true
}

// Hit reports whether the ray overlaps the box anywhere in [tMin, tMax]
func (aabb AABB) Hit(ray Ray, tMin, tMax float32) bool {
	slab, ok := aabb.Slabs(ray)
	if !ok {
		return false
	}
	return max(tMin, slab.TNear) <= min(tMax, slab.TFar)
}

// Union returns an AABB that bounds both this AABB and another
func (aabb AABB) Union(other AABB) AABB {
	return AABB{
		Min: Vec3{
			X: min(aabb.Min.X, other.Min.X),
			Y: min(aabb.Min.Y, other.Min.Y),
			Z: min(aabb.Min.Z, other.Min.Z),
		},
		Max: Vec3{
			X: max(aabb.Max.X, other.Max.X),
			Y: max(aabb.Max.Y, other.Max.Y),
			Z: max(aabb.Max.Z, other.Max.Z),
		},
	}
}

// Center returns the center point of the AABB
func (aabb AABB) Center() Vec3 {
	return aabb.Min.Add(aabb.Max).Multiply(0.5)
}

// Size returns the size (extent) of the AABB along each axis
func (aabb AABB) Size() Vec3 {
	return aabb.Max.Subtract(aabb.Min)
}

// IsValid returns true if the box has positive extent on every axis
func (aabb AABB) IsValid() bool {
	return aabb.Min.X < aabb.Max.X &&
		aabb.Min.Y < aabb.Max.Y &&
		aabb.Min.Z < aabb.Max.Z
}
