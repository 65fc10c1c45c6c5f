package geometry

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Face identifies one side of a Cube
type Face int

const (
	FaceFront  Face = iota // +Z
	FaceBack               // -Z
	FaceRight              // +X
	FaceLeft               // -X
	FaceTop                // +Y
	FaceBottom             // -Y
)

// Cube represents an axis-aligned box
type Cube struct {
	Center   core.Vec3 // Center point of the box
	Size     core.Vec3 // Full edge length along each axis
	Material material.Material
	bounds   core.AABB
}

// NewCube creates an axis-aligned box with the given center and edge lengths
func NewCube(center, size core.Vec3, mat material.Material) *Cube {
	return &Cube{
		Center:   center,
		Size:     size,
		Material: mat,
		bounds:   core.NewAABBFromCenter(center, size),
	}
}

// Intersect tests the ray against the box using the slab method
func (c *Cube) Intersect(ray core.Ray) Intersect {
	if !c.bounds.IsValid() {
		return EmptyIntersect()
	}

	slab, ok := c.bounds.Slabs(ray)
	if !ok || slab.TFar <= HitEpsilon {
		return EmptyIntersect()
	}

	// Entry face when the box is ahead of us, exit face when we start inside
	t, axis := slab.TNear, slab.NearAxis
	if t <= HitEpsilon || axis < 0 {
		t, axis = slab.TFar, slab.FarAxis
	}

	point := ray.At(t)
	face := c.faceFor(axis, point)
	u, v := c.faceUV(face, point)

	return Intersect{
		IsIntersecting: true,
		Distance:       t,
		Point:          point,
		Normal:         face.Normal(),
		U:              u,
		V:              v,
		Material:       c.Material,
	}
}

// faceFor picks the face on the given axis closest to point
func (c *Cube) faceFor(axis int, point core.Vec3) Face {
	positive := point.Axis(axis) >= c.Center.Axis(axis)
	switch axis {
	case 0:
		if positive {
			return FaceRight
		}
		return FaceLeft
	case 1:
		if positive {
			return FaceTop
		}
		return FaceBottom
	default:
		if positive {
			return FaceFront
		}
		return FaceBack
	}
}

// faceUV maps a point on a face to [0,1]² so that each face reads upright
// when viewed from outside the box
func (c *Cube) faceUV(face Face, point core.Vec3) (float32, float32) {
	local := point.Subtract(c.bounds.Min)
	fx := clamp01(local.X / c.Size.X)
	fy := clamp01(local.Y / c.Size.Y)
	fz := clamp01(local.Z / c.Size.Z)

	switch face {
	case FaceFront:
		return fx, fy
	case FaceBack:
		return 1 - fx, fy
	case FaceRight:
		return 1 - fz, fy
	case FaceLeft:
		return fz, fy
	case FaceTop:
		return fx, 1 - fz
	default:
		return fx, fz
	}
}

// Normal returns the outward unit normal of the face
func (f Face) Normal() core.Vec3 {
	switch f {
	case FaceFront:
		return core.NewVec3(0, 0, 1)
	case FaceBack:
		return core.NewVec3(0, 0, -1)
	case FaceRight:
		return core.NewVec3(1, 0, 0)
	case FaceLeft:
		return core.NewVec3(-1, 0, 0)
	case FaceTop:
		return core.NewVec3(0, 1, 0)
	default:
		return core.NewVec3(0, -1, 0)
	}
}

func (f Face) String() string {
	switch f {
	case FaceFront:
		return "front"
	case FaceBack:
		return "back"
	case FaceRight:
		return "right"
	case FaceLeft:
		return "left"
	case FaceTop:
		return "top"
	default:
		return "bottom"
	}
}

// SurfaceMaterial returns the cube's material
func (c *Cube) SurfaceMaterial() material.Material {
	return c.Material
}

// Centroid returns the center of the box
func (c *Cube) Centroid() core.Vec3 {
	return c.bounds.Center()
}

// BoundingBox returns the box itself
func (c *Cube) BoundingBox() core.AABB {
	return c.bounds
}

func clamp01(x float32) float32 {
	return max(0, min(1, x))
}
