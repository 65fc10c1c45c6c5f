package geometry

import (
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCube_Intersect_EntryFaces(t *testing.T) {
	cube := NewCube(core.NewVec3(0, 0, 0), core.NewVec3(2, 2, 2), material.Black())

	tests := []struct {
		name     string
		origin   core.Vec3
		dir      core.Vec3
		distance float32
		face     Face
	}{
		{"front", core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1), 4, FaceFront},
		{"back", core.NewVec3(0, 0, -5), core.NewVec3(0, 0, 1), 4, FaceBack},
		{"right", core.NewVec3(5, 0, 0), core.NewVec3(-1, 0, 0), 4, FaceRight},
		{"left", core.NewVec3(-5, 0, 0), core.NewVec3(1, 0, 0), 4, FaceLeft},
		{"top", core.NewVec3(0, 5, 0), core.NewVec3(0, -1, 0), 4, FaceTop},
		{"bottom", core.NewVec3(0, -5, 0), core.NewVec3(0, 1, 0), 4, FaceBottom},
		{"off-center front", core.NewVec3(0.5, -0.3, 3), core.NewVec3(0, 0, -1), 2, FaceFront},
	}

	axisAligned := []core.Vec3{
		core.NewVec3(1, 0, 0), core.NewVec3(-1, 0, 0),
		core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0),
		core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1),
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit := cube.Intersect(core.NewRay(tt.origin, tt.dir))

			require.True(t, hit.IsIntersecting)
			assert.InDelta(t, tt.distance, hit.Distance, 1e-5)
			assert.Equal(t, tt.face.Normal(), hit.Normal)
			assert.Contains(t, axisAligned, hit.Normal, "normal must be one of the six axis-aligned unit vectors")
			assert.GreaterOrEqual(t, hit.U, float32(0))
			assert.LessOrEqual(t, hit.U, float32(1))
			assert.GreaterOrEqual(t, hit.V, float32(0))
			assert.LessOrEqual(t, hit.V, float32(1))
		})
	}
}

func TestCube_Intersect_Diagonal(t *testing.T) {
	cube := NewCube(core.NewVec3(0, 0, 0), core.NewVec3(2, 2, 2), material.Black())

	// Mostly along -z with a tilt, still enters through the front face
	dir := core.NewVec3(0.1, 0.05, -1).Normalize()
	hit := cube.Intersect(core.NewRay(core.NewVec3(0, 0, 4), dir))

	require.True(t, hit.IsIntersecting)
	assert.Equal(t, FaceFront.Normal(), hit.Normal)
}

func TestCube_Intersect_Misses(t *testing.T) {
	cube := NewCube(core.NewVec3(0, 0, 0), core.NewVec3(2, 2, 2), material.Black())

	tests := []struct {
		name string
		cube *Cube
		ray  core.Ray
	}{
		{"parallel outside", cube, core.NewRay(core.NewVec3(0, 2, 5), core.NewVec3(0, 0, -1))},
		{"pointing away", cube, core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, 1))},
		{"passes beside", cube, core.NewRay(core.NewVec3(-5, 0, 5), core.NewVec3(0, 0, -1))},
		{"zero direction", cube, core.NewRay(core.NewVec3(0, 0, 5), core.Vec3{})},
		{"zero size", NewCube(core.Vec3{}, core.NewVec3(0, 1, 1), material.Black()), core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit := tt.cube.Intersect(tt.ray)
			assert.Equal(t, EmptyIntersect(), hit)
		})
	}
}

func TestCube_Intersect_FromInside(t *testing.T) {
	cube := NewCube(core.NewVec3(0, 0, 0), core.NewVec3(2, 4, 2), material.Black())

	hit := cube.Intersect(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0)))

	require.True(t, hit.IsIntersecting)
	assert.InDelta(t, 2, hit.Distance, 1e-5)
	assert.Equal(t, FaceTop.Normal(), hit.Normal)
}

func TestCube_FaceUV(t *testing.T) {
	cube := NewCube(core.NewVec3(0, 0, 0), core.NewVec3(2, 2, 2), material.Black())

	// Lower-left corner region of the front face as seen from +Z
	front := cube.Intersect(core.NewRay(core.NewVec3(-0.5, -0.5, 5), core.NewVec3(0, 0, -1)))
	require.True(t, front.IsIntersecting)
	assert.InDelta(t, 0.25, front.U, 1e-5)
	assert.InDelta(t, 0.25, front.V, 1e-5)

	// Same world x on the back face reads mirrored
	back := cube.Intersect(core.NewRay(core.NewVec3(-0.5, -0.5, -5), core.NewVec3(0, 0, 1)))
	require.True(t, back.IsIntersecting)
	assert.InDelta(t, 0.75, back.U, 1e-5)
	assert.InDelta(t, 0.25, back.V, 1e-5)

	top := cube.Intersect(core.NewRay(core.NewVec3(0.5, 5, 0.5), core.NewVec3(0, -1, 0)))
	require.True(t, top.IsIntersecting)
	assert.InDelta(t, 0.75, top.U, 1e-5)
	assert.InDelta(t, 0.25, top.V, 1e-5)
}

func TestCube_Bounds(t *testing.T) {
	cube := NewCube(core.NewVec3(1, 1, 1), core.NewVec3(2, 4, 6), material.Black())
	assert.Equal(t, core.NewVec3(0, -1, -2), cube.BoundingBox().Min)
	assert.Equal(t, core.NewVec3(2, 3, 4), cube.BoundingBox().Max)
	assert.Equal(t, core.NewVec3(1, 1, 1), cube.Centroid())
	assert.Equal(t, "top", FaceTop.String())
}

func TestShapesSatisfyInterface(t *testing.T) {
	var shapes []Shape
	shapes = append(shapes, NewSphere(core.Vec3{}, 1, material.Black()))
	shapes = append(shapes, NewCube(core.Vec3{}, core.NewVec3(1, 1, 1), material.Black()))
	assert.Len(t, shapes, 2)
}
