package renderer

import (
	"image/color"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testScene is a minimal Scene for tracer tests
type testScene struct {
	shapes      []geometry.Shape
	textures    *material.TextureSet
	environment lights.Environment
}

func (s *testScene) GetShapes() []geometry.Shape { return s.shapes }
func (s *testScene) GetTextures() material.Textures {
	if s.textures == nil {
		return nil
	}
	return s.textures
}
func (s *testScene) GetEnvironment() lights.Environment { return s.environment }

func newTestScene(shapes ...geometry.Shape) *testScene {
	return &testScene{
		shapes:      shapes,
		environment: lights.NewSolidBackground(core.NewVec3(0.2, 0.2, 0.2)),
	}
}

func topOf(t *testing.T, shape geometry.Shape) geometry.Intersect {
	t.Helper()
	hit := shape.Intersect(core.NewRay(core.NewVec3(0, 10, 0), core.NewVec3(0, -1, 0)))
	require.True(t, hit.IsIntersecting)
	return hit
}

func TestTracer_CastShadow_NoSelfShadowing(t *testing.T) {
	light := lights.NewLight(core.NewVec3(0, 20, 0), core.NewVec3(1, 1, 1), 1)

	tests := []struct {
		name  string
		shape geometry.Shape
	}{
		{"sphere", geometry.NewSphere(core.NewVec3(0, 0, 0), 1, material.NewMatte(core.NewVec3(1, 1, 1)))},
		{"small sphere", geometry.NewSphere(core.NewVec3(0, 0, 0), 0.01, material.NewMatte(core.NewVec3(1, 1, 1)))},
		{"cube", geometry.NewCube(core.NewVec3(0, 0, 0), core.NewVec3(2, 2, 2), material.NewMatte(core.NewVec3(1, 1, 1)))},
		{"flat cube", geometry.NewCube(core.NewVec3(0, -1, 0), core.NewVec3(20, 0.1, 20), material.NewMatte(core.NewVec3(1, 1, 1)))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tracer := NewTracer(newTestScene(tt.shape), light, DefaultTraceConfig())
			hit := topOf(t, tt.shape)
			assert.Equal(t, float32(0), tracer.CastShadow(hit, light))
		})
	}
}

func TestTracer_CastShadow_Occluded(t *testing.T) {
	ground := geometry.NewSphere(core.NewVec3(0, 0, 0), 1, material.NewMatte(core.NewVec3(1, 1, 1)))
	blocker := geometry.NewSphere(core.NewVec3(0, 5, 0), 0.5, material.NewMatte(core.NewVec3(1, 1, 1)))
	light := lights.NewLight(core.NewVec3(0, 20, 0), core.NewVec3(1, 1, 1), 1)

	tracer := NewTracer(newTestScene(ground, blocker), light, DefaultTraceConfig())
	hit := topOf(t, ground)
	assert.Equal(t, float32(0.7), tracer.CastShadow(hit, light))

	// A blocker beyond the light does not cast a shadow
	near := lights.NewLight(core.NewVec3(0, 3, 0), core.NewVec3(1, 1, 1), 1)
	assert.Equal(t, float32(0), tracer.CastShadow(hit, near))
}

func TestTracer_CastShadow_EmitterDoesNotOccludeItself(t *testing.T) {
	ground := geometry.NewSphere(core.NewVec3(0, 0, 0), 1, material.NewMatte(core.NewVec3(1, 1, 1)))
	lamp := geometry.NewSphere(core.NewVec3(0, 5, 0), 0.5, material.NewLightMaterial(core.NewVec3(2, 2, 2)))

	derived, ok := lights.FromEmissive(lamp)
	require.True(t, ok)

	tracer := NewTracer(newTestScene(ground, lamp), lights.Light{}, DefaultTraceConfig())
	assert.Equal(t, float32(0), tracer.CastShadow(topOf(t, ground), derived))
}

func TestTracer_CastRay_Miss(t *testing.T) {
	scene := newTestScene()
	tracer := NewTracer(scene, lights.Light{}, DefaultTraceConfig())

	c := tracer.CastRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1), 0)
	assert.Equal(t, core.NewVec3(0.2, 0.2, 0.2), c)
	assert.Equal(t, int64(1), tracer.RaysCast())
}

func TestTracer_ReflectivityMonotonic(t *testing.T) {
	white := lights.NewSolidBackground(core.NewVec3(1, 1, 1))
	// Light behind the camera so the diffuse term is the same for every material
	light := lights.NewLight(core.NewVec3(0, 0, 10), core.NewVec3(1, 1, 1), 1)

	previous := float32(-1)
	for _, reflectivity := range []float32{0, 0.1, 0.25, 0.5, 0.75, 0.9, 1} {
		mat := material.NewMaterial(core.NewVec3(0.3, 0.3, 0.3), [2]float32{0.5, 0}, 10, reflectivity, 0, 1)
		sphere := geometry.NewSphere(core.NewVec3(0, 0, -5), 1, mat)
		scene := &testScene{shapes: []geometry.Shape{sphere}, environment: white}

		c := NewTracer(scene, light, DefaultTraceConfig()).CastRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1), 0)

		assert.Greater(t, c.X, previous, "reflectivity %v", reflectivity)
		previous = c.X
	}
}

func TestTracer_MirrorRecursionBound(t *testing.T) {
	// Two mirrors facing each other; the ray bounces until the depth limit
	mirror := material.NewMirror(core.NewVec3(1, 1, 1))
	front := geometry.NewCube(core.NewVec3(0, 0, -3), core.NewVec3(10, 10, 1), mirror)
	back := geometry.NewCube(core.NewVec3(0, 0, 3), core.NewVec3(10, 10, 1), mirror)
	light := lights.NewLight(core.NewVec3(0, 1, 0), core.NewVec3(1, 1, 1), 1)

	for _, maxDepth := range []int{0, 1, 3, 8} {
		config := DefaultTraceConfig()
		config.MaxDepth = maxDepth
		tracer := NewTracer(newTestScene(front, back), light, config)

		c := tracer.CastRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1), 0)

		assert.True(t, c.IsFinite(), "depth %d color %v", maxDepth, c)
		// The initial call plus at most maxDepth+1 recursive calls
		assert.Equal(t, int64(maxDepth+2), tracer.RaysCast(), "depth %d", maxDepth)
	}
}

func TestTracer_EndToEndRedSphere(t *testing.T) {
	red := material.NewMatte(core.NewVec3(1, 0, 0))
	sphere := geometry.NewSphere(core.NewVec3(0, 0, -5), 1, red)
	sky := lights.NewProceduralSky()
	scene := &testScene{shapes: []geometry.Shape{sphere}, environment: sky}
	light := lights.NewLight(core.NewVec3(0, 5, 0), core.NewVec3(1, 1, 1), 1.5)

	camera := NewCamera(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1), core.NewVec3(0, 1, 0))
	direction := camera.RayDirection(32, 32, 65, 65)

	c := NewTracer(scene, light, DefaultTraceConfig()).CastRay(camera.Eye, direction, 0)
	pixel := core.Vec3ToColor(c)

	assert.Greater(t, pixel.R, pixel.G)
	assert.Greater(t, pixel.R, pixel.B)
	assert.NotEqual(t, core.Vec3ToColor(sky.Sample(direction)), pixel)
}

func TestTracer_TextureReplacesDiffuse(t *testing.T) {
	green := color.RGBA{G: 255, A: 255}
	textures := material.NewTextureSet()
	textures.Add("green", material.NewImageTexture(1, 1, []color.RGBA{green}))

	mat := material.NewMatte(core.NewVec3(1, 0, 0)).WithTexture("green")
	cube := geometry.NewCube(core.NewVec3(0, 0, -5), core.NewVec3(2, 2, 2), mat)
	scene := newTestScene(cube)
	scene.textures = textures
	light := lights.NewLight(core.NewVec3(0, 0, 5), core.NewVec3(1, 1, 1), 1)

	c := NewTracer(scene, light, DefaultTraceConfig()).CastRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1), 0)

	assert.Greater(t, c.Y, c.X, "texture color wins over the base diffuse color")
}

func TestTracer_EmissiveSurfaceLightsNeighbours(t *testing.T) {
	ground := geometry.NewCube(core.NewVec3(0, -1, -5), core.NewVec3(10, 0.2, 10), material.NewMatte(core.NewVec3(1, 1, 1)))
	lamp := geometry.NewSphere(core.NewVec3(0, 1, -5), 0.3, material.NewLightMaterial(core.NewVec3(3, 3, 3)))
	// Authored light far below the floor contributes nothing to its top face
	dark := lights.NewLight(core.NewVec3(0, -100, 0), core.NewVec3(1, 1, 1), 1)

	origin := core.NewVec3(0, 2, 0)
	direction := core.NewVec3(0, -0.9, -1.5).Normalize()

	without := NewTracer(newTestScene(ground), dark, DefaultTraceConfig()).CastRay(origin, direction, 0)
	with := NewTracer(newTestScene(ground, lamp), dark, DefaultTraceConfig()).CastRay(origin, direction, 0)

	assert.Greater(t, with.X, without.X)
}

func TestPerturbNormal(t *testing.T) {
	normals := []core.Vec3{
		core.NewVec3(0, 1, 0),
		core.NewVec3(0, 0, 1),
		core.NewVec3(1, 1, 1).Normalize(),
	}

	for _, n := range normals {
		assertVecNear(t, n, perturbNormal(n, core.NewVec3(0, 0, 1)), 1e-5)

		tilted := perturbNormal(n, core.NewVec3(0.3, 0.2, 0.9).Normalize())
		assert.InDelta(t, 1, tilted.Length(), 1e-5)
		assert.Greater(t, tilted.Dot(n), float32(0.8))
	}
}

func TestTracer_GlassShowsBackground(t *testing.T) {
	green := lights.NewSolidBackground(core.NewVec3(0, 1, 0))
	glass := geometry.NewSphere(core.NewVec3(0, 0, -5), 1, material.NewGlass(1.5))
	scene := &testScene{shapes: []geometry.Shape{glass}, environment: green}
	// Light above the sphere so neither surface gets a diffuse term on axis
	light := lights.NewLight(core.NewVec3(0, 10, -5), core.NewVec3(1, 1, 1), 1)

	c := NewTracer(scene, light, DefaultTraceConfig()).CastRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1), 0)

	assert.Greater(t, c.Y, float32(0.6), "color %v", c)
	assert.Greater(t, c.Y, 5*c.X, "color %v", c)
	assert.Greater(t, c.Y, 5*c.Z, "color %v", c)

	// The same sphere made opaque hides the background
	matte := geometry.NewSphere(core.NewVec3(0, 0, -5), 1, material.NewMatte(core.NewVec3(0.5, 0.5, 0.5)))
	opaque := NewTracer(&testScene{shapes: []geometry.Shape{matte}, environment: green}, light, DefaultTraceConfig()).
		CastRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1), 0)
	assert.Less(t, opaque.Y, c.Y)
}

func TestTracer_NormalMapDrivesLighting(t *testing.T) {
	// Tangent-space (0.8, 0, 0.6): on a +Z face this tilts the normal towards +Y,
	// away from a light straight ahead
	tilted := material.NewImageTexture(1, 1, []color.RGBA{{R: 230, G: 128, B: 204, A: 255}})

	textures := material.NewTextureSet()
	textures.Add("flat", material.NewFlatNormalMap(1, 1))
	textures.Add("tilted", tilted)

	light := lights.NewLight(core.NewVec3(0, 0, 5), core.NewVec3(1, 1, 1), 1)
	trace := func(normalMap material.TextureID) core.Vec3 {
		mat := material.NewMatte(core.NewVec3(1, 1, 1)).WithNormalMap(normalMap)
		cube := geometry.NewCube(core.NewVec3(0, 0, -5), core.NewVec3(2, 2, 2), mat)
		scene := newTestScene(cube)
		scene.textures = textures
		return NewTracer(scene, light, DefaultTraceConfig()).CastRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1), 0)
	}

	flat := trace("flat")
	bent := trace("tilted")

	assert.Less(t, bent.X, flat.X, "flat %v tilted %v", flat, bent)
	assert.Less(t, bent.X, 0.8*flat.X, "flat %v tilted %v", flat, bent)
}

func TestTracer_ZeroSpecularExponentAddsNoHighlight(t *testing.T) {
	// Specular-only material lit from behind: nothing faces the light
	mat := material.NewMaterial(core.NewVec3(1, 1, 1), [2]float32{0, 1}, 0, 0, 0, 1)
	sphere := geometry.NewSphere(core.NewVec3(0, 0, -5), 1, mat)
	scene := &testScene{shapes: []geometry.Shape{sphere}, environment: lights.NewSolidBackground(core.Zero())}
	light := lights.NewLight(core.NewVec3(0, 0, -20), core.NewVec3(1, 1, 1), 1)

	c := NewTracer(scene, light, DefaultTraceConfig()).CastRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1), 0)

	assert.Equal(t, core.Zero(), c)
}
