package scene

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/chewxy/math32"
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/loaders"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCamera() renderer.Camera {
	return renderer.NewCamera(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1), core.NewVec3(0, 1, 0))
}

func TestNew_UnknownTexture(t *testing.T) {
	textures := material.NewTextureSet()
	textures.Add("checker", material.NewCheckerboardTexture(4, 4, 2, core.NewVec3(0, 0, 0), core.NewVec3(1, 1, 1)))
	light := lights.NewLight(core.NewVec3(0, 5, 0), core.NewVec3(1, 1, 1), 1)

	tests := []struct {
		name        string
		mat         material.Material
		environment lights.Environment
		wantErr     bool
	}{
		{"known texture", material.NewMatte(core.NewVec3(1, 1, 1)).WithTexture("checker"), nil, false},
		{"missing texture", material.NewMatte(core.NewVec3(1, 1, 1)).WithTexture("bricks"), nil, true},
		{"missing normal map", material.NewMatte(core.NewVec3(1, 1, 1)).WithNormalMap("bumps"), nil, true},
		{"missing skybox face", material.Black(), lights.NewSkybox(lights.SkyboxFaces{
			Right: "checker", Left: "checker", Top: "checker", Bottom: "checker", Back: "checker", Front: "sunset",
		}, textures), true},
		{"complete skybox", material.Black(), lights.NewSkybox(lights.SkyboxFaces{
			Right: "checker", Left: "checker", Top: "checker", Bottom: "checker", Back: "checker", Front: "checker",
		}, textures), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sphere := geometry.NewSphere(core.NewVec3(0, 0, -5), 1, tt.mat)
			s, err := New("test", testCamera(), light, tt.environment, textures, sphere)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownTexture)
				assert.Nil(t, s)
				return
			}
			require.NoError(t, err)
			assert.Len(t, s.Shapes, 1)
		})
	}
}

func TestScene_Accessors(t *testing.T) {
	s := NewDefaultScene()

	assert.Equal(t, 1, s.EmitterCount())
	assert.Equal(t, 3, s.TraceConfig().MaxDepth)
	assert.True(t, s.Bounds().IsValid())

	s.Config.MaxDepth = 6
	assert.Equal(t, 6, s.TraceConfig().MaxDepth)

	empty := &Scene{}
	assert.Nil(t, empty.GetTextures(), "nil texture set stays a nil interface")
	assert.NotNil(t, empty.GetEnvironment())
	assert.Equal(t, core.AABB{}, empty.Bounds())
}

func TestBuiltInScenes_Render(t *testing.T) {
	for _, info := range ListScenes() {
		t.Run(info.ID, func(t *testing.T) {
			s, err := Create(context.Background(), info.ID)
			require.NoError(t, err)

			rt, err := renderer.NewRaytracer(s, 24, 18, s.TraceConfig(), 2, nil)
			require.NoError(t, err)
			defer rt.Close()

			frame, stats, err := rt.Render(context.Background(), s.Camera, s.Light)
			require.NoError(t, err)
			assert.Equal(t, 24*18, stats.TotalPixels)

			distinct := map[color.RGBA]bool{}
			for _, p := range frame.Pixels {
				distinct[p] = true
			}
			assert.Greater(t, len(distinct), 1, "frame is not a single flat color")
		})
	}
}

func TestSnowmanScene_NoseIsOrange(t *testing.T) {
	s := NewSnowmanScene()
	rt, err := renderer.NewRaytracer(s, 101, 101, s.TraceConfig(), 1, nil)
	require.NoError(t, err)
	defer rt.Close()

	// Aim the camera straight at the nose
	s.Camera.Center = core.NewVec3(0, 1.15, -6.2)
	s.Camera.UpdateBasis()

	c := core.Vec3ToColor(rt.TracePixel(s.Camera, s.Light, 50, 50))
	assert.Greater(t, c.R, c.B)
	assert.Greater(t, c.G, c.B)
}

func TestNewSceneFromFile(t *testing.T) {
	f, err := loaders.ParseSceneFile([]byte(`
camera:
  eye: [0, 1, 5]
  center: [0, 0, 0]
  fov: 90
light:
  position: [0, 5, 0]
environment:
  type: solid
  color: [0.5, 0.5, 0.5]
materials:
  shiny:
    preset: mirror
    reflectivity: 0.5
  lamp:
    preset: light
    emission: [2, 2, 2]
shapes:
  - type: sphere
    center: [0, 0, 0]
    radius: 1
    material: shiny
  - type: cube
    center: [0, 3, 0]
    size: [1, 1, 1]
    material: lamp
  - type: sphere
    center: [2, 0, 0]
    radius: 0.5
`))
	require.NoError(t, err)

	s, err := NewSceneFromFile("file", f, nil)
	require.NoError(t, err)

	assert.Equal(t, "file", s.Name)
	assert.InDelta(t, math32.Pi/2, s.Camera.Fov, 1e-6)
	assert.Equal(t, float32(1), s.Light.Intensity, "intensity defaults to 1")
	assert.Equal(t, core.NewVec3(1, 1, 1), s.Light.Color)
	assert.Equal(t, core.NewVec3(0.5, 0.5, 0.5), s.GetEnvironment().Sample(core.NewVec3(0, 1, 0)))

	require.Len(t, s.Shapes, 3)
	shiny := s.Shapes[0].SurfaceMaterial()
	assert.Equal(t, float32(0.5), shiny.Reflectivity, "field overrides preset")
	assert.Equal(t, float32(1200), shiny.Specular, "preset value kept")
	assert.Equal(t, 1, s.EmitterCount())
	assert.Equal(t, material.Black(), s.Shapes[2].SurfaceMaterial())
}

func TestNewSceneFromFile_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown material", "shapes:\n  - type: sphere\n    radius: 1\n    material: gold\n"},
		{"unknown preset", "materials:\n  m:\n    preset: velvet\n"},
		{"unknown environment", "environment:\n  type: fog\n"},
		{"missing texture", "materials:\n  m:\n    texture: wood\nshapes:\n  - type: sphere\n    radius: 1\n    material: m\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := loaders.ParseSceneFile([]byte(tt.yaml))
			require.NoError(t, err)
			_, err = NewSceneFromFile("broken", f, nil)
			assert.Error(t, err)
		})
	}
}

func TestNewFileScene_WithTextures(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "textures"), 0o755))

	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	f, err := os.Create(filepath.Join(dir, "textures", "white.png"))
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())

	path := filepath.Join(dir, "textured.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
textures:
  white: textures/white.png
materials:
  m:
    preset: matte
    texture: white
shapes:
  - type: sphere
    center: [0, 0, -5]
    radius: 1
    material: m
`), 0o644))

	s, err := Create(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "textured", s.Name)
	assert.True(t, s.Textures.Has("white"))

	_, err = Create(context.Background(), filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
