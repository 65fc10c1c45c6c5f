package loaders

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSceneYAML = `# Scene: Test Scene
# Description: Two shapes and a checkered texture
camera:
  eye: [0, 1, 5]
  center: [0, 0, 0]
  fov: 45
light:
  position: [2, 4, 3]
  intensity: 1.5
environment:
  type: solid
  color: [0.1, 0.1, 0.2]
textures:
  checker: textures/checker.png
materials:
  red:
    preset: matte
    diffuse: [1, 0, 0]
  floor:
    diffuse: [0.8, 0.8, 0.8]
    albedo: [0.9, 0.1]
    specular: 10
    texture: checker
shapes:
  - type: sphere
    center: [0, 0, 0]
    radius: 1
    material: red
  - type: cube
    center: [0, -1.5, 0]
    size: [10, 1, 10]
    material: floor
`

func TestParseSceneFile(t *testing.T) {
	f, err := ParseSceneFile([]byte(testSceneYAML))
	require.NoError(t, err)

	assert.Equal(t, Vec{0, 1, 5}, f.Camera.Eye)
	assert.Nil(t, f.Camera.Up)
	assert.Equal(t, float32(45), f.Camera.Fov)
	assert.Equal(t, float32(1.5), f.Light.Intensity)
	assert.Equal(t, "solid", f.Environment.Type)
	assert.Equal(t, "textures/checker.png", f.Textures["checker"])

	require.Len(t, f.Shapes, 2)
	assert.Equal(t, "sphere", f.Shapes[0].Type)
	assert.Equal(t, float32(1), f.Shapes[0].Radius)
	require.NotNil(t, f.Shapes[1].Size)
	assert.Equal(t, Vec{10, 1, 10}, *f.Shapes[1].Size)

	red := f.Materials["red"]
	assert.Equal(t, "matte", red.Preset)
	require.NotNil(t, red.Diffuse)
	assert.Nil(t, red.Specular, "unset fields stay nil so presets are kept")

	floor := f.Materials["floor"]
	require.NotNil(t, floor.Albedo)
	assert.Equal(t, [2]float32{0.9, 0.1}, *floor.Albedo)
	assert.Equal(t, "checker", floor.Texture)
}

func TestParseSceneFile_Errors(t *testing.T) {
	tests := []struct {
		name        string
		yaml        string
		unsupported bool
	}{
		{"unknown shape", "shapes:\n  - type: torus\n    radius: 1\n", true},
		{"negative radius", "shapes:\n  - type: sphere\n    radius: -1\n", false},
		{"cube without size", "shapes:\n  - type: cube\n", false},
		{"flat cube", "shapes:\n  - type: cube\n    size: [1, 0, 1]\n", false},
		{"unknown field", "lights:\n  - position: [0, 0, 0]\n", false},
		{"bad vector", "camera:\n  eye: hello\n", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSceneFile([]byte(tt.yaml))
			require.Error(t, err)
			if tt.unsupported {
				assert.ErrorIs(t, err, ErrUnsupportedShape)
			}
		})
	}
}

func TestLoadSceneFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testSceneYAML), 0o644))

	f, err := LoadSceneFile(path)
	require.NoError(t, err)

	assert.Equal(t, dir, f.Dir)
	assert.Equal(t, filepath.Join(dir, "textures", "checker.png"), f.ResolvePath(f.Textures["checker"]))
	assert.Equal(t, "/abs/sky.png", f.ResolvePath("/abs/sky.png"))

	_, err = LoadSceneFile(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
