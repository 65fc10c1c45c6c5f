package loaders

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrUnsupportedShape is returned for shape types other than sphere and cube
var ErrUnsupportedShape = errors.New("unsupported shape type")

// Vec is a three-component vector as written in scene files: [x, y, z]
type Vec [3]float32

// SceneFile is the YAML description of a scene. Header comments of the form
// "# Scene: ..." carry display metadata and are read separately.
type SceneFile struct {
	Camera      CameraStatement              `yaml:"camera"`
	Light       LightStatement               `yaml:"light"`
	Environment EnvironmentStatement         `yaml:"environment"`
	Textures    map[string]string            `yaml:"textures"` // Texture id to image path
	Materials   map[string]MaterialStatement `yaml:"materials"`
	Shapes      []ShapeStatement             `yaml:"shapes"`

	// Dir is the directory of the file, used to resolve relative paths
	Dir string `yaml:"-"`
}

// CameraStatement places the camera. Fov is in degrees; zero means default.
type CameraStatement struct {
	Eye    Vec     `yaml:"eye"`
	Center Vec     `yaml:"center"`
	Up     *Vec    `yaml:"up"`
	Fov    float32 `yaml:"fov"`
}

// LightStatement describes the authored point light
type LightStatement struct {
	Position  Vec     `yaml:"position"`
	Color     *Vec    `yaml:"color"`
	Intensity float32 `yaml:"intensity"`
}

// EnvironmentStatement selects what rays that miss every shape see
type EnvironmentStatement struct {
	Type  string            `yaml:"type"` // "sky", "solid" or "skybox"
	Color *Vec              `yaml:"color"`
	Faces map[string]string `yaml:"faces"` // right, left, top, bottom, back, front
}

// MaterialStatement describes a material. Preset starts from one of the
// built-in materials ("matte", "mirror", "glass", "light"); the remaining
// fields override it.
type MaterialStatement struct {
	Preset          string      `yaml:"preset"`
	Diffuse         *Vec        `yaml:"diffuse"`
	Albedo          *[2]float32 `yaml:"albedo"`
	Specular        *float32    `yaml:"specular"`
	Reflectivity    *float32    `yaml:"reflectivity"`
	Transparency    *float32    `yaml:"transparency"`
	RefractiveIndex *float32    `yaml:"refractive_index"`
	Texture         string      `yaml:"texture"`
	NormalMap       string      `yaml:"normal_map"`
	Emission        *Vec        `yaml:"emission"`
}

// ShapeStatement describes one primitive
type ShapeStatement struct {
	Type     string  `yaml:"type"` // "sphere" or "cube"
	Center   Vec     `yaml:"center"`
	Radius   float32 `yaml:"radius"` // sphere
	Size     *Vec    `yaml:"size"`   // cube edge lengths
	Material string  `yaml:"material"`
}

// LoadSceneFile reads and parses a YAML scene file
func LoadSceneFile(filename string) (*SceneFile, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene file: %w", err)
	}

	sceneFile, err := ParseSceneFile(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	sceneFile.Dir = filepath.Dir(filename)
	return sceneFile, nil
}

// ParseSceneFile parses YAML scene data. Unknown keys are rejected.
func ParseSceneFile(data []byte) (*SceneFile, error) {
	var sceneFile SceneFile
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&sceneFile); err != nil {
		return nil, fmt.Errorf("failed to parse scene: %w", err)
	}

	for i, shape := range sceneFile.Shapes {
		if err := shape.validate(); err != nil {
			return nil, fmt.Errorf("shape %d: %w", i, err)
		}
	}

	return &sceneFile, nil
}

// ResolvePath returns path relative to the scene file's directory unless it
// is already absolute
func (f *SceneFile) ResolvePath(path string) string {
	if filepath.IsAbs(path) || f.Dir == "" {
		return path
	}
	return filepath.Join(f.Dir, path)
}

func (s ShapeStatement) validate() error {
	switch s.Type {
	case "sphere":
		if s.Radius <= 0 {
			return fmt.Errorf("sphere radius must be positive, got %v", s.Radius)
		}
	case "cube":
		if s.Size == nil {
			return fmt.Errorf("cube needs a size")
		}
		for _, c := range s.Size {
			if c <= 0 {
				return fmt.Errorf("cube size must be positive, got %v", *s.Size)
			}
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedShape, s.Type)
	}
	return nil
}
