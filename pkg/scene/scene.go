package scene

import (
	"errors"
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
)

// ErrUnknownTexture is returned when a material or skybox names a texture the
// scene does not hold
var ErrUnknownTexture = errors.New("unknown texture")

// Scene contains all the elements needed for rendering
type Scene struct {
	Name        string
	Camera      renderer.Camera      // Initial camera
	Light       lights.Light         // Authored point light
	Shapes      []geometry.Shape     // Objects in the scene
	Textures    *material.TextureSet // Textures and normal maps by id
	Environment lights.Environment   // What rays that miss every shape see
	Config      RenderConfig
}

// RenderConfig contains rendering configuration
type RenderConfig struct {
	Width    int // Image width
	Height   int // Image height
	MaxDepth int // Maximum ray recursion depth
	Workers  int // Render workers, 0 for one per CPU
}

// DefaultRenderConfig returns sensible default values
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		Width:    800,
		Height:   600,
		MaxDepth: 3,
	}
}

// New assembles a scene and validates it
func New(name string, camera renderer.Camera, light lights.Light, environment lights.Environment, textures *material.TextureSet, shapes ...geometry.Shape) (*Scene, error) {
	if textures == nil {
		textures = material.NewTextureSet()
	}
	s := &Scene{
		Name:        name,
		Camera:      camera,
		Light:       light,
		Shapes:      shapes,
		Textures:    textures,
		Environment: environment,
		Config:      DefaultRenderConfig(),
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// GetShapes returns the shapes in the scene
func (s *Scene) GetShapes() []geometry.Shape { return s.Shapes }

// GetTextures returns the scene's textures
func (s *Scene) GetTextures() material.Textures {
	if s.Textures == nil {
		return nil
	}
	return s.Textures
}

// GetEnvironment returns the environment, a night-sky color when unset
func (s *Scene) GetEnvironment() lights.Environment {
	if s.Environment == nil {
		return lights.NewNightBackground()
	}
	return s.Environment
}

// Add appends shapes to the scene
func (s *Scene) Add(shapes ...geometry.Shape) {
	s.Shapes = append(s.Shapes, shapes...)
}

// TraceConfig returns the tracing parameters for this scene
func (s *Scene) TraceConfig() renderer.TraceConfig {
	config := renderer.DefaultTraceConfig()
	if s.Config.MaxDepth > 0 {
		config.MaxDepth = s.Config.MaxDepth
	}
	return config
}

// EmitterCount returns how many shapes act as derived lights
func (s *Scene) EmitterCount() int {
	count := 0
	for _, shape := range s.Shapes {
		if shape.SurfaceMaterial().IsEmissive() {
			count++
		}
	}
	return count
}

// Bounds returns the box enclosing every shape
func (s *Scene) Bounds() core.AABB {
	if len(s.Shapes) == 0 {
		return core.AABB{}
	}
	bounds := s.Shapes[0].BoundingBox()
	for _, shape := range s.Shapes[1:] {
		bounds = bounds.Union(shape.BoundingBox())
	}
	return bounds
}

// Validate checks that every texture and normal map referenced by a
// material, and every skybox face, exists in the scene's textures
func (s *Scene) Validate() error {
	for i, shape := range s.Shapes {
		mat := shape.SurfaceMaterial()
		if mat.HasTexture() && !s.hasTexture(mat.Texture) {
			return fmt.Errorf("shape %d texture %q: %w", i, mat.Texture, ErrUnknownTexture)
		}
		if mat.HasNormalMap() && !s.hasTexture(mat.NormalMap) {
			return fmt.Errorf("shape %d normal map %q: %w", i, mat.NormalMap, ErrUnknownTexture)
		}
	}

	if skybox, ok := s.Environment.(*lights.Skybox); ok {
		for _, id := range skybox.Faces.IDs() {
			if skybox.Textures == nil || !skybox.Textures.Has(id) {
				return fmt.Errorf("skybox face %q: %w", id, ErrUnknownTexture)
			}
		}
	}

	return nil
}

func (s *Scene) hasTexture(id material.TextureID) bool {
	return s.Textures != nil && s.Textures.Has(id)
}
