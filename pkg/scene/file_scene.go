package scene

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/chewxy/math32"
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/loaders"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
)

// MaxTextureSize bounds the edge length of textures loaded from files
const MaxTextureSize = 1024

// NewFileScene creates a scene from a YAML scene file. Texture paths are
// resolved relative to the file.
func NewFileScene(ctx context.Context, path string) (*Scene, error) {
	sceneFile, err := loaders.LoadSceneFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load scene file: %w", err)
	}

	paths := make(map[material.TextureID]string, len(sceneFile.Textures))
	for id, texturePath := range sceneFile.Textures {
		paths[material.TextureID(id)] = sceneFile.ResolvePath(texturePath)
	}
	textures, err := loaders.LoadTextures(ctx, paths, MaxTextureSize)
	if err != nil {
		return nil, fmt.Errorf("failed to load textures: %w", err)
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return NewSceneFromFile(name, sceneFile, textures)
}

// NewSceneFromFile converts a parsed scene file using already loaded textures
func NewSceneFromFile(name string, sceneFile *loaders.SceneFile, textures *material.TextureSet) (*Scene, error) {
	if textures == nil {
		textures = material.NewTextureSet()
	}

	// Convert all materials first
	materials := make(map[string]material.Material, len(sceneFile.Materials))
	for matName, stmt := range sceneFile.Materials {
		mat, err := convertMaterial(stmt)
		if err != nil {
			return nil, fmt.Errorf("material %q: %w", matName, err)
		}
		materials[matName] = mat
	}

	shapes := make([]geometry.Shape, 0, len(sceneFile.Shapes))
	for i, stmt := range sceneFile.Shapes {
		mat := material.Black()
		if stmt.Material != "" {
			var ok bool
			mat, ok = materials[stmt.Material]
			if !ok {
				return nil, fmt.Errorf("shape %d: unknown material %q", i, stmt.Material)
			}
		}

		shape, err := convertShape(stmt, mat)
		if err != nil {
			return nil, fmt.Errorf("shape %d: %w", i, err)
		}
		shapes = append(shapes, shape)
	}

	environment, err := convertEnvironment(sceneFile.Environment, textures)
	if err != nil {
		return nil, fmt.Errorf("environment: %w", err)
	}

	return New(name, convertCamera(sceneFile.Camera), convertLight(sceneFile.Light), environment, textures, shapes...)
}

func toVec3(v loaders.Vec) core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}

func convertCamera(stmt loaders.CameraStatement) renderer.Camera {
	up := core.NewVec3(0, 1, 0)
	if stmt.Up != nil {
		up = toVec3(*stmt.Up)
	}
	center := toVec3(stmt.Center)
	eye := toVec3(stmt.Eye)
	if eye == center {
		// Nothing to look at; fall back to looking down -Z
		center = eye.Add(core.NewVec3(0, 0, -1))
	}

	camera := renderer.NewCamera(eye, center, up)
	if stmt.Fov > 0 {
		camera.Fov = stmt.Fov * math32.Pi / 180
	}
	return camera
}

func convertLight(stmt loaders.LightStatement) lights.Light {
	color := core.NewVec3(1, 1, 1)
	if stmt.Color != nil {
		color = toVec3(*stmt.Color)
	}
	intensity := stmt.Intensity
	if intensity == 0 {
		intensity = 1
	}
	return lights.NewLight(toVec3(stmt.Position), color, intensity)
}

func convertEnvironment(stmt loaders.EnvironmentStatement, textures *material.TextureSet) (lights.Environment, error) {
	switch stmt.Type {
	case "", "sky":
		return lights.NewProceduralSky(), nil
	case "solid":
		if stmt.Color == nil {
			return lights.NewNightBackground(), nil
		}
		return lights.NewSolidBackground(toVec3(*stmt.Color)), nil
	case "skybox":
		faces := lights.SkyboxFaces{
			Right:  material.TextureID(stmt.Faces["right"]),
			Left:   material.TextureID(stmt.Faces["left"]),
			Top:    material.TextureID(stmt.Faces["top"]),
			Bottom: material.TextureID(stmt.Faces["bottom"]),
			Back:   material.TextureID(stmt.Faces["back"]),
			Front:  material.TextureID(stmt.Faces["front"]),
		}
		skybox := lights.NewSkybox(faces, textures)
		if stmt.Color != nil {
			skybox.Fallback = toVec3(*stmt.Color)
		}
		return skybox, nil
	default:
		return nil, fmt.Errorf("unknown environment type %q", stmt.Type)
	}
}

func convertMaterial(stmt loaders.MaterialStatement) (material.Material, error) {
	var mat material.Material
	switch stmt.Preset {
	case "":
		mat = material.Black()
	case "matte":
		mat = material.NewMatte(core.NewVec3(0.8, 0.8, 0.8))
	case "mirror":
		mat = material.NewMirror(core.NewVec3(0.9, 0.9, 0.9))
	case "glass":
		mat = material.NewGlass(1.5)
	case "light":
		mat = material.NewLightMaterial(core.NewVec3(1, 1, 1))
	default:
		return material.Material{}, fmt.Errorf("unknown preset %q", stmt.Preset)
	}

	if stmt.Diffuse != nil {
		mat.Diffuse = toVec3(*stmt.Diffuse)
	}
	if stmt.Albedo != nil {
		mat.Albedo = *stmt.Albedo
	}
	if stmt.Specular != nil {
		mat.Specular = *stmt.Specular
	}
	if stmt.Reflectivity != nil {
		mat.Reflectivity = *stmt.Reflectivity
	}
	if stmt.Transparency != nil {
		mat.Transparency = *stmt.Transparency
	}
	if stmt.RefractiveIndex != nil {
		mat.RefractiveIndex = *stmt.RefractiveIndex
	}
	if stmt.Emission != nil {
		mat.Emission = toVec3(*stmt.Emission)
	}
	if stmt.Texture != "" {
		mat = mat.WithTexture(material.TextureID(stmt.Texture))
	}
	if stmt.NormalMap != "" {
		mat = mat.WithNormalMap(material.TextureID(stmt.NormalMap))
	}

	return mat, nil
}

func convertShape(stmt loaders.ShapeStatement, mat material.Material) (geometry.Shape, error) {
	switch stmt.Type {
	case "sphere":
		return geometry.NewSphere(toVec3(stmt.Center), stmt.Radius, mat), nil
	case "cube":
		if stmt.Size == nil {
			return nil, fmt.Errorf("cube needs a size")
		}
		return geometry.NewCube(toVec3(stmt.Center), toVec3(*stmt.Size), mat), nil
	default:
		return nil, fmt.Errorf("%w: %q", loaders.ErrUnsupportedShape, stmt.Type)
	}
}
