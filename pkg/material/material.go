package material

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// TextureID names a texture held by a Textures collaborator. The zero value
// means "no texture".
type TextureID string

// NoTexture is the TextureID of a material without a texture.
const NoTexture TextureID = ""

// Material holds the optical properties of a surface. Materials are small
// values and are copied into every intersection, never shared by reference.
type Material struct {
	Diffuse         core.Vec3  // Base color, used when Texture is unset
	Albedo          [2]float32 // [diffuse weight, specular weight]; need not sum to 1
	Specular        float32    // Phong exponent
	Reflectivity    float32    // Mirror contribution in [0, 1]
	Transparency    float32    // Refracted contribution in [0, 1]
	RefractiveIndex float32    // Index of refraction relative to air
	Texture         TextureID  // Diffuse texture, NoTexture if unset
	NormalMap       TextureID  // Tangent-space normal map, NoTexture if unset
	Emission        core.Vec3  // Self-emitted radiance, zero for non-emissive surfaces
}

// NewMaterial creates an untextured, non-emissive material
func NewMaterial(diffuse core.Vec3, albedo [2]float32, specular, reflectivity, transparency, refractiveIndex float32) Material {
	return Material{
		Diffuse:         diffuse,
		Albedo:          albedo,
		Specular:        specular,
		Reflectivity:    reflectivity,
		Transparency:    transparency,
		RefractiveIndex: refractiveIndex,
	}
}

// Black returns the default material: black, non-reflective, opaque.
func Black() Material {
	return Material{
		RefractiveIndex: 1,
	}
}

// NewMatte creates a purely diffuse material
func NewMatte(diffuse core.Vec3) Material {
	return NewMaterial(diffuse, [2]float32{0.9, 0.1}, 10, 0, 0, 1)
}

// NewMirror creates a perfect mirror with a faint diffuse base
func NewMirror(tint core.Vec3) Material {
	return NewMaterial(tint, [2]float32{0.05, 0.6}, 1200, 1, 0, 1)
}

// NewGlass creates a clear dielectric with the given refractive index
func NewGlass(refractiveIndex float32) Material {
	return NewMaterial(core.NewVec3(0.9, 0.95, 1), [2]float32{0.05, 0.5}, 125, 0.1, 0.9, refractiveIndex)
}

// NewLightMaterial creates an emissive material
func NewLightMaterial(emission core.Vec3) Material {
	m := Black()
	m.Diffuse = emission.Normalize()
	m.Emission = emission
	return m
}

// WithTexture returns a copy of m that samples its diffuse color from id
func (m Material) WithTexture(id TextureID) Material {
	m.Texture = id
	return m
}

// WithNormalMap returns a copy of m that perturbs normals with id
func (m Material) WithNormalMap(id TextureID) Material {
	m.NormalMap = id
	return m
}

// WithEmission returns a copy of m that emits the given radiance
func (m Material) WithEmission(emission core.Vec3) Material {
	m.Emission = emission
	return m
}

// IsEmissive reports whether the material emits light
func (m Material) IsEmissive() bool {
	return !m.Emission.IsZero()
}

// HasTexture reports whether the diffuse color comes from a texture
func (m Material) HasTexture() bool {
	return m.Texture != NoTexture
}

// HasNormalMap reports whether the material perturbs surface normals
func (m Material) HasNormalMap() bool {
	return m.NormalMap != NoTexture
}
