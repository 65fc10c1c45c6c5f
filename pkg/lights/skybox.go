package lights

import (
	"github.com/chewxy/math32"
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// SkyboxFaces names the six textures of a skybox as seen from inside with the
// default camera looking down -Z
type SkyboxFaces struct {
	Right  material.TextureID // +X
	Left   material.TextureID // -X
	Top    material.TextureID // +Y
	Bottom material.TextureID // -Y
	Back   material.TextureID // +Z
	Front  material.TextureID // -Z
}

// IDs returns every face texture id
func (f SkyboxFaces) IDs() []material.TextureID {
	return []material.TextureID{f.Right, f.Left, f.Top, f.Bottom, f.Back, f.Front}
}

// Skybox samples one of six textures by the dominant axis of the direction.
// Directions that cannot be sampled fall back to Fallback.
type Skybox struct {
	Faces    SkyboxFaces
	Textures material.Textures
	Fallback core.Vec3
}

// NewSkybox creates a skybox over the given textures
func NewSkybox(faces SkyboxFaces, textures material.Textures) *Skybox {
	return &Skybox{Faces: faces, Textures: textures}
}

// Sample implements Environment
func (s *Skybox) Sample(direction core.Vec3) core.Vec3 {
	id, u, v, ok := s.faceUV(direction)
	if !ok {
		return s.Fallback
	}
	c, ok := s.Textures.Lookup(id, u, v)
	if !ok {
		return s.Fallback
	}
	return c
}

// faceUV selects the face for direction and projects onto it
func (s *Skybox) faceUV(d core.Vec3) (material.TextureID, float32, float32, bool) {
	ax, ay, az := math32.Abs(d.X), math32.Abs(d.Y), math32.Abs(d.Z)
	if !d.IsFinite() || (ax == 0 && ay == 0 && az == 0) {
		return material.NoTexture, 0, 0, false
	}

	switch {
	case ax >= ay && ax >= az:
		if d.X > 0 {
			return s.Faces.Right, remap(-d.Z / ax), remap(d.Y / ax), true
		}
		return s.Faces.Left, remap(d.Z / ax), remap(d.Y / ax), true
	case ay >= az:
		if d.Y > 0 {
			return s.Faces.Top, remap(d.X / ay), remap(d.Z / ay), true
		}
		return s.Faces.Bottom, remap(d.X / ay), remap(-d.Z / ay), true
	default:
		if d.Z > 0 {
			return s.Faces.Back, remap(-d.X / az), remap(d.Y / az), true
		}
		return s.Faces.Front, remap(d.X / az), remap(d.Y / az), true
	}
}

// remap maps [-1, 1] to [0, 1], keeping just inside the edge so nearest
// lookups never wrap onto the opposite side
func remap(c float32) float32 {
	return max(0, min(0.9999, 0.5*(c+1)))
}
