package material

import (
	"sort"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Textures is the read-only texture collaborator consumed by the tracer.
// Lookups take UV coordinates in [0, 1] and sample the nearest pixel.
type Textures interface {
	// Has reports whether id names a known texture
	Has(id TextureID) bool
	// Lookup returns the linear color at UV, false if id is unknown
	Lookup(id TextureID, u, v float32) (core.Vec3, bool)
	// NormalLookup returns the tangent-space normal at UV, false if id is unknown
	NormalLookup(id TextureID, u, v float32) (core.Vec3, bool)
}

// TextureSet is an in-memory Textures keyed by id. It must not be modified
// while a render pass is running.
type TextureSet struct {
	textures map[TextureID]*ImageTexture
}

// NewTextureSet creates an empty texture set
func NewTextureSet() *TextureSet {
	return &TextureSet{textures: make(map[TextureID]*ImageTexture)}
}

// Add registers a texture under id, replacing any previous one
func (ts *TextureSet) Add(id TextureID, texture *ImageTexture) {
	ts.textures[id] = texture
}

// Get returns the texture registered under id
func (ts *TextureSet) Get(id TextureID) (*ImageTexture, bool) {
	if ts == nil {
		return nil, false
	}
	texture, ok := ts.textures[id]
	return texture, ok
}

// IDs returns the registered ids in sorted order
func (ts *TextureSet) IDs() []TextureID {
	ids := make([]TextureID, 0, len(ts.textures))
	for id := range ts.textures {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Has implements Textures
func (ts *TextureSet) Has(id TextureID) bool {
	_, ok := ts.Get(id)
	return ok
}

// Lookup implements Textures
func (ts *TextureSet) Lookup(id TextureID, u, v float32) (core.Vec3, bool) {
	texture, ok := ts.Get(id)
	if !ok {
		return core.Vec3{}, false
	}
	return texture.Sample(u, v), true
}

// NormalLookup implements Textures
func (ts *TextureSet) NormalLookup(id TextureID, u, v float32) (core.Vec3, bool) {
	texture, ok := ts.Get(id)
	if !ok {
		return core.Vec3{}, false
	}
	return texture.SampleNormal(u, v), true
}
