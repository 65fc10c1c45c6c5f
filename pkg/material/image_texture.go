package material

import (
	"image"
	"image/color"

	"github.com/chewxy/math32"
	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// ImageTexture provides color from a 2D image
type ImageTexture struct {
	Width  int
	Height int
	Pixels []color.RGBA // Row-major: Pixels[y*Width + x], row 0 at the top
}

// NewImageTexture creates a new image texture
func NewImageTexture(width, height int, pixels []color.RGBA) *ImageTexture {
	return &ImageTexture{
		Width:  width,
		Height: height,
		Pixels: pixels,
	}
}

// NewImageTextureFromRGBA copies an RGBA image into a texture
func NewImageTextureFromRGBA(img *image.RGBA) *ImageTexture {
	bounds := img.Bounds()
	pixels := make([]color.RGBA, 0, bounds.Dx()*bounds.Dy())
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			pixels = append(pixels, img.RGBAAt(x, y))
		}
	}
	return NewImageTexture(bounds.Dx(), bounds.Dy(), pixels)
}

// PixelAt returns the texel at integer pixel coordinates, clamped to the image
func (t *ImageTexture) PixelAt(x, y int) color.RGBA {
	x = max(0, min(t.Width-1, x))
	y = max(0, min(t.Height-1, y))
	return t.Pixels[y*t.Width+x]
}

// PixelCoords converts UV coordinates to the nearest pixel. UVs wrap, and
// V=0 is the bottom row.
func (t *ImageTexture) PixelCoords(u, v float32) (int, int) {
	u = wrap(u)
	v = wrap(v)

	x := int(u * float32(t.Width))
	y := int((1 - v) * float32(t.Height))
	return max(0, min(t.Width-1, x)), max(0, min(t.Height-1, y))
}

// Sample returns the linear color at UV using nearest-neighbor filtering
func (t *ImageTexture) Sample(u, v float32) core.Vec3 {
	x, y := t.PixelCoords(u, v)
	return core.ColorToVec3(t.PixelAt(x, y))
}

// SampleNormal decodes the texel at UV as a tangent-space normal
func (t *ImageTexture) SampleNormal(u, v float32) core.Vec3 {
	c := t.Sample(u, v)
	return core.NewVec3(c.X*2-1, c.Y*2-1, c.Z*2-1).Normalize()
}

// Image exposes the texture as an RGBA image
func (t *ImageTexture) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, t.Width, t.Height))
	for y := 0; y < t.Height; y++ {
		for x := 0; x < t.Width; x++ {
			img.SetRGBA(x, y, t.Pixels[y*t.Width+x])
		}
	}
	return img
}

func wrap(c float32) float32 {
	if math32.IsNaN(c) || math32.IsInf(c, 0) {
		return 0
	}
	c -= math32.Floor(c)
	return c
}
