package material

import (
	"image/color"

	"github.com/chewxy/math32"
	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// NewCheckerboardTexture creates a procedural checkerboard pattern texture
func NewCheckerboardTexture(width, height, checkSize int, color1, color2 core.Vec3) *ImageTexture {
	pixels := make([]color.RGBA, width*height)
	c1 := core.Vec3ToColor(color1)
	c2 := core.Vec3ToColor(color2)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			// Alternate colors based on check position
			if (x/checkSize+y/checkSize)%2 == 0 {
				pixels[y*width+x] = c1
			} else {
				pixels[y*width+x] = c2
			}
		}
	}

	return NewImageTexture(width, height, pixels)
}

// NewUVDebugTexture creates a texture showing UV coordinates as colors
// U maps to red channel, V maps to green channel
func NewUVDebugTexture(width, height int) *ImageTexture {
	pixels := make([]color.RGBA, width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			u := float32(x) / float32(width-1)
			v := 1 - float32(y)/float32(height-1)
			pixels[y*width+x] = core.Vec3ToColor(core.NewVec3(u, v, 0))
		}
	}

	return NewImageTexture(width, height, pixels)
}

// NewGradientTexture creates a vertical gradient from color1 (top) to color2 (bottom)
func NewGradientTexture(width, height int, color1, color2 core.Vec3) *ImageTexture {
	pixels := make([]color.RGBA, width*height)

	for y := 0; y < height; y++ {
		t := float32(y) / float32(max(1, height-1))
		c := core.Vec3ToColor(color1.Lerp(color2, t))
		for x := 0; x < width; x++ {
			pixels[y*width+x] = c
		}
	}

	return NewImageTexture(width, height, pixels)
}

// NewRippleNormalMap creates a tangent-space normal map of concentric ripples.
// Strength scales the tilt of the normals; 0 gives a flat map.
func NewRippleNormalMap(width, height int, frequency, strength float32) *ImageTexture {
	pixels := make([]color.RGBA, width*height)
	cx := float32(width) / 2
	cy := float32(height) / 2

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			dx := (float32(x) - cx) / float32(width)
			dy := (float32(y) - cy) / float32(height)
			r := math32.Sqrt(dx*dx + dy*dy)

			// Height h = sin(2π f r); the normal tilts along the gradient of h
			slope := strength * math32.Cos(2*math32.Pi*frequency*r)
			var nx, ny float32
			if r > 0 {
				nx = -slope * dx / r
				ny = slope * dy / r
			}
			n := core.NewVec3(nx, ny, 1).Normalize()
			pixels[y*width+x] = encodeNormal(n)
		}
	}

	return NewImageTexture(width, height, pixels)
}

// NewFlatNormalMap creates a normal map that leaves normals unchanged
func NewFlatNormalMap(width, height int) *ImageTexture {
	pixels := make([]color.RGBA, width*height)
	flat := encodeNormal(core.NewVec3(0, 0, 1))
	for i := range pixels {
		pixels[i] = flat
	}
	return NewImageTexture(width, height, pixels)
}

func encodeNormal(n core.Vec3) color.RGBA {
	return core.Vec3ToColor(n.Add(core.NewVec3(1, 1, 1)).Multiply(0.5))
}
