package core

import (
	"image/color"

	"github.com/chewxy/math32"
)

// Vec3ToColor converts a linear color to RGBA. Each channel is clamped to
// [0, 1] before scaling, so over-bright results saturate at 255. NaN channels
// become 0.
func Vec3ToColor(v Vec3) color.RGBA {
	return color.RGBA{
		R: channelToByte(v.X),
		G: channelToByte(v.Y),
		B: channelToByte(v.Z),
		A: 255,
	}
}

// ColorToVec3 converts an RGBA color to a linear color in [0, 1]. Alpha is
// dropped, so a round trip through Vec3ToColor is only exact for opaque colors.
func ColorToVec3(c color.RGBA) Vec3 {
	return Vec3{
		X: float32(c.R) / 255,
		Y: float32(c.G) / 255,
		Z: float32(c.B) / 255,
	}
}

func channelToByte(c float32) uint8 {
	if math32.IsNaN(c) || c <= 0 {
		return 0
	}
	if c >= 1 {
		return 255
	}
	return uint8(c*255 + 0.5)
}
