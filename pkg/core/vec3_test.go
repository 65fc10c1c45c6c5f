package core

import (
	"image/color"
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
)

func TestVec3_Cross(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Vec3
		expected Vec3
	}{
		{"x cross y", NewVec3(1, 0, 0), NewVec3(0, 1, 0), NewVec3(0, 0, 1)},
		{"y cross z", NewVec3(0, 1, 0), NewVec3(0, 0, 1), NewVec3(1, 0, 0)},
		{"z cross x", NewVec3(0, 0, 1), NewVec3(1, 0, 0), NewVec3(0, 1, 0)},
		{"parallel", NewVec3(2, 0, 0), NewVec3(5, 0, 0), NewVec3(0, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.a.Cross(tt.b))
		})
	}
}

func TestVec3_Normalize(t *testing.T) {
	v := NewVec3(3, 4, 0).Normalize()
	assert.InDelta(t, 1.0, v.Length(), 1e-6)
	assert.InDelta(t, 0.6, v.X, 1e-6)
	assert.InDelta(t, 0.8, v.Y, 1e-6)

	// Zero vector stays zero instead of producing NaN
	zero := Vec3{}.Normalize()
	assert.True(t, zero.IsZero())
	assert.True(t, zero.IsFinite())
}

func TestVec3_Arithmetic(t *testing.T) {
	a := NewVec3(1, 2, 3)
	b := NewVec3(4, 5, 6)

	assert.Equal(t, NewVec3(5, 7, 9), a.Add(b))
	assert.Equal(t, NewVec3(-3, -3, -3), a.Subtract(b))
	assert.Equal(t, NewVec3(2, 4, 6), a.Multiply(2))
	assert.Equal(t, NewVec3(4, 10, 18), a.MultiplyVec(b))
	assert.Equal(t, float32(32), a.Dot(b))
	assert.Equal(t, NewVec3(-1, -2, -3), a.Negate())
	assert.Equal(t, Vec3{}, a.Divide(0))
	assert.Equal(t, NewVec3(0, 1, 1), NewVec3(-1, 1, 5).Clamp(0, 1))
	assert.Equal(t, NewVec3(2.5, 3.5, 4.5), a.Lerp(b, 0.5))
	assert.Equal(t, float32(2), a.Axis(1))
}

func TestVec3_IsFinite(t *testing.T) {
	assert.True(t, NewVec3(1, -2, 3).IsFinite())
	assert.False(t, NewVec3(math32.NaN(), 0, 0).IsFinite())
	assert.False(t, NewVec3(0, math32.Inf(1), 0).IsFinite())
}

func TestColorRoundTrip(t *testing.T) {
	// Every in-range channel value must survive the round trip
	for i := 0; i < 256; i++ {
		c := color.RGBA{R: uint8(i), G: uint8(255 - i), B: uint8(i / 2), A: 255}
		assert.Equal(t, c, Vec3ToColor(ColorToVec3(c)), "channel value %d", i)
	}

	// Translucent colors come back opaque
	translucent := color.RGBA{R: 10, G: 20, B: 30, A: 128}
	assert.Equal(t, color.RGBA{R: 10, G: 20, B: 30, A: 255}, Vec3ToColor(ColorToVec3(translucent)))
}

func TestVec3ToColor_Clamping(t *testing.T) {
	tests := []struct {
		name     string
		input    Vec3
		expected color.RGBA
	}{
		{"over-bright saturates", NewVec3(2.5, 1.0001, 10), color.RGBA{255, 255, 255, 255}},
		{"negative clamps to zero", NewVec3(-1, -0.01, 0), color.RGBA{0, 0, 0, 255}},
		{"NaN becomes zero", NewVec3(math32.NaN(), 0.5, 1), color.RGBA{0, 128, 255, 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Vec3ToColor(tt.input))
		})
	}
}

func TestRay_At(t *testing.T) {
	ray := NewRay(NewVec3(0, 0, 5), NewVec3(0, 0, -1))
	assert.Equal(t, NewVec3(0, 0, 1), ray.At(4))
}
