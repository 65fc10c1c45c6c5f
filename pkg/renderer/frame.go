package renderer

import (
	"image"
	"image/color"
)

// Frame is a rendered image stored row-major, pixel (x, y) at x + y*Width.
// Row 0 is the top of the image.
type Frame struct {
	Width  int
	Height int
	Pixels []color.RGBA
}

// NewFrame allocates a black frame
func NewFrame(width, height int) *Frame {
	return &Frame{
		Width:  width,
		Height: height,
		Pixels: make([]color.RGBA, width*height),
	}
}

// At returns the pixel at (x, y)
func (f *Frame) At(x, y int) color.RGBA {
	return f.Pixels[x+y*f.Width]
}

// Set writes the pixel at (x, y)
func (f *Frame) Set(x, y int, c color.RGBA) {
	f.Pixels[x+y*f.Width] = c
}

// Row returns the slice of pixels in row y
func (f *Frame) Row(y int) []color.RGBA {
	start := y * f.Width
	return f.Pixels[start : start+f.Width]
}

// Bytes returns the frame as tightly packed RGBA bytes, ready for upload to a
// display surface
func (f *Frame) Bytes() []byte {
	buf := make([]byte, 4*len(f.Pixels))
	for i, p := range f.Pixels {
		buf[4*i] = p.R
		buf[4*i+1] = p.G
		buf[4*i+2] = p.B
		buf[4*i+3] = p.A
	}
	return buf
}

// Image returns a copy of the frame as an image.RGBA
func (f *Frame) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	copy(img.Pix, f.Bytes())
	return img
}
