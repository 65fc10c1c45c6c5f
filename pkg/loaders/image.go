package loaders

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // GIF decoder
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"io"
	"os"
	"runtime"
	"sync"

	"github.com/df07/go-whitted-raytracer/pkg/material"
	_ "golang.org/x/image/bmp"  // BMP decoder
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff" // TIFF decoder
	_ "golang.org/x/image/webp" // WebP decoder
	"golang.org/x/sync/errgroup"
)

// ErrEmptyImage is returned for images without any pixels
var ErrEmptyImage = errors.New("image has no pixels")

// LoadImage loads an image file (PNG, JPEG, GIF, BMP, TIFF or WebP) as a texture
func LoadImage(filename string) (*material.ImageTexture, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	texture, _, err := DecodeImage(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return texture, nil
}

// DecodeImage decodes an image from r and returns it with the detected format
func DecodeImage(r io.Reader) (*material.ImageTexture, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	if bounds.Empty() {
		return nil, format, ErrEmptyImage
	}

	// Normalize every source format to 8-bit RGBA with row 0 at the top
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)

	return material.NewImageTextureFromRGBA(rgba), format, nil
}

// Downscale shrinks a texture so neither side exceeds maxSize, keeping the
// aspect ratio. Textures already small enough are returned unchanged.
func Downscale(texture *material.ImageTexture, maxSize int) *material.ImageTexture {
	if maxSize <= 0 || (texture.Width <= maxSize && texture.Height <= maxSize) {
		return texture
	}

	width, height := maxSize, maxSize
	if texture.Width > texture.Height {
		height = max(1, texture.Height*maxSize/texture.Width)
	} else {
		width = max(1, texture.Width*maxSize/texture.Height)
	}

	src := texture.Image()
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)

	return material.NewImageTextureFromRGBA(dst)
}

// LoadTextures loads every file in paths concurrently into a texture set.
// Textures larger than maxSize on either side are downscaled; maxSize <= 0
// keeps the original size. The first failure cancels the remaining loads.
func LoadTextures(ctx context.Context, paths map[material.TextureID]string, maxSize int) (*material.TextureSet, error) {
	textures := material.NewTextureSet()
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for id, path := range paths {
		id, path := id, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			texture, err := LoadImage(path)
			if err != nil {
				return fmt.Errorf("texture %q: %w", id, err)
			}
			texture = Downscale(texture, maxSize)

			mu.Lock()
			textures.Add(id, texture)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return textures, nil
}
