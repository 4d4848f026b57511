// Package lightmap holds the baked float image a probe's radiance is read
// from, and the bilinear sampling used to look it up at arbitrary UVs.
package lightmap

import (
	"fmt"

	"github.com/amoffat/go-lightprobe/pkg/core"
)

// Image is a 2D floating point image with interleaved channels, row-major:
// the sample for channel c of pixel (x, y) lives at Pixels[(y*Width+x)*Channels+c].
// Baked lightmaps are power-of-two squares with at least 3 channels.
type Image struct {
	Width    int
	Height   int
	Channels int
	Pixels   []float64
}

// NewImage allocates a zeroed image buffer.
func NewImage(width, height, channels int) (*Image, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid image size %dx%d", width, height)
	}
	if channels < 3 {
		return nil, fmt.Errorf("lightmap needs at least 3 channels, got %d", channels)
	}
	return &Image{
		Width:    width,
		Height:   height,
		Channels: channels,
		Pixels:   make([]float64, width*height*channels),
	}, nil
}

// At returns the RGB value of the pixel at integer coordinates (x, y).
// Coordinates must be in bounds; samplers are responsible for clamping.
func (img *Image) At(x, y int) core.Vec3 {
	loc := (y*img.Width + x) * img.Channels
	return core.NewVec3(img.Pixels[loc], img.Pixels[loc+1], img.Pixels[loc+2])
}

// Set writes the RGB value of the pixel at (x, y), leaving any extra
// channels untouched.
func (img *Image) Set(x, y int, color core.Vec3) {
	loc := (y*img.Width + x) * img.Channels
	img.Pixels[loc] = color.X
	img.Pixels[loc+1] = color.Y
	img.Pixels[loc+2] = color.Z
}

// Fill sets every pixel to a constant color.
func (img *Image) Fill(color core.Vec3) {
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			img.Set(x, y, color)
		}
	}
}
