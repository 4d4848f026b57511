package lightmap

import (
	"math"

	"github.com/amoffat/go-lightprobe/pkg/core"
)

// Bilinear samples the image at a continuous UV coordinate, blending the four
// pixels whose centers bound it. The boundary policy is edge-clamp: a UV that
// would reach past the first or last pixel center collapses the outer pixel
// onto the inner one, so coordinates at and beyond [0,1] never index outside
// the image. The image is never mutated.
func (img *Image) Bilinear(uv core.Vec2) core.Vec3 {
	width := float64(img.Width)
	height := float64(img.Height)

	pxX, pxY := 1.0/width, 1.0/height
	halfPxX, halfPxY := 1.0/(2*width), 1.0/(2*height)

	left := int(math.Ceil(width*(uv.X-halfPxX) - 1))
	right := int(math.Ceil(width*(uv.X+halfPxX) - 1))
	bottom := int(math.Ceil(height*(uv.Y-halfPxY) - 1))
	top := int(math.Ceil(height*(uv.Y+halfPxY) - 1))

	// How far the coordinate has traversed into the pixel, measured from the
	// left/bottom pixel center. Computed before clamping so the blend weights
	// stay continuous across the edge.
	lerpX := (uv.X - (float64(left)+0.5)/width) / pxX
	lerpY := (uv.Y - (float64(bottom)+0.5)/height) / pxY

	// Edge clamp. Collapsing the outer pixel onto the inner one only covers
	// coordinates within half a pixel of the border; farther out both indices
	// are out of range, so pin them to the border pixel afterwards.
	if right+1 > img.Width {
		right = left
	}
	if left < 0 {
		left = right
	}
	if top+1 > img.Height {
		top = bottom
	}
	if bottom < 0 {
		bottom = top
	}
	left = min(max(left, 0), img.Width-1)
	right = min(max(right, 0), img.Width-1)
	bottom = min(max(bottom, 0), img.Height-1)
	top = min(max(top, 0), img.Height-1)

	lowerLeft := img.At(left, bottom)
	lowerRight := img.At(right, bottom)
	upperRight := img.At(right, top)
	upperLeft := img.At(left, top)

	topColor := upperLeft.Lerp(upperRight, lerpX)
	bottomColor := lowerLeft.Lerp(lowerRight, lerpX)
	return bottomColor.Lerp(topColor, lerpY)
}
