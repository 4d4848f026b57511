// Package sh implements the real spherical harmonic basis for bands 0-2,
// used to project incident radiance at a probe into 9 RGB coefficients.
//
// Constants follow Ramamoorthi & Hanrahan, "An Efficient Representation for
// Irradiance Environment Maps" (http://cseweb.ucsd.edu/~ravir/papers/envmap/envmap.pdf).
package sh

import "math"

// Band holds one (l, m) index pair of the SH basis.
type Band struct {
	L, M int
}

// Bands lists the 9 basis functions for l <= 2 in a fixed evaluation order.
var Bands = []Band{
	{0, 0},
	{1, -1}, {1, 0}, {1, 1},
	{2, -2}, {2, -1}, {2, 0}, {2, 1}, {2, 2},
}

// Eval evaluates the real SH basis function (l, m) at zenith angle theta
// [0, pi] and azimuth angle phi [0, 2*pi). Indices outside bands 0-2 return 0.
func Eval(l, m int, theta, phi float64) float64 {
	sinTheta := math.Sin(theta)
	cosTheta := math.Cos(theta)
	sinPhi := math.Sin(phi)
	cosPhi := math.Cos(phi)

	switch {
	case l == 0 && m == 0:
		return 0.282095

	case l == 1 && m == -1:
		return 0.488603 * sinTheta * sinPhi
	case l == 1 && m == 0:
		return 0.488603 * cosTheta
	case l == 1 && m == 1:
		return 0.488603 * sinTheta * cosPhi

	case l == 2 && m == -2:
		return 1.092548 * sinTheta * cosPhi * sinTheta * sinPhi
	case l == 2 && m == -1:
		return 1.092548 * sinTheta * sinPhi * cosTheta
	case l == 2 && m == 0:
		return 0.315392 * (3*cosTheta*cosTheta - 1)
	case l == 2 && m == 1:
		return 1.092548 * sinTheta * cosPhi * cosTheta
	case l == 2 && m == 2:
		x := sinTheta * cosPhi
		y := sinTheta * sinPhi
		return 0.546274 * (x*x - y*y)
	}

	return 0
}
