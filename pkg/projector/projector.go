// Package projector estimates the 9 spherical harmonic coefficients that
// reconstruct incident radiance at a probe, by casting rays from the probe
// center against its baked lightmapped mesh over a discretized sphere of
// directions.
package projector

import (
	"errors"
	"fmt"
	"math"

	"github.com/amoffat/go-lightprobe/pkg/core"
	"github.com/amoffat/go-lightprobe/pkg/geometry"
	"github.com/amoffat/go-lightprobe/pkg/lightmap"
	"github.com/amoffat/go-lightprobe/pkg/sh"
)

// RayScale extends sample rays well past the probe mesh surface so the
// intersection test cannot fall short of it.
const RayScale = 100.0

// FailsafeOffset perturbs a ray that found no face, which happens when it
// aligns exactly with a mesh vertex. One retry is allowed; a second miss is a
// malformed mesh.
const FailsafeOffset = 1e-5

// ErrNoIntersection is returned when a sample ray misses every face of the
// probe mesh even after the failsafe retry. It means the mesh is not closed
// around the probe center and the probe's bake cannot proceed.
var ErrNoIntersection = errors.New("sample ray found no intersecting face after retry")

// Config holds the direction-space sampling resolutions. Zenith angles are
// sampled at theta_i = pi*i/ThetaRes over [0, pi); azimuth at
// phi_j = 2*pi*j/PhiRes over [0, 2*pi). Coefficient accuracy scales with
// resolution; the projection is a Riemann sum, not an exact quadrature.
type Config struct {
	thetaRes int
	phiRes   int
}

// DefaultConfig returns the sampling resolutions used by the original bake
// settings: 10 zenith by 20 azimuth samples.
func DefaultConfig() Config {
	return Config{thetaRes: 10, phiRes: 20}
}

// SetThetaRes sets the zenith sample count.
// Precondition: any value. Postcondition: resolution clamped to at least 1.
func (c *Config) SetThetaRes(n int) {
	c.thetaRes = max(1, n)
}

// SetPhiRes sets the azimuth sample count.
// Precondition: any value. Postcondition: resolution clamped to at least 1.
func (c *Config) SetPhiRes(n int) {
	c.phiRes = max(1, n)
}

// ThetaRes returns the zenith sample count.
func (c *Config) ThetaRes() int { return c.thetaRes }

// PhiRes returns the azimuth sample count.
func (c *Config) PhiRes() int { return c.phiRes }

// Project integrates the lightmapped radiance over the sphere of directions
// and returns the complete coefficient set for bands 0-2. There is no partial
// result: an intersection failure beyond the single failsafe retry aborts the
// whole projection with ErrNoIntersection.
func Project(mesh *geometry.ProbeMesh, lm *lightmap.Image, cfg Config) (sh.CoefficientSet, error) {
	if mesh == nil || len(mesh.Triangles) == 0 {
		return nil, geometry.ErrNoTriangles
	}

	coeffs := sh.NewCoefficientSet()
	norm := float64(cfg.thetaRes * cfg.phiRes)

	for i := 0; i < cfg.thetaRes; i++ {
		theta := math.Pi * float64(i) / float64(cfg.thetaRes)
		for j := 0; j < cfg.phiRes; j++ {
			phi := 2 * math.Pi * float64(j) / float64(cfg.phiRes)

			color, err := sampleRadiance(mesh, lm, theta, phi)
			if err != nil {
				return nil, fmt.Errorf("direction (theta=%f, phi=%f): %w", theta, phi, err)
			}

			// One pass accumulates all 9 coefficients, weighted by the
			// spherical Jacobian sin(theta).
			weight := math.Sin(theta) / norm
			for _, band := range sh.Bands {
				basis := sh.Eval(band.L, band.M, theta, phi)
				coeffs.Accumulate(band.L, band.M, color, basis*weight)
			}
		}
	}

	return coeffs, nil
}

// sampleRadiance casts a ray out from the probe center along (theta, phi) and
// bilinearly samples the lightmap where it lands.
func sampleRadiance(mesh *geometry.ProbeMesh, lm *lightmap.Image, theta, phi float64) (core.Vec3, error) {
	dir := AngleToRay(theta, phi).Multiply(RayScale)
	ray := core.NewRay(core.Vec3{}, dir)

	idx, bary, ok := mesh.Intersect(ray)
	if !ok {
		// The ray may align exactly with a vertex. Nudge it and retry once.
		dir.X += FailsafeOffset
		dir.Y += FailsafeOffset
		dir.Z += FailsafeOffset
		ray = core.NewRay(core.Vec3{}, dir)

		idx, bary, ok = mesh.Intersect(ray)
		if !ok {
			return core.Vec3{}, ErrNoIntersection
		}
	}

	uv := mesh.Triangles[idx].UVAt(bary)
	return lm.Bilinear(uv), nil
}

// AngleToRay converts spherical coordinates to a unit cartesian direction.
// Theta is the zenith angle from +Z, phi the azimuth from +X toward +Y.
func AngleToRay(theta, phi float64) core.Vec3 {
	return core.NewVec3(
		math.Sin(theta)*math.Cos(phi),
		math.Sin(theta)*math.Sin(phi),
		math.Cos(theta),
	).Normalize()
}
