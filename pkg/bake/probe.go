// Package bake orchestrates a full probe bake pass: rendering each probe's
// lightmap through an opaque collaborator, projecting it to SH coefficients,
// building the spatial partition over the probe positions, and serializing
// the combined result for the downstream renderer.
package bake

import (
	"strings"

	"github.com/google/uuid"

	"github.com/amoffat/go-lightprobe/pkg/core"
	"github.com/amoffat/go-lightprobe/pkg/geometry"
	"github.com/amoffat/go-lightprobe/pkg/lightmap"
	"github.com/amoffat/go-lightprobe/pkg/sh"
)

// Probe id prefixes distinguish probe kinds among scene objects.
const (
	ProbePrefix   = "lightprobe-"
	CubemapPrefix = "cubemap_probe-"
)

// DefaultLightmapSize is the square lightmap resolution baked per probe.
const DefaultLightmapSize = 32

// Probe is one light sample point: a world position, the closed mesh its
// radiance is baked onto, and the SH coefficient set once baked. Coefficients
// are nil until BakeProbe succeeds and immutable afterwards until re-baked.
type Probe struct {
	ID       string // generated, ProbePrefix + random hex
	Name     string // optional display name, may be empty
	Position core.Vec3
	Mesh     *geometry.ProbeMesh
	Coeffs   sh.CoefficientSet
}

// NewProbe creates an unbaked probe with a generated id.
func NewProbe(position core.Vec3, mesh *geometry.ProbeMesh) *Probe {
	return &Probe{
		ID:       ProbePrefix + randomHex(),
		Position: position,
		Mesh:     mesh,
	}
}

// IsProbeID reports whether an object id names a light probe.
func IsProbeID(id string) bool {
	return strings.HasPrefix(id, ProbePrefix)
}

// IsCubemapID reports whether an object id names a cubemap probe.
func IsCubemapID(id string) bool {
	return strings.HasPrefix(id, CubemapPrefix)
}

func randomHex() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// Lightmapper is the opaque renderer collaborator that bakes incident light
// onto a probe's mesh surface and returns the lightmap image. samples is the
// renderer's quality knob, passed through untouched.
type Lightmapper interface {
	Bake(probe *Probe, samples int) (*lightmap.Image, error)
}
