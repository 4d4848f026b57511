// Package delaunay builds the tetrahedral spatial partition over probe
// positions and the face-adjacency graph between its cells. The downstream
// renderer walks this structure to locate the enclosing tetrahedron of a
// query point and blend its four probes.
package delaunay

import (
	"errors"
	"fmt"
	"math"

	"github.com/golang/geo/r3"

	"github.com/amoffat/go-lightprobe/pkg/core"
)

// ErrTooFewPoints indicates fewer than the 4 points a tetrahedralization needs.
var ErrTooFewPoints = errors.New("tetrahedralization needs at least 4 points")

// ErrDegenerate indicates the input points are all coplanar or collinear, so
// no tetrahedron can be formed.
var ErrDegenerate = errors.New("points are degenerate (coplanar or collinear)")

// Simplex is one tetrahedron of the partition: four indices into the probe
// position list. The index order is implementation-defined but stable for the
// lifetime of one computed partition.
type Simplex [4]int

// circumEps guards the circumsphere solve against near-flat tetrahedra.
const circumEps = 1e-12

type tetra struct {
	verts   Simplex
	center  r3.Vector
	radius2 float64
}

// Tetrahedralize computes a Delaunay tetrahedralization of the given points
// using incremental Bowyer-Watson insertion. Probe counts are small (tens to
// low hundreds), so the simple O(n * tetras) insertion scan is fine.
func Tetrahedralize(points []core.Vec3) ([]Simplex, error) {
	if len(points) < 4 {
		return nil, ErrTooFewPoints
	}

	verts := toR3(points)

	// Super-tetrahedron enclosing all points by a wide margin. Its four
	// vertices are appended after the real points and stripped at the end.
	lo, hi := bounds(verts)
	center := lo.Add(hi).Mul(0.5)
	radius := hi.Sub(lo).Norm()*0.5 + 1
	const margin = 1e4
	n := len(verts)
	verts = append(verts,
		center.Add(r3.Vector{X: 1, Y: 1, Z: 1}.Mul(margin*radius)),
		center.Add(r3.Vector{X: -1, Y: -1, Z: 1}.Mul(margin*radius)),
		center.Add(r3.Vector{X: -1, Y: 1, Z: -1}.Mul(margin*radius)),
		center.Add(r3.Vector{X: 1, Y: -1, Z: -1}.Mul(margin*radius)),
	)

	super, ok := newTetra(verts, Simplex{n, n + 1, n + 2, n + 3})
	if !ok {
		// Cannot happen with the fixed super vertices
		return nil, ErrDegenerate
	}
	tetras := []tetra{super}

	for p := 0; p < n; p++ {
		point := verts[p]

		// Tetrahedra whose circumsphere contains the new point die, and the
		// boundary faces of the resulting cavity are re-joined to the point.
		faceCount := make(map[[3]int]int)
		survivors := tetras[:0]
		for _, t := range tetras {
			if t.contains(point) {
				for _, f := range t.faces() {
					faceCount[f]++
				}
			} else {
				survivors = append(survivors, t)
			}
		}
		tetras = survivors

		for f, count := range faceCount {
			// Faces shared by two dead tetrahedra are interior to the cavity
			if count != 1 {
				continue
			}
			if t, ok := newTetra(verts, Simplex{f[0], f[1], f[2], p}); ok {
				tetras = append(tetras, t)
			}
		}
	}

	// Strip everything still attached to the super-tetrahedron
	var simplices []Simplex
	for _, t := range tetras {
		if t.verts[0] >= n || t.verts[1] >= n || t.verts[2] >= n || t.verts[3] >= n {
			continue
		}
		simplices = append(simplices, t.verts)
	}

	if len(simplices) == 0 {
		return nil, ErrDegenerate
	}
	return simplices, nil
}

// newTetra precomputes the circumsphere of a candidate tetrahedron. Returns
// ok=false for a flat (zero volume) vertex set.
func newTetra(verts []r3.Vector, s Simplex) (tetra, bool) {
	a := verts[s[0]]
	ba := verts[s[1]].Sub(a)
	ca := verts[s[2]].Sub(a)
	da := verts[s[3]].Sub(a)

	denom := 2 * ba.Dot(ca.Cross(da))
	scale := math.Max(ba.Norm2(), math.Max(ca.Norm2(), da.Norm2()))
	if math.Abs(denom) < circumEps*scale {
		return tetra{}, false
	}

	offset := ca.Cross(da).Mul(ba.Norm2()).
		Add(da.Cross(ba).Mul(ca.Norm2())).
		Add(ba.Cross(ca).Mul(da.Norm2())).
		Mul(1 / denom)

	return tetra{
		verts:   s,
		center:  a.Add(offset),
		radius2: offset.Norm2(),
	}, true
}

// contains reports whether the point lies inside the circumsphere.
func (t *tetra) contains(p r3.Vector) bool {
	return p.Sub(t.center).Norm2() < t.radius2*(1+1e-12)
}

// faces returns the four triangular faces as sorted index triples, keyed for
// cavity boundary counting. Face k is the face opposite vertex k.
func (t *tetra) faces() [4][3]int {
	v := t.verts
	return [4][3]int{
		sortedFace(v[1], v[2], v[3]),
		sortedFace(v[0], v[2], v[3]),
		sortedFace(v[0], v[1], v[3]),
		sortedFace(v[0], v[1], v[2]),
	}
}

func sortedFace(a, b, c int) [3]int {
	if a > b {
		a, b = b, a
	}
	if b > c {
		b, c = c, b
	}
	if a > b {
		a, b = b, a
	}
	return [3]int{a, b, c}
}

// toR3 converts probe positions to r3 vectors, with room appended for the
// four super-tetrahedron vertices.
func toR3(points []core.Vec3) []r3.Vector {
	verts := make([]r3.Vector, len(points), len(points)+4)
	for i, p := range points {
		verts[i] = r3.Vector{X: p.X, Y: p.Y, Z: p.Z}
	}
	return verts
}

func bounds(verts []r3.Vector) (lo, hi r3.Vector) {
	lo, hi = verts[0], verts[0]
	for _, v := range verts[1:] {
		lo.X = math.Min(lo.X, v.X)
		lo.Y = math.Min(lo.Y, v.Y)
		lo.Z = math.Min(lo.Z, v.Z)
		hi.X = math.Max(hi.X, v.X)
		hi.Y = math.Max(hi.Y, v.Y)
		hi.Z = math.Max(hi.Z, v.Z)
	}
	return lo, hi
}

// String formats a simplex for error messages.
func (s Simplex) String() string {
	return fmt.Sprintf("[%d %d %d %d]", s[0], s[1], s[2], s[3])
}
