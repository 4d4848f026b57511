package sh

import (
	"fmt"
	"sort"
	"strings"

	"github.com/amoffat/go-lightprobe/pkg/core"
)

// CoefficientSet maps band l, then order m, to an RGB coefficient triple.
// A complete set for bands 0-2 holds exactly 9 entries. The JSON shape is
// {"<l>": {"<m>": [r, g, b]}}; Go marshals the integer keys as strings.
type CoefficientSet map[int]map[int][3]float64

// NewCoefficientSet creates a zeroed set covering all 9 bands.
func NewCoefficientSet() CoefficientSet {
	cs := make(CoefficientSet, 3)
	for _, band := range Bands {
		if cs[band.L] == nil {
			cs[band.L] = make(map[int][3]float64, 2*band.L+1)
		}
		cs[band.L][band.M] = [3]float64{}
	}
	return cs
}

// Accumulate adds a weighted color into the (l, m) coefficient. Pairs outside
// the set's initialized bands are ignored, mirroring Eval's zero result
// outside bands 0-2.
func (cs CoefficientSet) Accumulate(l, m int, color core.Vec3, weight float64) {
	inner, ok := cs[l]
	if !ok {
		return
	}
	c, ok := inner[m]
	if !ok {
		return
	}
	c[0] += color.X * weight
	c[1] += color.Y * weight
	c[2] += color.Z * weight
	inner[m] = c
}

// Get returns the (l, m) coefficient as a color vector.
func (cs CoefficientSet) Get(l, m int) core.Vec3 {
	c := cs[l][m]
	return core.NewVec3(c[0], c[1], c[2])
}

// GLSLConstants formats the set as GLSL vec3 constant declarations, matching
// the naming used by the OpenGL Orange Book SH lighting shader (L00, L1m1, ...).
// Useful for pasting coefficients into a shader by hand when debugging.
func (cs CoefficientSet) GLSLConstants() string {
	var lines []string

	ls := make([]int, 0, len(cs))
	for l := range cs {
		ls = append(ls, l)
	}
	sort.Ints(ls)

	for _, l := range ls {
		ms := make([]int, 0, len(cs[l]))
		for m := range cs[l] {
			ms = append(ms, m)
		}
		sort.Ints(ms)

		for _, m := range ms {
			sign := ""
			if m < 0 {
				sign = "m"
			}
			c := cs[l][m]
			line := fmt.Sprintf("const vec3 L%d%s%d = vec3(%f, %f, %f);",
				l, sign, abs(m), c[0], c[1], c[2])
			lines = append(lines, line)
		}
	}

	return strings.Join(lines, "\n")
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
