package bake

import (
	"errors"
	"math"
	"testing"

	"github.com/amoffat/go-lightprobe/pkg/core"
	"github.com/amoffat/go-lightprobe/pkg/geometry"
	"github.com/amoffat/go-lightprobe/pkg/lightmap"
)

// fakeLightmapper returns a constant-fill lightmap, or an error for probe ids
// listed in failIDs.
type fakeLightmapper struct {
	fill    core.Vec3
	failIDs map[string]bool
	baked   []string
}

func (fl *fakeLightmapper) Bake(probe *Probe, samples int) (*lightmap.Image, error) {
	fl.baked = append(fl.baked, probe.ID)
	if fl.failIDs[probe.ID] {
		return nil, errors.New("render backend exploded")
	}
	img, err := lightmap.NewImage(4, 4, 3)
	if err != nil {
		return nil, err
	}
	img.Fill(fl.fill)
	return img, nil
}

func testProbes(n int) []*Probe {
	positions := []core.Vec3{
		core.NewVec3(0, 0, 0),
		core.NewVec3(1, 0, 0),
		core.NewVec3(0, 1, 0),
		core.NewVec3(0, 0, 1),
		core.NewVec3(1, 1, 1),
	}
	probes := make([]*Probe, n)
	for i := range probes {
		probes[i] = NewProbe(positions[i], geometry.NewIcosphere(1, 1.0))
	}
	return probes
}

func TestNewProbeGeneratesUniqueIDs(t *testing.T) {
	a := NewProbe(core.NewVec3(0, 0, 0), nil)
	b := NewProbe(core.NewVec3(0, 0, 0), nil)

	if !IsProbeID(a.ID) || !IsProbeID(b.ID) {
		t.Errorf("probe ids missing prefix: %s, %s", a.ID, b.ID)
	}
	if a.ID == b.ID {
		t.Errorf("two probes got the same id %s", a.ID)
	}
	if IsCubemapID(a.ID) {
		t.Errorf("%s should not read as a cubemap id", a.ID)
	}
	if !IsCubemapID(CubemapPrefix + "abc") {
		t.Error("cubemap prefix not recognized")
	}
}

func TestBakeProbeSetsCoefficients(t *testing.T) {
	baker := NewBaker(&fakeLightmapper{fill: core.NewVec3(2, 2, 2)})
	baker.Logger = &core.NopLogger{}
	probe := testProbes(1)[0]

	if err := baker.BakeProbe(probe); err != nil {
		t.Fatalf("BakeProbe failed: %v", err)
	}
	if probe.Coeffs == nil {
		t.Fatal("expected coefficients after bake")
	}

	// Constant radiance projects almost entirely onto the ambient band.
	l00 := probe.Coeffs.Get(0, 0)
	if l00.X < 0.3 {
		t.Errorf("ambient band suspiciously small: %v", l00)
	}
	l11 := probe.Coeffs.Get(1, 1)
	if math.Abs(l11.X) > 0.01 {
		t.Errorf("directional band should vanish for constant radiance, got %v", l11)
	}
}

func TestBakeProbeFailureLeavesCoefficientsNil(t *testing.T) {
	probe := testProbes(1)[0]
	lm := &fakeLightmapper{failIDs: map[string]bool{probe.ID: true}}
	baker := NewBaker(lm)
	baker.Logger = &core.NopLogger{}

	if err := baker.BakeProbe(probe); err == nil {
		t.Fatal("expected bake error")
	}
	if probe.Coeffs != nil {
		t.Error("failed bake should not set coefficients")
	}
}

func TestBakeAllBuildsDocument(t *testing.T) {
	baker := NewBaker(&fakeLightmapper{fill: core.NewVec3(1, 1, 1)})
	baker.Logger = &core.NopLogger{}
	baker.UnitScale = 2.0
	probes := testProbes(4)

	result, err := baker.BakeAll(probes)
	if err != nil {
		t.Fatalf("BakeAll failed: %v", err)
	}
	if len(result.Failed) != 0 {
		t.Errorf("expected no failures, got %v", result.Failed)
	}

	doc := result.Document
	if doc == nil {
		t.Fatal("expected a document")
	}
	if len(doc.Probes) != 4 {
		t.Fatalf("expected 4 probe records, got %d", len(doc.Probes))
	}
	// Positions carry the unit scale
	if doc.Probes[1].Loc != [3]float64{2, 0, 0} {
		t.Errorf("expected scaled loc [2 0 0], got %v", doc.Probes[1].Loc)
	}
	// Four non-coplanar points form exactly one tetrahedron, all faces boundary
	if len(doc.Simplices) != 1 {
		t.Fatalf("expected 1 simplex, got %d", len(doc.Simplices))
	}
	for i, n := range doc.Neighbors[0] {
		if n != nil {
			t.Errorf("face %d: expected boundary (null), got %d", i, *n)
		}
	}
}

func TestBakeAllContinuesPastFailures(t *testing.T) {
	probes := testProbes(5)
	lm := &fakeLightmapper{
		fill:    core.NewVec3(1, 1, 1),
		failIDs: map[string]bool{probes[2].ID: true},
	}
	baker := NewBaker(lm)
	baker.Logger = &core.NopLogger{}

	result, err := baker.BakeAll(probes)
	if err != nil {
		t.Fatalf("BakeAll failed: %v", err)
	}

	if len(lm.baked) != 5 {
		t.Errorf("expected all 5 probes attempted, got %d", len(lm.baked))
	}
	if len(result.Failed) != 1 || result.Failed[probes[2].ID] == nil {
		t.Errorf("expected exactly probe %s in Failed, got %v", probes[2].ID, result.Failed)
	}
	if len(result.Document.Probes) != 4 {
		t.Errorf("expected 4 probes in document, got %d", len(result.Document.Probes))
	}
}

func TestBakeAllAllProbesFail(t *testing.T) {
	probes := testProbes(3)
	failIDs := make(map[string]bool)
	for _, p := range probes {
		failIDs[p.ID] = true
	}
	baker := NewBaker(&fakeLightmapper{failIDs: failIDs})
	baker.Logger = &core.NopLogger{}

	result, err := baker.BakeAll(probes)
	if !errors.Is(err, ErrNoProbesBaked) {
		t.Fatalf("expected ErrNoProbesBaked, got %v", err)
	}
	if len(result.Failed) != 3 {
		t.Errorf("expected 3 failures, got %d", len(result.Failed))
	}
}

type recordingHooks struct {
	preProbes int
	postDoc   *Document
	postCtx   interface{}
	preErr    error
	postErr   error
}

func (rh *recordingHooks) PreBake(probes []*Probe) (interface{}, error) {
	rh.preProbes = len(probes)
	return "token", rh.preErr
}

func (rh *recordingHooks) PostBake(doc *Document, ctx interface{}) error {
	rh.postDoc = doc
	rh.postCtx = ctx
	return rh.postErr
}

func TestHooksBracketThePass(t *testing.T) {
	hooks := &recordingHooks{}
	baker := NewBaker(&fakeLightmapper{fill: core.NewVec3(1, 1, 1)})
	baker.Logger = &core.NopLogger{}
	baker.Hooks = hooks

	result, err := baker.BakeAll(testProbes(4))
	if err != nil {
		t.Fatalf("BakeAll failed: %v", err)
	}
	if hooks.preProbes != 4 {
		t.Errorf("pre-bake hook saw %d probes, expected 4", hooks.preProbes)
	}
	if hooks.postDoc != result.Document {
		t.Error("post-bake hook got a different document")
	}
	if hooks.postCtx != "token" {
		t.Errorf("context not threaded through, got %v", hooks.postCtx)
	}
}

func TestPreBakeHookErrorAbortsPass(t *testing.T) {
	hookErr := errors.New("host said no")
	lm := &fakeLightmapper{fill: core.NewVec3(1, 1, 1)}
	baker := NewBaker(lm)
	baker.Logger = &core.NopLogger{}
	baker.Hooks = &recordingHooks{preErr: hookErr}

	if _, err := baker.BakeAll(testProbes(4)); !errors.Is(err, hookErr) {
		t.Fatalf("expected hook error, got %v", err)
	}
	if len(lm.baked) != 0 {
		t.Errorf("no probe should bake after a pre-bake hook error, %d did", len(lm.baked))
	}
}
