package bake

import (
	"errors"
	"fmt"

	"github.com/amoffat/go-lightprobe/pkg/core"
	"github.com/amoffat/go-lightprobe/pkg/projector"
)

// ErrNoProbesBaked means every probe in the pass failed, so there is nothing
// to build a document from.
var ErrNoProbesBaked = errors.New("no probes baked successfully")

// Result is the outcome of a bake pass. Failed maps probe ids to their bake
// errors; probes listed there are absent from the document.
type Result struct {
	Document *Document
	Failed   map[string]error
}

// Baker runs the bake pass: lightmap each probe through the renderer
// collaborator, project to SH, and assemble the document.
type Baker struct {
	Projection projector.Config
	Samples    int     // renderer samples per lightmap bake
	UnitScale  float64 // world-to-export position scale
	Hooks      Hooks   // optional host integration
	Logger     core.Logger

	lightmapper Lightmapper
}

// NewBaker creates a baker with default projection settings, 50 samples and
// unit scale 1.
func NewBaker(lm Lightmapper) *Baker {
	return &Baker{
		Projection:  projector.DefaultConfig(),
		Samples:     50,
		UnitScale:   1.0,
		Logger:      &core.DefaultLogger{},
		lightmapper: lm,
	}
}

// BakeProbe bakes a single probe's lightmap and projects it to SH
// coefficients. On success the probe's Coeffs field is replaced; on failure
// it is left untouched.
func (b *Baker) BakeProbe(p *Probe) error {
	if p.Mesh == nil {
		return fmt.Errorf("probe %s has no mesh", p.ID)
	}

	img, err := b.lightmapper.Bake(p, b.Samples)
	if err != nil {
		return fmt.Errorf("baking lightmap for %s: %w", p.ID, err)
	}
	coeffs, err := projector.Project(p.Mesh, img, b.Projection)
	if err != nil {
		return fmt.Errorf("projecting %s: %w", p.ID, err)
	}
	p.Coeffs = coeffs
	return nil
}

// BakeAll bakes every probe and assembles the document from the ones that
// succeeded. A failing probe aborts only its own bake; its error lands in the
// result's Failed map and the remaining probes still run. The returned error
// is non-nil only for pass-level failures: a hook error, every probe failing,
// or a degenerate probe layout.
func (b *Baker) BakeAll(probes []*Probe) (*Result, error) {
	var hookCtx interface{}
	if b.Hooks != nil {
		ctx, err := b.Hooks.PreBake(probes)
		if err != nil {
			return nil, fmt.Errorf("pre-bake hook: %w", err)
		}
		hookCtx = ctx
	}

	result := &Result{Failed: make(map[string]error)}
	baked := make([]*Probe, 0, len(probes))
	for _, p := range probes {
		if err := b.BakeProbe(p); err != nil {
			b.Logger.Printf("bake failed for %s: %v\n", p.ID, err)
			result.Failed[p.ID] = err
			continue
		}
		baked = append(baked, p)
	}
	if len(baked) == 0 {
		return result, ErrNoProbesBaked
	}

	doc, err := BuildDocument(baked, b.UnitScale)
	if err != nil {
		return result, err
	}
	result.Document = doc

	if b.Hooks != nil {
		if err := b.Hooks.PostBake(doc, hookCtx); err != nil {
			return result, fmt.Errorf("post-bake hook: %w", err)
		}
	}
	b.Logger.Printf("baked %d/%d probes\n", len(baked), len(probes))
	return result, nil
}
