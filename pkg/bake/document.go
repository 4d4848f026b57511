package bake

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/amoffat/go-lightprobe/pkg/core"
	"github.com/amoffat/go-lightprobe/pkg/delaunay"
	"github.com/amoffat/go-lightprobe/pkg/sh"
)

// FileName is the conventional name for a serialized probe document.
const FileName = "lightprobes.json"

// ProbeRecord is one baked probe in the persisted document. Loc is the world
// position already multiplied by the scene unit scale, so consumers never need
// the scale themselves. Name serializes as null when the probe is unnamed.
type ProbeRecord struct {
	Loc    [3]float64        `json:"loc"`
	Name   *string           `json:"name"`
	Coeffs sh.CoefficientSet `json:"coeffs"`
}

// Document is the full bake output: every baked probe, the tetrahedral
// partition over their scaled positions, and the per-simplex adjacency.
// Neighbor entries are null on boundary faces.
type Document struct {
	Probes    []ProbeRecord      `json:"probes"`
	Simplices []delaunay.Simplex `json:"simplices"`
	Neighbors [][4]*int          `json:"neighbors"`
}

// BuildDocument assembles the persisted document from baked probes. Every
// probe must have coefficients; positions are scaled by unitScale before both
// serialization and tetrahedralization so the partition matches the stored
// locations exactly.
func BuildDocument(probes []*Probe, unitScale float64) (*Document, error) {
	doc := &Document{
		Probes:    make([]ProbeRecord, 0, len(probes)),
		Simplices: []delaunay.Simplex{},
		Neighbors: [][4]*int{},
	}

	points := make([]core.Vec3, 0, len(probes))
	for _, p := range probes {
		if p.Coeffs == nil {
			return nil, fmt.Errorf("probe %s has no coefficients", p.ID)
		}
		scaled := p.Position.Multiply(unitScale)
		points = append(points, scaled)

		rec := ProbeRecord{
			Loc:    [3]float64{scaled.X, scaled.Y, scaled.Z},
			Coeffs: p.Coeffs,
		}
		if p.Name != "" {
			name := p.Name
			rec.Name = &name
		}
		doc.Probes = append(doc.Probes, rec)
	}

	simplices, err := delaunay.Tetrahedralize(points)
	if err != nil {
		return nil, fmt.Errorf("tetrahedralizing %d probes: %w", len(points), err)
	}
	neighbors, err := delaunay.Neighbors(simplices)
	if err != nil {
		return nil, fmt.Errorf("building neighbor graph: %w", err)
	}

	doc.Simplices = simplices
	for _, ns := range neighbors {
		var row [4]*int
		for i, n := range ns {
			if n != delaunay.None {
				idx := n
				row[i] = &idx
			}
		}
		doc.Neighbors = append(doc.Neighbors, row)
	}
	return doc, nil
}

// Write serializes the document as indented JSON.
func (d *Document) Write(w io.Writer) error {
	data, err := json.MarshalIndent(d, "", "    ")
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return err
	}
	_, err = w.Write([]byte("\n"))
	return err
}
