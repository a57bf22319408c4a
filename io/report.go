package io

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/phil-mansfield/rigidgrid/geom"
	"github.com/phil-mansfield/rigidgrid/layout"
	"github.com/phil-mansfield/rigidgrid/voxel"
)

// Report summarizes a normalized set of particle positions.
type Report struct {
	Grid      GridReport      `yaml:"grid"`
	Layout    LayoutReport    `yaml:"layout"`
	Particles ParticlesReport `yaml:"particles"`
}

type GridReport struct {
	Voxels       [3]int     `yaml:"voxels"`
	VoxelLength  float64    `yaml:"voxel_length"`
	BtmLeftFront [3]float64 `yaml:"btm_left_front"`
	TopRightBack [3]float64 `yaml:"top_right_back"`
}

type LayoutReport struct {
	EdgeLength        int `yaml:"edge_length"`
	ParticlesPerModel int `yaml:"particles_per_model"`
	Models            int `yaml:"models"`

	RigidTexEdgeLength    int  `yaml:"rigid_tex_edge_length"`
	ParticleTexEdgeLength int  `yaml:"particle_tex_edge_length"`
	FitsSolver            bool `yaml:"fits_solver"`
}

type ParticlesReport struct {
	Count   int             `yaml:"count"`
	Inside  int             `yaml:"inside"`
	Outside int             `yaml:"outside"`
	Min     [3]float64      `yaml:"min,flow"`
	Max     [3]float64      `yaml:"max,flow"`
	Entries []ParticleEntry `yaml:"entries,omitempty"`
}

// ParticleEntry describes where a single particle ends up.
type ParticleEntry struct {
	Idx         int        `yaml:"idx"`
	Texel       [2]int     `yaml:"texel,flow"`
	Model       int        `yaml:"model"`
	Voxel       int        `yaml:"voxel"`
	VoxelCorner [3]float64 `yaml:"voxel_corner,flow"`
	Normalized  [3]float64 `yaml:"normalized,flow"`
}

// NewReport builds a report for the raw positions ps and their normalized
// counterparts norm. If entries is true, every particle gets its own entry.
func NewReport(
	g *voxel.VoxelGrid, l *layout.Layout,
	ps, norm []geom.Vec, entries bool,
) (*Report, error) {
	if len(ps) != len(norm) {
		return nil, fmt.Errorf(
			"%d positions were given, but %d normalized positions.",
			len(ps), len(norm),
		)
	}

	r := &Report{}
	r.Grid.Voxels = g.Voxels
	r.Grid.VoxelLength = g.VoxelLength()
	r.Grid.BtmLeftFront = g.BtmLeftFront()
	r.Grid.TopRightBack = g.TopRightBack()

	r.Layout.EdgeLength = l.EdgeLength
	r.Layout.ParticlesPerModel = l.ParticlesPerModel
	r.Layout.Models = l.Models()
	r.Layout.RigidTexEdgeLength = layout.RigidTexEdgeLength(layout.MaxRigidBodies)
	r.Layout.ParticleTexEdgeLength = layout.ParticleTexEdgeLength(
		layout.MaxRigidBodies,
	)
	r.Layout.FitsSolver = l.FitsSolver()

	r.Particles.Count = len(ps)
	for i := range ps {
		vIdx, ok := g.VoxelIdx(&ps[i])
		if ok {
			r.Particles.Inside++
		} else {
			r.Particles.Outside++
		}

		for k := 0; k < 3; k++ {
			if i == 0 || norm[i][k] < r.Particles.Min[k] {
				r.Particles.Min[k] = norm[i][k]
			}
			if i == 0 || norm[i][k] > r.Particles.Max[k] {
				r.Particles.Max[k] = norm[i][k]
			}
		}

		if entries {
			x, y := l.ParticleCoords(i)
			corner, _ := g.VoxelCorner(vIdx)
			r.Particles.Entries = append(r.Particles.Entries, ParticleEntry{
				Idx: i, Texel: [2]int{x, y}, Model: l.ModelIdx(i),
				Voxel: vIdx, VoxelCorner: corner, Normalized: norm[i],
			})
		}
	}

	return r, nil
}

// CatalogInfo summarizes the contents of a binary catalog.
type CatalogInfo struct {
	Count       int64      `yaml:"count"`
	EdgeLength  int64      `yaml:"edge_length"`
	Voxels      [3]int64   `yaml:"voxels,flow"`
	VoxelLength float64    `yaml:"voxel_length"`
	Origin      [3]float64 `yaml:"origin,flow"`
	Min         [3]float64 `yaml:"min,flow"`
	Max         [3]float64 `yaml:"max,flow"`
}

// NewCatalogInfo summarizes a catalog header and its positions.
func NewCatalogInfo(h *CatalogHeader, xs []geom.Vec) *CatalogInfo {
	info := &CatalogInfo{
		Count: h.Count, EdgeLength: h.EdgeLength, Voxels: h.Voxels,
		VoxelLength: h.VoxelLength, Origin: h.Origin,
	}
	for i := range xs {
		for k := 0; k < 3; k++ {
			if i == 0 || xs[i][k] < info.Min[k] {
				info.Min[k] = xs[i][k]
			}
			if i == 0 || xs[i][k] > info.Max[k] {
				info.Max[k] = xs[i][k]
			}
		}
	}
	return info
}

// WriteReport writes r to w as YAML.
func WriteReport(w io.Writer, r *Report) error {
	return writeYAML(w, r)
}

// WriteCatalogInfo writes info to w as YAML.
func WriteCatalogInfo(w io.Writer, info *CatalogInfo) error {
	return writeYAML(w, info)
}

func writeYAML(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to marshal %T: %w", v, err)
	}
	return enc.Close()
}
