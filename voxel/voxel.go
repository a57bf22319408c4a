/*package voxel describes the uniform voxel grid that rigid-body particles are
bucketed into and maps particle positions onto it.
*/
package voxel

import (
	"context"
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/phil-mansfield/rigidgrid/geom"
)

const (
	DefaultVoxels      = 128
	DefaultVoxelLength = 1.0
)

// VoxelGrid is an axis-aligned grid of cubic voxels. Origin is the grid's
// bottom-left-front corner.
type VoxelGrid struct {
	Voxels      [3]int
	Origin      geom.Vec
	voxelLength float64
	grid        geom.Grid
}

// NewVoxelGrid returns a grid with the given number of voxels along each axis,
// a voxel length of 1 and its origin corner at (0, 0, 0).
func NewVoxelGrid(nx, ny, nz int) *VoxelGrid {
	g := &VoxelGrid{}
	g.Init([3]int{nx, ny, nz}, geom.Vec{}, DefaultVoxelLength)
	return g
}

// DefaultVoxelGrid returns a 128^3 grid.
func DefaultVoxelGrid() *VoxelGrid {
	return NewVoxelGrid(DefaultVoxels, DefaultVoxels, DefaultVoxels)
}

// Init initializes a VoxelGrid instance.
func (g *VoxelGrid) Init(voxels [3]int, origin geom.Vec, voxelLength float64) {
	g.Voxels = voxels
	g.Origin = origin
	g.voxelLength = voxelLength
	g.grid.Init([3]int{0, 0, 0}, voxels)
}

// VoxelLength returns the edge length of a single voxel.
func (g *VoxelGrid) VoxelLength() float64 { return g.voxelLength }

// SetVoxelLength changes the edge length of every voxel. The origin corner
// stays where it is.
func (g *VoxelGrid) SetVoxelLength(l float64) { g.voxelLength = l }

// Translate moves the grid by dx.
func (g *VoxelGrid) Translate(dx geom.Vec) { g.Origin.AddSelf(&dx) }

// Size returns the extent of the grid along each axis.
func (g *VoxelGrid) Size() geom.Vec {
	size := geom.Vec{}
	for i := 0; i < 3; i++ {
		size[i] = float64(g.Voxels[i]) * g.voxelLength
	}
	return size
}

// BtmLeftFront returns the corner of the grid with the smallest coordinates.
func (g *VoxelGrid) BtmLeftFront() geom.Vec { return g.Origin }

// TopRightBack returns the corner of the grid with the largest coordinates.
func (g *VoxelGrid) TopRightBack() geom.Vec {
	size := g.Size()
	return g.Origin.Add(&size)
}

// Normalize snaps pos down to the voxel containing it and expresses that
// voxel's corner as a fraction of the grid's size.
func (g *VoxelGrid) Normalize(pos *geom.Vec) geom.Vec {
	size := g.Size()
	return Normalize(pos, &g.Origin, g.voxelLength, &size)
}

// VoxelCoords returns the integer coordinates of the voxel containing pos
// and true if that voxel is inside the grid. Coordinates outside the grid
// are still returned.
func (g *VoxelGrid) VoxelCoords(pos *geom.Vec) (geom.IVec, bool) {
	d := pos.Sub(&g.Origin)
	l := geom.Vec{g.voxelLength, g.voxelLength, g.voxelLength}
	d = d.Div(&l)
	c := d.Floor()
	return c, g.grid.BoundsCheck(c[0], c[1], c[2])
}

// VoxelIdx returns the flat index of the voxel containing pos and true if pos
// is inside the grid. x varies fastest. If pos is outside, -1 and false are
// returned.
func (g *VoxelGrid) VoxelIdx(pos *geom.Vec) (int, bool) {
	c, _ := g.VoxelCoords(pos)
	return g.grid.IdxCheck(c[0], c[1], c[2])
}

// VoxelCorner returns the bottom-left-front corner of the voxel with flat
// index idx and true, or false if idx is not a voxel of the grid.
func (g *VoxelGrid) VoxelCorner(idx int) (geom.Vec, bool) {
	if idx < 0 || idx >= g.grid.Volume {
		return geom.Vec{}, false
	}
	x, y, z := g.grid.Coords(idx)
	offset := geom.IVec{x, y, z}.Vec()
	offset = offset.Scale(g.voxelLength)
	return g.Origin.Add(&offset), true
}

// VoxelCount returns the total number of voxels in the grid.
func (g *VoxelGrid) VoxelCount() int { return g.grid.Volume }

// Normalize computes, independently for each axis,
//
//	floor((pos - origin) / voxelLength) * voxelLength / gridSize
//
// where origin is the grid's bottom-left-front corner and gridSize is the
// grid's extent along that axis.
func Normalize(
	pos, origin *geom.Vec, voxelLength float64, gridSize *geom.Vec,
) geom.Vec {
	out := geom.Vec{}
	NormalizeAt(pos, origin, voxelLength, gridSize, &out)
	return out
}

// NormalizeAt is Normalize, but it writes its result to out.
func NormalizeAt(
	pos, origin *geom.Vec, voxelLength float64, gridSize, out *geom.Vec,
) {
	var d geom.Vec
	pos.SubAt(origin, &d)
	for i := 0; i < 3; i++ {
		cells := math.Floor(d[i] / voxelLength)
		out[i] = cells * voxelLength / gridSize[i]
	}
}

// NormalizeAll normalizes every position in ps into out using up to workers
// goroutines. Each goroutine owns a disjoint chunk of out.
func (g *VoxelGrid) NormalizeAll(
	ctx context.Context, ps, out []geom.Vec, workers int,
) error {
	if len(ps) != len(out) {
		return fmt.Errorf(
			"Position slice has length %d, but output has length %d.",
			len(ps), len(out),
		)
	}
	if workers < 1 {
		workers = 1
	}
	if workers > len(ps) {
		workers = len(ps)
	}
	if workers == 0 {
		return nil
	}

	size := g.Size()
	chunk := (len(ps) + workers - 1) / workers

	eg, ctx := errgroup.WithContext(ctx)
	for start := 0; start < len(ps); start += chunk {
		end := start + chunk
		if end > len(ps) {
			end = len(ps)
		}
		start := start

		eg.Go(func() error {
			for i := start; i < end; i++ {
				if (i-start)%4096 == 0 {
					if err := ctx.Err(); err != nil {
						return err
					}
				}
				NormalizeAt(&ps[i], &g.Origin, g.voxelLength, &size, &out[i])
			}
			return nil
		})
	}

	return eg.Wait()
}
