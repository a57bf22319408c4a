package io

import (
	"fmt"

	"gopkg.in/gcfg.v1"

	"github.com/phil-mansfield/rigidgrid/geom"
	"github.com/phil-mansfield/rigidgrid/layout"
	"github.com/phil-mansfield/rigidgrid/voxel"
)

const ExampleConfigFile = `[Grid]

#######################
# Required Parameters #
#######################

# Number of voxels along each axis of the grid.
XVoxels = 100
YVoxels = 100
ZVoxels = 100

# Edge length of a single voxel. The grid's extent along an axis is the number
# of voxels along that axis times VoxelLength.
VoxelLength = 0.01

#######################
# Optional Parameters #
#######################

# Position of the grid's bottom-left-front corner. Default is
# (-0.5, -0.5, -0.5).
X = -0.5
Y = -0.5
Z = -0.5

[Layout]

# Edge length of the square particle texture. Particle i is stored in column
# i % EdgeLength of row i / EdgeLength.
EdgeLength = 10

# Number of consecutive particles that make up one model.
ParticlesPerModel = 3`

// GridConfig describes a voxel grid.
type GridConfig struct {
	// Required
	XVoxels, YVoxels, ZVoxels int
	VoxelLength               float64

	// Optional
	X, Y, Z float64
}

// LayoutConfig describes a particle texture layout.
type LayoutConfig struct {
	EdgeLength, ParticlesPerModel int
}

// Wrapper holds every section of a config file.
type Wrapper struct {
	Grid   GridConfig
	Layout LayoutConfig
}

// DefaultWrapper returns the config used when no file is given: a unit cube
// of 100^3 voxels centered on the origin, packed into a 10x10 texture.
func DefaultWrapper() *Wrapper {
	return &Wrapper{
		Grid: GridConfig{
			XVoxels: 100, YVoxels: 100, ZVoxels: 100,
			VoxelLength: 0.01,
			X:           -0.5, Y: -0.5, Z: -0.5,
		},
		Layout: LayoutConfig{
			EdgeLength:        layout.DefaultEdgeLength,
			ParticlesPerModel: layout.DefaultParticlesPerModel,
		},
	}
}

func (con *GridConfig) ValidVoxels() bool {
	return con.XVoxels > 0 && con.YVoxels > 0 && con.ZVoxels > 0
}
func (con *GridConfig) ValidVoxelLength() bool {
	return con.VoxelLength > 0
}

func (con *LayoutConfig) ValidEdgeLength() bool {
	return con.EdgeLength > 0
}
func (con *LayoutConfig) ValidParticlesPerModel() bool {
	return con.ParticlesPerModel > 0
}

// Check returns a descriptive error for the first invalid value in the
// config.
func (wrap *Wrapper) Check() error {
	if !wrap.Grid.ValidVoxels() {
		return fmt.Errorf(
			"Voxel counts must be positive, but are (%d, %d, %d).",
			wrap.Grid.XVoxels, wrap.Grid.YVoxels, wrap.Grid.ZVoxels,
		)
	} else if !wrap.Grid.ValidVoxelLength() {
		return fmt.Errorf(
			"'VoxelLength' must be positive, but is %g.", wrap.Grid.VoxelLength,
		)
	} else if !wrap.Layout.ValidEdgeLength() {
		return fmt.Errorf(
			"'EdgeLength' must be positive, but is %d.", wrap.Layout.EdgeLength,
		)
	} else if !wrap.Layout.ValidParticlesPerModel() {
		return fmt.Errorf(
			"'ParticlesPerModel' must be positive, but is %d.",
			wrap.Layout.ParticlesPerModel,
		)
	}
	return nil
}

// VoxelGrid returns the grid described by the config.
func (con *GridConfig) VoxelGrid() *voxel.VoxelGrid {
	g := &voxel.VoxelGrid{}
	g.Init(
		[3]int{con.XVoxels, con.YVoxels, con.ZVoxels},
		geom.Vec{con.X, con.Y, con.Z}, con.VoxelLength,
	)
	return g
}

// Layout returns the texture layout described by the config.
func (con *LayoutConfig) Layout() (*layout.Layout, error) {
	return layout.New(con.EdgeLength, con.ParticlesPerModel)
}

// ReadConfig reads a config file on top of the defaults. An empty file name
// returns the defaults.
func ReadConfig(fname string) (*Wrapper, error) {
	wrap := DefaultWrapper()
	if fname != "" {
		if err := gcfg.ReadFileInto(wrap, fname); err != nil {
			return nil, err
		}
	}
	if err := wrap.Check(); err != nil {
		return nil, err
	}
	return wrap, nil
}

// ReadConfigString is ReadConfig for a config held in memory.
func ReadConfigString(str string) (*Wrapper, error) {
	wrap := DefaultWrapper()
	if err := gcfg.ReadStringInto(wrap, str); err != nil {
		return nil, err
	}
	if err := wrap.Check(); err != nil {
		return nil, err
	}
	return wrap, nil
}
