/*package layout describes how rigid bodies and their particles are packed into
square textures.

Rigid body state lives in a texture with one texel per body. Each body is made
of at most ParticlesPerVoxel particles, so the particle textures are
ParticlesPerVoxel times wider. Particle i lives at texel ParticleCoords(i).
*/
package layout

import (
	"fmt"
	"math"

	"github.com/phil-mansfield/rigidgrid/geom"
)

const (
	// MaxRigidBodies is the number of bodies that fit in the body texture.
	MaxRigidBodies = 64 * 64
	// ParticlesPerVoxel is the largest number of particles that can share a
	// voxel when the particle diameter equals the voxel length.
	ParticlesPerVoxel = 4
	MaxParticles      = MaxRigidBodies * ParticlesPerVoxel

	DefaultEdgeLength        = 10
	DefaultParticlesPerModel = 3
)

// RigidTexEdgeLength returns the edge length of the square texture needed to
// hold n rigid bodies, floor(sqrt(n)).
func RigidTexEdgeLength(n int) int {
	return int(math.Floor(math.Sqrt(float64(n))))
}

// ParticleTexEdgeLength returns the edge length of the particle textures
// used alongside a body texture for n rigid bodies.
func ParticleTexEdgeLength(n int) int {
	return RigidTexEdgeLength(n) * ParticlesPerVoxel
}

// Layout maps particle indices onto texels of a square texture.
type Layout struct {
	geom.TexGrid
	ParticlesPerModel int
}

// New returns a Layout for a texture with the given edge length where every
// model is made of particlesPerModel consecutive particles.
func New(edgeLength, particlesPerModel int) (*Layout, error) {
	if edgeLength <= 0 {
		return nil, fmt.Errorf(
			"Texture edge length must be positive, but is %d.", edgeLength,
		)
	} else if particlesPerModel <= 0 {
		return nil, fmt.Errorf(
			"Particles per model must be positive, but is %d.",
			particlesPerModel,
		)
	}

	return &Layout{geom.TexGrid{EdgeLength: edgeLength}, particlesPerModel}, nil
}

// Default returns the 10x10 layout with three particles per model.
func Default() *Layout {
	l, _ := New(DefaultEdgeLength, DefaultParticlesPerModel)
	return l
}

// ParticleCoords returns the texel of the particle with flat index idx:
// x = idx mod EdgeLength, y = idx div EdgeLength.
func (l *Layout) ParticleCoords(idx int) (x, y int) {
	return l.Coords(idx)
}

// ModelIdx returns the index of the model that the given particle belongs to.
func (l *Layout) ModelIdx(particleIdx int) int {
	return particleIdx / l.ParticlesPerModel
}

// FitsSolver returns true if the layout's texture is no larger than the
// particle textures allocated for MaxRigidBodies bodies.
func (l *Layout) FitsSolver() bool {
	return l.EdgeLength <= ParticleTexEdgeLength(MaxRigidBodies)
}

// Models returns the number of whole models that fit in the texture.
func (l *Layout) Models() int {
	return l.Len() / l.ParticlesPerModel
}

// ModelGrid returns the model index of every texel in the first rows rows of
// the texture. Row 0 of the result is texture row 0.
func (l *Layout) ModelGrid(rows int) [][]int {
	if rows > l.EdgeLength {
		rows = l.EdgeLength
	} else if rows < 0 {
		rows = 0
	}

	grid := make([][]int, rows)
	for y := range grid {
		grid[y] = make([]int, l.EdgeLength)
		for x := range grid[y] {
			grid[y][x] = l.ModelIdx(l.Idx(x, y))
		}
	}
	return grid
}
