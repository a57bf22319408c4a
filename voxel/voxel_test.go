package voxel

import (
	"context"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phil-mansfield/rigidgrid/geom"
)

const eps = 1e-12

func TestNormalizeLiteral(t *testing.T) {
	pos := &geom.Vec{0.0, 0.5, 0.0}
	corner := &geom.Vec{-0.5, -0.5, -0.5}
	size := &geom.Vec{1.0, 1.0, 1.0}

	norm := Normalize(pos, corner, 0.01, size)

	assert.InDelta(t, 0.5, norm[0], eps)
	assert.InDelta(t, 1.0, norm[1], eps)
	assert.InDelta(t, 0.5, norm[2], eps)
}

func TestNormalizeFormula(t *testing.T) {
	gen := rand.New(rand.NewSource(1))
	corner := &geom.Vec{-0.5, -0.25, 2}
	size := &geom.Vec{1, 2, 4}
	l := 0.03

	for i := 0; i < 1000; i++ {
		pos := &geom.Vec{
			gen.Float64()*3 - 1, gen.Float64()*3 - 1, gen.Float64()*3 - 1,
		}
		norm := Normalize(pos, corner, l, size)
		for k := 0; k < 3; k++ {
			expected := math.Floor((pos[k]-corner[k])/l) * l / size[k]
			if norm[k] != expected {
				t.Fatalf(
					"%d) axis %d of %v normalized to %g instead of %g.",
					i+1, k, *pos, norm[k], expected,
				)
			}
		}
	}
}

func TestNormalizeBelowOrigin(t *testing.T) {
	norm := Normalize(
		&geom.Vec{-0.25, 0, 0}, &geom.Vec{}, 0.1, &geom.Vec{1, 1, 1},
	)
	assert.InDelta(t, -0.3, norm[0], eps)
}

func TestVoxelGridGeometry(t *testing.T) {
	g := DefaultVoxelGrid()
	assert.Equal(t, [3]int{128, 128, 128}, g.Voxels)
	assert.Equal(t, 1.0, g.VoxelLength())
	assert.Equal(t, 128*128*128, g.VoxelCount())

	g = NewVoxelGrid(100, 100, 50)
	g.SetVoxelLength(0.01)
	g.Translate(geom.Vec{-0.5, -0.5, -0.5})
	g.Translate(geom.Vec{0, 0, 0.25})

	assert.Equal(t, geom.Vec{-0.5, -0.5, -0.25}, g.BtmLeftFront())
	size := g.Size()
	assert.InDelta(t, 1.0, size[0], eps)
	assert.InDelta(t, 0.5, size[2], eps)
	top := g.TopRightBack()
	assert.InDelta(t, 0.5, top[0], eps)
	assert.InDelta(t, 0.25, top[2], eps)
}

func TestVoxelGridNormalize(t *testing.T) {
	g := NewVoxelGrid(100, 100, 100)
	g.SetVoxelLength(0.01)
	g.Translate(geom.Vec{-0.5, -0.5, -0.5})

	norm := g.Normalize(&geom.Vec{0.0, 0.5, 0.0})
	assert.InDelta(t, 0.5, norm[0], eps)
	assert.InDelta(t, 1.0, norm[1], eps)
}

func TestVoxelIdx(t *testing.T) {
	g := NewVoxelGrid(4, 4, 4)
	g.SetVoxelLength(0.5)
	g.Translate(geom.Vec{-1, -1, -1})

	tests := []struct {
		pos geom.Vec
		c   geom.IVec
		idx int
		ok  bool
	}{
		{geom.Vec{-1, -1, -1}, geom.IVec{0, 0, 0}, 0, true},
		{geom.Vec{-0.25, -1, -1}, geom.IVec{1, 0, 0}, 1, true},
		{geom.Vec{-1, -0.4, -1}, geom.IVec{0, 1, 0}, 4, true},
		{geom.Vec{0.9, 0.9, 0.9}, geom.IVec{3, 3, 3}, 63, true},
		{geom.Vec{1, 0, 0}, geom.IVec{4, 2, 2}, -1, false},
		{geom.Vec{-1.1, 0, 0}, geom.IVec{-1, 2, 2}, -1, false},
	}

	for i, test := range tests {
		c, ok := g.VoxelCoords(&test.pos)
		assert.Equal(t, test.c, c, "%d)", i+1)
		assert.Equal(t, test.ok, ok, "%d)", i+1)

		idx, ok := g.VoxelIdx(&test.pos)
		assert.Equal(t, test.idx, idx, "%d)", i+1)
		assert.Equal(t, test.ok, ok, "%d)", i+1)
	}
}

func TestVoxelCorner(t *testing.T) {
	g := NewVoxelGrid(4, 4, 4)
	g.SetVoxelLength(0.5)
	g.Translate(geom.Vec{-1, -1, -1})

	c, ok := g.VoxelCorner(0)
	assert.True(t, ok)
	assert.Equal(t, geom.Vec{-1, -1, -1}, c)

	c, ok = g.VoxelCorner(4)
	assert.True(t, ok)
	assert.Equal(t, geom.Vec{-1, -0.5, -1}, c)

	c, ok = g.VoxelCorner(63)
	assert.True(t, ok)
	assert.Equal(t, geom.Vec{0.5, 0.5, 0.5}, c)

	for _, idx := range []int{-1, 64} {
		_, ok = g.VoxelCorner(idx)
		assert.False(t, ok, "idx = %d", idx)
	}

	for idx := 0; idx < g.VoxelCount(); idx++ {
		c, _ := g.VoxelCorner(idx)
		if got, ok := g.VoxelIdx(&c); !ok || got != idx {
			t.Errorf("VoxelIdx(VoxelCorner(%d)) = %d, %v.", idx, got, ok)
		}
	}
}

func TestNormalizeAll(t *testing.T) {
	g := NewVoxelGrid(64, 64, 64)
	g.SetVoxelLength(1.0 / 64)
	g.Translate(geom.Vec{-0.5, -0.5, -0.5})

	gen := rand.New(rand.NewSource(7))
	ps := make([]geom.Vec, 10001)
	for i := range ps {
		for k := 0; k < 3; k++ {
			ps[i][k] = gen.Float64() - 0.5
		}
	}

	for _, workers := range []int{0, 1, 3, 8, 20000} {
		out := make([]geom.Vec, len(ps))
		require.NoError(t, g.NormalizeAll(context.Background(), ps, out, workers))
		for i := range ps {
			if out[i] != g.Normalize(&ps[i]) {
				t.Fatalf("workers = %d: element %d differs.", workers, i)
			}
		}
	}
}

func TestNormalizeAllErrors(t *testing.T) {
	g := DefaultVoxelGrid()

	err := g.NormalizeAll(context.Background(), make([]geom.Vec, 3), nil, 2)
	assert.Error(t, err)

	assert.NoError(t, g.NormalizeAll(context.Background(), nil, nil, 4))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	ps := make([]geom.Vec, 10)
	err = g.NormalizeAll(ctx, ps, make([]geom.Vec, 10), 2)
	assert.ErrorIs(t, err, context.Canceled)
}

func BenchmarkNormalize(b *testing.B) {
	pos, corner := &geom.Vec{0.1, 0.2, 0.3}, &geom.Vec{-0.5, -0.5, -0.5}
	size := &geom.Vec{1, 1, 1}
	out := &geom.Vec{}
	for i := 0; i < b.N; i++ {
		NormalizeAt(pos, corner, 0.01, size, out)
	}
}
