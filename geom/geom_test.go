package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTexGridCoords(t *testing.T) {
	tg := NewTexGrid(10)
	tests := []struct {
		idx, x, y int
	}{
		{0, 0, 0},
		{1, 1, 0},
		{2, 2, 0},
		{9, 9, 0},
		{10, 0, 1},
		{99, 9, 9},
	}

	for i, test := range tests {
		x, y := tg.Coords(test.idx)
		if x != test.x || y != test.y {
			t.Errorf(
				"%d) Expected Coords(%d) = (%d, %d), got (%d, %d).",
				i+1, test.idx, test.x, test.y, x, y,
			)
		}
	}
}

func TestTexGridBijection(t *testing.T) {
	tg := NewTexGrid(10)
	seen := make(map[[2]int]bool)

	for idx := 0; idx < tg.Len(); idx++ {
		x, y := tg.Coords(idx)
		assert.Equal(t, idx%10, x)
		assert.Equal(t, idx/10, y)
		assert.True(t, x >= 0 && x < 10 && y >= 0 && y < 10)
		assert.Equal(t, idx, tg.Idx(x, y))
		seen[[2]int{x, y}] = true
	}

	assert.Len(t, seen, 100)
}

func TestTexGridCoordsCheck(t *testing.T) {
	tg := NewTexGrid(4)

	_, _, ok := tg.CoordsCheck(-1)
	assert.False(t, ok)
	_, _, ok = tg.CoordsCheck(16)
	assert.False(t, ok)

	x, y, ok := tg.CoordsCheck(15)
	assert.True(t, ok)
	assert.Equal(t, 3, x)
	assert.Equal(t, 3, y)
}

func TestGridIdxCoords(t *testing.T) {
	g := NewGrid([3]int{0, 0, 0}, [3]int{3, 4, 5})
	assert.Equal(t, 60, g.Volume)

	for idx := 0; idx < g.Volume; idx++ {
		x, y, z := g.Coords(idx)
		if got := g.Idx(x, y, z); got != idx {
			t.Errorf("Idx(Coords(%d)) = %d.", idx, got)
		}
	}
}

func TestGridIdxCheck(t *testing.T) {
	g := NewGrid([3]int{2, 2, 2}, [3]int{2, 2, 2})

	idx, ok := g.IdxCheck(2, 2, 2)
	assert.True(t, ok)
	assert.Equal(t, 0, idx)

	idx, ok = g.IdxCheck(3, 3, 3)
	assert.True(t, ok)
	assert.Equal(t, 7, idx)

	for _, c := range [][3]int{{1, 2, 2}, {4, 2, 2}, {2, 4, 2}, {2, 2, 1}} {
		idx, ok = g.IdxCheck(c[0], c[1], c[2])
		assert.False(t, ok, "%v", c)
		assert.Equal(t, -1, idx)
	}
}

func TestIVecSub(t *testing.T) {
	v1, v2 := IVec{1, 0, -2}, IVec{5, 9, 2}

	assert.Equal(t, IVec{-4, -9, -4}, v1.Sub(v2))
	assert.Equal(t, IVec{4, 9, 4}, v2.Sub(v1))
	assert.Equal(t, v1, v1.Sub(v2).Add(v2))
}

func TestVecSub(t *testing.T) {
	v1, v2 := &Vec{1, 0, -2}, &Vec{5, 9, 2}

	assert.Equal(t, Vec{-4, -9, -4}, v1.Sub(v2))
	assert.Equal(t, Vec{4, 9, 4}, v2.Sub(v1))

	out := *v1
	out.SubAt(v2, &out)
	assert.Equal(t, Vec{-4, -9, -4}, out)
}

func TestVecFloor(t *testing.T) {
	v := &Vec{1.5, -0.5, 2}
	assert.Equal(t, IVec{1, -1, 2}, v.Floor())
}

func TestVecScale(t *testing.T) {
	v := IVec{2, -1, 0}.Vec()
	assert.Equal(t, Vec{2, -1, 0}, v)
	assert.Equal(t, Vec{1, -0.5, 0}, v.Scale(0.5))
}

func BenchmarkTexGridCoords(b *testing.B) {
	tg := NewTexGrid(256)
	n := tg.Len()
	for i := 0; i < b.N; i++ {
		tg.Coords(i % n)
	}
}

func BenchmarkGridIdx(b *testing.B) {
	g := NewGrid([3]int{0, 0, 0}, [3]int{128, 128, 128})
	for i := 0; i < b.N; i++ {
		g.Idx(i%128, (i/128)%128, (i/(128*128))%128)
	}
}
