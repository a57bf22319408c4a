package geom

// Grid provides an interface for reasoning over a 1D slice as if it were a
// 3D grid.
type Grid struct {
	CellBounds
	Length, Area, Volume int
	uBounds              [3]int
}

// CellBounds represents a bounding box aligned to grid cells.
type CellBounds struct {
	Origin, Width [3]int
}

// NewGrid returns a new Grid instance.
func NewGrid(origin [3]int, width [3]int) *Grid {
	g := &Grid{}
	g.Init(origin, width)
	return g
}

// Init initializes a Grid instance.
func (g *Grid) Init(origin [3]int, width [3]int) {
	g.Origin = origin
	g.Width = width

	g.Length = width[0]
	g.Area = width[0] * width[1]
	g.Volume = width[0] * width[1] * width[2]

	for i := 0; i < 3; i++ {
		g.uBounds[i] = g.Origin[i] + g.Width[i]
	}
}

// Idx returns the grid index corresponding to a set of coordinates.
func (g *Grid) Idx(x, y, z int) int {
	return ((x - g.Origin[0]) + (y-g.Origin[1])*g.Length +
		(z-g.Origin[2])*g.Area)
}

// IdxCheck returns an index and true if the given coordinate are valid and
// false otherwise.
func (g *Grid) IdxCheck(x, y, z int) (idx int, ok bool) {
	if !g.BoundsCheck(x, y, z) {
		return -1, false
	}

	return g.Idx(x, y, z), true
}

// BoundsCheck returns true if the given coordinates are within the Grid and
// false otherwise.
func (g *Grid) BoundsCheck(x, y, z int) bool {
	return (g.Origin[0] <= x && g.Origin[1] <= y && g.Origin[2] <= z) &&
		(x < g.uBounds[0] && y < g.uBounds[1] &&
			z < g.uBounds[2])
}

// Coords returns the x, y, z coordinates of a point from its grid index. The
// coordinates are relative to the grid's origin.
func (g *Grid) Coords(idx int) (x, y, z int) {
	x = idx % g.Length
	y = (idx % g.Area) / g.Length
	z = idx / g.Area
	return x, y, z
}

// TexGrid is a square 2D grid stored as a flat slice, the way particle data
// is packed into a texture. Index i lives in column i % EdgeLength of row
// i / EdgeLength.
type TexGrid struct {
	EdgeLength int
}

// NewTexGrid returns a TexGrid with the given edge length.
func NewTexGrid(edgeLength int) *TexGrid {
	return &TexGrid{edgeLength}
}

// Len returns the number of texels in the grid.
func (tg *TexGrid) Len() int { return tg.EdgeLength * tg.EdgeLength }

// Coords returns the column and row of the texel with flat index idx. idx is
// not bounds checked.
func (tg *TexGrid) Coords(idx int) (x, y int) {
	x = idx % tg.EdgeLength
	y = idx / tg.EdgeLength
	return x, y
}

// CoordsCheck returns the coordinates of idx and true if idx is inside the
// grid and false otherwise.
func (tg *TexGrid) CoordsCheck(idx int) (x, y int, ok bool) {
	if idx < 0 || idx >= tg.Len() {
		return -1, -1, false
	}
	x, y = tg.Coords(idx)
	return x, y, true
}

// Idx returns the flat index of the texel at column x and row y.
func (tg *TexGrid) Idx(x, y int) int {
	return x + y*tg.EdgeLength
}
