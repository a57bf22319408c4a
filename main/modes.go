package main

import (
	"context"
	"fmt"
	stdio "io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/phil-mansfield/rigidgrid/geom"
	"github.com/phil-mansfield/rigidgrid/io"
	"github.com/phil-mansfield/rigidgrid/layout"
	"github.com/phil-mansfield/rigidgrid/voxel"
)

// coordsMain prints the texel of every index in the comma separated list
// idxStr.
func coordsMain(w stdio.Writer, wrap *io.Wrapper, idxStr string) error {
	idxs, err := parseInts(idxStr)
	if err != nil {
		return err
	}
	l, err := wrap.Layout.Layout()
	if err != nil {
		return err
	}

	for _, idx := range idxs {
		x, y, ok := l.CoordsCheck(idx)
		if !ok {
			return fmt.Errorf(
				"Index %d is outside the %dx%d texture.",
				idx, l.EdgeLength, l.EdgeLength,
			)
		}
		fmt.Fprintln(w, x, y)
	}
	return nil
}

// diffMain prints v1 - v2 and v2 - v1 for a "v1:v2" pair of integer vectors.
func diffMain(w stdio.Writer, diffStr string) error {
	v1, v2, err := parseDiff(diffStr)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, formatIVec(v1.Sub(v2)))
	fmt.Fprintln(w, formatIVec(v2.Sub(v1)))
	return nil
}

// normalizeMain prints the normalized x, y and z components of a position.
func normalizeMain(w stdio.Writer, wrap *io.Wrapper, posStr string) error {
	pos, err := parseVec(posStr)
	if err != nil {
		return err
	}
	g := wrap.Grid.VoxelGrid()
	norm := g.Normalize(&pos)
	for k := 0; k < 3; k++ {
		fmt.Fprintln(w, formatFloat(norm[k]))
	}
	return nil
}

// positionsMain normalizes a table of positions and writes a report along
// with whichever optional outputs were requested.
func positionsMain(
	ctx context.Context, w stdio.Writer, wrap *io.Wrapper,
	fname string, opt *Options,
) error {
	ps, err := io.ReadPositions(fname, nil)
	if err != nil {
		return err
	}
	log.Printf("Read %d positions from %s.", len(ps), fname)

	g := wrap.Grid.VoxelGrid()
	l, err := wrap.Layout.Layout()
	if err != nil {
		return err
	}

	norm := make([]geom.Vec, len(ps))
	if err := g.NormalizeAll(ctx, ps, norm, opt.Threads); err != nil {
		return err
	}

	r, err := io.NewReport(g, l, ps, norm, opt.Entries)
	if err != nil {
		return err
	}
	if err := io.WriteReport(w, r); err != nil {
		return err
	}

	if opt.Catalog != "" {
		h := &io.CatalogHeader{
			Count:       int64(len(norm)),
			EdgeLength:  int64(l.EdgeLength),
			VoxelLength: g.VoxelLength(),
			Origin:      g.Origin,
		}
		for k := 0; k < 3; k++ {
			h.Voxels[k] = int64(g.Voxels[k])
		}
		if err := io.WriteCatalogFile(opt.Catalog, h, norm); err != nil {
			return err
		}
		log.Printf("Wrote catalog to %s.", opt.Catalog)
	}

	if opt.WebP != "" {
		if err := writeWebP(opt.WebP, l, norm); err != nil {
			return err
		}
		log.Printf("Wrote texture to %s.", opt.WebP)
	}

	if opt.Plot != "" {
		plotTexels(opt.Plot, l, len(ps))
		log.Printf("Wrote texel plot to %s.", opt.Plot)
	}

	return nil
}

// catalogInfoMain prints a summary of a binary catalog.
func catalogInfoMain(w stdio.Writer, fname string) error {
	h, xs, err := io.ReadCatalogFile(fname)
	if err != nil {
		return err
	}
	return io.WriteCatalogInfo(w, io.NewCatalogInfo(h, xs))
}

func writeWebP(fname string, l *layout.Layout, norm []geom.Vec) error {
	f, err := os.Create(fname)
	if err != nil {
		return err
	}
	if err := l.WriteWebP(f, norm); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// demoMain prints worked examples of the index arithmetic.
func demoMain(w stdio.Writer, name string) error {
	switch name {
	case "IndexTest":
		return indexTestDemo(w)
	case "VoxelIndex":
		return voxelIndexDemo(w)
	case "All":
		if err := indexTestDemo(w); err != nil {
			return err
		}
		return voxelIndexDemo(w)
	}
	return fmt.Errorf(
		"Unrecognized 'Demo' argument '%s'. Recognized arguments are "+
			"'IndexTest', 'VoxelIndex' and 'All'.", name,
	)
}

func indexTestDemo(w stdio.Writer) error {
	l := layout.Default()
	checks := []struct{ idx, x, y int }{
		{0, 0, 0}, {1, 1, 0}, {2, 2, 0}, {9, 9, 0}, {10, 0, 1}, {99, 9, 9},
	}

	for _, c := range checks {
		x, y := l.ParticleCoords(c.idx)
		fmt.Fprintln(w, x, y)
		if x != c.x || y != c.y {
			return fmt.Errorf(
				"Particle %d maps to (%d, %d), not (%d, %d).",
				c.idx, x, y, c.x, c.y,
			)
		}
	}

	v1, v2 := geom.IVec{1, 0, -2}, geom.IVec{5, 9, 2}
	fmt.Fprintln(w, formatIVec(v1.Sub(v2)))
	fmt.Fprintln(w, formatIVec(v2.Sub(v1)))
	return nil
}

func voxelIndexDemo(w stdio.Writer) error {
	pos := &geom.Vec{0.0, 0.5, 0.0}
	corner := &geom.Vec{-0.5, -0.5, -0.5}
	size := &geom.Vec{1.0, 1.0, 1.0}

	norm := voxel.Normalize(pos, corner, 0.01, size)
	fmt.Fprintln(w, formatFloat(norm[0]))
	fmt.Fprintln(w, formatFloat(norm[1]))
	return nil
}

func parseInts(str string) ([]int, error) {
	tokens := strings.Split(str, ",")
	xs := make([]int, len(tokens))
	for i, tok := range tokens {
		x, err := strconv.Atoi(strings.TrimSpace(tok))
		if err != nil {
			return nil, fmt.Errorf("Could not parse '%s' as an integer.", tok)
		}
		xs[i] = x
	}
	return xs, nil
}

func parseIVec(str string) (geom.IVec, error) {
	xs, err := parseInts(str)
	if err != nil {
		return geom.IVec{}, err
	} else if len(xs) != 3 {
		return geom.IVec{}, fmt.Errorf(
			"Vector '%s' has %d components instead of 3.", str, len(xs),
		)
	}
	return geom.IVec{xs[0], xs[1], xs[2]}, nil
}

func parseDiff(str string) (v1, v2 geom.IVec, err error) {
	halves := strings.Split(str, ":")
	if len(halves) != 2 {
		return v1, v2, fmt.Errorf(
			"Expected two vectors separated by ':', but got '%s'.", str,
		)
	}
	if v1, err = parseIVec(halves[0]); err != nil {
		return v1, v2, err
	}
	if v2, err = parseIVec(halves[1]); err != nil {
		return v1, v2, err
	}
	return v1, v2, nil
}

func parseVec(str string) (geom.Vec, error) {
	tokens := strings.Split(str, ",")
	if len(tokens) != 3 {
		return geom.Vec{}, fmt.Errorf(
			"Position '%s' has %d components instead of 3.", str, len(tokens),
		)
	}

	v := geom.Vec{}
	for i, tok := range tokens {
		x, err := strconv.ParseFloat(strings.TrimSpace(tok), 64)
		if err != nil {
			return geom.Vec{}, fmt.Errorf(
				"Could not parse '%s' as a number.", tok,
			)
		}
		v[i] = x
	}
	return v, nil
}

func formatIVec(v geom.IVec) string {
	return fmt.Sprintf("[%d, %d, %d]", v[0], v[1], v[2])
}

func formatFloat(x float64) string {
	return strconv.FormatFloat(x, 'g', -1, 64)
}
