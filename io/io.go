/*package io reads and writes the files used by rigidgrid: gcfg config files,
whitespace separated position tables, binary voxel catalogs and YAML reports.
*/
package io

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/phil-mansfield/table"

	"github.com/phil-mansfield/rigidgrid/geom"
)

const (
	// Endianness used by default when writing catalogs. Catalogs of any
	// endianness can be read.
	DefaultEndiannessFlag int32 = -1

	catalogBlockLen = 1 << 14
	vecSize         = int64(3 * 8)
	maxCatalogCount = int64(math.MaxInt32)
)

// CatalogHeader describes meta-information about a voxel catalog.
type CatalogHeader struct {
	Count       int64   // Number of particles in catalog
	EdgeLength  int64   // Edge length of the particle texture
	Voxels      [3]int64
	VoxelLength float64
	Origin      geom.Vec // Bottom-left-front corner of the grid
}

/*
The binary format used for voxel catalogs is as follows:
    |-- 1 --||-- 2 --||-- 3 --||-- ... 4 ... --|

    1 - (int32) Flag indicating the endianness of the file. 0 indicates a big
        endian byte ordering and -1 indicates a little endian byte order.
    2 - (int32) Size of a CatalogHeader struct. Should be checked for
        consistency.
    3 - (CatalogHeader) Header containing meta-information about the catalog.
    4 - ([][3]float64) Contiguous block of normalized x, y, z coordinates.
*/

func endianness(flag int32) (binary.ByteOrder, error) {
	switch flag {
	case 0:
		return binary.BigEndian, nil
	case -1:
		return binary.LittleEndian, nil
	}
	return nil, fmt.Errorf("Unrecognized endianness flag, %d.", flag)
}

// WriteCatalog writes a header and its normalized positions to w.
func WriteCatalog(w io.Writer, h *CatalogHeader, xs []geom.Vec) error {
	if int64(len(xs)) != h.Count {
		return fmt.Errorf(
			"Header count is %d, but %d positions were given.",
			h.Count, len(xs),
		)
	}

	order, _ := endianness(DefaultEndiannessFlag)
	size := int32(binary.Size(h))

	if err := binary.Write(w, order, DefaultEndiannessFlag); err != nil {
		return err
	}
	if err := binary.Write(w, order, size); err != nil {
		return err
	}
	if err := binary.Write(w, order, h); err != nil {
		return err
	}
	return binary.Write(w, order, xs)
}

// ReadCatalog reads a catalog written by WriteCatalog.
func ReadCatalog(r io.Reader) (*CatalogHeader, []geom.Vec, error) {
	var flag, size int32
	if err := binary.Read(r, binary.LittleEndian, &flag); err != nil {
		return nil, nil, err
	}
	order, err := endianness(flag)
	if err != nil {
		return nil, nil, err
	}

	if err := binary.Read(r, order, &size); err != nil {
		return nil, nil, err
	}

	h := &CatalogHeader{}
	if expected := int32(binary.Size(h)); size != expected {
		return nil, nil, fmt.Errorf(
			"Expected catalog header of size %d, but found one of size %d.",
			expected, size,
		)
	}
	if err := binary.Read(r, order, h); err != nil {
		return nil, nil, err
	}
	if h.Count < 0 {
		return nil, nil, fmt.Errorf("Catalog has negative count, %d.", h.Count)
	} else if h.Count > maxCatalogCount {
		return nil, nil, fmt.Errorf(
			"Catalog count %d is larger than the maximum, %d.",
			h.Count, maxCatalogCount,
		)
	}

	if s, ok := r.(io.Seeker); ok {
		if err := checkRemaining(s, h.Count); err != nil {
			return nil, nil, err
		}
	}

	// Positions are read in blocks so a truncated stream with a large count
	// fails before the whole slice is allocated.
	xs := make([]geom.Vec, 0, minInt64(h.Count, catalogBlockLen))
	block := make([]geom.Vec, minInt64(h.Count, catalogBlockLen))
	for remaining := h.Count; remaining > 0; {
		n := minInt64(remaining, catalogBlockLen)
		if err := binary.Read(r, order, block[:n]); err != nil {
			return nil, nil, fmt.Errorf(
				"Reading %d positions: %w", h.Count, err,
			)
		}
		xs = append(xs, block[:n]...)
		remaining -= n
	}
	return h, xs, nil
}

// checkRemaining returns an error if fewer than count positions are left
// between s's current offset and its end.
func checkRemaining(s io.Seeker, count int64) error {
	cur, err := s.Seek(0, io.SeekCurrent)
	if err != nil {
		return err
	}
	end, err := s.Seek(0, io.SeekEnd)
	if err != nil {
		return err
	}
	if _, err := s.Seek(cur, io.SeekStart); err != nil {
		return err
	}

	if need := count * vecSize; end-cur < need {
		return fmt.Errorf(
			"Catalog claims %d positions (%d bytes), but only %d bytes remain.",
			count, need, end-cur,
		)
	}
	return nil
}

func minInt64(x, y int64) int64 {
	if x < y {
		return x
	}
	return y
}

// WriteCatalogFile is WriteCatalog for a named file.
func WriteCatalogFile(fname string, h *CatalogHeader, xs []geom.Vec) error {
	f, err := os.Create(fname)
	if err != nil {
		return err
	}
	if err := WriteCatalog(f, h, xs); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadCatalogFile is ReadCatalog for a named file.
func ReadCatalogFile(fname string) (*CatalogHeader, []geom.Vec, error) {
	f, err := os.Open(fname)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()
	return ReadCatalog(f)
}

// ReadPositions reads particle positions from a whitespace separated text
// table. cols gives the x, y and z columns. A nil cols reads the first three
// columns.
func ReadPositions(fname string, cols []int) ([]geom.Vec, error) {
	if cols == nil {
		cols = []int{0, 1, 2}
	} else if len(cols) != 3 {
		return nil, fmt.Errorf(
			"Expected three position columns, but got %d.", len(cols),
		)
	}

	tab, err := table.ReadTable(fname, cols, nil)
	if err != nil {
		return nil, fmt.Errorf("Reading positions from %s: %w", fname, err)
	}

	xs := make([]geom.Vec, len(tab[0]))
	for i := range xs {
		xs[i] = geom.Vec{tab[0][i], tab[1][i], tab[2][i]}
	}
	return xs, nil
}
