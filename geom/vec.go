/*package geom contains the small amount of vector and grid arithmetic needed
to address particles and voxels.
*/
package geom

import (
	"math"
)

// Vec is a three dimensional vector.
type Vec [3]float64

// IVec is a three dimensional integer vector. Voxel coordinates and integer
// offsets are stored as IVecs.
type IVec [3]int

// Sub returns the elementwise difference v - u.
func (v *Vec) Sub(u *Vec) Vec {
	out := Vec{}
	v.SubAt(u, &out)
	return out
}

// SubAt writes v - u into out. out may alias v or u.
func (v *Vec) SubAt(u, out *Vec) {
	for i := 0; i < 3; i++ {
		out[i] = v[i] - u[i]
	}
}

// Add returns the elementwise sum v + u.
func (v *Vec) Add(u *Vec) Vec {
	return Vec{v[0] + u[0], v[1] + u[1], v[2] + u[2]}
}

// AddSelf adds u to v in place.
func (v *Vec) AddSelf(u *Vec) {
	for i := 0; i < 3; i++ {
		v[i] += u[i]
	}
}

// Scale returns v multiplied by k.
func (v *Vec) Scale(k float64) Vec {
	return Vec{v[0] * k, v[1] * k, v[2] * k}
}

// Div returns the elementwise quotient v / u.
func (v *Vec) Div(u *Vec) Vec {
	return Vec{v[0] / u[0], v[1] / u[1], v[2] / u[2]}
}

// Floor rounds every component of v towards negative infinity.
func (v *Vec) Floor() IVec {
	return IVec{
		int(math.Floor(v[0])), int(math.Floor(v[1])), int(math.Floor(v[2])),
	}
}

// Sub returns the elementwise difference v - u.
func (v IVec) Sub(u IVec) IVec {
	return IVec{v[0] - u[0], v[1] - u[1], v[2] - u[2]}
}

// Add returns the elementwise sum v + u.
func (v IVec) Add(u IVec) IVec {
	return IVec{v[0] + u[0], v[1] + u[1], v[2] + u[2]}
}

// Vec converts v to a floating point vector.
func (v IVec) Vec() Vec {
	return Vec{float64(v[0]), float64(v[1]), float64(v[2])}
}
