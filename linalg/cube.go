// cube.go --  This file is part of goHF project.
// Mirzaeva Irina, 2023
//
//	goHF is distributed in the hope that it will be useful,
//	but WITHOUT ANY WARRANTY; without even the implied warranty
//	of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
//	See the GNU General Public License for more details.
//
//	You should have received a copy of the GNU General Public License
//	along with this program.  If not, see http://www.gnu.org/licenses/
//
// ------------------------------------------------
package linalg

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Cube is a stack of equally shaped matrices, slice l belonging to
// angular channel l.
type Cube []*mat.Dense

// NewCube returns n zero slices of size r x c.
func NewCube(r, c, n int) Cube {
	res := make(Cube, n)
	for l := range res {
		res[l] = mat.NewDense(r, c, nil)
	}
	return res
}

// Replicate returns n copies of M.
func Replicate(M mat.Matrix, n int) Cube {
	res := make(Cube, n)
	for l := range res {
		res[l] = mat.DenseCopyOf(M)
	}
	return res
}

// Dims returns the dimensions of one slice.
func (c Cube) Dims() (int, int) {
	if len(c) == 0 {
		return 0, 0
	}
	return c[0].Dims()
}

func (c Cube) Clone() Cube {
	if c == nil {
		return nil
	}
	res := make(Cube, len(c))
	for l := range c {
		res[l] = mat.DenseCopyOf(c[l])
	}
	return res
}

// Zero sets every slice to zero.
func (c Cube) Zero() {
	for l := range c {
		c[l].Zero()
	}
}

// Add adds b slice by slice into the receiver.
func (c Cube) Add(b Cube) {
	c.AddScaled(1.0, b)
}

// AddScaled adds alpha*b slice by slice into the receiver.
func (c Cube) AddScaled(alpha float64, b Cube) {
	if len(b) != len(c) {
		panic(fmt.Sprintf("linalg: cube slice mismatch %d != %d", len(c), len(b)))
	}
	for l := range c {
		c[l].Apply(func(i, j int, v float64) float64 {
			return v + alpha*b[l].At(i, j)
		}, c[l])
	}
}

// Sum returns the sum over all slices.
func (c Cube) Sum() *mat.Dense {
	r, cc := c.Dims()
	res := mat.NewDense(r, cc, nil)
	for l := range c {
		res.Add(res, c[l])
	}
	return res
}

// SuperMat places n copies of M on the diagonal of a block matrix.
func SuperMat(M mat.Matrix, n int) *mat.Dense {
	return SuperCube(Replicate(M, n))
}

// SuperCube packs the slices of c into one block-diagonal matrix.
func SuperCube(c Cube) *mat.Dense {
	r, cc := c.Dims()
	res := mat.NewDense(r*len(c), cc*len(c), nil)
	for l := range c {
		res.Slice(l*r, (l+1)*r, l*cc, (l+1)*cc).(*mat.Dense).Copy(c[l])
	}
	return res
}

// MiniMat is the inverse of SuperCube: it extracts n diagonal blocks.
func MiniMat(M mat.Matrix, n int) Cube {
	r, cc := M.Dims()
	if r%n != 0 || cc%n != 0 {
		panic(fmt.Sprintf("linalg: %dx%d matrix does not split into %d blocks", r, cc, n))
	}
	r /= n
	cc /= n
	res := NewCube(r, cc, n)
	for l := range res {
		res[l].Copy(subMatrix(M, l*r, l*cc, r, cc))
	}
	return res
}

type slicer interface {
	Slice(i, k, j, l int) mat.Matrix
}

func subMatrix(M mat.Matrix, i, j, r, c int) mat.Matrix {
	if s, ok := M.(slicer); ok {
		return s.Slice(i, i+r, j, j+c)
	}
	return mat.DenseCopyOf(M).Slice(i, i+r, j, j+c)
}

// AngularBasis lists the (l, m) pairs of the full angular representation,
// l-major with m running from -min(l,mmax) to min(l,mmax).
func AngularBasis(lmax, mmax int) (lval, mval []int) {
	for l := 0; l <= lmax; l++ {
		mm := min(l, mmax)
		for m := -mm; m <= mm; m++ {
			lval = append(lval, l)
			mval = append(mval, m)
		}
	}
	return lval, mval
}

// FullDensity expands a per-l radial density into the full angular
// representation. Every (l,m) block carries Pl/(2l+1).
func FullDensity(P Cube) *mat.Dense {
	lmax := len(P) - 1
	lval, _ := AngularBasis(lmax, lmax)
	nrad, _ := P.Dims()
	res := mat.NewDense(nrad*len(lval), nrad*len(lval), nil)
	for ang, l := range lval {
		blk := res.Slice(ang*nrad, (ang+1)*nrad, ang*nrad, (ang+1)*nrad).(*mat.Dense)
		blk.Scale(1.0/float64(2*l+1), P[l])
	}
	return res
}

// MAverage averages the (l,m) diagonal blocks of a full angular matrix
// over m, giving one radial matrix per l.
func MAverage(M mat.Matrix, nrad int, lval, mval []int) Cube {
	lmax := 0
	for _, l := range lval {
		lmax = max(lmax, l)
	}
	res := NewCube(nrad, nrad, lmax+1)
	count := make([]int, lmax+1)
	for ang, l := range lval {
		if mval[ang] < -l || mval[ang] > l {
			panic(fmt.Sprintf("linalg: invalid angular pair l=%d m=%d", l, mval[ang]))
		}
		res[l].Add(res[l], subMatrix(M, ang*nrad, ang*nrad, nrad, nrad))
		count[l]++
	}
	for l := range res {
		if count[l] != 2*l+1 {
			panic(fmt.Sprintf("linalg: angular shell l=%d has %d m components", l, count[l]))
		}
		res[l].Scale(1.0/float64(count[l]), res[l])
	}
	return res
}
