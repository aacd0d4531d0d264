// helper.go --  This file is part of goHF project.
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

// Package linalg collects the dense linear algebra the SCF code needs:
// symmetric and generalized eigensolves, the half-inverse overlap,
// traces and the block packing of per-l matrices.
package linalg

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// ErrEigen is returned when a symmetric eigendecomposition fails.
var ErrEigen = errors.New("linalg: eigendecomposition failed")

// Symmetrize returns (A + Aᵀ)/2 as a SymDense.
func Symmetrize(A mat.Matrix) *mat.SymDense {
	n, _ := A.Dims()
	res := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			res.SetSym(i, j, 0.5*(A.At(i, j)+A.At(j, i)))
		}
	}
	return res
}

// SqrtInverse returns the symmetric S^{-1/2}. S must be positive definite.
func SqrtInverse(S mat.Matrix) (*mat.Dense, error) {
	n_basis, _ := S.Dims()
	var eigsym mat.EigenSym
	if ok := eigsym.Factorize(Symmetrize(S), true); !ok {
		return nil, fmt.Errorf("overlap: %w", ErrEigen)
	}
	vals := eigsym.Values(nil)
	var ev mat.Dense
	eigsym.VectorsTo(&ev)

	sqrtVec := make([]float64, n_basis)
	for i, v := range vals {
		if v <= 0 {
			return nil, fmt.Errorf("linalg: overlap eigenvalue %d is %e, matrix is not positive definite", i, v)
		}
		sqrtVec[i] = 1.0 / math.Sqrt(v)
	}
	diagM := mat.NewDiagDense(n_basis, sqrtVec)

	var res mat.Dense
	res.Mul(&ev, diagM)
	res.Mul(&res, ev.T())
	return &res, nil
}

// Cond returns the 2-norm condition number of S.
func Cond(S mat.Matrix) float64 {
	return mat.Cond(S, 2)
}

// EigGSym solves F x = e S x through the half-inverse overlap Sinvh.
// Eigenvalues are ascending; the columns of C are the eigenvectors.
func EigGSym(F, Sinvh mat.Matrix) ([]float64, *mat.Dense, error) {
	var Forth mat.Dense
	Forth.Mul(Sinvh.T(), F)
	Forth.Mul(&Forth, Sinvh)

	var eigsym mat.EigenSym
	if ok := eigsym.Factorize(Symmetrize(&Forth), true); !ok {
		return nil, nil, fmt.Errorf("fock: %w", ErrEigen)
	}
	vals := eigsym.Values(nil)
	var ev mat.Dense
	eigsym.VectorsTo(&ev)

	C := new(mat.Dense)
	C.Mul(Sinvh, &ev)
	return vals, C, nil
}

// Trace returns tr(A B) without forming the product.
func Trace(A, B mat.Matrix) float64 {
	r, c := A.Dims()
	res := 0.0
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			res += A.At(i, j) * B.At(j, i)
		}
	}
	return res
}

// Format renders a matrix for debug output.
func Format(D mat.Matrix) string {
	fa := mat.Formatted(D, mat.Prefix("    "), mat.Squeeze())
	return fmt.Sprintf("    %.8f\n", fa)
}
