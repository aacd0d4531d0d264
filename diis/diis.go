// diis.go --  This file is part of goHF project.
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

// Package diis implements Pulay's direct inversion in the iterative
// subspace for one or two spin channels.
//
// The residual of every stored Fock matrix is the orthogonalized commutator
// Sinvhᵀ (F P S - S P F) Sinvh. Unrestricted runs share the extrapolation
// coefficients between the spins.
package diis

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// ErrEmpty is returned by Extrapolate before the first Update.
var ErrEmpty = errors.New("diis: no Fock matrices stored")

// Options of the accelerator.
type Options struct {
	// Residual above which the latest Fock matrix is used as is.
	Eps float64
	// Residual below which pure DIIS extrapolation is used.
	Thr float64
	// Number of stored iterations.
	Order int
}

type entry struct {
	F, R []*mat.Dense
	E    float64
	err  float64
}

// DIIS keeps a bounded history of Fock matrices and their residuals.
type DIIS struct {
	S, Sinvh mat.Matrix
	opts     Options
	hist     []entry
}

// New returns an empty accelerator for the overlap S and its half inverse.
func New(S, Sinvh mat.Matrix, opts Options) *DIIS {
	if opts.Order < 1 {
		opts.Order = 1
	}
	return &DIIS{S: S, Sinvh: Sinvh, opts: opts}
}

// Len is the number of stored iterations.
func (d *DIIS) Len() int {
	return len(d.hist)
}

func (d *DIIS) residual(F, P mat.Matrix) *mat.Dense {
	var term1, term2 mat.Dense
	term1.Mul(F, P)
	term1.Mul(&term1, d.S)
	term2.Mul(d.S, P)
	term2.Mul(&term2, F)
	term1.Sub(&term1, &term2)
	term1.Mul(d.Sinvh.T(), &term1)
	term1.Mul(&term1, d.Sinvh)
	return &term1
}

func rms(R *mat.Dense) float64 {
	res := mat.DenseCopyOf(R)
	res.MulElem(res, res)
	return math.Sqrt(stat.Mean(res.RawMatrix().Data, nil))
}

// Update stores the Fock matrices F and densities P of every spin channel
// together with the energy E, and returns the residual: the largest RMS
// commutator over the channels.
func (d *DIIS) Update(F, P []*mat.Dense, E float64) float64 {
	if len(F) != len(P) {
		panic(fmt.Sprintf("diis: %d Fock matrices and %d densities", len(F), len(P)))
	}
	e := entry{E: E}
	for s := range F {
		R := d.residual(F[s], P[s])
		e.F = append(e.F, mat.DenseCopyOf(F[s]))
		e.R = append(e.R, R)
		e.err = math.Max(e.err, rms(R))
	}
	d.hist = append(d.hist, e)
	if len(d.hist) > d.opts.Order {
		d.hist = d.hist[len(d.hist)-d.opts.Order:]
	}
	return e.err
}

// buildB returns the DIIS matrix bordered by -1.
func (d *DIIS) buildB() *mat.Dense {
	n := len(d.hist)
	res := mat.NewDense(n+1, n+1, nil)
	for i := 0; i < n; i++ {
		res.Set(i, n, -1)
		res.Set(n, i, -1)
	}
	scale := 0.0
	for i := range d.hist {
		for j := 0; j <= i; j++ {
			b := 0.0
			for s := range d.hist[i].R {
				var prod mat.Dense
				prod.MulElem(d.hist[i].R[s], d.hist[j].R[s])
				b += mat.Sum(&prod)
			}
			res.Set(i, j, b)
			res.Set(j, i, b)
		}
		scale = math.Max(scale, res.At(i, i))
	}
	if scale > 0 {
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				res.Set(i, j, res.At(i, j)/scale)
			}
		}
	}
	return res
}

// coefficients solves the DIIS equations by LU decomposition.
func (d *DIIS) coefficients() ([]float64, error) {
	n := len(d.hist)
	bmat := d.buildB()
	rhs := mat.NewVecDense(n+1, nil)
	rhs.SetVec(n, -1)

	var lu mat.LU
	lu.Factorize(bmat)
	var coefs mat.VecDense
	if err := lu.SolveVecTo(&coefs, false, rhs); err != nil {
		return nil, err
	}
	res := make([]float64, n)
	for i := range res {
		res[i] = coefs.AtVec(i)
		if math.IsNaN(res[i]) || math.IsInf(res[i], 0) {
			return nil, mat.ErrSingular
		}
	}
	return res, nil
}

func (d *DIIS) combine(c []float64) []*mat.Dense {
	res := make([]*mat.Dense, len(d.hist[0].F))
	for s := range res {
		r, cc := d.hist[0].F[s].Dims()
		res[s] = mat.NewDense(r, cc, nil)
		for i := range d.hist {
			if c[i] == 0 {
				continue
			}
			var fpart mat.Dense
			fpart.Scale(c[i], d.hist[i].F[s])
			res[s].Add(res[s], &fpart)
		}
	}
	return res
}

// lowest selects the stored iteration of the lowest energy.
func (d *DIIS) lowest() []float64 {
	c := make([]float64, len(d.hist))
	imin := 0
	for i := range d.hist {
		if d.hist[i].E < d.hist[imin].E {
			imin = i
		}
	}
	c[imin] = 1
	return c
}

// Extrapolate returns the new Fock matrices. Above Eps the latest Fock
// matrix is used, below Thr the DIIS extrapolation, and in between a
// linear mix of the two. A singular DIIS system falls back to the stored
// Fock matrices of the lowest energy.
func (d *DIIS) Extrapolate() ([]*mat.Dense, error) {
	n := len(d.hist)
	if n == 0 {
		return nil, ErrEmpty
	}
	latest := make([]float64, n)
	latest[n-1] = 1
	err := d.hist[n-1].err
	if n == 1 || err >= d.opts.Eps {
		return d.combine(latest), nil
	}

	c, lerr := d.coefficients()
	if lerr != nil {
		return d.combine(d.lowest()), nil
	}
	if err > d.opts.Thr && d.opts.Eps > d.opts.Thr {
		w := (err - d.opts.Thr) / (d.opts.Eps - d.opts.Thr)
		for i := range c {
			c[i] = (1 - w) * c[i]
		}
		c[n-1] += w
	}
	return d.combine(c), nil
}
