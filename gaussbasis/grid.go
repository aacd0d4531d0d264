// grid.go --  This file is part of goHF project.
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
package gaussbasis

import (
	"cmp"
	"fmt"
	"math"

	"example.com/gosad/xc"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/integrate/quad"
	"gonum.org/v1/gonum/mat"
	"golang.org/x/exp/slices"
	"gonum.org/v1/gonum/mathext"
)

// grid is a radial Gauss-Legendre quadrature for int_0^inf f(r) dr. The
// first element is [0, rmin]; the others grow geometrically up to rmax.
type grid struct {
	r, w []float64
}

func newGrid(amin, amax float64, opts Options) *grid {
	rmin := 0.01 / math.Sqrt(amax)
	rmax := math.Sqrt(60.0 / amin)

	bounds := []float64{0, rmin}
	if opts.Elements > 1 {
		ratio := math.Pow(rmax/rmin, 1.0/float64(opts.Elements-1))
		for e := 1; e < opts.Elements; e++ {
			bounds = append(bounds, rmin*math.Pow(ratio, float64(e)))
		}
	}

	type node struct{ r, w float64 }
	var nodes []node
	x := make([]float64, opts.Nodes)
	w := make([]float64, opts.Nodes)
	for e := 0; e+1 < len(bounds); e++ {
		quad.Legendre{}.FixedLocations(x, w, bounds[e], bounds[e+1])
		for i := range x {
			nodes = append(nodes, node{x[i], w[i]})
		}
	}
	// Legendre nodes come out in descending order within an element.
	slices.SortFunc(nodes, func(a, b node) int {
		return cmp.Compare(a.r, b.r)
	})

	g := &grid{r: make([]float64, len(nodes)), w: make([]float64, len(nodes))}
	for i, n := range nodes {
		g.r[i], g.w[i] = n.r, n.w
	}
	return g
}

// Radii are the radial quadrature nodes.
func (b *Basis) Radii() []float64 {
	return append([]float64(nil), b.grid.r...)
}

// QuadratureWeights are the weights of int f(r) dr.
func (b *Basis) QuadratureWeights() []float64 {
	return append([]float64(nil), b.grid.w...)
}

// pairSum evaluates sum_ij P_ij N_i N_j f(p_ij) where f is a radial
// function of the pair exponent.
func (b *Basis) pairSum(P mat.Matrix, f func(p float64) float64) float64 {
	n_basis := b.Nbf()
	res := 0.0
	for i := 0; i < n_basis; i++ {
		for j := 0; j < n_basis; j++ {
			pij := P.At(i, j)
			if pij == 0 {
				continue
			}
			res += pij * b.norm[i] * b.norm[j] * f(b.Prim[i].Alpha+b.Prim[j].Alpha)
		}
	}
	return res
}

func (b *Basis) density(P mat.Matrix, r float64) float64 {
	return b.pairSum(P, func(p float64) float64 {
		return math.Exp(-p*r*r) / (4.0 * math.Pi)
	})
}

// ElectronDensity tabulates rho(r) of the total radial density matrix P.
func (b *Basis) ElectronDensity(P mat.Matrix) []float64 {
	res := make([]float64, len(b.grid.r))
	for g, r := range b.grid.r {
		res[g] = b.density(P, r)
	}
	return res
}

// ElectronDensityGradient tabulates d rho / dr.
func (b *Basis) ElectronDensityGradient(P mat.Matrix) []float64 {
	res := make([]float64, len(b.grid.r))
	for g, r := range b.grid.r {
		res[g] = b.pairSum(P, func(p float64) float64 {
			return -2.0 * p * r * math.Exp(-p*r*r) / (4.0 * math.Pi)
		})
	}
	return res
}

// ElectronDensityLaplacian tabulates the Laplacian of rho.
func (b *Basis) ElectronDensityLaplacian(P mat.Matrix) []float64 {
	res := make([]float64, len(b.grid.r))
	for g, r := range b.grid.r {
		res[g] = b.pairSum(P, func(p float64) float64 {
			return (4.0*p*p*r*r - 6.0*p) * math.Exp(-p*r*r) / (4.0 * math.Pi)
		})
	}
	return res
}

// CoulombScreening tabulates r V_H(r), the nuclear charge screened by the
// electrons inside r.
func (b *Basis) CoulombScreening(P mat.Matrix) []float64 {
	gamma32 := math.Gamma(1.5)
	res := make([]float64, len(b.grid.r))
	for g, r := range b.grid.r {
		res[g] = b.pairSum(P, func(q float64) float64 {
			inner := 0.5 * math.Pow(q, -1.5) * gamma32 * mathext.GammaIncReg(1.5, q*r*r)
			outer := r * math.Exp(-q*r*r) / (2.0 * q)
			return inner + outer
		})
	}
	return res
}

// XCScreening tabulates r v_xc(r) averaged over the spin channels.
func (b *Basis) XCScreening(x, c xc.Functional, P []*mat.Dense, thr float64) []float64 {
	res := make([]float64, len(b.grid.r))
	for g, r := range b.grid.r {
		va, vb, _, ok := b.pointXC(x, c, P, r, thr)
		if !ok {
			continue
		}
		res[g] = 0.5 * r * (va + vb)
	}
	return res
}

// Orbitals tabulates the radial orbitals u(r)/r of the columns of C,
// one row per grid point.
func (b *Basis) Orbitals(C mat.Matrix) *mat.Dense {
	_, norb := C.Dims()
	res := mat.NewDense(len(b.grid.r), norb, nil)
	bf := make([]float64, b.Nbf())
	for g, r := range b.grid.r {
		for i, prim := range b.Prim {
			bf[i] = b.norm[i] * math.Exp(-prim.Alpha*r*r)
		}
		for o := 0; o < norb; o++ {
			v := 0.0
			for i := range bf {
				v += C.At(i, o) * bf[i]
			}
			res.Set(g, o, v)
		}
	}
	return res
}

// pointXC returns the spin potentials and the energy density at r. The
// spin densities are half the total for a single restricted density.
func (b *Basis) pointXC(x, c xc.Functional, P []*mat.Dense, r, thr float64) (va, vb, e float64, ok bool) {
	var ra, rb float64
	switch len(P) {
	case 1:
		ra = 0.5 * b.density(P[0], r)
		rb = ra
	case 2:
		ra = b.density(P[0], r)
		rb = b.density(P[1], r)
	default:
		panic(fmt.Sprintf("gaussbasis: %d density matrices", len(P)))
	}
	if ra+rb < thr {
		return 0, 0, 0, false
	}
	ex, vxa, vxb := x.Eval(ra, rb)
	ec, vca, vcb := c.Eval(ra, rb)
	return vxa + vca, vxb + vcb, ex + ec, true
}

// EvalFxc integrates the functional of the radial densities P (one total
// density when restricted, alpha and beta otherwise) and returns the
// potential matrix of every spin channel. Points with a total density
// below thr are skipped.
func (b *Basis) EvalFxc(x, c xc.Functional, P []*mat.Dense, thr float64) (xc.Result, error) {
	if len(P) != 1 && len(P) != 2 {
		return xc.Result{}, fmt.Errorf("gaussbasis: %d density matrices", len(P))
	}
	n_basis := b.Nbf()
	res := xc.Result{}
	for range P {
		res.V = append(res.V, mat.NewDense(n_basis, n_basis, nil))
	}
	Ptot := mat.DenseCopyOf(P[0])
	if len(P) == 2 {
		Ptot.Add(Ptot, P[1])
	}

	bf := make([]float64, n_basis)
	nel := make([]float64, len(b.grid.r))
	exc := make([]float64, len(b.grid.r))
	for g, r := range b.grid.r {
		w := b.grid.w[g]
		nel[g] = w * 4.0 * math.Pi * r * r * b.density(Ptot, r)

		va, vb, e, ok := b.pointXC(x, c, P, r, thr)
		if !ok {
			continue
		}
		exc[g] = w * 4.0 * math.Pi * r * r * e

		for i, prim := range b.Prim {
			bf[i] = prim.Value(r)
		}
		vs := []float64{va, vb}
		for s := range res.V {
			wv := w * vs[s]
			res.V[s].Apply(func(i, j int, v float64) float64 {
				return v + wv*bf[i]*bf[j]
			}, res.V[s])
		}
	}
	res.E = floats.Sum(exc)
	res.Nel = floats.Sum(nel)
	return res, nil
}

// EvalFxcFull evaluates the functional for densities given in the full
// (l,m) representation. The density is spherically averaged, so the
// potential is the radial one on every (l,m) diagonal block.
func (b *Basis) EvalFxcFull(x, c xc.Functional, Pfull []*mat.Dense, thr float64) (xc.Result, error) {
	n_basis := b.Nbf()
	radial := make([]*mat.Dense, len(Pfull))
	var nang int
	for s, Pf := range Pfull {
		n, _ := Pf.Dims()
		if n%n_basis != 0 {
			return xc.Result{}, fmt.Errorf("gaussbasis: full density of size %d for %d radial functions", n, n_basis)
		}
		nang = n / n_basis
		radial[s] = mat.NewDense(n_basis, n_basis, nil)
		for ang := 0; ang < nang; ang++ {
			blk := Pf.Slice(ang*n_basis, (ang+1)*n_basis, ang*n_basis, (ang+1)*n_basis)
			radial[s].Add(radial[s], blk)
		}
	}

	res, err := b.EvalFxc(x, c, radial, thr)
	if err != nil {
		return res, err
	}
	for s := range res.V {
		full := mat.NewDense(nang*n_basis, nang*n_basis, nil)
		for ang := 0; ang < nang; ang++ {
			full.Slice(ang*n_basis, (ang+1)*n_basis, ang*n_basis, (ang+1)*n_basis).(*mat.Dense).Copy(res.V[s])
		}
		res.V[s] = full
	}
	return res, nil
}
