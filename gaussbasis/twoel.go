// twoel.go --  This file is part of goHF project.
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
	"fmt"
	"math"

	"example.com/gosad/linalg"
	"gonum.org/v1/gonum/integrate/quad"
	"gonum.org/v1/gonum/mat"
)

// Legendre nodes per subinterval of the multipole quadrature.
const multipoleNodes = 16

// pairTable holds the radial multipole integrals
//
//	I_L(p,q) = int int r1^2 r2^2 exp(-p r1^2 - q r2^2) r<^L / r>^(L+1)
//
// for every pair of distinct exponent sums of the basis.
type pairTable struct {
	n    int
	pidx [][]int
	sums []float64
	// tab[L] is indexed by pair sums
	tab []*mat.Dense
}

func newPairTable(b *Basis, Lmax int) *pairTable {
	n := b.Nbf()
	t := &pairTable{n: n, pidx: make([][]int, n)}
	seen := make(map[float64]int)
	for i := 0; i < n; i++ {
		t.pidx[i] = make([]int, n)
		for j := 0; j < n; j++ {
			p := b.Prim[i].Alpha + b.Prim[j].Alpha
			k, ok := seen[p]
			if !ok {
				k = len(t.sums)
				seen[p] = k
				t.sums = append(t.sums, p)
			}
			t.pidx[i][j] = k
		}
	}

	np := len(t.sums)
	for L := 0; L <= Lmax; L++ {
		tab := mat.NewDense(np, np, nil)
		for u := 0; u < np; u++ {
			for v := 0; v <= u; v++ {
				val := multipole(L, t.sums[u], t.sums[v])
				tab.Set(u, v, val)
				tab.Set(v, u, val)
			}
		}
		t.tab = append(t.tab, tab)
	}
	return t
}

// multipole returns I_L(p, q).
func multipole(L int, p, q float64) float64 {
	if L == 0 {
		return sqrtPi / (8.0 * p * q * math.Sqrt(p+q))
	}
	return halfMultipole(L, p, q) + halfMultipole(L, q, p)
}

// halfMultipole integrates the region r2 < r1, with r2 = t r1:
//
//	3 sqrt(pi)/8 int_0^1 t^(2+L) (p + q t^2)^(-5/2) dt
//
// The integrand peaks near t = sqrt(p/q), so [0,1] is split into
// geometrically shrinking subintervals.
func halfMultipole(L int, p, q float64) float64 {
	f := func(t float64) float64 {
		return math.Pow(t, float64(2+L)) * math.Pow(p+q*t*t, -2.5)
	}
	tmin := 1e-4 * math.Min(1.0, math.Sqrt(p/q))
	res := 0.0
	hi := 1.0
	for hi > tmin {
		lo := 0.5 * hi
		res += quad.Fixed(f, lo, hi, multipoleNodes, quad.Legendre{}, 0)
		hi = lo
	}
	res += quad.Fixed(f, 0, hi, multipoleNodes, quad.Legendre{}, 0)
	return 3.0 * sqrtPi / 8.0 * res
}

// radialIntegral returns R^L(ab;cd), electron one in u_a u_b and electron
// two in u_c u_d.
func (b *Basis) radialIntegral(L, ia, ib, ic, id int) float64 {
	t := b.pairs
	N := b.norm[ia] * b.norm[ib] * b.norm[ic] * b.norm[id]
	return N * t.tab[L].At(t.pidx[ia][ib], t.pidx[ic][id])
}

// Coulomb returns the Hartree potential matrix of the total radial density
// P, J_ij = sum_kl R^0(ij;kl) P_kl.
func (b *Basis) Coulomb(P mat.Matrix) *mat.Dense {
	n_basis := b.Nbf()
	res := mat.NewDense(n_basis, n_basis, nil)
	for i := 0; i < n_basis; i++ {
		for j := 0; j <= i; j++ {
			v := 0.0
			for k := 0; k < n_basis; k++ {
				for l := 0; l < n_basis; l++ {
					v += b.radialIntegral(0, i, j, k, l) * P.At(k, l)
				}
			}
			res.Set(i, j, v)
			res.Set(j, i, v)
		}
	}
	return res
}

// Exchange returns the spherically averaged exchange matrices
//
//	K^l_ij = -sum_l' (2l'+1) sum_L (l L l';0 0 0)^2 sum_kl D^l'_kl R^L(ik;jl)
//
// where D holds the per-spin, per-m densities of every shell.
func (b *Basis) Exchange(D linalg.Cube) linalg.Cube {
	lmax := len(D) - 1
	if 2*lmax >= len(b.pairs.tab) {
		panic(fmt.Sprintf("gaussbasis: exchange for lmax %d needs multipoles up to L=%d, basis has %d", lmax, 2*lmax, len(b.pairs.tab)-1))
	}
	n_basis := b.Nbf()
	K := linalg.NewCube(n_basis, n_basis, lmax+1)
	for lp := 0; lp <= lmax; lp++ {
		if mat.Sum(absDense(D[lp])) == 0 {
			continue
		}
		for L := 0; L <= 2*lmax; L++ {
			var X *mat.Dense
			for l := 0; l <= lmax; l++ {
				w := threeJ0(l, L, lp)
				if w == 0 {
					continue
				}
				if X == nil {
					X = b.exchangeKernel(L, D[lp])
				}
				K[l].Apply(func(i, j int, v float64) float64 {
					return v - float64(2*lp+1)*w*w*X.At(i, j)
				}, K[l])
			}
		}
	}
	return K
}

func (b *Basis) exchangeKernel(L int, D mat.Matrix) *mat.Dense {
	n_basis := b.Nbf()
	res := mat.NewDense(n_basis, n_basis, nil)
	for i := 0; i < n_basis; i++ {
		for j := 0; j <= i; j++ {
			v := 0.0
			for k := 0; k < n_basis; k++ {
				for l := 0; l < n_basis; l++ {
					v += D.At(k, l) * b.radialIntegral(L, i, k, j, l)
				}
			}
			res.Set(i, j, v)
			res.Set(j, i, v)
		}
	}
	return res
}

// RangeSeparatedExchange is not available for the Gaussian basis.
func (b *Basis) RangeSeparatedExchange(D linalg.Cube, omega float64) (linalg.Cube, error) {
	return nil, fmt.Errorf("%w: range-separated exchange (omega=%g)", ErrUnsupported, omega)
}

func absDense(A mat.Matrix) *mat.Dense {
	res := mat.DenseCopyOf(A)
	res.Apply(func(i, j int, v float64) float64 { return math.Abs(v) }, res)
	return res
}

// threeJ0 returns the Wigner 3j symbol (l1 l2 l3; 0 0 0).
func threeJ0(l1, l2, l3 int) float64 {
	J := l1 + l2 + l3
	if J%2 != 0 || l3 < abs(l1-l2) || l3 > l1+l2 {
		return 0
	}
	g := J / 2
	lnf := func(n int) float64 {
		v, _ := math.Lgamma(float64(n) + 1)
		return v
	}
	ln := 0.5*(lnf(J-2*l1)+lnf(J-2*l2)+lnf(J-2*l3)-lnf(J+1)) +
		lnf(g) - lnf(g-l1) - lnf(g-l2) - lnf(g-l3)
	sign := 1.0
	if g%2 != 0 {
		sign = -1.0
	}
	return sign * math.Exp(ln)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
