// integrals.go --  This file is part of goHF project.
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
	"math"

	"gonum.org/v1/gonum/mat"
)

var sqrtPi = math.Sqrt(math.Pi)

// oneElectron fills a symmetric matrix from a function of the two
// exponents; the result is multiplied by the norms.
func (b *Basis) oneElectron(f func(a1, a2 float64) float64) *mat.Dense {
	n_basis := b.Nbf()
	res := mat.NewDense(n_basis, n_basis, nil)
	for i := 0; i < n_basis; i++ {
		for j := 0; j <= i; j++ {
			N := b.norm[i] * b.norm[j]
			v := N * f(b.Prim[i].Alpha, b.Prim[j].Alpha)
			res.Set(i, j, v)
			res.Set(j, i, v)
		}
	}
	return res
}

// <u_i|u_j> = int_0^inf r^2 exp(-p r^2) dr
func (b *Basis) overlap() *mat.Dense {
	return b.oneElectron(func(a1, a2 float64) float64 {
		p := a1 + a2
		return sqrtPi / (4.0 * math.Pow(p, 1.5))
	})
}

// 1/2 <u_i'|u_j'>
func (b *Basis) kinetic() *mat.Dense {
	return b.oneElectron(func(a1, a2 float64) float64 {
		p := a1 + a2
		return 3.0 * a1 * a2 * sqrtPi / (4.0 * math.Pow(p, 2.5))
	})
}

// 1/2 <u_i|r^-2|u_j>, multiplied by l(l+1) for the centrifugal term.
func (b *Basis) kineticL() *mat.Dense {
	return b.oneElectron(func(a1, a2 float64) float64 {
		p := a1 + a2
		return 0.5 * sqrtPi / (2.0 * math.Sqrt(p))
	})
}

// -Z <u_i|r^-1|u_j>
func (b *Basis) nuclear() *mat.Dense {
	return b.oneElectron(func(a1, a2 float64) float64 {
		p := a1 + a2
		return -b.Z / (2.0 * p)
	})
}
