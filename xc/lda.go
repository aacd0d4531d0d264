// lda.go --  This file is part of goHF project.
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
package xc

import "math"

// Chachiyo correlation parameters, paramagnetic and ferromagnetic.
var (
	chachiyoA0 = (math.Ln2 - 1.0) / (2.0 * math.Pi * math.Pi)
	chachiyoB0 = 20.4562557
	chachiyoA1 = (math.Ln2 - 1.0) / (4.0 * math.Pi * math.Pi)
	chachiyoB1 = 27.4203609
)

// Eval returns the energy per unit volume and the spin potentials of the
// weighted kernel at spin densities ra, rb.
func (f Functional) Eval(ra, rb float64) (e, va, vb float64) {
	if !f.HasKernel() {
		return 0, 0, 0
	}
	ra = math.Max(ra, 0)
	rb = math.Max(rb, 0)
	switch f.Kernel {
	case SlaterExchange:
		e, va, vb = slater(ra, rb)
	case ChachiyoCorrelation:
		e, va, vb = chachiyo(ra, rb)
	}
	return f.Weight * e, f.Weight * va, f.Weight * vb
}

func slater(ra, rb float64) (e, va, vb float64) {
	cx := math.Cbrt(6.0 / math.Pi)
	e = -0.75 * cx * (math.Pow(ra, 4.0/3.0) + math.Pow(rb, 4.0/3.0))
	va = -cx * math.Cbrt(ra)
	vb = -cx * math.Cbrt(rb)
	return e, va, vb
}

func chachiyoEps(a, b, rs float64) (eps, deps float64) {
	x := 1.0 + b/rs + b/(rs*rs)
	eps = a * math.Log(x)
	deps = a * (-b/(rs*rs) - 2.0*b/(rs*rs*rs)) / x
	return eps, deps
}

func chachiyo(ra, rb float64) (e, va, vb float64) {
	rho := ra + rb
	if rho <= 0 {
		return 0, 0, 0
	}
	rs := math.Cbrt(3.0 / (4.0 * math.Pi * rho))
	zeta := (ra - rb) / rho
	zeta = math.Max(-1.0, math.Min(1.0, zeta))

	e0, de0 := chachiyoEps(chachiyoA0, chachiyoB0, rs)
	e1, de1 := chachiyoEps(chachiyoA1, chachiyoB1, rs)

	den := math.Pow(2.0, 4.0/3.0) - 2.0
	fz := (math.Pow(1+zeta, 4.0/3.0) + math.Pow(1-zeta, 4.0/3.0) - 2.0) / den
	dfz := 4.0 / 3.0 * (math.Cbrt(1+zeta) - math.Cbrt(1-zeta)) / den

	ec := e0 + (e1-e0)*fz
	decdrs := de0 + (de1-de0)*fz
	decdz := (e1 - e0) * dfz

	common := ec - rs/3.0*decdrs
	va = common - (zeta-1.0)*decdz
	vb = common - (zeta+1.0)*decdz
	return rho * ec, va, vb
}
