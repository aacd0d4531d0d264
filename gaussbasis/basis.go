// basis.go --  This file is part of goHF project.
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

// Package gaussbasis is a radial basis of primitive Gaussians
// u(r) = N r exp(-alpha r^2) shared by every angular momentum. All one- and
// two-electron integrals are analytic or reduced to one-dimensional
// quadratures; exchange-correlation terms are integrated on a radial
// Gauss-Legendre grid.
package gaussbasis

import (
	"errors"
	"fmt"
	"math"

	"example.com/gosad/linalg"
	"golang.org/x/exp/slices"
	"gonum.org/v1/gonum/mat"
)

var (
	// ErrUnsupported is returned for operators the basis cannot form.
	ErrUnsupported = errors.New("gaussbasis: unsupported operator")
	// ErrBasis is returned for an invalid set of exponents.
	ErrBasis = errors.New("gaussbasis: invalid basis")
)

// RadialGaussian is one primitive radial function.
type RadialGaussian struct {
	Alpha float64
}

// NormCoeff normalizes the radial function to one.
func (g RadialGaussian) NormCoeff() float64 {
	return math.Sqrt(4.0 * math.Pow(2.0*g.Alpha, 1.5) / math.Sqrt(math.Pi))
}

// Value of the normalized radial function at r.
func (g RadialGaussian) Value(r float64) float64 {
	return g.NormCoeff() * r * math.Exp(-g.Alpha*r*r)
}

// EvenTempered returns n exponents alpha0 * beta^k.
func EvenTempered(alpha0, beta float64, n int) []float64 {
	res := make([]float64, n)
	for k := range res {
		res[k] = alpha0 * math.Pow(beta, float64(k))
	}
	return res
}

// Options of the quadrature grid.
type Options struct {
	// Gauss-Legendre nodes per radial element.
	Nodes int `yaml:"nodes" validate:"gte=2"`
	// Number of radial elements.
	Elements int `yaml:"elements" validate:"gte=2"`
}

// DefaultOptions gives a grid accurate to about 1e-10 in the electron
// count for even-tempered sets.
var DefaultOptions = Options{Nodes: 24, Elements: 30}

// Basis is the radial Gaussian basis of one atom.
type Basis struct {
	Z    float64
	Lmax int
	Prim []RadialGaussian

	norm []float64

	S, Sinvh, T, Tl, Vnuc *mat.Dense

	pairs *pairTable
	grid  *grid
}

// New computes the one-electron matrices and the two-electron tables of
// the basis. Exponents must be positive and distinct.
func New(Z float64, exps []float64, lmax int, opts Options) (*Basis, error) {
	if len(exps) == 0 {
		return nil, fmt.Errorf("%w: no exponents", ErrBasis)
	}
	if lmax < 0 {
		return nil, fmt.Errorf("%w: lmax %d", ErrBasis, lmax)
	}
	sorted := slices.Clone(exps)
	slices.Sort(sorted)
	for i, a := range sorted {
		if !(a > 0) || math.IsInf(a, 0) {
			return nil, fmt.Errorf("%w: exponent %g", ErrBasis, a)
		}
		if i > 0 && a == sorted[i-1] {
			return nil, fmt.Errorf("%w: duplicate exponent %g", ErrBasis, a)
		}
	}
	if opts.Nodes <= 0 || opts.Elements <= 0 {
		opts = DefaultOptions
	}

	b := &Basis{Z: Z, Lmax: lmax}
	for _, a := range exps {
		g := RadialGaussian{Alpha: a}
		b.Prim = append(b.Prim, g)
		b.norm = append(b.norm, g.NormCoeff())
	}
	b.S = b.overlap()
	b.T = b.kinetic()
	b.Tl = b.kineticL()
	b.Vnuc = b.nuclear()

	var err error
	if b.Sinvh, err = linalg.SqrtInverse(b.S); err != nil {
		return nil, fmt.Errorf("gaussbasis: %w", err)
	}
	b.pairs = newPairTable(b, 2*lmax)
	b.grid = newGrid(sorted[0], sorted[len(sorted)-1], opts)
	return b, nil
}

// Nbf is the number of radial functions.
func (b *Basis) Nbf() int {
	return len(b.Prim)
}

func (b *Basis) Overlap() mat.Matrix            { return b.S }
func (b *Basis) HalfInverseOverlap() mat.Matrix { return b.Sinvh }
func (b *Basis) Kinetic() mat.Matrix            { return b.T }
func (b *Basis) KineticL() mat.Matrix           { return b.Tl }
func (b *Basis) Nuclear() mat.Matrix            { return b.Vnuc }

// Charge is the nuclear charge.
func (b *Basis) Charge() float64 {
	return b.Z
}

// Cond is the condition number of the overlap matrix.
func (b *Basis) Cond() float64 {
	return linalg.Cond(b.S)
}
