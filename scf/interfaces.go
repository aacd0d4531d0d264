// interfaces.go --  This file is part of goHF project.
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
package scf

import (
	"example.com/gosad/diis"
	"example.com/gosad/linalg"
	"example.com/gosad/xc"
	"gonum.org/v1/gonum/mat"
)

// Basis provides the radial matrices and the two-electron and
// exchange-correlation operators. Every l shares the same radial basis.
type Basis interface {
	Overlap() mat.Matrix
	HalfInverseOverlap() mat.Matrix
	Kinetic() mat.Matrix
	// KineticL is the radial matrix multiplied by l(l+1) to give the
	// centrifugal term.
	KineticL() mat.Matrix
	Nuclear() mat.Matrix

	// Coulomb returns the Hartree potential of the total density.
	Coulomb(P mat.Matrix) *mat.Dense
	// Exchange returns the exchange matrices of the per-spin per-m
	// densities, one slice per l.
	Exchange(D linalg.Cube) linalg.Cube
	RangeSeparatedExchange(D linalg.Cube, omega float64) (linalg.Cube, error)
	// EvalFxc integrates the functional of one total density or of the
	// alpha and beta densities.
	EvalFxc(x, c xc.Functional, P []*mat.Dense, thr float64) (xc.Result, error)
}

// FullXCEvaluator evaluates functionals that need the full (l,m)
// resolved density.
type FullXCEvaluator interface {
	EvalFxcFull(x, c xc.Functional, Pfull []*mat.Dense, thr float64) (xc.Result, error)
}

// RadialProvider tabulates radial quantities on the quadrature grid.
type RadialProvider interface {
	Radii() []float64
	QuadratureWeights() []float64
	Charge() float64
	ElectronDensity(P mat.Matrix) []float64
	ElectronDensityGradient(P mat.Matrix) []float64
	ElectronDensityLaplacian(P mat.Matrix) []float64
	CoulombScreening(P mat.Matrix) []float64
	XCScreening(x, c xc.Functional, P []*mat.Dense, thr float64) []float64
	Orbitals(C mat.Matrix) *mat.Dense
}

// Accelerator extrapolates Fock matrices from the iteration history.
// One value is passed per spin channel.
type Accelerator interface {
	Update(F, P []*mat.Dense, E float64) float64
	Extrapolate() ([]*mat.Dense, error)
}

// AcceleratorFactory creates a fresh accelerator for one Solve. S and
// Sinvh are the block-diagonal matrices of all l.
type AcceleratorFactory func(S, Sinvh mat.Matrix, p Params) Accelerator

// NewDIIS is the default accelerator.
func NewDIIS(S, Sinvh mat.Matrix, p Params) Accelerator {
	return diis.New(S, Sinvh, diis.Options{Eps: p.DIISEps, Thr: p.DIISThr, Order: p.DIISOrder})
}
