// potential.go --  This file is part of goHF project.
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
	"fmt"

	"example.com/gosad/linalg"
	"gonum.org/v1/gonum/mat"
)

// Columns of the potential table.
const (
	ColRadius = iota
	ColDensity
	ColDensityGradient
	ColDensityLaplacian
	ColCoulomb
	ColXC
	ColWeight
	ColZeff
	potentialCols
)

// RestrictedPotential tabulates the radial potential of a restricted
// configuration. See Potential for the columns.
func (s *Solver) RestrictedPotential(conf *Configuration) (*mat.Dense, error) {
	if !conf.Restricted() {
		return nil, fmt.Errorf("%w: restricted potential of an unrestricted configuration", ErrInvalidState)
	}
	return s.Potential(conf)
}

// UnrestrictedPotential tabulates the radial potential of an unrestricted
// configuration; the XC screening is averaged over the spins.
func (s *Solver) UnrestrictedPotential(conf *Configuration) (*mat.Dense, error) {
	if conf.Restricted() {
		return nil, fmt.Errorf("%w: unrestricted potential of a restricted configuration", ErrInvalidState)
	}
	return s.Potential(conf)
}

// Potential returns one row per radial grid point with the columns
// radius, electron density, its gradient and Laplacian, Coulomb screening
// r V_H, XC screening r v_xc, quadrature weight and the effective charge
// Z - r V_H - r v_xc.
func (s *Solver) Potential(conf *Configuration) (*mat.Dense, error) {
	rp, ok := s.basis.(RadialProvider)
	if !ok {
		return nil, fmt.Errorf("%w: radial tabulation", ErrUnsupported)
	}
	nbf := s.Nbf()
	Pch := make([]*mat.Dense, len(conf.Orbs))
	P := mat.NewDense(nbf, nbf, nil)
	for i, o := range conf.Orbs {
		if !o.OrbitalsInitialized() {
			return nil, fmt.Errorf("%w: channel %d has no orbitals", ErrInvalidState, i)
		}
		Pl := linalg.NewCube(nbf, nbf, s.lmax+1)
		o.UpdateDensity(Pl)
		Pch[i] = s.TotalDensity(Pl)
		P.Add(P, Pch[i])
	}

	r := rp.Radii()
	cols := [][]float64{
		ColRadius:           r,
		ColDensity:          rp.ElectronDensity(P),
		ColDensityGradient:  rp.ElectronDensityGradient(P),
		ColDensityLaplacian: rp.ElectronDensityLaplacian(P),
		ColCoulomb:          rp.CoulombScreening(P),
		ColXC:               rp.XCScreening(s.x, s.c, Pch, s.params.DFTThr),
		ColWeight:           rp.QuadratureWeights(),
		ColZeff:             make([]float64, len(r)),
	}
	Z := rp.Charge()
	for g := range r {
		cols[ColZeff][g] = Z - cols[ColCoulomb][g] - cols[ColXC][g]
	}

	res := mat.NewDense(len(r), potentialCols, nil)
	for c, col := range cols {
		res.SetCol(c, col)
	}
	return res, nil
}
