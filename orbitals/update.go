// update.go --  This file is part of goHF project.
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
package orbitals

import (
	"fmt"

	"example.com/gosad/linalg"
	"gonum.org/v1/gonum/mat"
)

// UpdateOrbitals diagonalizes the Fock matrix of every l.
func (ch *Channel) UpdateOrbitals(F linalg.Cube, Sinvh mat.Matrix) error {
	if len(F) != ch.lmax+1 {
		return fmt.Errorf("orbitals: %d Fock slices for lmax %d", len(F), ch.lmax)
	}
	C := make(linalg.Cube, len(F))
	E := make([][]float64, len(F))
	for l := range F {
		vals, vecs, err := linalg.EigGSym(F[l], Sinvh)
		if err != nil {
			return fmt.Errorf("orbitals: l=%d: %w", l, err)
		}
		C[l] = vecs
		E[l] = vals
	}
	ch.C = C
	ch.E = E
	return nil
}

// UpdateOrbitalsDamped scales the occupied-virtual blocks of the Fock
// matrix in the current orbital basis by dampov before diagonalizing.
// Shells without occupied orbitals are refreshed without damping.
func (ch *Channel) UpdateOrbitalsDamped(F linalg.Cube, Sinvh, S mat.Matrix, dampov float64) error {
	if !ch.OrbitalsInitialized() {
		return ch.UpdateOrbitals(F, Sinvh)
	}
	Fd := F.Clone()
	for l := range Fd {
		nocc := ch.CountOccupied(l)
		nmo := ch.Nmo()
		if nocc == 0 || nocc == nmo {
			continue
		}
		C := ch.C[l]
		var Fmo mat.Dense
		Fmo.Mul(C.T(), F[l])
		Fmo.Mul(&Fmo, C)
		for i := 0; i < nmo; i++ {
			for j := 0; j < nmo; j++ {
				if (i < nocc) != (j < nocc) {
					Fmo.Set(i, j, dampov*Fmo.At(i, j))
				}
			}
		}
		var SC mat.Dense
		SC.Mul(S, C)
		Fd[l].Mul(&SC, &Fmo)
		Fd[l].Mul(Fd[l], SC.T())
	}
	return ch.UpdateOrbitals(Fd, Sinvh)
}

// UpdateOrbitalsShifted raises the virtual orbitals by shift before
// diagonalizing. Shells without occupied orbitals are not shifted.
func (ch *Channel) UpdateOrbitalsShifted(F linalg.Cube, Sinvh, S mat.Matrix, shift float64) error {
	if !ch.OrbitalsInitialized() {
		return ch.UpdateOrbitals(F, Sinvh)
	}
	Fs := F.Clone()
	for l := range Fs {
		nocc := ch.CountOccupied(l)
		nmo := ch.Nmo()
		if nocc == 0 || nocc == nmo {
			continue
		}
		nbf, _ := ch.C[l].Dims()
		Cv := ch.C[l].Slice(0, nbf, nocc, nmo)
		var SCv, proj mat.Dense
		SCv.Mul(S, Cv)
		proj.Mul(&SCv, SCv.T())
		Fs[l].Apply(func(i, j int, v float64) float64 {
			return v + shift*proj.At(i, j)
		}, Fs[l])
	}
	return ch.UpdateOrbitals(Fs, Sinvh)
}
