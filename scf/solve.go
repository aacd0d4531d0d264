// solve.go --  This file is part of goHF project.
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
	"math"
	"time"

	"example.com/gosad/linalg"
	"example.com/gosad/orbitals"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"
)

// Solve iterates conf to self-consistency. The occupations stay fixed.
// Running out of iterations is not an error: conf.Converged stays false
// and the last energy, Fock matrices and DIIS error are kept.
func (s *Solver) Solve(conf *Configuration, log *zap.Logger) error {
	if err := s.checkState(conf); err != nil {
		return err
	}
	log = orNop(log).With(zap.String("occupations", conf.Key()))
	log.Debug("running SCF")

	p := s.params
	nl := s.lmax + 1
	accel := s.newAccel(linalg.SuperMat(s.S, nl), linalg.SuperMat(s.Sinvh, nl), p)

	tstart := time.Now()
	Eold := conf.Econf
	conf.Converged = false
	for iscf := 1; iscf <= p.MaxIt; iscf++ {
		E, err := s.FockBuild(conf, log)
		if err != nil {
			return fmt.Errorf("scf: iteration %d: %w", iscf, err)
		}
		dE := E - Eold
		Eold = E

		Fsuper := make([]*mat.Dense, len(conf.Orbs))
		Psuper := make([]*mat.Dense, len(conf.Orbs))
		for i := range conf.Orbs {
			Fsuper[i] = linalg.SuperCube(conf.F[i])
			Psuper[i] = linalg.SuperCube(conf.P[i])
		}
		diiserr := accel.Update(Fsuper, Psuper, E)
		conf.DIISError = diiserr
		conf.Iterations = iscf
		conf.Converged = diiserr < p.ConvThr && math.Abs(dE) < p.ConvThr
		log.Debug("SCF iteration",
			zap.Int("iteration", iscf),
			zap.Float64("energy", E),
			zap.Float64("dE", dE),
			zap.Float64("diis_error", diiserr))

		Fnew, err := accel.Extrapolate()
		if err != nil {
			return fmt.Errorf("scf: iteration %d: %w", iscf, err)
		}
		for i := range conf.Orbs {
			conf.F[i] = linalg.MiniMat(Fnew[i], nl)
			if err := s.refresh(conf.Orbs[i], conf.F[i], diiserr); err != nil {
				return fmt.Errorf("scf: iteration %d: %w", iscf, err)
			}
		}

		if conf.Converged {
			break
		}
	}

	if !conf.Converged {
		log.Warn("SCF not converged",
			zap.Int("maxit", p.MaxIt),
			zap.Float64("diis_error", conf.DIISError),
			zap.Float64("energy", conf.Econf))
		return nil
	}
	log.Debug("SCF converged",
		zap.Int("iterations", conf.Iterations),
		zap.Float64("energy", conf.Econf),
		zap.Duration("elapsed", time.Since(tstart)))
	return nil
}

// refresh diagonalizes F. While the DIIS error is above diisthr the
// level-shifted or the damped update is used.
func (s *Solver) refresh(ch *orbitals.Channel, F linalg.Cube, diiserr float64) error {
	p := s.params
	if diiserr > p.DIISThr {
		switch {
		case p.Shift > 0:
			return ch.UpdateOrbitalsShifted(F, s.Sinvh, s.S, p.Shift)
		case p.Damp > 0 && p.Damp < 1:
			return ch.UpdateOrbitalsDamped(F, s.Sinvh, s.S, p.Damp)
		}
	}
	return ch.UpdateOrbitals(F, s.Sinvh)
}
