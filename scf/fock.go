// fock.go --  This file is part of goHF project.
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
	"example.com/gosad/xc"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"
)

// FockBuild forms the densities of conf from its orbitals and computes
// the Fock matrices and the energy components. It returns the total
// energy.
func (s *Solver) FockBuild(conf *Configuration, log *zap.Logger) (float64, error) {
	log = orNop(log)
	nbf := s.Nbf()
	nch := len(conf.Orbs)
	if len(conf.P) != nch {
		conf.P = make([]linalg.Cube, nch)
	}
	for i, o := range conf.Orbs {
		if len(conf.P[i]) != s.lmax+1 {
			conf.P[i] = linalg.NewCube(nbf, nbf, s.lmax+1)
		}
		o.UpdateDensity(conf.P[i])
	}

	// Total density per channel, per l and overall
	Pch := make([]*mat.Dense, nch)
	Pl := linalg.NewCube(nbf, nbf, s.lmax+1)
	for i := range conf.P {
		Pch[i] = s.TotalDensity(conf.P[i])
		Pl.Add(conf.P[i])
	}
	P := s.TotalDensity(Pl)
	log.Debug("density formed", zap.Float64("trPS", linalg.Trace(P, s.S)))

	kc := s.KineticCube()
	conf.Ekin = linalg.Trace(P, s.T)
	for l := range Pl {
		conf.Ekin += linalg.Trace(Pl[l], kc[l])
	}
	conf.Epot = linalg.Trace(P, s.Vnuc)

	J := s.basis.Coulomb(P)
	conf.Ecoul = 0.5 * linalg.Trace(P, J)
	log.Debug("one-electron and Coulomb energies",
		zap.Float64("kinetic", conf.Ekin),
		zap.Float64("nuclear", conf.Epot),
		zap.Float64("coulomb", conf.Ecoul))

	conf.Exc = 0.0
	XC, err := s.xcPotential(conf, Pch, log)
	if err != nil {
		return 0, err
	}

	K, err := s.exactExchange(conf, log)
	if err != nil {
		return 0, err
	}

	var H0J mat.Dense
	H0J.Add(s.H0, J)
	conf.F = make([]linalg.Cube, nch)
	for i := range conf.F {
		conf.F[i] = s.ReplicateCube(&H0J)
		conf.F[i].Add(kc)
		if K != nil {
			conf.F[i].Add(K[i])
		}
		if XC != nil {
			conf.F[i].Add(XC[i])
		}
	}

	conf.Econf = conf.Ekin + conf.Epot + conf.Ecoul + conf.Exc
	return conf.Econf, nil
}

// xcPotential returns the XC potential of every channel, nil without a
// functional, and adds the XC energy to conf.Exc.
func (s *Solver) xcPotential(conf *Configuration, Pch []*mat.Dense, log *zap.Logger) ([]linalg.Cube, error) {
	if !s.x.HasKernel() && !s.c.HasKernel() {
		return nil, nil
	}

	nch := len(conf.Orbs)
	XC := make([]linalg.Cube, nch)
	var res xc.Result
	var err error
	if xc.IsMeta(s.x, s.c) {
		full, ok := s.basis.(FullXCEvaluator)
		if !ok {
			return nil, fmt.Errorf("%w: meta functional needs the full angular density", ErrUnsupported)
		}
		Pfull := make([]*mat.Dense, nch)
		for i := range conf.P {
			Pfull[i] = linalg.FullDensity(conf.P[i])
		}
		res, err = full.EvalFxcFull(s.x, s.c, Pfull, s.params.DFTThr)
		if err != nil {
			return nil, fmt.Errorf("scf: full XC evaluation: %w", err)
		}
		if len(res.V) != nch {
			return nil, fmt.Errorf("scf: XC evaluation returned %d potentials for %d channels", len(res.V), nch)
		}
		lval, mval := linalg.AngularBasis(s.lmax, s.lmax)
		for i := range XC {
			XC[i] = linalg.MAverage(res.V[i], s.Nbf(), lval, mval)
		}
	} else {
		res, err = s.basis.EvalFxc(s.x, s.c, Pch, s.params.DFTThr)
		if err != nil {
			return nil, fmt.Errorf("scf: XC evaluation: %w", err)
		}
		if len(res.V) != nch {
			return nil, fmt.Errorf("scf: XC evaluation returned %d potentials for %d channels", len(res.V), nch)
		}
		for i := range XC {
			XC[i] = s.ReplicateCube(res.V[i])
		}
	}
	conf.Exc = res.E
	log.Debug("XC energy",
		zap.Float64("exc", res.E),
		zap.Float64("nel_error", res.Nel-float64(conf.Nel())))
	return XC, nil
}

// exactExchange returns the exact exchange matrices of every channel, nil
// for a pure density functional, and adds the exchange energy to conf.Exc.
func (s *Solver) exactExchange(conf *Configuration, log *zap.Logger) ([]linalg.Cube, error) {
	omega, kfrac, kshort := xc.RangeSeparation(s.x)
	if kfrac == 0 && kshort == 0 {
		return nil, nil
	}
	nbf := s.Nbf()
	K := make([]linalg.Cube, len(conf.Orbs))
	Exx := 0.0
	for i, o := range conf.Orbs {
		D := o.AngularDensity()
		K[i] = linalg.NewCube(nbf, nbf, s.lmax+1)
		if kfrac != 0 {
			K[i].AddScaled(kfrac, s.basis.Exchange(D))
		}
		if kshort != 0 {
			Ksr, err := s.basis.RangeSeparatedExchange(D, omega)
			if err != nil {
				return nil, fmt.Errorf("scf: short-range exchange: %w", err)
			}
			K[i].AddScaled(kshort, Ksr)
		}
		for l := range K[i] {
			Exx += 0.5 * linalg.Trace(K[i][l], conf.P[i][l])
		}
	}
	log.Debug("exact exchange energy", zap.Float64("exx", Exx))
	conf.Exc += Exx
	return K, nil
}
