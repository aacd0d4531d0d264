// solver.go --  This file is part of goHF project.
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

// Package scf runs self-consistent field calculations of spherically
// averaged atoms: Fock matrix assembly for restricted and unrestricted
// configurations and the accelerated fixed-point iteration.
package scf

import (
	"errors"
	"fmt"

	"example.com/gosad/linalg"
	"example.com/gosad/orbitals"
	"example.com/gosad/xc"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"
)

var (
	// ErrInvalidState marks a configuration that cannot be solved.
	ErrInvalidState = errors.New("scf: invalid state")
	// ErrUnsupported marks an operation the basis does not provide.
	ErrUnsupported = errors.New("scf: unsupported by basis")
)

// Overlap condition number above which a warning is logged.
const condWarn = 1e10

// Solver holds the basis matrices and the method of a calculation. It is
// read-only after construction and may be shared between goroutines
// solving different configurations.
type Solver struct {
	basis  Basis
	lmax   int
	x, c   xc.Functional
	params Params

	newAccel AcceleratorFactory
	log      *zap.Logger

	S, Sinvh, T, Tl, Vnuc, H0 *mat.Dense
}

// Option configures a Solver.
type Option func(*Solver)

// WithAccelerator replaces the DIIS accelerator.
func WithAccelerator(f AcceleratorFactory) Option {
	return func(s *Solver) { s.newAccel = f }
}

// WithLogger sets the logger used during construction.
func WithLogger(log *zap.Logger) Option {
	return func(s *Solver) { s.log = log }
}

// NewSolver prepares a solver for angular momenta up to lmax with the
// exchange functional x and the correlation functional c.
func NewSolver(basis Basis, lmax int, x, c xc.Functional, params Params, opts ...Option) (*Solver, error) {
	if lmax < 0 {
		return nil, fmt.Errorf("scf: negative lmax %d", lmax)
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	s := &Solver{
		basis:    basis,
		lmax:     lmax,
		x:        x,
		c:        c,
		params:   params,
		newAccel: NewDIIS,
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.S = mat.DenseCopyOf(basis.Overlap())
	s.Sinvh = mat.DenseCopyOf(basis.HalfInverseOverlap())
	s.T = mat.DenseCopyOf(basis.Kinetic())
	s.Tl = mat.DenseCopyOf(basis.KineticL())
	s.Vnuc = mat.DenseCopyOf(basis.Nuclear())
	s.H0 = new(mat.Dense)
	s.H0.Add(s.T, s.Vnuc)

	nbf, _ := s.S.Dims()
	cond := linalg.Cond(s.S)
	s.log.Info("basis set up",
		zap.Int("nbf", nbf),
		zap.Int("lmax", lmax),
		zap.String("exchange", x.Name),
		zap.String("correlation", c.Name),
		zap.Float64("overlap_condition", cond))
	if cond > condWarn {
		s.log.Warn("overlap matrix is ill-conditioned", zap.Float64("condition", cond))
	}
	return s, nil
}

func (s *Solver) Lmax() int {
	return s.lmax
}

func (s *Solver) Params() Params {
	return s.params
}

func (s *Solver) Basis() Basis {
	return s.basis
}

// Nbf is the number of radial basis functions.
func (s *Solver) Nbf() int {
	n, _ := s.S.Dims()
	return n
}

// Functionals returns the exchange and correlation functionals.
func (s *Solver) Functionals() (x, c xc.Functional) {
	return s.x, s.c
}

// TotalDensity sums the density over l.
func (s *Solver) TotalDensity(Pl linalg.Cube) *mat.Dense {
	return Pl.Sum()
}

// ReplicateCube copies M to every l.
func (s *Solver) ReplicateCube(M mat.Matrix) linalg.Cube {
	return linalg.Replicate(M, s.lmax+1)
}

// KineticCube is the centrifugal term l(l+1) Tl of every l.
func (s *Solver) KineticCube() linalg.Cube {
	kc := linalg.NewCube(s.Nbf(), s.Nbf(), s.lmax+1)
	for l := range kc {
		kc[l].Scale(float64(l*(l+1)), s.Tl)
	}
	return kc
}

// Initialize sets the orbitals of ch from the core Hamiltonian.
func (s *Solver) Initialize(ch *orbitals.Channel) error {
	ch.SetLmax(s.lmax)
	H := s.ReplicateCube(s.H0)
	H.Add(s.KineticCube())
	if err := ch.UpdateOrbitals(H, s.Sinvh); err != nil {
		return fmt.Errorf("scf: core guess: %w", err)
	}
	return nil
}

// checkState verifies that conf can be solved.
func (s *Solver) checkState(conf *Configuration) error {
	switch len(conf.Orbs) {
	case 1, 2:
	default:
		return fmt.Errorf("%w: %d orbital channels", ErrInvalidState, len(conf.Orbs))
	}
	restricted := conf.Restricted()
	for i, o := range conf.Orbs {
		if o == nil {
			return fmt.Errorf("%w: channel %d is nil", ErrInvalidState, i)
		}
		if o.Restricted() != restricted {
			if restricted {
				return fmt.Errorf("%w: restricted calculation with unrestricted orbitals", ErrInvalidState)
			}
			return fmt.Errorf("%w: unrestricted calculation with restricted orbitals", ErrInvalidState)
		}
		if !o.OrbitalsInitialized() {
			return fmt.Errorf("%w: channel %d has no orbitals", ErrInvalidState, i)
		}
		if n := len(o.Occs()); n != s.lmax+1 {
			return fmt.Errorf("%w: channel %d has %d occupations, lmax is %d", ErrInvalidState, i, n, s.lmax)
		}
	}
	return nil
}

func orNop(log *zap.Logger) *zap.Logger {
	if log == nil {
		return zap.NewNop()
	}
	return log
}
