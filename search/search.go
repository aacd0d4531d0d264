// search.go --  This file is part of goHF project.
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

// Package search looks for the lowest-energy distribution of the
// electrons over the angular momentum shells. Starting from the Aufbau
// occupations it repeatedly moves electrons between shells of the best
// configuration found so far until no move lowers the energy.
package search

import (
	"context"
	"fmt"

	"example.com/gosad/orbitals"
	"example.com/gosad/scf"
	"go.uber.org/zap"
	"golang.org/x/exp/slices"
	"golang.org/x/sync/errgroup"
)

// Options of the search.
type Options struct {
	// Maximum number of move rounds, 0 for no limit.
	MaxRounds int `yaml:"maxrounds" validate:"gte=0"`
	// Candidates solved concurrently; 0 or 1 solves them in order.
	Workers int `yaml:"workers" validate:"gte=0"`
}

// Result holds the best configuration and every configuration solved,
// ranked with scf.Less.
type Result struct {
	Best   *scf.Configuration
	Ranked []*scf.Configuration
	Rounds int
}

// Restricted searches the occupations of numel electrons in a restricted
// calculation.
func Restricted(ctx context.Context, solver *scf.Solver, numel int, opts Options, log *zap.Logger) (*Result, error) {
	ch := orbitals.New(true, solver.Lmax())
	if err := solver.Initialize(ch); err != nil {
		return nil, err
	}
	ch.AufbauOccupations(numel)
	if ch.Nel() != numel {
		return nil, fmt.Errorf("search: basis holds %d of %d electrons", ch.Nel(), numel)
	}
	moves := func(parent *scf.Configuration) []*scf.Configuration {
		var res []*scf.Configuration
		for _, c := range parent.Orbs[0].MoveElectrons() {
			res = append(res, scf.NewRestricted(c))
		}
		return res
	}
	return run(ctx, solver, scf.NewRestricted(ch), moves, opts, log)
}

// Unrestricted searches the occupations of nela alpha and nelb beta
// electrons. Candidates combine every alpha move with every beta move.
func Unrestricted(ctx context.Context, solver *scf.Solver, nela, nelb int, opts Options, log *zap.Logger) (*Result, error) {
	orbsa := orbitals.New(false, solver.Lmax())
	orbsb := orbitals.New(false, solver.Lmax())
	if err := solver.Initialize(orbsa); err != nil {
		return nil, err
	}
	if err := solver.Initialize(orbsb); err != nil {
		return nil, err
	}
	orbsa.AufbauOccupations(nela)
	orbsb.AufbauOccupations(nelb)
	if orbsa.Nel() != nela || orbsb.Nel() != nelb {
		return nil, fmt.Errorf("search: basis holds %d+%d of %d+%d electrons", orbsa.Nel(), orbsb.Nel(), nela, nelb)
	}
	moves := func(parent *scf.Configuration) []*scf.Configuration {
		var res []*scf.Configuration
		amoves := parent.Orbs[0].MoveElectrons()
		bmoves := parent.Orbs[1].MoveElectrons()
		for _, a := range amoves {
			for _, b := range bmoves {
				res = append(res, scf.NewUnrestricted(a.Clone(), b.Clone()))
			}
		}
		return res
	}
	return run(ctx, solver, scf.NewUnrestricted(orbsa, orbsb), moves, opts, log)
}

func run(ctx context.Context, solver *scf.Solver, seed *scf.Configuration, moves func(*scf.Configuration) []*scf.Configuration, opts Options, log *zap.Logger) (*Result, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := solver.Solve(seed, log); err != nil {
		return nil, fmt.Errorf("search: aufbau configuration: %w", err)
	}
	log.Info("aufbau configuration",
		zap.String("occupations", seed.Key()),
		zap.Float64("energy", seed.Econf),
		zap.Bool("converged", seed.Converged))

	nel := seed.Nel()
	evaluated := map[string]bool{seed.Key(): true}
	all := []*scf.Configuration{seed}
	best := seed

	res := &Result{}
	for opts.MaxRounds == 0 || res.Rounds < opts.MaxRounds {
		var cands []*scf.Configuration
		for _, c := range moves(best) {
			key := c.Key()
			if evaluated[key] || c.Nel() != nel || !fits(c, solver.Nbf()) {
				continue
			}
			evaluated[key] = true
			cands = append(cands, c)
		}
		if len(cands) == 0 {
			break
		}
		res.Rounds++

		if err := evaluate(ctx, solver, cands, opts.Workers, log); err != nil {
			return nil, err
		}
		all = append(all, cands...)

		roundBest := cands[0]
		for _, c := range cands[1:] {
			if scf.Less(c, roundBest) {
				roundBest = c
			}
		}
		log.Info("search round",
			zap.Int("round", res.Rounds),
			zap.Int("candidates", len(cands)),
			zap.String("best", roundBest.Key()),
			zap.Float64("energy", roundBest.Econf))
		if !roundBest.Converged || !scf.Less(roundBest, best) {
			break
		}
		best = roundBest
	}

	slices.SortStableFunc(all, scf.Compare)
	res.Best = best
	res.Ranked = all
	return res, nil
}

func fits(c *scf.Configuration, nbf int) bool {
	for _, o := range c.Orbs {
		if !o.Fits(nbf) {
			return false
		}
	}
	return true
}

// evaluate solves the candidates, in parallel when workers > 1. Every
// candidate owns its orbitals, densities and accelerator.
func evaluate(ctx context.Context, solver *scf.Solver, cands []*scf.Configuration, workers int, log *zap.Logger) error {
	if workers <= 1 {
		for _, c := range cands {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := solver.Solve(c, log); err != nil {
				return fmt.Errorf("search: %s: %w", c.Key(), err)
			}
		}
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, c := range cands {
		c := c
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if err := solver.Solve(c, log); err != nil {
				return fmt.Errorf("search: %s: %w", c.Key(), err)
			}
			return nil
		})
	}
	return g.Wait()
}
