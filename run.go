// run.go --  This file is part of goHF project.
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
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"example.com/gosad/gaussbasis"
	"example.com/gosad/orbdump"
	"example.com/gosad/scf"
	"example.com/gosad/search"
	"example.com/gosad/xc"
	"go.uber.org/zap"
)

// Calculation is a finished run.
type Calculation struct {
	RunID  string
	Input  *Input
	Basis  *gaussbasis.Basis
	Solver *scf.Solver
	Result *search.Result
}

// Run performs the configuration search described by in.
func Run(ctx context.Context, runID string, in *Input, log *zap.Logger) (*Calculation, error) {
	x, err := xc.Lookup(in.Exchange)
	if err != nil {
		return nil, err
	}
	c, err := xc.Lookup(in.Correlation)
	if err != nil {
		return nil, err
	}
	lmax := in.AngularMomentum()
	basis, err := gaussbasis.New(float64(in.Z()), in.Exponents(), lmax, in.Basis.Grid)
	if err != nil {
		return nil, err
	}
	solver, err := scf.NewSolver(basis, lmax, x, c, in.SCF, scf.WithLogger(log))
	if err != nil {
		return nil, err
	}

	nela, nelb := in.Electrons()
	log.Info("starting configuration search",
		zap.String("element", in.Element),
		zap.Int("Z", in.Z()),
		zap.Int("nela", nela),
		zap.Int("nelb", nelb),
		zap.Int("lmax", lmax),
		zap.Int("nbf", basis.Nbf()))

	tstart := time.Now()
	var res *search.Result
	if in.Unrestricted {
		res, err = search.Unrestricted(ctx, solver, nela, nelb, in.Search, log)
	} else {
		res, err = search.Restricted(ctx, solver, nela, in.Search, log)
	}
	if err != nil {
		return nil, err
	}
	log.Info("configuration search done",
		zap.String("best", res.Best.Key()),
		zap.Float64("energy", res.Best.Econf),
		zap.Int("rounds", res.Rounds),
		zap.Duration("elapsed", time.Since(tstart)))

	return &Calculation{RunID: runID, Input: in, Basis: basis, Solver: solver, Result: res}, nil
}

// WriteOutputs writes the report, the orbital dump, the plot and the
// potential table requested by the input.
func (calc *Calculation) WriteOutputs(inputLines []string) error {
	out := calc.Input.Output
	if out.Report != "" {
		if err := os.WriteFile(out.Report, []byte(calc.Report(inputLines)), 0644); err != nil {
			return err
		}
	}

	best := calc.Result.Best
	spins := []string{""}
	if !best.Restricted() {
		spins = []string{"_a", "_b"}
	}
	symbol := ElemData.Symbol(calc.Input.Z())
	for i, ch := range best.Orbs {
		if out.Orbitals == "" && out.Plot == "" {
			break
		}
		tab, err := orbdump.Tabulate(ch, calc.Basis)
		if err != nil {
			return err
		}
		if out.Orbitals != "" {
			if err := orbdump.Write(withSuffix(out.Orbitals, spins[i]), tab); err != nil {
				return err
			}
		}
		if out.Plot != "" {
			title := fmt.Sprintf("%s %s", symbol, ch.Characterize())
			if err := orbdump.Plot(withSuffix(out.Plot, spins[i]), title, tab, out.PlotRmax); err != nil {
				return err
			}
		}
	}

	if out.Potential != "" {
		pot, err := calc.Solver.Potential(best)
		if err != nil {
			return err
		}
		header := []string{"r", "rho", "drho", "lapl_rho", "r*V_H", "r*v_xc", "weight", "Zeff"}
		if err := TxtFileFromDense(pot, header, out.Potential); err != nil {
			return err
		}
	}
	return nil
}

// Report renders the input echo, the best configuration and the ranking.
func (calc *Calculation) Report(inputLines []string) string {
	var sb strings.Builder
	delim := strings.Repeat("-", 70) + "\n"
	fmt.Fprintf(&sb, "gosad run %s\n", calc.RunID)
	sb.WriteString(delim)
	sb.WriteString("Input file content:\n")
	for _, l := range inputLines {
		sb.WriteString(l + "\n")
	}
	sb.WriteString(delim)

	in := calc.Input
	x, c := calc.Solver.Functionals()
	fmt.Fprintf(&sb, "Element %s (Z=%d), charge %d, %d basis functions, lmax %d\n",
		ElemData.Symbol(in.Z()), in.Z(), in.Charge, calc.Basis.Nbf(), calc.Solver.Lmax())
	fmt.Fprintf(&sb, "Exchange %s, correlation %s\n", x.Name, c.Name)
	sb.WriteString(delim)

	sb.WriteString("Lowest configuration\n")
	sb.WriteString(scf.Report(calc.Result.Best))
	sb.WriteString(delim)

	fmt.Fprintf(&sb, "Configurations after %d search rounds\n", calc.Result.Rounds)
	E0 := calc.Result.Best.Econf
	for _, conf := range calc.Result.Ranked {
		status := ""
		if !conf.Converged {
			status = " (not converged)"
		}
		fmt.Fprintf(&sb, "  %-24s % .10f  %+.6f%s\n", conf.Key(), conf.Econf, conf.Econf-E0, status)
	}
	sb.WriteString(delim)
	return sb.String()
}
