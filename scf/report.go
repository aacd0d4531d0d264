// report.go --  This file is part of goHF project.
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
	"strings"
)

// Report renders the occupations, orbital energies and the energy
// decomposition of conf.
func Report(conf *Configuration) string {
	var sb strings.Builder
	spin := []string{"alpha", "beta"}
	for i, o := range conf.Orbs {
		name := "orbitals"
		if !conf.Restricted() {
			name = spin[i] + " orbitals"
		}
		fmt.Fprintf(&sb, "%s: occupations %v\n", name, o.Occs())
		fmt.Fprintf(&sb, "  configuration %s\n", o.Characterize())
		for _, sh := range o.GetOccupied() {
			fmt.Fprintf(&sb, "  %-8s % .10f\n", sh.String(), sh.E)
		}
		if o.OrbitalsInitialized() {
			fmt.Fprintf(&sb, "  gaps per l %v\n", formatFloats(o.GetGap()))
		}
	}

	status := "converged"
	if !conf.Converged {
		status = fmt.Sprintf("NOT converged, DIIS error %e", conf.DIISError)
	}
	fmt.Fprintf(&sb, "SCF %s after %d iterations\n", status, conf.Iterations)
	fmt.Fprintf(&sb, "%-21s energy: % .16f\n", "Kinetic", conf.Ekin)
	fmt.Fprintf(&sb, "%-21s energy: % .16f\n", "Nuclear attraction", conf.Epot)
	fmt.Fprintf(&sb, "%-21s energy: % .16f\n", "Coulomb", conf.Ecoul)
	fmt.Fprintf(&sb, "%-21s energy: % .16f\n", "Exchange-correlation", conf.Exc)
	fmt.Fprintf(&sb, "%-21s energy: % .16f\n", "Total", conf.Econf)
	if conf.Ekin != 0 {
		fmt.Fprintf(&sb, "%-21s        % .16f\n", "Virial ratio", -conf.Econf/conf.Ekin)
	}
	return sb.String()
}

func formatFloats(v []float64) string {
	parts := make([]string, len(v))
	for i, x := range v {
		parts[i] = fmt.Sprintf("% .6f", x)
	}
	return "[" + strings.Join(parts, " ") + "]"
}
