// plot.go --  This file is part of goHF project.
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
package orbdump

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// Plot draws the radial functions r*psi(r) up to rmax. The image format
// follows the extension of path (png, svg, pdf, ...).
func Plot(path, title string, t *Table, rmax float64) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "r (bohr)"
	p.Y.Label.Text = "r ψ(r)"
	p.X.Min = 0
	p.X.Max = rmax
	p.Add(plotter.NewGrid())

	for k := 0; k < t.Norb(); k++ {
		var xys plotter.XYs
		for ir, r := range t.R {
			if r > rmax {
				break
			}
			xys = append(xys, plotter.XY{X: r, Y: r * t.Values.At(ir, k)})
		}
		if len(xys) == 0 {
			return fmt.Errorf("orbdump: no radial points below %g", rmax)
		}
		line, err := plotter.NewLine(xys)
		if err != nil {
			return fmt.Errorf("orbdump: %w", err)
		}
		line.Color = plotutil.Color(k)
		line.Dashes = plotutil.Dashes(t.L[k])
		p.Add(line)
		p.Legend.Add(t.label(k), line)
	}
	p.Legend.Top = true

	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("orbdump: %w", err)
	}
	return nil
}

func (t *Table) label(k int) string {
	if k < len(t.Labels) {
		return t.Labels[k]
	}
	return fmt.Sprintf("l=%d #%d", t.L[k], k)
}
