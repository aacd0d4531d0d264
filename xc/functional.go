// functional.go --  This file is part of goHF project.
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

// Package xc holds the exchange-correlation functionals understood by the
// solver: their exact exchange content, range separation and the local
// density kernels evaluated on the radial grid.
package xc

import (
	"fmt"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"gonum.org/v1/gonum/mat"
)

// Kernel selects the density functional evaluated on the grid.
type Kernel int

const (
	NoKernel Kernel = iota
	SlaterExchange
	ChachiyoCorrelation
)

// Functional describes one exchange or correlation functional.
type Functional struct {
	Name   string
	Kernel Kernel
	// Fraction of the grid kernel mixed in.
	Weight float64
	// Meta functionals need the full angular density.
	Meta bool
	// Fraction of exact exchange and of short-range exact exchange.
	Kfrac, Kshort float64
	// Range separation parameter.
	Omega float64
}

// None is the empty functional.
var None = Functional{Name: "none"}

var catalogue = map[string]Functional{
	"none":     None,
	"hf":       {Name: "hf", Kfrac: 1.0},
	"slater":   {Name: "slater", Kernel: SlaterExchange, Weight: 1.0},
	"lda0":     {Name: "lda0", Kernel: SlaterExchange, Weight: 0.75, Kfrac: 0.25},
	"chachiyo": {Name: "chachiyo", Kernel: ChachiyoCorrelation, Weight: 1.0},
}

// Lookup returns the functional registered under name.
func Lookup(name string) (Functional, error) {
	f, ok := catalogue[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return None, fmt.Errorf("xc: unknown functional %q (known: %s)", name, strings.Join(Names(), ", "))
	}
	return f, nil
}

// Names lists the registered functionals.
func Names() []string {
	res := maps.Keys(catalogue)
	slices.Sort(res)
	return res
}

// HasKernel is true when the functional needs a grid evaluation.
func (f Functional) HasKernel() bool {
	return f.Kernel != NoKernel && f.Weight != 0
}

// RangeSeparation returns omega, the exact exchange fraction and the
// short-range exact exchange fraction of an exchange functional.
func RangeSeparation(x Functional) (omega, kfrac, kshort float64) {
	return x.Omega, x.Kfrac, x.Kshort
}

// IsMeta tells whether the combination requires full angular resolution.
func IsMeta(x, c Functional) bool {
	return x.Meta || c.Meta
}

// Result is the output of a grid evaluation: one potential matrix per
// spin channel, the XC energy, the integrated electron count and the
// kinetic energy density integral (meta functionals only).
type Result struct {
	V    []*mat.Dense
	E    float64
	Nel  float64
	Ekin float64
}
