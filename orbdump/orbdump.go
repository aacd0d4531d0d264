// orbdump.go --  This file is part of goHF project.
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

// Package orbdump writes the occupied orbitals of a channel on the radial
// grid as a text table, optionally zstd compressed, and plots them.
package orbdump

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"example.com/gosad/orbitals"
	"github.com/klauspost/compress/zstd"
	"gonum.org/v1/gonum/mat"
)

// Evaluator tabulates orbitals on a radial grid.
type Evaluator interface {
	Radii() []float64
	Orbitals(C mat.Matrix) *mat.Dense
}

// Table holds the occupied orbitals of one channel, grouped by l and
// within l in energy order.
type Table struct {
	L      []int
	Occ    []int
	E      []float64
	Labels []string
	R      []float64
	// Values has one row per radial point and one column per orbital.
	Values *mat.Dense
}

// Tabulate evaluates the occupied orbitals of ch.
func Tabulate(ch *orbitals.Channel, ev Evaluator) (*Table, error) {
	if !ch.OrbitalsInitialized() {
		return nil, fmt.Errorf("orbdump: channel has no orbitals")
	}
	occlist := ch.GetOccupied()
	t := &Table{R: ev.Radii()}
	var cols [][]float64
	for l := 0; l <= ch.Lmax(); l++ {
		var nodes []int
		for _, sh := range occlist {
			if sh.L != l {
				continue
			}
			nodes = append(nodes, sh.Node())
			t.L = append(t.L, l)
			t.Occ = append(t.Occ, sh.Nocc)
			t.E = append(t.E, sh.E)
			t.Labels = append(t.Labels, sh.String())
		}
		if len(nodes) == 0 {
			continue
		}
		nbf, _ := ch.C[l].Dims()
		Cl := mat.NewDense(nbf, len(nodes), nil)
		for i, node := range nodes {
			Cl.SetCol(i, mat.Col(nil, node, ch.C[l]))
		}
		vals := ev.Orbitals(Cl)
		for i := range nodes {
			cols = append(cols, mat.Col(nil, i, vals))
		}
	}

	t.Values = mat.NewDense(len(t.R), max(len(cols), 1), nil)
	for i, c := range cols {
		t.Values.SetCol(i, c)
	}
	return t, nil
}

// Norb is the number of tabulated orbitals.
func (t *Table) Norb() int {
	return len(t.L)
}

// Encode writes the table: the number of radial points and orbitals, the
// l values, occupations and energies of the orbitals, then one line per
// radial point with the radius and the orbital values.
func (t *Table) Encode(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d %d\n", len(t.R), t.Norb())
	for _, l := range t.L {
		fmt.Fprintf(bw, " %d", l)
	}
	fmt.Fprintln(bw)
	for _, n := range t.Occ {
		fmt.Fprintf(bw, " %d", n)
	}
	fmt.Fprintln(bw)
	for _, e := range t.E {
		fmt.Fprintf(bw, " %e", e)
	}
	fmt.Fprintln(bw)
	for ir, r := range t.R {
		fmt.Fprintf(bw, "%e", r)
		for k := 0; k < t.Norb(); k++ {
			fmt.Fprintf(bw, " % e", t.Values.At(ir, k))
		}
		fmt.Fprintln(bw)
	}
	return bw.Flush()
}

// Write saves the table to path, zstd compressed when the name ends in
// ".zst".
func Write(path string, t *Table) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	if !strings.HasSuffix(path, ".zst") {
		return t.Encode(f)
	}
	zw, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	if err != nil {
		return fmt.Errorf("orbdump: %w", err)
	}
	if err := t.Encode(zw); err != nil {
		zw.Close()
		return err
	}
	return zw.Close()
}

// Read loads a table written by Write, decompressing ".zst" files.
func Read(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".zst") {
		zr, err := zstd.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("orbdump: %w", err)
		}
		defer zr.Close()
		r = zr
	}
	return decode(r)
}

func decode(r io.Reader) (*Table, error) {
	br := bufio.NewReader(r)
	var nr, norb int
	if _, err := fmt.Fscanf(br, "%d %d\n", &nr, &norb); err != nil {
		return nil, fmt.Errorf("orbdump: header: %w", err)
	}
	t := &Table{
		L:      make([]int, norb),
		Occ:    make([]int, norb),
		E:      make([]float64, norb),
		R:      make([]float64, nr),
		Values: mat.NewDense(nr, max(norb, 1), nil),
	}
	for i := range t.L {
		if _, err := fmt.Fscan(br, &t.L[i]); err != nil {
			return nil, fmt.Errorf("orbdump: l values: %w", err)
		}
	}
	for i := range t.Occ {
		if _, err := fmt.Fscan(br, &t.Occ[i]); err != nil {
			return nil, fmt.Errorf("orbdump: occupations: %w", err)
		}
	}
	for i := range t.E {
		if _, err := fmt.Fscan(br, &t.E[i]); err != nil {
			return nil, fmt.Errorf("orbdump: energies: %w", err)
		}
	}
	for ir := range t.R {
		if _, err := fmt.Fscan(br, &t.R[ir]); err != nil {
			return nil, fmt.Errorf("orbdump: radial point %d: %w", ir, err)
		}
		for k := 0; k < norb; k++ {
			var v float64
			if _, err := fmt.Fscan(br, &v); err != nil {
				return nil, fmt.Errorf("orbdump: radial point %d: %w", ir, err)
			}
			t.Values.Set(ir, k, v)
		}
	}
	return t, nil
}
