// elements.go --  This file is part of goHF project.
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
	_ "embed"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/exp/slices"
)

//go:embed mendeleev.csv
var mendeleevCSV string

type Mendeleev struct {
	Z          []int
	Symb, Name []string
}

var ElemData Mendeleev

func init() {
	if err := ElemData.build(mendeleevCSV); err != nil {
		panic(err)
	}
}

func (m *Mendeleev) build(data string) error {
	lines, err := ReadLines(strings.NewReader(data))
	if err != nil {
		return err
	}
	for i, str := range lines {
		if i == 0 || strings.TrimSpace(str) == "" {
			continue
		}
		words := strings.Split(str, ",")
		if len(words) < 3 {
			return fmt.Errorf("elements table: line %d: %q", i+1, str)
		}
		z, err := strconv.Atoi(words[0])
		if err != nil {
			return fmt.Errorf("elements table: line %d: %w", i+1, err)
		}
		m.Z = append(m.Z, z)
		m.Symb = append(m.Symb, words[1])
		m.Name = append(m.Name, words[2])
	}
	return nil
}

// Lookup resolves an element symbol, in any letter case, to its nuclear
// charge.
func (m *Mendeleev) Lookup(symbol string) (int, error) {
	s := strings.ToLower(strings.TrimSpace(symbol))
	if s != "" {
		s = strings.ToUpper(s[:1]) + s[1:]
	}
	idx := slices.Index(m.Symb, s)
	if idx < 0 {
		return 0, fmt.Errorf("unknown element %q", symbol)
	}
	return m.Z[idx], nil
}

// Symbol returns the symbol of the element with nuclear charge Z.
func (m *Mendeleev) Symbol(Z int) string {
	idx := slices.Index(m.Z, Z)
	if idx < 0 {
		return fmt.Sprintf("Z%d", Z)
	}
	return m.Symb[idx]
}
