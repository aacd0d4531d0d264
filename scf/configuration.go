// configuration.go --  This file is part of goHF project.
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

	"example.com/gosad/linalg"
	"example.com/gosad/orbitals"
)

// Configuration is one occupation pattern together with its densities,
// Fock matrices and energy decomposition. It has one orbital channel when
// restricted and an alpha and a beta channel otherwise.
type Configuration struct {
	Orbs []*orbitals.Channel
	// Densities and Fock matrices per channel, one slice per l.
	P, F []linalg.Cube

	Ekin, Epot, Ecoul, Exc float64
	Econf                  float64

	Converged  bool
	DIISError  float64
	Iterations int
}

// NewRestricted wraps a restricted channel.
func NewRestricted(orbs *orbitals.Channel) *Configuration {
	return &Configuration{Orbs: []*orbitals.Channel{orbs}}
}

// NewUnrestricted wraps an alpha and a beta channel.
func NewUnrestricted(orbsa, orbsb *orbitals.Channel) *Configuration {
	return &Configuration{Orbs: []*orbitals.Channel{orbsa, orbsb}}
}

func (c *Configuration) Restricted() bool {
	return len(c.Orbs) == 1
}

// Nel is the number of electrons in all channels.
func (c *Configuration) Nel() int {
	res := 0
	for _, o := range c.Orbs {
		res += o.Nel()
	}
	return res
}

// Less orders converged configurations first, then by energy.
func Less(a, b *Configuration) bool {
	if a.Converged != b.Converged {
		return a.Converged
	}
	return a.Econf < b.Econf
}

// Compare is Less as a three-way comparison.
func Compare(a, b *Configuration) int {
	switch {
	case Less(a, b):
		return -1
	case Less(b, a):
		return 1
	}
	return 0
}

// Equal reports whether the occupations agree in every channel.
func (c *Configuration) Equal(rh *Configuration) bool {
	if len(c.Orbs) != len(rh.Orbs) {
		return false
	}
	for i := range c.Orbs {
		if !c.Orbs[i].Equal(rh.Orbs[i]) {
			return false
		}
	}
	return true
}

// Clone returns a deep copy.
func (c *Configuration) Clone() *Configuration {
	res := *c
	res.Orbs = make([]*orbitals.Channel, len(c.Orbs))
	for i := range c.Orbs {
		res.Orbs[i] = c.Orbs[i].Clone()
	}
	res.P = cloneCubes(c.P)
	res.F = cloneCubes(c.F)
	return &res
}

func cloneCubes(c []linalg.Cube) []linalg.Cube {
	if c == nil {
		return nil
	}
	res := make([]linalg.Cube, len(c))
	for i := range c {
		res[i] = c[i].Clone()
	}
	return res
}

// Key identifies the occupation pattern, e.g. "[2 6]" or "[2 3]/[2 3]".
func (c *Configuration) Key() string {
	parts := make([]string, len(c.Orbs))
	for i, o := range c.Orbs {
		parts[i] = fmt.Sprint(o.Occs())
	}
	return strings.Join(parts, "/")
}

func (c *Configuration) String() string {
	return fmt.Sprintf("%s E=%.10f converged=%v", c.Key(), c.Econf, c.Converged)
}
