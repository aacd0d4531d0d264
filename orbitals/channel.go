// channel.go --  This file is part of goHF project.
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

// Package orbitals implements the orbital channel of a spherically
// averaged atom: per angular momentum occupations, orbital coefficients
// and orbital energies of one spin channel (or of both spins when the
// channel is restricted).
package orbitals

import (
	"fmt"
	"strings"

	"example.com/gosad/linalg"
	"golang.org/x/exp/slices"
	"gonum.org/v1/gonum/mat"
)

// Shell labels; l > 5 is printed as its number.
const shtype = "spdfgh"

// ShellCapacity is the number of electrons one radial orbital of angular
// momentum l can hold.
func ShellCapacity(l int, restricted bool) int {
	if restricted {
		return 4*l + 2
	}
	return 2*l + 1
}

// Channel holds the orbitals of one spin channel.
type Channel struct {
	// Orbital coefficients, one nbf x nmo slice per l.
	C linalg.Cube
	// Orbital energies E[l][node], ascending.
	E [][]float64

	occs  []int
	restr bool
	lmax  int
}

// New returns an empty channel.
func New(restricted bool, lmax int) *Channel {
	return &Channel{restr: restricted, lmax: lmax}
}

func (ch *Channel) Restricted() bool {
	return ch.restr
}

func (ch *Channel) SetRestricted(restricted bool) {
	ch.restr = restricted
}

func (ch *Channel) Lmax() int {
	return ch.lmax
}

func (ch *Channel) SetLmax(lmax int) {
	ch.lmax = lmax
}

// OrbitalsInitialized is true once the orbitals have been refreshed.
func (ch *Channel) OrbitalsInitialized() bool {
	return len(ch.C) > 0
}

// OccupationsInitialized is true when the channel holds electrons.
func (ch *Channel) OccupationsInitialized() bool {
	return ch.Nel() != 0
}

// ShellCapacity of shell l for this channel.
func (ch *Channel) ShellCapacity(l int) int {
	return ShellCapacity(l, ch.restr)
}

// Nel counts the electrons.
func (ch *Channel) Nel() int {
	res := 0
	for _, o := range ch.occs {
		res += o
	}
	return res
}

// Occs returns a copy of the occupations per l.
func (ch *Channel) Occs() []int {
	return slices.Clone(ch.occs)
}

func (ch *Channel) SetOccs(occs []int) {
	ch.occs = slices.Clone(occs)
}

// Nmo is the number of radial orbitals per l.
func (ch *Channel) Nmo() int {
	if len(ch.C) == 0 {
		return 0
	}
	_, nmo := ch.C.Dims()
	return nmo
}

// Equal compares the occupations.
func (ch *Channel) Equal(rh *Channel) bool {
	return slices.Equal(ch.occs, rh.occs)
}

// Clone returns a deep copy.
func (ch *Channel) Clone() *Channel {
	res := &Channel{
		C:     ch.C.Clone(),
		occs:  slices.Clone(ch.occs),
		restr: ch.restr,
		lmax:  ch.lmax,
	}
	if ch.E != nil {
		res.E = make([][]float64, len(ch.E))
		for l := range ch.E {
			res.E[l] = slices.Clone(ch.E[l])
		}
	}
	return res
}

// Fits tells whether the occupations can be placed in nmo radial
// orbitals per l.
func (ch *Channel) Fits(nmo int) bool {
	for l, o := range ch.occs {
		if o < 0 || o > nmo*ch.ShellCapacity(l) {
			return false
		}
	}
	return true
}

// fill distributes the electrons of shell l over the radial nodes.
func (ch *Channel) fill(l int) []int {
	var res []int
	if l >= len(ch.occs) {
		return nil
	}
	numl := ch.occs[l]
	for io := 0; io < ch.Nmo(); io++ {
		nocc := min(ch.ShellCapacity(l), numl)
		if nocc == 0 {
			break
		}
		numl -= nocc
		res = append(res, nocc)
	}
	return res
}

// CountOccupied counts the occupied radial orbitals of shell l.
func (ch *Channel) CountOccupied(l int) int {
	return len(ch.fill(l))
}

// Shell is one occupied (n, l) shell.
type Shell struct {
	N, L int
	E    float64
	Nocc int
}

// Node is the radial node index of the shell.
func (s Shell) Node() int {
	return s.N - s.L - 1
}

func (s Shell) String() string {
	return fmt.Sprintf("%d%s^{%d}", s.N, label(s.L), s.Nocc)
}

func label(l int) string {
	if l < len(shtype) {
		return string(shtype[l])
	}
	return fmt.Sprintf("[l=%d]", l)
}

// compareLevels orders orbital levels by energy; equal energies go by
// radial node and then by l.
func compareLevels(e1 float64, node1, l1 int, e2 float64, node2, l2 int) int {
	switch {
	case e1 < e2:
		return -1
	case e1 > e2:
		return 1
	case node1 != node2:
		return node1 - node2
	}
	return l1 - l2
}

// GetOccupied lists the occupied shells in energy order.
func (ch *Channel) GetOccupied() []Shell {
	var occlist []Shell
	for l := 0; l < len(ch.E) && l < len(ch.occs); l++ {
		for io, nocc := range ch.fill(l) {
			occlist = append(occlist, Shell{N: l + io + 1, L: l, E: ch.E[l][io], Nocc: nocc})
		}
	}
	slices.SortStableFunc(occlist, func(a, b Shell) int {
		return compareLevels(a.E, a.Node(), a.L, b.E, b.Node(), b.L)
	})
	return occlist
}

// GetGap returns, per l, the distance of the lowest empty orbital from the
// highest occupied one, or the lowest orbital energy of an empty shell.
func (ch *Channel) GetGap() []float64 {
	gap := make([]float64, len(ch.E))
	for l := range ch.E {
		nsh := ch.CountOccupied(l)
		switch {
		case len(ch.E[l]) == 0:
			gap[l] = 0
		case nsh == 0:
			gap[l] = ch.E[l][0]
		case nsh < len(ch.E[l]):
			gap[l] = ch.E[l][nsh] - ch.E[l][nsh-1]
		default:
			gap[l] = 0
		}
	}
	return gap
}

// Characterize gives the configuration as e.g. "1s^{2} 2s^{2} 2p^{6}".
func (ch *Channel) Characterize() string {
	occlist := ch.GetOccupied()
	parts := make([]string, len(occlist))
	for i, sh := range occlist {
		parts[i] = sh.String()
	}
	return strings.Join(parts, " ")
}

// AufbauOccupations fills numel electrons into the lowest orbitals.
// Electrons exceeding the capacity of the basis are dropped.
func (ch *Channel) AufbauOccupations(numel int) {
	type level struct {
		e       float64
		l, node int
	}
	var levels []level
	for l := range ch.E {
		for io, e := range ch.E[l] {
			levels = append(levels, level{e, l, io})
		}
	}
	slices.SortStableFunc(levels, func(a, b level) int {
		return compareLevels(a.e, a.node, a.l, b.e, b.node, b.l)
	})

	ch.occs = make([]int, ch.lmax+1)
	for _, lv := range levels {
		if numel <= 0 {
			break
		}
		nocc := min(ch.ShellCapacity(lv.l), numel)
		ch.occs[lv.l] += nocc
		numel -= nocc
	}
}

// MoveElectrons gives the trial channels reached by moving up to a full
// shell of electrons from one l to another. The identity move is always
// included; a channel with no possible move yields one empty channel.
func (ch *Channel) MoveElectrons() []*Channel {
	var ret []*Channel
	occs := make([]int, ch.lmax+1)
	copy(occs, ch.occs)
	for from := 0; from <= ch.lmax; from++ {
		for to := 0; to <= ch.lmax; to++ {
			maxmove := min(ch.ShellCapacity(from), ch.ShellCapacity(to))
			for nmove := 1; nmove <= maxmove; nmove++ {
				if occs[from] < nmove {
					continue
				}
				newch := ch.Clone()
				newch.occs = slices.Clone(occs)
				newch.occs[from] -= nmove
				newch.occs[to] += nmove
				ret = append(ret, newch)
			}
		}
	}

	if len(ret) == 0 {
		dummy := ch.Clone()
		dummy.occs = make([]int, ch.lmax+1)
		ret = append(ret, dummy)
	}
	return ret
}

// UpdateDensity accumulates nocc c cᵀ over the occupied orbitals of every
// shell into Pl, which must have lmax+1 slices.
func (ch *Channel) UpdateDensity(Pl linalg.Cube) {
	Pl.Zero()
	for l := 0; l <= ch.lmax; l++ {
		for io, nocc := range ch.fill(l) {
			c := ch.C[l].ColView(io)
			addOuter(Pl[l], float64(nocc), c)
		}
	}
}

// AngularDensity is the density per spin and per m: every occupied
// orbital enters with nocc/ShellCapacity(l).
func (ch *Channel) AngularDensity() linalg.Cube {
	nbf, _ := ch.C.Dims()
	P := linalg.NewCube(nbf, nbf, ch.lmax+1)
	for l := 0; l <= ch.lmax; l++ {
		for io, nocc := range ch.fill(l) {
			fracocc := float64(nocc) / float64(ch.ShellCapacity(l))
			addOuter(P[l], fracocc, ch.C[l].ColView(io))
		}
	}
	return P
}

func addOuter(P *mat.Dense, alpha float64, c mat.Vector) {
	n := c.Len()
	for i := 0; i < n; i++ {
		ci := alpha * c.AtVec(i)
		for j := 0; j < n; j++ {
			P.Set(i, j, P.At(i, j)+ci*c.AtVec(j))
		}
	}
}
