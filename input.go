// input.go --  This file is part of goHF project.
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
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"example.com/gosad/gaussbasis"
	"example.com/gosad/scf"
	"example.com/gosad/search"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Input is the YAML description of a calculation.
type Input struct {
	Element string `yaml:"element" validate:"required"`
	Charge  int    `yaml:"charge"`
	// Unrestricted calculations use separate alpha and beta channels.
	Unrestricted bool `yaml:"unrestricted"`
	// Multiplicity 2S+1 of an unrestricted calculation, 0 for the lowest.
	Multiplicity int `yaml:"multiplicity" validate:"gte=0"`
	// Highest angular momentum, derived from the element when absent.
	Lmax *int `yaml:"lmax" validate:"omitempty,gte=0,lte=5"`

	Basis       BasisInput     `yaml:"basis"`
	Exchange    string         `yaml:"exchange" validate:"required"`
	Correlation string         `yaml:"correlation" validate:"required"`
	SCF         scf.Params     `yaml:"scf"`
	Search      search.Options `yaml:"search"`
	Output      OutputInput    `yaml:"output"`
}

// BasisInput gives the Gaussian exponents explicitly or as an
// even-tempered series alpha0*beta^k, k < n.
type BasisInput struct {
	Exponents []float64          `yaml:"exponents" validate:"omitempty,dive,gt=0"`
	Alpha0    float64            `yaml:"alpha0" validate:"gt=0"`
	Beta      float64            `yaml:"beta" validate:"gt=1"`
	N         int                `yaml:"n" validate:"gte=1"`
	Grid      gaussbasis.Options `yaml:"grid"`
}

// OutputInput names the result files; empty names are not written.
type OutputInput struct {
	Report    string  `yaml:"report"`
	Orbitals  string  `yaml:"orbitals"`
	Plot      string  `yaml:"plot"`
	PlotRmax  float64 `yaml:"plotrmax" validate:"gt=0"`
	Potential string  `yaml:"potential"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

func defaultInput() Input {
	return Input{
		Exchange:    "hf",
		Correlation: "none",
		Basis: BasisInput{
			Alpha0: 0.02,
			Beta:   2.5,
			N:      18,
			Grid:   gaussbasis.DefaultOptions,
		},
		SCF:    scf.DefaultParams(),
		Output: OutputInput{PlotRmax: 10},
	}
}

// ParseInput reads the YAML input on top of the defaults and validates it.
func ParseInput(r io.Reader) (*Input, error) {
	in := defaultInput()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&in); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("input: %w", err)
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return &in, nil
}

// ReadInput parses the input file fname. The report goes next to it with
// the extension replaced by "out" unless the input names one.
func ReadInput(fname string) (*Input, []string, error) {
	data, err := os.ReadFile(fname)
	if err != nil {
		return nil, nil, err
	}
	in, err := ParseInput(bytes.NewReader(data))
	if err != nil {
		return nil, nil, err
	}
	if in.Output.Report == "" {
		in.Output.Report = outputName(fname)
	}
	lines, err := ReadLines(bytes.NewReader(data))
	return in, lines, err
}

func outputName(inpFname string) string {
	split := strings.Split(inpFname, ".")
	if len(split) < 2 {
		return inpFname + ".out"
	}
	fExt := split[len(split)-1]
	return inpFname[0:(len(inpFname)-len(fExt))] + "out"
}

// Validate checks field ranges and the consistency of charge and spin.
func (in *Input) Validate() error {
	if err := validate.Struct(in); err != nil {
		return fmt.Errorf("input: %w", err)
	}
	Z, err := ElemData.Lookup(in.Element)
	if err != nil {
		return fmt.Errorf("input: %w", err)
	}
	nel := Z - in.Charge
	if nel < 0 {
		return fmt.Errorf("input: charge %d exceeds Z=%d", in.Charge, Z)
	}
	if in.Unrestricted && in.Multiplicity > 0 {
		nunp := in.Multiplicity - 1
		if nunp > nel || (nel-nunp)%2 != 0 {
			return fmt.Errorf("input: multiplicity %d impossible with %d electrons", in.Multiplicity, nel)
		}
	}
	return nil
}

// Z is the nuclear charge.
func (in *Input) Z() int {
	Z, _ := ElemData.Lookup(in.Element)
	return Z
}

// Electrons returns the number of alpha and beta electrons. Restricted
// calculations put everything in the alpha count.
func (in *Input) Electrons() (nela, nelb int) {
	nel := in.Z() - in.Charge
	if !in.Unrestricted {
		return nel, 0
	}
	mult := in.Multiplicity
	if mult == 0 {
		mult = nel%2 + 1
	}
	nela = (nel + mult - 1) / 2
	return nela, nel - nela
}

// AngularMomentum is the lmax of the calculation: the given one or the
// highest l occupied in the ground states of the row.
func (in *Input) AngularMomentum() int {
	if in.Lmax != nil {
		return *in.Lmax
	}
	switch Z := in.Z(); {
	case Z <= 2:
		return 0
	case Z <= 20:
		return 1
	case Z <= 56:
		return 2
	}
	return 3
}

// Exponents lists the primitive exponents of the basis.
func (in *Input) Exponents() []float64 {
	if len(in.Basis.Exponents) > 0 {
		return in.Basis.Exponents
	}
	return gaussbasis.EvenTempered(in.Basis.Alpha0, in.Basis.Beta, in.Basis.N)
}
