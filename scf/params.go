// params.go --  This file is part of goHF project.
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

	"github.com/go-playground/validator/v10"
)

// Params control the SCF iterations.
type Params struct {
	MaxIt int `yaml:"maxit" validate:"gte=1"`
	// Level shift of the virtual orbitals while the DIIS error is large.
	Shift float64 `yaml:"shift" validate:"gte=0"`
	// Occupied-virtual damping factor, used when Shift is zero.
	Damp    float64 `yaml:"damp" validate:"gte=0,lte=1"`
	ConvThr float64 `yaml:"convthr" validate:"gt=0"`
	// Density threshold of the XC quadrature.
	DFTThr    float64 `yaml:"dftthr" validate:"gte=0"`
	DIISEps   float64 `yaml:"diiseps" validate:"gt=0"`
	DIISThr   float64 `yaml:"diisthr" validate:"gt=0,ltefield=DIISEps"`
	DIISOrder int     `yaml:"diisorder" validate:"gte=1"`
}

// DefaultParams are reasonable settings for light atoms.
func DefaultParams() Params {
	return Params{
		MaxIt:     100,
		Shift:     0.0,
		Damp:      0.0,
		ConvThr:   1e-7,
		DFTThr:    1e-12,
		DIISEps:   0.1,
		DIISThr:   0.01,
		DIISOrder: 10,
	}
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Validate checks the ranges of the parameters.
func (p Params) Validate() error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("scf: invalid parameters: %w", err)
	}
	return nil
}
