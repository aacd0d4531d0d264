package xc

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	f, err := Lookup(" HF ")
	require.NoError(t, err)
	assert.Equal(t, 1.0, f.Kfrac)
	assert.False(t, f.HasKernel())

	f, err = Lookup("lda0")
	require.NoError(t, err)
	omega, kfrac, kshort := RangeSeparation(f)
	assert.Equal(t, 0.0, omega)
	assert.Equal(t, 0.25, kfrac)
	assert.Equal(t, 0.0, kshort)

	_, err = Lookup("b3lyp")
	assert.Error(t, err)
	assert.Contains(t, Names(), "slater")
}

func TestIsMeta(t *testing.T) {
	assert.False(t, IsMeta(None, None))
	assert.True(t, IsMeta(Functional{Meta: true}, None))
	assert.True(t, IsMeta(None, Functional{Meta: true}))
}

func TestSlaterUnpolarized(t *testing.T) {
	slater, _ := Lookup("slater")
	rho := 0.3
	e, va, vb := slater.Eval(rho/2, rho/2)
	wantE := -0.75 * math.Cbrt(3.0/math.Pi) * math.Pow(rho, 4.0/3.0)
	wantV := -math.Cbrt(3.0 / math.Pi * rho)
	assert.InDelta(t, wantE, e, 1e-14)
	assert.InDelta(t, wantV, va, 1e-14)
	assert.Equal(t, va, vb)
}

// The potentials are the derivatives of the energy density.
func TestPotentialIsDerivative(t *testing.T) {
	for _, name := range []string{"slater", "chachiyo", "lda0"} {
		f, err := Lookup(name)
		require.NoError(t, err)
		for _, dens := range [][2]float64{{0.2, 0.2}, {0.5, 0.1}, {0.01, 0.3}} {
			ra, rb := dens[0], dens[1]
			_, va, vb := f.Eval(ra, rb)
			h := 1e-6
			ep, _, _ := f.Eval(ra+h, rb)
			em, _, _ := f.Eval(ra-h, rb)
			assert.InDelta(t, (ep-em)/(2*h), va, 1e-6, "%s va at %v", name, dens)
			ep, _, _ = f.Eval(ra, rb+h)
			em, _, _ = f.Eval(ra, rb-h)
			assert.InDelta(t, (ep-em)/(2*h), vb, 1e-6, "%s vb at %v", name, dens)
		}
	}
}

func TestChachiyoHighDensityNegative(t *testing.T) {
	c, _ := Lookup("chachiyo")
	e, _, _ := c.Eval(1.0, 1.0)
	assert.Less(t, e, 0.0)
	e, va, vb := c.Eval(0, 0)
	assert.Zero(t, e)
	assert.Zero(t, va)
	assert.Zero(t, vb)
}
