package diis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func eye(n int) *mat.Dense {
	res := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		res.Set(i, i, 1)
	}
	return res
}

var pdens = mat.NewDense(2, 2, []float64{1, 0, 0, 0})

func fock(a float64) *mat.Dense {
	return mat.NewDense(2, 2, []float64{1, a, a, 2})
}

func TestCommutingResidualVanishes(t *testing.T) {
	d := New(eye(2), eye(2), Options{Eps: 1, Thr: 0.1, Order: 5})
	err := d.Update([]*mat.Dense{fock(0)}, []*mat.Dense{pdens}, -1)
	assert.Zero(t, err)

	err = d.Update([]*mat.Dense{fock(0.01)}, []*mat.Dense{pdens}, -1)
	assert.InDelta(t, 0.01/math.Sqrt2, err, 1e-14)
}

func TestExtrapolateEmpty(t *testing.T) {
	d := New(eye(2), eye(2), Options{Eps: 1, Thr: 0.1, Order: 5})
	_, err := d.Extrapolate()
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestHistoryBounded(t *testing.T) {
	d := New(eye(2), eye(2), Options{Eps: 1, Thr: 0.1, Order: 3})
	for i := 0; i < 7; i++ {
		d.Update([]*mat.Dense{fock(0.001 * float64(i+1))}, []*mat.Dense{pdens}, 0)
	}
	assert.Equal(t, 3, d.Len())
}

func TestPureDIIS(t *testing.T) {
	d := New(eye(2), eye(2), Options{Eps: 1, Thr: 0.1, Order: 5})
	d.Update([]*mat.Dense{fock(0.01)}, []*mat.Dense{pdens}, -1)

	F, err := d.Extrapolate()
	require.NoError(t, err)
	assert.True(t, mat.Equal(fock(0.01), F[0]), "single entry returns the latest Fock matrix")

	d.Update([]*mat.Dense{fock(-0.01)}, []*mat.Dense{pdens}, -1)
	F, err = d.Extrapolate()
	require.NoError(t, err)
	// opposite residuals cancel exactly
	assert.True(t, mat.EqualApprox(fock(0), F[0], 1e-12))
}

func TestLinearMix(t *testing.T) {
	eps, thr := 0.01, 0.001
	d := New(eye(2), eye(2), Options{Eps: eps, Thr: thr, Order: 5})
	d.Update([]*mat.Dense{fock(0.01)}, []*mat.Dense{pdens}, -1)
	r := d.Update([]*mat.Dense{fock(-0.01)}, []*mat.Dense{pdens}, -1)
	w := (r - thr) / (eps - thr)

	F, err := d.Extrapolate()
	require.NoError(t, err)
	assert.InDelta(t, -0.01*w, F[0].At(0, 1), 1e-12)
	assert.InDelta(t, 1.0, F[0].At(0, 0), 1e-12)
}

func TestLargeErrorUsesLatest(t *testing.T) {
	d := New(eye(2), eye(2), Options{Eps: 0.001, Thr: 0.0001, Order: 5})
	d.Update([]*mat.Dense{fock(0.01)}, []*mat.Dense{pdens}, -1)
	d.Update([]*mat.Dense{fock(-0.02)}, []*mat.Dense{pdens}, -1)
	F, err := d.Extrapolate()
	require.NoError(t, err)
	assert.True(t, mat.Equal(fock(-0.02), F[0]))
}

func TestSharedSpinCoefficients(t *testing.T) {
	d := New(eye(2), eye(2), Options{Eps: 1, Thr: 0.1, Order: 5})
	pb := mat.NewDense(2, 2, nil)
	d.Update([]*mat.Dense{fock(0.01), fock(0.3)}, []*mat.Dense{pdens, pb}, -1)
	d.Update([]*mat.Dense{fock(-0.01), fock(0.5)}, []*mat.Dense{pdens, pb}, -1)
	F, err := d.Extrapolate()
	require.NoError(t, err)
	require.Len(t, F, 2)
	// beta has no residual and follows the alpha coefficients
	assert.InDelta(t, 0.4, F[1].At(0, 1), 1e-12)
}

func TestSingularFallsBackToLowestEnergy(t *testing.T) {
	d := New(eye(2), eye(2), Options{Eps: 1, Thr: 0.1, Order: 5})
	f1 := mat.NewDense(2, 2, []float64{1, 0, 0, 2})
	f2 := mat.NewDense(2, 2, []float64{3, 0, 0, 4})
	d.Update([]*mat.Dense{f1}, []*mat.Dense{pdens}, -1)
	d.Update([]*mat.Dense{f2}, []*mat.Dense{pdens}, -0.5)
	F, err := d.Extrapolate()
	require.NoError(t, err)
	assert.True(t, mat.Equal(f1, F[0]))
}

func TestOrthogonalizedResidual(t *testing.T) {
	S := mat.NewDense(2, 2, []float64{1, 0.2, 0.2, 1})
	X := mat.NewDense(2, 2, []float64{1.1, -0.1, -0.1, 1.1})
	d := New(S, X, Options{Eps: 1, Thr: 0.1, Order: 2})
	F := fock(0.05)
	R := d.residual(F, pdens)

	var fps, spf, want mat.Dense
	fps.Mul(F, pdens)
	fps.Mul(&fps, S)
	spf.Mul(S, pdens)
	spf.Mul(&spf, F)
	want.Sub(&fps, &spf)
	want.Mul(X.T(), &want)
	want.Mul(&want, X)
	assert.True(t, mat.EqualApprox(&want, R, 1e-14))
	// the commutator is antisymmetric
	assert.InDelta(t, -R.At(0, 1), R.At(1, 0), 1e-14)
}
