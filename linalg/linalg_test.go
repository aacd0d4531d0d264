package linalg

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func testOverlap() *mat.Dense {
	return mat.NewDense(3, 3, []float64{
		1.0, 0.4, 0.1,
		0.4, 1.0, 0.3,
		0.1, 0.3, 1.0,
	})
}

func TestSqrtInverse(t *testing.T) {
	S := testOverlap()
	X, err := SqrtInverse(S)
	require.NoError(t, err)

	var res mat.Dense
	res.Mul(X, S)
	res.Mul(&res, X)
	assert.True(t, mat.EqualApprox(&res, eye(3), 1e-12), "X S X =\n%s", Format(&res))
}

func TestSqrtInverseNotPositive(t *testing.T) {
	S := mat.NewDense(2, 2, []float64{1, 2, 2, 1})
	_, err := SqrtInverse(S)
	assert.Error(t, err)
}

func TestEigGSym(t *testing.T) {
	S := testOverlap()
	X, err := SqrtInverse(S)
	require.NoError(t, err)
	F := mat.NewDense(3, 3, []float64{
		-2.0, 0.3, 0.0,
		0.3, -0.5, 0.2,
		0.0, 0.2, 1.5,
	})
	vals, C, err := EigGSym(F, X)
	require.NoError(t, err)
	for i := 1; i < len(vals); i++ {
		assert.LessOrEqual(t, vals[i-1], vals[i])
	}

	// Cᵀ S C = 1 and Cᵀ F C = diag(e)
	var CSC, CFC mat.Dense
	CSC.Mul(C.T(), S)
	CSC.Mul(&CSC, C)
	assert.True(t, mat.EqualApprox(&CSC, eye(3), 1e-10))
	CFC.Mul(C.T(), F)
	CFC.Mul(&CFC, C)
	for i := range vals {
		assert.InDelta(t, vals[i], CFC.At(i, i), 1e-10)
	}
}

func TestTrace(t *testing.T) {
	A := mat.NewDense(2, 2, []float64{1, 2, 3, 4})
	B := mat.NewDense(2, 2, []float64{5, 6, 7, 8})
	var AB mat.Dense
	AB.Mul(A, B)
	assert.Equal(t, mat.Trace(&AB), Trace(A, B))
}

func TestSuperCubeRoundTrip(t *testing.T) {
	c := NewCube(2, 2, 3)
	for l := range c {
		c[l].Set(0, 0, float64(l+1))
		c[l].Set(0, 1, float64(10*l))
		c[l].Set(1, 0, float64(10*l))
		c[l].Set(1, 1, -float64(l))
	}
	super := SuperCube(c)
	r, cc := super.Dims()
	assert.Equal(t, 6, r)
	assert.Equal(t, 6, cc)
	// off-diagonal blocks stay empty
	assert.Equal(t, 0.0, super.At(0, 2))
	assert.Equal(t, 0.0, super.At(5, 0))

	back := MiniMat(super, 3)
	require.Len(t, back, 3)
	for l := range c {
		assert.True(t, mat.Equal(c[l], back[l]), "slice %d", l)
	}
}

func TestSuperMat(t *testing.T) {
	S := testOverlap()
	super := SuperMat(S, 2)
	back := MiniMat(super, 2)
	assert.True(t, mat.Equal(S, back[0]))
	assert.True(t, mat.Equal(S, back[1]))
}

func TestCubeArithmetic(t *testing.T) {
	a := Replicate(eye(2), 2)
	b := a.Clone()
	b.AddScaled(2.0, a)
	assert.Equal(t, 3.0, b[1].At(1, 1))
	assert.Equal(t, 1.0, a[1].At(1, 1))
	assert.Equal(t, 6.0, b.Sum().At(0, 0))
	b.Zero()
	assert.Equal(t, 0.0, mat.Sum(b.Sum()))
}

func TestAngularBasis(t *testing.T) {
	lval, mval := AngularBasis(2, 2)
	assert.Equal(t, []int{0, 1, 1, 1, 2, 2, 2, 2, 2}, lval)
	assert.Equal(t, []int{0, -1, 0, 1, -2, -1, 0, 1, 2}, mval)

	lval, _ = AngularBasis(2, 0)
	assert.Equal(t, []int{0, 1, 2}, lval)
}

func TestFullDensityAverage(t *testing.T) {
	P := NewCube(2, 2, 3)
	for l := range P {
		P[l].Set(0, 0, float64(2*l+1))
		P[l].Set(1, 1, math.Pi)
	}
	full := FullDensity(P)
	r, _ := full.Dims()
	assert.Equal(t, 2*9, r)
	// every m block carries Pl/(2l+1)
	assert.InDelta(t, 1.0, full.At(2*8, 2*8), 1e-15)

	lval, mval := AngularBasis(2, 2)
	avg := MAverage(full, 2, lval, mval)
	for l := range P {
		var want mat.Dense
		want.Scale(1.0/float64(2*l+1), P[l])
		assert.True(t, mat.EqualApprox(&want, avg[l], 1e-15), "l=%d", l)
	}
}

func eye(n int) *mat.Dense {
	res := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		res.Set(i, i, 1)
	}
	return res
}
