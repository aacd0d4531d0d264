package orbdump

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"example.com/gosad/gaussbasis"
	"example.com/gosad/orbitals"
	"example.com/gosad/scf"
	"example.com/gosad/xc"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestEncodeFormat(t *testing.T) {
	tab := &Table{
		L:      []int{0},
		Occ:    []int{2},
		E:      []float64{-0.5},
		R:      []float64{0.5, 1},
		Values: mat.NewDense(2, 1, []float64{1, -0.25}),
	}
	var buf bytes.Buffer
	require.NoError(t, tab.Encode(&buf))
	want := "2 1\n" +
		" 0\n" +
		" 2\n" +
		" -5.000000e-01\n" +
		"5.000000e-01  1.000000e+00\n" +
		"1.000000e+00 -2.500000e-01\n"
	assert.Equal(t, want, buf.String())
}

func berylliumCore(t *testing.T) (*orbitals.Channel, *gaussbasis.Basis) {
	t.Helper()
	b, err := gaussbasis.New(4, gaussbasis.EvenTempered(0.1, 3, 8), 1, gaussbasis.DefaultOptions)
	require.NoError(t, err)
	s, err := scf.NewSolver(b, 1, xc.None, xc.None, scf.DefaultParams())
	require.NoError(t, err)
	ch := orbitals.New(true, 1)
	require.NoError(t, s.Initialize(ch))
	ch.SetOccs([]int{4, 0})
	return ch, b
}

func TestTabulate(t *testing.T) {
	ch, b := berylliumCore(t)
	tab, err := Tabulate(ch, b)
	require.NoError(t, err)

	assert.Equal(t, 2, tab.Norb())
	if diff := cmp.Diff([]int{0, 0}, tab.L); diff != "" {
		t.Errorf("l values (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{2, 2}, tab.Occ); diff != "" {
		t.Errorf("occupations (-want +got):\n%s", diff)
	}
	assert.Less(t, tab.E[0], tab.E[1])
	assert.Equal(t, []string{"1s^{2}", "2s^{2}"}, tab.Labels)

	nr, nc := tab.Values.Dims()
	assert.Equal(t, len(b.Radii()), nr)
	assert.Equal(t, 2, nc)

	vals := b.Orbitals(ch.C[0])
	for ir := 0; ir < nr; ir += 17 {
		assert.InDelta(t, vals.At(ir, 0), tab.Values.At(ir, 0), 1e-14)
		assert.InDelta(t, vals.At(ir, 1), tab.Values.At(ir, 1), 1e-14)
	}

	var buf bytes.Buffer
	require.NoError(t, tab.Encode(&buf))
	lines := strings.Split(buf.String(), "\n")
	assert.Equal(t, " 0 0", lines[1])
	assert.Equal(t, " 2 2", lines[2])
	assert.Len(t, lines, 4+nr+1)

	prev := -1.0
	for i, line := range lines[4 : 4+nr] {
		var r float64
		_, err := fmt.Sscan(line, &r)
		require.NoError(t, err)
		assert.Greater(t, r, prev, "dump row %d", i)
		prev = r
	}
}

func TestTabulateUninitialized(t *testing.T) {
	_, b := berylliumCore(t)
	_, err := Tabulate(orbitals.New(true, 1), b)
	assert.Error(t, err)
}

func TestWriteRead(t *testing.T) {
	ch, b := berylliumCore(t)
	tab, err := Tabulate(ch, b)
	require.NoError(t, err)

	dir := t.TempDir()
	for _, name := range []string{"Be_orbs.dat", "Be_orbs.dat.zst"} {
		path := filepath.Join(dir, name)
		require.NoError(t, Write(path, tab))
		got, err := Read(path)
		require.NoError(t, err, name)
		assert.Equal(t, tab.L, got.L)
		assert.Equal(t, tab.Occ, got.Occ)
		assert.InDeltaSlice(t, tab.E, got.E, 1e-6*abs(tab.E[0]))
		assert.Len(t, got.R, len(tab.R))
		assert.InDelta(t, tab.Values.At(3, 1), got.Values.At(3, 1), 1e-5*abs(tab.Values.At(3, 1))+1e-300)
	}

	plain, err := os.ReadFile(filepath.Join(dir, "Be_orbs.dat"))
	require.NoError(t, err)
	packed, err := os.ReadFile(filepath.Join(dir, "Be_orbs.dat.zst"))
	require.NoError(t, err)
	assert.Less(t, len(packed), len(plain))
}

func TestPlot(t *testing.T) {
	ch, b := berylliumCore(t)
	tab, err := Tabulate(ch, b)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "Be.png")
	require.NoError(t, Plot(path, "Be core guess", tab, 10))
	st, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, st.Size())

	assert.Error(t, Plot(path, "", tab, 0))
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
