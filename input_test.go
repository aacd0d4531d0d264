package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"example.com/gosad/orbdump"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestElements(t *testing.T) {
	for sym, want := range map[string]int{"H": 1, "he": 2, "NE": 10, " Ar ": 18, "Rn": 86} {
		Z, err := ElemData.Lookup(sym)
		require.NoError(t, err, sym)
		assert.Equal(t, want, Z, sym)
	}
	_, err := ElemData.Lookup("Xx")
	assert.Error(t, err)
	assert.Equal(t, "Ne", ElemData.Symbol(10))
}

func TestParseInputDefaults(t *testing.T) {
	in, err := ParseInput(strings.NewReader("element: Ne\n"))
	require.NoError(t, err)
	assert.Equal(t, 10, in.Z())
	assert.Equal(t, "hf", in.Exchange)
	assert.Equal(t, 100, in.SCF.MaxIt)
	assert.Equal(t, 24, in.Basis.Grid.Nodes)
	assert.Equal(t, 1, in.AngularMomentum())
	assert.Len(t, in.Exponents(), 18)

	nela, nelb := in.Electrons()
	assert.Equal(t, 10, nela)
	assert.Equal(t, 0, nelb)
}

func TestParseInput(t *testing.T) {
	src := `
element: N
unrestricted: true
multiplicity: 4
lmax: 2
basis:
  exponents: [0.1, 0.5, 2.5, 12.5]
  grid:
    nodes: 16
    elements: 20
exchange: slater
scf:
  maxit: 50
  diisthr: 0.001
search:
  workers: 2
`
	in, err := ParseInput(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, 2, in.AngularMomentum())
	assert.Equal(t, []float64{0.1, 0.5, 2.5, 12.5}, in.Exponents())
	assert.Equal(t, 16, in.Basis.Grid.Nodes)
	assert.Equal(t, 50, in.SCF.MaxIt)
	assert.Equal(t, 0.1, in.SCF.DIISEps)
	assert.Equal(t, 2, in.Search.Workers)

	nela, nelb := in.Electrons()
	assert.Equal(t, 5, nela)
	assert.Equal(t, 2, nelb)
}

func TestParseInputErrors(t *testing.T) {
	for name, src := range map[string]string{
		"no element":     "charge: 0\n",
		"unknown":        "element: Xx\n",
		"bad diis":       "element: He\nscf:\n  diisthr: 0.5\n",
		"charge":         "element: He\ncharge: 3\n",
		"multiplicity":   "element: He\nunrestricted: true\nmultiplicity: 2\n",
		"negative alpha": "element: He\nbasis:\n  exponents: [1.0, -2.0]\n",
		"unknown field":  "element: He\nmaxiter: 3\n",
	} {
		_, err := ParseInput(strings.NewReader(src))
		assert.Error(t, err, name)
	}
}

func TestOutputNames(t *testing.T) {
	assert.Equal(t, "dir/ne.out", outputName("dir/ne.yaml"))
	assert.Equal(t, "ne.out", outputName("ne"))
	assert.Equal(t, "out/Ne_orbs_a.dat.zst", withSuffix("out/Ne_orbs.dat.zst", "_a"))
	assert.Equal(t, "plot_b", withSuffix("plot", "_b"))
}

func TestRunHelium(t *testing.T) {
	dir := t.TempDir()
	inpFname := filepath.Join(dir, "he.yaml")
	src := "element: He\n" +
		"lmax: 1\n" +
		"basis:\n  alpha0: 0.05\n  beta: 3\n  n: 10\n" +
		"output:\n" +
		"  orbitals: " + filepath.Join(dir, "He_orbs.dat") + "\n" +
		"  potential: " + filepath.Join(dir, "He_pot.dat") + "\n"
	require.NoError(t, os.WriteFile(inpFname, []byte(src), 0644))

	in, lines, err := ReadInput(inpFname)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "he.out"), in.Output.Report)

	calc, err := Run(context.Background(), "test", in, zaptest.NewLogger(t))
	require.NoError(t, err)
	assert.Equal(t, "[2 0]", calc.Result.Best.Key())
	assert.InDelta(t, -2.8617, calc.Result.Best.Econf, 2e-3)

	require.NoError(t, calc.WriteOutputs(lines))
	report, err := os.ReadFile(in.Output.Report)
	require.NoError(t, err)
	assert.Contains(t, string(report), "element: He")
	assert.Contains(t, string(report), "1s^{2}")

	tab, err := orbdump.Read(filepath.Join(dir, "He_orbs.dat"))
	require.NoError(t, err)
	assert.Equal(t, []int{0}, tab.L)
	assert.Equal(t, []int{2}, tab.Occ)

	data, err := os.ReadFile(filepath.Join(dir, "He_pot.dat"))
	require.NoError(t, err)
	pot, err := ReadLines(bytes.NewReader(data))
	require.NoError(t, err)
	for i := 2; i < len(pot); i++ {
		r0, r1 := strings.Fields(pot[i-1])[0], strings.Fields(pot[i])[0]
		assert.Less(t, parseFloat(t, r0), parseFloat(t, r1), "row %d", i)
	}
	assert.True(t, strings.HasPrefix(pot[0], "#"))
	assert.Len(t, pot, len(calc.Basis.Radii())+1)
}

func parseFloat(t *testing.T, s string) float64 {
	t.Helper()
	v, err := strconv.ParseFloat(s, 64)
	require.NoError(t, err)
	return v
}
