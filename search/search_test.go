package search

import (
	"context"
	"testing"

	"example.com/gosad/gaussbasis"
	"example.com/gosad/scf"
	"example.com/gosad/xc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newSolver(t *testing.T, Z float64, exps []float64, lmax int) *scf.Solver {
	t.Helper()
	b, err := gaussbasis.New(Z, exps, lmax, gaussbasis.DefaultOptions)
	require.NoError(t, err)
	hf, err := xc.Lookup("hf")
	require.NoError(t, err)
	s, err := scf.NewSolver(b, lmax, hf, xc.None, scf.DefaultParams())
	require.NoError(t, err)
	return s
}

func evenTempered() []float64 {
	return gaussbasis.EvenTempered(0.05, 3, 10)
}

func assertRanked(t *testing.T, res *Result) {
	t.Helper()
	for i := 1; i < len(res.Ranked); i++ {
		assert.False(t, scf.Less(res.Ranked[i], res.Ranked[i-1]), "ranking broken at %d", i)
	}
	seen := map[string]bool{}
	for _, c := range res.Ranked {
		assert.False(t, seen[c.Key()], "duplicate %s", c.Key())
		seen[c.Key()] = true
	}
}

func TestRestrictedHelium(t *testing.T) {
	s := newSolver(t, 2, evenTempered(), 1)
	res, err := Restricted(context.Background(), s, 2, Options{}, zaptest.NewLogger(t))
	require.NoError(t, err)

	assert.Equal(t, "[2 0]", res.Best.Key())
	assert.True(t, res.Best.Converged)
	assert.Same(t, res.Best, res.Ranked[0])
	assert.Equal(t, 1, res.Rounds)
	assertRanked(t, res)

	keys := make([]string, len(res.Ranked))
	for i, c := range res.Ranked {
		keys[i] = c.Key()
		assert.Equal(t, 2, c.Nel())
	}
	assert.ElementsMatch(t, []string{"[2 0]", "[1 1]", "[0 2]"}, keys)
}

func TestParallelMatchesSequential(t *testing.T) {
	s := newSolver(t, 2, evenTempered(), 1)
	seq, err := Restricted(context.Background(), s, 2, Options{Workers: 1}, nil)
	require.NoError(t, err)
	par, err := Restricted(context.Background(), s, 2, Options{Workers: 4}, nil)
	require.NoError(t, err)

	require.Len(t, par.Ranked, len(seq.Ranked))
	for i := range seq.Ranked {
		assert.Equal(t, seq.Ranked[i].Key(), par.Ranked[i].Key())
		assert.InDelta(t, seq.Ranked[i].Econf, par.Ranked[i].Econf, 1e-9)
	}
}

func TestUnrestrictedLithium(t *testing.T) {
	s := newSolver(t, 3, evenTempered(), 1)
	res, err := Unrestricted(context.Background(), s, 2, 1, Options{Workers: 2}, zaptest.NewLogger(t))
	require.NoError(t, err)

	assert.Equal(t, "[2 0]/[1 0]", res.Best.Key())
	assert.True(t, res.Best.Converged)
	assert.InDelta(t, -7.4327, res.Best.Econf, 5e-3)
	assert.Same(t, res.Best, res.Ranked[0])
	assertRanked(t, res)
	for _, c := range res.Ranked {
		assert.Equal(t, 2, c.Orbs[0].Nel())
		assert.Equal(t, 1, c.Orbs[1].Nel())
	}
}

func TestMaxRounds(t *testing.T) {
	s := newSolver(t, 2, evenTempered(), 1)
	res, err := Restricted(context.Background(), s, 2, Options{MaxRounds: 1}, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Rounds)

	// Without any move rounds only the Aufbau configuration is solved.
	s0 := newSolver(t, 2, evenTempered(), 0)
	res, err = Restricted(context.Background(), s0, 2, Options{}, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Rounds)
	require.Len(t, res.Ranked, 1)
	assert.Equal(t, "[2]", res.Best.Key())
}

func TestBasisTooSmall(t *testing.T) {
	s := newSolver(t, 4, []float64{1.0}, 0)
	_, err := Restricted(context.Background(), s, 4, Options{}, nil)
	assert.Error(t, err)
}

func TestCanceled(t *testing.T) {
	s := newSolver(t, 2, evenTempered(), 1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Restricted(ctx, s, 2, Options{Workers: 2}, nil)
	assert.ErrorIs(t, err, context.Canceled)
}
