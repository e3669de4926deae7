package sa

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tspRepair/internal/opt"
	"tspRepair/internal/repair"
	"tspRepair/internal/tsp"
)

func TestSolve_Neighborhoods(t *testing.T) {
	inst := tsp.RandomInstance(10, rand.New(rand.NewSource(6)))
	eval, err := tsp.NewEvaluator(inst)
	require.NoError(t, err)

	for _, nb := range []Neighborhood{NeighborhoodSwap, NeighborhoodInsert, NeighborhoodReset} {
		t.Run(string(nb), func(t *testing.T) {
			p, err := opt.NewProblem(inst, repair.PolicyStable, false)
			require.NoError(t, err)

			cfg := DefaultConfig()
			cfg.Iterations = 300
			cfg.Neighborhood = nb
			s, err := New(cfg, rand.New(rand.NewSource(2)))
			require.NoError(t, err)

			res, err := s.Solve(context.Background(), p)
			require.NoError(t, err)
			require.NoError(t, tsp.ValidatePermutation(res.Tour, 10))
			assert.InDelta(t, eval.MustTourLength(res.Tour), res.Distance, 1e-9)
			assert.Equal(t, res.Iterations+1, res.Evaluations)
			assert.Len(t, res.History, res.Iterations)
		})
	}
}

func TestSolve_CancelledContext(t *testing.T) {
	p, err := opt.NewProblem(tsp.USCities(), repair.PolicyUnstable, true)
	require.NoError(t, err)
	s, err := New(DefaultConfig(), rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := s.Solve(ctx, p)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, "context", res.Meta["stopped"])
	require.Len(t, res.Tour, 13)
}

func TestNeighbors_KeepValues(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	x := []float64{0.5, 1.5, 2.5, 3.5, 4.5}
	for i := 0; i < 50; i++ {
		neighborSwap(x, rng)
		neighborInsert(x, rng)
	}
	sum := 0.0
	for _, v := range x {
		sum += v
	}
	assert.Equal(t, 12.5, sum)
}

func TestConfig_Validate(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())

	cfg := DefaultConfig()
	cfg.FinalTemp = cfg.InitialTemp
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Neighborhood = "2opt"
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Alpha = 1
	assert.Error(t, cfg.Validate())
}
