package woa

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

func smallConfig() Config {
	cfg := DefaultConfig()
	cfg.Epochs = 15
	cfg.Population = 12
	return cfg
}

func TestSolve_ValidTourAndHistory(t *testing.T) {
	inst := tsp.RandomInstance(15, rand.New(rand.NewSource(10)))
	eval, err := tsp.NewEvaluator(inst)
	require.NoError(t, err)

	for _, policy := range []repair.Policy{repair.PolicyStable, repair.PolicyUnstable} {
		t.Run(string(policy), func(t *testing.T) {
			p, err := opt.NewProblem(inst, policy, false)
			require.NoError(t, err)
			s, err := New(smallConfig(), rand.New(rand.NewSource(1)))
			require.NoError(t, err)

			res, err := s.Solve(context.Background(), p)
			require.NoError(t, err)
			require.NoError(t, tsp.ValidatePermutation(res.Tour, 15))
			assert.InDelta(t, eval.MustTourLength(res.Tour), res.Distance, 1e-9)
			assert.Equal(t, 15, res.Iterations)
			assert.Equal(t, 12*16, res.Evaluations)
			require.Len(t, res.History, 15)
			for i := 1; i < len(res.History); i++ {
				assert.LessOrEqual(t, res.History[i], res.History[i-1])
			}
		})
	}
}

func TestSolve_WorkersKeepSeedDeterminism(t *testing.T) {
	inst := tsp.USCities()
	p, err := opt.NewProblem(inst, repair.PolicyUnstable, true)
	require.NoError(t, err)

	run := func(workers int) opt.Result {
		cfg := smallConfig()
		cfg.Workers = workers
		s, err := New(cfg, rand.New(rand.NewSource(42)))
		require.NoError(t, err)
		res, err := s.Solve(context.Background(), p)
		require.NoError(t, err)
		return res
	}

	a, b := run(1), run(4)
	assert.Equal(t, a.Tour, b.Tour)
	assert.Equal(t, a.History, b.History)
	assert.Equal(t, 0, a.Tour[0])
}

func TestSolve_CancelledContext(t *testing.T) {
	p, err := opt.NewProblem(tsp.USCities(), repair.PolicyStable, false)
	require.NoError(t, err)
	s, err := New(smallConfig(), rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = s.Solve(ctx, p)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"epochs", func(c *Config) { c.Epochs = 0 }},
		{"population", func(c *Config) { c.Population = 1 }},
		{"b", func(c *Config) { c.B = 0 }},
		{"workers", func(c *Config) { c.Workers = -1 }},
	}
	require.NoError(t, DefaultConfig().Validate())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
	_, err := New(DefaultConfig(), nil)
	assert.Error(t, err)
}
