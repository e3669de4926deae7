package de

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

func TestSolve_DepotTour(t *testing.T) {
	inst := tsp.USCities()
	eval, err := tsp.NewEvaluator(inst)
	require.NoError(t, err)

	for _, strategy := range []Strategy{StrategyRand1Bin, StrategyBest1Bin} {
		t.Run(string(strategy), func(t *testing.T) {
			p, err := opt.NewProblem(inst, repair.PolicyUnstable, true)
			require.NoError(t, err)

			cfg := DefaultConfig()
			cfg.Generations = 20
			cfg.Population = 16
			cfg.Strategy = strategy
			cfg.Workers = 3
			s, err := New(cfg, rand.New(rand.NewSource(5)))
			require.NoError(t, err)

			res, err := s.Solve(context.Background(), p)
			require.NoError(t, err)
			require.Len(t, res.Tour, 13)
			assert.Equal(t, 0, res.Tour[0])
			require.NoError(t, tsp.ValidatePermutation(res.Tour, 13))
			assert.Equal(t, eval.MustTourLength(res.Tour), res.Distance)
			assert.Len(t, res.History, 20)
			assert.Equal(t, res.Distance, res.History[len(res.History)-1])
		})
	}
}

func TestSolve_SameSeedSameResult(t *testing.T) {
	inst := tsp.RandomInstance(12, rand.New(rand.NewSource(3)))
	p, err := opt.NewProblem(inst, repair.PolicyStable, false)
	require.NoError(t, err)

	run := func() opt.Result {
		cfg := DefaultConfig()
		cfg.Generations = 10
		cfg.Population = 8
		s, err := New(cfg, rand.New(rand.NewSource(11)))
		require.NoError(t, err)
		res, err := s.Solve(context.Background(), p)
		require.NoError(t, err)
		return res
	}
	a, b := run(), run()
	assert.Equal(t, a.Tour, b.Tour)
	assert.Equal(t, a.Distance, b.Distance)
}

func TestPickDistinct(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 200; i++ {
		r1, r2, r3 := pickDistinct(4, i%4, rng)
		got := map[int]bool{r1: true, r2: true, r3: true, i % 4: true}
		assert.Len(t, got, 4)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"generations", func(c *Config) { c.Generations = 0 }},
		{"population", func(c *Config) { c.Population = 3 }},
		{"f", func(c *Config) { c.F = 0 }},
		{"cr", func(c *Config) { c.CR = 1.5 }},
		{"strategy", func(c *Config) { c.Strategy = "current/2/exp" }},
	}
	require.NoError(t, DefaultConfig().Validate())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
