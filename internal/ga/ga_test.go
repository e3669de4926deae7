package ga

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

func TestSolve_ValidTour(t *testing.T) {
	inst := tsp.RandomInstance(15, rand.New(rand.NewSource(10)))
	eval, err := tsp.NewEvaluator(inst)
	require.NoError(t, err)

	for _, cx := range []Crossover{CrossoverUniform, CrossoverMultiPoints} {
		t.Run(string(cx), func(t *testing.T) {
			p, err := opt.NewProblem(inst, repair.PolicyStable, false)
			require.NoError(t, err)

			cfg := DefaultConfig()
			cfg.Population = 11
			cfg.Generations = 15
			cfg.Crossover = cx
			s, err := New(cfg, rand.New(rand.NewSource(2)))
			require.NoError(t, err)

			res, err := s.Solve(context.Background(), p)
			require.NoError(t, err)
			require.NoError(t, tsp.ValidatePermutation(res.Tour, 15))
			assert.InDelta(t, eval.MustTourLength(res.Tour), res.Distance, 1e-9)
			assert.Equal(t, 11*16, res.Evaluations)
			assert.Len(t, res.History, 15)
		})
	}
}

func TestOperators(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	p1 := []float64{0, 1, 2, 3, 4}
	p2 := []float64{10, 11, 12, 13, 14}
	c1 := make([]float64, 5)
	c2 := make([]float64, 5)

	for i := 0; i < 50; i++ {
		crossoverMultiPoints(p1, p2, c1, c2, rng)
		crossoverUniform(p1, p2, c1, c2, rng)
		// Гены только меняются местами между потомками
		for d := range p1 {
			assert.Equal(t, p1[d]+p2[d], c1[d]+c2[d])
		}
	}

	scores := []float64{5, 1, 3}
	assert.Equal(t, 1, tournamentSelect(scores, 50, rng))
}

func TestMutateReset_StaysInBounds(t *testing.T) {
	p, err := opt.NewProblem(tsp.USCities(), repair.PolicyStable, true)
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(3))
	x := make([]float64, p.Dims())
	p.RandomVector(x, rng)
	mutateReset(x, 1, p, rng)
	for d, v := range x {
		assert.GreaterOrEqual(t, v, p.Lower[d])
		assert.LessOrEqual(t, v, p.Upper[d])
	}
}

func TestConfig_Validate(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())

	cfg := DefaultConfig()
	cfg.Elite = cfg.Population
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Crossover = "pmx"
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.MutationRate = -0.1
	assert.Error(t, cfg.Validate())
}
