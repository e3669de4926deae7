package de

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"tspRepair/internal/opt"
)

// Solver — реализация дифференциальной эволюции.
type Solver struct {
	Cfg Config
	Rng *rand.Rand
}

// New возвращает новый DE-солвер с валидацией конфигурации.
// Используется в фабриках.
func New(cfg Config, rng *rand.Rand) (*Solver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, fmt.Errorf("генератор случайных чисел не инициализирован (nil)")
	}
	return &Solver{Cfg: cfg, Rng: rng}, nil
}

// Solve — основной цикл алгоритма.
func (s *Solver) Solve(ctx context.Context, p *opt.Problem) (opt.Result, error) {
	start := time.Now()

	if err := p.Validate(); err != nil {
		return opt.Result{}, err
	}
	if err := s.Cfg.Validate(); err != nil {
		return opt.Result{}, err
	}
	if s.Rng == nil {
		return opt.Result{}, fmt.Errorf("генератор случайных чисел не инициализирован (nil)")
	}

	dims := p.Dims()
	size := s.Cfg.Population

	eval, err := opt.NewEvaluator(p, size, s.Rng, s.Cfg.Workers)
	if err != nil {
		return opt.Result{}, err
	}

	// Текущая популяция и пробные векторы
	cur := opt.NewPopulation(size, dims)
	trial := opt.NewPopulation(size, dims)

	for i := range cur.Vectors {
		p.RandomVector(cur.Vectors[i], s.Rng)
	}
	if err := eval.Evaluate(ctx, cur); err != nil {
		return opt.Result{}, err
	}
	evals := size

	best := opt.NewTracker()
	best.OfferPopulation(cur)

	for gen := 0; gen < s.Cfg.Generations; gen++ {
		// Для поддержки отмены через context
		if err := ctx.Err(); err != nil {
			res := best.Result(evals, gen, map[string]any{"stopped": "context"})
			res.Duration = time.Since(start)
			return res, err
		}

		bestIdx := cur.Best()
		for i := 0; i < size; i++ {
			r1, r2, r3 := pickDistinct(size, i, s.Rng)
			base := cur.Vectors[r1]
			if s.Cfg.Strategy == StrategyBest1Bin {
				base = cur.Vectors[bestIdx]
			}
			a, b := cur.Vectors[r2], cur.Vectors[r3]

			x := cur.Vectors[i]
			u := trial.Vectors[i]

			// Биномиальный кроссовер: хотя бы одна координата от мутанта
			jRand := s.Rng.Intn(dims)
			for d := 0; d < dims; d++ {
				if d == jRand || s.Rng.Float64() < s.Cfg.CR {
					u[d] = p.Clamp(d, base[d]+s.Cfg.F*(a[d]-b[d]))
				} else {
					u[d] = x[d]
				}
			}
		}

		if err := eval.Evaluate(ctx, trial); err != nil {
			if ctx.Err() == nil {
				return opt.Result{}, err
			}
			res := best.Result(evals, gen, map[string]any{"stopped": "context"})
			res.Duration = time.Since(start)
			return res, err
		}
		evals += size

		// Отбор: пробный вектор заменяет родителя, если не хуже
		for i := 0; i < size; i++ {
			if trial.Costs[i] <= cur.Costs[i] {
				copy(cur.Vectors[i], trial.Vectors[i])
				cur.Tours[i] = trial.Tours[i]
				cur.Costs[i] = trial.Costs[i]
			}
		}

		best.OfferPopulation(cur)
		best.EndIteration()
	}

	res := best.Result(evals, s.Cfg.Generations, map[string]any{
		"population":  size,
		"generations": s.Cfg.Generations,
		"f":           s.Cfg.F,
		"cr":          s.Cfg.CR,
		"strategy":    string(s.Cfg.Strategy),
		"repair":      string(p.Policy),
	})
	res.Duration = time.Since(start)
	return res, nil
}

// pickDistinct выбирает три различных индекса из [0, n), не равных exclude.
func pickDistinct(n, exclude int, rng *rand.Rand) (int, int, int) {
	r1 := rng.Intn(n)
	for r1 == exclude {
		r1 = rng.Intn(n)
	}
	r2 := rng.Intn(n)
	for r2 == exclude || r2 == r1 {
		r2 = rng.Intn(n)
	}
	r3 := rng.Intn(n)
	for r3 == exclude || r3 == r1 || r3 == r2 {
		r3 = rng.Intn(n)
	}
	return r1, r2, r3
}
