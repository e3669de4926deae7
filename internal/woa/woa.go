package woa

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"tspRepair/internal/opt"
)

// Solver — реализация алгоритма китов (Whale Optimization Algorithm).
type Solver struct {
	Cfg Config
	Rng *rand.Rand
}

// New возвращает новый WOA-солвер с валидацией конфигурации.
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

	// Текущая популяция и кандидаты
	cur := opt.NewPopulation(size, dims)
	cand := opt.NewPopulation(size, dims)

	for i := range cur.Vectors {
		p.RandomVector(cur.Vectors[i], s.Rng)
	}
	if err := eval.Evaluate(ctx, cur); err != nil {
		return opt.Result{}, err
	}
	evals := size

	best := opt.NewTracker()
	best.OfferPopulation(cur)
	bestPos := make([]float64, dims)
	copy(bestPos, cur.Vectors[cur.Best()])

	for epoch := 0; epoch < s.Cfg.Epochs; epoch++ {
		// Для поддержки отмены через context
		if err := ctx.Err(); err != nil {
			res := best.Result(evals, epoch, map[string]any{"stopped": "context"})
			res.Duration = time.Since(start)
			return res, err
		}

		// a линейно убывает от 2 до 0
		a := 2 - 2*float64(epoch)/float64(s.Cfg.Epochs)

		for i := 0; i < size; i++ {
			x := cur.Vectors[i]
			next := cand.Vectors[i]

			A := 2*a*s.Rng.Float64() - a
			C := 2 * s.Rng.Float64()
			l := 2*s.Rng.Float64() - 1

			if s.Rng.Float64() < 0.5 {
				// Окружение добычи (|A| < 1) или поиск от случайного кита
				target := bestPos
				if math.Abs(A) >= 1 {
					target = cur.Vectors[s.Rng.Intn(size)]
				}
				for d := 0; d < dims; d++ {
					D := math.Abs(C*target[d] - x[d])
					next[d] = p.Clamp(d, target[d]-A*D)
				}
			} else {
				// Движение по спирали к лучшему решению
				spiral := math.Exp(s.Cfg.B*l) * math.Cos(2*math.Pi*l)
				for d := 0; d < dims; d++ {
					D := math.Abs(bestPos[d] - x[d])
					next[d] = p.Clamp(d, D*spiral+bestPos[d])
				}
			}
		}

		if err := eval.Evaluate(ctx, cand); err != nil {
			if ctx.Err() == nil {
				return opt.Result{}, err
			}
			res := best.Result(evals, epoch, map[string]any{"stopped": "context"})
			res.Duration = time.Since(start)
			return res, err
		}
		evals += size

		// Жадная замена: кит переходит только на лучшую позицию
		for i := 0; i < size; i++ {
			if cand.Costs[i] < cur.Costs[i] {
				copy(cur.Vectors[i], cand.Vectors[i])
				cur.Tours[i] = cand.Tours[i]
				cur.Costs[i] = cand.Costs[i]
			}
		}

		b := cur.Best()
		if best.Offer(cur.Tours[b], cur.Costs[b]) {
			copy(bestPos, cur.Vectors[b])
		}
		best.EndIteration()
	}

	res := best.Result(evals, s.Cfg.Epochs, map[string]any{
		"population": size,
		"epochs":     s.Cfg.Epochs,
		"b":          s.Cfg.B,
		"repair":     string(p.Policy),
	})
	res.Duration = time.Since(start)
	return res, nil
}
