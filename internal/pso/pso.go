package pso

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"tspRepair/internal/opt"
)

// Solver - структура реализации алгоритма роя частиц
type Solver struct {
	Cfg Config
	Rng *rand.Rand
}

// New возвращает новый PSO-солвер с валидацией конфигурации, с использованием инициализированного генератора случайных чисел.
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

// Solve — реализация эвристики.
// Позиция частицы — вектор индексов городов, который перед оценкой
// превращается в маршрут политикой восстановления задачи.
func (s *Solver) Solve(ctx context.Context, p *opt.Problem) (opt.Result, error) {
	start := time.Now()

	// Валидация конфигурации
	if err := p.Validate(); err != nil {
		return opt.Result{}, err
	}
	if err := s.Cfg.Validate(); err != nil {
		return opt.Result{}, err
	}
	if s.Rng == nil {
		return opt.Result{}, fmt.Errorf("генератор случайных чисел не инициализирован (nil)")
	}

	n := p.Dims()
	size := s.Cfg.Particles

	iters := s.Cfg.Iterations
	if iters <= 0 {
		iters = s.Cfg.IterationsPerCity * p.Inst.Cities
	}

	eval, err := opt.NewEvaluator(p, size, s.Rng, s.Cfg.Workers)
	if err != nil {
		return opt.Result{}, err
	}

	// Позиции частиц и их личные лучшие позиции
	swarm := opt.NewPopulation(size, n)
	pBest := opt.NewPopulation(size, n)
	vel := make([][]float64, size)

	// Ограничение скорости по каждому измерению
	vMax := make([]float64, n)
	for d := 0; d < n; d++ {
		span := p.Upper[d] - p.Lower[d]
		if s.Cfg.VMax > 0 {
			vMax[d] = s.Cfg.VMax * span
		} else {
			vMax[d] = math.Inf(1)
		}
	}

	// Случайная инициализация позиций и скоростей частиц
	for i := 0; i < size; i++ {
		p.RandomVector(swarm.Vectors[i], s.Rng)
		vel[i] = make([]float64, n)
		for d := 0; d < n; d++ {
			span := p.Upper[d] - p.Lower[d]
			vel[i][d] = (s.Rng.Float64()*2 - 1) * 0.1 * span
		}
	}

	// Оценка начального положения частиц
	if err := eval.Evaluate(ctx, swarm); err != nil {
		return opt.Result{}, err
	}
	evals := size

	for i := 0; i < size; i++ {
		copy(pBest.Vectors[i], swarm.Vectors[i])
		pBest.Tours[i] = swarm.Tours[i]
		pBest.Costs[i] = swarm.Costs[i]
	}

	// Вычисление глобально лучшего решения
	best := opt.NewTracker()
	gBestPos := make([]float64, n)
	g := pBest.Best()
	best.Offer(pBest.Tours[g], pBest.Costs[g])
	copy(gBestPos, pBest.Vectors[g])

	w, c1, c2 := s.Cfg.W, s.Cfg.C1, s.Cfg.C2

	// Основной цикл
	for iter := 0; iter < iters; iter++ {
		// Для поддержки отмены через context
		if err := ctx.Err(); err != nil {
			res := best.Result(evals, iter, map[string]any{"stopped": "context"})
			res.Duration = time.Since(start)
			return res, err
		}

		for i := 0; i < size; i++ {
			pos := swarm.Vectors[i]
			pb := pBest.Vectors[i]

			// Обновление скорости и позиции частицы
			for d := 0; d < n; d++ {
				r1 := s.Rng.Float64()
				r2 := s.Rng.Float64()

				v := w*vel[i][d] +
					c1*r1*(pb[d]-pos[d]) +
					c2*r2*(gBestPos[d]-pos[d])

				// Ограничение скорости
				if v > vMax[d] {
					v = vMax[d]
				} else if v < -vMax[d] {
					v = -vMax[d]
				}
				vel[i][d] = v

				// Обновление позиции; на границе скорость обнуляется
				x := pos[d] + v
				if x < p.Lower[d] || x > p.Upper[d] {
					x = p.Clamp(d, x)
					vel[i][d] = 0
				}
				pos[d] = x
			}
		}

		// Оценка новых положений частиц
		if err := eval.Evaluate(ctx, swarm); err != nil {
			if ctx.Err() == nil {
				return opt.Result{}, err
			}
			res := best.Result(evals, iter, map[string]any{"stopped": "context"})
			res.Duration = time.Since(start)
			return res, err
		}
		evals += size

		for i := 0; i < size; i++ {
			// Обновление личного лучшего решения
			if swarm.Costs[i] < pBest.Costs[i] {
				copy(pBest.Vectors[i], swarm.Vectors[i])
				pBest.Tours[i] = swarm.Tours[i]
				pBest.Costs[i] = swarm.Costs[i]
			}
			// Обновление глобального лучшего решения
			if best.Offer(swarm.Tours[i], swarm.Costs[i]) {
				copy(gBestPos, swarm.Vectors[i])
			}
		}
		best.EndIteration()
	}

	res := best.Result(evals, iters, map[string]any{
		"particles": size,
		"w":         w,
		"c1":        c1,
		"c2":        c2,
		"vmax":      s.Cfg.VMax,
		"repair":    string(p.Policy),
	})
	res.Duration = time.Since(start)
	return res, nil
}
