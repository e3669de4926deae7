package sa

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"tspRepair/internal/opt"
)

// Solver - структура реализации алгоритма имитации отжига
type Solver struct {
	Cfg Config
	Rng *rand.Rand
}

// New возвращает новый SA-солвер с валидацией конфигурации, с использованием инициализированного генератора случайных чисел.
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

	n := p.Dims()

	maxIter := s.Cfg.Iterations
	if maxIter <= 0 {
		maxIter = s.Cfg.IterationsPerCity * p.Inst.Cities
	}

	// Отдельный поток для восстановления, чтобы не сбивать поток ходов
	repairRng := opt.DeriveRNG(s.Rng, 0)

	// Текущее и кандидатное решения
	curr := make([]float64, n)
	cand := make([]float64, n)

	// Инициализация текущего решения
	p.RandomVector(curr, s.Rng)

	currTour, currCost, err := p.Cost(curr, repairRng)
	if err != nil {
		return opt.Result{}, err
	}
	best := opt.NewTracker()
	best.Offer(currTour, currCost)

	evals := 1
	// Масштаб температуры — длина начального маршрута
	scale := currCost
	if scale <= 0 {
		scale = 1
	}
	T := s.Cfg.InitialTemp

	iter := 0
	for ; iter < maxIter && T > s.Cfg.FinalTemp; iter++ {
		// Для поддержки отмены через context
		if err := ctx.Err(); err != nil {
			res := best.Result(evals, iter, map[string]any{
				"stopped": "context",
				"T":       T,
			})
			res.Duration = time.Since(start)
			return res, err
		}

		copy(cand, curr)
		switch s.Cfg.Neighborhood {
		case NeighborhoodInsert:
			// Окрестность на основе вставки элемента в другую позицию
			neighborInsert(cand, s.Rng)
		case NeighborhoodReset:
			// Окрестность на основе замены одной координаты
			neighborReset(cand, p, s.Rng)
		default:
			// Окрестность на основе обмена двух элементов
			neighborSwap(cand, s.Rng)
		}

		candTour, candCost, err := p.Cost(cand, repairRng)
		if err != nil {
			return opt.Result{}, err
		}
		evals++

		delta := (candCost - currCost) / scale
		accept := false
		if delta <= 0 {
			// Улучшающее решение принимаем всегда
			accept = true
		} else {
			// Критерий Метрополиса:
			// допускает принятие ухудшающих решений
			if s.Rng.Float64() < math.Exp(-delta/T) {
				accept = true
			}
		}

		if accept {
			// Обмен ролей текущего и кандидатного решений
			curr, cand = cand, curr
			currCost = candCost

			// Обновление глобально лучшего решения
			best.Offer(candTour, candCost)
		}
		best.EndIteration()

		// Охлаждение температуры
		T *= s.Cfg.Alpha
	}

	res := best.Result(evals, iter, map[string]any{
		"initial_temp": s.Cfg.InitialTemp,
		"final_temp":   s.Cfg.FinalTemp,
		"alpha":        s.Cfg.Alpha,
		"neighborhood": string(s.Cfg.Neighborhood),
		"repair":       string(p.Policy),
	})
	res.Duration = time.Since(start)
	return res, nil
}

// Формирует соседнее решение путём обмена двух случайных координат.
func neighborSwap(p []float64, rng *rand.Rand) {
	if len(p) < 2 {
		return
	}
	i := rng.Intn(len(p))
	j := rng.Intn(len(p) - 1)
	if j >= i {
		j++
	}
	p[i], p[j] = p[j], p[i]
}

// Формирует соседнее решение путём извлечения координаты из позиции i и вставки её в позицию j.
func neighborInsert(p []float64, rng *rand.Rand) {
	n := len(p)
	if n < 2 {
		return
	}
	i := rng.Intn(n)
	j := rng.Intn(n - 1)
	if j >= i {
		j++
	}

	// Перемещаем элемент из позиции i в позицию j
	val := p[i]
	if i < j {
		// Сдвиг элементов влево
		copy(p[i:j], p[i+1:j+1])
		p[j] = val
	} else {
		// Сдвиг элементов вправо
		copy(p[j+1:i+1], p[j:i])
		p[j] = val
	}
}

// Формирует соседнее решение заменой одной координаты случайным значением в границах.
func neighborReset(x []float64, p *opt.Problem, rng *rand.Rand) {
	if len(x) == 0 {
		return
	}
	d := rng.Intn(len(x))
	x[d] = p.Lower[d] + rng.Float64()*(p.Upper[d]-p.Lower[d])
}
