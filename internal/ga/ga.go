package ga

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"tspRepair/internal/opt"
)

// Solver — реализация вещественного генетического алгоритма для TSP.
type Solver struct {
	Cfg Config
	Rng *rand.Rand
}

// New возвращает новый GA-солвер с валидацией конфигурации, с использованием инициализированного генератора случайных чисел.
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

	// Проверка корректности входных данных и конфигурации
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
	popSize := s.Cfg.Population

	eval, err := opt.NewEvaluator(p, popSize, s.Rng, s.Cfg.Workers)
	if err != nil {
		return opt.Result{}, err
	}

	// Две популяции: текущая (A) и следующая (B)
	popA := opt.NewPopulation(popSize, dims)
	popB := opt.NewPopulation(popSize, dims)

	// Инициализация начальной популяции
	for i := 0; i < popSize; i++ {
		p.RandomVector(popA.Vectors[i], s.Rng)
	}
	if err := eval.Evaluate(ctx, popA); err != nil {
		return opt.Result{}, err
	}
	evaluations := popSize

	best := opt.NewTracker()
	best.OfferPopulation(popA)

	// Временный буфер для второго потомка,
	// если в популяции остаётся нечётное число мест
	scratchChild := make([]float64, dims)

	// Индексы для сортировки популяции по приспособленности
	idxs := make([]int, popSize)
	for i := range idxs {
		idxs[i] = i
	}

	for gen := 0; gen < s.Cfg.Generations; gen++ {
		// Для поддержки отмены через context
		if err := ctx.Err(); err != nil {
			res := best.Result(evaluations, gen, map[string]any{"stopped": "context"})
			res.Duration = time.Since(start)
			return res, err
		}

		// Сортировка индексов по возрастанию длины маршрута
		sort.Slice(idxs, func(i, j int) bool {
			return popA.Costs[idxs[i]] < popA.Costs[idxs[j]]
		})

		write := 0

		// Элитизм (переносим лучших особей без изменений)
		for e := 0; e < s.Cfg.Elite; e++ {
			src := idxs[e]
			copy(popB.Vectors[write], popA.Vectors[src])
			write++
		}

		// Генерация остальных особей нового поколения
		for write < popSize {
			// Турнирный отбор
			p1 := tournamentSelect(popA.Costs, s.Cfg.TournamentSize, s.Rng)
			p2 := tournamentSelect(popA.Costs, s.Cfg.TournamentSize, s.Rng)
			for try := 0; p2 == p1 && try < 8; try++ {
				p2 = tournamentSelect(popA.Costs, s.Cfg.TournamentSize, s.Rng)
			}
			if p2 == p1 {
				// Турнир упорно выбирает одну особь, берём любую другую
				p2 = (p1 + 1 + s.Rng.Intn(popSize-1)) % popSize
			}

			child1 := popB.Vectors[write]
			hasSecond := write+1 < popSize
			child2 := scratchChild
			if hasSecond {
				child2 = popB.Vectors[write+1]
			}

			// Кроссовер
			if s.Rng.Float64() < s.Cfg.CrossoverRate {
				switch s.Cfg.Crossover {
				case CrossoverUniform:
					crossoverUniform(popA.Vectors[p1], popA.Vectors[p2], child1, child2, s.Rng)
				default:
					crossoverMultiPoints(popA.Vectors[p1], popA.Vectors[p2], child1, child2, s.Rng)
				}
			} else {
				copy(child1, popA.Vectors[p1])
				copy(child2, popA.Vectors[p2])
			}

			// Мутация
			mutateReset(child1, s.Cfg.MutationRate, p, s.Rng)
			write++
			if hasSecond {
				mutateReset(child2, s.Cfg.MutationRate, p, s.Rng)
				write++
			}
		}

		// Оценка нового поколения (элита пересчитывается: unstable может дать другой маршрут)
		if err := eval.Evaluate(ctx, popB); err != nil {
			if ctx.Err() == nil {
				return opt.Result{}, err
			}
			res := best.Result(evaluations, gen, map[string]any{"stopped": "context"})
			res.Duration = time.Since(start)
			return res, err
		}
		evaluations += popSize

		best.OfferPopulation(popB)
		best.EndIteration()

		// Смена поколений
		popA, popB = popB, popA
	}

	res := best.Result(evaluations, s.Cfg.Generations, map[string]any{
		"population":  s.Cfg.Population,
		"generations": s.Cfg.Generations,
		"elite":       s.Cfg.Elite,
		"crossover":   string(s.Cfg.Crossover),
		"repair":      string(p.Policy),
	})
	res.Duration = time.Since(start)
	return res, nil
}
