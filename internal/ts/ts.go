package ts

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"tspRepair/internal/opt"
)

// Solver — табу-поиск над непрерывным вектором позиций.
// Ходы меняют координаты вектора, маршрут получается восстановлением.
type Solver struct {
	Cfg Config
	Rng *rand.Rand
}

// New возвращает новый TS-солвер с валидацией конфигурации.
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

type move struct{ from, to int }

// Solve — основной цикл алгоритма
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

	curr := make([]float64, n)
	p.RandomVector(curr, s.Rng)

	currTour, currCost, err := p.Cost(curr, opt.DeriveRNG(s.Rng, 0))
	if err != nil {
		return opt.Result{}, err
	}
	evals := 1

	best := opt.NewTracker()
	best.Offer(currTour, currCost)

	// Одной координате ходить некуда
	if n < 2 {
		best.EndIteration()
		res := best.Result(evals, 0, s.meta(p))
		res.Duration = time.Since(start)
		return res, nil
	}

	k := s.Cfg.NeighborsPerIter
	neigh := opt.NewPopulation(k, n)
	moves := make([]move, k)
	eval, err := opt.NewEvaluator(p, k, opt.DeriveRNG(s.Rng, 1), s.Cfg.Workers)
	if err != nil {
		return opt.Result{}, err
	}

	tabu := newTabuList(max(32, (s.Cfg.TabuTenure+s.Cfg.TabuTenureRand)*4))

	iter := 0
	for ; iter < maxIter; iter++ {
		// Для поддержки отмены через context
		if err := ctx.Err(); err != nil {
			return s.stopped(best, evals, iter, start), err
		}

		for j := 0; j < k; j++ {
			from := s.Rng.Intn(n)
			to := s.Rng.Intn(n - 1)
			if to >= from {
				to++
			}
			moves[j] = move{from, to}

			cand := neigh.Vectors[j]
			copy(cand, curr)
			if s.Cfg.Neighborhood == NeighborhoodInsert {
				applyInsert(cand, from, to)
			} else {
				applySwap(cand, from, to)
			}
		}

		if err := eval.Evaluate(ctx, neigh); err != nil {
			if ctx.Err() != nil {
				return s.stopped(best, evals, iter, start), ctx.Err()
			}
			return opt.Result{}, err
		}
		evals += k

		// Лучший допустимый ход и запасной (без учёта табу)
		chosen, fallback := -1, -1
		chosenCost, fallbackCost := math.Inf(1), math.Inf(1)
		for j := 0; j < k; j++ {
			cost := neigh.Costs[j]
			if cost < fallbackCost {
				fallback, fallbackCost = j, cost
			}
			// Критерий аспирации
			if tabu.IsTabu(moveKey(moves[j].from, moves[j].to), iter) && !(cost < best.Distance) {
				continue
			}
			if cost < chosenCost {
				chosen, chosenCost = j, cost
			}
		}
		if chosen < 0 {
			chosen, chosenCost = fallback, fallbackCost
		}

		copy(curr, neigh.Vectors[chosen])
		currCost = chosenCost
		best.Offer(neigh.Tours[chosen], currCost)
		best.EndIteration()

		// Обратный ход запрещается на срок табу
		tenure := s.Cfg.TabuTenure
		if s.Cfg.TabuTenureRand > 0 {
			tenure += s.Rng.Intn(s.Cfg.TabuTenureRand + 1)
		}
		m := moves[chosen]
		tabu.Add(moveKey(m.to, m.from), iter+tenure)
	}

	res := best.Result(evals, iter, s.meta(p))
	res.Duration = time.Since(start)
	return res, nil
}

func (s *Solver) meta(p *opt.Problem) map[string]any {
	return map[string]any{
		"tabu_tenure":        s.Cfg.TabuTenure,
		"tabu_tenure_rand":   s.Cfg.TabuTenureRand,
		"neighbors_per_iter": s.Cfg.NeighborsPerIter,
		"neighborhood":       string(s.Cfg.Neighborhood),
		"repair":             string(p.Policy),
	}
}

func (s *Solver) stopped(best *opt.Tracker, evals, iter int, start time.Time) opt.Result {
	res := best.Result(evals, iter, map[string]any{"stopped": "context"})
	res.Duration = time.Since(start)
	return res
}

// tabuList — кольцевой буфер фиксированного размера
// с map для быстрой проверки табуированности.
type tabuList struct {
	m   map[uint64]int // ключ → итерация истечения табу
	key []uint64
	exp []int
	i   int
}

func newTabuList(capacity int) *tabuList {
	if capacity < 8 {
		capacity = 8
	}
	return &tabuList{
		m:   make(map[uint64]int, capacity*2),
		key: make([]uint64, capacity),
		exp: make([]int, capacity),
	}
}

// IsTabu проверяет, запрещён ли ход на итерации iter.
func (t *tabuList) IsTabu(k uint64, iter int) bool {
	exp, ok := t.m[k]
	return ok && exp > iter
}

// Add добавляет ход с итерацией истечения, вытесняя самый старый.
func (t *tabuList) Add(k uint64, expiry int) {
	oldK := t.key[t.i]
	if curExp, ok := t.m[oldK]; ok && curExp == t.exp[t.i] {
		delete(t.m, oldK)
	}

	t.key[t.i] = k
	t.exp[t.i] = expiry
	t.m[k] = expiry

	t.i = (t.i + 1) % len(t.key)
}

// applySwap меняет местами координаты i и j.
func applySwap(x []float64, i, j int) {
	x[i], x[j] = x[j], x[i]
}

// applyInsert переносит координату из позиции from в позицию to со сдвигом.
func applyInsert(x []float64, from, to int) {
	if from == to {
		return
	}
	val := x[from]
	if from < to {
		copy(x[from:to], x[from+1:to+1])
	} else {
		copy(x[to+1:from+1], x[to:from])
	}
	x[to] = val
}

// moveKey кодирует пару позиций; +1 отличает ход (0,0) от пустого слота кольца.
func moveKey(from, to int) uint64 {
	return (uint64(uint32(from))<<32 | uint64(uint32(to))) + 1
}
