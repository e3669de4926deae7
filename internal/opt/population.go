package opt

import (
	"context"
	"fmt"
	"math"
	"math/rand"

	"github.com/sourcegraph/conc/pool"
)

// Population хранит векторы особей, восстановленные маршруты и их длины.
type Population struct {
	Vectors [][]float64
	Tours   [][]int
	Costs   []float64
}

func NewPopulation(size, dims int) *Population {
	backing := make([]float64, size*dims)
	vecs := make([][]float64, size)
	for i := 0; i < size; i++ {
		vecs[i] = backing[i*dims : (i+1)*dims]
	}
	costs := make([]float64, size)
	for i := range costs {
		costs[i] = math.Inf(1)
	}
	return &Population{
		Vectors: vecs,
		Tours:   make([][]int, size),
		Costs:   costs,
	}
}

func (pop *Population) Size() int { return len(pop.Vectors) }

// Best возвращает индекс особи с минимальной длиной маршрута.
func (pop *Population) Best() int {
	best := 0
	for i := 1; i < len(pop.Costs); i++ {
		if pop.Costs[i] < pop.Costs[best] {
			best = i
		}
	}
	return best
}

// Evaluator восстанавливает и оценивает всю популяцию. Особь i всегда
// использует свой генератор, поэтому результат не зависит от числа воркеров.
type Evaluator struct {
	prob    *Problem
	rngs    []*rand.Rand
	workers int
}

func NewEvaluator(p *Problem, size int, base *rand.Rand, workers int) (*Evaluator, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if base == nil {
		return nil, fmt.Errorf("генератор случайных чисел не инициализирован (nil)")
	}
	rngs := make([]*rand.Rand, size)
	for i := range rngs {
		rngs[i] = DeriveRNG(base, uint64(i))
	}
	return &Evaluator{prob: p, rngs: rngs, workers: workers}, nil
}

// Evaluate заполняет Tours и Costs для всех особей pop.
func (e *Evaluator) Evaluate(ctx context.Context, pop *Population) error {
	if pop.Size() > len(e.rngs) {
		return fmt.Errorf("популяция больше оценщика: %d > %d", pop.Size(), len(e.rngs))
	}
	if e.workers <= 1 {
		for i := range pop.Vectors {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := e.evaluateOne(pop, i); err != nil {
				return err
			}
		}
		return nil
	}

	p := pool.New().
		WithContext(ctx).
		WithCancelOnError().
		WithMaxGoroutines(e.workers)
	for i := range pop.Vectors {
		i := i
		p.Go(func(ctx context.Context) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return e.evaluateOne(pop, i)
		})
	}
	return p.Wait()
}

// Каждая горутина пишет только в свой слот.
func (e *Evaluator) evaluateOne(pop *Population, i int) error {
	tour, cost, err := e.prob.Cost(pop.Vectors[i], e.rngs[i])
	if err != nil {
		return fmt.Errorf("особь %d: %w", i, err)
	}
	pop.Tours[i] = tour
	pop.Costs[i] = cost
	return nil
}

// Tracker запоминает глобально лучший маршрут и историю по итерациям.
type Tracker struct {
	Tour     []int
	Distance float64
	History  []float64
}

func NewTracker() *Tracker {
	return &Tracker{Distance: math.Inf(1)}
}

// Offer принимает маршрут, если он лучше текущего. Возвращает true при улучшении.
func (t *Tracker) Offer(tour []int, cost float64) bool {
	if cost >= t.Distance {
		return false
	}
	t.Distance = cost
	t.Tour = append(t.Tour[:0], tour...)
	return true
}

// OfferPopulation предлагает лучшую особь популяции.
func (t *Tracker) OfferPopulation(pop *Population) bool {
	b := pop.Best()
	return t.Offer(pop.Tours[b], pop.Costs[b])
}

// EndIteration добавляет текущее лучшее значение в историю.
func (t *Tracker) EndIteration() {
	t.History = append(t.History, t.Distance)
}

// Result собирает итог; Duration и Meta заполняет вызывающий.
func (t *Tracker) Result(evals, iters int, meta map[string]any) Result {
	tour := make([]int, len(t.Tour))
	copy(tour, t.Tour)
	hist := make([]float64, len(t.History))
	copy(hist, t.History)
	return Result{
		Tour:        tour,
		Distance:    t.Distance,
		Evaluations: evals,
		Iterations:  iters,
		History:     hist,
		Meta:        meta,
	}
}
