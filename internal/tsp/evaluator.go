package tsp

import "fmt"

// Evaluator считает длину замкнутого маршрута. Не хранит изменяемого
// состояния и может использоваться из нескольких горутин.
type Evaluator struct {
	inst *Instance
}

func NewEvaluator(inst *Instance) (*Evaluator, error) {
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return &Evaluator{inst: inst}, nil
}

// TourLength возвращает сумму расстояний между соседними городами
// маршрута, включая возврат из последнего города в первый.
func (e *Evaluator) TourLength(perm []int) (float64, error) {
	if e == nil || e.inst == nil {
		return 0, fmt.Errorf("nil evaluator")
	}
	if err := ValidatePermutation(perm, e.inst.Cities); err != nil {
		return 0, err
	}

	n := len(perm)
	total := 0.0
	for i := 0; i < n; i++ {
		next := perm[(i+1)%n]
		total += e.inst.Distance(perm[i], next)
	}
	return total, nil
}

func (e *Evaluator) MustTourLength(perm []int) float64 {
	d, err := e.TourLength(perm)
	if err != nil {
		panic(err)
	}
	return d
}
