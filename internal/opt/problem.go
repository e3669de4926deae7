package opt

import (
	"fmt"
	"math/rand"

	"tspRepair/internal/repair"
	"tspRepair/internal/tsp"
)

// upperSlack — отступ верхней границы от N: значения [k, k+1) кодируют город k.
const upperSlack = 0.01

// Problem связывает экземпляр TSP, политику восстановления и границы
// непрерывного пространства поиска.
type Problem struct {
	Inst   *tsp.Instance
	Policy repair.Policy
	// FixedDepot — город 0 всегда первый и не входит в вектор решения.
	FixedDepot bool

	Lower []float64
	Upper []float64

	eval *tsp.Evaluator
}

func NewProblem(inst *tsp.Instance, policy repair.Policy, fixedDepot bool) (*Problem, error) {
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	p := &Problem{Inst: inst, Policy: policy, FixedDepot: fixedDepot}

	n := inst.Cities
	lower := 0.0
	if fixedDepot {
		lower = 1
	}
	p.Lower, p.Upper = repair.UniformBounds(p.Dims(), lower, float64(n)-upperSlack)

	if err := p.Validate(); err != nil {
		return nil, err
	}
	eval, err := tsp.NewEvaluator(inst)
	if err != nil {
		return nil, err
	}
	p.eval = eval
	return p, nil
}

// Dims — размерность вектора решения.
func (p *Problem) Dims() int {
	if p.FixedDepot {
		return p.Inst.Cities - 1
	}
	return p.Inst.Cities
}

// Validate проверяет конфигурацию целиком, включая предусловие домена
// для unstable, до первого восстановления.
func (p *Problem) Validate() error {
	if p == nil {
		return fmt.Errorf("problem is nil")
	}
	if err := p.Inst.Validate(); err != nil {
		return err
	}
	if p.FixedDepot && p.Inst.Cities < 2 {
		return fmt.Errorf("закреплённое депо требует хотя бы 2 города (получено %d)", p.Inst.Cities)
	}
	if err := p.Policy.Validate(); err != nil {
		return err
	}
	return p.Policy.CheckDomain(p.Dims(), p.Lower, p.Upper)
}

// Decode восстанавливает перестановку из вектора и возвращает полный маршрут.
func (p *Problem) Decode(vec []float64, rng *rand.Rand) ([]int, error) {
	perm, err := p.Policy.Repair(vec, p.Lower, p.Upper, rng)
	if err != nil {
		return nil, err
	}
	if !p.FixedDepot {
		return perm, nil
	}
	tour := make([]int, 0, len(perm)+1)
	tour = append(tour, 0)
	return append(tour, perm...), nil
}

// Cost возвращает маршрут и длину замкнутого маршрута для вектора.
func (p *Problem) Cost(vec []float64, rng *rand.Rand) ([]int, float64, error) {
	tour, err := p.Decode(vec, rng)
	if err != nil {
		return nil, 0, err
	}
	eval := p.eval
	if eval == nil {
		if eval, err = tsp.NewEvaluator(p.Inst); err != nil {
			return nil, 0, err
		}
	}
	d, err := eval.TourLength(tour)
	if err != nil {
		return nil, 0, err
	}
	return tour, d, nil
}

// RandomVector заполняет dst равномерно в границах задачи.
func (p *Problem) RandomVector(dst []float64, rng *rand.Rand) {
	for d := range dst {
		dst[d] = p.Lower[d] + rng.Float64()*(p.Upper[d]-p.Lower[d])
	}
}

// Clamp возвращает x в границы измерения d.
func (p *Problem) Clamp(d int, x float64) float64 {
	if x < p.Lower[d] {
		return p.Lower[d]
	}
	if x > p.Upper[d] {
		return p.Upper[d]
	}
	return x
}
