package ga

import (
	"math/rand"

	"tspRepair/internal/opt"
)

// tournamentSelect реализует турнирный отбор.
// возвращается индекс особи с наилучшим значением fitness (минимальная длина маршрута).
func tournamentSelect(scores []float64, tournamentSize int, rng *rand.Rand) int {
	best := rng.Intn(len(scores))
	bestScore := scores[best]
	for i := 1; i < tournamentSize; i++ {
		cand := rng.Intn(len(scores))
		if scores[cand] < bestScore {
			best = cand
			bestScore = scores[cand]
		}
	}
	return best
}

// crossoverUniform — каждый ген потомки берут от случайного родителя.
func crossoverUniform(p1, p2, c1, c2 []float64, rng *rand.Rand) {
	for d := range p1 {
		if rng.Float64() < 0.5 {
			c1[d], c2[d] = p1[d], p2[d]
		} else {
			c1[d], c2[d] = p2[d], p1[d]
		}
	}
}

// crossoverMultiPoints — двухточечный кроссовер: отрезок [a, b) меняется местами.
func crossoverMultiPoints(p1, p2, c1, c2 []float64, rng *rand.Rand) {
	n := len(p1)

	// Выбор случайного отрезка [a, b)
	a := rng.Intn(n)
	b := rng.Intn(n)
	if a > b {
		a, b = b, a
	}
	if a == b {
		// Что бы длина сегмента не была 0
		b = a + 1
	}

	copy(c1, p1)
	copy(c2, p2)
	for d := a; d < b; d++ {
		c1[d], c2[d] = p2[d], p1[d]
	}
}

// mutateReset заменяет каждый ген с вероятностью rate случайным значением в границах.
func mutateReset(x []float64, rate float64, p *opt.Problem, rng *rand.Rand) {
	for d := range x {
		if rng.Float64() < rate {
			x[d] = p.Lower[d] + rng.Float64()*(p.Upper[d]-p.Lower[d])
		}
	}
}
