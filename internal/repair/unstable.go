package repair

import (
	"fmt"
	"math/rand"
)

// Unstable превращает вещественный вектор в перестановку домена
// {floor(lower[0]) .. round(upper[0])-1} со случайным разрешением конфликтов.
//
// Из каждой группы позиций, предложивших один и тот же индекс, индекс
// сохраняет одна равновероятно выбранная позиция. Остальные позиции группы,
// как и позиции с индексом вне домена, получают случайный индекс из тех,
// которые не предложил никто.
//
// Размер домена обязан совпадать с длиной вектора (см. CheckDomain).
func Unstable(v, lower, upper []float64, rng *rand.Rand) ([]int, error) {
	if rng == nil {
		return nil, ErrNilRand
	}
	if err := CheckDomain(len(v), lower, upper); err != nil {
		return nil, err
	}
	n := len(v)
	out := make([]int, n)
	if n == 0 {
		return out, nil
	}

	lo := domainStart(lower)

	// proposed[i] — относительный индекс (-1, если вне домена)
	proposed := make([]int, n)
	// seen[c] — сколько позиций уже предложили c; keeper[c] — хранитель группы
	seen := make([]int, n)
	keeper := make([]int, n)

	for i, x := range v {
		c := propose(x, lower[i], upper[i]) - lo
		if c < 0 || c >= n {
			proposed[i] = -1
			continue
		}
		proposed[i] = c
		seen[c]++
		// Выборка с резервуаром: каждая позиция группы
		// становится хранителем с вероятностью 1/размер группы
		if seen[c] == 1 || rng.Intn(seen[c]) == 0 {
			keeper[c] = i
		}
	}

	// Пул индексов, которые никто не предложил
	pool := make([]int, 0, n)
	for c := 0; c < n; c++ {
		if seen[c] == 0 {
			pool = append(pool, c)
		}
	}

	for i, c := range proposed {
		if c >= 0 && keeper[c] == i {
			out[i] = c + lo
			continue
		}
		if len(pool) == 0 {
			return nil, fmt.Errorf("%w: позиция %d", ErrDomainExhausted, i)
		}
		j := rng.Intn(len(pool))
		out[i] = pool[j] + lo
		last := len(pool) - 1
		pool[j] = pool[last]
		pool = pool[:last]
	}
	return out, nil
}
