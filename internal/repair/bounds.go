package repair

import (
	"fmt"
	"math"
)

// UniformBounds возвращает одинаковые границы lower/upper для n измерений.
func UniformBounds(n int, lower, upper float64) ([]float64, []float64) {
	lb := make([]float64, n)
	ub := make([]float64, n)
	for i := 0; i < n; i++ {
		lb[i] = lower
		ub[i] = upper
	}
	return lb, ub
}

// CheckBounds проверяет, что границы подходят вектору длины n.
func CheckBounds(n int, lower, upper []float64) error {
	if len(lower) != n || len(upper) != n {
		return fmt.Errorf("%w: вектор %d, lower %d, upper %d", ErrBoundsMismatch, n, len(lower), len(upper))
	}
	for i := 0; i < n; i++ {
		lo, hi := lower[i], upper[i]
		if math.IsNaN(lo) || math.IsInf(lo, 0) || math.IsNaN(hi) || math.IsInf(hi, 0) {
			return fmt.Errorf("%w: измерение %d не конечно (%v, %v)", ErrInvalidBounds, i, lo, hi)
		}
		if lo < 0 {
			return fmt.Errorf("%w: lower[%d]=%v < 0", ErrInvalidBounds, i, lo)
		}
		if lo > hi {
			return fmt.Errorf("%w: lower[%d]=%v > upper[%d]=%v", ErrInvalidBounds, i, lo, i, hi)
		}
	}
	return nil
}

// Clip возвращает новый вектор, каждый элемент которого зажат в [lower[i], upper[i]].
// NaN заменяется на нижнюю границу, бесконечности насыщаются.
func Clip(v, lower, upper []float64) ([]float64, error) {
	if err := CheckBounds(len(v), lower, upper); err != nil {
		return nil, err
	}
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = clamp(x, lower[i], upper[i])
	}
	return out, nil
}

func clamp(x, lo, hi float64) float64 {
	switch {
	case math.IsNaN(x), x < lo:
		return lo
	case x > hi:
		return hi
	default:
		return x
	}
}

// propose зажимает x в границы и отбрасывает дробную часть (к нулю).
func propose(x, lo, hi float64) int {
	return int(clamp(x, lo, hi))
}

// domainStart — первый индекс домена.
func domainStart(lower []float64) int {
	return int(math.Floor(lower[0]))
}

// boundsDomain выводит домен [lo, hi) из границ первого измерения.
func boundsDomain(lower, upper []float64) (lo, hi int) {
	return domainStart(lower), int(math.Round(upper[0]))
}

// CheckDomain проверяет предусловие Unstable: домен
// {floor(lower[0]) .. round(upper[0])-1} должен содержать ровно n индексов.
func CheckDomain(n int, lower, upper []float64) error {
	if err := CheckBounds(n, lower, upper); err != nil {
		return err
	}
	if n == 0 {
		return nil
	}
	lo, hi := boundsDomain(lower, upper)
	if hi-lo != n {
		return fmt.Errorf("%w: домен [%d, %d) содержит %d индексов, длина вектора %d", ErrDomainMismatch, lo, hi, hi-lo, n)
	}
	return nil
}
