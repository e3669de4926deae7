package repair

// Stable детерминированно превращает вещественный вектор в перестановку
// домена {lo .. lo+n-1}, где lo = floor(lower[0]).
//
// Позиции просматриваются слева направо: предложенный индекс остаётся за
// первой позицией, которая его предложила, а остальные позиции получают
// наименьший ещё свободный индекс.
func Stable(v, lower, upper []float64) ([]int, error) {
	if err := CheckBounds(len(v), lower, upper); err != nil {
		return nil, err
	}
	n := len(v)
	out := make([]int, n)
	if n == 0 {
		return out, nil
	}

	lo := domainStart(lower)
	used := make([]bool, n)

	// next — наименьший свободный индекс; только растёт,
	// так как занятые индексы не освобождаются
	next := 0
	for i, x := range v {
		c := propose(x, lower[i], upper[i]) - lo
		if c < 0 || c >= n || used[c] {
			for used[next] {
				next++
			}
			c = next
		}
		used[c] = true
		out[i] = c + lo
	}
	return out, nil
}
