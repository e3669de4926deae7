package repair

import (
	"math"
	"math/rand"
	"slices"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isPermutation проверяет, что perm — перестановка {lo .. lo+len(perm)-1}.
func isPermutation(t *testing.T, perm []int, lo int) {
	t.Helper()
	sorted := slices.Clone(perm)
	slices.Sort(sorted)
	for i, v := range sorted {
		require.Equalf(t, lo+i, v, "не перестановка: %v", perm)
	}
}

func randomVector(rng *rand.Rand, n int, lo, hi float64) []float64 {
	v := make([]float64, n)
	for i := range v {
		v[i] = lo + rng.Float64()*(hi-lo)
	}
	return v
}

func TestStable_Scenarios(t *testing.T) {
	tests := []struct {
		name  string
		v     []float64
		lower float64
		upper float64
		want  []int
	}{
		{"all above upper", []float64{5, 5, 5}, 0, 2.99, []int{2, 0, 1}},
		{"already valid", []float64{0, 1, 2}, 0, 2, []int{0, 1, 2}},
		{"two duplicate pairs", []float64{0, 0, 3, 3}, 0, 3.99, []int{0, 1, 3, 2}},
		{"float permutation", []float64{2.0, 0.0, 1.0}, 0, 2.99, []int{2, 0, 1}},
		{"all equal", []float64{1.5, 1.5, 1.5, 1.5}, 0, 3.99, []int{1, 0, 2, 3}},
		{"all below lower", []float64{-7, -1, -0.5}, 0, 2.99, []int{0, 1, 2}},
		{"fractions truncated", []float64{2.9, 0.1, 1.999}, 0, 2.99, []int{2, 0, 1}},
		{"depot offset", []float64{3.5, 1.2, 1.7}, 1, 3.99, []int{3, 1, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lb, ub := UniformBounds(len(tt.v), tt.lower, tt.upper)
			got, err := Stable(tt.v, lb, ub)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStable_PermutationAndDeterminism(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for trial := 0; trial < 200; trial++ {
		n := 1 + rng.Intn(40)
		// Диапазон шире границ, чтобы задеть обрезку
		v := randomVector(rng, n, -3, float64(n)+3)
		lb, ub := UniformBounds(n, 0, float64(n)-0.01)

		a, err := Stable(v, lb, ub)
		require.NoError(t, err)
		isPermutation(t, a, 0)

		b, err := Stable(v, lb, ub)
		require.NoError(t, err)
		assert.Equal(t, a, b)
	}
}

func TestStable_NonFiniteInput(t *testing.T) {
	v := []float64{math.NaN(), math.Inf(1), math.Inf(-1), 1}
	lb, ub := UniformBounds(len(v), 0, 3.99)

	got, err := Stable(v, lb, ub)
	require.NoError(t, err)
	// NaN -> 0, +Inf -> 3, -Inf -> 0 (занят) -> 1, 1 (занят) -> 2
	assert.Equal(t, []int{0, 3, 1, 2}, got)
}

func TestStable_DoesNotMutateInput(t *testing.T) {
	v := []float64{9, -1, 9}
	orig := slices.Clone(v)
	lb, ub := UniformBounds(3, 0, 2.99)

	_, err := Stable(v, lb, ub)
	require.NoError(t, err)
	assert.Equal(t, orig, v)
}

func TestStable_Empty(t *testing.T) {
	got, err := Stable(nil, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestStable_BadBounds(t *testing.T) {
	_, err := Stable([]float64{1, 2}, []float64{0}, []float64{2})
	assert.ErrorIs(t, err, ErrBoundsMismatch)

	_, err = Stable([]float64{1, 2}, []float64{0, 3}, []float64{2, 2})
	assert.ErrorIs(t, err, ErrInvalidBounds)

	_, err = Stable([]float64{1, 2}, []float64{-1, 0}, []float64{2, 2})
	assert.ErrorIs(t, err, ErrInvalidBounds)
}

func TestStable_ConcurrentCalls(t *testing.T) {
	const (
		workers = 8
		n       = 30
	)
	lb, ub := UniformBounds(n, 0, n-0.01)

	inputs := make([][]float64, 50)
	rng := rand.New(rand.NewSource(11))
	for i := range inputs {
		inputs[i] = randomVector(rng, n, -5, n+5)
	}
	want := make([][]int, len(inputs))
	for i, v := range inputs {
		got, err := Stable(v, lb, ub)
		require.NoError(t, err)
		want[i] = got
	}

	var wg sync.WaitGroup
	results := make([][][]int, workers)
	errs := make([]error, workers)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			results[w] = make([][]int, len(inputs))
			for i, v := range inputs {
				results[w][i], errs[w] = Stable(v, lb, ub)
				if errs[w] != nil {
					return
				}
			}
		}(w)
	}
	wg.Wait()

	for w := 0; w < workers; w++ {
		require.NoError(t, errs[w])
		assert.Equal(t, want, results[w])
	}
}
