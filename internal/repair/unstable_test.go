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

func TestUnstable_Permutation(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 300; trial++ {
		n := 1 + rng.Intn(40)
		v := randomVector(rng, n, -2, float64(n)+2)
		lb, ub := UniformBounds(n, 0, float64(n)-0.01)

		got, err := Unstable(v, lb, ub, rng)
		require.NoError(t, err)
		isPermutation(t, got, 0)
	}
}

func TestUnstable_DepotDomain(t *testing.T) {
	// 13 городов, депо 0 исключено: домен {1..12}
	rng := rand.New(rand.NewSource(3))
	lb, ub := UniformBounds(12, 1, 12.99)
	for trial := 0; trial < 50; trial++ {
		v := randomVector(rng, 12, 0, 14)
		got, err := Unstable(v, lb, ub, rng)
		require.NoError(t, err)
		isPermutation(t, got, 1)
	}
}

func TestUnstable_IdempotentOnPermutation(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	v := []float64{3, 0, 2, 1, 4}
	lb, ub := UniformBounds(len(v), 0, 4.99)
	for i := 0; i < 20; i++ {
		got, err := Unstable(v, lb, ub, rng)
		require.NoError(t, err)
		assert.Equal(t, []int{3, 0, 2, 1, 4}, got)
	}
}

func TestUnstable_KeepsDistinctProposals(t *testing.T) {
	// Значения 0 и 3 предложены по одному разу и должны остаться на месте
	rng := rand.New(rand.NewSource(11))
	v := []float64{0, 2, 2, 3, 2}
	lb, ub := UniformBounds(len(v), 0, 4.99)
	for i := 0; i < 50; i++ {
		got, err := Unstable(v, lb, ub, rng)
		require.NoError(t, err)
		isPermutation(t, got, 0)
		assert.Equal(t, 0, got[0])
		assert.Equal(t, 3, got[3])

		// Ровно одна позиция из группы {1,2,4} сохраняет 2,
		// остальные получают индексы, которые никто не предложил
		kept := 0
		for _, pos := range []int{1, 2, 4} {
			if got[pos] == 2 {
				kept++
			} else {
				assert.Contains(t, []int{1, 4}, got[pos])
			}
		}
		assert.Equal(t, 1, kept)
	}
}

func TestUnstable_KeeperIsUniform(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	v := []float64{1, 1, 1}
	lb, ub := UniformBounds(3, 0, 2.99)

	const trials = 3000
	counts := make([]int, 3)
	for i := 0; i < trials; i++ {
		got, err := Unstable(v, lb, ub, rng)
		require.NoError(t, err)
		counts[slices.Index(got, 1)]++
	}
	for pos, c := range counts {
		assert.InDeltaf(t, trials/3, c, trials/10, "позиция %d сохраняла 1 слишком редко или часто", pos)
	}
}

func TestUnstable_VariesAcrossCalls(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	v := []float64{2, 2, 2, 2, 0, 0}
	lb, ub := UniformBounds(len(v), 0, 5.99)

	first, err := Unstable(v, lb, ub, rng)
	require.NoError(t, err)
	differs := false
	for i := 0; i < 100 && !differs; i++ {
		got, err := Unstable(v, lb, ub, rng)
		require.NoError(t, err)
		differs = !slices.Equal(first, got)
	}
	assert.True(t, differs, "случайное восстановление ни разу не дало другой перестановки")
}

func TestUnstable_SameSeedSameResult(t *testing.T) {
	v := []float64{4, 4, 0.5, 9, -3, 4}
	lb, ub := UniformBounds(len(v), 0, 5.99)

	a, err := Unstable(v, lb, ub, rand.New(rand.NewSource(123)))
	require.NoError(t, err)
	b, err := Unstable(v, lb, ub, rand.New(rand.NewSource(123)))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestUnstable_ClipsToBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(8))
	// -5 -> 0, 100 -> 2, NaN -> 0 (дубликат с позицией 0)
	v := []float64{-5, 100, math.NaN()}
	lb, ub := UniformBounds(3, 0, 2.99)
	for i := 0; i < 20; i++ {
		got, err := Unstable(v, lb, ub, rng)
		require.NoError(t, err)
		isPermutation(t, got, 0)
		assert.Equal(t, 2, got[1])
	}
}

func TestUnstable_Preconditions(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	// Домен {0..2} при векторе длины 4
	lb, ub := UniformBounds(4, 0, 2.99)
	_, err := Unstable([]float64{0, 1, 2, 3}, lb, ub, rng)
	assert.ErrorIs(t, err, ErrDomainMismatch)

	lb, ub = UniformBounds(3, 0, 2.99)
	_, err = Unstable([]float64{0, 1, 2}, lb, ub, nil)
	assert.ErrorIs(t, err, ErrNilRand)

	_, err = Unstable([]float64{0, 1, 2}, lb[:2], ub, rng)
	assert.ErrorIs(t, err, ErrBoundsMismatch)
}

func TestUnstable_ConcurrentCalls(t *testing.T) {
	const workers = 8
	lb, ub := UniformBounds(30, 0, 29.99)

	var wg sync.WaitGroup
	errs := make([]error, workers)
	results := make([][]int, workers)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(int64(w)))
			for i := 0; i < 100; i++ {
				v := randomVector(rng, 30, 0, 30)
				results[w], errs[w] = Unstable(v, lb, ub, rng)
				if errs[w] != nil {
					return
				}
			}
		}(w)
	}
	wg.Wait()

	for w := 0; w < workers; w++ {
		require.NoError(t, errs[w])
		isPermutation(t, results[w], 0)
	}
}
