package ts

import "fmt"

// Neighborhood определяет тип хода над координатами вектора.
type Neighborhood string

const (
	NeighborhoodInsert Neighborhood = "insert"
	NeighborhoodSwap   Neighborhood = "swap"
)

type Config struct {
	Iterations        int
	IterationsPerCity int

	TabuTenure int
	// TabuTenureRand — случайная добавка к сроку табу [0..TabuTenureRand]
	TabuTenureRand int

	NeighborsPerIter int

	Neighborhood Neighborhood

	// Workers — число горутин для оценки соседей (<=1 — последовательно)
	Workers int
}

func DefaultConfig() Config {
	return Config{
		Iterations:        0,
		IterationsPerCity: 20,

		TabuTenure:     7,
		TabuTenureRand: 3,

		NeighborsPerIter: 40,
		Neighborhood:     NeighborhoodSwap,
		Workers:          1,
	}
}

func (c Config) Validate() error {
	if c.Iterations <= 0 && c.IterationsPerCity <= 0 {
		return fmt.Errorf(
			"должно быть задано Iterations > 0 или IterationsPerCity > 0",
		)
	}
	if c.TabuTenure <= 0 {
		return fmt.Errorf(
			"TabuTenure должно быть > 0 (получено %d)",
			c.TabuTenure,
		)
	}
	if c.TabuTenureRand < 0 {
		return fmt.Errorf(
			"TabuTenureRand должно быть >= 0 (получено %d)",
			c.TabuTenureRand,
		)
	}
	if c.NeighborsPerIter <= 0 {
		return fmt.Errorf(
			"NeighborsPerIter должно быть > 0 (получено %d)",
			c.NeighborsPerIter,
		)
	}
	switch c.Neighborhood {
	case NeighborhoodInsert, NeighborhoodSwap:
		// ok
	default:
		return fmt.Errorf(
			"неизвестный тип окрестности %q",
			c.Neighborhood,
		)
	}
	if c.Workers < 0 {
		return fmt.Errorf(
			"Workers должно быть >= 0 (получено %d)",
			c.Workers,
		)
	}
	return nil
}
