package ga

import "fmt"

// Тип кроссовера
type Crossover string

const (
	CrossoverUniform     Crossover = "uniform"
	CrossoverMultiPoints Crossover = "multi_points"
)

type Config struct {
	Population     int
	Generations    int
	Elite          int
	TournamentSize int
	CrossoverRate  float64
	// MutationRate — вероятность замены каждого гена случайным значением
	MutationRate float64
	Crossover    Crossover

	Workers int
}

func (c Config) Validate() error {
	if c.Population <= 1 {
		return fmt.Errorf(
			"размер популяции должен быть > 1 (получено %d)",
			c.Population,
		)
	}
	if c.Generations <= 0 {
		return fmt.Errorf(
			"количество поколений должно быть > 0 (получено %d)",
			c.Generations,
		)
	}
	if c.Elite < 0 || c.Elite >= c.Population {
		return fmt.Errorf(
			"число элитных особей должно быть в диапазоне [0, population) (получено %d)",
			c.Elite,
		)
	}
	if c.TournamentSize <= 0 {
		return fmt.Errorf(
			"размер турнира должен быть > 0 (получено %d)",
			c.TournamentSize,
		)
	}
	if c.CrossoverRate < 0 || c.CrossoverRate > 1 {
		return fmt.Errorf(
			"вероятность кроссовера должна быть в диапазоне [0,1] (получено %f)",
			c.CrossoverRate,
		)
	}
	if c.MutationRate < 0 || c.MutationRate > 1 {
		return fmt.Errorf(
			"вероятность мутации должна быть в диапазоне [0,1] (получено %f)",
			c.MutationRate,
		)
	}
	switch c.Crossover {
	case CrossoverUniform, CrossoverMultiPoints:
		// ok
	default:
		return fmt.Errorf(
			"неизвестный тип кроссовера %q",
			c.Crossover,
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

func DefaultConfig() Config {
	return Config{
		Population:     50,
		Generations:    100,
		Elite:          2,
		TournamentSize: 3,
		CrossoverRate:  0.90,
		MutationRate:   0.05,
		Crossover:      CrossoverMultiPoints,
		Workers:        1,
	}
}
