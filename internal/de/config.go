package de

import "fmt"

// Стратегия мутации
type Strategy string

const (
	StrategyRand1Bin Strategy = "rand/1/bin"
	StrategyBest1Bin Strategy = "best/1/bin"
)

type Config struct {
	Generations int
	Population  int

	// F — коэффициент масштабирования разностного вектора
	F float64
	// CR — вероятность кроссовера
	CR float64

	Strategy Strategy

	Workers int
}

func DefaultConfig() Config {
	return Config{
		Generations: 200,
		Population:  50,
		F:           0.8,
		CR:          0.9,
		Strategy:    StrategyRand1Bin,
		Workers:     1,
	}
}

func (c Config) Validate() error {
	if c.Generations <= 0 {
		return fmt.Errorf(
			"количество поколений должно быть > 0 (получено %d)",
			c.Generations,
		)
	}
	if c.Population < 4 {
		return fmt.Errorf(
			"размер популяции должен быть >= 4 (получено %d)",
			c.Population,
		)
	}
	if c.F <= 0 || c.F > 2 {
		return fmt.Errorf(
			"F должно лежать в интервале (0,2] (получено %f)",
			c.F,
		)
	}
	if c.CR < 0 || c.CR > 1 {
		return fmt.Errorf(
			"CR должно быть в диапазоне [0,1] (получено %f)",
			c.CR,
		)
	}
	switch c.Strategy {
	case StrategyRand1Bin, StrategyBest1Bin:
		// ok
	default:
		return fmt.Errorf(
			"неизвестная стратегия %q",
			c.Strategy,
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
