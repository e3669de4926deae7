package woa

import "fmt"

type Config struct {
	Epochs     int
	Population int

	// B — параметр логарифмической спирали
	B float64

	// Workers — число горутин для оценки популяции (<=1 — последовательно)
	Workers int
}

func DefaultConfig() Config {
	return Config{
		Epochs:     100,
		Population: 50,
		B:          1.0,
		Workers:    1,
	}
}

func (c Config) Validate() error {
	if c.Epochs <= 0 {
		return fmt.Errorf(
			"количество эпох должно быть > 0 (получено %d)",
			c.Epochs,
		)
	}
	if c.Population <= 1 {
		return fmt.Errorf(
			"размер популяции должен быть > 1 (получено %d)",
			c.Population,
		)
	}
	if c.B <= 0 {
		return fmt.Errorf(
			"B должно быть > 0 (получено %f)",
			c.B,
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
