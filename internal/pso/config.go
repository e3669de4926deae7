package pso

import "fmt"

type Config struct {
	Iterations        int
	IterationsPerCity int

	Particles int

	W  float64
	C1 float64
	C2 float64

	// VMax — ограничение скорости как доля ширины диапазона измерения (<=0 — без ограничения)
	VMax float64

	Workers int
}

func DefaultConfig() Config {
	return Config{
		Iterations:        0,
		IterationsPerCity: 10,

		Particles: 50,

		W:  0.729,
		C1: 1.49445,
		C2: 1.49445,

		VMax:    0.25,
		Workers: 1,
	}
}

func (c Config) Validate() error {
	if c.Iterations <= 0 && c.IterationsPerCity <= 0 {
		return fmt.Errorf(
			"должно быть задано Iterations > 0 или IterationsPerCity > 0",
		)
	}
	if c.Particles <= 0 {
		return fmt.Errorf(
			"Particles должно быть > 0 (получено %d)",
			c.Particles,
		)
	}
	if c.W < 0 {
		return fmt.Errorf(
			"W должно быть >= 0 (получено %f)",
			c.W,
		)
	}
	if c.C1 < 0 || c.C2 < 0 {
		return fmt.Errorf(
			"C1 и C2 должны быть >= 0 (получено %f, %f)",
			c.C1,
			c.C2,
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
