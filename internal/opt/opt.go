package opt

import (
	"context"
	"time"
)

type Optimizer interface {
	Solve(ctx context.Context, p *Problem) (Result, error)
}

type Result struct {
	// Tour — полный маршрут (с депо, если оно закреплено).
	Tour        []int
	Distance    float64
	Evaluations int
	Iterations  int
	Duration    time.Duration
	// History — лучшая длина маршрута после каждой итерации.
	History []float64
	Meta    map[string]any
}
