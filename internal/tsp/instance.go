package tsp

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
)

type Instance struct {
	Cities int
	// Dist — матрица расстояний по строкам, длина Cities*Cities.
	Dist []float64
	// Positions — координаты городов для отрисовки (необязательно).
	Positions [][2]float64
	// Names — названия городов (необязательно).
	Names []string
}

func NewInstance(cities int, dist []float64) (*Instance, error) {
	inst := &Instance{Cities: cities, Dist: dist}
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return inst, nil
}

// FromPositions строит евклидову матрицу расстояний по координатам городов.
func FromPositions(pos [][2]float64) (*Instance, error) {
	n := len(pos)
	dist := make([]float64, n*n)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d := math.Hypot(pos[i][0]-pos[j][0], pos[i][1]-pos[j][1])
			dist[i*n+j] = d
			dist[j*n+i] = d
		}
	}
	inst := &Instance{Cities: n, Dist: dist, Positions: pos}
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return inst, nil
}

func (inst *Instance) Validate() error {
	if inst == nil {
		return errors.New("instance is nil")
	}
	if inst.Cities <= 0 {
		return fmt.Errorf("cities must be > 0 (got %d)", inst.Cities)
	}
	if len(inst.Dist) != inst.Cities*inst.Cities {
		return fmt.Errorf("dist length must be cities*cities=%d (got %d)", inst.Cities*inst.Cities, len(inst.Dist))
	}
	for i, v := range inst.Dist {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return fmt.Errorf("dist[%d] must be finite and >= 0 (got %v)", i, v)
		}
	}
	if inst.Positions != nil && len(inst.Positions) != inst.Cities {
		return fmt.Errorf("positions length must be %d (got %d)", inst.Cities, len(inst.Positions))
	}
	if inst.Names != nil && len(inst.Names) != inst.Cities {
		return fmt.Errorf("names length must be %d (got %d)", inst.Cities, len(inst.Names))
	}
	return nil
}

func (inst *Instance) Distance(from, to int) float64 {
	return inst.Dist[from*inst.Cities+to]
}

// Name возвращает название города или его номер.
func (inst *Instance) Name(city int) string {
	if inst.Names != nil {
		return inst.Names[city]
	}
	return fmt.Sprintf("%d", city)
}

// RandomInstance размещает города равномерно в единичном квадрате.
func RandomInstance(cities int, rng *rand.Rand) *Instance {
	if rng == nil {
		panic("генератор случайных чисел не инициализирован (nil)")
	}
	if cities <= 0 {
		panic("invalid number of cities")
	}
	pos := make([][2]float64, cities)
	for i := range pos {
		pos[i] = [2]float64{rng.Float64(), rng.Float64()}
	}
	inst, err := FromPositions(pos)
	if err != nil {
		panic(err)
	}
	return inst
}
