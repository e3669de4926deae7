package bench

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"tspRepair/internal/opt"
	"tspRepair/internal/render"
	"tspRepair/internal/repair"
	"tspRepair/internal/tsp"
)

// BuiltinUS13 — имя встроенного экземпляра из 13 городов США.
const BuiltinUS13 = "us13"

type Algorithm struct {
	Name    string
	Factory func(seed int64) (opt.Optimizer, error)
}

type Case struct {
	Name         string
	Cities       int
	InstanceSeed int64
	// Builtin — имя встроенного экземпляра; пусто — случайные города.
	Builtin string
}

// Instance строит экземпляр задачи для случая.
func (c Case) Instance() (*tsp.Instance, error) {
	switch c.Builtin {
	case "":
		if c.Cities <= 0 {
			return nil, fmt.Errorf("количество городов должно быть > 0 (получено %d)", c.Cities)
		}
		return tsp.RandomInstance(c.Cities, randForSeed(c.InstanceSeed)), nil
	case BuiltinUS13:
		return tsp.USCities(), nil
	default:
		return nil, fmt.Errorf("неизвестный встроенный экземпляр %q", c.Builtin)
	}
}

type Record struct {
	Algo   string
	Case   string
	Repair string
	Cities int
	Runs   int

	TimeBestMs float64
	TimeMeanMs float64
	TimeStdMs  float64

	DistanceBest float64
	DistanceMean float64
	DistanceStd  float64

	BestTour []int
}

type Runner struct {
	Runs          int
	BaseSeed      int64
	PerRunTimeout time.Duration // 0 = no timeout

	Policy     repair.Policy
	FixedDepot bool

	// PlotDir — каталог для PNG лучшего маршрута и сходимости; пусто — без графиков.
	PlotDir string

	Logger *zap.Logger
}

func (r Runner) logger() *zap.Logger {
	if r.Logger == nil {
		return zap.NewNop()
	}
	return r.Logger
}

func (r Runner) RunCase(ctx context.Context, c Case, algo Algorithm) (Record, error) {
	log := r.logger().With(
		zap.String("algo", algo.Name),
		zap.String("case", c.Name),
		zap.String("repair", string(r.Policy)),
	)

	inst, err := c.Instance()
	if err != nil {
		return Record{}, err
	}
	prob, err := opt.NewProblem(inst, r.Policy, r.FixedDepot)
	if err != nil {
		return Record{}, fmt.Errorf("конфигурация задачи: %w", err)
	}

	distances := make([]float64, 0, r.Runs)
	timesMs := make([]float64, 0, r.Runs)
	var best opt.Result
	best.Distance = math.Inf(1)

	for i := 0; i < r.Runs; i++ {
		runSeed := r.BaseSeed + int64(i)

		op, err := algo.Factory(runSeed)
		if err != nil {
			return Record{}, fmt.Errorf("run %d: фабрика %s: %w", i, algo.Name, err)
		}
		if op == nil {
			return Record{}, fmt.Errorf("run %d: фабрика %s вернула nil", i, algo.Name)
		}

		runCtx := ctx
		cancel := func() {}
		if r.PerRunTimeout > 0 {
			runCtx, cancel = context.WithTimeout(ctx, r.PerRunTimeout)
		}
		start := time.Now()
		res, err := op.Solve(runCtx, prob)
		dur := time.Since(start)
		cancel()

		if err != nil {
			// Таймаут запуска работает как бюджет времени: берём лучшее найденное
			budget := errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil &&
				tsp.ValidatePermutation(res.Tour, inst.Cities) == nil
			switch {
			case budget:
				log.Info("run stopped by timeout",
					zap.Int("run", i),
					zap.Duration("timeout", r.PerRunTimeout),
					zap.Float64("distance", res.Distance),
					zap.Int("iterations", res.Iterations),
				)
			case runCtx.Err() != nil:
				return Record{}, fmt.Errorf("run %d: cancelled/timeout: %w", i, err)
			default:
				return Record{}, fmt.Errorf("run %d: solve error: %w", i, err)
			}
		}
		if err := tsp.ValidatePermutation(res.Tour, inst.Cities); err != nil {
			return Record{}, fmt.Errorf("run %d: invalid tour: %w", i, err)
		}

		log.Debug("run finished",
			zap.Int("run", i),
			zap.Int64("seed", runSeed),
			zap.Float64("distance", res.Distance),
			zap.Int("evaluations", res.Evaluations),
			zap.Duration("duration", dur),
		)

		distances = append(distances, res.Distance)
		timesMs = append(timesMs, float64(dur.Microseconds())/1000.0)
		if res.Distance < best.Distance {
			best = res
		}
	}

	dStats := CalcStats(distances)
	tStats := CalcStats(timesMs)

	if r.PlotDir != "" && len(best.Tour) > 0 {
		if err := r.plot(c, algo, inst, best); err != nil {
			return Record{}, err
		}
		log.Info("plots saved", zap.String("dir", r.PlotDir))
	}

	return Record{
		Algo:   algo.Name,
		Case:   c.Name,
		Repair: string(r.Policy),
		Cities: inst.Cities,
		Runs:   r.Runs,

		TimeBestMs: tStats.Best,
		TimeMeanMs: tStats.Mean,
		TimeStdMs:  tStats.Std,

		DistanceBest: dStats.Best,
		DistanceMean: dStats.Mean,
		DistanceStd:  dStats.Std,

		BestTour: best.Tour,
	}, nil
}

func (r Runner) plot(c Case, algo Algorithm, inst *tsp.Instance, best opt.Result) error {
	if inst.Positions == nil {
		// Без координат рисовать нечего
		return nil
	}
	if err := os.MkdirAll(r.PlotDir, 0o755); err != nil {
		return err
	}
	base := strings.ToLower(fmt.Sprintf("%s-%s-%s", algo.Name, c.Name, r.Policy))
	title := fmt.Sprintf("%s (%s): %.2f", algo.Name, r.Policy, best.Distance)

	if err := render.Cities(inst, filepath.Join(r.PlotDir, strings.ToLower(c.Name)+"-cities.png")); err != nil {
		return fmt.Errorf("plot cities: %w", err)
	}
	if err := render.Tour(inst, best.Tour, title, filepath.Join(r.PlotDir, base+"-tour.png")); err != nil {
		return fmt.Errorf("plot tour: %w", err)
	}
	if len(best.History) > 0 {
		if err := render.Convergence(best.History, title, filepath.Join(r.PlotDir, base+"-history.png")); err != nil {
			return fmt.Errorf("plot history: %w", err)
		}
	}
	return nil
}

func WriteCSV(path string, records []Record) error {
	if d := dirOf(path); d != "" {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"algo", "case", "repair", "cities", "runs",
		"time_best_ms", "time_mean_ms", "time_std_ms",
		"distance_best", "distance_mean", "distance_std",
		"best_tour",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range records {
		row := []string{
			r.Algo,
			r.Case,
			r.Repair,
			itoa(r.Cities),
			itoa(r.Runs),

			ftoa(r.TimeBestMs),
			ftoa(r.TimeMeanMs),
			ftoa(r.TimeStdMs),

			ftoa(r.DistanceBest),
			ftoa(r.DistanceMean),
			ftoa(r.DistanceStd),

			tourString(r.BestTour),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}
