package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"tspRepair/internal/bench"
	"tspRepair/internal/de"
	"tspRepair/internal/ga"
	"tspRepair/internal/opt"
	"tspRepair/internal/pso"
	"tspRepair/internal/repair"
	"tspRepair/internal/sa"
	"tspRepair/internal/ts"
	"tspRepair/internal/woa"
)

// Фабрики

func newWOAFactory(cfg woa.Config) func(seed int64) (opt.Optimizer, error) {
	return func(seed int64) (opt.Optimizer, error) {
		solver, err := woa.New(cfg, rand.New(rand.NewSource(seed)))
		if err != nil {
			return nil, err
		}
		return solver, nil
	}
}

func newDEFactory(cfg de.Config) func(seed int64) (opt.Optimizer, error) {
	return func(seed int64) (opt.Optimizer, error) {
		solver, err := de.New(cfg, rand.New(rand.NewSource(seed)))
		if err != nil {
			return nil, err
		}
		return solver, nil
	}
}

func newGAFactory(cfg ga.Config) func(seed int64) (opt.Optimizer, error) {
	return func(seed int64) (opt.Optimizer, error) {
		solver, err := ga.New(cfg, rand.New(rand.NewSource(seed)))
		if err != nil {
			return nil, err
		}
		return solver, nil
	}
}

func newPSOFactory(cfg pso.Config) func(seed int64) (opt.Optimizer, error) {
	return func(seed int64) (opt.Optimizer, error) {
		solver, err := pso.New(cfg, rand.New(rand.NewSource(seed)))
		if err != nil {
			return nil, err
		}
		return solver, nil
	}
}

func newSAFactory(cfg sa.Config) func(seed int64) (opt.Optimizer, error) {
	return func(seed int64) (opt.Optimizer, error) {
		solver, err := sa.New(cfg, rand.New(rand.NewSource(seed)))
		if err != nil {
			return nil, err
		}
		return solver, nil
	}
}

func newTSFactory(cfg ts.Config) func(seed int64) (opt.Optimizer, error) {
	return func(seed int64) (opt.Optimizer, error) {
		solver, err := ts.New(cfg, rand.New(rand.NewSource(seed)))
		if err != nil {
			return nil, err
		}
		return solver, nil
	}
}

func main() {
	os.Exit(run())
}

func run() int {
	var (
		out          = flag.String("out", "artifacts/results.csv", "путь к выходному CSV-файлу")
		casesFlag    = flag.String("cases", "15,30,us13", "экземпляры: число случайных городов или встроенный us13 (через запятую)")
		algos        = flag.String("algos", "WOA,DE,GA,PSO,SA,TS", "список алгоритмов: WOA, DE, GA, PSO, SA, TS (через запятую)")
		runs         = flag.Int("runs", 10, "количество запусков каждого алгоритма (с разными сидами)")
		baseSeed     = flag.Int64("seed", 1000, "базовый сид для запусков алгоритмов")
		instanceSeed = flag.Int64("instance_seed", 777, "базовый сид для генерации городов (фиксирован для экземпляра)")
		perRunTO     = flag.Duration("per_run_timeout", 0, "таймаут одного запуска; 0 — без ограничения")
		repairFlag   = flag.String("repair", "stable", "восстановление перестановки: stable | unstable")
		depot        = flag.Bool("depot", false, "закрепить город 0 первым в маршруте")
		workers      = flag.Int("workers", 1, "число горутин для оценки популяции (<=1 — последовательно)")
		plotDir      = flag.String("plot_dir", "", "каталог для PNG лучших маршрутов; пусто — без графиков")
		logJSON      = flag.Bool("log_json", false, "логи в JSON (production) вместо консольного формата")

		// --- Алгоритм китов ---
		woaEpochs = flag.Int("woa_epochs", 100, "количество эпох")
		woaPop    = flag.Int("woa_pop", 50, "размер популяции")
		woaB      = flag.Float64("woa_b", 1.0, "параметр логарифмической спирали")

		// --- Дифференциальная эволюция ---
		deGen      = flag.Int("de_gen", 200, "количество поколений")
		dePop      = flag.Int("de_pop", 50, "размер популяции")
		deF        = flag.Float64("de_f", 0.8, "коэффициент масштабирования F")
		deCR       = flag.Float64("de_cr", 0.9, "вероятность кроссовера CR")
		deStrategy = flag.String("de_strategy", "rand/1/bin", "стратегия мутации: rand/1/bin | best/1/bin")

		// --- Генетический алгоритм ---
		gaPop   = flag.Int("ga_pop", 50, "размер популяции")
		gaGen   = flag.Int("ga_gen", 100, "количество поколений")
		gaElite = flag.Int("ga_elite", 2, "размер элиты (количество лучших особей)")
		gaTour  = flag.Int("ga_tour", 3, "размер турнирной выборки")
		gaCx    = flag.Float64("ga_cx", 0.90, "вероятность применения кроссовера")
		gaMut   = flag.Float64("ga_mut", 0.05, "вероятность мутации гена")
		gaCxT   = flag.String("ga_cx_type", "multi_points", "тип кроссовера: uniform | multi_points")

		// --- Рой частиц ---
		psoIterPerCity = flag.Int("pso_iter_per_city", 10, "количество итераций на один город (используется, если pso_iter == 0)")
		psoIter        = flag.Int("pso_iter", 0, "общее количество итераций (0 => pso_iter_per_city × N)")
		psoParticles   = flag.Int("pso_particles", 50, "количество частиц")
		psoW           = flag.Float64("pso_w", 0.729, "коэффициент W (инерция)")
		psoC1          = flag.Float64("pso_c1", 1.49445, "коэффициент C1 (когнитивный)")
		psoC2          = flag.Float64("pso_c2", 1.49445, "коэффициент C2 (социальный)")
		psoVMax        = flag.Float64("pso_vmax", 0.25, "ограничение скорости как доля диапазона (<=0 — без ограничения)")

		// --- Алгоритм имитации отжига ---
		saIterPerCity = flag.Int("sa_iter_per_city", 500, "количество итераций на один город (используется, если sa_iter == 0)")
		saIter        = flag.Int("sa_iter", 0, "общее количество итераций (0 => sa_iter_per_city × N)")
		saT0          = flag.Float64("sa_t0", 0.1, "начальная температура (доля длины начального маршрута)")
		saTmin        = flag.Float64("sa_tmin", 1e-5, "конечная температура")
		saAlpha       = flag.Float64("sa_alpha", 0.999, "коэффициент охлаждения (alpha)")
		saNeigh       = flag.String("sa_neigh", "swap", "тип окрестности: swap | insert | reset")

		// --- Табу-поиск ---
		tsIterPerCity = flag.Int("ts_iter_per_city", 20, "количество итераций на один город (используется, если ts_iter == 0)")
		tsIter        = flag.Int("ts_iter", 0, "общее количество итераций (0 => ts_iter_per_city × N)")
		tsTenure      = flag.Int("ts_tenure", 7, "длина табу-списка (в итерациях)")
		tsTenureRand  = flag.Int("ts_tenure_rand", 3, "случайное добавление к сроку табу [0..rand]")
		tsNeighbors   = flag.Int("ts_neighbors", 40, "количество рассматриваемых соседей на итерацию")
		tsNeigh       = flag.String("ts_neigh", "swap", "тип окрестности: swap | insert")
	)
	flag.Parse()

	log, err := newLogger(*logJSON)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Ошибка инициализации логгера:", err)
		return 1
	}
	defer func() { _ = log.Sync() }()

	ctx := context.Background()

	policy, err := repair.ParsePolicy(*repairFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Конфликт:", err)
		return 2
	}

	cases, err := parseCases(*casesFlag, *instanceSeed)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Конфликт:", err)
		return 2
	}

	woaCfg := woa.Config{
		Epochs:     *woaEpochs,
		Population: *woaPop,
		B:          *woaB,
		Workers:    *workers,
	}
	if err := woaCfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "Конфликт в конфигурации алгоритма китов:", err)
		return 2
	}

	deCfg := de.Config{
		Generations: *deGen,
		Population:  *dePop,
		F:           *deF,
		CR:          *deCR,
		Strategy:    de.Strategy(*deStrategy),
		Workers:     *workers,
	}
	if err := deCfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "Конфликт в конфигурации дифференциальной эволюции:", err)
		return 2
	}

	gaCfg := ga.Config{
		Population:     *gaPop,
		Generations:    *gaGen,
		Elite:          *gaElite,
		TournamentSize: *gaTour,
		CrossoverRate:  *gaCx,
		MutationRate:   *gaMut,
		Crossover:      ga.Crossover(*gaCxT),
		Workers:        *workers,
	}
	if err := gaCfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "Конфликт в конфигурации генетического алгоритма:", err)
		return 2
	}

	psoCfg := pso.Config{
		Iterations:        *psoIter,
		IterationsPerCity: *psoIterPerCity,
		Particles:         *psoParticles,
		W:                 *psoW,
		C1:                *psoC1,
		C2:                *psoC2,
		VMax:              *psoVMax,
		Workers:           *workers,
	}
	if err := psoCfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "Конфликт в конфигурации роя частиц:", err)
		return 2
	}

	saCfg := sa.Config{
		Iterations:        *saIter,
		IterationsPerCity: *saIterPerCity,
		InitialTemp:       *saT0,
		FinalTemp:         *saTmin,
		Alpha:             *saAlpha,
		Neighborhood:      sa.Neighborhood(*saNeigh),
	}
	if err := saCfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "Конфликт в конфигурации алгоритма имитации отжига:", err)
		return 2
	}

	tsCfg := ts.Config{
		Iterations:        *tsIter,
		IterationsPerCity: *tsIterPerCity,
		TabuTenure:        *tsTenure,
		TabuTenureRand:    *tsTenureRand,
		NeighborsPerIter:  *tsNeighbors,
		Neighborhood:      ts.Neighborhood(*tsNeigh),
		Workers:           *workers,
	}
	if err := tsCfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "Конфликт в конфигурации табу-поиска:", err)
		return 2
	}

	available := map[string]bench.Algorithm{
		"WOA": {Name: "WOA", Factory: newWOAFactory(woaCfg)},
		"DE":  {Name: "DE", Factory: newDEFactory(deCfg)},
		"GA":  {Name: "GA", Factory: newGAFactory(gaCfg)},
		"PSO": {Name: "PSO", Factory: newPSOFactory(psoCfg)},
		"SA":  {Name: "SA", Factory: newSAFactory(saCfg)},
		"TS":  {Name: "TS", Factory: newTSFactory(tsCfg)},
	}

	var selected []bench.Algorithm
	for _, a := range splitCSV(*algos) {
		al, ok := available[strings.ToUpper(a)]
		if !ok {
			fmt.Fprintf(os.Stderr, "Алгоритм не предоставлен в программе %q; доступные: %v\n", a, keys(available))
			return 2
		}
		selected = append(selected, al)
	}

	runner := bench.Runner{
		Runs:          *runs,
		BaseSeed:      *baseSeed,
		PerRunTimeout: *perRunTO,
		Policy:        policy,
		FixedDepot:    *depot,
		PlotDir:       *plotDir,
		Logger:        log,
	}

	var records []bench.Record
	for _, c := range cases {
		for _, a := range selected {
			fmt.Printf("Запущен алгоритм %s; экземпляр %s, восстановление %s (общее кол-во запусков=%d)...\n", a.Name, c.Name, policy, runner.Runs)

			rec, err := runner.RunCase(ctx, c, a)
			if err != nil {
				log.Error("run case failed", zap.String("algo", a.Name), zap.String("case", c.Name), zap.Error(err))
				fmt.Fprintln(os.Stderr, "Ошибка:", err)
				return 1
			}
			records = append(records, rec)

			fmt.Printf("  Длина маршрута: лучшая=%.2f средняя=%.2f стандартное отклонение=%.2f | Время: среднее=%.2fms стандартное отклонение=%.2fms\n",
				rec.DistanceBest, rec.DistanceMean, rec.DistanceStd,
				rec.TimeMeanMs, rec.TimeStdMs,
			)
		}
	}

	if err := bench.WriteCSV(*out, records); err != nil {
		fmt.Fprintln(os.Stderr, "Ошибка при записи в CSV:", err)
		return 1
	}
	fmt.Println("Saved:", *out)
	return 0
}

func newLogger(json bool) (*zap.Logger, error) {
	if json {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// helpers

// parseCases разбирает список вида "15,30,us13".
func parseCases(s string, baseInstanceSeed int64) ([]bench.Case, error) {
	parts := splitCSV(s)
	if len(parts) == 0 {
		return nil, fmt.Errorf("список экземпляров пуст")
	}
	cases := make([]bench.Case, 0, len(parts))

	for i, p := range parts {
		if strings.EqualFold(p, bench.BuiltinUS13) {
			cases = append(cases, bench.Case{Name: bench.BuiltinUS13, Builtin: bench.BuiltinUS13})
			continue
		}
		n, err := atoiStrict(p)
		if err != nil {
			return nil, fmt.Errorf("экземпляр %q: ожидается число городов или %s: %w", p, bench.BuiltinUS13, err)
		}
		if n < 2 {
			return nil, fmt.Errorf("экземпляр %q: количество городов должно быть >= 2", p)
		}

		seed := baseInstanceSeed + int64(i)*10_000 + int64(n)

		cases = append(cases, bench.Case{
			Name:         "rnd" + strconv.Itoa(n),
			Cities:       n,
			InstanceSeed: seed,
		})
	}

	return cases, nil
}

func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func atoiStrict(s string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(s))
}

func keys(m map[string]bench.Algorithm) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
