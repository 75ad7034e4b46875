package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"gen-ca/internal/core"
	"gen-ca/internal/game"
	"gen-ca/internal/life"
	"gen-ca/internal/render"
	"gen-ca/internal/rule"

	"golang.org/x/sync/errgroup"
)

type scenario struct {
	rule string
	seed int64
}

func (s scenario) String() string {
	return fmt.Sprintf("rule=%s seed=%d", s.rule, s.seed)
}

type scenarioResult struct {
	scenario
	canonical  string
	cycle      int
	generation int
	population int
	stable     bool
	extinct    bool
	final      *life.Grid
	packed     string
}

func main() {
	cfg := game.DefaultConfig()
	cfg.Clock = &core.ManualClock{}
	flag.IntVar(&cfg.Width, "w", 96, "grid columns")
	flag.IntVar(&cfg.Height, "h", 96, "grid rows")
	flag.StringVar(&cfg.Edge, "edge", cfg.Edge, "edge mode: loop, death, tomb or undead")
	flag.Float64Var(&cfg.Density, "density", cfg.Density, "live share of the random soup")
	rules := flag.String("rules", "", "comma-separated rules or preset names; empty sweeps every preset")
	seeds := flag.Int("seeds", 4, "soups per rule")
	steps := flag.Int("steps", 500, "generations to simulate per scenario")
	bias := flag.String("bias", "", "soup bias for both axes: center or edge")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	pngDir := flag.String("png", "", "directory for final-state PNG snapshots")
	export := flag.Bool("export", false, "print each final state in packed text form")
	scale := flag.Int("scale", 4, "pixels per cell in PNG snapshots")
	verbose := flag.Bool("v", false, "debug logging")
	settings := game.Settings{}
	flag.Var(settings, "set", "game setting as key=value, applied after the other flags; repeatable")
	flag.Parse()
	cfg = cfg.Apply(settings)

	logger := setupLogging(os.Stderr, *verbose)

	var sets []scenario
	for _, r := range ruleList(*rules) {
		for s := 0; s < *seeds; s++ {
			sets = append(sets, scenario{rule: r, seed: int64(s + 1)})
		}
	}
	if *pngDir != "" {
		if err := os.MkdirAll(*pngDir, 0o755); err != nil {
			logger.Error("create png dir", "err", err)
			os.Exit(1)
		}
	}

	fmt.Printf("Sweeping %d scenarios (%d workers, %d steps, %dx%d)\n", len(sets), *workers, *steps, cfg.Width, cfg.Height)

	start := time.Now()
	results := make([]scenarioResult, len(sets))
	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(max(*workers, 1))
	for i, sc := range sets {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := runScenario(cfg, sc, game.ParseBias(*bias), *steps)
			if err != nil {
				return fmt.Errorf("%s: %w", sc, err)
			}
			results[i] = res
			logger.Debug("scenario done", "rule", res.canonical, "seed", sc.seed, "generation", res.generation, "population", res.population)
			if *pngDir != "" {
				return writeSnapshot(*pngDir, res, *scale)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		logger.Error("sweep failed", "err", err)
		os.Exit(1)
	}

	sort.SliceStable(results, func(i, j int) bool { return results[i].population > results[j].population })
	fmt.Printf("\nResults (elapsed %s):\n", time.Since(start).Round(time.Millisecond))
	for i, res := range results {
		state := "running"
		switch {
		case res.extinct:
			state = "extinct"
		case res.stable:
			state = "stable"
		}
		fmt.Printf("%3d) %-20s seed=%-3d gen=%-5d pop=%-6d %s\n", i+1, res.canonical, res.seed, res.generation, res.population, state)
		if *export {
			fmt.Printf("     %s\n", res.packed)
		}
	}
}

// setupLogging installs a text logger on w as both the slog default and the
// engine logger.
func setupLogging(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	core.SetLogger(logger)
	return logger
}

// ruleList splits the -rules flag, falling back to every preset.
func ruleList(flagValue string) []string {
	var out []string
	for _, r := range strings.Split(flagValue, ",") {
		if r = strings.TrimSpace(r); r != "" {
			out = append(out, r)
		}
	}
	if len(out) > 0 {
		return out
	}
	for _, p := range rule.Presets() {
		out = append(out, p.Name)
	}
	return out
}

// runScenario seeds a soup and steps it until it settles, dies out or runs
// out of steps.
func runScenario(base game.Config, sc scenario, bias game.Bias, steps int) (scenarioResult, error) {
	cfg := base
	cfg.Rule = sc.rule
	ctrl, err := game.New(cfg)
	if err != nil {
		return scenarioResult{}, err
	}
	ctrl.Seeder().Randomize(sc.seed, bias, bias)

	res := scenarioResult{scenario: sc}
	for i := 0; i < steps; i++ {
		changed := ctrl.Step()
		st := ctrl.State()
		if st.Population == 0 {
			res.extinct = true
			break
		}
		if !changed {
			res.stable = true
			break
		}
	}
	st := ctrl.State()
	res.canonical = st.Rule
	res.cycle = ctrl.Rule().Cycle
	res.final = ctrl.Snapshot()
	res.generation = st.Generation
	res.population = st.Population
	res.packed, err = ctrl.Export()
	if err != nil {
		return scenarioResult{}, err
	}
	return res, nil
}

func writeSnapshot(dir string, res scenarioResult, scale int) error {
	name := strings.NewReplacer("/", "_").Replace(res.canonical)
	path := filepath.Join(dir, fmt.Sprintf("%s_seed%d.png", name, res.seed))
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := render.WritePNG(f, res.final, render.DefaultPalette(res.cycle), scale); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
