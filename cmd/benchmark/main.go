package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"time"

	"github.com/urfave/cli/v3"
)

const (
	configKey     = "config"
	formatKey     = "format"
	iterationsKey = "iterations"
	pprofKey      = "pprof"

	formatTable    = "table"
	formatMarkdown = "markdown"
)

func main() {
	cmd := &cli.Command{
		Name:  "benchmark",
		Usage: "Measure selkt notification latency",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  configKey,
				Usage: "Scenario file (.yaml, .yml or .toml)",
			},
			&cli.StringFlag{
				Name:  formatKey,
				Usage: "Report format: table or markdown",
				Value: formatTable,
			},
			&cli.IntFlag{
				Name:  iterationsKey,
				Usage: "Writes per scenario run, overrides the config file",
			},
			&cli.BoolFlag{
				Name:  pprofKey,
				Usage: "Write a CPU profile to default.pgo",
			},
		},
		Action: benchmark,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func benchmark(ctx context.Context, cmd *cli.Command) error {
	start := time.Now()
	log.Print("Starting selkt benchmark, please wait...")
	defer func() {
		log.Printf("Finished selkt benchmark in %v", time.Since(start))
	}()

	format := cmd.String(formatKey)
	if format != formatTable && format != formatMarkdown {
		return fmt.Errorf("invalid format: %s (must be table or markdown)", format)
	}

	cfg, err := LoadConfig(cmd.String(configKey))
	if err != nil {
		return err
	}
	if cmd.IsSet(iterationsKey) {
		n := cmd.Int(iterationsKey)
		if n <= 0 {
			return fmt.Errorf("invalid iterations: %d", n)
		}
		cfg.Iterations = int(n)
	}

	if cmd.Bool(pprofKey) {
		f, err := os.Create("default.pgo")
		if err != nil {
			return err
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			return err
		}
		defer pprof.StopCPUProfile()
	}

	results := make([]*result, 0, len(cfg.Scenarios))
	for _, sc := range cfg.Scenarios {
		if err := ctx.Err(); err != nil {
			return err
		}
		best, err := runBest(sc, cfg.Iterations, cfg.Repeats)
		if err != nil {
			return err
		}
		results = append(results, best)
	}

	if format == formatMarkdown {
		return renderMarkdown(os.Stdout, results)
	}
	renderTables(os.Stdout, results)
	return nil
}

// runBest runs sc repeats times after a warm up and keeps the fastest run.
// Every run must produce the same notification trace.
func runBest(sc ScenarioConfig, iterations, repeats int) (*result, error) {
	log.Printf("Running '%s' scenario", sc.Name)

	warm, err := runScenario(sc, iterations)
	if err != nil {
		return nil, err
	}

	best := warm
	for i := range repeats {
		log.Printf("Running '%s' scenario, iteration %d/%d %d%%", sc.Name, i+1, repeats, (i+1)*100/repeats)
		r, err := runScenario(sc, iterations)
		if err != nil {
			return nil, err
		}
		if r.digest != warm.digest {
			return nil, fmt.Errorf("scenario %s: trace digest %016x differs from warm up %016x", sc.Name, r.digest, warm.digest)
		}
		if i == 0 || r.duration < best.duration {
			best = r
		}
	}
	return best, nil
}
