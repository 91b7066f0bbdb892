// Package main provides the Ember training demo CLI.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/ember-ml/ember/internal/config"
	"github.com/ember-ml/ember/internal/loss"
	"github.com/ember-ml/ember/internal/trainer"
)

const version = "v0.1.0-dev"

func main() {
	if len(os.Args) > 1 && os.Args[1] == "version" {
		fmt.Printf("Ember %s\n", version)
		return
	}

	cfgPath := flag.String("config", "configs/demo.yaml", "Path to YAML config")
	lossName := flag.String("loss", "", "Override loss name (one of: "+strings.Join(loss.Supported(), ", ")+")")
	steps := flag.Int("steps", 0, "Number of training steps")
	batchSize := flag.Int("batch-size", 0, "Batch size")
	lr := flag.Float64("lr", 0, "Learning rate")
	seed := flag.Int64("seed", 0, "PRNG seed")
	logEvery := flag.Int("log-every", 0, "Log every N steps")

	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	cfg.ApplyOverrides(config.Overrides{
		LossName:  *lossName,
		Steps:     *steps,
		BatchSize: *batchSize,
		LR:        *lr,
		Seed:      *seed,
		LogEvery:  *logEvery,
	})

	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	summary, err := trainer.Run(ctx, trainer.RunConfig{
		Loss:      cfg.Loss,
		Steps:     cfg.Steps,
		BatchSize: cfg.BatchSize,
		LR:        cfg.LR,
		Momentum:  cfg.Momentum,
		Seed:      cfg.Seed,
		LogEvery:  cfg.LogEvery,
	})
	if err != nil {
		log.Fatalf("training failed: %v", err)
	}

	fmt.Printf("run %s finished: %s loss %.4f -> %.4f over %d steps\n",
		summary.RunID, summary.LossName, summary.FirstLoss, summary.FinalLoss, summary.Steps)
}
