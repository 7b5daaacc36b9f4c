package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/google/uuid"

	"github.com/pthm-cable/skirmish/config"
	"github.com/pthm-cable/skirmish/game"
	"github.com/pthm-cable/skirmish/renderer"
	"github.com/pthm-cable/skirmish/telemetry"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	rounds := flag.Int("rounds", 0, "Rounds to play (0 = use config)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = config, then time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Tick limit per round (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs, config and match snapshot")
	logLevel := flag.String("log-level", "info", "Log level: debug, info, warn, error")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	var level slog.Level
	if err := level.UnmarshalText([]byte(*logLevel)); err != nil {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	// Set up seed
	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = cfg.Arena.Seed
	}
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	runID := uuid.NewString()
	logger = logger.With("run_id", runID)

	output, err := telemetry.NewOutputManager(*outputDir)
	if err != nil {
		logger.Error("failed to create output directory", "error", err)
		os.Exit(1)
	}
	defer output.Close()
	if err := output.WriteConfig(cfg); err != nil {
		logger.Error("failed to write config", "error", err)
	}

	match, err := game.NewMatch(game.Options{
		Config:   cfg,
		RunID:    runID,
		Seed:     rngSeed,
		Rounds:   *rounds,
		MaxTicks: *maxTicks,
		Logger:   logger,
		Output:   output,
	})
	if err != nil {
		logger.Error("failed to create match", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *headless {
		// Headless mode - pure CPU simulation, no raylib needed
		logger.Info("starting headless match", "seed", rngSeed)

		res, err := match.Run(ctx)
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("match failed", "error", err)
			return
		}
		logger.Info("match result",
			"rounds", res.Rounds,
			"ticks", res.Ticks,
			"invalid_fire_orders", res.InvalidFireOrders,
			"interrupted", err != nil,
		)
		return
	}

	// Graphical mode
	rl.InitWindow(cfg.Derived.ScreenW, cfg.Derived.ScreenH, "Skirmish")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	viewer := renderer.NewViewer(match)
	for !rl.WindowShouldClose() && ctx.Err() == nil {
		viewer.Update()
		viewer.Draw()
	}
	if !match.Finished() {
		logger.Info("viewer closed before the match finished", "round", match.Round(), "tick", match.Tick())
		match.Stop()
	}
}
