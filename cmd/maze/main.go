package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jwebster45206/school-maze/internal/config"
	"github.com/jwebster45206/school-maze/internal/logger"
	"github.com/jwebster45206/school-maze/internal/services"
	"github.com/jwebster45206/school-maze/internal/session"
	istorage "github.com/jwebster45206/school-maze/internal/storage"
	"github.com/jwebster45206/school-maze/pkg/aqi"
	"github.com/jwebster45206/school-maze/pkg/console"
	"github.com/jwebster45206/school-maze/pkg/rooms"
	"github.com/jwebster45206/school-maze/pkg/storage"
	"golang.org/x/term"
)

func main() {
	os.Exit(run())
}

// run returns the process exit code.
func run() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		return 1
	}

	log := logger.Setup(cfg)
	log.Debug("Configuration loaded", "file", cfg.File, "backend", cfg.SaveBackend, "offline", cfg.Offline())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	go func() {
		// a second interrupt kills the process even while waiting for input
		<-ctx.Done()
		stop()
	}()

	store, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Error("Failed to open save slot", "backend", cfg.SaveBackend, "error", err)
		return 1
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Error("Error closing storage", "error", err)
		}
	}()

	board := istorage.NewCSVLeaderboard(cfg.LeaderboardPath, log)

	var air aqi.Lookup
	if !cfg.Offline() {
		air = services.NewAirVisualService(cfg.AirVisualAPIKey, cfg.AirVisualBaseURL, log)
	}

	interactive := term.IsTerminal(int(os.Stdin.Fd()))
	name := cfg.PlayerName
	if name == "" && interactive {
		name, err = promptName()
		if err != nil {
			log.Warn("Name prompt failed", "error", err)
		}
	}

	out := console.NewTerminal(os.Stdin, os.Stdout, console.Options{
		Width:           cfg.TextWidth,
		TypewriterDelay: cfg.TypewriterDelay,
		UseClipboard:    interactive,
	})

	var rng *rand.Rand
	if cfg.Seed != 0 {
		rng = rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15))
	}
	world, err := rooms.NewWorld(rooms.NewEnv(out, rng, log), rooms.Options{
		FrontDeskChallenge: cfg.FrontDeskChallenge,
		AirQuality:         air,
	})
	if err != nil {
		log.Error("Failed to build the maze", "error", err)
		return 1
	}

	ctl := session.NewController(store, board, out, world, log)
	outcome, err := ctl.Run(ctx, name)
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Error("Game ended with an error", "termination", outcome.Termination.String(), "error", err)
		return 1
	}
	log.Debug("Game over", "termination", outcome.Termination.String(), "score", outcome.State.Score)
	return 0
}

func openStorage(ctx context.Context, cfg *config.Config, log *slog.Logger) (storage.Storage, error) {
	switch cfg.SaveBackend {
	case config.BackendRedis:
		rs := istorage.NewRedisStorage(cfg.RedisURL, cfg.SaveSlot, log)
		if err := rs.WaitForConnection(ctx, 5, time.Second); err != nil {
			rs.Close()
			return nil, err
		}
		return rs, nil
	default:
		return istorage.OpenBoltStorage(cfg.SavePath, cfg.SaveSlot, log)
	}
}
