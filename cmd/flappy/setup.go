package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/user"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/flappy-arcade/internal/config"
	"github.com/vovakirdan/flappy-arcade/internal/core"
	"github.com/vovakirdan/flappy-arcade/internal/games/flappy"
	"github.com/vovakirdan/flappy-arcade/internal/registry"
	"github.com/vovakirdan/flappy-arcade/internal/spectate"
	"github.com/vovakirdan/flappy-arcade/internal/storage"
)

const defaultLogFile = "~/.arcade/flappy.log"

// newLogger writes to a file so the alt-screen UI stays clean.
func newLogger(level, path string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", level, err)
	}

	var w io.Writer = os.Stderr
	if path != "" && path != "-" {
		if strings.HasPrefix(path, "~/") {
			home, homeErr := os.UserHomeDir()
			if homeErr != nil {
				return nil, fmt.Errorf("cannot resolve log path: %w", homeErr)
			}
			path = filepath.Join(home, path[2:])
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("cannot create log directory: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("cannot open log file: %w", err)
		}
		// The file stays open for the life of the process
		w = f
	}

	return log.NewWithOptions(w, log.Options{
		Level:           lvl,
		ReportTimestamp: true,
		Prefix:          "flappy",
	}), nil
}

// loadVariants applies --config and --difficulty, and registers extra
// variants defined in the config file.
func loadVariants() error {
	flappy.SetConfigPath(flagConfig)
	flappy.SetDifficultyPreset(flagDifficulty)

	cfg, err := config.LoadFlappy(flagConfig)
	if err != nil {
		if flagConfig != "" {
			return fmt.Errorf("cannot load config: %w", err)
		}
		logger.Warn("using default config", "error", err)
		return nil
	}
	config.ApplyFlappyPreset(&cfg, config.ParsePreset(flagDifficulty))
	flappy.RegisterVariants(cfg)
	return nil
}

// openStore opens the score store, warning and returning nil on failure
// so games still run without persistence.
func openStore() storage.Scores {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	store, err := storage.Open(ctx, flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("score storage disabled", "dsn", redactDSN(flagDBPath), "error", err)
		return nil
	}
	logger.Debug("score storage opened", "dsn", redactDSN(flagDBPath))
	return store
}

func closeStore(store storage.Scores) {
	if store == nil {
		return
	}
	if err := store.Close(); err != nil {
		logger.Warn("closing score storage", "error", err)
	}
}

// redactDSN hides credentials in postgres URLs.
func redactDSN(dsn string) string {
	if !storage.IsPostgres(dsn) {
		return dsn
	}
	at := strings.LastIndex(dsn, "@")
	scheme := strings.Index(dsn, "://")
	if at < 0 || scheme < 0 || at < scheme {
		return dsn
	}
	return dsn[:scheme+3] + "***" + dsn[at:]
}

func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	return cfg
}

// playerName is the local user recorded with scores.
func playerName() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return "local"
}

// requireVariant exits when id is not registered.
func requireVariant(id string) {
	if !registry.Exists(id) {
		fmt.Fprintf(os.Stderr, "Error: unknown variant %q\n", id)
		fmt.Fprintln(os.Stderr, "Run 'flappy list' to see available variants.")
		os.Exit(1)
	}
}

// startSpectate starts the spectator feed when addr is set.
// The returned stop function is always safe to call.
func startSpectate(addr string) (*spectate.Hub, func()) {
	if addr == "" {
		return nil, func() {}
	}

	hub := spectate.NewHub(spectate.DefaultBroadcastEvery, logger)
	srv := spectate.NewServer(addr, hub)
	if err := srv.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: spectator feed disabled: %v\n", err)
		return nil, func() {}
	}

	return hub, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.Warn("spectator shutdown", "error", err)
		}
	}
}
