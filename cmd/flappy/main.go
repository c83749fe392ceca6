// flappy plays the flappy variants in a terminal, over SSH or in a window.
//
// Usage:
//
//	flappy list                - List available variants
//	flappy play <variant>      - Play a variant in the terminal
//	flappy window <variant>    - Play a variant in a desktop window
//	flappy menu                - Pick variants interactively
//	flappy serve               - Start SSH server for remote play
//	flappy scores <variant>    - Show high scores for a variant
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible gameplay
//	--db <dsn>          - SQLite path or postgres:// DSN (default: $FLAPPY_DB or ~/.arcade/flappy.db)
//	--config <path>     - Game config YAML (default: $FLAPPY_CONFIG)
//	--log-level <lvl>   - debug, info, warn, error
//	--log-file <path>   - Log destination (default: ~/.arcade/flappy.log)
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/flappy-arcade/internal/storage"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
	flagLogFile    string

	logger = log.Default()
)

func main() {
	// .env is optional
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Warning: could not load .env: %v\n", err)
	}

	// Registered after .env so it can supply the defaults
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", envOr("FLAPPY_DB", storage.DefaultPath), "SQLite path or postgres:// DSN for scores")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", os.Getenv("FLAPPY_CONFIG"), "Path to custom game config YAML")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "flappy",
	Short: "Flappy Arcade - four flappy variants for terminal, SSH and desktop",
	Long: `Flappy Arcade runs four iterations of a side-scrolling flap game:
a circle falls under gravity, a flap pushes it up, and later variants add
obstacles, scoring, scrolling and sound.

Available commands:
  list     - Show all variants
  play     - Play a variant in the terminal
  window   - Play a variant in a desktop window
  menu     - Interactive variant picker
  serve    - Start SSH server for remote play
  scores   - View high scores

Examples:
  flappy list
  flappy play pipes
  flappy window sound
  flappy menu
  flappy serve --ssh :2222
  flappy scores scroll`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		l, err := newLogger(flagLogLevel, flagLogFile)
		if err != nil {
			return err
		}
		logger = l
		log.SetDefault(l)
		return loadVariants()
	},
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", defaultLogFile, "Log file path ('-' for stderr)")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(windowCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
