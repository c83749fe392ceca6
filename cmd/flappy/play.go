package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/flappy-arcade/internal/platform/tui"
	"github.com/vovakirdan/flappy-arcade/internal/registry"
)

var (
	flagSpectate string
	flagPlayer   string
)

var playCmd = &cobra.Command{
	Use:   "play <variant>",
	Short: "Play a variant in the terminal",
	Long: `Start playing the specified variant in this terminal.

Controls:
  Space/Up/W/Enter - Flap (also starts and restarts a round)
  Mouse click      - Flap in variants with pointer support
  P/Esc            - Pause and resume
  Q                - Quit from the menu, pause or game-over screen
  Ctrl+C           - Quit immediately
  Ctrl+S           - Save a text screenshot to ~/.arcade/screenshots

Difficulty options:
  easy   - Gaps shrink slowly
  normal - Gaps shrink one pixel per point
  hard   - Gaps shrink fast
  fixed  - Gaps never shrink

Examples:
  flappy play flap
  flappy play pipes --difficulty hard
  flappy play sound --seed 42
  flappy play scroll --spectate :8080
  flappy play pipes --config ./my-flappy.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagSpectate, "spectate", "", "Serve a WebSocket spectator feed on this address (e.g. :8080)")
	playCmd.Flags().StringVar(&flagPlayer, "player", "", "Name recorded with scores (default: current user)")
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := args[0]
	requireVariant(gameID)

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	store := openStore()

	hub, stopSpectate := startSpectate(flagSpectate)

	opts := tui.Options{
		Store:  store,
		Player: flagPlayer,
		Logger: logger,
	}
	if opts.Player == "" {
		opts.Player = playerName()
	}
	if hub != nil {
		opts.Publisher = hub
	}

	logger.Info("game started", "game", gameID, "player", opts.Player)
	runErr := tui.Run(game, runtimeConfig(), width, height, opts)

	stopSpectate()
	closeStore(store)

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
