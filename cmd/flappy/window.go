package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/flappy-arcade/internal/platform/window"
	"github.com/vovakirdan/flappy-arcade/internal/prefs"
	"github.com/vovakirdan/flappy-arcade/internal/registry"
)

var windowCmd = &cobra.Command{
	Use:   "window <variant>",
	Short: "Play a variant in a desktop window",
	Long: `Open a resizable window and play the specified variant.

Controls:
  Space/Up/W/Enter - Flap
  Left click       - Flap in variants with pointer support
  P/Esc            - Pause and resume
  Q                - Quit from the menu, pause or game-over screen
  M                - Toggle sound (remembered between runs)

Examples:
  flappy window sound
  flappy window scroll --fps 120`,
	Args: cobra.ExactArgs(1),
	Run:  runWindow,
}

func init() {
	windowCmd.Flags().StringVar(&flagPlayer, "player", "", "Name recorded with scores (default: current user)")
}

func runWindow(cmd *cobra.Command, args []string) {
	gameID := args[0]
	requireVariant(gameID)

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	settings, err := prefs.Open(logger)
	if err != nil {
		logger.Warn("settings will not persist", "error", err)
	}

	store := openStore()

	player := flagPlayer
	if player == "" {
		player = playerName()
	}

	runErr := window.Run(game, runtimeConfig(), window.Options{
		Store:  store,
		Prefs:  settings,
		Player: player,
		Logger: logger,
	})

	closeStore(store)

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
