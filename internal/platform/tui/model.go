package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/flappy-arcade/internal/core"
	"github.com/vovakirdan/flappy-arcade/internal/games/flappy"
	"github.com/vovakirdan/flappy-arcade/internal/registry"
	"github.com/vovakirdan/flappy-arcade/internal/storage"
)

// Publisher receives snapshots of a running round, e.g. the spectator hub.
type Publisher interface {
	Publish(session string, snap flappy.Snapshot)
}

// snapshotter is implemented by games that can describe themselves to spectators.
type snapshotter interface {
	Snapshot() flappy.Snapshot
}

// Options are the optional collaborators of a game Model.
type Options struct {
	Store     storage.Scores // Nil disables score saving
	Player    string         // Name recorded with scores
	Sound     core.SoundSink // Nil is silent
	Publisher Publisher      // Nil disables spectating
	Session   string         // Spectator feed name
	Logger    *log.Logger
	Embedded  bool // Quit returns to the caller's menu instead of ending the program
}

// Model is the Bubble Tea model for running one flappy variant.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	config     core.RuntimeConfig
	opts       Options
	keyMapper  *KeyMapper
	inputFrame core.InputFrame
	gameState  core.GameState
	lastTick   time.Time
	quitting   bool
	backToMenu bool
}

// NewModel creates a new Bubble Tea model for the given game.
// cfg.Viewport is ignored; the terminal size decides it.
func NewModel(game registry.Game, cfg core.RuntimeConfig, cols, rows int, opts Options) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if opts.Player == "" {
		opts.Player = "local"
	}
	if opts.Session == "" {
		opts.Session = opts.Player
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	cfg.Viewport = WorldViewport(cols, rows)

	return Model{
		game:       game,
		screen:     core.NewScreen(cols, rows),
		config:     cfg,
		opts:       opts,
		keyMapper:  NewKeyMapper(),
		inputFrame: core.NewInputFrame(),
	}
}

// Init resets the game and starts the tick loop.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.inputFrame.Set(m.keyMapper.MapMouse(msg))
		return m, nil

	case tea.WindowSizeMsg:
		m.screen.Resize(msg.Width, msg.Height)
		m.config.Viewport = WorldViewport(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		if m.quitting || m.backToMenu {
			return m, nil
		}
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+s":
		m.saveScreenshot()
		return m, nil
	}

	action, interrupt := m.keyMapper.MapKey(msg)
	if interrupt {
		m.quitting = true
		return m, tea.Quit
	}
	m.inputFrame.Set(action)
	return m, nil
}

// handleTick advances the game by the real time since the previous tick.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	dt := frameDelta(m.lastTick, now, m.config.TickRate)
	m.lastTick = now

	result := m.game.Step(m.inputFrame, dt, m.config.Viewport)
	m.gameState = result.State
	m.inputFrame.Clear()

	if m.opts.Sound != nil {
		for _, s := range result.Sounds {
			m.opts.Sound.Play(s)
		}
	}

	if result.Has(core.EventHitGround) || result.Has(core.EventHitObstacle) {
		m.saveScore()
	}

	if m.opts.Publisher != nil {
		if s, ok := m.game.(snapshotter); ok {
			m.opts.Publisher.Publish(m.opts.Session, s.Snapshot())
		}
	}

	if result.Quit {
		if m.opts.Embedded {
			m.backToMenu = true
			return m, nil
		}
		m.quitting = true
		return m, tea.Quit
	}

	return m, tickCmd(m.config.TickRate)
}

// saveScore records the finished round. Zero scores are not kept.
func (m Model) saveScore() {
	if m.opts.Store == nil || m.gameState.Score <= 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := m.opts.Store.SaveScore(ctx, storage.ScoreEntry{
		GameID:   m.game.ID(),
		Player:   m.opts.Player,
		Score:    m.gameState.Score,
		Duration: m.gameState.Elapsed,
	})
	if err != nil {
		m.opts.Logger.Warn("could not save score", "game", m.game.ID(), "error", err)
		return
	}
	m.opts.Logger.Debug("score saved", "game", m.game.ID(), "player", m.opts.Player, "score", m.gameState.Score)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	Rasterize(m.game.Render(m.config.Viewport, CellMeasurer), m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".arcade", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	Rasterize(m.game.Render(m.config.Viewport, CellMeasurer), m.screen)
	return RenderScreen(m.screen)
}

// State returns the game state after the latest tick.
func (m Model) State() core.GameState {
	return m.gameState
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user left the game for the menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program for a single game on a cols x rows terminal.
func Run(game registry.Game, cfg core.RuntimeConfig, cols, rows int, opts Options) error {
	if opts.Sound == nil {
		opts.Sound = NewBellSink(os.Stderr)
	}
	model := NewModel(game, cfg, cols, rows, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Pointer flap
	)

	_, err := p.Run()
	return err
}
