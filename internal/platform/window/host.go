// Package window runs a flappy variant in a desktop window using ebiten.
package window

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/vovakirdan/flappy-arcade/internal/core"
	"github.com/vovakirdan/flappy-arcade/internal/prefs"
	"github.com/vovakirdan/flappy-arcade/internal/registry"
	"github.com/vovakirdan/flappy-arcade/internal/storage"
)

// Key bindings. M toggles mute and is handled by the host.
var (
	flapKeys  = []ebiten.Key{ebiten.KeySpace, ebiten.KeyArrowUp, ebiten.KeyW, ebiten.KeyEnter}
	pauseKeys = []ebiten.Key{ebiten.KeyP, ebiten.KeyEscape}
	quitKeys  = []ebiten.Key{ebiten.KeyQ}
)

const bestTextSize = 16

// Options are the optional collaborators of a Host.
type Options struct {
	Store  storage.Scores // Nil disables score saving
	Prefs  *prefs.Manager // Nil keeps mute and local best in memory
	Player string
	Logger *log.Logger
}

// Host adapts a registry.Game to ebiten.Game.
type Host struct {
	game     registry.Game
	config   core.RuntimeConfig
	opts     Options
	fonts    *Fonts
	audio    *Audio
	viewport core.Viewport
	started  bool
}

// NewHost prepares fonts and audio for game.
func NewHost(game registry.Game, cfg core.RuntimeConfig, opts Options) (*Host, error) {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Prefs == nil {
		opts.Prefs = prefs.NewManager(nil, opts.Logger)
	}
	if opts.Player == "" {
		opts.Player = "local"
	}
	if !cfg.Viewport.Valid() {
		cfg.Viewport = core.DefaultConfig().Viewport
	}

	fonts, err := NewFonts()
	if err != nil {
		return nil, err
	}

	return &Host{
		game:     game,
		config:   cfg,
		opts:     opts,
		fonts:    fonts,
		audio:    NewAudio(opts.Prefs),
		viewport: cfg.Viewport,
	}, nil
}

// Update advances the game by one fixed tick.
func (h *Host) Update() error {
	if !h.started {
		h.config.Viewport = h.viewport
		h.game.Reset(h.config)
		h.started = true
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		muted := h.opts.Prefs.ToggleMute()
		h.opts.Logger.Debug("mute toggled", "muted", muted)
		h.savePrefs()
	}

	in := h.pollInput()
	dt := 1 / float64(ebiten.TPS())

	result := h.game.Step(in, dt, h.viewport)
	for _, s := range result.Sounds {
		h.audio.Play(s)
	}

	if result.Has(core.EventHitGround) || result.Has(core.EventHitObstacle) {
		h.finishRound(result.State)
	}

	if result.Quit {
		return ebiten.Termination
	}
	return nil
}

func (h *Host) pollInput() core.InputFrame {
	in := core.NewInputFrame()
	for _, k := range flapKeys {
		if inpututil.IsKeyJustPressed(k) {
			in.Set(core.ActionFlap)
		}
	}
	for _, k := range pauseKeys {
		if inpututil.IsKeyJustPressed(k) {
			in.Set(core.ActionPause)
		}
	}
	for _, k := range quitKeys {
		if inpututil.IsKeyJustPressed(k) {
			in.Set(core.ActionQuit)
		}
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		in.Set(core.ActionPointer)
	}
	return in
}

// finishRound stores the score locally and in the score store.
func (h *Host) finishRound(state core.GameState) {
	if state.Score <= 0 {
		return
	}

	if h.opts.Prefs.RecordBest(h.game.ID(), state.Score) {
		h.savePrefs()
	}

	if h.opts.Store == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := h.opts.Store.SaveScore(ctx, storage.ScoreEntry{
		GameID:   h.game.ID(),
		Player:   h.opts.Player,
		Score:    state.Score,
		Duration: state.Elapsed,
	})
	if err != nil {
		h.opts.Logger.Warn("could not save score", "game", h.game.ID(), "error", err)
	}
}

func (h *Host) savePrefs() {
	if err := h.opts.Prefs.Save(); err != nil {
		h.opts.Logger.Warn("could not save settings", "error", err)
	}
}

// Draw presents the game's frame.
func (h *Host) Draw(screen *ebiten.Image) {
	frame := h.game.Render(h.viewport, h.fonts)
	screen.Fill(rgba(frame.Background))

	for _, c := range frame.Cmds {
		switch c.Shape {
		case core.ShapeRect:
			vector.DrawFilledRect(screen, float32(c.X), float32(c.Y), float32(c.W), float32(c.H), rgba(c.Color), true)
		case core.ShapeCircle:
			vector.DrawFilledCircle(screen, float32(c.X), float32(c.Y), float32(c.R), rgba(c.Color), true)
		case core.ShapeText:
			h.drawText(screen, c.Text, c.X, c.Y, c.Size, c.Color)
		}
	}

	if best := h.opts.Prefs.Best(h.game.ID()); best > 0 {
		label := "Best: " + strconv.Itoa(best)
		w := h.fonts.MeasureText(label, bestTextSize)
		h.drawText(screen, label, h.viewport.W-w-10, bestTextSize+8, bestTextSize, core.ColorGray)
	}
	var status []string
	if h.opts.Prefs.Muted() {
		status = append(status, "muted")
	}
	if !h.opts.Prefs.Persistent() {
		status = append(status, "settings not saved")
	}
	if len(status) > 0 {
		h.drawText(screen, strings.Join(status, "  "), 10, h.viewport.H-10, bestTextSize, core.ColorGray)
	}
}

// drawText draws s with its baseline at y.
func (h *Host) drawText(screen *ebiten.Image, s string, x, y, size float64, c core.Color) {
	face := h.fonts.Face(size)
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y-face.Metrics().HAscent)
	op.ColorScale.ScaleWithColor(rgba(c))
	text.Draw(screen, s, face, op)
}

// Layout makes the logical screen follow the window, so the
// viewport is re-read every frame.
func (h *Host) Layout(outsideWidth, outsideHeight int) (int, int) {
	if vp := core.NewViewport(float64(outsideWidth), float64(outsideHeight)); vp.Valid() {
		h.viewport = vp
	}
	return outsideWidth, outsideHeight
}

// Run opens a resizable window and plays game until it quits or the window closes.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options) error {
	host, err := NewHost(game, cfg, opts)
	if err != nil {
		return err
	}

	tps := cfg.TickRate
	if tps <= 0 {
		tps = core.DefaultConfig().TickRate
	}

	ebiten.SetWindowSize(int(host.viewport.W), int(host.viewport.H))
	ebiten.SetWindowTitle("Flappy - " + game.Title())
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(tps)

	if err := ebiten.RunGame(host); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("window: %w", err)
	}
	return nil
}
