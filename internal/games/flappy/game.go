// Package flappy implements the Flappy Bird-style game in four variants.
// The player is a circle falling under gravity that must flap through gaps
// in procedurally generated walls. All logic is engine-agnostic: the host
// supplies elapsed time, input actions and the viewport, and receives draw
// intents and sound triggers back.
package flappy

import (
	"github.com/vovakirdan/flappy-arcade/internal/config"
	"github.com/vovakirdan/flappy-arcade/internal/core"
	"github.com/vovakirdan/flappy-arcade/internal/registry"
)

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names clear it.
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.ParsePreset(preset)
}

// Game is one flappy variant. A Game is owned by a single host loop.
type Game struct {
	id       string
	variant  config.VariantConfig
	cfg      config.FlappyConfig
	pinned   bool // cfg was supplied by the caller and is not reloaded on Reset
	physics  Physics
	diff     *config.DifficultyManager
	gen      *Generator
	runtime  core.RuntimeConfig
	viewport core.Viewport

	mode     core.Mode
	player   Player
	obstacle Obstacle
	score    int
	elapsed  float64 // Seconds spent in Playing this round
	ticks    int     // Playing ticks this round
}

// New creates a game for a built-in variant ID. Configuration is loaded on Reset.
func New(id string) *Game {
	cfg := config.DefaultFlappyConfig()
	v, ok := cfg.Variant(id)
	if !ok {
		v = config.VariantConfig{ID: id, Title: id, GapBounds: config.BoundsFixed, FloorBounce: config.BounceReset}
	}
	g := &Game{id: id, variant: v}
	g.configure(cfg, v)
	return g
}

// NewWithConfig creates a game that always uses the given config and variant.
func NewWithConfig(cfg config.FlappyConfig, v config.VariantConfig) *Game {
	g := &Game{id: v.ID, variant: v, pinned: true}
	g.configure(cfg, v)
	return g
}

// configure derives the per-variant helpers from config.
func (g *Game) configure(cfg config.FlappyConfig, v config.VariantConfig) {
	g.cfg = cfg
	g.variant = v
	g.physics = PhysicsFrom(cfg.Physics, v)
	g.diff = config.NewDifficultyManager(cfg.Difficulty)
	g.gen = NewGenerator(g.runtime.Seed, cfg.Obstacles, v.GapBounds, g.diff)
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return g.id
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return g.variant.Title
}

// Variant returns the feature set of this game.
func (g *Game) Variant() config.VariantConfig {
	return g.variant
}

// Reset reloads configuration, reseeds the obstacle generator and returns to the menu.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	if !g.pinned {
		cfg, err := config.LoadFlappy(configPath)
		if err != nil {
			cfg = config.DefaultFlappyConfig()
		}
		config.ApplyFlappyPreset(&cfg, difficultyPreset)

		v, ok := cfg.Variant(g.id)
		if !ok {
			v = g.variant
		}
		g.configure(cfg, v)
	} else {
		g.gen.Reseed(runtime.Seed)
	}

	g.viewport = runtime.Viewport
	if !g.viewport.Valid() {
		g.viewport = core.DefaultConfig().Viewport
	}

	g.newRound(g.viewport)
	g.mode = core.ModeMenu
}

// newRound puts the player at its start position with a zero score.
func (g *Game) newRound(vp core.Viewport) {
	p := g.cfg.Player
	g.player = NewPlayer(p.X, p.Y, p.Radius)
	g.score = 0
	g.elapsed = 0
	g.ticks = 0
	if g.variant.Obstacles {
		g.obstacle = g.gen.Next(vp.W, 0, vp)
	}
}

// Step advances the game by one tick of dt seconds.
// A tick that changes mode does not integrate physics.
func (g *Game) Step(in core.InputFrame, dt float64, vp core.Viewport) core.StepResult {
	if vp.Valid() {
		g.viewport = vp
	}
	vp = g.viewport
	dt = core.ClampF(dt, 0, g.cfg.Physics.MaxFrameTime)

	primary := in.Has(core.ActionFlap) || (g.variant.PointerFlap && in.Has(core.ActionPointer))
	var res core.StepResult

	switch g.mode {
	case core.ModeMenu, core.ModeEnd:
		switch {
		case primary:
			g.newRound(vp)
			g.mode = core.ModePlaying
			res.Events = append(res.Events, core.EventStarted)
		case in.Has(core.ActionQuit):
			res.Quit = true
			res.Events = append(res.Events, core.EventQuit)
		}

	case core.ModePlaying:
		if in.Has(core.ActionPause) {
			g.mode = core.ModePaused
			res.Events = append(res.Events, core.EventPaused)
			break
		}
		res.Events = g.advance(dt, primary, vp, res.Events)

	case core.ModePaused:
		switch {
		case in.Has(core.ActionPause) || primary:
			g.mode = core.ModePlaying
			res.Events = append(res.Events, core.EventResumed)
		case in.Has(core.ActionQuit):
			res.Quit = true
			res.Events = append(res.Events, core.EventQuit)
		}
	}

	if g.variant.Sound {
		res.Sounds = soundsFor(res.Events)
	}
	res.State = g.State()
	return res
}

// advance runs physics, collision and scoring for one Playing tick.
func (g *Game) advance(dt float64, flap bool, vp core.Viewport, events []core.Event) []core.Event {
	ph := g.physics
	if g.variant.Scrolling {
		ph.ScrollSpeed = g.diff.Speed(g.cfg.Physics.ScrollSpeed, g.score, g.ticks)
	}

	g.player.Step(dt, flap, ph)
	g.elapsed += dt
	g.ticks++
	if flap {
		events = append(events, core.EventFlapped)
	}

	if HitsGround(g.player, vp) {
		g.mode = core.ModeEnd
		return append(events, core.EventHitGround)
	}

	if !g.variant.Obstacles {
		return events
	}

	if Collides(g.player.Box(), g.obstacle, vp) {
		g.mode = core.ModeEnd
		return append(events, core.EventHitObstacle)
	}

	if g.obstacle.PassedBy(g.player.X) {
		g.score++
		g.obstacle = g.gen.Next(g.player.X+vp.W, g.score, vp)
		events = append(events, core.EventScored)
	}
	return events
}

// soundsFor maps tick events to audio cues.
func soundsFor(events []core.Event) []core.Sound {
	var out []core.Sound
	for _, e := range events {
		switch e {
		case core.EventFlapped:
			out = append(out, core.SoundFlap)
		case core.EventScored:
			out = append(out, core.SoundScore)
		case core.EventHitGround, core.EventHitObstacle:
			out = append(out, core.SoundCrash)
		}
	}
	return out
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Mode:     g.mode,
		Score:    g.score,
		Elapsed:  g.elapsed,
		GameOver: g.mode == core.ModeEnd,
		Paused:   g.mode == core.ModePaused,
	}
}

// Player returns a copy of the player.
func (g *Game) Player() Player {
	return g.player
}

// Obstacle returns the active obstacle; ok is false in variants without obstacles.
func (g *Game) Obstacle() (o Obstacle, ok bool) {
	return g.obstacle, g.variant.Obstacles
}

// CameraX is the horizontal world offset that keeps the player at its start column.
func (g *Game) CameraX() float64 {
	return g.player.X - g.cfg.Player.X
}

// RegisterVariants adds every variant in cfg to the registry, skipping IDs already present.
func RegisterVariants(cfg config.FlappyConfig) {
	for _, v := range cfg.Variants {
		if registry.Exists(v.ID) {
			continue
		}
		v := v
		registry.Register(v.ID, func() registry.Game {
			return NewWithConfig(cfg, v)
		})
	}
}

// Register the built-in variants with the registry
func init() {
	for _, v := range config.DefaultVariants() {
		id := v.ID
		registry.Register(id, func() registry.Game {
			return New(id)
		})
	}
}
