package flappy

import (
	"math"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/vovakirdan/flappy-arcade/internal/config"
	"github.com/vovakirdan/flappy-arcade/internal/core"
	"github.com/vovakirdan/flappy-arcade/internal/registry"
)

var testViewport = core.NewViewport(800, 600)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

// newTestGame creates a variant on default config without touching config files.
func newTestGame(t *testing.T, id string, seed int64) *Game {
	t.Helper()
	cfg := config.DefaultFlappyConfig()
	v, ok := cfg.Variant(id)
	if !ok {
		t.Fatalf("unknown variant %q", id)
	}
	g := NewWithConfig(cfg, v)
	g.Reset(core.RuntimeConfig{Viewport: testViewport, TickRate: 60, Seed: seed})
	return g
}

func step(g *Game, actions ...core.Action) core.StepResult {
	return g.Step(core.InputOf(actions...), 0.1, testViewport)
}

func TestPlayerStepExample(t *testing.T) {
	p := NewPlayer(65, 100, 16)
	ph := Physics{Gravity: 8, FlapPower: 8, MinVelocity: -5, BounceVelocity: 1, Bounce: config.BounceReset}

	p.Step(0.1, false, ph)

	if !approx(p.Velocity, 0.8) {
		t.Errorf("velocity = %v, expected 0.8", p.Velocity)
	}
	if !approx(p.Y, 100.8) {
		t.Errorf("y = %v, expected 100.8", p.Y)
	}
	if p.X != 65 {
		t.Errorf("x = %v, expected no horizontal movement without scroll", p.X)
	}
}

func TestPlayerVelocityClampsToMinimum(t *testing.T) {
	ph := Physics{Gravity: 10, FlapPower: 8, MinVelocity: -5, BounceVelocity: 1, Bounce: config.BounceReset}

	tests := []struct {
		name     string
		velocity float64
		flap     bool
		want     float64
	}{
		{"flap from rest", 0, true, -5},
		{"already rising", -4, true, -5},
		{"falling no flap", 3, false, 4},
		{"rising no flap", -5, false, -4},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := Player{Y: 300, Velocity: tc.velocity, Radius: 16}
			p.Step(0.1, tc.flap, ph)
			if !approx(p.Velocity, tc.want) {
				t.Errorf("velocity = %v, expected %v", p.Velocity, tc.want)
			}
			if p.Velocity < ph.MinVelocity {
				t.Errorf("velocity %v below floor %v", p.Velocity, ph.MinVelocity)
			}
		})
	}
}

func TestPlayerFloorBounce(t *testing.T) {
	reset := Physics{MinVelocity: -5, BounceVelocity: 1, Bounce: config.BounceReset}
	p := Player{Y: 2, Velocity: -5}
	p.Step(0, false, reset)
	if p.Y != 0 || p.Velocity != 1 {
		t.Errorf("reset bounce: y=%v v=%v, expected y=0 v=1", p.Y, p.Velocity)
	}

	halve := Physics{MinVelocity: -5, BounceVelocity: 1, Bounce: config.BounceHalve}
	p = Player{Y: 2, Velocity: -5}
	p.Step(0, false, halve)
	if p.Y != 0 || p.Velocity != 2.5 {
		t.Errorf("halve bounce: y=%v v=%v, expected y=0 v=2.5", p.Y, p.Velocity)
	}
}

func TestGapHalfSizeHasFloor(t *testing.T) {
	cfg := config.DefaultFlappyConfig()
	gen := NewGenerator(1, cfg.Obstacles, config.BoundsFixed, config.NewDifficultyManager(cfg.Difficulty))

	if got := gen.HalfSize(250); got != 25 {
		t.Errorf("HalfSize(250) = %v, expected 25", got)
	}

	for _, score := range []int{0, 1, 149, 150, 1000, math.MaxInt32} {
		o := gen.Next(0, score, testViewport)
		if o.HalfSize < cfg.Obstacles.MinSize/2 {
			t.Errorf("score %d: half size %v below floor %v", score, o.HalfSize, cfg.Obstacles.MinSize/2)
		}
	}
}

func TestGeneratorBounds(t *testing.T) {
	cfg := config.DefaultFlappyConfig()
	diff := config.NewDifficultyManager(cfg.Difficulty)

	fixed := NewGenerator(7, cfg.Obstacles, config.BoundsFixed, diff)
	prop := NewGenerator(7, cfg.Obstacles, config.BoundsProportional, diff)
	small := core.NewViewport(800, 400)

	for i := 0; i < 500; i++ {
		o := fixed.Next(float64(i), 0, small)
		if o.GapY < 150 || o.GapY > 450 {
			t.Fatalf("fixed gap %v outside [150, 450]", o.GapY)
		}
		if o.X != float64(i) || o.Width != cfg.Obstacles.Width {
			t.Fatalf("obstacle placed at %v width %v", o.X, o.Width)
		}

		o = prop.Next(0, 0, small)
		if o.GapY < 100 || o.GapY > 300 {
			t.Fatalf("proportional gap %v outside [100, 300]", o.GapY)
		}
	}
}

func TestGeneratorInvertedBoundsUseMidpoint(t *testing.T) {
	cfg := config.DefaultFlappyConfig()
	cfg.Obstacles.FixedBounds = config.GapBounds{Min: 400, Max: 200}
	gen := NewGenerator(3, cfg.Obstacles, config.BoundsFixed, config.NewDifficultyManager(cfg.Difficulty))

	if o := gen.Next(0, 0, testViewport); o.GapY != 300 {
		t.Errorf("GapY = %v, expected midpoint 300", o.GapY)
	}
}

func TestGeneratorDeterministic(t *testing.T) {
	cfg := config.DefaultFlappyConfig()
	diff := config.NewDifficultyManager(cfg.Difficulty)
	a := NewGenerator(99, cfg.Obstacles, config.BoundsFixed, diff)
	b := NewGenerator(99, cfg.Obstacles, config.BoundsFixed, diff)

	for i := 0; i < 20; i++ {
		if oa, ob := a.Next(0, i, testViewport), b.Next(0, i, testViewport); oa != ob {
			t.Fatalf("draw %d differs: %+v vs %+v", i, oa, ob)
		}
	}
}

func TestCollides(t *testing.T) {
	// Top wall spans y 0..250, bottom wall 350..600, both x 100..160
	o := Obstacle{X: 100, GapY: 300, HalfSize: 50, Width: 60}

	tests := []struct {
		name   string
		player core.Box
		want   bool
	}{
		{"inside gap", core.NewBox(110, 270, 32, 32), false},
		{"overlaps top wall", core.NewBox(110, 240, 32, 32), true},
		{"overlaps bottom wall", core.NewBox(110, 340, 32, 32), true},
		{"left of obstacle", core.NewBox(20, 100, 32, 32), false},
		{"right of obstacle", core.NewBox(200, 100, 32, 32), false},
		{"touching top wall edge", core.NewBox(110, 250, 32, 32), false},
		{"straddles left edge in top wall", core.NewBox(80, 10, 32, 32), true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Collides(tc.player, o, testViewport); got != tc.want {
				t.Errorf("Collides() = %v, expected %v", got, tc.want)
			}
		})
	}
}

func TestMenuTransitions(t *testing.T) {
	g := newTestGame(t, "pipes", 1)

	if g.State().Mode != core.ModeMenu {
		t.Fatalf("Reset should enter menu, got %v", g.State().Mode)
	}

	res := step(g)
	if res.State.Mode != core.ModeMenu {
		t.Errorf("no input should stay in menu, got %v", res.State.Mode)
	}

	res = step(g, core.ActionPause)
	if res.State.Mode != core.ModeMenu {
		t.Errorf("pause in menu should be ignored, got %v", res.State.Mode)
	}

	res = step(g, core.ActionFlap)
	if res.State.Mode != core.ModePlaying || !res.Has(core.EventStarted) {
		t.Fatalf("flap in menu should start, got %v %v", res.State.Mode, res.Events)
	}
	// Transition tick does not integrate
	if p := g.Player(); p.X != 65 || p.Y != 100 || p.Velocity != 0 {
		t.Errorf("player moved on transition tick: %+v", p)
	}
}

func TestQuitHonoredOutsidePlay(t *testing.T) {
	g := newTestGame(t, "flap", 1)
	if res := step(g, core.ActionQuit); !res.Quit {
		t.Error("quit in menu should request exit")
	}

	step(g, core.ActionFlap)
	if res := step(g, core.ActionQuit); res.Quit || res.State.Mode != core.ModePlaying {
		t.Errorf("quit while playing should be ignored, got quit=%v mode=%v", res.Quit, res.State.Mode)
	}

	step(g, core.ActionPause)
	if res := step(g, core.ActionQuit); !res.Quit {
		t.Error("quit while paused should request exit")
	}
}

func TestGroundContactEndsRound(t *testing.T) {
	g := newTestGame(t, "flap", 1)
	step(g, core.ActionFlap)

	var res core.StepResult
	for i := 0; i < 1000 && res.State.Mode != core.ModeEnd; i++ {
		res = step(g)
		if res.State.Mode != core.ModePlaying && res.State.Mode != core.ModeEnd {
			t.Fatalf("playing may only lead to end, got %v", res.State.Mode)
		}
	}

	if res.State.Mode != core.ModeEnd || !res.State.GameOver {
		t.Fatalf("falling player should reach end, got %v", res.State.Mode)
	}
	if !res.Has(core.EventHitGround) {
		t.Errorf("expected hit_ground event, got %v", res.Events)
	}

	// End is sticky without input
	before := g.Player()
	if res = step(g); res.State.Mode != core.ModeEnd || g.Player() != before {
		t.Error("end should not advance without input")
	}

	res = step(g, core.ActionFlap)
	if res.State.Mode != core.ModePlaying || res.State.Score != 0 {
		t.Errorf("restart gave mode=%v score=%d", res.State.Mode, res.State.Score)
	}
	if p := g.Player(); p.X != 65 || p.Y != 100 || p.Velocity != 0 {
		t.Errorf("restart should reset player, got %+v", p)
	}
}

func TestObstacleCollisionEndsRound(t *testing.T) {
	g := newTestGame(t, "pipes", 1)
	step(g, core.ActionFlap)

	// Top wall covers the player column down to y=375
	g.obstacle = Obstacle{X: 60, GapY: 400, HalfSize: 25, Width: 60}

	res := step(g)
	if res.State.Mode != core.ModeEnd || !res.Has(core.EventHitObstacle) {
		t.Fatalf("expected collision end, got %v %v", res.State.Mode, res.Events)
	}
	if res.Has(core.EventScored) {
		t.Error("a colliding tick must not score")
	}
}

func TestScoreWhenPlayerPassesObstacleX(t *testing.T) {
	tests := []struct {
		name   string
		offset float64 // Obstacle X relative to the player centre
		scored bool
	}{
		{"centre past obstacle", -25, true},
		{"centre past obstacle, box still overlapping walls", -5, true},
		{"obstacle ahead", 100, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := newTestGame(t, "pipes", 1)
			step(g, core.ActionFlap)

			// Gap larger than the viewport: walls are empty
			g.obstacle = Obstacle{X: g.Player().X + tc.offset, GapY: 300, HalfSize: 1000, Width: 60}

			res := step(g)
			if res.State.Mode != core.ModePlaying {
				t.Fatalf("unexpected mode %v", res.State.Mode)
			}
			if res.Has(core.EventScored) != tc.scored {
				t.Fatalf("scored = %v, expected %v (player x=%v)", res.Has(core.EventScored), tc.scored, g.Player().X)
			}
			if !tc.scored {
				return
			}
			if res.State.Score != 1 {
				t.Errorf("score = %d, expected 1", res.State.Score)
			}
			o, _ := g.Obstacle()
			if want := g.Player().X + testViewport.W; o.X != want {
				t.Errorf("replacement at %v, expected %v", o.X, want)
			}
		})
	}
}

func TestScoreOncePerObstacle(t *testing.T) {
	cfg := config.DefaultFlappyConfig()
	cfg.Physics.Gravity = 0
	cfg.Physics.ScrollSpeed = 600
	// Gap larger than the viewport: walls are empty and never collide
	cfg.Obstacles.BaseSize = 1000
	cfg.Obstacles.MinSize = 1000
	v, _ := cfg.Variant("pipes")

	g := NewWithConfig(cfg, v)
	g.Reset(core.RuntimeConfig{Viewport: testViewport, Seed: 5})
	step(g, core.ActionFlap)

	scored := 0
	for i := 0; i < 200; i++ {
		res := step(g)
		if res.State.Mode != core.ModePlaying {
			t.Fatalf("tick %d: unexpected mode %v", i, res.State.Mode)
		}
		if res.Has(core.EventScored) {
			scored++
			o, _ := g.Obstacle()
			if want := g.Player().X + testViewport.W; o.X != want {
				t.Errorf("replacement at %v, expected %v", o.X, want)
			}
			if o.PassedBy(g.Player().X) {
				t.Error("replacement obstacle is already passed")
			}
		}
	}

	if scored < 5 {
		t.Fatalf("expected several crossings in 200 ticks, got %d", scored)
	}
	if g.State().Score != scored {
		t.Errorf("score = %d, expected %d crossings", g.State().Score, scored)
	}
}

func TestPauseResumeLeavesPlayerUnchanged(t *testing.T) {
	g := newTestGame(t, "scroll", 1)
	step(g, core.ActionFlap)
	for i := 0; i < 3; i++ {
		step(g)
	}

	before := g.Player()
	res := step(g, core.ActionPause)
	if res.State.Mode != core.ModePaused || !res.State.Paused {
		t.Fatalf("expected paused, got %v", res.State.Mode)
	}

	// Time passing while paused is ignored
	g.Step(core.NewInputFrame(), 10, testViewport)

	res = step(g, core.ActionPause)
	if res.State.Mode != core.ModePlaying || !res.Has(core.EventResumed) {
		t.Fatalf("expected resume, got %v", res.State.Mode)
	}
	if after := g.Player(); after != before {
		t.Errorf("player changed across pause: %+v -> %+v", before, after)
	}
}

func TestFrameTimeIsClamped(t *testing.T) {
	a := newTestGame(t, "scroll", 1)
	b := newTestGame(t, "scroll", 1)
	step(a, core.ActionFlap)
	step(b, core.ActionFlap)

	a.Step(core.NewInputFrame(), 30, testViewport)
	b.Step(core.NewInputFrame(), 0.25, testViewport)
	if a.Player() != b.Player() {
		t.Errorf("large dt should clamp to max frame time: %+v vs %+v", a.Player(), b.Player())
	}

	before := a.Player()
	a.Step(core.NewInputFrame(), -1, testViewport)
	if a.Player().X != before.X {
		t.Errorf("negative dt should not scroll backwards")
	}
}

func TestPointerFlapOnlyWhenEnabled(t *testing.T) {
	pipes := newTestGame(t, "pipes", 1)
	if res := step(pipes, core.ActionPointer); res.State.Mode != core.ModeMenu {
		t.Error("pointer should not start a variant without pointer flap")
	}

	scroll := newTestGame(t, "scroll", 1)
	if res := step(scroll, core.ActionPointer); res.State.Mode != core.ModePlaying {
		t.Error("pointer should start a variant with pointer flap")
	}
	if res := step(scroll, core.ActionPointer); !res.Has(core.EventFlapped) {
		t.Error("pointer should flap while playing")
	}
}

func TestSoundsOnlyInSoundVariant(t *testing.T) {
	quiet := newTestGame(t, "scroll", 1)
	step(quiet, core.ActionFlap)
	if res := step(quiet, core.ActionFlap); len(res.Sounds) != 0 {
		t.Errorf("silent variant emitted %v", res.Sounds)
	}

	loud := newTestGame(t, "sound", 1)
	step(loud, core.ActionFlap)
	res := step(loud, core.ActionFlap)
	if len(res.Sounds) != 1 || res.Sounds[0] != core.SoundFlap {
		t.Errorf("expected flap sound, got %v", res.Sounds)
	}
}

func TestGameDeterminism(t *testing.T) {
	run := func() Snapshot {
		g := newTestGame(t, "sound", 12345)
		step(g, core.ActionFlap)
		for i := 0; i < 300; i++ {
			if i%4 == 0 {
				step(g, core.ActionFlap)
			} else {
				step(g)
			}
			if g.State().GameOver {
				break
			}
		}
		return g.Snapshot()
	}

	s1, s2 := run(), run()
	if !reflect.DeepEqual(s1, s2) {
		t.Errorf("same seed and inputs diverged:\n%+v\n%+v", s1, s2)
	}
}

func TestRenderMenuCentersPrompt(t *testing.T) {
	g := newTestGame(t, "pipes", 1)
	measure := core.MeasureFunc(func(text string, size float64) float64 { return 100 })

	f := g.Render(testViewport, measure)
	if f.Background != core.ColorDarkPurple {
		t.Errorf("menu background = %v", f.Background)
	}

	found := false
	for _, c := range f.Cmds {
		if c.Shape == core.ShapeText && c.Text == MenuPrompt {
			found = true
			if c.X != 350 || c.Y != 300 {
				t.Errorf("prompt at (%v, %v), expected (350, 300)", c.X, c.Y)
			}
		}
	}
	if !found {
		t.Errorf("menu texts %v lack %q", f.Texts(), MenuPrompt)
	}
}

func TestRenderScenes(t *testing.T) {
	g := newTestGame(t, "pipes", 1)
	step(g, core.ActionFlap)

	f := g.Render(testViewport, nil)
	var circles, rects int
	for _, c := range f.Cmds {
		switch c.Shape {
		case core.ShapeCircle:
			circles++
			if c.X != 65 || c.R != 16 {
				t.Errorf("player drawn at x=%v r=%v", c.X, c.R)
			}
		case core.ShapeRect:
			rects++
		}
	}
	if circles != 1 || rects != 2 {
		t.Errorf("play scene has %d circles and %d rects", circles, rects)
	}
	if !strings.Contains(strings.Join(f.Texts(), "|"), "Score: 0") {
		t.Errorf("missing score HUD in %v", f.Texts())
	}

	step(g, core.ActionPause)
	if texts := g.Render(testViewport, nil).Texts(); !contains(texts, PausedTitle) {
		t.Errorf("paused texts %v", texts)
	}

	step(g, core.ActionFlap)
	g.obstacle = Obstacle{X: 60, GapY: 400, HalfSize: 25, Width: 60}
	step(g)
	if texts := g.Render(testViewport, nil).Texts(); !contains(texts, GameOverText) {
		t.Errorf("end texts %v", texts)
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

const customYAML = `
obstacles:
  base_size: 300
  min_size: 100
variants:
  - id: pipes
    title: "Custom Pipes"
    obstacles: true
    scrolling: true
    gap_bounds: proportional
    floor_bounce: halve
  - id: drift
    title: "Drift"
    obstacles: true
    scrolling: true
    gap_bounds: fixed
    pointer_flap: true
    floor_bounce: reset
`

func writeCustomConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "flappy.yaml")
	if err := os.WriteFile(path, []byte(customYAML), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		SetConfigPath("")
		SetDifficultyPreset("")
	})
	return path
}

func TestResetLoadsConfigFileAndPreset(t *testing.T) {
	path := writeCustomConfig(t)

	tests := []struct {
		preset   string
		halfAt40 float64 // Gap half-size once the score reaches 40
	}{
		{"", 130},
		{"easy", 140},
		{"normal", 130},
		{"hard", 110},
		{"fixed", 150},
		{"bogus", 130},
	}

	for _, tc := range tests {
		t.Run("preset "+tc.preset, func(t *testing.T) {
			// Created before the settings change; Reset must pick them up
			g := New("pipes")
			SetConfigPath(path)
			SetDifficultyPreset(tc.preset)
			g.Reset(core.RuntimeConfig{Viewport: testViewport, Seed: 1})

			v := g.Variant()
			if v.Title != "Custom Pipes" || v.GapBounds != config.BoundsProportional || v.FloorBounce != config.BounceHalve {
				t.Errorf("variant not loaded from file: %+v", v)
			}
			if o, _ := g.Obstacle(); o.HalfSize != 150 {
				t.Errorf("first obstacle half size = %v, expected 150", o.HalfSize)
			}
			if got := g.gen.HalfSize(40); got != tc.halfAt40 {
				t.Errorf("HalfSize(40) = %v, expected %v", got, tc.halfAt40)
			}
		})
	}
}

func TestResetFallsBackWhenConfigUnreadable(t *testing.T) {
	writeCustomConfig(t)
	SetConfigPath(filepath.Join(t.TempDir(), "missing.yaml"))

	g := New("pipes")
	g.Reset(core.RuntimeConfig{Viewport: testViewport, Seed: 1})

	if v := g.Variant(); v.Title != "Flappy II: Pipes" || v.GapBounds != config.BoundsFixed {
		t.Errorf("expected built-in pipes variant, got %+v", v)
	}
}

func TestRegisterVariantsFromConfigFile(t *testing.T) {
	path := writeCustomConfig(t)
	cfg, err := config.LoadFlappy(path)
	if err != nil {
		t.Fatalf("LoadFlappy: %v", err)
	}

	RegisterVariants(cfg)

	if !registry.Exists("drift") {
		t.Fatal("variant from the config file should be registered")
	}
	created, err := registry.Create("drift")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	g, ok := created.(*Game)
	if !ok {
		t.Fatalf("unexpected game type %T", created)
	}
	if v := g.Variant(); v.Title != "Drift" || !v.PointerFlap || !v.Obstacles {
		t.Errorf("drift variant = %+v", v)
	}

	// Built-in IDs keep their config-reloading factory
	builtin, err := registry.Create("pipes")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if builtin.(*Game).pinned {
		t.Error("built-in pipes should not be replaced by a pinned variant")
	}
}
