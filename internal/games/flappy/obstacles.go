package flappy

import (
	"math/rand"

	"github.com/vovakirdan/flappy-arcade/internal/config"
	"github.com/vovakirdan/flappy-arcade/internal/core"
)

// Obstacle is a pair of walls with a gap for the player to pass through.
type Obstacle struct {
	X        float64 // Left edge of both walls
	GapY     float64 // Centre of the gap
	HalfSize float64 // Half the gap height
	Width    float64
}

// TopWall returns the collision box from the top of the play area to the gap.
func (o Obstacle) TopWall() core.Box {
	return core.NewBox(o.X, 0, o.Width, o.GapY-o.HalfSize)
}

// BottomWall returns the collision box from the gap to the bottom of the play area.
func (o Obstacle) BottomWall(viewportH float64) core.Box {
	top := o.GapY + o.HalfSize
	return core.NewBox(o.X, top, o.Width, viewportH-top)
}

// PassedBy reports whether horizontal position x is beyond the obstacle's position.
func (o Obstacle) PassedBy(x float64) bool {
	return x > o.X
}

// Generator produces obstacles. It is the only randomised component.
type Generator struct {
	rng        *rand.Rand
	cfg        config.FlappyObstacles
	bounds     string
	difficulty *config.DifficultyManager
}

// NewGenerator creates a generator seeded once with the given seed.
func NewGenerator(seed int64, cfg config.FlappyObstacles, bounds string, diff *config.DifficultyManager) *Generator {
	return &Generator{
		rng:        rand.New(rand.NewSource(seed)),
		cfg:        cfg,
		bounds:     bounds,
		difficulty: diff,
	}
}

// Reseed restarts the random sequence.
func (gen *Generator) Reseed(seed int64) {
	gen.rng = rand.New(rand.NewSource(seed))
}

// HalfSize returns the gap half-size for a score; never below MinSize/2.
func (gen *Generator) HalfSize(score int) float64 {
	return gen.difficulty.GapSize(gen.cfg.BaseSize, gen.cfg.MinSize, score) / 2
}

// CenterRange returns the interval the gap centre is drawn from.
func (gen *Generator) CenterRange(vp core.Viewport) (lo, hi float64) {
	b := gen.cfg.FixedBounds
	if gen.bounds == config.BoundsProportional {
		b = gen.cfg.ProportionalBounds
		return b.Min * vp.H, b.Max * vp.H
	}
	return b.Min, b.Max
}

// Next creates the obstacle at horizontal position x for the given score.
func (gen *Generator) Next(x float64, score int, vp core.Viewport) Obstacle {
	lo, hi := gen.CenterRange(vp)

	var gapY float64
	switch {
	case hi > lo:
		gapY = lo + gen.rng.Float64()*(hi-lo)
	case hi < lo:
		gapY = (lo + hi) / 2 // Misconfigured bounds collapse to the midpoint
	default:
		gapY = lo
	}

	return Obstacle{
		X:        x,
		GapY:     gapY,
		HalfSize: gen.HalfSize(score),
		Width:    gen.cfg.Width,
	}
}
