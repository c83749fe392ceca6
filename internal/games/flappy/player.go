package flappy

import (
	"math"

	"github.com/vovakirdan/flappy-arcade/internal/config"
	"github.com/vovakirdan/flappy-arcade/internal/core"
)

// Physics is the set of constants one player step integrates with.
type Physics struct {
	Gravity        float64
	FlapPower      float64
	MinVelocity    float64
	FloorY         float64
	BounceVelocity float64
	Bounce         string  // config.BounceReset or config.BounceHalve
	ScrollSpeed    float64 // Zero in non-scrolling variants
}

// PhysicsFrom builds step constants from config for one variant.
func PhysicsFrom(p config.FlappyPhysics, v config.VariantConfig) Physics {
	ph := Physics{
		Gravity:        p.Gravity,
		FlapPower:      p.FlapPower,
		MinVelocity:    p.MinVelocity,
		FloorY:         p.FloorY,
		BounceVelocity: p.BounceVelocity,
		Bounce:         v.FloorBounce,
	}
	if v.Scrolling {
		ph.ScrollSpeed = p.ScrollSpeed
	}
	return ph
}

// Player is the flapping circle. (X, Y) is its centre.
type Player struct {
	X        float64
	Y        float64
	Velocity float64
	Radius   float64
}

// NewPlayer creates a player at rest.
func NewPlayer(x, y, radius float64) Player {
	return Player{X: x, Y: y, Radius: radius}
}

// Flap applies the upward impulse.
func (p *Player) Flap(power float64) {
	p.Velocity -= power
}

// Step integrates one tick: gravity, optional flap, terminal velocity floor,
// vertical move, floor clamp, then horizontal scroll.
func (p *Player) Step(dt float64, flap bool, ph Physics) {
	p.Velocity += ph.Gravity * dt
	if flap {
		p.Flap(ph.FlapPower)
	}

	if p.Velocity < ph.MinVelocity {
		p.Velocity = ph.MinVelocity
	}

	p.Y += p.Velocity
	if p.Y < ph.FloorY {
		p.Y = ph.FloorY
		switch ph.Bounce {
		case config.BounceHalve:
			p.Velocity = math.Abs(p.Velocity) / 2
		default:
			p.Velocity = ph.BounceVelocity
		}
	}

	p.X += ph.ScrollSpeed * dt
}

// Box returns the player's bounding box.
func (p Player) Box() core.Box {
	return core.NewBox(p.X-p.Radius, p.Y-p.Radius, 2*p.Radius, 2*p.Radius)
}
