package core

// Viewport is the drawable area in world pixels.
// Hosts pass the current value on every tick so output can be resized.
type Viewport struct {
	W float64
	H float64
}

// NewViewport creates a viewport of the given size.
func NewViewport(w, h float64) Viewport {
	return Viewport{W: w, H: h}
}

// Valid reports whether both dimensions are positive.
func (v Viewport) Valid() bool {
	return v.W > 0 && v.H > 0
}

// RuntimeConfig contains configuration passed to games at initialization.
type RuntimeConfig struct {
	Viewport Viewport // Initial viewport in world pixels
	TickRate int      // Frames per second the host aims for (default 60)
	Seed     int64    // RNG seed for obstacle generation
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		Viewport: NewViewport(800, 600),
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}
