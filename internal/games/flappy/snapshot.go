package flappy

// Snapshot captures the game state for determinism testing and spectators.
type Snapshot struct {
	Variant  string        `json:"variant"`
	Mode     string        `json:"mode"`
	Tick     int           `json:"tick"`
	Score    int           `json:"score"`
	Elapsed  float64       `json:"elapsed"`
	PlayerX  float64       `json:"player_x"`
	PlayerY  float64       `json:"player_y"`
	Velocity float64       `json:"velocity"`
	Radius   float64       `json:"radius"`
	CameraX  float64       `json:"camera_x"`
	Obstacle *ObstacleView `json:"obstacle,omitempty"`
	ViewW    float64       `json:"view_w"`
	ViewH    float64       `json:"view_h"`
}

// ObstacleView is the obstacle part of a snapshot.
type ObstacleView struct {
	X        float64 `json:"x"`
	GapY     float64 `json:"gap_y"`
	HalfSize float64 `json:"half_size"`
	Width    float64 `json:"width"`
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Variant:  g.id,
		Mode:     g.mode.String(),
		Tick:     g.ticks,
		Score:    g.score,
		Elapsed:  g.elapsed,
		PlayerX:  g.player.X,
		PlayerY:  g.player.Y,
		Velocity: g.player.Velocity,
		Radius:   g.player.Radius,
		CameraX:  g.CameraX(),
		ViewW:    g.viewport.W,
		ViewH:    g.viewport.H,
	}
	if g.variant.Obstacles {
		s.Obstacle = &ObstacleView{
			X:        g.obstacle.X,
			GapY:     g.obstacle.GapY,
			HalfSize: g.obstacle.HalfSize,
			Width:    g.obstacle.Width,
		}
	}
	return s
}
