package flappy

import "github.com/vovakirdan/flappy-arcade/internal/core"

// Collides reports whether the player box overlaps the top or bottom wall
// of the obstacle on both axes. A box entirely inside the gap never collides.
func Collides(player core.Box, o Obstacle, vp core.Viewport) bool {
	return player.Intersects(o.TopWall()) || player.Intersects(o.BottomWall(vp.H))
}

// HitsGround reports whether the player touches the bottom of the viewport.
func HitsGround(p Player, vp core.Viewport) bool {
	return p.Y+p.Radius >= vp.H
}
